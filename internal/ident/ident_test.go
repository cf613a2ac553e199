package ident_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdalisten/lambdalisten/internal/ident"
)

func TestInternIsIdempotent(t *testing.T) {
	in := ident.NewInterner()
	a := in.Intern("osc")
	b := in.Intern("osc")
	assert.Equal(t, a, b)
}

func TestInternDistinguishesNames(t *testing.T) {
	in := ident.NewInterner()
	assert.NotEqual(t, in.Intern("x"), in.Intern("y"))
}

func TestInternNormalizesToNFC(t *testing.T) {
	in := ident.NewInterner()
	composed := in.Intern("café")    // é as a single code point
	decomposed := in.Intern("café") // e + combining acute
	assert.Equal(t, composed, decomposed)

	name, ok := in.Resolve(composed)
	require.True(t, ok)
	assert.Equal(t, "café", name)
}

func TestResolveRoundTrip(t *testing.T) {
	in := ident.NewInterner()
	sym := in.Intern("envelope")
	name, ok := in.Resolve(sym)
	require.True(t, ok)
	assert.Equal(t, "envelope", name)
}

func TestResolveUnknownSymbol(t *testing.T) {
	in := ident.NewInterner()
	_, ok := in.Resolve(ident.Symbol(42))
	assert.False(t, ok)
}

func TestMustResolvePanicsOnForeignSymbol(t *testing.T) {
	in := ident.NewInterner()
	assert.Panics(t, func() { in.MustResolve(ident.Symbol(7)) })
}
