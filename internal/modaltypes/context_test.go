package modaltypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdalisten/lambdalisten/internal/ident"
	"github.com/lambdalisten/lambdalisten/internal/modaltypes"
)

func TestLookupReturnsTimingInnermostFirst(t *testing.T) {
	in := ident.NewInterner()
	x := in.Intern("x")
	c1 := modaltypes.NewClock(1, 1, in.Intern("c1"))
	c2 := modaltypes.NewClock(1, 2, in.Intern("c2"))

	ctx := modaltypes.Empty.
		WithVar(x, modaltypes.SampleType{}).
		WithTick(c1).
		WithTick(c2)

	timing, ty, ok := ctx.Lookup(x)
	require.True(t, ok)
	assert.True(t, ty.Equal(modaltypes.SampleType{}))
	require.Len(t, timing, 2)
	assert.True(t, timing[0].Equal(c2), "innermost tick first")
	assert.True(t, timing[1].Equal(c1))
}

func TestLookupStopsAtNearestBinding(t *testing.T) {
	in := ident.NewInterner()
	x := in.Intern("x")
	ctx := modaltypes.Empty.
		WithVar(x, modaltypes.SampleType{}).
		WithVar(x, modaltypes.IndexType{})

	timing, ty, ok := ctx.Lookup(x)
	require.True(t, ok)
	assert.Empty(t, timing)
	assert.True(t, ty.Equal(modaltypes.IndexType{}), "shadowing binding wins")
}

func TestLookupUnbound(t *testing.T) {
	in := ident.NewInterner()
	_, _, ok := modaltypes.Empty.Lookup(in.Intern("nope"))
	assert.False(t, ok)
}

func TestStableDropsTicksAndNonStableBindings(t *testing.T) {
	in := ident.NewInterner()
	x, f := in.Intern("x"), in.Intern("f")
	clk := modaltypes.NewClock(1, 1, in.Intern("c"))
	fnTy := modaltypes.FunctionType{Param: modaltypes.SampleType{}, Result: modaltypes.SampleType{}}

	ctx := modaltypes.Empty.
		WithVar(x, modaltypes.SampleType{}).
		WithTick(clk).
		WithVar(f, fnTy)

	stable := ctx.Stable()

	_, _, ok := stable.Lookup(f)
	assert.False(t, ok, "function-typed binding is not stable")

	timing, ty, ok := stable.Lookup(x)
	require.True(t, ok)
	assert.Empty(t, timing, "ticks are gone from the stable projection")
	assert.True(t, ty.Equal(modaltypes.SampleType{}))
}

func TestStablePreservesBindingOrder(t *testing.T) {
	in := ident.NewInterner()
	x := in.Intern("x")
	ctx := modaltypes.Empty.
		WithVar(x, modaltypes.SampleType{}).
		WithVar(x, modaltypes.IndexType{})

	_, ty, ok := ctx.Stable().Lookup(x)
	require.True(t, ok)
	assert.True(t, ty.Equal(modaltypes.IndexType{}), "inner binding still shadows after strengthening")
}

func TestStripTickPeelsBindingsAboveTheTick(t *testing.T) {
	in := ident.NewInterner()
	x, y := in.Intern("x"), in.Intern("y")
	clk := modaltypes.NewClock(1, 1, in.Intern("c"))

	ctx := modaltypes.Empty.
		WithVar(x, modaltypes.SampleType{}).
		WithTick(clk).
		WithVar(y, modaltypes.IndexType{})

	got, rest, ok := ctx.StripTick()
	require.True(t, ok)
	assert.True(t, got.Equal(clk))

	_, _, yOk := rest.Lookup(y)
	assert.False(t, yOk, "bindings above the tick are stripped with it")
	_, _, xOk := rest.Lookup(x)
	assert.True(t, xOk, "bindings below the tick survive")
}

func TestStripTickEmptyContext(t *testing.T) {
	_, _, ok := modaltypes.Empty.StripTick()
	assert.False(t, ok)
}

func TestStripTickInnermostWins(t *testing.T) {
	in := ident.NewInterner()
	c1 := modaltypes.NewClock(1, 1, in.Intern("c1"))
	c2 := modaltypes.NewClock(1, 2, in.Intern("c2"))
	ctx := modaltypes.Empty.WithTick(c1).WithTick(c2)

	got, rest, ok := ctx.StripTick()
	require.True(t, ok)
	assert.True(t, got.Equal(c2))

	second, _, ok2 := rest.StripTick()
	require.True(t, ok2)
	assert.True(t, second.Equal(c1))
}
