package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdalisten/lambdalisten/internal/builtins"
	"github.com/lambdalisten/lambdalisten/internal/ident"
	"github.com/lambdalisten/lambdalisten/internal/modaltypes"
)

func TestDefaultArithmetic(t *testing.T) {
	in := ident.NewInterner()
	g := builtins.Default(in, builtins.DefaultBaseClock(in))

	sample := modaltypes.SampleType{}
	want := modaltypes.FunctionType{
		Param:  sample,
		Result: modaltypes.FunctionType{Param: sample, Result: sample},
	}
	for _, name := range []string{"add", "sub", "mul", "div"} {
		ty, ok := g[in.Intern(name)]
		require.True(t, ok, "missing global %q", name)
		assert.Equal(t, want, ty)
	}
}

func TestDefaultIndexArithmetic(t *testing.T) {
	in := ident.NewInterner()
	g := builtins.Default(in, builtins.DefaultBaseClock(in))

	index := modaltypes.IndexType{}
	want := modaltypes.FunctionType{
		Param:  index,
		Result: modaltypes.FunctionType{Param: index, Result: index},
	}
	for _, name := range []string{"addIndex", "subIndex", "mulIndex"} {
		ty, ok := g[in.Intern(name)]
		require.True(t, ok, "missing global %q", name)
		assert.Equal(t, want, ty)
	}
}

func TestDefaultTranscendental(t *testing.T) {
	in := ident.NewInterner()
	g := builtins.Default(in, builtins.DefaultBaseClock(in))

	sample := modaltypes.SampleType{}
	piTy, ok := g[in.Intern("pi")]
	require.True(t, ok)
	assert.Equal(t, sample, piTy)

	unary := modaltypes.FunctionType{Param: sample, Result: sample}
	for _, name := range []string{"sin", "cos", "sqrtSample"} {
		ty, ok := g[in.Intern(name)]
		require.True(t, ok, "missing global %q", name)
		assert.Equal(t, unary, ty)
	}
}

func TestDefaultSampleIO(t *testing.T) {
	in := ident.NewInterner()
	g := builtins.Default(in, builtins.DefaultBaseClock(in))

	unit := modaltypes.UnitType{}
	sample := modaltypes.SampleType{}

	readTy, ok := g[in.Intern("readSample")]
	require.True(t, ok)
	assert.Equal(t, modaltypes.FunctionType{Param: unit, Result: sample}, readTy)

	writeTy, ok := g[in.Intern("writeSample")]
	require.True(t, ok)
	assert.Equal(t, modaltypes.FunctionType{Param: sample, Result: unit}, writeTy)
}

func TestDefaultStreamPrimitive(t *testing.T) {
	in := ident.NewInterner()
	clock := builtins.DefaultBaseClock(in)
	g := builtins.Default(in, clock)

	silenceTy, ok := g[in.Intern("silence")]
	require.True(t, ok)
	assert.Equal(t, modaltypes.StreamType{Clock: clock, Elem: modaltypes.SampleType{}}, silenceTy)
}

func TestDefaultBaseClockNamesBase(t *testing.T) {
	in := ident.NewInterner()
	clock := builtins.DefaultBaseClock(in)
	assert.Equal(t, in.Intern("base"), clock.Var)
}
