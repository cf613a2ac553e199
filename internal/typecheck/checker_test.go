package typecheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdalisten/lambdalisten/internal/ast"
	"github.com/lambdalisten/lambdalisten/internal/ident"
	"github.com/lambdalisten/lambdalisten/internal/modaltypes"
	"github.com/lambdalisten/lambdalisten/internal/typecheck"
)

// The numbered tests below are the end-to-end scenario battery: small
// programs whose outcome (a type or a specific error) is fixed, driven
// through Synthesize/Check exactly as a caller would.

func newChecker() (*typecheck.Checker, *ast.Arena, *ident.Interner) {
	return typecheck.New(modaltypes.Globals{}), ast.NewArena(), ident.NewInterner()
}

// scenario 1: (\x. x) : index -> unit  ==> MismatchingTypes
func TestScenario1_IdentityAnnotatedIndexToUnit(t *testing.T) {
	c, a, in := newChecker()
	x := in.Intern("x")
	body := ast.NewLam(a, ast.NoSpan, x, ast.NewVar(a, ast.NoSpan, x))
	ty := modaltypes.FunctionType{Param: modaltypes.IndexType{}, Result: modaltypes.UnitType{}}
	e := ast.NewAnnotate(a, ast.NoSpan, body, ty)

	_, err := c.Synthesize(modaltypes.Empty, e)
	require.Error(t, err)
	var bad *typecheck.BadAnnotation
	require.ErrorAs(t, err, &bad)
	var mismatch *typecheck.MismatchingTypes
	require.ErrorAs(t, bad.Cause, &mismatch)
}

// scenario 2: (\x. x) : sample -> sample  ==> checks; synth sample->sample
func TestScenario2_IdentitySampleToSample(t *testing.T) {
	c, a, in := newChecker()
	x := in.Intern("x")
	body := ast.NewLam(a, ast.NoSpan, x, ast.NewVar(a, ast.NoSpan, x))
	ty := modaltypes.FunctionType{Param: modaltypes.SampleType{}, Result: modaltypes.SampleType{}}
	e := ast.NewAnnotate(a, ast.NoSpan, body, ty)

	got, err := c.Synthesize(modaltypes.Empty, e)
	require.NoError(t, err)
	assert.True(t, got.Equal(ty))
}

// scenario 3: (\x. y) : sample -> sample  ==> VariableNotFound(y)
func TestScenario3_FreeVariable(t *testing.T) {
	c, a, in := newChecker()
	x, y := in.Intern("x"), in.Intern("y")
	body := ast.NewLam(a, ast.NoSpan, x, ast.NewVar(a, ast.NoSpan, y))
	ty := modaltypes.FunctionType{Param: modaltypes.SampleType{}, Result: modaltypes.SampleType{}}
	e := ast.NewAnnotate(a, ast.NoSpan, body, ty)

	_, err := c.Synthesize(modaltypes.Empty, e)
	require.Error(t, err)
	var bad *typecheck.BadAnnotation
	require.ErrorAs(t, err, &bad)
	var notFound *typecheck.VariableNotFound
	require.ErrorAs(t, bad.Cause, &notFound)
	assert.Equal(t, y, notFound.Var)
}

// scenario 4: ((\x. x) : sample -> sample) 3  ==> BadArgument (3 : index)
func TestScenario4_BadArgument(t *testing.T) {
	c, a, in := newChecker()
	x := in.Intern("x")
	idFn := ast.NewAnnotate(a, ast.NoSpan,
		ast.NewLam(a, ast.NoSpan, x, ast.NewVar(a, ast.NoSpan, x)),
		modaltypes.FunctionType{Param: modaltypes.SampleType{}, Result: modaltypes.SampleType{}})
	app := ast.NewApp(a, ast.NoSpan, idFn, ast.NewIndex(a, ast.NoSpan, 3))

	_, err := c.Synthesize(modaltypes.Empty, app)
	require.Error(t, err)
	var bad *typecheck.BadArgument
	require.ErrorAs(t, err, &bad)
}

// scenario 5: ((\x. x) : sample -> sample) 1.5  ==> synth sample
func TestScenario5_GoodArgument(t *testing.T) {
	c, a, in := newChecker()
	x := in.Intern("x")
	idFn := ast.NewAnnotate(a, ast.NoSpan,
		ast.NewLam(a, ast.NoSpan, x, ast.NewVar(a, ast.NoSpan, x)),
		modaltypes.FunctionType{Param: modaltypes.SampleType{}, Result: modaltypes.SampleType{}})
	app := ast.NewApp(a, ast.NoSpan, idFn, ast.NewSample(a, ast.NoSpan, 1.5))

	got, err := c.Synthesize(modaltypes.Empty, app)
	require.NoError(t, err)
	assert.True(t, got.Equal(modaltypes.SampleType{}))
}

// scenario 6: 1.5 2  ==> NonFunctionApplication
func TestScenario6_NonFunctionApplication(t *testing.T) {
	c, a, _ := newChecker()
	app := ast.NewApp(a, ast.NoSpan, ast.NewSample(a, ast.NoSpan, 1.5), ast.NewIndex(a, ast.NoSpan, 2))

	_, err := c.Synthesize(modaltypes.Empty, app)
	require.Error(t, err)
	var bad *typecheck.NonFunctionApplication
	require.ErrorAs(t, err, &bad)
}

// scenario 7: &_c s. \x. x :: !s , at sample -> Stream(c, sample)
func TestScenario7_LobGenAdvDelayBox(t *testing.T) {
	c, a, in := newChecker()
	clockVar := in.Intern("c")
	clk := modaltypes.NewClock(1, 1, clockVar)
	s, x := in.Intern("s"), in.Intern("x")

	streamTy := modaltypes.StreamType{Clock: clk, Elem: modaltypes.SampleType{}}
	fnTy := modaltypes.FunctionType{Param: modaltypes.SampleType{}, Result: streamTy}

	// !s (force the boxed, delayed self-reference) applied to x as the
	// delayed tail: s is bound at box (later (sample -> stream)), so the
	// force is adv(unbox(s)), not adv(s).
	advS := ast.NewAdv(a, ast.NoSpan, ast.NewUnbox(a, ast.NoSpan, ast.NewVar(a, ast.NoSpan, s)))
	tailApp := ast.NewApp(a, ast.NoSpan, advS, ast.NewVar(a, ast.NoSpan, x))
	gen := ast.NewGen(a, ast.NoSpan, ast.NewVar(a, ast.NoSpan, x), ast.NewDelay(a, ast.NoSpan, tailApp))
	lam := ast.NewLam(a, ast.NoSpan, x, gen)
	lob := ast.NewLob(a, ast.NoSpan, clk, s, lam)

	err := c.Check(modaltypes.Empty, lob, fnTy)
	require.NoError(t, err)
}

func TestSynthReflexiveCheck(t *testing.T) {
	// property 1: synthesis is a right inverse of check.
	c, a, in := newChecker()
	x := in.Intern("x")
	e := ast.NewAnnotate(a, ast.NoSpan,
		ast.NewLam(a, ast.NoSpan, x, ast.NewVar(a, ast.NoSpan, x)),
		modaltypes.FunctionType{Param: modaltypes.IndexType{}, Result: modaltypes.IndexType{}})

	ty, err := c.Synthesize(modaltypes.Empty, e)
	require.NoError(t, err)
	assert.Nil(t, c.Check(modaltypes.Empty, e, ty))
}

func TestTickDiscipline(t *testing.T) {
	// property 7: Adv fails with no tick; succeeds when clocks match.
	c, a, in := newChecker()
	x := in.Intern("x")
	e := ast.NewAdv(a, ast.NoSpan, ast.NewVar(a, ast.NoSpan, x))

	_, err := c.Synthesize(modaltypes.Empty, e)
	var noTick *typecheck.ForcingWithNoTick
	require.ErrorAs(t, err, &noTick)

	clockVar := in.Intern("c")
	clk := modaltypes.NewClock(1, 1, clockVar)
	ctx := modaltypes.Empty.WithVar(x, modaltypes.LaterType{Clock: clk, Elem: modaltypes.SampleType{}}).WithTick(clk)
	ty, err2 := c.Synthesize(ctx, e)
	require.NoError(t, err2)
	assert.True(t, ty.Equal(modaltypes.SampleType{}))
}

func TestVariableTimingBad(t *testing.T) {
	c, a, in := newChecker()
	x := in.Intern("x")
	clockVar := in.Intern("c")
	clk := modaltypes.NewClock(1, 1, clockVar)
	// x has a non-stable (function) type, so it may not cross the tick.
	fnTy := modaltypes.FunctionType{Param: modaltypes.SampleType{}, Result: modaltypes.SampleType{}}
	ctx := modaltypes.Empty.WithVar(x, fnTy).WithTick(clk)

	_, err := c.Synthesize(ctx, ast.NewVar(a, ast.NoSpan, x))
	var bad *typecheck.VariableTimingBad
	require.ErrorAs(t, err, &bad)
}

func TestStableVariableCrossesTick(t *testing.T) {
	// A Box (always stable) may be used across a tick without error.
	c, a, in := newChecker()
	x := in.Intern("x")
	clockVar := in.Intern("c")
	clk := modaltypes.NewClock(1, 1, clockVar)
	boxTy := modaltypes.BoxType{Elem: modaltypes.SampleType{}}
	ctx := modaltypes.Empty.WithVar(x, boxTy).WithTick(clk)

	ty, err := c.Synthesize(ctx, ast.NewVar(a, ast.NoSpan, x))
	require.NoError(t, err)
	assert.True(t, ty.Equal(boxTy))
}

func TestUnboxNeedsNoTick(t *testing.T) {
	// A box may be unpacked under any context, tick or no tick.
	c, a, in := newChecker()
	x := in.Intern("x")
	boxTy := modaltypes.BoxType{Elem: modaltypes.SampleType{}}
	ctx := modaltypes.Empty.WithVar(x, boxTy)

	ty, err := c.Synthesize(ctx, ast.NewUnbox(a, ast.NoSpan, ast.NewVar(a, ast.NoSpan, x)))
	require.NoError(t, err)
	assert.True(t, ty.Equal(modaltypes.SampleType{}))
}

func TestUnGenSynthesizesPairOfLater(t *testing.T) {
	c, a, in := newChecker()
	clockVar := in.Intern("c")
	clk := modaltypes.NewClock(1, 1, clockVar)
	s := in.Intern("s")
	streamTy := modaltypes.StreamType{Clock: clk, Elem: modaltypes.SampleType{}}
	ctx := modaltypes.Empty.WithVar(s, streamTy)

	ty, err := c.Synthesize(ctx, ast.NewUnGen(a, ast.NoSpan, ast.NewVar(a, ast.NoSpan, s)))
	require.NoError(t, err)
	pt, ok := ty.(modaltypes.ProductType)
	require.True(t, ok)
	assert.True(t, pt.Fst.Equal(modaltypes.SampleType{}))
	lt, ok := pt.Snd.(modaltypes.LaterType)
	require.True(t, ok)
	assert.True(t, lt.Elem.Equal(streamTy))
}

func TestPolymorphismFormsRejected(t *testing.T) {
	a := ast.NewArena()
	in := ident.NewInterner()
	c := typecheck.New(modaltypes.Globals{})
	clockVar := in.Intern("c")
	clk := modaltypes.NewClock(1, 1, clockVar)
	e := ast.NewClockApp(a, ast.NoSpan, ast.NewUnit(a, ast.NoSpan), clk)

	_, err := c.Synthesize(modaltypes.Empty, e)
	var unsupported *typecheck.SynthesisUnsupported
	require.ErrorAs(t, err, &unsupported)
}
