package core1_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdalisten/lambdalisten/internal/ast"
	"github.com/lambdalisten/lambdalisten/internal/core1"
	"github.com/lambdalisten/lambdalisten/internal/ident"
	"github.com/lambdalisten/lambdalisten/internal/modaltypes"
)

func TestLowerIdentityLam(t *testing.T) {
	a := ast.NewArena()
	in := ident.NewInterner()
	x := in.Intern("x")
	e := ast.NewLam(a, ast.NoSpan, x, ast.NewVar(a, ast.NoSpan, x))

	got, err := core1.Lower(e)
	require.NoError(t, err)
	lam, ok := got.(*core1.Lam)
	require.True(t, ok)
	assert.Empty(t, lam.Used)
	v, ok := lam.Body.(core1.Var)
	require.True(t, ok)
	assert.Equal(t, core1.Index(0), v.Index)
}

func TestLowerFreeVariableBecomesGlob(t *testing.T) {
	a := ast.NewArena()
	in := ident.NewInterner()
	x, y := in.Intern("x"), in.Intern("y")
	e := ast.NewLam(a, ast.NoSpan, x, ast.NewVar(a, ast.NoSpan, y))

	got, err := core1.Lower(e)
	require.NoError(t, err)
	lam := got.(*core1.Lam)
	g, ok := lam.Body.(core1.Glob)
	require.True(t, ok)
	assert.Equal(t, y, g.Name)
	assert.Empty(t, lam.Used, "globals are not captured as de-Bruijn free variables")
}

func TestLowerNestedLamCapturesOuterParam(t *testing.T) {
	// \x. \y. x  -- inner Lam's body (Var 1, outer x) has used={0} relative
	// to the scope surrounding the inner Lam.
	a := ast.NewArena()
	in := ident.NewInterner()
	x, y := in.Intern("x"), in.Intern("y")
	inner := ast.NewLam(a, ast.NoSpan, y, ast.NewVar(a, ast.NoSpan, x))
	outer := ast.NewLam(a, ast.NoSpan, x, inner)

	got, err := core1.Lower(outer)
	require.NoError(t, err)
	outerLam := got.(*core1.Lam)
	assert.Empty(t, outerLam.Used)
	innerLam := outerLam.Body.(*core1.Lam)
	assert.Equal(t, []core1.Index{0}, innerLam.Used)
	v, ok := innerLam.Body.(core1.Var)
	require.True(t, ok)
	assert.Equal(t, core1.Index(1), v.Index)
}

func TestLowerLetInShiftsBody(t *testing.T) {
	a := ast.NewArena()
	in := ident.NewInterner()
	n := in.Intern("n")
	e := ast.NewLetIn(a, ast.NoSpan, n, nil, ast.NewIndex(a, ast.NoSpan, 1), ast.NewVar(a, ast.NoSpan, n))

	got, err := core1.Lower(e)
	require.NoError(t, err)
	let, ok := got.(core1.LetIn)
	require.True(t, ok)
	_, isVal := let.Value.(core1.Val)
	assert.True(t, isVal)
	v, ok := let.Body.(core1.Var)
	require.True(t, ok)
	assert.Equal(t, core1.Index(0), v.Index)
}

func TestLowerUnPairBindsSndAtIndexZero(t *testing.T) {
	a := ast.NewArena()
	in := ident.NewInterner()
	p, x1, x2 := in.Intern("p"), in.Intern("x1"), in.Intern("x2")
	scrut := ast.NewVar(a, ast.NoSpan, p)
	body := ast.NewPair(a, ast.NoSpan, ast.NewVar(a, ast.NoSpan, x2), ast.NewVar(a, ast.NoSpan, x1))
	e := ast.NewUnPair(a, ast.NoSpan, x1, x2, scrut, body)

	got, err := core1.Lower(e)
	require.NoError(t, err)
	up, ok := got.(core1.UnPair)
	require.True(t, ok)
	con, ok := up.Body.(core1.Con)
	require.True(t, ok)
	require.Equal(t, core1.ConPair, con.Kind)
	first := con.Args[0].(core1.Var)
	second := con.Args[1].(core1.Var)
	assert.Equal(t, core1.Index(0), first.Index) // x2, bound last
	assert.Equal(t, core1.Index(1), second.Index) // x1
}

func TestLowerLobSelfReference(t *testing.T) {
	a := ast.NewArena()
	in := ident.NewInterner()
	clockVar := in.Intern("c")
	s, x := in.Intern("s"), in.Intern("x")

	advS := ast.NewAdv(a, ast.NoSpan, ast.NewUnbox(a, ast.NoSpan, ast.NewVar(a, ast.NoSpan, s)))
	tailApp := ast.NewApp(a, ast.NoSpan, advS, ast.NewVar(a, ast.NoSpan, x))
	gen := ast.NewGen(a, ast.NoSpan, ast.NewVar(a, ast.NoSpan, x), ast.NewDelay(a, ast.NoSpan, tailApp))
	lam := ast.NewLam(a, ast.NoSpan, x, gen)
	clk := modaltypes.NewClock(1, 1, clockVar)
	lob := ast.NewLob(a, ast.NoSpan, clk, s, lam)

	got, err := core1.Lower(lob)
	require.NoError(t, err)
	lobIR, ok := got.(*core1.Lob)
	require.True(t, ok)
	assert.Empty(t, lobIR.Used, "self-referential Lob with no outer free variables")

	innerLam, ok := lobIR.Body.(*core1.Lam)
	require.True(t, ok)
	genCon, ok := innerLam.Body.(core1.Con)
	require.True(t, ok)
	assert.Equal(t, core1.ConStream, genCon.Kind)
	delay, ok := genCon.Args[1].(*core1.Delay)
	require.True(t, ok)
	app, ok := delay.Body.(core1.App)
	require.True(t, ok)
	adv, ok := app.Fun.(core1.Adv)
	require.True(t, ok)
	unbox, ok := adv.Expr.(core1.Unbox)
	require.True(t, ok)
	selfRef, ok := unbox.Expr.(core1.Var)
	require.True(t, ok)
	// s is bound by Lob two binders up from inside the Delay: Lob(s) ->
	// Lam(x) -> Delay (no new slot) -> Var(s) is index 1.
	assert.Equal(t, core1.Index(1), selfRef.Index)
}

func TestLowerAnnotateAndUnGenPassThrough(t *testing.T) {
	a := ast.NewArena()
	in := ident.NewInterner()
	s := in.Intern("s")

	streamTy := modaltypes.StreamType{Clock: modaltypes.NewClock(1, 1, in.Intern("c")), Elem: modaltypes.SampleType{}}
	annotated := ast.NewAnnotate(a, ast.NoSpan, ast.NewVar(a, ast.NoSpan, s), streamTy)
	unGen := ast.NewUnGen(a, ast.NoSpan, annotated)
	got, err := core1.Lower(unGen)
	require.NoError(t, err)
	v, ok := got.(core1.Glob)
	require.True(t, ok)
	assert.Equal(t, s, v.Name)
}

func TestLowerRejectsReservedForms(t *testing.T) {
	a := ast.NewArena()
	in := ident.NewInterner()
	clockVar := in.Intern("c")
	e := ast.NewClockApp(a, ast.NoSpan, ast.NewUnit(a, ast.NoSpan), modaltypes.NewClock(1, 1, clockVar))

	_, err := core1.Lower(e)
	require.Error(t, err)
	var lowerErr *core1.LowerError
	require.ErrorAs(t, err, &lowerErr)
}
