package typecheck

import (
	"github.com/lambdalisten/lambdalisten/internal/ast"
	"github.com/lambdalisten/lambdalisten/internal/modaltypes"
)

// Checker threads an immutable Globals map through a derivation. It has
// no other state and no side effects: every call either returns a
// result or a TypeError, never both, never neither.
type Checker struct {
	Globals modaltypes.Globals
}

// New builds a Checker over the given read-only globals map.
func New(globals modaltypes.Globals) *Checker {
	return &Checker{Globals: globals}
}

// Check is the Γ ⊢ e ⇐ T judgement. Introduction forms and constructs
// that need an expected type are handled directly; everything else
// falls through to Synthesize followed by a subtype check.
func (c *Checker) Check(ctx *modaltypes.Ctx, e ast.Expr, ty modaltypes.Type) TypeError {
	switch n := e.(type) {
	case *ast.Val:
		if n.Value.Kind == ast.ValUnit {
			if _, ok := ty.(modaltypes.UnitType); ok {
				return nil
			}
		}
	case *ast.Lam:
		if ft, ok := ty.(modaltypes.FunctionType); ok {
			newCtx := ctx.WithVar(n.Param, ft.Param)
			return c.Check(newCtx, n.Body, ft.Result)
		}
	case *ast.Lob:
		recTy := modaltypes.BoxType{Elem: modaltypes.LaterType{Clock: n.Clock, Elem: ty}}
		newCtx := ctx.Stable().WithVar(n.Var, recTy)
		return c.Check(newCtx, n.Body, ty)
	case *ast.Gen:
		if st, ok := ty.(modaltypes.StreamType); ok {
			if err := c.Check(ctx, n.Head, st.Elem); err != nil {
				return err
			}
			return c.Check(ctx, n.Tail, modaltypes.LaterType{Clock: st.Clock, Elem: ty})
		}
	case *ast.LetIn:
		if n.Type == nil {
			synth, err := c.Synthesize(ctx, n.Value)
			if err != nil {
				return &LetSynthFailure{baseErr{n.Range()}, n.Name, n.Value, err}
			}
			return c.Check(ctx.WithVar(n.Name, synth), n.Body, ty)
		}
		if err := c.Check(ctx, n.Value, n.Type); err != nil {
			return &LetCheckFailure{baseErr{n.Range()}, n.Name, n.Type, n.Value, err}
		}
		return c.Check(ctx.WithVar(n.Name, n.Type), n.Body, ty)
	case *ast.Pair:
		if pt, ok := ty.(modaltypes.ProductType); ok {
			if err := c.Check(ctx, n.Fst, pt.Fst); err != nil {
				return err
			}
			return c.Check(ctx, n.Snd, pt.Snd)
		}
	case *ast.UnPair:
		synth, err := c.Synthesize(ctx, n.Scrut)
		if err != nil {
			return err
		}
		pt, ok := synth.(modaltypes.ProductType)
		if !ok {
			return &UnPairingNonProduct{baseErr{n.Range()}, n.Scrut, synth}
		}
		newCtx := ctx.WithVar(n.Fst, pt.Fst).WithVar(n.Snd, pt.Snd)
		return c.Check(newCtx, n.Body, ty)
	case *ast.InL:
		if st, ok := ty.(modaltypes.SumType); ok {
			return c.Check(ctx, n.Expr, st.Left)
		}
	case *ast.InR:
		if st, ok := ty.(modaltypes.SumType); ok {
			return c.Check(ctx, n.Expr, st.Right)
		}
	case *ast.Case:
		synth, err := c.Synthesize(ctx, n.Scrut)
		if err != nil {
			return err
		}
		st, ok := synth.(modaltypes.SumType)
		if !ok {
			return &CasingNonSum{baseErr{n.Range()}, n.Scrut, synth}
		}
		if err := c.Check(ctx.WithVar(n.LeftName, st.Left), n.LeftBody, ty); err != nil {
			return err
		}
		return c.Check(ctx.WithVar(n.RightName, st.Right), n.RightBody, ty)
	case *ast.Array:
		at, ok := ty.(modaltypes.ArrayType)
		if !ok {
			break
		}
		if int(at.Size) != len(n.Elems) {
			return &MismatchingArraySize{baseErr{n.Range()}, at.Size, len(n.Elems)}
		}
		for _, el := range n.Elems {
			if err := c.Check(ctx, el, at.Elem); err != nil {
				return err
			}
		}
		return nil
	case *ast.Delay:
		if lt, ok := ty.(modaltypes.LaterType); ok {
			return c.Check(ctx.WithTick(lt.Clock), n.Expr, lt.Elem)
		}
	case *ast.Box:
		if bt, ok := ty.(modaltypes.BoxType); ok {
			return c.Check(ctx.Stable(), n.Expr, bt.Elem)
		}
	}

	synth, err := c.Synthesize(ctx, e)
	if err != nil {
		return err
	}
	if Subtype(synth, ty) {
		return nil
	}
	return &MismatchingTypes{baseErr{e.Range()}, e, synth, ty}
}

// Synthesize is the Γ ⊢ e ⇒ T judgement.
func (c *Checker) Synthesize(ctx *modaltypes.Ctx, e ast.Expr) (modaltypes.Type, TypeError) {
	switch n := e.(type) {
	case *ast.Val:
		switch n.Value.Kind {
		case ast.ValUnit:
			return modaltypes.UnitType{}, nil
		case ast.ValSample:
			return modaltypes.SampleType{}, nil
		case ast.ValIndex:
			return modaltypes.IndexType{}, nil
		}
	case *ast.Var:
		if timing, ty, ok := ctx.Lookup(n.Name); ok {
			if len(timing) == 0 || ty.IsStable() {
				return ty, nil
			}
			return nil, &VariableTimingBad{baseErr{n.Range()}, n.Name, timing, ty}
		}
		if ty, ok := c.Globals[n.Name]; ok {
			return ty, nil
		}
		return nil, &VariableNotFound{baseErr{n.Range()}, n.Name}
	case *ast.Annotate:
		if err := c.Check(ctx, n.Expr, n.Type); err != nil {
			return nil, &BadAnnotation{baseErr{n.Range()}, n.Expr, n.Type, err}
		}
		return n.Type, nil
	case *ast.App:
		funTy, err := c.Synthesize(ctx, n.Fun)
		if err != nil {
			return nil, err
		}
		ft, ok := funTy.(modaltypes.FunctionType)
		if !ok {
			return nil, &NonFunctionApplication{baseErr{n.Range()}, n.Fun, funTy}
		}
		if argErr := c.Check(ctx, n.Arg, ft.Param); argErr != nil {
			return nil, &BadArgument{baseErr{n.Range()}, ft.Param, n.Fun, n.Arg, argErr}
		}
		return ft.Result, nil
	case *ast.Adv:
		strippedClock, strippedCtx, ok := ctx.StripTick()
		if !ok {
			return nil, &ForcingWithNoTick{baseErr{n.Range()}, n.Expr}
		}
		inner, err := c.Synthesize(strippedCtx, n.Expr)
		if err != nil {
			return nil, err
		}
		lt, ok := inner.(modaltypes.LaterType)
		if !ok {
			return nil, &ForcingNonThunk{baseErr{n.Range()}, n.Expr, inner}
		}
		if !lt.Clock.Equal(strippedClock) {
			return nil, &ForcingMismatchingClock{baseErr{n.Range()}, n.Expr, strippedClock, lt.Clock, lt.Elem}
		}
		return lt.Elem, nil
	case *ast.LetIn:
		if n.Type == nil {
			synth, err := c.Synthesize(ctx, n.Value)
			if err != nil {
				return nil, &LetSynthFailure{baseErr{n.Range()}, n.Name, n.Value, err}
			}
			return c.Synthesize(ctx.WithVar(n.Name, synth), n.Body)
		}
		if err := c.Check(ctx, n.Value, n.Type); err != nil {
			return nil, &LetCheckFailure{baseErr{n.Range()}, n.Name, n.Type, n.Value, err}
		}
		return c.Synthesize(ctx.WithVar(n.Name, n.Type), n.Body)
	case *ast.UnPair:
		synth, err := c.Synthesize(ctx, n.Scrut)
		if err != nil {
			return nil, err
		}
		pt, ok := synth.(modaltypes.ProductType)
		if !ok {
			return nil, &UnPairingNonProduct{baseErr{n.Range()}, n.Scrut, synth}
		}
		newCtx := ctx.WithVar(n.Fst, pt.Fst).WithVar(n.Snd, pt.Snd)
		return c.Synthesize(newCtx, n.Body)
	case *ast.Case:
		synth, err := c.Synthesize(ctx, n.Scrut)
		if err != nil {
			return nil, err
		}
		st, ok := synth.(modaltypes.SumType)
		if !ok {
			return nil, &CasingNonSum{baseErr{n.Range()}, n.Scrut, synth}
		}
		leftTy, err := c.Synthesize(ctx.WithVar(n.LeftName, st.Left), n.LeftBody)
		if err != nil {
			return nil, err
		}
		rightTy, err := c.Synthesize(ctx.WithVar(n.RightName, st.Right), n.RightBody)
		if err != nil {
			return nil, err
		}
		return Meet(leftTy, rightTy)
	case *ast.UnGen:
		synth, err := c.Synthesize(ctx, n.Expr)
		if err != nil {
			return nil, err
		}
		st, ok := synth.(modaltypes.StreamType)
		if !ok {
			return nil, &UnGenningNonStream{baseErr{n.Range()}, n.Expr, synth}
		}
		return modaltypes.ProductType{
			Fst: st.Elem,
			Snd: modaltypes.LaterType{Clock: st.Clock, Elem: st},
		}, nil
	case *ast.Unbox:
		synth, err := c.Synthesize(ctx, n.Expr)
		if err != nil {
			return nil, err
		}
		bt, ok := synth.(modaltypes.BoxType)
		if !ok {
			return nil, &UnboxingNonBox{baseErr{n.Range()}, n.Expr, synth}
		}
		return bt.Elem, nil
	}

	// ClockApp, TypeApp, ClockLam, ExIntro, ExElim, and Binop all land
	// here: the polymorphism forms are reserved for elaboration and have
	// no judgement rules in this revision, and Binop has no synthesis
	// rule of its own. See SPEC_FULL.md's open-question decisions for the
	// polymorphism forms.
	return nil, &SynthesisUnsupported{baseErr{e.Range()}, e}
}
