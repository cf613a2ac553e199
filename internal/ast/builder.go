package ast

import "github.com/lambdalisten/lambdalisten/internal/ident"
import "github.com/lambdalisten/lambdalisten/internal/modaltypes"

// Builder constructors. The arena is the only way outside this package
// to produce an exprBase, since the CST-to-AST translation (which lives
// outside this front end) and this front end's own tests/fixture
// scenarios both need to build trees without reaching into the
// unexported fields directly.
// NoSpan is handed to nodes built by callers that have no real source
// text behind them (builtin scenarios, lowering-stage synthetic trees).
var NoSpan = Span{}

func NewVar(a *Arena, sp Span, name ident.Symbol) Expr {
	return a.Alloc(&Var{exprBase{sp}, name})
}

func NewVal(a *Arena, sp Span, v Value) Expr {
	return a.Alloc(&Val{exprBase{sp}, v})
}

func NewUnit(a *Arena, sp Span) Expr { return NewVal(a, sp, Value{Kind: ValUnit}) }

func NewSample(a *Arena, sp Span, f float32) Expr {
	return NewVal(a, sp, Value{Kind: ValSample, Sample: f})
}

func NewIndex(a *Arena, sp Span, i uint64) Expr {
	return NewVal(a, sp, Value{Kind: ValIndex, Index: i})
}

func NewAnnotate(a *Arena, sp Span, e Expr, t modaltypes.Type) Expr {
	return a.Alloc(&Annotate{exprBase{sp}, e, t})
}

func NewLam(a *Arena, sp Span, param ident.Symbol, body Expr) Expr {
	return a.Alloc(&Lam{exprBase{sp}, param, body})
}

func NewApp(a *Arena, sp Span, fun, arg Expr) Expr {
	return a.Alloc(&App{exprBase{sp}, fun, arg})
}

func NewLetIn(a *Arena, sp Span, name ident.Symbol, t modaltypes.Type, value, body Expr) Expr {
	return a.Alloc(&LetIn{exprBase{sp}, name, t, value, body})
}

func NewPair(a *Arena, sp Span, fst, snd Expr) Expr {
	return a.Alloc(&Pair{exprBase{sp}, fst, snd})
}

func NewUnPair(a *Arena, sp Span, fst, snd ident.Symbol, scrut, body Expr) Expr {
	return a.Alloc(&UnPair{exprBase{sp}, fst, snd, scrut, body})
}

func NewInL(a *Arena, sp Span, e Expr) Expr { return a.Alloc(&InL{exprBase{sp}, e}) }
func NewInR(a *Arena, sp Span, e Expr) Expr { return a.Alloc(&InR{exprBase{sp}, e}) }

func NewCase(a *Arena, sp Span, scrut Expr, leftName ident.Symbol, leftBody Expr, rightName ident.Symbol, rightBody Expr) Expr {
	return a.Alloc(&Case{exprBase{sp}, scrut, leftName, leftBody, rightName, rightBody})
}

func NewArray(a *Arena, sp Span, elems []Expr) Expr {
	return a.Alloc(&Array{exprBase{sp}, elems})
}

func NewDelay(a *Arena, sp Span, e Expr) Expr { return a.Alloc(&Delay{exprBase{sp}, e}) }
func NewAdv(a *Arena, sp Span, e Expr) Expr   { return a.Alloc(&Adv{exprBase{sp}, e}) }
func NewBox(a *Arena, sp Span, e Expr) Expr   { return a.Alloc(&Box{exprBase{sp}, e}) }
func NewUnbox(a *Arena, sp Span, e Expr) Expr { return a.Alloc(&Unbox{exprBase{sp}, e}) }

func NewGen(a *Arena, sp Span, head, tail Expr) Expr {
	return a.Alloc(&Gen{exprBase{sp}, head, tail})
}

func NewUnGen(a *Arena, sp Span, e Expr) Expr { return a.Alloc(&UnGen{exprBase{sp}, e}) }

func NewLob(a *Arena, sp Span, clock modaltypes.Clock, x ident.Symbol, body Expr) Expr {
	return a.Alloc(&Lob{exprBase{sp}, clock, x, body})
}

func NewClockApp(a *Arena, sp Span, e Expr, c modaltypes.Clock) Expr {
	return a.Alloc(&ClockApp{exprBase{sp}, e, c})
}

func NewTypeApp(a *Arena, sp Span, e Expr, t modaltypes.Type) Expr {
	return a.Alloc(&TypeApp{exprBase{sp}, e, t})
}

func NewClockLam(a *Arena, sp Span, param ident.Symbol, body Expr) Expr {
	return a.Alloc(&ClockLam{exprBase{sp}, param, body})
}

func NewExIntro(a *Arena, sp Span, c modaltypes.Clock, e Expr) Expr {
	return a.Alloc(&ExIntro{exprBase{sp}, c, e})
}

func NewExElim(a *Arena, sp Span, clockVar, valueVar ident.Symbol, scrut, body Expr) Expr {
	return a.Alloc(&ExElim{exprBase{sp}, clockVar, valueVar, scrut, body})
}

func NewBinop(a *Arena, sp Span, op Binop, left, right Expr) Expr {
	return a.Alloc(&BinopExpr{exprBase{sp}, op, left, right})
}
