// Package ast defines the surface abstract syntax tree for Lambda-Listen.
//
// Nodes are arena-owned: child references borrow into the same Arena for
// the lifetime of a compilation, and are never copied wholesale. Every node
// carries a source Span; elaboration (internal/core1) re-expresses the tree
// entirely in a different node kind rather than reusing Expr with an erased
// range, so there is no separate "unit range" instantiation to model here.
package ast

import (
	"fmt"
	"strings"

	"github.com/lambdalisten/lambdalisten/internal/ident"
	"github.com/lambdalisten/lambdalisten/internal/modaltypes"
)

// Pos is a single point in source text.
type Pos struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string { return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column) }

// Span is a half-open range in source text.
type Span struct {
	Start Pos
	End   Pos
}

// Value is the payload of a Val literal.
type Value struct {
	Kind   ValueKind
	Sample float32
	Index  uint64
}

type ValueKind int

const (
	ValUnit ValueKind = iota
	ValSample
	ValIndex
)

func (v Value) String() string {
	switch v.Kind {
	case ValUnit:
		return "()"
	case ValSample:
		return fmt.Sprintf("%g", v.Sample)
	case ValIndex:
		return fmt.Sprintf("%d", v.Index)
	default:
		return "<bad value>"
	}
}

// Binop enumerates the operators accepted by Binop expressions.
type Binop int

const (
	FMul Binop = iota
	FDiv
	FAdd
	FSub
	FGt
	FGe
	FLt
	FLe
	FEq
	FNe
	Shl
	Shr
	And
	Xor
	Or
	IMul
	IDiv
	IAdd
	ISub
	IGt
	IGe
	ILt
	ILe
	IEq
	INe
)

var binopNames = map[Binop]string{
	FMul: "*.", FDiv: "/.", FAdd: "+.", FSub: "-.",
	FGt: ">.", FGe: ">=.", FLt: "<.", FLe: "<=.", FEq: "==.", FNe: "!=.",
	Shl: "<<", Shr: ">>", And: "&", Xor: "^", Or: "|",
	IMul: "*", IDiv: "/", IAdd: "+", ISub: "-",
	IGt: ">", IGe: ">=", ILt: "<", ILe: "<=", IEq: "==", INe: "!=",
}

func (b Binop) String() string {
	if s, ok := binopNames[b]; ok {
		return s
	}
	return fmt.Sprintf("Binop(%d)", int(b))
}

// IsCmp reports whether b is one of the comparison operators.
func (b Binop) IsCmp() bool {
	switch b {
	case FGt, FGe, FLt, FLe, FEq, FNe, IGt, IGe, ILt, ILe, IEq, INe:
		return true
	default:
		return false
	}
}

// Expr is the base interface implemented by every AST node.
type Expr interface {
	Range() Span
	String() string
	exprNode()
}

// Arena owns every Expr allocated during a single compilation. Nodes never
// outlive the Arena that allocated them, and the Arena itself is append-only
// for the lifetime of the parse: no node is ever freed or mutated once
// allocated, so child references remain valid borrows throughout checking
// and lowering.
type Arena struct {
	nodes []Expr
}

// NewArena creates an empty Arena.
func NewArena() *Arena { return &Arena{} }

// Alloc stores e in the arena and returns a stable reference to it.
func (a *Arena) Alloc(e Expr) Expr {
	a.nodes = append(a.nodes, e)
	return e
}

// Len reports how many nodes the arena currently owns (mostly useful for
// tests that want to assert no stray allocations happened).
func (a *Arena) Len() int { return len(a.nodes) }

type exprBase struct{ Span Span }

func (e exprBase) Range() Span { return e.Span }
func (exprBase) exprNode()     {}

// Var is a variable reference.
type Var struct {
	exprBase
	Name ident.Symbol
}

// Val is a literal value.
type Val struct {
	exprBase
	Value Value
}

// Annotate ascribes a type to an expression.
type Annotate struct {
	exprBase
	Expr Expr
	Type modaltypes.Type
}

// Lam is a lambda abstraction.
type Lam struct {
	exprBase
	Param ident.Symbol
	Body  Expr
}

// App is function application.
type App struct {
	exprBase
	Fun Expr
	Arg Expr
}

// LetIn is a (possibly annotated) let binding.
type LetIn struct {
	exprBase
	Name  ident.Symbol
	Type  modaltypes.Type // nil if unannotated
	Value Expr
	Body  Expr
}

// Pair builds a product value.
type Pair struct {
	exprBase
	Fst Expr
	Snd Expr
}

// UnPair destructures a product value.
type UnPair struct {
	exprBase
	Fst, Snd ident.Symbol
	Scrut    Expr
	Body     Expr
}

// InL injects into the left of a sum.
type InL struct {
	exprBase
	Expr Expr
}

// InR injects into the right of a sum.
type InR struct {
	exprBase
	Expr Expr
}

// Case eliminates a sum value.
type Case struct {
	exprBase
	Scrut     Expr
	LeftName  ident.Symbol
	LeftBody  Expr
	RightName ident.Symbol
	RightBody Expr
}

// Array builds a fixed-size array literal.
type Array struct {
	exprBase
	Elems []Expr
}

// Delay introduces a tick, producing a ▷ value.
type Delay struct {
	exprBase
	Expr Expr
}

// Adv forces a ▷ value (consumes a tick).
type Adv struct {
	exprBase
	Expr Expr
}

// Box introduces a stable, time-independent value.
type Box struct {
	exprBase
	Expr Expr
}

// Unbox eliminates a box.
type Unbox struct {
	exprBase
	Expr Expr
}

// Gen builds a stream from a head and a delayed tail.
type Gen struct {
	exprBase
	Head Expr
	Tail Expr
}

// UnGen observes a stream's head and delayed tail.
type UnGen struct {
	exprBase
	Expr Expr
}

// Lob is the guarded fixed point.
type Lob struct {
	exprBase
	Clock modaltypes.Clock
	Var   ident.Symbol
	Body  Expr
}

// ClockApp applies an expression to a clock. Reserved: see modaltypes docs;
// synthesize always rejects it with SynthesisUnsupported in this revision.
type ClockApp struct {
	exprBase
	Expr  Expr
	Clock modaltypes.Clock
}

// TypeApp applies an expression to a type. Reserved, see ClockApp.
type TypeApp struct {
	exprBase
	Expr Expr
	Type modaltypes.Type
}

// ClockLam abstracts over a clock variable. Reserved, see ClockApp.
type ClockLam struct {
	exprBase
	Param ident.Symbol
	Body  Expr
}

// ExIntro introduces a clock existential. Reserved, see ClockApp.
type ExIntro struct {
	exprBase
	Clock modaltypes.Clock
	Expr  Expr
}

// ExElim eliminates a clock existential. Reserved, see ClockApp.
type ExElim struct {
	exprBase
	ClockVar, ValueVar ident.Symbol
	Scrut              Expr
	Body               Expr
}

// BinopExpr is a binary primitive operation.
type BinopExpr struct {
	exprBase
	Op          Binop
	Left, Right Expr
}

func (e *Var) String() string      { return fmt.Sprintf("Var(%d)", e.Name) }
func (e *Val) String() string      { return e.Value.String() }
func (e *Annotate) String() string { return fmt.Sprintf("Annotate(%s, %s)", e.Expr, e.Type) }
func (e *Lam) String() string      { return fmt.Sprintf("Lam(%d, %s)", e.Param, e.Body) }
func (e *App) String() string      { return fmt.Sprintf("App(%s, %s)", e.Fun, e.Arg) }
func (e *LetIn) String() string {
	if e.Type != nil {
		return fmt.Sprintf("Let(%d, Some(%s), %s, %s)", e.Name, e.Type, e.Value, e.Body)
	}
	return fmt.Sprintf("Let(%d, None, %s, %s)", e.Name, e.Value, e.Body)
}
func (e *Pair) String() string   { return fmt.Sprintf("Pair(%s, %s)", e.Fst, e.Snd) }
func (e *UnPair) String() string { return fmt.Sprintf("UnPair(%d, %d, %s, %s)", e.Fst, e.Snd, e.Scrut, e.Body) }
func (e *InL) String() string    { return fmt.Sprintf("InL(%s)", e.Expr) }
func (e *InR) String() string    { return fmt.Sprintf("InR(%s)", e.Expr) }
func (e *Case) String() string {
	return fmt.Sprintf("Case(%s, %d, %s, %d, %s)", e.Scrut, e.LeftName, e.LeftBody, e.RightName, e.RightBody)
}
func (e *Array) String() string {
	parts := make([]string, len(e.Elems))
	for i, el := range e.Elems {
		parts[i] = el.String()
	}
	return fmt.Sprintf("Array(%s)", strings.Join(parts, ", "))
}
func (e *Delay) String() string    { return fmt.Sprintf("Delay(%s)", e.Expr) }
func (e *Adv) String() string      { return fmt.Sprintf("Force(%s)", e.Expr) }
func (e *Box) String() string      { return fmt.Sprintf("Box(%s)", e.Expr) }
func (e *Unbox) String() string    { return fmt.Sprintf("Unbox(%s)", e.Expr) }
func (e *Gen) String() string      { return fmt.Sprintf("Gen(%s, %s)", e.Head, e.Tail) }
func (e *UnGen) String() string    { return fmt.Sprintf("UnGen(%s)", e.Expr) }
func (e *Lob) String() string      { return fmt.Sprintf("Lob(%v, %d, %s)", e.Clock, e.Var, e.Body) }
func (e *ClockApp) String() string { return fmt.Sprintf("ClockApp(%s, %v)", e.Expr, e.Clock) }
func (e *TypeApp) String() string  { return fmt.Sprintf("TypeApp(%s, %s)", e.Expr, e.Type) }
func (e *ClockLam) String() string { return fmt.Sprintf("ClockLam(%d, %s)", e.Param, e.Body) }
func (e *ExIntro) String() string  { return fmt.Sprintf("ExIntro(%v, %s)", e.Clock, e.Expr) }
func (e *ExElim) String() string {
	return fmt.Sprintf("ExElim(%d, %d, %s, %s)", e.ClockVar, e.ValueVar, e.Scrut, e.Body)
}
func (e *BinopExpr) String() string { return fmt.Sprintf("Binop(%s, %s, %s)", e.Op, e.Left, e.Right) }

// MapRanges rebuilds e (and every descendant) in arena with each span
// rewritten by f. Elaboration-style passes use it to re-home a tree
// whose spans no longer mean anything (e.g. erasing them to NoSpan once
// checking is done), without reaching into node internals.
func MapRanges(arena *Arena, e Expr, f func(Span) Span) Expr {
	sp := func() Span { return f(e.Range()) }
	switch n := e.(type) {
	case *Var:
		return arena.Alloc(&Var{exprBase{sp()}, n.Name})
	case *Val:
		return arena.Alloc(&Val{exprBase{sp()}, n.Value})
	case *Annotate:
		return arena.Alloc(&Annotate{exprBase{sp()}, MapRanges(arena, n.Expr, f), n.Type})
	case *Lam:
		return arena.Alloc(&Lam{exprBase{sp()}, n.Param, MapRanges(arena, n.Body, f)})
	case *App:
		return arena.Alloc(&App{exprBase{sp()}, MapRanges(arena, n.Fun, f), MapRanges(arena, n.Arg, f)})
	case *LetIn:
		return arena.Alloc(&LetIn{exprBase{sp()}, n.Name, n.Type, MapRanges(arena, n.Value, f), MapRanges(arena, n.Body, f)})
	case *Pair:
		return arena.Alloc(&Pair{exprBase{sp()}, MapRanges(arena, n.Fst, f), MapRanges(arena, n.Snd, f)})
	case *UnPair:
		return arena.Alloc(&UnPair{exprBase{sp()}, n.Fst, n.Snd, MapRanges(arena, n.Scrut, f), MapRanges(arena, n.Body, f)})
	case *InL:
		return arena.Alloc(&InL{exprBase{sp()}, MapRanges(arena, n.Expr, f)})
	case *InR:
		return arena.Alloc(&InR{exprBase{sp()}, MapRanges(arena, n.Expr, f)})
	case *Case:
		return arena.Alloc(&Case{exprBase{sp()}, MapRanges(arena, n.Scrut, f), n.LeftName, MapRanges(arena, n.LeftBody, f), n.RightName, MapRanges(arena, n.RightBody, f)})
	case *Array:
		elems := make([]Expr, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = MapRanges(arena, el, f)
		}
		return arena.Alloc(&Array{exprBase{sp()}, elems})
	case *Delay:
		return arena.Alloc(&Delay{exprBase{sp()}, MapRanges(arena, n.Expr, f)})
	case *Adv:
		return arena.Alloc(&Adv{exprBase{sp()}, MapRanges(arena, n.Expr, f)})
	case *Box:
		return arena.Alloc(&Box{exprBase{sp()}, MapRanges(arena, n.Expr, f)})
	case *Unbox:
		return arena.Alloc(&Unbox{exprBase{sp()}, MapRanges(arena, n.Expr, f)})
	case *Gen:
		return arena.Alloc(&Gen{exprBase{sp()}, MapRanges(arena, n.Head, f), MapRanges(arena, n.Tail, f)})
	case *UnGen:
		return arena.Alloc(&UnGen{exprBase{sp()}, MapRanges(arena, n.Expr, f)})
	case *Lob:
		return arena.Alloc(&Lob{exprBase{sp()}, n.Clock, n.Var, MapRanges(arena, n.Body, f)})
	case *ClockApp:
		return arena.Alloc(&ClockApp{exprBase{sp()}, MapRanges(arena, n.Expr, f), n.Clock})
	case *TypeApp:
		return arena.Alloc(&TypeApp{exprBase{sp()}, MapRanges(arena, n.Expr, f), n.Type})
	case *ClockLam:
		return arena.Alloc(&ClockLam{exprBase{sp()}, n.Param, MapRanges(arena, n.Body, f)})
	case *ExIntro:
		return arena.Alloc(&ExIntro{exprBase{sp()}, n.Clock, MapRanges(arena, n.Expr, f)})
	case *ExElim:
		return arena.Alloc(&ExElim{exprBase{sp()}, n.ClockVar, n.ValueVar, MapRanges(arena, n.Scrut, f), MapRanges(arena, n.Body, f)})
	case *BinopExpr:
		return arena.Alloc(&BinopExpr{exprBase{sp()}, n.Op, MapRanges(arena, n.Left, f), MapRanges(arena, n.Right, f)})
	default:
		panic(fmt.Sprintf("ast: MapRanges: unhandled node type %T", e))
	}
}
