// Package core1 lowers a checked, named AST (internal/ast) into IR1: a
// de-Bruijn-indexed form with every binder tagged by its captured free
// variables ("used set") and an explicit guarded fixed point. This is
// the form internal/closure's Translator consumes to build IR2, with a
// free-variable analysis ("used set") feeding closure conversion.
package core1

import (
	"github.com/lambdalisten/lambdalisten/internal/ast"
	"github.com/lambdalisten/lambdalisten/internal/ident"
)

// Index is a de-Bruijn index: 0 refers to the innermost bound variable.
type Index uint32

// Expr is IR1's expression sum type.
type Expr interface {
	ir1Expr()
}

// Var is a bound-variable reference, resolved at lowering time.
type Var struct{ Index Index }

// Glob is a reference to a name not found in the local de-Bruijn scope
// (a globals-map entry: arithmetic/stream primitives).
type Glob struct{ Name ident.Symbol }

// Val carries a literal value through unchanged.
type Val struct{ Value ast.Value }

// Lam is a one-argument closure-introducing binder. Used is filled in by
// the free-variable analysis pass that runs as part of Lower; it is nil
// only transiently before that pass completes.
type Lam struct {
	Used []Index
	Body Expr
}

// App is function application.
type App struct{ Fun, Arg Expr }

// LetIn is a non-recursive let; Body's de-Bruijn index 0 refers to
// Value.
type LetIn struct{ Value, Body Expr }

// UnPair destructures a product scrutinee into two new bindings: in
// Body, index 0 is the second (inner) projection and index 1 is the
// first.
type UnPair struct {
	Scrut Expr
	Body  Expr
}

// Case eliminates a sum: each branch binds exactly one variable at
// index 0 in its own Body.
type Case struct {
	Scrut               Expr
	LeftBody, RightBody Expr
}

// ConKind enumerates IR1's value constructors. Stream/Array/Pair pass
// their args through unchanged; InL/InR additionally get a discriminant
// prepended, which happens in internal/closure, not here. ExIntro has no
// constructor: the checker never lets it survive to a successfully
// type-checked tree (internal/typecheck/checker.go), so Lower never
// produces one.
type ConKind int

const (
	ConPair ConKind = iota
	ConInL
	ConInR
	ConArray
	ConStream
)

// Con builds a value of one of the constructor shapes above.
type Con struct {
	Kind ConKind
	Args []Expr
}

// Op is a primitive operation with fully-lowered argument expressions
// (arithmetic/comparison Binops from the AST).
type Op struct {
	Op   ast.Binop
	Args []Expr
}

// Box is a zero-argument closure introducing a stable value.
type Box struct {
	Used []Index
	Body Expr
}

// Delay is a zero-argument closure introducing a ▷ value.
type Delay struct {
	Used []Index
	Body Expr
}

// Lob is the guarded fixed point. Used is the free-variable set of the
// whole Lob form as seen from its surrounding context (i.e. not
// including the bound self-reference); internal/closure performs a
// two-level self-reference materialization over this.
type Lob struct {
	Used []Index
	Body Expr
}

// Unbox forces a box value (an arity-0 call).
type Unbox struct{ Expr Expr }

// Adv forces a ▷ value (consumes a tick at runtime too).
type Adv struct{ Expr Expr }

func (Var) ir1Expr()    {}
func (Glob) ir1Expr()   {}
func (Val) ir1Expr()    {}
func (*Lam) ir1Expr()   {}
func (App) ir1Expr()    {}
func (LetIn) ir1Expr()  {}
func (UnPair) ir1Expr() {}
func (Case) ir1Expr()   {}
func (Con) ir1Expr()    {}
func (Op) ir1Expr()     {}
func (*Box) ir1Expr()   {}
func (*Delay) ir1Expr() {}
func (*Lob) ir1Expr()   {}
func (Unbox) ir1Expr()  {}
func (Adv) ir1Expr()    {}
