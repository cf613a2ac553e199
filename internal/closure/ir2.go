// Package closure performs closure conversion: it turns internal/core1's
// de-Bruijn IR1, where Lam/Box/Delay/Lob bind a variable directly in
// the tree, into IR2, where every one of those binders becomes a
// top-level GlobalDef introduced at its use site by an explicit
// BuildClosure operation that captures exactly its "used" free-variable
// set, so every closure allocation is explicit rather than implicit.
//
// UnPair and Case survive IR1 as first-class binders, so this stage also
// eliminates them: Proj projects their fields out of the aggregate
// representation, and If discriminates a sum's prepended tag.
package closure

import (
	"github.com/lambdalisten/lambdalisten/internal/ast"
	"github.com/lambdalisten/lambdalisten/internal/core1"
	"github.com/lambdalisten/lambdalisten/internal/ident"
)

// Global indexes into a Translator's Globals table.
type Global uint32

// Expr is IR2's expression sum type. Every node here is runnable without
// any further de-Bruijn bookkeeping: the only binding form left is Let,
// and every closure-introducing binder from IR1 has already become a
// GlobalDef plus a BuildClosure op at its original position.
type Expr interface {
	ir2Expr()
}

// Var is a de-Bruijn reference. Inside a GlobalDef body it addresses
// the closure frame the Translator re-indexed that body against:
// parameter slots first, then captured-environment slots in used-set
// order (a recursive builder's frame additionally holds the closure
// itself at slot 0). Outside a GlobalDef it addresses the surrounding
// Lets, exactly as in IR1.
type Var struct{ Index core1.Index }

// If is a two-way branch, introduced here to eliminate Case (see
// package doc).
type If struct{ Cond, Then, Else Expr }

// Let binds len(Bindings) values simultaneously; inside Body, index 0
// refers to the last element of Bindings and index len(Bindings)-1 to
// the first; the same push order IR1's UnPair/LetIn use.
type Let struct {
	Bindings []Expr
	Body     Expr
}

// OpKind enumerates the primitive operations an OpExpr can perform.
type OpKind int

const (
	// OpPrim evaluates a surface arithmetic/comparison operator (Prim).
	OpPrim OpKind = iota
	// OpConst yields a literal value (Const).
	OpConst
	// OpLoadGlobal looks up a name in the globals map (GlobalName).
	OpLoadGlobal
	// OpBuildClosure allocates a closure over Func (Closure) capturing
	// Args as its environment, in order.
	OpBuildClosure
	// OpAdvance forces a ▷ value, consuming its sole Arg.
	OpAdvance
	// OpAllocAndFill builds an aggregate value (pair/sum/array/stream)
	// from Args, already shaped by buildConstructor.
	OpAllocAndFill
	// OpProj projects field ProjIndex out of its sole Arg, the
	// extension this revision needs for UnPair/Case, see package doc.
	OpProj
)

// Op is a primitive operation; only the field matching Kind is set.
type Op struct {
	Kind       OpKind
	Prim       ast.Binop
	Const      ast.Value
	GlobalName ident.Symbol
	Closure    Global
	ProjIndex  int
}

// OpExpr applies an Op to zero or more already-translated arguments.
type OpExpr struct {
	Op   Op
	Args []Expr
}

// CallIndirect calls a closure value computed at runtime.
type CallIndirect struct {
	Fun  Expr
	Args []Expr
}

// CallDirect calls a statically-known global function. Reserved for the
// code generator: the Translator never emits one, since every call site
// it produces computes its callee via BuildClosure/LoadGlobal first.
type CallDirect struct {
	Fn   Global
	Args []Expr
}

func (Var) ir2Expr()          {}
func (If) ir2Expr()           {}
func (Let) ir2Expr()          {}
func (OpExpr) ir2Expr()       {}
func (CallIndirect) ir2Expr() {}
func (CallDirect) ir2Expr()   {}

// GlobalDef is an entry in a Translator's globals table.
type GlobalDef interface {
	// ArityOf reports the function's parameter count, or ok=false for a
	// closed expression with no parameters at all (as opposed to a
	// zero-arity thunk, which still has ArityOf()==(0,true)).
	ArityOf() (n uint32, ok bool)
}

// FuncDef is a closure template: Rec marks the Lob self-reference
// pattern, Arity is 1 for a translated Lam and 0 for a translated
// Box/Delay/Lob thunk, and EnvSize is len(Body's used set).
type FuncDef struct {
	Rec     bool
	Arity   uint32
	EnvSize uint32
	Body    Expr
}

func (d FuncDef) ArityOf() (uint32, bool) { return d.Arity, true }

// ClosedExprDef is a top-level expression with no parameters at all.
// Reserved for the code generator's constant pool; the Translator never
// produces one (every binder it lowers carries at least a zero-arity
// Func shape).
type ClosedExprDef struct{ Body Expr }

func (ClosedExprDef) ArityOf() (uint32, bool) { return 0, false }
