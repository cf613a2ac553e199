package closure

import (
	"fmt"

	"github.com/lambdalisten/lambdalisten/internal/ast"
	"github.com/lambdalisten/lambdalisten/internal/core1"
)

// Translator accumulates a globals table while converting IR1 into IR2.
// It has no other state; a zero-value Translator is ready to use.
type Translator struct {
	Globals []GlobalDef
}

// NewTranslator creates a Translator with an empty globals table.
func NewTranslator() *Translator { return &Translator{} }

// Convert runs Translate over e and returns both the converted
// expression and the accumulated globals table: the flat,
// closure-explicit representation a code generator could actually
// target.
func Convert(e core1.Expr) (Expr, []GlobalDef) {
	t := NewTranslator()
	out := t.Translate(e)
	return out, t.Globals
}

// Translate converts a single IR1 expression to IR2, emitting a new
// GlobalDef onto t.Globals for every Lam/Box/Delay/Lob it encounters.
func (t *Translator) Translate(e core1.Expr) Expr {
	switch n := e.(type) {
	case core1.Var:
		return Var{Index: n.Index}
	case core1.Glob:
		return OpExpr{Op: Op{Kind: OpLoadGlobal, GlobalName: n.Name}}
	case core1.Val:
		return OpExpr{Op: Op{Kind: OpConst, Const: n.Value}}
	case *core1.Lam:
		return t.buildNewClosure(false, 1, n.Used, n.Body)
	case core1.App:
		fun := t.Translate(n.Fun)
		arg := t.Translate(n.Arg)
		return CallIndirect{Fun: fun, Args: []Expr{arg}}
	case core1.LetIn:
		value := t.Translate(n.Value)
		body := t.Translate(n.Body)
		return Let{Bindings: []Expr{value}, Body: body}
	case core1.UnPair:
		return t.translateUnPair(n)
	case core1.Case:
		return t.translateCase(n)
	case core1.Con:
		args := t.buildConstructor(n.Kind, n.Args)
		return OpExpr{Op: Op{Kind: OpAllocAndFill}, Args: args}
	case core1.Op:
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = t.Translate(a)
		}
		return OpExpr{Op: Op{Kind: OpPrim, Prim: n.Op}, Args: args}
	case *core1.Box:
		return t.buildNewClosure(false, 0, n.Used, n.Body)
	case *core1.Delay:
		return t.buildNewClosure(false, 0, n.Used, n.Body)
	case *core1.Lob:
		return t.translateLob(n)
	case core1.Unbox:
		inner := t.Translate(n.Expr)
		return CallIndirect{Fun: inner}
	case core1.Adv:
		inner := t.Translate(n.Expr)
		return OpExpr{Op: Op{Kind: OpAdvance}, Args: []Expr{inner}}
	default:
		panic(fmt.Sprintf("closure: Translate: unhandled IR1 node %T", e))
	}
}

// buildNewClosure re-indexes body against the compact closure frame,
// translates it, registers it as a new GlobalDef, and returns the
// BuildClosure op that introduces it at this use site.
func (t *Translator) buildNewClosure(rec bool, arity uint32, used []core1.Index, body core1.Expr) Expr {
	bodyT := t.Translate(reindexBody(core1.Index(arity), used, body))
	return t.buildNewClosureInner(rec, arity, used, bodyT)
}

func (t *Translator) buildNewClosureInner(rec bool, arity uint32, used []core1.Index, body Expr) Expr {
	idx := Global(len(t.Globals))
	t.Globals = append(t.Globals, FuncDef{Rec: rec, Arity: arity, EnvSize: uint32(len(used)), Body: body})
	envArgs := make([]Expr, len(used))
	for i, u := range used {
		envArgs[i] = Var{Index: u}
	}
	return OpExpr{Op: Op{Kind: OpBuildClosure, Closure: idx}, Args: envArgs}
}

// translateLob materializes the guarded fixed point via a two-level
// self-referential closure pattern. The outer closure is
// marked Rec: true and captures exactly Lob's own free variables (used);
// invoking it once yields a value whose own environment slot 0 is bound
// to the invoked closure itself (the "rec" mechanism's contract, a
// runtime concern, out of this package's scope, but the shape it
// depends on is built here). That value's own invocation (the second
// call in the CallIndirect(CallIndirect(...)) chain) runs the real Lob
// body with slot 0 resolving to the self-reference and slots 1..N
// resolving to the captured free variables, shifted by exactly one to
// make room for it.
func (t *Translator) translateLob(n *core1.Lob) Expr {
	used := n.Used
	// The body keeps the self-reference at slot 0 and sees the j-th
	// captured variable at slot 1+j, exactly the dense layout the
	// builder's frame provides; buildNewClosure's own re-indexing pass
	// over the dense innerUsed is then the identity.
	body := reindexBody(1, used, n.Body)
	innerUsed := make([]core1.Index, len(used)+1)
	for i := range innerUsed {
		innerUsed[i] = core1.Index(i)
	}
	innerClosure := t.buildNewClosure(false, 0, innerUsed, body)
	closureBuilder := t.buildNewClosureInner(true, 0, used, innerClosure)
	return Let{
		Bindings: []Expr{closureBuilder},
		Body: CallIndirect{
			Fun: CallIndirect{Fun: Var{Index: 0}},
		},
	}
}

// translateUnPair projects Scrut's two fields and binds them
// simultaneously, mirroring IR1's own convention that the second
// projection (Snd) lands at the nearer de-Bruijn index.
func (t *Translator) translateUnPair(n core1.UnPair) Expr {
	scrutT := t.Translate(n.Scrut)
	fst := OpExpr{Op: Op{Kind: OpProj, ProjIndex: 0}, Args: []Expr{scrutT}}
	snd := OpExpr{Op: Op{Kind: OpProj, ProjIndex: 1}, Args: []Expr{scrutT}}
	body := t.Translate(n.Body)
	return Let{Bindings: []Expr{fst, snd}, Body: body}
}

// translateCase discriminates the tag AllocAndFill prepended for
// ConInL/ConInR (buildConstructor below) and binds the surviving
// payload in the taken branch only. Scrut is translated once and the
// result reused at every projection site, so a closure nested inside
// it is only ever registered once in t.Globals.
func (t *Translator) translateCase(n core1.Case) Expr {
	zero := OpExpr{Op: Op{Kind: OpConst, Const: ast.Value{Kind: ast.ValIndex, Index: 0}}}
	scrutT := t.Translate(n.Scrut)

	leftTag := OpExpr{Op: Op{Kind: OpProj, ProjIndex: 0}, Args: []Expr{scrutT}}
	leftCond := OpExpr{Op: Op{Kind: OpPrim, Prim: ast.IEq}, Args: []Expr{leftTag, zero}}
	leftPayload := OpExpr{Op: Op{Kind: OpProj, ProjIndex: 1}, Args: []Expr{scrutT}}
	leftBody := t.Translate(n.LeftBody)

	rightPayload := OpExpr{Op: Op{Kind: OpProj, ProjIndex: 1}, Args: []Expr{scrutT}}
	rightBody := t.Translate(n.RightBody)

	return If{
		Cond: leftCond,
		Then: Let{Bindings: []Expr{leftPayload}, Body: leftBody},
		Else: Let{Bindings: []Expr{rightPayload}, Body: rightBody},
	}
}

// reindexBody rewrites body so its free variables address the compact
// closure frame instead of the full lexical stack it was lowered
// against: the binder's own slots (0..bound-1) stay put, and a
// reference to the j-th element of used becomes bound+j, the same order
// buildNewClosureInner fills the environment in. A free variable with
// no used entry means a binder is missing its used annotation, which is
// a compiler bug (a precondition of this stage), so it panics.
func reindexBody(bound core1.Index, used []core1.Index, body core1.Expr) core1.Expr {
	return reindex(body, 0, func(i core1.Index) core1.Index {
		if i < bound {
			return i
		}
		return bound + slotFor(used, i-bound)
	})
}

// slotFor returns the environment position of u within used.
func slotFor(used []core1.Index, u core1.Index) core1.Index {
	for j, v := range used {
		if v == u {
			return core1.Index(j)
		}
	}
	panic(fmt.Sprintf("closure: captured variable %d missing from used set %v", u, used))
}

// reindex applies f to every variable reference in e that is free
// relative to e itself, tracking how many local binders have been
// crossed. Used annotations on nested binders address the same scope a
// Var at the binder's position would, so they are rewritten by the same
// rule; f is monotone over the indices it is applied to, which keeps
// every rewritten used set sorted.
func reindex(e core1.Expr, depth core1.Index, f func(core1.Index) core1.Index) core1.Expr {
	switch n := e.(type) {
	case core1.Var:
		if n.Index < depth {
			return n
		}
		return core1.Var{Index: f(n.Index-depth) + depth}
	case core1.Glob, core1.Val:
		return e
	case *core1.Lam:
		return &core1.Lam{Used: reindexUsed(n.Used, depth, f), Body: reindex(n.Body, depth+1, f)}
	case core1.App:
		return core1.App{Fun: reindex(n.Fun, depth, f), Arg: reindex(n.Arg, depth, f)}
	case core1.LetIn:
		return core1.LetIn{Value: reindex(n.Value, depth, f), Body: reindex(n.Body, depth+1, f)}
	case core1.UnPair:
		return core1.UnPair{Scrut: reindex(n.Scrut, depth, f), Body: reindex(n.Body, depth+2, f)}
	case core1.Case:
		return core1.Case{
			Scrut:     reindex(n.Scrut, depth, f),
			LeftBody:  reindex(n.LeftBody, depth+1, f),
			RightBody: reindex(n.RightBody, depth+1, f),
		}
	case core1.Con:
		return core1.Con{Kind: n.Kind, Args: reindexAll(n.Args, depth, f)}
	case core1.Op:
		return core1.Op{Op: n.Op, Args: reindexAll(n.Args, depth, f)}
	case *core1.Box:
		return &core1.Box{Used: reindexUsed(n.Used, depth, f), Body: reindex(n.Body, depth, f)}
	case *core1.Delay:
		return &core1.Delay{Used: reindexUsed(n.Used, depth, f), Body: reindex(n.Body, depth, f)}
	case *core1.Lob:
		return &core1.Lob{Used: reindexUsed(n.Used, depth, f), Body: reindex(n.Body, depth+1, f)}
	case core1.Unbox:
		return core1.Unbox{Expr: reindex(n.Expr, depth, f)}
	case core1.Adv:
		return core1.Adv{Expr: reindex(n.Expr, depth, f)}
	default:
		panic(fmt.Sprintf("closure: reindex: unhandled IR1 node %T", e))
	}
}

func reindexAll(args []core1.Expr, depth core1.Index, f func(core1.Index) core1.Index) []core1.Expr {
	out := make([]core1.Expr, len(args))
	for i, a := range args {
		out[i] = reindex(a, depth, f)
	}
	return out
}

func reindexUsed(used []core1.Index, depth core1.Index, f func(core1.Index) core1.Index) []core1.Index {
	out := make([]core1.Index, len(used))
	for i, u := range used {
		if u < depth {
			out[i] = u
		} else {
			out[i] = f(u-depth) + depth
		}
	}
	return out
}

// buildConstructor shapes Con's arguments the way the runtime
// representation for each kind expects: Pair/Array/Stream pass their
// elements through unchanged, InL/InR additionally prepend a 0/1
// discriminant so translateCase can read it back with OpProj(0).
func (t *Translator) buildConstructor(kind core1.ConKind, args []core1.Expr) []Expr {
	switch kind {
	case core1.ConPair, core1.ConArray, core1.ConStream:
		out := make([]Expr, len(args))
		for i, a := range args {
			out[i] = t.Translate(a)
		}
		return out
	case core1.ConInL:
		tag := OpExpr{Op: Op{Kind: OpConst, Const: ast.Value{Kind: ast.ValIndex, Index: 0}}}
		return []Expr{tag, t.Translate(args[0])}
	case core1.ConInR:
		tag := OpExpr{Op: Op{Kind: OpConst, Const: ast.Value{Kind: ast.ValIndex, Index: 1}}}
		return []Expr{tag, t.Translate(args[0])}
	default:
		panic(fmt.Sprintf("closure: buildConstructor: unhandled Con kind %v", kind))
	}
}
