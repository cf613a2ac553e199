package core1

import (
	"fmt"

	"github.com/lambdalisten/lambdalisten/internal/ast"
	"github.com/lambdalisten/lambdalisten/internal/ident"
)

// LowerError reports an AST construct that reached lowering without
// having been rejected by the type checker first. A missing "used"
// annotation at this point is a compiler bug, not a user error: the
// polymorphism forms and any construct typecheck.Synthesize rejects
// with SynthesisUnsupported fall in the same bucket, since Lower is
// only ever run on an expression that has already type-checked.
type LowerError struct {
	Expr ast.Expr
}

func (e *LowerError) Error() string {
	return fmt.Sprintf("core1: lowering reached an unexpected construct %T; was this type-checked first?", e.Expr)
}

// scope is the ordered stack of variable-introducing binder names in
// lexical order, innermost last. Delay/Box/Lob's stable-strengthening
// is a typing-time restriction only: it never removes a slot from this
// stack, it only restricts what the checker let the surface program
// reference, so lowering always resolves against the full lexical
// stack.
type scope []ident.Symbol

func (s scope) push(x ident.Symbol) scope { return append(append(scope{}, s...), x) }

func (s scope) resolve(x ident.Symbol) (Index, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == x {
			return Index(len(s) - 1 - i), true
		}
	}
	return 0, false
}

// Lower converts a checked, named AST expression into IR1 under an
// initially-empty scope.
func Lower(e ast.Expr) (Expr, error) {
	return lower(nil, e)
}

func lower(sc scope, e ast.Expr) (Expr, error) {
	switch n := e.(type) {
	case *ast.Var:
		if idx, ok := sc.resolve(n.Name); ok {
			return Var{Index: idx}, nil
		}
		return Glob{Name: n.Name}, nil
	case *ast.Val:
		return Val{Value: n.Value}, nil
	case *ast.Annotate:
		// Types are erased post type-check; only the runtime shape of
		// the annotated expression survives into IR1.
		return lower(sc, n.Expr)
	case *ast.Lam:
		body, err := lower(sc.push(n.Param), n.Body)
		if err != nil {
			return nil, err
		}
		return &Lam{Used: UsedAbove(1, body), Body: body}, nil
	case *ast.App:
		fun, err := lower(sc, n.Fun)
		if err != nil {
			return nil, err
		}
		arg, err := lower(sc, n.Arg)
		if err != nil {
			return nil, err
		}
		return App{Fun: fun, Arg: arg}, nil
	case *ast.LetIn:
		value, err := lower(sc, n.Value)
		if err != nil {
			return nil, err
		}
		body, err := lower(sc.push(n.Name), n.Body)
		if err != nil {
			return nil, err
		}
		return LetIn{Value: value, Body: body}, nil
	case *ast.Pair:
		fst, err := lower(sc, n.Fst)
		if err != nil {
			return nil, err
		}
		snd, err := lower(sc, n.Snd)
		if err != nil {
			return nil, err
		}
		return Con{Kind: ConPair, Args: []Expr{fst, snd}}, nil
	case *ast.UnPair:
		scrut, err := lower(sc, n.Scrut)
		if err != nil {
			return nil, err
		}
		// Body's scope gains x1 then x2, so x2 (bound last) is index 0.
		body, err := lower(sc.push(n.Fst).push(n.Snd), n.Body)
		if err != nil {
			return nil, err
		}
		return UnPair{Scrut: scrut, Body: body}, nil
	case *ast.InL:
		inner, err := lower(sc, n.Expr)
		if err != nil {
			return nil, err
		}
		return Con{Kind: ConInL, Args: []Expr{inner}}, nil
	case *ast.InR:
		inner, err := lower(sc, n.Expr)
		if err != nil {
			return nil, err
		}
		return Con{Kind: ConInR, Args: []Expr{inner}}, nil
	case *ast.Case:
		scrut, err := lower(sc, n.Scrut)
		if err != nil {
			return nil, err
		}
		leftBody, err := lower(sc.push(n.LeftName), n.LeftBody)
		if err != nil {
			return nil, err
		}
		rightBody, err := lower(sc.push(n.RightName), n.RightBody)
		if err != nil {
			return nil, err
		}
		return Case{Scrut: scrut, LeftBody: leftBody, RightBody: rightBody}, nil
	case *ast.Array:
		args := make([]Expr, len(n.Elems))
		for i, el := range n.Elems {
			le, err := lower(sc, el)
			if err != nil {
				return nil, err
			}
			args[i] = le
		}
		return Con{Kind: ConArray, Args: args}, nil
	case *ast.Delay:
		body, err := lower(sc, n.Expr)
		if err != nil {
			return nil, err
		}
		return &Delay{Used: UsedAbove(0, body), Body: body}, nil
	case *ast.Adv:
		inner, err := lower(sc, n.Expr)
		if err != nil {
			return nil, err
		}
		return Adv{Expr: inner}, nil
	case *ast.Box:
		body, err := lower(sc, n.Expr)
		if err != nil {
			return nil, err
		}
		return &Box{Used: UsedAbove(0, body), Body: body}, nil
	case *ast.Unbox:
		inner, err := lower(sc, n.Expr)
		if err != nil {
			return nil, err
		}
		return Unbox{Expr: inner}, nil
	case *ast.Gen:
		head, err := lower(sc, n.Head)
		if err != nil {
			return nil, err
		}
		tail, err := lower(sc, n.Tail)
		if err != nil {
			return nil, err
		}
		return Con{Kind: ConStream, Args: []Expr{head, tail}}, nil
	case *ast.UnGen:
		// The stream and the (head, ▷ tail) pair share one runtime
		// representation (Con{ConStream}), so observing a stream is a
		// pass-through at this level; the type-level repackaging into
		// a product already happened in Synthesize.
		return lower(sc, n.Expr)
	case *ast.Lob:
		body, err := lower(sc.push(n.Var), n.Body)
		if err != nil {
			return nil, err
		}
		return &Lob{Used: UsedAbove(1, body), Body: body}, nil
	default:
		// BinopExpr, ClockApp, TypeApp, ClockLam, ExIntro, ExElim: none
		// of these can appear in a successfully type-checked tree; the
		// checker rejects them all via SynthesisUnsupported (see
		// internal/typecheck/checker.go).
		return nil, &LowerError{Expr: e}
	}
}
