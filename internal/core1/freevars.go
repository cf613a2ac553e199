package core1

import "sort"

// UsedAbove computes the "used set" for a binder that introduces n new
// variable slots (1 for Lam and Lob's self-binding, 0 for Box/Delay,
// which bind nothing): the sorted, de-duplicated set of free variables
// of body as seen from the *enclosing* scope, i.e. every Var(i) in body
// with i >= n, shifted down by n.
func UsedAbove(n Index, body Expr) []Index {
	set := map[Index]struct{}{}
	collectFreeVars(body, n, set)
	out := make([]Index, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FreeVars returns the sorted, de-duplicated set of de-Bruijn indices
// referenced by e that are not bound within e itself: for each binder,
// the sorted list of outer de-Bruijn indices its body references, which
// closure conversion uses to decide exactly what a closure must capture.
func FreeVars(e Expr) []Index {
	set := map[Index]struct{}{}
	collectFreeVars(e, 0, set)
	out := make([]Index, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// collectFreeVars walks e, which is itself under depth extra local
// bindings relative to the scope FreeVars was asked about; a Var(i)
// found at nesting depth d inside e is free relative to e's own scope
// iff i >= d, in which case it corresponds to index i-d there.
func collectFreeVars(e Expr, depth Index, set map[Index]struct{}) {
	switch n := e.(type) {
	case Var:
		if n.Index >= depth {
			set[n.Index-depth] = struct{}{}
		}
	case Glob, Val:
		// no variables
	case *Lam:
		collectFreeVars(n.Body, depth+1, set)
	case App:
		collectFreeVars(n.Fun, depth, set)
		collectFreeVars(n.Arg, depth, set)
	case LetIn:
		collectFreeVars(n.Value, depth, set)
		collectFreeVars(n.Body, depth+1, set)
	case UnPair:
		collectFreeVars(n.Scrut, depth, set)
		collectFreeVars(n.Body, depth+2, set)
	case Case:
		collectFreeVars(n.Scrut, depth, set)
		collectFreeVars(n.LeftBody, depth+1, set)
		collectFreeVars(n.RightBody, depth+1, set)
	case Con:
		for _, a := range n.Args {
			collectFreeVars(a, depth, set)
		}
	case Op:
		for _, a := range n.Args {
			collectFreeVars(a, depth, set)
		}
	case *Box:
		collectFreeVars(n.Body, depth, set)
	case *Delay:
		collectFreeVars(n.Body, depth, set)
	case *Lob:
		collectFreeVars(n.Body, depth+1, set)
	case Unbox:
		collectFreeVars(n.Expr, depth, set)
	case Adv:
		collectFreeVars(n.Expr, depth, set)
	}
}
