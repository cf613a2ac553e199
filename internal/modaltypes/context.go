package modaltypes

import "github.com/lambdalisten/lambdalisten/internal/ident"

// Ctx is the bidirectional checker's context: an immutable linked list,
// read right-to-left, extended at the head. Extensions share structure
// with their parent rather than copying the whole context, so a Ctx
// value is O(1) to extend and O(depth) to search. Nothing downstream of
// a node is ever mutated in place.
type Ctx struct {
	kind   ctxKind
	clock  Clock
	name   ident.Symbol
	typ    Type
	parent *Ctx
}

type ctxKind int

const (
	ctxEmpty ctxKind = iota
	ctxTick
	ctxVar
)

// Empty is the empty context.
var Empty = &Ctx{kind: ctxEmpty}

// WithVar extends c with an ordinary binding x:T.
func (c *Ctx) WithVar(x ident.Symbol, t Type) *Ctx {
	return &Ctx{kind: ctxVar, name: x, typ: t, parent: c}
}

// WithTick extends c with a tick of clock clk.
func (c *Ctx) WithTick(clk Clock) *Ctx {
	return &Ctx{kind: ctxTick, clock: clk, parent: c}
}

// Lookup finds the nearest binding of x, returning the ordered list of
// ticks crossed between the binder and this point (innermost first) and
// the bound type. ok is false if x is unbound.
func (c *Ctx) Lookup(x ident.Symbol) (timing []Clock, t Type, ok bool) {
	for n := c; n != nil && n.kind != ctxEmpty; n = n.parent {
		switch n.kind {
		case ctxTick:
			timing = append(timing, n.clock)
		case ctxVar:
			if n.name == x {
				return timing, n.typ, true
			}
		}
	}
	return nil, nil, false
}

// Stable returns the "stable projection" of c: every tick is dropped, and
// every binding whose type is not IsStable() is dropped along with it.
// Used by Box and Lob to strengthen the context before checking their
// bodies.
//
// TODO(lob-diagnostics): this keeps a single "drop everything"
// strengthening rather than remembering what was dropped for nicer error
// messages on a later VariableNotFound; see SPEC_FULL.md's open-question
// decisions.
func (c *Ctx) Stable() *Ctx {
	var kept []*Ctx
	for n := c; n != nil && n.kind != ctxEmpty; n = n.parent {
		if n.kind == ctxVar && n.typ.IsStable() {
			kept = append(kept, n)
		}
	}
	out := Empty
	for i := len(kept) - 1; i >= 0; i-- {
		out = out.WithVar(kept[i].name, kept[i].typ)
	}
	return out
}

// StripTick peels the innermost tick (and every ordinary binding above
// it) off c, returning the clock of that tick and the context below it.
// ok is false when no tick exists anywhere in c.
func (c *Ctx) StripTick() (clk Clock, rest *Ctx, ok bool) {
	for n := c; n != nil && n.kind != ctxEmpty; n = n.parent {
		if n.kind == ctxTick {
			return n.clock, n.parent, true
		}
	}
	return Clock{}, nil, false
}
