package typecheck

import "github.com/lambdalisten/lambdalisten/internal/modaltypes"

// Subtype reports whether S is usable where T is expected. No context
// argument is needed: clocks are compared structurally, never looked up.
// The relation is reflexive on base types and structural everywhere
// except Later, where comparable clocks of different rates relate
// through Uncompose; see SPEC_FULL.md's open-question decisions for
// keeping it this narrow.
//
// Termination: strictly decreasing on the sum of the sizes of S and T,
// including the Later/Later case's uncompose step, which always drops
// at least one Later level off one side.
func Subtype(s, t modaltypes.Type) bool {
	switch sv := s.(type) {
	case modaltypes.UnitType:
		_, ok := t.(modaltypes.UnitType)
		return ok
	case modaltypes.SampleType:
		_, ok := t.(modaltypes.SampleType)
		return ok
	case modaltypes.IndexType:
		_, ok := t.(modaltypes.IndexType)
		return ok
	case modaltypes.StreamType:
		tv, ok := t.(modaltypes.StreamType)
		return ok && sv.Clock.Equal(tv.Clock) && Subtype(sv.Elem, tv.Elem)
	case modaltypes.FunctionType:
		tv, ok := t.(modaltypes.FunctionType)
		return ok && Subtype(tv.Param, sv.Param) && Subtype(sv.Result, tv.Result)
	case modaltypes.ProductType:
		tv, ok := t.(modaltypes.ProductType)
		return ok && Subtype(sv.Fst, tv.Fst) && Subtype(sv.Snd, tv.Snd)
	case modaltypes.SumType:
		tv, ok := t.(modaltypes.SumType)
		return ok && Subtype(sv.Left, tv.Left) && Subtype(sv.Right, tv.Right)
	case modaltypes.LaterType:
		tv, ok := t.(modaltypes.LaterType)
		if !ok {
			return false
		}
		cmp, comparable := sv.Clock.Cmp(tv.Clock)
		if !comparable {
			return false
		}
		switch {
		case cmp == 0:
			return Subtype(sv.Elem, tv.Elem)
		case cmp < 0:
			rem := sv.Clock.Uncompose(tv.Clock)
			return Subtype(modaltypes.LaterType{Clock: rem, Elem: sv.Elem}, tv.Elem)
		default: // cmp > 0
			rem := tv.Clock.Uncompose(sv.Clock)
			return Subtype(sv.Elem, modaltypes.LaterType{Clock: rem, Elem: tv.Elem})
		}
	case modaltypes.ArrayType:
		tv, ok := t.(modaltypes.ArrayType)
		return ok && sv.Size == tv.Size && Subtype(sv.Elem, tv.Elem)
	case modaltypes.BoxType:
		tv, ok := t.(modaltypes.BoxType)
		return ok && Subtype(sv.Elem, tv.Elem)
	default:
		return false
	}
}

// Meet computes the least-upper-bound-ish join of two branch types under
// Subtype: if t1 <: t2 the meet is t2, if t2 <: t1 it's t1, else the
// branches are irreconcilable. Used by Case's synthesis rule to derive a
// single result type from its two branches.
func Meet(t1, t2 modaltypes.Type) (modaltypes.Type, TypeError) {
	if Subtype(t1, t2) {
		return t2, nil
	}
	if Subtype(t2, t1) {
		return t1, nil
	}
	return nil, &CouldNotUnify{baseErr{}, t1, t2}
}
