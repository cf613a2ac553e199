// Package modaltypes is the type language of Lambda-Listen: base types,
// the Later/Box/Stream modalities, clocks, and the context the bidirectional
// checker threads through a derivation.
package modaltypes

import (
	"fmt"
	"math/big"

	"github.com/lambdalisten/lambdalisten/internal/ident"
)

// Clock names a sampling rate as a positive rational multiple of a base
// clock variable: coeff * var. Two clocks are comparable only when they
// share the same Var; uncompose is only defined between comparable clocks.
type Clock struct {
	Coeff *big.Rat
	Var   ident.Symbol
}

// NewClock builds a Clock with coefficient num/den. Both num and den must
// be positive: Uncompose and Cmp are only meaningful over strictly
// positive coefficients, so positivity is enforced here rather than
// re-checked at every use site.
func NewClock(num, den int64, v ident.Symbol) Clock {
	if num <= 0 || den <= 0 {
		panic("modaltypes: clock coefficient must be positive")
	}
	return Clock{Coeff: big.NewRat(num, den), Var: v}
}

// Comparable reports whether c and other share a clock variable.
func (c Clock) Comparable(other Clock) bool { return c.Var == other.Var }

// Equal reports exact equality (same var, same coefficient).
func (c Clock) Equal(other Clock) bool {
	return c.Var == other.Var && c.Coeff.Cmp(other.Coeff) == 0
}

// Cmp orders two comparable clocks by coefficient. ok is false when the
// clocks do not share a variable (incomparable).
func (c Clock) Cmp(other Clock) (cmp int, ok bool) {
	if !c.Comparable(other) {
		return 0, false
	}
	return c.Coeff.Cmp(other.Coeff), true
}

// Uncompose computes the clock c' = (1/c.Coeff - 1/other.Coeff)^-1: a
// tick's length is proportional to 1/Coeff, so one tick of c spans the
// same time as one tick of other followed by one tick of c'. Only
// meaningful between comparable, unequal clocks; panics otherwise, as the
// checker only ever calls it after establishing both preconditions via Cmp.
func (c Clock) Uncompose(other Clock) Clock {
	if !c.Comparable(other) {
		panic("modaltypes: Uncompose of clocks with different variables")
	}
	invC := new(big.Rat).Inv(c.Coeff)
	invOther := new(big.Rat).Inv(other.Coeff)
	diff := new(big.Rat).Sub(invC, invOther)
	if diff.Sign() == 0 {
		panic("modaltypes: Uncompose of equal clocks")
	}
	return Clock{Coeff: new(big.Rat).Inv(diff), Var: c.Var}
}

func (c Clock) String(in *ident.Interner) string {
	name := in.MustResolve(c.Var)
	if c.Coeff.IsInt() && c.Coeff.Num().Sign() == 1 && c.Coeff.Denom().Cmp(big.NewInt(1)) == 0 && c.Coeff.Num().Cmp(big.NewInt(1)) == 0 {
		return name
	}
	return fmt.Sprintf("%s %s", c.Coeff.RatString(), name)
}

// ArraySize is the compile-time-known length of an Array type.
type ArraySize uint64

// Type is the modal type language: Unit, Sample, Index, Stream, Function,
// Product, Sum, Later, Array, Box.
type Type interface {
	Pretty(in *ident.Interner) string
	Equal(other Type) bool
	// IsStable reports whether a value of this type is safe to keep across
	// a Box: it contains no Stream, Function, or Later former outside a
	// Box (a Box type is always stable).
	IsStable() bool
	typeNode()
}

type UnitType struct{}
type SampleType struct{}
type IndexType struct{}

type StreamType struct {
	Clock Clock
	Elem  Type
}

type FunctionType struct {
	Param  Type
	Result Type
}

type ProductType struct {
	Fst Type
	Snd Type
}

type SumType struct {
	Left  Type
	Right Type
}

// LaterType is ▷_c T: a value available one tick of clock c in the future.
type LaterType struct {
	Clock Clock
	Elem  Type
}

type ArrayType struct {
	Size ArraySize
	Elem Type
}

// BoxType is □T: a stable, time-independent value.
type BoxType struct {
	Elem Type
}

func (UnitType) typeNode()     {}
func (SampleType) typeNode()   {}
func (IndexType) typeNode()    {}
func (StreamType) typeNode()   {}
func (FunctionType) typeNode() {}
func (ProductType) typeNode()  {}
func (SumType) typeNode()      {}
func (LaterType) typeNode()    {}
func (ArrayType) typeNode()    {}
func (BoxType) typeNode()      {}

func (UnitType) IsStable() bool   { return true }
func (SampleType) IsStable() bool { return true }
func (IndexType) IsStable() bool  { return true }
func (StreamType) IsStable() bool { return false }
func (t FunctionType) IsStable() bool {
	return false
}
func (t ProductType) IsStable() bool { return t.Fst.IsStable() && t.Snd.IsStable() }
func (t SumType) IsStable() bool     { return t.Left.IsStable() && t.Right.IsStable() }
func (LaterType) IsStable() bool     { return false }
func (t ArrayType) IsStable() bool   { return t.Elem.IsStable() }
func (BoxType) IsStable() bool       { return true }

func (UnitType) Equal(other Type) bool {
	_, ok := other.(UnitType)
	return ok
}
func (SampleType) Equal(other Type) bool {
	_, ok := other.(SampleType)
	return ok
}
func (IndexType) Equal(other Type) bool {
	_, ok := other.(IndexType)
	return ok
}
func (t StreamType) Equal(other Type) bool {
	o, ok := other.(StreamType)
	return ok && t.Clock.Equal(o.Clock) && t.Elem.Equal(o.Elem)
}
func (t FunctionType) Equal(other Type) bool {
	o, ok := other.(FunctionType)
	return ok && t.Param.Equal(o.Param) && t.Result.Equal(o.Result)
}
func (t ProductType) Equal(other Type) bool {
	o, ok := other.(ProductType)
	return ok && t.Fst.Equal(o.Fst) && t.Snd.Equal(o.Snd)
}
func (t SumType) Equal(other Type) bool {
	o, ok := other.(SumType)
	return ok && t.Left.Equal(o.Left) && t.Right.Equal(o.Right)
}
func (t LaterType) Equal(other Type) bool {
	o, ok := other.(LaterType)
	return ok && t.Clock.Equal(o.Clock) && t.Elem.Equal(o.Elem)
}
func (t ArrayType) Equal(other Type) bool {
	o, ok := other.(ArrayType)
	return ok && t.Size == o.Size && t.Elem.Equal(o.Elem)
}
func (t BoxType) Equal(other Type) bool {
	o, ok := other.(BoxType)
	return ok && t.Elem.Equal(o.Elem)
}

// Pretty renders the type with the minimal parenthesization needed to
// round-trip: Function binds loosest, then Sum, then Product, formers
// tightest.
func (UnitType) Pretty(*ident.Interner) string   { return "unit" }
func (SampleType) Pretty(*ident.Interner) string { return "sample" }
func (IndexType) Pretty(*ident.Interner) string  { return "index" }
func (t StreamType) Pretty(in *ident.Interner) string {
	return fmt.Sprintf("~^(%s) %s", t.Clock.String(in), parenAtom(t.Elem, in))
}
func (t FunctionType) Pretty(in *ident.Interner) string {
	return fmt.Sprintf("%s -> %s", parenFunArg(t.Param, in), t.Result.Pretty(in))
}
func (t ProductType) Pretty(in *ident.Interner) string {
	return fmt.Sprintf("%s * %s", parenProd(t.Fst, in), parenProd(t.Snd, in))
}
func (t SumType) Pretty(in *ident.Interner) string {
	return fmt.Sprintf("%s + %s", parenSum(t.Left, in), parenSum(t.Right, in))
}
func (t LaterType) Pretty(in *ident.Interner) string {
	return fmt.Sprintf("|>^(%s) %s", t.Clock.String(in), parenAtom(t.Elem, in))
}
func (t ArrayType) Pretty(in *ident.Interner) string {
	return fmt.Sprintf("[%s; %d]", t.Elem.Pretty(in), t.Size)
}
func (t BoxType) Pretty(in *ident.Interner) string {
	return fmt.Sprintf("[] %s", parenAtom(t.Elem, in))
}

func parenAtom(t Type, in *ident.Interner) string {
	switch t.(type) {
	case UnitType, SampleType, IndexType, ArrayType:
		return t.Pretty(in)
	default:
		return "(" + t.Pretty(in) + ")"
	}
}

func parenFunArg(t Type, in *ident.Interner) string {
	if _, ok := t.(FunctionType); ok {
		return "(" + t.Pretty(in) + ")"
	}
	return t.Pretty(in)
}

func parenProd(t Type, in *ident.Interner) string {
	switch t.(type) {
	case FunctionType, SumType:
		return "(" + t.Pretty(in) + ")"
	default:
		return t.Pretty(in)
	}
}

func parenSum(t Type, in *ident.Interner) string {
	if _, ok := t.(FunctionType); ok {
		return "(" + t.Pretty(in) + ")"
	}
	return t.Pretty(in)
}

// Globals maps top-level definition names to their (closed) types.
type Globals map[ident.Symbol]Type
