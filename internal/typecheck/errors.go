// Package typecheck implements the bidirectional check/synthesize
// judgement over the modal type language, its subtyping relation, and
// the TypeError taxonomy that the judgement produces on failure.
package typecheck

import (
	"fmt"

	"github.com/lambdalisten/lambdalisten/internal/ast"
	"github.com/lambdalisten/lambdalisten/internal/ident"
	"github.com/lambdalisten/lambdalisten/internal/modaltypes"
)

// TypeError is the common interface every failure mode implements.
// internal/errors assigns each concrete error type its MTC### code with
// a type switch; the error reporter (internal/errors) is the only place
// that resolves symbols and renders source spans, so TypeError.Error()
// here stays structural (good enough for tests and %v, not for a user).
type TypeError interface {
	error
	typeError()
	// Range is the source span the error should be reported against.
	Range() ast.Span
	// Unwrap exposes a wrapped cause, if any, so errors.As/errors.Unwrap
	// can walk a dependent error's cause chain.
	Unwrap() error
}

type baseErr struct{ span ast.Span }

func (b baseErr) Range() ast.Span { return b.span }
func (baseErr) Unwrap() error     { return nil }
func (baseErr) typeError()        {}

// MismatchingTypes: check vs expected type disagree (via subtype).
type MismatchingTypes struct {
	baseErr
	Expr     ast.Expr
	Synth    modaltypes.Type
	Expected modaltypes.Type
}

func (e *MismatchingTypes) Error() string {
	return fmt.Sprintf("mismatching types: synthesized %T, expected %T", e.Synth, e.Expected)
}

// VariableNotFound: x is bound neither locally nor in globals.
type VariableNotFound struct {
	baseErr
	Var ident.Symbol
}

func (e *VariableNotFound) Error() string { return fmt.Sprintf("variable %d not found", e.Var) }

// BadArgument: an App's argument failed to check at the function's
// parameter type; wraps the inner check failure (dependent).
type BadArgument struct {
	baseErr
	ArgType  modaltypes.Type
	Fun, Arg ast.Expr
	Cause    TypeError
}

func (e *BadArgument) Error() string { return fmt.Sprintf("bad argument: %v", e.Cause) }
func (e *BadArgument) Unwrap() error { return e.Cause }

// NonFunctionApplication: App's function position didn't synthesize a
// FunctionType.
type NonFunctionApplication struct {
	baseErr
	Fun        ast.Expr
	ActualType modaltypes.Type
}

func (e *NonFunctionApplication) Error() string {
	return fmt.Sprintf("non-function application: %T is not a function", e.ActualType)
}

// SynthesisUnsupported: the construct has no synthesis rule (and no
// check rule took it either): the caller must annotate. Also the standing
// rejection for the reserved polymorphism forms; see SPEC_FULL.md's
// open-question decisions.
type SynthesisUnsupported struct {
	baseErr
	Expr ast.Expr
}

func (e *SynthesisUnsupported) Error() string { return "synthesis unsupported for this construct" }

// BadAnnotation: Annotate(e, T) failed to check e at T.
type BadAnnotation struct {
	baseErr
	Expr          ast.Expr
	PurportedType modaltypes.Type
	Cause         TypeError
}

func (e *BadAnnotation) Error() string { return fmt.Sprintf("bad annotation: %v", e.Cause) }
func (e *BadAnnotation) Unwrap() error { return e.Cause }

// LetSynthFailure: LetIn's unannotated bound expression failed to synth.
type LetSynthFailure struct {
	baseErr
	Var   ident.Symbol
	Expr  ast.Expr
	Cause TypeError
}

func (e *LetSynthFailure) Error() string { return fmt.Sprintf("let synth failure: %v", e.Cause) }
func (e *LetSynthFailure) Unwrap() error { return e.Cause }

// LetCheckFailure: LetIn's annotated bound expression failed to check.
type LetCheckFailure struct {
	baseErr
	Var          ident.Symbol
	ExpectedType modaltypes.Type
	Expr         ast.Expr
	Cause        TypeError
}

func (e *LetCheckFailure) Error() string { return fmt.Sprintf("let check failure: %v", e.Cause) }
func (e *LetCheckFailure) Unwrap() error { return e.Cause }

// ForcingNonThunk: Adv's stripped-context synthesis produced a type that
// is not a LaterType.
type ForcingNonThunk struct {
	baseErr
	Expr       ast.Expr
	ActualType modaltypes.Type
}

func (e *ForcingNonThunk) Error() string { return "forcing a non-thunk" }

// UnPairingNonProduct: UnPair's scrutinee didn't synthesize a ProductType.
type UnPairingNonProduct struct {
	baseErr
	Expr       ast.Expr
	ActualType modaltypes.Type
}

func (e *UnPairingNonProduct) Error() string { return "un-pairing a non-product" }

// CasingNonSum: Case's scrutinee didn't synthesize a SumType.
type CasingNonSum struct {
	baseErr
	Expr       ast.Expr
	ActualType modaltypes.Type
}

func (e *CasingNonSum) Error() string { return "casing a non-sum" }

// CouldNotUnify: Meet of two branch types found neither a subtype of
// the other.
type CouldNotUnify struct {
	baseErr
	Type1, Type2 modaltypes.Type
}

func (e *CouldNotUnify) Error() string { return "could not unify branch types" }

// MismatchingArraySize: an Array literal's length disagrees with its
// declared ArrayType size.
type MismatchingArraySize struct {
	baseErr
	ExpectedSize modaltypes.ArraySize
	FoundSize    int
}

func (e *MismatchingArraySize) Error() string {
	return fmt.Sprintf("expected array of size %d but found %d", e.ExpectedSize, e.FoundSize)
}

// UnGenningNonStream: UnGen's operand didn't synthesize a StreamType.
type UnGenningNonStream struct {
	baseErr
	Expr       ast.Expr
	ActualType modaltypes.Type
}

func (e *UnGenningNonStream) Error() string { return "un-genning a non-stream" }

// VariableTimingBad: a variable of non-stable type was used across one
// or more ticks.
type VariableTimingBad struct {
	baseErr
	Var     ident.Symbol
	Timing  []modaltypes.Clock
	VarType modaltypes.Type
}

func (e *VariableTimingBad) Error() string {
	return fmt.Sprintf("variable %d used with bad timing (%d ticks crossed)", e.Var, len(e.Timing))
}

// ForcingWithNoTick: Adv found no tick anywhere in the context.
type ForcingWithNoTick struct {
	baseErr
	Expr ast.Expr
}

func (e *ForcingWithNoTick) Error() string { return "forcing with no tick in context" }

// ForcingMismatchingClock: Adv found a tick, but its clock disagrees
// with the LaterType's clock.
type ForcingMismatchingClock struct {
	baseErr
	Expr             ast.Expr
	StrippedClock    modaltypes.Clock
	SynthesizedClock modaltypes.Clock
	RemainingType    modaltypes.Type
}

func (e *ForcingMismatchingClock) Error() string { return "forcing with mismatching clock" }

// UnboxingNonBox: Unbox's operand didn't synthesize a BoxType.
type UnboxingNonBox struct {
	baseErr
	Expr       ast.Expr
	ActualType modaltypes.Type
}

func (e *UnboxingNonBox) Error() string { return "unboxing a non-box" }
