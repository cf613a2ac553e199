// Package errors centralizes this front end's error code taxonomy and
// the structured Report every TypeError (and the one core1 lowering
// failure mode) gets rendered into before it crosses a package
// boundary.
//
// Two phases cover everything this front end can fail at: MTC (modal
// type checking, one code per internal/typecheck.TypeError variant) and
// CLO (closure-conversion lowering).
package errors

const (
	MTC001 = "MTC001" // MismatchingTypes
	MTC002 = "MTC002" // VariableNotFound
	MTC003 = "MTC003" // BadArgument
	MTC004 = "MTC004" // NonFunctionApplication
	MTC005 = "MTC005" // SynthesisUnsupported
	MTC006 = "MTC006" // BadAnnotation
	MTC007 = "MTC007" // LetSynthFailure
	MTC008 = "MTC008" // LetCheckFailure
	MTC009 = "MTC009" // ForcingNonThunk
	MTC010 = "MTC010" // UnPairingNonProduct
	MTC011 = "MTC011" // CasingNonSum
	MTC012 = "MTC012" // CouldNotUnify
	MTC013 = "MTC013" // MismatchingArraySize
	MTC014 = "MTC014" // UnGenningNonStream
	MTC015 = "MTC015" // VariableTimingBad
	MTC016 = "MTC016" // ForcingWithNoTick
	MTC017 = "MTC017" // ForcingMismatchingClock
	MTC018 = "MTC018" // UnboxingNonBox

	CLO001 = "CLO001" // lowering reached a reserved/rejected construct
)

// ErrorInfo describes one error code's place in the taxonomy.
type ErrorInfo struct {
	Code        string
	Phase       string
	Description string
}

// ErrorRegistry maps every code this package issues to its ErrorInfo.
var ErrorRegistry = map[string]ErrorInfo{
	MTC001: {MTC001, "typecheck", "Synthesized type does not match the expected type"},
	MTC002: {MTC002, "typecheck", "Variable not found locally or in globals"},
	MTC003: {MTC003, "typecheck", "Argument failed to check at the parameter type"},
	MTC004: {MTC004, "typecheck", "Applied expression is not a function"},
	MTC005: {MTC005, "typecheck", "Construct has no synthesis rule; needs an annotation"},
	MTC006: {MTC006, "typecheck", "Annotated expression failed to check at its own annotation"},
	MTC007: {MTC007, "typecheck", "Let-bound expression failed to synthesize"},
	MTC008: {MTC008, "typecheck", "Let-bound expression failed to check at its annotation"},
	MTC009: {MTC009, "typecheck", "Forced expression is not a delayed value"},
	MTC010: {MTC010, "typecheck", "Destructured expression is not a product"},
	MTC011: {MTC011, "typecheck", "Cased expression is not a sum"},
	MTC012: {MTC012, "typecheck", "Case branch types could not be unified"},
	MTC013: {MTC013, "typecheck", "Array literal length disagrees with its declared size"},
	MTC014: {MTC014, "typecheck", "Observed expression is not a stream"},
	MTC015: {MTC015, "typecheck", "Non-stable variable used across a tick"},
	MTC016: {MTC016, "typecheck", "Forcing attempted with no tick in context"},
	MTC017: {MTC017, "typecheck", "Forcing attempted against a mismatching clock"},
	MTC018: {MTC018, "typecheck", "Unboxed expression is not a box"},

	CLO001: {CLO001, "lowering", "Construct reached lowering without having been rejected at type-checking time"},
}

// GetErrorInfo returns the registered information for code, if any.
func GetErrorInfo(code string) (ErrorInfo, bool) {
	info, ok := ErrorRegistry[code]
	return info, ok
}
