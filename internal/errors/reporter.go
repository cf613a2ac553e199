package errors

import (
	"fmt"

	"github.com/lambdalisten/lambdalisten/internal/core1"
	"github.com/lambdalisten/lambdalisten/internal/ident"
	"github.com/lambdalisten/lambdalisten/internal/schema"
	"github.com/lambdalisten/lambdalisten/internal/typecheck"
)

// ReportTypeError renders a TypeError as a *Report, resolving every
// identifier it mentions through in and every type through its Pretty
// printer, carrying enough structure for an external tool to point at
// the exact source span and name the exact variables involved.
//
// Dependent errors (BadArgument, BadAnnotation, LetSynthFailure,
// LetCheckFailure) recurse into their Cause and fold it into Data under
// the "cause" key, so a caller sees the whole chain in one Report
// rather than having to walk Unwrap() itself.
func ReportTypeError(in *ident.Interner, err typecheck.TypeError) *Report {
	span := err.Range()
	r := &Report{Schema: schema.ErrorV1, Phase: "typecheck", Span: &span, Data: map[string]any{}}

	switch e := err.(type) {
	case *typecheck.MismatchingTypes:
		r.Code = MTC001
		r.Message = fmt.Sprintf("expected %s but found %s", e.Expected.Pretty(in), e.Synth.Pretty(in))
		r.Data["expected"] = e.Expected.Pretty(in)
		r.Data["found"] = e.Synth.Pretty(in)
	case *typecheck.VariableNotFound:
		r.Code = MTC002
		r.Message = fmt.Sprintf("variable %q not found", in.MustResolve(e.Var))
		r.Data["variable"] = in.MustResolve(e.Var)
	case *typecheck.BadArgument:
		r.Code = MTC003
		r.Message = fmt.Sprintf("argument does not check at parameter type %s", e.ArgType.Pretty(in))
		r.Data["expected_param_type"] = e.ArgType.Pretty(in)
		r.Data["cause"] = ReportTypeError(in, e.Cause)
	case *typecheck.NonFunctionApplication:
		r.Code = MTC004
		r.Message = fmt.Sprintf("cannot apply a value of type %s", e.ActualType.Pretty(in))
		r.Data["actual_type"] = e.ActualType.Pretty(in)
	case *typecheck.SynthesisUnsupported:
		r.Code = MTC005
		r.Message = fmt.Sprintf("%s needs a type annotation", e.Expr)
	case *typecheck.BadAnnotation:
		r.Code = MTC006
		r.Message = fmt.Sprintf("expression does not check at its own annotation %s", e.PurportedType.Pretty(in))
		r.Data["purported_type"] = e.PurportedType.Pretty(in)
		r.Data["cause"] = ReportTypeError(in, e.Cause)
	case *typecheck.LetSynthFailure:
		r.Code = MTC007
		r.Message = fmt.Sprintf("could not infer a type for let-bound variable %q", in.MustResolve(e.Var))
		r.Data["variable"] = in.MustResolve(e.Var)
		r.Data["cause"] = ReportTypeError(in, e.Cause)
	case *typecheck.LetCheckFailure:
		r.Code = MTC008
		r.Message = fmt.Sprintf("let-bound variable %q does not check at %s", in.MustResolve(e.Var), e.ExpectedType.Pretty(in))
		r.Data["variable"] = in.MustResolve(e.Var)
		r.Data["expected_type"] = e.ExpectedType.Pretty(in)
		r.Data["cause"] = ReportTypeError(in, e.Cause)
	case *typecheck.ForcingNonThunk:
		r.Code = MTC009
		r.Message = fmt.Sprintf("cannot force a value of type %s", e.ActualType.Pretty(in))
		r.Data["actual_type"] = e.ActualType.Pretty(in)
	case *typecheck.UnPairingNonProduct:
		r.Code = MTC010
		r.Message = fmt.Sprintf("cannot destructure a value of type %s as a pair", e.ActualType.Pretty(in))
		r.Data["actual_type"] = e.ActualType.Pretty(in)
	case *typecheck.CasingNonSum:
		r.Code = MTC011
		r.Message = fmt.Sprintf("cannot case on a value of type %s", e.ActualType.Pretty(in))
		r.Data["actual_type"] = e.ActualType.Pretty(in)
	case *typecheck.CouldNotUnify:
		r.Code = MTC012
		r.Message = fmt.Sprintf("case branches disagree: %s vs %s", e.Type1.Pretty(in), e.Type2.Pretty(in))
		r.Data["left_branch_type"] = e.Type1.Pretty(in)
		r.Data["right_branch_type"] = e.Type2.Pretty(in)
	case *typecheck.MismatchingArraySize:
		r.Code = MTC013
		r.Message = fmt.Sprintf("expected an array of size %d but found %d elements", e.ExpectedSize, e.FoundSize)
		r.Data["expected_size"] = e.ExpectedSize
		r.Data["found_size"] = e.FoundSize
	case *typecheck.UnGenningNonStream:
		r.Code = MTC014
		r.Message = fmt.Sprintf("cannot observe a value of type %s as a stream", e.ActualType.Pretty(in))
		r.Data["actual_type"] = e.ActualType.Pretty(in)
	case *typecheck.VariableTimingBad:
		r.Code = MTC015
		r.Message = fmt.Sprintf("variable %q of type %s crossed %d tick(s) without being stable",
			in.MustResolve(e.Var), e.VarType.Pretty(in), len(e.Timing))
		r.Data["variable"] = in.MustResolve(e.Var)
		r.Data["ticks_crossed"] = len(e.Timing)
	case *typecheck.ForcingWithNoTick:
		r.Code = MTC016
		r.Message = "forcing a delayed value with no tick in scope"
	case *typecheck.ForcingMismatchingClock:
		r.Code = MTC017
		r.Message = fmt.Sprintf("forcing against a mismatching clock (expected %s)", e.SynthesizedClock.String(in))
		r.Data["stripped_clock"] = e.StrippedClock.String(in)
		r.Data["synthesized_clock"] = e.SynthesizedClock.String(in)
	case *typecheck.UnboxingNonBox:
		r.Code = MTC018
		r.Message = fmt.Sprintf("cannot unbox a value of type %s", e.ActualType.Pretty(in))
		r.Data["actual_type"] = e.ActualType.Pretty(in)
	default:
		r.Code = "MTC000"
		r.Message = err.Error()
	}

	if len(r.Data) == 0 {
		r.Data = nil
	}
	return r
}

// ReportLowerError renders a core1.LowerError as a *Report.
func ReportLowerError(err *core1.LowerError) *Report {
	return &Report{
		Schema:  schema.ErrorV1,
		Code:    CLO001,
		Phase:   "lowering",
		Message: err.Error(),
	}
}
