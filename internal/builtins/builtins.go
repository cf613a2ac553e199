// Package builtins constructs the ambient globals map the bidirectional
// checker is handed as an input: the built-in environment of arithmetic,
// stream primitives, and sample I/O, as a read-only Symbol -> Type map.
//
// Lambda-Listen's globals are necessarily monomorphic: the checker's
// only polymorphism forms (ClockLam/ClockApp/TypeApp/ExIntro/ExElim)
// are reserved and rejected (internal/typecheck), so every entry here
// is a single concrete Type, not a scheme to instantiate. The entries
// are type signatures only; this front end stops before anything runs.
package builtins

import (
	"github.com/lambdalisten/lambdalisten/internal/ident"
	"github.com/lambdalisten/lambdalisten/internal/modaltypes"
)

func curry2(a, b, result modaltypes.Type) modaltypes.Type {
	return modaltypes.FunctionType{Param: a, Result: modaltypes.FunctionType{Param: b, Result: result}}
}

// DefaultBaseClock names the clock the prelude's one stream primitive
// (silence) is pinned to for callers that have no project-specific
// clocks.yaml manifest (internal/manifest) to intern a clock name from.
func DefaultBaseClock(in *ident.Interner) modaltypes.Clock {
	return modaltypes.NewClock(1, 1, in.Intern("base"))
}

// Default builds the standard Lambda-Listen prelude: arithmetic over
// Sample and Index, a couple of transcendental functions, and sample I/O,
// every name interned through in so the resulting Globals lines up with
// whatever AST was parsed/built against the same interner.
//
// baseClock names the single clock variable the one stream primitive
// (Silence) is pinned to; a project with its own clocks.yaml manifest
// (internal/manifest) should intern its own clock names and build a
// second, project-specific Globals extending this one rather than
// expecting Default to guess a clock for them.
func Default(in *ident.Interner, baseClock modaltypes.Clock) modaltypes.Globals {
	g := modaltypes.Globals{}
	registerArithmetic(g, in)
	registerTranscendental(g, in)
	registerSampleIO(g, in)
	registerStreamPrimitives(g, in, baseClock)
	return g
}

// registerArithmetic registers the four curried Sample operators plus
// their Index counterparts. The surface grammar also spells arithmetic
// with `+`/`-`/`*`/`/` tokens via Binop, but a globals-map function is
// how a source program spells `add`/`sub`/`mul`/`div` used as ordinary
// values, e.g. passed to a higher-order stream combinator.
func registerArithmetic(g modaltypes.Globals, in *ident.Interner) {
	sample := modaltypes.SampleType{}
	index := modaltypes.IndexType{}

	for _, name := range []string{"add", "sub", "mul", "div"} {
		g[in.Intern(name)] = curry2(sample, sample, sample)
	}
	for _, name := range []string{"addIndex", "subIndex", "mulIndex"} {
		g[in.Intern(name)] = curry2(index, index, index)
	}
}

// registerTranscendental registers the unary Sample -> Sample functions
// and the pi constant an oscillator program reaches for first.
func registerTranscendental(g modaltypes.Globals, in *ident.Interner) {
	sample := modaltypes.SampleType{}
	unary := modaltypes.FunctionType{Param: sample, Result: sample}

	g[in.Intern("pi")] = sample
	g[in.Intern("sin")] = unary
	g[in.Intern("cos")] = unary
	g[in.Intern("sqrtSample")] = unary
}

// registerSampleIO registers the two ambient I/O primitives: reading the
// next input sample, and emitting one output sample. Both are
// Unit-mediated since this front end has no effect system of its own;
// they exist at the type level so a checked program can reference them
// by name and have the downstream code generator bind them to the
// runtime's actual sample ring buffer.
func registerSampleIO(g modaltypes.Globals, in *ident.Interner) {
	unit := modaltypes.UnitType{}
	sample := modaltypes.SampleType{}

	g[in.Intern("readSample")] = modaltypes.FunctionType{Param: unit, Result: sample}
	g[in.Intern("writeSample")] = modaltypes.FunctionType{Param: sample, Result: unit}
}

// registerStreamPrimitives registers one ambient stream value, Silence:
// an infinite Stream of Sample(0.0) at baseClock, standing in for the
// kind of constant-stream primitive a real prelude would provide (the
// checker has no way to generalize this over an arbitrary clock, per
// this package's doc comment, so it is pinned to whichever clock the
// caller names).
func registerStreamPrimitives(g modaltypes.Globals, in *ident.Interner, baseClock modaltypes.Clock) {
	g[in.Intern("silence")] = modaltypes.StreamType{Clock: baseClock, Elem: modaltypes.SampleType{}}
}
