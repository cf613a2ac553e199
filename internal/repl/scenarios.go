package repl

import (
	"github.com/lambdalisten/lambdalisten/internal/ast"
	"github.com/lambdalisten/lambdalisten/internal/ident"
	"github.com/lambdalisten/lambdalisten/internal/modaltypes"
)

// Scenario is one fixed, pre-built named-AST example the REPL can drive
// through check/lower/closure-convert. Since the surface lexer/parser
// lives outside this front end, the REPL cannot accept arbitrary
// typed-in source text; instead it offers a battery of hand-built trees.
type Scenario struct {
	Name        string
	Description string
	// Build constructs the scenario's tree in a fresh arena/interner and
	// returns the expression together with the type to Check it against.
	// If Expected is nil, the REPL synthesizes instead of checking.
	Build func(a *ast.Arena, in *ident.Interner) (e ast.Expr, expected modaltypes.Type)
}

// Scenarios is the fixed battery offered by :list / :run.
var Scenarios = []Scenario{
	{
		Name:        "identity",
		Description: "\\x -> x, checked at Sample -> Sample",
		Build: func(a *ast.Arena, in *ident.Interner) (ast.Expr, modaltypes.Type) {
			x := in.Intern("x")
			e := ast.NewLam(a, ast.NoSpan, x, ast.NewVar(a, ast.NoSpan, x))
			return e, modaltypes.FunctionType{Param: modaltypes.SampleType{}, Result: modaltypes.SampleType{}}
		},
	},
	{
		Name:        "pair-roundtrip",
		Description: "unpair(pair(1, ())) returns the first index back out",
		Build: func(a *ast.Arena, in *ident.Interner) (ast.Expr, modaltypes.Type) {
			f, s := in.Intern("f"), in.Intern("s")
			pairTy := modaltypes.ProductType{Fst: modaltypes.IndexType{}, Snd: modaltypes.UnitType{}}
			pair := ast.NewAnnotate(a, ast.NoSpan,
				ast.NewPair(a, ast.NoSpan, ast.NewIndex(a, ast.NoSpan, 1), ast.NewUnit(a, ast.NoSpan)), pairTy)
			e := ast.NewUnPair(a, ast.NoSpan, f, s, pair, ast.NewVar(a, ast.NoSpan, f))
			return e, modaltypes.IndexType{}
		},
	},
	{
		Name:        "box-unbox",
		Description: "unbox(box(())) at type Unit",
		Build: func(a *ast.Arena, in *ident.Interner) (ast.Expr, modaltypes.Type) {
			boxed := ast.NewAnnotate(a, ast.NoSpan,
				ast.NewBox(a, ast.NoSpan, ast.NewUnit(a, ast.NoSpan)), modaltypes.BoxType{Elem: modaltypes.UnitType{}})
			e := ast.NewUnbox(a, ast.NoSpan, boxed)
			return e, modaltypes.UnitType{}
		},
	},
	{
		Name:        "case-sum",
		Description: "case InL(()) of InL y -> y | InR z -> z, checked at Unit",
		Build: func(a *ast.Arena, in *ident.Interner) (ast.Expr, modaltypes.Type) {
			y, z := in.Intern("y"), in.Intern("z")
			sumTy := modaltypes.SumType{Left: modaltypes.UnitType{}, Right: modaltypes.UnitType{}}
			scrut := ast.NewAnnotate(a, ast.NoSpan, ast.NewInL(a, ast.NoSpan, ast.NewUnit(a, ast.NoSpan)), sumTy)
			e := ast.NewCase(a, ast.NoSpan, scrut, y, ast.NewVar(a, ast.NoSpan, y), z, ast.NewVar(a, ast.NoSpan, z))
			return e, modaltypes.UnitType{}
		},
	},
	{
		Name:        "lob-trivial",
		Description: "lob self. () under clock c, checked at Unit (self left unused)",
		Build: func(a *ast.Arena, in *ident.Interner) (ast.Expr, modaltypes.Type) {
			self := in.Intern("self")
			c := modaltypes.NewClock(1, 1, in.Intern("c"))
			e := ast.NewLob(a, ast.NoSpan, c, self, ast.NewUnit(a, ast.NoSpan))
			return e, modaltypes.UnitType{}
		},
	},
	{
		Name:        "lob-delay-unbox",
		Description: "lob self. adv(unbox(self)) under clock c, checked at Unit (fails: no tick in scope)",
		Build: func(a *ast.Arena, in *ident.Interner) (ast.Expr, modaltypes.Type) {
			self := in.Intern("self")
			c := modaltypes.NewClock(1, 1, in.Intern("c"))
			// self : Box(Later_c(Unit)); adv(unbox(self)) : Unit, but that
			// synthesis needs a tick already in scope, which a bare Lob body
			// does not have -- so this scenario is expected to fail with
			// ForcingWithNoTick (MTC016), demonstrating that error path.
			body := ast.NewAdv(a, ast.NoSpan, ast.NewUnbox(a, ast.NoSpan, ast.NewVar(a, ast.NoSpan, self)))
			e := ast.NewLob(a, ast.NoSpan, c, self, body)
			return e, modaltypes.UnitType{}
		},
	},
	{
		Name:        "lob-stream",
		Description: "lob s. \\x -> x :: delay(adv(unbox s) x), a constant stream generator at sample -> stream",
		Build: func(a *ast.Arena, in *ident.Interner) (ast.Expr, modaltypes.Type) {
			s, x := in.Intern("s"), in.Intern("x")
			clk := modaltypes.NewClock(1, 1, in.Intern("c"))
			streamTy := modaltypes.StreamType{Clock: clk, Elem: modaltypes.SampleType{}}

			advS := ast.NewAdv(a, ast.NoSpan, ast.NewUnbox(a, ast.NoSpan, ast.NewVar(a, ast.NoSpan, s)))
			tail := ast.NewDelay(a, ast.NoSpan,
				ast.NewApp(a, ast.NoSpan, advS, ast.NewVar(a, ast.NoSpan, x)))
			gen := ast.NewGen(a, ast.NoSpan, ast.NewVar(a, ast.NoSpan, x), tail)
			lam := ast.NewLam(a, ast.NoSpan, x, gen)
			e := ast.NewLob(a, ast.NoSpan, clk, s, lam)
			return e, modaltypes.FunctionType{Param: modaltypes.SampleType{}, Result: streamTy}
		},
	},
	{
		Name:        "var-not-found",
		Description: "an unbound variable, to show a MTC002 error report",
		Build: func(a *ast.Arena, in *ident.Interner) (ast.Expr, modaltypes.Type) {
			return ast.NewVar(a, ast.NoSpan, in.Intern("undefined")), nil
		},
	},
}

// Find returns the scenario named name, if any.
func Find(name string) (Scenario, bool) {
	for _, s := range Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}
