// Package repl implements an interactive driver over the fixed battery of
// scenarios in scenarios.go, pushing each chosen scenario through
// check -> lower -> closure-convert and reporting the outcome.
//
// The surface lexer/parser lives outside this front end, so the REPL
// cannot read free-form source text; :run takes a scenario name instead
// of an expression.
package repl

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/lambdalisten/lambdalisten/internal/ast"
	"github.com/lambdalisten/lambdalisten/internal/builtins"
	"github.com/lambdalisten/lambdalisten/internal/closure"
	"github.com/lambdalisten/lambdalisten/internal/core1"
	"github.com/lambdalisten/lambdalisten/internal/errors"
	"github.com/lambdalisten/lambdalisten/internal/ident"
	"github.com/lambdalisten/lambdalisten/internal/modaltypes"
	"github.com/lambdalisten/lambdalisten/internal/schema"
	"github.com/lambdalisten/lambdalisten/internal/typecheck"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// REPL drives the scenario battery.
type REPL struct {
	version string
	history []string
}

// New creates a REPL reporting the given version string in its banner.
func New(version string) *REPL {
	if version == "" {
		version = "dev"
	}
	return &REPL{version: version}
}

// Start runs the read loop against in/out until the user quits or EOF.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".lisn_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(in string) (c []string) {
		commands := []string{":help", ":list", ":run", ":quit"}
		for _, cmd := range commands {
			if strings.HasPrefix(cmd, in) {
				c = append(c, cmd)
			}
		}
		return
	})

	fmt.Fprintf(out, "%s %s\n", bold("lisn"), bold(r.version))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	for {
		input, err := line.Prompt("lisn> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		r.history = append(r.history, input)

		if input == ":quit" || input == ":q" {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}

		r.Handle(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// Handle dispatches a single command line (exported so the REPL's command
// table can be driven from tests without a live terminal).
func (r *REPL) Handle(input string, out io.Writer) {
	fields := strings.Fields(input)
	switch fields[0] {
	case ":help", ":h":
		r.printHelp(out)
	case ":list", ":l":
		r.listScenarios(out)
	case ":history":
		for i, h := range r.history {
			fmt.Fprintf(out, "%3d  %s\n", i+1, h)
		}
	case ":run", ":r":
		if len(fields) < 2 {
			fmt.Fprintln(out, "Usage: :run <scenario-name>")
			return
		}
		r.runScenario(fields[1], out)
	case ":compact":
		if len(fields) < 2 {
			fmt.Fprintln(out, "Usage: :compact on|off")
			return
		}
		enabled := fields[1] == "on"
		schema.SetCompactMode(enabled)
		fmt.Fprintf(out, "Compact JSON mode %s\n", yellow(fields[1]))
	default:
		fmt.Fprintf(out, "%s: unknown command %q (try :help)\n", red("Error"), fields[0])
	}
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, bold("Commands:"))
	fmt.Fprintln(out, "  :list            list the fixed scenario battery")
	fmt.Fprintln(out, "  :run <name>      check, lower, and closure-convert a scenario")
	fmt.Fprintln(out, "  :compact on|off  toggle compact JSON error reports")
	fmt.Fprintln(out, "  :history         show commands entered this session")
	fmt.Fprintln(out, "  :quit            exit")
}

func (r *REPL) listScenarios(out io.Writer) {
	for _, s := range Scenarios {
		fmt.Fprintf(out, "  %s %s\n", cyan(s.Name), dim(s.Description))
	}
}

func (r *REPL) runScenario(name string, out io.Writer) {
	sc, ok := Find(name)
	if !ok {
		fmt.Fprintf(out, "%s: no such scenario %q (try :list)\n", red("Error"), name)
		return
	}

	in := ident.NewInterner()
	a := ast.NewArena()
	expr, expected := sc.Build(a, in)

	checker := typecheck.New(builtins.Default(in, builtins.DefaultBaseClock(in)))

	var checkErr typecheck.TypeError
	var synthType modaltypes.Type
	if expected != nil {
		checkErr = checker.Check(modaltypes.Empty, expr, expected)
	} else {
		synthType, checkErr = checker.Synthesize(modaltypes.Empty, expr)
	}

	if checkErr != nil {
		rep := errors.ReportTypeError(in, checkErr)
		fmt.Fprintf(out, "%s %s\n", red("type error:"), rep.Message)
		if data, err := rep.ToJSON(); err == nil {
			fmt.Fprintln(out, dim(string(data)))
		}
		return
	}

	if expected != nil {
		fmt.Fprintf(out, "%s checks at %s\n", green("ok:"), expected.Pretty(in))
	} else {
		fmt.Fprintf(out, "%s synthesized %s\n", green("ok:"), synthType.Pretty(in))
	}

	ir1, lowerErr := core1.Lower(expr)
	if lowerErr != nil {
		var le *core1.LowerError
		if stderrors.As(lowerErr, &le) {
			rep := errors.ReportLowerError(le)
			fmt.Fprintf(out, "%s %s\n", yellow("lowering error:"), rep.Message)
			return
		}
		fmt.Fprintf(out, "%s %v\n", yellow("lowering error:"), lowerErr)
		return
	}
	fmt.Fprintf(out, "%s lowered to IR1\n", green("ok:"))

	_, globals := closure.Convert(ir1)
	fmt.Fprintf(out, "%s closure-converted, %d global(s) emitted\n", green("ok:"), len(globals))
}
