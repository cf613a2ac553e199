// Command lisn is the Lambda-Listen front end's CLI driver: it checks,
// lowers, and closure-converts the fixed scenario battery (internal/repl),
// optionally memoizing results in a local cache and stamping compiled
// output with a build id.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/lambdalisten/lambdalisten/internal/ast"
	"github.com/lambdalisten/lambdalisten/internal/builtins"
	"github.com/lambdalisten/lambdalisten/internal/cache"
	"github.com/lambdalisten/lambdalisten/internal/closure"
	"github.com/lambdalisten/lambdalisten/internal/core1"
	"github.com/lambdalisten/lambdalisten/internal/errors"
	"github.com/lambdalisten/lambdalisten/internal/ident"
	"github.com/lambdalisten/lambdalisten/internal/manifest"
	"github.com/lambdalisten/lambdalisten/internal/modaltypes"
	"github.com/lambdalisten/lambdalisten/internal/repl"
	"github.com/lambdalisten/lambdalisten/internal/typecheck"
)

// Version is set by ldflags during a release build.
var Version = "dev"

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag  = flag.Bool("version", false, "Print version information")
		helpFlag     = flag.Bool("help", false, "Show help")
		manifestFlag = flag.String("manifest", "", "Path to a clocks.yaml project manifest")
		noCacheFlag  = flag.Bool("no-cache", false, "Disable sqlite memoization of check results")
		cacheFlag    = flag.String("cache", "lisn-cache.db", "Path to the sqlite check-result cache")
	)
	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	switch flag.Arg(0) {
	case "repl":
		repl.New(Version).Start(os.Stdout)
	case "list":
		for _, s := range repl.Scenarios {
			fmt.Printf("  %s  %s\n", bold(s.Name), s.Description)
		}
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing scenario name\n", red("Error"))
			fmt.Println("Usage: lisn check <scenario> [-manifest clocks.yaml] [-no-cache]")
			os.Exit(1)
		}
		runCheck(flag.Arg(1), *manifestFlag, *noCacheFlag, *cacheFlag)
	case "build":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing scenario name\n", red("Error"))
			fmt.Println("Usage: lisn build <scenario>")
			os.Exit(1)
		}
		runBuild(flag.Arg(1))
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), flag.Arg(0))
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("lisn %s\n", bold(Version))
	fmt.Println("Lambda-Listen front end")
}

func printHelp() {
	fmt.Println(bold("lisn - the Lambda-Listen front end"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  lisn <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  repl                 start the interactive scenario REPL")
	fmt.Println("  list                 list the fixed scenario battery")
	fmt.Println("  check <scenario>     check (and optionally cache) one scenario")
	fmt.Println("  build <scenario>     check, lower, closure-convert, and stamp a build id")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func runCheck(name, manifestPath string, noCache bool, cachePath string) {
	sc, ok := repl.Find(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: no such scenario %q\n", red("Error"), name)
		os.Exit(1)
	}

	in := ident.NewInterner()
	a := ast.NewArena()
	expr, expected := sc.Build(a, in)

	if manifestPath != "" {
		m, err := manifest.Load(manifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
		reg := manifest.NewRegistry(in, m)
		fmt.Printf("loaded clocks: %v\n", reg.Names())
	}

	var c *cache.Cache
	key := cache.Key(name, "v1")
	if !noCache {
		var err error
		c, err = cache.Open(cachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: opening cache: %v\n", red("Error"), err)
			os.Exit(1)
		}
		defer c.Close()

		if entry, err := c.Lookup(key); err == nil {
			if entry.OK {
				fmt.Printf("%s %s (cached)\n", green("ok:"), name)
			} else {
				fmt.Printf("%s %s (cached): %s\n", red("error:"), name, string(entry.Report))
				os.Exit(1)
			}
			return
		}
	}

	checker := typecheck.New(builtins.Default(in, builtins.DefaultBaseClock(in)))
	var checkErr typecheck.TypeError
	if expected != nil {
		checkErr = checker.Check(modaltypes.Empty, expr, expected)
	} else {
		_, checkErr = checker.Synthesize(modaltypes.Empty, expr)
	}

	if checkErr != nil {
		rep := errors.ReportTypeError(in, checkErr)
		data, _ := rep.ToJSON()
		if c != nil {
			_ = c.Store(key, false, data)
		}
		fmt.Fprintf(os.Stderr, "%s %s\n", red("type error:"), rep.Message)
		os.Exit(1)
	}

	if c != nil {
		_ = c.Store(key, true, nil)
	}
	fmt.Printf("%s %s\n", green("ok:"), name)
}

func runBuild(name string) {
	sc, ok := repl.Find(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: no such scenario %q\n", red("Error"), name)
		os.Exit(1)
	}

	in := ident.NewInterner()
	a := ast.NewArena()
	expr, expected := sc.Build(a, in)

	checker := typecheck.New(builtins.Default(in, builtins.DefaultBaseClock(in)))
	var checkErr typecheck.TypeError
	if expected != nil {
		checkErr = checker.Check(modaltypes.Empty, expr, expected)
	} else {
		_, checkErr = checker.Synthesize(modaltypes.Empty, expr)
	}
	if checkErr != nil {
		rep := errors.ReportTypeError(in, checkErr)
		fmt.Fprintf(os.Stderr, "%s %s\n", red("type error:"), rep.Message)
		os.Exit(1)
	}

	ir1, err := core1.Lower(expr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("lowering error:"), err)
		os.Exit(1)
	}

	_, globals := closure.Convert(ir1)

	buildID := uuid.New()
	fmt.Printf("%s %s\n", green("build id:"), buildID)
	fmt.Printf("%s %d global definition(s)\n", green("ok:"), len(globals))
}
