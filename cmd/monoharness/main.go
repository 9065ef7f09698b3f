// Command monoharness is a developer smoke-test driver for the
// monomorphization pass: it builds one of a handful of embedded
// example roots (or a fixture-described one), runs it through the
// driver, and prints a colorized summary of the specialized
// definitions and any internal compiler errors. The pass itself has
// no file format or wire protocol of its own; this binary exists only
// to exercise it by hand.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ailang-tools/monomorph/internal/mono"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

var (
	verbose bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "monoharness",
	Short: "Smoke-test driver for the monomorphization pass",
	Long: `monoharness builds embedded example program roots, runs them through
the whole-program monomorphization driver, and reports the specialized
definitions produced or the internal compiler error raised.`,
}

var runCmd = &cobra.Command{
	Use:   "run [example]",
	Short: "Run the driver over one embedded example and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, ok := findExample(args[0])
		if !ok {
			return fmt.Errorf("unknown example %q (see list-examples)", args[0])
		}
		return runExample(ex)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [fixture.yaml]",
	Short: "Run the driver over a fixture-described example and verify its expectations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := LoadFixture(args[0])
		if err != nil {
			return err
		}
		return checkFixture(f)
	},
}

var listExamplesCmd = &cobra.Command{
	Use:   "list-examples",
	Short: "List the embedded example roots",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, ex := range examples {
			fmt.Printf("%s\t%s\n", bold(ex.name), ex.description)
		}
		return nil
	},
}

func runExample(ex exampleRoot) error {
	root := ex.build()
	out, err := mono.NewDriver(root).Run()
	if err != nil {
		printError(ex.name, err)
		return err
	}

	fmt.Printf("%s %s: %d specialized definitions\n", green("OK"), ex.name, len(out.Defs))
	for sym, def := range out.Defs {
		if len(def.Spec.TParams) != 0 {
			fmt.Printf("  %s %s retained %d type parameters\n", yellow("WARN"), sym, len(def.Spec.TParams))
			continue
		}
		if verbose {
			fmt.Printf("  %s : %s = %s\n", sym, def.Spec.Scheme.Base, def.Body)
			continue
		}
		fmt.Printf("  %s : %s\n", sym, def.Spec.Scheme.Base)
	}
	return nil
}

// printError reports a driver failure either as a colorized one-liner
// or, with --json, as the structured Report encoding (via
// mono.ICE.AsReport), for tooling that consumes the pass's
// diagnostics the same way it consumes the rest of the compiler's.
func printError(label string, err error) {
	if jsonOut {
		if ice, ok := err.(*mono.ICE); ok {
			if out, jerr := ice.AsReport().ToJSON(false); jerr == nil {
				fmt.Println(out)
				return
			}
		}
	}
	fmt.Printf("%s %s: %v\n", red("ICE"), label, err)
}

func checkFixture(f *Fixture) error {
	ex, _ := findExample(f.Example)
	root := ex.build()
	out, err := mono.NewDriver(root).Run()

	if f.ExpectError {
		if err == nil {
			return fmt.Errorf("%s: expected an internal compiler error, got none", f.ID)
		}
		fmt.Printf("%s %s: got expected error: %v\n", green("OK"), f.ID, err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: unexpected internal compiler error: %w", f.ID, err)
	}
	if len(out.Defs) < f.MinDefs {
		return fmt.Errorf("%s: expected at least %d specialized defs, got %d", f.ID, f.MinDefs, len(out.Defs))
	}
	fmt.Printf("%s %s: %d specialized definitions (>= %d expected)\n", green("OK"), f.ID, len(out.Defs), f.MinDefs)
	return nil
}

// registerVerboseFlag attaches the shared --verbose flag to fs. Typed
// against *pflag.FlagSet directly (rather than relying solely on
// cobra's re-export) so the flag's shorthand collision checking runs
// against pflag's own rules if another flag is added later.
func registerVerboseFlag(fs *pflag.FlagSet) {
	fs.BoolVarP(&verbose, "verbose", "v", false, "print extra specialization detail")
	fs.BoolVar(&jsonOut, "json", false, "report internal compiler errors as structured JSON")
}

func init() {
	registerVerboseFlag(rootCmd.PersistentFlags())
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listExamplesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		os.Exit(1)
	}
}
