// Command mizarcheck is a thin devtool that loads a single YAML+txtar
// fixture (internal/checkfixture) and runs one checker.Justify call,
// printing whether the premises were refuted. It is not part of the
// checker core; spec §1's Non-goals still exclude a real CLI or library
// accommodator, so the only input format this tool understands is the
// test fixture format internal/checkfixture already defines.
//
// Grounded on cuelang.org/go/cmd/cue's cobra.Command-per-subcommand
// layout (cmd/cue/cmd/root.go, get.go): a root command holding the shared
// compatibility flags, wired straight to checkflags.Config, with RunE
// doing the actual work instead of a deep subcommand tree this tool has
// no need for.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ayutac/mizar-go/internal/checkflags"
	"github.com/ayutac/mizar-go/internal/checkfixture"
	"github.com/ayutac/mizar-go/internal/core/checker"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var legacyFlex, attrSortBug, flexExpansionBug bool
	var logEval int

	cmd := &cobra.Command{
		Use:   "mizarcheck <fixture.txtar>",
		Short: "run one justify call against a YAML+txtar fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := checkfixture.ParseFile(args[0])
			if err != nil {
				return err
			}

			overrideStrict := true
			fx.Flags = &checkfixture.FlagsDTO{
				Strict:             &overrideStrict,
				LogEval:            &logEval,
				LegacyFlexHandling: &legacyFlex,
				AttrSortBug:        &attrSortBug,
				FlexExpansionBug:   &flexExpansionBug,
			}

			g, lc, premises, err := fx.Build()
			if err != nil {
				return err
			}

			err = checker.Justify(g, lc, premises, 0)
			if err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "refuted: justification holds")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "not refuted: %v\n", err)
			return nil
		},
	}

	addCompatFlags(cmd.Flags(), &legacyFlex, &attrSortBug, &flexExpansionBug, &logEval)

	return cmd
}

// addCompatFlags mirrors checkflags.Config's three compatibility switches
// (spec §6: "Implementations should expose these as a configuration
// record") onto f, following cmd/cue/cmd/flags.go's convention of taking
// a bare *pflag.FlagSet rather than a *cobra.Command so the flag wiring
// stays reusable across subcommands.
func addCompatFlags(f *pflag.FlagSet, legacyFlex, attrSortBug, flexExpansionBug *bool, logEval *int) {
	f.BoolVar(legacyFlex, "legacy-flex-handling", checkflags.Config{}.LegacyFlexHandling, "keep the pre-expansion flex-and conjunct alongside its unfolded range")
	f.BoolVar(attrSortBug, "attr-sort-bug", checkflags.Config{}.AttrSortBug, "reproduce the historical attribute tie-break ordering")
	f.BoolVar(flexExpansionBug, "flex-expansion-bug", checkflags.Config{}.FlexExpansionBug, "reproduce the historical off-by-one in flex-and expansion")
	f.IntVar(logEval, "log-eval", 0, "conjunct logging verbosity (0 disables; any higher value logs each conjunct)")
}
