package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"swiftparse/pkg/driver"
)

// newBatchCmd builds the "batch" subcommand: it parses many files
// concurrently under a single mode, the CLI surface for
// driver.Session.ParseFiles's "independent parses, no coordination"
// contract.
func newBatchCmd(session *driver.Session) *cobra.Command {
	var modeFlag string
	var concurrency int
	var dumpAST bool

	cmd := &cobra.Command{
		Use:   "batch [files...]",
		Short: "Parse many files concurrently under a single mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("batch: requires at least one file")
			}
			mode, err := parseModeFlag(modeFlag)
			if err != nil {
				return err
			}

			session.MaxConcurrency = concurrency
			results, aggErr := session.ParseFiles(mode, args)
			for _, r := range results {
				if err := reportResult(session, r, dumpAST); err != nil {
					return err
				}
			}
			if aggErr != nil {
				fmt.Fprintf(os.Stderr, "batch: %d of %d files failed\n", countFailures(results), len(results))
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", string(driver.ModeModule), "parse mode: module, expression, declaration, call, initializer")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "maximum number of files parsed at once (0 = unbounded)")
	cmd.Flags().BoolVar(&dumpAST, "ast", false, "print each parsed AST on success")

	return cmd
}

func parseModeFlag(raw string) (driver.Mode, error) {
	switch driver.Mode(raw) {
	case driver.ModeModule, driver.ModeExpression, driver.ModeDeclaration, driver.ModeCall, driver.ModeInitializer:
		return driver.Mode(raw), nil
	default:
		return "", fmt.Errorf("unknown --mode %q", raw)
	}
}

func countFailures(results []driver.Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
