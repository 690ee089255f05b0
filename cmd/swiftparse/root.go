package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"swiftparse/pkg/driver"
)

// newRootCmd builds the swiftparse command tree: one subcommand per
// driver.Mode, plus a shared --verbose flag that raises the session
// logger's level.
func newRootCmd() *cobra.Command {
	var verbose bool
	session := driver.NewSession()

	cmd := &cobra.Command{
		Use:   "swiftparse",
		Short: "Parse Swift source into a typed AST",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				session.Log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newParseCmd(session, driver.ModeModule, "module", "Parse a whole source file as a module"),
		newParseCmd(session, driver.ModeExpression, "expr", "Parse a single expression fragment"),
		newParseCmd(session, driver.ModeDeclaration, "decl", "Parse a single declaration fragment"),
		newParseCmd(session, driver.ModeCall, "call", "Parse a single call-expression fragment"),
		newParseCmd(session, driver.ModeInitializer, "init-expr", "Parse a single initializer-call fragment"),
		newBatchCmd(session),
	)

	return cmd
}
