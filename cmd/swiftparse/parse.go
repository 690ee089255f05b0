package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"swiftparse/pkg/driver"
)

// newParseCmd builds one mode-specific subcommand: it reads each
// argument as a file path (or, with --stdin, reads a single fragment
// from standard input), parses it in the given mode, and reports the
// outcome.
func newParseCmd(session *driver.Session, mode driver.Mode, use, short string) *cobra.Command {
	var fromStdin bool
	var dumpAST bool

	cmd := &cobra.Command{
		Use:   use + " [files...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromStdin {
				content, err := readStdin()
				if err != nil {
					return err
				}
				result := session.ParseString(mode, "<stdin>", content)
				return reportResult(session, result, dumpAST)
			}
			if len(args) == 0 {
				return fmt.Errorf("%s: requires at least one file, or --stdin", use)
			}
			results, aggErr := session.ParseFiles(mode, args)
			for _, r := range results {
				if err := reportResult(session, r, dumpAST); err != nil {
					return err
				}
			}
			if aggErr != nil {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read a single fragment from standard input instead of files")
	cmd.Flags().BoolVar(&dumpAST, "ast", false, "print the parsed AST on success")

	return cmd
}

func readStdin() (string, error) {
	var b []byte
	buf := make([]byte, 4096)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			b = append(b, buf[:n]...)
		}
		if err != nil {
			break
		}
	}
	return string(b), nil
}

func reportResult(session *driver.Session, r driver.Result, dumpAST bool) error {
	if !session.DisplayResult(r) {
		return nil
	}
	name := "<stdin>"
	if r.Source != nil {
		name = r.Source.DisplayPath()
	}
	fmt.Fprintf(os.Stdout, "%s: parsed OK (%T)\n", name, r.Value)
	if dumpAST {
		spew.Dump(r.Value)
	}
	return nil
}
