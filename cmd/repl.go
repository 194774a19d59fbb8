// Copyright © 2025 The pysca authors

package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/luthersystems/pysca/repl"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive style checker",
	Long: `Start an interactive loop that checks python snippets as you type.

A single-line statement is checked as soon as it is entered.  A line
that opens a block (ends with ':') or is left unfinished switches to a
continuation prompt; submit the buffered block with a blank line.  Line
editing and in-session command history are supported via readline.  Use
Ctrl-D to exit.

Example session:
  pysca> x = 1;
  <stdin>: Line 1: S003 Unnecessary semicolon
  pysca> def badName():
  ......     pass
  ......
  <stdin>: Line 1: S009 Function name 'badName' should use snake_case`,
	Run: func(cmd *cobra.Command, args []string) {
		repl.RunRepl(filepath.Base(os.Args[0]) + "> ")
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
