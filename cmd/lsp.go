// Copyright © 2025 The pysca authors

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/luthersystems/pysca/lint"
	"github.com/luthersystems/pysca/lsp"
)

// lspCmd represents the lsp command
func lspCmd() *cobra.Command {
	var (
		stdio       bool
		port        int
		strictScope bool
	)

	cmd := &cobra.Command{
		Use:   "lsp [flags]",
		Short: "Start the pysca Language Server Protocol server",
		Long: `Start an LSP server for python source files.

The language server publishes style findings as diagnostics while you
edit, re-checking documents on open, change, and save.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Examples:
  pysca lsp                          Start with stdio transport
  pysca lsp --stdio                  Same as above (explicit)
  pysca lsp --port 7998              Start with TCP on port 7998

Editor configuration (VS Code):
  Install a generic LSP client extension and configure it to run
  "pysca lsp --stdio" for .py files.`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			analyzer := lint.New()
			analyzer.StrictScope = strictScope
			srv := lsp.New(lsp.WithAnalyzer(analyzer))

			if !stdio && port > 0 {
				addr := fmt.Sprintf("localhost:%d", port)
				log.Printf("pysca LSP server listening on %s", addr)
				if err := srv.RunTCP(addr); err != nil {
					fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
					os.Exit(1)
				}
			} else {
				if err := srv.RunStdio(); err != nil {
					fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
					os.Exit(1)
				}
			}
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	cmd.Flags().IntVar(&port, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")
	cmd.Flags().BoolVar(&strictScope, "strict-scope", false,
		"Only flag variable names assigned inside function bodies")

	return cmd
}

func init() {
	rootCmd.AddCommand(lspCmd())
}
