// Copyright © 2025 The pysca authors

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/luthersystems/pysca/lint"
)

var (
	checkJSON     bool
	checkPretty   bool
	checkChecks   string
	checkListAll  bool
	checkExcludes []string
	checkStrict   bool
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [files...]",
	Short: "Run style checks on python source files",
	Long: `Run style checks on python source files.

Each non-blank line is examined by the per-line rules and the parsed
module feeds the identifier rules. Findings are reported per file in
line order with a stable code, S001 through S012.

With no files, reads from stdin. Arguments may name files or
directories; a directory is checked recursively, and a trailing /... is
accepted as an equivalent spelling.

Exit codes:
  0  No problems found
  1  One or more problems were reported
  2  Bad invocation (invalid flags, unreadable files, syntax errors)

Examples:
  pysca check file.py                         # Check a single file
  pysca check src ./tests/...                 # Directories and trees
  pysca check --json file.py                  # Output findings as JSON
  pysca check --pretty file.py                # Annotated source excerpts
  pysca check --checks=S003,S011 file.py      # Run only specific checks
  pysca check --list                          # List available checks
  pysca check --exclude='build' ./...         # Exclude a directory
  pysca check --strict-scope file.py          # Variable rule inside defs only
  cat file.py | pysca check                   # Check from stdin`,
	Run: func(cmd *cobra.Command, args []string) {
		if checkListAll {
			listChecks()
			return
		}

		analyzer := lint.New()
		analyzer.StrictScope = checkStrict
		if checkChecks != "" {
			enabled := make(map[lint.Code]bool)
			for _, name := range strings.Split(checkChecks, ",") {
				code, err := lint.ParseCode(strings.TrimSpace(name))
				if err != nil {
					fmt.Fprintf(os.Stderr, "pysca check: %v\n", err)
					os.Exit(2)
				}
				enabled[code] = true
			}
			analyzer.Enabled = enabled
		}

		if len(args) == 0 {
			if err := checkStdin(analyzer); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			return
		}

		expanded, err := expandArgs(args, checkExcludes)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		var allDiags []lint.Diagnostic
		for _, path := range expanded {
			diags, err := analyzer.CheckFile(path)
			if err != nil {
				renderCheckError(err)
				os.Exit(2)
			}
			allDiags = append(allDiags, diags...)
		}

		if len(allDiags) == 0 {
			return
		}

		reportDiags(allDiags)
		os.Exit(1)
	},
}

func checkStdin(analyzer *lint.Analyzer) error {
	src, err := readStdin()
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	diags, err := analyzer.CheckSource(src, "<stdin>")
	if err != nil {
		return err
	}
	if len(diags) == 0 {
		return nil
	}
	reportDiags(diags)
	os.Exit(1)
	return nil
}

func reportDiags(diags []lint.Diagnostic) {
	if checkJSON {
		if err := lint.FormatJSON(os.Stdout, diags); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		return
	}
	if checkPretty {
		renderCheckDiagnostics(diags)
		return
	}
	lint.FormatText(os.Stdout, diags)
}

func listChecks() {
	for _, checker := range lint.DefaultCheckers() {
		fmt.Printf("%s  %s\n", checker.Code, checker.Name)
		fmt.Println(wrapDoc(checker.Doc))
	}
	// The identifier rules run over the parsed tree rather than per line.
	treeRules := []struct {
		code lint.Code
		name string
		doc  string
	}{
		{lint.CodeArgumentName, "argument-name", "Report argument names that do not use snake_case."},
		{lint.CodeVariableName, "variable-name", "Report assigned variable names that do not use snake_case."},
		{lint.CodeMutableDefault, "mutable-default", "Report function defaults that are mutable values such as [] or {}."},
	}
	for _, rule := range treeRules {
		fmt.Printf("%s  %s\n", rule.code, rule.name)
		fmt.Println(wrapDoc(rule.doc))
	}
}

func wrapDoc(doc string) string {
	doc = indent.String(wordwrap.String(doc, 72), 4)
	return strings.TrimSuffix(doc, "\n")
}

func readStdin() ([]byte, error) {
	return io.ReadAll(os.Stdin)
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output findings as JSON.")
	checkCmd.Flags().BoolVar(&checkPretty, "pretty", false,
		"Render findings with source excerpts instead of one line each.")
	checkCmd.Flags().StringVar(&checkChecks, "checks", "",
		"Comma-separated list of check codes to report (default: all).")
	checkCmd.Flags().BoolVar(&checkListAll, "list", false,
		"List available checks and exit.")
	checkCmd.Flags().StringArrayVar(&checkExcludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
	checkCmd.Flags().BoolVar(&checkStrict, "strict-scope", false,
		"Only report S011 for variables assigned inside function bodies.")
}
