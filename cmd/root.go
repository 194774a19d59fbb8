// Copyright © 2025 The pysca authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pysca",
	Short: "A style checker for python source files",
	Long: `pysca is a static style analyzer for Python source files. It reports
PEP 8 style issues (line length, indentation, comment spacing, blank
lines) alongside identifier checks (class, function, argument, and
variable naming, mutable default arguments).

Getting started:
  pysca check file.py          Analyze a single file
  pysca check ./...            Analyze every .py file under the tree
  pysca check --list           List the available checks
  pysca repl                   Check snippets interactively
  pysca lsp                    Start a language server for editors

Each finding is reported with a stable code:
  S001  Too long
  S002  Indentation is not a multiple of four
  S003  Unnecessary semicolon
  S004  At least two spaces required before inline comment
  S005  TODO found
  S006  More than two blank lines found before this line
  S007  Too many spaces after 'def' or 'class'
  S008  Class name should use CamelCase
  S009  Function name should use snake_case
  S010  Argument name should be snake_case
  S011  Variable in function should be snake_case
  S012  Default argument value is mutable

More information:
  Source code:     https://github.com/luthersystems/pysca`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pysca.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".pysca" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".pysca")
	}

	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
