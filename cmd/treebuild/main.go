// Package main provides the treebuild CLI: a one-shot batch transform
// from the nursery's inventory workbook to the catalog file served by the
// API. It also writes per-sheet raw audit files and a report of rows that
// were dropped for data defects.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// configFile is set by the --config flag.
var configFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "treebuild",
	Short: "treebuild converts the nursery inventory workbook into the tree catalog",
	Long: `treebuild reads a multi-sheet xlsx inventory workbook, normalizes its
rows into catalog entries, and writes the catalog file consumed by the
greentree API server, plus per-sheet raw audit files for traceability.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file with column mapping overrides (yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(buildCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("treebuild v1.0.0")
	},
}
