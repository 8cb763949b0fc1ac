package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/viant/kotlinpoet/internal/logger"
)

var (
	jsonLog bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kstub",
	Short: "kstub - Kotlin ABI stubs for Java sources",
	Long: `kstub generates Kotlin source stubs mirroring the public API of Java sources.

Every member body throws NotImplementedError, so stubs compile against the
Java ABI without carrying its implementation.

Examples:
  kstub generate                                  # Use ./stubgen.yaml
  kstub generate --source src/main/java -o stubs  # Without a config file
  kstub generate --package com.example=com.example.kt --dry-run`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(jsonLog, verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Log as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every generated stub")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
