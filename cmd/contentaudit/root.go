// Package main provides the entry point for the contentaudit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for contentaudit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contentaudit",
		Short: "Multi-phase content quality auditing tool",
		Long: `contentaudit audits web pages for content quality.

It fetches a page, runs it through weighted evaluation phases (metadata,
headings, content depth, links, images, structured data, semantic distance,
fact validation), and produces a scored report with findings, merge
suggestions, and cannibalization risks. Results are saved per project so
score history can be correlated with search performance over time.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewTrendCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
