package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/contentaudit/contentaudit/internal/config"
)

//go:embed templates/contentaudit.yaml
var projectTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new contentaudit project file",
		Long: `Initialize creates a new .contentaudit.yaml project file in the current
directory.

The generated file includes:
- The project id used to group audit snapshots
- Commented examples for phase weight overrides
- Commented examples for fact sheets and related topic profiles

Examples:
  # Create .contentaudit.yaml in current directory
  contentaudit init

  # Create project file at a specific path
  contentaudit init -o myproject.yaml

  # Force overwrite existing file
  contentaudit init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultProjectFile,
		"Output file path for the project file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing project file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("project file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := projectTemplate.ReadFile("templates/contentaudit.yaml")
	if err != nil {
		return fmt.Errorf("failed to read project template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write project file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}

	fmt.Printf("Created project file: %s\n", outputPath)
	fmt.Println("\nEdit this file to configure project settings such as:")
	fmt.Println("  - The project id grouping your audits")
	fmt.Println("  - Phase weight overrides")
	fmt.Println("  - Fact sheets and related topic profiles")

	return nil
}
