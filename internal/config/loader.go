package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/contentaudit/contentaudit/internal/model"
)

// DefaultProjectFile is the default project file name.
const DefaultProjectFile = ".contentaudit.yaml"

// ErrProjectFileNotFound is returned when the project file does not exist.
var ErrProjectFileNotFound = errors.New("project file not found")

// LoadProjectFile loads project settings from a YAML file.
// If the file does not exist, it returns ErrProjectFileNotFound.
// Callers should handle this error appropriately based on whether
// the project file path was explicitly specified by the user.
func LoadProjectFile(path string) (*ProjectFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided project path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrProjectFileNotFound
		}
		return nil, err
	}

	var pf ProjectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}

	return &pf, nil
}

// FindProjectFile searches for the project file in the following order:
// 1. If projectPath is specified, use it directly
// 2. Look for .contentaudit.yaml in the current directory
// 3. Look for .contentaudit.yaml in the XDG config directory
//
// Returns the path to the project file if found, or empty string if not found.
func FindProjectFile(projectPath string) string {
	// If explicit path is provided, use it
	if projectPath != "" {
		if _, err := os.Stat(projectPath); err == nil {
			return projectPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdFile := filepath.Join(cwd, DefaultProjectFile)
		if _, err := os.Stat(cwdFile); err == nil {
			return cwdFile
		}
	}

	// Check XDG config directory
	xdgFile := filepath.Join(XDGConfigDir(), DefaultProjectFile)
	if _, err := os.Stat(xdgFile); err == nil {
		return xdgFile
	}

	return ""
}

// LoadFacts loads a standalone YAML fact sheet: a list of entity/attribute
// entries. Used when facts live outside the project file.
func LoadFacts(path string) ([]model.Fact, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided fact sheet path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read fact sheet %s: %w", path, err)
	}

	var facts []model.Fact
	if err := yaml.Unmarshal(data, &facts); err != nil {
		return nil, fmt.Errorf("failed to parse fact sheet %s: %w", path, err)
	}
	return facts, nil
}

// LoadTopics loads a standalone YAML topic profile list. Used when related
// topic profiles live outside the project file.
func LoadTopics(path string) ([]model.TopicProfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided topic file path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read topic profiles %s: %w", path, err)
	}

	var topics []model.TopicProfile
	if err := yaml.Unmarshal(data, &topics); err != nil {
		return nil, fmt.Errorf("failed to parse topic profiles %s: %w", path, err)
	}
	return topics, nil
}
