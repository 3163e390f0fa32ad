// Package config provides configuration structures and utilities for
// contentaudit. It defines the main configuration options for fetching,
// phase selection, persistence, and report generation, plus the YAML
// project file carrying per-project weights, facts, and topic profiles.
package config
