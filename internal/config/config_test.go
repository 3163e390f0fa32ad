package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/contentaudit/contentaudit/internal/model"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected
// default values. This test ensures that defaults are documented through
// tests and that changes to defaults are intentional (tests will fail if
// defaults change unexpectedly).
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default Concurrency is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.Concurrency != 4 {
			t.Errorf("expected Concurrency to be 4, got %d", cfg.Concurrency)
		}
	})

	t.Run("default UserAgent identifies contentaudit", func(t *testing.T) {
		t.Parallel()
		if cfg.UserAgent != DefaultUserAgent {
			t.Errorf("expected UserAgent %q, got %q", DefaultUserAgent, cfg.UserAgent)
		}
	})

	t.Run("default MaxBodySize is 5MB", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxBodySize != 5*1024*1024 {
			t.Errorf("expected MaxBodySize to be 5MB, got %d", cfg.MaxBodySize)
		}
	})

	t.Run("default DBDir is the XDG data directory", func(t *testing.T) {
		t.Parallel()
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("project file defaults to empty settings", func(t *testing.T) {
		t.Parallel()
		if cfg.Project == nil {
			t.Fatal("expected non-nil Project")
		}
		if len(cfg.Project.Weights) != 0 || len(cfg.Project.Facts) != 0 {
			t.Error("expected empty project settings")
		}
	})
}

// validConfig returns a config that passes Validate.
func validConfig() *Config {
	cfg := NewConfig()
	cfg.ProjectID = "proj-1"
	cfg.Targets = []string{"https://example.com/article"}
	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config passes",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "missing project id",
			mutate:  func(c *Config) { c.ProjectID = "" },
			wantErr: ErrNoProject,
		},
		{
			name:    "missing targets",
			mutate:  func(c *Config) { c.Targets = nil },
			wantErr: ErrNoTarget,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Timeout = -time.Second },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Concurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "conflicting report formats",
			mutate:  func(c *Config) { c.JSONReport, c.MarkdownReport = true, true },
			wantErr: ErrConflictingReportFormats,
		},
		{
			name:    "negative max body size",
			mutate:  func(c *Config) { c.MaxBodySize = -1 },
			wantErr: ErrInvalidMaxBodySize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadProjectFile(t *testing.T) {
	t.Parallel()

	t.Run("parses weights facts and topics", func(t *testing.T) {
		t.Parallel()

		content := `project: coffee-blog
weights:
  metadata: 3.0
  fact_validation: 0.5
facts:
  - entity: Portafilter
    attribute: 58mm standard
  - entity: Crema
topics:
  - url: https://example.com/espresso-guide
    entity: espresso machines
    keywords: [espresso, grinder, pressure]
`
		path := filepath.Join(t.TempDir(), "project.yaml")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		pf, err := LoadProjectFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if pf.Project != "coffee-blog" {
			t.Errorf("Project = %q, want %q", pf.Project, "coffee-blog")
		}
		if pf.Weights["metadata"] != 3.0 {
			t.Errorf("Weights[metadata] = %v, want 3.0", pf.Weights["metadata"])
		}
		if len(pf.Facts) != 2 || pf.Facts[0].Entity != "Portafilter" {
			t.Errorf("Facts = %+v, want Portafilter first", pf.Facts)
		}
		if pf.Facts[1].Attribute != "" {
			t.Errorf("Facts[1].Attribute = %q, want empty", pf.Facts[1].Attribute)
		}
		if len(pf.Topics) != 1 || len(pf.Topics[0].Keywords) != 3 {
			t.Errorf("Topics = %+v, want one profile with 3 keywords", pf.Topics)
		}
	})

	t.Run("missing file returns ErrProjectFileNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadProjectFile(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrProjectFileNotFound) {
			t.Errorf("err = %v, want ErrProjectFileNotFound", err)
		}
	})

	t.Run("malformed yaml returns an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "broken.yaml")
		if err := os.WriteFile(path, []byte("weights: [not a map"), 0600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		if _, err := LoadProjectFile(path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}

func TestFindProjectFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path wins", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("project: x\n"), 0600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		if got := FindProjectFile(path); got != path {
			t.Errorf("FindProjectFile() = %q, want %q", got, path)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindProjectFile(filepath.Join(t.TempDir(), "absent.yaml")); got != "" {
			t.Errorf("FindProjectFile() = %q, want empty", got)
		}
	})
}

func TestRelatedURLs(t *testing.T) {
	t.Parallel()

	t.Run("collects topic urls in order, skipping blanks", func(t *testing.T) {
		t.Parallel()

		file := &ProjectFile{
			Topics: []model.TopicProfile{
				{URL: "https://example.com/a", Entity: "a"},
				{Entity: "inline"},
				{URL: "https://example.com/b", Entity: "b"},
			},
		}

		got := file.RelatedURLs()
		want := []string{"https://example.com/a", "https://example.com/b"}
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("RelatedURLs() = %v, want %v", got, want)
		}
	})

	t.Run("empty topics yield nil", func(t *testing.T) {
		t.Parallel()

		if got := (&ProjectFile{}).RelatedURLs(); got != nil {
			t.Errorf("RelatedURLs() = %v, want nil", got)
		}
	})
}

func TestLoadFacts(t *testing.T) {
	t.Parallel()

	t.Run("loads fact sheet", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "facts.yaml")
		content := []byte(`
- entity: "Model S"
  attribute: "600 km range"
- entity: "Model S"
`)
		if err := os.WriteFile(path, content, 0o600); err != nil {
			t.Fatalf("failed to write fact sheet: %v", err)
		}

		facts, err := LoadFacts(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(facts) != 2 {
			t.Fatalf("expected 2 facts, got %d", len(facts))
		}
		if facts[0].Entity != "Model S" || facts[0].Attribute != "600 km range" {
			t.Errorf("unexpected first fact: %+v", facts[0])
		}
		if facts[1].Attribute != "" {
			t.Errorf("expected empty attribute, got %q", facts[1].Attribute)
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadFacts("/nonexistent/facts.yaml"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("returns error for invalid yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "facts.yaml")
		if err := os.WriteFile(path, []byte("{not a list"), 0o600); err != nil {
			t.Fatalf("failed to write fact sheet: %v", err)
		}

		if _, err := LoadFacts(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}

func TestLoadTopics(t *testing.T) {
	t.Parallel()

	t.Run("loads topic profiles", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "topics.yaml")
		content := []byte(`
- url: https://example.com/a
  entity: "electric cars"
  keywords: [range, battery]
- url: https://example.com/b
  entity: "ev charging"
`)
		if err := os.WriteFile(path, content, 0o600); err != nil {
			t.Fatalf("failed to write topic profiles: %v", err)
		}

		topics, err := LoadTopics(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(topics) != 2 {
			t.Fatalf("expected 2 topics, got %d", len(topics))
		}
		if topics[0].Entity != "electric cars" {
			t.Errorf("unexpected first entity: %q", topics[0].Entity)
		}
		if len(topics[0].Keywords) != 2 {
			t.Errorf("expected 2 keywords, got %v", topics[0].Keywords)
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadTopics("/nonexistent/topics.yaml"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
