package config

import "github.com/contentaudit/contentaudit/internal/model"

// ProjectFile represents the structure of the .contentaudit.yaml project
// file. It carries the per-project inputs that flags cannot reasonably
// express: phase weight overrides, the fact sheet, and the topic profiles
// of related content the semantic phase compares against.
type ProjectFile struct {
	// Project is the project id. A --project flag overrides it.
	Project string `yaml:"project,omitempty"`

	// Weights overrides the default weight of phases by name.
	// Unknown names are ignored; 0 turns a phase into a bonus phase.
	Weights map[string]float64 `yaml:"weights,omitempty"`

	// Facts are the root entity/attribute facts expected to appear in
	// compliant content.
	Facts []model.Fact `yaml:"facts,omitempty"`

	// Topics are the semantic profiles of related content items.
	Topics []model.TopicProfile `yaml:"topics,omitempty"`
}

// RelatedURLs lists the URLs of all topic profiles, in file order.
func (pf *ProjectFile) RelatedURLs() []string {
	if len(pf.Topics) == 0 {
		return nil
	}

	urls := make([]string, 0, len(pf.Topics))
	for _, topic := range pf.Topics {
		if topic.URL != "" {
			urls = append(urls, topic.URL)
		}
	}
	return urls
}
