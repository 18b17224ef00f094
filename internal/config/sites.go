package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SiteRule describes how to extract readable content from one documentation
// host: where the article body lives and which chrome to strip before
// conversion.
type SiteRule struct {
	Host            string   `yaml:"host"`
	ContentSelector string   `yaml:"content_selector"` // element id or class of the article root
	StripSelectors  []string `yaml:"strip_selectors"`  // ids/classes removed before conversion
	TitleSelector   string   `yaml:"title_selector"`   // optional override for the page title
}

// LoadSites reads per-site extraction rules from a YAML file. An empty path
// yields no rules; conversion then falls back to generic extraction.
func LoadSites(path string) ([]SiteRule, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sites file: %w", err)
	}

	var doc struct {
		Sites []SiteRule `yaml:"sites"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse sites file: %w", err)
	}

	for i, rule := range doc.Sites {
		if rule.Host == "" {
			return nil, fmt.Errorf("sites file: entry %d has no host", i)
		}
	}
	return doc.Sites, nil
}
