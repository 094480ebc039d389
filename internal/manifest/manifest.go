package manifest

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// Manifest describes a distributable package: the metadata the
// package-manifest system consumes for resolution, plus the summary shown on
// the documentation landing page.
type Manifest struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"`
	Summary string `yaml:"summary,omitempty"`
}

// Load parses a package manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read package manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse package manifest %s: %w", path, err)
	}
	if strings.TrimSpace(m.Name) == "" {
		return nil, fmt.Errorf("package manifest %s has no name", path)
	}
	return &m, nil
}

// SummaryHTML renders the manifest summary (Markdown) to HTML for embedding
// into the landing page.
func (m *Manifest) SummaryHTML() (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(m.Summary), &buf); err != nil {
		return "", fmt.Errorf("render summary of %s: %w", m.Name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
