package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ToolConfig represents the documentation tool configuration (docs.yaml):
// theme selection plus the site-wide values the theme templates consume.
// Loaded once at startup and treated as read-only afterwards.
type ToolConfig struct {
	Theme     string `yaml:"theme,omitempty"`
	ThemeDir  string `yaml:"theme_dir,omitempty"`
	Author    string `yaml:"author"`
	AuthorURL string `yaml:"author_url,omitempty"`
	GithubURL string `yaml:"github_url,omitempty"`
}

// LoadTool loads the documentation tool configuration from the specified file.
func LoadTool(path string) (*ToolConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("docs configuration file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read docs config file: %w", err)
	}

	var tc ToolConfig
	if err := yaml.Unmarshal(data, &tc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal docs config: %w", err)
	}

	if tc.Theme == "" {
		tc.Theme = "default"
	}
	if tc.ThemeDir == "" {
		tc.ThemeDir = filepath.Join("themes", tc.Theme)
	}

	return &tc, nil
}

// TemplatePath returns the path of a theme template file.
func (tc *ToolConfig) TemplatePath(name string) string {
	return filepath.Join(tc.ThemeDir, "templates", name)
}

// AssetDir returns the theme's compiled static asset directory.
func (tc *ToolConfig) AssetDir() string {
	return filepath.Join(tc.ThemeDir, "assets")
}
