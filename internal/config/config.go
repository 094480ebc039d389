package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the project configuration (sdkdocs.yaml).
type Config struct {
	Product     string      `yaml:"product"`
	VersionFile string      `yaml:"version_file,omitempty"`
	DocsConfig  string      `yaml:"docs_config,omitempty"`
	Modules     []Module    `yaml:"modules"`
	Tools       ToolsConfig `yaml:"tools,omitempty"`
}

// Module represents one SDK sub-module backed by a package manifest.
type Module struct {
	Manifest string      `yaml:"manifest"`
	Docs     *ModuleDocs `yaml:"docs,omitempty"`
}

// ModuleDocs holds the documentation settings of a module. A module is
// doc-enabled iff this block is present; Output must then be non-empty.
type ModuleDocs struct {
	Output string `yaml:"output"`
}

// ToolsConfig names the external tools the orchestration shells out to.
type ToolsConfig struct {
	Generator     string `yaml:"generator,omitempty"`
	PackageTool   string `yaml:"package_tool,omitempty"`
	RegistrySetup string `yaml:"registry_setup,omitempty"`
}

// DocsEnabled reports whether documentation is configured for the module.
func (m Module) DocsEnabled() bool {
	return m.Docs != nil
}

// EnabledModules returns the modules with docs configured, preserving the
// original relative order.
func (c *Config) EnabledModules() []Module {
	enabled := make([]Module, 0, len(c.Modules))
	for _, m := range c.Modules {
		if m.DocsEnabled() {
			enabled = append(enabled, m)
		}
	}
	return enabled
}

// Load loads the project configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; env vars may be referenced from the YAML.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)

	for i, m := range config.Modules {
		if m.Manifest == "" {
			return nil, fmt.Errorf("modules[%d]: manifest path is required", i)
		}
	}

	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Product == "" {
		c.Product = "SDK"
	}
	if c.VersionFile == "" {
		c.VersionFile = "VERSION"
	}
	if c.DocsConfig == "" {
		c.DocsConfig = "docs.yaml"
	}
	if c.Tools.Generator == "" {
		c.Tools.Generator = "docgen"
	}
	if c.Tools.PackageTool == "" {
		c.Tools.PackageTool = "pkgtool"
	}
	if c.Tools.RegistrySetup == "" {
		c.Tools.RegistrySetup = "./scripts/setup-registry.sh"
	}
}
