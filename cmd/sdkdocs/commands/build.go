package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sdkdocs/internal/build"
	"git.home.luguber.info/inful/sdkdocs/internal/config"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	DocsRoot   string `short:"d" name:"docs-root" help:"Override the docs output root directory (default: project root)"`
	SkipAssets bool   `name:"skip-assets" help:"Skip shared asset normalization"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The directory holding the project config is the project root; external
	// tools and relative paths all resolve against it.
	projectRoot, err := filepath.Abs(filepath.Dir(root.Config))
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}

	docsConfigPath := cfg.DocsConfig
	if !filepath.IsAbs(docsConfigPath) {
		docsConfigPath = filepath.Join(projectRoot, docsConfigPath)
	}
	tool, err := config.LoadTool(docsConfigPath)
	if err != nil {
		return fmt.Errorf("load docs config: %w", err)
	}

	docsRoot := b.DocsRoot
	if docsRoot != "" {
		if docsRoot, err = filepath.Abs(docsRoot); err != nil {
			return fmt.Errorf("resolve docs root: %w", err)
		}
	}

	fmt.Fprintln(os.Stdout, "Starting SDK documentation build")
	orchestrator := build.New(cfg, tool, build.Options{
		ProjectRoot: projectRoot,
		DocsRoot:    docsRoot,
		SkipAssets:  b.SkipAssets,
	})
	return orchestrator.Run(context.Background())
}
