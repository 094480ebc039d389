package docgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/sdkdocs/internal/config"
	"git.home.luguber.info/inful/sdkdocs/internal/paths"
)

// ErrEmptyOutputPath indicates a doc-enabled module without an output path.
// The build must abort before the generator is ever spawned: an empty output
// would make the external tool write over the working directory.
var ErrEmptyOutputPath = errors.New("module docs output path is empty")

// Builder drives the doc generator once per enabled module, in list order.
// One module's failure is fatal to the whole batch.
type Builder struct {
	Generator  Generator
	DocsRoot   string // resolved docs root directory
	ConfigPath string // doc-tool configuration file
	Product    string
	Release    string
	SourceBase string // e.g. https://github.com/acme/sdk
	Registry   string // temp package registry path
}

// BuildAll builds documentation for every given module.
func (b *Builder) BuildAll(ctx context.Context, modules []config.Module) error {
	for _, mod := range modules {
		if err := b.BuildModule(ctx, mod); err != nil {
			return err
		}
	}
	slog.Info("Module documentation built", "modules", len(modules))
	return nil
}

// BuildModule validates the module's docs configuration, resolves its output
// directory against the docs root and invokes the generator.
func (b *Builder) BuildModule(ctx context.Context, mod config.Module) error {
	if !mod.DocsEnabled() {
		return nil
	}
	if strings.TrimSpace(mod.Docs.Output) == "" {
		return fmt.Errorf("%w: set modules[].docs.output for manifest %s", ErrEmptyOutputPath, mod.Manifest)
	}

	output, err := paths.Resolve(b.DocsRoot, mod.Docs.Output)
	if err != nil {
		return err
	}

	inv := Invocation{
		ConfigPath:    b.ConfigPath,
		OutputDir:     output,
		SourceLink:    fmt.Sprintf("%s/tree/v%s", b.SourceBase, b.Release),
		Title:         fmt.Sprintf("%s %s", b.Product, b.Release),
		ManifestPath:  mod.Manifest,
		PackageSource: b.Registry,
	}
	slog.Info("Building module documentation", "manifest", mod.Manifest, "output", output)
	return b.Generator.Generate(ctx, inv)
}
