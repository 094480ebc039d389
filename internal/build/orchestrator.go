package build

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sdkdocs/internal/assets"
	"git.home.luguber.info/inful/sdkdocs/internal/config"
	"git.home.luguber.info/inful/sdkdocs/internal/docgen"
	"git.home.luguber.info/inful/sdkdocs/internal/index"
	"git.home.luguber.info/inful/sdkdocs/internal/paths"
	"git.home.luguber.info/inful/sdkdocs/internal/pkgcache"
	"git.home.luguber.info/inful/sdkdocs/internal/registry"
)

// Phase names the steps of one orchestration run, in execution order.
type Phase string

const (
	PhaseRegistryCreated   Phase = "registry_created"
	PhaseCacheCleaned      Phase = "cache_cleaned"
	PhaseModulesBuilt      Phase = "modules_built"
	PhaseIndexBuilt        Phase = "index_built"
	PhaseAssetsFixed       Phase = "assets_fixed"
	PhaseRegistryDestroyed Phase = "registry_destroyed"
)

// Options control one orchestration run.
type Options struct {
	ProjectRoot string
	DocsRoot    string // empty: project root
	SkipAssets  bool
}

// Orchestrator runs the whole documentation build: registry provisioning,
// cache cleaning, per-module generation, landing page, asset normalization.
// Strictly sequential; the first error aborts the run. The temp registry is
// torn down on every exit path.
type Orchestrator struct {
	cfg      *config.Config
	tool     *config.ToolConfig
	opts     Options
	registry registry.Registry
	cache    pkgcache.Cache
	gen      docgen.Generator
	runID    string
}

// New wires an orchestrator with the exec-backed collaborators named in the
// project configuration.
func New(cfg *config.Config, tool *config.ToolConfig, opts Options) *Orchestrator {
	if opts.DocsRoot == "" {
		opts.DocsRoot = opts.ProjectRoot
	}
	// Theme templates and assets resolve against the project root, not the
	// process working directory.
	if !filepath.IsAbs(tool.ThemeDir) {
		tool.ThemeDir = filepath.Join(opts.ProjectRoot, tool.ThemeDir)
	}
	return &Orchestrator{
		cfg:      cfg,
		tool:     tool,
		opts:     opts,
		registry: registry.NewScriptRegistry(cfg.Tools.RegistrySetup, opts.ProjectRoot),
		cache:    pkgcache.NewToolCache(cfg.Tools.PackageTool, opts.ProjectRoot),
		gen:      docgen.NewCommandGenerator(cfg.Tools.Generator, opts.ProjectRoot),
		runID:    uuid.NewString(),
	}
}

// WithRegistry injects a custom registry (for testing).
func (o *Orchestrator) WithRegistry(r registry.Registry) *Orchestrator {
	o.registry = r
	return o
}

// WithCache injects a custom package cache (for testing).
func (o *Orchestrator) WithCache(c pkgcache.Cache) *Orchestrator {
	o.cache = c
	return o
}

// WithGenerator injects a custom doc generator (for testing).
func (o *Orchestrator) WithGenerator(g docgen.Generator) *Orchestrator {
	o.gen = g
	return o
}

// Run executes the build. The named error return lets the deferred registry
// teardown surface its own failure when the run itself succeeded.
func (o *Orchestrator) Run(ctx context.Context) (err error) {
	enabled := o.cfg.EnabledModules()
	slog.Info("Starting documentation build",
		"run_id", o.runID,
		"product", o.cfg.Product,
		"modules", len(o.cfg.Modules),
		"enabled", len(enabled))

	release, err := config.ReadReleaseVersion(filepath.Join(o.opts.ProjectRoot, o.cfg.VersionFile))
	if err != nil {
		return err
	}
	sourceBase, err := config.SourceLinkBase(o.tool, o.opts.ProjectRoot)
	if err != nil {
		return err
	}

	registryPath, err := o.registry.Create(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if derr := o.registry.Destroy(); derr != nil {
			if err == nil {
				err = derr
			} else {
				slog.Error("Registry teardown failed after earlier error", "run_id", o.runID, "error", derr)
			}
		}
		o.phase(PhaseRegistryDestroyed)
	}()
	o.phase(PhaseRegistryCreated)

	if err := pkgcache.CleanProjectManifests(ctx, o.cache, o.opts.ProjectRoot); err != nil {
		return err
	}
	o.phase(PhaseCacheCleaned)

	builder := &docgen.Builder{
		Generator:  o.gen,
		DocsRoot:   o.opts.DocsRoot,
		ConfigPath: o.cfg.DocsConfig,
		Product:    o.cfg.Product,
		Release:    release,
		SourceBase: sourceBase,
		Registry:   registryPath,
	}
	if err := builder.BuildAll(ctx, enabled); err != nil {
		return err
	}
	o.phase(PhaseModulesBuilt)

	idx := &index.Builder{
		ProjectRoot: o.opts.ProjectRoot,
		DocsRoot:    o.opts.DocsRoot,
		Tool:        o.tool,
		Product:     o.cfg.Product,
		Modules:     enabled,
	}
	if err := idx.Build(); err != nil {
		return err
	}
	o.phase(PhaseIndexBuilt)

	if o.opts.SkipAssets {
		slog.Info("Skipping asset normalization", "run_id", o.runID)
		return nil
	}
	moduleDirs, err := o.resolveModuleDirs(enabled)
	if err != nil {
		return err
	}
	normalizer := &assets.Normalizer{
		ThemeAssets: o.tool.AssetDir(),
		SharedRoot:  idx.SharedDocsDir(),
		ModuleDirs:  moduleDirs,
	}
	if err := normalizer.Normalize(); err != nil {
		return err
	}
	o.phase(PhaseAssetsFixed)

	return nil
}

func (o *Orchestrator) resolveModuleDirs(modules []config.Module) ([]string, error) {
	dirs := make([]string, 0, len(modules))
	for _, mod := range modules {
		dir, err := paths.Resolve(o.opts.DocsRoot, mod.Docs.Output)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", mod.Manifest, err)
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}

func (o *Orchestrator) phase(p Phase) {
	slog.Info("Build phase complete", "run_id", o.runID, "phase", p)
}
