package pkgcache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sdkdocs/internal/manifest"
)

// ErrCleanFailed indicates the package tool returned a non-zero exit status
// while purging a cached package.
var ErrCleanFailed = errors.New("package cache clean failed")

// Cache abstracts the package tool's cache operations so tests can
// substitute a fake.
type Cache interface {
	Clean(ctx context.Context, pkg string) error
}

// ToolCache shells out to the package tool. Cleaning is idempotent: purging
// a package that is not cached is a no-op for the tool, not an error.
type ToolCache struct {
	Tool string
	Dir  string
}

// NewToolCache returns a cache backed by the named package tool binary,
// executed from dir.
func NewToolCache(tool, dir string) *ToolCache {
	return &ToolCache{Tool: tool, Dir: dir}
}

func (c *ToolCache) Clean(ctx context.Context, pkg string) error {
	cmd := exec.CommandContext(ctx, c.Tool, "cache", "clean", "--all-versions", pkg)
	cmd.Dir = c.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = strings.TrimSpace(stdout.String())
		}
		if output != "" {
			return fmt.Errorf("%w: %s: %w: %s", ErrCleanFailed, pkg, err, output)
		}
		return fmt.Errorf("%w: %s: %w", ErrCleanFailed, pkg, err)
	}
	slog.Debug("Package cache cleaned", "package", pkg)
	return nil
}

// CleanProjectManifests purges the cached copy of every package whose
// manifest sits directly in the project root, so the local registry is
// always resolved fresh. The glob is deliberately non-recursive.
func CleanProjectManifests(ctx context.Context, cache Cache, projectRoot string) error {
	pattern := filepath.Join(projectRoot, "*.pkg.yaml")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("glob %s: %w", pattern, err)
	}
	for _, path := range matches {
		m, err := manifest.Load(path)
		if err != nil {
			return err
		}
		if err := cache.Clean(ctx, m.Name); err != nil {
			return err
		}
	}
	slog.Info("Project package caches cleaned", "manifests", len(matches))
	return nil
}
