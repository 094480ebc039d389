package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrAssetMissing indicates a theme asset was not compiled into any module
// output directory, which means the generator run was incomplete.
var ErrAssetMissing = errors.New("compiled asset not found in any module output")

// Normalizer consolidates the theme-compiled static assets the generator
// duplicates into every module's output directory: one canonical copy moves
// to the shared docs root, duplicates are deleted, and every module gets a
// relative symlink back to the canonical copy. Must run after all module
// builds and the index build, which populate the copies being consumed.
type Normalizer struct {
	ThemeAssets string   // theme asset directory listing the files to normalize
	SharedRoot  string   // shared docs root receiving the canonical copies
	ModuleDirs  []string // resolved module output directories, list order
}

// Normalize processes every file under the theme asset directory. After it
// returns, exactly one real copy of each asset exists on disk and every
// module directory holds only a link to it.
func (n *Normalizer) Normalize() error {
	assets, err := n.assetList()
	if err != nil {
		return err
	}
	for _, rel := range assets {
		if err := n.normalizeAsset(rel); err != nil {
			return err
		}
	}
	slog.Info("Shared assets normalized", "assets", len(assets), "modules", len(n.ModuleDirs))
	return nil
}

// assetList returns the asset paths relative to the theme asset directory.
func (n *Normalizer) assetList() ([]string, error) {
	var assets []string
	err := filepath.WalkDir(n.ThemeAssets, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(n.ThemeAssets, path)
		if err != nil {
			return err
		}
		assets = append(assets, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list theme assets in %s: %w", n.ThemeAssets, err)
	}
	return assets, nil
}

func (n *Normalizer) normalizeAsset(rel string) error {
	canonical := filepath.Join(n.SharedRoot, rel)
	if err := os.RemoveAll(canonical); err != nil {
		return fmt.Errorf("remove stale asset %s: %w", canonical, err)
	}

	// The first module holding a compiled copy donates it as the canonical
	// one. Module 0 is the usual donor; later modules only cover for it when
	// the generator skipped it there.
	src := ""
	for _, dir := range n.ModuleDirs {
		candidate := filepath.Join(dir, rel)
		if info, err := os.Lstat(candidate); err == nil && info.Mode().IsRegular() {
			src = candidate
			break
		}
	}
	if src == "" {
		return fmt.Errorf("%w: %s", ErrAssetMissing, rel)
	}

	if err := os.MkdirAll(filepath.Dir(canonical), 0o755); err != nil {
		return fmt.Errorf("create asset dir for %s: %w", canonical, err)
	}
	if err := os.Rename(src, canonical); err != nil {
		return fmt.Errorf("relocate asset %s: %w", src, err)
	}

	for _, dir := range n.ModuleDirs {
		dup := filepath.Join(dir, rel)
		if err := os.RemoveAll(dup); err != nil {
			return fmt.Errorf("remove duplicate asset %s: %w", dup, err)
		}
		if err := os.MkdirAll(filepath.Dir(dup), 0o755); err != nil {
			return fmt.Errorf("create asset dir for %s: %w", dup, err)
		}
		target, err := filepath.Rel(filepath.Dir(dup), canonical)
		if err != nil {
			target = canonical
		}
		if err := os.Symlink(target, dup); err != nil {
			return fmt.Errorf("link asset %s: %w", dup, err)
		}
	}
	slog.Debug("Normalized shared asset", "asset", rel, "canonical", canonical)
	return nil
}
