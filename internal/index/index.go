package index

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"git.home.luguber.info/inful/sdkdocs/internal/config"
	"git.home.luguber.info/inful/sdkdocs/internal/manifest"
	"git.home.luguber.info/inful/sdkdocs/internal/paths"
	"git.home.luguber.info/inful/sdkdocs/internal/version"
)

// ModuleRecord is one entry on the landing page.
type ModuleRecord struct {
	Name    string
	Summary string // manifest summary rendered to HTML
	Dir     string // output path relative to the shared docs root
}

// Builder renders the root landing page from the doc tool's own theme
// templates, reusing its layout variables.
type Builder struct {
	ProjectRoot string // base for relative manifest paths
	DocsRoot    string // resolved docs root directory
	Tool        *config.ToolConfig
	Product     string
	Modules     []config.Module // enabled modules, list order
}

// SharedDocsDir returns the fixed docs directory the landing page and the
// canonical asset copies live under.
func (b *Builder) SharedDocsDir() string {
	return filepath.Join(b.DocsRoot, "docs")
}

// Build assembles the module records, renders the theme's index fragment
// and page templates and writes docs/index.html under the docs root,
// overwriting any existing file.
func (b *Builder) Build() error {
	records, err := b.ModuleRecords()
	if err != nil {
		return err
	}

	fragment, err := renderFile(b.Tool.TemplatePath("index.html.tmpl"), map[string]any{
		"Product": b.Product,
		"Modules": records,
	})
	if err != nil {
		return err
	}

	now := time.Now()
	page, err := renderFile(b.Tool.TemplatePath("page.html.tmpl"), map[string]any{
		"Title":       fmt.Sprintf("%s Documentation", b.Product),
		"Body":        fragment,
		"Author":      b.Tool.Author,
		"AuthorURL":   b.Tool.AuthorURL,
		"Date":        now.Format("2006-01-02"),
		"Year":        now.Year(),
		"ToolVersion": version.Version,
		"Search":      false, // no per-module search index to serve at the root
		"RootIndex":   true,  // suppress per-module chrome
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(b.SharedDocsDir(), "index.html")
	if err := os.MkdirAll(filepath.Dir(indexPath), 0o755); err != nil {
		return fmt.Errorf("create docs dir: %w", err)
	}
	// #nosec G306 -- landing page is public content
	if err := os.WriteFile(indexPath, []byte(page), 0o644); err != nil {
		return fmt.Errorf("failed to write index at %s: %w", indexPath, err)
	}
	slog.Info("Generated landing page", "path", indexPath, "modules", len(records))

	return verifyModuleLinks(indexPath, records)
}

// ModuleRecords loads each enabled module's manifest and assembles the
// landing page records, preserving module order.
func (b *Builder) ModuleRecords() ([]ModuleRecord, error) {
	shared := b.SharedDocsDir()
	records := make([]ModuleRecord, 0, len(b.Modules))
	for _, mod := range b.Modules {
		manifestPath := mod.Manifest
		if !filepath.IsAbs(manifestPath) && b.ProjectRoot != "" {
			manifestPath = filepath.Join(b.ProjectRoot, manifestPath)
		}
		m, err := manifest.Load(manifestPath)
		if err != nil {
			return nil, err
		}
		summary, err := m.SummaryHTML()
		if err != nil {
			return nil, err
		}
		output, err := paths.Resolve(b.DocsRoot, mod.Docs.Output)
		if err != nil {
			return nil, err
		}
		dir, err := filepath.Rel(shared, output)
		if err != nil {
			return nil, fmt.Errorf("relativize %s against %s: %w", output, shared, err)
		}
		records = append(records, ModuleRecord{Name: m.Name, Summary: summary, Dir: filepath.ToSlash(dir)})
	}
	return records, nil
}

func renderFile(path string, data map[string]any) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", path, err)
	}
	tpl, err := template.New(filepath.Base(path)).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", path, err)
	}
	return buf.String(), nil
}
