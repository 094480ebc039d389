package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sdkdocs/internal/config"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head><title>{{ .Title }}</title></head>
<body>
{{ if .Search }}<div id="search"><input type="search"></div>{{ end }}
{{ .Body }}
<footer>&copy; {{ .Year }} <a href="{{ .AuthorURL }}">{{ .Author }}</a> &middot; built {{ .Date }} with sdkdocs {{ .ToolVersion }}</footer>
</body>
</html>
`

const indexTemplate = `<ul class="modules">
{{ range .Modules }}<li><a href="{{ .Dir }}/">{{ .Name }}</a> {{ .Summary }}</li>
{{ end }}</ul>
`

func setupTheme(t *testing.T, root string) *config.ToolConfig {
	t.Helper()
	themeDir := filepath.Join(root, "themes", "slate")
	tplDir := filepath.Join(themeDir, "templates")
	require.NoError(t, os.MkdirAll(tplDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tplDir, "page.html.tmpl"), []byte(pageTemplate), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tplDir, "index.html.tmpl"), []byte(indexTemplate), 0o644))
	return &config.ToolConfig{
		Theme:     "slate",
		ThemeDir:  themeDir,
		Author:    "Acme Inc.",
		AuthorURL: "https://acme.example",
	}
}

func writeManifest(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildWritesLandingPage(t *testing.T) {
	root := t.TempDir()
	tool := setupTheme(t, root)
	fooManifest := writeManifest(t, root, "foo/foo.pkg.yaml", "name: Foo\nsummary: Does foo\n")

	b := &Builder{
		DocsRoot: root,
		Tool:     tool,
		Product:  "Acme SDK",
		Modules: []config.Module{
			{Manifest: fooManifest, Docs: &config.ModuleDocs{Output: "docs/foo"}},
		},
	}
	require.NoError(t, b.Build())

	data, err := os.ReadFile(filepath.Join(root, "docs", "index.html"))
	require.NoError(t, err)
	page := string(data)
	require.Contains(t, page, "Foo")
	require.Contains(t, page, "Does foo")
	require.Contains(t, page, "Acme Inc.")
	require.NotContains(t, page, "search", "search is disabled on the root index")
}

func TestBuildOverwritesExistingIndex(t *testing.T) {
	root := t.TempDir()
	tool := setupTheme(t, root)
	fooManifest := writeManifest(t, root, "foo/foo.pkg.yaml", "name: Foo\nsummary: Does foo\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "index.html"), []byte("stale"), 0o644))

	b := &Builder{
		DocsRoot: root,
		Tool:     tool,
		Product:  "Acme SDK",
		Modules:  []config.Module{{Manifest: fooManifest, Docs: &config.ModuleDocs{Output: "docs/foo"}}},
	}
	require.NoError(t, b.Build())

	data, err := os.ReadFile(filepath.Join(root, "docs", "index.html"))
	require.NoError(t, err)
	require.NotContains(t, string(data), "stale")
}

func TestModuleRecordsOrderAndRelativeDirs(t *testing.T) {
	root := t.TempDir()
	tool := setupTheme(t, root)
	aManifest := writeManifest(t, root, "a/a.pkg.yaml", "name: acme-a\nsummary: The *a* module\n")
	bManifest := writeManifest(t, root, "b/b.pkg.yaml", "name: acme-b\nsummary: The b module\n")

	b := &Builder{
		DocsRoot: root,
		Tool:     tool,
		Product:  "Acme SDK",
		Modules: []config.Module{
			{Manifest: aManifest, Docs: &config.ModuleDocs{Output: "docs/a"}},
			{Manifest: bManifest, Docs: &config.ModuleDocs{Output: "docs/b"}},
		},
	}

	records, err := b.ModuleRecords()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "acme-a", records[0].Name)
	require.Equal(t, "a", records[0].Dir)
	require.Contains(t, records[0].Summary, "<em>a</em>")
	require.Equal(t, "acme-b", records[1].Name)
	require.Equal(t, "b", records[1].Dir)
}

func TestBuildFailsOnMissingTemplate(t *testing.T) {
	root := t.TempDir()
	tool := setupTheme(t, root)
	require.NoError(t, os.Remove(filepath.Join(tool.ThemeDir, "templates", "page.html.tmpl")))
	fooManifest := writeManifest(t, root, "foo/foo.pkg.yaml", "name: Foo\nsummary: Does foo\n")

	b := &Builder{
		DocsRoot: root,
		Tool:     tool,
		Product:  "Acme SDK",
		Modules:  []config.Module{{Manifest: fooManifest, Docs: &config.ModuleDocs{Output: "docs/foo"}}},
	}
	require.Error(t, b.Build())
}

func TestBuildFailsOnUnreadableManifest(t *testing.T) {
	root := t.TempDir()
	tool := setupTheme(t, root)

	b := &Builder{
		DocsRoot: root,
		Tool:     tool,
		Product:  "Acme SDK",
		Modules:  []config.Module{{Manifest: filepath.Join(root, "missing.pkg.yaml"), Docs: &config.ModuleDocs{Output: "docs/foo"}}},
	}
	require.Error(t, b.Build())
}
