package commands

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, ctx
}

func TestCLIDefaults(t *testing.T) {
	cli, ctx := mustParse(t, "build")
	require.Equal(t, "build", ctx.Command())
	require.Equal(t, "sdkdocs.yaml", cli.Config)
	require.False(t, cli.Verbose)
	require.Empty(t, cli.Build.DocsRoot)
	require.False(t, cli.Build.SkipAssets)
}

func TestCLIBuildIsDefaultCommand(t *testing.T) {
	_, ctx := mustParse(t)
	require.Equal(t, "build", ctx.Command())
}

func TestCLIBuildFlags(t *testing.T) {
	cli, _ := mustParse(t, "build", "--docs-root", "/srv/docs", "--skip-assets", "-c", "proj/sdkdocs.yaml")
	require.Equal(t, "/srv/docs", cli.Build.DocsRoot)
	require.True(t, cli.Build.SkipAssets)
	require.Equal(t, "proj/sdkdocs.yaml", cli.Config)
}
