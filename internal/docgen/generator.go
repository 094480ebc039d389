package docgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

var (
	// ErrGeneratorFailed indicates the doc generator returned a non-zero exit status.
	ErrGeneratorFailed = errors.New("doc generator failed")
)

// Invocation carries everything one doc generator run needs.
type Invocation struct {
	ConfigPath    string // doc-tool configuration file
	OutputDir     string // resolved absolute output directory
	SourceLink    string // source-link URL prefix embedding the release version
	Title         string // "<Product> <release version>"
	ManifestPath  string // package manifest of the module being documented
	PackageSource string // temp registry path used for package resolution
}

// Generator abstracts the external documentation generator so the builder
// can be exercised against a fake.
type Generator interface {
	Generate(ctx context.Context, inv Invocation) error
}

// CommandGenerator invokes the configured doc generator binary.
type CommandGenerator struct {
	Command string
	Dir     string
}

// NewCommandGenerator returns a generator shelling out to command, executed
// from dir.
func NewCommandGenerator(command, dir string) *CommandGenerator {
	return &CommandGenerator{Command: command, Dir: dir}
}

func (g *CommandGenerator) Generate(ctx context.Context, inv Invocation) error {
	args := []string{
		"--config", inv.ConfigPath,
		"--output", inv.OutputDir,
		"--source-link", inv.SourceLink,
		"--title", inv.Title,
		"--package-source", inv.PackageSource,
		inv.ManifestPath,
	}
	cmd := exec.CommandContext(ctx, g.Command, args...)
	cmd.Dir = g.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("Invoking doc generator", "command", g.Command, "manifest", inv.ManifestPath)
	err := cmd.Run()

	if out := strings.TrimSpace(stdout.String()); out != "" {
		slog.Debug("doc generator stdout", "output", out)
	}
	if errOut := strings.TrimSpace(stderr.String()); errOut != "" {
		slog.Warn("doc generator stderr", "error_output", errOut)
	}

	if err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = strings.TrimSpace(stdout.String())
		}
		if output != "" {
			return fmt.Errorf("%w: %s: %w: %s", ErrGeneratorFailed, inv.ManifestPath, err, output)
		}
		return fmt.Errorf("%w: %s: %w", ErrGeneratorFailed, inv.ManifestPath, err)
	}
	return nil
}
