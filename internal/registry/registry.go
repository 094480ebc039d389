package registry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

var (
	// ErrSetupFailed indicates the registry setup script returned a non-zero exit status.
	ErrSetupFailed = errors.New("registry setup failed")
	// ErrEmptySetupOutput indicates the setup script printed no path to adopt.
	ErrEmptySetupOutput = errors.New("registry setup printed no path")
)

// Registry provisions an ephemeral local package registry so that several
// local development packages can be resolved at once, working around the doc
// generator's single-registry assumption. The path returned by Create is
// owned by the whole orchestration run; Destroy must fire on every exit path.
type Registry interface {
	Create(ctx context.Context) (string, error)
	Destroy() error
}

// ScriptRegistry provisions the registry by running an external setup
// script. The last non-empty line of the script's stdout is the path of the
// created registry.
type ScriptRegistry struct {
	Script string
	Dir    string

	path      string
	destroyed bool
}

// NewScriptRegistry returns a registry backed by the given setup script,
// executed from dir.
func NewScriptRegistry(script, dir string) *ScriptRegistry {
	return &ScriptRegistry{Script: script, Dir: dir}
}

func (r *ScriptRegistry) Create(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, r.Script)
	cmd.Dir = r.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Info("Provisioning temporary package registry", "script", r.Script)
	if err := cmd.Run(); err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = strings.TrimSpace(stdout.String())
		}
		if output != "" {
			return "", fmt.Errorf("%w: %w: %s", ErrSetupFailed, err, output)
		}
		return "", fmt.Errorf("%w: %w", ErrSetupFailed, err)
	}

	path := lastLine(stdout.String())
	if path == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptySetupOutput, r.Script)
	}
	r.path = path
	slog.Info("Temporary package registry ready", "path", path)
	return path, nil
}

// Destroy removes the registry contents recursively. Safe to call more than
// once; only the first call touches the filesystem.
func (r *ScriptRegistry) Destroy() error {
	if r.destroyed || r.path == "" {
		return nil
	}
	r.destroyed = true
	slog.Info("Removing temporary package registry", "path", r.path)
	if err := os.RemoveAll(r.path); err != nil {
		return fmt.Errorf("failed to remove registry %s: %w", r.path, err)
	}
	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, " \t\r\n"), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
