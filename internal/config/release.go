package config

import (
	"fmt"
	"os"
	"strings"
)

// ReadReleaseVersion reads the release version from a plain-text version
// file. The value tags generated titles and source-link URLs and is
// immutable once read.
func ReadReleaseVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read version file: %w", err)
	}
	version := strings.TrimSpace(string(data))
	if version == "" {
		return "", fmt.Errorf("version file is empty: %s", path)
	}
	return version, nil
}
