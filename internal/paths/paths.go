package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrEmptyPathSegment indicates a path was assembled from a blank component.
// Joining with an empty segment must fail before any filesystem mutation:
// handing an empty output path to the external generator would make it write
// over the working directory.
var ErrEmptyPathSegment = errors.New("empty path segment")

// Join joins path segments after rejecting empty or whitespace-only ones.
func Join(segments ...string) (string, error) {
	if len(segments) == 0 {
		return "", fmt.Errorf("%w: no segments given", ErrEmptyPathSegment)
	}
	for i, s := range segments {
		if strings.TrimSpace(s) == "" {
			return "", fmt.Errorf("%w: segment %d of %d is blank", ErrEmptyPathSegment, i+1, len(segments))
		}
	}
	return filepath.Join(segments...), nil
}

// Resolve joins root and rel and returns the result as an absolute path.
func Resolve(root, rel string) (string, error) {
	joined, err := Join(root, rel)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", joined, err)
	}
	return abs, nil
}
