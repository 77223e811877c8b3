// Package hostpath maps client-supplied filesystem paths onto the local
// filesystem. When the server runs inside a container with the client's
// filesystem mounted read-only, Windows-style drive paths are translated to
// their location under the mount root; otherwise paths resolve locally.
package hostpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMountRoot is where the client filesystem is mounted in container
// mode when no other root is configured.
const DefaultMountRoot = "/host"

// ErrInvalidPath indicates a path that cannot exist on this system.
var ErrInvalidPath = errors.New("invalid path")

// Resolver translates raw tool-call paths into local filesystem paths.
// The zero value resolves locally with the default mount root.
type Resolver struct {
	ContainerMode bool
	MountRoot     string
}

// Resolve maps raw onto the local filesystem. Resolution is idempotent:
// feeding a resolved path back in returns it unchanged.
func (r Resolver) Resolve(raw string) (string, error) {
	if strings.ContainsRune(raw, 0) {
		return "", fmt.Errorf("%w: path contains NUL byte", ErrInvalidPath)
	}

	if r.ContainerMode {
		root := r.MountRoot
		if root == "" {
			root = DefaultMountRoot
		}

		if drive, rest, ok := splitDrivePath(raw); ok {
			mapped := root + "/" + drive + strings.ReplaceAll(rest, `\`, "/")
			return filepath.Clean(mapped), nil
		}

		cleaned := filepath.Clean(raw)
		if cleaned == root || strings.HasPrefix(cleaned, root+"/") {
			return cleaned, nil
		}
	}

	return resolveLocal(raw)
}

// splitDrivePath recognizes Windows-style absolute paths such as C:\Users
// or c:/data, returning the uppercased drive letter and the remainder
// (separator included).
func splitDrivePath(raw string) (drive, rest string, ok bool) {
	if len(raw) < 3 || raw[1] != ':' {
		return "", "", false
	}
	c := raw[0]
	if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
		return "", "", false
	}
	if raw[2] != '/' && raw[2] != '\\' {
		return "", "", false
	}
	return strings.ToUpper(string(c)), raw[2:], true
}

func resolveLocal(raw string) (string, error) {
	if raw == "~" || strings.HasPrefix(raw, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		raw = home + raw[1:]
	}

	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", raw, err)
	}
	return abs, nil
}
