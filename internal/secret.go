package internal

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// CommandContext allows overriding command creation for testing
	CommandContext = exec.CommandContext
	// LookPath allows overriding the executable lookup for testing
	LookPath = exec.LookPath
)

// ResolveSecret resolves a 1Password secret reference (e.g. op://vault/item/field)
// through the op CLI. Values without the op:// prefix pass through unchanged.
func ResolveSecret(ctx context.Context, value string) (string, error) {
	if !strings.HasPrefix(value, "op://") {
		return value, nil
	}

	if _, err := LookPath("op"); err != nil {
		return "", fmt.Errorf("1Password CLI (op) not found in PATH: %w", err)
	}

	cmd := CommandContext(ctx, "op", "read", value)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("failed to read secret from 1Password: %s", string(exitErr.Stderr))
		}
		return "", fmt.Errorf("failed to read secret from 1Password: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}
