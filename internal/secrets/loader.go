package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source points at a secret held inline or in a file.
type Source struct {
	Name  string
	Value string
	// File takes precedence over Value when set.
	File string
}

// Load resolves src to a trimmed, non-empty secret.
func Load(src Source) (string, error) {
	label := strings.TrimSpace(src.Name)
	if label == "" {
		label = "secret"
	}

	path := strings.TrimSpace(src.File)
	value := src.Value
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s from %q: %w", label, path, err)
		}
		value = string(raw)
	}

	value = strings.TrimSpace(value)
	switch {
	case value != "":
		return value, nil
	case path != "":
		return "", fmt.Errorf("%s file %q is empty", label, path)
	default:
		return "", fmt.Errorf("%s is not configured", label)
	}
}
