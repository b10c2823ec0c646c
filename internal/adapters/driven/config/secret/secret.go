// Package secret resolves credential references stored in configuration.
//
// A configured value may be:
//   - ENV=NAME   read from environment variable NAME
//   - ${NAME}    same, shell style
//   - FILE=path  read from a file under one of the allowed directories
//   - anything else, used inline
package secret

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
)

// Ensure Resolver implements the interface.
var _ driven.SecretResolver = (*Resolver)(nil)

// SystemSecretDirs are container secret mounts accepted for FILE= references.
var SystemSecretDirs = []string{
	"/run/secrets",
	"/var/run/secrets",
}

// Resolver turns configured values into secrets.
type Resolver struct {
	allowedDirs []string
	getenv      func(string) string
	readFile    func(string) ([]byte, error)
}

// NewResolver creates a resolver that accepts FILE= references under
// configDir/secrets and SystemSecretDirs.
func NewResolver(configDir string) *Resolver {
	dirs := make([]string, 0, len(SystemSecretDirs)+1)
	if configDir != "" {
		if abs, err := filepath.Abs(configDir); err == nil {
			configDir = abs
		}
		dirs = append(dirs, filepath.Join(configDir, "secrets"))
	}
	dirs = append(dirs, SystemSecretDirs...)
	return &Resolver{
		allowedDirs: dirs,
		getenv:      os.Getenv,
		readFile:    os.ReadFile,
	}
}

// IsReference reports whether value points elsewhere rather than being the
// secret itself.
func IsReference(value string) bool {
	return strings.HasPrefix(value, "ENV=") ||
		strings.HasPrefix(value, "FILE=") ||
		(strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}"))
}

// IsReference reports whether value is a reference.
func (r *Resolver) IsReference(value string) bool {
	return IsReference(value)
}

// Resolve returns the secret value for a configured value.
func (r *Resolver) Resolve(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	if name, ok := strings.CutPrefix(value, "ENV="); ok {
		return r.env(name)
	}

	if path, ok := strings.CutPrefix(value, "FILE="); ok {
		path = strings.TrimSpace(path)
		if err := r.validatePath(path); err != nil {
			return "", fmt.Errorf("secret path validation failed: %w", err)
		}
		data, err := r.readFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		return r.env(value[2 : len(value)-1])
	}

	return value, nil
}

func (r *Resolver) env(name string) (string, error) {
	v := r.getenv(name)
	if v == "" {
		return "", fmt.Errorf("environment variable %s not set", name)
	}
	return v, nil
}

// validatePath rejects traversal and paths outside the allowed directories.
func (r *Resolver) validatePath(path string) error {
	if strings.Contains(path, "..") {
		return fmt.Errorf("path traversal not allowed: %s", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	for _, allowed := range r.allowedDirs {
		if strings.HasPrefix(absPath, allowed+string(filepath.Separator)) || absPath == allowed {
			return nil
		}
	}

	return fmt.Errorf("path %s not in allowed directories", absPath)
}
