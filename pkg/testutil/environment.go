// pkg/testutil/environment.go
// DEPENDENCIES: filesystem
// PURPOSE: Orchestrate test environments on memory or real filesystems

package testutil

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/MaxGeldner/gulp-include-source/pkg/filesystem"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// FileTree maps slash-separated paths relative to Root to file contents
type FileTree map[string]string

// TestEnvironment provides a project root on a filesystem
type TestEnvironment struct {
	Root string
	FS   afero.Fs
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.Root = "/project"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		env.Root = t.TempDir()
		env.FS = filesystem.NewOS()
	}

	if err := env.FS.MkdirAll(env.Root, 0755); err != nil {
		t.Fatalf("Failed to create project root: %v", err)
	}

	return env
}

// Path joins elements onto Root
func (env *TestEnvironment) Path(elem ...string) string {
	parts := append([]string{env.Root}, elem...)
	return filepath.Join(parts...)
}

// WithFileTree writes every file of tree below Root, in sorted order
func (env *TestEnvironment) WithFileTree(tree FileTree) *TestEnvironment {
	env.t.Helper()

	names := make([]string, 0, len(tree))
	for name := range tree {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		env.WriteFile(name, tree[name])
	}
	return env
}

// WriteFile writes a single file below Root, creating parents
func (env *TestEnvironment) WriteFile(name, content string) string {
	env.t.Helper()

	full := env.Path(filepath.FromSlash(name))
	if err := env.FS.MkdirAll(filepath.Dir(full), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := afero.WriteFile(env.FS, full, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write file %s: %v", name, err)
	}
	return full
}

// ReadFile reads a file below Root
func (env *TestEnvironment) ReadFile(name string) string {
	env.t.Helper()

	data, err := afero.ReadFile(env.FS, env.Path(filepath.FromSlash(name)))
	if err != nil {
		env.t.Fatalf("Failed to read file %s: %v", name, err)
	}
	return string(data)
}
