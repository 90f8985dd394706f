// Package sysfstest builds fake sysfs trees for tests.
package sysfstest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Tree is a throwaway directory laid out like a sysfs mount
type Tree struct {
	t    testing.TB
	Root string
}

// New creates an empty tree under t.TempDir(). Root is already
// symlink-free so tests can compare it against canonicalized paths.
func New(t testing.TB) *Tree {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return &Tree{t: t, Root: root}
}

// Path joins rel onto the tree root
func (f *Tree) Path(rel string) string {
	return filepath.Join(f.Root, rel)
}

// Dir creates rel and any missing parents
func (f *Tree) Dir(rel string) string {
	f.t.Helper()
	p := f.Path(rel)
	require.NoError(f.t, os.MkdirAll(p, 0o755))
	return p
}

// File writes content to rel, creating parents as needed
func (f *Tree) File(rel, content string) {
	f.t.Helper()
	f.Dir(filepath.Dir(rel))
	require.NoError(f.t, os.WriteFile(f.Path(rel), []byte(content), 0o644))
}

// Attrs writes one file per entry of attrs below dir
func (f *Tree) Attrs(dir string, attrs map[string]string) {
	f.t.Helper()
	f.Dir(dir)
	for name, content := range attrs {
		f.File(filepath.Join(dir, name), content)
	}
}

// Link creates a symlink at rel pointing to target. target is written
// verbatim, so relative targets behave like the kernel's ../../ links.
func (f *Tree) Link(rel, target string) {
	f.t.Helper()
	f.Dir(filepath.Dir(rel))
	require.NoError(f.t, os.Symlink(target, f.Path(rel)))
}
