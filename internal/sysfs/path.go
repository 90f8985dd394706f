package sysfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/gobwas/glob"
	"github.com/yookoala/realpath"
)

// Canonicalize resolves symlinks and relative segments so that a node's
// basename is stable even when it was reached through an alias such as
// /sys/bus/scsi/devices/host0.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := realpath.Realpath(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return resolved, nil
}

// Glob returns the entries below dir matching pattern, sorted
// lexicographically. The pattern may span several path segments
// ("block/sd*"); every segment but the last must name a directory.
// A dir that does not exist yields no matches.
func Glob(dir, pattern string) ([]string, error) {
	segments := strings.Split(pattern, "/")
	matchers := make([]glob.Glob, len(segments))
	for i, seg := range segments {
		g, err := glob.Compile(seg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		matchers[i] = g
	}

	current := []string{dir}
	for _, g := range matchers {
		var next []string
		for _, base := range current {
			entries, err := os.ReadDir(base)
			if err != nil {
				if os.IsNotExist(err) || isNotDir(err) {
					continue
				}
				return nil, err
			}
			for _, entry := range entries {
				if g.Match(entry.Name()) {
					next = append(next, filepath.Join(base, entry.Name()))
				}
			}
		}
		current = next
		if len(current) == 0 {
			return nil, nil
		}
	}

	sort.Strings(current)
	return current, nil
}

func isNotDir(err error) bool {
	return errors.Is(err, syscall.ENOTDIR)
}
