// Copyright © 2025 The pysca authors

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// expandArgs expands command arguments to a list of files to check.
// Directory arguments, with or without a trailing "/...", resolve to
// every .py file found recursively under the directory; plain file
// arguments pass through unchanged.  Exclude patterns filter the
// expanded results.
func expandArgs(args []string, excludes []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if dir, ok := strings.CutSuffix(arg, "/..."); ok {
			if dir == "" {
				dir = "."
			}
			files, err := findPythonFiles(dir)
			if err != nil {
				return nil, fmt.Errorf("expanding %s: %w", arg, err)
			}
			out = append(out, files...)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			files, err := findPythonFiles(arg)
			if err != nil {
				return nil, fmt.Errorf("expanding %s: %w", arg, err)
			}
			out = append(out, files...)
			continue
		}
		out = append(out, arg)
	}
	return filterExcludes(out, excludes), nil
}

// findPythonFiles returns .py files under root, recursively, in sorted
// order.
func findPythonFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".py" {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// filterExcludes removes paths matching any exclude pattern.  A pattern
// matches the full path, the base name, or any single path component, so
// "build" excludes everything under a build directory.
func filterExcludes(paths []string, excludes []string) []string {
	if len(excludes) == 0 {
		return paths
	}
	var out []string
	for _, path := range paths {
		if !matchesAny(path, excludes) {
			out = append(out, path)
		}
	}
	return out
}

func matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		for _, component := range splitPath(path) {
			if ok, _ := filepath.Match(pattern, component); ok {
				return true
			}
		}
	}
	return false
}

func splitPath(path string) []string {
	return strings.Split(filepath.ToSlash(path), "/")
}
