// Copyright © 2025 The pysca authors

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterExcludes_ByName(t *testing.T) {
	paths := []string{
		"src/main.py",
		"src/generated.py",
		"lib/utils.py",
	}
	result := filterExcludes(paths, []string{"generated.py"})
	assert.Equal(t, []string{"src/main.py", "lib/utils.py"}, result)
}

func TestFilterExcludes_ByDirectory(t *testing.T) {
	paths := []string{
		"src/main.py",
		"build/output.py",
		"build/sub/deep.py",
		"lib/utils.py",
	}
	result := filterExcludes(paths, []string{"build"})
	assert.Equal(t, []string{"src/main.py", "lib/utils.py"}, result)
}

func TestFilterExcludes_GlobPattern(t *testing.T) {
	paths := []string{
		"src/main.py",
		"src/test_foo.py",
		"src/test_bar.py",
		"lib/utils.py",
	}
	result := filterExcludes(paths, []string{"test_*"})
	assert.Equal(t, []string{"src/main.py", "lib/utils.py"}, result)
}

func TestFilterExcludes_MultiplePatterns(t *testing.T) {
	paths := []string{
		"src/main.py",
		"build/output.py",
		"src/generated.py",
		"lib/utils.py",
	}
	result := filterExcludes(paths, []string{"build", "generated.py"})
	assert.Equal(t, []string{"src/main.py", "lib/utils.py"}, result)
}

func TestFilterExcludes_EmptyExcludes(t *testing.T) {
	paths := []string{"src/main.py"}
	result := filterExcludes(paths, nil)
	assert.Equal(t, []string{"src/main.py"}, result)
}

func TestMatchesAny_FullPath(t *testing.T) {
	assert.True(t, matchesAny("src/main.py", []string{"src/*.py"}))
	assert.False(t, matchesAny("lib/main.py", []string{"src/*.py"}))
}

func TestMatchesAny_BaseName(t *testing.T) {
	assert.True(t, matchesAny("deep/nested/setup.py", []string{"setup.py"}))
}

func TestMatchesAny_Component(t *testing.T) {
	assert.True(t, matchesAny("project/build/output.py", []string{"build"}))
	assert.False(t, matchesAny("project/src/output.py", []string{"build"}))
}

func TestSplitPath(t *testing.T) {
	components := splitPath("a/b/c.py")
	assert.Contains(t, components, "c.py")
	assert.Contains(t, components, "b")
	assert.Contains(t, components, "a")
}

func TestExpandArgs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "pkg")
	require.NoError(t, os.Mkdir(sub, 0700))
	for _, name := range []string{"a.py", "b.txt", "pkg/c.py"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x = 1\n"), 0600))
	}

	// A bare directory expands recursively to its .py files.
	files, err := expandArgs([]string{dir}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "pkg", "c.py"),
	}, files)

	// The /... suffix is equivalent.
	files, err = expandArgs([]string{dir + "/..."}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "pkg", "c.py"),
	}, files)

	// Plain files pass through even without a .py extension.
	files, err = expandArgs([]string{filepath.Join(dir, "b.txt")}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.txt")}, files)

	_, err = expandArgs([]string{filepath.Join(dir, "missing.py")}, nil)
	assert.Error(t, err)
}
