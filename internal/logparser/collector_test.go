package logparser

import (
	"path/filepath"
	"testing"

	"github.com/mselser95/trade-hauls/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLogTree(t *testing.T) (string, map[string]string) {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"a":    testutil.WriteLog(t, dir, "a.log", testutil.BuyLine),
		"txt":  testutil.WriteLog(t, dir, "notes.txt", testutil.BuyLine),
		"up":   testutil.WriteLog(t, dir, filepath.Join("sub", "c.LOG"), testutil.SellLine),
		"deep": testutil.WriteLog(t, dir, filepath.Join("sub", "deep", "d.log"), testutil.SellLine),
	}
	return dir, files
}

func TestCollectFiles_DirectoryIsWalkedRecursively(t *testing.T) {
	dir, files := setupLogTree(t)

	got := CollectFiles([]string{dir}, nil)

	assert.ElementsMatch(t, []string{files["a"], files["up"], files["deep"]}, got)
	assert.NotContains(t, got, files["txt"])
}

func TestCollectFiles_SingleFiles(t *testing.T) {
	_, files := setupLogTree(t)

	got := CollectFiles([]string{files["a"], files["txt"]}, nil)

	assert.Equal(t, []string{files["a"]}, got)
}

func TestCollectFiles_Deduplicates(t *testing.T) {
	dir, files := setupLogTree(t)

	got := CollectFiles([]string{files["deep"], dir, files["deep"]}, nil)

	require.Len(t, got, 3)
	assert.Equal(t, files["deep"], got[0], "first occurrence keeps its position")
}

func TestCollectFiles_GlobPatterns(t *testing.T) {
	dir, files := setupLogTree(t)

	t.Run("single-segment", func(t *testing.T) {
		got := CollectFiles([]string{filepath.Join(dir, "*.log")}, nil)
		assert.Equal(t, []string{files["a"]}, got)
	})

	t.Run("recursive", func(t *testing.T) {
		got := CollectFiles([]string{filepath.Join(dir, "**", "*.log")}, nil)
		assert.Contains(t, got, files["deep"])
		assert.Contains(t, got, files["a"], "** also matches zero directories")
	})

	t.Run("recursive-from-cwd", func(t *testing.T) {
		t.Chdir(dir)
		got := CollectFiles([]string{"**/*.log"}, nil)
		assert.Contains(t, got, "a.log")
	})

	t.Run("alternatives", func(t *testing.T) {
		got := CollectFiles([]string{filepath.Join(dir, "{a,zzz}.log")}, nil)
		assert.Equal(t, []string{files["a"]}, got)
	})

	t.Run("no-match", func(t *testing.T) {
		got := CollectFiles([]string{filepath.Join(dir, "missing", "*.log")}, nil)
		assert.Empty(t, got)
	})
}

func TestCollectFiles_MissingPath(t *testing.T) {
	got := CollectFiles([]string{filepath.Join(t.TempDir(), "missing.log")}, nil)
	assert.Empty(t, got)
}

func TestStaticPrefix(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{pattern: "*.log", want: "."},
		{pattern: "logs/*.log", want: filepath.FromSlash("logs")},
		{pattern: "logs/2025/**/*.log", want: filepath.FromSlash("logs/2025")},
		{pattern: "/*.log", want: "/"},
		{pattern: "/var/{a,b}/x.log", want: filepath.FromSlash("/var")},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, staticPrefix(tt.pattern))
		})
	}
}
