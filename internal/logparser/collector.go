package logparser

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// ErrNoLogFiles is returned by callers that require at least one log file.
var ErrNoLogFiles = errors.New("no log files found")

// CollectFiles expands files, directories and glob patterns into a
// deduplicated list of log files. Order follows the inputs; files found
// under a directory or pattern are listed in lexical walk order.
func CollectFiles(inputs []string, logger *zap.Logger) []string {
	if logger == nil {
		logger = zap.NewNop()
	}

	var files []string
	for _, input := range inputs {
		info, err := os.Stat(input)
		switch {
		case err == nil && info.Mode().IsRegular():
			if isLogFile(input) {
				files = append(files, input)
			}
		case err == nil && info.IsDir():
			files = append(files, walkLogFiles(input, nil, logger)...)
		default:
			matched, globErr := globLogFiles(input, logger)
			if globErr != nil {
				logger.Warn("invalid-log-pattern", zap.String("pattern", input), zap.Error(globErr))
				continue
			}
			files = append(files, matched...)
		}
	}

	return dedupe(files)
}

func isLogFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), LogExtension)
}

// globLogFiles walks the static prefix of pattern and keeps matching log files.
// "*" stays within one path segment, "**/" spans zero or more segments.
func globLogFiles(pattern string, logger *zap.Logger) ([]string, error) {
	pattern = filepath.ToSlash(filepath.Clean(pattern))

	variants := doubleStarVariants(pattern)
	globs := make([]glob.Glob, 0, len(variants))
	for _, v := range variants {
		g, err := glob.Compile(v, '/')
		if err != nil {
			return nil, err
		}
		globs = append(globs, g)
	}

	root := staticPrefix(pattern)
	if _, statErr := os.Stat(root); statErr != nil {
		return nil, nil
	}

	return walkLogFiles(root, func(path string) bool {
		slashed := filepath.ToSlash(path)
		for _, g := range globs {
			if g.Match(slashed) {
				return true
			}
		}
		return false
	}, logger), nil
}

// doubleStarVariants expands every "**/" in pattern into the forms with and
// without it, since the glob engine needs at least one segment there.
func doubleStarVariants(pattern string) []string {
	const token = "**/"

	i := strings.Index(pattern, token)
	if i < 0 {
		return []string{pattern}
	}

	head := pattern[:i]
	var out []string
	for _, tail := range doubleStarVariants(pattern[i+len(token):]) {
		out = append(out, head+token+tail, head+tail)
	}
	return out
}

// staticPrefix returns the leading directory of pattern that contains no
// glob metacharacters.
func staticPrefix(pattern string) string {
	segments := strings.Split(pattern, "/")
	prefix := make([]string, 0, len(segments))
	for _, seg := range segments[:len(segments)-1] {
		if strings.ContainsAny(seg, "*?[{") {
			break
		}
		prefix = append(prefix, seg)
	}

	if len(prefix) == 0 {
		return "."
	}
	root := strings.Join(prefix, "/")
	if root == "" {
		return "/"
	}
	return filepath.FromSlash(root)
}

func walkLogFiles(root string, keep func(string) bool, logger *zap.Logger) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug("log-walk-skipped", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !isLogFile(path) {
			return nil
		}
		if keep != nil && !keep(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files
}

func dedupe(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	uniq := make([]string, 0, len(files))
	for _, f := range files {
		key := filepath.Clean(f)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		uniq = append(uniq, f)
	}
	return uniq
}
