package dump

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhruv13x/codedump/pkg/ignore"

	"go.uber.org/zap"
)

// DiscoverFiles walks the workspace root and collects every dumpable file as
// a slash-normalized relative path, lexicographically sorted. The walk is
// deterministic: the same tree always yields the same sequence.
func DiscoverFiles(root string, excludes ignore.Matcher, logger *zap.Logger, verbose bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		if d.IsDir() {
			if excludeDirs[d.Name()] || excludes.MatchesPath(relPath+"/") {
				if verbose {
					logger.Debug("Pruning excluded directory", zap.String("directory", relPath))
				}
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if !isDumpable(relPath, d.Name()) {
			return nil
		}
		if excludes.MatchesPath(relPath) {
			if verbose {
				logger.Debug("File matches exclude pattern", zap.String("file", relPath))
			}
			return nil
		}

		binary, binErr := isBinaryFile(path)
		if binErr != nil {
			logger.Warn("Failed to check if file is binary", zap.String("file", relPath), zap.Error(binErr))
			return nil
		}
		if binary {
			if verbose {
				logger.Debug("Skipping binary content", zap.String("file", relPath))
			}
			return nil
		}

		files = append(files, relPath)
		return nil
	})
	if err != nil {
		logger.Error("Error during file traversal", zap.Error(err))
		return nil, err
	}

	sort.Strings(files)
	logger.Debug("Completed file discovery", zap.Int("fileCount", len(files)))
	return files, nil
}

// isDumpable applies the fixed allowlist and exclude rules to a single file.
func isDumpable(relPath, name string) bool {
	if excludeNames[name] || isDumpArtifact(name) {
		return false
	}

	ext := strings.ToLower(filepath.Ext(name))
	if excludeExtensions[ext] {
		return false
	}

	if includeNames[name] {
		return true
	}
	return includeExtensions[ext]
}

// isDumpArtifact reports whether a filename was produced by a previous run:
// a default-named dump document or one of its sidecars.
func isDumpArtifact(name string) bool {
	if !strings.Contains(name, DumpMarker) {
		return false
	}
	return strings.HasSuffix(name, ".md") ||
		strings.HasSuffix(name, ".md.gz") ||
		strings.HasSuffix(name, ".sha256")
}
