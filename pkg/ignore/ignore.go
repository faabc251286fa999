// Package ignore compiles gitignore-style glob patterns into matchers used
// for the --exclude flag and the workspace .dumpignore file.
package ignore

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Matcher reports whether a workspace-relative path is excluded.
type Matcher interface {
	MatchesPath(path string) bool
	MatchesPathWithPattern(path string) (bool, *Pattern)
}

// Pattern encapsulates a compiled regular expression, a negation flag,
// and metadata about the pattern's origin.
type Pattern struct {
	Regexp *regexp.Regexp // Compiled regular expression for the pattern.
	Negate bool           // Indicates if the pattern is a negation (starts with '!').
	LineNo int            // Line number in the source (1-based).
	Line   string         // Original pattern line.
}

// ExcludeSet is an ordered collection of exclude patterns. Later patterns
// override earlier ones, so a negation can re-include a previously
// excluded path.
type ExcludeSet struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// NewExcludeSet initializes an empty ExcludeSet with the provided logger.
func NewExcludeSet(logger *zap.Logger) *ExcludeSet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExcludeSet{
		patterns: []*Pattern{},
		logger:   logger,
	}
}

// Load builds an ExcludeSet from the workspace .dumpignore file (if present)
// followed by command-line patterns, so command-line patterns take
// precedence.
func Load(dumpignorePath string, cliPatterns []string, logger *zap.Logger) (*ExcludeSet, error) {
	set := NewExcludeSet(logger)

	if dumpignorePath != "" {
		if err := set.CompileFile(dumpignorePath); err != nil {
			return nil, err
		}
	}
	set.CompileLines(cliPatterns...)

	return set, nil
}

// CompileLines compiles a set of pattern lines into the ExcludeSet.
func (s *ExcludeSet) CompileLines(lines ...string) {
	for _, line := range lines {
		lineNo := len(s.patterns) + 1
		re, negate := parsePatternLine(line, lineNo, s.logger)
		if re == nil {
			continue
		}
		p := &Pattern{
			Regexp: re,
			Negate: negate,
			LineNo: lineNo,
			Line:   line,
		}
		s.patterns = append(s.patterns, p)
		s.logger.Debug("Compiled exclude pattern",
			zap.Int("lineNo", p.LineNo),
			zap.String("pattern", p.Line),
			zap.Bool("negate", p.Negate))
	}
}

// CompileFile reads a pattern file and compiles its lines into the
// ExcludeSet. A missing file is not an error.
func (s *ExcludeSet) CompileFile(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Exclude file does not exist and will be skipped", zap.String("filePath", filePath))
			return nil
		}
		s.logger.Error("Failed to read exclude file", zap.String("filePath", filePath), zap.Error(err))
		return err
	}

	s.CompileLines(strings.Split(string(content), "\n")...)
	s.logger.Debug("Loaded exclude file",
		zap.String("filePath", filePath),
		zap.Int("totalPatterns", len(s.patterns)))
	return nil
}

// Len returns the number of compiled patterns.
func (s *ExcludeSet) Len() int {
	return len(s.patterns)
}

// MatchesPath checks if the given path matches any of the exclude patterns.
func (s *ExcludeSet) MatchesPath(path string) bool {
	matches, _ := s.MatchesPathWithPattern(path)
	return matches
}

// MatchesPathWithPattern checks the path against every pattern in order and
// returns the final verdict together with the last pattern that decided it.
func (s *ExcludeSet) MatchesPathWithPattern(path string) (bool, *Pattern) {
	normalized := filepath.ToSlash(path)

	matched := false
	var matchedPattern *Pattern

	for _, p := range s.patterns {
		if p.Regexp.MatchString(normalized) {
			if p.Negate {
				matched = false
			} else {
				matched = true
			}
			matchedPattern = p
		}
	}

	return matched, matchedPattern
}

// parsePatternLine processes a single pattern line and returns a compiled
// regular expression and a negation flag. Returns nil for comments and
// empty lines.
func parsePatternLine(line string, lineNo int, logger *zap.Logger) (*regexp.Regexp, bool) {
	trimmed := strings.TrimSpace(line)

	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	compiled, err := regexp.Compile(translateGlob(trimmed))
	if err != nil {
		logger.Error("Invalid exclude pattern",
			zap.String("pattern", trimmed),
			zap.Int("lineNo", lineNo),
			zap.Error(err))
		return nil, false
	}

	return compiled, negate
}
