package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func TestMatchesPathGlobSemantics(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		path     string
		want     bool
	}{
		{"star matches basename", []string{"*.log"}, "app.log", true},
		{"star matches nested", []string{"*.log"}, "logs/deep/app.log", true},
		{"star does not cross separators", []string{"a*.txt"}, "a/b.txt", false},
		{"question mark", []string{"file?.txt"}, "file1.txt", true},
		{"directory pattern matches dir", []string{"build/"}, "build/", true},
		{"bare name matches subtree", []string{"node_modules"}, "node_modules/pkg/index.js", true},
		{"root-relative only at root", []string{"/top.txt"}, "sub/top.txt", false},
		{"root-relative at root", []string{"/top.txt"}, "top.txt", true},
		{"double star middle", []string{"src/**/gen.py"}, "src/a/b/gen.py", true},
		{"double star middle single level", []string{"src/**/gen.py"}, "src/gen.py", true},
		{"double star leading", []string{"**/gen.py"}, "a/b/gen.py", true},
		{"double star trailing", []string{"build/**"}, "build/out/bin.txt", true},
		{"escaped regex metachar", []string{"a+b.txt"}, "a+b.txt", true},
		{"no match", []string{"*.log"}, "app.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewExcludeSet(zap.NewNop())
			set.CompileLines(tt.patterns...)
			assert.Equal(t, tt.want, set.MatchesPath(tt.path))
		})
	}
}

func TestNegationReincludesPath(t *testing.T) {
	set := NewExcludeSet(zap.NewNop())
	set.CompileLines("*.md", "!README.md")

	assert.True(t, set.MatchesPath("notes.md"))
	assert.False(t, set.MatchesPath("README.md"))
}

func TestCompileLinesSkipsCommentsAndBlanks(t *testing.T) {
	set := NewExcludeSet(zap.NewNop())
	set.CompileLines("# a comment", "", "   ", "*.tmp")

	assert.Equal(t, 1, set.Len())
	assert.True(t, set.MatchesPath("x.tmp"))
}

func TestCompileFileMissingIsNotAnError(t *testing.T) {
	set := NewExcludeSet(zap.NewNop())
	err := set.CompileFile(filepath.Join(t.TempDir(), "no-such-file"))

	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestLoadCombinesFileAndCLIPatterns(t *testing.T) {
	dir := t.TempDir()
	ignorePath := filepath.Join(dir, ".dumpignore")
	require.NoError(t, os.WriteFile(ignorePath, []byte("# generated\nvendor/\n"), 0644))

	set, err := Load(ignorePath, []string{"*.bak"}, zap.NewNop())
	require.NoError(t, err)

	assert.True(t, set.MatchesPath("vendor/"))
	assert.True(t, set.MatchesPath("old.bak"))
	assert.False(t, set.MatchesPath("main.py"))
}
