package dump

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dhruv13x/codedump/pkg/ignore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func noExcludes(t *testing.T) *ignore.ExcludeSet {
	t.Helper()
	return ignore.NewExcludeSet(zap.NewNop())
}

func TestDiscoverFilesAllowlistAndFixedExcludes(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.py":                    "x = 1\n",
		"b.md":                    "# b\n",
		"Dockerfile":              "FROM scratch\n",
		"conf/settings.yaml":      "k: v\n",
		"notes.log":               "nope\n",
		".env":                    "SECRET=1\n",
		"key.pem":                 "nope\n",
		"cache.pyc":               "nope\n",
		"__pycache__/m.py":        "nope\n",
		".git/config.ini":         "nope\n",
		".venv/pyvenv.cfg":        "nope\n",
		"archives/old.md":         "nope\n",
		"image.png":               "nope\n",
		"checksums_index.txt":     "deadbeef  old.md\n",
		"proj_all_code_dump_20240101_000000.md":        "old dump\n",
		"proj_all_code_dump_20240101_000000.md.sha256": "deadbeef\n",
	})

	files, err := DiscoverFiles(dir, noExcludes(t), zap.NewNop(), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"Dockerfile", "a.py", "b.md", "conf/settings.yaml"}, files)
}

func TestDiscoverFilesDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"z.py":     "z\n",
		"a.py":     "a\n",
		"m/n.toml": "t\n",
	})

	first, err := DiscoverFiles(dir, noExcludes(t), zap.NewNop(), false)
	require.NoError(t, err)
	second, err := DiscoverFiles(dir, noExcludes(t), zap.NewNop(), false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a.py", "m/n.toml", "z.py"}, first)
}

func TestDiscoverFilesUserExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.py":         "a\n",
		"b.md":         "b\n",
		"docs/c.md":    "c\n",
		"docs/d.yaml":  "d\n",
		"other/e.yaml": "e\n",
	})

	excludes := ignore.NewExcludeSet(zap.NewNop())
	excludes.CompileLines("*.md", "docs/")

	files, err := DiscoverFiles(dir, excludes, zap.NewNop(), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.py", "other/e.yaml"}, files)
}

func TestDiscoverFilesSkipsBinaryContent(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"good.txt": "text\n"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.txt"), []byte{'a', 0, 'b'}, 0644))

	files, err := DiscoverFiles(dir, noExcludes(t), zap.NewNop(), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"good.txt"}, files)
}

func TestDiscoverFilesEmptyWorkspace(t *testing.T) {
	files, err := DiscoverFiles(t.TempDir(), noExcludes(t), zap.NewNop(), false)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestIsBinaryFile(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "t.txt")
	binPath := filepath.Join(dir, "b.txt")
	emptyPath := filepath.Join(dir, "e.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("hello\nworld\n"), 0644))
	require.NoError(t, os.WriteFile(binPath, []byte{0x7f, 'E', 'L', 'F', 0, 0, 1}, 0644))
	require.NoError(t, os.WriteFile(emptyPath, nil, 0644))

	isBin, err := isBinaryFile(textPath)
	require.NoError(t, err)
	assert.False(t, isBin)

	isBin, err = isBinaryFile(binPath)
	require.NoError(t, err)
	assert.True(t, isBin)

	isBin, err = isBinaryFile(emptyPath)
	require.NoError(t, err)
	assert.False(t, isBin)
}
