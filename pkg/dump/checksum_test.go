package dump

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func TestChecksumDocumentSidecarMatchesRecomputation(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "proj_all_code_dump_20260823_120000.md")
	content := []byte("# Code Dump\n\nsome content\n")
	require.NoError(t, os.WriteFile(docPath, content, 0644))

	line, err := ChecksumDocument(docPath, filepath.Join(dir, LedgerName), zap.NewNop())
	require.NoError(t, err)

	want := fmt.Sprintf("%x  %s", sha256.Sum256(content), filepath.Base(docPath))
	assert.Equal(t, want, line)

	sidecar, err := os.ReadFile(docPath + ".sha256")
	require.NoError(t, err)
	assert.Equal(t, want+"\n", string(sidecar))

	ledger, err := os.ReadFile(filepath.Join(dir, LedgerName))
	require.NoError(t, err)
	assert.Equal(t, want+"\n", string(ledger))
}

func TestChecksumLedgerIsAppendOnly(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := filepath.Join(dir, LedgerName)

	first := filepath.Join(dir, "a_all_code_dump_20260823_120000.md")
	second := filepath.Join(dir, "a_all_code_dump_20260823_120001.md")
	require.NoError(t, os.WriteFile(first, []byte("one"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("two"), 0644))

	lineOne, err := ChecksumDocument(first, ledgerPath, zap.NewNop())
	require.NoError(t, err)
	lineTwo, err := ChecksumDocument(second, ledgerPath, zap.NewNop())
	require.NoError(t, err)

	ledger, err := os.ReadFile(ledgerPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(ledger), "\n"), "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, lineOne, lines[0])
	assert.Equal(t, lineTwo, lines[1])
}

func TestChecksumDocumentMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := ChecksumDocument(filepath.Join(dir, "absent.md"), filepath.Join(dir, LedgerName), zap.NewNop())

	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, LedgerName))
	assert.True(t, os.IsNotExist(statErr), "ledger must not be created on failure")
}
