package dump

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ChecksumDocument computes a SHA-256 digest over the document's final bytes,
// writes the sidecar <document>.sha256, and appends the digest line to the
// workspace ledger. The line uses the coreutils sha256sum format so ledgers
// started by other tooling stay append-compatible.
//
// Sidecar or ledger write failures are non-fatal: the dump itself already
// succeeded, so they are logged as warnings and the digest line is still
// returned.
func ChecksumDocument(docPath, ledgerPath string, logger *zap.Logger) (string, error) {
	data, err := os.ReadFile(docPath)
	if err != nil {
		return "", fmt.Errorf("failed to read document for checksum: %w", err)
	}

	digest := sha256.Sum256(data)
	line := fmt.Sprintf("%x  %s", digest, filepath.Base(docPath))

	if err := os.WriteFile(docPath+".sha256", []byte(line+"\n"), 0644); err != nil {
		logger.Warn("Failed to write checksum sidecar", zap.String("file", docPath+".sha256"), zap.Error(err))
	}

	if err := appendToLedger(ledgerPath, line); err != nil {
		logger.Warn("Failed to append to checksum ledger", zap.String("ledger", ledgerPath), zap.Error(err))
	}

	logger.Debug("Recorded document checksum",
		zap.String("document", docPath),
		zap.String("digest", fmt.Sprintf("%x", digest)))
	return line, nil
}

// appendToLedger appends one digest line to the ledger, creating the file if
// absent. The ledger is append-only; existing entries are never rewritten.
func appendToLedger(ledgerPath, line string) error {
	f, err := os.OpenFile(ledgerPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(line + "\n")
	return err
}
