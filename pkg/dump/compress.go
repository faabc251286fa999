package dump

import (
	"compress/gzip"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// CompressInPlace rewrites the document through gzip at maximum compression,
// removes the uncompressed original, and returns the new filename. The
// original is only removed after the compressed file is fully flushed.
func CompressInPlace(path string, logger *zap.Logger) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document for compression: %w", err)
	}

	// O_EXCL guards against truncating a compressed document from an
	// earlier run; collision resolution should have picked a free name.
	gzPath := path + ".gz"
	outFile, err := os.OpenFile(gzPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create compressed file: %w", err)
	}

	writer, err := gzip.NewWriterLevel(outFile, gzip.BestCompression)
	if err != nil {
		outFile.Close()
		return "", fmt.Errorf("failed to initialize gzip writer: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		outFile.Close()
		os.Remove(gzPath)
		return "", fmt.Errorf("failed to write compressed data: %w", err)
	}
	if err := writer.Close(); err != nil {
		outFile.Close()
		os.Remove(gzPath)
		return "", fmt.Errorf("failed to finalize compressed data: %w", err)
	}
	if err := outFile.Close(); err != nil {
		os.Remove(gzPath)
		return "", fmt.Errorf("failed to close compressed file: %w", err)
	}

	if err := os.Remove(path); err != nil {
		logger.Warn("Failed to remove uncompressed original", zap.String("file", path), zap.Error(err))
	}

	logger.Debug("Compressed document",
		zap.String("original", path),
		zap.String("compressed", gzPath),
		zap.Int("uncompressedBytes", len(data)))
	return gzPath, nil
}
