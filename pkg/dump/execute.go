package dump

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dhruv13x/codedump/pkg/ignore"

	"go.uber.org/zap"
)

// ErrDeclined is returned when the user answers the confirmation prompt with
// anything other than an affirmative response.
var ErrDeclined = errors.New("aborted by user")

// Run executes the full pipeline: discover, confirm, render, compress,
// checksum, archive. Every stage completes before the next begins; nothing
// runs concurrently.
func Run(args Arguments, logger *zap.Logger) error {
	return run(args, logger, os.Stdin, os.Stdout, time.Now())
}

// run is the testable core of Run with the process-wide resources injected.
func run(args Arguments, logger *zap.Logger, stdin io.Reader, stdout io.Writer, now time.Time) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := now

	root := args.Directory
	if root == "" {
		root = "."
	}

	excludes, err := ignore.Load(filepath.Join(root, DumpignoreName), args.ExcludePatterns, logger)
	if err != nil {
		return fmt.Errorf("failed to load exclude patterns: %w", err)
	}

	files, err := DiscoverFiles(root, excludes, logger, args.Verbose)
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}

	docPath := ""
	if len(files) == 0 {
		logger.Info("No matching files to dump")
		fmt.Fprintln(stdout, "Nothing to dump.")
		if !args.Bundle {
			return nil
		}
		// Archive-only: fall through with no fresh document.
	} else {
		if !args.Quiet {
			fmt.Fprintf(stdout, "Files to dump (%d):\n", len(files))
			for _, f := range files {
				fmt.Fprintf(stdout, "  %s\n", f)
			}
		}
		if !args.Force && !args.Quiet {
			proceed, promptErr := promptUser("Proceed? [y/N]: ", stdin, stdout)
			if promptErr != nil {
				return fmt.Errorf("failed to read confirmation: %w", promptErr)
			}
			if !proceed {
				logger.Info("User declined confirmation")
				return ErrDeclined
			}
		}

		docPath, err = writeDump(root, files, args, now, logger, stdout)
		if err != nil {
			return err
		}
	}

	if args.Bundle {
		result, err := ArchiveDumps(root, docPath, now, logger)
		if err != nil {
			return err
		}
		if result.BundlePath == "" {
			fmt.Fprintln(stdout, "Nothing to archive.")
		} else {
			fmt.Fprintf(stdout, "Archived %d files into %s\n", len(result.Members), result.BundlePath)
		}
	}

	logger.Info("Dump completed", zap.Duration("elapsed", time.Since(startTime)))
	return nil
}

// writeDump renders the document, writes it, and runs the compression and
// checksum stages. It returns the final document path.
func writeDump(root string, files []string, args Arguments, now time.Time, logger *zap.Logger, stdout io.Writer) (string, error) {
	entries := make([]FileEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, NewFileEntry(f))
	}

	content, err := RenderDocument(root, entries, args, now, logger)
	if err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}

	name := args.Output
	if name == "" {
		name = DefaultOutputName(root, now)
	}
	docPath := resolveCollision(filepath.Join(root, name), args.Compress, logger)

	if err := os.WriteFile(docPath, content, 0644); err != nil {
		logger.Error("Failed to write dump document", zap.String("file", docPath), zap.Error(err))
		return "", fmt.Errorf("failed to write dump document: %w", err)
	}
	logger.Info("Wrote dump document",
		zap.String("file", docPath),
		zap.Int("fileCount", len(entries)),
		zap.Int("sizeBytes", len(content)))

	if args.Compress {
		docPath, err = CompressInPlace(docPath, logger)
		if err != nil {
			return "", err
		}
	}

	digestLine, err := ChecksumDocument(docPath, filepath.Join(root, LedgerName), logger)
	if err != nil {
		return "", err
	}
	fmt.Fprintln(stdout, digestLine)
	fmt.Fprintf(stdout, "Created %s\n", docPath)

	return docPath, nil
}
