package dump

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const timestampLayout = "20060102_150405"

// NewFileEntry derives the presentation attributes for one discovered path.
func NewFileEntry(relPath string) FileEntry {
	return FileEntry{
		RelPath:  relPath,
		Anchor:   anchorSlug(relPath),
		Language: fenceLanguage(relPath),
	}
}

// anchorSlug normalizes a relative path into an anchor identifier: strip a
// leading "./", lowercase, collapse every run of non-alphanumeric characters
// into a single hyphen, and trim leading/trailing hyphens. The table of
// contents and the section anchors both use this function so links always
// resolve.
func anchorSlug(relPath string) string {
	s := strings.TrimPrefix(relPath, "./")
	s = strings.ToLower(s)

	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// fenceLanguage maps a filename to its code-fence language tag; an empty
// string leaves the fence unlabeled.
func fenceLanguage(relPath string) string {
	name := filepath.Base(relPath)
	if name == "Dockerfile" {
		return "dockerfile"
	}
	return fenceLanguages[strings.ToLower(filepath.Ext(name))]
}

// DefaultOutputName builds the default document filename,
// {folder}_all_code_dump_{timestamp}.md, from the workspace root's basename.
func DefaultOutputName(root string, now time.Time) string {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}
	folder := filepath.Base(absRoot)
	return fmt.Sprintf("%s%s%s.md", folder, DumpMarker, now.Format(timestampLayout))
}

// resolveCollision returns a variant of the target filename whose final
// artifact does not exist yet. When compression is requested the document
// ends up at target+".gz", so that name is checked as well; otherwise a
// rerun with --compress would truncate the previous run's compressed
// document. On a collision a random numeric suffix is inserted before the
// final extension so an earlier document is never overwritten.
func resolveCollision(target string, compress bool, logger *zap.Logger) string {
	if !outputExists(target, compress) {
		return target
	}

	ext := filepath.Ext(target)
	stem := strings.TrimSuffix(target, ext)
	for {
		candidate := fmt.Sprintf("%s_%04d%s", stem, rand.Intn(10000), ext)
		if !outputExists(candidate, compress) {
			logger.Warn("Output file already exists, using a suffixed name",
				zap.String("requested", target),
				zap.String("actual", candidate))
			return candidate
		}
	}
}

// outputExists reports whether the document path, or its compressed form
// when compression is requested, is already taken.
func outputExists(target string, compress bool) bool {
	if _, err := os.Stat(target); err == nil {
		return true
	}
	if compress {
		if _, err := os.Stat(target + ".gz"); err == nil {
			return true
		}
	}
	return false
}

// RenderDocument produces the full dump document bytes: header, optional
// tree, optional table of contents, and one fenced section per file in
// discovery order.
func RenderDocument(root string, entries []FileEntry, args Arguments, now time.Time, logger *zap.Logger) ([]byte, error) {
	var doc strings.Builder

	doc.WriteString("# Code Dump\n\n")
	doc.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format("2006-01-02 15:04:05")))

	if args.Tree {
		doc.WriteString("## Project Tree\n\n```text\n")
		doc.WriteString(RenderTree(root, entries))
		doc.WriteString("```\n\n")
	}

	if !args.NoTOC {
		doc.WriteString("## Table of Contents\n\n")
		for i, entry := range entries {
			doc.WriteString(fmt.Sprintf("%d. [%s](#%s)\n", i+1, entry.RelPath, entry.Anchor))
		}
		doc.WriteString("\n")
	}

	for _, entry := range entries {
		content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(entry.RelPath)))
		if err != nil {
			logger.Error("Failed to read file", zap.String("file", entry.RelPath), zap.Error(err))
			return nil, fmt.Errorf("error reading file %s: %w", entry.RelPath, err)
		}

		doc.WriteString(fmt.Sprintf("## %s\n\n", entry.RelPath))
		doc.WriteString(fmt.Sprintf("<a id=\"%s\"></a>\n\n", entry.Anchor))
		doc.WriteString(fmt.Sprintf("```%s\n", entry.Language))
		doc.Write(content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			doc.WriteByte('\n')
		}
		doc.WriteString("```\n\n---\n\n")
	}

	return []byte(doc.String()), nil
}
