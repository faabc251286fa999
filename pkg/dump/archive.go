package dump

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// storedExtensions lists member suffixes that are already compressed and are
// stored in the bundle without re-compression.
var storedExtensions = []string{".gz", ".zip", ".tgz", ".xz", ".bz2"}

// BundleResult reports what an archive run did.
type BundleResult struct {
	BundlePath string   // Path of the created bundle; empty when nothing was archived.
	Members    []string // Workspace-relative names of the bundled (and pruned) files.
}

// ArchiveDumps bundles every prior dump document in the workspace root (and
// each one's .sha256 sidecar) into archives/dumps_bundle_{timestamp}.zip,
// then deletes the originals. The document produced by the current run,
// given as currentDoc, is never bundled. Deletion happens strictly after the
// bundle is fully written and closed; on any failure the partial bundle is
// removed and no source file is touched.
func ArchiveDumps(root, currentDoc string, now time.Time, logger *zap.Logger) (BundleResult, error) {
	members, err := collectBundleMembers(root, currentDoc)
	if err != nil {
		return BundleResult{}, fmt.Errorf("failed to collect archive members: %w", err)
	}

	if len(members) == 0 {
		logger.Info("Nothing to archive")
		return BundleResult{}, nil
	}

	archiveRoot := filepath.Join(root, ArchiveDir)
	if err := os.MkdirAll(archiveRoot, 0755); err != nil {
		return BundleResult{}, fmt.Errorf("failed to create archive directory: %w", err)
	}

	bundlePath := filepath.Join(archiveRoot, fmt.Sprintf("dumps_bundle_%s.zip", now.Format(timestampLayout)))
	if err := writeBundle(bundlePath, root, members); err != nil {
		os.Remove(bundlePath)
		return BundleResult{}, fmt.Errorf("failed to write archive bundle: %w", err)
	}

	// The bundle is on disk; only now may the originals go.
	for _, member := range members {
		if err := os.Remove(filepath.Join(root, member)); err != nil {
			logger.Warn("Failed to remove bundled file", zap.String("file", member), zap.Error(err))
		}
	}

	logger.Info("Archived prior dumps",
		zap.String("bundle", bundlePath),
		zap.Int("memberCount", len(members)))
	return BundleResult{BundlePath: bundlePath, Members: members}, nil
}

// collectBundleMembers lists the workspace-root files eligible for bundling:
// default-named dump documents (compressed or not) other than the current
// one, plus each matched dump's sidecar when present.
func collectBundleMembers(root, currentDoc string) ([]string, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	currentBase := ""
	if currentDoc != "" {
		currentBase = filepath.Base(currentDoc)
	}
	var members []string
	for _, entry := range dirEntries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if !isDumpDocument(name) {
			continue
		}
		if currentBase != "" && (name == currentBase || name == currentBase+".sha256") {
			continue
		}

		members = append(members, name)
		sidecar := name + ".sha256"
		if _, err := os.Stat(filepath.Join(root, sidecar)); err == nil {
			members = append(members, sidecar)
		}
	}

	sort.Strings(members)
	return dedupe(members), nil
}

// isDumpDocument reports whether a filename is a default-named dump document,
// in either uncompressed or gzipped form.
func isDumpDocument(name string) bool {
	if !strings.Contains(name, DumpMarker) {
		return false
	}
	return strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".md.gz")
}

// writeBundle creates the zip bundle and adds every member. Members that are
// already compressed are stored verbatim; the rest are deflated.
func writeBundle(bundlePath, root string, members []string) error {
	bundleFile, err := os.Create(bundlePath)
	if err != nil {
		return err
	}

	zipWriter := zip.NewWriter(bundleFile)
	for _, member := range members {
		if err := addBundleMember(zipWriter, root, member); err != nil {
			zipWriter.Close()
			bundleFile.Close()
			return fmt.Errorf("failed to add %s: %w", member, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		bundleFile.Close()
		return err
	}
	return bundleFile.Close()
}

// addBundleMember streams one workspace file into the open zip writer.
func addBundleMember(zipWriter *zip.Writer, root, member string) error {
	src, err := os.Open(filepath.Join(root, member))
	if err != nil {
		return err
	}
	defer src.Close()

	header := &zip.FileHeader{
		Name:   member,
		Method: zip.Deflate,
	}
	if isStoredExtension(member) {
		header.Method = zip.Store
	}
	if info, err := src.Stat(); err == nil {
		header.Modified = info.ModTime()
	}

	dst, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}

// isStoredExtension reports whether the member is already compressed.
func isStoredExtension(name string) bool {
	for _, ext := range storedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// dedupe removes adjacent duplicates from a sorted slice.
func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || sorted[i-1] != s {
			out = append(out, s)
		}
	}
	return out
}
