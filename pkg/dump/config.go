package dump

// Arguments holds the configuration options for a single dump invocation.
// It is populated once by the command layer and never mutated afterward.
type Arguments struct {
	Directory       string   // Workspace root to walk; "." for the current directory.
	Output          string   // Explicit output filename; empty selects the default pattern.
	ExcludePatterns []string // Additional exclude patterns from --exclude.
	Force           bool     // Skip the confirmation prompt.
	Quiet           bool     // Skip the preview and the confirmation prompt.
	NoTOC           bool     // Omit the table of contents.
	Tree            bool     // Prepend a directory tree of the dumped files.
	Compress        bool     // Gzip the final document.
	Bundle          bool     // Run the archive stage after the dump.
	Verbose         bool     // Enable debug logging of skipped files.
}

// FileEntry describes one discovered file and its derived presentation
// attributes.
type FileEntry struct {
	RelPath  string // Workspace-relative path, slash-normalized.
	Anchor   string // Lowercase-hyphenated anchor slug derived from RelPath.
	Language string // Code-fence language tag; empty means unlabeled.
}

// Fixed names of artifacts the tool itself produces.
const (
	DumpMarker     = "_all_code_dump_"     // Substring identifying default-named dump documents.
	LedgerName     = "checksums_index.txt" // Append-only checksum ledger in the workspace root.
	ArchiveDir     = "archives"            // Directory holding dump bundles.
	DumpignoreName = ".dumpignore"         // Workspace exclude-pattern file.
)

// includeExtensions lists the file extensions eligible for dumping.
var includeExtensions = map[string]bool{
	".py":     true,
	".sh":     true,
	".ini":    true,
	".txt":    true,
	".md":     true,
	".flake8": true,
	".yml":    true,
	".yaml":   true,
	".toml":   true,
	".cfg":    true,
	".json":   true,
}

// includeNames lists literal basenames eligible regardless of extension.
var includeNames = map[string]bool{
	"Dockerfile": true,
}

// excludeExtensions lists extensions never dumped even when a file would
// otherwise qualify.
var excludeExtensions = map[string]bool{
	".log":    true,
	".pem":    true,
	".db":     true,
	".sqlite": true,
	".pyc":    true,
}

// excludeNames lists literal basenames never dumped.
var excludeNames = map[string]bool{
	".env":     true,
	LedgerName: true,
}

// excludeDirs lists directory names whose subtrees are pruned entirely.
var excludeDirs = map[string]bool{
	"__pycache__":   true,
	".git":          true,
	".venv":         true,
	"myenv":         true,
	".mypy_cache":   true,
	".pytest_cache": true,
	".idea":         true,
	ArchiveDir:      true,
}

// fenceLanguages maps file extensions to code-fence language tags.
var fenceLanguages = map[string]string{
	".py":     "python",
	".sh":     "bash",
	".yml":    "yaml",
	".yaml":   "yaml",
	".ini":    "ini",
	".cfg":    "ini",
	".flake8": "ini",
	".txt":    "text",
	".md":     "markdown",
	".json":   "json",
	".toml":   "toml",
}
