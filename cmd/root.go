package cmd

import (
	"strings"

	"github.com/dhruv13x/codedump/pkg/dump"
	"github.com/dhruv13x/codedump/pkg/logging"
	"github.com/dhruv13x/codedump/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// logger is installed by Execute before the command runs.
var logger *zap.Logger

var (
	flagForce    bool
	flagQuiet    bool
	flagNoTOC    bool
	flagTree     bool
	flagCompress bool
	flagBundle   bool
	flagArchive  bool
	flagVerbose  bool
	flagOutput   string
	flagExclude  string
)

// rootCmd is the base command; codedump has no subcommands beyond version,
// so the dump pipeline runs directly on the root.
var rootCmd = &cobra.Command{
	Use:   "codedump",
	Short: "codedump concatenates project files into a single Markdown dump",
	Long: `codedump walks the current directory, concatenates matching source and
config files into one timestamped Markdown document, records a SHA-256
checksum, and can bundle older dumps into a compressed archive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Flag errors above already printed usage; runtime failures should not.
		cmd.SilenceUsage = true

		if flagVerbose || flagQuiet {
			// Rebuild the logger to honor verbosity flags.
			if err := logging.Setup(flagVerbose, flagQuiet, "codedump", version.Get().Version); err == nil {
				logger = logging.Logger
			}
		}

		arguments := dump.Arguments{
			Directory: ".",
			Output:    flagOutput,
			Force:     flagForce,
			Quiet:     flagQuiet,
			NoTOC:     flagNoTOC,
			Tree:      flagTree,
			Compress:  flagCompress,
			Bundle:    flagBundle || flagArchive,
			Verbose:   flagVerbose,
		}
		if flagExclude != "" {
			for _, pattern := range strings.Split(flagExclude, ",") {
				pattern = strings.TrimSpace(pattern)
				if pattern != "" {
					arguments.ExcludePatterns = append(arguments.ExcludePatterns, pattern)
				}
			}
		}

		return dump.Run(arguments, logger)
	},
}

// Execute runs the root command with the provided logger.
func Execute(l *zap.Logger) error {
	logger = l
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVarP(&flagForce, "force", "y", false, "Skip the confirmation prompt")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Skip the file preview and confirmation prompt")
	rootCmd.Flags().BoolVar(&flagNoTOC, "no-toc", false, "Omit the table of contents")
	rootCmd.Flags().BoolVar(&flagTree, "tree", false, "Prepend a directory tree of the dumped files")
	rootCmd.Flags().BoolVar(&flagCompress, "compress", false, "Gzip the final document")
	rootCmd.Flags().BoolVar(&flagBundle, "bundle", false, "Bundle prior dumps into a zip archive after dumping")
	rootCmd.Flags().BoolVar(&flagArchive, "archive", false, "Alias for --bundle")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "Explicit output filename")
	rootCmd.Flags().StringVar(&flagExclude, "exclude", "", "Comma-separated glob patterns to exclude")
}
