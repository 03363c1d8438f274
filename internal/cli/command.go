package cli

import (
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/idelchi/filecensus/internal/tui"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// allowedOutputs lists the accepted --output values.
//
//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{"table", "json"}

// options holds the parsed flag and argument values for one invocation.
type options struct {
	path        string
	output      string
	interactive bool
	quiet       bool
	debug       bool
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var opts options

	cmd := &cobra.Command{
		Use:   "filecensus [flags] [path]",
		Short: "Count files and folders under a path, bucketed by file category",
		Long: heredoc.Doc(`
			filecensus walks a directory tree and reports how many files and
			folders it contains, bucketing files into coarse categories
			(Images, Videos, Audio, Documents, Scripts, Archives,
			Applications) by extension.

			Pass a path for a one-shot scan with a progress bar on stderr.
			Defaults to the current directory if no path is given.

			Use --interactive for a terminal UI that lists mounted volumes,
			lets you browse subfolders, and shows live scan progress.
		`),
		Args:          cobra.MaximumNArgs(1),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			if !slices.Contains(allowedOutputs, opts.output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", opts.output, allowedOutputs)
			}

			if opts.interactive {
				return tui.Run()
			}

			if len(args) == 0 {
				opts.path = "."
			} else {
				opts.path = args[0]
			}

			return logic(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "Output format: json or table")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Pick volumes and folders in a terminal UI")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress the progress bar")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug output")
	cmd.Flags().SortFlags = false

	return cmd.Execute()
}
