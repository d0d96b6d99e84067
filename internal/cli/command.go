package cli

import (
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/idelchi/sizefinder/internal/sizefinder"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// allowedOutputs lists the supported output formats.
//
//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{"table", "json"}

// banner returns the text printed at the start of every table-mode run.
func banner() string {
	return heredoc.Doc(`
		Size finder

		Finds the size of folders by summing the size
		of each child object

		Acts recursively (run on / at your own risk!)
	`)
}

// usageHint is printed when no folder was given.
const usageHint = `Please specify a folder (example: sizefinder "/var/log")`

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var options sizefinder.Options

	cmd := &cobra.Command{
		Use:   "sizefinder [flags] [path]",
		Short: "Report the size of every file and folder directly inside a directory",
		Long: heredoc.Doc(`
			sizefinder measures each immediate child of a directory and lists them
			ordered by size, largest first.

			Files are measured directly; folders by the recursive sum of every file
			beneath them. Sizes use decimal units (1 KB = 1000 bytes).

			Files that vanish or cannot be read during the scan are reported on
			stderr and skipped. Press Ctrl-C to stop scanning early and still get
			a report of the entries measured so far.
		`),
		Args:          cobra.MaximumNArgs(1),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(allowedOutputs, options.Output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
			}

			if len(args) == 0 {
				//nolint:forbidigo // Usage guidance to console
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", banner(), usageHint)

				return nil
			}

			options.Path = args[0]

			return logic(cmd.Context(), options, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.Flags().StringVarP(&options.Output, "output", "o", "table", "Output format: json or table")
	cmd.Flags().BoolVar(&options.Debug, "debug", false, "Enable debug output")
	cmd.Flags().SortFlags = false

	return cmd
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}
