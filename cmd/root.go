// Package cmd holds the cobra commands of the ctnotes binary.
package cmd

import (
	"github.com/grovetools/ctnotes/cli"
	"github.com/grovetools/ctnotes/version"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the ctnotes command tree.
func NewRootCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("ctnotes [files...]", "Open hierarchical notes documents")
	cmd.Long = `Open hierarchical notes documents (.ctb, .ctd, .ctx, .ctz).

Without files a new empty window is activated. When ctnotes is already
running, the files are handed to the running instance and this process exits.
Encrypted documents are staged into a private temporary directory that is
removed when the application shuts down.`
	cmd.Example = `# Open a window
ctnotes

# Open two documents in the first window
ctnotes work.ctb private.ctx

# Run without the terminal UI
ctnotes --no-tui notes.ctd`
	cmd.Args = cobra.ArbitraryArgs

	var opts runOptions
	cmd.Flags().BoolVar(&opts.noTUI, "no-tui", false, "Do not start the terminal UI; log events until interrupted")
	cmd.Flags().BoolVar(&opts.newInstance, "new-instance", false, "Never forward to a running instance")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runNotes(cmd, args, opts)
	}

	cli.SetVersionTemplate(cmd, version.GetInfo())
	cmd.AddCommand(cli.NewVersionCommand())
	cmd.AddCommand(NewConfigCmd())
	cmd.AddCommand(NewPathsCmd())
	cmd.AddCommand(NewStagingCmd())

	cli.ApplyStyledHelpRecursive(cmd)
	return cmd
}
