package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/grovetools/ctnotes/cli"
	"github.com/grovetools/ctnotes/logging"
	"github.com/grovetools/ctnotes/pkg/staging"
	"github.com/spf13/cobra"
)

// NewStagingCmd returns the staging maintenance commands.
func NewStagingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staging",
		Short: "Maintain hidden staging directories",
	}
	cmd.AddCommand(newStagingSweepCmd())
	return cmd
}

func newStagingSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove staging directories left behind by crashed instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			root := cfg.Staging.TempRoot
			if root == "" {
				root = os.TempDir()
			}

			result, err := staging.Sweep(root, cfg.Staging.Prefix)
			if err != nil {
				return err
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			pretty.Path("root", root)
			for _, path := range result.Removed {
				pretty.Success("removed " + path)
			}
			failed := make([]string, 0, len(result.Failed))
			for path := range result.Failed {
				failed = append(failed, path)
			}
			sort.Strings(failed)
			for _, path := range failed {
				pretty.ErrorPretty("cannot remove "+path, result.Failed[path])
			}
			pretty.Field("removed", len(result.Removed))
			pretty.Field("skipped", len(result.Skipped))
			if len(failed) > 0 {
				return fmt.Errorf("%d staging directories could not be removed", len(failed))
			}
			return nil
		},
	}
}
