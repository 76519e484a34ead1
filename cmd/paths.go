package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/ctnotes/pkg/paths"
	"github.com/spf13/cobra"
)

// PathsOutput lists the directories and files ctnotes uses.
type PathsOutput struct {
	ConfigDir  string `json:"config_dir"`
	StateDir   string `json:"state_dir"`
	CacheDir   string `json:"cache_dir"`
	RuntimeDir string `json:"runtime_dir"`
	Socket     string `json:"socket"`
	PidFile    string `json:"pid_file"`
	LogDir     string `json:"log_dir"`
}

// NewPathsCmd prints the resolved ctnotes paths as JSON.
func NewPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the paths used by ctnotes",
		Long: `Print the paths used by ctnotes as JSON.

CTNOTES_HOME relocates every directory under a single root; otherwise the
XDG base directory variables are honored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := PathsOutput{
				ConfigDir:  paths.ConfigDir(),
				StateDir:   paths.StateDir(),
				CacheDir:   paths.CacheDir(),
				RuntimeDir: paths.RuntimeDir(),
				Socket:     paths.SocketPath(),
				PidFile:    paths.PidFilePath(),
				LogDir:     paths.LogDir(),
			}
			data, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal paths to JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
