package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-reldate/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   config.CmdUseVersion,
	Short: config.CmdShortVersion,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), config.MsgVersionOutput,
			config.AppName,
			config.Version,
			config.Commit,
			config.Date,
			runtime.GOOS,
			runtime.GOARCH,
		)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
