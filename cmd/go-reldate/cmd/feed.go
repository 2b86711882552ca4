package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-reldate/internal/config"
	"github.com/tartampluch/go-reldate/internal/engine"
)

var feedRules string

var feedCmd = &cobra.Command{
	Use:   config.CmdUseFeed,
	Short: config.CmdShortFeed,
	Args:  cobra.NoArgs,
	RunE:  runFeed,
}

func init() {
	feedCmd.Flags().StringVar(&feedRules, config.FlagRules, "", config.FlagDescRules)
	_ = feedCmd.MarkFlagRequired(config.FlagRules)
	rootCmd.AddCommand(feedCmd)
}

func runFeed(cmd *cobra.Command, args []string) error {
	rs, err := engine.LoadRules(feedRules)
	if err != nil {
		return err
	}

	icsData, _, _, err := newGenerator().RunSync(cmd.Context(), rs)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(icsData)
	return err
}
