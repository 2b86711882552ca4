package cmd

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-reldate/internal/config"
	"github.com/tartampluch/go-reldate/internal/engine"
	"github.com/tartampluch/go-reldate/internal/server"
)

var (
	serveRules    string
	servePort     string
	serveInterval int
)

var serveCmd = &cobra.Command{
	Use:   config.CmdUseServe,
	Short: config.CmdShortServe,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveRules, config.FlagRules, "", config.FlagDescRules)
	serveCmd.Flags().StringVar(&servePort, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	serveCmd.Flags().IntVar(&serveInterval, config.FlagInterval, config.DefaultRefreshMin, config.FlagDescInterval)
	_ = serveCmd.MarkFlagRequired(config.FlagRules)
	rootCmd.AddCommand(serveCmd)
}

// runServe refreshes the observance feed in the background and serves it,
// along with the /eval endpoint, until the command context is cancelled.
func runServe(cmd *cobra.Command, args []string) error {
	logStartupInfo()

	if err := server.ValidatePort(servePort); err != nil {
		return err
	}

	rs, err := engine.LoadRules(serveRules)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	srv := server.NewCalendarServer(servePort)
	interval := time.Duration(serveInterval) * time.Minute

	go newGenerator().Watch(ctx, rs, srv, interval)

	if err := srv.Start(ctx); err != nil {
		return err
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return nil
}
