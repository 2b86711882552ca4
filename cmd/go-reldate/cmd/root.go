package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-reldate/internal/config"
)

var (
	debugMode bool
	logToFile bool
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   config.CmdUseRoot,
	Short: config.CmdShortRoot,
	Long: `go-reldate evaluates relative-date expressions and answers business-day
questions against holiday calendars.

Expressions chain operations made of an action, an optional count and a unit:
  ^M         start of the month
  +3D        three weekdays later
  @11M@4thu  fourth Thursday of November
  ?sat{-d}   back to Friday when on a Saturday

Examples:
  go-reldate eval "^M>4mon" --anchor 2020-05-13
  go-reldate bizdays --preset us --calendar us --from 2020-05-01 --to 2020-05-31 --first 1
  go-reldate holidays --preset us --calendar us --from 2020-01-01 --to 2020-12-31 --ics
  go-reldate serve --rules observances.yaml --port 18080`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logCloser = setupLogging(cmd.ErrOrStderr(), debugMode, logToFile)
	},
}

// Execute runs the command line and returns the process exit code.
// The context passed to commands is cancelled on SIGINT or SIGTERM.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
	}

	if logCloser != nil {
		_ = logCloser.Close() // Best effort close
	}

	if err != nil {
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, config.FlagDebug, false, config.FlagDescDebug)
	rootCmd.PersistentFlags().BoolVar(&logToFile, config.FlagLogFile, false, config.FlagDescLogFile)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger. Logs go to w, which keeps
// stdout free for command output, and optionally to a file in the user's
// cache directory.
func setupLogging(w io.Writer, debugMode, toFile bool) io.Closer {
	writers := []io.Writer{w}
	var logFile *os.File

	if toFile {
		if logPath, err := getLogFilePath(); err == nil {
			// O_TRUNC resets logs on restart to prevent indefinite growth.
			f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
			if err == nil {
				writers = append(writers, f)
				logFile = f
			} else {
				fmt.Fprintf(w, config.MsgLogWarning, config.ErrLogFile, logPath, err)
			}
		} else {
			fmt.Fprintf(w, config.MsgLogWarning, config.ErrLogFile, config.LogFileName, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
