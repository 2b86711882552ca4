package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-reldate/internal/config"
	"github.com/tartampluch/go-reldate/internal/reldate"
)

var evalAnchor string

var evalCmd = &cobra.Command{
	Use:   config.CmdUseEval,
	Short: config.CmdShortEval,
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().StringVar(&evalAnchor, config.FlagAnchor, "", config.FlagDescAnchor)
	rootCmd.AddCommand(evalCmd)
}

// runEval prints the evaluated date and the description of the expression.
func runEval(cmd *cobra.Command, args []string) error {
	anchor, err := reldate.ParseAnchor(evalAnchor, time.Now())
	if err != nil {
		return err
	}

	rd, err := reldate.Parse(args[0])
	if err != nil {
		return err
	}

	result, err := rd.Apply(anchor)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), config.FormatEvalResult,
		result.Format(config.DateFormatRFC3339Nano),
		rd.Description(),
	)
	return nil
}
