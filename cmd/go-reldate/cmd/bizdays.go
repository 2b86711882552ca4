package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-reldate/internal/calendar"
	"github.com/tartampluch/go-reldate/internal/config"
)

var (
	bizDaysFlags calendarFlags
	bizDaysFirst int
	bizDaysLast  int
)

var bizDaysCmd = &cobra.Command{
	Use:   config.CmdUseBizDays,
	Short: config.CmdShortBizDays,
	Args:  cobra.NoArgs,
	RunE:  runBizDays,
}

func init() {
	bizDaysFlags.register(bizDaysCmd)
	bizDaysCmd.Flags().IntVar(&bizDaysFirst, config.FlagFirst, 0, config.FlagDescFirst)
	bizDaysCmd.Flags().IntVar(&bizDaysLast, config.FlagLast, 0, config.FlagDescLast)
	bizDaysCmd.MarkFlagsMutuallyExclusive(config.FlagFirst, config.FlagLast)
	rootCmd.AddCommand(bizDaysCmd)
}

// runBizDays lists the business days of the selected calendar between --from
// and --to inclusive. --first and --last keep one business day per week.
func runBizDays(cmd *cobra.Command, args []string) error {
	cal, r, err := bizDaysFlags.resolve(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch {
	case cmd.Flags().Changed(config.FlagFirst):
		days, err := calendar.FirstBusinessDaysOfWeek(cal, r, bizDaysFirst)
		if err != nil {
			return err
		}
		printDays(out, days...)

	case cmd.Flags().Changed(config.FlagLast):
		days, err := calendar.LastBusinessDaysOfWeek(cal, r, bizDaysLast)
		if err != nil {
			return err
		}
		printDays(out, days...)

	default:
		days, err := calendar.BusinessDaysInRange(cal, inclusive(r), nil)
		if err != nil {
			return err
		}
		for d := range days {
			printDays(out, d)
		}
	}
	return nil
}

// inclusive extends a bounded range by one day so that iterations stopping
// before the end still cover the last day.
func inclusive(r calendar.DateRange) calendar.DateRange {
	begin, okBegin := r.Begin()
	end, okEnd := r.End()
	if !okBegin || !okEnd {
		return r
	}
	return calendar.NewDateRange(begin, end.AddDate(0, 0, 1))
}

func printDays(w io.Writer, days ...time.Time) {
	for _, d := range days {
		fmt.Fprintf(w, config.FormatDateLine, d.Format(config.DateFormatFullDash), d.Weekday())
	}
}
