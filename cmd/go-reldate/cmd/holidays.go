package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-reldate/internal/calendar"
	"github.com/tartampluch/go-reldate/internal/config"
)

var (
	holidaysFlags calendarFlags
	holidaysICS   bool
)

var holidaysCmd = &cobra.Command{
	Use:   config.CmdUseHolidays,
	Short: config.CmdShortHolidays,
	Args:  cobra.NoArgs,
	RunE:  runHolidays,
}

func init() {
	holidaysFlags.register(holidaysCmd)
	holidaysCmd.Flags().BoolVar(&holidaysICS, config.FlagICS, false, config.FlagDescICS)
	rootCmd.AddCommand(holidaysCmd)
}

// runHolidays prints the holiday dates of the selected calendar falling on
// working days of its week, or the holidays themselves as iCalendar events.
func runHolidays(cmd *cobra.Command, args []string) error {
	cal, r, err := holidaysFlags.resolve(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if holidaysICS {
		return calendar.WriteICS(out, cal, r, time.Now())
	}

	for d := range calendar.HolidayDates(cal, r) {
		printDays(out, d)
	}
	return nil
}
