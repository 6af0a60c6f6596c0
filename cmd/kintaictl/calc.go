package main

import (
	"fmt"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
	"github.com/spf13/cobra"
)

func newCalcCmd() *cobra.Command {
	var (
		shift             shiftFlags
		date, in, outTime string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the minute counts of one attendance day",
		Example: "  kintaictl calc --date 2026-10-01 --in 09:10 --out 18:45\n" +
			"  kintaictl calc --date 2026-10-01 --in 21:30 --out 06:00",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, loc, err := shift.resolve()
			if err != nil {
				return err
			}
			day, err := timeutil.ParseDate(date, loc)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
			inTod, err := timeutil.ParseTimeOfDay(in)
			if err != nil {
				return fmt.Errorf("invalid --in: %w", err)
			}
			outTod, err := timeutil.ParseTimeOfDay(outTime)
			if err != nil {
				return fmt.Errorf("invalid --out: %w", err)
			}

			clockIn := timeutil.At(day, inTod)
			clockOut := timeutil.At(day, outTod)
			if !clockOut.After(clockIn) {
				clockOut = clockOut.AddDate(0, 0, 1)
			}

			res := attendance.Calculate(day, &clockIn, &clockOut, s)
			printf(cmd, "date:         %s\n", day.Format(timeutil.DateLayout))
			printf(cmd, "clock_in:     %s\n", clockIn.Format("2006-01-02 15:04"))
			printf(cmd, "clock_out:    %s\n", clockOut.Format("2006-01-02 15:04"))
			printf(cmd, "status:       %s\n", res.Status)
			printf(cmd, "working:      %d (%s)\n", res.WorkingMinutes, timeutil.FormatMinutes(res.WorkingMinutes))
			printf(cmd, "late:         %d\n", res.LateMinutes)
			printf(cmd, "early_leave:  %d\n", res.EarlyLeaveMinutes)
			printf(cmd, "overtime:     %d\n", res.OvertimeMinutes)
			printf(cmd, "night_shift:  %d\n", res.NightShiftMinutes)
			return nil
		},
	}

	shift.register(cmd)
	cmd.Flags().StringVar(&date, "date", "", "Attendance date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in, "in", "", "Clock-in time (HH:MM)")
	cmd.Flags().StringVar(&outTime, "out", "", "Clock-out time (HH:MM), earlier than --in means the next day")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
