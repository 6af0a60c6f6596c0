package main

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/config"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/schedule"
	"github.com/spf13/cobra"
)

// shiftFlags mirrors the business settings the server reads from the environment.
type shiftFlags struct {
	timezone        string
	shiftStart      string
	shiftEnd        string
	breakStart      string
	breakEnd        string
	nightStart      string
	nightEnd        string
	standardMinutes int
}

func (f *shiftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.timezone, "timezone", "Asia/Tokyo", "Business timezone")
	cmd.Flags().StringVar(&f.shiftStart, "shift-start", "09:00", "Standard shift start (HH:MM)")
	cmd.Flags().StringVar(&f.shiftEnd, "shift-end", "18:00", "Standard shift end (HH:MM)")
	cmd.Flags().StringVar(&f.breakStart, "break-start", "12:00", "Break start (HH:MM)")
	cmd.Flags().StringVar(&f.breakEnd, "break-end", "13:00", "Break end (HH:MM)")
	cmd.Flags().StringVar(&f.nightStart, "night-start", "22:00", "Night window start (HH:MM)")
	cmd.Flags().StringVar(&f.nightEnd, "night-end", "05:00", "Night window end (HH:MM)")
	cmd.Flags().IntVar(&f.standardMinutes, "standard-minutes", 480, "Standard working minutes per day")
}

func (f *shiftFlags) resolve() (schedule.ShiftSchedule, *time.Location, error) {
	cfg := &config.Config{Business: config.BusinessConfig{
		Timezone:             f.timezone,
		ShiftStart:           f.shiftStart,
		ShiftEnd:             f.shiftEnd,
		BreakStart:           f.breakStart,
		BreakEnd:             f.breakEnd,
		NightStart:           f.nightStart,
		NightEnd:             f.nightEnd,
		StandardDailyMinutes: f.standardMinutes,
	}}
	loc, err := cfg.Location()
	if err != nil {
		return schedule.ShiftSchedule{}, nil, err
	}
	s, err := cfg.Schedule()
	if err != nil {
		return schedule.ShiftSchedule{}, nil, err
	}
	return s, loc, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kintaictl",
		Short:         "Operator tools for the kintai attendance backend",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newCalcCmd(), newBusinessDaysCmd(), newHashPasswordCmd())
	return cmd
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
