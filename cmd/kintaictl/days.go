package main

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
	"github.com/spf13/cobra"
)

func newBusinessDaysCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "business-days",
		Short: "List the business days a monthly submission must cover",
		RunE: func(cmd *cobra.Command, args []string) error {
			ym, err := timeutil.ParseYearMonth(month)
			if err != nil {
				return fmt.Errorf("invalid --month: %w", err)
			}
			days := timeutil.BusinessDays(ym, ym.LastDay(time.UTC))
			for _, d := range days {
				printf(cmd, "%s %s\n", d.Format(timeutil.DateLayout), d.Weekday().String()[:3])
			}
			printf(cmd, "total: %d\n", len(days))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month (YYYY-MM)")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}
