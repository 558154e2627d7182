package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dnanh/tripline/internal/dateutil"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List planned trip days",
		Long: `List every day that has activities, grouped by date.

With --start (and optionally --end) the listing is restricted to
that date range, inclusive.`,
		Example: `  tripline list
  tripline list --start=2025-03-10
  tripline list --start=2025-03-10 --end=2025-03-14`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			days, err := a.repo.ListDays(ctx)
			if err != nil {
				return fmt.Errorf("listing days: %w", err)
			}

			if startDate != "" || endDate != "" {
				dateRange, err := dateutil.NewDateRange(startDate, endDate)
				if err != nil {
					return err
				}
				days = filterDays(days, dateRange)
			}

			if len(days) == 0 {
				fmt.Println("No trip days planned yet.")
				return nil
			}

			for i, day := range days {
				if i > 0 {
					fmt.Println()
				}
				if err := a.printDay(ctx, day); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")

	return cmd
}

func filterDays(days []time.Time, r *dateutil.DateRange) []time.Time {
	kept := days[:0]
	for _, d := range days {
		if r.DayIndex(d) >= 0 {
			kept = append(kept, d)
		}
	}
	return kept
}

func (a *App) printDay(ctx context.Context, day time.Time) error {
	acts, err := a.repo.ListActivitiesByDay(ctx, day)
	if err != nil {
		return fmt.Errorf("listing activities for %s: %w", dateutil.FormatDate(day), err)
	}

	fmt.Printf("=== %s ===\n", formatHeader(day.Format("Mon 2006-01-02")))
	total := 0
	for _, act := range acts {
		fmt.Printf("  #%-3d %s-%s %s %s%s\n",
			act.ID,
			act.StartClock(), act.EndClock(),
			formatCategory(act.Category),
			act.Title,
			formatMuted(" @ "+act.PrimaryLocation()),
		)
		total += act.Duration()
	}
	fmt.Printf("  %s\n", formatStats(fmt.Sprintf("%d activities, %s planned", len(acts), formatDuration(total))))
	return nil
}

// formatDuration formats minutes as a human-readable duration.
func formatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}
