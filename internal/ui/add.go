package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dnanh/tripline/internal/activity"
	"github.com/dnanh/tripline/internal/dateutil"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date        string
		start       string
		end         string
		location    string
		category    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an activity to a trip day",
		Long: `Add a single activity to a day's plan without opening the editor.

If no category is given, one is inferred from the title. The location
is "Place, City"; the place part becomes the activity's row on the
chart.`,
		Example: `  tripline add "Pho breakfast" --start=07:30 --end=08:30 --location="Old Quarter, Hanoi"
  tripline add "Night market" --date=tomorrow --start=21:00 --end=00:00 --category=shopping`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			title := strings.Join(args, " ")
			if category == "" {
				category = string(activity.CategoryFromTitle(title))
			}

			day, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return fmt.Errorf("parsing date %q: %w", date, err)
			}

			act, err := activity.New(title, description, location, category, start, end)
			if err != nil {
				return err
			}

			if err := a.repo.CreateActivity(context.Background(), day, act); err != nil {
				return fmt.Errorf("saving activity: %w", err)
			}

			fmt.Printf("Added %s %s-%s %s on %s\n",
				formatCategory(act.Category), act.StartClock(), act.EndClock(),
				act.Title, dateutil.FormatDate(day))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Trip day (YYYY-MM-DD or relative, defaults to today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, 00:00 means midnight)")
	cmd.Flags().StringVar(&location, "location", "", "Location as \"Place, City\"")
	cmd.Flags().StringVar(&category, "category", "", "Category (inferred from title if omitted)")
	cmd.Flags().StringVar(&description, "desc", "", "Free-text description")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
