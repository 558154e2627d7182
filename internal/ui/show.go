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

func (a *App) showCmd() *cobra.Command {
	var verbose bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "Show a day's plan",
		Long: `Display one day's activities grouped by place, with a summary of
how full the day is.

This is a quick read-only view. Run tripline with no subcommand to
edit the day on the interactive chart.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			day, err := dateutil.ParseRelativeDate(arg, time.Now())
			if err != nil {
				return fmt.Errorf("parsing date %q: %w", arg, err)
			}

			acts, err := a.repo.ListActivitiesByDay(context.Background(), day)
			if err != nil {
				return fmt.Errorf("fetching activities: %w", err)
			}

			if len(acts) == 0 {
				fmt.Printf("Nothing planned for %s.\n", dateutil.FormatDate(day))
				return nil
			}

			fmt.Printf("=== %s ===\n", formatHeader(day.Format("Monday, 2 January 2006")))

			for _, group := range groupByPlace(acts) {
				fmt.Printf("\n%s\n", formatHeader(group.place))
				for _, act := range group.acts {
					fmt.Printf("  %s-%s %s %s\n",
						act.StartClock(), act.EndClock(),
						formatCategory(act.Category), act.Title)
					if verbose && act.Description != "" {
						fmt.Printf("          %s\n", formatMuted(act.Description))
					}
				}
			}

			fmt.Println()
			printDaySummary(acts, a.config.Timeline.StartHour, a.config.Timeline.EndHour)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show activity descriptions")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

type placeGroup struct {
	place string
	acts  []*activity.Activity
}

// groupByPlace groups activities by primary location, rows appearing
// in first-seen order like the chart lays them out.
func groupByPlace(acts []*activity.Activity) []placeGroup {
	var groups []placeGroup
	index := make(map[string]int)

	for _, act := range acts {
		place := act.PrimaryLocation()
		if place == "" {
			place = "Unplanned"
		}
		i, ok := index[place]
		if !ok {
			i = len(groups)
			index[place] = i
			groups = append(groups, placeGroup{place: place})
		}
		groups[i].acts = append(groups[i].acts, act)
	}
	return groups
}

func printDaySummary(acts []*activity.Activity, startHour, endHour int) {
	planned := 0
	perCategory := make(map[activity.Category]int)
	for _, act := range acts {
		planned += act.Duration()
		perCategory[act.Category] += act.Duration()
	}

	busiest := activity.CategoryOther
	busiestMinutes := 0
	for cat, minutes := range perCategory {
		if minutes > busiestMinutes {
			busiest, busiestMinutes = cat, minutes
		}
	}

	window := (endHour - startHour) * 60
	fmt.Printf("%s planned across %d activities, mostly %s (%s)\n",
		formatStats(formatDuration(planned)), len(acts),
		formatCategory(busiest), formatDuration(busiestMinutes))
	if window > 0 {
		fmt.Printf("Day: %s\n", coverageBar(planned, window, 20))
	}
}

// coverageBar renders how much of the day window is filled.
func coverageBar(plannedMinutes, windowMinutes, width int) string {
	if plannedMinutes > windowMinutes {
		plannedMinutes = windowMinutes
	}
	filled := (plannedMinutes * width) / windowMinutes
	pct := (plannedMinutes * 100) / windowMinutes

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s", bar, formatStats(fmt.Sprintf("(%d%% planned)", pct)))
}
