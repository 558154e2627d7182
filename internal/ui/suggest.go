package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dnanh/tripline/internal/activity"
	"github.com/dnanh/tripline/internal/dateutil"
	"github.com/dnanh/tripline/internal/llm"
	"github.com/dnanh/tripline/internal/suggest"
)

func (a *App) suggestCmd() *cobra.Command {
	var (
		dateFlag    string
		destination string
		modelFlag   string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "suggest [request]",
		Short: "Draft a day plan from natural language",
		Long: `Use an LLM to draft a day's activities from a natural language
request. Proposed activities avoid the ones already on the day.

Examples:
  tripline suggest "A relaxed food day in the Old Quarter"
  tripline suggest "Temples in the morning, shopping after lunch" --date=tomorrow
  tripline suggest "One day in Kyoto" --destination="Kyoto" --dry-run

Interactive mode:
  After the plan is shown, you can:
  - [a]ccept: Add the activities to the day
  - [c]ancel: Exit without saving`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			input := strings.Join(args, " ")

			date, err := dateutil.ParseRelativeDate(dateFlag, time.Now())
			if err != nil {
				return fmt.Errorf("parsing date %q: %w", dateFlag, err)
			}

			// Use config default for model if not overridden
			model := modelFlag
			if model == "" {
				model = a.config.LLM.Model
			}

			client, err := llm.NewClient(a.config.LLM.Provider, model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}
			suggester := suggest.NewSuggester(client)

			ctx := context.Background()
			existing, err := a.repo.ListActivitiesByDay(ctx, date)
			if err != nil {
				return fmt.Errorf("loading existing activities: %w", err)
			}

			fmt.Println("Drafting a day plan...")
			resp, err := suggester.Suggest(ctx, suggest.Request{
				Input:       input,
				Date:        date,
				Destination: destination,
				StartHour:   a.config.Timeline.StartHour,
				Existing:    existingFor(existing),
			})
			if err != nil {
				return fmt.Errorf("suggesting: %w", err)
			}

			acts, err := resp.ToActivities()
			if err != nil {
				return fmt.Errorf("validating suggestions: %w", err)
			}
			if len(acts) == 0 {
				fmt.Println("No activities proposed.")
				return nil
			}

			displaySuggestions(date, acts, resp)

			if dryRun {
				fmt.Println("\n(Dry run - activities not saved)")
				return nil
			}

			fmt.Print("\n[a]ccept / [c]ancel: ")
			reader := bufio.NewReader(os.Stdin)
			choice, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			switch strings.TrimSpace(strings.ToLower(choice)) {
			case "a", "accept":
				for _, act := range acts {
					if err := a.repo.CreateActivity(ctx, date, act); err != nil {
						return fmt.Errorf("saving %q: %w", act.Title, err)
					}
				}
				fmt.Printf("\n%d activities added to %s\n", len(acts), dateutil.FormatDate(date))
				return nil
			default:
				fmt.Println("Cancelled.")
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Trip day (YYYY-MM-DD or relative, defaults to today)")
	cmd.Flags().StringVar(&destination, "destination", "", "Destination city (inferred from the request if omitted)")
	cmd.Flags().StringVar(&modelFlag, "model", "", "LLM model to use (from config if not set)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the plan without saving")

	return cmd
}

func existingFor(acts []*activity.Activity) []suggest.ExistingActivity {
	existing := make([]suggest.ExistingActivity, 0, len(acts))
	for _, act := range acts {
		existing = append(existing, suggest.ExistingActivity{
			Start:    act.StartClock(),
			End:      act.EndClock(),
			Title:    act.Title,
			Location: act.Location,
		})
	}
	return existing
}

// displaySuggestions shows the proposed plan grouped by place.
func displaySuggestions(date time.Time, acts []*activity.Activity, resp *suggest.Response) {
	fmt.Printf("\n%s\n", formatHeader(date.Format("Monday, 2 January 2006")))
	fmt.Println(strings.Repeat("-", 60))

	for _, group := range groupByPlace(acts) {
		fmt.Printf("%s\n", formatHeader(group.place))
		for _, act := range group.acts {
			fmt.Printf("  %s-%s %s %s\n",
				act.StartClock(), act.EndClock(),
				formatCategory(act.Category), act.Title)
			if act.Description != "" {
				fmt.Printf("          %s\n", formatMuted(act.Description))
			}
		}
	}
	fmt.Println(strings.Repeat("-", 60))

	if len(resp.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range resp.Warnings {
			fmt.Printf("  ! %s\n", w)
		}
	}
	if len(resp.Tips) > 0 {
		fmt.Println("\nTips:")
		for _, tip := range resp.Tips {
			fmt.Printf("  * %s\n", tip)
		}
	}
}
