package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dnanh/tripline/internal/activity"
	"github.com/dnanh/tripline/internal/dateutil"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [plan_file]",
		Short: "Import day plans from a JSON export",
		Long: `Import trip days from a JSON export into the database.

Each day in the file replaces the stored plan for that date. Records
without an end time get one filled in: an END_TIME:HH:MM; marker
embedded in the description wins, then the next activity's start,
then a default two hours for the last activity of the day.

Example:
  tripline import trip.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			days, count, err := importDays(context.Background(), a.repo, sourcePath)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d activities across %d days from %s\n", count, days, sourcePath)
			return nil
		},
	}

	return cmd
}

// importedDay is one day's worth of records in the export format.
type importedDay struct {
	Date       string           `json:"date"`
	Activities []importedRecord `json:"activities"`
}

type importedRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// importDays reads a JSON export and replaces each contained day in
// the repository. Returns the number of days and activities written.
func importDays(ctx context.Context, repo activity.Repository, sourcePath string) (int, int, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return 0, 0, fmt.Errorf("reading plan file: %w", err)
	}

	var days []importedDay
	if err := json.Unmarshal(data, &days); err != nil {
		return 0, 0, fmt.Errorf("parsing plan file: %w", err)
	}

	imported := 0
	for _, day := range days {
		date, err := time.ParseInLocation("2006-01-02", day.Date, time.Local)
		if err != nil {
			return 0, imported, fmt.Errorf("day %q: %w", day.Date, dateutil.ErrInvalidDateFormat)
		}

		acts, err := buildImportedDay(day)
		if err != nil {
			return 0, imported, fmt.Errorf("day %s: %w", day.Date, err)
		}

		if err := repo.ReplaceDay(ctx, date, acts); err != nil {
			return 0, imported, fmt.Errorf("writing day %s: %w", day.Date, err)
		}
		imported += len(acts)
	}

	return len(days), imported, nil
}

// buildImportedDay converts one day's records into domain activities,
// then fills in any missing end times.
func buildImportedDay(day importedDay) ([]*activity.Activity, error) {
	acts := make([]*activity.Activity, 0, len(day.Activities))
	for _, rec := range day.Activities {
		if strings.TrimSpace(rec.Title) == "" {
			return nil, activity.ErrMissingTitle
		}

		start, err := activity.ParseClock(rec.Start)
		if err != nil {
			return nil, fmt.Errorf("activity %q: %w", rec.Title, err)
		}

		// 0 marks a missing end for NormalizeImported; an explicit
		// "00:00" end means midnight.
		end := 0
		if rec.End != "" {
			end, err = activity.ParseClock(rec.End)
			if err != nil {
				return nil, fmt.Errorf("activity %q: %w", rec.Title, err)
			}
			if end == 0 {
				end = activity.MinutesPerDay
			}
		}

		category := rec.Category
		if category == "" {
			category = string(activity.CategoryFromTitle(rec.Title))
		}

		acts = append(acts, &activity.Activity{
			Title:        rec.Title,
			Description:  rec.Description,
			Location:     rec.Location,
			Category:     activity.ParseCategory(category),
			StartMinutes: start,
			EndMinutes:   end,
			CreatedAt:    time.Now(),
		})
	}

	activity.NormalizeImported(acts)
	return acts, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
