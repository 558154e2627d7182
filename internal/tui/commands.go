package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dnanh/tripline/internal/activity"
	"github.com/dnanh/tripline/internal/dateutil"
	"github.com/dnanh/tripline/internal/suggest"
)

const repoTimeout = 5 * time.Second

// daysLoadedMsg carries the trip's day list.
type daysLoadedMsg struct {
	days []time.Time
	idx  int // index of the requested date within days
	err  error
}

// dayLoadedMsg carries one day's activities from the repository.
type dayLoadedMsg struct {
	idx  int
	date time.Time
	acts []*activity.Activity
	err  error
}

// daySavedMsg reports the outcome of persisting a committed mutation.
type daySavedMsg struct {
	err error
}

// suggestResultMsg carries an LLM day-plan response.
type suggestResultMsg struct {
	resp *suggest.Response
	acts []*activity.Activity
	err  error
}

// statusExpiredMsg clears a transient status message.
type statusExpiredMsg struct {
	at time.Time
}

// loadDays lists the trip's days, making sure the requested date is
// present even when it has no activities yet.
func loadDays(repo activity.Repository, date time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
		defer cancel()

		days, err := repo.ListDays(ctx)
		if err != nil {
			return daysLoadedMsg{err: err}
		}

		date = dateutil.TruncateToDay(date)
		idx := -1
		for i, d := range days {
			if d.Equal(date) {
				idx = i
				break
			}
		}
		if idx == -1 {
			// Insert the requested date in chronological position.
			pos := len(days)
			for i, d := range days {
				if date.Before(d) {
					pos = i
					break
				}
			}
			days = append(days[:pos], append([]time.Time{date}, days[pos:]...)...)
			idx = pos
		}

		return daysLoadedMsg{days: days, idx: idx}
	}
}

// loadDay fetches one day's activities.
func loadDay(repo activity.Repository, idx int, date time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
		defer cancel()

		acts, err := repo.ListActivitiesByDay(ctx, date)
		return dayLoadedMsg{idx: idx, date: date, acts: acts, err: err}
	}
}

// saveDay persists the day's full activity list after a committed
// editor mutation.
func saveDay(repo activity.Repository, date time.Time, acts []*activity.Activity) tea.Cmd {
	// Snapshot before the command runs; the editor keeps mutating the
	// live slice.
	snapshot := activity.CloneActivities(acts)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
		defer cancel()

		err := repo.ReplaceDay(ctx, date, snapshot)
		return daySavedMsg{err: err}
	}
}

// runSuggest asks the LLM for a day plan.
func runSuggest(s *suggest.Suggester, req suggest.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		resp, err := s.Suggest(ctx, req)
		if err != nil {
			return suggestResultMsg{err: err}
		}
		acts, err := resp.ToActivities()
		return suggestResultMsg{resp: resp, acts: acts, err: err}
	}
}

// expireStatus schedules the status message expiry tick.
func expireStatus(at time.Time) tea.Cmd {
	return tea.Tick(time.Until(at), func(time.Time) tea.Msg {
		return statusExpiredMsg{at: at}
	})
}
