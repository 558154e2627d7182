// Package suggest turns natural language trip requests into day plans
// using an LLM.
package suggest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dnanh/tripline/internal/activity"
	"github.com/dnanh/tripline/internal/llm"
)

const systemPrompt = `You are a travel planning assistant that builds one-day itineraries.

Context:
- Trip day: %s (%s)
- Day window: activities run between %02d:00 and midnight
- Destination: %s

%s

User request: "%s"

Rules:
1. Return JSON only (no markdown, no explanation).
2. Use 24-hour time format (HH:MM) for start and end. "00:00" as an end means midnight.
3. Round times to 15-minute increments; every activity lasts at least 15 minutes.
4. Activities must not overlap with each other or with the existing activities listed above.
5. location is "Place, City" so the plan can be grouped by place.
6. category must be one of: breakfast, lunch, dinner, coffee, sightseeing, shopping, rest, transit, other.
7. Leave travel time between activities in different places.
8. Add a warning if the day looks too packed.

JSON schema:
{
  "activities": [
    {
      "title": "string",
      "description": "string",
      "location": "Place, City",
      "category": "string",
      "start": "HH:MM",
      "end": "HH:MM"
    }
  ],
  "warnings": ["string"],
  "tips": ["string"]
}`

// Request contains the input for a day-plan suggestion.
type Request struct {
	Input       string
	Date        time.Time
	Destination string
	StartHour   int // earliest hour the plan may use
	Existing    []ExistingActivity
}

// ExistingActivity describes an activity already on the day for overlap
// avoidance.
type ExistingActivity struct {
	Start    string // HH:MM
	End      string // HH:MM
	Title    string
	Location string
}

// Response contains the parsed LLM response.
type Response struct {
	Activities []SuggestedActivity `json:"activities"`
	Warnings   []string            `json:"warnings"`
	Tips       []string            `json:"tips"`
}

// SuggestedActivity represents one activity proposed by the LLM.
type SuggestedActivity struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// Suggester uses an LLM to plan a trip day from natural language input.
type Suggester struct {
	client llm.Client
}

// NewSuggester creates a new Suggester with the given LLM client.
func NewSuggester(client llm.Client) *Suggester {
	return &Suggester{client: client}
}

// Suggest converts natural language input into a proposed day plan.
func (s *Suggester) Suggest(ctx context.Context, req Request) (*Response, error) {
	messages := s.buildMessages(req)

	var resp Response
	if err := s.client.ChatJSON(ctx, messages, &resp); err != nil {
		return nil, fmt.Errorf("getting day plan from LLM: %w", err)
	}
	return &resp, nil
}

func (s *Suggester) buildMessages(req Request) []llm.Message {
	destination := req.Destination
	if destination == "" {
		destination = "not specified, infer from the request"
	}
	startHour := req.StartHour
	if startHour <= 0 {
		startHour = 6
	}

	prompt := fmt.Sprintf(systemPrompt,
		req.Date.Format("2006-01-02"),
		req.Date.Format("Monday"),
		startHour,
		destination,
		formatExisting(req.Existing),
		req.Input,
	)

	return []llm.Message{
		{Role: "system", Content: prompt},
	}
}

func formatExisting(acts []ExistingActivity) string {
	if len(acts) == 0 {
		return "Existing activities on this day: None"
	}

	var sb strings.Builder
	sb.WriteString("Existing activities on this day (avoid overlaps):\n")
	for _, a := range acts {
		sb.WriteString(fmt.Sprintf("- %s-%s: %s @ %s\n", a.Start, a.End, a.Title, a.Location))
	}
	return sb.String()
}

// ToActivities converts the suggested plan into validated domain
// activities. Activities with an unusable time range are rejected with
// the validation error rather than silently dropped.
func (r *Response) ToActivities() ([]*activity.Activity, error) {
	acts := make([]*activity.Activity, 0, len(r.Activities))

	for _, sa := range r.Activities {
		category := sa.Category
		if category == "" {
			category = string(activity.CategoryFromTitle(sa.Title))
		}

		a, err := activity.New(sa.Title, sa.Description, sa.Location, category, sa.Start, sa.End)
		if err != nil {
			return nil, fmt.Errorf("suggested activity %q: %w", sa.Title, err)
		}
		acts = append(acts, a)
	}

	return acts, nil
}
