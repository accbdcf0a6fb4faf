// Package schedule canonicalizes the two schedule forms a model may return
// (week-based milestones/weekly_plan, or a flat ISO-date map) into a single
// ordered event list.
package schedule

import (
	"sort"

	"github.com/studyscope/pdf-summarizer/constants"
)

// Milestone is one entry of the week-based form.
type Milestone struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Week        int    `json:"week"`
}

// WeekTopic is one entry of the weekly plan.
type WeekTopic struct {
	Week       int      `json:"week"`
	Topic      string   `json:"topic"`
	Activities []string `json:"activities,omitempty"`
}

// DateEntry is the value of the flat ISO-date map form.
type DateEntry struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Raw is a validated but not yet normalized schedule. Exactly one of the two
// forms is populated.
type Raw struct {
	Milestones  []Milestone          `json:"milestones,omitempty"`
	WeeklyPlan  []WeekTopic          `json:"weekly_plan,omitempty"`
	DateEntries map[string]DateEntry `json:"-"`
}

// Event is one canonical schedule entry. Either Date (ISO-8601) or Week is
// set, never both.
type Event struct {
	Date        string              `json:"date,omitempty"`
	Week        int                 `json:"week,omitempty"`
	Kind        constants.EventKind `json:"kind"`
	Description string              `json:"description"`
}

// Dated reports whether the event carries an absolute date.
func (e Event) Dated() bool { return e.Date != "" }

// Normalize flattens a raw schedule into events ordered for display: dated
// events first (ISO dates compare lexicographically), then week-numbered
// events by week. Week events have no known absolute date, so they always
// sort after every dated event. Unknown kind strings fold to Milestone.
func Normalize(raw Raw) []Event {
	events := make([]Event, 0, len(raw.Milestones)+len(raw.WeeklyPlan)+len(raw.DateEntries))

	for _, m := range raw.Milestones {
		kind, _ := constants.CanonicalizeEventKind(m.Type)
		events = append(events, Event{
			Week:        m.Week,
			Kind:        kind,
			Description: m.Description,
		})
	}
	for _, w := range raw.WeeklyPlan {
		if w.Topic == "" {
			continue
		}
		events = append(events, Event{
			Week:        w.Week,
			Kind:        constants.EventMilestone,
			Description: w.Topic,
		})
	}
	for date, entry := range raw.DateEntries {
		kind, _ := constants.CanonicalizeEventKind(entry.Type)
		events = append(events, Event{
			Date:        date,
			Kind:        kind,
			Description: entry.Description,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		switch {
		case a.Dated() && b.Dated():
			return a.Date < b.Date
		case a.Dated():
			return true
		case b.Dated():
			return false
		default:
			return a.Week < b.Week
		}
	})
	return events
}
