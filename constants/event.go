package constants

import "strings"

// EventKind is the canonical kind for a schedule event.
type EventKind string

// Stable values (these exact strings appear in exported reports and figures).
const (
	EventAssignment EventKind = "Assignment"
	EventProject    EventKind = "Project"
	EventExam       EventKind = "Exam"
	EventMilestone  EventKind = "Milestone"
	EventDeadline   EventKind = "Deadline"
)

var allEventKinds = []EventKind{
	EventAssignment,
	EventProject,
	EventExam,
	EventMilestone,
	EventDeadline,
}

// CanonicalizeEventKind folds a free-form kind string from the model into a
// canonical EventKind. Unknown strings map to Milestone rather than failing.
func CanonicalizeEventKind(input string) (EventKind, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return EventMilestone, false
	}

	// synonyms map
	synonyms := map[string]EventKind{
		"homework":     EventAssignment,
		"hw":           EventAssignment,
		"lab":          EventAssignment,
		"quiz":         EventExam,
		"midterm":      EventExam,
		"final":        EventExam,
		"test":         EventExam,
		"due":          EventDeadline,
		"due date":     EventDeadline,
		"submission":   EventDeadline,
		"presentation": EventProject,
	}
	if k, ok := synonyms[normalized]; ok {
		return k, true
	}

	for _, k := range allEventKinds {
		if normalized == strings.ToLower(string(k)) {
			return k, true
		}
	}
	return EventMilestone, false
}
