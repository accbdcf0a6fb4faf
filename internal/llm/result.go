package llm

import (
	"github.com/studyscope/pdf-summarizer/internal/schedule"
)

// Shape identifies which structured result a model reply is expected to carry.
type Shape string

const (
	ShapeSummary   Shape = "summary"
	ShapeStructure Shape = "structure"
	ShapeKeywords  Shape = "keywords"
	ShapeSchedule  Shape = "schedule"
)

// Delimiters returns the JSON delimiter pair a reply of this shape embeds.
// Keyword sets are a bare JSON array; everything else is an object.
func (s Shape) Delimiters() (open, close byte) {
	if s == ShapeKeywords {
		return '[', ']'
	}
	return '{', '}'
}

// Keyword is one scored entry of a keyword set. Score is clamped to [0,100].
type Keyword struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// Structure is the model's view of the document layout.
type Structure struct {
	Sections           []string `json:"sections"`
	LearningObjectives []string `json:"learning_objectives"`
	Competencies       []string `json:"competencies"`
	Resources          []string `json:"resources"`
}

// ResultKind tags the variant carried by a Result.
type ResultKind string

const (
	KindSummary   ResultKind = "SUMMARY"
	KindStructure ResultKind = "STRUCTURE"
	KindKeywords  ResultKind = "KEYWORDS"
	KindSchedule  ResultKind = "SCHEDULE"
	KindError     ResultKind = "ERROR"
)

// Result is the tagged union every consumer switches on. Exactly the field
// matching Kind is populated. Fallback marks a schema-valid default that was
// substituted because extraction or validation failed; consumers may still
// render it, but can tell it apart from real model output.
type Result struct {
	Kind     ResultKind    `json:"kind"`
	Fallback bool          `json:"fallback"`
	Summary  string        `json:"summary,omitempty"`
	Struct   *Structure    `json:"structure,omitempty"`
	Keywords []Keyword     `json:"keywords,omitempty"`
	Schedule *schedule.Raw `json:"schedule,omitempty"`
	Message  string        `json:"message,omitempty"`
}

// FallbackFor returns the named, schema-valid default for a shape. Every
// consumer of a failed extraction receives one of these; the pipeline never
// propagates extraction or validation errors past the validator.
func FallbackFor(shape Shape) Result {
	switch shape {
	case ShapeSummary:
		return Result{Kind: KindSummary, Fallback: true, Summary: "No summary available"}
	case ShapeStructure:
		return Result{Kind: KindStructure, Fallback: true, Struct: &Structure{
			Sections:           []string{},
			LearningObjectives: []string{},
			Competencies:       []string{},
			Resources:          []string{},
		}}
	case ShapeKeywords:
		return Result{Kind: KindKeywords, Fallback: true, Keywords: []Keyword{
			{Word: "Course Objectives", Score: 95},
			{Word: "Assessments", Score: 90},
			{Word: "Competencies", Score: 85},
			{Word: "Resources", Score: 80},
			{Word: "Prerequisites", Score: 75},
		}}
	case ShapeSchedule:
		return Result{Kind: KindSchedule, Fallback: true, Schedule: &schedule.Raw{
			DateEntries: map[string]schedule.DateEntry{
				"2024-10-29": {Type: "milestone", Description: "Course Start"},
			},
		}}
	default:
		return Result{Kind: KindError, Fallback: true, Message: "unknown result shape"}
	}
}
