package llm

import (
	"strings"
)

// Prompt builders for the four analyses. Each instructs the model toward a
// reply the recovery pipeline can work with; the reply is still treated as
// untrusted and always routed through Recover/Validate.

// maxPromptText caps how much document text is inlined into a prompt.
const maxPromptText = 12000

// BuildPrompt returns the user prompt for a shape over the given document
// text.
func BuildPrompt(shape Shape, text string) string {
	switch shape {
	case ShapeSummary:
		return buildSummaryPrompt(text)
	case ShapeStructure:
		return buildStructurePrompt(text)
	case ShapeKeywords:
		return buildKeywordsPrompt(text)
	case ShapeSchedule:
		return buildSchedulePrompt(text)
	default:
		return text
	}
}

func buildSummaryPrompt(text string) string {
	var b strings.Builder
	b.WriteString("As an enthusiastic teaching assistant, create an engaging and student-friendly summary of this academic text. ")
	b.WriteString("Make it fun and relatable while maintaining accuracy. Include:\n\n")
	b.WriteString("1. TL;DR (a quick, catchy overview)\n")
	b.WriteString("2. Key Highlights (with real-world analogies)\n")
	b.WriteString("3. Pro Tips (practical study advice)\n")
	b.WriteString("4. Fun Facts & Applications\n\n")
	b.WriteString("Return ONLY a JSON object of the form {\"Summary\": \"...\"}.\n\n")
	b.WriteString("Here's the text to analyze: ")
	b.WriteString(truncateText(text))
	return b.String()
}

func buildStructurePrompt(text string) string {
	var b strings.Builder
	b.WriteString("Analyze the structure of this academic document and return ONLY a JSON object with these keys:\n")
	b.WriteString("- \"sections\": array of section title strings in document order\n")
	b.WriteString("- \"learning_objectives\": array of strings\n")
	b.WriteString("- \"competencies\": array of strings\n")
	b.WriteString("- \"resources\": array of strings\n")
	b.WriteString("Use empty arrays for anything the document does not state.\n\n")
	b.WriteString("Text: ")
	b.WriteString(truncateText(text))
	return b.String()
}

func buildKeywordsPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Extract the most important keywords from this academic text and rate their importance. ")
	b.WriteString("Return ONLY a JSON array of objects {\"word\": string, \"score\": number}, ")
	b.WriteString("where score is 0-100 and higher means more central to the document. ")
	b.WriteString("At most 15 keywords.\n\n")
	b.WriteString("Text: ")
	b.WriteString(truncateText(text))
	return b.String()
}

func buildSchedulePrompt(text string) string {
	var b strings.Builder
	b.WriteString("Extract course schedule information and format as a JSON where:\n")
	b.WriteString("- Keys should be ISO dates (YYYY-MM-DD)\n")
	b.WriteString("- Values should be objects with 'type' and 'description' fields\n")
	b.WriteString("Example format:\n")
	b.WriteString("{\n")
	b.WriteString("  \"2024-01-15\": {\"type\": \"assignment\", \"description\": \"Assignment 1 due\"},\n")
	b.WriteString("  \"2024-02-01\": {\"type\": \"project\", \"description\": \"Project Milestone 1\"}\n")
	b.WriteString("}\n")
	b.WriteString("Types can be: assignment, project, exam, milestone, or deadline.\n")
	b.WriteString("If the document only gives week numbers, you may instead return ")
	b.WriteString("{\"milestones\": [{\"type\", \"description\", \"week\"}], \"weekly_plan\": [{\"week\", \"topic\", \"activities\"}]}.\n\n")
	b.WriteString("Text: ")
	b.WriteString(truncateText(text))
	return b.String()
}

func truncateText(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > maxPromptText {
		return text[:maxPromptText] + "\n...(truncated)"
	}
	return text
}
