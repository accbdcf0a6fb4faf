// Package segment splits raw document text into an ordered sequence of
// titled sections using header heuristics.
package segment

import (
	"strings"
	"unicode"

	"github.com/studyscope/pdf-summarizer/constants"
)

// Kind classifies a section by its title.
type Kind string

const (
	Regular   Kind = "REGULAR"
	Important Kind = "IMPORTANT"
)

// Section is one titled slice of the document, in document order.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Kind    Kind   `json:"kind"`
}

// Segment scans text line by line and groups it under header-like lines.
// A line opens a new section when it is fully upper-case, starts with a
// markdown heading marker, or contains an importance keyword. Prose before
// the first header is discarded; a document with no header-like line yields
// an empty sequence.
func Segment(text string) []Section {
	var (
		sections []Section
		title    string
		buffer   []string
		haveOpen bool
	)

	flush := func() {
		if !haveOpen {
			return
		}
		sections = append(sections, Section{
			Title:   title,
			Content: strings.Join(buffer, " "),
			Kind:    kindForTitle(title),
		})
	}

	for _, line := range strings.Split(text, "\n") {
		if isHeaderLine(line) {
			flush()
			title = strings.TrimSpace(line)
			buffer = buffer[:0]
			haveOpen = true
			continue
		}
		if haveOpen {
			buffer = append(buffer, line)
		}
	}
	flush()

	return sections
}

func kindForTitle(title string) Kind {
	if constants.ContainsImportanceKeyword(title) {
		return Important
	}
	return Regular
}

// isHeaderLine reports whether a line opens a new section. Blank lines never
// do: they are preserved as empty content strings instead.
func isHeaderLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "#") {
		return true
	}
	if isAllUpper(trimmed) {
		return true
	}
	return constants.ContainsImportanceKeyword(trimmed)
}

// isAllUpper reports whether s contains at least one letter and no
// lower-case letters, ignoring whitespace and punctuation.
func isAllUpper(s string) bool {
	sawLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			sawLetter = true
		}
	}
	return sawLetter
}
