package segment

import (
	"strings"
	"testing"
)

func TestSegment_BasicHeaders(t *testing.T) {
	text := "COURSE OVERVIEW\n" +
		"This course covers Go.\n" +
		"We meet twice a week.\n" +
		"# Grading\n" +
		"Assignments 40%\n" +
		"Exams 60%\n"

	got := Segment(text)
	if len(got) != 2 {
		t.Fatalf("Segment() returned %d sections, want 2", len(got))
	}
	if got[0].Title != "COURSE OVERVIEW" {
		t.Errorf("sections[0].Title = %q, want %q", got[0].Title, "COURSE OVERVIEW")
	}
	if got[0].Content != "This course covers Go. We meet twice a week." {
		t.Errorf("sections[0].Content = %q", got[0].Content)
	}
	if got[1].Title != "# Grading" {
		t.Errorf("sections[1].Title = %q, want %q", got[1].Title, "# Grading")
	}
	if got[1].Content != "Assignments 40% Exams 60% " {
		t.Errorf("sections[1].Content = %q", got[1].Content)
	}
}

func TestSegment_KindFromTitleKeyword(t *testing.T) {
	tests := []struct {
		title string
		want  Kind
	}{
		{"IMPORTANT DEADLINES", Important},
		{"# Note on attendance", Important},
		{"Warning: plagiarism policy", Important},
		{"# Weekly Schedule", Regular},
		{"RESOURCES", Regular},
	}
	for _, tt := range tests {
		got := Segment(tt.title + "\nbody")
		if len(got) != 1 {
			t.Fatalf("Segment(%q) returned %d sections, want 1", tt.title, len(got))
		}
		if got[0].Kind != tt.want {
			t.Errorf("Segment(%q) kind = %q, want %q", tt.title, got[0].Kind, tt.want)
		}
	}
}

func TestSegment_LeadingProseDiscarded(t *testing.T) {
	text := "some preamble before any header\nmore preamble\nSYLLABUS\ncontent"
	got := Segment(text)
	if len(got) != 1 {
		t.Fatalf("Segment() returned %d sections, want 1", len(got))
	}
	if got[0].Title != "SYLLABUS" || got[0].Content != "content" {
		t.Errorf("got %+v", got[0])
	}
}

func TestSegment_NoHeadersYieldsEmpty(t *testing.T) {
	got := Segment("just some lowercase prose\nand another line\n")
	if len(got) != 0 {
		t.Fatalf("Segment() returned %d sections, want 0", len(got))
	}
}

func TestSegment_EmptyLinesPreservedNotHeaders(t *testing.T) {
	got := Segment("TITLE\nfirst\n\nsecond")
	if len(got) != 1 {
		t.Fatalf("Segment() returned %d sections, want 1", len(got))
	}
	// the blank line survives as an empty string inside the join
	if got[0].Content != "first  second" {
		t.Errorf("Content = %q, want %q", got[0].Content, "first  second")
	}
}

// Every non-header input line must appear in the concatenated content exactly
// once, in order.
func TestSegment_ContentPreservesLines(t *testing.T) {
	lines := []string{"INTRO", "alpha", "beta", "DETAILS", "gamma", "delta"}
	got := Segment(strings.Join(lines, "\n"))

	var concat []string
	for _, s := range got {
		concat = append(concat, s.Content)
	}
	joined := strings.Join(concat, " ")
	for _, want := range []string{"alpha", "beta", "gamma", "delta"} {
		if !strings.Contains(joined, want) {
			t.Errorf("concatenated content %q missing line %q", joined, want)
		}
	}
	if strings.Index(joined, "alpha") > strings.Index(joined, "beta") ||
		strings.Index(joined, "beta") > strings.Index(joined, "gamma") {
		t.Errorf("content lines out of order: %q", joined)
	}
}

// Re-segmenting the segmenter's own title/content output reproduces the same
// titles.
func TestSegment_IdempotentOnTitles(t *testing.T) {
	text := "OVERVIEW\nplain body text\n# Schedule\nweek one\nweek two"
	first := Segment(text)

	var b strings.Builder
	for _, s := range first {
		b.WriteString(s.Title)
		b.WriteString("\n")
		b.WriteString(s.Content)
		b.WriteString("\n")
	}
	second := Segment(b.String())

	if len(second) != len(first) {
		t.Fatalf("re-segment returned %d sections, want %d", len(second), len(first))
	}
	for i := range first {
		if second[i].Title != first[i].Title {
			t.Errorf("title[%d] = %q, want %q", i, second[i].Title, first[i].Title)
		}
	}
}
