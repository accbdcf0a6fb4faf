// Package viz builds plotly-style figure specifications from the structured
// analysis results. The specs are plain JSON-shaped maps consumed by the
// dashboard's chart renderer; no drawing happens server-side.
package viz

import (
	"fmt"
	"strings"

	"github.com/studyscope/pdf-summarizer/internal/llm"
	"github.com/studyscope/pdf-summarizer/internal/schedule"
	"github.com/studyscope/pdf-summarizer/internal/segment"
)

var palette = []string{
	"#3366CC", "#FF6B6B", "#4ECDC4", "#FF9F40",
	"#FFB6C1", "#98FB98", "#DDA0DD", "#B0C4DE",
}

// StructureFigure is a treemap over the segmented sections, sized by word
// count.
func StructureFigure(sections []segment.Section) map[string]any {
	labels := make([]string, len(sections))
	parents := make([]string, len(sections))
	values := make([]int, len(sections))
	for i, s := range sections {
		labels[i] = s.Title
		parents[i] = ""
		values[i] = len(strings.Fields(s.Content))
	}
	return map[string]any{
		"data": []any{map[string]any{
			"type":     "treemap",
			"labels":   labels,
			"parents":  parents,
			"values":   values,
			"textinfo": "label+value",
		}},
		"layout": map[string]any{
			"title":  "Document Structure Overview",
			"width":  1200,
			"height": 600,
		},
	}
}

// KeywordsFigure is a bubble chart of keyword importance; bubble and text
// size scale with the score.
func KeywordsFigure(keywords []llm.Keyword) map[string]any {
	x := make([]int, len(keywords))
	y := make([]float64, len(keywords))
	text := make([]string, len(keywords))
	sizes := make([]float64, len(keywords))
	colors := make([]string, len(keywords))
	for i, kw := range keywords {
		x[i] = i
		y[i] = kw.Score
		text[i] = kw.Word
		sizes[i] = kw.Score * 0.8
		colors[i] = palette[i%len(palette)]
	}
	return map[string]any{
		"data": []any{map[string]any{
			"type": "scatter",
			"mode": "text+markers",
			"x":    x,
			"y":    y,
			"text": text,
			"marker": map[string]any{
				"size":    sizes,
				"color":   colors,
				"opacity": 0.6,
			},
		}},
		"layout": map[string]any{
			"title":      "Keyword Importance",
			"showlegend": false,
			"width":      1000,
			"height":     600,
		},
	}
}

// TimelineFigure lays schedule events on a single track, dated events
// labeled by date and week events by week number.
func TimelineFigure(events []schedule.Event) map[string]any {
	x := make([]string, len(events))
	y := make([]float64, len(events))
	text := make([]string, len(events))
	for i, e := range events {
		if e.Dated() {
			x[i] = e.Date
		} else {
			x[i] = fmt.Sprintf("Week %d", e.Week)
		}
		y[i] = 1
		text[i] = fmt.Sprintf("%s: %s", e.Kind, e.Description)
	}
	return map[string]any{
		"data": []any{map[string]any{
			"type":         "scatter",
			"mode":         "markers+text",
			"x":            x,
			"y":            y,
			"text":         text,
			"textposition": "top center",
			"marker": map[string]any{
				"symbol": "diamond",
				"size":   15,
				"color":  "red",
			},
		}},
		"layout": map[string]any{
			"title":  "Course Schedule Timeline",
			"height": 400,
			"yaxis":  map[string]any{"visible": false, "range": []float64{0, 2}},
			"xaxis":  map[string]any{"title": "Course Timeline", "tickangle": -45},
		},
	}
}
