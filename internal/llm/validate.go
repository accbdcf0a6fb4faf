package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/studyscope/pdf-summarizer/internal/common"
	"github.com/studyscope/pdf-summarizer/internal/schedule"
)

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrSchemaValidation, err)
	}
	return nil
}

// Validator maps recovered JSON fragments into typed domain Results. Any
// failure — missing delimiters, a fragment no decoder accepts, a schema
// mismatch — resolves to the shape's fallback, never an error: the renderer
// downstream must always receive a well-formed value.
type Validator struct {
	log *slog.Logger
}

func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{log: logger}
}

// ValidateReply runs the full recovery path on a raw model reply: fragment
// recovery, schema validation, then decode into the tagged Result.
func (v *Validator) ValidateReply(reply string, shape Shape) Result {
	frag, err := Recover(reply, shape)
	if err != nil {
		v.log.Warn("llm.validate.extract_failed", "shape", shape, "error", err)
		return FallbackFor(shape)
	}
	return v.Validate([]byte(frag), shape)
}

// Validate checks a fragment against the shape's schema and decodes it.
func (v *Validator) Validate(fragment []byte, shape Shape) Result {
	schemaMap := schemaFor(shape)
	if schemaMap == nil {
		return Result{Kind: KindError, Fallback: true, Message: "unknown result shape: " + string(shape)}
	}
	if err := ValidateJSONAgainstSchema(schemaMap, fragment); err != nil {
		v.log.Warn("llm.validate.schema_failed", "shape", shape, "error", err)
		return FallbackFor(shape)
	}

	switch shape {
	case ShapeSummary:
		var m struct {
			Summary string `json:"Summary"`
		}
		if err := json.Unmarshal(fragment, &m); err != nil {
			return FallbackFor(shape)
		}
		return Result{Kind: KindSummary, Summary: strings.TrimSpace(m.Summary)}

	case ShapeKeywords:
		var kws []Keyword
		if err := json.Unmarshal(fragment, &kws); err != nil {
			return FallbackFor(shape)
		}
		for i := range kws {
			kws[i].Score = clampScore(kws[i].Score)
		}
		return Result{Kind: KindKeywords, Keywords: kws}

	case ShapeStructure:
		st := Structure{
			Sections:           []string{},
			LearningObjectives: []string{},
			Competencies:       []string{},
			Resources:          []string{},
		}
		if err := json.Unmarshal(fragment, &st); err != nil {
			return FallbackFor(shape)
		}
		ensureStructureDefaults(&st)
		return Result{Kind: KindStructure, Struct: &st}

	case ShapeSchedule:
		raw, ok := decodeSchedule(fragment)
		if !ok {
			return FallbackFor(shape)
		}
		return Result{Kind: KindSchedule, Schedule: raw}

	default:
		return Result{Kind: KindError, Fallback: true, Message: "unknown result shape: " + string(shape)}
	}
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func ensureStructureDefaults(st *Structure) {
	if st.Sections == nil {
		st.Sections = []string{}
	}
	if st.LearningObjectives == nil {
		st.LearningObjectives = []string{}
	}
	if st.Competencies == nil {
		st.Competencies = []string{}
	}
	if st.Resources == nil {
		st.Resources = []string{}
	}
}

// decodeSchedule handles both accepted schedule forms. The schema already
// admitted the fragment, so key presence decides which decode applies.
func decodeSchedule(fragment []byte) (*schedule.Raw, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(fragment, &probe); err != nil {
		return nil, false
	}
	_, hasMilestones := probe["milestones"]
	_, hasWeekly := probe["weekly_plan"]
	if hasMilestones || hasWeekly {
		var raw schedule.Raw
		if err := json.Unmarshal(fragment, &raw); err != nil {
			return nil, false
		}
		return &raw, true
	}

	entries := make(map[string]schedule.DateEntry, len(probe))
	for date, v := range probe {
		var e schedule.DateEntry
		if err := json.Unmarshal(v, &e); err != nil {
			return nil, false
		}
		entries[date] = e
	}
	return &schedule.Raw{DateEntries: entries}, true
}
