// Package pipeline coordinates one document-processing request: upload
// validation, PDF text extraction, section segmentation, the four gated
// model calls, and result validation/normalization.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studyscope/pdf-summarizer/constants"
	"github.com/studyscope/pdf-summarizer/internal/common"
	"github.com/studyscope/pdf-summarizer/internal/ingest"
	"github.com/studyscope/pdf-summarizer/internal/llm"
	"github.com/studyscope/pdf-summarizer/internal/pdftext"
	"github.com/studyscope/pdf-summarizer/internal/ratelimit"
	"github.com/studyscope/pdf-summarizer/internal/schedule"
	"github.com/studyscope/pdf-summarizer/internal/segment"
)

// Analysis bundles everything one request produces. All values are
// well-formed even when a model reply failed validation; the per-result
// Fallback tags say which parts are defaults.
type Analysis struct {
	Sections  []segment.Section `json:"sections"`
	Summary   llm.Result        `json:"summary"`
	Structure llm.Result        `json:"structure"`
	Keywords  llm.Result        `json:"keywords"`
	Schedule  llm.Result        `json:"schedule"`
	Events    []schedule.Event  `json:"events"`
}

// Processor runs the pipeline. The admission gate fronts every model-call
// path: a denied session gets no pipeline execution at all.
type Processor struct {
	Logger    *slog.Logger
	PDF       pdftext.Extractor
	Completer llm.Completer
	Validator *llm.Validator
	Gate      *ratelimit.Gate
	Limits    common.RateLimitConfig
}

func NewProcessor(logger *slog.Logger, pdf pdftext.Extractor, completer llm.Completer, gate *ratelimit.Gate, limits common.RateLimitConfig) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if limits.MaxRequests <= 0 {
		limits.MaxRequests = ratelimit.DefaultMaxRequests
	}
	if limits.Window <= 0 {
		limits.Window = ratelimit.DefaultWindow
	}
	if gate == nil {
		gate = ratelimit.NewGate(nil, logger)
	}
	return &Processor{
		Logger:    logger,
		PDF:       pdf,
		Completer: completer,
		Validator: llm.NewValidator(logger),
		Gate:      gate,
		Limits:    limits,
	}
}

// ProcessPDF validates the upload, extracts its text and runs ProcessText.
func (p *Processor) ProcessPDF(ctx context.Context, sessionID, modelID, filename, contentType string, data []byte) (*Analysis, error) {
	if err := ingest.ValidateUpload(filename, contentType, data); err != nil {
		return nil, err
	}
	text, err := p.PDF.ExtractText(data)
	if err != nil {
		return nil, err
	}
	return p.ProcessText(ctx, sessionID, modelID, text)
}

// ProcessText runs the full analysis over already-extracted document text.
// Extraction and validation failures resolve to tagged fallbacks inside the
// Analysis; the only errors returned are the admission refusal and an
// upstream call with no usable reply.
func (p *Processor) ProcessText(ctx context.Context, sessionID, modelID, text string) (*Analysis, error) {
	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
		ctx = common.WithRequestID(ctx, rid)
	}
	ctx = common.WithSessionID(ctx, sessionID)
	if modelID == "" {
		modelID = constants.DefaultModel
	}
	start := time.Now()

	if !p.Gate.Admit(sessionID, time.Now(), p.Limits.MaxRequests, p.Limits.Window) {
		return nil, common.ErrRateLimited
	}

	p.Logger.Info("pipeline.process.start",
		"req_id", rid,
		"session_id", sessionID,
		"model", modelID,
		"text_len", len(text),
	)

	analysis := &Analysis{Sections: segment.Segment(text)}
	base := llm.ProfileFor(modelID)

	for _, shape := range []llm.Shape{llm.ShapeSummary, llm.ShapeStructure, llm.ShapeKeywords, llm.ShapeSchedule} {
		reply, err := p.Completer.Complete(ctx, base.Tuned(shape), llm.BuildPrompt(shape, text))
		if err != nil {
			p.Logger.Error("pipeline.process.upstream_failed",
				"req_id", rid, "shape", shape, "error", err,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil, err
		}
		res := p.Validator.ValidateReply(reply, shape)
		if res.Fallback {
			p.Logger.Warn("pipeline.process.fallback_used", "req_id", rid, "shape", shape)
		}
		switch shape {
		case llm.ShapeSummary:
			analysis.Summary = res
		case llm.ShapeStructure:
			analysis.Structure = res
		case llm.ShapeKeywords:
			analysis.Keywords = res
		case llm.ShapeSchedule:
			analysis.Schedule = res
		}
	}

	if analysis.Schedule.Schedule != nil {
		analysis.Events = schedule.Normalize(*analysis.Schedule.Schedule)
	}

	p.Logger.Info("pipeline.process.ok",
		"req_id", rid,
		"session_id", sessionID,
		"sections", len(analysis.Sections),
		"events", len(analysis.Events),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return analysis, nil
}
