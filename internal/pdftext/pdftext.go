// Package pdftext is the thin PdfTextExtractor collaborator: a PDF byte
// stream in, raw UTF-8 prose out. Everything downstream treats the output as
// ordinary text; no layout analysis happens here.
package pdftext

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	rpdf "rsc.io/pdf"

	"github.com/studyscope/pdf-summarizer/internal/common"
)

// Extractor is the behavior the pipeline depends on.
type Extractor interface {
	ExtractText(data []byte) (string, error)
}

// Reader extracts page text with rsc.io/pdf.
type Reader struct {
	log *slog.Logger
}

func New(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{log: logger}
}

// ExtractText concatenates the text runs of every page. The pdf library
// panics on some malformed files, so the walk is fenced and a corrupt
// stream always comes back as a typed error.
func (r *Reader) ExtractText(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Warn("pdftext.extract.panic", "recovered", rec)
			text = ""
			err = common.NewAppError("PDF_ERROR", fmt.Sprintf("malformed pdf: %v", rec), common.ErrInvalidInput)
		}
	}()

	doc, err := rpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", common.NewAppError("PDF_ERROR", fmt.Sprintf("open pdf: %v", err), common.ErrInvalidInput)
	}

	var b strings.Builder
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		writePageText(&b, page)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

// writePageText joins a page's text runs, starting a new line whenever the
// vertical position changes.
func writePageText(b *strings.Builder, page rpdf.Page) {
	content := page.Content()
	lastY := -1.0
	for _, t := range content.Text {
		if lastY >= 0 && t.Y != lastY {
			b.WriteString("\n")
		} else if lastY >= 0 {
			b.WriteString(" ")
		}
		b.WriteString(t.S)
		lastY = t.Y
	}
}
