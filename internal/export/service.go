package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/studyscope/pdf-summarizer/internal/common"
	"github.com/studyscope/pdf-summarizer/internal/pipeline"
)

// Service produces XLSX bytes for a finished analysis so users can take the
// results offline.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// AnalysisXLSX renders the analysis as a workbook with one sheet per result
// family: Summary, Sections, Keywords and Schedule.
func (s *Service) AnalysisXLSX(a *pipeline.Analysis) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()

	if err := s.writeSummarySheet(f, a); err != nil {
		return nil, err
	}
	if err := s.writeSectionsSheet(f, a); err != nil {
		return nil, err
	}
	if err := s.writeKeywordsSheet(f, a); err != nil {
		return nil, err
	}
	if err := s.writeScheduleSheet(f, a); err != nil {
		return nil, err
	}

	// excelize seeds a default "Sheet1"; our sheets replace it.
	_ = f.DeleteSheet("Sheet1")
	if index, err := f.GetSheetIndex("Summary"); err == nil && index != -1 {
		f.SetActiveSheet(index)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, common.WrapError(err, "xlsx write")
	}

	s.logger.Info("export.xlsx.ok",
		"sections", len(a.Sections),
		"keywords", len(a.Keywords.Keywords),
		"events", len(a.Events),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func newSheet(f *excelize.File, name string, headers []string) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func (s *Service) writeSummarySheet(f *excelize.File, a *pipeline.Analysis) error {
	const sheet = "Summary"
	if err := newSheet(f, sheet, []string{"Field", "Value"}); err != nil {
		return err
	}
	row := 2
	writeRow(f, sheet, row, "Summary", a.Summary.Summary)
	row++
	if st := a.Structure.Struct; st != nil {
		writeRow(f, sheet, row, "Learning Objectives", strings.Join(st.LearningObjectives, "; "))
		row++
		writeRow(f, sheet, row, "Competencies", strings.Join(st.Competencies, "; "))
		row++
		writeRow(f, sheet, row, "Resources", strings.Join(st.Resources, "; "))
		row++
	}
	if a.Summary.Fallback {
		writeRow(f, sheet, row, "Note", "summary fell back to defaults")
	}
	_ = f.SetColWidth(sheet, "A", "A", 22)
	_ = f.SetColWidth(sheet, "B", "B", 90)
	return nil
}

func (s *Service) writeSectionsSheet(f *excelize.File, a *pipeline.Analysis) error {
	const sheet = "Sections"
	if err := newSheet(f, sheet, []string{"Title", "Kind", "Content"}); err != nil {
		return err
	}
	for i, sec := range a.Sections {
		writeRow(f, sheet, i+2, sec.Title, string(sec.Kind), truncate(sec.Content, 500))
	}
	_ = f.SetColWidth(sheet, "A", "A", 40)
	_ = f.SetColWidth(sheet, "B", "B", 12)
	_ = f.SetColWidth(sheet, "C", "C", 100)
	return nil
}

func (s *Service) writeKeywordsSheet(f *excelize.File, a *pipeline.Analysis) error {
	const sheet = "Keywords"
	if err := newSheet(f, sheet, []string{"Keyword", "Score"}); err != nil {
		return err
	}
	for i, kw := range a.Keywords.Keywords {
		writeRow(f, sheet, i+2, kw.Word, kw.Score)
	}
	_ = f.SetColWidth(sheet, "A", "A", 32)
	return nil
}

func (s *Service) writeScheduleSheet(f *excelize.File, a *pipeline.Analysis) error {
	const sheet = "Schedule"
	if err := newSheet(f, sheet, []string{"When", "Type", "Description"}); err != nil {
		return err
	}
	for i, e := range a.Events {
		when := e.Date
		if !e.Dated() {
			when = fmt.Sprintf("Week %d", e.Week)
		}
		writeRow(f, sheet, i+2, when, string(e.Kind), e.Description)
	}
	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 14)
	_ = f.SetColWidth(sheet, "C", "C", 70)
	return nil
}

func truncate(s string, n int) string {
	if n <= 1 || len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
