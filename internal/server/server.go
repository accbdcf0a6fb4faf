// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyscope/pdf-summarizer/constants"
	"github.com/studyscope/pdf-summarizer/internal/common"
	"github.com/studyscope/pdf-summarizer/internal/export"
	"github.com/studyscope/pdf-summarizer/internal/pipeline"
	"github.com/studyscope/pdf-summarizer/internal/viz"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// AnalysisResponse is the /upload payload: the full analysis plus the
// ready-to-render figure specs.
type AnalysisResponse struct {
	Analysis *pipeline.Analysis        `json:"analysis"`
	Figures  map[string]map[string]any `json:"figures"`
}

// Server wires the HTTP routes to the processor.
type Server struct {
	logger   *slog.Logger
	proc     *pipeline.Processor
	exporter *export.Service
}

func New(logger *slog.Logger, proc *pipeline.Processor) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger:   logger,
		proc:     proc,
		exporter: export.NewService(logger),
	}
}

// Router builds the gin engine. Kept separate from New so tests can drive
// the routes through httptest without a listener.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	router.GET("/healthz", s.health)
	router.POST("/upload", s.upload)
	router.POST("/export", s.exportXLSX)

	return router
}

// requestID threads one id through the request context and response so log
// lines across pipeline and client calls correlate.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header("X-Request-ID", rid)
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), rid))
		c.Next()
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) upload(c *gin.Context) {
	analysis, ok := s.analyze(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, AnalysisResponse{
		Analysis: analysis,
		Figures: map[string]map[string]any{
			"structure": viz.StructureFigure(analysis.Sections),
			"keywords":  viz.KeywordsFigure(analysis.Keywords.Keywords),
			"timeline":  viz.TimelineFigure(analysis.Events),
		},
	})
}

func (s *Server) exportXLSX(c *gin.Context) {
	analysis, ok := s.analyze(c)
	if !ok {
		return
	}
	data, err := s.exporter.AnalysisXLSX(analysis)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="analysis.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// analyze reads the multipart upload and runs the pipeline. On failure it
// writes the error response itself and returns ok=false.
func (s *Server) analyze(c *gin.Context) (*pipeline.Analysis, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.respondError(c, common.NewAppError("UPLOAD_REJECTED", "missing file field", common.ErrInvalidInput))
		return nil, false
	}
	if fileHeader.Size > int64(constants.MaxUploadBytes) {
		s.respondError(c, common.NewAppError("UPLOAD_REJECTED", "file exceeds the upload limit", common.ErrInvalidInput))
		return nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, int64(constants.MaxUploadBytes)+1))
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}

	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		sessionID = c.ClientIP()
	}
	modelID := c.PostForm("model")

	contentType := fileHeader.Header.Get("Content-Type")
	analysis, err := s.proc.ProcessPDF(c.Request.Context(), sessionID, modelID, fileHeader.Filename, contentType, data)
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	return analysis, true
}

func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, common.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrUpstreamCall):
		status = http.StatusBadGateway
	}

	code := ""
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
	}

	s.logger.Warn("server.request.failed",
		"path", c.FullPath(),
		"status", status,
		"error", err,
	)
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: err.Error(), Code: code}})
}
