package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/sakif/readability-analyzer/internal/service"
)

// MaxUploadSize caps how much of an upload we read: 10 MiB is generous for
// any document worth scoring.
const MaxUploadSize = 10 << 20

// AnalyzeHandler accepts a document upload and returns a readability
// report.
type AnalyzeHandler struct {
	svc    *service.AnalysisService
	logger *slog.Logger
}

// NewAnalyzeHandler creates an AnalyzeHandler.
func NewAnalyzeHandler(svc *service.AnalysisService, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc, logger: logger}
}

// HandleAnalyze scores an uploaded document.
//
// HTTP: POST /api/analyze
// Body: multipart/form-data with a "file" part (.txt or .pdf)
// Auth: required
//
// Responses:
//
//	200 → service.Report (raw indices, eases, combined score, label)
//	400 → malformed upload
//	415 → unsupported file type
//	422 → fewer than 30 words of extracted text
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.Warn("invalid upload", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: `multipart upload with a "file" part is required`,
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Warn("reading upload failed",
			slog.String("file", header.Filename),
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "could not read uploaded file",
		})
		return
	}

	report, err := h.svc.Analyze(header.Filename, data)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// HandleTips returns the static readability-improvement suggestions.
//
// HTTP: GET /api/analyze/tips
func (h *AnalyzeHandler) HandleTips(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"tips": service.Tips()})
}
