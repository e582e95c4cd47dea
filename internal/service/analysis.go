package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rs/xid"

	"github.com/sakif/readability-analyzer/internal/apperror"
	"github.com/sakif/readability-analyzer/internal/extract"
	"github.com/sakif/readability-analyzer/internal/readability"
)

// Report is the outcome of analyzing one uploaded document: file details,
// the word count, and the readability scores. Reports are created fresh
// per request and never persisted.
type Report struct {
	ID        string `json:"id"`
	FileName  string `json:"fileName"`
	FileSize  int64  `json:"fileSize"`
	WordCount int    `json:"wordCount"`

	readability.Result
}

// AnalysisService runs the extract-then-score pipeline for an upload.
type AnalysisService struct {
	logger *slog.Logger
}

// NewAnalysisService creates an AnalysisService.
func NewAnalysisService(logger *slog.Logger) *AnalysisService {
	return &AnalysisService{logger: logger}
}

// Analyze extracts text from the uploaded bytes and scores it.
//
// Error outcomes, all typed for the handler to map:
//   - apperror.ErrUnsupported: extension is neither .txt nor .pdf
//   - apperror.ErrValidation: the file could not be parsed
//   - apperror.ErrInsufficient: extracted text is under the word floor
func (s *AnalysisService) Analyze(filename string, data []byte) (*Report, error) {
	text, err := extract.Extract(filename, data)
	if err != nil {
		s.logger.Warn("extraction failed",
			slog.String("file", filename),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	words := readability.WordCount(text)

	result, err := readability.Score(text)
	if err != nil {
		if errors.Is(err, readability.ErrInsufficientText) {
			return nil, apperror.Insufficient(fmt.Sprintf(
				"file has %d words; at least %d are needed for reliable metrics",
				words, readability.MinWords))
		}
		return nil, fmt.Errorf("scoring %s: %w", filename, err)
	}

	report := &Report{
		ID:        xid.New().String(),
		FileName:  filename,
		FileSize:  int64(len(data)),
		WordCount: words,
		Result:    *result,
	}

	s.logger.Info("document analyzed",
		slog.String("reportID", report.ID),
		slog.String("file", filename),
		slog.Int("words", words),
		slog.Float64("combined", result.Combined),
		slog.String("label", result.Label),
	)

	return report, nil
}

// Tips are static suggestions for improving readability, shown alongside
// every report.
func Tips() []string {
	return []string{
		"Use shorter sentences and break long paragraphs.",
		"Replace rare or complex words with simpler alternatives.",
		"Add examples and use active voice where possible.",
		"Use headings, bullet lists, and whitespace to structure content.",
	}
}
