// Package extract turns an uploaded byte blob into plain text.
//
// Supported content kinds form a closed enumeration: plain text and PDF.
// Everything else funnels to a single "unsupported" outcome rather than
// branching on raw extension strings at the call sites.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/sakif/readability-analyzer/internal/apperror"
)

// Kind identifies how an upload's bytes should be decoded.
type Kind int

const (
	KindUnsupported Kind = iota
	KindText
	KindPDF
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPDF:
		return "pdf"
	default:
		return "unsupported"
	}
}

// DetectKind classifies an upload by its filename extension,
// case-insensitively.
func DetectKind(filename string) Kind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return KindText
	case ".pdf":
		return KindPDF
	default:
		return KindUnsupported
	}
}

// Extract decodes the uploaded bytes into a single string.
//
// Failures never panic and never return partial garbage: an unsupported
// extension or an unreadable PDF yields empty text and a typed error the
// caller can surface to the user.
func Extract(filename string, data []byte) (string, error) {
	switch DetectKind(filename) {
	case KindText:
		return decodeText(data), nil
	case KindPDF:
		return extractPDF(data)
	default:
		return "", apperror.Unsupported(
			fmt.Sprintf("unsupported file type %q: upload .txt or .pdf", filepath.Ext(filename)))
	}
}

// decodeText decodes a .txt upload. Valid UTF-8 passes through unchanged;
// anything else falls back to a permissive Latin-1 decode, which maps every
// byte to a rune and therefore cannot fail.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return b.String()
}

// extractPDF parses the PDF and concatenates the text of each page with
// newline separators, skipping pages that yield nothing.
func extractPDF(data []byte) (text string, err error) {
	// The pdf package panics on some malformed files; turn that into the
	// same error path as a regular parse failure.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = apperror.ValidationFailed("file", fmt.Sprintf("could not read PDF: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperror.ValidationFailed("file", fmt.Sprintf("could not read PDF: %v", err))
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page doesn't fail the document.
			continue
		}
		if content != "" {
			pages = append(pages, content)
		}
	}

	return strings.Join(pages, "\n"), nil
}
