package extract

import (
	"errors"
	"testing"

	"github.com/sakif/readability-analyzer/internal/apperror"
)

// =========================================================================
// KIND DETECTION TESTS
// =========================================================================

func TestDetectKind(t *testing.T) {
	cases := []struct {
		filename string
		want     Kind
	}{
		{"notes.txt", KindText},
		{"NOTES.TXT", KindText},
		{"paper.pdf", KindPDF},
		{"Paper.PDF", KindPDF},
		{"archive.tar.txt", KindText}, // last extension wins
		{"image.png", KindUnsupported},
		{"no-extension", KindUnsupported},
		{"", KindUnsupported},
	}

	for _, tc := range cases {
		if got := DetectKind(tc.filename); got != tc.want {
			t.Errorf("DetectKind(%q) = %v, want %v", tc.filename, got, tc.want)
		}
	}
}

// =========================================================================
// TEXT DECODING TESTS
// =========================================================================

func TestExtract_UTF8Text(t *testing.T) {
	content := "Hello, 世界. Plain UTF-8 passes through unchanged."

	got, err := Extract("doc.txt", []byte(content))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != content {
		t.Errorf("Extract() = %q, want %q", got, content)
	}
}

func TestExtract_Latin1Fallback(t *testing.T) {
	// 0xE9 is 'é' in Latin-1 but an invalid UTF-8 sequence on its own.
	data := []byte{'c', 'a', 'f', 0xE9}

	got, err := Extract("doc.txt", data)
	if err != nil {
		t.Fatalf("Extract() error = %v; the fallback decode must never fail", err)
	}
	if got != "café" {
		t.Errorf("Extract() = %q, want %q", got, "café")
	}
}

// =========================================================================
// FAILURE PATH TESTS
// =========================================================================

func TestExtract_UnsupportedExtension(t *testing.T) {
	got, err := Extract("slides.docx", []byte("irrelevant"))
	if got != "" {
		t.Errorf("Extract() = %q, want empty text for unsupported kind", got)
	}
	if !errors.Is(err, apperror.ErrUnsupported) {
		t.Errorf("Extract() error = %v, want ErrUnsupported", err)
	}
}

func TestExtract_MalformedPDF(t *testing.T) {
	got, err := Extract("broken.pdf", []byte("this is not a pdf at all"))
	if got != "" {
		t.Errorf("Extract() = %q, want empty text for a malformed PDF", got)
	}
	if err == nil {
		t.Fatal("Extract() should return an error for a malformed PDF")
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Extract() error = %v, want ErrValidation", err)
	}
}

func TestExtract_TruncatedPDF(t *testing.T) {
	// A real header with nothing behind it must error cleanly, not panic.
	got, err := Extract("truncated.pdf", []byte("%PDF-1.4\n"))
	if got != "" {
		t.Errorf("Extract() = %q, want empty text", got)
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Extract() error = %v, want ErrValidation", err)
	}
}
