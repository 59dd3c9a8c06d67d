package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blankPDF builds a single-page PDF whose page has no content stream.
func blankPDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestExtractTextRejectsUnreadableFiles(t *testing.T) {
	parser := NewPDFParserService()

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "missing.pdf")},
		{"not a pdf", writeTempFile(t, "garbage.pdf", []byte("this is not a pdf at all"))},
		{"truncated pdf", writeTempFile(t, "truncated.pdf", []byte("%PDF-1.4\n1 0 obj\n<<"))},
		{"no text", writeTempFile(t, "blank.pdf", blankPDF())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := parser.ExtractText(tt.path)

			assert.ErrorIs(t, err, ErrExtraction)
			assert.Empty(t, text)
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \n\t\n ", ""},
		{"trims lines", "  Jane Doe  \n\tGo engineer ", "Jane Doe\nGo engineer"},
		{"collapses blank runs", "Summary\n\n\n  \n\nExperience", "Summary\n\nExperience"},
		{"drops leading and trailing blanks", "\n\n  Skills\n\n\n", "Skills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}
