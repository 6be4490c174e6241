package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/bryanwahyu/lexguard/internal/domain/analysis"
)

// Extractor turns an uploaded file into plain text. Plain text and PDF are
// supported; Word documents are accepted at the boundary but cannot be read.
type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (e *Extractor) Extract(fileName string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt", ".md", "":
		return strings.ToValidUTF8(string(data), "�"), nil
	case ".pdf":
		return pdfText(data)
	default:
		return "", fmt.Errorf("%w: %s", analysis.ErrUnsupportedFormat, filepath.Ext(fileName))
	}
}

func pdfText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("pdf page %d: %w", i+1, err)
		}
		pages = append(pages, text)
	}
	return strings.TrimSpace(strings.Join(pages, "\n\n")), nil
}
