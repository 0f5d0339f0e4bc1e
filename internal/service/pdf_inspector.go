package service

import (
	"fmt"

	"office-converter/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// FitzInspector reads metadata out of produced PDFs.
type FitzInspector struct {
	logger domain.Logger
}

// NewPDFInspector creates a new PDF inspector
func NewPDFInspector(logger domain.Logger) *FitzInspector {
	return &FitzInspector{logger: logger}
}

// Inspect opens the PDF bytes and returns page count plus title/author when
// the document carries them.
func (p *FitzInspector) Inspect(pdf []byte) (*domain.PDFInfo, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	info := &domain.PDFInfo{
		PageCount: doc.NumPage(),
	}

	meta := doc.Metadata()
	if title, ok := meta["title"]; ok && title != "" {
		info.Title = title
	}
	if author, ok := meta["author"]; ok && author != "" {
		info.Author = author
	}

	return info, nil
}
