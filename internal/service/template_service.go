package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"office-converter/internal/domain"
	apperrors "office-converter/pkg/errors"

	"github.com/gabriel-vasile/mimetype"
)

// DocumentTemplateService generates documents from DOCX templates: it fills
// placeholders, stamps a reference number and converts the result to PDF
// through the conversion service.
type DocumentTemplateService struct {
	converter domain.ConvertService
	config    domain.Config
	logger    domain.Logger
}

// NewTemplateService creates a new template service
func NewTemplateService(converter domain.ConvertService, config domain.Config, logger domain.Logger) *DocumentTemplateService {
	return &DocumentTemplateService{
		converter: converter,
		config:    config,
		logger:    logger,
	}
}

// Generate fills the named template with the given placeholders and writes
// both the DOCX and its PDF rendition into the output directory.
func (s *DocumentTemplateService) Generate(ctx context.Context, templateType string, placeholders map[string]string) (*domain.GeneratedDocument, error) {
	templateName := sanitizeFilename(templateType)
	if templateName == "" || templateName == "document" {
		return nil, apperrors.NewValidationError("template type is required")
	}

	templatePath := filepath.Join(s.config.GetTemplatePath(), templateName+".docx")
	templateBytes, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("unknown template type")
		}
		return nil, apperrors.NewInternalError("failed to read template", err)
	}

	ref, err := s.nextReferenceNumber()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to allocate reference number", err)
	}

	if placeholders == nil {
		placeholders = make(map[string]string)
	}
	placeholders["<<Reference Number>>"] = ref

	filled, err := fillTemplate(templateBytes, placeholders)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fill template", err)
	}

	if err := os.MkdirAll(s.config.GetOutputPath(), 0o755); err != nil {
		return nil, apperrors.NewInternalError("failed to create output directory", err)
	}

	baseName := templateName + " " + ref
	docxName := baseName + ".docx"
	pdfName := baseName + ".pdf"

	if err := os.WriteFile(filepath.Join(s.config.GetOutputPath(), docxName), filled, 0o644); err != nil {
		return nil, apperrors.NewInternalError("failed to write generated document", err)
	}

	result, err := s.converter.Convert(ctx, filled, docxName, string(domain.FormatPDF))
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(filepath.Join(s.config.GetOutputPath(), pdfName), result.Bytes, 0o644); err != nil {
		return nil, apperrors.NewInternalError("failed to write generated PDF", err)
	}

	s.logger.Info("Document generated", "template", templateName, "reference", ref)

	return &domain.GeneratedDocument{
		ReferenceNumber: ref,
		WordDocument:    docxName,
		PDFDocument:     pdfName,
	}, nil
}

// OpenArtifact opens a previously generated document by name and returns a
// reader plus its MIME type. The name is restricted to plain filenames.
func (s *DocumentTemplateService) OpenArtifact(name string) (io.ReadCloser, string, error) {
	if name != filepath.Base(name) || strings.Contains(name, "..") || name == "" || name == "." {
		return nil, "", apperrors.NewValidationError("invalid artifact name")
	}

	path := filepath.Join(s.config.GetOutputPath(), name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", apperrors.NewNotFoundError("artifact not found")
		}
		return nil, "", apperrors.NewInternalError("failed to open artifact", err)
	}

	mime := artifactMIME(path)
	return f, mime, nil
}

// artifactMIME derives the content type from the extension, falling back to
// sniffing the file itself.
func artifactMIME(path string) string {
	if f, ok := domain.ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); ok {
		return domain.MIMEForFormat(f)
	}
	if detected, err := mimetype.DetectFile(path); err == nil {
		return detected.String()
	}
	return "application/octet-stream"
}

// fillTemplate rewrites the textual XML parts of a DOCX archive, replacing
// each placeholder occurrence. All other archive entries are copied through
// untouched. Placeholders must not be split across runs in the template.
func fillTemplate(templateBytes []byte, placeholders map[string]string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(templateBytes), int64(len(templateBytes)))
	if err != nil {
		return nil, fmt.Errorf("opening template archive: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, entry := range zr.File {
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name, err)
		}

		if isDocumentPart(entry.Name) {
			data = replacePlaceholders(data, placeholders)
		}

		w, err := zw.CreateHeader(&zip.FileHeader{Name: entry.Name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", entry.Name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", entry.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finishing archive: %w", err)
	}
	return buf.Bytes(), nil
}

// isDocumentPart selects the XML parts that carry user-visible text:
// the body, headers and footers.
func isDocumentPart(name string) bool {
	if name == "word/document.xml" {
		return true
	}
	if !strings.HasPrefix(name, "word/") || !strings.HasSuffix(name, ".xml") {
		return false
	}
	base := filepath.Base(name)
	return strings.HasPrefix(base, "header") || strings.HasPrefix(base, "footer")
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// replacePlaceholders substitutes placeholder keys inside raw XML. Keys are
// matched both literally and in their XML-escaped form, since angle-bracket
// markers are stored escaped in the document part.
func replacePlaceholders(data []byte, placeholders map[string]string) []byte {
	text := string(data)
	for key, value := range placeholders {
		escapedValue := xmlEscaper.Replace(value)
		text = strings.ReplaceAll(text, xmlEscaper.Replace(key), escapedValue)
		text = strings.ReplaceAll(text, key, escapedValue)
	}
	return []byte(text)
}
