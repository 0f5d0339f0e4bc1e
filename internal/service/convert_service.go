package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"office-converter/internal/domain"
	apperrors "office-converter/pkg/errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// allowedInputExtensions is the strict allow-list for uploaded files.
var allowedInputExtensions = map[string]bool{
	".doc":  true,
	".docx": true,
	".odt":  true,
	".ods":  true,
	".odp":  true,
	".rtf":  true,
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".csv":  true,
	".xls":  true,
	".xlsx": true,
	".ppt":  true,
	".pptx": true,
	".pdf":  true,
}

// ConversionService implements domain.ConvertService on top of an external
// office engine. Every call stages its input in a uniquely named working
// directory which is removed on all exit paths.
type ConversionService struct {
	office    domain.OfficeRunner
	inspector domain.PDFInspector
	config    domain.Config
	logger    domain.Logger
	allowed   map[domain.Format]bool
}

// NewConvertService creates a new conversion service
func NewConvertService(office domain.OfficeRunner, inspector domain.PDFInspector, config domain.Config, logger domain.Logger) *ConversionService {
	allowed := make(map[domain.Format]bool, len(config.GetAllowedFormats()))
	for _, f := range config.GetAllowedFormats() {
		if format, ok := domain.ParseFormat(f); ok {
			allowed[format] = true
		} else {
			logger.Warn("Ignoring unknown format in allow-list", "format", f)
		}
	}
	return &ConversionService{
		office:    office,
		inspector: inspector,
		config:    config,
		logger:    logger,
		allowed:   allowed,
	}
}

// Convert validates the request, stages the document in an isolated job
// directory, runs the engine under the configured deadline and returns the
// converted bytes. All validation happens before any process is spawned.
func (s *ConversionService) Convert(ctx context.Context, document []byte, originalName string, targetFormat string) (*domain.ConversionResult, error) {
	if len(document) == 0 {
		return nil, apperrors.NewValidationError("document is empty")
	}
	if int64(len(document)) > s.config.GetMaxFileSize() {
		return nil, apperrors.NewValidationError("document too large")
	}

	target, known := domain.ParseFormat(targetFormat)
	if !known || !s.allowed[target] {
		return nil, apperrors.NewUnsupportedFormatError(targetFormat)
	}

	inputName := sanitizeFilename(originalName)
	ext := strings.ToLower(filepath.Ext(inputName))
	if ext == "" || !allowedInputExtensions[ext] {
		return nil, apperrors.NewValidationError("unsupported input file type", ext)
	}
	if ext == "."+string(target) {
		return nil, apperrors.NewValidationError("source and target format are identical", string(target))
	}

	job, err := s.newJob(inputName)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to allocate working directory", err)
	}
	// The job directory is removed on every exit path, including panics in
	// the inspector or reader below.
	defer s.release(job)

	if err := os.WriteFile(job.InputPath, document, 0o600); err != nil {
		return nil, apperrors.NewInternalError("failed to stage document", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, s.config.GetConvertTimeout())
	defer cancel()

	s.logger.Info("Conversion started", "job_id", job.ID, "input", inputName, "target", target)

	if err := s.office.Run(runCtx, job.InputPath, job.OutputDir, job.ProfileDir, target); err != nil {
		if errors.Is(err, domain.ErrConversionTimeout) {
			return nil, apperrors.NewTimeoutError("conversion did not finish within the deadline", err)
		}
		if errors.Is(err, domain.ErrConversionFailed) {
			return nil, apperrors.NewConversionError("document could not be converted", err)
		}
		return nil, apperrors.NewInternalError("conversion engine failure", err)
	}

	outputPath, err := s.locateOutput(job, inputName, target)
	if err != nil {
		return nil, apperrors.NewConversionError("converter produced no output", err)
	}

	converted, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read converted document", err)
	}
	if len(converted) == 0 {
		return nil, apperrors.NewConversionError("converter produced an empty document", domain.ErrNoOutputProduced)
	}

	result := &domain.ConversionResult{
		Bytes:      converted,
		MIMEType:   domain.MIMEForFormat(target),
		OutputName: filepath.Base(outputPath),
	}

	// Sniff the produced bytes; a mismatch is logged but the canonical type
	// for the target format is what clients get.
	if detected := mimetype.Detect(converted); !strings.HasPrefix(result.MIMEType, detected.String()) {
		s.logger.Debug("Output MIME differs from canonical type", "job_id", job.ID, "detected", detected.String(), "canonical", result.MIMEType)
	}

	if target == domain.FormatPDF && s.inspector != nil {
		info, err := s.inspector.Inspect(converted)
		if err != nil {
			s.logger.Warn("PDF inspection failed", "job_id", job.ID, "error", err)
		} else {
			result.PDFInfo = info
		}
	}

	s.logger.Info("Conversion finished", "job_id", job.ID, "output", result.OutputName, "size", len(converted))
	return result, nil
}

// newJob allocates the isolated filesystem scope for one conversion. The
// uuid token keeps directories unique across worker processes sharing one
// scratch root.
func (s *ConversionService) newJob(inputName string) (*domain.ConversionJob, error) {
	id := uuid.New().String()
	dir := filepath.Join(s.config.GetScratchPath(), "convert-"+id)

	job := &domain.ConversionJob{
		ID:         id,
		Dir:        dir,
		InputPath:  filepath.Join(dir, inputName),
		OutputDir:  filepath.Join(dir, "out"),
		ProfileDir: filepath.Join(dir, "profile"),
	}

	for _, d := range []string{job.OutputDir, job.ProfileDir} {
		if err := os.MkdirAll(d, 0o700); err != nil {
			os.RemoveAll(dir)
			return nil, err
		}
	}
	return job, nil
}

// release removes everything the job owns.
func (s *ConversionService) release(job *domain.ConversionJob) {
	if err := os.RemoveAll(job.Dir); err != nil {
		s.logger.Warn("Failed to remove job directory", "job_id", job.ID, "dir", job.Dir, "error", err)
	}
}

// locateOutput finds the file the engine wrote. soffice names the output
// after the input basename, but falls back to a glob because some filters
// adjust the name.
func (s *ConversionService) locateOutput(job *domain.ConversionJob, inputName string, target domain.Format) (string, error) {
	base := strings.TrimSuffix(inputName, filepath.Ext(inputName))
	expected := filepath.Join(job.OutputDir, base+"."+string(target))
	if _, err := os.Stat(expected); err == nil {
		return expected, nil
	}

	matches, err := filepath.Glob(filepath.Join(job.OutputDir, "*."+string(target)))
	if err == nil && len(matches) > 0 {
		return matches[0], nil
	}
	return "", fmt.Errorf("no .%s file in output directory: %w", target, domain.ErrNoOutputProduced)
}

// sanitizeFilename strips any path components from a client-supplied name.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(filepath.Base(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "document"
	}
	return name
}
