package domain

import (
	"context"
	"io"
	"time"
)

// ConvertService defines the use-case operations for one-off conversions.
type ConvertService interface {
	Convert(ctx context.Context, document []byte, originalName string, targetFormat string) (*ConversionResult, error)
}

// TemplateService defines the use-case operations for template-based
// document generation.
type TemplateService interface {
	Generate(ctx context.Context, templateType string, placeholders map[string]string) (*GeneratedDocument, error)
	OpenArtifact(name string) (io.ReadCloser, string, error)
}

// OfficeRunner invokes the external office engine to convert the file at
// inputPath into target format, writing the result into outDir. profileDir
// is used as the engine's user profile so that concurrent invocations never
// share engine state.
type OfficeRunner interface {
	Run(ctx context.Context, inputPath, outDir, profileDir string, target Format) error
	Binary() string
	Healthy() bool
}

// PDFInspector extracts metadata from produced PDF bytes.
type PDFInspector interface {
	Inspect(pdf []byte) (*PDFInfo, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetScratchPath() string
	GetOutputPath() string
	GetTemplatePath() string
	GetMaxFileSize() int64
	GetConvertTimeout() time.Duration
	GetAllowedFormats() []string
	GetSofficePath() string
	GetSerialFilePath() string
	GetLogLevel() string
	GetAPIKey() string
}
