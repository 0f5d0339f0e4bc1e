package domain

import "errors"

// Domain errors
var (
	ErrEmptyDocument     = errors.New("document is empty")
	ErrUnsupportedFormat = errors.New("unsupported target format")
	ErrFileTooLarge      = errors.New("file too large")
	ErrInvalidFile       = errors.New("invalid file")
	ErrConversionFailed  = errors.New("conversion failed")
	ErrConversionTimeout = errors.New("conversion timed out")
	ErrNoOutputProduced  = errors.New("converter produced no output")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrArtifactNotFound  = errors.New("artifact not found")
	ErrEngineUnavailable = errors.New("conversion engine unavailable")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
