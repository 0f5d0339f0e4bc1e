package domain

import (
	"strings"
	"time"
)

// Format is an output format the conversion engine can produce.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatODT  Format = "odt"
	FormatTXT  Format = "txt"
	FormatRTF  Format = "rtf"
	FormatHTML Format = "html"
)

// formatMIMETypes maps each supported output format to its canonical MIME type.
var formatMIMETypes = map[Format]string{
	FormatPDF:  "application/pdf",
	FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatODT:  "application/vnd.oasis.opendocument.text",
	FormatTXT:  "text/plain; charset=utf-8",
	FormatRTF:  "application/rtf",
	FormatHTML: "text/html; charset=utf-8",
}

// ParseFormat normalizes a user-supplied format string. The boolean reports
// whether the format is one the engine knows how to produce at all; the
// per-deployment allow-list is checked separately by the conversion service.
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	_, ok := formatMIMETypes[f]
	return f, ok
}

// MIMEForFormat returns the canonical MIME type for a supported format.
func MIMEForFormat(f Format) string {
	return formatMIMETypes[f]
}

// ConversionRequest is one incoming request to convert a document.
// Immutable once built from the HTTP request.
type ConversionRequest struct {
	Document     []byte
	OriginalName string
	Target       Format
}

// ConversionJob is the per-request filesystem scope for one conversion.
// The directory, profile directory and output directory are exclusively
// owned by the handling worker and removed when the job ends.
type ConversionJob struct {
	ID         string
	Dir        string
	InputPath  string
	OutputDir  string
	ProfileDir string
	Deadline   time.Time
}

// PDFInfo holds metadata extracted from a produced PDF.
type PDFInfo struct {
	PageCount int    `json:"page_count"`
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
}

// ConversionResult is the outcome of a successful conversion. Ownership of
// the bytes transfers to the response writer.
type ConversionResult struct {
	Bytes      []byte
	MIMEType   string
	OutputName string
	PDFInfo    *PDFInfo
}

// GeneratedDocument describes the artifacts produced by template generation.
type GeneratedDocument struct {
	ReferenceNumber string `json:"reference_number"`
	WordDocument    string `json:"word_document"`
	PDFDocument     string `json:"pdf_document"`
}
