package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"office-converter/internal/domain"
	apperrors "office-converter/pkg/errors"
)

// MockConvertService returns a canned result or error.
type MockConvertService struct {
	result   *domain.ConversionResult
	err      error
	lastName string
	lastFmt  string
	calls    int
}

func (m *MockConvertService) Convert(ctx context.Context, document []byte, originalName string, targetFormat string) (*domain.ConversionResult, error) {
	m.calls++
	m.lastName = originalName
	m.lastFmt = targetFormat
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.ConversionResult{
		Bytes:      []byte("%PDF-1.4 converted"),
		MIMEType:   "application/pdf",
		OutputName: "out.pdf",
	}, nil
}

// MockTemplateService serves generation and download from memory.
type MockTemplateService struct {
	generated *domain.GeneratedDocument
	artifacts map[string][]byte
	err       error
}

func (m *MockTemplateService) Generate(ctx context.Context, templateType string, placeholders map[string]string) (*domain.GeneratedDocument, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.generated, nil
}

func (m *MockTemplateService) OpenArtifact(name string) (io.ReadCloser, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	data, ok := m.artifacts[name]
	if !ok {
		return nil, "", apperrors.NewNotFoundError("artifact not found")
	}
	return io.NopCloser(bytes.NewReader(data)), "application/pdf", nil
}

// MockOffice reports a configurable health state.
type MockOffice struct {
	healthy bool
}

func (m *MockOffice) Run(ctx context.Context, inputPath, outDir, profileDir string, target domain.Format) error {
	return nil
}
func (m *MockOffice) Binary() string { return "/usr/bin/soffice" }
func (m *MockOffice) Healthy() bool  { return m.healthy }

// MockConfig carries just what the router needs.
type MockConfig struct {
	apiKey string
}

func (c *MockConfig) GetServerPort() string            { return "8080" }
func (c *MockConfig) GetScratchPath() string           { return "/tmp" }
func (c *MockConfig) GetOutputPath() string            { return "/tmp/generated" }
func (c *MockConfig) GetTemplatePath() string          { return "/tmp/templates" }
func (c *MockConfig) GetMaxFileSize() int64            { return 10 * 1024 * 1024 }
func (c *MockConfig) GetConvertTimeout() time.Duration { return time.Minute }
func (c *MockConfig) GetAllowedFormats() []string      { return []string{"pdf"} }
func (c *MockConfig) GetSofficePath() string           { return "" }
func (c *MockConfig) GetSerialFilePath() string        { return "/tmp/serial" }
func (c *MockConfig) GetLogLevel() string              { return "error" }
func (c *MockConfig) GetAPIKey() string                { return c.apiKey }

// buildMultipartRequest assembles a multipart conversion request.
func buildMultipartRequest(target, url string, filename, format string, content []byte) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(content); err != nil {
			return nil, err
		}
	}
	if format != "" {
		if err := writer.WriteField("format", format); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(target, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}
