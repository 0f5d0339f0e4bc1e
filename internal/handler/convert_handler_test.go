package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"office-converter/internal/domain"
	apperrors "office-converter/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_ReturnsConvertedDocument(t *testing.T) {
	svc := &MockConvertService{
		result: &domain.ConversionResult{
			Bytes:      []byte("%PDF-1.4 converted"),
			MIMEType:   "application/pdf",
			OutputName: "notes.pdf",
			PDFInfo:    &domain.PDFInfo{PageCount: 2},
		},
	}
	h := NewConvertHandler(svc, 10<<20, NewMockHandlerLogger())

	req, err := buildMultipartRequest(http.MethodPost, "/api/v1/convert", "notes.txt", "pdf", []byte("hello"))
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	h.Convert(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="notes.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", rec.Header().Get("X-Page-Count"))
	assert.Equal(t, "%PDF-1.4 converted", rec.Body.String())
	assert.Equal(t, "notes.txt", svc.lastName)
	assert.Equal(t, "pdf", svc.lastFmt)
}

func TestConvert_MissingFile(t *testing.T) {
	svc := &MockConvertService{}
	h := NewConvertHandler(svc, 10<<20, NewMockHandlerLogger())

	req, err := buildMultipartRequest(http.MethodPost, "/api/v1/convert", "", "pdf", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	h.Convert(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, svc.calls)
}

func TestConvert_MissingFormat(t *testing.T) {
	svc := &MockConvertService{}
	h := NewConvertHandler(svc, 10<<20, NewMockHandlerLogger())

	req, err := buildMultipartRequest(http.MethodPost, "/api/v1/convert", "notes.txt", "", []byte("hello"))
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	h.Convert(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, svc.calls)
}

func TestConvert_UnsupportedFormatMapsTo400(t *testing.T) {
	svc := &MockConvertService{err: apperrors.NewUnsupportedFormatError("exe")}
	h := NewConvertHandler(svc, 10<<20, NewMockHandlerLogger())

	req, err := buildMultipartRequest(http.MethodPost, "/api/v1/convert", "notes.txt", "exe", []byte("hello"))
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	h.Convert(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unsupported_format", body["error"])
}

func TestConvert_TimeoutMapsTo504(t *testing.T) {
	svc := &MockConvertService{err: apperrors.NewTimeoutError("conversion did not finish within the deadline", domain.ErrConversionTimeout)}
	h := NewConvertHandler(svc, 10<<20, NewMockHandlerLogger())

	req, err := buildMultipartRequest(http.MethodPost, "/api/v1/convert", "notes.txt", "pdf", []byte("hello"))
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	h.Convert(rec, req)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "conversion_timeout", body["error"])
}

func TestConvert_FailureMapsTo500WithoutInternals(t *testing.T) {
	cause := errors.New("soffice exited with error: /scratch/convert-abc/input.docx: filter failed")
	svc := &MockConvertService{err: apperrors.NewConversionError("document could not be converted", cause)}
	h := NewConvertHandler(svc, 10<<20, NewMockHandlerLogger())

	req, err := buildMultipartRequest(http.MethodPost, "/api/v1/convert", "notes.txt", "pdf", []byte("hello"))
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	h.Convert(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Engine output and internal paths must never leak to the client.
	assert.NotContains(t, rec.Body.String(), "/scratch")
	assert.NotContains(t, rec.Body.String(), "soffice")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "conversion_failed", body["error"])
}

func TestConvert_UnexpectedErrorMapsTo500(t *testing.T) {
	svc := &MockConvertService{err: errors.New("plain error")}
	h := NewConvertHandler(svc, 10<<20, NewMockHandlerLogger())

	req, err := buildMultipartRequest(http.MethodPost, "/api/v1/convert", "notes.txt", "pdf", []byte("hello"))
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	h.Convert(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "plain error")
}
