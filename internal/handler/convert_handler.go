// Package handler provides HTTP handlers for the API.
package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"office-converter/internal/domain"
)

// ConvertHandler handles one-off conversion requests
type ConvertHandler struct {
	convertService domain.ConvertService
	maxFileSize    int64
	logger         domain.Logger
}

// NewConvertHandler creates a new conversion handler
func NewConvertHandler(convertService domain.ConvertService, maxFileSize int64, logger domain.Logger) *ConvertHandler {
	return &ConvertHandler{
		convertService: convertService,
		maxFileSize:    maxFileSize,
		logger:         logger,
	}
}

// Convert handles POST /convert: multipart body with a "file" part and a
// "format" field naming the target format.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "File too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	format := r.FormValue("format")
	if format == "" {
		writeError(w, http.StatusBadRequest, "Target format is required")
		return
	}

	document, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	result, err := h.convertService.Convert(r.Context(), document, header.Filename, format)
	if err != nil {
		h.logger.Error("Conversion request failed", err, "filename", header.Filename, "format", format)
		writeAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.OutputName))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Bytes)))
	if result.PDFInfo != nil {
		w.Header().Set("X-Page-Count", strconv.Itoa(result.PDFInfo.PageCount))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Bytes)
}
