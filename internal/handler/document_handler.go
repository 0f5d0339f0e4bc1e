package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"office-converter/internal/domain"

	"github.com/gorilla/mux"
)

// DocumentHandler handles template generation and artifact download
type DocumentHandler struct {
	templateService domain.TemplateService
	logger          domain.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(templateService domain.TemplateService, logger domain.Logger) *DocumentHandler {
	return &DocumentHandler{
		templateService: templateService,
		logger:          logger,
	}
}

type generateRequest struct {
	TemplateType string            `json:"template_type"`
	Placeholders map[string]string `json:"placeholders"`
}

type generateResponse struct {
	Status          string `json:"status"`
	ReferenceNumber string `json:"reference_number"`
	WordDocument    string `json:"word_document"`
	PDFDocument     string `json:"pdf_document"`
}

// Generate handles POST /documents/generate
func (h *DocumentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.TemplateType == "" {
		writeError(w, http.StatusBadRequest, "template_type is required")
		return
	}

	doc, err := h.templateService.Generate(r.Context(), req.TemplateType, req.Placeholders)
	if err != nil {
		h.logger.Error("Document generation failed", err, "template_type", req.TemplateType)
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Status:          "success",
		ReferenceNumber: doc.ReferenceNumber,
		WordDocument:    doc.WordDocument,
		PDFDocument:     doc.PDFDocument,
	})
}

// Download handles GET /documents/{name}/download
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]
	if name == "" {
		writeError(w, http.StatusBadRequest, "Artifact name is required")
		return
	}

	artifact, mime, err := h.templateService.OpenArtifact(name)
	if err != nil {
		h.logger.Error("Artifact download failed", err, "name", name)
		writeAppError(w, err)
		return
	}
	defer artifact.Close()

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := io.Copy(w, artifact); err != nil {
		h.logger.Warn("Artifact streaming interrupted", "name", name, "error", err)
	}
}
