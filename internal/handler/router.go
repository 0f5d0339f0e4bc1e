package handler

import (
	"net/http"

	"office-converter/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health check endpoint (no auth required). Readiness includes the
	// external conversion engine.
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if !container.Office.Healthy() {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"reason": "conversion engine not reachable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "office-converter",
		})
	}).Methods("GET")

	// Service index
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Document conversion API is running!",
			"endpoints": map[string]string{
				"POST /api/v1/convert":                  "Convert an uploaded document to a target format",
				"POST /api/v1/documents/generate":       "Generate a document from a template with placeholders",
				"GET /api/v1/documents/{name}/download": "Download a generated document",
				"GET /health":                           "Service and engine health",
			},
		})
	}).Methods("GET")

	// Initialize handlers
	convertHandler := NewConvertHandler(container.ConvertService, container.Config.GetMaxFileSize(), container.Logger)
	documentHandler := NewDocumentHandler(container.TemplateService, container.Logger)

	// Protected routes (require the API key when one is configured)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(APIKeyMiddleware(container.Config.GetAPIKey(), container.Logger))

	protected.HandleFunc("/convert", convertHandler.Convert).Methods("POST")
	protected.HandleFunc("/documents/generate", documentHandler.Generate).Methods("POST")
	protected.HandleFunc("/documents/{name}/download", documentHandler.Download).Methods("GET")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
			"X-Page-Count",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
