package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"office-converter/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort     string
	ScratchPath    string
	OutputPath     string
	TemplatePath   string
	MaxFileSize    int64
	ConvertTimeout time.Duration
	AllowedFormats []string
	SofficePath    string
	SerialFile     string
	LogLevel       string
	APIKey         string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:     getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		ScratchPath:    getEnvOrDefault("SCRATCH_PATH", os.TempDir()),
		OutputPath:     getEnvOrDefault("OUTPUT_PATH", "./generated"),
		TemplatePath:   getEnvOrDefault("TEMPLATE_PATH", "./templates"),
		MaxFileSize:    getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		ConvertTimeout: time.Duration(getEnvInt64OrDefault("CONVERT_TIMEOUT_SECONDS", 120)) * time.Second,
		AllowedFormats: getEnvListOrDefault("ALLOWED_FORMATS", []string{"pdf", "docx", "odt", "txt", "rtf", "html"}),
		SofficePath:    getEnvOrDefault("SOFFICE_PATH", ""),
		SerialFile:     getEnvOrDefault("SERIAL_FILE", "./serial_data.txt"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		APIKey:         getEnvOrDefault("API_KEY", ""),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetScratchPath returns the root directory for per-job working directories
func (c *AppConfig) GetScratchPath() string {
	return c.ScratchPath
}

// GetOutputPath returns the directory for generated documents
func (c *AppConfig) GetOutputPath() string {
	return c.OutputPath
}

// GetTemplatePath returns the directory holding DOCX templates
func (c *AppConfig) GetTemplatePath() string {
	return c.TemplatePath
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetConvertTimeout returns the wall-clock deadline for one conversion
func (c *AppConfig) GetConvertTimeout() time.Duration {
	return c.ConvertTimeout
}

// GetAllowedFormats returns the enumerated target format allow-list
func (c *AppConfig) GetAllowedFormats() []string {
	return c.AllowedFormats
}

// GetSofficePath returns the configured soffice binary path, empty for autodetect
func (c *AppConfig) GetSofficePath() string {
	return c.SofficePath
}

// GetSerialFilePath returns the path of the reference-number counter file
func (c *AppConfig) GetSerialFilePath() string {
	return c.SerialFile
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetAPIKey returns the optional API key; empty disables auth
func (c *AppConfig) GetAPIKey() string {
	return c.APIKey
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
