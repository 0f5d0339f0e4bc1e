package config

import (
	"office-converter/internal/domain"
	"office-converter/internal/service"
	"office-converter/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config          domain.Config
	Logger          domain.Logger
	Office          domain.OfficeRunner
	Inspector       domain.PDFInspector
	ConvertService  domain.ConvertService
	TemplateService domain.TemplateService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Initialize the external conversion engine
	office, err := service.NewLibreOffice(config.GetSofficePath(), appLogger)
	if err != nil {
		return nil, err
	}

	inspector := service.NewPDFInspector(appLogger)

	// Initialize services
	convertService := service.NewConvertService(office, inspector, config, appLogger)
	templateService := service.NewTemplateService(convertService, config, appLogger)

	return &Container{
		Config:          config,
		Logger:          appLogger,
		Office:          office,
		Inspector:       inspector,
		ConvertService:  convertService,
		TemplateService: templateService,
	}, nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetOffice returns the office engine runner
func (c *Container) GetOffice() domain.OfficeRunner {
	return c.Office
}

// GetConvertService returns the conversion service instance
func (c *Container) GetConvertService() domain.ConvertService {
	return c.ConvertService
}

// GetTemplateService returns the template service instance
func (c *Container) GetTemplateService() domain.TemplateService {
	return c.TemplateService
}
