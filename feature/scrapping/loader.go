package scrapping

import (
	"scrapper/feature/scrapping/classify"
	"scrapper/feature/scrapping/orchestrator"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Scrapping feature.
func NewFeature(orch *orchestrator.Orchestrator, classifier *classify.Classifier, archive *Archive, logger *zap.Logger) *Feature {
	svc := NewService(orch, classifier, archive, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "scrapping"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature service, shared with the CLI.
func (f *Feature) Service() *Service {
	return f.service
}
