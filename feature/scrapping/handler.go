package scrapping

import (
	"strconv"

	"scrapper/core/errors"
	"scrapper/core/logger"
	"scrapper/feature/scrapping/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the import pipeline.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the scrapping routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/scrapping")
	group.Post("/import/batch", h.HandleImportBatch)
	group.Post("/import/:kind/:id", h.HandleImportOne)
	group.Post("/import/:kind", h.HandleImportCategory)
	group.Get("/preview/:kind/:id", h.HandlePreview)
	group.Get("/reports/:job", h.HandleReport)
	group.Get("/types", h.HandleListTypes)
	group.Put("/types/:id", h.HandleSetType)
}

// BatchRequest is the body of a batch import.
type BatchRequest struct {
	Entities         []models.EntityRef `json:"entities"`
	SkipCache        bool               `json:"skip_cache"`
	IncludeRelations bool               `json:"include_relations"`
}

// TypeDecisionRequest is the body of a source type update.
type TypeDecisionRequest struct {
	Kind     models.EntityKind `json:"kind"`
	Decision string            `json:"decision"`
}

// HandleImportOne imports a single entity.
// @Summary Import Entity
// @Description Collects, converts and stores one entity of the external API.
// @Tags scrapping
// @Produce json
// @Security ApiKeyAuth
// @Param kind path string true "Entity kind (class, monster, npc, item, resource, consumable, spell, panoply)"
// @Param id path int true "External id"
// @Param skip_cache query bool false "Bypass cached source pages"
// @Param include_relations query bool false "Import related entities"
// @Success 200 {object} models.BatchResult "Job report"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scrapping/import/{kind}/{id} [post]
func (h *Handler) HandleImportOne(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return h.fail(c, l, errors.NewInvalidRequest("invalid id %q", c.Params("id")))
	}

	report, err := h.service.ImportOne(c.UserContext(), models.EntityKind(c.Params("kind")), id, options(c))
	if err != nil {
		return h.fail(c, l, err)
	}
	l.Info("Import finished", zap.String("job_id", report.JobID), zap.String("status", string(report.Status)))
	return c.JSON(report)
}

// HandleImportBatch imports a list of entities.
// @Summary Import Batch
// @Description Imports a list of entities concurrently. One failed entity does not fail the others.
// @Tags scrapping
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body BatchRequest true "Entities to import"
// @Success 200 {object} models.BatchResult "Job report"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /scrapping/import/batch [post]
func (h *Handler) HandleImportBatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, l, errors.NewInvalidRequest("invalid body: %v", err))
	}

	report, err := h.service.ImportBatch(c.UserContext(), req.Entities, Options{
		SkipCache:        req.SkipCache,
		IncludeRelations: req.IncludeRelations,
	})
	if err != nil {
		return h.fail(c, l, err)
	}
	l.Info("Batch import finished",
		zap.String("job_id", report.JobID),
		zap.String("status", string(report.Status)),
		zap.Int("entities", report.Summary.Total),
	)
	return c.JSON(report)
}

// HandleImportCategory imports every entity of a kind.
// @Summary Import Category
// @Description Walks every page of a kind and imports its entities. This operation may take a long time.
// @Tags scrapping
// @Produce json
// @Security ApiKeyAuth
// @Param kind path string true "Entity kind"
// @Param skip_cache query bool false "Bypass cached source pages"
// @Param include_relations query bool false "Import related entities"
// @Success 200 {object} models.BatchResult "Job report"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /scrapping/import/{kind} [post]
func (h *Handler) HandleImportCategory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	kind := models.EntityKind(c.Params("kind"))
	l.Info("Triggering category import", zap.String("kind", string(kind)))

	report, err := h.service.ImportCategory(c.UserContext(), kind, options(c))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(report)
}

// HandlePreview converts an entity without storing it.
// @Summary Preview Entity
// @Description Collects and converts one entity and returns the converted record without storing it.
// @Tags scrapping
// @Produce json
// @Security ApiKeyAuth
// @Param kind path string true "Entity kind"
// @Param id path int true "External id"
// @Param skip_cache query bool false "Bypass cached source pages"
// @Success 200 {object} models.ImportResult "Converted entity"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /scrapping/preview/{kind}/{id} [get]
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return h.fail(c, l, errors.NewInvalidRequest("invalid id %q", c.Params("id")))
	}

	res, err := h.service.Preview(c.UserContext(), models.EntityKind(c.Params("kind")), id, options(c))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(res)
}

// HandleReport returns an archived job report.
// @Summary Get Job Report
// @Description Returns the report of a finished import job.
// @Tags scrapping
// @Produce json
// @Security ApiKeyAuth
// @Param job path string true "Job id"
// @Success 200 {object} models.BatchResult "Job report"
// @Failure 404 {object} map[string]string "Not found"
// @Router /scrapping/reports/{job} [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Report(c.UserContext(), c.Params("job"))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(report)
}

// HandleListTypes lists the source type registry.
// @Summary List Source Types
// @Description Lists source item types seen by the classifier with their decision.
// @Tags scrapping
// @Produce json
// @Security ApiKeyAuth
// @Param decision query string false "Filter by decision (allowed, blocked, pending)"
// @Success 200 {array} models.SourceType "Source types"
// @Failure 503 {object} map[string]string "Registry not configured"
// @Router /scrapping/types [get]
func (h *Handler) HandleListTypes(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	types, err := h.service.Types(c.UserContext(), c.Query("decision"))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(types)
}

// HandleSetType allows or blocks a source type.
// @Summary Set Source Type Decision
// @Description Allows a source item type for a kind, blocks it, or resets it to pending.
// @Tags scrapping
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Source type id"
// @Param request body TypeDecisionRequest true "Decision"
// @Success 204 "Updated"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /scrapping/types/{id} [put]
func (h *Handler) HandleSetType(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return h.fail(c, l, errors.NewInvalidRequest("invalid source type id %q", c.Params("id")))
	}
	var req TypeDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, l, errors.NewInvalidRequest("invalid body: %v", err))
	}

	if err := h.service.SetTypeDecision(c.UserContext(), id, req.Kind, req.Decision); err != nil {
		return h.fail(c, l, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// fail maps an error to its HTTP status.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.IsInvalidRequest(err):
		status = fiber.StatusBadRequest
	case errors.IsNotFound(err):
		status = fiber.StatusNotFound
	case errors.Is(err, errors.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, errors.ErrTimeout):
		status = fiber.StatusGatewayTimeout
	case errors.Is(err, errors.ErrServiceUnavailable):
		status = fiber.StatusServiceUnavailable
	}
	if status == fiber.StatusInternalServerError {
		l.Error("Scrapping request failed", zap.Error(err))
	} else {
		l.Debug("Scrapping request rejected", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func options(c *fiber.Ctx) Options {
	return Options{
		SkipCache:        c.QueryBool("skip_cache"),
		IncludeRelations: c.QueryBool("include_relations"),
	}
}
