package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"uuidy/internal/classify"
	"uuidy/internal/metrics"
	"uuidy/internal/models"
	"uuidy/internal/validation"
)

// ClassifyHandler handles UUID classification requests via JSON API.
type ClassifyHandler struct {
	svc *classify.Service
}

// NewClassifyHandler creates a new classify handler.
func NewClassifyHandler(svc *classify.Service) *ClassifyHandler {
	return &ClassifyHandler{svc: svc}
}

// Get classifies a UUID provided as a path parameter.
func (h *ClassifyHandler) Get(c fiber.Ctx) error {
	return h.classify(c, c.Params("uuid"))
}

// Post classifies a UUID provided in the request body.
func (h *ClassifyHandler) Post(c fiber.Ctx) error {
	var body struct {
		UUID string `json:"uuid"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	return h.classify(c, body.UUID)
}

func (h *ClassifyHandler) classify(c fiber.Ctx, raw string) error {
	rec, err := h.svc.Classify(c.Context(), raw)
	if err != nil {
		if errors.Is(err, validation.ErrInvalidUUID) {
			metrics.RecordLookup(models.OutcomeInvalid)
			return jsonError(c, fiber.StatusBadRequest,
				"invalid UUID format: expected 32 hex characters with optional hyphens")
		}
		return jsonError(c, fiber.StatusInternalServerError, "classification failed")
	}

	outcome := models.OutcomeCacheMiss
	if rec.Cached {
		outcome = models.OutcomeCacheHit
	}
	metrics.RecordLookup(outcome)

	return jsonSuccess(c, rec)
}
