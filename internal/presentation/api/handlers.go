package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/mshogin/travel-assistant/internal/domain/models"
	"github.com/mshogin/travel-assistant/internal/domain/services"
	"github.com/mshogin/travel-assistant/internal/infrastructure/config"
	"github.com/mshogin/travel-assistant/internal/infrastructure/logging"
)

// maxRequestBytes bounds the size of a trip request body.
const maxRequestBytes = 64 << 10

// Handler handles HTTP requests for the travel assistant API.
type Handler struct {
	planner services.Planner
	config  *config.Config
	logger  *logging.StructuredLogger
}

// NewHandler creates a new Handler instance.
func NewHandler(planner services.Planner, cfg *config.Config, logger *logging.StructuredLogger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		planner: planner,
		config:  cfg,
		logger:  logger,
	}
}

// CreateItinerary handles POST /v1/itineraries.
// Only an undecodable body is rejected; every other problem is replaced by a default.
func (h *Handler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	trip := models.TripRequest{
		PreferredLanguage: h.config.Workflow.DefaultLanguage,
		IncludeTips:       h.config.Workflow.IncludeTips,
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	if err := decoder.Decode(&trip); err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(trip.PreferredLanguage) == "" {
		trip.PreferredLanguage = h.config.Workflow.DefaultLanguage
	}

	result := h.planner.Plan(r.Context(), trip)

	h.logger.Info("itinerary served", map[string]interface{}{
		"request_id": middleware.GetReqID(r.Context()),
		"run_id":     result.RunID,
		"degraded":   result.Degraded(),
	})

	h.sendJSON(w, http.StatusOK, result)
}

// ListLanguages handles GET /v1/languages.
func (h *Handler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, map[string]interface{}{
		"languages": models.SupportedLanguages,
		"default":   h.config.Workflow.DefaultLanguage,
	})
}

// ListInterests handles GET /v1/interests.
func (h *Handler) ListInterests(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, map[string]interface{}{
		"interests": models.Interests,
		"budgets":   models.Budgets,
	})
}

// Health handles GET /health endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *Handler) sendJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", err)
	}
}

// sendErrorResponse sends an error response.
func (h *Handler) sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	h.sendJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
