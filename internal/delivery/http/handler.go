package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cabfare/backend/internal/domain"
	"github.com/cabfare/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	comparisons *usecase.ComparisonService
	chat        *usecase.ChatService
}

// NewHandler creates a new HTTP handler. Either service may be nil, in
// which case its endpoints answer 503.
func NewHandler(comparisons *usecase.ComparisonService, chat *usecase.ChatService) *Handler {
	return &Handler{
		comparisons: comparisons,
		chat:        chat,
	}
}

// compareRequest uses pointers so a 0 coordinate is not read as missing
type compareRequest struct {
	PickupLat  *float64 `json:"pickup_lat" binding:"required"`
	PickupLng  *float64 `json:"pickup_lng" binding:"required"`
	DropoffLat *float64 `json:"dropoff_lat" binding:"required"`
	DropoffLng *float64 `json:"dropoff_lng" binding:"required"`
}

type chatRequest struct {
	Message      string           `json:"message" binding:"required"`
	History      []domain.Message `json:"history" binding:"omitempty,dive"`
	ComparisonID string           `json:"comparison_id,omitempty"`
}

type chatResponse struct {
	Reply   string           `json:"reply"`
	History []domain.Message `json:"history"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cabfare-backend",
		"version": "1.0.0",
	})
}

// CompareFares handles POST /api/v1/fares/compare
func (h *Handler) CompareFares(c *gin.Context) {
	if h.comparisons == nil {
		respondError(c, http.StatusServiceUnavailable, "fare comparison not configured")
		return
	}

	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "pickup_lat, pickup_lng, dropoff_lat and dropoff_lng are required numbers")
		return
	}

	result, err := h.comparisons.Compare(c.Request.Context(), domain.Trip{
		PickupLat:  *req.PickupLat,
		PickupLng:  *req.PickupLng,
		DropoffLat: *req.DropoffLat,
		DropoffLng: *req.DropoffLng,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetComparison handles GET /api/v1/fares/comparisons/:id
func (h *Handler) GetComparison(c *gin.Context) {
	if h.comparisons == nil {
		respondError(c, http.StatusServiceUnavailable, "fare comparison not configured")
		return
	}

	result, err := h.comparisons.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SummarizeComparison handles POST /api/v1/fares/comparisons/:id/summary
func (h *Handler) SummarizeComparison(c *gin.Context) {
	if h.comparisons == nil || h.chat == nil {
		respondError(c, http.StatusServiceUnavailable, "assistant not configured")
		return
	}

	result, err := h.comparisons.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comparison_id": result.ID,
		"summary":       h.chat.Summarize(c.Request.Context(), result),
	})
}

// Chat handles POST /api/v1/chat. The caller owns the history and gets it
// back with this turn appended.
func (h *Handler) Chat(c *gin.Context) {
	if h.chat == nil {
		respondError(c, http.StatusServiceUnavailable, "assistant not configured")
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "message is required and history roles must be user or assistant")
		return
	}

	var comparison *domain.ComparisonResult
	if req.ComparisonID != "" {
		if h.comparisons == nil {
			respondError(c, http.StatusServiceUnavailable, "fare comparison not configured")
			return
		}
		result, err := h.comparisons.Lookup(c.Request.Context(), req.ComparisonID)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		comparison = result
	}

	reply := h.chat.Respond(c.Request.Context(), req.Message, req.History, comparison)

	history := make([]domain.Message, 0, len(req.History)+2)
	history = append(history, req.History...)
	history = append(history,
		domain.Message{Role: domain.RoleUser, Content: req.Message},
		domain.Message{Role: domain.RoleAssistant, Content: reply},
	)

	c.JSON(http.StatusOK, chatResponse{Reply: reply, History: history})
}

// PickupETAs handles GET /api/v1/eta?lat=&lng=
func (h *Handler) PickupETAs(c *gin.Context) {
	if h.comparisons == nil {
		respondError(c, http.StatusServiceUnavailable, "fare comparison not configured")
		return
	}

	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		respondError(c, http.StatusBadRequest, "lat and lng query parameters must be numbers")
		return
	}

	etas, err := h.comparisons.PickupETAs(c.Request.Context(), lat, lng)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"etas": etas})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondDomainError maps domain errors to HTTP statuses
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrComparisonNotFound):
		respondError(c, http.StatusNotFound, "comparison not found or expired")
	case errors.Is(err, domain.ErrMalformedPayload):
		respondError(c, http.StatusBadGateway, err.Error())
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}
