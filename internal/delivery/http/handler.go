package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daniel-soulful/giftly-new/internal/domain"
)

// IdeasUsecase is the selection engine surface the handlers depend on
type IdeasUsecase interface {
	GetIdeas(ctx context.Context, req *domain.SelectionRequest) (*domain.SelectionResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	ideas IdeasUsecase
}

// NewHandler creates a new HTTP handler
func NewHandler(ideas IdeasUsecase) *Handler {
	return &Handler{ideas: ideas}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"service": "giftly-backend",
		"version": "1.0.0",
	})
}

// GetIdeas handles gift idea requests.
// Query parameters: age, gender, budget, notes, exclude (comma-separated
// ids), debug. An empty ideas list is a successful response, never an error.
func (h *Handler) GetIdeas(c *gin.Context) {
	if h.ideas == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"ok":    false,
			"error": "ideas service not configured",
		})
		return
	}

	req, err := parseSelectionRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}

	result, err := h.ideas.GetIdeas(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{
				"ok":    false,
				"error": "invalid request parameters",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":    false,
			"error": "failed to fetch gift ideas",
		})
		return
	}

	response := gin.H{
		"ok":    true,
		"ideas": result.Ideas,
	}
	if c.Query("debug") == "1" {
		response["debug"] = result.Trace
	}
	c.JSON(http.StatusOK, response)
}

// parseSelectionRequest maps query parameters onto a SelectionRequest
func parseSelectionRequest(c *gin.Context) (*domain.SelectionRequest, error) {
	age, err := intQuery(c, "age")
	if err != nil {
		return nil, err
	}
	budget, err := intQuery(c, "budget")
	if err != nil {
		return nil, err
	}

	var excludeIDs []string
	if raw := c.Query("exclude"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				excludeIDs = append(excludeIDs, id)
			}
		}
	}

	return &domain.SelectionRequest{
		Age:        age,
		Gender:     strings.ToLower(strings.TrimSpace(c.Query("gender"))),
		Budget:     budget,
		Notes:      strings.TrimSpace(c.Query("notes")),
		ExcludeIDs: excludeIDs,
	}, nil
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.ErrInvalidRequest
	}
	return n, nil
}
