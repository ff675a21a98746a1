package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tubebenders/backend/internal/domain"
	"github.com/tubebenders/backend/internal/logging"
	"github.com/tubebenders/backend/internal/ranking"
	"github.com/tubebenders/backend/internal/usecase"
)

// CatalogUsecase is the service surface the handlers need
type CatalogUsecase interface {
	List(ctx context.Context, query usecase.ListQuery) ([]domain.ScoredProduct, error)
	Product(ctx context.Context, id int) (*domain.ScoredProduct, error)
	Compare(ctx context.Context, ids []int) ([]domain.ScoredProduct, error)
	Recommend(ctx context.Context, strategy string, criteria domain.FinderCriteria) ([]domain.MatchResult, error)
	Invalidate(ctx context.Context) error
	Strategies() []string
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListResponse wraps a scored listing
type ListResponse struct {
	Count int                    `json:"count"`
	Items []domain.ScoredProduct `json:"items"`
}

// ScoreResponse is the breakdown for a single product
type ScoreResponse struct {
	ID    int                   `json:"id"`
	Name  string                `json:"name"`
	Rank  int                   `json:"rank"`
	Score domain.ScoreBreakdown `json:"score"`
}

// CompareRow is one criterion across the compared products, in item order
type CompareRow struct {
	Criterion string `json:"criterion"`
	MaxPoints int    `json:"maxPoints"`
	Points    []int  `json:"points"`
}

// CompareResponse is a side-by-side comparison table
type CompareResponse struct {
	Items []domain.ScoredProduct `json:"items"`
	Rows  []CompareRow           `json:"rows"`
}

// FinderResponse is the finder shortlist
type FinderResponse struct {
	Strategy string               `json:"strategy"`
	Count    int                  `json:"count"`
	Results  []domain.MatchResult `json:"results"`
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog CatalogUsecase
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog CatalogUsecase) *Handler {
	return &Handler{catalog: catalog}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "tubebenders-backend",
		"version": "1.0.0",
	})
}

// ListTubeBenders returns the filtered catalog, ranked by score
func (h *Handler) ListTubeBenders(c *gin.Context) {
	var filters ranking.Filters
	if err := c.ShouldBindQuery(&filters); err != nil {
		h.writeError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	items, err := h.catalog.List(c.Request.Context(), usecase.ListQuery{
		Filters: filters,
		Sort:    ranking.ParseSortOrder(c.Query("sort")),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{Count: len(items), Items: items})
}

// GetTubeBender returns one product with its score breakdown
func (h *Handler) GetTubeBender(c *gin.Context) {
	sp, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sp)
}

// GetScore returns only the score breakdown
func (h *Handler) GetScore(c *gin.Context) {
	sp, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ScoreResponse{
		ID:    sp.Product.ID,
		Name:  sp.Product.Name,
		Rank:  sp.Rank,
		Score: sp.Score,
	})
}

func (h *Handler) lookup(c *gin.Context) (*domain.ScoredProduct, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}

	sp, err := h.catalog.Product(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}
	return sp, true
}

// Compare ranks up to four products side by side
func (h *Handler) Compare(c *gin.Context) {
	ids, err := parseIDList(c.Query("ids"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	items, err := h.catalog.Compare(c.Request.Context(), ids)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CompareResponse{Items: items, Rows: compareRows(items)})
}

// ListStrategies names the finder strategies
func (h *Handler) ListStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": h.catalog.Strategies()})
}

// Finder scores the catalog against the submitted criteria
func (h *Handler) Finder(c *gin.Context) {
	var criteria domain.FinderCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		h.writeError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	strategy := c.Param("strategy")
	results, err := h.catalog.Recommend(c.Request.Context(), strategy, criteria)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, FinderResponse{Strategy: strategy, Count: len(results), Results: results})
}

// RefreshCatalog drops the cached catalog
func (h *Handler) RefreshCatalog(c *gin.Context) {
	if err := h.catalog.Invalidate(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}

// writeError maps domain errors onto HTTP status codes
func (h *Handler) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrUnknownStrategy):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid product id %q", domain.ErrInvalidRequest, raw)
	}
	return id, nil
}

// parseIDList reads "1,2,3"
func parseIDList(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: ids is required", domain.ErrInvalidRequest)
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := parseID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// compareRows pivots breakdowns into one row per criterion. Degraded
// breakdowns have different criteria, so rows are keyed by name in first-seen order.
func compareRows(items []domain.ScoredProduct) []CompareRow {
	rows := []CompareRow{}
	index := map[string]int{}

	for col, sp := range items {
		for _, cs := range sp.Score.Criteria {
			i, ok := index[cs.Name]
			if !ok {
				i = len(rows)
				index[cs.Name] = i
				rows = append(rows, CompareRow{Criterion: cs.Name, MaxPoints: cs.MaxPoints, Points: make([]int, len(items))})
			}
			rows[i].Points[col] = cs.Points
		}
	}
	return rows
}
