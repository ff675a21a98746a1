package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/tubebenders/backend/internal/domain"
	"github.com/tubebenders/backend/internal/logging"
	"github.com/tubebenders/backend/internal/metrics"
	"github.com/tubebenders/backend/internal/ranking"
	"github.com/tubebenders/backend/internal/recommend"
)

const (
	// CatalogCacheKey holds the full product list
	CatalogCacheKey = "catalog:products"

	// MaxCompare is the largest comparison table
	MaxCompare = 4
)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	CacheTTL time.Duration
	Source   string // labels catalog fetch error metrics ("file" or "remote")
	Registry *recommend.Registry
}

// ListQuery selects and orders a catalog listing
type ListQuery struct {
	Filters ranking.Filters
	Sort    ranking.SortOrder
}

// CatalogService serves scored listings, comparisons and finder matches
// from a cached product catalog.
type CatalogService struct {
	repo     domain.ProductRepository
	cache    domain.CacheRepository
	registry *recommend.Registry
	cacheTTL time.Duration
	source   string
	log      zerolog.Logger
}

// NewCatalogService creates a new catalog service with dependencies
func NewCatalogService(
	repo domain.ProductRepository,
	cache domain.CacheRepository,
	config CatalogServiceConfig,
) *CatalogService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	registry := config.Registry
	if registry == nil {
		registry = recommend.DefaultRegistry()
	}

	source := config.Source
	if source == "" {
		source = "file"
	}

	return &CatalogService{
		repo:     repo,
		cache:    cache,
		registry: registry,
		cacheTTL: cacheTTL,
		source:   source,
		log:      logging.With().Str("component", "catalog-service").Logger(),
	}
}

// Strategies lists the registered finder strategies
func (s *CatalogService) Strategies() []string {
	return s.registry.Names()
}

// Products returns the catalog, reading through the cache.
// Cache failures are logged and never fail the request.
func (s *CatalogService) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.cache.Get(ctx, CatalogCacheKey, &products)
	switch {
	case err == nil:
		metrics.RecordCacheLookup(true)
		return products, nil
	case errors.Is(err, domain.ErrCacheMiss):
		metrics.RecordCacheLookup(false)
	default:
		metrics.RecordCacheLookup(false)
		s.log.Warn().Err(err).Msg("catalog cache read failed")
	}

	products, err = s.repo.List(ctx)
	if err != nil {
		metrics.CatalogFetchErrors.WithLabelValues(s.source).Inc()
		if errors.Is(err, domain.ErrCatalogUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	if err := s.cache.Set(ctx, CatalogCacheKey, products, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache write failed")
	}

	s.log.Debug().Int("count", len(products)).Str("source", s.source).Msg("catalog loaded")
	return products, nil
}

// List returns the filtered catalog ranked by score, then reordered by query.Sort
func (s *CatalogService) List(ctx context.Context, query ListQuery) ([]domain.ScoredProduct, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}

	ranked := ranking.FilterAndRank(products, query.Filters)
	s.reportDegraded(ranked)

	return ranking.SortScored(ranked, query.Sort), nil
}

// Product returns one product with its breakdown and its rank in the full catalog
func (s *CatalogService) Product(ctx context.Context, id int) (*domain.ScoredProduct, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}

	if sp, ok := rankedProduct(products, id); ok {
		s.reportDegraded([]domain.ScoredProduct{sp})
		return &sp, nil
	}

	// The cached catalog may predate the product, so ask the source directly.
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		metrics.CatalogFetchErrors.WithLabelValues(s.source).Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	if p == nil || p.ID != id {
		return nil, domain.ErrProductNotFound
	}

	s.log.Info().Int("product_id", id).Msg("product missing from cached catalog")
	if err := s.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("stale catalog cache not dropped")
	}

	sp, _ := rankedProduct(append(slices.Clone(products), *p), id)
	s.reportDegraded([]domain.ScoredProduct{sp})
	return &sp, nil
}

func rankedProduct(products []domain.Product, id int) (domain.ScoredProduct, bool) {
	for _, sp := range ranking.RankScored(products) {
		if sp.Product.ID == id {
			return sp, true
		}
	}
	return domain.ScoredProduct{}, false
}

// Compare ranks the requested products against each other
func (s *CatalogService) Compare(ctx context.Context, ids []int) ([]domain.ScoredProduct, error) {
	if len(ids) == 0 || len(ids) > MaxCompare {
		return nil, fmt.Errorf("%w: compare takes 1 to %d products, got %d", domain.ErrInvalidRequest, MaxCompare, len(ids))
	}

	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	selected := make([]domain.Product, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("%w: product %d listed twice", domain.ErrInvalidRequest, id)
		}
		seen[id] = true

		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", domain.ErrProductNotFound, id)
		}
		selected = append(selected, p)
	}

	ranked := ranking.RankScored(selected)
	s.reportDegraded(ranked)
	return ranked, nil
}

// Recommend runs a finder strategy over the catalog and returns the shortlist
func (s *CatalogService) Recommend(ctx context.Context, strategy string, criteria domain.FinderCriteria) ([]domain.MatchResult, error) {
	matcher, err := s.registry.Get(strategy)
	if err != nil {
		return nil, err
	}

	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}

	results := matcher.Evaluate(products, criteria)
	eliminated := recommend.Eliminated(results)
	metrics.RecordFinder(matcher.Name(), eliminated)

	shortlist := recommend.Shortlist(results)
	s.log.Debug().
		Str("strategy", matcher.Name()).
		Int("candidates", len(products)).
		Int("eliminated", eliminated).
		Int("shortlisted", len(shortlist)).
		Msg("finder run")

	return shortlist, nil
}

// Invalidate drops the cached catalog so the next read hits the repository
func (s *CatalogService) Invalidate(ctx context.Context) error {
	if err := s.cache.Delete(ctx, CatalogCacheKey); err != nil {
		return fmt.Errorf("invalidate catalog cache: %w", err)
	}
	s.log.Info().Msg("catalog cache invalidated")
	return nil
}

func (s *CatalogService) reportDegraded(items []domain.ScoredProduct) {
	for _, sp := range items {
		if sp.Score.Degraded {
			metrics.DegradedScores.Inc()
			s.log.Warn().Int("product_id", sp.Product.ID).Msg("score estimated from rating")
		}
	}
}
