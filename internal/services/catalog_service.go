package services

import (
	"context"
	"fmt"

	"github.com/danivela/cineteca/internal/models"
)

// Provider listing categories exposed by the catalog
const (
	CategoryUpcoming = "upcoming"
	CategoryTopRated = "top_rated"
)

// CatalogService orchestrates local search and remote listing endpoints.
// Single-entity lookups go through the cache-aside resolver; remote lists
// are always fetched fresh from the provider and never persisted.
type CatalogService struct {
	store    EntityStore
	provider Provider
	resolver *ResolverService
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(store EntityStore, provider Provider, resolver *ResolverService) *CatalogService {
	return &CatalogService{
		store:    store,
		provider: provider,
		resolver: resolver,
	}
}

// Search runs a local catalog search: case-insensitive title match plus
// genre membership against previously cached entities.
func (s *CatalogService) Search(ctx context.Context, kind models.Kind, filter models.Filter) (*models.Page, error) {
	filter.Normalize()

	results, err := s.store.SearchEntities(ctx, kind, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search entities: %w", err)
	}

	return &models.Page{
		Page:    filter.Page,
		Results: results,
	}, nil
}

// Popular lists the locally cached entities with the highest popularity
func (s *CatalogService) Popular(ctx context.Context, kind models.Kind) (*models.Page, error) {
	return s.Search(ctx, kind, models.Filter{})
}

// Upcoming lists the provider's upcoming entities
func (s *CatalogService) Upcoming(ctx context.Context, kind models.Kind, filter models.Filter) (*models.Page, error) {
	filter.Normalize()
	page, err := s.provider.ListCategory(ctx, kind, CategoryUpcoming, filter)
	if err != nil {
		return nil, err
	}
	return dropIncomplete(page), nil
}

// TopRated lists the provider's top rated entities
func (s *CatalogService) TopRated(ctx context.Context, kind models.Kind, filter models.Filter) (*models.Page, error) {
	filter.Normalize()
	page, err := s.provider.ListCategory(ctx, kind, CategoryTopRated, filter)
	if err != nil {
		return nil, err
	}
	return dropIncomplete(page), nil
}

// Recommendations lists the provider's recommendations for an entity.
// Always remote, bypassing the cache; nothing is persisted.
func (s *CatalogService) Recommendations(ctx context.Context, kind models.Kind, id int, filter models.Filter) (*models.Page, error) {
	filter.Normalize()
	page, err := s.provider.ListRecommendations(ctx, kind, id, filter)
	if err != nil {
		return nil, err
	}
	return dropIncomplete(page), nil
}

// Detail resolves a single entity through the cache-aside resolver
func (s *CatalogService) Detail(ctx context.Context, kind models.Kind, id int) (*models.Entity, error) {
	return s.resolver.Resolve(ctx, kind, id)
}

// youtubeEmbedURL is the template for playable embed references
const youtubeEmbedURL = "https://www.youtube.com/embed/%s"

// Watch resolves a playable video reference for an entity: the first video
// the provider reports, if it is hosted on YouTube. Anything else is a hard
// failure; there is no cached fallback for video data.
func (s *CatalogService) Watch(ctx context.Context, kind models.Kind, id int) (*models.WatchRef, error) {
	videos, err := s.provider.GetVideos(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, models.ErrVideoNotFound
	}

	first := videos[0]
	if first.Site != "YouTube" {
		return nil, models.ErrVideoNotFound
	}

	return &models.WatchRef{
		ID:  id,
		URL: fmt.Sprintf(youtubeEmbedURL, first.Key),
	}, nil
}

// dropIncomplete removes results without a poster path. The provider's own
// page/total_pages/total_results are kept as-is: they describe the upstream
// collection, so the reported totals can exceed the returned result count.
func dropIncomplete(page *models.Page) *models.Page {
	filtered := make([]models.Entity, 0, len(page.Results))
	for _, e := range page.Results {
		if e.Cacheable() {
			filtered = append(filtered, e)
		}
	}
	page.Results = filtered
	return page
}
