package services

import (
	"context"
	"log"

	"github.com/danivela/cineteca/internal/models"
)

// PopulateService warms the local store by walking the provider's discover
// pages and resolving every listed id through the cache-aside resolver.
type PopulateService struct {
	provider Provider
	resolver *ResolverService
	logger   *log.Logger
}

// NewPopulateService creates a new PopulateService
func NewPopulateService(provider Provider, resolver *ResolverService, logger *log.Logger) *PopulateService {
	return &PopulateService{
		provider: provider,
		resolver: resolver,
		logger:   logger,
	}
}

// Populate walks discover pages for a kind until the provider reports no
// more, resolving each result. maxPages bounds the walk; 0 means no bound
// beyond what the provider reports. Individual misses are skipped.
func (s *PopulateService) Populate(ctx context.Context, kind models.Kind, maxPages int) error {
	page := 0
	for {
		page++
		if maxPages > 0 && page > maxPages {
			return nil
		}

		listing, err := s.provider.Discover(ctx, kind, models.Filter{Page: page})
		if err != nil {
			return err
		}

		for _, entity := range listing.Results {
			if _, err := s.resolver.Resolve(ctx, kind, entity.ID); err != nil {
				s.logger.Printf("Skipping %s %d during populate: %v", kind, entity.ID, err)
			}
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		s.logger.Printf("Populated %s page %d/%d (%d results)", kind, listing.Page, listing.TotalPages, len(listing.Results))

		if listing.TotalPages <= page || len(listing.Results) == 0 {
			return nil
		}
	}
}
