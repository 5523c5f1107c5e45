package services

import (
	"context"
	"errors"
	"log"

	"github.com/danivela/cineteca/internal/models"
)

// EntityStore is the storage port for catalog entities. GetEntity returns
// models.ErrNotFound on a miss; InsertEntity is insert-if-absent, so
// concurrent writers for the same id are harmless.
type EntityStore interface {
	GetEntity(ctx context.Context, kind models.Kind, id int) (*models.Entity, error)
	InsertEntity(ctx context.Context, entity *models.Entity) error
	SearchEntities(ctx context.Context, kind models.Kind, filter models.Filter) ([]models.Entity, error)
}

// ResolverService implements cache-aside lookup of a single entity: the
// local store is checked first and the provider is only consulted on a
// miss. It is the only component that writes entities into the store.
type ResolverService struct {
	store    EntityStore
	provider Provider
	logger   *log.Logger
}

// NewResolverService creates a new ResolverService
func NewResolverService(store EntityStore, provider Provider, logger *log.Logger) *ResolverService {
	return &ResolverService{
		store:    store,
		provider: provider,
		logger:   logger,
	}
}

// Resolve returns the entity for (kind, id), from the store when present
// (no freshness check) and from the provider otherwise. Provider results
// with a poster path are persisted before returning; results without one
// are returned but never cached. Provider failures of any sort degrade to
// models.ErrNotFound: resolution is a best-effort lookup and callers treat
// a missing entity as a normal outcome.
func (s *ResolverService) Resolve(ctx context.Context, kind models.Kind, id int) (*models.Entity, error) {
	cached, err := s.store.GetEntity(ctx, kind, id)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	fetched, err := s.provider.GetEntity(ctx, kind, id)
	if err != nil {
		// Deliberate policy: upstream failures (unavailable, invalid
		// payload, upstream 404) are all reported as a plain miss.
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.Printf("Provider lookup for %s %d failed, treating as missing: %v", kind, id, err)
		}
		return nil, models.ErrNotFound
	}

	if !fetched.Cacheable() {
		// Exists upstream but has no poster; serve it without caching
		return fetched, nil
	}

	if err := s.store.InsertEntity(ctx, fetched); err != nil {
		return nil, err
	}

	return fetched, nil
}
