package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/danivela/cineteca/internal/models"
)

// ListStore is the storage port for user lists. Membership changes are
// atomic per element (set add / set remove) rather than a read-modify-write
// of the whole list document, so concurrent mutations of the same list
// cannot clobber each other. AddListItem creates the list row lazily.
type ListStore interface {
	AddListItem(ctx context.Context, email string, kind models.Kind, id int) error
	RemoveListItem(ctx context.Context, email string, kind models.Kind, id int) error
	HasList(ctx context.Context, email string) (bool, error)
	GetList(ctx context.Context, email string) (*models.UserList, error)
}

// ListService maintains per-user lists of movie and series references.
// Add and remove are idempotent; reads hydrate references into full
// entities from the local store.
type ListService struct {
	store    ListStore
	resolver *ResolverService
}

// NewListService creates a new ListService
func NewListService(store ListStore, resolver *ResolverService) *ListService {
	return &ListService{
		store:    store,
		resolver: resolver,
	}
}

// Add puts an entity reference on the user's list and returns the hydrated
// list. The entity is resolved first, so by the time the reference lands it
// is normally cached and hydration will find it. Adding an id that is
// already a member is a no-op. The list is created on first add.
func (s *ListService) Add(ctx context.Context, email string, kind models.Kind, id int) (*models.UserList, error) {
	if _, err := s.resolver.Resolve(ctx, kind, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve %s %d: %w", kind, id, err)
	}

	if err := s.store.AddListItem(ctx, email, kind, id); err != nil {
		return nil, fmt.Errorf("failed to add list item: %w", err)
	}

	return s.store.GetList(ctx, email)
}

// Remove takes an entity reference off the user's list and returns the
// hydrated list. Removing a non-member id is a no-op, but removing from a
// list that was never created is models.ErrNotFound. A list that reaches
// zero members stays around.
func (s *ListService) Remove(ctx context.Context, email string, kind models.Kind, id int) (*models.UserList, error) {
	exists, err := s.store.HasList(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check list: %w", err)
	}
	if !exists {
		return nil, models.ErrNotFound
	}

	if err := s.store.RemoveListItem(ctx, email, kind, id); err != nil {
		return nil, fmt.Errorf("failed to remove list item: %w", err)
	}

	return s.store.GetList(ctx, email)
}

// Get returns the user's hydrated list. References whose entities are no
// longer in the store are silently omitted.
func (s *ListService) Get(ctx context.Context, email string) (*models.UserList, error) {
	return s.store.GetList(ctx, email)
}
