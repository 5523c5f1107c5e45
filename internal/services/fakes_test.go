package services_test

import (
	"context"
	"fmt"

	"github.com/danivela/cineteca/internal/models"
)

// fakeProvider is an in-memory Provider double with call counters
type fakeProvider struct {
	entities  map[string]*models.Entity
	entityErr error

	page    *models.Page
	pageErr error

	videos    []models.Video
	videosErr error

	discoverPages []*models.Page

	getCalls      int
	categoryCalls int
	recCalls      int
	discoverCalls int
	videoCalls    int
}

func entityKey(kind models.Kind, id int) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

func (p *fakeProvider) GetEntity(ctx context.Context, kind models.Kind, id int) (*models.Entity, error) {
	p.getCalls++
	if p.entityErr != nil {
		return nil, p.entityErr
	}
	e, ok := p.entities[entityKey(kind, id)]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (p *fakeProvider) ListCategory(ctx context.Context, kind models.Kind, category string, filter models.Filter) (*models.Page, error) {
	p.categoryCalls++
	if p.pageErr != nil {
		return nil, p.pageErr
	}
	return p.page, nil
}

func (p *fakeProvider) ListRecommendations(ctx context.Context, kind models.Kind, id int, filter models.Filter) (*models.Page, error) {
	p.recCalls++
	if p.pageErr != nil {
		return nil, p.pageErr
	}
	return p.page, nil
}

func (p *fakeProvider) Discover(ctx context.Context, kind models.Kind, filter models.Filter) (*models.Page, error) {
	p.discoverCalls++
	if p.pageErr != nil {
		return nil, p.pageErr
	}
	if len(p.discoverPages) > 0 {
		idx := filter.Page - 1
		if idx < 0 || idx >= len(p.discoverPages) {
			return &models.Page{Page: filter.Page}, nil
		}
		return p.discoverPages[idx], nil
	}
	return p.page, nil
}

func (p *fakeProvider) GetVideos(ctx context.Context, kind models.Kind, id int) ([]models.Video, error) {
	p.videoCalls++
	if p.videosErr != nil {
		return nil, p.videosErr
	}
	return p.videos, nil
}

// fakeEntityStore is an in-memory EntityStore double
type fakeEntityStore struct {
	entities      map[string]models.Entity
	searchResults []models.Entity

	getCalls    int
	insertCalls int
	searchCalls int
}

func newFakeEntityStore() *fakeEntityStore {
	return &fakeEntityStore{entities: make(map[string]models.Entity)}
}

func (s *fakeEntityStore) GetEntity(ctx context.Context, kind models.Kind, id int) (*models.Entity, error) {
	s.getCalls++
	e, ok := s.entities[entityKey(kind, id)]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := e
	return &copied, nil
}

func (s *fakeEntityStore) InsertEntity(ctx context.Context, e *models.Entity) error {
	s.insertCalls++
	key := entityKey(e.Kind, e.ID)
	if _, ok := s.entities[key]; !ok {
		s.entities[key] = *e
	}
	return nil
}

func (s *fakeEntityStore) SearchEntities(ctx context.Context, kind models.Kind, filter models.Filter) ([]models.Entity, error) {
	s.searchCalls++
	return s.searchResults, nil
}

// fakeListStore is an in-memory ListStore double with per-element membership
type listRef struct {
	kind models.Kind
	id   int
}

type fakeListStore struct {
	entities *fakeEntityStore
	lists    map[string][]listRef
}

func newFakeListStore(entities *fakeEntityStore) *fakeListStore {
	return &fakeListStore{
		entities: entities,
		lists:    make(map[string][]listRef),
	}
}

func (s *fakeListStore) AddListItem(ctx context.Context, email string, kind models.Kind, id int) error {
	refs, ok := s.lists[email]
	if !ok {
		refs = []listRef{}
	}
	for _, ref := range refs {
		if ref.kind == kind && ref.id == id {
			s.lists[email] = refs
			return nil
		}
	}
	s.lists[email] = append(refs, listRef{kind: kind, id: id})
	return nil
}

func (s *fakeListStore) RemoveListItem(ctx context.Context, email string, kind models.Kind, id int) error {
	refs := s.lists[email]
	kept := refs[:0]
	for _, ref := range refs {
		if ref.kind != kind || ref.id != id {
			kept = append(kept, ref)
		}
	}
	s.lists[email] = kept
	return nil
}

func (s *fakeListStore) HasList(ctx context.Context, email string) (bool, error) {
	_, ok := s.lists[email]
	return ok, nil
}

func (s *fakeListStore) GetList(ctx context.Context, email string) (*models.UserList, error) {
	refs, ok := s.lists[email]
	if !ok {
		return nil, models.ErrNotFound
	}

	list := &models.UserList{
		Email:  email,
		Movies: []models.Entity{},
		Series: []models.Entity{},
	}
	for _, ref := range refs {
		e, ok := s.entities.entities[entityKey(ref.kind, ref.id)]
		if !ok {
			continue
		}
		if ref.kind == models.KindSeries {
			list.Series = append(list.Series, e)
		} else {
			list.Movies = append(list.Movies, e)
		}
	}
	return list, nil
}

func strptr(s string) *string {
	return &s
}
