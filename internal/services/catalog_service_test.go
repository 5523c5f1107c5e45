package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danivela/cineteca/internal/models"
	"github.com/danivela/cineteca/internal/services"
)

func newCatalog(store *fakeEntityStore, provider *fakeProvider) *services.CatalogService {
	resolver := services.NewResolverService(store, provider, testLogger())
	return services.NewCatalogService(store, provider, resolver)
}

func providerPage(total int, missingPosters int) *models.Page {
	page := &models.Page{
		Page:         1,
		TotalPages:   12,
		TotalResults: 230,
	}
	for i := 0; i < total; i++ {
		e := models.Entity{ID: i + 1, Kind: models.KindMovie, Title: "Movie"}
		if i >= missingPosters {
			e.PosterPath = strptr("/poster.jpg")
		}
		page.Results = append(page.Results, e)
	}
	return page
}

func TestUpcomingDropsPosterlessButKeepsTotals(t *testing.T) {
	provider := &fakeProvider{page: providerPage(20, 3)}
	catalog := newCatalog(newFakeEntityStore(), provider)

	page, err := catalog.Upcoming(context.Background(), models.KindMovie, models.Filter{})
	require.NoError(t, err)

	assert.Len(t, page.Results, 17)
	assert.Equal(t, 12, page.TotalPages)
	assert.Equal(t, 230, page.TotalResults)
}

func TestRemoteListFailurePropagates(t *testing.T) {
	provider := &fakeProvider{pageErr: models.ErrProviderUnavailable}
	catalog := newCatalog(newFakeEntityStore(), provider)

	_, err := catalog.TopRated(context.Background(), models.KindSeries, models.Filter{})
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
}

func TestRecommendationsBypassCache(t *testing.T) {
	store := newFakeEntityStore()
	provider := &fakeProvider{page: providerPage(5, 0)}
	catalog := newCatalog(store, provider)

	page, err := catalog.Recommendations(context.Background(), models.KindMovie, 42, models.Filter{})
	require.NoError(t, err)

	assert.Len(t, page.Results, 5)
	assert.Equal(t, 1, provider.recCalls)
	// Recommendation listings are never persisted
	assert.Equal(t, 0, store.insertCalls)
	assert.Empty(t, store.entities)
}

func TestSearchUsesLocalStoreOnly(t *testing.T) {
	store := newFakeEntityStore()
	store.searchResults = []models.Entity{
		{ID: 1, Kind: models.KindMovie, Title: "Local Hit", PosterPath: strptr("/a.jpg")},
	}
	provider := &fakeProvider{}
	catalog := newCatalog(store, provider)

	page, err := catalog.Search(context.Background(), models.KindMovie, models.Filter{Query: "local"})
	require.NoError(t, err)

	assert.Len(t, page.Results, 1)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, provider.categoryCalls)
	assert.Equal(t, 0, provider.getCalls)
}

func TestDetailGoesThroughResolver(t *testing.T) {
	store := newFakeEntityStore()
	provider := &fakeProvider{
		entities: map[string]*models.Entity{
			entityKey(models.KindMovie, 3): {
				ID:         3,
				Kind:       models.KindMovie,
				Title:      "Resolved",
				PosterPath: strptr("/r.jpg"),
			},
		},
	}
	catalog := newCatalog(store, provider)

	entity, err := catalog.Detail(context.Background(), models.KindMovie, 3)
	require.NoError(t, err)
	assert.Equal(t, "Resolved", entity.Title)
	// Resolver persisted it on the way through
	assert.Equal(t, 1, store.insertCalls)
}

func TestWatchResolvesYouTubeEmbed(t *testing.T) {
	provider := &fakeProvider{
		videos: []models.Video{
			{Key: "dQw4w9WgXcQ", Site: "YouTube", Type: "Trailer"},
			{Key: "other", Site: "YouTube"},
		},
	}
	catalog := newCatalog(newFakeEntityStore(), provider)

	ref, err := catalog.Watch(context.Background(), models.KindMovie, 42)
	require.NoError(t, err)
	assert.Equal(t, 42, ref.ID)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", ref.URL)
}

func TestWatchNonYouTubeIsHardFailure(t *testing.T) {
	provider := &fakeProvider{
		videos: []models.Video{{Key: "abc", Site: "Vimeo"}},
	}
	catalog := newCatalog(newFakeEntityStore(), provider)

	_, err := catalog.Watch(context.Background(), models.KindMovie, 42)
	assert.ErrorIs(t, err, models.ErrVideoNotFound)
}

func TestWatchNoVideos(t *testing.T) {
	provider := &fakeProvider{}
	catalog := newCatalog(newFakeEntityStore(), provider)

	_, err := catalog.Watch(context.Background(), models.KindSeries, 8)
	assert.ErrorIs(t, err, models.ErrVideoNotFound)
}

func TestWatchProviderFailurePropagates(t *testing.T) {
	provider := &fakeProvider{videosErr: models.ErrProviderUnavailable}
	catalog := newCatalog(newFakeEntityStore(), provider)

	_, err := catalog.Watch(context.Background(), models.KindMovie, 42)
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
}
