package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danivela/cineteca/internal/models"
	"github.com/danivela/cineteca/internal/services"
)

func newTMDB(handler http.HandlerFunc) (*services.TMDBService, *httptest.Server) {
	server := httptest.NewServer(handler)
	svc := services.NewTMDBService(services.TMDBConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	return svc, server
}

func TestGetEntityMovie(t *testing.T) {
	var gotPath, gotAuth string
	svc, server := newTMDB(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{
			"id": 550,
			"title": "Fight Club",
			"popularity": 61.4,
			"poster_path": "/fc.jpg",
			"genres": [{"id": 18, "name": "Drama"}],
			"original_language": "en",
			"vote_average": 8.4,
			"vote_count": 26000,
			"overview": "An insomniac office worker...",
			"release_date": "1999-10-15"
		}`))
	})
	defer server.Close()

	entity, err := svc.GetEntity(context.Background(), models.KindMovie, 550)
	require.NoError(t, err)

	assert.Equal(t, "/movie/550", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, 550, entity.ID)
	assert.Equal(t, models.KindMovie, entity.Kind)
	assert.Equal(t, "Fight Club", entity.Title)
	require.NotNil(t, entity.PosterPath)
	assert.Equal(t, "/fc.jpg", *entity.PosterPath)
	assert.Equal(t, []int32{18}, entity.GenreIDs)
	assert.Equal(t, "1999-10-15", entity.ReleaseDate)
}

func TestGetEntitySeriesUsesTVPathAndNameFields(t *testing.T) {
	var gotPath string
	svc, server := newTMDB(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{
			"id": 1399,
			"name": "Game of Thrones",
			"poster_path": "/got.jpg",
			"first_air_date": "2011-04-17"
		}`))
	})
	defer server.Close()

	entity, err := svc.GetEntity(context.Background(), models.KindSeries, 1399)
	require.NoError(t, err)

	assert.Equal(t, "/tv/1399", gotPath)
	assert.Equal(t, "Game of Thrones", entity.Title)
	assert.Equal(t, "2011-04-17", entity.ReleaseDate)
}

func TestGetEntityUpstream404(t *testing.T) {
	svc, server := newTMDB(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	_, err := svc.GetEntity(context.Background(), models.KindMovie, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetEntityUpstream500(t *testing.T) {
	svc, server := newTMDB(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := svc.GetEntity(context.Background(), models.KindMovie, 1)
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
}

func TestGetEntityMalformedPayload(t *testing.T) {
	svc, server := newTMDB(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	defer server.Close()

	_, err := svc.GetEntity(context.Background(), models.KindMovie, 1)
	assert.ErrorIs(t, err, models.ErrInvalidPayload)
}

func TestListCategoryEncodesFilter(t *testing.T) {
	var gotQuery string
	svc, server := newTMDB(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{
			"page": 2,
			"total_pages": 10,
			"total_results": 200,
			"results": [
				{"id": 1, "title": "A", "poster_path": "/a.jpg", "genre_ids": [28]},
				{"id": 2, "title": "B", "poster_path": null}
			]
		}`))
	})
	defer server.Close()

	page, err := svc.ListCategory(context.Background(), models.KindMovie, services.CategoryUpcoming, models.Filter{
		Genres: []int32{28, 12},
		Page:   2,
	})
	require.NoError(t, err)

	assert.Equal(t, "with_genres=28,12&page=2", gotQuery)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.TotalPages)
	assert.Equal(t, 200, page.TotalResults)
	// The gateway itself does no filtering; that is the catalog's job
	require.Len(t, page.Results, 2)
	assert.Nil(t, page.Results[1].PosterPath)
}

func TestListRecommendationsPath(t *testing.T) {
	var gotPath string
	svc, server := newTMDB(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"page":1,"results":[]}`))
	})
	defer server.Close()

	_, err := svc.ListRecommendations(context.Background(), models.KindSeries, 1399, models.Filter{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, "/tv/1399/recommendations", gotPath)
}

func TestDiscoverPath(t *testing.T) {
	var gotPath string
	svc, server := newTMDB(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"page":1,"results":[]}`))
	})
	defer server.Close()

	_, err := svc.Discover(context.Background(), models.KindMovie, models.Filter{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, "/discover/movie", gotPath)
}

func TestGetVideosPath(t *testing.T) {
	var gotPath string
	svc, server := newTMDB(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"results":[{"key":"abc123","site":"YouTube","type":"Trailer"}]}`))
	})
	defer server.Close()

	videos, err := svc.GetVideos(context.Background(), models.KindMovie, 550)
	require.NoError(t, err)
	assert.Equal(t, "/movie/550/videos", gotPath)
	require.Len(t, videos, 1)
	assert.Equal(t, "abc123", videos[0].Key)
	assert.Equal(t, "YouTube", videos[0].Site)
}

func TestGetEntityConnectionRefused(t *testing.T) {
	svc := services.NewTMDBService(services.TMDBConfig{
		APIKey:  "k",
		BaseURL: "http://127.0.0.1:1",
	})

	_, err := svc.GetEntity(context.Background(), models.KindMovie, 1)
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
}
