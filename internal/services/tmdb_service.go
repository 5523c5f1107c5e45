package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/danivela/cineteca/internal/models"
)

// Provider is the outbound boundary to the remote catalog. Implementations
// return models.ErrProviderUnavailable (wrapped) on transport failures and
// models.ErrInvalidPayload when the response cannot be parsed.
type Provider interface {
	GetEntity(ctx context.Context, kind models.Kind, id int) (*models.Entity, error)
	ListCategory(ctx context.Context, kind models.Kind, category string, filter models.Filter) (*models.Page, error)
	ListRecommendations(ctx context.Context, kind models.Kind, id int, filter models.Filter) (*models.Page, error)
	Discover(ctx context.Context, kind models.Kind, filter models.Filter) (*models.Page, error)
	GetVideos(ctx context.Context, kind models.Kind, id int) ([]models.Video, error)
}

// TMDBService handles interactions with The Movie Database API
type TMDBService struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// TMDBConfig holds TMDB service configuration
type TMDBConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewTMDBService creates a new TMDB service
func NewTMDBService(cfg TMDBConfig) *TMDBService {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &TMDBService{
		client: &http.Client{
			Timeout: timeout,
		},
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
	}
}

// tmdbEntity covers both the movie and TV response shapes. Detail lookups
// carry expanded genres while list results carry genre_ids only.
type tmdbEntity struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Popularity   float64 `json:"popularity"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	GenreIDs     []int32 `json:"genre_ids"`
	Genres       []struct {
		ID int32 `json:"id"`
	} `json:"genres"`
	Language     string  `json:"original_language"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
}

// toEntity normalizes the movie/TV field split into a single tagged entity
func (t *tmdbEntity) toEntity(kind models.Kind) models.Entity {
	title := t.Title
	released := t.ReleaseDate
	if kind == models.KindSeries {
		title = t.Name
		released = t.FirstAirDate
	}
	genreIDs := t.GenreIDs
	if len(genreIDs) == 0 && len(t.Genres) > 0 {
		genreIDs = make([]int32, len(t.Genres))
		for i, g := range t.Genres {
			genreIDs[i] = g.ID
		}
	}
	return models.Entity{
		ID:           t.ID,
		Kind:         kind,
		Title:        title,
		Popularity:   t.Popularity,
		PosterPath:   t.PosterPath,
		BackdropPath: t.BackdropPath,
		GenreIDs:     genreIDs,
		Language:     t.Language,
		VoteAverage:  t.VoteAverage,
		VoteCount:    t.VoteCount,
		Overview:     t.Overview,
		ReleaseDate:  released,
	}
}

type tmdbPage struct {
	Page         int          `json:"page"`
	Results      []tmdbEntity `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

type tmdbVideos struct {
	Results []models.Video `json:"results"`
}

// doRequest performs an HTTP request against the TMDB API
func (s *TMDBService) doRequest(ctx context.Context, path string, filter models.Filter) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/%s", s.baseURL, path)
	if qs := BuildProviderQuery(filter); qs != "" {
		reqURL += "?" + qs
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", models.ErrProviderUnavailable, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", models.ErrProviderUnavailable, resp.StatusCode)
	}

	return body, nil
}

// GetEntity retrieves a single movie or series by id
func (s *TMDBService) GetEntity(ctx context.Context, kind models.Kind, id int) (*models.Entity, error) {
	path := fmt.Sprintf("%s/%d", kind.ProviderPath(), id)
	body, err := s.doRequest(ctx, path, models.Filter{})
	if err != nil {
		return nil, err
	}

	var payload tmdbEntity
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidPayload, err)
	}
	if payload.ID == 0 {
		return nil, fmt.Errorf("%w: missing id", models.ErrInvalidPayload)
	}

	entity := payload.toEntity(kind)
	return &entity, nil
}

// ListCategory retrieves one of the provider's listing endpoints
// (upcoming, top_rated, ...) for a kind
func (s *TMDBService) ListCategory(ctx context.Context, kind models.Kind, category string, filter models.Filter) (*models.Page, error) {
	path := fmt.Sprintf("%s/%s", kind.ProviderPath(), category)
	return s.fetchPage(ctx, kind, path, filter)
}

// ListRecommendations retrieves the provider's recommendations for an entity
func (s *TMDBService) ListRecommendations(ctx context.Context, kind models.Kind, id int, filter models.Filter) (*models.Page, error) {
	path := fmt.Sprintf("%s/%d/recommendations", kind.ProviderPath(), id)
	return s.fetchPage(ctx, kind, path, filter)
}

// Discover retrieves the provider's discover listing for a kind
func (s *TMDBService) Discover(ctx context.Context, kind models.Kind, filter models.Filter) (*models.Page, error) {
	path := "discover/" + kind.ProviderPath()
	return s.fetchPage(ctx, kind, path, filter)
}

func (s *TMDBService) fetchPage(ctx context.Context, kind models.Kind, path string, filter models.Filter) (*models.Page, error) {
	body, err := s.doRequest(ctx, path, filter)
	if err != nil {
		return nil, err
	}

	var payload tmdbPage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidPayload, err)
	}

	page := &models.Page{
		Page:         payload.Page,
		TotalPages:   payload.TotalPages,
		TotalResults: payload.TotalResults,
		Results:      make([]models.Entity, 0, len(payload.Results)),
	}
	for i := range payload.Results {
		page.Results = append(page.Results, payload.Results[i].toEntity(kind))
	}
	return page, nil
}

// GetVideos retrieves the provider's video list for an entity
func (s *TMDBService) GetVideos(ctx context.Context, kind models.Kind, id int) ([]models.Video, error) {
	path := fmt.Sprintf("%s/%d/videos", kind.ProviderPath(), id)
	body, err := s.doRequest(ctx, path, models.Filter{})
	if err != nil {
		return nil, err
	}

	var payload tmdbVideos
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidPayload, err)
	}
	return payload.Results, nil
}
