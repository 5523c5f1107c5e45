package models

// Kind discriminates movies from series. Both share the same entity shape;
// the provider just serves them under different paths.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the kind is one we serve
func (k Kind) IsValid() bool {
	return k == KindMovie || k == KindSeries
}

// ProviderPath returns the path segment the remote provider uses for this kind
func (k Kind) ProviderPath() string {
	if k == KindSeries {
		return "tv"
	}
	return "movie"
}

// ParseKind maps a URL path segment to a Kind
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "movies", "movie":
		return KindMovie, true
	case "series", "tv":
		return KindSeries, true
	}
	return "", false
}

// Entity represents a movie or series from the catalog. The id is assigned
// by the provider and is stable and unique within a kind.
type Entity struct {
	ID           int     `json:"id"`
	Kind         Kind    `json:"kind"`
	Title        string  `json:"title"`
	Popularity   float64 `json:"popularity"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	GenreIDs     []int32 `json:"genre_ids"`
	Language     string  `json:"original_language"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
}

// Cacheable reports whether the entity is complete enough to persist.
// Entries without a poster are served to the caller but never written to
// the store, so placeholder metadata cannot poison the cache.
func (e *Entity) Cacheable() bool {
	return e.PosterPath != nil && *e.PosterPath != ""
}

// Page is a page of entities plus the provider's own pagination metadata.
// For remote listings the metadata is passed through unmodified even when
// results were filtered out, so the reported totals describe the upstream
// collection, not the filtered view.
type Page struct {
	Page         int      `json:"page"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
	Results      []Entity `json:"results"`
}

// Video is one playable video reference attached to an entity upstream
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// WatchRef is a resolved, playable embed reference for an entity
type WatchRef struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}
