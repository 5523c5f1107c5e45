package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danivela/cineteca/internal/models"
)

const entityColumns = `kind, id, title, popularity, poster_path, backdrop_path,
	       genre_ids, original_language, vote_average, vote_count, overview, release_date`

// EntityStore persists catalog entities in PostgreSQL. The table acts as
// the local cache in front of the remote provider; rows are only ever
// written by the resolver.
type EntityStore struct {
	db *pgxpool.Pool
}

// NewEntityStore creates a new EntityStore
func NewEntityStore(db *pgxpool.Pool) *EntityStore {
	return &EntityStore{db: db}
}

// GetEntity retrieves an entity by (kind, id). Returns models.ErrNotFound
// on a miss.
func (s *EntityStore) GetEntity(ctx context.Context, kind models.Kind, id int) (*models.Entity, error) {
	query := `
		SELECT ` + entityColumns + `
		FROM entities
		WHERE kind = $1 AND id = $2
	`

	row := s.db.QueryRow(ctx, query, kind, id)
	entity, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	return entity, nil
}

// InsertEntity writes an entity if no row for (kind, id) exists yet.
// Concurrent inserts of the same id are harmless; the first writer wins.
func (s *EntityStore) InsertEntity(ctx context.Context, e *models.Entity) error {
	query := `
		INSERT INTO entities (kind, id, title, popularity, poster_path, backdrop_path,
		                      genre_ids, original_language, vote_average, vote_count, overview, release_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (kind, id) DO NOTHING
	`

	genreIDs := e.GenreIDs
	if genreIDs == nil {
		genreIDs = []int32{}
	}

	_, err := s.db.Exec(ctx, query,
		e.Kind,
		e.ID,
		e.Title,
		e.Popularity,
		e.PosterPath,
		e.BackdropPath,
		genreIDs,
		e.Language,
		e.VoteAverage,
		e.VoteCount,
		e.Overview,
		e.ReleaseDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entity: %w", err)
	}

	return nil
}

// SearchEntities retrieves locally cached entities matching the filter,
// ordered by popularity (ties broken by id for determinism).
func (s *EntityStore) SearchEntities(ctx context.Context, kind models.Kind, f models.Filter) ([]models.Entity, error) {
	where, args := buildSearchFilter(kind, f)

	query := `
		SELECT ` + entityColumns + `
		FROM entities
	` + where + `
		ORDER BY popularity DESC, id ASC
		LIMIT ` + fmt.Sprintf("$%d OFFSET $%d", len(args)+1, len(args)+2)

	offset := 0
	if f.Page > 1 {
		offset = (f.Page - 1) * searchPageSize
	}
	args = append(args, searchPageSize, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	var entities []models.Entity
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, *entity)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entities: %w", err)
	}

	return entities, nil
}

// rowScanner covers both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (*models.Entity, error) {
	var e models.Entity
	err := row.Scan(
		&e.Kind,
		&e.ID,
		&e.Title,
		&e.Popularity,
		&e.PosterPath,
		&e.BackdropPath,
		&e.GenreIDs,
		&e.Language,
		&e.VoteAverage,
		&e.VoteCount,
		&e.Overview,
		&e.ReleaseDate,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
