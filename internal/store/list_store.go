package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danivela/cineteca/internal/models"
)

// ListStore persists per-user lists in PostgreSQL. Membership lives in one
// row per reference, so add and remove are single atomic statements rather
// than a read-modify-write of a whole list document. Two concurrent adds
// for the same user cannot clobber each other's membership.
type ListStore struct {
	db *pgxpool.Pool
}

// NewListStore creates a new ListStore
func NewListStore(db *pgxpool.Pool) *ListStore {
	return &ListStore{db: db}
}

// AddListItem appends a reference to the user's list, creating the list on
// first use. Re-adding an existing member is a no-op and keeps the
// original insertion position.
func (s *ListStore) AddListItem(ctx context.Context, email string, kind models.Kind, id int) error {
	if _, err := s.db.Exec(ctx, `
		INSERT INTO user_lists (email) VALUES ($1)
		ON CONFLICT (email) DO NOTHING
	`, email); err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}

	if _, err := s.db.Exec(ctx, `
		INSERT INTO list_items (email, kind, entity_id) VALUES ($1, $2, $3)
		ON CONFLICT (email, kind, entity_id) DO NOTHING
	`, email, kind, id); err != nil {
		return fmt.Errorf("failed to add list item: %w", err)
	}

	return nil
}

// RemoveListItem deletes a reference from the user's list. Removing a
// non-member is a no-op.
func (s *ListStore) RemoveListItem(ctx context.Context, email string, kind models.Kind, id int) error {
	if _, err := s.db.Exec(ctx, `
		DELETE FROM list_items
		WHERE email = $1 AND kind = $2 AND entity_id = $3
	`, email, kind, id); err != nil {
		return fmt.Errorf("failed to remove list item: %w", err)
	}

	return nil
}

// HasList reports whether a list record exists for the user. Lists are
// never deleted, so an emptied list still exists.
func (s *ListStore) HasList(ctx context.Context, email string) (bool, error) {
	var count int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM user_lists WHERE email = $1
	`, email).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check list: %w", err)
	}

	return count > 0, nil
}

// GetList retrieves the user's list with every reference hydrated into a
// full entity, in insertion order. References whose entity is missing from
// the store drop out via the join. Returns models.ErrNotFound when the
// list was never created.
func (s *ListStore) GetList(ctx context.Context, email string) (*models.UserList, error) {
	exists, err := s.HasList(ctx, email)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrNotFound
	}

	query := `
		SELECT e.kind, e.id, e.title, e.popularity, e.poster_path, e.backdrop_path,
		       e.genre_ids, e.original_language, e.vote_average, e.vote_count, e.overview, e.release_date
		FROM list_items li
		JOIN entities e ON e.kind = li.kind AND e.id = li.entity_id
		WHERE li.email = $1
		ORDER BY li.position ASC
	`

	rows, err := s.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query list items: %w", err)
	}
	defer rows.Close()

	list := &models.UserList{
		Email:  email,
		Movies: []models.Entity{},
		Series: []models.Entity{},
	}
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list item: %w", err)
		}
		if entity.Kind == models.KindSeries {
			list.Series = append(list.Series, *entity)
		} else {
			list.Movies = append(list.Movies, *entity)
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating list items: %w", err)
	}

	return list, nil
}
