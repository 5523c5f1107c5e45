package store

import (
	"fmt"

	"github.com/danivela/cineteca/internal/models"
)

// searchPageSize is the fixed page size for local listings
const searchPageSize = 50

// buildSearchFilter translates a catalog filter into a WHERE clause for the
// entities table: case-insensitive substring match on the title when a
// query is present, genre overlap when genres are given. Absent fields
// impose no constraint.
func buildSearchFilter(kind models.Kind, f models.Filter) (string, []any) {
	where := "WHERE kind = $1"
	args := []any{kind}

	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		where += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}

	if len(f.Genres) > 0 {
		args = append(args, f.Genres)
		where += fmt.Sprintf(" AND genre_ids && $%d", len(args))
	}

	return where, args
}
