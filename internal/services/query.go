package services

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/danivela/cineteca/internal/models"
)

// BuildProviderQuery encodes a filter into the provider's query string.
// Field order is fixed (query, with_genres, language, page) and absent
// fields are omitted entirely, never emitted with empty values. An empty
// filter produces an empty string.
func BuildProviderQuery(f models.Filter) string {
	var params []string

	if f.Query != "" {
		params = append(params, "query="+url.QueryEscape(f.Query))
	}

	if len(f.Genres) > 0 {
		ids := make([]string, len(f.Genres))
		for i, g := range f.Genres {
			ids[i] = strconv.Itoa(int(g))
		}
		params = append(params, "with_genres="+strings.Join(ids, ","))
	}

	if f.Language != "" {
		params = append(params, "language="+url.QueryEscape(f.Language))
	}

	if f.Page > 0 {
		params = append(params, "page="+strconv.Itoa(f.Page))
	}

	return strings.Join(params, "&")
}
