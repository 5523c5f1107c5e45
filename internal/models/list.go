package models

// UserList is a user's personal list, hydrated: stored reference ids are
// expanded into full entities. A reference whose entity no longer resolves
// is omitted rather than failing the read.
type UserList struct {
	Email  string   `json:"email"`
	Movies []Entity `json:"movies"`
	Series []Entity `json:"series"`
}
