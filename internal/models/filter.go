package models

// Filter is a structured catalog filter. Zero-valued fields impose no
// constraint.
type Filter struct {
	Query    string  `json:"query"`
	Genres   []int32 `json:"genres"`
	Language string  `json:"language"`
	Page     int     `json:"page"`
	ID       int     `json:"id"`
}

// Normalize clamps the page to a usable value. Services call this before
// building provider queries or store lookups.
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
}
