package model

// Genre mirrors a row of the `category` table.  A movie's genre is derived
// through the `film_category` join table at read time; genres are never
// created or mutated by this service.
type Genre struct {
	ID   uint64 `json:"id"`   // category.category_id
	Name string `json:"name"` // category.name
}
