package model

// Movie mirrors a row of the `film` table plus the read-time relations the
// catalog service attaches before returning it.  Description, ReleaseYear and
// Rating are nullable columns and therefore pointers; a nil value serializes
// as an omitted JSON field.
//
// Fields:
//  ID          – film.film_id, assigned by the database.
//  Title       – film.title, the only mandatory column on create.
//  Description – film.description (nullable).
//  ReleaseYear – film.release_year (nullable).
//  Rating      – film.rating, one of G, PG, PG-13, R, NC-17 (nullable).
//  Genre       – category attached at read time via film_category (may be nil).
//  Actors      – actors attached at read time via film_actor.
//  RentalCount – derived rental aggregate, recomputed on every read.
type Movie struct {
	ID          uint64  `json:"id"`           // film.film_id
	Title       string  `json:"title"`        // film.title
	Description *string `json:"description"`  // film.description (nullable)
	ReleaseYear *int    `json:"release_year"` // film.release_year (nullable)
	Rating      *string `json:"rating"`       // film.rating (nullable)
	Genre       *Genre  `json:"genre"`        // attached at read time
	Actors      []Actor `json:"actors"`       // attached at read time
	RentalCount int64   `json:"rental_count"` // derived, never stored
}
