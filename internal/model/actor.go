package model

// Actor mirrors a row of the `actor` table.  Actors relate to movies
// many-to-many through `film_actor` and are read-only for this service.
type Actor struct {
	ID        uint64 `json:"id"`         // actor.actor_id
	FirstName string `json:"first_name"` // actor.first_name
	LastName  string `json:"last_name"`  // actor.last_name
}
