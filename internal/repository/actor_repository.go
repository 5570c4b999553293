package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reelstack/catalog-api/internal/model"
)

// ActorRepo manages read access to the `actor` table. Actors are never
// written by this service.
type ActorRepo struct {
	db *sql.DB
}

// NewActorRepo constructs an ActorRepo with the given DB handle.
func NewActorRepo(db *sql.DB) *ActorRepo {
	return &ActorRepo{db: db}
}

// ListActors returns every actor, ordered by id. When the table is empty it
// returns an empty slice and nil error.
func (r *ActorRepo) ListActors(ctx context.Context) ([]model.Actor, error) {
	const q = `SELECT actor_id, first_name, last_name FROM actor ORDER BY actor_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	defer rows.Close()

	out := []model.Actor{}
	for rows.Next() {
		var a model.Actor
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
			return nil, fmt.Errorf("list actors: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	return out, nil
}
