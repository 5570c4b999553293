// Package repository contains data access logic for the film catalog. This
// file defines the movie repository: filtered listing, single-row reads, the
// per-movie relation lookups used for enrichment, and the three mutations.
// All queries use positional `?` parameters; values are never concatenated
// into the SQL text.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/reelstack/catalog-api/internal/model"
)

// MovieRepo manages persistence for films and their read-only relations.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// NewMovie carries the columns for a film insert. Title is mandatory; the
// nullable columns stay NULL when the pointer is nil so the store applies
// its own defaults.
type NewMovie struct {
	Title       string
	Description *string
	ReleaseYear *int
	Rating      *string
}

// MovieUpdate carries a partial update. A nil pointer means "leave the
// column alone"; at least one field must be set.
type MovieUpdate struct {
	Title       *string
	Description *string
	ReleaseYear *int
	Rating      *string
}

// Empty reports whether the update carries no fields at all.
func (u MovieUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.ReleaseYear == nil && u.Rating == nil
}

// movieColumns is the select list shared by every query that scans a film
// row. Keep it in sync with scanMovie.
const movieColumns = `f.film_id, f.title, f.description, f.release_year, f.rating`

func scanMovie(row interface{ Scan(...any) error }) (model.Movie, error) {
	var (
		m    model.Movie
		desc sql.NullString
		year sql.NullInt64
		rate sql.NullString
	)
	if err := row.Scan(&m.ID, &m.Title, &desc, &year, &rate); err != nil {
		return model.Movie{}, err
	}
	if desc.Valid {
		m.Description = &desc.String
	}
	if year.Valid {
		y := int(year.Int64)
		m.ReleaseYear = &y
	}
	if rate.Valid {
		m.Rating = &rate.String
	}
	return m, nil
}

// List returns up to limit film rows matching the filter, ordered by
// film_id so a given offset window is deterministic. Rows come back bare;
// enrichment is the service's job. The category join mirrors the listing
// query's shape regardless of whether a genre filter is present.
func (r *MovieRepo) List(ctx context.Context, f MovieFilter, limit, offset int) ([]model.Movie, error) {
	cond, args := f.where()
	q := `SELECT ` + movieColumns + `
		FROM film f
		JOIN film_category fc ON fc.film_id = f.film_id
		JOIN category c ON c.category_id = fc.category_id` +
		cond + `
		ORDER BY f.film_id
		LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	out := make([]model.Movie, 0, limit)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("list movies: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return out, nil
}

// GetByID retrieves a single film row. It returns ErrMovieNotFound if there
// is no matching row.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM film f WHERE f.film_id = ?`
	m, err := scanMovie(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	return &m, nil
}

// ActorsForMovie returns the actors linked to a film through film_actor.
// A film with no actors yields an empty slice, not an error.
func (r *MovieRepo) ActorsForMovie(ctx context.Context, id uint64) ([]model.Actor, error) {
	const q = `SELECT a.actor_id, a.first_name, a.last_name
		FROM actor a
		JOIN film_actor fa ON fa.actor_id = a.actor_id
		WHERE fa.film_id = ?`
	rows, err := r.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("actors for movie %d: %w", id, err)
	}
	defer rows.Close()

	out := []model.Actor{}
	for rows.Next() {
		var a model.Actor
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
			return nil, fmt.Errorf("actors for movie %d: %w", id, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("actors for movie %d: %w", id, err)
	}
	return out, nil
}

// GenreForMovie returns the category linked to a film through
// film_category, or nil when the film has none. Absence is a valid state,
// not an error.
func (r *MovieRepo) GenreForMovie(ctx context.Context, id uint64) (*model.Genre, error) {
	const q = `SELECT c.category_id, c.name
		FROM category c
		JOIN film_category fc ON fc.category_id = c.category_id
		WHERE fc.film_id = ?
		LIMIT 1`
	var g model.Genre
	err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("genre for movie %d: %w", id, err)
	}
	return &g, nil
}

// RentalCount computes how many times a film has been rented across all
// inventory copies. A film with no inventory or rentals counts as zero.
func (r *MovieRepo) RentalCount(ctx context.Context, id uint64) (int64, error) {
	const q = `SELECT COUNT(r.rental_id)
		FROM inventory i
		JOIN rental r ON r.inventory_id = i.inventory_id
		WHERE i.film_id = ?`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("rental count for movie %d: %w", id, err)
	}
	return n, nil
}

// Create inserts a new film and returns the store-assigned id. language_id
// is fixed to 1; the schema requires it but this service does not model
// languages.
func (r *MovieRepo) Create(ctx context.Context, in NewMovie) (uint64, error) {
	const q = `INSERT INTO film (title, description, release_year, language_id, rating)
		VALUES (?, ?, ?, 1, ?)`
	res, err := r.db.ExecContext(ctx, q, in.Title, nullString(in.Description), nullInt(in.ReleaseYear), nullString(in.Rating))
	if err != nil {
		return 0, fmt.Errorf("create movie: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create movie: %w", err)
	}
	return uint64(id), nil
}

// Update applies a partial update to a film. It returns ErrNoUpdateFields
// without touching the store when the update is empty, and ErrMovieNotFound
// when no row was affected.
func (r *MovieRepo) Update(ctx context.Context, id uint64, u MovieUpdate) error {
	if u.Empty() {
		return ErrNoUpdateFields
	}

	// SET fragments and values are appended pairwise; the id is always the
	// last parameter.
	var (
		sets []string
		args []any
	)
	if u.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *u.Description)
	}
	if u.ReleaseYear != nil {
		sets = append(sets, "release_year = ?")
		args = append(args, *u.ReleaseYear)
	}
	if u.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *u.Rating)
	}
	args = append(args, id)

	q := "UPDATE film SET " + strings.Join(sets, ", ") + " WHERE film_id = ?"
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update movie %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update movie %d: %w", id, err)
	}
	if n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// Delete removes a film row and reports whether anything was deleted.
// Deleting a nonexistent id is a normal outcome, not an error.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM film WHERE film_id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete movie %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete movie %d: %w", id, err)
	}
	return n > 0, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}
