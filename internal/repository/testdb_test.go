package repository

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// The repositories speak plain positional-parameter SQL, so the tests run
// against an in-memory SQLite database with a sakila-shaped schema instead
// of requiring a MySQL server.
const testSchema = `
CREATE TABLE film (
    film_id      INTEGER PRIMARY KEY AUTOINCREMENT,
    title        TEXT NOT NULL,
    description  TEXT,
    release_year INTEGER,
    language_id  INTEGER NOT NULL DEFAULT 1,
    rating       TEXT
);
CREATE TABLE category (
    category_id INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT NOT NULL
);
CREATE TABLE film_category (
    film_id     INTEGER NOT NULL,
    category_id INTEGER NOT NULL
);
CREATE TABLE actor (
    actor_id   INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name  TEXT NOT NULL
);
CREATE TABLE film_actor (
    actor_id INTEGER NOT NULL,
    film_id  INTEGER NOT NULL
);
CREATE TABLE inventory (
    inventory_id INTEGER PRIMARY KEY AUTOINCREMENT,
    film_id      INTEGER NOT NULL
);
CREATE TABLE rental (
    rental_id    INTEGER PRIMARY KEY AUTOINCREMENT,
    inventory_id INTEGER NOT NULL
);
CREATE TABLE user (
    id_user  INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL
);
`

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// In-memory SQLite is per-connection; a second pooled connection would
	// see an empty database.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

// seedFilm inserts a film linked to a category and returns its id.
func seedFilm(t *testing.T, db *sql.DB, title, rating string, year int, categoryID uint64) uint64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO film (title, description, release_year, language_id, rating) VALUES (?, ?, ?, 1, ?)",
		title, title+" description", year, rating)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO film_category (film_id, category_id) VALUES (?, ?)", id, categoryID)
	require.NoError(t, err)
	return uint64(id)
}

func seedCategory(t *testing.T, db *sql.DB, name string) uint64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO category (name) VALUES (?)", name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

func seedActor(t *testing.T, db *sql.DB, first, last string, filmIDs ...uint64) uint64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO actor (first_name, last_name) VALUES (?, ?)", first, last)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	for _, fid := range filmIDs {
		_, err = db.Exec("INSERT INTO film_actor (actor_id, film_id) VALUES (?, ?)", id, fid)
		require.NoError(t, err)
	}
	return uint64(id)
}

// seedRentals creates one inventory copy for the film and n rentals of it.
func seedRentals(t *testing.T, db *sql.DB, filmID uint64, n int) {
	t.Helper()
	res, err := db.Exec("INSERT INTO inventory (film_id) VALUES (?)", filmID)
	require.NoError(t, err)
	invID, err := res.LastInsertId()
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err = db.Exec("INSERT INTO rental (inventory_id) VALUES (?)", invID)
		require.NoError(t, err)
	}
}
