package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/reelstack/catalog-api/internal/model"
	"github.com/reelstack/catalog-api/internal/utils"
)

// UserRepo manages persistence for user accounts.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create hashes the password, inserts the user, then re-reads and returns
// the created row so the caller observes exactly what was persisted. A
// unique-constraint violation on username maps to ErrDuplicateUsername.
func (r *UserRepo) Create(ctx context.Context, username, password string, cost int) (*model.User, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO user (username, password) VALUES (?, ?)",
		username, hash)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByUsername fetches a user by username. It returns ErrUserNotFound when
// no such user exists.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id_user, username, password FROM user WHERE username = ? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

// GetByID fetches a user by id. It returns ErrUserNotFound when no such
// user exists.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id_user, username, password FROM user WHERE id_user = ? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

// isDuplicate detects a unique-constraint violation. MySQL reports error
// 1062; SQLite (used by the test suite) reports "UNIQUE constraint failed".
func isDuplicate(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") || strings.Contains(msg, "unique constraint")
}
