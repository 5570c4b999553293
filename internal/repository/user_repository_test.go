package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelstack/catalog-api/internal/utils"
)

// bcrypt.MinCost keeps the tests fast; production cost comes from config.
const testBcryptCost = 4

func TestUserRepoCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	u, err := repo.Create(ctx, "anna", "s3cret", testBcryptCost)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "anna", u.Username)
	// The stored credential is a bcrypt digest of the password, never the
	// password itself.
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "s3cret"))

	_, err = repo.Create(ctx, "anna", "other", testBcryptCost)
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserRepoGetByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "bob", "pw", testBcryptCost)
	require.NoError(t, err)

	u, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	// Lookup trims surrounding whitespace the same way Create does.
	u, err = repo.GetByUsername(ctx, "  bob ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepoGetByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "carol", "pw", testBcryptCost)
	require.NoError(t, err)

	u, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", u.Username)

	_, err = repo.GetByID(ctx, 424242)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
