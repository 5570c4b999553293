package service

import (
	"context"
	"strings"

	"github.com/reelstack/catalog-api/internal/model"
	"github.com/reelstack/catalog-api/internal/repository"
)

// MovieWriter is the write surface of the movie store consumed by the
// mutation service. GetByID is included for the read-after-write re-read.
type MovieWriter interface {
	Create(ctx context.Context, in repository.NewMovie) (uint64, error)
	Update(ctx context.Context, id uint64, u repository.MovieUpdate) error
	Delete(ctx context.Context, id uint64) (bool, error)
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
}

// CatalogMutation validates and executes create, update and delete against
// the film catalog. All entry points assume the caller has already been
// authenticated; enforcement lives in the middleware, not here.
type CatalogMutation struct {
	movies MovieWriter
}

// NewCatalogMutation constructs a CatalogMutation over the given store.
func NewCatalogMutation(movies MovieWriter) *CatalogMutation {
	return &CatalogMutation{movies: movies}
}

// DeleteResult is the structured outcome of a delete. A missing movie is a
// normal result (Success false, nil DeletedID), never an error.
type DeleteResult struct {
	Success   bool
	DeletedID *uint64
	Message   string
}

// Create inserts a new movie and returns the row as re-read from the store,
// so the caller observes store-assigned defaults rather than an insert
// echo. Title is the only mandatory field.
func (s *CatalogMutation) Create(ctx context.Context, in repository.NewMovie) (*model.Movie, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, repository.ErrTitleRequired
	}
	id, err := s.movies.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.movies.GetByID(ctx, id)
}

// Update applies a partial update and returns the updated row as re-read
// from the store. An empty update fails with repository.ErrNoUpdateFields
// before any statement is issued, regardless of whether the id exists; a
// zero-row update fails with repository.ErrMovieNotFound.
func (s *CatalogMutation) Update(ctx context.Context, id uint64, u repository.MovieUpdate) (*model.Movie, error) {
	if u.Empty() {
		return nil, repository.ErrNoUpdateFields
	}
	if err := s.movies.Update(ctx, id, u); err != nil {
		return nil, err
	}
	return s.movies.GetByID(ctx, id)
}

// Delete removes a movie and reports the outcome as a value. Only a store
// failure is returned as an error.
func (s *CatalogMutation) Delete(ctx context.Context, id uint64) (DeleteResult, error) {
	ok, err := s.movies.Delete(ctx, id)
	if err != nil {
		return DeleteResult{}, err
	}
	if !ok {
		return DeleteResult{Success: false, Message: "movie not found"}, nil
	}
	return DeleteResult{Success: true, DeletedID: &id, Message: "movie deleted"}, nil
}
