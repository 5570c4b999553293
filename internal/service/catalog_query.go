// Package service implements the catalog's read and write operations on top
// of the repository layer. The query side owns pagination and the per-movie
// relation fan-out; the mutation side owns input validation and
// read-after-write semantics.
package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/reelstack/catalog-api/internal/model"
	"github.com/reelstack/catalog-api/internal/repository"
)

// DefaultPageSize is applied when a listing request carries no explicit
// limit. MaxPageSize caps caller-supplied limits so a listing can never
// request an unbounded window from the store.
const (
	DefaultPageSize = 100
	MaxPageSize     = 500
)

// maxEnrichInFlight caps how many movies are enriched at once. Each movie
// costs up to three concurrent store lookups, so the effective ceiling of
// in-flight queries is 3x this value; it must stay comfortably under the
// connection pool's max-open bound.
const maxEnrichInFlight = 8

// MovieReader is the read surface of the movie store consumed by the query
// service.
type MovieReader interface {
	List(ctx context.Context, f repository.MovieFilter, limit, offset int) ([]model.Movie, error)
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
	ActorsForMovie(ctx context.Context, id uint64) ([]model.Actor, error)
	GenreForMovie(ctx context.Context, id uint64) (*model.Genre, error)
	RentalCount(ctx context.Context, id uint64) (int64, error)
}

// ActorReader lists actors for the passthrough endpoint.
type ActorReader interface {
	ListActors(ctx context.Context) ([]model.Actor, error)
}

// CatalogQuery serves filtered listing and single-movie reads, attaching
// actors, genre and rental count to every movie it returns.
type CatalogQuery struct {
	movies MovieReader
	actors ActorReader
}

// NewCatalogQuery constructs a CatalogQuery over the given stores.
func NewCatalogQuery(movies MovieReader, actors ActorReader) *CatalogQuery {
	return &CatalogQuery{movies: movies, actors: actors}
}

// MoviePage is one window of a filtered listing. HasMore reports whether
// rows exist beyond the window.
type MoviePage struct {
	Items   []model.Movie
	HasMore bool
}

// List returns the page [offset, offset+limit) of movies matching the
// filter, fully enriched. A non-positive limit falls back to
// DefaultPageSize and anything above MaxPageSize is clamped down to it.
// It fetches limit+1 rows and trims the surplus to compute HasMore, so no
// second COUNT query is ever issued. Enrichment runs concurrently across
// movies, bounded by maxEnrichInFlight.
func (s *CatalogQuery) List(ctx context.Context, f repository.MovieFilter, limit, offset int) (MoviePage, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.movies.List(ctx, f, limit+1, offset)
	if err != nil {
		return MoviePage{}, err
	}
	hasMore := false
	if len(rows) > limit {
		rows = rows[:limit]
		hasMore = true
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxEnrichInFlight)
	for i := range rows {
		i := i
		g.Go(func() error {
			return s.enrich(gctx, &rows[i])
		})
	}
	if err := g.Wait(); err != nil {
		return MoviePage{}, err
	}
	return MoviePage{Items: rows, HasMore: hasMore}, nil
}

// Get returns a single enriched movie. It propagates
// repository.ErrMovieNotFound when the row is absent.
func (s *CatalogQuery) Get(ctx context.Context, id uint64) (*model.Movie, error) {
	m, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Actors is a plain passthrough listing with no enrichment.
func (s *CatalogQuery) Actors(ctx context.Context) ([]model.Actor, error) {
	return s.actors.ListActors(ctx)
}

// enrich attaches actors, genre and rental count to one movie. The three
// lookups are independent, so they run concurrently and join; latency tracks
// the slowest lookup instead of their sum. A rental-count failure degrades
// to zero because the count is a non-essential statistic; actor and genre
// failures abort the operation.
func (s *CatalogQuery) enrich(ctx context.Context, m *model.Movie) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		actors, err := s.movies.ActorsForMovie(ctx, m.ID)
		if err != nil {
			return fmt.Errorf("enrich movie %d: %w", m.ID, err)
		}
		m.Actors = actors
		return nil
	})
	g.Go(func() error {
		genre, err := s.movies.GenreForMovie(ctx, m.ID)
		if err != nil {
			return fmt.Errorf("enrich movie %d: %w", m.ID, err)
		}
		m.Genre = genre
		return nil
	})
	g.Go(func() error {
		n, err := s.movies.RentalCount(ctx, m.ID)
		if err != nil {
			m.RentalCount = 0
			return nil
		}
		m.RentalCount = n
		return nil
	})
	return g.Wait()
}
