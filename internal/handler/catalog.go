// Package handler exposes HTTP handlers for the catalog API. This file
// defines the movie and actor endpoints: public filtered browsing plus the
// authenticated mutations. Handlers translate repository sentinel errors
// into status codes and never leak raw store errors to clients.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelstack/catalog-api/internal/middleware"
	"github.com/reelstack/catalog-api/internal/queue"
	"github.com/reelstack/catalog-api/internal/repository"
	"github.com/reelstack/catalog-api/internal/service"
)

// CatalogHandler bundles the query and mutation services behind the movie
// and actor endpoints.
type CatalogHandler struct {
	Query *service.CatalogQuery
	Mut   *service.CatalogMutation
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(q *service.CatalogQuery, m *service.CatalogMutation) *CatalogHandler {
	return &CatalogHandler{Query: q, Mut: m}
}

// ----- DTOs -----

type createMovieReq struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ReleaseYear *int    `json:"release_year"`
	Rating      *string `json:"rating"`
}

type updateMovieReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ReleaseYear *int    `json:"release_year"`
	Rating      *string `json:"rating"`
}

// Movies handles GET /v1/movies. Recognized query parameters: genre,
// rating, limit (default 100), offset (default 0). Anything else is
// ignored. The response carries the enriched page and a has_more flag.
func (h *CatalogHandler) Movies(c echo.Context) error {
	limit, err := queryInt(c, "limit", service.DefaultPageSize)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid offset"})
	}
	filter := repository.MovieFilter{
		GenreName: c.QueryParam("genre"),
		Rating:    c.QueryParam("rating"),
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	page, err := h.Query.List(ctx, filter, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": page.Items, "has_more": page.HasMore})
}

// Movie handles GET /v1/movies/:id.
func (h *CatalogHandler) Movie(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	m, err := h.Query.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, m)
}

// Actors handles GET /v1/actors. Plain listing, no enrichment.
func (h *CatalogHandler) Actors(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	actors, err := h.Query.Actors(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": actors})
}

// CreateMovie handles POST /v1/movies. RequireAuth runs before this
// handler; by the time we get here a principal is guaranteed.
func (h *CatalogHandler) CreateMovie(c echo.Context) error {
	var req createMovieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	m, err := h.Mut.Create(ctx, repository.NewMovie{
		Title:       req.Title,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
		Rating:      req.Rating,
	})
	if err != nil {
		if errors.Is(err, repository.ErrTitleRequired) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}

	h.publishEvent(c, queue.ActionCreated, m.ID, m.Title)
	return c.JSON(http.StatusCreated, m)
}

// UpdateMovie handles PATCH /v1/movies/:id. Only fields present in the body
// are written; an empty body is a validation error regardless of whether
// the id exists.
func (h *CatalogHandler) UpdateMovie(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateMovieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	m, err := h.Mut.Update(ctx, id, repository.MovieUpdate{
		Title:       req.Title,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
		Rating:      req.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoUpdateFields):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no update fields provided"})
		case errors.Is(err, repository.ErrMovieNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}

	h.publishEvent(c, queue.ActionUpdated, m.ID, m.Title)
	return c.JSON(http.StatusOK, m)
}

// DeleteMovie handles DELETE /v1/movies/:id. Deleting a nonexistent movie
// is reported through the result body, not a 404.
func (h *CatalogHandler) DeleteMovie(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	res, err := h.Mut.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
	if res.Success {
		h.publishEvent(c, queue.ActionDeleted, id, "")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    res.Success,
		"deleted_id": res.DeletedID,
		"message":    res.Message,
	})
}

// publishEvent emits a catalog mutation event. Delivery is best effort; a
// broker outage must not fail the mutation that already committed.
func (h *CatalogHandler) publishEvent(c echo.Context, action string, movieID uint64, title string) {
	uid, _ := middleware.Principal(c)
	ev := queue.MovieEvent{
		Action:     action,
		MovieID:    movieID,
		Title:      title,
		UserID:     uid,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	// The publisher logs its own failures; nothing to do with the error here.
	_ = queue.PublishMovieEvent(c.Request().Context(), ev)
}

// reqContext bounds handler work against a slow store.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// queryInt parses an optional integer query parameter.
func queryInt(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
