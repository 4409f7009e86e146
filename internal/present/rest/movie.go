package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/totegamma/filmapi/internal/present/rest/presenter"
)

func (h *Handler) handleGetMovies(c echo.Context) error {
	ctx := c.Request().Context()

	movies, err := h.movies.GetAll(ctx)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, movies)
}

func (h *Handler) handleGetMovie(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	movie, err := h.movies.GetByID(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, movie)
}

func (h *Handler) handleGetMovieCharacters(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	characters, err := h.movies.GetCharacters(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, characters)
}

func (h *Handler) handlePostMovie(c echo.Context) error {
	ctx := c.Request().Context()

	req, err := bindBody[MoviePostRequest](c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	movie := req.toDomain()
	movie.FranchiseID = req.FranchiseID

	created, err := h.movies.Add(ctx, movie)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, location("movies", created.ID), created)
}

func (h *Handler) handlePutMovie(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	req, err := bindBody[MoviePutRequest](c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.ID != id {
		return idMismatch(c, id, req.ID)
	}

	_, err = h.movies.Update(ctx, id, req.toDomain())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handlePutMovieCharacters(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	characterIDs, err := bindIDs(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	err = h.movies.UpdateCharacters(ctx, id, characterIDs)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleDeleteMovie(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	err = h.movies.Delete(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}
