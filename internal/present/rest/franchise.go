package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/totegamma/filmapi/internal/present/rest/presenter"
)

func (h *Handler) handleGetFranchises(c echo.Context) error {
	ctx := c.Request().Context()

	franchises, err := h.franchises.GetAll(ctx)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, franchises)
}

func (h *Handler) handleGetFranchise(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	franchise, err := h.franchises.GetByID(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, franchise)
}

func (h *Handler) handleGetFranchiseMovies(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	movies, err := h.franchises.GetMovies(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, movies)
}

func (h *Handler) handleGetFranchiseCharacters(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	characters, err := h.franchises.GetCharacters(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, characters)
}

func (h *Handler) handlePostFranchise(c echo.Context) error {
	ctx := c.Request().Context()

	req, err := bindBody[FranchisePostRequest](c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	created, err := h.franchises.Add(ctx, req.toDomain())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, location("franchises", created.ID), created)
}

func (h *Handler) handlePutFranchise(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	req, err := bindBody[FranchisePutRequest](c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.ID != id {
		return idMismatch(c, id, req.ID)
	}

	_, err = h.franchises.Update(ctx, id, req.toDomain())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handlePutFranchiseMovies(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	movieIDs, err := bindIDs(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	err = h.franchises.UpdateMovies(ctx, id, movieIDs)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleDeleteFranchise(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	err = h.franchises.Delete(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}
