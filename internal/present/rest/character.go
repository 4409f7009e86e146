package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/totegamma/filmapi/internal/present/rest/presenter"
)

func (h *Handler) handleGetCharacters(c echo.Context) error {
	ctx := c.Request().Context()

	characters, err := h.characters.GetAll(ctx)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, characters)
}

func (h *Handler) handleGetCharacter(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	character, err := h.characters.GetByID(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, character)
}

func (h *Handler) handlePostCharacter(c echo.Context) error {
	ctx := c.Request().Context()

	req, err := bindBody[CharacterPostRequest](c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	created, err := h.characters.Add(ctx, req.toDomain())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, location("characters", created.ID), created)
}

func (h *Handler) handlePutCharacter(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	req, err := bindBody[CharacterPutRequest](c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.ID != id {
		return idMismatch(c, id, req.ID)
	}

	_, err = h.characters.Update(ctx, id, req.toDomain())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handlePutCharacterMovies(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	movieIDs, err := bindIDs(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	err = h.characters.UpdateMovies(ctx, id, movieIDs)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleDeleteCharacter(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	err = h.characters.Delete(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}
