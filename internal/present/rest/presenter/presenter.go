package presenter

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/totegamma/filmapi/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func requestID(c echo.Context) string {
	if id, ok := c.Request().Context().Value(domain.RequestIDCtxKey).(string); ok {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

// Created answers 201 with a Location header pointing at the new resource.
func Created(c echo.Context, location string, payload any) error {
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.JSON(http.StatusCreated, payload)
}

func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func BadRequest(c echo.Context, err error) error {
	zap.L().Debug("bad request", zap.String("requestId", requestID(c)), zap.Error(err))
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	zap.L().Debug("bad request", zap.String("requestId", requestID(c)), zap.String("reason", msg))
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	zap.L().Debug("not found", zap.String("requestId", requestID(c)), zap.String("reason", msg))
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

func Unavailable(c echo.Context, msg string) error {
	zap.L().Warn("service unavailable", zap.String("requestId", requestID(c)), zap.String("reason", msg))
	return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: msg})
}

func InternalError(c echo.Context, err error) error {
	zap.L().Error("internal error", zap.String("requestId", requestID(c)), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// Error maps a usecase error onto its status code.
func Error(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return NotFound(c, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return BadRequest(c, err)
	default:
		return InternalError(c, err)
	}
}
