package rest

import (
	"context"
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/totegamma/filmapi/internal/present/rest/presenter"
	"github.com/totegamma/filmapi/internal/service"
	"github.com/totegamma/filmapi/internal/usecase"
)

const apiPrefix = "/api/v1"

// Pinger reports whether the backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	characters *usecase.CharacterUsecase
	movies     *usecase.MovieUsecase
	franchises *usecase.FranchiseUsecase
	signal     *service.SignalService
	store      Pinger
	log        *zap.Logger
}

func NewHandler(
	characters *usecase.CharacterUsecase,
	movies *usecase.MovieUsecase,
	franchises *usecase.FranchiseUsecase,
	signal *service.SignalService,
	store Pinger,
	log *zap.Logger,
) *Handler {
	return &Handler{
		characters: characters,
		movies:     movies,
		franchises: franchises,
		signal:     signal,
		store:      store,
		log:        log,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.handleHealth)
	e.GET("/realtime", h.handleRealtime)

	api := e.Group(apiPrefix)

	api.GET("/characters", h.handleGetCharacters)
	api.GET("/characters/:id", h.handleGetCharacter)
	api.POST("/characters", h.handlePostCharacter)
	api.PUT("/characters/:id", h.handlePutCharacter)
	api.PUT("/characters/:id/movies", h.handlePutCharacterMovies)
	api.DELETE("/characters/:id", h.handleDeleteCharacter)

	api.GET("/movies", h.handleGetMovies)
	api.GET("/movies/:id", h.handleGetMovie)
	api.GET("/movies/:id/characters", h.handleGetMovieCharacters)
	api.POST("/movies", h.handlePostMovie)
	api.PUT("/movies/:id", h.handlePutMovie)
	api.PUT("/movies/:id/characters", h.handlePutMovieCharacters)
	api.DELETE("/movies/:id", h.handleDeleteMovie)

	api.GET("/franchises", h.handleGetFranchises)
	api.GET("/franchises/:id", h.handleGetFranchise)
	api.GET("/franchises/:id/movies", h.handleGetFranchiseMovies)
	api.GET("/franchises/:id/characters", h.handleGetFranchiseCharacters)
	api.POST("/franchises", h.handlePostFranchise)
	api.PUT("/franchises/:id", h.handlePutFranchise)
	api.PUT("/franchises/:id/movies", h.handlePutFranchiseMovies)
	api.DELETE("/franchises/:id", h.handleDeleteFranchise)
}

func (h *Handler) handleHealth(c echo.Context) error {
	err := h.store.Ping(c.Request().Context())
	if err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		return presenter.Unavailable(c, "database unavailable")
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return id, nil
}

// bindBody decodes and validates a JSON request body.
func bindBody[T any](c echo.Context) (T, error) {
	var req T
	err := new(echo.DefaultBinder).BindBody(c, &req)
	if err != nil {
		return req, err
	}
	err = validate.Struct(req)
	return req, err
}

// bindIDs decodes a JSON array of ids. A missing body or a null is rejected.
func bindIDs(c echo.Context) ([]int64, error) {
	var ids []int64
	err := new(echo.DefaultBinder).BindBody(c, &ids)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		return nil, fmt.Errorf("expected a JSON array of ids")
	}
	return ids, nil
}

func location(kind string, id int64) string {
	return fmt.Sprintf("%s/%s/%d", apiPrefix, kind, id)
}

func idMismatch(c echo.Context, want, got int64) error {
	return presenter.BadRequestMessage(c, fmt.Sprintf("body id %d does not match path id %d", got, want))
}
