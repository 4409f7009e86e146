package rest

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/totegamma/filmapi/internal/domain"
	"github.com/totegamma/filmapi/internal/present/rest/presenter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Request is a client message on the realtime socket.
type Request struct {
	Type  string        `json:"type"`
	Kinds []domain.Kind `json:"kinds"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	if !h.signal.Enabled() {
		return presenter.Unavailable(c, "realtime events are disabled")
	}

	log := h.log.With(zap.String("module", "socket"))

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error("Failed to upgrade WebSocket", zap.Error(err))
		return err
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	filter := make(chan []domain.Kind)
	output := make(chan domain.Event)

	go func() {
		err := h.signal.Realtime(ctx, filter, output)
		if err != nil {
			log.Error("realtime subscription failed", zap.Error(err))
		}
		cancel()
	}()

	go func() {
		defer cancel()
		for {
			var req Request
			err := ws.ReadJSON(&req)
			if err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						log.Debug("WebSocket closed", zap.Error(wsErr))
					}
				} else if ctx.Err() == nil {
					log.Error("Error reading message", zap.Error(err))
				}
				return
			}

			switch req.Type {
			case "listen":
				invalid := false
				for _, kind := range req.Kinds {
					if !kind.Valid() {
						invalid = true
					}
				}
				if invalid {
					log.Info("Ignoring listen request with unknown kinds", zap.Any("kinds", req.Kinds))
					continue
				}
				select {
				case filter <- req.Kinds:
					log.Debug("Socket subscribe", zap.Any("kinds", req.Kinds))
				case <-ctx.Done():
					return
				}
			case "h": // heartbeat
			default:
				log.Info("Unknown request type", zap.String("type", req.Type))
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-output:
			err := ws.WriteJSON(event)
			if err != nil {
				log.Error("Error writing message", zap.Error(err))
				return nil
			}
		}
	}
}
