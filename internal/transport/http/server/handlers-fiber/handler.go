// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"pull-request-notifier/internal/notify"
	"pull-request-notifier/internal/transport/ws"
	"pull-request-notifier/internal/usecase"

	"go.uber.org/zap"
)

// Handler serves the webhook and socket endpoints.
type Handler struct {
	log      *zap.SugaredLogger
	uc       usecase.InterfaceUsecase
	notifier *notify.Notifier
	hub      *ws.Hub
}

// NewHandler constructs the HTTP delivery layer.
func NewHandler(log *zap.SugaredLogger, uc usecase.InterfaceUsecase, notifier *notify.Notifier, hub *ws.Hub) *Handler {
	return &Handler{
		log:      log,
		uc:       uc,
		notifier: notifier,
		hub:      hub,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func errorResponse(msg string) errorBody {
	return errorBody{Error: msg}
}
