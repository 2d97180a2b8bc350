package commands

import (
	"context"

	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/errs"
)

type CloseMapViewCommandHandler struct {
	views ports.MapViewRegistry
}

func NewCloseMapViewCommandHandler(views ports.MapViewRegistry) CloseMapViewCommandHandler {
	return CloseMapViewCommandHandler{views: views}
}

func (h CloseMapViewCommandHandler) Handle(_ context.Context, command CloseMapViewCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	if !h.views.Close(command.OrderID()) {
		return errs.NewObjectNotFoundError("map view", command.OrderID())
	}
	return nil
}
