package commands

import (
	"errors"

	"courier-tracker/internal/pkg/guard"
)

var ErrRefreshFeedCommandIsNotConstructed = errors.New(
	"RefreshFeedCommand must be created via NewRefreshFeedCommand constructor",
)

// RefreshFeedCommand reloads the courier's orders from the backend. It runs on
// start and on every manual refresh.
type RefreshFeedCommand struct {
	guard guard.ConstructorGuard
}

func NewRefreshFeedCommand() RefreshFeedCommand {
	return RefreshFeedCommand{guard: guard.NewConstructorGuard()}
}

func (c RefreshFeedCommand) Validate() error {
	return c.guard.Validate(ErrRefreshFeedCommandIsNotConstructed)
}
