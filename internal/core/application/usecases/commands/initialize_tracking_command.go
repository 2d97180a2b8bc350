package commands

import (
	"errors"

	"courier-tracker/internal/pkg/guard"
)

var ErrInitializeTrackingCommandIsNotConstructed = errors.New(
	"InitializeTrackingCommand must be created via NewInitializeTrackingCommand constructor",
)

// InitializeTrackingCommand runs the first position acquisition that decides
// whether tracking is granted. With retry set, a denied tracker is first put
// back to pending.
type InitializeTrackingCommand struct {
	retry bool

	guard guard.ConstructorGuard
}

func NewInitializeTrackingCommand(retry bool) InitializeTrackingCommand {
	return InitializeTrackingCommand{retry: retry, guard: guard.NewConstructorGuard()}
}

func (c InitializeTrackingCommand) Validate() error {
	return c.guard.Validate(ErrInitializeTrackingCommandIsNotConstructed)
}

func (c InitializeTrackingCommand) Retry() bool { return c.retry }
