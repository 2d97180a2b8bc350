package commands

import (
	"errors"

	"courier-tracker/internal/pkg/guard"
)

var ErrLogoutCommandIsNotConstructed = errors.New(
	"LogoutCommand must be created via NewLogoutCommand constructor",
)

// LogoutCommand ends the device session.
type LogoutCommand struct {
	guard guard.ConstructorGuard
}

func NewLogoutCommand() LogoutCommand {
	return LogoutCommand{guard: guard.NewConstructorGuard()}
}

func (c LogoutCommand) Validate() error {
	return c.guard.Validate(ErrLogoutCommandIsNotConstructed)
}
