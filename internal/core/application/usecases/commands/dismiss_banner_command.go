package commands

import (
	"errors"

	"courier-tracker/internal/pkg/guard"
)

var ErrDismissBannerCommandIsNotConstructed = errors.New(
	"DismissBannerCommand must be created via NewDismissBannerCommand constructor",
)

// DismissBannerCommand hides the location-denied banner.
type DismissBannerCommand struct {
	guard guard.ConstructorGuard
}

func NewDismissBannerCommand() DismissBannerCommand {
	return DismissBannerCommand{guard: guard.NewConstructorGuard()}
}

func (c DismissBannerCommand) Validate() error {
	return c.guard.Validate(ErrDismissBannerCommandIsNotConstructed)
}
