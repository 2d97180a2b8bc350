package commands

import (
	"context"
)

// LogoutCommandHandler tears the session down. Logging out twice is not an error.
type LogoutCommandHandler struct {
	sessions SessionKeeper
}

func NewLogoutCommandHandler(sessions SessionKeeper) LogoutCommandHandler {
	return LogoutCommandHandler{sessions: sessions}
}

func (h LogoutCommandHandler) Handle(ctx context.Context, command LogoutCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	return h.sessions.Teardown(ctx)
}
