package commands

import (
	"errors"
	"strings"

	"courier-tracker/internal/pkg/errs"
	"courier-tracker/internal/pkg/guard"
)

var ErrLoginCommandIsNotConstructed = errors.New(
	"LoginCommand must be created via NewLoginCommand constructor",
)

// LoginCommand exchanges credentials for a session.
//
// Example:
//
//	cmd, err := NewLoginCommand("luis@example.com", "secret")
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type LoginCommand struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

// NewLoginCommand validates that both credentials are present.
func NewLoginCommand(email, password string) (LoginCommand, error) {
	cmd := LoginCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setEmail(email),
		cmd.setPassword(password),
	); err != nil {
		return LoginCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Email() string    { return c.email }
func (c LoginCommand) Password() string { return c.password }

func (c *LoginCommand) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	c.email = email
	return nil
}

func (c *LoginCommand) setPassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	c.password = password
	return nil
}
