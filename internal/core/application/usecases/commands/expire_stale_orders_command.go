package commands

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrExpireStaleOrdersCommandIsNotConstructed = errors.New(
		"ExpireStaleOrdersCommand must be created via NewExpireStaleOrdersCommand constructor",
	)
)

// ExpireStaleOrdersCommand represents a request to cancel orders that have
// sat in PENDING_CONFIRMATION longer than the configured window.
type ExpireStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	window time.Duration

	guard guard.ConstructorGuard
}

// NewExpireStaleOrdersCommand creates an expiry command for the given window.
// The window must be positive.
func NewExpireStaleOrdersCommand(window time.Duration) (ExpireStaleOrdersCommand, error) {
	if window <= 0 {
		return ExpireStaleOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"window",
			fmt.Errorf("%s is not a positive duration", window),
		)
	}

	return ExpireStaleOrdersCommand{
		window: window,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireStaleOrdersCommandIsNotConstructed)
}

// Window returns how long an order may await confirmation before expiry.
func (c ExpireStaleOrdersCommand) Window() time.Duration {
	return c.window
}
