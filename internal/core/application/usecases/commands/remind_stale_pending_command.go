package commands

import (
	"errors"
	"time"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrRemindStalePendingCommandIsNotConstructed = errors.New(
	"RemindStalePendingCommand must be created via NewRemindStalePendingCommand constructor",
)

// RemindStalePendingCommand requests reminders for deliveries that have been
// waiting for an agent longer than the given duration.
type RemindStalePendingCommand struct { //nolint:recvcheck //using for validation
	staleAfter time.Duration

	guard guard.ConstructorGuard
}

// NewRemindStalePendingCommand creates a command to remind staff about
// deliveries pending longer than staleAfter.
func NewRemindStalePendingCommand(staleAfter time.Duration) (RemindStalePendingCommand, error) {
	cmd := RemindStalePendingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setStaleAfter(staleAfter); err != nil {
		return RemindStalePendingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemindStalePendingCommand) Validate() error {
	return c.guard.Validate(ErrRemindStalePendingCommandIsNotConstructed)
}

// StaleAfter returns how long a delivery may stay pending before it is
// considered stale.
func (c RemindStalePendingCommand) StaleAfter() time.Duration {
	return c.staleAfter
}

func (c *RemindStalePendingCommand) setStaleAfter(staleAfter time.Duration) error {
	if staleAfter <= 0 {
		return errs.NewValueIsInvalidError("staleAfter")
	}

	c.staleAfter = staleAfter
	return nil
}
