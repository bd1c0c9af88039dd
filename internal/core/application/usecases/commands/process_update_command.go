package commands

import (
	"errors"

	"tracker/internal/core/domain/model/update"
	"tracker/internal/pkg/guard"
)

var (
	ErrProcessUpdateCommandIsNotConstructed = errors.New(
		"ProcessUpdateCommand must be created via NewProcessUpdateCommand constructor",
	)
)

// ProcessUpdateCommand carries one parsed update record.
//
// Example:
//
//	cmd, err := NewProcessUpdateCommand("shipped,S1000,1690000000000,1690200000000")
//	if err != nil {
//	    return err // malformed record
//	}
//	snap, err := handler.Handle(ctx, cmd)
type ProcessUpdateCommand struct { //nolint:recvcheck //using for validation
	event update.Event

	guard guard.ConstructorGuard
}

// NewProcessUpdateCommand parses record; see update.Parse for the accepted format.
func NewProcessUpdateCommand(record string) (ProcessUpdateCommand, error) {
	evt, err := update.Parse(record)
	if err != nil {
		return ProcessUpdateCommand{}, err
	}

	return NewProcessUpdateCommandFromEvent(evt), nil
}

// NewProcessUpdateCommandFromEvent wraps an already parsed event.
func NewProcessUpdateCommandFromEvent(evt update.Event) ProcessUpdateCommand {
	return ProcessUpdateCommand{
		event: evt,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through a constructor.
func (c ProcessUpdateCommand) Validate() error {
	return c.guard.Validate(ErrProcessUpdateCommandIsNotConstructed)
}

// Event returns the parsed update.
func (c ProcessUpdateCommand) Event() update.Event {
	return c.event
}
