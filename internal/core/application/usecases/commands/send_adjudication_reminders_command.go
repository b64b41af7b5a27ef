package commands

import (
	"errors"

	"procurement/internal/pkg/guard"
)

var ErrSendAdjudicationRemindersCommandIsNotConstructed = errors.New(
	"SendAdjudicationRemindersCommand must be created via NewSendAdjudicationRemindersCommand constructor",
)

// SendAdjudicationRemindersCommand asks for a reminder about every order whose bidding
// window closed while it is still waiting for an award.
type SendAdjudicationRemindersCommand struct {
	guard guard.ConstructorGuard
}

func NewSendAdjudicationRemindersCommand() SendAdjudicationRemindersCommand {
	return SendAdjudicationRemindersCommand{guard: guard.NewConstructorGuard()}
}

func (c SendAdjudicationRemindersCommand) Validate() error {
	return c.guard.Validate(ErrSendAdjudicationRemindersCommandIsNotConstructed)
}
