package commands

import (
	"errors"
	"strings"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrAddCommentCommandIsNotConstructed = errors.New(
	"AddCommentCommand must be created via NewAddCommentCommand constructor",
)

// AddCommentCommand appends a message to the order's comment thread. Comments are accepted
// in every status, including DELIVERED and REJECTED.
type AddCommentCommand struct {
	orderTarget
	commentID  kernel.UUID
	authorName string
	text       string

	guard guard.ConstructorGuard
}

func NewAddCommentCommand(
	orderID kernel.UUID,
	commentID kernel.UUID,
	actor order.Actor,
	authorName string,
	text string,
) (AddCommentCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if err != nil {
		return AddCommentCommand{}, err
	}
	if err := commentID.Validate(); err != nil {
		return AddCommentCommand{}, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return AddCommentCommand{}, errs.NewValueIsRequiredError("text")
	}

	return AddCommentCommand{
		orderTarget: target,
		commentID:   commentID,
		authorName:  strings.TrimSpace(authorName),
		text:        text,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AddCommentCommand) Validate() error {
	return c.guard.Validate(ErrAddCommentCommandIsNotConstructed)
}

func (c AddCommentCommand) CommentID() kernel.UUID { return c.commentID }
func (c AddCommentCommand) AuthorName() string     { return c.authorName }
func (c AddCommentCommand) Text() string           { return c.text }
