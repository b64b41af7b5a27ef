package order

import (
	"errors"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

// Comment is an entry of the order discussion thread. Comments are append-only.
type Comment struct {
	id         kernel.UUID
	author     Actor
	authorName string
	text       string
	createdAt  time.Time
}

// NewComment validates the author and a non-empty text.
func NewComment(id kernel.UUID, author Actor, authorName, text string, createdAt time.Time) (Comment, error) {
	text = strings.TrimSpace(text)

	var textErr, timeErr error
	if text == "" {
		textErr = errs.NewValueIsRequiredError("comment text")
	}
	if createdAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("comment time")
	}
	if err := errors.Join(id.Validate(), author.Validate(), textErr, timeErr); err != nil {
		return Comment{}, err
	}

	return Comment{
		id:         id,
		author:     author,
		authorName: strings.TrimSpace(authorName),
		text:       text,
		createdAt:  createdAt.UTC(),
	}, nil
}

func (c Comment) ID() kernel.UUID      { return c.id }
func (c Comment) Author() Actor        { return c.author }
func (c Comment) AuthorName() string   { return c.authorName }
func (c Comment) Text() string         { return c.text }
func (c Comment) CreatedAt() time.Time { return c.createdAt }
