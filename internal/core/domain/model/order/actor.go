package order

import (
	"errors"
	"fmt"
	"strings"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

// Role is the part an actor plays in the procurement workflow.
type Role string

const (
	RoleBuyer    Role = "BUYER"
	RoleAdmin    Role = "ADMIN"
	RoleSupplier Role = "SUPPLIER"
)

// RoleFromString parses a role code, case-insensitively.
func RoleFromString(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate returns an error for anything but BUYER, ADMIN or SUPPLIER.
func (r Role) Validate() error {
	switch r {
	case RoleBuyer, RoleAdmin, RoleSupplier:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// Actor identifies who performs an operation. Every command carries one explicitly;
// it ends up in comments and status change events.
type Actor struct {
	id   kernel.UUID
	role Role
}

// NewActor validates both the identifier and the role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// MustActor is NewActor for fixtures. It panics on invalid input.
func MustActor(id kernel.UUID, role Role) Actor {
	a, err := NewActor(id, role)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Actor) ID() kernel.UUID { return a.id }
func (a Actor) Role() Role      { return a.role }

// Validate rejects the zero Actor.
func (a Actor) Validate() error {
	return errors.Join(a.id.Validate(), a.role.Validate())
}
