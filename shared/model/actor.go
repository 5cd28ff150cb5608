package model

import (
	"context"
	"rackcity/shared/constant"
)

// Actor is the resolved identity of the caller. It is passed explicitly into
// every service operation instead of being read from ambient request state.
type Actor struct {
	ID    string
	Email string
	Role  string
}

func (a Actor) IsZero() bool {
	return a.ID == ""
}

func (a Actor) IsAdmin() bool {
	return a.Role == constant.RoleAdmin
}

// ActorFromContext builds an Actor from the identity the auth middleware
// stored on the request context. Returns a zero Actor for anonymous callers.
func ActorFromContext(ctx context.Context) Actor {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Actor{
		ID:    id,
		Email: email,
		Role:  role,
	}
}
