package actors

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/kenyagreatparty/kgp-backend/internal/constants"
)

// Actor is the authenticated identity attached to a request. Authorization is
// decided upstream; the membership workflow only records who reviewed what.
type Actor struct {
	ID    uuid.UUID
	Email string
	Roles []string
}

func (a *Actor) IsAdmin() bool {
	return slices.Contains(a.Roles, constants.RoleAdmin)
}

type contextKey struct{}

func NewContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

func FromContext(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(contextKey{}).(*Actor)
	return actor, ok
}
