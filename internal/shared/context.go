package shared

import (
	"context"

	"github.com/google/uuid"
)

type ownerContextKey struct{}

// ContextWithOwner stores the authenticated owner id in context.
func ContextWithOwner(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerContextKey{}, ownerID)
}

// OwnerFromContext extracts the authenticated owner id from context.
// The zero UUID means no owner is attached.
func OwnerFromContext(ctx context.Context) uuid.UUID {
	ownerID, _ := ctx.Value(ownerContextKey{}).(uuid.UUID)
	return ownerID
}
