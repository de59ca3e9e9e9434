package service

import (
	"context"

	"github.com/google/uuid"
)

type actorKey struct{}

// WithActor records who triggered a write; it ends up in *_enrolled_by / *_entered_by.
func WithActor(ctx context.Context, id uuid.UUID) context.Context {
	if id == uuid.Nil {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, id)
}

func ActorFrom(ctx context.Context) *uuid.UUID {
	id, ok := ctx.Value(actorKey{}).(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
