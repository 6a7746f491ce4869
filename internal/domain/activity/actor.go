package activity

import "context"

// DefaultActor is recorded when no operator is attached to the context.
const DefaultActor = "local"

type actorKey struct{}

// WithActor attaches the operator performing a command to ctx.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the operator attached to ctx, or DefaultActor.
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return DefaultActor
}
