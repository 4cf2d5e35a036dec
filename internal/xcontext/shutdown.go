package xcontext

import "context"

type shutdownInProgressKey struct{}

// SetShutdownInProgress marks requests served while the server drains.
func SetShutdownInProgress(ctx context.Context, inProgress bool) context.Context {
	return context.WithValue(ctx, shutdownInProgressKey{}, inProgress)
}

func IsShutdownInProgress(ctx context.Context) bool {
	inProgress, ok := ctx.Value(shutdownInProgressKey{}).(bool)
	return ok && inProgress
}
