package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ContextWithLogger stores the run-scoped logger in the context. The pipeline
// seeds it once per run; the layers below read it back instead of carrying
// their own reference.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext extracts the run logger from the context. A caller-seeded
// logger wins over the fallback; absent both, a no-op logger is returned.
func FromContext(ctx context.Context, fallback ...*zap.Logger) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	for _, f := range fallback {
		if f != nil {
			return f
		}
	}
	return zap.NewNop()
}
