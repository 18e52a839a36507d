package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestFromContext(t *testing.T) {
	seeded := zap.NewExample()
	fallback := zap.NewExample()

	ctx := ContextWithLogger(context.Background(), seeded)
	if got := FromContext(ctx); got != seeded {
		t.Error("seeded logger not returned")
	}
	if got := FromContext(ctx, fallback); got != seeded {
		t.Error("seeded logger must win over the fallback")
	}

	bare := context.Background()
	if got := FromContext(bare, fallback); got != fallback {
		t.Error("fallback not returned on unseeded context")
	}
	if got := FromContext(bare); got == nil {
		t.Error("expected a no-op logger, got nil")
	}
	if got := FromContext(bare, nil); got == nil {
		t.Error("nil fallback must still yield a no-op logger")
	}
}
