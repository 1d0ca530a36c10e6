package ports

import (
	"context"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// LifecycleEventHandler handles incoming LifecycleEvents.
type LifecycleEventHandler interface {
	// Handle will receive an incoming lifecycle event and handle it.
	Handle(ctx context.Context, event model.LifecycleEvent) error
}
