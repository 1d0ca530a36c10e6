package ports

import (
	"context"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// Sender is the port for publishing/informing/sending outbound lifecycle events.
type Sender interface {
	// Send sends lifecycle-event data.
	Send(ctx context.Context, event model.LifecycleEvent) error
}
