package engage

import (
	"context"
	"time"

	"github.com/lixenwraith/keepsake/logger"
)

// AsyncCounter decouples view increments from the frame loop: IncrementView
// returns immediately and reports the outcome to the log only, matching the
// fire-and-forget nature of view counting. Like toggles stay synchronous
// because their caller already runs them off the loop and needs the result.
type AsyncCounter struct {
	Inner Counter
}

func (a AsyncCounter) IncrementView(_ context.Context, id string) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := a.Inner.IncrementView(ctx, id); err != nil {
			logger.Log.Warn("view increment failed", "id", id, "err", err)
		}
	}()
	return nil
}

func (a AsyncCounter) ToggleLike(ctx context.Context, id, deviceID string) (bool, error) {
	return a.Inner.ToggleLike(ctx, id, deviceID)
}
