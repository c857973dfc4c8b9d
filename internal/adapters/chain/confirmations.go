package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

// DefaultPollInterval is used when no poll interval is configured
const DefaultPollInterval = 2 * time.Second

// HeadReader reports the latest block number
type HeadReader interface {
	BlockNumber(ctx context.Context) (uint64, error)
}

// ConfirmationWaiter polls the chain head until a mined transaction has
// enough confirmations. The mining block counts as the first one.
type ConfirmationWaiter struct {
	interval time.Duration
}

// NewConfirmationWaiter creates a waiter polling at interval
func NewConfirmationWaiter(interval time.Duration) *ConfirmationWaiter {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &ConfirmationWaiter{interval: interval}
}

// Wait blocks until head >= minedAt + confirmations - 1 or ctx is done
func (w *ConfirmationWaiter) Wait(ctx context.Context, head HeadReader, minedAt, confirmations uint64, progress usecase.ProgressSink) error {
	if confirmations <= 1 {
		return nil
	}
	target := minedAt + confirmations - 1

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		current, err := head.BlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to read block number: %w", err)
		}
		if current >= target {
			return nil
		}

		var seen uint64
		if current >= minedAt {
			seen = current - minedAt + 1
		}
		progress.OnProgress(ctx, usecase.ProgressEvent{
			Stage:   string(usecase.StageConfirming),
			Current: int(seen),
			Total:   int(confirmations),
			Message: fmt.Sprintf("Waiting for confirmations (%d/%d)", seen, confirmations),
			Spinner: true,
		})

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %d confirmations: %w", confirmations, ctx.Err())
		case <-ticker.C:
		}
	}
}
