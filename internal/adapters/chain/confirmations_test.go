package chain

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

// fakeHead advances one block per call
type fakeHead struct {
	mu    sync.Mutex
	block uint64
	calls int
	err   error
}

func (h *fakeHead) BlockNumber(context.Context) (uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	if h.err != nil {
		return 0, h.err
	}
	current := h.block
	h.block++
	return current, nil
}

type countingSink struct {
	usecase.NopProgress
	events []usecase.ProgressEvent
}

func (s *countingSink) OnProgress(_ context.Context, e usecase.ProgressEvent) {
	s.events = append(s.events, e)
}

func TestConfirmationWaiter(t *testing.T) {
	ctx := context.Background()
	waiter := NewConfirmationWaiter(time.Millisecond)

	t.Run("single confirmation returns immediately", func(t *testing.T) {
		head := &fakeHead{block: 10}
		require.NoError(t, waiter.Wait(ctx, head, 10, 1, usecase.NopProgress{}))
		assert.Equal(t, 0, head.calls)
	})

	t.Run("waits until head reaches mined block plus confirmations minus one", func(t *testing.T) {
		head := &fakeHead{block: 10}
		sink := &countingSink{}
		require.NoError(t, waiter.Wait(ctx, head, 10, 6, sink))

		// heads 10..15 were read, 15 satisfies the target
		assert.Equal(t, 6, head.calls)
		require.Len(t, sink.events, 5)
		assert.Equal(t, 1, sink.events[0].Current)
		assert.Equal(t, 6, sink.events[0].Total)
		assert.Equal(t, string(usecase.StageConfirming), sink.events[0].Stage)
	})

	t.Run("head already past target", func(t *testing.T) {
		head := &fakeHead{block: 100}
		require.NoError(t, waiter.Wait(ctx, head, 10, 6, usecase.NopProgress{}))
		assert.Equal(t, 1, head.calls)
	})

	t.Run("rpc error is returned", func(t *testing.T) {
		head := &fakeHead{err: errors.New("connection refused")}
		err := waiter.Wait(ctx, head, 10, 6, usecase.NopProgress{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("context cancellation stops waiting", func(t *testing.T) {
		slow := NewConfirmationWaiter(time.Hour)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := slow.Wait(cctx, &fakeHead{block: 10}, 10, 6, usecase.NopProgress{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewConfirmationWaiterDefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultPollInterval, NewConfirmationWaiter(0).interval)
}
