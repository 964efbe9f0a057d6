package queue

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ral/fence"
)

const (
	graphicsID fence.QueueID = 1
	computeID  fence.QueueID = 2
)

// =============================================================================
// Ordering
// =============================================================================

func TestExecutor_FIFO(t *testing.T) {
	e := New(graphicsID, "graphics")
	defer e.Close()

	var mu sync.Mutex
	var order []int
	tickets := make([]*Ticket, 10)
	for i := range tickets {
		tk, err := e.Submit(Submission{Work: func() error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		}})
		require.NoError(t, err)
		tickets[i] = tk
	}
	for _, tk := range tickets {
		require.NoError(t, tk.Wait())
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
	assert.Equal(t, uint64(10), e.Retired())
	assert.Zero(t, e.Pending())
}

func TestExecutor_SignalAfterWork(t *testing.T) {
	e := New(graphicsID, "graphics")
	defer e.Close()
	f := fence.New(graphicsID, 0, fence.NewDX12Counter(0))

	var seen uint64
	tk, err := e.Submit(Submission{
		Work: func() error {
			seen = f.Value()
			return nil
		},
		Signals: []fence.Target{{Fence: f, Value: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, tk.Wait())

	assert.Equal(t, uint64(0), seen, "signal must not be visible during work")
	assert.Equal(t, uint64(1), f.Value())
}

// =============================================================================
// Cross-queue synchronization
// =============================================================================

func TestExecutor_CrossQueueWait(t *testing.T) {
	graphics := New(graphicsID, "graphics")
	defer graphics.Close()
	compute := New(computeID, "compute")
	defer compute.Close()

	f := fence.New(computeID, 0, fence.NewVulkanTimeline(0))
	release := make(chan struct{})

	var computeDone atomic.Bool
	ct, err := compute.Submit(Submission{
		Work: func() error {
			<-release
			computeDone.Store(true)
			return nil
		},
		Signals: []fence.Target{{Fence: f, Value: 1}},
	})
	require.NoError(t, err)

	var sawCompute bool
	gt, err := graphics.Submit(Submission{
		Waits: []fence.Target{{Fence: f, Value: 1}},
		Work: func() error {
			sawCompute = computeDone.Load()
			return nil
		},
	})
	require.NoError(t, err)

	// The graphics queue is blocked, not the submitter.
	select {
	case <-gt.Done():
		t.Fatal("graphics submission retired before its wait was satisfied")
	case <-time.After(10 * time.Millisecond):
	}

	close(release)
	require.NoError(t, ct.Wait())
	require.NoError(t, gt.Wait())
	assert.True(t, sawCompute)
}

func TestExecutor_FailedWorkSkipsSignals(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := New(graphicsID, "graphics", WithLogger(logger))
	defer e.Close()
	f := fence.New(graphicsID, 0, fence.NewDX12Counter(0))

	boom := errors.New("boom")
	tk, err := e.Submit(Submission{
		Work:    func() error { return boom },
		Signals: []fence.Target{{Fence: f, Value: 1}},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, tk.Wait(), boom)
	assert.Equal(t, uint64(0), f.Value())
	assert.Contains(t, buf.String(), "signals skipped")
}

func TestExecutor_NonMonotonicSignalReturned(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := New(graphicsID, "graphics", WithLogger(logger))
	defer e.Close()
	f := fence.New(graphicsID, 5, fence.NewDX12Counter(5))

	err := e.SubmitAndWait(context.Background(), Submission{
		Signals: []fence.Target{{Fence: f, Value: 3}},
	})
	var nm *fence.NonMonotonicSignalError
	require.True(t, errors.As(err, &nm))
	assert.Equal(t, uint64(3), nm.Attempted)
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestExecutor_SignalRequiresOwnership(t *testing.T) {
	e := New(graphicsID, "graphics")
	defer e.Close()
	f := fence.New(computeID, 0, fence.NewDX12Counter(0))

	_, err := e.Submit(Submission{Signals: []fence.Target{{Fence: f, Value: 1}}})
	assert.ErrorIs(t, err, fence.ErrNotOwner)

	require.NoError(t, f.Share(graphicsID))
	_, err = e.Submit(Submission{Signals: []fence.Target{{Fence: f, Value: 1}}})
	assert.NoError(t, err)
}

func TestExecutor_NilFence(t *testing.T) {
	e := New(graphicsID, "graphics")
	defer e.Close()
	_, err := e.Submit(Submission{Waits: []fence.Target{{Value: 1}}})
	assert.Error(t, err)
}

// =============================================================================
// Lifecycle
// =============================================================================

func TestExecutor_CloseDrains(t *testing.T) {
	e := New(graphicsID, "graphics", WithDepth(16))

	var counter atomic.Int64
	for range 16 {
		_, err := e.Submit(Submission{Work: func() error {
			counter.Add(1)
			return nil
		}})
		require.NoError(t, err)
	}
	e.Close()
	assert.Equal(t, int64(16), counter.Load())
	assert.False(t, e.IsRunning())

	_, err := e.Submit(Submission{})
	assert.ErrorIs(t, err, ErrClosed)

	// Idempotent.
	e.Close()
}

func TestExecutor_SubmitRacingClose(t *testing.T) {
	for range 200 {
		e := New(graphicsID, "graphics", WithDepth(4))

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			tickets []*Ticket
		)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tk, err := e.Submit(Submission{})
				if err != nil {
					assert.ErrorIs(t, err, ErrClosed)
					return
				}
				mu.Lock()
				tickets = append(tickets, tk)
				mu.Unlock()
			}()
		}
		e.Close()
		wg.Wait()

		// Every accepted submission retires.
		for _, tk := range tickets {
			select {
			case <-tk.Done():
			case <-time.After(time.Second):
				t.Fatal("accepted submission never retired")
			}
		}
		assert.Equal(t, 0, e.Pending())
	}
}

func TestExecutor_SubmitAndWaitContext(t *testing.T) {
	e := New(graphicsID, "graphics")
	f := fence.New(computeID, 0, fence.NewDX12Counter(0))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := e.SubmitAndWait(ctx, Submission{Waits: []fence.Target{{Fence: f, Value: 1}}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Unblock the queue so Close can drain.
	require.NoError(t, f.Signal(1))
	e.Close()
}

// =============================================================================
// HAL work
// =============================================================================

func TestHALWork(t *testing.T) {
	e := New(graphicsID, "graphics")
	defer e.Close()

	q := &noop.Queue{}
	f := fence.New(graphicsID, 0, fence.NewDX12Counter(0))
	err := e.SubmitAndWait(context.Background(), Submission{
		Work:    HALWork(q, []hal.CommandBuffer{}),
		Signals: []fence.Target{{Fence: f, Value: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), q.PollCompleted())
	assert.Equal(t, uint64(1), f.Value())
}
