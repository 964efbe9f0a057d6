package queue

import (
	"fmt"
	"time"

	"github.com/gogpu/wgpu/hal"
)

// pollInterval is how often HALWork checks for GPU completion.
const pollInterval = 50 * time.Microsecond

// HALWork returns submission work that submits cmds to q and returns once
// the GPU has completed them.
func HALWork(q hal.Queue, cmds []hal.CommandBuffer) func() error {
	return func() error {
		idx, err := q.Submit(cmds)
		if err != nil {
			return fmt.Errorf("hal submit: %w", err)
		}
		for q.PollCompleted() < idx {
			time.Sleep(pollInterval)
		}
		return nil
	}
}
