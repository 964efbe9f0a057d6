package ral

import (
	"fmt"

	"github.com/gogpu/ral/fence"
	"github.com/gogpu/ral/internal/queue"
)

// QueueType identifies one of the device queues.
type QueueType uint8

const (
	// QueueGraphics accepts graphics, compute and copy work.
	QueueGraphics QueueType = iota
	// QueueCompute accepts compute and copy work.
	QueueCompute
	// QueueCopy accepts copy work.
	QueueCopy

	queueCount
)

// String returns the queue name.
func (q QueueType) String() string {
	switch q {
	case QueueGraphics:
		return "graphics"
	case QueueCompute:
		return "compute"
	case QueueCopy:
		return "copy"
	}
	return fmt.Sprintf("QueueType(%d)", uint8(q))
}

// ID returns the fence holder id of the queue.
func (q QueueType) ID() fence.QueueID {
	return fence.QueueID(q) + 1
}

// Submission is one unit of queue work: fence waits, the work itself, then
// fence signals.
type Submission = queue.Submission

// Ticket tracks a submission until it retires.
type Ticket = queue.Ticket

// Target is a fence and a value to wait for or signal.
type Target = fence.Target
