// Package fence provides the one synchronization primitive the render
// abstraction layer exposes: a monotonic 64-bit counter that queues signal
// and queues or host threads wait on.
//
// A Fence hides the native object behind a Realization. Direct3D 12 style
// backends use a single counter for both GPU-GPU and GPU-host sync; Vulkan
// style backends use a timeline semaphore. Binary semaphores are never
// exposed.
//
//	f := fence.New(graphics, 0, fence.NewDX12Counter(0))
//	if err := f.Signal(5); err != nil {
//		return err
//	}
//	status, err := f.Wait(3, 0) // Signaled, without blocking
//
// Signals are serialized by an internal lock and must be strictly
// increasing. Wait never blocks for a zero timeout and returns TimedOut,
// not an error, when the deadline passes.
package fence
