package fence

import "sync/atomic"

// dx12Counter models an ID3D12Fence: one 64-bit counter used for both
// queue-queue and queue-host synchronization.
type dx12Counter struct {
	completed atomic.Uint64
	destroyed atomic.Bool
}

// NewDX12Counter returns a Direct3D 12 style realization starting at
// initial.
func NewDX12Counter(initial uint64) Realization {
	c := &dx12Counter{}
	c.completed.Store(initial)
	return c
}

func (c *dx12Counter) Kind() string { return "d3d12-fence" }

func (c *dx12Counter) Signal(v uint64) error {
	if c.destroyed.Load() {
		return ErrDestroyed
	}
	c.completed.Store(v)
	return nil
}

func (c *dx12Counter) Completed() uint64 { return c.completed.Load() }

func (c *dx12Counter) Destroy() { c.destroyed.Store(true) }

// vulkanTimeline models a VkSemaphore of type timeline.
type vulkanTimeline struct {
	value     atomic.Uint64
	destroyed atomic.Bool
}

// NewVulkanTimeline returns a Vulkan style realization starting at initial.
func NewVulkanTimeline(initial uint64) Realization {
	t := &vulkanTimeline{}
	t.value.Store(initial)
	return t
}

func (t *vulkanTimeline) Kind() string { return "vk-timeline-semaphore" }

func (t *vulkanTimeline) Signal(v uint64) error {
	if t.destroyed.Load() {
		return ErrDestroyed
	}
	t.value.Store(v)
	return nil
}

func (t *vulkanTimeline) Completed() uint64 { return t.value.Load() }

func (t *vulkanTimeline) Destroy() { t.destroyed.Store(true) }
