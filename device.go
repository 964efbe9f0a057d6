package ral

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ral/backend"
	"github.com/gogpu/ral/config"
	"github.com/gogpu/ral/fence"
	"github.com/gogpu/ral/format"
	"github.com/gogpu/ral/internal/queue"
	"github.com/gogpu/ral/limits"
)

var (
	// ErrClosed is returned by operations on a closed Device.
	ErrClosed = errors.New("ral: device closed")

	// ErrNoNativeDevice is returned by SubmitCommands when the device has no
	// hal device.
	ErrNoNativeDevice = errors.New("ral: no native device")

	// ErrAdapterNotFound is returned when WithAdapter names no probed adapter.
	ErrAdapterNotFound = errors.New("ral: adapter not found")

	// ErrUnknownQueue is returned for a QueueType outside the device queues.
	ErrUnknownQueue = errors.New("ral: unknown queue")
)

// Device is an opened adapter whose limits meet the baseline.
//
// Thread safety: Device is safe for concurrent use.
type Device struct {
	settings config.Settings
	backend  backend.Backend
	adapter  backend.Adapter
	limits   *limits.LimitSet

	// native is the hal device; zero when the backend cannot open one.
	native hal.OpenDevice

	queues [queueCount]*queue.Executor

	log    *slog.Logger
	closed atomic.Bool
}

// Open resolves the backend named by s, probes its adapters and opens the
// best one whose limits meet the baseline. Adapters are tried by type:
// discrete, integrated, unknown, then software.
//
// When every adapter is rejected, the returned error wraps a
// *limits.DeviceRejectedError per adapter.
func Open(s config.Settings, opts ...Option) (*Device, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	o := defaultOpenOptions()
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger
	if log == nil {
		log = slog.New(newLevelHandler(s.Debug.LogLevel.SlogLevel(), Logger().Handler()))
	}

	b := o.backend
	if b == nil {
		var err error
		if b, err = backend.Resolve(s.Common.API); err != nil {
			return nil, err
		}
	}
	if c, ok := b.(backend.Configurer); ok {
		c.Configure(s)
	}

	adapters, err := b.Probe()
	if err != nil {
		return nil, fmt.Errorf("ral: probe %s: %w", b.Name(), err)
	}

	adapter, set, err := selectAdapter(adapters, o.adapter, limits.NewValidator(limits.WithLogger(log)))
	if err != nil {
		release(b)
		log.Warn("ral: no usable adapter",
			"backend", b.Name(),
			"adapters", len(adapters),
			"err", err)
		return nil, err
	}

	d := &Device{
		settings: s,
		backend:  b,
		adapter:  adapter,
		limits:   set,
		log:      log,
	}

	if op, ok := b.(backend.Opener); ok && o.native && adapter.Native != nil {
		od, err := op.Open(adapter)
		if err != nil {
			release(b)
			return nil, fmt.Errorf("ral: %w", err)
		}
		d.native = od
	}

	for q := range queueCount {
		d.queues[q] = queue.New(q.ID(), q.String(), queue.WithLogger(log))
	}

	log.Info("ral: device opened",
		"backend", b.Name(),
		"adapter", adapter.Info.Name,
		"type", adapter.Info.Type,
		"native", d.native.Device != nil,
		"limits", set.Len(),
		"diagnostics", len(set.Diagnostics()))
	return d, nil
}

// selectAdapter returns the first adapter, by rank, that passes v. With a
// name, only that adapter is considered.
func selectAdapter(adapters []backend.Adapter, name string, v *limits.Validator) (backend.Adapter, *limits.LimitSet, error) {
	candidates := make([]backend.Adapter, 0, len(adapters))
	for _, a := range adapters {
		if name == "" || a.Info.Name == name {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		if name != "" {
			return backend.Adapter{}, nil, fmt.Errorf("%w: %q", ErrAdapterNotFound, name)
		}
		return backend.Adapter{}, nil, backend.ErrNoAdapters
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Rank() < candidates[j].Rank()
	})

	var errs []error
	for _, a := range candidates {
		set, err := v.Validate(a.Limits)
		if err == nil {
			return a, set, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 1 {
		return backend.Adapter{}, nil, errs[0]
	}
	return backend.Adapter{}, nil, errors.Join(errs...)
}

func release(b backend.Backend) {
	if r, ok := b.(backend.Releaser); ok {
		r.Release()
	}
}

// Settings returns the settings the device was opened with.
func (d *Device) Settings() config.Settings { return d.settings }

// Backend returns the backend resolved at Open.
func (d *Device) Backend() backend.Backend { return d.backend }

// Adapter returns the selected adapter.
func (d *Device) Adapter() backend.Adapter { return d.adapter }

// Limits returns the normalized limits.
func (d *Device) Limits() *limits.LimitSet { return d.limits }

// Native returns the hal device and queue. Both are nil when no hal device
// was opened.
func (d *Device) Native() hal.OpenDevice { return d.native }

// FormatUsage returns the usage of f the backend and adapter both support.
func (d *Device) FormatUsage(f format.Format) format.Usage {
	have := d.adapter.FormatUsage(f)
	var u format.Usage
	for bit := format.UsageSampled; bit <= format.UsageStorageTexelBuffer; bit <<= 1 {
		if have&bit != 0 && d.backend.SupportsFormat(f, bit) {
			u |= bit
		}
	}
	return u
}

// CapabilitiesOf returns the capabilities of f on this device: the matrix
// entry restricted to what the device supports.
func (d *Device) CapabilitiesOf(f format.Format) format.Capabilities {
	c := format.CapabilitiesOf(f)
	c.Usage = d.FormatUsage(f)
	if c.Usage&format.UsageRenderTarget == 0 {
		c.Derived.Blendable = false
		c.Derived.LogicOpEligible = false
	}
	return c
}

// ValidateTexture checks a texture creation request against the format
// registry and the device.
func (d *Device) ValidateTexture(desc format.TextureDesc) error {
	if err := format.ValidateTexture(desc); err != nil {
		return err
	}
	if missing := desc.Usage &^ d.FormatUsage(desc.Format); missing != 0 {
		return &format.FormatUsageUnsupportedError{
			Format:  desc.Format,
			Usage:   desc.Usage,
			Missing: missing,
		}
	}
	return nil
}

// CreateFence creates a fence owned by queue q. The fence uses the backend's
// native counter primitive, bound to the hal device when the backend
// supports it.
func (d *Device) CreateFence(q QueueType, initial uint64) (*fence.Fence, error) {
	if d.closed.Load() {
		return nil, ErrClosed
	}
	if q >= queueCount {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueue, q)
	}

	var (
		r   fence.Realization
		err error
	)
	if fd, ok := d.backend.(backend.DeviceFencer); ok && d.native.Device != nil {
		r, err = fd.NewDeviceFence(d.native.Device, initial)
	} else {
		r, err = d.backend.NewFenceRealization(initial)
	}
	if err != nil {
		return nil, fmt.Errorf("ral: create fence: %w", err)
	}
	return fence.New(q.ID(), initial, r), nil
}

func (d *Device) queue(q QueueType) (*queue.Executor, error) {
	if d.closed.Load() {
		return nil, ErrClosed
	}
	if q >= queueCount {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueue, q)
	}
	return d.queues[q], nil
}

// Submit enqueues s on queue q. Every signal fence must be owned by q.
func (d *Device) Submit(q QueueType, s Submission) (*Ticket, error) {
	e, err := d.queue(q)
	if err != nil {
		return nil, err
	}
	return e.Submit(s)
}

// SubmitAndWait submits s on queue q and waits for it to retire or ctx to
// end.
func (d *Device) SubmitAndWait(ctx context.Context, q QueueType, s Submission) error {
	e, err := d.queue(q)
	if err != nil {
		return err
	}
	return e.SubmitAndWait(ctx, s)
}

// SubmitCommands submits hal command buffers on queue q. The signals are
// applied once the hal queue reports the commands complete.
func (d *Device) SubmitCommands(q QueueType, waits []Target, cmds []hal.CommandBuffer, signals []Target) (*Ticket, error) {
	if d.native.Queue == nil {
		return nil, ErrNoNativeDevice
	}
	return d.Submit(q, Submission{
		Waits:   waits,
		Work:    queue.HALWork(d.native.Queue, cmds),
		Signals: signals,
	})
}

// WaitIdle waits until every submission made before the call has retired.
func (d *Device) WaitIdle(ctx context.Context) error {
	tickets := make([]*Ticket, 0, queueCount)
	for q := range queueCount {
		t, err := d.Submit(q, Submission{})
		if err != nil {
			return err
		}
		tickets = append(tickets, t)
	}
	for _, t := range tickets {
		select {
		case <-t.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Close drains the queues and releases the native device.
// Close is safe to call multiple times.
func (d *Device) Close() {
	if !d.closed.CompareAndSwap(false, true) {
		return
	}
	for _, e := range d.queues {
		e.Close()
	}
	if d.native.Device != nil {
		if err := d.native.Device.WaitIdle(); err != nil {
			d.log.Warn("ral: wait idle before destroy failed", "err", err)
		}
		d.native.Device.Destroy()
	}
	release(d.backend)
	d.log.Info("ral: device closed",
		"backend", d.backend.Name(),
		"adapter", d.adapter.Info.Name)
}
