package ral

import (
	"log/slog"
	"testing"

	"github.com/gogpu/ral/backend"
)

// TestDefaultOpenOptions tests that a native device is opened by default.
func TestDefaultOpenOptions(t *testing.T) {
	o := defaultOpenOptions()
	if !o.native {
		t.Error("native device should be enabled by default")
	}
	if o.logger != nil || o.backend != nil || o.adapter != "" {
		t.Errorf("unexpected defaults: %+v", o)
	}
}

// TestOptionsApply tests that every option sets its field.
func TestOptionsApply(t *testing.T) {
	logger := slog.New(nopHandler{})
	b := backend.NewVulkan()

	o := defaultOpenOptions()
	for _, opt := range []Option{
		WithLogger(logger),
		WithBackend(b),
		WithAdapter("Test GPU"),
		WithoutNativeDevice(),
	} {
		opt(&o)
	}

	if o.logger != logger {
		t.Error("WithLogger did not set the logger")
	}
	if o.backend != backend.Backend(b) {
		t.Error("WithBackend did not set the backend")
	}
	if o.adapter != "Test GPU" {
		t.Errorf("adapter = %q, want %q", o.adapter, "Test GPU")
	}
	if o.native {
		t.Error("WithoutNativeDevice did not disable the native device")
	}
}

// TestOptionsLastWins tests that later options override earlier ones.
func TestOptionsLastWins(t *testing.T) {
	o := defaultOpenOptions()
	WithAdapter("first")(&o)
	WithAdapter("second")(&o)
	if o.adapter != "second" {
		t.Errorf("adapter = %q, want %q", o.adapter, "second")
	}
}
