package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/ral/backend"
	"github.com/gogpu/ral/config"
	"github.com/gogpu/ral/format"
	"github.com/gogpu/ral/limits"
)

func TestReportAcceptedAdapter(t *testing.T) {
	a := backend.Adapter{
		Info:   gpucontext.AdapterInfo{Name: "Test GPU", Type: gpucontext.AdapterTypeDiscrete},
		Limits: limits.BaselineLimits("Test GPU"),
	}
	a = a.WithFormats(map[format.Format]format.Usage{
		format.R8G8B8A8UNorm: format.UsageSampled,
	})

	var buf bytes.Buffer
	n := report(&buf, backend.NewVulkan(), []backend.Adapter{a}, reportOptions{limits: true, formats: true})
	if n != 1 {
		t.Errorf("report() accepted = %d, want 1", n)
	}
	out := buf.String()
	for _, want := range []string{"Test GPU", "Discrete", "meets baseline", "max_texture_size_2d", "R8G8B8A8UNorm"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReportRejectedAdapter(t *testing.T) {
	b := backend.NewVulkan(backend.WithHAL(noop.API{}))
	defer b.Release()
	adapters, err := b.Probe()
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}

	var buf bytes.Buffer
	if n := report(&buf, b, adapters, reportOptions{}); n != 0 {
		t.Errorf("report() accepted = %d, want 0", n)
	}
	out := buf.String()
	if !strings.Contains(out, "rejected") || !strings.Contains(out, "max_texture_size_2d") {
		t.Errorf("rejection report incomplete:\n%s", out)
	}
}

func TestReportAdapterFilter(t *testing.T) {
	a := backend.Adapter{
		Info:   gpucontext.AdapterInfo{Name: "Other"},
		Limits: limits.BaselineLimits("Other"),
	}
	var buf bytes.Buffer
	if n := report(&buf, backend.NewVulkan(), []backend.Adapter{a}, reportOptions{adapter: "Test GPU"}); n != 0 {
		t.Errorf("report() accepted = %d, want 0", n)
	}
	if strings.Contains(buf.String(), "Other") {
		t.Errorf("filtered adapter reported:\n%s", buf.String())
	}
}

func TestRunSoftwareNotImplemented(t *testing.T) {
	s := config.Default()
	s.Common.API = config.APISoftware
	_, err := run(&bytes.Buffer{}, s, reportOptions{})
	if err == nil {
		t.Fatal("run() with the software backend succeeded, want ErrNotImplemented")
	}
}
