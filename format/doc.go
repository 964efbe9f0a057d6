// Package format is the format registry of the render abstraction layer.
//
// Every GPU-visible data layout the engine may use is a member of the closed
// [Format] enumeration. Each format is backed by one row of a static table
// holding its component layout, data type, and the set of usages it supports
// on every backend. Derived properties such as blendability or atomics support
// are computed from that row by fixed rules at query time.
//
// The table is immutable, so every function in this package is safe to call
// concurrently without synchronization, before any device exists.
//
// # Queries
//
//	caps := format.CapabilitiesOf(format.R8G8B8A8UNorm)
//	if caps.Derived.Blendable {
//	    // enable blending for this render target
//	}
//
//	// Resource creation must reject unsupported usages.
//	err := format.ValidateUsage(format.R8G8B8A8UNorm, format.UsageDepthStencil)
//	var unsupported *format.FormatUsageUnsupportedError
//	if errors.As(err, &unsupported) {
//	    // pick another format
//	}
//
// [TextureLimit] reports the valid extents of a format for a texture
// dimension. Block-compressed formats never support 1D textures and
// depth/stencil formats never support 3D textures.
package format
