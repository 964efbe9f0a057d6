// Package ral is the render abstraction layer core.
//
// # Overview
//
// ral sits between an engine and the native graphics APIs. It owns the
// pieces every backend shares: the format registry and its capability
// matrix, the device limit normalizer, the monotonic fence used for queue
// synchronization, and the settings that choose a backend.
//
// # Quick Start
//
//	import "github.com/gogpu/ral"
//
//	settings, err := config.Load(config.FileName)
//	if err != nil {
//		log.Fatal(err)
//	}
//	dev, err := ral.Open(settings)
//	if err != nil {
//		var rejected *limits.DeviceRejectedError
//		if errors.As(err, &rejected) {
//			fmt.Print(rejected.Report())
//		}
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
// # Architecture
//
// The module is organized into:
//   - format: formats, capability matrix, vertex formats
//   - limits: baseline limits, validation and normalization
//   - fence: the synchronization primitive and its native realizations
//   - backend: DirectX 12 and Vulkan through the wgpu hal
//   - config: the ral.toml settings file
//
// # Queues
//
// A Device has a graphics, a compute and a copy queue. Submissions on one
// queue run in order. A submission may wait on fences signaled by other
// queues; the wait blocks the queue, not the caller. Signals are applied
// only after the submission's work succeeds.
package ral

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
