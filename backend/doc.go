// Package backend provides the native graphics API abstraction.
//
// A backend reports which adapters exist, what each adapter supports and
// which fence primitive the API uses. It is resolved once when a device is
// opened and never re-dispatched per call.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// Vulkan and the software backend are registered on import. DirectX 12 is
// registered only on Windows, where its hal is compiled in.
//
// # Backend Selection
//
// Use Resolve to get the backend named by the settings file, Default to get
// the best available backend, or Get to request one by name:
//
//	b, err := backend.Resolve(settings.Common.API)
//	if err != nil {
//		log.Fatal(err)
//	}
//	adapters, err := b.Probe()
//
// # Available Backends
//
//   - "dx12": DirectX 12 through the wgpu hal (Windows)
//   - "vulkan": Vulkan through the wgpu hal
//   - "software": registered, not implemented
//
// Build with the nogpu tag to leave the hal backends out. Native backends
// then report ErrBackendNotAvailable unless given a hal backend with WithHAL.
package backend
