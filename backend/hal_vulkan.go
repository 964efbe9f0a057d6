//go:build !nogpu && !android && !js

package backend

// Vulkan hal backend registration.
import _ "github.com/gogpu/wgpu/hal/vulkan"
