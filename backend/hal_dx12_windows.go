//go:build !nogpu

package backend

// DirectX 12 hal backend registration.
import _ "github.com/gogpu/wgpu/hal/dx12"

func init() {
	Register(NameDX12, func() Backend { return NewDX12() })
}
