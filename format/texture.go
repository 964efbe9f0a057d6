package format

import "fmt"

// Texture extent limits shared by every backend.
const (
	MaxTextureSize1D   = 16384
	MaxTextureLayers1D = 2048
	MaxTextureSize2D   = 16384
	MaxTextureLayers2D = 2048
	MaxTextureSize3D   = 2048
	MaxTextureSizeCube = 16384
)

// Dimension is the dimensionality of a texture.
type Dimension uint8

const (
	Dimension1D Dimension = iota
	Dimension2D
	Dimension3D
	DimensionCube
)

// String returns the dimension name.
func (d Dimension) String() string {
	switch d {
	case Dimension1D:
		return "1D"
	case Dimension2D:
		return "2D"
	case Dimension3D:
		return "3D"
	case DimensionCube:
		return "Cube"
	default:
		return fmt.Sprintf("Dimension(%d)", uint8(d))
	}
}

// ValidRange is the set of extents a texture of a given format and dimension
// may have. When Supported is false the dimension cannot be used at all.
type ValidRange struct {
	Supported bool
	// MinWidth and MinHeight are the smallest mip extent.
	MinWidth, MinHeight uint32
	// MaxExtent bounds width, height and (for 3D) depth.
	MaxExtent uint32
	// MaxLayers bounds the array layer count. 3D textures have one layer.
	MaxLayers uint32
}

// TextureLimit returns the valid extents of f for a texture of dimension d.
// Block-compressed formats exclude 1D and depth/stencil formats exclude 3D.
func TextureLimit(f Format, d Dimension) ValidRange {
	var supported bool
	var r ValidRange
	switch d {
	case Dimension1D:
		supported = f.Supports1D()
		r.MaxExtent, r.MaxLayers = MaxTextureSize1D, MaxTextureLayers1D
	case Dimension2D:
		supported = f.IsValid()
		r.MaxExtent, r.MaxLayers = MaxTextureSize2D, MaxTextureLayers2D
	case Dimension3D:
		supported = f.Supports3D()
		r.MaxExtent, r.MaxLayers = MaxTextureSize3D, 1
	case DimensionCube:
		supported = f.SupportsCubemap()
		r.MaxExtent, r.MaxLayers = MaxTextureSizeCube, MaxTextureLayers2D
	}
	if !supported {
		return ValidRange{}
	}
	r.Supported = true
	r.MinWidth, r.MinHeight = f.MinMipExtent()
	return r
}

// TextureDesc is the part of a texture description the registry can check.
type TextureDesc struct {
	Format    Format
	Dimension Dimension
	Usage     Usage
	Width     uint32
	Height    uint32
	// DepthOrLayers is the depth of a 3D texture, or the layer count otherwise.
	DepthOrLayers uint32
}

// ValidateTexture checks a texture creation request against the capability
// table and the valid range of its format and dimension.
func ValidateTexture(desc TextureDesc) error {
	if err := ValidateUsage(desc.Format, desc.Usage); err != nil {
		return err
	}
	r := TextureLimit(desc.Format, desc.Dimension)
	fail := func(format string, args ...any) error {
		return &TextureLimitError{
			Format:    desc.Format,
			Dimension: desc.Dimension,
			Reason:    fmt.Sprintf(format, args...),
		}
	}
	if !r.Supported {
		return fail("dimension not supported by format")
	}
	if desc.Width == 0 || desc.Height == 0 || desc.DepthOrLayers == 0 {
		return fail("extent %dx%dx%d has a zero component", desc.Width, desc.Height, desc.DepthOrLayers)
	}
	if desc.Width > r.MaxExtent || desc.Height > r.MaxExtent {
		return fail("extent %dx%d exceeds %d", desc.Width, desc.Height, r.MaxExtent)
	}

	switch desc.Dimension {
	case Dimension1D:
		if desc.Height != 1 {
			return fail("height must be 1, got %d", desc.Height)
		}
	case Dimension3D:
		if desc.DepthOrLayers > r.MaxExtent {
			return fail("depth %d exceeds %d", desc.DepthOrLayers, r.MaxExtent)
		}
	case DimensionCube:
		if desc.Width != desc.Height {
			return fail("faces must be square, got %dx%d", desc.Width, desc.Height)
		}
		if desc.DepthOrLayers%6 != 0 {
			return fail("layer count %d is not a multiple of 6", desc.DepthOrLayers)
		}
	}
	if desc.Dimension != Dimension3D && desc.DepthOrLayers > r.MaxLayers {
		return fail("layer count %d exceeds %d", desc.DepthOrLayers, r.MaxLayers)
	}

	if _, bw, bh, ok := desc.Format.BlockSize(); ok {
		if desc.Width%bw != 0 || desc.Height%bh != 0 {
			return fail("extent %dx%d is not a multiple of the %dx%d block", desc.Width, desc.Height, bw, bh)
		}
	}
	return nil
}
