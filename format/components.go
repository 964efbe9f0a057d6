package format

import "fmt"

// Components is the component layout family of a format, independent of its
// data type.
type Components uint8

// Component layouts.
const (
	ComponentsNone Components = iota
	ComponentsR32G32B32A32
	ComponentsR32G32
	ComponentsR32
	ComponentsR16G16B16A16
	ComponentsR16G16
	ComponentsR16
	ComponentsR8G8B8A8
	ComponentsR8G8
	ComponentsR8
	ComponentsB8G8R8A8
	ComponentsR10G10B10A2
	ComponentsR11G11B10
	ComponentsR9G9B9E5
	ComponentsD32
	ComponentsD32S8
	ComponentsS8
	ComponentsBC1
	ComponentsBC2
	ComponentsBC3
	ComponentsBC4
	ComponentsBC5
	ComponentsBC6H
	ComponentsBC7

	componentsCount
)

// componentInfo is the physical layout of a component family.
//
// Exactly one of bitsPerPixel or (bytesPerBlock, blockWidth, blockHeight) is
// set. unitByteSize is the size of one addressable unit: a texel for plain
// formats, a block for block-compressed ones.
type componentInfo struct {
	name          string
	aspect        Aspect
	bitsPerPixel  uint32
	bytesPerBlock uint32
	blockWidth    uint32
	blockHeight   uint32
	unitByteSize  uint32
	planes        uint32
}

func texel(name string, aspect Aspect, bpp uint32, planes uint32) componentInfo {
	return componentInfo{
		name:         name,
		aspect:       aspect,
		bitsPerPixel: bpp,
		unitByteSize: bpp / 8,
		planes:       planes,
	}
}

func block(name string, bytes uint32) componentInfo {
	return componentInfo{
		name:          name,
		aspect:        AspectColor,
		bytesPerBlock: bytes,
		blockWidth:    4,
		blockHeight:   4,
		unitByteSize:  bytes,
		planes:        1,
	}
}

var components = [componentsCount]componentInfo{
	ComponentsNone:         {name: "None"},
	ComponentsR32G32B32A32: texel("R32G32B32A32", AspectColor, 128, 1),
	ComponentsR32G32:       texel("R32G32", AspectColor, 64, 1),
	ComponentsR32:          texel("R32", AspectColor, 32, 1),
	ComponentsR16G16B16A16: texel("R16G16B16A16", AspectColor, 64, 1),
	ComponentsR16G16:       texel("R16G16", AspectColor, 32, 1),
	ComponentsR16:          texel("R16", AspectColor, 16, 1),
	ComponentsR8G8B8A8:     texel("R8G8B8A8", AspectColor, 32, 1),
	ComponentsR8G8:         texel("R8G8", AspectColor, 16, 1),
	ComponentsR8:           texel("R8", AspectColor, 8, 1),
	ComponentsB8G8R8A8:     texel("B8G8R8A8", AspectColor, 32, 1),
	ComponentsR10G10B10A2:  texel("R10G10B10A2", AspectColor, 32, 1),
	ComponentsR11G11B10:    texel("R11G11B10", AspectColor, 32, 1),
	ComponentsR9G9B9E5:     texel("R9G9B9E5", AspectColor, 32, 1),
	ComponentsD32:          texel("D32", AspectDepth, 32, 1),
	ComponentsD32S8:        texel("D32S8", AspectDepth|AspectStencil, 40, 2),
	ComponentsS8:           texel("S8", AspectStencil, 8, 1),
	ComponentsBC1:          block("BC1", 8),
	ComponentsBC2:          block("BC2", 16),
	ComponentsBC3:          block("BC3", 16),
	ComponentsBC4:          block("BC4", 8),
	ComponentsBC5:          block("BC5", 16),
	ComponentsBC6H:         block("BC6H", 16),
	ComponentsBC7:          block("BC7", 16),
}

// String returns the layout name.
func (c Components) String() string {
	if c >= componentsCount {
		return "Unknown"
	}
	return components[c].name
}

// DataTypes returns the data types that form a valid format with c.
func (c Components) DataTypes() []DataType {
	var out []DataType
	for d := DataTypeTypeless; d < dataTypeCount; d++ {
		if _, ok := Lookup(c, d); ok {
			out = append(out, d)
		}
	}
	return out
}

func (f Format) layout() componentInfo {
	return components[f.Components()]
}

// Aspect returns the aspects addressed by the format: Color, or a subset of
// Depth|Stencil. The two are never combined.
func (f Format) Aspect() Aspect {
	return f.layout().aspect
}

// IsBlockCompressed reports whether the smallest addressable unit of f is a
// pixel block rather than a texel.
func (f Format) IsBlockCompressed() bool {
	return f.layout().bytesPerBlock != 0
}

// IsDepthStencil reports whether f has a depth or stencil aspect.
func (f Format) IsDepthStencil() bool {
	return f.Aspect()&(AspectDepth|AspectStencil) != 0
}

// IsPlanar reports whether the format stores its aspects in separate planes.
func (f Format) IsPlanar() bool {
	return f.layout().planes > 1
}

// BitsPerPixel returns the texel size in bits. Block-compressed formats have
// no per-pixel size and report false.
func (f Format) BitsPerPixel() (uint32, bool) {
	l := f.layout()
	return l.bitsPerPixel, l.bitsPerPixel != 0
}

// BlockSize returns the size in bytes of one compressed block and the block
// extent in texels. Formats that are not block-compressed report false.
func (f Format) BlockSize() (bytes, width, height uint32, ok bool) {
	l := f.layout()
	if l.bytesPerBlock == 0 {
		return 0, 0, 0, false
	}
	return l.bytesPerBlock, l.blockWidth, l.blockHeight, true
}

// ByteSize returns the size in bytes of one texel. Block-compressed formats
// report false; use BlockSize for them.
func (f Format) ByteSize() (uint32, bool) {
	l := f.layout()
	if l.bitsPerPixel == 0 {
		return 0, false
	}
	return l.unitByteSize, true
}

// UnitByteSize returns the size of one addressable unit: a texel, or a block
// for block-compressed formats.
func (f Format) UnitByteSize() uint32 {
	return f.layout().unitByteSize
}

// Planes returns the number of planes of the format.
func (f Format) Planes() uint32 {
	return f.layout().planes
}

// MinMipExtent returns the smallest extent a mip level can have.
func (f Format) MinMipExtent() (width, height uint32) {
	l := f.layout()
	if l.bytesPerBlock != 0 {
		return l.blockWidth, l.blockHeight
	}
	if l.planes == 0 {
		return 0, 0
	}
	return 1, 1
}

// HasMips reports whether textures of this format may have mip chains.
func (f Format) HasMips() bool {
	return f.IsValid()
}

// Supports1D reports whether f can back a 1D texture.
func (f Format) Supports1D() bool {
	return f.IsValid() && !f.IsBlockCompressed()
}

// Supports3D reports whether f can back a 3D texture.
func (f Format) Supports3D() bool {
	return f.IsValid() && !f.IsDepthStencil()
}

// SupportsCubemap reports whether f can back a cubemap texture.
func (f Format) SupportsCubemap() bool {
	return f.IsValid()
}

// PlaneFromAspect returns the plane holding a single aspect of f.
// Depth lives on plane 0. Stencil lives on plane 1 when the format also has
// depth, and on plane 0 otherwise.
func (f Format) PlaneFromAspect(a Aspect) (uint32, error) {
	if a == 0 || a&(a-1) != 0 {
		return 0, fmt.Errorf("format: cannot get a plane for multiple aspects (%s) of %s", a, f)
	}
	if f.Aspect()&a == 0 {
		return 0, fmt.Errorf("format: %s does not have the %s aspect", f, a)
	}
	if a == AspectStencil && f.Aspect()&AspectDepth != 0 {
		return 1, nil
	}
	return 0, nil
}

// AspectFromPlane returns the aspect stored in the given plane of f.
func (f Format) AspectFromPlane(plane uint32) (Aspect, error) {
	if plane >= f.Planes() {
		return 0, fmt.Errorf("format: plane index %d out of range, %s has %d planes", plane, f, f.Planes())
	}
	aspect := f.Aspect()
	if aspect == AspectDepth|AspectStencil {
		if plane == 1 {
			return AspectStencil, nil
		}
		return AspectDepth, nil
	}
	return aspect, nil
}

// PlaneLayout describes one plane of a (possibly planar) format.
type PlaneLayout struct {
	// Format is the format used to address this plane on its own.
	Format Format
	// Width and Height are the plane extent in texels.
	Width, Height uint32
}

// PlaneLayout returns the layout of the plane holding aspect a for a texture
// of the given extent. D32SFloatS8UInt splits into a D32SFloat and an S8UInt
// plane; every other format is its own single plane.
func (f Format) PlaneLayout(a Aspect, width, height uint32) (PlaneLayout, error) {
	if _, err := f.PlaneFromAspect(a); err != nil {
		return PlaneLayout{}, err
	}
	pf := f
	if f == D32SFloatS8UInt {
		if a == AspectDepth {
			pf = D32SFloat
		} else {
			pf = S8UInt
		}
	}
	return PlaneLayout{Format: pf, Width: width, Height: height}, nil
}

// MinRowPitch returns the tightly packed size in bytes of one row of a
// row-major texture of the given width. For block-compressed formats a row is
// a row of blocks.
func (f Format) MinRowPitch(width uint32) uint32 {
	l := f.layout()
	if l.bytesPerBlock != 0 {
		return (width + l.blockWidth - 1) / l.blockWidth * l.bytesPerBlock
	}
	return width * l.unitByteSize
}

// MinSlicePitch returns the tightly packed size in bytes of one slice given
// its row pitch and height in texels.
func (f Format) MinSlicePitch(rowPitch, height uint32) uint32 {
	l := f.layout()
	if l.bytesPerBlock != 0 {
		return (height + l.blockHeight - 1) / l.blockHeight * rowPitch
	}
	return height * rowPitch
}
