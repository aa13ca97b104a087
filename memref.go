package vkrt

import (
	"unsafe"
)

// MemRef descriptors mirror the ABI-level struct the compiler produces for
// a strided multi-dimensional host buffer:
//
//	{ allocated: *T, aligned: *T, offset: i64, sizes: [i64; N], strides: [i64; N] }
//
// Only 1-D and 2-D float32 memrefs are part of the C ABI; other ranks and
// element types are rejected at compile time by the lowering pass.

const sizeOfFloat32 = uint32(unsafe.Sizeof(float32(0)))

// MemRef1DFloat is the descriptor of a 1-D float32 memref.
type MemRef1DFloat struct {
	Allocated *float32
	Aligned   *float32
	Offset    int64
	Sizes     [1]int64
	Strides   [1]int64
}

// HostBuffer views the memref's allocated storage as a host memory buffer
// of sizes[0] elements.
func (m *MemRef1DFloat) HostBuffer() HostMemoryBuffer {
	return HostMemoryBuffer{
		Ptr:  unsafe.Pointer(m.Allocated),
		Size: uint32(m.Sizes[0]) * sizeOfFloat32,
	}
}

// MemRef2DFloat is the descriptor of a 2-D float32 memref.
type MemRef2DFloat struct {
	Allocated *float32
	Aligned   *float32
	Offset    int64
	Sizes     [2]int64
	Strides   [2]int64
}

// HostBuffer views the memref's allocated storage as a host memory buffer
// of sizes[0]*sizes[1] elements.
func (m *MemRef2DFloat) HostBuffer() HostMemoryBuffer {
	return HostMemoryBuffer{
		Ptr:  unsafe.Pointer(m.Allocated),
		Size: uint32(m.Sizes[0]*m.Sizes[1]) * sizeOfFloat32,
	}
}
