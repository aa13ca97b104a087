package vkrt

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestMemRef1DFloatHostBuffer(t *testing.T) {
	data := make([]float32, 16)

	m := MemRef1DFloat{
		Allocated: &data[0],
		Aligned:   &data[0],
		Sizes:     [1]int64{16},
		Strides:   [1]int64{1},
	}

	buf := m.HostBuffer()
	assert.Equal(t, unsafe.Pointer(&data[0]), buf.Ptr)
	assert.Equal(t, uint32(64), buf.Size)
}

func TestMemRef2DFloatHostBuffer(t *testing.T) {
	data := make([]float32, 15)

	m := MemRef2DFloat{
		Allocated: &data[0],
		Aligned:   &data[0],
		Sizes:     [2]int64{3, 5},
		Strides:   [2]int64{5, 1},
	}

	buf := m.HostBuffer()
	assert.Equal(t, unsafe.Pointer(&data[0]), buf.Ptr)
	assert.Equal(t, uint32(60), buf.Size)
}

func TestHostMemoryBufferBytes(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	buf := hostBufferOf(data)

	got := buf.Bytes()
	assert.Equal(t, data, got)

	// Bytes views the borrowed memory, it does not copy it.
	got[0] = 9
	assert.Equal(t, byte(9), data[0])
}
