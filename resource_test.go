package vkrt

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func hostBufferOf(data []byte) HostMemoryBuffer {
	return HostMemoryBuffer{Ptr: unsafe.Pointer(&data[0]), Size: uint32(len(data))}
}

func TestResourceDataPreservesInsertionOrder(t *testing.T) {
	var rd ResourceData

	a := hostBufferOf(make([]byte, 4))
	b := hostBufferOf(make([]byte, 8))
	c := hostBufferOf(make([]byte, 12))

	rd.Put(1, 3, a)
	rd.Put(1, 0, b)
	rd.Put(0, 2, c)

	require.Len(t, rd.Sets, 2)
	assert.Equal(t, DescriptorSetIndex(1), rd.Sets[0].Set)
	assert.Equal(t, DescriptorSetIndex(0), rd.Sets[1].Set)

	require.Len(t, rd.Sets[0].Bindings, 2)
	assert.Equal(t, BindingIndex(3), rd.Sets[0].Bindings[0].Binding)
	assert.Equal(t, BindingIndex(0), rd.Sets[0].Bindings[1].Binding)
}

func TestResourceDataPutReplacesExistingSlot(t *testing.T) {
	var rd ResourceData

	rd.Put(0, 0, hostBufferOf(make([]byte, 4)))
	rd.Put(0, 0, hostBufferOf(make([]byte, 16)))

	require.Len(t, rd.Sets, 1)
	require.Len(t, rd.Sets[0].Bindings, 1)

	buf, ok := rd.Get(0, 0)
	require.True(t, ok)
	assert.Equal(t, uint32(16), buf.Size)
}

func TestResourceDataGetMissing(t *testing.T) {
	var rd ResourceData
	rd.Put(0, 0, hostBufferOf(make([]byte, 4)))

	_, ok := rd.Get(0, 1)
	assert.False(t, ok)
	_, ok = rd.Get(1, 0)
	assert.False(t, ok)
	assert.False(t, rd.Empty())
}

func TestStorageClassMappings(t *testing.T) {
	dt, err := StorageClassStorageBuffer.DescriptorType()
	require.NoError(t, err)
	assert.Equal(t, vk.DescriptorTypeStorageBuffer, dt)

	usage, err := StorageClassStorageBuffer.BufferUsage()
	require.NoError(t, err)
	assert.Equal(t, vk.BufferUsageStorageBufferBit, usage)

	dt, err = StorageClassUniform.DescriptorType()
	require.NoError(t, err)
	assert.Equal(t, vk.DescriptorTypeUniformBuffer, dt)

	usage, err = StorageClassUniform.BufferUsage()
	require.NoError(t, err)
	assert.Equal(t, vk.BufferUsageUniformBufferBit, usage)

	_, err = StorageClass(42).DescriptorType()
	assert.Error(t, err)
	_, err = StorageClass(42).BufferUsage()
	assert.Error(t, err)
}

func TestStorageClassBindingMapLookup(t *testing.T) {
	classes := make(ResourceStorageClassBindingMap)
	classes.Put(0, 1, StorageClassUniform)

	class, err := classes.Get(0, 1)
	require.NoError(t, err)
	assert.Equal(t, StorageClassUniform, class)

	_, err = classes.Get(0, 0)
	assert.Error(t, err)
	_, err = classes.Get(7, 0)
	assert.Error(t, err)
}
