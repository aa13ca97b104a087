package vkrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

// newTestManager skips the test when no Vulkan implementation or device is
// available on the host.
func newTestManager(t *testing.T) *RuntimeManager {
	t.Helper()
	m, err := NewRuntimeManager()
	if err != nil {
		t.Skipf("vulkan unavailable: %v", err)
	}
	return m
}

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	r := &Runtime{}
	if err := r.Init(); err != nil {
		t.Skipf("vulkan unavailable: %v", err)
	}
	return r
}

func TestRuntimeInitDestroy(t *testing.T) {
	r := newTestRuntime(t)

	assert.NotNil(t, r.Instance)
	assert.NotNil(t, r.Device)
	assert.NotNil(t, r.Queue)
	assert.NotNil(t, r.CommandPool)
	assert.True(t, r.QueueFamily.IsCompute())

	require.NoError(t, r.Destroy())
}

func TestDestroyPartiallyInitializedRuntime(t *testing.T) {
	var r Runtime
	require.NoError(t, r.Destroy())
}

func TestDoubleKernelRoundTrip(t *testing.T) {
	m := newTestManager(t)
	defer m.Destroy()

	data := make([]float32, 16)
	for i := range data {
		data[i] = float32(i)
	}
	memref := MemRef1DFloat{
		Allocated: &data[0],
		Aligned:   &data[0],
		Sizes:     [1]int64{16},
		Strides:   [1]int64{1},
	}

	m.CreateLaunchKernelAction(doubleKernelSPIRV(), "main", NumWorkGroups{X: 16, Y: 1, Z: 1})
	m.BindMemRef1DFloat(0, 0, &memref)
	require.NoError(t, m.SetLaunchKernelAction())
	require.NoError(t, m.SubmitCommandBuffers())

	for i := range data {
		assert.Equal(t, float32(2*i), data[i])
	}
}

func TestStorageBufferMaterialization(t *testing.T) {
	r := newTestRuntime(t)
	defer r.Destroy()

	data := make([]byte, 64)
	r.CreateLaunchKernelAction()
	r.SetResourceData(0, 0, hostBufferOf(data))

	require.NoError(t, r.countDeviceMemorySize())
	require.NoError(t, r.createMemoryBuffers())

	buffers := r.currentAction.DeviceMemoryBufferMap.Lookup(0)
	require.Len(t, buffers, 1)
	assert.Equal(t, vk.DescriptorTypeStorageBuffer, buffers[0].DescriptorType)
	assert.Equal(t, uint32(64), buffers[0].BufferSize)
	assert.Equal(t, vk.DeviceSize(vk.WholeSize), buffers[0].BufferInfo.Range)

	// Hand the buffers to the schedule so Destroy releases them.
	r.AddLaunchActionToSchedule()
}

func TestUniformStorageClassMaterialization(t *testing.T) {
	r := newTestRuntime(t)
	defer r.Destroy()

	data := make([]byte, 64)
	r.CreateLaunchKernelAction()
	r.SetResourceData(0, 0, hostBufferOf(data))

	classes := make(ResourceStorageClassBindingMap)
	classes.Put(0, 0, StorageClassUniform)
	r.SetResourceStorageClassBindingMap(classes)

	require.NoError(t, r.countDeviceMemorySize())
	require.NoError(t, r.createMemoryBuffers())

	buffers := r.currentAction.DeviceMemoryBufferMap.Lookup(0)
	require.Len(t, buffers, 1)
	assert.Equal(t, vk.DescriptorTypeUniformBuffer, buffers[0].DescriptorType)

	r.AddLaunchActionToSchedule()
}

func TestMissingStorageClassFailsMaterialization(t *testing.T) {
	r := newTestRuntime(t)
	defer r.Destroy()

	r.CreateLaunchKernelAction()
	r.SetResourceData(0, 0, hostBufferOf(make([]byte, 16)))
	// Replace the defaulted map with one that misses the bound slot.
	r.SetResourceStorageClassBindingMap(make(ResourceStorageClassBindingMap))

	err := r.createMemoryBuffers()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage class")
}

func TestCrossKernelCopy(t *testing.T) {
	m := newTestManager(t)
	defer m.Destroy()

	a := make([]float32, 16)
	b := make([]float32, 16)
	for i := range a {
		a[i] = float32(i)
		b[i] = 1
	}
	memrefA := MemRef1DFloat{Allocated: &a[0], Aligned: &a[0], Sizes: [1]int64{16}, Strides: [1]int64{1}}
	memrefB := MemRef1DFloat{Allocated: &b[0], Aligned: &b[0], Sizes: [1]int64{16}, Strides: [1]int64{1}}

	m.CreateLaunchKernelAction(doubleKernelSPIRV(), "main", NumWorkGroups{X: 16, Y: 1, Z: 1})
	m.BindMemRef1DFloat(0, 0, &memrefA)
	require.NoError(t, m.SetLaunchKernelAction())

	m.CreateLaunchKernelAction(doubleKernelSPIRV(), "main", NumWorkGroups{X: 16, Y: 1, Z: 1})
	m.BindMemRef1DFloat(0, 0, &memrefB)
	require.NoError(t, m.SetLaunchKernelAction())

	// Copy kernel 0's buffer over kernel 1's after both dispatches.
	require.NoError(t, m.CreateMemoryTransferAction(0, 0, 1, 0))
	require.NoError(t, m.SubmitCommandBuffers())

	for i := range a {
		assert.Equal(t, float32(2*i), a[i])
		assert.Equal(t, float32(2*i), b[i])
	}
}
