package vkrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestSettersWithoutCurrentActionAreNoOps(t *testing.T) {
	var r Runtime

	r.SetNumWorkGroups(NumWorkGroups{X: 1, Y: 2, Z: 3})
	r.SetEntryPoint("main")
	r.SetShaderModule([]byte{1, 2, 3, 4})
	r.SetResourceData(0, 0, hostBufferOf(make([]byte, 4)))
	r.SetResourceDataMap(ResourceData{})
	r.SetResourceStorageClassBindingMap(make(ResourceStorageClassBindingMap))
	r.SetDeps([]vk.BufferMemoryBarrier{{}})

	assert.Nil(t, r.currentAction)
	assert.Empty(t, r.Schedule())
}

func TestSettersPopulateCurrentAction(t *testing.T) {
	var r Runtime
	r.CreateLaunchKernelAction()

	shader := []byte{3, 2, 35, 7}
	r.SetShaderModule(shader)
	r.SetEntryPoint("main")
	r.SetNumWorkGroups(NumWorkGroups{X: 4, Y: 2, Z: 1})
	r.SetResourceData(0, 1, hostBufferOf(make([]byte, 8)))

	action := r.currentAction
	require.NotNil(t, action)
	assert.Equal(t, shader, action.Binary)
	assert.Equal(t, "main", action.EntryPoint)
	assert.Equal(t, NumWorkGroups{X: 4, Y: 2, Z: 1}, action.WorkGroups)

	// The single-slot setter defaults the slot's storage class.
	class, err := action.ResourceStorageClassData.Get(0, 1)
	require.NoError(t, err)
	assert.Equal(t, StorageClassStorageBuffer, class)
}

func TestCreateLaunchKernelActionReplacesCurrent(t *testing.T) {
	var r Runtime

	r.CreateLaunchKernelAction()
	r.SetEntryPoint("first")
	first := r.currentAction

	r.CreateLaunchKernelAction()
	assert.NotSame(t, first, r.currentAction)
	assert.Empty(t, r.currentAction.EntryPoint)
	assert.Empty(t, r.Schedule())
}

func TestAddLaunchActionToSchedule(t *testing.T) {
	var r Runtime

	r.CreateLaunchKernelAction()
	action := r.currentAction
	r.AddLaunchActionToSchedule()

	assert.Nil(t, r.currentAction)
	require.Len(t, r.Schedule(), 1)
	assert.Same(t, action, r.Schedule()[0].(*LaunchKernelAction))
}

func TestCheckResourceDataRequiresResources(t *testing.T) {
	var r Runtime
	r.CreateLaunchKernelAction()
	r.SetShaderModule([]byte{1, 2, 3, 4})

	err := r.checkResourceData()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one resource")
}

func TestCheckResourceDataRequiresShaderBinary(t *testing.T) {
	var r Runtime
	r.CreateLaunchKernelAction()
	r.SetResourceData(0, 0, hostBufferOf(make([]byte, 4)))

	err := r.checkResourceData()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binary shader size")
}

func TestCountDeviceMemorySizeRejectsZeroSizedBuffers(t *testing.T) {
	var r Runtime
	r.CreateLaunchKernelAction()
	r.currentAction.ResourceData.Put(0, 0, HostMemoryBuffer{})

	err := r.countDeviceMemorySize()
	require.Error(t, err)
	assert.Zero(t, r.MemorySize())
}

func TestMemorySizeAccumulatesAcrossActions(t *testing.T) {
	var r Runtime

	r.CreateLaunchKernelAction()
	r.SetResourceData(0, 0, hostBufferOf(make([]byte, 64)))
	r.SetResourceData(0, 1, hostBufferOf(make([]byte, 32)))
	require.NoError(t, r.countDeviceMemorySize())

	r.CreateLaunchKernelAction()
	r.SetResourceData(0, 0, hostBufferOf(make([]byte, 4)))
	require.NoError(t, r.countDeviceMemorySize())

	assert.Equal(t, uint64(100), r.MemorySize())
}

func TestCreateMemoryTransferActionAppendsSingleRegion(t *testing.T) {
	var r Runtime

	src := &Buffer{Size: 16}
	dst := &Buffer{Size: 16}
	r.CreateMemoryTransferAction(src, dst, 16)

	require.Len(t, r.Schedule(), 1)
	xfer := r.Schedule()[0].(*MemoryTransferAction)
	assert.Same(t, src, xfer.Src)
	assert.Same(t, dst, xfer.Dst)
	require.Len(t, xfer.Regions, 1)
	assert.Equal(t, vk.DeviceSize(0), xfer.Regions[0].SrcOffset)
	assert.Equal(t, vk.DeviceSize(0), xfer.Regions[0].DstOffset)
	assert.Equal(t, vk.DeviceSize(16), xfer.Regions[0].Size)
}

func TestTransferByIndexRejectsUnknownKernel(t *testing.T) {
	var r Runtime

	err := r.CreateMemoryTransferActionByIndex(2, 0, 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid kernel index")
}

func TestTransferByIndexRejectsMismatchedSizes(t *testing.T) {
	var r Runtime

	srcKernel := NewLaunchKernelAction()
	srcKernel.DeviceMemoryBufferMap.Append(0, []DeviceMemoryBuffer{
		{Binding: 0, Buffer: &Buffer{Size: 16}, BufferSize: 16},
	})
	dstKernel := NewLaunchKernelAction()
	dstKernel.DeviceMemoryBufferMap.Append(0, []DeviceMemoryBuffer{
		{Binding: 0, Buffer: &Buffer{Size: 32}, BufferSize: 32},
	})
	r.schedule = append(r.schedule, srcKernel, dstKernel)

	err := r.CreateMemoryTransferActionByIndex(0, 0, 1, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different buffer sizes")
}

func TestTransferByIndexResolvesKernelsByLaunchPosition(t *testing.T) {
	var r Runtime

	srcKernel := NewLaunchKernelAction()
	srcKernel.DeviceMemoryBufferMap.Append(0, []DeviceMemoryBuffer{
		{Binding: 1, Buffer: &Buffer{Size: 16}, BufferSize: 16},
	})
	r.schedule = append(r.schedule, srcKernel)

	// A transfer between the launches must not shift kernel numbering.
	r.CreateMemoryTransferAction(&Buffer{}, &Buffer{}, 4)

	dstKernel := NewLaunchKernelAction()
	dstKernel.DeviceMemoryBufferMap.Append(0, []DeviceMemoryBuffer{
		{Binding: 0, Buffer: &Buffer{Size: 16}, BufferSize: 16},
	})
	r.schedule = append(r.schedule, dstKernel)

	require.NoError(t, r.CreateMemoryTransferActionByIndex(0, 1, 1, 0))

	actions := r.Schedule()
	require.Len(t, actions, 4)
	xfer := actions[3].(*MemoryTransferAction)
	assert.Same(t, srcKernel.DeviceMemoryBufferMap.Lookup(0)[0].Buffer, xfer.Src)
	assert.Same(t, dstKernel.DeviceMemoryBufferMap.Lookup(0)[0].Buffer, xfer.Dst)
}

func TestTransferByIndexResolvesCurrentAction(t *testing.T) {
	var r Runtime

	srcKernel := NewLaunchKernelAction()
	srcKernel.DeviceMemoryBufferMap.Append(0, []DeviceMemoryBuffer{
		{Binding: 0, Buffer: &Buffer{Size: 8}, BufferSize: 8},
	})
	r.schedule = append(r.schedule, srcKernel)

	// Index one past the last launch names the action under construction.
	r.CreateLaunchKernelAction()
	r.currentAction.DeviceMemoryBufferMap.Append(0, []DeviceMemoryBuffer{
		{Binding: 2, Buffer: &Buffer{Size: 8}, BufferSize: 8},
	})

	require.NoError(t, r.CreateMemoryTransferActionByIndex(0, 0, 1, 2))

	actions := r.Schedule()
	require.Len(t, actions, 2)
	xfer := actions[1].(*MemoryTransferAction)
	assert.Same(t, r.currentAction.DeviceMemoryBufferMap.Lookup(0)[0].Buffer, xfer.Dst)
}
