package vkrt

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
	"k8s.io/klog/v2"
)

// Runtime is the Vulkan compute execution engine. It owns the instance,
// device, queue and command pool, the schedule of actions, and the launch
// action currently under construction.
//
// A Runtime is not safe for concurrent use; RuntimeManager serializes it.
type Runtime struct {
	Instance       *Instance
	PhysicalDevice *PhysicalDevice
	Device         *Device
	QueueFamily    *QueueFamily
	Queue          *Queue
	CommandPool    *CommandPool

	// MemoryTypeIndex is the host visible and coherent memory type every
	// device buffer is allocated from.
	MemoryTypeIndex uint32

	// memorySize accumulates the host buffer sizes of every launch action
	// ever checked, in bytes.
	memorySize uint64

	commandBuffers []*CommandBuffer
	schedule       []Action
	currentAction  *LaunchKernelAction
}

// Init brings up the whole Vulkan stack: loader, instance, physical
// device, compute queue family, logical device, memory type, queue and
// command pool.
//
// The memory type is selected once, against the memory size accumulated so
// far; on a fresh runtime that is zero and the predicate degenerates to
// host-visible plus host-coherent.
func (r *Runtime) Init() error {
	if err := InitializeForComputeOnly(); err != nil {
		return errors.Wrap(err, "vulkan loader init")
	}

	app := App{
		Name:       "vkrt compute runtime",
		EngineName: "vkrt",
		APIVersion: Version{Major: 1, Minor: 0, Patch: 0},
	}

	instance, err := app.CreateInstance()
	if err != nil {
		return err
	}
	r.Instance = instance

	devices, err := instance.PhysicalDevices()
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		return errors.New("no vulkan capable physical device found")
	}
	r.PhysicalDevice = devices[0]

	families, err := r.PhysicalDevice.QueueFamilies()
	if err != nil {
		return err
	}
	r.QueueFamily, err = families.BestCompute()
	if err != nil {
		return err
	}

	r.Device, err = r.PhysicalDevice.CreateLogicalDevice(r.QueueFamily)
	if err != nil {
		return err
	}

	r.MemoryTypeIndex, err = r.PhysicalDevice.FindHostVisibleCoherentType(r.memorySize)
	if err != nil {
		return err
	}

	r.Queue = r.Device.GetQueue(r.QueueFamily)

	r.CommandPool, err = r.Device.CreateCommandPool(r.QueueFamily)
	if err != nil {
		return err
	}

	return nil
}

// Destroy waits for the device to go idle and then releases every Vulkan
// object the runtime owns, in reverse creation order. It is safe to call
// on a partially initialized runtime.
func (r *Runtime) Destroy() error {
	if r.Device == nil {
		if r.Instance != nil {
			r.Instance.Destroy()
			r.Instance = nil
		}
		return nil
	}

	// To ensure that no work is active on the device, vkDeviceWaitIdle is
	// used to gate the destruction of every object created from it.
	if err := r.Device.WaitIdle(); err != nil {
		return err
	}

	if r.CommandPool != nil {
		r.CommandPool.FreeBuffers(r.commandBuffers)
		r.commandBuffers = nil
		r.CommandPool.Destroy()
		r.CommandPool = nil
	}

	for _, action := range r.schedule {
		kernel, ok := action.(*LaunchKernelAction)
		if !ok {
			continue
		}
		r.destroyLaunchKernelAction(kernel)
	}
	r.schedule = nil

	// A failed SetLaunchKernelAction leaves a partially materialized
	// action behind; release whatever it managed to create.
	if r.currentAction != nil {
		r.destroyLaunchKernelAction(r.currentAction)
		r.currentAction = nil
	}

	r.Device.Destroy()
	r.Device = nil
	r.Instance.Destroy()
	r.Instance = nil
	return nil
}

func (r *Runtime) destroyLaunchKernelAction(kernel *LaunchKernelAction) {
	if kernel.DescriptorPool != nil {
		if err := kernel.DescriptorPool.Free(kernel.DescriptorSets); err != nil {
			klog.Errorf("releasing descriptor sets: %v", err)
		}
		kernel.DescriptorPool.Destroy()
	}
	if kernel.Pipeline != nil {
		kernel.Pipeline.Destroy()
	}
	if kernel.PipelineLayout != nil {
		kernel.PipelineLayout.Destroy()
	}
	for _, layout := range kernel.DescriptorSetLayouts {
		layout.Destroy()
	}
	if kernel.ShaderModule != nil {
		kernel.ShaderModule.Destroy()
	}

	for _, set := range kernel.DeviceMemoryBufferMap.Sets {
		for _, memoryBuffer := range set.Buffers {
			memoryBuffer.Buffer.Destroy()
			memoryBuffer.Memory.Destroy()
		}
	}
}

// CreateLaunchKernelAction replaces the current action with a fresh empty
// launch action. A previous current action that was never added to the
// schedule is dropped.
func (r *Runtime) CreateLaunchKernelAction() {
	r.currentAction = NewLaunchKernelAction()
}

// AddLaunchActionToSchedule transfers the current action to the schedule.
func (r *Runtime) AddLaunchActionToSchedule() {
	r.schedule = append(r.schedule, r.currentAction)
	r.currentAction = nil
}

// SetNumWorkGroups sets the dispatch counts of the current action.
func (r *Runtime) SetNumWorkGroups(workGroups NumWorkGroups) {
	if r.currentAction == nil {
		klog.Error("SetNumWorkGroups: no current action")
		return
	}
	r.currentAction.WorkGroups = workGroups
}

// SetResourceStorageClassBindingMap replaces the storage class map of the
// current action.
func (r *Runtime) SetResourceStorageClassBindingMap(classes ResourceStorageClassBindingMap) {
	if r.currentAction == nil {
		klog.Error("SetResourceStorageClassBindingMap: no current action")
		return
	}
	r.currentAction.ResourceStorageClassData = classes
}

// SetResourceData binds a host buffer to one (set, binding) slot of the
// current action. The slot's storage class defaults to StorageBuffer.
func (r *Runtime) SetResourceData(set DescriptorSetIndex, binding BindingIndex, buf HostMemoryBuffer) {
	if r.currentAction == nil {
		klog.Error("SetResourceData: no current action")
		return
	}
	r.currentAction.ResourceData.Put(set, binding, buf)
	r.currentAction.ResourceStorageClassData.Put(set, binding, StorageClassStorageBuffer)
}

// SetResourceDataMap replaces the whole resource map of the current action.
func (r *Runtime) SetResourceDataMap(data ResourceData) {
	if r.currentAction == nil {
		klog.Error("SetResourceDataMap: no current action")
		return
	}
	r.currentAction.ResourceData = data
}

// SetEntryPoint sets the kernel entry point name of the current action.
func (r *Runtime) SetEntryPoint(entryPoint string) {
	if r.currentAction == nil {
		klog.Error("SetEntryPoint: no current action")
		return
	}
	r.currentAction.EntryPoint = entryPoint
}

// SetShaderModule sets the borrowed SPIR-V blob of the current action.
func (r *Runtime) SetShaderModule(binary []byte) {
	if r.currentAction == nil {
		klog.Error("SetShaderModule: no current action")
		return
	}
	r.currentAction.Binary = binary
}

// SetDeps sets the buffer memory barriers emitted before the current
// action's dispatch.
func (r *Runtime) SetDeps(deps []vk.BufferMemoryBarrier) {
	if r.currentAction == nil {
		klog.Error("SetDeps: no current action")
		return
	}
	r.currentAction.Deps = deps
}

// CreateMemoryTransferAction appends a copy of size bytes from src to dst
// to the schedule, as a single region starting at offset 0 on both sides.
func (r *Runtime) CreateMemoryTransferAction(src *Buffer, dst *Buffer, size uint64) {
	r.schedule = append(r.schedule, &MemoryTransferAction{
		Src:     src,
		Dst:     dst,
		Regions: []vk.BufferCopy{{SrcOffset: 0, DstOffset: 0, Size: vk.DeviceSize(size)}},
	})
}

// CreateMemoryTransferActionByIndex appends a copy between the device
// buffers of two kernels. Kernels are named by their position among the
// launch actions of the schedule; an index equal to the number of launches
// refers to the action currently under construction. Both sides resolve
// against descriptor set 0 and the two buffers must have equal sizes.
func (r *Runtime) CreateMemoryTransferActionByIndex(srcIndex, srcBinding, dstIndex, dstBinding uint64) error {
	var kernelSrc, kernelDst *LaunchKernelAction
	var kernelIndex uint64

	for _, action := range r.schedule {
		kernel, ok := action.(*LaunchKernelAction)
		if !ok {
			continue
		}
		if srcIndex == kernelIndex {
			kernelSrc = kernel
		}
		if dstIndex == kernelIndex {
			kernelDst = kernel
		}
		kernelIndex++
	}

	if kernelIndex == dstIndex {
		kernelDst = r.currentAction
	}
	if kernelIndex == srcIndex {
		kernelSrc = r.currentAction
	}

	if kernelSrc == nil || kernelDst == nil {
		return errors.New("createMemoryTransferAction: invalid kernel index")
	}

	const descriptorSetIndex = 0

	var bufferSrc, bufferDst *Buffer
	var bufferSizeSrc, bufferSizeDst uint32

	for _, memoryBuffer := range kernelSrc.DeviceMemoryBufferMap.Lookup(descriptorSetIndex) {
		if uint64(memoryBuffer.Binding) == srcBinding {
			bufferSrc = memoryBuffer.Buffer
			bufferSizeSrc = memoryBuffer.BufferSize
		}
	}

	for _, memoryBuffer := range kernelDst.DeviceMemoryBufferMap.Lookup(descriptorSetIndex) {
		if uint64(memoryBuffer.Binding) == dstBinding {
			bufferDst = memoryBuffer.Buffer
			bufferSizeDst = memoryBuffer.BufferSize
		}
	}

	if bufferSizeSrc != bufferSizeDst {
		return errors.New("createMemoryTransferAction: different buffer sizes")
	}

	r.CreateMemoryTransferAction(bufferSrc, bufferDst, uint64(bufferSizeDst))
	return nil
}

// Schedule returns the actions appended so far, in execution order.
func (r *Runtime) Schedule() []Action {
	return r.schedule
}

// MemorySize returns the accumulated host buffer size of every launch
// action checked so far.
func (r *Runtime) MemorySize() uint64 {
	return r.memorySize
}
