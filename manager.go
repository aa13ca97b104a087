package vkrt

import (
	"sync"
)

// RuntimeManager wraps one Runtime behind a mutex. Every public entry
// point holds the mutex for the full duration of the underlying runtime
// call, so compiler-emitted host code may call in from any thread.
type RuntimeManager struct {
	mu      sync.Mutex
	runtime Runtime
}

// NewRuntimeManager constructs a manager and initializes its runtime.
func NewRuntimeManager() (*RuntimeManager, error) {
	m := &RuntimeManager{}
	if err := m.runtime.Init(); err != nil {
		return nil, err
	}
	return m, nil
}

// Destroy waits for the device to go idle and releases every Vulkan object
// the runtime owns. The manager must not be used afterwards.
func (m *RuntimeManager) Destroy() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runtime.Destroy()
}

// CreateLaunchKernelAction starts a new launch action from the given
// borrowed SPIR-V blob, entry point name and workgroup counts.
func (m *RuntimeManager) CreateLaunchKernelAction(shader []byte, entryPoint string, workGroups NumWorkGroups) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runtime.CreateLaunchKernelAction()
	m.runtime.SetShaderModule(shader)
	m.runtime.SetEntryPoint(entryPoint)
	m.runtime.SetNumWorkGroups(workGroups)
}

// CreateMemoryTransferAction appends a copy between the device buffers of
// two kernels, named by launch position in the schedule.
func (m *RuntimeManager) CreateMemoryTransferAction(srcIndex, srcBinding, dstIndex, dstBinding uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runtime.CreateMemoryTransferActionByIndex(srcIndex, srcBinding, dstIndex, dstBinding)
}

// SetResourceData binds a host buffer to one (set, binding) slot of the
// current launch action.
func (m *RuntimeManager) SetResourceData(set DescriptorSetIndex, binding BindingIndex, buf HostMemoryBuffer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runtime.SetResourceData(set, binding, buf)
}

// SetResourceStorageClassBindingMap replaces the storage class map of the
// current launch action.
func (m *RuntimeManager) SetResourceStorageClassBindingMap(classes ResourceStorageClassBindingMap) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runtime.SetResourceStorageClassBindingMap(classes)
}

// SetLaunchKernelAction materializes the current launch action and appends
// it to the schedule.
func (m *RuntimeManager) SetLaunchKernelAction() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.runtime.SetLaunchKernelAction(); err != nil {
		return err
	}
	m.runtime.AddLaunchActionToSchedule()
	return nil
}

// BindMemRef1DFloat binds a 1-D float32 memref descriptor to the given
// slot of the current launch action.
func (m *RuntimeManager) BindMemRef1DFloat(set DescriptorSetIndex, binding BindingIndex, memref *MemRef1DFloat) {
	m.SetResourceData(set, binding, memref.HostBuffer())
}

// BindMemRef2DFloat binds a 2-D float32 memref descriptor to the given
// slot of the current launch action.
func (m *RuntimeManager) BindMemRef2DFloat(set DescriptorSetIndex, binding BindingIndex, memref *MemRef2DFloat) {
	m.SetResourceData(set, binding, memref.HostBuffer())
}

// SubmitCommandBuffers records the schedule, submits it and copies results
// back into the bound host buffers.
func (m *RuntimeManager) SubmitCommandBuffers() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runtime.SubmitCommandBuffers()
}
