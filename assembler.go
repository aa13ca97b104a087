package vkrt

import (
	"github.com/pkg/errors"
)

// SetLaunchKernelAction finalizes the current action: it validates the
// resource description and materializes every Vulkan object the dispatch
// needs, in a fixed order. A failed step leaves the action partially
// materialized; the recommended recovery is to destroy the runtime.
func (r *Runtime) SetLaunchKernelAction() error {
	if err := r.checkResourceData(); err != nil {
		return err
	}
	if err := r.createMemoryBuffers(); err != nil {
		return err
	}
	if err := r.createShaderModule(); err != nil {
		return err
	}

	// Descriptor bindings divided into sets. Each descriptor binding must
	// have a layout binding attached to a descriptor set layout, and each
	// layout set must be bound into the pipeline layout.
	r.initDescriptorSetLayoutBindingMap()
	if err := r.createDescriptorSetLayouts(); err != nil {
		return err
	}
	if err := r.createPipelineLayout(); err != nil {
		return err
	}
	if err := r.createComputePipeline(); err != nil {
		return err
	}
	// Each descriptor set is allocated from a descriptor pool.
	if err := r.createDescriptorPool(); err != nil {
		return err
	}
	if err := r.allocateDescriptorSets(); err != nil {
		return err
	}
	return r.setWriteDescriptors()
}

// countDeviceMemorySize sums the host buffer sizes of the current action
// into the runtime's accumulated memory size. A zero-sized buffer is a
// resource description violation.
func (r *Runtime) countDeviceMemorySize() error {
	if r.currentAction == nil {
		return errors.New("countDeviceMemorySize: no current action")
	}

	for _, set := range r.currentAction.ResourceData.Sets {
		for _, binding := range set.Bindings {
			if binding.Buffer.Size == 0 {
				return errors.New("expected buffer size greater than zero for resource data")
			}
			r.memorySize += uint64(binding.Buffer.Size)
		}
	}
	return nil
}

func (r *Runtime) checkResourceData() error {
	if r.currentAction == nil {
		return errors.New("checkResourceData: no current action")
	}
	if r.currentAction.ResourceData.Empty() {
		return errors.New("Vulkan runtime needs at least one resource")
	}
	if len(r.currentAction.Binary) == 0 {
		return errors.New("binary shader size must be greater than zero")
	}
	return r.countDeviceMemorySize()
}

// createMemoryBuffers materializes one device buffer per declared
// (set, binding) slot: allocate device memory of the host buffer's size,
// copy the host contents in, create the buffer with the storage class's
// usage, and bind the two at offset 0.
func (r *Runtime) createMemoryBuffers() error {
	if r.currentAction == nil {
		return errors.New("createMemoryBuffers: no current action")
	}

	for _, set := range r.currentAction.ResourceData.Sets {
		deviceMemoryBuffers := make([]DeviceMemoryBuffer, 0, len(set.Bindings))

		for _, binding := range set.Bindings {
			class, err := r.currentAction.ResourceStorageClassData.Get(set.Set, binding.Binding)
			if err != nil {
				return err
			}

			descriptorType, err := class.DescriptorType()
			if err != nil {
				return errors.Errorf("storage class for resource with descriptor binding: %d in the descriptor set: %d is not supported", binding.Binding, set.Set)
			}
			bufferUsage, err := class.BufferUsage()
			if err != nil {
				return errors.Errorf("storage class for resource with descriptor binding: %d in the descriptor set: %d is not supported", binding.Binding, set.Set)
			}

			bufferSize := binding.Buffer.Size

			memory, err := r.Device.Allocate(uint64(bufferSize), r.MemoryTypeIndex)
			if err != nil {
				return err
			}

			if err := memory.MapCopyUnmap(binding.Buffer.Bytes()); err != nil {
				return err
			}

			buffer, err := r.Device.CreateBuffer(uint64(bufferSize), bufferUsage, r.QueueFamily)
			if err != nil {
				return err
			}

			if err := buffer.Bind(memory); err != nil {
				return err
			}

			deviceMemoryBuffers = append(deviceMemoryBuffers, DeviceMemoryBuffer{
				Binding:        binding.Binding,
				Memory:         memory,
				Buffer:         buffer,
				BufferInfo:     buffer.DSInfo(),
				BufferSize:     bufferSize,
				DescriptorType: descriptorType,
			})
		}

		r.currentAction.DeviceMemoryBufferMap.Append(set.Set, deviceMemoryBuffers)
	}
	return nil
}

func (r *Runtime) createShaderModule() error {
	if r.currentAction == nil {
		return errors.New("createShaderModule: no current action")
	}

	shader, err := r.Device.CreateShaderModule(r.currentAction.Binary)
	if err != nil {
		return err
	}
	r.currentAction.ShaderModule = shader
	return nil
}

// initDescriptorSetLayoutBindingMap derives, for each descriptor set, the
// layout bindings of its materialized device buffers.
func (r *Runtime) initDescriptorSetLayoutBindingMap() {
	if r.currentAction == nil {
		return
	}

	for _, set := range r.currentAction.DeviceMemoryBufferMap.Sets {
		r.currentAction.DescriptorSetLayoutBindingMap = append(r.currentAction.DescriptorSetLayoutBindingMap, ComputeLayoutBindings(set.Buffers))
	}
}

// createDescriptorSetLayouts creates one layout per descriptor set and
// records the set's size and common descriptor type in the info pool.
// Every binding in a set is expected to share one descriptor type; the
// front buffer's type stands for the set.
func (r *Runtime) createDescriptorSetLayouts() error {
	if r.currentAction == nil {
		return errors.New("createDescriptorSetLayouts: no current action")
	}

	for i, set := range r.currentAction.DeviceMemoryBufferMap.Sets {
		if i >= len(r.currentAction.DescriptorSetLayoutBindingMap) {
			return errors.Errorf("cannot find layout bindings for the set with number: %d", set.Set)
		}

		layout, err := r.Device.CreateDescriptorSetLayout(r.currentAction.DescriptorSetLayoutBindingMap[i])
		if err != nil {
			return err
		}

		r.currentAction.DescriptorSetLayouts = append(r.currentAction.DescriptorSetLayouts, layout)
		r.currentAction.DescriptorSetInfoPool = append(r.currentAction.DescriptorSetInfoPool, DescriptorSetInfo{
			DescriptorSet:  set.Set,
			DescriptorSize: len(set.Buffers),
			DescriptorType: set.Buffers[0].DescriptorType,
		})
	}
	return nil
}

func (r *Runtime) createPipelineLayout() error {
	if r.currentAction == nil {
		return errors.New("createPipelineLayout: no current action")
	}

	layout, err := r.Device.CreatePipelineLayout(r.currentAction.DescriptorSetLayouts...)
	if err != nil {
		return err
	}
	r.currentAction.PipelineLayout = layout
	return nil
}

func (r *Runtime) createComputePipeline() error {
	if r.currentAction == nil {
		return errors.New("createComputePipeline: no current action")
	}

	pipeline := &ComputePipeline{}
	pipeline.SetShaderStage(r.currentAction.EntryPoint, r.currentAction.ShaderModule)
	pipeline.SetPipelineLayout(r.currentAction.PipelineLayout)

	if err := r.Device.CreateComputePipeline(pipeline); err != nil {
		return err
	}
	r.currentAction.Pipeline = pipeline
	return nil
}

func (r *Runtime) createDescriptorPool() error {
	if r.currentAction == nil {
		return errors.New("createDescriptorPool: no current action")
	}

	pool := r.Device.NewDescriptorPool()
	for _, info := range r.currentAction.DescriptorSetInfoPool {
		pool.AddPoolSize(info.DescriptorType, info.DescriptorSize)
	}

	if _, err := r.Device.CreateDescriptorPool(pool, len(r.currentAction.DescriptorSetInfoPool)); err != nil {
		return err
	}
	r.currentAction.DescriptorPool = pool
	return nil
}

func (r *Runtime) allocateDescriptorSets() error {
	if r.currentAction == nil {
		return errors.New("allocateDescriptorSets: no current action")
	}

	sets, err := r.currentAction.DescriptorPool.Allocate(r.currentAction.DescriptorSetLayouts)
	if err != nil {
		return err
	}
	r.currentAction.DescriptorSets = sets
	return nil
}

// setWriteDescriptors writes every materialized device buffer into its
// descriptor set, one update per (set, binding) slot.
func (r *Runtime) setWriteDescriptors() error {
	if r.currentAction == nil {
		return errors.New("setWriteDescriptors: no current action")
	}

	if len(r.currentAction.DescriptorSets) != len(r.currentAction.DescriptorSetInfoPool) {
		return errors.New("each descriptor set must have descriptor set information")
	}

	for i, info := range r.currentAction.DescriptorSetInfoPool {
		descriptorSet := r.currentAction.DescriptorSets[i]
		for _, memoryBuffer := range r.currentAction.DeviceMemoryBufferMap.Lookup(info.DescriptorSet) {
			r.Device.WriteBufferDescriptor(descriptorSet, memoryBuffer.Binding, memoryBuffer.DescriptorType, memoryBuffer.BufferInfo)
		}
	}
	return nil
}
