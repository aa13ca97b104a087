package vkrt

import (
	vk "github.com/vulkan-go/vulkan"
)

// NumWorkGroups holds the workgroup counts of a dispatch.
type NumWorkGroups struct {
	X uint32
	Y uint32
	Z uint32
}

// Action is one unit of scheduled work: either a kernel launch or a buffer
// copy. The schedule is a totally ordered list of actions and the recorder
// switches over the concrete type.
type Action interface {
	isAction()
}

// LaunchKernelAction is a single compute dispatch: the SPIR-V kernel, its
// declared resources, the workgroup counts, and - once the action is
// finalized - every Vulkan object materialized for it.
type LaunchKernelAction struct {
	// Binary is the borrowed SPIR-V blob; EntryPoint the kernel's entry
	// function inside it.
	Binary     []byte
	EntryPoint string
	WorkGroups NumWorkGroups

	ResourceData             ResourceData
	ResourceStorageClassData ResourceStorageClassBindingMap

	// Deps are buffer memory barriers emitted before the dispatch. Their
	// buffers belong to earlier launch actions in the schedule.
	Deps []vk.BufferMemoryBarrier

	// Materialized state, populated by the pipeline assembler.
	DeviceMemoryBufferMap         DeviceMemoryBufferMap
	DescriptorSetLayoutBindingMap [][]vk.DescriptorSetLayoutBinding
	DescriptorSetLayouts          []*DescriptorSetLayout
	DescriptorSetInfoPool         []DescriptorSetInfo
	PipelineLayout                *PipelineLayout
	Pipeline                      *ComputePipeline
	DescriptorPool                *DescriptorPool
	DescriptorSets                []vk.DescriptorSet
	ShaderModule                  *ShaderModule
}

func (a *LaunchKernelAction) isAction() {}

// NewLaunchKernelAction returns an empty launch action ready for the
// setters.
func NewLaunchKernelAction() *LaunchKernelAction {
	return &LaunchKernelAction{
		ResourceStorageClassData: make(ResourceStorageClassBindingMap),
	}
}

// DescriptorSetInfo records, per descriptor set, how many descriptors the
// set holds and their common type. The descriptor pool is sized from these
// entries.
type DescriptorSetInfo struct {
	DescriptorSet  DescriptorSetIndex
	DescriptorSize int
	DescriptorType vk.DescriptorType
}

// MemoryTransferAction copies regions between two device buffers that
// belong to launch actions in the schedule.
type MemoryTransferAction struct {
	Src     *Buffer
	Dst     *Buffer
	Regions []vk.BufferCopy
}

func (a *MemoryTransferAction) isAction() {}
