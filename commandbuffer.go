package vkrt

import (
	vk "github.com/vulkan-go/vulkan"
)

// CommandBuffer describes the sequence of barriers, binds, dispatches and
// copies the schedule records. Not all available vulkan commands are
// wrapped; only the ones the compute schedule emits.
type CommandBuffer struct {
	VKCommandBuffer vk.CommandBuffer
}

// VK is a utility function for accessing the native vulkan command buffer
func (c *CommandBuffer) VK() vk.CommandBuffer {
	return c.VKCommandBuffer
}

// BeginOneTime begins capturing work for this command buffer, with the
// stipulation that it will only be submitted once
func (c *CommandBuffer) BeginOneTime() error {
	var beginInfo = vk.CommandBufferBeginInfo{}
	beginInfo.SType = vk.StructureTypeCommandBufferBeginInfo
	beginInfo.Flags = vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit)
	return vkCheck(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo), "vkBeginCommandBuffer")

}

func (c *CommandBuffer) CmdBindComputePipeline(p *ComputePipeline) {
	vk.CmdBindPipeline(c.VKCommandBuffer, vk.PipelineBindPointCompute, p.VKPipeline)
}

func (c *CommandBuffer) CmdBindDescriptorSets(layout *PipelineLayout, firstSet int, descriptorSets []vk.DescriptorSet) {
	vk.CmdBindDescriptorSets(c.VKCommandBuffer, vk.PipelineBindPointCompute,
		layout.VKPipelineLayout, uint32(firstSet), uint32(len(descriptorSets)), descriptorSets, 0, nil)
}

func (c *CommandBuffer) CmdDispatch(x, y, z uint32) {
	vk.CmdDispatch(c.VKCommandBuffer, x, y, z)
}

// CmdComputeBufferBarriers emits a compute-to-compute pipeline barrier
// carrying only the given buffer memory barriers.
func (c *CommandBuffer) CmdComputeBufferBarriers(barriers []vk.BufferMemoryBarrier) {
	vk.CmdPipelineBarrier(c.VKCommandBuffer,
		vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit),
		vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit),
		0,
		0, nil,
		uint32(len(barriers)), barriers,
		0, nil)
}

func (c *CommandBuffer) CmdCopyBuffer(src *Buffer, dst *Buffer, regions []vk.BufferCopy) {
	vk.CmdCopyBuffer(c.VKCommandBuffer, src.VKBuffer, dst.VKBuffer, uint32(len(regions)), regions)
}

// End describing work for this command buffer
func (c *CommandBuffer) End() error {
	return vkCheck(vk.EndCommandBuffer(c.VKCommandBuffer), "vkEndCommandBuffer")
}
