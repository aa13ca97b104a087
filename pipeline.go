package vkrt

import (
	vk "github.com/vulkan-go/vulkan"
)

type ComputePipeline struct {
	Device                          *Device
	VKPipeline                      vk.Pipeline
	VKPipelineShaderStageCreateInfo vk.PipelineShaderStageCreateInfo
	VKPipelineLayout                vk.PipelineLayout
}

func (c *ComputePipeline) SetPipelineLayout(layout *PipelineLayout) {
	c.VKPipelineLayout = layout.VKPipelineLayout
}

func (c *ComputePipeline) SetShaderStage(entryPoint string, shaderModule *ShaderModule) {
	c.VKPipelineShaderStageCreateInfo = shaderModule.VKPipelineShaderStageCreateInfo(vk.ShaderStageComputeBit, entryPoint)
}

// CreateComputePipeline creates a single-stage compute pipeline from the
// configured shader stage and pipeline layout.
func (d *Device) CreateComputePipeline(cp *ComputePipeline) error {

	var pipelineCreateInfo = vk.ComputePipelineCreateInfo{}
	pipelineCreateInfo.SType = vk.StructureTypeComputePipelineCreateInfo
	pipelineCreateInfo.Stage = cp.VKPipelineShaderStageCreateInfo
	pipelineCreateInfo.Layout = cp.VKPipelineLayout

	pipelines := make([]vk.Pipeline, 1)

	err := vkCheck(vk.CreateComputePipelines(
		d.VKDevice, vk.PipelineCache(vk.NullHandle),
		1, []vk.ComputePipelineCreateInfo{pipelineCreateInfo},
		nil, pipelines), "vkCreateComputePipelines")

	if err != nil {
		return err
	}

	cp.Device = d
	cp.VKPipeline = pipelines[0]

	return nil

}

func (c *ComputePipeline) Destroy() {
	vk.DestroyPipeline(c.Device.VKDevice, c.VKPipeline, nil)
}
