package vkrt

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSetLayout is the layout of one descriptor set of a launch
// action: one binding per materialized device buffer, all visible to the
// compute stage only.
type DescriptorSetLayout struct {
	Device                        *Device
	VKDescriptorSetLayout         vk.DescriptorSetLayout
	VKDescriptorSetLayoutBindings []vk.DescriptorSetLayoutBinding
}

// ComputeLayoutBindings derives the layout bindings of one descriptor set
// from its materialized device buffers: a single descriptor per binding,
// the descriptor type copied from the buffer, compute stage visibility.
func ComputeLayoutBindings(buffers []DeviceMemoryBuffer) []vk.DescriptorSetLayoutBinding {
	bindings := make([]vk.DescriptorSetLayoutBinding, 0, len(buffers))
	for _, memBuffer := range buffers {
		bindings = append(bindings, vk.DescriptorSetLayoutBinding{
			Binding:         memBuffer.Binding,
			DescriptorType:  memBuffer.DescriptorType,
			DescriptorCount: 1,
			StageFlags:      vk.ShaderStageFlags(vk.ShaderStageComputeBit),
		})
	}
	return bindings
}

// CreateDescriptorSetLayout creates the layout of one descriptor set from
// its layout bindings.
func (d *Device) CreateDescriptorSetLayout(bindings []vk.DescriptorSetLayoutBinding) (*DescriptorSetLayout, error) {
	var descriptorSetLayoutCreateInfo = &vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}

	var descriptorSetLayout vk.DescriptorSetLayout
	err := vkCheck(vk.CreateDescriptorSetLayout(d.VKDevice, descriptorSetLayoutCreateInfo, nil, &descriptorSetLayout), "vkCreateDescriptorSetLayout")
	if err != nil {
		return nil, err
	}

	return &DescriptorSetLayout{
		Device:                        d,
		VKDescriptorSetLayout:         descriptorSetLayout,
		VKDescriptorSetLayoutBindings: bindings,
	}, nil
}

// Destroy destroys this descriptor set layout
func (d *DescriptorSetLayout) Destroy() {
	vk.DestroyDescriptorSetLayout(d.Device.VKDevice, d.VKDescriptorSetLayout, nil)
}
