package vkrt

import (
	vk "github.com/vulkan-go/vulkan"
)

// WriteBufferDescriptor updates a single binding of the given descriptor
// set with a device buffer. Each write is applied individually so that a
// failure surfaces against the precise (set, binding) slot.
func (d *Device) WriteBufferDescriptor(set vk.DescriptorSet, binding uint32, dtype vk.DescriptorType, info vk.DescriptorBufferInfo) {
	var writeDescriptorSet = vk.WriteDescriptorSet{}
	writeDescriptorSet.SType = vk.StructureTypeWriteDescriptorSet
	writeDescriptorSet.DstSet = set
	writeDescriptorSet.DstBinding = binding
	writeDescriptorSet.DstArrayElement = 0
	writeDescriptorSet.DescriptorCount = 1
	writeDescriptorSet.DescriptorType = dtype
	writeDescriptorSet.PBufferInfo = []vk.DescriptorBufferInfo{info}

	vk.UpdateDescriptorSets(d.VKDevice, 1, []vk.WriteDescriptorSet{writeDescriptorSet}, 0, nil)
}
