package vkrt

import (
	vk "github.com/vulkan-go/vulkan"
)

// Buffer wraps a Vulkan buffer that backs one (set, binding) resource slot
// or one side of a buffer copy.
type Buffer struct {
	Device   *Device
	VKBuffer vk.Buffer
	Size     uint64
}

// CreateBuffer creates a buffer of the given size and usage owned
// exclusively by the given queue family.
func (d *Device) CreateBuffer(sizeInBytes uint64, usage vk.BufferUsageFlagBits, qf *QueueFamily) (*Buffer, error) {

	bufferCreateInfo := vk.BufferCreateInfo{
		SType:                 vk.StructureTypeBufferCreateInfo,
		Size:                  vk.DeviceSize(sizeInBytes),
		Usage:                 vk.BufferUsageFlags(usage),
		SharingMode:           vk.SharingModeExclusive,
		QueueFamilyIndexCount: 1,
		PQueueFamilyIndices:   []uint32{uint32(qf.Index)},
	}

	var buffer vk.Buffer
	err := vkCheck(vk.CreateBuffer(d.VKDevice, &bufferCreateInfo, nil, &buffer), "vkCreateBuffer")
	if err != nil {
		return nil, err
	}

	var ret Buffer
	ret.VKBuffer = buffer
	ret.Device = d
	ret.Size = sizeInBytes

	return &ret, nil

}

// DSInfo returns the descriptor buffer info binding the whole buffer.
func (b *Buffer) DSInfo() vk.DescriptorBufferInfo {
	var descriptorBufferInfo = vk.DescriptorBufferInfo{}
	descriptorBufferInfo.Buffer = b.VKBuffer
	descriptorBufferInfo.Offset = 0
	descriptorBufferInfo.Range = vk.DeviceSize(vk.WholeSize)
	return descriptorBufferInfo
}

// Bind binds this buffer to the given device memory at offset 0.
func (b *Buffer) Bind(memory *DeviceMemory) error {
	return vkCheck(vk.BindBufferMemory(b.Device.VKDevice, b.VKBuffer, memory.VKDeviceMemory, 0), "vkBindBufferMemory")
}

func (b *Buffer) Destroy() {
	vk.DestroyBuffer(b.Device.VKDevice, b.VKBuffer, nil)
}
