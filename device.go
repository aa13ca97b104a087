package vkrt

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Device struct {
	PhysicalDevice *PhysicalDevice
	VKDevice       vk.Device
}

func (d *Device) Destroy() {
	vk.DestroyDevice(d.VKDevice, nil)
}

func (d *Device) String() string {
	return fmt.Sprintf("{ PhysicalDevice: %s }", d.PhysicalDevice)
}

func (d *Device) WaitIdle() error {
	return vkCheck(vk.DeviceWaitIdle(d.VKDevice), "vkDeviceWaitIdle")
}

func (d *Device) GetQueue(qf *QueueFamily) *Queue {

	var vkq vk.Queue

	vk.GetDeviceQueue(d.VKDevice, uint32(qf.Index), 0, &vkq)

	var queue Queue
	queue.QueueFamily = qf
	queue.Device = d
	queue.VKQueue = vkq

	return &queue
}

// Allocate allocates device memory of exactly sizeInBytes bytes from the
// given memory type.
func (d *Device) Allocate(sizeInBytes uint64, memoryTypeIndex uint32) (*DeviceMemory, error) {

	var allocateInfo = vk.MemoryAllocateInfo{}
	allocateInfo.SType = vk.StructureTypeMemoryAllocateInfo
	allocateInfo.AllocationSize = vk.DeviceSize(sizeInBytes)
	allocateInfo.MemoryTypeIndex = memoryTypeIndex

	var deviceMemory vk.DeviceMemory

	err := vkCheck(vk.AllocateMemory(d.VKDevice, &allocateInfo, nil, &deviceMemory), "vkAllocateMemory")
	if err != nil {
		return nil, err
	}

	var ret DeviceMemory

	ret.Size = sizeInBytes
	ret.Device = d
	ret.VKDeviceMemory = deviceMemory

	return &ret, nil
}
