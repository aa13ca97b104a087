package vkrt

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

type PhysicalDevice struct {
	DeviceName                 string
	VKPhysicalDevice           vk.PhysicalDevice
	VKPhysicalDeviceProperties vk.PhysicalDeviceProperties
}

func (p *PhysicalDevice) String() string {
	return p.DeviceName
}

func (p *PhysicalDevice) QueueFamilies() (QueueFamilySlice, error) {
	var queueFamilyCount uint32

	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &queueFamilyCount, nil)

	if queueFamilyCount == 0 {
		return nil, nil
	}

	queues := make([]vk.QueueFamilyProperties, queueFamilyCount)

	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &queueFamilyCount, queues)

	ret := make([]*QueueFamily, queueFamilyCount)
	for i, queue := range queues {

		ret[i] = &QueueFamily{Index: i, PhysicalDevice: p, VKQueueFamilyProperties: queue}

		ret[i].VKQueueFamilyProperties.Deref()

	}

	return ret, nil

}

// CreateLogicalDevice creates a logical device with a single queue of
// priority 1.0 from the given family. No layers, extensions or device
// features are enabled.
func (p *PhysicalDevice) CreateLogicalDevice(qf *QueueFamily) (*Device, error) {

	queueCreateInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: uint32(qf.Index),
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: 1,
		PQueueCreateInfos:    []vk.DeviceQueueCreateInfo{queueCreateInfo},
	}

	var ldevice vk.Device

	err := vkCheck(vk.CreateDevice(p.VKPhysicalDevice, &deviceCreateInfo, nil, &ldevice), "vkCreateDevice")
	if err != nil {
		return nil, err
	}

	var device Device
	device.PhysicalDevice = p
	device.VKDevice = ldevice

	return &device, nil
}

func (p *PhysicalDevice) VKPhysicalDeviceMemoryProperties() vk.PhysicalDeviceMemoryProperties {
	var memoryProperties vk.PhysicalDeviceMemoryProperties

	vk.GetPhysicalDeviceMemoryProperties(p.VKPhysicalDevice, &memoryProperties)
	return memoryProperties
}

// FindHostVisibleCoherentType returns the first memory type index which is
// host visible, host coherent and whose heap is at least minHeapSize bytes.
//
// VK_MEMORY_PROPERTY_HOST_VISIBLE_BIT specifies that memory allocated with
// this type can be mapped for host access using vkMapMemory;
// VK_MEMORY_PROPERTY_HOST_COHERENT_BIT specifies that the host cache
// management commands vkFlushMappedMemoryRanges and
// vkInvalidateMappedMemoryRanges are not needed to flush host writes to the
// device or make device writes visible to the host.
func (p *PhysicalDevice) FindHostVisibleCoherentType(minHeapSize uint64) (uint32, error) {
	memoryProperties := p.VKPhysicalDeviceMemoryProperties()
	mp := &memoryProperties
	mp.Deref()

	wanted := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)

	var i uint32
	for i = 0; i < mp.MemoryTypeCount; i++ {
		mt := mp.MemoryTypes[i]
		mt.Deref()

		if mt.PropertyFlags&wanted != wanted {
			continue
		}

		heap := mp.MemoryHeaps[mt.HeapIndex]
		heap.Deref()
		if uint64(heap.Size) >= minHeapSize {
			return i, nil
		}
	}
	return 0, errors.Errorf("no host visible and coherent memory type with a heap of %d bytes", minHeapSize)
}
