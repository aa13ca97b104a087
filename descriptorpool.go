package vkrt

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorPool is a resource manager for the descriptor sets of one
// launch action: one pool size entry per descriptor set.
type DescriptorPool struct {
	Device               *Device
	VKDescriptorPool     vk.DescriptorPool
	VKDescriptorPoolSize []vk.DescriptorPoolSize
}

func (d *Device) NewDescriptorPool() *DescriptorPool {
	return &DescriptorPool{Device: d}
}

// AddPoolSize informs the descriptor pool how many of a certain descriptor type it will contain
func (d *DescriptorPool) AddPoolSize(dtype vk.DescriptorType, count int) {
	if d.VKDescriptorPoolSize == nil {
		d.VKDescriptorPoolSize = make([]vk.DescriptorPoolSize, 0)
	}
	d.VKDescriptorPoolSize = append(d.VKDescriptorPoolSize, vk.DescriptorPoolSize{
		Type:            dtype,
		DescriptorCount: uint32(count),
	})
}

// CreateDescriptorPool creates the descriptor pool. The pool is created
// with the free-descriptor-set flag so the sets can be released
// individually during teardown.
func (d *Device) CreateDescriptorPool(pool *DescriptorPool, maxSets int) (*DescriptorPool, error) {

	var descriptorPoolCreateInfo = vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       uint32(maxSets),
		Flags:         vk.DescriptorPoolCreateFlags(vk.DescriptorPoolCreateFreeDescriptorSetBit),
		PoolSizeCount: uint32(len(pool.VKDescriptorPoolSize)),
		PPoolSizes:    pool.VKDescriptorPoolSize,
	}

	var descriptorPool vk.DescriptorPool
	err := vkCheck(vk.CreateDescriptorPool(d.VKDevice, &descriptorPoolCreateInfo, nil, &descriptorPool), "vkCreateDescriptorPool")

	if err != nil {
		return nil, err
	}

	pool.Device = d
	pool.VKDescriptorPool = descriptorPool

	return pool, nil

}

// Allocate allocates one descriptor set per layout from the pool.
func (d *DescriptorPool) Allocate(layouts []*DescriptorSetLayout) ([]vk.DescriptorSet, error) {

	dsl := make([]vk.DescriptorSetLayout, len(layouts))
	for i, ds := range layouts {
		dsl[i] = ds.VKDescriptorSetLayout
	}

	descriptorSetAllocateInfo := vk.DescriptorSetAllocateInfo{}
	descriptorSetAllocateInfo.SType = vk.StructureTypeDescriptorSetAllocateInfo
	descriptorSetAllocateInfo.DescriptorPool = d.VKDescriptorPool
	descriptorSetAllocateInfo.DescriptorSetCount = uint32(len(layouts))
	descriptorSetAllocateInfo.PSetLayouts = dsl

	descriptorSets := make([]vk.DescriptorSet, len(layouts))
	err := vkCheck(vk.AllocateDescriptorSets(d.Device.VKDevice, &descriptorSetAllocateInfo, &descriptorSets[0]), "vkAllocateDescriptorSets")

	if err != nil {
		return nil, err
	}

	return descriptorSets, nil

}

// Free releases the given descriptor sets back to the pool.
func (d *DescriptorPool) Free(sets []vk.DescriptorSet) error {
	if len(sets) == 0 {
		return nil
	}
	return vkCheck(vk.FreeDescriptorSets(d.Device.VKDevice, d.VKDescriptorPool, uint32(len(sets)), &sets[0]), "vkFreeDescriptorSets")
}

func (d *DescriptorPool) Destroy() {
	vk.DestroyDescriptorPool(d.Device.VKDevice, d.VKDescriptorPool, nil)
}
