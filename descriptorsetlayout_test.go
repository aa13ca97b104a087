package vkrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestComputeLayoutBindings(t *testing.T) {
	buffers := []DeviceMemoryBuffer{
		{Binding: 0, DescriptorType: vk.DescriptorTypeStorageBuffer},
		{Binding: 2, DescriptorType: vk.DescriptorTypeUniformBuffer},
	}

	bindings := ComputeLayoutBindings(buffers)
	require.Len(t, bindings, 2)

	for i, binding := range bindings {
		assert.Equal(t, buffers[i].Binding, binding.Binding)
		assert.Equal(t, buffers[i].DescriptorType, binding.DescriptorType)
		assert.Equal(t, uint32(1), binding.DescriptorCount)
		assert.Equal(t, vk.ShaderStageFlags(vk.ShaderStageComputeBit), binding.StageFlags)
	}
}

func TestComputeLayoutBindingsEmptySet(t *testing.T) {
	assert.Empty(t, ComputeLayoutBindings(nil))
}
