package vkrt

import (
	"fmt"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

type QueueFamilySlice []*QueueFamily

func (ql QueueFamilySlice) Filter(f func(q *QueueFamily) bool) QueueFamilySlice {
	ret := make([]*QueueFamily, 0)
	for _, q := range ql {
		if f(q) {
			ret = append(ret, q)
		}
	}
	return ret
}

func (ql QueueFamilySlice) FilterCompute() QueueFamilySlice {
	return ql.Filter(func(q *QueueFamily) bool {
		return q.IsCompute()
	})
}

// BestCompute selects the queue family every runtime operation runs on.
// Transfer and sparse-binding bits are masked out before the check, then the
// first family that supports compute but not graphics wins; if no such
// family exists, the first family that supports compute at all is used.
func (ql QueueFamilySlice) BestCompute() (*QueueFamily, error) {
	for _, q := range ql {
		masked := q.maskedFlags()
		if masked&vk.QueueFlags(vk.QueueComputeBit) != 0 &&
			masked&vk.QueueFlags(vk.QueueGraphicsBit) == 0 {
			return q, nil
		}
	}

	for _, q := range ql {
		if q.maskedFlags()&vk.QueueFlags(vk.QueueComputeBit) != 0 {
			return q, nil
		}
	}

	return nil, errors.New("cannot find valid queue")
}

type QueueFamily struct {
	Index                   int
	PhysicalDevice          *PhysicalDevice
	VKQueueFamilyProperties vk.QueueFamilyProperties
}

func (q *QueueFamily) maskedFlags() vk.QueueFlags {
	return q.VKQueueFamilyProperties.QueueFlags &^ vk.QueueFlags(vk.QueueTransferBit|vk.QueueSparseBindingBit)
}

func (q *QueueFamily) IsCompute() bool {
	return q.VKQueueFamilyProperties.QueueFlags&vk.QueueFlags(vk.QueueComputeBit) == vk.QueueFlags(vk.QueueComputeBit)
}

func (q *QueueFamily) IsGraphics() bool {
	return q.VKQueueFamilyProperties.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) == vk.QueueFlags(vk.QueueGraphicsBit)

}

func (q *QueueFamily) IsTransfer() bool {
	return q.VKQueueFamilyProperties.QueueFlags&vk.QueueFlags(vk.QueueTransferBit) == vk.QueueFlags(vk.QueueTransferBit)
}

func (q *QueueFamily) String() string {
	return fmt.Sprintf("{ Index: %d Compute: %v Graphics: %v Transfer: %v }", q.Index, q.IsCompute(), q.IsGraphics(), q.IsTransfer())
}
