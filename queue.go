package vkrt

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Queue struct {
	Device      *Device
	QueueFamily *QueueFamily
	VKQueue     vk.Queue
}

func (q *Queue) WaitIdle() error {
	return vkCheck(vk.QueueWaitIdle(q.VKQueue), "vkQueueWaitIdle")
}

// Submit submits the given command buffers in a single submission, with no
// semaphores and no fence. Completion is observed with WaitIdle.
func (q *Queue) Submit(buffers []*CommandBuffer) error {
	var submitInfo = vk.SubmitInfo{}
	submitInfo.SType = vk.StructureTypeSubmitInfo
	submitInfo.CommandBufferCount = uint32(len(buffers))

	b := make([]vk.CommandBuffer, len(buffers))
	for i, _ := range buffers {
		b[i] = buffers[i].VKCommandBuffer
	}

	submitInfo.PCommandBuffers = b

	return vkCheck(vk.QueueSubmit(q.VKQueue, 1, []vk.SubmitInfo{submitInfo}, nil), "vkQueueSubmit")

}

func (q *Queue) String() string {
	return fmt.Sprintf("{Device: %s QueueFamily: %s}", q.Device.String(), q.QueueFamily.String())
}
