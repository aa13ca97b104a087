package vkrt

import (
	"github.com/pkg/errors"
)

// createSchedule allocates one primary command buffer, walks the schedule
// in order and records every action into it: barriers, pipeline and
// descriptor set binds and the dispatch for a launch, a buffer copy for a
// transfer.
func (r *Runtime) createSchedule() error {
	commandBuffer, err := r.CommandPool.AllocateBuffer()
	if err != nil {
		return err
	}

	if err := commandBuffer.BeginOneTime(); err != nil {
		return err
	}

	for _, action := range r.schedule {
		switch a := action.(type) {
		case *LaunchKernelAction:
			if len(a.Deps) > 0 {
				commandBuffer.CmdComputeBufferBarriers(a.Deps)
			}

			commandBuffer.CmdBindComputePipeline(a.Pipeline)
			commandBuffer.CmdBindDescriptorSets(a.PipelineLayout, 0, a.DescriptorSets)
			commandBuffer.CmdDispatch(a.WorkGroups.X, a.WorkGroups.Y, a.WorkGroups.Z)

		case *MemoryTransferAction:
			commandBuffer.CmdCopyBuffer(a.Src, a.Dst, a.Regions)
		}
	}

	if err := commandBuffer.End(); err != nil {
		return err
	}

	r.commandBuffers = append(r.commandBuffers, commandBuffer)
	return nil
}

// SubmitCommandBuffers records the schedule, submits it to the compute
// queue, blocks until the queue goes idle and copies device results back
// into the bound host buffers.
func (r *Runtime) SubmitCommandBuffers() error {
	if r.Device == nil {
		return errors.New("submitCommandBuffers: runtime is not initialized")
	}

	if err := r.createSchedule(); err != nil {
		return err
	}

	if err := r.Queue.Submit(r.commandBuffers); err != nil {
		return err
	}

	if err := r.Queue.WaitIdle(); err != nil {
		return err
	}

	return r.updateHostMemoryBuffers()
}

// updateHostMemoryBuffers copies, for every launch action in the schedule,
// the device buffer of every bound slot back into its host buffer. Exactly
// the host buffer's size is copied.
func (r *Runtime) updateHostMemoryBuffers() error {
	for _, action := range r.schedule {
		kernel, ok := action.(*LaunchKernelAction)
		if !ok {
			continue
		}

		for _, set := range kernel.ResourceData.Sets {
			for _, memoryBuffer := range kernel.DeviceMemoryBufferMap.Lookup(set.Set) {
				hostBuffer, ok := kernel.ResourceData.Get(set.Set, memoryBuffer.Binding)
				if !ok {
					continue
				}
				if err := memoryBuffer.Memory.MapCopyOutUnmap(hostBuffer.Bytes()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
