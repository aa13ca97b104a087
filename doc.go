/*
Package vkrt implements a Vulkan compute execution runtime for ahead-of-time
compiled tensor programs. A compiler lowers tensor computations into SPIR-V
compute shaders and emits a host program; that host program links against
this library (through the C ABI in cmd/libvkrt, or directly through the Go
API) to schedule the shaders on a Vulkan device.

The runtime builds a schedule of actions - kernel launches and buffer
copies - then records the whole schedule into a single primary command
buffer, submits it to one compute queue, waits for the queue to go idle and
copies device results back into the caller's host buffers.

A kernel launch is declared resource-first: the caller describes every
buffer the kernel touches as a (descriptor set, binding) slot holding a
host memory buffer, optionally with a storage class (StorageBuffer or
Uniform). When the launch is finalized the runtime materializes the Vulkan
objects for it: device memory and buffers for every slot, the shader
module, descriptor set layouts, the pipeline layout, the compute pipeline,
a descriptor pool and the descriptor sets written with the device buffers.

Call sequence

The compiler rewrites every high-level vulkanLaunch call into the
following sequence against one RuntimeManager:

	m, _ := vkrt.NewRuntimeManager()                        // initVulkan
	m.CreateLaunchKernelAction(spirv, "main", vkrt.NumWorkGroups{X: 16, Y: 1, Z: 1})
	m.BindMemRef1DFloat(0, 0, memref)                       // one per operand, binding 0..n of set 0
	m.SetLaunchKernelAction()                               // materialize and append to the schedule
	m.SubmitCommandBuffers()                                // record, submit, wait, read back
	m.Destroy()                                             // deinitVulkan

Buffer copies between kernels are appended with CreateMemoryTransferAction,
which names kernels by their position among the launches in the schedule.

All entry points of RuntimeManager are serialized by a single mutex; the
runtime itself uses one device, one queue family and one queue for every
operation. The caller keeps the bound host buffers alive until
SubmitCommandBuffers returns.
*/
package vkrt
