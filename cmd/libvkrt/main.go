// Command libvkrt builds the C ABI of the Vulkan compute runtime as a
// shared library:
//
//	go build -buildmode=c-shared -o libvkrt.so ./cmd/libvkrt
//
// The exported surface is the one compiler-generated host programs link
// against. Failures never cross the C boundary; they are reported on the
// diagnostic stream and the entry point returns normally, leaving the
// manager poisoned.
package main

// #include <stdint.h>
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"k8s.io/klog/v2"

	vkrt "github.com/celer/vkrt"
)

// The manager travels through compiler-generated code as an opaque
// pointer. The pointer value is a cgo handle, never dereferenced on the C
// side.
func manager(ptr unsafe.Pointer) *vkrt.RuntimeManager {
	return cgo.Handle(uintptr(ptr)).Value().(*vkrt.RuntimeManager)
}

//export initVulkan
func initVulkan() unsafe.Pointer {
	m, err := vkrt.NewRuntimeManager()
	if err != nil {
		klog.Errorf("initVulkan failed: %v", err)
		return nil
	}
	return unsafe.Pointer(uintptr(cgo.NewHandle(m)))
}

//export deinitVulkan
func deinitVulkan(ptr unsafe.Pointer) {
	h := cgo.Handle(uintptr(ptr))
	if err := h.Value().(*vkrt.RuntimeManager).Destroy(); err != nil {
		klog.Errorf("deinitVulkan failed: %v", err)
	}
	h.Delete()
}

//export createLaunchKernelAction
func createLaunchKernelAction(ptr unsafe.Pointer, shader *C.uint8_t, size C.uint32_t, entryPoint *C.char, x, y, z C.uint32_t) {
	binary := unsafe.Slice((*byte)(shader), int(size))
	manager(ptr).CreateLaunchKernelAction(binary, C.GoString(entryPoint), vkrt.NumWorkGroups{
		X: uint32(x),
		Y: uint32(y),
		Z: uint32(z),
	})
}

//export createMemoryTransferAction
func createMemoryTransferAction(ptr unsafe.Pointer, srcIndex, srcBinding, dstIndex, dstBinding C.uint64_t) {
	err := manager(ptr).CreateMemoryTransferAction(uint64(srcIndex), uint64(srcBinding), uint64(dstIndex), uint64(dstBinding))
	if err != nil {
		klog.Errorf("createMemoryTransferAction failed: %v", err)
	}
}

//export setLaunchKernelAction
func setLaunchKernelAction(ptr unsafe.Pointer) {
	if err := manager(ptr).SetLaunchKernelAction(); err != nil {
		klog.Errorf("runOnVulkan failed: %v", err)
	}
}

//export runOnVulkan
func runOnVulkan(ptr unsafe.Pointer) {
	setLaunchKernelAction(ptr)
}

//export submitCommandBuffers
func submitCommandBuffers(ptr unsafe.Pointer) {
	if err := manager(ptr).SubmitCommandBuffers(); err != nil {
		klog.Errorf("submitCommandBuffers failed: %v", err)
	}
}

//export bindMemRef1DFloat
func bindMemRef1DFloat(ptr unsafe.Pointer, setIndex, bindIndex C.uint32_t, memref unsafe.Pointer) {
	manager(ptr).BindMemRef1DFloat(uint32(setIndex), uint32(bindIndex), (*vkrt.MemRef1DFloat)(memref))
}

//export bindMemRef2DFloat
func bindMemRef2DFloat(ptr unsafe.Pointer, setIndex, bindIndex C.uint32_t, memref unsafe.Pointer) {
	manager(ptr).BindMemRef2DFloat(uint32(setIndex), uint32(bindIndex), (*vkrt.MemRef2DFloat)(memref))
}

func main() {}
