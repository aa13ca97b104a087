package vkrt

import (
	"unsafe"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSetIndex names a descriptor set, following SPIR-V conventions.
type DescriptorSetIndex = uint32

// BindingIndex names a binding slot inside a descriptor set.
type BindingIndex = uint32

// HostMemoryBuffer is a caller-owned host buffer bound to one
// (set, binding) slot. The runtime borrows it: the caller must keep it
// alive until SubmitCommandBuffers returns so read-back is defined.
type HostMemoryBuffer struct {
	Ptr  unsafe.Pointer
	Size uint32
}

// Bytes returns the buffer contents as a byte slice over the borrowed
// memory.
func (h HostMemoryBuffer) Bytes() []byte {
	return ToBytes(h.Ptr, int(h.Size))
}

// StorageClass is the shader-side declaration of a resource kind. Only
// StorageBuffer and Uniform are supported; anything else fails during
// buffer materialization.
type StorageClass int

const (
	StorageClassStorageBuffer StorageClass = iota
	StorageClassUniform
)

func (s StorageClass) String() string {
	switch s {
	case StorageClassStorageBuffer:
		return "StorageBuffer"
	case StorageClassUniform:
		return "Uniform"
	}
	return "Unknown"
}

// DescriptorType maps the storage class to the descriptor type the binding
// is written with.
func (s StorageClass) DescriptorType() (vk.DescriptorType, error) {
	switch s {
	case StorageClassStorageBuffer:
		return vk.DescriptorTypeStorageBuffer, nil
	case StorageClassUniform:
		return vk.DescriptorTypeUniformBuffer, nil
	}
	return 0, errors.Errorf("unsupported storage class %d", int(s))
}

// BufferUsage maps the storage class to the usage the device buffer is
// created with.
func (s StorageClass) BufferUsage() (vk.BufferUsageFlagBits, error) {
	switch s {
	case StorageClassStorageBuffer:
		return vk.BufferUsageStorageBufferBit, nil
	case StorageClassUniform:
		return vk.BufferUsageUniformBufferBit, nil
	}
	return 0, errors.Errorf("unsupported storage class %d", int(s))
}

// ResourceBinding is one (binding, host buffer) entry of a descriptor set.
type ResourceBinding struct {
	Binding BindingIndex
	Buffer  HostMemoryBuffer
}

// ResourceSet is the ordered binding list of one descriptor set. Insertion
// order is preserved; it defines the positional order used when writing
// descriptors.
type ResourceSet struct {
	Set      DescriptorSetIndex
	Bindings []ResourceBinding
}

// ResourceData maps descriptor sets to their host buffers, preserving the
// order sets and bindings were declared in.
type ResourceData struct {
	Sets []ResourceSet
}

// Put records a host buffer for the given slot, replacing any previous
// buffer at the same slot.
func (r *ResourceData) Put(set DescriptorSetIndex, binding BindingIndex, buf HostMemoryBuffer) {
	for i := range r.Sets {
		if r.Sets[i].Set != set {
			continue
		}
		for j := range r.Sets[i].Bindings {
			if r.Sets[i].Bindings[j].Binding == binding {
				r.Sets[i].Bindings[j].Buffer = buf
				return
			}
		}
		r.Sets[i].Bindings = append(r.Sets[i].Bindings, ResourceBinding{Binding: binding, Buffer: buf})
		return
	}
	r.Sets = append(r.Sets, ResourceSet{
		Set:      set,
		Bindings: []ResourceBinding{{Binding: binding, Buffer: buf}},
	})
}

// Get returns the host buffer bound at the given slot.
func (r *ResourceData) Get(set DescriptorSetIndex, binding BindingIndex) (HostMemoryBuffer, bool) {
	for _, s := range r.Sets {
		if s.Set != set {
			continue
		}
		for _, b := range s.Bindings {
			if b.Binding == binding {
				return b.Buffer, true
			}
		}
	}
	return HostMemoryBuffer{}, false
}

// Empty reports whether no resource was declared.
func (r *ResourceData) Empty() bool {
	return len(r.Sets) == 0
}

// ResourceStorageClassBindingMap holds the storage class of every declared
// slot. Every binding present in ResourceData must have a matching entry.
type ResourceStorageClassBindingMap map[DescriptorSetIndex]map[BindingIndex]StorageClass

// Put records the storage class for the given slot.
func (m ResourceStorageClassBindingMap) Put(set DescriptorSetIndex, binding BindingIndex, class StorageClass) {
	bindings, ok := m[set]
	if !ok {
		bindings = make(map[BindingIndex]StorageClass)
		m[set] = bindings
	}
	bindings[binding] = class
}

// Get resolves the storage class of the given slot. A missing entry is a
// resource description violation.
func (m ResourceStorageClassBindingMap) Get(set DescriptorSetIndex, binding BindingIndex) (StorageClass, error) {
	bindings, ok := m[set]
	if !ok {
		return 0, errors.Errorf("cannot find storage class for resource in descriptor set: %d", set)
	}
	class, ok := bindings[binding]
	if !ok {
		return 0, errors.Errorf("cannot find storage class for resource with descriptor index: %d", binding)
	}
	return class, nil
}

// DeviceMemoryBuffer is the materialized device-side counterpart of one
// (set, binding) host buffer.
type DeviceMemoryBuffer struct {
	Binding        BindingIndex
	Memory         *DeviceMemory
	Buffer         *Buffer
	BufferInfo     vk.DescriptorBufferInfo
	BufferSize     uint32
	DescriptorType vk.DescriptorType
}

// DeviceMemorySet is the ordered device buffer list of one descriptor set,
// parallel to the set's ResourceSet.
type DeviceMemorySet struct {
	Set     DescriptorSetIndex
	Buffers []DeviceMemoryBuffer
}

// DeviceMemoryBufferMap associates descriptor sets with their materialized
// device buffers, in declaration order.
type DeviceMemoryBufferMap struct {
	Sets []DeviceMemorySet
}

// Append records the device buffers materialized for one descriptor set.
func (m *DeviceMemoryBufferMap) Append(set DescriptorSetIndex, buffers []DeviceMemoryBuffer) {
	m.Sets = append(m.Sets, DeviceMemorySet{Set: set, Buffers: buffers})
}

// Lookup returns the device buffers of the given descriptor set.
func (m *DeviceMemoryBufferMap) Lookup(set DescriptorSetIndex) []DeviceMemoryBuffer {
	for _, s := range m.Sets {
		if s.Set == set {
			return s.Buffers
		}
	}
	return nil
}
