package vkrt

import (
	"unsafe"
)

// doubleKernelSPIRV returns a precompiled compute kernel equivalent to
//
//	#version 450
//	layout(local_size_x = 1) in;
//	layout(set = 0, binding = 0) buffer Data { float data[]; };
//	void main() { data[gl_GlobalInvocationID.x] *= 2.0; }
//
// hand-assembled so the tests carry no shader toolchain dependency.
func doubleKernelSPIRV() []byte {
	words := []uint32{
		0x07230203, // magic
		0x00010000, // version 1.0
		0x00000000, // generator
		23,         // id bound
		0x00000000, // schema

		0x00020011, 1, // OpCapability Shader
		0x0003000E, 0, 1, // OpMemoryModel Logical GLSL450
		0x0006000F, 5, 1, 0x6E69616D, 0x00000000, 2, // OpEntryPoint GLCompute %1 "main" %2
		0x00060010, 1, 17, 1, 1, 1, // OpExecutionMode %1 LocalSize 1 1 1

		0x00040047, 2, 11, 28, // OpDecorate %2 BuiltIn GlobalInvocationId
		0x00040047, 9, 6, 4, // OpDecorate %9 ArrayStride 4
		0x00050048, 10, 0, 35, 0, // OpMemberDecorate %10 0 Offset 0
		0x00030047, 10, 3, // OpDecorate %10 BufferBlock
		0x00040047, 12, 34, 0, // OpDecorate %12 DescriptorSet 0
		0x00040047, 12, 33, 0, // OpDecorate %12 Binding 0

		0x00020013, 3, // %3 = OpTypeVoid
		0x00030021, 4, 3, // %4 = OpTypeFunction %3
		0x00030016, 5, 32, // %5 = OpTypeFloat 32
		0x00040015, 6, 32, 0, // %6 = OpTypeInt 32 0
		0x00040017, 7, 6, 3, // %7 = OpTypeVector %6 3
		0x00040020, 8, 1, 7, // %8 = OpTypePointer Input %7
		0x0004003B, 8, 2, 1, // %2 = OpVariable %8 Input
		0x0003001D, 9, 5, // %9 = OpTypeRuntimeArray %5
		0x0003001E, 10, 9, // %10 = OpTypeStruct %9
		0x00040020, 11, 2, 10, // %11 = OpTypePointer Uniform %10
		0x0004003B, 11, 12, 2, // %12 = OpVariable %11 Uniform
		0x0004002B, 6, 13, 0, // %13 = OpConstant %6 0
		0x00040020, 14, 1, 6, // %14 = OpTypePointer Input %6
		0x0004002B, 5, 15, 0x40000000, // %15 = OpConstant %5 2.0
		0x00040020, 16, 2, 5, // %16 = OpTypePointer Uniform %5

		0x00050036, 3, 1, 0, 4, // %1 = OpFunction %3 None %4
		0x000200F8, 17, // %17 = OpLabel
		0x00050041, 14, 18, 2, 13, // %18 = OpAccessChain %14 %2 %13
		0x0004003D, 6, 19, 18, // %19 = OpLoad %6 %18
		0x00060041, 16, 20, 12, 13, 19, // %20 = OpAccessChain %16 %12 %13 %19
		0x0004003D, 5, 21, 20, // %21 = OpLoad %5 %20
		0x00050085, 5, 22, 21, 15, // %22 = OpFMul %5 %21 %15
		0x0003003E, 20, 22, // OpStore %20 %22
		0x000100FD, // OpReturn
		0x00010038, // OpFunctionEnd
	}

	out := make([]byte, len(words)*4)
	copy(out, ToBytes(unsafe.Pointer(&words[0]), len(out)))
	return out
}
