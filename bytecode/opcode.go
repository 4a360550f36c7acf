// Package bytecode implements the stack-free bytecode instruction set (C6):
// the opcode enum, the typed emitter façade, and the decoder/disassembler
// that is the read side of the same wire format (spec.md §6).
//
// The opcode set is a closed enumeration with associated data (spec.md §9:
// "implement them as tagged unions with exhaustive matches so adding an
// opcode is a compile-time propagation through encoder and validator").
// Instruction realizes that union as one struct shaped by a per-opcode
// field spec, rather than fifty hand-written struct types, so the spec
// table in opcodeSpecs is the single place a new opcode's wire shape lives.
package bytecode

import "fmt"

// Opcode identifies a single bytecode instruction (spec.md §6).
type Opcode uint8

const (
	OpNop Opcode = 0x00

	OpCreateBuffer          Opcode = 0x01
	OpCreateTexture         Opcode = 0x02
	OpCreateSampler         Opcode = 0x03
	OpCreateShaderModule    Opcode = 0x04
	OpCreateShaderConcat    Opcode = 0x05
	OpCreateBindGroupLayout Opcode = 0x06
	OpCreatePipelineLayout  Opcode = 0x07
	OpCreateRenderPipeline  Opcode = 0x08
	OpCreateComputePipeline Opcode = 0x09
	OpCreateBindGroup       Opcode = 0x0A
	OpCreateImageBitmap     Opcode = 0x0B
	OpCreateTextureView     Opcode = 0x0C
	OpCreateQuerySet        Opcode = 0x0D

	OpBeginRenderPass  Opcode = 0x10
	OpBeginComputePass Opcode = 0x11
	OpSetPipeline      Opcode = 0x12
	OpSetBindGroup     Opcode = 0x13
	OpSetVertexBuffer  Opcode = 0x14
	OpSetIndexBuffer   Opcode = 0x15
	OpDraw             Opcode = 0x16
	OpDrawIndexed      Opcode = 0x17
	OpDispatch         Opcode = 0x18
	OpEndPass          Opcode = 0x19

	OpWriteBuffer                   Opcode = 0x20
	OpWriteUniform                  Opcode = 0x21
	OpCopyBufferToBuffer            Opcode = 0x22
	OpCopyTextureToTexture          Opcode = 0x23
	OpSubmit                        Opcode = 0x24
	OpCopyExternalImageToTexture    Opcode = 0x25
	OpInitWasmModule                Opcode = 0x26
	OpCallWasmFunc                  Opcode = 0x27
	OpWriteBufferFromWasm           Opcode = 0x28
	OpWriteBufferFromArray          Opcode = 0x29
	OpExecuteBundles                Opcode = 0x2A

	OpDefineFrame Opcode = 0x30
	OpEndFrame    Opcode = 0x31
	OpExecPass    Opcode = 0x32
	OpDefinePass  Opcode = 0x33
	OpEndPassDef  Opcode = 0x34

	OpSelectFromPool       Opcode = 0x40
	OpSetVertexBufferPool  Opcode = 0x41
	OpSetBindGroupPool     Opcode = 0x42

	OpCreateTypedArray  Opcode = 0x50
	OpFillConstant      Opcode = 0x51
	OpFillRandom        Opcode = 0x52
	OpFillLinear        Opcode = 0x53
	OpFillElementIndex  Opcode = 0x54
	OpFillExpression    Opcode = 0x55
	OpWriteTimeUniform  Opcode = 0x56
)

var mnemonics = map[Opcode]string{
	OpNop:                        "nop",
	OpCreateBuffer:                "create_buffer",
	OpCreateTexture:               "create_texture",
	OpCreateSampler:               "create_sampler",
	OpCreateShaderModule:          "create_shader_module",
	OpCreateShaderConcat:          "create_shader_concat",
	OpCreateBindGroupLayout:       "create_bind_group_layout",
	OpCreatePipelineLayout:        "create_pipeline_layout",
	OpCreateRenderPipeline:        "create_render_pipeline",
	OpCreateComputePipeline:       "create_compute_pipeline",
	OpCreateBindGroup:             "create_bind_group",
	OpCreateImageBitmap:           "create_image_bitmap",
	OpCreateTextureView:           "create_texture_view",
	OpCreateQuerySet:              "create_query_set",
	OpBeginRenderPass:             "begin_render_pass",
	OpBeginComputePass:            "begin_compute_pass",
	OpSetPipeline:                 "set_pipeline",
	OpSetBindGroup:                "set_bind_group",
	OpSetVertexBuffer:             "set_vertex_buffer",
	OpSetIndexBuffer:              "set_index_buffer",
	OpDraw:                        "draw",
	OpDrawIndexed:                 "draw_indexed",
	OpDispatch:                    "dispatch",
	OpEndPass:                     "end_pass",
	OpWriteBuffer:                 "write_buffer",
	OpWriteUniform:                "write_uniform",
	OpCopyBufferToBuffer:          "copy_buffer_to_buffer",
	OpCopyTextureToTexture:        "copy_texture_to_texture",
	OpSubmit:                      "submit",
	OpCopyExternalImageToTexture:  "copy_external_image_to_texture",
	OpInitWasmModule:              "init_wasm_module",
	OpCallWasmFunc:                "call_wasm_func",
	OpWriteBufferFromWasm:         "write_buffer_from_wasm",
	OpWriteBufferFromArray:        "write_buffer_from_array",
	OpExecuteBundles:              "execute_bundles",
	OpDefineFrame:                 "define_frame",
	OpEndFrame:                    "end_frame",
	OpExecPass:                    "exec_pass",
	OpDefinePass:                  "define_pass",
	OpEndPassDef:                  "end_pass_def",
	OpSelectFromPool:              "select_from_pool",
	OpSetVertexBufferPool:         "set_vertex_buffer_pool",
	OpSetBindGroupPool:            "set_bind_group_pool",
	OpCreateTypedArray:            "create_typed_array",
	OpFillConstant:                "fill_constant",
	OpFillRandom:                  "fill_random",
	OpFillLinear:                  "fill_linear",
	OpFillElementIndex:            "fill_element_index",
	OpFillExpression:              "fill_expression",
	OpWriteTimeUniform:            "write_time_uniform",
}

// String returns the opcode's mnemonic, or "unknown(0xHH)" for an opcode
// outside the reserved table (spec.md §6: "Opcodes outside this table are
// reserved").
func (op Opcode) String() string {
	if name, ok := mnemonics[op]; ok {
		return name
	}
	return fmt.Sprintf("unknown(0x%02X)", byte(op))
}

// IsKnown reports whether op appears in the opcode table.
func (op Opcode) IsKnown() bool {
	_, ok := mnemonics[op]
	return ok
}
