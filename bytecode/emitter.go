package bytecode

import (
	"github.com/HugoDaniel/pngine-sub011/internal/options"
	"github.com/HugoDaniel/pngine-sub011/internal/pool"
)

// Buffer usage bits for CreateBuffer (spec.md §6, opcode 0x01).
const (
	UsageMapRead  uint8 = 1 << 0
	UsageMapWrite uint8 = 1 << 1
	UsageCopySrc  uint8 = 1 << 2
	UsageCopyDst  uint8 = 1 << 3
	UsageIndex    uint8 = 1 << 4
	UsageVertex   uint8 = 1 << 5
	UsageUniform  uint8 = 1 << 6
	UsageStorage  uint8 = 1 << 7
)

// LoadOp and StoreOp are begin_render_pass's color-attachment load/store modes.
type LoadOp uint8

const (
	LoadOpLoad  LoadOp = 0
	LoadOpClear LoadOp = 1
)

type StoreOp uint8

const (
	StoreOpStore   StoreOp = 0
	StoreOpDiscard StoreOp = 1
)

// DepthTexNone is the depth_tex sentinel meaning "no depth attachment".
const DepthTexNone uint32 = 0xFFFF

// PassType distinguishes a define_pass descriptor's kind.
type PassType uint8

const (
	PassTypeRender  PassType = 0
	PassTypeCompute PassType = 1
)

// ElementType is create_typed_array's element_type byte.
type ElementType uint8

const (
	ElemF32     ElementType = 0
	ElemI32     ElementType = 1
	ElemU32     ElementType = 2
	ElemF16     ElementType = 3
	ElemVec2F   ElementType = 4
	ElemVec3F   ElementType = 5
	ElemVec4F   ElementType = 6
	ElemMat4x4F ElementType = 7
)

// config holds the emitter's construction-time settings.
type config struct {
	capacityHint int
}

// EmitterOption configures a new Emitter (spec.md §4.5 "capacity hint").
type EmitterOption = options.Option[*config]

// WithCapacityHint overrides the default 512-byte capacity hint spec.md
// §4.5 describes as covering a typical single-shader program without
// reallocation.
func WithCapacityHint(n int) EmitterOption {
	return options.NoError(func(c *config) {
		c.capacityHint = n
	})
}

// Emitter is the typed, append-only façade over a bytecode buffer (C6).
// Every method writes opcode:u8 followed by the opcode's declared
// parameters in wire order; no method ever reorders or backpatches a prior
// write (spec.md §4.5, §5).
type Emitter struct {
	buf    *pool.ByteBuffer
	pooled bool
}

// NewEmitter creates an emitter ready to append instructions.
func NewEmitter(opts ...EmitterOption) (*Emitter, error) {
	cfg := &config{capacityHint: pool.EmitterBufferDefaultSize}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.capacityHint == pool.EmitterBufferDefaultSize {
		return &Emitter{buf: pool.GetEmitterBuffer(), pooled: true}, nil
	}
	return &Emitter{buf: pool.NewByteBuffer(cfg.capacityHint)}, nil
}

// Bytes returns the bytecode emitted so far. The returned slice is borrowed
// from the emitter's internal buffer and is only valid until the next emit
// call or Reset.
func (e *Emitter) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of bytes emitted so far.
func (e *Emitter) Len() int {
	return e.buf.Len()
}

// Finish moves the emitted bytes out of the emitter into a standalone,
// independently-owned buffer. The emitter must not be used after Finish.
func (e *Emitter) Finish() []byte {
	out := make([]byte, e.buf.Len())
	copy(out, e.buf.Bytes())
	if e.pooled {
		pool.PutEmitterBuffer(e.buf)
	}
	e.buf = nil
	return out
}

// Reset clears the emitter's buffer, returning any pooled storage and
// acquiring a fresh one, so the emitter can be reused for a new stream.
func (e *Emitter) Reset() {
	if e.pooled && e.buf != nil {
		pool.PutEmitterBuffer(e.buf)
	}
	e.buf = pool.GetEmitterBuffer()
	e.pooled = true
}

// emit snapshots the buffer length, encodes ins, and on any encode failure
// truncates back to the snapshot so a failed instruction never leaves a
// half-written opcode in the stream (spec.md §5).
func (e *Emitter) emit(ins Instruction) error {
	mark := e.buf.Len()

	encoded, err := ins.Encode(nil)
	if err != nil {
		e.buf.Truncate(mark)
		return err
	}

	e.buf.Grow(len(encoded))
	e.buf.MustWrite(encoded)

	return nil
}

func scalars(vs ...uint32) []uint32 { return vs }

// --- Resource creation (0x00-0x0D) ---

// CreateBuffer emits create_buffer. usage must have at least one usage flag
// set (spec.md §4.5).
func (e *Emitter) CreateBuffer(id, size uint32, usage uint8) error {
	if usage == 0 {
		return fault(OpCreateBuffer, "at least one usage flag must be set")
	}
	return e.emit(Instruction{Op: OpCreateBuffer, Scalars: scalars(id, size, uint32(usage))})
}

// CreateTexture emits create_texture.
func (e *Emitter) CreateTexture(id, descDataID uint32) error {
	return e.emit(Instruction{Op: OpCreateTexture, Scalars: scalars(id, descDataID)})
}

// CreateSampler emits create_sampler.
func (e *Emitter) CreateSampler(id, descDataID uint32) error {
	return e.emit(Instruction{Op: OpCreateSampler, Scalars: scalars(id, descDataID)})
}

// CreateShaderModule emits create_shader_module.
func (e *Emitter) CreateShaderModule(id, codeDataID uint32) error {
	return e.emit(Instruction{Op: OpCreateShaderModule, Scalars: scalars(id, codeDataID)})
}

// CreateShaderConcat emits create_shader_concat. dataIDs must have between
// 1 and 255 entries (spec.md §4.5).
func (e *Emitter) CreateShaderConcat(id uint32, dataIDs []uint32) error {
	if len(dataIDs) < 1 || len(dataIDs) > 255 {
		return fault(OpCreateShaderConcat, "data id count %d must be in [1,255]", len(dataIDs))
	}
	return e.emit(Instruction{Op: OpCreateShaderConcat, Scalars: scalars(id), Array: dataIDs})
}

// CreateBindGroupLayout emits create_bind_group_layout.
func (e *Emitter) CreateBindGroupLayout(id, descDataID uint32) error {
	return e.emit(Instruction{Op: OpCreateBindGroupLayout, Scalars: scalars(id, descDataID)})
}

// CreatePipelineLayout emits create_pipeline_layout.
func (e *Emitter) CreatePipelineLayout(id, descDataID uint32) error {
	return e.emit(Instruction{Op: OpCreatePipelineLayout, Scalars: scalars(id, descDataID)})
}

// CreateRenderPipeline emits create_render_pipeline.
func (e *Emitter) CreateRenderPipeline(id, descDataID uint32) error {
	return e.emit(Instruction{Op: OpCreateRenderPipeline, Scalars: scalars(id, descDataID)})
}

// CreateComputePipeline emits create_compute_pipeline.
func (e *Emitter) CreateComputePipeline(id, descDataID uint32) error {
	return e.emit(Instruction{Op: OpCreateComputePipeline, Scalars: scalars(id, descDataID)})
}

// CreateBindGroup emits create_bind_group.
func (e *Emitter) CreateBindGroup(id, layoutID, entriesDataID uint32) error {
	return e.emit(Instruction{Op: OpCreateBindGroup, Scalars: scalars(id, layoutID, entriesDataID)})
}

// CreateImageBitmap emits create_image_bitmap.
func (e *Emitter) CreateImageBitmap(id, blobDataID uint32) error {
	return e.emit(Instruction{Op: OpCreateImageBitmap, Scalars: scalars(id, blobDataID)})
}

// CreateTextureView emits create_texture_view.
func (e *Emitter) CreateTextureView(id, textureID, descDataID uint32) error {
	return e.emit(Instruction{Op: OpCreateTextureView, Scalars: scalars(id, textureID, descDataID)})
}

// CreateQuerySet emits create_query_set.
func (e *Emitter) CreateQuerySet(id, descDataID uint32) error {
	return e.emit(Instruction{Op: OpCreateQuerySet, Scalars: scalars(id, descDataID)})
}

// --- Pass / frame control (0x10-0x19) ---

// BeginRenderPass emits begin_render_pass. Use DepthTexNone for depthTex
// when there is no depth attachment.
func (e *Emitter) BeginRenderPass(colorTex uint32, load LoadOp, store StoreOp, depthTex uint32) error {
	return e.emit(Instruction{Op: OpBeginRenderPass, Scalars: scalars(colorTex, uint32(load), uint32(store), depthTex)})
}

// BeginComputePass emits begin_compute_pass.
func (e *Emitter) BeginComputePass() error {
	return e.emit(Instruction{Op: OpBeginComputePass})
}

// SetPipeline emits set_pipeline.
func (e *Emitter) SetPipeline(pipelineID uint32) error {
	return e.emit(Instruction{Op: OpSetPipeline, Scalars: scalars(pipelineID)})
}

// SetBindGroup emits set_bind_group.
func (e *Emitter) SetBindGroup(slot uint8, groupID uint32) error {
	return e.emit(Instruction{Op: OpSetBindGroup, Scalars: scalars(uint32(slot), groupID)})
}

// SetVertexBuffer emits set_vertex_buffer.
func (e *Emitter) SetVertexBuffer(slot uint8, bufferID uint32) error {
	return e.emit(Instruction{Op: OpSetVertexBuffer, Scalars: scalars(uint32(slot), bufferID)})
}

// SetIndexBuffer emits set_index_buffer.
func (e *Emitter) SetIndexBuffer(bufferID uint32, format uint8) error {
	return e.emit(Instruction{Op: OpSetIndexBuffer, Scalars: scalars(bufferID, uint32(format))})
}

// Draw emits draw. vertexCount and instanceCount must each be >= 1 (spec.md §4.5).
func (e *Emitter) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	if vertexCount < 1 {
		return fault(OpDraw, "vertex_count must be >= 1")
	}
	if instanceCount < 1 {
		return fault(OpDraw, "instance_count must be >= 1")
	}
	return e.emit(Instruction{Op: OpDraw, Scalars: scalars(vertexCount, instanceCount, firstVertex, firstInstance)})
}

// DrawIndexed emits draw_indexed. indexCount and instanceCount must each be >= 1.
func (e *Emitter) DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance uint32) error {
	if indexCount < 1 {
		return fault(OpDrawIndexed, "index_count must be >= 1")
	}
	if instanceCount < 1 {
		return fault(OpDrawIndexed, "instance_count must be >= 1")
	}
	return e.emit(Instruction{Op: OpDrawIndexed, Scalars: scalars(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)})
}

// Dispatch emits dispatch. x, y, and z must each be >= 1 (spec.md §4.5).
func (e *Emitter) Dispatch(x, y, z uint32) error {
	if x < 1 || y < 1 || z < 1 {
		return fault(OpDispatch, "workgroup dimensions must each be >= 1, got (%d,%d,%d)", x, y, z)
	}
	return e.emit(Instruction{Op: OpDispatch, Scalars: scalars(x, y, z)})
}

// EndPass emits end_pass.
func (e *Emitter) EndPass() error {
	return e.emit(Instruction{Op: OpEndPass})
}

// --- Data transfer / frame submission (0x20-0x2A) ---

// WriteBuffer emits write_buffer.
func (e *Emitter) WriteBuffer(bufferID, offset, dataID uint32) error {
	return e.emit(Instruction{Op: OpWriteBuffer, Scalars: scalars(bufferID, offset, dataID)})
}

// WriteUniform emits write_uniform.
func (e *Emitter) WriteUniform(bufferID, uniformID uint32) error {
	return e.emit(Instruction{Op: OpWriteUniform, Scalars: scalars(bufferID, uniformID)})
}

// CopyBufferToBuffer emits copy_buffer_to_buffer.
func (e *Emitter) CopyBufferToBuffer(src, srcOff, dst, dstOff, size uint32) error {
	return e.emit(Instruction{Op: OpCopyBufferToBuffer, Scalars: scalars(src, srcOff, dst, dstOff, size)})
}

// CopyTextureToTexture emits copy_texture_to_texture.
func (e *Emitter) CopyTextureToTexture(srcTex, dstTex uint32) error {
	return e.emit(Instruction{Op: OpCopyTextureToTexture, Scalars: scalars(srcTex, dstTex)})
}

// Submit emits submit.
func (e *Emitter) Submit() error {
	return e.emit(Instruction{Op: OpSubmit})
}

// CopyExternalImageToTexture emits copy_external_image_to_texture.
func (e *Emitter) CopyExternalImageToTexture(bitmapID, textureID uint32, mip uint8, originX, originY uint32) error {
	return e.emit(Instruction{Op: OpCopyExternalImageToTexture, Scalars: scalars(bitmapID, textureID, uint32(mip), originX, originY)})
}

// InitWasmModule emits init_wasm_module.
func (e *Emitter) InitWasmModule(moduleID, wasmDataID uint32) error {
	return e.emit(Instruction{Op: OpInitWasmModule, Scalars: scalars(moduleID, wasmDataID)})
}

// CallWasmFunc emits call_wasm_func with its count-prefixed args blob.
func (e *Emitter) CallWasmFunc(callID, moduleID, funcNameStringID uint32, args []WasmArg) error {
	return e.emit(Instruction{Op: OpCallWasmFunc, Scalars: scalars(callID, moduleID, funcNameStringID), Wasm: args})
}

// WriteBufferFromWasm emits write_buffer_from_wasm.
func (e *Emitter) WriteBufferFromWasm(callID, bufferID, offset, byteLen uint32) error {
	return e.emit(Instruction{Op: OpWriteBufferFromWasm, Scalars: scalars(callID, bufferID, offset, byteLen)})
}

// WriteBufferFromArray emits write_buffer_from_array.
func (e *Emitter) WriteBufferFromArray(bufferID, offset, arrayID uint32) error {
	return e.emit(Instruction{Op: OpWriteBufferFromArray, Scalars: scalars(bufferID, offset, arrayID)})
}

// ExecuteBundles emits execute_bundles. bundleIDs must have between 1 and 16
// entries (spec.md §4.5).
func (e *Emitter) ExecuteBundles(bundleIDs []uint32) error {
	if len(bundleIDs) < 1 || len(bundleIDs) > 16 {
		return fault(OpExecuteBundles, "bundle count %d must be in [1,16]", len(bundleIDs))
	}
	return e.emit(Instruction{Op: OpExecuteBundles, Array: bundleIDs})
}

// --- Frame / pass definitions (0x30-0x34) ---

// DefineFrame emits define_frame.
func (e *Emitter) DefineFrame(frameID, nameStringID uint32) error {
	return e.emit(Instruction{Op: OpDefineFrame, Scalars: scalars(frameID, nameStringID)})
}

// EndFrame emits end_frame.
func (e *Emitter) EndFrame() error {
	return e.emit(Instruction{Op: OpEndFrame})
}

// ExecPass emits exec_pass.
func (e *Emitter) ExecPass(passID uint32) error {
	return e.emit(Instruction{Op: OpExecPass, Scalars: scalars(passID)})
}

// DefinePass emits define_pass.
func (e *Emitter) DefinePass(passID uint32, passType PassType, descDataID uint32) error {
	return e.emit(Instruction{Op: OpDefinePass, Scalars: scalars(passID, uint32(passType), descDataID)})
}

// EndPassDef emits end_pass_def.
func (e *Emitter) EndPassDef() error {
	return e.emit(Instruction{Op: OpEndPassDef})
}

// --- Pool selection (0x40-0x42) ---

// SelectFromPool emits select_from_pool.
func (e *Emitter) SelectFromPool(destSlot uint8, poolID, frameOffset uint32) error {
	return e.emit(Instruction{Op: OpSelectFromPool, Scalars: scalars(uint32(destSlot), poolID, frameOffset)})
}

// SetVertexBufferPool emits set_vertex_buffer_pool. poolSize must be >= 1
// and offset must be < poolSize (spec.md §4.5).
func (e *Emitter) SetVertexBufferPool(slot uint8, baseID uint32, poolSize, offset uint8) error {
	if err := validatePool(OpSetVertexBufferPool, poolSize, offset); err != nil {
		return err
	}
	return e.emit(Instruction{Op: OpSetVertexBufferPool, Scalars: scalars(uint32(slot), baseID, uint32(poolSize), uint32(offset))})
}

// SetBindGroupPool emits set_bind_group_pool. poolSize must be >= 1 and
// offset must be < poolSize.
func (e *Emitter) SetBindGroupPool(slot uint8, baseID uint32, poolSize, offset uint8) error {
	if err := validatePool(OpSetBindGroupPool, poolSize, offset); err != nil {
		return err
	}
	return e.emit(Instruction{Op: OpSetBindGroupPool, Scalars: scalars(uint32(slot), baseID, uint32(poolSize), uint32(offset))})
}

func validatePool(op Opcode, poolSize, offset uint8) error {
	if poolSize < 1 {
		return fault(op, "pool_size must be >= 1")
	}
	if offset >= poolSize {
		return fault(op, "offset %d must be < pool_size %d", offset, poolSize)
	}
	return nil
}

// --- Typed array generation (0x50-0x56) ---

// CreateTypedArray emits create_typed_array.
func (e *Emitter) CreateTypedArray(id uint32, elementType ElementType, elementCount uint32) error {
	return e.emit(Instruction{Op: OpCreateTypedArray, Scalars: scalars(id, uint32(elementType), elementCount)})
}

// FillConstant emits fill_constant.
func (e *Emitter) FillConstant(id, off, n uint32, stride uint8, valueDataID uint32) error {
	return e.emit(Instruction{Op: OpFillConstant, Scalars: scalars(id, off, n, uint32(stride), valueDataID)})
}

// FillRandom emits fill_random using the canonical 7-varint shape spec.md §9
// singles out as the one reimplementations must emit and decode exclusively.
func (e *Emitter) FillRandom(id, off, n uint32, stride uint8, seedDataID, minDataID, maxDataID uint32) error {
	return e.emit(Instruction{Op: OpFillRandom, Scalars: scalars(id, off, n, uint32(stride), seedDataID, minDataID, maxDataID)})
}

// FillLinear emits fill_linear.
func (e *Emitter) FillLinear(id, off, n uint32, stride uint8, startDataID, stepDataID uint32) error {
	return e.emit(Instruction{Op: OpFillLinear, Scalars: scalars(id, off, n, uint32(stride), startDataID, stepDataID)})
}

// FillElementIndex emits fill_element_index.
func (e *Emitter) FillElementIndex(id, off, n uint32, stride uint8, scaleDataID, biasDataID uint32) error {
	return e.emit(Instruction{Op: OpFillElementIndex, Scalars: scalars(id, off, n, uint32(stride), scaleDataID, biasDataID)})
}

// FillExpression emits fill_expression.
func (e *Emitter) FillExpression(id, off, n uint32, stride uint8, exprDataID uint32) error {
	return e.emit(Instruction{Op: OpFillExpression, Scalars: scalars(id, off, n, uint32(stride), exprDataID)})
}

// WriteTimeUniform emits write_time_uniform.
func (e *Emitter) WriteTimeUniform(bufferID, offset, size uint32) error {
	return e.emit(Instruction{Op: OpWriteTimeUniform, Scalars: scalars(bufferID, offset, size)})
}
