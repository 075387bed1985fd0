package vkr

import (
	"errors"
	"unsafe"

	glm "github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devodev/toy-engine/core"
	"github.com/devodev/toy-engine/gfx"
	"github.com/devodev/toy-engine/model"
	"github.com/devodev/toy-engine/pak"
)

// loadShaders loads the compiled shader set from a pak archive when
// one is configured, otherwise from the shader directory.
func loadShaders(dev vk.Device, cfg core.RendererConfiguration) ([]*Shader, error) {
	if cfg.ShaderArchive == "" {
		return ShadersFromDirectory(dev, cfg.ShaderDirectory)
	}
	archive, err := pak.OpenFile(cfg.ShaderArchive)
	if err != nil {
		return nil, err
	}
	defer archive.Close()
	return ShadersFromArchive(dev, archive)
}

// NewRenderer2D sets up the batched quad renderer on top of an
// initialised Renderer: shaders, descriptor state, the uniform buffer
// and the graphics pipeline.
func NewRenderer2D(r *Renderer, cfg core.RendererConfiguration) (*Renderer2D, error) {
	dev := r.Device().Get()

	shaders, err := loadShaders(dev, cfg)
	if err != nil {
		return nil, err
	}
	if len(shaders) < 2 {
		return nil, errors.New("vkr: shader directory is missing the quad vertex or fragment shader")
	}

	descriptors, err := NewDescriptors(dev)
	if err != nil {
		return nil, err
	}

	uniform, err := NewBuffer(dev, uint(unsafe.Sizeof(model.Uniform{})),
		vk.BufferUsageUniformBufferBit, vk.SharingModeExclusive, r.Allocator())
	if err != nil {
		return nil, err
	}
	descriptors.BindUniformBuffer(&uniform)

	pipeline, err := NewPipeline(dev, r.RenderPass(), descriptors.Layout(), shaders)
	if err != nil {
		return nil, err
	}

	maxQuads := cfg.MaxQuads
	if maxQuads == 0 {
		maxQuads = DefaultMaxQuads
	}

	return &Renderer2D{
		device:      r.Device(),
		allocator:   r.Allocator(),
		shaders:     shaders,
		descriptors: descriptors,
		uniform:     uniform,
		pipeline:    pipeline,
		batcher:     NewQuadBatcher(maxQuads),
	}, nil
}

// Renderer2D draws game objects as alpha blended quads with a bounded
// number of draw calls per frame.
type Renderer2D struct {
	device    *Device
	allocator *MemoryAllocator

	shaders     []*Shader
	descriptors *Descriptors
	uniform     Buffer
	pipeline    *Pipeline
	batcher     *QuadBatcher

	vertexBuffers []Buffer
	indexBuffers  []Buffer

	released bool
}

// Batcher returns the quad batcher feeding this renderer.
func (r *Renderer2D) Batcher() *QuadBatcher {
	return r.batcher
}

// Render batches all objects into quads, uploads the geometry and
// records the draw commands into cmd. The command buffer must be
// recording inside the render pass.
func (r *Renderer2D) Render(cmd vk.CommandBuffer, viewProjection glm.Mat4, objects []model.GameObject) error {
	uniform := model.Uniform{ViewProjection: viewProjection}
	r.uniform.Update(structBytes(unsafe.Pointer(&uniform), unsafe.Sizeof(uniform)))

	for _, object := range objects {
		r.batcher.AddQuad(object.Transform.Position, object.Transform.Scale, object.Color)
	}

	batches := r.batcher.Batches()
	if err := r.ensureBuffers(batches); err != nil {
		return err
	}

	vk.CmdBindDescriptorSets(cmd, vk.PipelineBindPointGraphics, r.pipeline.Layout(),
		0, 1, []vk.DescriptorSet{r.descriptors.Set()}, 0, nil)
	vk.CmdBindPipeline(cmd, vk.PipelineBindPointGraphics, r.pipeline.Get())

	for i, batch := range batches {
		vk.CmdBindVertexBuffers(cmd, 0, 1,
			[]vk.Buffer{r.vertexBuffers[i].Get()}, []vk.DeviceSize{0})
		vk.CmdBindIndexBuffer(cmd, r.indexBuffers[i].Get(), 0, vk.IndexTypeUint32)
		vk.CmdDrawIndexed(cmd, uint32(len(batch.Indices)), 1, 0, 0, 0)
	}

	r.batcher.Clear()
	return nil
}

// ensureBuffers guarantees one vertex and one index buffer per batch,
// each large enough for the batch's geometry, and uploads it. A buffer
// that grew is only destroyed once the device is idle, since an
// earlier frame may still be reading from it.
func (r *Renderer2D) ensureBuffers(batches []*QuadBatch) error {
	for i, batch := range batches {
		vertexBytes := sliceBytes(unsafe.Pointer(&batch.Vertices[0]),
			len(batch.Vertices)*int(unsafe.Sizeof(model.Vertex{})))
		indexBytes := sliceBytes(unsafe.Pointer(&batch.Indices[0]), len(batch.Indices)*4)

		vertexBuffer, err := r.ensureBuffer(&r.vertexBuffers, i, uint(len(vertexBytes)), vk.BufferUsageVertexBufferBit)
		if err != nil {
			return err
		}
		vertexBuffer.Update(vertexBytes)

		indexBuffer, err := r.ensureBuffer(&r.indexBuffers, i, uint(len(indexBytes)), vk.BufferUsageIndexBufferBit)
		if err != nil {
			return err
		}
		indexBuffer.Update(indexBytes)
	}
	return nil
}

func (r *Renderer2D) ensureBuffer(buffers *[]Buffer, i int, size uint, usage vk.BufferUsageFlagBits) (*Buffer, error) {
	if i < len(*buffers) {
		if (*buffers)[i].Size() >= size {
			return &(*buffers)[i], nil
		}
		r.device.WaitIdle()
		(*buffers)[i].Release()
		buffer, err := NewBuffer(r.device.Get(), size, usage, vk.SharingModeExclusive, r.allocator)
		if err != nil {
			return nil, err
		}
		(*buffers)[i] = buffer
		return &(*buffers)[i], nil
	}

	buffer, err := NewBuffer(r.device.Get(), size, usage, vk.SharingModeExclusive, r.allocator)
	if err != nil {
		return nil, err
	}
	*buffers = append(*buffers, buffer)
	return &(*buffers)[i], nil
}

// Release drains the device and frees everything the renderer owns.
// Releasing twice is a no-op.
func (r *Renderer2D) Release() {
	if r.released {
		log.Warn("vkr: release of an already released 2d renderer")
		return
	}
	r.released = true
	r.device.WaitIdle()

	resources := []gfx.Releasable{&r.uniform, r.pipeline, r.descriptors}
	for i := range r.vertexBuffers {
		resources = append(resources, &r.vertexBuffers[i])
	}
	for i := range r.indexBuffers {
		resources = append(resources, &r.indexBuffers[i])
	}
	for _, shader := range r.shaders {
		resources = append(resources, shader)
	}
	for _, resource := range resources {
		resource.Release()
	}
}

func sliceBytes(data unsafe.Pointer, size int) []byte {
	const m = 0x7fffffff
	return (*[m]byte)(data)[:size]
}

func structBytes(data unsafe.Pointer, size uintptr) []byte {
	return sliceBytes(data, int(size))
}
