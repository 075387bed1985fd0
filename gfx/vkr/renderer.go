package vkr

import (
	"errors"
	"math"

	log "github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devodev/toy-engine/core"
	"github.com/devodev/toy-engine/gfx"
)

// NewRenderer sets up the whole presentation chain on the instance's
// surface: device, swapchain, render pass, depth attachment,
// framebuffers and the frame ring.
func NewRenderer(instance core.Instance, cfg core.RendererConfiguration) (*Renderer, error) {
	device, err := NewDevice(instance)
	if err != nil {
		return nil, err
	}

	allocator, err := NewMemoryAllocator(device.Get(), device.Physical())
	if err != nil {
		return nil, err
	}

	cpci := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		QueueFamilyIndex: device.QueueIndex(),
	}
	var commandPool vk.CommandPool
	if err := vk.Error(vk.CreateCommandPool(device.Get(), &cpci, nil, &commandPool)); err != nil {
		return nil, errors.New("vk.CreateCommandPool(): " + err.Error())
	}

	r := &Renderer{
		device:      device,
		allocator:   allocator,
		commandPool: commandPool,
		width:       cfg.ScreenWidth,
		height:      cfg.ScreenHeight,
	}

	if err := r.buildSwapchainResources(nil); err != nil {
		return nil, err
	}

	frames, err := newFrameSlots(device.Get(), commandPool, maxFramesInFlight)
	if err != nil {
		return nil, err
	}
	r.frames = frames

	return r, nil
}

// Renderer owns the presentation chain and drives the frame
// lifecycle: BeginFrame, Draw, EndFrame.
type Renderer struct {
	device      *Device
	allocator   *MemoryAllocator
	commandPool vk.CommandPool

	swapchain    *Swapchain
	renderPass   *RenderPass
	depth        *DepthImage
	framebuffers []vk.Framebuffer

	frames      []frameSlot
	frameNumber uint64
	imageIndex  uint32
	frameBegun  bool

	width, height uint32
	pendingResize bool
}

// Device returns the device everything is created on.
func (r *Renderer) Device() *Device {
	return r.device
}

// Allocator returns the renderer's memory allocator.
func (r *Renderer) Allocator() *MemoryAllocator {
	return r.allocator
}

// RenderPass returns the render pass drawing happens in.
func (r *Renderer) RenderPass() *RenderPass {
	return r.renderPass
}

// CommandPool returns the pool frame command buffers come from.
func (r *Renderer) CommandPool() vk.CommandPool {
	return r.commandPool
}

func (r *Renderer) currentFrame() *frameSlot {
	return &r.frames[r.frameNumber%uint64(len(r.frames))]
}

// frameOutcome classifies an acquire or present result: whether the
// presentation chain has to be rebuilt before the frame can continue,
// or the error to report otherwise. Rebuild takes precedence.
func frameOutcome(result vk.Result, pendingResize bool) (rebuild bool, err error) {
	if result == vk.Suboptimal || result == vk.ErrorOutOfDate || pendingResize {
		return true, nil
	}
	return false, vk.Error(result)
}

// BeginFrame waits for the current frame slot and acquires the next
// presentable image. It returns false when no frame can be produced:
// the window has no area, or the swapchain had to be rebuilt and the
// caller should simply try again next tick.
func (r *Renderer) BeginFrame() (bool, error) {
	if r.width == 0 || r.height == 0 {
		return false, nil
	}

	frame := r.currentFrame()
	if err := vk.Error(vk.WaitForFences(r.device.Get(), 1, []vk.Fence{frame.fence}, vk.True, math.MaxUint64)); err != nil {
		return false, errors.New("vk.WaitForFences(): " + err.Error())
	}

	result := vk.AcquireNextImage(r.device.Get(), r.swapchain.Get(), math.MaxUint64,
		frame.acquireSemaphore, vk.NullFence, &r.imageIndex)
	rebuild, err := frameOutcome(result, r.pendingResize)
	if rebuild {
		if err := r.rebuildSwapchain(); err != nil {
			return false, err
		}
		return false, nil
	}
	if err != nil {
		return false, errors.New("vk.AcquireNextImage(): " + err.Error())
	}

	if err := vk.Error(vk.ResetFences(r.device.Get(), 1, []vk.Fence{frame.fence})); err != nil {
		return false, errors.New("vk.ResetFences(): " + err.Error())
	}
	r.frameBegun = true
	return true, nil
}

// Draw records the frame's command buffer: it begins the render pass,
// sets the viewport and scissor to the full swapchain extent and hands
// the buffer to fn for the actual draw commands.
// Draw must only be called after a successful BeginFrame.
func (r *Renderer) Draw(fn func(dev vk.Device, cmd vk.CommandBuffer) error) error {
	if !r.frameBegun {
		panic("vkr: Draw called without a begun frame")
	}

	frame := r.currentFrame()
	cmd := frame.commandBuffer

	cbbi := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if err := vk.Error(vk.BeginCommandBuffer(cmd, &cbbi)); err != nil {
		return errors.New("vk.BeginCommandBuffer(): " + err.Error())
	}

	extent := r.swapchain.Extent()
	r.renderPass.Begin(cmd, r.framebuffers[r.imageIndex], extent)

	vk.CmdSetViewport(cmd, 0, 1, []vk.Viewport{{
		X:        0,
		Y:        0,
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MinDepth: 0,
		MaxDepth: 1,
	}})
	vk.CmdSetScissor(cmd, 0, 1, []vk.Rect2D{{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: extent,
	}})

	if err := fn(r.device.Get(), cmd); err != nil {
		return err
	}

	r.renderPass.End(cmd)

	if err := vk.Error(vk.EndCommandBuffer(cmd)); err != nil {
		return errors.New("vk.EndCommandBuffer(): " + err.Error())
	}
	return nil
}

// EndFrame submits the recorded command buffer and presents the
// acquired image. It returns false when presentation was skipped
// because the swapchain had to be rebuilt.
// EndFrame must only be called after a successful BeginFrame.
func (r *Renderer) EndFrame() (bool, error) {
	if !r.frameBegun {
		panic("vkr: EndFrame called without a begun frame")
	}
	r.frameBegun = false

	frame := r.currentFrame()

	submits := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{frame.acquireSemaphore},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{frame.commandBuffer},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{frame.renderSemaphore},
	}}
	if err := vk.Error(vk.QueueSubmit(r.device.Queue(), 1, submits, frame.fence)); err != nil {
		return false, errors.New("vk.QueueSubmit(): " + err.Error())
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{frame.renderSemaphore},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{r.swapchain.Get()},
		PImageIndices:      []uint32{r.imageIndex},
	}

	result := vk.QueuePresent(r.device.Queue(), &presentInfo)
	rebuild, err := frameOutcome(result, r.pendingResize)
	if rebuild {
		if err := r.rebuildSwapchain(); err != nil {
			return false, err
		}
		return false, nil
	}
	if err != nil {
		return false, errors.New("vk.QueuePresent(): " + err.Error())
	}

	r.frameNumber++
	return true, nil
}

// Resize records the new window size. The swapchain is rebuilt on the
// next frame boundary, never mid-frame.
func (r *Renderer) Resize(width, height uint32) {
	r.width = width
	r.height = height
	r.pendingResize = true
}

// buildSwapchainResources creates everything that depends on the
// surface size: swapchain, render pass, depth attachment, framebuffers.
func (r *Renderer) buildSwapchainResources(oldSwapchain vk.Swapchain) error {
	swapchain, err := NewSwapchain(r.device, r.width, r.height, oldSwapchain)
	if err != nil {
		return err
	}
	r.swapchain = swapchain

	renderPass, err := NewRenderPass(r.device.Get(), swapchain.Format())
	if err != nil {
		return err
	}
	r.renderPass = renderPass

	depth, err := NewDepthImage(r.device.Get(), swapchain.Extent(), r.allocator)
	if err != nil {
		return err
	}
	r.depth = depth

	for _, view := range swapchain.ImageViews() {
		attachments := []vk.ImageView{view, depth.View()}
		fci := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      renderPass.Get(),
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           swapchain.Extent().Width,
			Height:          swapchain.Extent().Height,
			Layers:          1,
		}

		var framebuffer vk.Framebuffer
		if err := vk.Error(vk.CreateFramebuffer(r.device.Get(), &fci, nil, &framebuffer)); err != nil {
			return errors.New("vk.CreateFramebuffer(): " + err.Error())
		}
		r.framebuffers = append(r.framebuffers, framebuffer)
	}
	return nil
}

func (r *Renderer) releaseSwapchainResources() {
	for _, framebuffer := range r.framebuffers {
		vk.DestroyFramebuffer(r.device.Get(), framebuffer, nil)
	}
	r.framebuffers = nil
	for _, resource := range []gfx.Releasable{r.depth, r.renderPass, r.swapchain} {
		resource.Release()
	}
}

// rebuildSwapchain drains the device and recreates the presentation
// chain at the current window size.
func (r *Renderer) rebuildSwapchain() error {
	log.WithFields(log.Fields{
		"width":  r.width,
		"height": r.height,
	}).Debug("vkr: rebuilding swapchain")

	r.device.WaitIdle()
	r.releaseSwapchainResources()
	r.pendingResize = false
	return r.buildSwapchainResources(nil)
}

// Destroy drains the device and releases everything the renderer owns.
func (r *Renderer) Destroy() {
	r.device.WaitIdle()

	for i := range r.frames {
		r.frames[i].release(r.device.Get())
	}
	r.releaseSwapchainResources()
	vk.DestroyCommandPool(r.device.Get(), r.commandPool, nil)
	r.device.Destroy()
}
