package vkr

import (
	"errors"

	vk "github.com/vulkan-go/vulkan"
)

// maxFramesInFlight is the depth of the frame ring. Two slots let the
// CPU record a frame while the GPU works on the previous one.
const maxFramesInFlight = 2

// frameSlot carries the per-frame synchronization primitives and the
// command buffer the frame is recorded into.
type frameSlot struct {
	fence            vk.Fence
	acquireSemaphore vk.Semaphore
	renderSemaphore  vk.Semaphore
	commandBuffer    vk.CommandBuffer
}

// newFrameSlots creates count slots with their fences already
// signaled, so the first wait on each passes immediately.
func newFrameSlots(dev vk.Device, pool vk.CommandPool, count int) ([]frameSlot, error) {
	cbai := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(count),
	}
	commandBuffers := make([]vk.CommandBuffer, count)
	if err := vk.Error(vk.AllocateCommandBuffers(dev, &cbai, commandBuffers)); err != nil {
		return nil, errors.New("vk.AllocateCommandBuffers(): " + err.Error())
	}

	sci := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	fci := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}

	slots := make([]frameSlot, count)
	for i := range slots {
		slots[i].commandBuffer = commandBuffers[i]
		if err := vk.Error(vk.CreateFence(dev, &fci, nil, &slots[i].fence)); err != nil {
			return nil, errors.New("vk.CreateFence(): " + err.Error())
		}
		if err := vk.Error(vk.CreateSemaphore(dev, &sci, nil, &slots[i].acquireSemaphore)); err != nil {
			return nil, errors.New("vk.CreateSemaphore(): " + err.Error())
		}
		if err := vk.Error(vk.CreateSemaphore(dev, &sci, nil, &slots[i].renderSemaphore)); err != nil {
			return nil, errors.New("vk.CreateSemaphore(): " + err.Error())
		}
	}
	return slots, nil
}

func (f *frameSlot) release(dev vk.Device) {
	vk.DestroyFence(dev, f.fence, nil)
	vk.DestroySemaphore(dev, f.acquireSemaphore, nil)
	vk.DestroySemaphore(dev, f.renderSemaphore, nil)
}
