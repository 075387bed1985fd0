package vkr

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// depthFormat is the only depth attachment format in use.
const depthFormat = vk.FormatD16Unorm

// NewDepthImage creates a device local depth attachment
// covering the given extent, along with its view.
func NewDepthImage(dev vk.Device, extent vk.Extent2D, ma *MemoryAllocator) (*DepthImage, error) {
	ici := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Format:    depthFormat,
		Extent: vk.Extent3D{
			Width:  extent.Width,
			Height: extent.Height,
			Depth:  1,
		},
		MipLevels:   1,
		ArrayLayers: 1,
		Samples:     vk.SampleCount1Bit,
		Tiling:      vk.ImageTilingOptimal,
		Usage:       vk.ImageUsageFlags(vk.ImageUsageDepthStencilAttachmentBit),
	}

	var image vk.Image
	if err := vk.Error(vk.CreateImage(dev, &ici, nil, &image)); err != nil {
		return nil, errors.New("vk.CreateImage(): " + err.Error())
	}

	var req vk.MemoryRequirements
	vk.GetImageMemoryRequirements(dev, image, &req)
	req.Deref()

	memory, err := ma.Malloc(req, vk.MemoryPropertyDeviceLocalBit)
	if err != nil {
		return nil, err
	}

	if err := vk.Error(vk.BindImageMemory(dev, image, memory.Get(), vk.DeviceSize(memory.Offset()))); err != nil {
		return nil, errors.New("vk.BindImageMemory(): " + err.Error())
	}

	ivci := vk.ImageViewCreateInfo{
		SType:  vk.StructureTypeImageViewCreateInfo,
		Format: depthFormat,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectDepthBit),
			LevelCount: 1,
			LayerCount: 1,
		},
		ViewType: vk.ImageViewType2d,
		Image:    image,
	}

	var view vk.ImageView
	if err := vk.Error(vk.CreateImageView(dev, &ivci, nil, &view)); err != nil {
		return nil, errors.New("vk.CreateImageView(): " + err.Error())
	}

	return &DepthImage{
		device: dev,
		image:  image,
		view:   view,
		memory: memory,
	}, nil
}

// DepthImage is the depth attachment backing the render pass.
type DepthImage struct {
	device vk.Device
	image  vk.Image
	view   vk.ImageView
	memory Memory

	released bool
}

// View returns the image view handle.
func (d *DepthImage) View() vk.ImageView {
	return d.view
}

// Release destroys the view, image and memory.
// Releasing twice is a no-op.
func (d *DepthImage) Release() {
	if d.released {
		log.Warn("vkr: release of an already released depth image")
		return
	}
	d.released = true
	vk.DestroyImageView(d.device, d.view, nil)
	vk.DestroyImage(d.device, d.image, nil)
	d.memory.Release()
}

type barrierMasks struct {
	srcAccess vk.AccessFlagBits
	dstAccess vk.AccessFlagBits
	srcStage  vk.PipelineStageFlagBits
	dstStage  vk.PipelineStageFlagBits
}

// transitionMasks resolves the access masks and pipeline stages for a
// layout transition. Only the two transitions used by resource uploads
// are supported, anything else is rejected up front.
func transitionMasks(oldLayout, newLayout vk.ImageLayout) (barrierMasks, error) {
	switch {
	case oldLayout == vk.ImageLayoutUndefined && newLayout == vk.ImageLayoutTransferDstOptimal:
		return barrierMasks{
			srcAccess: 0,
			dstAccess: vk.AccessTransferWriteBit,
			srcStage:  vk.PipelineStageTopOfPipeBit,
			dstStage:  vk.PipelineStageTransferBit,
		}, nil
	case oldLayout == vk.ImageLayoutTransferDstOptimal && newLayout == vk.ImageLayoutShaderReadOnlyOptimal:
		return barrierMasks{
			srcAccess: vk.AccessTransferWriteBit,
			dstAccess: vk.AccessShaderReadBit,
			srcStage:  vk.PipelineStageTransferBit,
			dstStage:  vk.PipelineStageFragmentShaderBit,
		}, nil
	default:
		return barrierMasks{}, fmt.Errorf("unsupported layout transition: %d to %d", oldLayout, newLayout)
	}
}

// TransitionImageLayout records and submits a pipeline barrier moving
// image from oldLayout to newLayout, waiting for completion.
func TransitionImageLayout(dev *Device, pool vk.CommandPool, image vk.Image, oldLayout, newLayout vk.ImageLayout) error {
	masks, err := transitionMasks(oldLayout, newLayout)
	if err != nil {
		return err
	}

	return singleTimeCommands(dev, pool, func(cmd vk.CommandBuffer) {
		barrier := vk.ImageMemoryBarrier{
			SType:               vk.StructureTypeImageMemoryBarrier,
			OldLayout:           oldLayout,
			NewLayout:           newLayout,
			SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
			DstQueueFamilyIndex: vk.QueueFamilyIgnored,
			Image:               image,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
			SrcAccessMask: vk.AccessFlags(masks.srcAccess),
			DstAccessMask: vk.AccessFlags(masks.dstAccess),
		}
		vk.CmdPipelineBarrier(cmd,
			vk.PipelineStageFlags(masks.srcStage), vk.PipelineStageFlags(masks.dstStage),
			0, 0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{barrier})
	})
}

// singleTimeCommands allocates a throwaway command buffer, records fn
// into it and submits it, blocking until the queue drains.
func singleTimeCommands(dev *Device, pool vk.CommandPool, fn func(vk.CommandBuffer)) error {
	cbai := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}

	commandBuffers := make([]vk.CommandBuffer, 1)
	if err := vk.Error(vk.AllocateCommandBuffers(dev.Get(), &cbai, commandBuffers)); err != nil {
		return errors.New("vk.AllocateCommandBuffers(): " + err.Error())
	}
	defer vk.FreeCommandBuffers(dev.Get(), pool, 1, commandBuffers)

	cbbi := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if err := vk.Error(vk.BeginCommandBuffer(commandBuffers[0], &cbbi)); err != nil {
		return errors.New("vk.BeginCommandBuffer(): " + err.Error())
	}

	fn(commandBuffers[0])

	if err := vk.Error(vk.EndCommandBuffer(commandBuffers[0])); err != nil {
		return errors.New("vk.EndCommandBuffer(): " + err.Error())
	}

	submits := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    commandBuffers,
	}}
	if err := vk.Error(vk.QueueSubmit(dev.Queue(), 1, submits, vk.NullFence)); err != nil {
		return errors.New("vk.QueueSubmit(): " + err.Error())
	}
	vk.QueueWaitIdle(dev.Queue())

	return nil
}
