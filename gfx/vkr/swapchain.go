package vkr

import (
	"errors"
	"math"

	log "github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// selectSurfaceFormat prefers a BGRA8 sRGB surface with a nonlinear
// sRGB colorspace and falls back to whatever the surface lists first.
func selectSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	for _, format := range formats {
		if format.Format == vk.FormatB8g8r8a8Srgb && format.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return format
		}
	}
	return formats[0]
}

// selectImageCount requests one image over the minimum, clamped to the
// maximum when the surface reports one.
func selectImageCount(capabilities vk.SurfaceCapabilities) uint32 {
	count := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && count > capabilities.MaxImageCount {
		count = capabilities.MaxImageCount
	}
	return count
}

// selectPreTransform picks the identity transform when supported,
// otherwise the surface's current transform.
func selectPreTransform(capabilities vk.SurfaceCapabilities) vk.SurfaceTransformFlagBits {
	if capabilities.SupportedTransforms&vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit) != 0 {
		return vk.SurfaceTransformIdentityBit
	}
	return capabilities.CurrentTransform
}

// selectExtent uses the surface's current extent unless the surface
// leaves it undefined, in which case the window size is clamped into
// the supported image extent range.
func selectExtent(capabilities vk.SurfaceCapabilities, width, height uint32) vk.Extent2D {
	if capabilities.CurrentExtent.Width != math.MaxUint32 {
		return capabilities.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clampUint32(width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clampUint32(height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

// selectPresentMode prefers mailbox and falls back to fifo,
// which is always available.
func selectPresentMode(modes []vk.PresentMode) vk.PresentMode {
	for _, mode := range modes {
		if mode == vk.PresentModeMailbox {
			return mode
		}
	}
	return vk.PresentModeFifo
}

func clampUint32(value, min, max uint32) uint32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// NewSwapchain builds a swapchain sized against the surface and the
// given window size, along with views for all of its images.
// The previous swapchain may be passed in to be recycled.
func NewSwapchain(dev *Device, width, height uint32, oldSwapchain vk.Swapchain) (*Swapchain, error) {
	var capabilities vk.SurfaceCapabilities
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(dev.Physical(), dev.Surface(), &capabilities)); err != nil {
		return nil, errors.New("vk.GetPhysicalDeviceSurfaceCapabilities(): " + err.Error())
	}
	capabilities.Deref()
	capabilities.CurrentExtent.Deref()
	capabilities.MinImageExtent.Deref()
	capabilities.MaxImageExtent.Deref()

	var formatCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(dev.Physical(), dev.Surface(), &formatCount, nil)); err != nil {
		return nil, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}
	formats := make([]vk.SurfaceFormat, formatCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(dev.Physical(), dev.Surface(), &formatCount, formats)); err != nil {
		return nil, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}
	for i := range formats {
		formats[i].Deref()
	}

	var modeCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(dev.Physical(), dev.Surface(), &modeCount, nil)); err != nil {
		return nil, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
	}
	modes := make([]vk.PresentMode, modeCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(dev.Physical(), dev.Surface(), &modeCount, modes)); err != nil {
		return nil, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
	}

	surfaceFormat := selectSurfaceFormat(formats)
	extent := selectExtent(capabilities, width, height)

	compositeAlpha := vk.CompositeAlphaOpaqueBit
	compositeAlphaFlags := []vk.CompositeAlphaFlagBits{
		vk.CompositeAlphaOpaqueBit,
		vk.CompositeAlphaPreMultipliedBit,
		vk.CompositeAlphaPostMultipliedBit,
		vk.CompositeAlphaInheritBit,
	}
	for i := 0; i < len(compositeAlphaFlags); i++ {
		alphaFlags := vk.CompositeAlphaFlags(compositeAlphaFlags[i])
		flagSupported := capabilities.SupportedCompositeAlpha&alphaFlags != 0
		if flagSupported {
			compositeAlpha = compositeAlphaFlags[i]
			break
		}
	}

	scci := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          dev.Surface(),
		MinImageCount:    selectImageCount(capabilities),
		ImageFormat:      surfaceFormat.Format,
		ImageColorSpace:  surfaceFormat.ColorSpace,
		ImageExtent:      extent,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		PreTransform:     selectPreTransform(capabilities),
		CompositeAlpha:   compositeAlpha,
		PresentMode:      selectPresentMode(modes),
		Clipped:          vk.True,
		ImageArrayLayers: 1,
		ImageSharingMode: vk.SharingModeExclusive,
		OldSwapchain:     oldSwapchain,
	}

	var swapchain vk.Swapchain
	if err := vk.Error(vk.CreateSwapchain(dev.Get(), &scci, nil, &swapchain)); err != nil {
		return nil, errors.New("vk.CreateSwapchain(): " + err.Error())
	}

	var numImages uint32
	if err := vk.Error(vk.GetSwapchainImages(dev.Get(), swapchain, &numImages, nil)); err != nil {
		return nil, errors.New("vk.GetSwapchainImages(num): " + err.Error())
	}
	images := make([]vk.Image, numImages)
	if err := vk.Error(vk.GetSwapchainImages(dev.Get(), swapchain, &numImages, images)); err != nil {
		return nil, errors.New("vk.GetSwapchainImages(images): " + err.Error())
	}

	sc := &Swapchain{
		device:    dev.Get(),
		swapchain: swapchain,
		images:    images,
		format:    surfaceFormat.Format,
		extent:    extent,
	}

	for _, image := range images {
		ivci := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    image,
			ViewType: vk.ImageViewType2d,
			Format:   surfaceFormat.Format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}

		var imageView vk.ImageView
		if err := vk.Error(vk.CreateImageView(dev.Get(), &ivci, nil, &imageView)); err != nil {
			return nil, errors.New("vk.CreateImageView(): " + err.Error())
		}
		sc.imageViews = append(sc.imageViews, imageView)
	}

	return sc, nil
}

// Swapchain owns the presentable images and their views.
type Swapchain struct {
	device     vk.Device
	swapchain  vk.Swapchain
	images     []vk.Image
	imageViews []vk.ImageView
	format     vk.Format
	extent     vk.Extent2D

	released bool
}

// Get returns the vulkan swapchain handle.
func (s *Swapchain) Get() vk.Swapchain {
	return s.swapchain
}

// Format returns the image format of the swapchain.
func (s *Swapchain) Format() vk.Format {
	return s.format
}

// Extent returns the image extent of the swapchain.
func (s *Swapchain) Extent() vk.Extent2D {
	return s.extent
}

// ImageViews returns one view per swapchain image, in image order.
func (s *Swapchain) ImageViews() []vk.ImageView {
	return s.imageViews
}

// Release destroys the image views and the swapchain. The images
// themselves belong to the swapchain. Releasing twice is a no-op.
func (s *Swapchain) Release() {
	if s.released {
		log.Warn("vkr: release of an already released swapchain")
		return
	}
	s.released = true
	for _, view := range s.imageViews {
		vk.DestroyImageView(s.device, view, nil)
	}
	vk.DestroySwapchain(s.device, s.swapchain, nil)
}
