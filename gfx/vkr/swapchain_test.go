package vkr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestSelectSurfaceFormatPrefersSrgb(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}
	assert.Equal(t, formats[1], selectSurfaceFormat(formats))
}

func TestSelectSurfaceFormatFallsBackToFirst(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}
	assert.Equal(t, formats[0], selectSurfaceFormat(formats))
}

func TestSelectImageCount(t *testing.T) {
	tests := []struct {
		name     string
		min, max uint32
		expected uint32
	}{
		{"one over minimum", 2, 8, 3},
		{"clamped to maximum", 3, 3, 3},
		{"unbounded maximum", 2, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capabilities := vk.SurfaceCapabilities{
				MinImageCount: tt.min,
				MaxImageCount: tt.max,
			}
			assert.Equal(t, tt.expected, selectImageCount(capabilities))
		})
	}
}

func TestSelectPreTransform(t *testing.T) {
	identity := vk.SurfaceCapabilities{
		SupportedTransforms: vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit | vk.SurfaceTransformRotate90Bit),
		CurrentTransform:    vk.SurfaceTransformRotate90Bit,
	}
	assert.Equal(t, vk.SurfaceTransformIdentityBit, selectPreTransform(identity))

	rotated := vk.SurfaceCapabilities{
		SupportedTransforms: vk.SurfaceTransformFlags(vk.SurfaceTransformRotate90Bit),
		CurrentTransform:    vk.SurfaceTransformRotate90Bit,
	}
	assert.Equal(t, vk.SurfaceTransformRotate90Bit, selectPreTransform(rotated))
}

func TestSelectExtentUsesCurrentWhenDefined(t *testing.T) {
	capabilities := vk.SurfaceCapabilities{
		CurrentExtent: vk.Extent2D{Width: 800, Height: 600},
	}
	assert.Equal(t, vk.Extent2D{Width: 800, Height: 600}, selectExtent(capabilities, 1024, 768))
}

func TestSelectExtentClampsWindowSize(t *testing.T) {
	capabilities := vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: math.MaxUint32, Height: math.MaxUint32},
		MinImageExtent: vk.Extent2D{Width: 200, Height: 200},
		MaxImageExtent: vk.Extent2D{Width: 1000, Height: 1000},
	}
	assert.Equal(t, vk.Extent2D{Width: 1000, Height: 200}, selectExtent(capabilities, 4096, 100))
	assert.Equal(t, vk.Extent2D{Width: 640, Height: 480}, selectExtent(capabilities, 640, 480))
}

func TestSelectPresentModePrefersMailbox(t *testing.T) {
	modes := []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox}
	assert.Equal(t, vk.PresentModeMailbox, selectPresentMode(modes))
}

func TestSelectPresentModeFallsBackToFifo(t *testing.T) {
	modes := []vk.PresentMode{vk.PresentModeImmediate}
	assert.Equal(t, vk.PresentModeFifo, selectPresentMode(modes))
}
