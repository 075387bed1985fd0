package vkr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestBeginFrameSkipsOnZeroExtent(t *testing.T) {
	// A zero area window produces no frame and must bail out before
	// touching any device object.
	r := &Renderer{}
	r.Resize(0, 0)

	ok, err := r.BeginFrame()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFrameOutcome(t *testing.T) {
	tests := []struct {
		name          string
		result        vk.Result
		pendingResize bool
		rebuild       bool
		wantErr       bool
	}{
		{"success", vk.Success, false, false, false},
		{"suboptimal", vk.Suboptimal, false, true, false},
		{"out of date", vk.ErrorOutOfDate, false, true, false},
		{"pending resize", vk.Success, true, true, false},
		{"rebuild wins over resize error", vk.ErrorOutOfDate, true, true, false},
		{"device lost", vk.ErrorDeviceLost, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rebuild, err := frameOutcome(tt.result, tt.pendingResize)
			assert.Equal(t, tt.rebuild, rebuild)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDrawPanicsWithoutBegunFrame(t *testing.T) {
	r := &Renderer{}
	assert.Panics(t, func() {
		r.Draw(func(dev vk.Device, cmd vk.CommandBuffer) error { return nil })
	})
}

func TestEndFramePanicsWithoutBegunFrame(t *testing.T) {
	r := &Renderer{}
	assert.Panics(t, func() {
		r.EndFrame()
	})
}
