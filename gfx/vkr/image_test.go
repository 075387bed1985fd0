package vkr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestTransitionMasksUploadPath(t *testing.T) {
	masks, err := transitionMasks(vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal)
	require.NoError(t, err)
	assert.Equal(t, vk.AccessTransferWriteBit, masks.dstAccess)
	assert.Equal(t, vk.PipelineStageTopOfPipeBit, masks.srcStage)
	assert.Equal(t, vk.PipelineStageTransferBit, masks.dstStage)

	masks, err = transitionMasks(vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal)
	require.NoError(t, err)
	assert.Equal(t, vk.AccessTransferWriteBit, masks.srcAccess)
	assert.Equal(t, vk.AccessShaderReadBit, masks.dstAccess)
	assert.Equal(t, vk.PipelineStageFragmentShaderBit, masks.dstStage)
}

func TestTransitionMasksRejectsUnsupported(t *testing.T) {
	_, err := transitionMasks(vk.ImageLayoutShaderReadOnlyOptimal, vk.ImageLayoutTransferDstOptimal)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported layout transition")
}
