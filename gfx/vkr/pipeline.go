package vkr

import (
	"errors"

	log "github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devodev/toy-engine/core"
	"github.com/devodev/toy-engine/model"
)

// NewPipeline builds the graphics pipeline for batched quads: alpha
// blended triangles with a dynamic viewport and scissor, depth tested
// against the shared depth attachment.
func NewPipeline(dev vk.Device, renderPass *RenderPass, descriptorLayout vk.DescriptorSetLayout, shaders []*Shader) (*Pipeline, error) {
	stages := make([]vk.PipelineShaderStageCreateInfo, len(shaders))
	for idx, shader := range shaders {
		var stage vk.ShaderStageFlagBits
		switch shader.Type() {
		case core.VertexShaderType:
			stage = vk.ShaderStageVertexBit
		case core.FragmentShaderType:
			stage = vk.ShaderStageFragmentBit
		default:
			return nil, errors.New("unsupported shader type attempted creation")
		}

		stages[idx].SType = vk.StructureTypePipelineShaderStageCreateInfo
		stages[idx].Stage = stage
		stages[idx].Module = shader.Get()
		stages[idx].PName = "main\x00"
	}

	plci := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: 1,
		PSetLayouts:    []vk.DescriptorSetLayout{descriptorLayout},
	}

	var layout vk.PipelineLayout
	if err := vk.Error(vk.CreatePipelineLayout(dev, &plci, nil, &layout)); err != nil {
		return nil, errors.New("vk.CreatePipelineLayout(): " + err.Error())
	}

	pcci := vk.PipelineCacheCreateInfo{
		SType: vk.StructureTypePipelineCacheCreateInfo,
	}
	var cache vk.PipelineCache
	if err := vk.Error(vk.CreatePipelineCache(dev, &pcci, nil, &cache)); err != nil {
		return nil, errors.New("vk.CreatePipelineCache(): " + err.Error())
	}

	gpci := []vk.GraphicsPipelineCreateInfo{{
		SType:      vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount: uint32(len(stages)),
		PStages:    stages,
		PVertexInputState: &vk.PipelineVertexInputStateCreateInfo{
			SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
			VertexBindingDescriptionCount:   uint32(len(model.VertexBindingDescriptions())),
			PVertexBindingDescriptions:      model.VertexBindingDescriptions(),
			VertexAttributeDescriptionCount: uint32(len(model.VertexAttributeDescriptions())),
			PVertexAttributeDescriptions:    model.VertexAttributeDescriptions(),
		},
		PInputAssemblyState: &vk.PipelineInputAssemblyStateCreateInfo{
			SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
			Topology: vk.PrimitiveTopologyTriangleList,
		},
		PViewportState: &vk.PipelineViewportStateCreateInfo{
			SType:         vk.StructureTypePipelineViewportStateCreateInfo,
			ViewportCount: 1,
			ScissorCount:  1,
		},
		PRasterizationState: &vk.PipelineRasterizationStateCreateInfo{
			SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
			PolygonMode: vk.PolygonModeFill,
			CullMode:    vk.CullModeFlags(vk.CullModeNone),
			FrontFace:   vk.FrontFaceCounterClockwise,
			LineWidth:   1.0,
		},
		PDepthStencilState: &vk.PipelineDepthStencilStateCreateInfo{
			SType:                 vk.StructureTypePipelineDepthStencilStateCreateInfo,
			DepthTestEnable:       vk.True,
			DepthWriteEnable:      vk.True,
			DepthCompareOp:        vk.CompareOpLessOrEqual,
			DepthBoundsTestEnable: vk.False,
			StencilTestEnable:     vk.False,
			Back: vk.StencilOpState{
				FailOp:    vk.StencilOpKeep,
				PassOp:    vk.StencilOpKeep,
				CompareOp: vk.CompareOpAlways,
			},
			Front: vk.StencilOpState{
				FailOp:    vk.StencilOpKeep,
				PassOp:    vk.StencilOpKeep,
				CompareOp: vk.CompareOpAlways,
			},
		},
		PMultisampleState: &vk.PipelineMultisampleStateCreateInfo{
			SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
			RasterizationSamples: vk.SampleCount1Bit,
		},
		PColorBlendState: &vk.PipelineColorBlendStateCreateInfo{
			SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
			AttachmentCount: 1,
			PAttachments: []vk.PipelineColorBlendAttachmentState{{
				ColorWriteMask:      0xF,
				BlendEnable:         vk.True,
				SrcColorBlendFactor: vk.BlendFactorSrcAlpha,
				DstColorBlendFactor: vk.BlendFactorOneMinusSrcAlpha,
				ColorBlendOp:        vk.BlendOpAdd,
				SrcAlphaBlendFactor: vk.BlendFactorOne,
				DstAlphaBlendFactor: vk.BlendFactorZero,
				AlphaBlendOp:        vk.BlendOpAdd,
			}},
		},
		PDynamicState: &vk.PipelineDynamicStateCreateInfo{
			SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
			DynamicStateCount: 2,
			PDynamicStates: []vk.DynamicState{
				vk.DynamicStateViewport,
				vk.DynamicStateScissor,
			},
		},
		Layout:     layout,
		RenderPass: renderPass.Get(),
	}}

	pipelines := make([]vk.Pipeline, len(gpci))
	if err := vk.Error(vk.CreateGraphicsPipelines(dev, cache, uint32(len(gpci)), gpci, nil, pipelines)); err != nil {
		return nil, errors.New("vk.CreateGraphicsPipelines(): " + err.Error())
	}

	return &Pipeline{
		device:   dev,
		pipeline: pipelines[0],
		layout:   layout,
		cache:    cache,
	}, nil
}

// Pipeline wraps the graphics pipeline with its layout and cache.
type Pipeline struct {
	device   vk.Device
	pipeline vk.Pipeline
	layout   vk.PipelineLayout
	cache    vk.PipelineCache

	released bool
}

// Get returns the vulkan pipeline handle.
func (p *Pipeline) Get() vk.Pipeline {
	return p.pipeline
}

// Layout returns the pipeline layout handle.
func (p *Pipeline) Layout() vk.PipelineLayout {
	return p.layout
}

// Release destroys the pipeline, cache and layout.
// Releasing twice is a no-op.
func (p *Pipeline) Release() {
	if p.released {
		log.Warn("vkr: release of an already released pipeline")
		return
	}
	p.released = true
	vk.DestroyPipeline(p.device, p.pipeline, nil)
	vk.DestroyPipelineCache(p.device, p.cache, nil)
	vk.DestroyPipelineLayout(p.device, p.layout, nil)
}
