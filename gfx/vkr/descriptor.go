package vkr

import (
	"errors"

	log "github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// NewDescriptors creates the descriptor state for the 2D pipeline:
// a single set with one uniform buffer visible to the vertex stage.
func NewDescriptors(dev vk.Device) (*Descriptors, error) {
	dslci := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: 1,
		PBindings: []vk.DescriptorSetLayoutBinding{{
			Binding:         0,
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorTypeUniformBuffer,
			StageFlags:      vk.ShaderStageFlags(vk.ShaderStageVertexBit),
		}},
	}

	var layout vk.DescriptorSetLayout
	if err := vk.Error(vk.CreateDescriptorSetLayout(dev, &dslci, nil, &layout)); err != nil {
		return nil, errors.New("vk.CreateDescriptorSetLayout(): " + err.Error())
	}

	dpci := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       1,
		PoolSizeCount: 1,
		PPoolSizes: []vk.DescriptorPoolSize{{
			Type:            vk.DescriptorTypeUniformBuffer,
			DescriptorCount: 1,
		}},
	}

	var pool vk.DescriptorPool
	if err := vk.Error(vk.CreateDescriptorPool(dev, &dpci, nil, &pool)); err != nil {
		return nil, errors.New("vk.CreateDescriptorPool(): " + err.Error())
	}

	dsai := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     pool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{layout},
	}

	var set vk.DescriptorSet
	if err := vk.Error(vk.AllocateDescriptorSets(dev, &dsai, &set)); err != nil {
		return nil, errors.New("vk.AllocateDescriptorSets(): " + err.Error())
	}

	return &Descriptors{
		device: dev,
		layout: layout,
		pool:   pool,
		set:    set,
	}, nil
}

// Descriptors owns the descriptor layout, pool and the one set
// the 2D pipeline binds.
type Descriptors struct {
	device vk.Device
	layout vk.DescriptorSetLayout
	pool   vk.DescriptorPool
	set    vk.DescriptorSet

	released bool
}

// Layout returns the descriptor set layout handle.
func (d *Descriptors) Layout() vk.DescriptorSetLayout {
	return d.layout
}

// Set returns the descriptor set handle.
func (d *Descriptors) Set() vk.DescriptorSet {
	return d.set
}

// BindUniformBuffer points the set's uniform binding at buffer.
func (d *Descriptors) BindUniformBuffer(buffer *Buffer) {
	write := vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          d.set,
		DstBinding:      0,
		DescriptorCount: 1,
		DescriptorType:  vk.DescriptorTypeUniformBuffer,
		PBufferInfo: []vk.DescriptorBufferInfo{{
			Buffer: buffer.Get(),
			Offset: 0,
			Range:  vk.DeviceSize(buffer.Size()),
		}},
	}
	vk.UpdateDescriptorSets(d.device, 1, []vk.WriteDescriptorSet{write}, 0, nil)
}

// Release destroys the pool, its sets and the layout.
// Releasing twice is a no-op.
func (d *Descriptors) Release() {
	if d.released {
		log.Warn("vkr: release of already released descriptors")
		return
	}
	d.released = true
	vk.DestroyDescriptorPool(d.device, d.pool, nil)
	vk.DestroyDescriptorSetLayout(d.device, d.layout, nil)
}
