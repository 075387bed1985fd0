// Package model contains the data types that describe drawable content.
package model

import (
	"unsafe"

	glm "github.com/go-gl/mathgl/mgl32"
	vk "github.com/vulkan-go/vulkan"
)

// Vertex is the per-vertex layout consumed by the 2D pipeline.
type Vertex struct {
	Pos   glm.Vec4
	Color glm.Vec4
}

// Uniform is the per-frame shader uniform block.
type Uniform struct {
	ViewProjection glm.Mat4
}

// Transform places an object in world space.
type Transform struct {
	Position glm.Vec3
	Rotation glm.Vec3
	Scale    glm.Vec3
}

// GameObject is a drawable quad with a transform and a color.
type GameObject struct {
	Transform Transform
	Color     glm.Vec4
}

// NewGameObject creates a GameObject with identity scale and opaque white color.
func NewGameObject() GameObject {
	return GameObject{
		Transform: Transform{
			Scale: glm.Vec3{1, 1, 1},
		},
		Color: glm.Vec4{1, 1, 1, 1},
	}
}

// WithPosition returns a copy of the object moved to pos.
func (g GameObject) WithPosition(pos glm.Vec3) GameObject {
	g.Transform.Position = pos
	return g
}

// WithRotation returns a copy of the object with the given euler rotation.
func (g GameObject) WithRotation(rot glm.Vec3) GameObject {
	g.Transform.Rotation = rot
	return g
}

// WithScale returns a copy of the object with the given scale.
func (g GameObject) WithScale(scale glm.Vec3) GameObject {
	g.Transform.Scale = scale
	return g
}

// WithColor returns a copy of the object with the given color.
func (g GameObject) WithColor(color glm.Vec4) GameObject {
	g.Color = color
	return g
}

// VertexBindingDescriptions return Vulkan Vertex descriptors
func VertexBindingDescriptions() []vk.VertexInputBindingDescription {
	return []vk.VertexInputBindingDescription{{
		Binding:   0,
		Stride:    uint32(unsafe.Sizeof(Vertex{})),
		InputRate: vk.VertexInputRateVertex,
	}}
}

// VertexAttributeDescriptions return Vulkan attribute descriptors
func VertexAttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{
			Binding:  0,
			Location: 0,
			Format:   vk.FormatR32g32b32a32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Pos)),
		},
		{
			Binding:  0,
			Location: 1,
			Format:   vk.FormatR32g32b32a32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Color)),
		},
	}
}
