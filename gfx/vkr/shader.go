package vkr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devodev/toy-engine/core"
	"github.com/devodev/toy-engine/pak"
)

const shaderSuffix = ".spv"

// NewShader wraps SPIR-V bytecode into a shader module.
func NewShader(dev vk.Device, name string, shaderType core.ShaderType, bytecode []byte) (*Shader, error) {
	smci := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(bytecode)),
		PCode:    core.SliceUint32(bytecode),
	}

	var module vk.ShaderModule
	if err := vk.Error(vk.CreateShaderModule(dev, &smci, nil, &module)); err != nil {
		return nil, fmt.Errorf("vk.CreateShaderModule(%s): %s", name, err.Error())
	}

	return &Shader{
		device:     dev,
		module:     module,
		shaderType: shaderType,
		name:       name,
	}, nil
}

// Shader is a loaded shader module.
type Shader struct {
	device     vk.Device
	module     vk.ShaderModule
	shaderType core.ShaderType
	name       string

	released bool
}

// Get returns the vulkan shader module handle.
func (s *Shader) Get() vk.ShaderModule {
	return s.module
}

// Type returns the shader stage this module belongs to.
func (s *Shader) Type() core.ShaderType {
	return s.shaderType
}

// Name returns the shader name.
func (s *Shader) Name() string {
	return s.name
}

// Release destroys the shader module. Releasing twice is a no-op.
func (s *Shader) Release() {
	if s.released {
		log.WithField("shader", s.name).Warn("vkr: release of an already released shader")
		return
	}
	s.released = true
	vk.DestroyShaderModule(s.device, s.module, nil)
}

// shaderTypeOf derives the shader stage from a file name of the
// form name.vert.spv or name.frag.spv.
func shaderTypeOf(filename string) (string, core.ShaderType) {
	base := strings.TrimSuffix(filename, shaderSuffix)
	nodes := strings.Split(base, ".")
	if len(nodes) != 2 {
		return base, core.UnknownShaderType
	}
	switch nodes[1] {
	case "vert":
		return nodes[0], core.VertexShaderType
	case "frag":
		return nodes[0], core.FragmentShaderType
	default:
		return nodes[0], core.UnknownShaderType
	}
}

// ShadersFromDirectory walks dir and loads every compiled shader in it.
// Only files named name.vert.spv or name.frag.spv are considered.
func ShadersFromDirectory(dev vk.Device, dir string) ([]*Shader, error) {
	var shaders []*Shader
	if err := filepath.Walk(dir, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !strings.HasSuffix(f.Name(), shaderSuffix) {
			return nil
		}
		name, shaderType := shaderTypeOf(f.Name())
		if shaderType == core.UnknownShaderType {
			return nil
		}
		bytecode, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		shader, err := NewShader(dev, name, shaderType, bytecode)
		if err != nil {
			return err
		}
		shaders = append(shaders, shader)
		return nil
	}); err != nil {
		return nil, err
	}
	return shaders, nil
}

// shaderSource is shader bytecode waiting to become a module.
type shaderSource struct {
	name       string
	shaderType core.ShaderType
	bytecode   []byte
}

// shaderSourcesFromArchive collects the compiled shaders in a pak
// archive, in archive order. Entries that are not name.vert.spv or
// name.frag.spv are skipped.
func shaderSourcesFromArchive(archive *pak.Archive) ([]shaderSource, error) {
	var sources []shaderSource
	for _, entry := range archive.Entries() {
		if !strings.HasSuffix(entry, shaderSuffix) {
			continue
		}
		name, shaderType := shaderTypeOf(filepath.Base(entry))
		if shaderType == core.UnknownShaderType {
			continue
		}
		bytecode, err := archive.ReadAll(entry)
		if err != nil {
			return nil, err
		}
		sources = append(sources, shaderSource{
			name:       name,
			shaderType: shaderType,
			bytecode:   bytecode,
		})
	}
	return sources, nil
}

// ShadersFromArchive loads every compiled shader found in a pak archive.
func ShadersFromArchive(dev vk.Device, archive *pak.Archive) ([]*Shader, error) {
	sources, err := shaderSourcesFromArchive(archive)
	if err != nil {
		return nil, err
	}
	shaders := make([]*Shader, 0, len(sources))
	for _, source := range sources {
		shader, err := NewShader(dev, source.name, source.shaderType, source.bytecode)
		if err != nil {
			return nil, err
		}
		shaders = append(shaders, shader)
	}
	return shaders, nil
}
