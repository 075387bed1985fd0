package vkr

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devodev/toy-engine/core"
	"github.com/devodev/toy-engine/pak"
)

func TestShaderTypeOf(t *testing.T) {
	tests := []struct {
		filename     string
		expectedName string
		expectedType core.ShaderType
	}{
		{"quad.vert.spv", "quad", core.VertexShaderType},
		{"quad.frag.spv", "quad", core.FragmentShaderType},
		{"quad.comp.spv", "quad", core.UnknownShaderType},
		{"quad.spv", "quad", core.UnknownShaderType},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			name, shaderType := shaderTypeOf(tt.filename)
			assert.Equal(t, tt.expectedName, name)
			assert.Equal(t, tt.expectedType, shaderType)
		})
	}
}

func TestShaderSourcesFromArchive(t *testing.T) {
	builder := pak.NewBuilder(pak.Header{
		Author:  "devodev",
		Created: time.Now().Unix(),
		Version: 1,
	})
	require.NoError(t, builder.Add("quad.vert.spv", strings.NewReader("vertex bytecode")))
	require.NoError(t, builder.Add("quad.frag.spv", strings.NewReader("fragment bytecode")))
	require.NoError(t, builder.Add("readme.txt", strings.NewReader("not a shader")))

	var buf bytes.Buffer
	_, err := builder.WriteTo(&buf)
	require.NoError(t, err)

	archive, err := pak.Open(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	sources, err := shaderSourcesFromArchive(archive)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "quad", sources[0].name)
	assert.Equal(t, core.VertexShaderType, sources[0].shaderType)
	assert.Equal(t, []byte("vertex bytecode"), sources[0].bytecode)

	assert.Equal(t, "quad", sources[1].name)
	assert.Equal(t, core.FragmentShaderType, sources[1].shaderType)
	assert.Equal(t, []byte("fragment bytecode"), sources[1].bytecode)
}
