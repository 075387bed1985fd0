package core

import (
	"strconv"

	"github.com/gobuffalo/envy"
)

// Configuration defines a global engine configuration setting
type Configuration struct {
	Time     TimeConfiguration
	Instance InstanceConfiguration
	Renderer RendererConfiguration
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the delay between window event polls,
	// in milliseconds
	EventPollDelay int
}

// InstanceConfiguration is used when creating the Vulkan instance
type InstanceConfiguration struct {
	DebugMode  bool
	Layers     []string
	Extensions []string
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	ScreenWidth  uint32
	ScreenHeight uint32

	// ShaderDirectory is scanned for compiled .spv shaders
	ShaderDirectory string

	// ShaderArchive optionally points at a pak archive to load
	// shaders from, taking precedence over ShaderDirectory
	ShaderArchive string

	// MaxQuads caps the quad count of a single batch.
	// Zero selects the built-in default
	MaxQuads uint32
}

// FromEnv builds a Configuration from the process environment,
// falling back to sensible defaults. Variables: TOY_FPS_CAP,
// TOY_EVENT_POLL_MS, TOY_SCREEN_WIDTH, TOY_SCREEN_HEIGHT,
// TOY_SHADER_DIR, TOY_SHADER_PAK, TOY_MAX_QUADS, TOY_VULKAN_DEBUG.
func FromEnv() Configuration {
	return Configuration{
		Time: TimeConfiguration{
			FramesPerSecond: envInt("TOY_FPS_CAP", 0),
			EventPollDelay:  envInt("TOY_EVENT_POLL_MS", 2),
		},
		Instance: InstanceConfiguration{
			DebugMode: envInt("TOY_VULKAN_DEBUG", 0) != 0,
		},
		Renderer: RendererConfiguration{
			ScreenWidth:     uint32(envInt("TOY_SCREEN_WIDTH", 1280)),
			ScreenHeight:    uint32(envInt("TOY_SCREEN_HEIGHT", 720)),
			ShaderDirectory: envy.Get("TOY_SHADER_DIR", "shaders"),
			ShaderArchive:   envy.Get("TOY_SHADER_PAK", ""),
			MaxQuads:        uint32(envInt("TOY_MAX_QUADS", 0)),
		},
	}
}

func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(envy.Get(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return value
}
