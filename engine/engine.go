// Package engine ties the window, input, cameras and renderers into
// a single frame loop that applications hook into.
package engine

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devodev/toy-engine/camera"
	"github.com/devodev/toy-engine/core"
	"github.com/devodev/toy-engine/gfx/vkr"
	"github.com/devodev/toy-engine/input"
	"github.com/devodev/toy-engine/model"
)

// Context is the state handed to the application on every callback.
// Objects placed in it are drawn each frame.
type Context struct {
	Objects []model.GameObject
	Delta   time.Duration
	Input   *input.System
}

// Application is the surface a game implements to run on the engine.
type Application interface {

	// OnInit runs once, before the first frame
	OnInit(ctx *Context) error

	// OnUpdate runs every frame, before rendering
	OnUpdate(ctx *Context)
}

// New initialises SDL, the window, the Vulkan stack and the 2D
// renderer, then hands the context to the application's OnInit.
// Call Run on the same OS thread afterwards.
func New(cfg core.Configuration, app Application) (*Engine, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, err
	}
	if err := sdl.VulkanLoadLibrary(""); err != nil {
		return nil, err
	}

	window, err := sdl.CreateWindow("ToyEngine",
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Renderer.ScreenWidth),
		int32(cfg.Renderer.ScreenHeight),
		sdl.WINDOW_VULKAN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return nil, err
	}

	instanceCfg := cfg.Instance
	instanceCfg.Extensions = append(instanceCfg.Extensions, window.VulkanGetInstanceExtensions()...)
	instance, err := core.NewVulkanInstance(core.DefaultVulkanApplicationInfo,
		sdl.VulkanGetVkGetInstanceProcAddr(), instanceCfg)
	if err != nil {
		return nil, err
	}

	surface, err := window.VulkanCreateSurface(instance.Inner())
	if err != nil {
		return nil, err
	}
	instance.SetSurface(surface)

	renderer, err := vkr.NewRenderer(instance, cfg.Renderer)
	if err != nil {
		return nil, err
	}

	renderer2d, err := vkr.NewRenderer2D(renderer, cfg.Renderer)
	if err != nil {
		return nil, err
	}

	inputSystem := input.NewSystem()
	controller := camera.NewController(camera.NewOrthographic(
		float32(cfg.Renderer.ScreenWidth), float32(cfg.Renderer.ScreenHeight), 1))
	counter := NewFrameCounter(NewExponentialMovingAverage(0.95))

	e := &Engine{
		cfg:        cfg,
		app:        app,
		window:     window,
		instance:   instance,
		renderer:   renderer,
		renderer2d: renderer2d,
		input:      inputSystem,
		controller: controller,
		timeSvc:    core.NewTime(cfg.Time),
		counter:    counter,
		printer:    NewFpsPrinter(counter, 2*time.Second),
		ctx: Context{
			Input: inputSystem,
		},
	}

	if err := app.OnInit(&e.ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Engine owns the frame loop.
type Engine struct {
	cfg core.Configuration
	app Application

	window     *sdl.Window
	instance   core.Instance
	renderer   *vkr.Renderer
	renderer2d *vkr.Renderer2D

	input      *input.System
	controller *camera.Controller
	timeSvc    core.Time
	counter    *FrameCounter
	printer    *FpsPrinter

	ctx Context
}

// Controller returns the camera controller driving the view.
func (e *Engine) Controller() *camera.Controller {
	return e.controller
}

// Run drives the frame loop until the window closes or rendering
// fails. It must run on the thread that created the engine.
func (e *Engine) Run() error {
	exitC := make(chan struct{}, 2)

EventLoop:
	for {
		select {
		case <-exitC:
			log.Info("event loop exited")
			break EventLoop
		case <-e.timeSvc.FpsTicker().C:
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.QuitEvent:
					exitC <- struct{}{}
					continue EventLoop
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						exitC <- struct{}{}
						continue EventLoop
					}
					e.input.HandleEvent(event)
				case *sdl.WindowEvent:
					if et.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
						e.renderer.Resize(uint32(et.Data1), uint32(et.Data2))
						e.controller.Resize(float32(et.Data1), float32(et.Data2))
					}
					e.input.HandleEvent(event)
				default:
					e.input.HandleEvent(event)
				}
			}

			if err := e.frame(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) frame() error {
	now := time.Now()
	e.ctx.Delta = e.counter.Tick(now)
	e.printer.Print(now)

	e.app.OnUpdate(&e.ctx)
	e.controller.Update(e.ctx.Delta, e.input)
	e.input.Reset()

	ok, err := e.renderer.BeginFrame()
	if err != nil {
		return err
	}
	if !ok {
		// Window has no area or the swapchain was rebuilt,
		// try again next tick.
		return nil
	}

	if err := e.renderer.Draw(func(dev vk.Device, cmd vk.CommandBuffer) error {
		return e.renderer2d.Render(cmd, e.controller.ViewProjection(), e.ctx.Objects)
	}); err != nil {
		return err
	}

	_, err = e.renderer.EndFrame()
	return err
}

// Destroy tears the engine down in reverse creation order.
func (e *Engine) Destroy() {
	e.renderer2d.Release()
	e.renderer.Destroy()
	e.instance.Destroy()
	e.window.Destroy()
	sdl.VulkanUnloadLibrary()
	sdl.Quit()
}
