// Command sandbox runs a demo scene on the engine, a colored grid of
// quads with one animated quad orbiting the middle.
package main

import (
	"flag"
	"math"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"time"

	glm "github.com/go-gl/mathgl/mgl32"
	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"

	"github.com/devodev/toy-engine/core"
	"github.com/devodev/toy-engine/engine"
	"github.com/devodev/toy-engine/model"
)

func init() {
	runtime.LockOSThread()
}

// Profiling
var (
	cpuProfile   = flag.String("cpuprof", "", "Profile CPU usage to file")
	memProfile   = flag.String("memprof", "", "Profile memory usage into a file")
	traceProfile = flag.String("trace", "", "Trace output for profiling")
	debug        = flag.Bool("vkdbg", false, "Load Vulkan validation layers")
)

type sandbox struct {
	orbiter model.GameObject
	elapsed time.Duration
}

func (s *sandbox) OnInit(ctx *engine.Context) error {
	const gridSide = 20
	const spacing = 0.11

	for y := 0; y < gridSide; y++ {
		for x := 0; x < gridSide; x++ {
			fx := (float32(x) - gridSide/2) * spacing
			fy := (float32(y) - gridSide/2) * spacing
			ctx.Objects = append(ctx.Objects, model.NewGameObject().
				WithPosition(glm.Vec3{fx, fy, 0}).
				WithScale(glm.Vec3{0.045, 0.045, 1}).
				WithColor(glm.Vec4{
					float32(x) / gridSide,
					float32(y) / gridSide,
					0.8,
					1,
				}))
		}
	}

	s.orbiter = model.NewGameObject().
		WithScale(glm.Vec3{0.1, 0.1, 1}).
		WithColor(glm.Vec4{1, 1, 1, 0.85}).
		WithPosition(glm.Vec3{0, 0, -0.1})
	ctx.Objects = append(ctx.Objects, s.orbiter)
	return nil
}

func (s *sandbox) OnUpdate(ctx *engine.Context) {
	s.elapsed += ctx.Delta
	angle := float32(s.elapsed.Seconds())
	pos := glm.Vec3{
		float32(math.Cos(float64(angle))) * 1.2,
		float32(math.Sin(float64(angle))) * 1.2,
		-0.1,
	}
	ctx.Objects[len(ctx.Objects)-1] = s.orbiter.WithPosition(pos)
}

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	if *traceProfile != "" {
		f, err := os.Create(*traceProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := trace.Start(f); err != nil {
			log.Fatal(err)
		}
		defer trace.Stop()
	}

	cfg := core.FromEnv()
	if *debug {
		cfg.Instance.DebugMode = true
	}

	e, err := engine.New(cfg, &sandbox{})
	if err != nil {
		log.Fatal(err)
	}
	defer e.Destroy()

	if err := e.Run(); err != nil {
		log.Fatal(err)
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal(err)
		}
	}
}
