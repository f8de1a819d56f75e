package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"voxplace/internal/chunk"
	"voxplace/internal/config"
	"voxplace/internal/gpu"
	"voxplace/internal/mesh"
	"voxplace/internal/palette"
	"voxplace/internal/render"
	"voxplace/internal/stamp"
	"voxplace/internal/stats"
	"voxplace/internal/terrain"
	"voxplace/internal/world"
)

func init() {
	// GL and GLFW calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	cfg := config.Default()

	configPath := flag.String("config", "", "config file (.json, .jsonc, .yaml or .yml)")
	flag.StringVar(&cfg.Mode, "mode", cfg.Mode, "mesh representation: packed or vertex")
	flag.IntVar(&cfg.Radius, "radius", cfg.Radius, "chunks on each side of the origin")
	flag.Int64Var(&cfg.Terrain.Seed, "seed", cfg.Terrain.Seed, "terrain seed")
	flag.StringVar(&cfg.Palette, "palette", cfg.Palette, "palette strip image")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.IntVar(&cfg.Window.Width, "width", cfg.Window.Width, "window width")
	flag.IntVar(&cfg.Window.Height, "height", cfg.Window.Height, "window height")
	flag.BoolVar(&cfg.Profile, "profile", cfg.Profile, "print the chunk table after meshing")
	flag.Parse()

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := run(cfg, log); err != nil {
		log.Error("voxplace", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	layout, err := cfg.Layout()
	if err != nil {
		return err
	}
	pal := palette.Default()
	if cfg.Palette != "" {
		if pal, err = palette.Load(cfg.Palette); err != nil {
			return err
		}
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	}
	if err := gl.Init(); err != nil {
		return fmt.Errorf("init gl: %w", err)
	}
	log.Info("opengl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)), "mode", cfg.Mode)

	dev := &gpu.GLDevice{FaceUnit: render.FaceUnit}
	newMesh := func() gpu.Mesh { return gpu.NewHandle(dev) }
	if cfg.Mode == config.ModeVertex {
		newMesh = func() gpu.Mesh { return gpu.NewVertexHandle(dev, layout, pal) }
	}

	reg := world.New(mesh.NewMesher(layout), cfg.Bedrock, newMesh, log)
	defer reg.Release()

	start := time.Now()
	if err := buildWorld(reg, cfg, pal, log); err != nil {
		return err
	}
	if err := reg.MeshAll(); err != nil {
		return err
	}
	log.Info("world ready", "chunks", reg.Len(), "took", time.Since(start).Round(time.Millisecond))
	if cfg.Profile {
		stats.Collect(reg).Report(os.Stdout)
	}

	renderer, err := render.New(render.Options{
		Packed:  cfg.Mode == config.ModePacked,
		Layout:  layout,
		Palette: pal,
	}, log)
	if err != nil {
		return err
	}
	defer renderer.Delete()

	overlay, err := stats.NewOverlay(320, 160, 14)
	if err != nil {
		return err
	}
	hud, err := render.NewHUD(image.Pt(320, 160))
	if err != nil {
		return err
	}
	defer hud.Delete()

	cam := render.NewCamera(spawn(reg), cfg.Camera.FOV, cfg.Camera.Speed, cfg.Camera.Sensitivity)
	in := newInput(window, cam, reg, cfg.MaxMaterial)

	fps := newFPSCounter()
	last := time.Now()
	for !window.ShouldClose() {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		glfw.PollEvents()
		in.move(dt)

		// Failed chunks are logged by the registry and retried next frame.
		_, _ = reg.RemeshDirty()

		width, height := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		renderer.Draw(reg, cam, float32(width)/float32(max(height, 1)))

		if fps.tick(now) && in.showHUD {
			lines := append([]string{fps.String(), fmt.Sprintf("Colour     : %d", in.color)}, stats.Collect(reg).Lines()...)
			img, err := overlay.Draw(lines)
			if err != nil {
				return err
			}
			hud.Update(img)
		}
		if in.showHUD {
			hud.Draw(width, height)
		}

		window.SwapBuffers()
	}
	return nil
}

// buildWorld creates every chunk first and only then fills them, so that
// the first MeshAll sees all neighbours.
func buildWorld(reg *world.Registry, cfg *config.Config, pal *palette.Palette, log *slog.Logger) error {
	gen := terrain.New(cfg.Terrain)
	for cx := -cfg.Radius; cx <= cfg.Radius; cx++ {
		for cz := -cfg.Radius; cz <= cfg.Radius; cz++ {
			c, err := reg.Create(chunk.Coord{X: cx, Z: cz})
			if err != nil {
				return err
			}
			gen.Fill(c)
		}
	}

	if cfg.Stamp != nil {
		n, err := stamp.Apply(reg, *cfg.Stamp, pal, cfg.MaxMaterial)
		if err != nil {
			return err
		}
		log.Info("stamp painted", "path", cfg.Stamp.Path, "cells", n)
	}
	return nil
}

// spawn places the camera a few cells above the terrain at the world origin.
func spawn(reg *world.Registry) mgl32.Vec3 {
	y := 0
	if c, ok := reg.Chunk(chunk.Coord{}); ok {
		d := c.Dims()
		y = c.Height(d.X/2, d.Z/2)
	}
	return mgl32.Vec3{0.5, float32(y) + 4, 0.5}
}
