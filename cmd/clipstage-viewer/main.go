// Package main is an interactive host for the playback controller: a demo
// clip catalog driven through a real SDL2 frame loop, with mixer time
// visualized as the window clear color.
package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/clipstage/internal/config"
	"github.com/Faultbox/clipstage/internal/logger"
	"github.com/Faultbox/clipstage/internal/mixer"
	"github.com/Faultbox/clipstage/internal/playback"
	"github.com/Faultbox/clipstage/internal/scene"
	"github.com/Faultbox/clipstage/internal/window"
	mathx "github.com/Faultbox/clipstage/pkg/math"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== clipstage viewer ===")

	win, err := window.New(window.Config{
		Title:      "clipstage",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Logger:     logger.Log,
	})
	if err != nil {
		logger.Error("failed to create window", zap.Error(err))
		os.Exit(1)
	}
	defer win.Close()

	if err := run(cfg, win); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

// logEvents forwards controller notifications to the log.
type logEvents struct{}

func (logEvents) OnPlay()          { logger.Info("event: play") }
func (logEvents) OnPause()         { logger.Info("event: pause") }
func (logEvents) OnLoop(count int) { logger.Info("event: loop", zap.Int("count", count)) }
func (logEvents) OnFinished()      { logger.Info("event: finished") }

func run(cfg *config.Config, win *window.Window) error {
	mx := mixer.New(demoClips())
	mx.SetLogger(logger.Log)
	root := demoRig()

	dirty := true
	ctrl := playback.New(playback.Config{
		Mixer:               mx,
		Events:              logEvents{},
		RequestRender:       func() { dirty = true },
		Logger:              logger.Log,
		SmoothingDurationMs: cfg.Smoothing.DurationMs,
	})
	ctrl.SetVisible(true)

	// Host attribute batch from config, then the model-loaded hook
	attrs := playback.Attributes{
		Autoplay:            &cfg.Playback.Autoplay,
		CrossfadeDurationMs: &cfg.Playback.CrossfadeMs,
	}
	if cfg.Playback.Animation != "" {
		attrs.AnimationName = &cfg.Playback.Animation
	}
	ctrl.Apply(attrs)
	ctrl.ModelLoaded()
	if cfg.Playback.TimeScale > 0 && cfg.Playback.TimeScale != 1 {
		ctrl.SetTimeScale(cfg.Playback.TimeScale)
	}

	logger.Info("catalog ready", zap.Strings("animations", ctrl.AvailableAnimations()))

	clipIdx := 0
	last := time.Now()
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
					continue
				}
				if quit := handleKey(e.Keysym.Sym, ctrl, mx, root, &clipIdx); quit {
					return nil
				}
			}
		}

		now := time.Now()
		deltaMs := float64(now.Sub(last).Microseconds()) / 1000.0
		last = now

		ctrl.Tick(deltaMs)

		if dirty {
			win.SetTitle(titleFor(ctrl, mx))
			dirty = false
		}
		render(win, mx, root)

		// Cap the loop when vsync is off
		if !cfg.Graphics.VSync {
			sdl.Delay(8)
		}
	}
}

func handleKey(key sdl.Keycode, ctrl *playback.Controller, mx *mixer.Mixer, root *scene.Node, clipIdx *int) bool {
	switch key {
	case sdl.K_ESCAPE, sdl.K_q:
		return true

	case sdl.K_SPACE:
		if ctrl.Paused() {
			ctrl.Play(nil)
		} else {
			ctrl.Pause()
		}

	case sdl.K_o:
		ctrl.Play(&playback.PlayOptions{Repetitions: 1})

	case sdl.K_p:
		ctrl.Play(&playback.PlayOptions{PingPong: true})

	case sdl.K_TAB:
		names := ctrl.AvailableAnimations()
		if len(names) == 0 {
			break
		}
		*clipIdx = (*clipIdx + 1) % len(names)
		ctrl.Apply(playback.Attributes{AnimationName: &names[*clipIdx]})

	case sdl.K_r:
		name := mx.ActiveClip()
		if clip := mx.Clip(name); clip != nil {
			ctrl.SmoothOrientation(root, clip)
		}

	case sdl.K_LEFT:
		ctrl.SetCurrentTime(ctrl.CurrentTime() - 0.25)

	case sdl.K_RIGHT:
		ctrl.SetCurrentTime(ctrl.CurrentTime() + 0.25)

	case sdl.K_UP:
		ctrl.SetTimeScale(ctrl.TimeScale() * 1.25)

	case sdl.K_DOWN:
		ctrl.SetTimeScale(ctrl.TimeScale() / 1.25)
	}
	return false
}

func titleFor(ctrl *playback.Controller, mx *mixer.Mixer) string {
	state := "playing"
	if ctrl.Paused() {
		state = "paused"
	}
	return fmt.Sprintf("clipstage — %s [%s] %.2fs/%.2fs x%.2f",
		mx.ActiveClip(), state, ctrl.CurrentTime(), ctrl.Duration(), ctrl.TimeScale())
}

// render maps playback progress and the rig's hull orientation onto the
// clear color, which is all the visualization this demo needs.
func render(win *window.Window, mx *mixer.Mixer, root *scene.Node) {
	w, h := win.Size()
	gl.Viewport(0, 0, int32(w), int32(h))

	progress := 0.0
	if d := mx.Duration(); d > 0 {
		progress = math.Min(mx.Time()/d, 1)
	}
	hullW := float64(root.Children[0].Rotation.W)

	gl.ClearColor(
		float32(0.08+0.35*progress),
		float32(0.10+0.25*math.Abs(hullW)),
		0.25,
		1.0,
	)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	win.SwapBuffers()
}

// demoClips builds a small catalog of rotation clips over the demo rig.
func demoClips() []scene.Clip {
	yaw := func(angle float64) mathx.Quat {
		return mathx.QuatFromAxisAngle(mathx.Vec3{Y: 1}, float32(angle))
	}
	roll := func(angle float64) mathx.Quat {
		return mathx.QuatFromAxisAngle(mathx.Vec3{Z: 1}, float32(angle))
	}
	track := func(node string, keys ...mathx.Quat) scene.Track {
		t := scene.Track{Name: node + ".quaternion"}
		for i, q := range keys {
			t.Times = append(t.Times, float32(i))
			t.Values = append(t.Values, q.X, q.Y, q.Z, q.W)
		}
		return t
	}

	return []scene.Clip{
		{
			Name:     "Spin",
			Duration: 2,
			Tracks: []scene.Track{
				track("Hull", yaw(0), yaw(math.Pi), yaw(2*math.Pi)),
				track("Rotor", yaw(0), yaw(2*math.Pi), yaw(4*math.Pi)),
			},
		},
		{
			Name:     "Sway",
			Duration: 3,
			Tracks: []scene.Track{
				track("Hull", roll(-math.Pi/6), roll(math.Pi/6), roll(-math.Pi/6)),
				track("Rotor", roll(math.Pi/8), roll(-math.Pi/8), roll(math.Pi/8)),
			},
		},
		{
			Name:     "Rest",
			Duration: 1,
			Tracks: []scene.Track{
				track("Hull", mathx.QuatIdentity()),
				track("Rotor", mathx.QuatIdentity()),
			},
		},
	}
}

// demoRig builds the scene root with two posable children.
func demoRig() *scene.Node {
	root := scene.NewNode("root")
	hull := root.AddChild("Hull")
	hull.Rotation = mathx.QuatFromAxisAngle(mathx.Vec3{Y: 1}, float32(math.Pi/3))
	rotor := root.AddChild("Rotor")
	rotor.Rotation = mathx.QuatFromAxisAngle(mathx.Vec3{Z: 1}, float32(math.Pi/5))
	return root
}
