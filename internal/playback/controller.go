// Package playback implements the animation playback controller: a small
// state machine over play, pause, crossfade, scrub, and rate scaling that
// the embedding host drives through attribute batches and a per-frame tick.
package playback

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/clipstage/internal/scene"
)

// DefaultCrossfadeMs is the crossfade duration used until the host
// configures one.
const DefaultCrossfadeMs = 300

// PlayOptions selects the repetition policy for a play command.
// Transient input, never stored.
type PlayOptions struct {
	// Repetitions is the number of times to play the clip. Zero means the
	// default of math.Inf(1).
	Repetitions float64
	// PingPong alternates forward and reverse passes. Wins over Repetitions
	// when resolving the loop mode.
	PingPong bool
}

// Events receives controller notifications. All methods are invoked
// synchronously from controller operations.
type Events interface {
	OnPlay()
	OnPause()
	OnLoop(count int)
	OnFinished()
}

// NopEvents is an Events implementation that ignores everything.
type NopEvents struct{}

func (NopEvents) OnPlay()          {}
func (NopEvents) OnPause()         {}
func (NopEvents) OnLoop(count int) {}
func (NopEvents) OnFinished()      {}

// Attributes is one batch of host attribute writes. Nil fields were not
// asserted in the batch; a non-nil AnimationName redispatches even when the
// value is unchanged, which is how a host restarts a clip by re-asserting
// its name.
type Attributes struct {
	Autoplay            *bool
	AnimationName       *string
	CrossfadeDurationMs *float64
}

// Config wires a Controller to its collaborators.
type Config struct {
	// Mixer is the external animation engine. Required.
	Mixer scene.Mixer
	// Events receives playback notifications. Nil means NopEvents.
	Events Events
	// RequestRender signals the host that a frame needs drawing. Optional.
	RequestRender func()
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// SmoothingDurationMs overrides the orientation smoothing window.
	// Zero means DefaultSmoothingMs.
	SmoothingDurationMs float64
}

// Controller owns the playback state. It never owns the mixer's lifecycle;
// it only issues commands and reads state back. Not safe for concurrent
// use: the host's single-threaded update cycle is the assumed caller.
type Controller struct {
	mixer         scene.Mixer
	events        Events
	requestRender func()
	log           *zap.Logger

	paused     bool
	loaded     bool
	visible    bool
	presenting bool

	autoplay      bool
	animationName string
	crossfadeMs   float64

	smoother *Smoother
}

// New creates a paused controller and registers it for mixer events.
func New(cfg Config) *Controller {
	c := &Controller{
		mixer:         cfg.Mixer,
		events:        cfg.Events,
		requestRender: cfg.RequestRender,
		log:           cfg.Logger,
		paused:        true,
		crossfadeMs:   DefaultCrossfadeMs,
	}
	if c.events == nil {
		c.events = NopEvents{}
	}
	if c.requestRender == nil {
		c.requestRender = func() {}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	c.smoother = NewSmoother(cfg.SmoothingDurationMs, c.requestRender, c.log)
	c.mixer.SetObserver(mixerRelay{c})
	return c
}

// Play starts playback of the configured clip. No-op until a model has
// loaded and while the clip catalog is empty.
func (c *Controller) Play(opts *PlayOptions) {
	if !c.loaded || len(c.mixer.ClipNames()) == 0 {
		return
	}
	c.paused = false
	c.changeAnimation(opts)
	c.events.OnPlay()
}

// Pause halts the per-tick forwarding of elapsed time. The mixer's
// internal clock is untouched. No-op while already paused.
func (c *Controller) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.events.OnPause()
}

// Paused reports whether playback is halted.
func (c *Controller) Paused() bool {
	return c.paused
}

// CurrentTime returns the mixer's reported animation time in seconds.
func (c *Controller) CurrentTime() float64 {
	return c.mixer.Time()
}

// SetCurrentTime scrubs the mixer directly and requests a render.
// Out-of-range values are the mixer's concern.
func (c *Controller) SetCurrentTime(sec float64) {
	c.mixer.SetTime(sec)
	c.requestRender()
}

// TimeScale returns the mixer's global playback-rate multiplier.
func (c *Controller) TimeScale() float64 {
	return c.mixer.TimeScale()
}

// SetTimeScale proxies the rate multiplier to the mixer, unscaled.
func (c *Controller) SetTimeScale(scale float64) {
	c.mixer.SetTimeScale(scale)
}

// AvailableAnimations returns the clip catalog, empty until a model loads.
func (c *Controller) AvailableAnimations() []string {
	return c.mixer.ClipNames()
}

// Duration returns the active clip's duration in seconds.
func (c *Controller) Duration() float64 {
	return c.mixer.Duration()
}

// AnimationName returns the configured target clip name.
func (c *Controller) AnimationName() string {
	return c.animationName
}

// Autoplay reports the configured autoplay flag.
func (c *Controller) Autoplay() bool {
	return c.autoplay
}

// SetVisible tells the controller whether the model is on screen.
func (c *Controller) SetVisible(visible bool) {
	c.visible = visible
}

// SetPresenting marks an immersive/presenting session, which keeps ticks
// flowing even while the model is reported invisible.
func (c *Controller) SetPresenting(presenting bool) {
	c.presenting = presenting
}

// ModelLoaded is the lifecycle hook for a freshly loaded model. Playback
// resets to paused; a configured clip name is selected without autoplaying,
// and the autoplay flag then starts playback on top of that.
func (c *Controller) ModelLoaded() {
	c.loaded = true
	c.paused = true
	c.log.Debug("model loaded",
		zap.Strings("animations", c.mixer.ClipNames()),
		zap.String("animation_name", c.animationName),
		zap.Bool("autoplay", c.autoplay))
	if c.animationName != "" {
		c.changeAnimation(nil)
	}
	if c.autoplay {
		c.Play(nil)
	}
}

// Apply processes one batch of attribute writes. Field values land first,
// then the lifecycle branches dispatch: autoplay turning on plays, and an
// asserted animation name reselects the clip.
func (c *Controller) Apply(a Attributes) {
	if a.CrossfadeDurationMs != nil && *a.CrossfadeDurationMs >= 0 {
		c.crossfadeMs = *a.CrossfadeDurationMs
	}

	autoplayTurnedOn := false
	if a.Autoplay != nil {
		autoplayTurnedOn = !c.autoplay && *a.Autoplay
		c.autoplay = *a.Autoplay
	}

	nameAsserted := a.AnimationName != nil
	if nameAsserted {
		c.animationName = *a.AnimationName
	}

	if autoplayTurnedOn {
		c.Play(nil)
	}
	if nameAsserted {
		c.changeAnimation(nil)
	}
}

// Tick is the per-frame hook. The smoother always advances; mixer time
// only flows while playing and either visible or presenting.
func (c *Controller) Tick(deltaMs float64) {
	c.smoother.Step(deltaMs)
	if c.paused || (!c.visible && !c.presenting) {
		return
	}
	c.mixer.Update(deltaMs / 1000)
	c.requestRender()
}

// SmoothOrientation triggers the orientation smoother toward the first
// keyframe of the given clip. Reports whether a run started.
func (c *Controller) SmoothOrientation(root *scene.Node, clip *scene.Clip) bool {
	return c.smoother.Begin(root, clip)
}

// Smoothing reports whether an orientation smoothing run is in flight.
func (c *Controller) Smoothing() bool {
	return c.smoother.Active()
}

// changeAnimation resolves the loop mode and issues a single play command.
// While paused, the mixer is forced to show frame zero of the new clip so
// the displayed pose reflects the selection before any tick advances it.
func (c *Controller) changeAnimation(opts *PlayOptions) {
	if !c.loaded {
		return
	}

	reps := math.Inf(1)
	pingpong := false
	if opts != nil {
		pingpong = opts.PingPong
		if opts.Repetitions != 0 {
			reps = opts.Repetitions
		}
	}

	mode := scene.LoopRepeat
	switch {
	case pingpong:
		mode = scene.LoopPingPong
	case reps == 1:
		mode = scene.LoopOnce
	}

	c.mixer.Play(c.animationName, c.crossfadeMs/1000, mode, reps)
	c.log.Debug("animation changed",
		zap.String("clip", c.animationName),
		zap.Stringer("mode", mode),
		zap.Bool("paused", c.paused))

	if c.paused {
		c.mixer.Evaluate(0)
		c.requestRender()
	}
}

// mixerRelay adapts mixer events onto the controller without exporting
// observer methods on the Controller itself.
type mixerRelay struct {
	c *Controller
}

func (r mixerRelay) LoopCompleted(clip string, count int) {
	r.c.events.OnLoop(count)
}

// ClipFinished is the only path by which playback stops itself without an
// explicit Pause call.
func (r mixerRelay) ClipFinished(clip string) {
	r.c.paused = true
	r.c.events.OnFinished()
}
