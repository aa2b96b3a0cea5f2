// Package mixer implements the scene.Mixer contract: clip scheduling,
// loop accounting, and crossfade weight ramps against wall-clock deltas.
// Pose sampling is delegated through an Apply callback; the mixer never
// interpolates keyframes itself.
package mixer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/clipstage/internal/scene"
)

// ApplyFunc receives a sampled clip each update: the clip name, the time
// within the clip, and the blend weight in [0, 1]. During a crossfade it is
// called for the outgoing clip first, then the incoming one.
type ApplyFunc func(clip string, timeSec, weight float64)

// action is the playback state for one scheduled clip.
type action struct {
	clip      *scene.Clip
	time      float64
	mode      scene.LoopMode
	reps      float64 // may be +Inf
	completed int     // iterations finished so far
	direction float64 // 1 forward, -1 reverse (pingpong)
	weight    float64
	finished  bool
}

// Mixer advances at most one active action, plus one outgoing action while
// a crossfade is in flight. Single-threaded by design; it is driven from
// the host's frame loop.
type Mixer struct {
	clips  []scene.Clip
	names  []string
	byName map[string]*scene.Clip

	active *action
	fading *action

	fadeTotal float64
	fadeLeft  float64

	timeScale float64
	observer  scene.Observer
	apply     ApplyFunc
	log       *zap.Logger
}

var _ scene.Mixer = (*Mixer)(nil)

// New creates a mixer over the given clip catalog. Clip order is preserved.
func New(clips []scene.Clip) *Mixer {
	m := &Mixer{
		clips:     clips,
		byName:    make(map[string]*scene.Clip, len(clips)),
		timeScale: 1,
		log:       zap.NewNop(),
	}
	for i := range clips {
		m.names = append(m.names, clips[i].Name)
		m.byName[clips[i].Name] = &m.clips[i]
	}
	return m
}

// SetLogger installs a logger; nil restores the no-op default.
func (m *Mixer) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	m.log = log
}

// SetApply installs the pose-sampling callback.
func (m *Mixer) SetApply(fn ApplyFunc) {
	m.apply = fn
}

// SetObserver registers the receiver for loop and finished events.
func (m *Mixer) SetObserver(o scene.Observer) {
	m.observer = o
}

// ClipNames returns the ordered clip catalog.
func (m *Mixer) ClipNames() []string {
	return m.names
}

// Clip returns the named clip, or nil.
func (m *Mixer) Clip(name string) *scene.Clip {
	return m.byName[name]
}

// ActiveClip returns the name of the currently scheduled clip, or "".
func (m *Mixer) ActiveClip() string {
	if m.active == nil {
		return ""
	}
	return m.active.clip.Name
}

// Duration returns the active clip's duration in seconds, or 0.
func (m *Mixer) Duration() float64 {
	if m.active == nil {
		return 0
	}
	return m.active.clip.Duration
}

// Time returns the active clip's playback position.
func (m *Mixer) Time() float64 {
	if m.active == nil {
		return 0
	}
	return m.active.time
}

// SetTime writes the playback position directly.
func (m *Mixer) SetTime(sec float64) {
	if m.active == nil {
		return
	}
	m.active.time = sec
}

// TimeScale returns the global playback-rate multiplier.
func (m *Mixer) TimeScale() float64 {
	return m.timeScale
}

// SetTimeScale sets the global playback-rate multiplier.
func (m *Mixer) SetTimeScale(scale float64) {
	m.timeScale = scale
}

// Play schedules a clip. An unknown or empty name falls back to the first
// catalog clip. With a positive crossfade and a clip already active, the
// outgoing action keeps playing while its weight ramps down.
func (m *Mixer) Play(name string, crossfadeSec float64, mode scene.LoopMode, repetitions float64) {
	if len(m.clips) == 0 {
		m.log.Warn("play requested with empty catalog")
		return
	}
	clip := m.byName[name]
	if clip == nil {
		clip = &m.clips[0]
		if name != "" {
			m.log.Warn("unknown clip, falling back to first",
				zap.String("requested", name),
				zap.String("clip", clip.Name))
		}
	}

	next := &action{
		clip:      clip,
		mode:      mode,
		reps:      repetitions,
		direction: 1,
		weight:    1,
	}

	if m.active != nil && crossfadeSec > 0 {
		m.fading = m.active
		m.fadeTotal = crossfadeSec
		m.fadeLeft = crossfadeSec
		next.weight = 0
	} else {
		m.fading = nil
		m.fadeLeft = 0
	}
	m.active = next

	m.log.Debug("clip scheduled",
		zap.String("clip", clip.Name),
		zap.Stringer("mode", mode),
		zap.Float64("crossfade_sec", crossfadeSec),
		zap.Float64("repetitions", repetitions))
}

// Evaluate samples the active clip at the given time without advancing it.
// Any in-flight crossfade resolves to the incoming action first: a forced
// evaluate means the caller wants the newly scheduled clip on screen now,
// so it is sampled at full weight and the outgoing action is released.
func (m *Mixer) Evaluate(sec float64) {
	if m.active == nil {
		return
	}
	if m.fading != nil {
		m.fading = nil
		m.active.weight = 1
	}
	m.active.time = sec
	if m.apply != nil {
		m.apply(m.active.clip.Name, m.active.time, m.active.weight)
	}
}

// Update advances playback by deltaSec, scaled by the global rate.
func (m *Mixer) Update(deltaSec float64) {
	if m.active == nil {
		return
	}
	dt := deltaSec * m.timeScale

	m.advanceFade(dt)
	if m.fading != nil {
		m.advance(m.fading, dt, false)
	}
	m.advance(m.active, dt, true)

	if m.apply != nil {
		if m.fading != nil {
			m.apply(m.fading.clip.Name, m.fading.time, m.fading.weight)
		}
		m.apply(m.active.clip.Name, m.active.time, m.active.weight)
	}
}

// advanceFade ramps the crossfade weights. The outgoing action is released
// once its weight reaches zero.
func (m *Mixer) advanceFade(dt float64) {
	if m.fading == nil {
		return
	}
	m.fadeLeft -= dt
	if m.fadeLeft <= 0 {
		m.fading = nil
		m.active.weight = 1
		return
	}
	in := 1 - m.fadeLeft/m.fadeTotal
	m.active.weight = in
	m.fading.weight = 1 - in
}

// advance moves one action forward by dt, handling loop boundaries.
// Events are only emitted for the active action.
func (m *Mixer) advance(a *action, dt float64, emit bool) {
	if a.finished {
		return
	}
	dur := a.clip.Duration
	if dur <= 0 {
		return
	}

	switch a.mode {
	case scene.LoopOnce:
		a.time += dt
		if a.time < 0 {
			a.time = 0
		}
		if a.time >= dur {
			a.time = dur
			m.finish(a, emit)
		}

	case scene.LoopRepeat:
		a.time += dt
		for a.time >= dur {
			a.time -= dur
			a.completed++
			if float64(a.completed) >= a.reps {
				a.time = dur
				m.finish(a, emit)
				return
			}
			if emit && m.observer != nil {
				m.observer.LoopCompleted(a.clip.Name, a.completed)
			}
		}

	case scene.LoopPingPong:
		a.time += dt * a.direction
		for a.time >= dur || a.time < 0 {
			if a.time >= dur {
				a.time = 2*dur - a.time
				a.direction = -1
			} else {
				a.time = -a.time
				a.direction = 1
			}
			a.completed++
			if float64(a.completed) >= a.reps {
				m.finish(a, emit)
				return
			}
			if emit && m.observer != nil {
				m.observer.LoopCompleted(a.clip.Name, a.completed)
			}
		}
	}
}

func (m *Mixer) finish(a *action, emit bool) {
	a.finished = true
	m.log.Debug("clip finished", zap.String("clip", a.clip.Name))
	if emit && m.observer != nil {
		m.observer.ClipFinished(a.clip.Name)
	}
}
