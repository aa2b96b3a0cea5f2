package playback

import (
	"go.uber.org/zap"

	"github.com/Faultbox/clipstage/internal/scene"
	"github.com/Faultbox/clipstage/pkg/math"
)

// DefaultSmoothingMs is the fixed wall-clock window of one smoothing run.
const DefaultSmoothingMs = 750

// orientSnap captures one node's interpolation endpoints at trigger time.
type orientSnap struct {
	node   *scene.Node
	start  math.Quat
	target math.Quat
}

// Smoother eases the orientation of every top-level scene node toward the
// first-keyframe pose of a clip, over a fixed window and independent of
// the mixer's playback clock. It is an explicit state machine advanced by
// the controller's tick; a fresh Begin supersedes any run in flight.
type Smoother struct {
	durationMs    float64
	elapsed       float64
	active        bool
	snaps         []orientSnap
	requestRender func()
	log           *zap.Logger
}

// NewSmoother creates an idle smoother. durationMs <= 0 selects
// DefaultSmoothingMs; requestRender and log may be nil.
func NewSmoother(durationMs float64, requestRender func(), log *zap.Logger) *Smoother {
	if durationMs <= 0 {
		durationMs = DefaultSmoothingMs
	}
	if requestRender == nil {
		requestRender = func() {}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Smoother{
		durationMs:    durationMs,
		requestRender: requestRender,
		log:           log,
	}
}

// Active reports whether a run is in flight.
func (s *Smoother) Active() bool {
	return s.active
}

// Begin snapshots interpolation endpoints for every direct child of root
// that has a matching rotation track in the clip, then starts the run.
// Children without a track are skipped. Reports whether a run started;
// a clip with no tracks, or one matching no children, starts nothing.
func (s *Smoother) Begin(root *scene.Node, clip *scene.Clip) bool {
	if root == nil || clip == nil || len(clip.Tracks) == 0 {
		return false
	}

	snaps := make([]orientSnap, 0, len(root.Children))
	for _, child := range root.Children {
		track := clip.RotationTrack(child.Name)
		if track == nil || len(track.Values) < 4 {
			s.log.Warn("node has no rotation track, skipping",
				zap.String("node", child.Name),
				zap.String("clip", clip.Name))
			continue
		}
		snaps = append(snaps, orientSnap{
			node:   child,
			start:  child.Rotation,
			target: math.QuatFromValues(track.Values),
		})
	}
	if len(snaps) == 0 {
		return false
	}

	s.snaps = snaps
	s.elapsed = 0
	s.active = true
	s.log.Debug("orientation smoothing started",
		zap.String("clip", clip.Name),
		zap.Int("nodes", len(snaps)))
	return true
}

// Step advances the run by deltaMs. Each step slerps every captured node
// along the ease-out-quartic curve and requests a render; the step that
// crosses the end of the window snaps nodes to their exact targets and
// stops the run.
func (s *Smoother) Step(deltaMs float64) {
	if !s.active {
		return
	}
	s.elapsed += deltaMs
	t := s.elapsed / s.durationMs

	if t >= 1 {
		for _, sn := range s.snaps {
			sn.node.Rotation = sn.target
		}
		s.active = false
		s.snaps = nil
		s.requestRender()
		return
	}

	eased := float32(math.EaseOutQuart(t))
	for _, sn := range s.snaps {
		sn.node.Rotation = sn.start.Slerp(sn.target, eased)
	}
	s.requestRender()
}
