// Package scene defines the data model shared between the playback
// controller and the animation mixer: clips, tracks, scene nodes, and the
// Mixer interface the controller issues commands to.
package scene

import (
	"github.com/Faultbox/clipstage/pkg/math"
)

// LoopMode is the repetition policy for a playing clip.
type LoopMode int

const (
	// LoopOnce plays the clip a single time and stops at the last frame.
	LoopOnce LoopMode = iota
	// LoopRepeat restarts the clip from the beginning on each iteration.
	LoopRepeat
	// LoopPingPong alternates forward and reverse passes.
	LoopPingPong
)

func (m LoopMode) String() string {
	switch m {
	case LoopOnce:
		return "once"
	case LoopRepeat:
		return "repeat"
	case LoopPingPong:
		return "pingpong"
	default:
		return "unknown"
	}
}

// Track is a per-property keyframe curve within a clip. Values holds the
// flattened keyframe data; for rotation tracks each keyframe contributes
// four values (x, y, z, w).
type Track struct {
	Name   string
	Times  []float32
	Values []float32
}

// Clip is a named, time-indexed animation sequence.
type Clip struct {
	Name     string
	Duration float64 // seconds
	Tracks   []Track
}

// rotationSuffix is the track-name suffix binding a rotation curve to a node.
const rotationSuffix = ".quaternion"

// RotationTrack returns the rotation track targeting the named node,
// or nil if the clip has none.
func (c *Clip) RotationTrack(nodeName string) *Track {
	want := nodeName + rotationSuffix
	for i := range c.Tracks {
		if c.Tracks[i].Name == want {
			return &c.Tracks[i]
		}
	}
	return nil
}

// Node is a scene-graph node with a live orientation.
type Node struct {
	Name     string
	Rotation math.Quat
	Children []*Node
}

// NewNode creates a node with identity orientation.
func NewNode(name string) *Node {
	return &Node{Name: name, Rotation: math.QuatIdentity()}
}

// AddChild appends and returns a new child node.
func (n *Node) AddChild(name string) *Node {
	child := NewNode(name)
	n.Children = append(n.Children, child)
	return child
}

// Mixer is the external animation engine the playback controller drives.
// It owns clip lookup, blending, and weight calculation; the controller
// only issues commands and reads state back.
type Mixer interface {
	// ClipNames returns the ordered clip catalog, empty until content is loaded.
	ClipNames() []string

	// ActiveClip returns the name of the currently scheduled clip, or "".
	ActiveClip() string

	// Duration returns the active clip's duration in seconds, or 0.
	Duration() float64

	// Time returns the active clip's playback position in seconds.
	Time() float64

	// SetTime writes the playback position directly. No clamping; out of
	// range values are resolved by the mixer on the next update.
	SetTime(sec float64)

	// TimeScale returns the global playback-rate multiplier.
	TimeScale() float64

	// SetTimeScale sets the global playback-rate multiplier.
	SetTimeScale(scale float64)

	// Play schedules a clip, crossfading from whatever is currently
	// playing over crossfadeSec. repetitions may be math.Inf(1).
	Play(clip string, crossfadeSec float64, mode LoopMode, repetitions float64)

	// Evaluate forces the mixer to sample the active clip at the given
	// time without advancing playback. The sampled frame must reflect the
	// active clip even when a crossfade is pending.
	Evaluate(sec float64)

	// Update advances playback by deltaSec of wall-clock time.
	Update(deltaSec float64)

	// SetObserver registers the receiver for loop and finished events.
	SetObserver(o Observer)
}

// Observer receives mixer-originated playback events.
type Observer interface {
	// LoopCompleted reports that the active clip wrapped, with the
	// iteration count completed so far.
	LoopCompleted(clip string, count int)

	// ClipFinished reports that the active clip ran out of repetitions.
	ClipFinished(clip string)
}
