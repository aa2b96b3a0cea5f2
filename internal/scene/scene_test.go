package scene

import "testing"

func TestRotationTrack(t *testing.T) {
	clip := &Clip{
		Name:     "Walk",
		Duration: 2,
		Tracks: []Track{
			{Name: "Hull.position", Times: []float32{0}, Values: []float32{0, 0, 0}},
			{Name: "Hull.quaternion", Times: []float32{0}, Values: []float32{0, 0, 0, 1}},
			{Name: "Rotor.quaternion", Times: []float32{0}, Values: []float32{0, 1, 0, 0}},
		},
	}

	tr := clip.RotationTrack("Rotor")
	if tr == nil {
		t.Fatal("expected rotation track for Rotor")
	}
	if tr.Name != "Rotor.quaternion" {
		t.Errorf("expected track Rotor.quaternion, got %s", tr.Name)
	}
	if tr.Values[1] != 1 {
		t.Errorf("expected Y component 1, got %v", tr.Values[1])
	}

	if clip.RotationTrack("Missing") != nil {
		t.Error("expected nil for node without rotation track")
	}

	// Position tracks must not satisfy a rotation lookup
	if tr := clip.RotationTrack("Hull"); tr == nil || tr.Name != "Hull.quaternion" {
		t.Errorf("expected Hull.quaternion, got %+v", tr)
	}
}

func TestAddChild(t *testing.T) {
	root := NewNode("root")
	a := root.AddChild("a")
	b := root.AddChild("b")

	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	if root.Children[0] != a || root.Children[1] != b {
		t.Error("children not stored in insertion order")
	}
	if a.Rotation.W != 1 {
		t.Errorf("new node should start at identity, got %+v", a.Rotation)
	}
}

func TestLoopModeString(t *testing.T) {
	tests := []struct {
		mode LoopMode
		want string
	}{
		{LoopOnce, "once"},
		{LoopRepeat, "repeat"},
		{LoopPingPong, "pingpong"},
		{LoopMode(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("LoopMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
