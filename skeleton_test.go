package posekit

import (
	"errors"
	"testing"
)

func fullJointMap() JointMap {
	m := make(JointMap, len(JointOrder))
	for i, id := range JointOrder {
		m[string(id)] = Point{float64(i * 10), float64(i * 5)}
	}
	return m
}

func TestMapBackendJointsToPoseOrder(t *testing.T) {
	m := JointMap{
		"right_ankle": {1, 1},
		"tail":        {2, 2},
		"nose":        {3, 3},
		"antenna":     {4, 4},
		"left_eye":    {5, 5},
	}
	p := MapBackendJointsToPose(m)

	want := []JointID{JointNose, JointLeftEye, JointRightAnkle, "antenna", "tail"}
	if len(p.Joints) != len(want) {
		t.Fatalf("got %d joints, want %d", len(p.Joints), len(want))
	}
	for i, id := range want {
		if p.Joints[i].ID != id {
			t.Errorf("joint %d = %q, want %q", i, p.Joints[i].ID, id)
		}
		if p.Joints[i].Label != string(id) {
			t.Errorf("label %d = %q", i, p.Joints[i].Label)
		}
	}

	// Only nose-left_eye has both endpoints.
	if len(p.Bones) != 1 || p.Bones[0] != (Bone{JointNose, JointLeftEye}) {
		t.Errorf("bones = %v", p.Bones)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestMapBackendJointsFullRig(t *testing.T) {
	p := MapBackendJointsToPose(fullJointMap())
	if len(p.Joints) != len(JointOrder) {
		t.Errorf("joints = %d", len(p.Joints))
	}
	if len(p.Bones) != len(DefaultBones) {
		t.Errorf("bones = %d, want %d", len(p.Bones), len(DefaultBones))
	}
}

func TestJointMapRoundTrip(t *testing.T) {
	m := fullJointMap()
	m["tail"] = Point{7, 8}
	got := MapPoseToBackendJoints(MapBackendJointsToPose(m))
	if len(got) != len(m) {
		t.Fatalf("len = %d, want %d", len(got), len(m))
	}
	for name, p := range m {
		if got[name] != p {
			t.Errorf("%s = %v, want %v", name, got[name], p)
		}
	}
}

func TestWithJointPositionCopies(t *testing.T) {
	p := MapBackendJointsToPose(fullJointMap())
	before, _ := p.Joint(JointLeftElbow)

	q := p.WithJointPosition(JointLeftElbow, Point{999, 999})

	after, _ := p.Joint(JointLeftElbow)
	if after != before {
		t.Error("receiver was modified")
	}
	moved, ok := q.Joint(JointLeftElbow)
	if !ok || moved.Position != (Point{999, 999}) {
		t.Errorf("moved = %v", moved)
	}
	for i := range p.Joints {
		if p.Joints[i].ID != q.Joints[i].ID {
			t.Fatalf("joint order changed at %d", i)
		}
	}

	same := p.WithJointPosition("unknown", Point{1, 1})
	if len(same.Joints) != len(p.Joints) {
		t.Error("unknown id should return an unchanged copy")
	}
}

func TestSegmentsMissingJoint(t *testing.T) {
	p := Pose{
		Joints: []Joint{{ID: JointNose, Position: Point{1, 2}}},
		Bones:  []Bone{{JointNose, JointLeftEye}},
	}
	_, err := p.Segments()
	if !errors.Is(err, ErrMissingJoint) {
		t.Fatalf("err = %v, want ErrMissingJoint", err)
	}
	var mj *MissingJointError
	if !errors.As(err, &mj) {
		t.Fatal("expected *MissingJointError")
	}
	if mj.JointID != JointLeftEye {
		t.Errorf("JointID = %q", mj.JointID)
	}
	if p.Validate() == nil {
		t.Error("Validate should fail")
	}
}

func TestSegmentsResolve(t *testing.T) {
	p := MapBackendJointsToPose(JointMap{
		"left_hip":  {0, 0},
		"right_hip": {10, 0},
	})
	segs, err := p.Segments()
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 1 {
		t.Fatalf("segments = %d", len(segs))
	}
	assertPoint(t, "from", segs[0].From, Point{0, 0})
	assertPoint(t, "to", segs[0].To, Point{10, 0})
}

func TestJointDisplayName(t *testing.T) {
	tests := []struct {
		id   JointID
		want string
	}{
		{JointNose, "Head"},
		{JointLeftElbow, "Left elbow"},
		{JointRightAnkle, "Right ankle"},
		{"left_big_toe", "Left big toe"},
		{"tail", "tail"},
	}
	for _, tt := range tests {
		if got := JointDisplayName(tt.id); got != tt.want {
			t.Errorf("JointDisplayName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestBoneTouches(t *testing.T) {
	b := Bone{JointLeftHip, JointLeftKnee}
	if !b.Touches(JointLeftHip) || !b.Touches(JointLeftKnee) || b.Touches(JointNose) {
		t.Error("Touches")
	}
}

func TestBoneEndpointLookup(t *testing.T) {
	p := Pose{
		Joints: []Joint{
			{ID: JointNose, Label: "nose", Position: Point{10, 10}},
			{ID: JointLeftEye, Label: "left_eye", Position: Point{12, 8}},
		},
		Bones: []Bone{{JointNose, JointLeftEye}},
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid pose: %v", err)
	}

	p.Bones = append(p.Bones, Bone{JointNose, JointRightEye})
	segs, err := p.Segments()
	if !errors.Is(err, ErrMissingJoint) {
		t.Fatalf("err = %v, want ErrMissingJoint", err)
	}
	if segs != nil {
		t.Error("no degenerate segments should be returned")
	}
}
