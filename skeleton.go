package posekit

import (
	"sort"
	"strings"
)

// JointID names one skeletal landmark, for example "left_elbow".
type JointID string

// Joint ids of the humanoid rig, in canonical order.
const (
	JointNose          JointID = "nose"
	JointLeftEye       JointID = "left_eye"
	JointRightEye      JointID = "right_eye"
	JointLeftEar       JointID = "left_ear"
	JointRightEar      JointID = "right_ear"
	JointLeftShoulder  JointID = "left_shoulder"
	JointRightShoulder JointID = "right_shoulder"
	JointLeftElbow     JointID = "left_elbow"
	JointRightElbow    JointID = "right_elbow"
	JointLeftWrist     JointID = "left_wrist"
	JointRightWrist    JointID = "right_wrist"
	JointLeftHip       JointID = "left_hip"
	JointRightHip      JointID = "right_hip"
	JointLeftKnee      JointID = "left_knee"
	JointRightKnee     JointID = "right_knee"
	JointLeftAnkle     JointID = "left_ankle"
	JointRightAnkle    JointID = "right_ankle"
)

// JointOrder is the canonical ordering of the rig's joints.
var JointOrder = []JointID{
	JointNose,
	JointLeftEye, JointRightEye,
	JointLeftEar, JointRightEar,
	JointLeftShoulder, JointRightShoulder,
	JointLeftElbow, JointRightElbow,
	JointLeftWrist, JointRightWrist,
	JointLeftHip, JointRightHip,
	JointLeftKnee, JointRightKnee,
	JointLeftAnkle, JointRightAnkle,
}

// Joint is one skeletal landmark. Label is normally equal to ID.
type Joint struct {
	ID       JointID `json:"id"`
	Label    string  `json:"label"`
	Position Point   `json:"position"`
}

// Bone is an undirected anatomical connection between two joints.
type Bone struct {
	From JointID `json:"from"`
	To   JointID `json:"to"`
}

// Touches reports whether id is one of the bone's endpoints.
func (b Bone) Touches(id JointID) bool {
	return b.From == id || b.To == id
}

// DefaultBones is the fixed topology of the humanoid rig: limb chains,
// shoulder and hip crossbars, and the face connections.
var DefaultBones = []Bone{
	// Arms.
	{JointLeftShoulder, JointLeftElbow},
	{JointLeftElbow, JointLeftWrist},
	{JointRightShoulder, JointRightElbow},
	{JointRightElbow, JointRightWrist},
	// Legs.
	{JointLeftHip, JointLeftKnee},
	{JointLeftKnee, JointLeftAnkle},
	{JointRightHip, JointRightKnee},
	{JointRightKnee, JointRightAnkle},
	// Crossbars.
	{JointLeftShoulder, JointRightShoulder},
	{JointLeftHip, JointRightHip},
	// Face.
	{JointNose, JointLeftEye},
	{JointNose, JointRightEye},
	{JointNose, JointLeftEar},
	{JointNose, JointRightEar},
	{JointNose, JointLeftShoulder},
	{JointNose, JointRightShoulder},
}

// JointMap is the backend wire form of a pose: joint name to coordinate.
type JointMap map[string]Point

// Pose is an immutable skeleton snapshot. Joints keep their order for the
// whole editing session; only positions change.
type Pose struct {
	Joints []Joint `json:"joints"`
	Bones  []Bone  `json:"bones"`
}

// Segment is a resolved bone: both endpoint positions plus the bone itself.
type Segment struct {
	Bone     Bone
	From, To Point
}

// MapBackendJointsToPose builds a Pose from the backend's joint mapping.
// Joints are ordered canonically, with unknown names after the rig's joints
// in name order. Bones are the DefaultBones whose endpoints both exist.
func MapBackendJointsToPose(m JointMap) Pose {
	joints := make([]Joint, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, id := range JointOrder {
		p, ok := m[string(id)]
		if !ok {
			continue
		}
		joints = append(joints, Joint{ID: id, Label: string(id), Position: p})
		seen[string(id)] = true
	}

	var extra []string
	for name := range m {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		joints = append(joints, Joint{ID: JointID(name), Label: name, Position: m[name]})
	}

	bones := make([]Bone, 0, len(DefaultBones))
	for _, b := range DefaultBones {
		_, fromOK := m[string(b.From)]
		_, toOK := m[string(b.To)]
		if fromOK && toOK {
			bones = append(bones, b)
		}
	}
	return Pose{Joints: joints, Bones: bones}
}

// MapPoseToBackendJoints converts a Pose back into the backend's joint
// mapping. It is a right inverse of MapBackendJointsToPose.
func MapPoseToBackendJoints(p Pose) JointMap {
	m := make(JointMap, len(p.Joints))
	for _, j := range p.Joints {
		m[string(j.ID)] = j.Position
	}
	return m
}

// Index returns the joint id -> position lookup for the pose.
func (p Pose) Index() map[JointID]Point {
	idx := make(map[JointID]Point, len(p.Joints))
	for _, j := range p.Joints {
		idx[j.ID] = j.Position
	}
	return idx
}

// Joint returns the joint with the given id.
func (p Pose) Joint(id JointID) (Joint, bool) {
	for _, j := range p.Joints {
		if j.ID == id {
			return j, true
		}
	}
	return Joint{}, false
}

// WithJointPosition returns a new snapshot with one joint moved. The
// receiver is not modified. Unknown ids return an unchanged copy.
func (p Pose) WithJointPosition(id JointID, pos Point) Pose {
	joints := make([]Joint, len(p.Joints))
	copy(joints, p.Joints)
	for i := range joints {
		if joints[i].ID == id {
			joints[i].Position = pos
			break
		}
	}
	bones := make([]Bone, len(p.Bones))
	copy(bones, p.Bones)
	return Pose{Joints: joints, Bones: bones}
}

// Segments resolves every bone to its endpoint positions. A bone that
// references a joint absent from the pose yields a *MissingJointError.
func (p Pose) Segments() ([]Segment, error) {
	idx := p.Index()
	segs := make([]Segment, 0, len(p.Bones))
	for _, b := range p.Bones {
		seg, err := resolveSegment(idx, b)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// Validate checks that every bone endpoint exists in the pose.
func (p Pose) Validate() error {
	_, err := p.Segments()
	return err
}

func resolveSegment(idx map[JointID]Point, b Bone) (Segment, error) {
	from, ok := idx[b.From]
	if !ok {
		return Segment{}, &MissingJointError{Bone: b, JointID: b.From}
	}
	to, ok := idx[b.To]
	if !ok {
		return Segment{}, &MissingJointError{Bone: b, JointID: b.To}
	}
	return Segment{Bone: b, From: from, To: to}, nil
}

// JointDisplayName returns the tooltip label for a joint id:
// "left_elbow" becomes "Left elbow" and "nose" becomes "Head".
func JointDisplayName(id JointID) string {
	name := string(id)
	if id == JointNose {
		return "Head"
	}
	switch {
	case strings.HasPrefix(name, "left_"):
		name = "Left " + name[len("left_"):]
	case strings.HasPrefix(name, "right_"):
		name = "Right " + name[len("right_"):]
	}
	return strings.ReplaceAll(name, "_", " ")
}
