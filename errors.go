package posekit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when a fit ratio is requested before
	// the source image dimensions are known.
	ErrInvalidDimension = errors.New("posekit: invalid image dimension")

	// ErrMissingJoint is returned when a bone references a joint id that is
	// not present in the pose.
	ErrMissingJoint = errors.New("posekit: missing joint")

	// ErrResizeBelowMinimum is returned when a bounding-box resize would make
	// the box smaller than the configured minimum size.
	ErrResizeBelowMinimum = errors.New("posekit: resize below minimum size")

	// ErrEmptyStroke is returned when a stroke has no coordinate pair.
	ErrEmptyStroke = errors.New("posekit: stroke has no points")

	// ErrInvalidPenWidth is returned for a pen width outside PenWidths.
	ErrInvalidPenWidth = errors.New("posekit: invalid pen width")

	// ErrNotReady is returned by operations that need the background image
	// to have loaded first.
	ErrNotReady = errors.New("posekit: image not loaded")
)

// MissingJointError reports which bone endpoint could not be resolved.
type MissingJointError struct {
	Bone    Bone
	JointID JointID
}

func (e *MissingJointError) Error() string {
	return fmt.Sprintf("posekit: bone %s-%s references missing joint %q", e.Bone.From, e.Bone.To, e.JointID)
}

// Is reports ErrMissingJoint as the sentinel for this error.
func (e *MissingJointError) Is(target error) bool {
	return target == ErrMissingJoint
}
