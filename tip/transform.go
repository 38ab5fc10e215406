package tip

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/aclswarm/tip/spatialmath"
)

// TransformBroker resolves a sensor-frame point cloud into the world
// frame, the capability the original planner got from tf2's
// lookupTransform/doTransform pair in convert2pcl.
type TransformBroker interface {
	TransformToWorld(points []r3.Vector, sensorFrame string) ([]r3.Vector, error)
}

// StaticTransformBroker applies one fixed world<-sensor pose per known
// frame id; it exists to exercise C4/C9's transform dependency in tests
// and single-vehicle deployments where the sensor-to-body extrinsic is
// fixed and known ahead of time, rather than served by a live TF tree.
type StaticTransformBroker struct {
	frames map[string]spatialmath.Pose
}

// NewStaticTransformBroker returns a broker with no registered frames;
// every TransformToWorld call fails until RegisterFrame is called for
// that frame id.
func NewStaticTransformBroker() *StaticTransformBroker {
	return &StaticTransformBroker{frames: map[string]spatialmath.Pose{}}
}

// RegisterFrame records the fixed world-frame pose of sensorFrame.
func (b *StaticTransformBroker) RegisterFrame(sensorFrame string, worldFromSensor spatialmath.Pose) {
	b.frames[sensorFrame] = worldFromSensor
}

// TransformToWorld rotates and translates each point from sensorFrame
// into the world frame using the registered static pose.
func (b *StaticTransformBroker) TransformToWorld(points []r3.Vector, sensorFrame string) ([]r3.Vector, error) {
	pose, ok := b.frames[sensorFrame]
	if !ok {
		return nil, fmt.Errorf("%w: frame %q", ErrTransformUnavailable, sensorFrame)
	}
	out := make([]r3.Vector, len(points))
	yaw := pose.Yaw()
	for i, p := range points {
		out[i] = spatialmath.BodyToWorldXY(p, yaw).Add(pose.Position)
	}
	return out, nil
}
