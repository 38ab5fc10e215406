package tip

import "errors"

// Sentinel errors for the handled-but-reported failure modes in C's error
// handling design: a running planner either produces a feasible setpoint
// or comes to a safe stop, and these mark which of the two is happening.
var (
	ErrSparseCloud          = errors.New("tip: fewer than K valid points in point cloud, skipping selection this tick")
	ErrNoFeasiblePath       = errors.New("tip: no feasible path, forcing stop")
	ErrTransformUnavailable = errors.New("tip: world transform unavailable for sensor frame, dropping scan")
)
