package obstaclememory

import (
	"math"

	"github.com/golang/geo/r3"
)

// Memory is a fixed-size ring of k-d-tree-indexed point-cloud scans. Each
// Insert adds one scan at the ring's write cursor; queries pool distances
// across every scan currently held, so an obstacle seen in one scan stays
// in the query result through the next Size-1 inserted scans (C4's
// retention behavior), and is purged by the scan after that, which
// overwrites its slot.
//
// Grounded on tip.cpp's trees_ std::vector<pcl::KdTreeFLANN> ring buffer
// and the virgin_/c bookkeeping that tracks how much of the ring has been
// filled at least once.
type Memory struct {
	scans  []*KDTree
	cursor int
	virgin bool
	filled int
}

// NewMemory returns an empty ring of the given size. size must be >= 1.
func NewMemory(size int) *Memory {
	if size < 1 {
		size = 1
	}
	return &Memory{scans: make([]*KDTree, size), virgin: true}
}

// Size returns the ring's configured capacity.
func (m *Memory) Size() int { return len(m.scans) }

// Virgin reports whether the ring has not yet been filled once -- i.e.
// fewer than Size() scans have ever been inserted.
func (m *Memory) Virgin() bool { return m.virgin }

// Insert indexes points (skipping any containing NaN) into a fresh k-d
// tree and writes it at the ring's current cursor, advancing the cursor
// and wrapping once the ring fills. Returns the number of valid (non-NaN)
// points inserted.
func (m *Memory) Insert(points []r3.Vector) int {
	valid := make([]r3.Vector, 0, len(points))
	for _, p := range points {
		if isNaNVector(p) {
			continue
		}
		valid = append(valid, p)
	}

	m.scans[m.cursor] = NewKDTree(valid)
	m.cursor++
	if m.virgin {
		m.filled = m.cursor
		if m.cursor%len(m.scans) == 0 {
			m.virgin = false
		}
	}
	if m.cursor >= len(m.scans) {
		m.cursor = 0
	}
	return len(valid)
}

func isNaNVector(p r3.Vector) bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z)
}

// activeScans returns the slice of scans that currently hold data: the
// whole ring once filled, or just the scans written so far while virgin.
func (m *Memory) activeScans() []*KDTree {
	if m.virgin {
		return m.scans[:m.filled]
	}
	return m.scans
}

// MeanNearestDistance queries every active scan for its K nearest
// neighbors to pt and returns the smallest of the per-scan root-mean-
// square distances -- the pooled "closest obstacle cluster" estimate used
// by both the candidate collision check and the follow-primitive check.
// This mirrors tip.cpp's own aggregate exactly: sqrt(mean(squared
// distance)), not the mean of the per-point Euclidean distances, which is
// a different (and for K>1, smaller) quantity.
// Returns ok=false if no scan holds any points yet.
func (m *Memory) MeanNearestDistance(pt r3.Vector, k int) (dist float64, ok bool) {
	best := math.Inf(1)
	found := false
	for _, tree := range m.activeScans() {
		if tree == nil || tree.Len() == 0 {
			continue
		}
		kk := k
		if kk > tree.Len() {
			kk = tree.Len()
		}
		_, sq := tree.kNearestSquared(pt, kk)
		if len(sq) == 0 {
			continue
		}
		sum := 0.0
		for _, d2 := range sq {
			sum += d2
		}
		rms := math.Sqrt(sum / float64(len(sq)))
		if rms < best {
			best = rms
		}
		found = true
	}
	return best, found
}
