// Package obstaclememory implements C4: a fixed-size ring of point-cloud
// scans, each indexed by a small k-d tree, that together answer "what is
// the root-mean-square distance to the K nearest obstacle points near this
// location," taking the smallest such value across every scan still held
// in the ring. It is modeled on the
// API shape the teacher's pointcloud.KDTree exposes (NewKDTree, a single
// query point in, nearest neighbors with distances out) rather than on
// any generic third-party spatial-index package: a kd-tree keyed on a
// Comparable/Interface adapter is easy to wire incorrectly without a
// compiler double-checking the adapter, so this is a small hand-rolled
// tree sized for the tens-to-low-hundreds of points a single depth scan
// contributes.
package obstaclememory

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

type kdNode struct {
	point       r3.Vector
	axis        int
	left, right *kdNode
}

// KDTree is a static, balanced k-d tree over a fixed set of 3-D points.
type KDTree struct {
	root *kdNode
	n    int
}

// NewKDTree builds a balanced tree over points. Points containing NaN must
// already be filtered out by the caller (Memory.Insert does this).
func NewKDTree(points []r3.Vector) *KDTree {
	pts := make([]r3.Vector, len(points))
	copy(pts, points)
	return &KDTree{root: build(pts, 0), n: len(pts)}
}

func build(pts []r3.Vector, depth int) *kdNode {
	if len(pts) == 0 {
		return nil
	}
	axis := depth % 3
	sort.Slice(pts, func(i, j int) bool {
		return axisValue(pts[i], axis) < axisValue(pts[j], axis)
	})
	mid := len(pts) / 2
	node := &kdNode{point: pts[mid], axis: axis}
	node.left = build(pts[:mid], depth+1)
	node.right = build(pts[mid+1:], depth+1)
	return node
}

func axisValue(p r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// Len returns the number of points indexed by the tree.
func (t *KDTree) Len() int { return t.n }

// neighbor is a candidate nearest-neighbor result, kept in a small
// bounded max-heap-like slice during the search.
type neighbor struct {
	point r3.Vector
	dist2 float64
}

// KNearestNeighbors returns up to k points nearest to target, sorted by
// increasing distance, along with each point's Euclidean distance.
func (t *KDTree) KNearestNeighbors(target r3.Vector, k int) ([]r3.Vector, []float64) {
	pts, sq := t.kNearestSquared(target, k)
	dists := make([]float64, len(sq))
	for i, d2 := range sq {
		dists[i] = math.Sqrt(d2)
	}
	return pts, dists
}

// kNearestSquared is KNearestNeighbors' underlying search, returning raw
// squared distances so callers that need pointNKNSquaredDistance-style
// aggregates (e.g. a root-mean-square over the K nearest) don't pay for a
// sqrt per point only to square it again.
func (t *KDTree) kNearestSquared(target r3.Vector, k int) ([]r3.Vector, []float64) {
	if t == nil || t.root == nil || k <= 0 {
		return nil, nil
	}
	best := make([]neighbor, 0, k)
	search(t.root, target, k, &best)

	sort.Slice(best, func(i, j int) bool { return best[i].dist2 < best[j].dist2 })
	pts := make([]r3.Vector, len(best))
	sq := make([]float64, len(best))
	for i, b := range best {
		pts[i] = b.point
		sq[i] = b.dist2
	}
	return pts, sq
}

func search(n *kdNode, target r3.Vector, k int, best *[]neighbor) {
	if n == nil {
		return
	}
	d2 := target.Sub(n.point).Norm2()
	insertCandidate(best, neighbor{point: n.point, dist2: d2}, k)

	diff := axisValue(target, n.axis) - axisValue(n.point, n.axis)
	near, far := n.left, n.right
	if diff > 0 {
		near, far = n.right, n.left
	}
	search(near, target, k, best)

	// Only descend into the far subtree if it could still hold a closer
	// point than the current worst kept candidate.
	if len(*best) < k || diff*diff < worstDist2(*best) {
		search(far, target, k, best)
	}
}

func insertCandidate(best *[]neighbor, cand neighbor, k int) {
	if len(*best) < k {
		*best = append(*best, cand)
		return
	}
	worstIdx, worstD := 0, (*best)[0].dist2
	for i, b := range *best {
		if b.dist2 > worstD {
			worstIdx, worstD = i, b.dist2
		}
	}
	if cand.dist2 < worstD {
		(*best)[worstIdx] = cand
	}
}

func worstDist2(best []neighbor) float64 {
	w := 0.0
	for _, b := range best {
		if b.dist2 > w {
			w = b.dist2
		}
	}
	return w
}

// NearestNeighbor returns the single closest point to target and its
// distance, mirroring the teacher's KDTree.NearestNeighbor convenience
// method.
func (t *KDTree) NearestNeighbor(target r3.Vector) (r3.Vector, float64, bool) {
	pts, dists := t.KNearestNeighbors(target, 1)
	if len(pts) == 0 {
		return r3.Vector{}, 0, false
	}
	return pts[0], dists[0], true
}
