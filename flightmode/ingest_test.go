package flightmode

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestDetectJumpBelowThreshold(t *testing.T) {
	_, jumped := DetectJump(r3.Vector{X: 1}, r3.Vector{X: 1.05}, 1.0)
	test.That(t, jumped, test.ShouldBeFalse)
}

func TestDetectJumpAboveThreshold(t *testing.T) {
	bias, jumped := DetectJump(r3.Vector{X: 0}, r3.Vector{X: 2}, 1.0)
	test.That(t, jumped, test.ShouldBeTrue)
	test.That(t, bias.X, test.ShouldAlmostEqual, 2.0)
}
