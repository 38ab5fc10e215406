package utils

import (
	"testing"

	"go.viam.com/test"
)

func TestAttributeMapDefaults(t *testing.T) {
	am := AttributeMap{}
	test.That(t, am.Float64("x", 1.5), test.ShouldEqual, 1.5)
	test.That(t, am.Int("n", 3), test.ShouldEqual, 3)
	test.That(t, am.Bool("b", true), test.ShouldEqual, true)
	test.That(t, am.String("s", "hi"), test.ShouldEqual, "hi")
	test.That(t, am.Has("x"), test.ShouldBeFalse)
}

func TestAttributeMapTyped(t *testing.T) {
	am := AttributeMap{
		"x":    2.0,
		"n":    4,
		"b":    false,
		"s":    "ok",
		"fs":   []interface{}{1.0, 2.0, 3.0},
		"is":   []interface{}{1, 2, 3},
		"strs": []interface{}{"a", "b"},
	}
	test.That(t, am.Float64("x", 0), test.ShouldEqual, 2.0)
	test.That(t, am.Int("n", 0), test.ShouldEqual, 4)
	test.That(t, am.Bool("b", true), test.ShouldBeFalse)
	test.That(t, am.String("s", ""), test.ShouldEqual, "ok")
	test.That(t, am.Float64Slice("fs", nil), test.ShouldResemble, []float64{1, 2, 3})
	test.That(t, am.IntSlice("is", nil), test.ShouldResemble, []int{1, 2, 3})
	test.That(t, am.StringSlice("strs", nil), test.ShouldResemble, []string{"a", "b"})
}

func TestAttributeMapPanicsOnMismatch(t *testing.T) {
	am := AttributeMap{"x": "not-a-float"}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on type mismatch")
		}
	}()
	am.Float64("x", 0)
}
