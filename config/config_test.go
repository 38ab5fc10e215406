package config

import (
	"testing"

	"go.viam.com/test"

	"github.com/aclswarm/tip/utils"
)

func TestFromAttributeMapDefaults(t *testing.T) {
	o, err := FromAttributeMap(utils.AttributeMap{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, o.MaxSpeed, test.ShouldEqual, DefaultOptions().MaxSpeed)
	test.That(t, o.TrimJerk, test.ShouldEqual, 5.0)
}

func TestFromAttributeMapCoercesVSamplesZero(t *testing.T) {
	o, err := FromAttributeMap(utils.AttributeMap{"v_samples": 0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, o.VSamples, test.ShouldEqual, 1)
}

func TestFromAttributeMapAggregatesErrors(t *testing.T) {
	_, err := FromAttributeMap(utils.AttributeMap{
		"max_speed": -1.0,
		"accel":     0.0,
		"z_min":     2.0,
		"z_max":     1.0,
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "max_speed")
	test.That(t, err.Error(), test.ShouldContainSubstring, "accel")
	test.That(t, err.Error(), test.ShouldContainSubstring, "z_max")
}

func TestFromAttributeMapOverrides(t *testing.T) {
	o, err := FromAttributeMap(utils.AttributeMap{
		"goal_x": 10.0, "goal_y": 0.0, "goal_z": 1.0,
		"use_memory": false,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, o.GoalX, test.ShouldEqual, 10.0)
	test.That(t, o.UseMemory, test.ShouldBeFalse)
}
