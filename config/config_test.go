package config

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestDefaultParametersTargetDirection(t *testing.T) {
	params := DefaultParameters()
	test.That(t, params.TargetDirection, test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 1})
}

func TestDecodeScalarAndFlagFields(t *testing.T) {
	raw := map[string]interface{}{
		"targetbody":           "gripper_target",
		"ftargetroll":          1.25,
		"fstandoff":            0.02,
		"btransformrobot":      true,
		"bonlycontacttarget":   true,
		"vavoidlinkgeometry":   []interface{}{"link1", "link2"},
	}
	params, err := Decode(raw)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, params.TargetBody, test.ShouldEqual, "gripper_target")
	test.That(t, params.Roll, test.ShouldEqual, 1.25)
	test.That(t, params.Standoff, test.ShouldEqual, 0.02)
	test.That(t, params.TransformRobot, test.ShouldBeTrue)
	test.That(t, params.OnlyContactTarget, test.ShouldBeTrue)
	test.That(t, params.AvoidLinkGeometry, test.ShouldResemble, []string{"link1", "link2"})
}

func TestDecodeVectorFromSlice(t *testing.T) {
	raw := map[string]interface{}{
		"vtargetdirection": []interface{}{0.0, 1.0, 0.0},
	}
	params, err := Decode(raw)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, params.TargetDirection, test.ShouldResemble, r3.Vector{X: 0, Y: 1, Z: 0})
}

func TestDecodeVectorWrongLengthErrors(t *testing.T) {
	raw := map[string]interface{}{
		"vtargetposition": []interface{}{1.0, 2.0},
	}
	_, err := Decode(raw)
	test.That(t, err, test.ShouldNotBeNil)
}
