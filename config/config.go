// Package config decodes and validates GraspParameters: the option set a
// Grasp command or a programmatic caller supplies to the grasp
// orchestrator.
package config

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r3"

	"go.viam.com/grasp/grasperrors"
)

// Parameters is the grasp analysis core's GraspParameters: every option the
// orchestrator recognizes, independent of whether it arrived via the
// keyword command stream or a decoded config map.
type Parameters struct {
	TargetBody          string    `mapstructure:"targetbody"`
	TargetDirection     r3.Vector `mapstructure:"vtargetdirection"`
	TargetPosition      r3.Vector `mapstructure:"vtargetposition"`
	Roll                float64   `mapstructure:"ftargetroll"`
	Standoff            float64   `mapstructure:"fstandoff"`
	TransformRobot      bool      `mapstructure:"btransformrobot"`
	OnlyContactTarget   bool      `mapstructure:"bonlycontacttarget"`
	TightGrasp          bool      `mapstructure:"btightgrasp"`
	GraspingNoise       float64   `mapstructure:"fgraspingnoise"`
	TranslationStepMult float64   `mapstructure:"ftranslationstepmult"`
	AvoidLinkGeometry   []string  `mapstructure:"vavoidlinkgeometry"`
	InitialConfig       []float64 `mapstructure:"vinitialconfig"`
}

// DefaultParameters returns GraspParameters defaults: a +Z target direction
// (in the target's own frame if one is set, else world frame) and zero
// everywhere else.
func DefaultParameters() Parameters {
	return Parameters{TargetDirection: r3.Vector{X: 0, Y: 0, Z: 1}}
}

// Decode populates a Parameters from a raw map[string]interface{}, layering
// it over DefaultParameters. r3.Vector fields may be supplied either as a
// nested map with x/y/z keys (mapstructure's own struct-decoding handles
// that natively) or as a 3-element numeric slice, handled by
// vectorDecodeHook below.
func Decode(raw map[string]interface{}) (Parameters, error) {
	params := DefaultParameters()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &params,
		DecodeHook:       vectorDecodeHook,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Parameters{}, grasperrors.NewConfiguration("config: failed to build decoder: %v", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Parameters{}, grasperrors.NewValidation("config: %v", err)
	}
	return params, nil
}

func vectorDecodeHook(_, t reflect.Type, data interface{}) (interface{}, error) {
	if t != reflect.TypeOf(r3.Vector{}) {
		return data, nil
	}
	elems, ok := data.([]interface{})
	if !ok {
		return data, nil
	}
	if len(elems) != 3 {
		return nil, grasperrors.NewValidation("config: vector field needs 3 elements, got %d", len(elems))
	}
	vals := make([]float64, 3)
	for i, e := range elems {
		f, ok := toFloat(e)
		if !ok {
			return nil, grasperrors.NewValidation("config: vector element %d is not numeric", i)
		}
		vals[i] = f
	}
	return r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
