package grasp

import "go.viam.com/grasp/config"

// Parameters is the grasp analysis core's GraspParameters, re-exported from
// config so callers driving the orchestrator need only import this
// package.
type Parameters = config.Parameters

// defaultParameters returns GraspParameters defaults; buildParameters
// layers the parsed Grasp command over this.
func defaultParameters() Parameters {
	return config.DefaultParameters()
}
