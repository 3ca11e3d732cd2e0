package grasp

import (
	"math"

	"github.com/golang/geo/r3"
)

// graspOptions holds every keyword §6's Grasp command recognizes, parsed
// from the raw token stream. Fields default to their GraspParameters
// default (see config.DefaultParameters) except where the command surface
// documents its own default. bodyID, execute, and collisionChecker are
// accepted so the command surface never rejects them, but have no effect:
// none of the five narrow collaborator interfaces (§6) exposes a
// body-by-id lookup, an execute-vs-plan-only toggle, or a named collision
// checker to switch.
type graspOptions struct {
	targetBody        string
	hasTargetBody     bool
	bodyID            int
	hasBodyID         bool
	direction         r3.Vector
	hasDirection      bool
	avoidLinks        []string
	noTrans           bool
	transformRobot    bool
	hasTransformRobot bool
	onlyContactTarget bool
	tightGrasp        bool
	execute           bool
	writeTrajPath     string
	hasWriteTraj      bool
	outputFinal       bool
	graspingNoise     float64
	roll              float64
	centerOffset      r3.Vector
	hasCenterOffset   bool
	standoff          float64
	friction          float64
	getLinkCollisions   bool
	stableContacts      bool
	forceClosure        bool
	collisionChecker    string
	translationStepMult float64
}

// parseGraspCommand tokenizes raw per the Grasp keyword list.
func parseGraspCommand(raw string) (graspOptions, error) {
	opts := graspOptions{transformRobot: true}
	t := newTokenizer("Grasp", raw)
	for !t.done() {
		kw := t.next()
		var err error
		switch kw {
		case "body", "target":
			opts.targetBody, err = t.string(kw)
			opts.hasTargetBody = true
		case "bodyid":
			opts.bodyID, err = t.int(kw)
			opts.hasBodyID = true
		case "direction":
			opts.direction.X, opts.direction.Y, opts.direction.Z, err = t.vector3(kw)
			opts.hasDirection = true
		case "avoidlink":
			var link string
			link, err = t.string(kw)
			opts.avoidLinks = append(opts.avoidLinks, link)
		case "notrans":
			opts.noTrans = true
		case "transformrobot":
			opts.transformRobot, err = t.bool(kw)
			opts.hasTransformRobot = true
		case "onlycontacttarget":
			opts.onlyContactTarget, err = t.bool(kw)
		case "tightgrasp":
			opts.tightGrasp, err = t.bool(kw)
		case "execute":
			opts.execute, err = t.bool(kw)
		case "writetraj":
			opts.writeTrajPath, err = t.string(kw)
			opts.hasWriteTraj = true
		case "outputfinal":
			opts.outputFinal, err = t.bool(kw)
		case "graspingnoise":
			opts.graspingNoise, err = t.float(kw)
		case "roll":
			opts.roll, err = t.float(kw)
		case "centeroffset", "position":
			opts.centerOffset.X, opts.centerOffset.Y, opts.centerOffset.Z, err = t.vector3(kw)
			opts.hasCenterOffset = true
		case "standoff":
			opts.standoff, err = t.float(kw)
		case "friction":
			opts.friction, err = t.float(kw)
		case "getlinkcollisions":
			opts.getLinkCollisions = true
		case "stablecontacts":
			opts.stableContacts, err = t.bool(kw)
		case "forceclosure":
			opts.forceClosure, err = t.bool(kw)
		case "collision":
			opts.collisionChecker, err = t.string(kw)
		case "translationstepmult":
			opts.translationStepMult, err = t.float(kw)
		default:
			err = errUnknownKeyword("Grasp", kw)
		}
		if err != nil {
			return graspOptions{}, err
		}
	}
	if opts.noTrans {
		opts.transformRobot = false
	}
	return opts, nil
}

// stableContactsOptions holds the GetStableContacts keyword set.
type stableContactsOptions struct {
	direction         r3.Vector
	hasDirection      bool
	friction          float64
	getLinkCollisions bool
}

func parseStableContactsCommand(raw string) (stableContactsOptions, error) {
	opts := stableContactsOptions{}
	t := newTokenizer("GetStableContacts", raw)
	for !t.done() {
		kw := t.next()
		var err error
		switch kw {
		case "direction":
			opts.direction.X, opts.direction.Y, opts.direction.Z, err = t.vector3(kw)
			opts.hasDirection = true
		case "friction":
			opts.friction, err = t.float(kw)
		case "getlinkcollisions":
			opts.getLinkCollisions = true
		default:
			err = errUnknownKeyword("GetStableContacts", kw)
		}
		if err != nil {
			return stableContactsOptions{}, err
		}
	}
	return opts, nil
}

// distanceMapOptions holds the ComputeDistanceMap keyword set. targetBody is
// accepted so the command surface never rejects it, but has no effect: like
// graspOptions' bodyID/execute/collisionChecker, Environment exposes no
// body-by-name lookup (§6) for the orchestrator to resolve it against, so
// ComputeDistanceMap samples around center regardless of which body name is
// given.
type distanceMapOptions struct {
	coneWidth  float64
	mapSamples int
	targetBody string
	hasTarget  bool
	center     r3.Vector
	hasCenter  bool
}

func defaultDistanceMapOptions() distanceMapOptions {
	return distanceMapOptions{coneWidth: math.Pi / 4, mapSamples: 60000}
}

func parseDistanceMapCommand(raw string) (distanceMapOptions, error) {
	opts := defaultDistanceMapOptions()
	t := newTokenizer("ComputeDistanceMap", raw)
	for !t.done() {
		kw := t.next()
		var err error
		switch kw {
		case "conewidth":
			opts.coneWidth, err = t.float(kw)
		case "mapsamples":
			opts.mapSamples, err = t.int(kw)
		case "target":
			opts.targetBody, err = t.string(kw)
			opts.hasTarget = true
		case "center":
			opts.center.X, opts.center.Y, opts.center.Z, err = t.vector3(kw)
			opts.hasCenter = true
		default:
			err = errUnknownKeyword("ComputeDistanceMap", kw)
		}
		if err != nil {
			return distanceMapOptions{}, err
		}
	}
	return opts, nil
}

// convexHullOptions holds the ConvexHull keyword set.
type convexHullOptions struct {
	points          []float64
	dim             int
	hasPoints       bool
	returnPlanes    bool
	returnFaces     bool
	returnTriangles bool
}

func parseConvexHullCommand(raw string) (convexHullOptions, error) {
	opts := convexHullOptions{returnPlanes: true}
	t := newTokenizer("ConvexHull", raw)
	for !t.done() {
		kw := t.next()
		var err error
		switch kw {
		case "points":
			var n, dim int
			n, err = t.int(kw)
			if err == nil {
				dim, err = t.int(kw)
			}
			if err == nil {
				opts.points, err = t.floats(kw, n*dim)
			}
			opts.dim = dim
			opts.hasPoints = true
		case "returnplanes":
			opts.returnPlanes, err = t.bool(kw)
		case "returnfaces":
			opts.returnFaces, err = t.bool(kw)
		case "returntriangles":
			opts.returnTriangles, err = t.bool(kw)
		default:
			err = errUnknownKeyword("ConvexHull", kw)
		}
		if err != nil {
			return convexHullOptions{}, err
		}
	}
	return opts, nil
}
