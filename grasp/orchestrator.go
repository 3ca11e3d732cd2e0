package grasp

import (
	"context"
	"math/rand"

	"github.com/golang/geo/r3"

	"go.viam.com/grasp/convexhull"
	"go.viam.com/grasp/distancemap"
	"go.viam.com/grasp/forceclosure"
	"go.viam.com/grasp/geometry"
	"go.viam.com/grasp/grasperrors"
	"go.viam.com/grasp/logging"
	"go.viam.com/grasp/sampling"
	"go.viam.com/grasp/stability"
)

// defaultNCone is the number of primitive wrenches each contact's friction
// cone is discretized into for AnalyzeContacts3D when forceclosure is
// requested. It matches S7's N_cone=8.
const defaultNCone = 8

// Orchestrator drives one grasp analysis core environment: it holds the
// collaborator wiring (Environment, acting Robot, optional target body,
// Planner, and hull diagnostics sink) and exposes the four command entry
// points of §6.
type Orchestrator struct {
	log     logging.Logger
	env     Environment
	robot   Robot
	target  KinematicBody
	planner Planner
	writer  TrajectoryWriter
	diag    *convexhull.Diagnostics
	rng     *rand.Rand
}

// NewOrchestrator returns an Orchestrator over env and robot. planner may be
// nil; Grasp then fails with a Configuration error the first time it is
// invoked, matching the "missing planner" error kind.
func NewOrchestrator(log logging.Logger, env Environment, robot Robot, planner Planner, rng *rand.Rand) *Orchestrator {
	return &Orchestrator{
		log:     log,
		env:     env,
		robot:   robot,
		planner: planner,
		writer:  noopTrajectoryWriter{},
		diag:    convexhull.NewDiagnostics(),
		rng:     rng,
	}
}

// SetTarget installs the target kinematic body; Grasp and ComputeDistanceMap
// operate relative to it when set.
func (o *Orchestrator) SetTarget(target KinematicBody) {
	o.target = target
}

// SetTrajectoryWriter installs the `writetraj` hook; the default is a no-op.
func (o *Orchestrator) SetTrajectoryWriter(w TrajectoryWriter) {
	if w == nil {
		w = noopTrajectoryWriter{}
	}
	o.writer = w
}

// Close releases the hull diagnostics sink. Matches §5's "temporary error
// file ... closed at orchestrator destruction."
func (o *Orchestrator) Close() {
	o.diag.Close()
}

// Grasp implements the Grasp command: plans and executes a grasp, then
// streams contact lines, optionally the final pose/joint vector, and
// optionally a force-closure result.
func (o *Orchestrator) Grasp(raw string) (string, error) {
	o.env.Lock()
	defer o.env.Unlock()

	opts, err := parseGraspCommand(raw)
	if err != nil {
		return "", err
	}
	if o.planner == nil {
		return "", errNoPlanner()
	}

	robotState := saveState(o.robot)
	defer robotState.restore()
	var targetState *scopedStateSaver
	if o.target != nil {
		targetState = saveState(o.target)
		defer targetState.restore()
	}

	o.robot.SetEnabled(true)

	params := o.buildParameters(opts)
	params.InitialConfig = append([]float64{}, o.robot.DOFValues()...)

	if err := o.planner.InitPlan(o.robot, params); err != nil {
		return "", grasperrors.NewRuntime("grasp: planner.InitPlan: %v", err)
	}
	traj, err := o.planner.PlanPath()
	if err != nil {
		return "", grasperrors.NewRuntime("grasp: planner.PlanPath: %v", err)
	}

	if traj != nil {
		final := traj.Sample(traj.Duration())
		o.robot.SetDOFValues(final.Q)
		if opts.transformRobot && final.HasTrans {
			o.robot.SetTransform(final.Trans)
		}
	}
	if opts.hasWriteTraj {
		if err := o.writer.WriteTrajectory(opts.writeTrajPath, traj); err != nil {
			grasperrors.Advisory(o.log, "grasp: writetraj %s: %v", opts.writeTrajPath, err)
		}
	}

	direction := worldDirection(o.target, resolveDirection(opts))
	var contacts []geometry.TaggedContact
	if opts.stableContacts {
		contacts = stability.Filter(o.log, o.robot, direction, opts.friction)
	} else {
		contacts = o.collectLinkContacts()
	}

	var out outputBuilder
	out.contacts(contacts)

	if opts.outputFinal {
		out.finalPose(o.robot)
	}

	if opts.forceClosure {
		plain := make([]geometry.Contact, len(contacts))
		for i, c := range contacts {
			plain[i] = c.Contact
		}
		analysis, err := forceclosure.AnalyzeContacts3D(plain, opts.friction, defaultNCone)
		if err != nil {
			return "", grasperrors.Wrap(err, "grasp: forceclosure")
		}
		out.forceClosure(analysis)
	}

	if opts.getLinkCollisions {
		out.linkCollisions(contacts)
	}

	return out.String(), nil
}

// GetStableContacts implements the GetStableContacts command: runs the
// stable-contact filter directly, without planning or moving the robot.
func (o *Orchestrator) GetStableContacts(raw string) (string, error) {
	o.env.Lock()
	defer o.env.Unlock()

	opts, err := parseStableContactsCommand(raw)
	if err != nil {
		return "", err
	}

	direction := worldDirection(o.target, opts.direction)
	contacts := stability.Filter(o.log, o.robot, direction, opts.friction)

	var out outputBuilder
	out.contacts(contacts)
	if opts.getLinkCollisions {
		out.linkCollisions(contacts)
	}
	return out.String(), nil
}

// ComputeDistanceMap implements the ComputeDistanceMap command: samples the
// target surface and reports per-point clearance.
func (o *Orchestrator) ComputeDistanceMap(raw string) (string, error) {
	o.env.Lock()
	defer o.env.Unlock()

	opts, err := parseDistanceMapCommand(raw)
	if err != nil {
		return "", err
	}

	contacts, err := sampling.BoxSample(context.Background(), o.env, opts.center, opts.mapSamples)
	if err != nil {
		return "", grasperrors.Wrap(err, "grasp: ComputeDistanceMap: sampling")
	}
	distancemap.Compute(o.rng, o.env, contacts, opts.coneWidth, distancemap.DefaultOptions())

	var out outputBuilder
	out.distanceMap(contacts, opts.center)
	return out.String(), nil
}

// ConvexHull implements the ConvexHull command: builds the hull of an
// explicit point set and streams the requested sections.
func (o *Orchestrator) ConvexHull(raw string) (string, error) {
	o.env.Lock()
	defer o.env.Unlock()

	opts, err := parseConvexHullCommand(raw)
	if err != nil {
		return "", err
	}
	if !opts.hasPoints {
		return "", grasperrors.NewValidation("grasp: ConvexHull: missing points keyword")
	}
	if opts.returnTriangles && opts.dim != 3 {
		return "", errTriangulateWrongDim(opts.dim)
	}

	needFaces := opts.returnFaces || opts.returnTriangles
	res, err := convexhull.Compute(opts.points, opts.dim, convexhull.Options{ReturnFaces: needFaces}, o.diag)
	if err != nil {
		return "", grasperrors.Wrap(err, "grasp: ConvexHull")
	}

	var triangles []int
	if opts.returnTriangles {
		triangles, err = convexhull.Triangulate(opts.points, opts.dim, res.Faces)
		if err != nil {
			return "", grasperrors.Wrap(err, "grasp: ConvexHull: triangulate")
		}
	}

	var out outputBuilder
	if opts.returnPlanes {
		out.planes(res.Planes, opts.dim)
	}
	if opts.returnFaces {
		out.faces(res.Faces)
	}
	if opts.returnTriangles {
		out.triangles(triangles)
	}
	return out.String(), nil
}

// collectLinkContacts implements §4.8's non-stability contact path: direct
// link-vs-target collision per link, with normals flipped to point into the
// link (opposite of the raw collision report's object-outward convention).
func (o *Orchestrator) collectLinkContacts() []geometry.TaggedContact {
	var out []geometry.TaggedContact
	for link := 0; link < o.robot.NumLinks(); link++ {
		c, ok := o.env.LinkTargetCollision(link)
		if !ok {
			continue
		}
		c.Norm = c.Norm.Mul(-1)
		out = append(out, geometry.TaggedContact{Contact: c, LinkIndex: link})
	}
	return out
}

// resolveDirection picks the user-supplied closing direction, or +Z (§9
// DefaultParameters) when the command omitted `direction`.
func resolveDirection(opts graspOptions) r3.Vector {
	if opts.hasDirection {
		return opts.direction
	}
	return r3.Vector{X: 0, Y: 0, Z: 1}
}

// buildParameters assembles GraspParameters from the parsed command,
// layering onto config.DefaultParameters.
func (o *Orchestrator) buildParameters(opts graspOptions) Parameters {
	params := defaultParameters()
	if opts.hasTargetBody {
		params.TargetBody = opts.targetBody
	}
	params.TargetDirection = resolveDirection(opts)
	if opts.hasCenterOffset {
		params.TargetPosition = opts.centerOffset
	}
	params.Roll = opts.roll
	params.Standoff = opts.standoff
	params.TransformRobot = opts.transformRobot
	params.OnlyContactTarget = opts.onlyContactTarget
	params.TightGrasp = opts.tightGrasp
	params.GraspingNoise = opts.graspingNoise
	params.TranslationStepMult = opts.translationStepMult
	params.AvoidLinkGeometry = opts.avoidLinks
	return params
}
