package grasp

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/grasp/geometry"
	"go.viam.com/grasp/idealcontroller"
	"go.viam.com/grasp/logging"
	"go.viam.com/grasp/spatialmath"
	"go.viam.com/grasp/stability"
)

func TestParseGraspCommandKeywords(t *testing.T) {
	opts, err := parseGraspCommand("target gripper_target direction 0 0 1 friction 0.5 forceclosure true outputfinal true notrans")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, opts.targetBody, test.ShouldEqual, "gripper_target")
	test.That(t, opts.direction, test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 1})
	test.That(t, opts.friction, test.ShouldEqual, 0.5)
	test.That(t, opts.forceClosure, test.ShouldBeTrue)
	test.That(t, opts.outputFinal, test.ShouldBeTrue)
	test.That(t, opts.transformRobot, test.ShouldBeFalse)
}

func TestParseGraspCommandUnknownKeywordErrors(t *testing.T) {
	_, err := parseGraspCommand("boguskeyword")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestParseConvexHullCommandPoints(t *testing.T) {
	opts, err := parseConvexHullCommand("points 4 2 0 0 1 0 0 1 1 1 returnfaces true")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, opts.dim, test.ShouldEqual, 2)
	test.That(t, opts.points, test.ShouldResemble, []float64{0, 0, 1, 0, 0, 1, 1, 1})
	test.That(t, opts.returnFaces, test.ShouldBeTrue)
}

// fakeEnv is a minimal Environment fake: it reports no ray hits, no
// minimum distance, and a single link-vs-target contact on link 0,
// sufficient to exercise command parsing and state save/restore paths
// without a real collision kernel.
type fakeEnv struct {
	mask geometry.CollisionOptions
}

func (e *fakeEnv) Lock()   {}
func (e *fakeEnv) Unlock() {}
func (e *fakeEnv) SetCollisionOptions(opts geometry.CollisionOptions) geometry.CollisionOptions {
	prev := e.mask
	e.mask = opts
	return prev
}
func (e *fakeEnv) CastRay(ray geometry.Ray) (geometry.Contact, bool) {
	return geometry.Contact{}, false
}
func (e *fakeEnv) MinDistance(ray geometry.Ray) (float64, bool) {
	return 0, false
}
func (e *fakeEnv) LinkTargetCollision(linkIndex int) (geometry.Contact, bool) {
	if linkIndex != 0 {
		return geometry.Contact{}, false
	}
	return geometry.Contact{Pos: r3.Vector{}, Norm: r3.Vector{Z: 1}}, true
}

// fakeRobot is a one-link, one-DOF Robot fake whose single link reports a
// contact admissible under +Z closing with mu=0.5 (mirrors S4).
type fakeRobot struct {
	values []float64
	vels   []float64
	trans  spatialmath.Pose
	enabled bool
}

func (b *fakeRobot) DOFValues() []float64                   { return append([]float64{}, b.values...) }
func (b *fakeRobot) SetDOFValues(values []float64)          { b.values = append([]float64{}, values...) }
func (b *fakeRobot) DOFVelocities() []float64                { return append([]float64{}, b.vels...) }
func (b *fakeRobot) SetDOFVelocities(velocities []float64)  { b.vels = append([]float64{}, velocities...) }
func (b *fakeRobot) DOFLimits() (min, max []float64)        { return nil, nil }
func (b *fakeRobot) Transform() spatialmath.Pose             { return b.trans }
func (b *fakeRobot) SetTransform(p spatialmath.Pose)         { b.trans = p }
func (b *fakeRobot) SetEnabled(enabled bool)                 { b.enabled = enabled }
func (b *fakeRobot) Enabled() bool                           { return b.enabled }
func (b *fakeRobot) LinkNamed(name string) (int, bool)       { return 0, name == "gripper" }

func (b *fakeRobot) DOF() int                    { return 1 }
func (b *fakeRobot) BaseLinkIndex() int          { return -1 }
func (b *fakeRobot) NumLinks() int               { return 1 }
func (b *fakeRobot) IsCollidingWithTarget() bool { return true }
func (b *fakeRobot) ActiveManipulator() stability.Manipulator {
	return stability.Manipulator{GripperIndices: []int{0}, ClosingDirection: []float64{1}, BaseLinkIndex: -1}
}
func (b *fakeRobot) LinkCollisions(linkIndex int) []stability.LinkContact {
	if linkIndex != 0 {
		return nil
	}
	return []stability.LinkContact{{Pos: r3.Vector{}, Norm: r3.Vector{Z: -1}, Link1IsThisLink: true}}
}
func (b *fakeRobot) CalculateJacobian(linkIndex int, point r3.Vector) [][]float64 {
	return [][]float64{{0}, {0}, {1}}
}

// fakePlanner always produces a single-step trajectory holding the robot at
// q=1.
type fakePlanner struct {
	initErr error
	planErr error
}

func (p *fakePlanner) InitPlan(robot Robot, params Parameters) error { return p.initErr }
func (p *fakePlanner) PlanPath() (*idealcontroller.Trajectory, error) {
	if p.planErr != nil {
		return nil, p.planErr
	}
	return &idealcontroller.Trajectory{Times: []float64{0, 1}, Q: [][]float64{{0}, {1}}}, nil
}

func newTestOrchestrator(t *testing.T) (*Orchestrator, *fakeRobot, *fakePlanner) {
	log := logging.NewTestLogger(t)
	robot := &fakeRobot{values: []float64{0}, trans: spatialmath.NewZeroPose()}
	planner := &fakePlanner{}
	env := &fakeEnv{}
	o := NewOrchestrator(log, env, robot, planner, rand.New(rand.NewSource(1)))
	return o, robot, planner
}

func TestGraspWithNoPlannerReturnsConfigurationError(t *testing.T) {
	log := logging.NewTestLogger(t)
	robot := &fakeRobot{values: []float64{0}, trans: spatialmath.NewZeroPose()}
	env := &fakeEnv{}
	o := NewOrchestrator(log, env, robot, nil, rand.New(rand.NewSource(1)))
	_, err := o.Grasp("")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestGraspAppliesFinalTrajectoryAndStreamsContacts(t *testing.T) {
	log := logging.NewTestLogger(t)
	robot := &fakeRobot{values: []float64{0}, trans: spatialmath.NewZeroPose()}
	planner := &fakePlanner{}
	env := &fakeEnv{}
	o := NewOrchestrator(log, env, robot, planner, rand.New(rand.NewSource(1)))

	out, err := o.Grasp("outputfinal true")
	test.That(t, err, test.ShouldBeNil)
	// The final trajectory pose (q=1) is applied while the contacts and the
	// outputfinal joint vector are produced; Grasp then restores the saved
	// robot state (q=0) on return.
	test.That(t, strings.HasSuffix(out, " 1\n"), test.ShouldBeTrue)
	test.That(t, robot.values[0], test.ShouldEqual, 0.0)
	test.That(t, strings.Contains(out, "0"), test.ShouldBeTrue)
}

func TestGraspWithStableContactsUsesFilter(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)
	out, err := o.Grasp("stablecontacts true friction 0.5")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(out) > 0, test.ShouldBeTrue)
}

func TestGetStableContactsAcceptsAdmissibleContact(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)
	out, err := o.GetStableContacts("direction 0 0 1 friction 0.5")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.Count(out, "\n"), test.ShouldEqual, 1)
}

func TestConvexHullUnitCube(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)
	pts := []float64{
		1, 1, 1, 1, 1, -1, 1, -1, 1, 1, -1, -1,
		-1, 1, 1, -1, 1, -1, -1, -1, 1, -1, -1, -1,
	}
	var sb strings.Builder
	sb.WriteString("points 8 3")
	for _, v := range pts {
		sb.WriteString(" ")
		sb.WriteString(formatFloat(v))
	}
	out, err := o.ConvexHull(sb.String())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(out) > 0, test.ShouldBeTrue)
}

func formatFloat(v float64) string {
	if v == 1 {
		return "1"
	}
	return "-1"
}

func TestConvexHullRejectsTriangulateWrongDim(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)
	_, err := o.ConvexHull("points 3 2 0 0 1 0 0 1 returntriangles true")
	test.That(t, err, test.ShouldNotBeNil)
}
