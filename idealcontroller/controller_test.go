package idealcontroller

import (
	"math"
	"testing"

	"go.viam.com/test"

	"go.viam.com/grasp/logging"
	"go.viam.com/grasp/spatialmath"
)

type fakeBody struct {
	values []float64
	vels   []float64
	min    []float64
	max    []float64
	trans  spatialmath.Pose
}

func newFakeBody(n int) *fakeBody {
	return &fakeBody{
		values: make([]float64, n),
		vels:   make([]float64, n),
		trans:  spatialmath.NewZeroPose(),
	}
}

func (b *fakeBody) DOFValues() []float64                { return append([]float64{}, b.values...) }
func (b *fakeBody) SetDOFValues(values []float64)       { b.values = append([]float64{}, values...) }
func (b *fakeBody) DOFVelocities() []float64            { return append([]float64{}, b.vels...) }
func (b *fakeBody) SetDOFVelocities(velocities []float64) { b.vels = append([]float64{}, velocities...) }
func (b *fakeBody) DOFLimits() ([]float64, []float64)   { return b.min, b.max }
func (b *fakeBody) Transform() spatialmath.Pose         { return b.trans }
func (b *fakeBody) SetTransform(p spatialmath.Pose)     { b.trans = p }

func TestSetDesiredValidatesDOFCount(t *testing.T) {
	body := newFakeBody(3)
	log := logging.NewTestLogger(t)
	c := NewController(log, body, []int{0, 1}, false)

	err := c.SetDesired([]float64{1, 2, 3})
	test.That(t, err, test.ShouldNotBeNil)

	err = c.SetDesired([]float64{1, 2})
	test.That(t, err, test.ShouldBeNil)
}

func TestSimulationStepAppliesSetpointInstantaneouslyByDefault(t *testing.T) {
	body := newFakeBody(3)
	log := logging.NewTestLogger(t)
	c := NewController(log, body, []int{0, 2}, false)

	test.That(t, c.SetDesired([]float64{5, -3}), test.ShouldBeNil)
	c.SimulationStep(0.01)

	test.That(t, c.Done(), test.ShouldBeTrue)
	test.That(t, body.values[0], test.ShouldEqual, 5)
	test.That(t, body.values[2], test.ShouldEqual, -3)
	test.That(t, body.values[1], test.ShouldEqual, 0)
}

func TestSimulationStepRespectsVelocityLimit(t *testing.T) {
	body := newFakeBody(1)
	log := logging.NewTestLogger(t)
	c := NewController(log, body, []int{0}, false)
	c.SetLimits(Limits{MaxVel: 1, MaxAcc: math.Inf(1)})

	test.That(t, c.SetDesired([]float64{10}), test.ShouldBeNil)
	c.SimulationStep(1.0)

	test.That(t, body.values[0], test.ShouldEqual, 1)
	test.That(t, c.Done(), test.ShouldBeTrue)
}

func TestSetPathRejectedWhilePaused(t *testing.T) {
	body := newFakeBody(1)
	log := logging.NewTestLogger(t)
	c := NewController(log, body, []int{0}, false)
	c.Pause()

	err := c.SetPath(&Trajectory{Times: []float64{0, 1}, Q: [][]float64{{0}, {1}}})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSimulationStepFollowsTrajectoryToCompletion(t *testing.T) {
	body := newFakeBody(1)
	log := logging.NewTestLogger(t)
	c := NewController(log, body, []int{0}, false)

	traj := &Trajectory{Times: []float64{0, 1, 2}, Q: [][]float64{{0}, {1}, {2}}}
	test.That(t, c.SetPath(traj), test.ShouldBeNil)

	for i := 0; i < 25; i++ {
		c.SimulationStep(0.1)
	}
	test.That(t, c.Done(), test.ShouldBeTrue)
	test.That(t, math.Abs(body.values[0]-2), test.ShouldBeLessThan, 1e-9)
}

func TestResetReturnsToIdle(t *testing.T) {
	body := newFakeBody(1)
	log := logging.NewTestLogger(t)
	c := NewController(log, body, []int{0}, false)
	test.That(t, c.SetDesired([]float64{4}), test.ShouldBeNil)
	c.Reset()
	test.That(t, c.phase, test.ShouldEqual, idlePhase)
	test.That(t, c.Done(), test.ShouldBeFalse)
}
