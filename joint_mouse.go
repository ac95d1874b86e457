package physics2d

/// Mouse joint definition. This requires a world target point,
/// tuning parameters, and the time step.
type MouseJointDef struct {
	JointDef

	/// The initial world target point. This is assumed
	/// to coincide with the body anchor initially.
	Target Vec2

	/// The maximum constraint force that can be exerted
	/// to move the candidate body. Usually you will express
	/// as some multiple of the weight (multiplier * mass * gravity).
	MaxForce float64

	/// The response speed.
	FrequencyHz float64

	/// The damping ratio. 0 = no damping, 1 = critical damping.
	DampingRatio float64
}

func MakeMouseJointDef() MouseJointDef {
	res := MouseJointDef{
		JointDef: MakeJointDef(),
	}

	res.Type = JointMouse
	res.Target.Set(0.0, 0.0)
	res.MaxForce = 0.0
	res.FrequencyHz = 5.0
	res.DampingRatio = 0.7

	return res
}

/// A mouse joint is used to make a point on a body track a
/// specified world point. This a soft constraint with a maximum
/// force. This allows the constraint to stretch and without
/// applying huge forces.
/// NOTE: this joint is not documented in the manual because it was
/// developed to be used in the testbed. If you want to learn how to
/// use the mouse joint, look at the testbed.
type MouseJoint struct {
	*Joint

	LocalAnchorB Vec2
	TargetA      Vec2
	FrequencyHz  float64
	DampingRatio float64
	Beta         float64

	// Solver shared
	Impulse  Vec2
	MaxForce float64
	Gamma    float64

	// Solver temp
	IndexA       int
	IndexB       int
	RB           Vec2
	LocalCenterB Vec2
	InvMassB     float64
	InvIB        float64
	Mass         Mat22
	C            Vec2
}

/// The mouse joint does not support dumping.
// Dump is intentionally a no-op: scene serialization is out of
// scope for this package (see the world persistence discussion in
// DESIGN.md).
func (def *MouseJoint) Dump() {}


// p = attached point, m = mouse point
// C = p - m
// Cdot = v
//      = v + cross(w, r)
// J = [I r_skew]
// Identity used:
// w k % (rx i + ry j) = w * (-ry i + rx j)

func MakeMouseJoint(def *MouseJointDef) *MouseJoint {
	res := MouseJoint{
		Joint: MakeJoint(def),
	}

	Assert(def.Target.IsValid())
	Assert(IsValid(def.MaxForce) && def.MaxForce >= 0.0)
	Assert(IsValid(def.FrequencyHz) && def.FrequencyHz >= 0.0)
	Assert(IsValid(def.DampingRatio) && def.DampingRatio >= 0.0)

	res.TargetA = def.Target
	res.LocalAnchorB = TransformVec2MulT(res.BodyB.GetTransform(), res.TargetA)

	res.MaxForce = def.MaxForce
	res.Impulse.SetZero()

	res.FrequencyHz = def.FrequencyHz
	res.DampingRatio = def.DampingRatio

	res.Beta = 0.0
	res.Gamma = 0.0

	return &res
}

func (joint *MouseJoint) SetTarget(target Vec2) {
	if target != joint.TargetA {
		joint.BodyB.SetAwake(true)
		joint.TargetA = target
	}
}

func (joint MouseJoint) GetTarget() Vec2 {
	return joint.TargetA
}

func (joint *MouseJoint) SetMaxForce(force float64) {
	joint.MaxForce = force
}

func (joint MouseJoint) GetMaxForce() float64 {
	return joint.MaxForce
}

func (joint *MouseJoint) SetFrequency(hz float64) {
	joint.FrequencyHz = hz
}

func (joint MouseJoint) GetFrequency() float64 {
	return joint.FrequencyHz
}

func (joint *MouseJoint) SetDampingRatio(ratio float64) {
	joint.DampingRatio = ratio
}

func (joint MouseJoint) GetDampingRatio() float64 {
	return joint.DampingRatio
}

func (joint *MouseJoint) InitVelocityConstraints(data SolverData) {
	joint.IndexB = joint.BodyB.IslandIndex
	joint.LocalCenterB = joint.BodyB.Sweep.LocalCenter
	joint.InvMassB = joint.BodyB.InvMass
	joint.InvIB = joint.BodyB.InvI

	cB := data.Positions[joint.IndexB].C
	aB := data.Positions[joint.IndexB].A
	vB := data.Velocities[joint.IndexB].V
	wB := data.Velocities[joint.IndexB].W

	qB := MakeRotFromAngle(aB)

	mass := joint.BodyB.GetMass()

	// Frequency
	omega := 2.0 * Pi * joint.FrequencyHz

	// Damping coefficient
	d := 2.0 * mass * joint.DampingRatio * omega

	// Spring stiffness
	k := mass * (omega * omega)

	// magic formulas
	// gamma has units of inverse mass.
	// beta has units of inverse time.
	h := data.Step.Dt
	Assert(d+h*k > Epsilon)
	joint.Gamma = h * (d + h*k)
	if joint.Gamma != 0.0 {
		joint.Gamma = 1.0 / joint.Gamma
	}
	joint.Beta = h * k * joint.Gamma

	// Compute the effective mass matrix.
	joint.RB = RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.LocalCenterB))

	// K    = [(1/m1 + 1/m2) * eye(2) - skew(r1) * invI1 * skew(r1) - skew(r2) * invI2 * skew(r2)]
	//      = [1/m1+1/m2     0    ] + invI1 * [r1.y*r1.y -r1.x*r1.y] + invI2 * [r1.y*r1.y -r1.x*r1.y]
	//        [    0     1/m1+1/m2]           [-r1.x*r1.y r1.x*r1.x]           [-r1.x*r1.y r1.x*r1.x]
	var K Mat22
	K.Ex.X = joint.InvMassB + joint.InvIB*joint.RB.Y*joint.RB.Y + joint.Gamma
	K.Ex.Y = -joint.InvIB * joint.RB.X * joint.RB.Y
	K.Ey.X = K.Ex.Y
	K.Ey.Y = joint.InvMassB + joint.InvIB*joint.RB.X*joint.RB.X + joint.Gamma

	joint.Mass = K.GetInverse()

	joint.C = Vec2Sub(Vec2Add(cB, joint.RB), joint.TargetA)
	joint.C.MulAssign(joint.Beta)

	// Cheat with some damping
	wB *= 0.98

	if data.Step.WarmStarting {
		joint.Impulse.MulAssign(data.Step.DtRatio)
		vB.AddAssign(Vec2MulScalar(joint.InvMassB, joint.Impulse))
		wB += joint.InvIB * Vec2Cross(joint.RB, joint.Impulse)
	} else {
		joint.Impulse.SetZero()
	}

	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *MouseJoint) SolveVelocityConstraints(data SolverData) {

	vB := data.Velocities[joint.IndexB].V
	wB := data.Velocities[joint.IndexB].W

	// Cdot = v + cross(w, r)
	Cdot := Vec2Add(vB, Vec2CrossScalarVector(wB, joint.RB))
	impulse := Vec2Mat22Mul(joint.Mass, (Vec2Add(Vec2Add(Cdot, joint.C), Vec2MulScalar(joint.Gamma, joint.Impulse))).Neg())

	oldImpulse := joint.Impulse
	joint.Impulse.AddAssign(impulse)
	maxImpulse := data.Step.Dt * joint.MaxForce
	if joint.Impulse.LengthSquared() > maxImpulse*maxImpulse {
		joint.Impulse.MulAssign(maxImpulse / joint.Impulse.Length())
	}
	impulse = Vec2Sub(joint.Impulse, oldImpulse)

	vB.AddAssign(Vec2MulScalar(joint.InvMassB, impulse))
	wB += joint.InvIB * Vec2Cross(joint.RB, impulse)

	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *MouseJoint) SolvePositionConstraints(data SolverData) bool {
	return true
}

func (joint MouseJoint) GetAnchorA() Vec2 {
	return joint.TargetA
}

func (joint MouseJoint) GetAnchorB() Vec2 {
	return joint.BodyB.GetWorldPoint(joint.LocalAnchorB)
}

func (joint MouseJoint) GetReactionForce(inv_dt float64) Vec2 {
	return Vec2MulScalar(inv_dt, joint.Impulse)
}

func (joint MouseJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * 0.0
}

func (joint *MouseJoint) ShiftOrigin(newOrigin Vec2) {
	joint.TargetA.SubAssign(newOrigin)
}
