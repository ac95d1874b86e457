package physics2d

/// Friction joint definition.
type FrictionJointDef struct {
	JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB Vec2

	/// The maximum friction force in N.
	MaxForce float64

	/// The maximum friction torque in N-m.
	MaxTorque float64
}

func MakeFrictionJointDef() FrictionJointDef {
	res := FrictionJointDef{
		JointDef: MakeJointDef(),
	}

	res.Type = JointFriction
	res.LocalAnchorA.SetZero()
	res.LocalAnchorB.SetZero()
	res.MaxForce = 0.0
	res.MaxTorque = 0.0

	return res
}

/// Friction joint. This is used for top-down friction.
/// It provides 2D translational friction and angular friction.
type FrictionJoint struct {
	*Joint

	LocalAnchorA Vec2
	LocalAnchorB Vec2

	// Solver shared
	LinearImpulse  Vec2
	AngularImpulse float64
	MaxForce       float64
	MaxTorque      float64

	// Solver temp
	IndexA       int
	IndexB       int
	RA           Vec2
	RB           Vec2
	LocalCenterA Vec2
	LocalCenterB Vec2
	InvMassA     float64
	InvMassB     float64
	InvIA        float64
	InvIB        float64
	LinearMass   Mat22
	AngularMass  float64
}

/// The local anchor point relative to bodyA's origin.
func (joint FrictionJoint) GetLocalAnchorA() Vec2 {
	return joint.LocalAnchorA
}

/// The local anchor point relative to bodyB's origin.
func (joint FrictionJoint) GetLocalAnchorB() Vec2 {
	return joint.LocalAnchorB
}

// Point-to-point constraint
// Cdot = v2 - v1
//      = v2 + cross(w2, r2) - v1 - cross(w1, r1)
// J = [-I -r1_skew I r2_skew ]
// Identity used:
// w k % (rx i + ry j) = w * (-ry i + rx j)

// Angle constraint
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
// K = invI1 + invI2

func (joint *FrictionJointDef) Initialize(bA *Body, bB *Body, anchor Vec2) {
	joint.BodyA = bA
	joint.BodyB = bB
	joint.LocalAnchorA = joint.BodyA.GetLocalPoint(anchor)
	joint.LocalAnchorB = joint.BodyB.GetLocalPoint(anchor)
}

func MakeFrictionJoint(def *FrictionJointDef) *FrictionJoint {
	res := FrictionJoint{
		Joint: MakeJoint(def),
	}

	res.LocalAnchorA = def.LocalAnchorA
	res.LocalAnchorB = def.LocalAnchorB

	res.LinearImpulse.SetZero()
	res.AngularImpulse = 0.0

	res.MaxForce = def.MaxForce
	res.MaxTorque = def.MaxTorque

	return &res
}

func (joint *FrictionJoint) InitVelocityConstraints(data SolverData) {

	joint.IndexA = joint.BodyA.IslandIndex
	joint.IndexB = joint.BodyB.IslandIndex
	joint.LocalCenterA = joint.BodyA.Sweep.LocalCenter
	joint.LocalCenterB = joint.BodyB.Sweep.LocalCenter
	joint.InvMassA = joint.BodyA.InvMass
	joint.InvMassB = joint.BodyB.InvMass
	joint.InvIA = joint.BodyA.InvI
	joint.InvIB = joint.BodyB.InvI

	aA := data.Positions[joint.IndexA].A
	vA := data.Velocities[joint.IndexA].V
	wA := data.Velocities[joint.IndexA].W

	aB := data.Positions[joint.IndexB].A
	vB := data.Velocities[joint.IndexB].V
	wB := data.Velocities[joint.IndexB].W

	qA := MakeRotFromAngle(aA)
	qB := MakeRotFromAngle(aB)

	// Compute the effective mass matrix.
	joint.RA = RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.LocalCenterA))
	joint.RB = RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.LocalCenterB))

	// J = [-I -r1_skew I r2_skew]
	//     [ 0       -1 0       1]
	// r_skew = [-ry; rx]

	// Matlab
	// K = [ mA+r1y^2*iA+mB+r2y^2*iB,  -r1y*iA*r1x-r2y*iB*r2x,          -r1y*iA-r2y*iB]
	//     [  -r1y*iA*r1x-r2y*iB*r2x, mA+r1x^2*iA+mB+r2x^2*iB,           r1x*iA+r2x*iB]
	//     [          -r1y*iA-r2y*iB,           r1x*iA+r2x*iB,                   iA+iB]

	mA := joint.InvMassA
	mB := joint.InvMassB
	iA := joint.InvIA
	iB := joint.InvIB

	var K Mat22
	K.Ex.X = mA + mB + iA*joint.RA.Y*joint.RA.Y + iB*joint.RB.Y*joint.RB.Y
	K.Ex.Y = -iA*joint.RA.X*joint.RA.Y - iB*joint.RB.X*joint.RB.Y
	K.Ey.X = K.Ex.Y
	K.Ey.Y = mA + mB + iA*joint.RA.X*joint.RA.X + iB*joint.RB.X*joint.RB.X

	joint.LinearMass = K.GetInverse()

	joint.AngularMass = iA + iB
	if joint.AngularMass > 0.0 {
		joint.AngularMass = 1.0 / joint.AngularMass
	}

	if data.Step.WarmStarting {
		// Scale impulses to support a variable time step.
		joint.LinearImpulse.MulAssign(data.Step.DtRatio)
		joint.AngularImpulse *= data.Step.DtRatio

		P := MakeVec2(joint.LinearImpulse.X, joint.LinearImpulse.Y)
		applyImpulseAt(&vA, &wA, joint.RA, mA, iA, &vB, &wB, joint.RB, mB, iB, P)
		wA -= iA * joint.AngularImpulse
		wB += iB * joint.AngularImpulse
	} else {
		joint.LinearImpulse.SetZero()
		joint.AngularImpulse = 0.0
	}

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *FrictionJoint) SolveVelocityConstraints(data SolverData) {
	vA := data.Velocities[joint.IndexA].V
	wA := data.Velocities[joint.IndexA].W
	vB := data.Velocities[joint.IndexB].V
	wB := data.Velocities[joint.IndexB].W

	mA := joint.InvMassA
	mB := joint.InvMassB
	iA := joint.InvIA
	iB := joint.InvIB

	h := data.Step.Dt

	// Solve angular friction
	{
		Cdot := wB - wA
		impulse := -joint.AngularMass * Cdot

		oldImpulse := joint.AngularImpulse
		maxImpulse := h * joint.MaxTorque
		joint.AngularImpulse = FloatClamp(joint.AngularImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.AngularImpulse - oldImpulse

		wA -= iA * impulse
		wB += iB * impulse
	}

	// Solve linear friction
	{
		Cdot := Vec2Sub(Vec2Sub(Vec2Add(vB, Vec2CrossScalarVector(wB, joint.RB)), vA), Vec2CrossScalarVector(wA, joint.RA))

		impulse := Vec2Mat22Mul(joint.LinearMass, Cdot).Neg()
		oldImpulse := joint.LinearImpulse
		joint.LinearImpulse.AddAssign(impulse)

		maxImpulse := h * joint.MaxForce

		if joint.LinearImpulse.LengthSquared() > maxImpulse*maxImpulse {
			joint.LinearImpulse.Normalize()
			joint.LinearImpulse.MulAssign(maxImpulse)
		}

		impulse = Vec2Sub(joint.LinearImpulse, oldImpulse)

		applyImpulseAt(&vA, &wA, joint.RA, mA, iA, &vB, &wB, joint.RB, mB, iB, impulse)
	}

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *FrictionJoint) SolvePositionConstraints(data SolverData) bool {
	return true
}

func (joint FrictionJoint) GetAnchorA() Vec2 {
	return joint.BodyA.GetWorldPoint(joint.LocalAnchorA)
}

func (joint FrictionJoint) GetAnchorB() Vec2 {
	return joint.BodyB.GetWorldPoint(joint.LocalAnchorB)
}

func (joint FrictionJoint) GetReactionForce(inv_dt float64) Vec2 {
	return Vec2MulScalar(inv_dt, joint.LinearImpulse)
}

func (joint FrictionJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.AngularImpulse
}

func (joint *FrictionJoint) SetMaxForce(force float64) {
	Assert(IsValid(force) && force >= 0.0)
	joint.MaxForce = force
}

func (joint FrictionJoint) GetMaxForce() float64 {
	return joint.MaxForce
}

func (joint *FrictionJoint) SetMaxTorque(torque float64) {
	Assert(IsValid(torque) && torque >= 0.0)
	joint.MaxTorque = torque
}

func (joint FrictionJoint) GetMaxTorque() float64 {
	return joint.MaxTorque
}

// Dump is intentionally a no-op: scene serialization is out of
// scope for this package (see the world persistence discussion in
// DESIGN.md).
func (joint *FrictionJoint) Dump() {}

