package physics2d

/// Motor joint definition.
type MotorJointDef struct {
	JointDef

	/// Position of bodyB minus the position of bodyA, in bodyA's frame, in meters.
	LinearOffset Vec2

	/// The bodyB angle minus bodyA angle in radians.
	AngularOffset float64

	/// The maximum motor force in N.
	MaxForce float64

	/// The maximum motor torque in N-m.
	MaxTorque float64

	/// Position correction factor in the range [0,1].
	CorrectionFactor float64
}

func MakeMotorJointDef() MotorJointDef {
	res := MotorJointDef{}
	res.Type = JointMotor
	res.LinearOffset.SetZero()
	res.AngularOffset = 0.0
	res.MaxForce = 1.0
	res.MaxTorque = 1.0
	res.CorrectionFactor = 0.3
	return res
}

/// A motor joint is used to control the relative motion
/// between two bodies. A typical usage is to control the movement
/// of a dynamic body with respect to the ground.
type MotorJoint struct {
	*Joint

	// Solver shared
	LinearOffset     Vec2
	AngularOffset    float64
	LinearImpulse    Vec2
	AngularImpulse   float64
	MaxForce         float64
	MaxTorque        float64
	CorrectionFactor float64

	// Solver temp
	IndexA       int
	IndexB       int
	RA           Vec2
	RB           Vec2
	LocalCenterA Vec2
	LocalCenterB Vec2
	LinearError  Vec2
	AngularError float64
	InvMassA     float64
	InvMassB     float64
	InvIA        float64
	InvIB        float64
	LinearMass   Mat22
	AngularMass  float64
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

func (def *MotorJointDef) Initialize(bA *Body, bB *Body) {
	def.BodyA = bA
	def.BodyB = bB
	xB := def.BodyB.GetPosition()
	def.LinearOffset = def.BodyA.GetLocalPoint(xB)

	angleA := def.BodyA.GetAngle()
	angleB := def.BodyB.GetAngle()
	def.AngularOffset = angleB - angleA
}

func MakeMotorJoint(def *MotorJointDef) *MotorJoint {

	res := MotorJoint{
		Joint: MakeJoint(def),
	}

	res.LinearOffset = def.LinearOffset
	res.AngularOffset = def.AngularOffset

	res.LinearImpulse.SetZero()
	res.AngularImpulse = 0.0

	res.MaxForce = def.MaxForce
	res.MaxTorque = def.MaxTorque
	res.CorrectionFactor = def.CorrectionFactor

	return &res
}

func (joint *MotorJoint) InitVelocityConstraints(data SolverData) {
	joint.IndexA = joint.BodyA.IslandIndex
	joint.IndexB = joint.BodyB.IslandIndex
	joint.LocalCenterA = joint.BodyA.Sweep.LocalCenter
	joint.LocalCenterB = joint.BodyB.Sweep.LocalCenter
	joint.InvMassA = joint.BodyA.InvMass
	joint.InvMassB = joint.BodyB.InvMass
	joint.InvIA = joint.BodyA.InvI
	joint.InvIB = joint.BodyB.InvI

	cA := data.Positions[joint.IndexA].C
	aA := data.Positions[joint.IndexA].A
	vA := data.Velocities[joint.IndexA].V
	wA := data.Velocities[joint.IndexA].W

	cB := data.Positions[joint.IndexB].C
	aB := data.Positions[joint.IndexB].A
	vB := data.Velocities[joint.IndexB].V
	wB := data.Velocities[joint.IndexB].W

	qA := MakeRotFromAngle(aA)
	qB := MakeRotFromAngle(aB)

	// Compute the effective mass matrix.
	joint.RA = RotVec2Mul(qA, joint.LocalCenterA.Neg())
	joint.RB = RotVec2Mul(qB, joint.LocalCenterB.Neg())

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

	joint.LinearError = Vec2Sub(Vec2Sub(Vec2Sub(Vec2Add(cB, joint.RB), cA), joint.RA), RotVec2Mul(qA, joint.LinearOffset))
	joint.AngularError = aB - aA - joint.AngularOffset

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

func (joint *MotorJoint) SolveVelocityConstraints(data SolverData) {
	vA := data.Velocities[joint.IndexA].V
	wA := data.Velocities[joint.IndexA].W
	vB := data.Velocities[joint.IndexB].V
	wB := data.Velocities[joint.IndexB].W

	mA := joint.InvMassA
	mB := joint.InvMassB
	iA := joint.InvIA
	iB := joint.InvIB

	h := data.Step.Dt
	inv_h := data.Step.Inv_dt

	// Solve angular friction
	{
		Cdot := wB - wA + inv_h*joint.CorrectionFactor*joint.AngularError
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
		Cdot := Vec2Add(Vec2Sub(Vec2Sub(Vec2Add(vB, Vec2CrossScalarVector(wB, joint.RB)), vA), Vec2CrossScalarVector(wA, joint.RA)), Vec2MulScalar(inv_h*joint.CorrectionFactor, joint.LinearError))

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

func (joint *MotorJoint) SolvePositionConstraints(data SolverData) bool {
	return true
}

func (joint MotorJoint) GetAnchorA() Vec2 {
	return joint.BodyA.GetPosition()
}

func (joint MotorJoint) GetAnchorB() Vec2 {
	return joint.BodyB.GetPosition()
}

func (joint MotorJoint) GetReactionForce(inv_dt float64) Vec2 {
	return Vec2MulScalar(inv_dt, joint.LinearImpulse)
}

func (joint MotorJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.AngularImpulse
}

func (joint *MotorJoint) SetMaxForce(force float64) {
	Assert(IsValid(force) && force >= 0.0)
	joint.MaxForce = force
}

func (joint MotorJoint) GetMaxForce() float64 {
	return joint.MaxForce
}

func (joint *MotorJoint) SetMaxTorque(torque float64) {
	Assert(IsValid(torque) && torque >= 0.0)
	joint.MaxTorque = torque
}

func (joint MotorJoint) GetMaxTorque() float64 {
	return joint.MaxTorque
}

func (joint *MotorJoint) SetCorrectionFactor(factor float64) {
	Assert(IsValid(factor) && 0.0 <= factor && factor <= 1.0)
	joint.CorrectionFactor = factor
}

func (joint MotorJoint) GetCorrectionFactor() float64 {
	return joint.CorrectionFactor
}

func (joint *MotorJoint) SetLinearOffset(linearOffset Vec2) {
	if linearOffset.X != joint.LinearOffset.X || linearOffset.Y != joint.LinearOffset.Y {
		joint.BodyA.SetAwake(true)
		joint.BodyB.SetAwake(true)
		joint.LinearOffset = linearOffset
	}
}

func (joint MotorJoint) GetLinearOffset() Vec2 {
	return joint.LinearOffset
}

func (joint *MotorJoint) SetAngularOffset(angularOffset float64) {
	if angularOffset != joint.AngularOffset {
		joint.BodyA.SetAwake(true)
		joint.BodyB.SetAwake(true)
		joint.AngularOffset = angularOffset
	}
}

func (joint MotorJoint) GetAngularOffset() float64 {
	return joint.AngularOffset
}

// Dump is intentionally a no-op: scene serialization is out of
// scope for this package (see the world persistence discussion in
// DESIGN.md).
func (joint *MotorJoint) Dump() {}

