package physics2d

import "math"

/// Wheel joint definition. This requires defining a line of
/// motion using an axis and an anchor point. The definition uses local
/// anchor points and a local axis so that the initial configuration
/// can violate the constraint slightly. The joint translation is zero
/// when the local anchor points coincide in world space. Using local
/// anchors and a local axis helps when saving and loading a game.
type WheelJointDef struct {
	JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB Vec2

	/// The local translation axis in bodyA.
	LocalAxisA Vec2

	/// Enable/disable the joint motor.
	EnableMotor bool

	/// The maximum motor torque, usually in N-m.
	MaxMotorTorque float64

	/// The desired motor speed in radians per second.
	MotorSpeed float64

	/// Suspension frequency, zero indicates no suspension
	FrequencyHz float64

	/// Suspension damping ratio, one indicates critical damping
	DampingRatio float64
}

func MakeWheelJointDef() WheelJointDef {
	res := WheelJointDef{
		JointDef: MakeJointDef(),
	}

	res.Type = JointWheel
	res.LocalAnchorA.SetZero()
	res.LocalAnchorB.SetZero()
	res.LocalAxisA.Set(1.0, 0.0)
	res.EnableMotor = false
	res.MaxMotorTorque = 0.0
	res.MotorSpeed = 0.0
	res.FrequencyHz = 2.0
	res.DampingRatio = 0.7

	return res
}

/// A wheel joint. This joint provides two degrees of freedom: translation
/// along an axis fixed in bodyA and rotation in the plane. In other words, it is a point to
/// line constraint with a rotational motor and a linear spring/damper.
/// This joint is designed for vehicle suspensions.
type WheelJoint struct {
	*Joint

	FrequencyHz  float64
	DampingRatio float64

	// Solver shared
	LocalAnchorA Vec2
	LocalAnchorB Vec2
	LocalXAxisA  Vec2
	LocalYAxisA  Vec2

	Impulse       float64
	MotorImpulse  float64
	SpringImpulse float64

	MaxMotorTorque float64
	MotorSpeed     float64
	enableMotor    bool

	// Solver temp
	IndexA       int
	IndexB       int
	LocalCenterA Vec2
	LocalCenterB Vec2
	InvMassA     float64
	InvMassB     float64
	InvIA        float64
	InvIB        float64

	Ax  Vec2
	Ay  Vec2
	SAx float64
	SBx float64
	SAy float64
	SBy float64

	Mass       float64
	MotorMass  float64
	SpringMass float64

	Bias  float64
	Gamma float64
}

/// The local anchor point relative to bodyA's origin.
func (joint WheelJoint) GetLocalAnchorA() Vec2 {
	return joint.LocalAnchorA
}

/// The local anchor point relative to bodyB's origin.
func (joint WheelJoint) GetLocalAnchorB() Vec2 {
	return joint.LocalAnchorB
}

/// The local joint axis relative to bodyA.
func (joint WheelJoint) GetLocalAxisA() Vec2 {
	return joint.LocalXAxisA
}

func (joint WheelJoint) GetMotorSpeed() float64 {
	return joint.MotorSpeed
}

func (joint WheelJoint) GetMaxMotorTorque() float64 {
	return joint.MaxMotorTorque
}

func (joint *WheelJoint) SetSpringFrequencyHz(hz float64) {
	joint.FrequencyHz = hz
}

func (joint WheelJoint) GetSpringFrequencyHz() float64 {
	return joint.FrequencyHz
}

func (joint *WheelJoint) SetSpringDampingRatio(ratio float64) {
	joint.DampingRatio = ratio
}

func (joint WheelJoint) GetSpringDampingRatio() float64 {
	return joint.DampingRatio
}

// Linear constraint (point-to-line)
// d = pB - pA = xB + rB - xA - rA
// C = dot(ay, d)
// Cdot = dot(d, cross(wA, ay)) + dot(ay, vB + cross(wB, rB) - vA - cross(wA, rA))
//      = -dot(ay, vA) - dot(cross(d + rA, ay), wA) + dot(ay, vB) + dot(cross(rB, ay), vB)
// J = [-ay, -cross(d + rA, ay), ay, cross(rB, ay)]

// Spring linear constraint
// C = dot(ax, d)
// Cdot = = -dot(ax, vA) - dot(cross(d + rA, ax), wA) + dot(ax, vB) + dot(cross(rB, ax), vB)
// J = [-ax -cross(d+rA, ax) ax cross(rB, ax)]

// Motor rotational constraint
// Cdot = wB - wA
// J = [0 0 -1 0 0 1]

func (def *WheelJointDef) Initialize(bA *Body, bB *Body, anchor Vec2, axis Vec2) {
	def.BodyA = bA
	def.BodyB = bB
	def.LocalAnchorA = def.BodyA.GetLocalPoint(anchor)
	def.LocalAnchorB = def.BodyB.GetLocalPoint(anchor)
	def.LocalAxisA = def.BodyA.GetLocalVector(axis)
}

func MakeWheelJoint(def *WheelJointDef) *WheelJoint {
	res := WheelJoint{
		Joint: MakeJoint(def),
	}

	res.LocalAnchorA = def.LocalAnchorA
	res.LocalAnchorB = def.LocalAnchorB
	res.LocalXAxisA = def.LocalAxisA
	res.LocalYAxisA = Vec2CrossScalarVector(1.0, res.LocalXAxisA)

	res.Mass = 0.0
	res.Impulse = 0.0
	res.MotorMass = 0.0
	res.MotorImpulse = 0.0
	res.SpringMass = 0.0
	res.SpringImpulse = 0.0

	res.MaxMotorTorque = def.MaxMotorTorque
	res.MotorSpeed = def.MotorSpeed
	res.enableMotor = def.EnableMotor

	res.FrequencyHz = def.FrequencyHz
	res.DampingRatio = def.DampingRatio

	res.Bias = 0.0
	res.Gamma = 0.0

	res.Ax.SetZero()
	res.Ay.SetZero()

	return &res
}

func (joint *WheelJoint) InitVelocityConstraints(data SolverData) {

	joint.IndexA = joint.BodyA.IslandIndex
	joint.IndexB = joint.BodyB.IslandIndex
	joint.LocalCenterA = joint.BodyA.Sweep.LocalCenter
	joint.LocalCenterB = joint.BodyB.Sweep.LocalCenter
	joint.InvMassA = joint.BodyA.InvMass
	joint.InvMassB = joint.BodyB.InvMass
	joint.InvIA = joint.BodyA.InvI
	joint.InvIB = joint.BodyB.InvI

	mA := joint.InvMassA
	mB := joint.InvMassB
	iA := joint.InvIA
	iB := joint.InvIB

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

	// Compute the effective masses.
	rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.LocalCenterA))
	rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.LocalCenterB))
	d := Vec2Sub(Vec2Sub(Vec2Add(cB, rB), cA), rA)

	// Point to line constraint
	{
		joint.Ay = RotVec2Mul(qA, joint.LocalYAxisA)
		joint.SAy = Vec2Cross(Vec2Add(d, rA), joint.Ay)
		joint.SBy = Vec2Cross(rB, joint.Ay)

		joint.Mass = mA + mB + iA*joint.SAy*joint.SAy + iB*joint.SBy*joint.SBy

		if joint.Mass > 0.0 {
			joint.Mass = 1.0 / joint.Mass
		}
	}

	// Spring constraint
	joint.SpringMass = 0.0
	joint.Bias = 0.0
	joint.Gamma = 0.0
	if joint.FrequencyHz > 0.0 {
		joint.Ax = RotVec2Mul(qA, joint.LocalXAxisA)
		joint.SAx = Vec2Cross(Vec2Add(d, rA), joint.Ax)
		joint.SBx = Vec2Cross(rB, joint.Ax)

		invMass := mA + mB + iA*joint.SAx*joint.SAx + iB*joint.SBx*joint.SBx

		if invMass > 0.0 {
			joint.SpringMass = 1.0 / invMass

			C := Vec2Dot(d, joint.Ax)

			// Frequency
			omega := 2.0 * Pi * joint.FrequencyHz

			// Damping coefficient
			damp := 2.0 * joint.SpringMass * joint.DampingRatio * omega

			// Spring stiffness
			k := joint.SpringMass * omega * omega

			// magic formulas
			h := data.Step.Dt
			joint.Gamma = h * (damp + h*k)
			if joint.Gamma > 0.0 {
				joint.Gamma = 1.0 / joint.Gamma
			}

			joint.Bias = C * h * k * joint.Gamma

			joint.SpringMass = invMass + joint.Gamma
			if joint.SpringMass > 0.0 {
				joint.SpringMass = 1.0 / joint.SpringMass
			}
		}
	} else {
		joint.SpringImpulse = 0.0
	}

	// Rotational motor
	if joint.enableMotor {
		joint.MotorMass = iA + iB
		if joint.MotorMass > 0.0 {
			joint.MotorMass = 1.0 / joint.MotorMass
		}
	} else {
		joint.MotorMass = 0.0
		joint.MotorImpulse = 0.0
	}

	if data.Step.WarmStarting {
		// Account for variable time step.
		joint.Impulse *= data.Step.DtRatio
		joint.SpringImpulse *= data.Step.DtRatio
		joint.MotorImpulse *= data.Step.DtRatio

		P := Vec2Add(Vec2MulScalar(joint.Impulse, joint.Ay), Vec2MulScalar(joint.SpringImpulse, joint.Ax))
		LA := joint.Impulse*joint.SAy + joint.SpringImpulse*joint.SAx + joint.MotorImpulse
		LB := joint.Impulse*joint.SBy + joint.SpringImpulse*joint.SBx + joint.MotorImpulse

		vA.SubAssign(Vec2MulScalar(joint.InvMassA, P))
		wA -= joint.InvIA * LA

		vB.AddAssign(Vec2MulScalar(joint.InvMassB, P))
		wB += joint.InvIB * LB
	} else {
		joint.Impulse = 0.0
		joint.SpringImpulse = 0.0
		joint.MotorImpulse = 0.0
	}

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *WheelJoint) SolveVelocityConstraints(data SolverData) {
	mA := joint.InvMassA
	mB := joint.InvMassB
	iA := joint.InvIA
	iB := joint.InvIB

	vA := data.Velocities[joint.IndexA].V
	wA := data.Velocities[joint.IndexA].W
	vB := data.Velocities[joint.IndexB].V
	wB := data.Velocities[joint.IndexB].W

	// Solve spring constraint
	{
		Cdot := Vec2Dot(joint.Ax, Vec2Sub(vB, vA)) + joint.SBx*wB - joint.SAx*wA
		impulse := -joint.SpringMass * (Cdot + joint.Bias + joint.Gamma*joint.SpringImpulse)
		joint.SpringImpulse += impulse

		P := Vec2MulScalar(impulse, joint.Ax)
		applyAxialImpulse(&vA, &wA, mA, iA, impulse*joint.SAx, &vB, &wB, mB, iB, impulse*joint.SBx, P)
	}

	// Solve rotational motor constraint
	{
		Cdot := wB - wA - joint.MotorSpeed
		impulse := -joint.MotorMass * Cdot

		oldImpulse := joint.MotorImpulse
		maxImpulse := data.Step.Dt * joint.MaxMotorTorque
		joint.MotorImpulse = FloatClamp(joint.MotorImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.MotorImpulse - oldImpulse

		wA -= iA * impulse
		wB += iB * impulse
	}

	// Solve point to line constraint
	{
		Cdot := Vec2Dot(joint.Ay, Vec2Sub(vB, vA)) + joint.SBy*wB - joint.SAy*wA
		impulse := -joint.Mass * Cdot
		joint.Impulse += impulse

		P := Vec2MulScalar(impulse, joint.Ay)
		applyAxialImpulse(&vA, &wA, mA, iA, impulse*joint.SAy, &vB, &wB, mB, iB, impulse*joint.SBy, P)
	}

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *WheelJoint) SolvePositionConstraints(data SolverData) bool {
	cA := data.Positions[joint.IndexA].C
	aA := data.Positions[joint.IndexA].A
	cB := data.Positions[joint.IndexB].C
	aB := data.Positions[joint.IndexB].A

	qA := MakeRotFromAngle(aA)
	qB := MakeRotFromAngle(aB)

	rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.LocalCenterA))
	rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.LocalCenterB))
	d := Vec2Sub(Vec2Add(Vec2Sub(cB, cA), rB), rA)

	ay := RotVec2Mul(qA, joint.LocalYAxisA)

	sAy := Vec2Cross(Vec2Add(d, rA), ay)
	sBy := Vec2Cross(rB, ay)

	C := Vec2Dot(d, ay)

	k := joint.InvMassA + joint.InvMassB + joint.InvIA*joint.SAy*joint.SAy + joint.InvIB*joint.SBy*joint.SBy

	impulse := 0.0
	if k != 0.0 {
		impulse = -C / k
	} else {
		impulse = 0.0
	}

	P := Vec2MulScalar(impulse, ay)
	LA := impulse * sAy
	LB := impulse * sBy

	cA.SubAssign(Vec2MulScalar(joint.InvMassA, P))
	aA -= joint.InvIA * LA
	cB.AddAssign(Vec2MulScalar(joint.InvMassB, P))
	aB += joint.InvIB * LB

	data.Positions[joint.IndexA].C = cA
	data.Positions[joint.IndexA].A = aA
	data.Positions[joint.IndexB].C = cB
	data.Positions[joint.IndexB].A = aB

	return math.Abs(C) <= LinearSlop
}

func (joint WheelJoint) GetAnchorA() Vec2 {
	return joint.BodyA.GetWorldPoint(joint.LocalAnchorA)
}

func (joint WheelJoint) GetAnchorB() Vec2 {
	return joint.BodyB.GetWorldPoint(joint.LocalAnchorB)
}

func (joint WheelJoint) GetReactionForce(inv_dt float64) Vec2 {
	return Vec2MulScalar(inv_dt, Vec2Add(Vec2MulScalar(joint.Impulse, joint.Ay), Vec2MulScalar(joint.SpringImpulse, joint.Ax)))
}

func (joint WheelJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.MotorImpulse
}

func (joint WheelJoint) GetJointTranslation() float64 {
	bA := joint.BodyA
	bB := joint.BodyB

	pA := bA.GetWorldPoint(joint.LocalAnchorA)
	pB := bB.GetWorldPoint(joint.LocalAnchorB)
	d := Vec2Sub(pB, pA)
	axis := bA.GetWorldVector(joint.LocalXAxisA)

	translation := Vec2Dot(d, axis)
	return translation
}

func (joint WheelJoint) GetJointLinearSpeed() float64 {
	bA := joint.BodyA
	bB := joint.BodyB

	rA := RotVec2Mul(bA.Xf.Q, Vec2Sub(joint.LocalAnchorA, bA.Sweep.LocalCenter))
	rB := RotVec2Mul(bB.Xf.Q, Vec2Sub(joint.LocalAnchorB, bB.Sweep.LocalCenter))
	p1 := Vec2Add(bA.Sweep.C, rA)
	p2 := Vec2Add(bB.Sweep.C, rB)
	d := Vec2Sub(p2, p1)
	axis := RotVec2Mul(bA.Xf.Q, joint.LocalXAxisA)

	vA := bA.LinearVelocity
	vB := bB.LinearVelocity
	wA := bA.AngularVelocity
	wB := bB.AngularVelocity

	speed := Vec2Dot(d, Vec2CrossScalarVector(wA, axis)) + Vec2Dot(axis, Vec2Sub(Vec2Sub(Vec2Add(vB, Vec2CrossScalarVector(wB, rB)), vA), Vec2CrossScalarVector(wA, rA)))
	return speed
}

func (joint WheelJoint) GetJointAngle() float64 {
	bA := joint.BodyA
	bB := joint.BodyB
	return bB.Sweep.A - bA.Sweep.A
}

func (joint WheelJoint) GetJointAngularSpeed() float64 {
	wA := joint.BodyA.AngularVelocity
	wB := joint.BodyB.AngularVelocity
	return wB - wA
}

func (joint WheelJoint) IsMotorEnabled() bool {
	return joint.enableMotor
}

func (joint *WheelJoint) EnableMotor(flag bool) {
	if flag != joint.enableMotor {
		joint.BodyA.SetAwake(true)
		joint.BodyB.SetAwake(true)
		joint.enableMotor = flag
	}
}

func (joint *WheelJoint) SetMotorSpeed(speed float64) {
	if speed != joint.MotorSpeed {
		joint.BodyA.SetAwake(true)
		joint.BodyB.SetAwake(true)
		joint.MotorSpeed = speed
	}
}

func (joint *WheelJoint) SetMaxMotorTorque(torque float64) {
	if torque != joint.MaxMotorTorque {
		joint.BodyA.SetAwake(true)
		joint.BodyB.SetAwake(true)
		joint.MaxMotorTorque = torque
	}
}

func (joint WheelJoint) GetMotorTorque(inv_dt float64) float64 {
	return inv_dt * joint.MotorImpulse
}

// Dump is intentionally a no-op: scene serialization is out of
// scope for this package (see the world persistence discussion in
// DESIGN.md).
func (joint *WheelJoint) Dump() {}

