package physics2d

import "math"

/// Weld joint definition. You need to specify local anchor points
/// where they are attached and the relative body angle. The position
/// of the anchor points is important for computing the reaction torque.
type WeldJointDef struct {
	JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB Vec2

	/// The bodyB angle minus bodyA angle in the reference state (radians).
	ReferenceAngle float64

	/// The mass-spring-damper frequency in Hertz. Rotation only.
	/// Disable softness with a value of 0.
	FrequencyHz float64

	/// The damping ratio. 0 = no damping, 1 = critical damping.
	DampingRatio float64
}

func MakeWeldJointDef() WeldJointDef {
	res := WeldJointDef{
		JointDef: MakeJointDef(),
	}

	res.Type = JointWeld
	res.LocalAnchorA.Set(0.0, 0.0)
	res.LocalAnchorB.Set(0.0, 0.0)
	res.ReferenceAngle = 0.0
	res.FrequencyHz = 0.0
	res.DampingRatio = 0.0

	return res
}

/// A weld joint essentially glues two bodies together. A weld joint may
/// distort somewhat because the island constraint solver is approximate.
type WeldJoint struct {
	*Joint

	FrequencyHz  float64
	DampingRatio float64
	Bias         float64

	// Solver shared
	LocalAnchorA   Vec2
	LocalAnchorB   Vec2
	ReferenceAngle float64
	Gamma          float64
	Impulse        Vec3

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
	Mass         Mat33
}

/// The local anchor point relative to bodyA's origin.
func (joint WeldJoint) GetLocalAnchorA() Vec2 {
	return joint.LocalAnchorA
}

/// The local anchor point relative to bodyB's origin.
func (joint WeldJoint) GetLocalAnchorB() Vec2 {
	return joint.LocalAnchorB
}

/// Get the reference angle.
func (joint WeldJoint) GetReferenceAngle() float64 {
	return joint.ReferenceAngle
}

/// Set/get frequency in Hz.
func (joint *WeldJoint) SetFrequency(hz float64) {
	joint.FrequencyHz = hz
}

func (joint WeldJoint) GetFrequency() float64 {
	return joint.FrequencyHz
}

/// Set/get damping ratio.
func (joint *WeldJoint) SetDampingRatio(ratio float64) {
	joint.DampingRatio = ratio
}

func (joint WeldJoint) GetDampingRatio() float64 {
	return joint.DampingRatio
}

// // Point-to-point constraint
// // C = p2 - p1
// // Cdot = v2 - v1
// //      = v2 + cross(w2, r2) - v1 - cross(w1, r1)
// // J = [-I -r1_skew I r2_skew ]
// // Identity used:
// // w k % (rx i + ry j) = w * (-ry i + rx j)

// // Angle constraint
// // C = angle2 - angle1 - referenceAngle
// // Cdot = w2 - w1
// // J = [0 0 -1 0 0 1]
// // K = invI1 + invI2

func (def *WeldJointDef) Initialize(bA *Body, bB *Body, anchor Vec2) {
	def.BodyA = bA
	def.BodyB = bB
	def.LocalAnchorA = def.BodyA.GetLocalPoint(anchor)
	def.LocalAnchorB = def.BodyB.GetLocalPoint(anchor)
	def.ReferenceAngle = def.BodyB.GetAngle() - def.BodyA.GetAngle()
}

func MakeWeldJoint(def *WeldJointDef) *WeldJoint {
	res := WeldJoint{
		Joint: MakeJoint(def),
	}

	res.LocalAnchorA = def.LocalAnchorA
	res.LocalAnchorB = def.LocalAnchorB
	res.ReferenceAngle = def.ReferenceAngle
	res.FrequencyHz = def.FrequencyHz
	res.DampingRatio = def.DampingRatio

	res.Impulse.SetZero()

	return &res
}

func (joint *WeldJoint) InitVelocityConstraints(data SolverData) {
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

	var K Mat33
	K.Ex.X = mA + mB + joint.RA.Y*joint.RA.Y*iA + joint.RB.Y*joint.RB.Y*iB
	K.Ey.X = -joint.RA.Y*joint.RA.X*iA - joint.RB.Y*joint.RB.X*iB
	K.Ez.X = -joint.RA.Y*iA - joint.RB.Y*iB
	K.Ex.Y = K.Ey.X
	K.Ey.Y = mA + mB + joint.RA.X*joint.RA.X*iA + joint.RB.X*joint.RB.X*iB
	K.Ez.Y = joint.RA.X*iA + joint.RB.X*iB
	K.Ex.Z = K.Ez.X
	K.Ey.Z = K.Ez.Y
	K.Ez.Z = iA + iB

	if joint.FrequencyHz > 0.0 {
		K.GetInverse22(&joint.Mass)

		invM := iA + iB
		m := 0.0
		if invM > 0.0 {
			m = 1.0 / invM
		}

		C := aB - aA - joint.ReferenceAngle

		// Frequency
		omega := 2.0 * Pi * joint.FrequencyHz

		// Damping coefficient
		d := 2.0 * m * joint.DampingRatio * omega

		// Spring stiffness
		k := m * omega * omega

		// magic formulas
		h := data.Step.Dt
		joint.Gamma = h * (d + h*k)
		if joint.Gamma != 0.0 {
			joint.Gamma = 1.0 / joint.Gamma
		} else {
			joint.Gamma = 0.0
		}
		joint.Bias = C * h * k * joint.Gamma

		invM += joint.Gamma
		if invM != 0.0 {
			joint.Mass.Ez.Z = 1.0 / invM
		} else {
			joint.Mass.Ez.Z = 0.0
		}
	} else if K.Ez.Z == 0.0 {
		K.GetInverse22(&joint.Mass)
		joint.Gamma = 0.0
		joint.Bias = 0.0
	} else {
		K.GetSymInverse33(&joint.Mass)
		joint.Gamma = 0.0
		joint.Bias = 0.0
	}

	if data.Step.WarmStarting {
		// Scale impulses to support a variable time step.
		joint.Impulse.MulAssign(data.Step.DtRatio)

		P := MakeVec2(joint.Impulse.X, joint.Impulse.Y)

		applyImpulseAt(&vA, &wA, joint.RA, mA, iA, &vB, &wB, joint.RB, mB, iB, P)
		wA -= iA * joint.Impulse.Z
		wB += iB * joint.Impulse.Z
	} else {
		joint.Impulse.SetZero()
	}

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *WeldJoint) SolveVelocityConstraints(data SolverData) {
	vA := data.Velocities[joint.IndexA].V
	wA := data.Velocities[joint.IndexA].W
	vB := data.Velocities[joint.IndexB].V
	wB := data.Velocities[joint.IndexB].W

	mA := joint.InvMassA
	mB := joint.InvMassB
	iA := joint.InvIA
	iB := joint.InvIB

	if joint.FrequencyHz > 0.0 {
		Cdot2 := wB - wA

		impulse2 := -joint.Mass.Ez.Z * (Cdot2 + joint.Bias + joint.Gamma*joint.Impulse.Z)
		joint.Impulse.Z += impulse2

		wA -= iA * impulse2
		wB += iB * impulse2

		Cdot1 := Vec2Sub(Vec2Sub(Vec2Add(vB, Vec2CrossScalarVector(wB, joint.RB)), vA), Vec2CrossScalarVector(wA, joint.RA))

		impulse1 := Vec2Mul22(joint.Mass, Cdot1).Neg()
		joint.Impulse.X += impulse1.X
		joint.Impulse.Y += impulse1.Y

		P := impulse1

		applyImpulseAt(&vA, &wA, joint.RA, mA, iA, &vB, &wB, joint.RB, mB, iB, P)
	} else {
		Cdot1 := Vec2Sub(Vec2Sub(Vec2Add(vB, Vec2CrossScalarVector(wB, joint.RB)), vA), Vec2CrossScalarVector(wA, joint.RA))
		Cdot2 := wB - wA
		Cdot := MakeVec3(Cdot1.X, Cdot1.Y, Cdot2)

		impulse := Vec3Mat33Mul(joint.Mass, Cdot).Neg()
		joint.Impulse.AddAssign(impulse)

		P := MakeVec2(impulse.X, impulse.Y)

		applyImpulseAt(&vA, &wA, joint.RA, mA, iA, &vB, &wB, joint.RB, mB, iB, P)
		wA -= iA * impulse.Z
		wB += iB * impulse.Z
	}

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *WeldJoint) SolvePositionConstraints(data SolverData) bool {
	cA := data.Positions[joint.IndexA].C
	aA := data.Positions[joint.IndexA].A
	cB := data.Positions[joint.IndexB].C
	aB := data.Positions[joint.IndexB].A

	qA := MakeRotFromAngle(aA)
	qB := MakeRotFromAngle(aB)

	mA := joint.InvMassA
	mB := joint.InvMassB
	iA := joint.InvIA
	iB := joint.InvIB

	rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.LocalCenterA))
	rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.LocalCenterB))

	positionError := 0.0
	angularError := 0.0

	var K Mat33
	K.Ex.X = mA + mB + rA.Y*rA.Y*iA + rB.Y*rB.Y*iB
	K.Ey.X = -rA.Y*rA.X*iA - rB.Y*rB.X*iB
	K.Ez.X = -rA.Y*iA - rB.Y*iB
	K.Ex.Y = K.Ey.X
	K.Ey.Y = mA + mB + rA.X*rA.X*iA + rB.X*rB.X*iB
	K.Ez.Y = rA.X*iA + rB.X*iB
	K.Ex.Z = K.Ez.X
	K.Ey.Z = K.Ez.Y
	K.Ez.Z = iA + iB

	if joint.FrequencyHz > 0.0 {
		C1 := Vec2Sub(Vec2Sub(Vec2Add(cB, rB), cA), rA)

		positionError = C1.Length()
		angularError = 0.0

		P := K.Solve22(C1).Neg()

		applyPositionCorrectionAt(&cA, &aA, rA, mA, iA, &cB, &aB, rB, mB, iB, P)
	} else {
		C1 := Vec2Sub(Vec2Sub(Vec2Add(cB, rB), cA), rA)
		C2 := aB - aA - joint.ReferenceAngle

		positionError = C1.Length()
		angularError = math.Abs(C2)

		C := MakeVec3(C1.X, C1.Y, C2)

		var impulse Vec3
		if K.Ez.Z > 0.0 {
			impulse = K.Solve33(C).Neg()
		} else {
			impulse2 := K.Solve22(C1).Neg()
			impulse.Set(impulse2.X, impulse2.Y, 0.0)
		}

		P := MakeVec2(impulse.X, impulse.Y)

		applyPositionCorrectionAt(&cA, &aA, rA, mA, iA, &cB, &aB, rB, mB, iB, P)
		aA -= iA * impulse.Z
		aB += iB * impulse.Z
	}

	data.Positions[joint.IndexA].C = cA
	data.Positions[joint.IndexA].A = aA
	data.Positions[joint.IndexB].C = cB
	data.Positions[joint.IndexB].A = aB

	return positionError <= LinearSlop && angularError <= AngularSlop
}

func (joint WeldJoint) GetAnchorA() Vec2 {
	return joint.BodyA.GetWorldPoint(joint.LocalAnchorA)
}

func (joint WeldJoint) GetAnchorB() Vec2 {
	return joint.BodyB.GetWorldPoint(joint.LocalAnchorB)
}

func (joint WeldJoint) GetReactionForce(inv_dt float64) Vec2 {
	P := MakeVec2(joint.Impulse.X, joint.Impulse.Y)
	return Vec2MulScalar(inv_dt, P)
}

func (joint WeldJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.Impulse.Z
}

// Dump is intentionally a no-op: scene serialization is out of
// scope for this package (see the world persistence discussion in
// DESIGN.md).
func (joint *WeldJoint) Dump() {}

