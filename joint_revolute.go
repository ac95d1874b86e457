package physics2d

import "math"

/// Revolute joint definition. This requires defining an
/// anchor point where the bodies are joined. The definition
/// uses local anchor points so that the initial configuration
/// can violate the constraint slightly. You also need to
/// specify the initial relative angle for joint limits. This
/// helps when saving and loading a game.
/// The local anchor points are measured from the body's origin
/// rather than the center of mass because:
/// 1. you might not know where the center of mass will be.
/// 2. if you add/remove shapes from a body and recompute the mass,
///    the joints will be broken.
type RevoluteJointDef struct {
	JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB Vec2

	/// The bodyB angle minus bodyA angle in the reference state (radians).
	ReferenceAngle float64

	/// A flag to enable joint limits.
	EnableLimit bool

	/// The lower angle for the joint limit (radians).
	LowerAngle float64

	/// The upper angle for the joint limit (radians).
	UpperAngle float64

	/// A flag to enable the joint motor.
	EnableMotor bool

	/// The desired motor speed. Usually in radians per second.
	MotorSpeed float64

	/// The maximum motor torque used to achieve the desired motor speed.
	/// Usually in N-m.
	MaxMotorTorque float64
}

func MakeRevoluteJointDef() RevoluteJointDef {
	res := RevoluteJointDef{
		JointDef: MakeJointDef(),
	}

	res.Type = JointRevolute
	res.LocalAnchorA.Set(0.0, 0.0)
	res.LocalAnchorB.Set(0.0, 0.0)
	res.ReferenceAngle = 0.0
	res.LowerAngle = 0.0
	res.UpperAngle = 0.0
	res.MaxMotorTorque = 0.0
	res.MotorSpeed = 0.0
	res.EnableLimit = false
	res.EnableMotor = false

	return res
}

/// A revolute joint constrains two bodies to share a common point while they
/// are free to rotate about the point. The relative rotation about the shared
/// point is the joint angle. You can limit the relative rotation with
/// a joint limit that specifies a lower and upper angle. You can use a motor
/// to drive the relative rotation about the shared point. A maximum motor torque
/// is provided so that infinite forces are not generated.
type RevoluteJoint struct {
	*Joint

	// Solver shared
	LocalAnchorA Vec2
	LocalAnchorB Vec2
	Impulse      Vec3
	MotorImpulse float64

	enableMotor    bool
	MaxMotorTorque float64
	MotorSpeed     float64

	enableLimit    bool
	ReferenceAngle float64
	LowerAngle     float64
	UpperAngle     float64

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
	Mass         Mat33 // effective mass for point-to-point constraint.
	MotorMass    float64 // effective mass for motor/limit angular constraint.
	LimitState   uint8
}

/// The local anchor point relative to bodyA's origin.
func (joint RevoluteJoint) GetLocalAnchorA() Vec2 {
	return joint.LocalAnchorA
}

/// The local anchor point relative to bodyB's origin.
func (joint RevoluteJoint) GetLocalAnchorB() Vec2 {
	return joint.LocalAnchorB
}

/// Get the reference angle.
func (joint RevoluteJoint) GetReferenceAngle() float64 {
	return joint.ReferenceAngle
}

func (joint RevoluteJoint) GetMaxMotorTorque() float64 {
	return joint.MaxMotorTorque
}

func (joint RevoluteJoint) GetMotorSpeed() float64 {
	return joint.MotorSpeed
}

// Point-to-point constraint
// C = p2 - p1
// Cdot = v2 - v1
//      = v2 + cross(w2, r2) - v1 - cross(w1, r1)
// J = [-I -r1_skew I r2_skew ]
// Identity used:
// w k % (rx i + ry j) = w * (-ry i + rx j)

// Motor constraint
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
// K = invI1 + invI2

func (def *RevoluteJointDef) Initialize(bA *Body, bB *Body, anchor Vec2) {
	def.BodyA = bA
	def.BodyB = bB
	def.LocalAnchorA = def.BodyA.GetLocalPoint(anchor)
	def.LocalAnchorB = def.BodyB.GetLocalPoint(anchor)
	def.ReferenceAngle = def.BodyB.GetAngle() - def.BodyA.GetAngle()
}

func MakeRevoluteJoint(def *RevoluteJointDef) *RevoluteJoint {
	res := RevoluteJoint{
		Joint: MakeJoint(def),
	}

	res.LocalAnchorA = def.LocalAnchorA
	res.LocalAnchorB = def.LocalAnchorB
	res.ReferenceAngle = def.ReferenceAngle

	res.Impulse.SetZero()
	res.MotorImpulse = 0.0

	res.LowerAngle = def.LowerAngle
	res.UpperAngle = def.UpperAngle
	res.MaxMotorTorque = def.MaxMotorTorque
	res.MotorSpeed = def.MotorSpeed
	res.enableLimit = def.EnableLimit
	res.enableMotor = def.EnableMotor
	res.LimitState = LimitInactive

	return &res
}

func (joint *RevoluteJoint) InitVelocityConstraints(data SolverData) {
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

	fixedRotation := (iA+iB == 0.0)

	joint.Mass.Ex.X = mA + mB + joint.RA.Y*joint.RA.Y*iA + joint.RB.Y*joint.RB.Y*iB
	joint.Mass.Ey.X = -joint.RA.Y*joint.RA.X*iA - joint.RB.Y*joint.RB.X*iB
	joint.Mass.Ez.X = -joint.RA.Y*iA - joint.RB.Y*iB
	joint.Mass.Ex.Y = joint.Mass.Ey.X
	joint.Mass.Ey.Y = mA + mB + joint.RA.X*joint.RA.X*iA + joint.RB.X*joint.RB.X*iB
	joint.Mass.Ez.Y = joint.RA.X*iA + joint.RB.X*iB
	joint.Mass.Ex.Z = joint.Mass.Ez.X
	joint.Mass.Ey.Z = joint.Mass.Ez.Y
	joint.Mass.Ez.Z = iA + iB

	joint.MotorMass = iA + iB
	if joint.MotorMass > 0.0 {
		joint.MotorMass = 1.0 / joint.MotorMass
	}

	if joint.enableMotor == false || fixedRotation {
		joint.MotorImpulse = 0.0
	}

	if joint.enableLimit && fixedRotation == false {
		jointAngle := aB - aA - joint.ReferenceAngle
		if math.Abs(joint.UpperAngle-joint.LowerAngle) < 2.0*AngularSlop {
			joint.LimitState = LimitEqual
		} else if jointAngle <= joint.LowerAngle {
			if joint.LimitState != LimitAtLower {
				joint.Impulse.Z = 0.0
			}
			joint.LimitState = LimitAtLower
		} else if jointAngle >= joint.UpperAngle {
			if joint.LimitState != LimitAtUpper {
				joint.Impulse.Z = 0.0
			}
			joint.LimitState = LimitAtUpper
		} else {
			joint.LimitState = LimitInactive
			joint.Impulse.Z = 0.0
		}
	} else {
		joint.LimitState = LimitInactive
	}

	if data.Step.WarmStarting {
		// Scale impulses to support a variable time step.
		joint.Impulse.MulAssign(data.Step.DtRatio)
		joint.MotorImpulse *= data.Step.DtRatio

		P := MakeVec2(joint.Impulse.X, joint.Impulse.Y)
		angularExtra := joint.MotorImpulse + joint.Impulse.Z

		applyImpulseAt(&vA, &wA, joint.RA, mA, iA, &vB, &wB, joint.RB, mB, iB, P)
		wA -= iA * angularExtra
		wB += iB * angularExtra
	} else {
		joint.Impulse.SetZero()
		joint.MotorImpulse = 0.0
	}

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

// absorbLimitImpulse folds impulse into the joint's running total. If
// applying it in full would drive the limit's accumulated impulse
// past zero (exceeded), the angular component is clamped to zero
// instead and the point-to-point rows are re-solved for just the
// linear impulse needed to make up the difference.
func (joint *RevoluteJoint) absorbLimitImpulse(cdot1 Vec2, impulse *Vec3, exceeded bool) {
	if !exceeded {
		joint.Impulse.AddAssign(*impulse)
		return
	}

	rhs := Vec2Add(cdot1.Neg(), Vec2MulScalar(joint.Impulse.Z, MakeVec2(joint.Mass.Ez.X, joint.Mass.Ez.Y)))
	reduced := joint.Mass.Solve22(rhs)
	impulse.X = reduced.X
	impulse.Y = reduced.Y
	impulse.Z = -joint.Impulse.Z
	joint.Impulse.X += reduced.X
	joint.Impulse.Y += reduced.Y
	joint.Impulse.Z = 0.0
}

func (joint *RevoluteJoint) SolveVelocityConstraints(data SolverData) {
	vA := data.Velocities[joint.IndexA].V
	wA := data.Velocities[joint.IndexA].W
	vB := data.Velocities[joint.IndexB].V
	wB := data.Velocities[joint.IndexB].W

	mA := joint.InvMassA
	mB := joint.InvMassB
	iA := joint.InvIA
	iB := joint.InvIB

	fixedRotation := (iA+iB == 0.0)

	// Solve motor constraint.
	if joint.enableMotor && joint.LimitState != LimitEqual && fixedRotation == false {
		Cdot := wB - wA - joint.MotorSpeed
		impulse := -joint.MotorMass * Cdot
		oldImpulse := joint.MotorImpulse
		maxImpulse := data.Step.Dt * joint.MaxMotorTorque
		joint.MotorImpulse = FloatClamp(joint.MotorImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.MotorImpulse - oldImpulse

		wA -= iA * impulse
		wB += iB * impulse
	}

	// Solve limit constraint.
	if joint.enableLimit && joint.LimitState != LimitInactive && fixedRotation == false {
		Cdot1 := Vec2Sub(Vec2Sub(Vec2Add(vB, Vec2CrossScalarVector(wB, joint.RB)), vA), Vec2CrossScalarVector(wA, joint.RA))
		Cdot2 := wB - wA
		Cdot := MakeVec3(Cdot1.X, Cdot1.Y, Cdot2)

		impulse := joint.Mass.Solve33(Cdot).Neg()

		switch joint.LimitState {
		case LimitEqual:
			joint.Impulse.AddAssign(impulse)
		case LimitAtLower:
			joint.absorbLimitImpulse(Cdot1, &impulse, joint.Impulse.Z+impulse.Z < 0.0)
		case LimitAtUpper:
			joint.absorbLimitImpulse(Cdot1, &impulse, joint.Impulse.Z+impulse.Z > 0.0)
		}

		P := MakeVec2(impulse.X, impulse.Y)
		angularExtra := impulse.Z

		applyImpulseAt(&vA, &wA, joint.RA, mA, iA, &vB, &wB, joint.RB, mB, iB, P)
		wA -= iA * angularExtra
		wB += iB * angularExtra
	} else {
		// Solve point-to-point constraint
		Cdot := Vec2Sub(Vec2Sub(Vec2Add(vB, Vec2CrossScalarVector(wB, joint.RB)), vA), Vec2CrossScalarVector(wA, joint.RA))
		impulse := joint.Mass.Solve22(Cdot.Neg())

		joint.Impulse.X += impulse.X
		joint.Impulse.Y += impulse.Y

		applyImpulseAt(&vA, &wA, joint.RA, mA, iA, &vB, &wB, joint.RB, mB, iB, impulse)
	}

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *RevoluteJoint) SolvePositionConstraints(data SolverData) bool {
	cA := data.Positions[joint.IndexA].C
	aA := data.Positions[joint.IndexA].A
	cB := data.Positions[joint.IndexB].C
	aB := data.Positions[joint.IndexB].A

	qA := MakeRotFromAngle(aA)
	qB := MakeRotFromAngle(aB)

	angularError := 0.0
	positionError := 0.0

	fixedRotation := (joint.InvIA+joint.InvIB == 0.0)

	// Solve angular limit constraint.
	if joint.enableLimit && joint.LimitState != LimitInactive && fixedRotation == false {
		angle := aB - aA - joint.ReferenceAngle
		limitImpulse := 0.0

		if joint.LimitState == LimitEqual {
			// Prevent large angular corrections
			C := FloatClamp(angle-joint.LowerAngle, -MaxAngularCorrection, MaxAngularCorrection)
			limitImpulse = -joint.MotorMass * C
			angularError = math.Abs(C)
		} else if joint.LimitState == LimitAtLower {
			C := angle - joint.LowerAngle
			angularError = -C

			// Prevent large angular corrections and allow some slop.
			C = FloatClamp(C+AngularSlop, -MaxAngularCorrection, 0.0)
			limitImpulse = -joint.MotorMass * C
		} else if joint.LimitState == LimitAtUpper {
			C := angle - joint.UpperAngle
			angularError = C

			// Prevent large angular corrections and allow some slop.
			C = FloatClamp(C-AngularSlop, 0.0, MaxAngularCorrection)
			limitImpulse = -joint.MotorMass * C
		}

		aA -= joint.InvIA * limitImpulse
		aB += joint.InvIB * limitImpulse
	}

	// Solve point-to-point constraint.
	{
		qA.Set(aA)
		qB.Set(aB)
		rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.LocalCenterA))
		rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.LocalCenterB))

		C := Vec2Sub(Vec2Sub(Vec2Add(cB, rB), cA), rA)
		positionError = C.Length()

		mA := joint.InvMassA
		mB := joint.InvMassB
		iA := joint.InvIA
		iB := joint.InvIB

		var K Mat22
		K.Ex.X = mA + mB + iA*rA.Y*rA.Y + iB*rB.Y*rB.Y
		K.Ex.Y = -iA*rA.X*rA.Y - iB*rB.X*rB.Y
		K.Ey.X = K.Ex.Y
		K.Ey.Y = mA + mB + iA*rA.X*rA.X + iB*rB.X*rB.X

		impulse := K.Solve(C).Neg()

		applyPositionCorrectionAt(&cA, &aA, rA, mA, iA, &cB, &aB, rB, mB, iB, impulse)
	}

	data.Positions[joint.IndexA].C = cA
	data.Positions[joint.IndexA].A = aA
	data.Positions[joint.IndexB].C = cB
	data.Positions[joint.IndexB].A = aB

	return positionError <= LinearSlop && angularError <= AngularSlop
}

func (joint RevoluteJoint) GetAnchorA() Vec2 {
	return joint.BodyA.GetWorldPoint(joint.LocalAnchorA)
}

func (joint RevoluteJoint) GetAnchorB() Vec2 {
	return joint.BodyB.GetWorldPoint(joint.LocalAnchorB)
}

func (joint RevoluteJoint) GetReactionForce(inv_dt float64) Vec2 {
	P := MakeVec2(joint.Impulse.X, joint.Impulse.Y)
	return Vec2MulScalar(inv_dt, P)
}

func (joint RevoluteJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.Impulse.Z
}

func (joint RevoluteJoint) GetJointAngle() float64 {
	bA := joint.BodyA
	bB := joint.BodyB
	return bB.Sweep.A - bA.Sweep.A - joint.ReferenceAngle
}

func (joint *RevoluteJoint) GetJointSpeed() float64 {
	bA := joint.BodyA
	bB := joint.BodyB
	return bB.AngularVelocity - bA.AngularVelocity
}

func (joint RevoluteJoint) IsMotorEnabled() bool {
	return joint.enableMotor
}

func (joint *RevoluteJoint) EnableMotor(flag bool) {
	if flag != joint.enableMotor {
		joint.BodyA.SetAwake(true)
		joint.BodyB.SetAwake(true)
		joint.enableMotor = flag
	}
}

func (joint RevoluteJoint) GetMotorTorque(inv_dt float64) float64 {
	return inv_dt * joint.MotorImpulse
}

func (joint *RevoluteJoint) SetMotorSpeed(speed float64) {
	if speed != joint.MotorSpeed {
		joint.BodyA.SetAwake(true)
		joint.BodyB.SetAwake(true)
		joint.MotorSpeed = speed
	}
}

func (joint *RevoluteJoint) SetMaxMotorTorque(torque float64) {
	if torque != joint.MaxMotorTorque {
		joint.BodyA.SetAwake(true)
		joint.BodyB.SetAwake(true)
		joint.MaxMotorTorque = torque
	}
}

func (joint RevoluteJoint) IsLimitEnabled() bool {
	return joint.enableLimit
}

func (joint *RevoluteJoint) EnableLimit(flag bool) {
	if flag != joint.enableLimit {
		joint.BodyA.SetAwake(true)
		joint.BodyB.SetAwake(true)
		joint.enableLimit = flag
		joint.Impulse.Z = 0.0
	}
}

func (joint RevoluteJoint) GetLowerLimit() float64 {
	return joint.LowerAngle
}

func (joint RevoluteJoint) GetUpperLimit() float64 {
	return joint.UpperAngle
}

func (joint *RevoluteJoint) SetLimits(lower float64, upper float64) {
	Assert(lower <= upper)

	if lower != joint.LowerAngle || upper != joint.UpperAngle {
		joint.BodyA.SetAwake(true)
		joint.BodyB.SetAwake(true)
		joint.Impulse.Z = 0.0
		joint.LowerAngle = lower
		joint.UpperAngle = upper
	}
}

// Dump is intentionally a no-op: scene serialization is out of
// scope for this package (see the world persistence discussion in
// DESIGN.md).
func (joint *RevoluteJoint) Dump() {}

