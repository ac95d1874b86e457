package physics2d

import "math"

// applyAxialImpulse distributes a linear impulse P together with its
// generalized torque arms LA/LB (already projected onto whichever
// axis/perp combination the caller solved for) between two bodies.
func applyAxialImpulse(vA *Vec2, wA *float64, mA, iA, LA float64, vB *Vec2, wB *float64, mB, iB, LB float64, P Vec2) {
	vA.SubAssign(Vec2MulScalar(mA, P))
	*wA -= iA * LA

	vB.AddAssign(Vec2MulScalar(mB, P))
	*wB += iB * LB
}

/// Prismatic joint definition. This requires defining a line of
/// motion using an axis and an anchor point. The definition uses local
/// anchor points and a local axis so that the initial configuration
/// can violate the constraint slightly. The joint translation is zero
/// when the local anchor points coincide in world space. Using local
/// anchors and a local axis helps when saving and loading a game.
type PrismaticJointDef struct {
	JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB Vec2

	/// The local translation unit axis in bodyA.
	LocalAxisA Vec2

	/// The constrained angle between the bodies: bodyB_angle - bodyA_angle.
	ReferenceAngle float64

	/// Enable/disable the joint limit.
	EnableLimit bool

	/// The lower translation limit, usually in meters.
	LowerTranslation float64

	/// The upper translation limit, usually in meters.
	UpperTranslation float64

	/// Enable/disable the joint motor.
	EnableMotor bool

	/// The maximum motor force, usually in N.
	MaxMotorForce float64

	/// The desired motor speed, usually in meters per second.
	MotorSpeed float64
}

func MakePrismaticJointDef() PrismaticJointDef {
	res := PrismaticJointDef{
		JointDef: MakeJointDef(),
	}

	res.Type = JointPrismatic
	res.LocalAnchorA.SetZero()
	res.LocalAnchorB.SetZero()
	res.LocalAxisA.Set(1.0, 0.0)
	res.ReferenceAngle = 0.0
	res.EnableLimit = false
	res.LowerTranslation = 0.0
	res.UpperTranslation = 0.0
	res.EnableMotor = false
	res.MaxMotorForce = 0.0
	res.MotorSpeed = 0.0

	return res
}

/// A prismatic joint. This joint provides one degree of freedom: translation
/// along an axis fixed in bodyA. Relative rotation is prevented. You can
/// use a joint limit to restrict the range of motion and a joint motor to
/// drive the motion or to model joint friction.
type PrismaticJoint struct {
	*Joint

	// Solver shared
	LocalAnchorA     Vec2
	LocalAnchorB     Vec2
	LocalXAxisA      Vec2
	LocalYAxisA      Vec2
	ReferenceAngle   float64
	Impulse          Vec3
	MotorImpulse     float64
	LowerTranslation float64
	UpperTranslation float64
	MaxMotorForce    float64
	MotorSpeed       float64
	enableLimit      bool
	enableMotor      bool
	LimitState       uint8

	// Solver temp
	IndexA       int
	IndexB       int
	LocalCenterA Vec2
	LocalCenterB Vec2
	InvMassA     float64
	InvMassB     float64
	InvIA        float64
	InvIB        float64
	Axis, Perp Vec2
	S1, S2     float64
	A1, A2     float64
	K            Mat33
	MotorMass    float64
}

/// The local anchor point relative to bodyA's origin.
func (joint PrismaticJoint) GetLocalAnchorA() Vec2 {
	return joint.LocalAnchorA
}

/// The local anchor point relative to bodyB's origin.
func (joint PrismaticJoint) GetLocalAnchorB() Vec2 {
	return joint.LocalAnchorB
}

/// The local joint axis relative to bodyA.
func (joint PrismaticJoint) GetLocalAxisA() Vec2 {
	return joint.LocalXAxisA
}

/// Get the reference angle.
func (joint PrismaticJoint) GetReferenceAngle() float64 {
	return joint.ReferenceAngle
}

func (joint PrismaticJoint) GetMaxMotorForce() float64 {
	return joint.MaxMotorForce
}

func (joint PrismaticJoint) GetMotorSpeed() float64 {
	return joint.MotorSpeed
}

// Linear constraint (point-to-line)
// d = p2 - p1 = x2 + r2 - x1 - r1
// C = dot(perp, d)
// Cdot = dot(d, cross(w1, perp)) + dot(perp, v2 + cross(w2, r2) - v1 - cross(w1, r1))
//      = -dot(perp, v1) - dot(cross(d + r1, perp), w1) + dot(perp, v2) + dot(cross(r2, perp), v2)
// J = [-perp, -cross(d + r1, perp), perp, cross(r2,perp)]
//
// Angular constraint
// C = a2 - a1 + a_initial
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
//
// K = J * invM * JT
//
// J = [-a -s1 a s2]
//     [0  -1  0  1]
// a = perp
// s1 = cross(d + r1, a) = cross(p2 - x1, a)
// s2 = cross(r2, a) = cross(p2 - x2, a)

// Motor/Limit linear constraint
// C = dot(ax1, d)
// Cdot = = -dot(ax1, v1) - dot(cross(d + r1, ax1), w1) + dot(ax1, v2) + dot(cross(r2, ax1), v2)
// J = [-ax1 -cross(d+r1,ax1) ax1 cross(r2,ax1)]

// Block Solver
// We develop a block solver that includes the joint limit. This makes the limit stiff (inelastic) even
// when the mass has poor distribution (leading to large torques about the joint anchor points).
//
// The Jacobian has 3 rows:
// J = [-uT -s1 uT s2] // linear
//     [0   -1   0  1] // angular
//     [-vT -a1 vT a2] // limit
//
// u = perp
// v = axis
// s1 = cross(d + r1, u), s2 = cross(r2, u)
// a1 = cross(d + r1, v), a2 = cross(r2, v)

// M * (v2 - v1) = JT * df
// J * v2 = bias
//
// v2 = v1 + invM * JT * df
// J * (v1 + invM * JT * df) = bias
// K * df = bias - J * v1 = -Cdot
// K = J * invM * JT
// Cdot = J * v1 - bias
//
// Now solve for f2.
// df = f2 - f1
// K * (f2 - f1) = -Cdot
// f2 = invK * (-Cdot) + f1
//
// Clamp accumulated limit impulse.
// lower: f2(3) = max(f2(3), 0)
// upper: f2(3) = min(f2(3), 0)
//
// Solve for correct f2(1:2)
// K(1:2, 1:2) * f2(1:2) = -Cdot(1:2) - K(1:2,3) * f2(3) + K(1:2,1:3) * f1
//                       = -Cdot(1:2) - K(1:2,3) * f2(3) + K(1:2,1:2) * f1(1:2) + K(1:2,3) * f1(3)
// K(1:2, 1:2) * f2(1:2) = -Cdot(1:2) - K(1:2,3) * (f2(3) - f1(3)) + K(1:2,1:2) * f1(1:2)
// f2(1:2) = invK(1:2,1:2) * (-Cdot(1:2) - K(1:2,3) * (f2(3) - f1(3))) + f1(1:2)
//
// Now compute impulse to be applied:
// df = f2 - f1

func (joint *PrismaticJointDef) Initialize(bA *Body, bB *Body, anchor Vec2, axis Vec2) {
	joint.BodyA = bA
	joint.BodyB = bB
	joint.LocalAnchorA = joint.BodyA.GetLocalPoint(anchor)
	joint.LocalAnchorB = joint.BodyB.GetLocalPoint(anchor)
	joint.LocalAxisA = joint.BodyA.GetLocalVector(axis)
	joint.ReferenceAngle = joint.BodyB.GetAngle() - joint.BodyA.GetAngle()
}

func MakePrismaticJoint(def *PrismaticJointDef) *PrismaticJoint {
	res := PrismaticJoint{
		Joint: MakeJoint(def),
	}

	res.LocalAnchorA = def.LocalAnchorA
	res.LocalAnchorB = def.LocalAnchorB
	res.LocalXAxisA = def.LocalAxisA
	res.LocalXAxisA.Normalize()
	res.LocalYAxisA = Vec2CrossScalarVector(1.0, res.LocalXAxisA)
	res.ReferenceAngle = def.ReferenceAngle

	res.Impulse.SetZero()
	res.MotorMass = 0.0
	res.MotorImpulse = 0.0

	res.LowerTranslation = def.LowerTranslation
	res.UpperTranslation = def.UpperTranslation
	res.MaxMotorForce = def.MaxMotorForce
	res.MotorSpeed = def.MotorSpeed
	res.enableLimit = def.EnableLimit
	res.enableMotor = def.EnableMotor
	res.LimitState = LimitInactive

	res.Axis.SetZero()
	res.Perp.SetZero()

	return &res
}

func (joint *PrismaticJoint) InitVelocityConstraints(data SolverData) {
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

	// Compute the effective masses.
	rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.LocalCenterA))
	rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.LocalCenterB))
	d := Vec2Sub(Vec2Add(Vec2Sub(cB, cA), rB), rA)

	mA := joint.InvMassA
	mB := joint.InvMassB
	iA := joint.InvIA
	iB := joint.InvIB

	// Compute motor Jacobian and effective mass.
	{
		joint.Axis = RotVec2Mul(qA, joint.LocalXAxisA)
		joint.A1 = Vec2Cross(Vec2Add(d, rA), joint.Axis)
		joint.A2 = Vec2Cross(rB, joint.Axis)

		joint.MotorMass = mA + mB + iA*joint.A1*joint.A1 + iB*joint.A2*joint.A2
		if joint.MotorMass > 0.0 {
			joint.MotorMass = 1.0 / joint.MotorMass
		}
	}

	// Prismatic constraint.
	{
		joint.Perp = RotVec2Mul(qA, joint.LocalYAxisA)

		joint.S1 = Vec2Cross(Vec2Add(d, rA), joint.Perp)
		joint.S2 = Vec2Cross(rB, joint.Perp)

		k11 := mA + mB + iA*joint.S1*joint.S1 + iB*joint.S2*joint.S2
		k12 := iA*joint.S1 + iB*joint.S2
		k13 := iA*joint.S1*joint.A1 + iB*joint.S2*joint.A2
		k22 := iA + iB
		if k22 == 0.0 {
			// For bodies with fixed rotation.
			k22 = 1.0
		}
		k23 := iA*joint.A1 + iB*joint.A2
		k33 := mA + mB + iA*joint.A1*joint.A1 + iB*joint.A2*joint.A2

		joint.K.Ex.Set(k11, k12, k13)
		joint.K.Ey.Set(k12, k22, k23)
		joint.K.Ez.Set(k13, k23, k33)
	}

	// Compute motor and limit terms.
	if joint.enableLimit {
		jointTranslation := Vec2Dot(joint.Axis, d)
		if math.Abs(joint.UpperTranslation-joint.LowerTranslation) < 2.0*LinearSlop {
			joint.LimitState = LimitEqual
		} else if jointTranslation <= joint.LowerTranslation {
			if joint.LimitState != LimitAtLower {
				joint.LimitState = LimitAtLower
				joint.Impulse.Z = 0.0
			}
		} else if jointTranslation >= joint.UpperTranslation {
			if joint.LimitState != LimitAtUpper {
				joint.LimitState = LimitAtUpper
				joint.Impulse.Z = 0.0
			}
		} else {
			joint.LimitState = LimitInactive
			joint.Impulse.Z = 0.0
		}
	} else {
		joint.LimitState = LimitInactive
		joint.Impulse.Z = 0.0
	}

	if joint.enableMotor == false {
		joint.MotorImpulse = 0.0
	}

	if data.Step.WarmStarting {
		// Account for variable time step.
		joint.Impulse.MulAssign(data.Step.DtRatio)
		joint.MotorImpulse *= data.Step.DtRatio

		P := Vec2Add(Vec2MulScalar(joint.Impulse.X, joint.Perp), Vec2MulScalar(joint.MotorImpulse+joint.Impulse.Z, joint.Axis))
		LA := joint.Impulse.X*joint.S1 + joint.Impulse.Y + (joint.MotorImpulse+joint.Impulse.Z)*joint.A1
		LB := joint.Impulse.X*joint.S2 + joint.Impulse.Y + (joint.MotorImpulse+joint.Impulse.Z)*joint.A2
		applyAxialImpulse(&vA, &wA, mA, iA, LA, &vB, &wB, mB, iB, LB, P)
	} else {
		joint.Impulse.SetZero()
		joint.MotorImpulse = 0.0
	}

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *PrismaticJoint) SolveVelocityConstraints(data SolverData) {
	vA := data.Velocities[joint.IndexA].V
	wA := data.Velocities[joint.IndexA].W
	vB := data.Velocities[joint.IndexB].V
	wB := data.Velocities[joint.IndexB].W

	mA := joint.InvMassA
	mB := joint.InvMassB
	iA := joint.InvIA
	iB := joint.InvIB

	// Solve linear motor constraint.
	if joint.enableMotor && joint.LimitState != LimitEqual {
		Cdot := Vec2Dot(joint.Axis, Vec2Sub(vB, vA)) + joint.A2*wB - joint.A1*wA
		impulse := joint.MotorMass * (joint.MotorSpeed - Cdot)
		oldImpulse := joint.MotorImpulse
		maxImpulse := data.Step.Dt * joint.MaxMotorForce
		joint.MotorImpulse = FloatClamp(joint.MotorImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.MotorImpulse - oldImpulse

		P := Vec2MulScalar(impulse, joint.Axis)
		applyAxialImpulse(&vA, &wA, mA, iA, impulse*joint.A1, &vB, &wB, mB, iB, impulse*joint.A2, P)
	}

	var Cdot1 Vec2
	Cdot1.X = Vec2Dot(joint.Perp, Vec2Sub(vB, vA)) + joint.S2*wB - joint.S1*wA
	Cdot1.Y = wB - wA

	if joint.enableLimit && joint.LimitState != LimitInactive {
		// Solve prismatic and limit constraint in block form.
		Cdot2 := 0.0
		Cdot2 = Vec2Dot(joint.Axis, Vec2Sub(vB, vA)) + joint.A2*wB - joint.A1*wA
		Cdot := MakeVec3(Cdot1.X, Cdot1.Y, Cdot2)

		f1 := joint.Impulse
		df := joint.K.Solve33(Cdot.Neg())
		joint.Impulse.AddAssign(df)

		if joint.LimitState == LimitAtLower {
			joint.Impulse.Z = math.Max(joint.Impulse.Z, 0.0)
		} else if joint.LimitState == LimitAtUpper {
			joint.Impulse.Z = math.Min(joint.Impulse.Z, 0.0)
		}

		// f2(1:2) = invK(1:2,1:2) * (-Cdot(1:2) - K(1:2,3) * (f2(3) - f1(3))) + f1(1:2)
		b := Vec2Sub(Cdot1.Neg(), Vec2MulScalar(joint.Impulse.Z-f1.Z, MakeVec2(joint.K.Ez.X, joint.K.Ez.Y)))
		f2r := Vec2Add(joint.K.Solve22(b), MakeVec2(f1.X, f1.Y))
		joint.Impulse.X = f2r.X
		joint.Impulse.Y = f2r.Y

		df = Vec3Sub(joint.Impulse, f1)

		P := Vec2Add(Vec2MulScalar(df.X, joint.Perp), Vec2MulScalar(df.Z, joint.Axis))
		LA := df.X*joint.S1 + df.Y + df.Z*joint.A1
		LB := df.X*joint.S2 + df.Y + df.Z*joint.A2
		applyAxialImpulse(&vA, &wA, mA, iA, LA, &vB, &wB, mB, iB, LB, P)
	} else {
		// Limit is inactive, just solve the prismatic constraint in block form.
		df := joint.K.Solve22(Cdot1.Neg())
		joint.Impulse.X += df.X
		joint.Impulse.Y += df.Y

		P := Vec2MulScalar(df.X, joint.Perp)
		LA := df.X*joint.S1 + df.Y
		LB := df.X*joint.S2 + df.Y
		applyAxialImpulse(&vA, &wA, mA, iA, LA, &vB, &wB, mB, iB, LB, P)
	}

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

// A velocity based solver computes reaction forces(impulses) using the velocity constraint solver.Under this context,
// the position solver is not there to resolve forces.It is only there to cope with integration error.
//
// Therefore, the pseudo impulses in the position solver do not have any physical meaning.Thus it is okay if they suck.
//
// We could take the active state from the velocity solver.However, the joint might push past the limit when the velocity
// solver indicates the limit is inactive.
func (joint *PrismaticJoint) SolvePositionConstraints(data SolverData) bool {
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

	// Compute fresh Jacobians
	rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.LocalCenterA))
	rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.LocalCenterB))
	d := Vec2Sub(Vec2Sub(Vec2Add(cB, rB), cA), rA)

	axis := RotVec2Mul(qA, joint.LocalXAxisA)
	a1 := Vec2Cross(Vec2Add(d, rA), axis)
	a2 := Vec2Cross(rB, axis)
	perp := RotVec2Mul(qA, joint.LocalYAxisA)

	s1 := Vec2Cross(Vec2Add(d, rA), perp)
	s2 := Vec2Cross(rB, perp)

	impulse := MakeVec3(0, 0, 0)
	C1 := MakeVec2(0, 0)
	C1.X = Vec2Dot(perp, d)
	C1.Y = aB - aA - joint.ReferenceAngle

	linearError := math.Abs(C1.X)
	angularError := math.Abs(C1.Y)

	active := false
	C2 := 0.0
	if joint.enableLimit {
		translation := Vec2Dot(axis, d)
		if math.Abs(joint.UpperTranslation-joint.LowerTranslation) < 2.0*LinearSlop {
			// Prevent large angular corrections
			C2 = FloatClamp(translation, -MaxLinearCorrection, MaxLinearCorrection)
			linearError = math.Max(linearError, math.Abs(translation))
			active = true
		} else if translation <= joint.LowerTranslation {
			// Prevent large linear corrections and allow some slop.
			C2 = FloatClamp(translation-joint.LowerTranslation+LinearSlop, -MaxLinearCorrection, 0.0)
			linearError = math.Max(linearError, joint.LowerTranslation-translation)
			active = true
		} else if translation >= joint.UpperTranslation {
			// Prevent large linear corrections and allow some slop.
			C2 = FloatClamp(translation-joint.UpperTranslation-LinearSlop, 0.0, MaxLinearCorrection)
			linearError = math.Max(linearError, translation-joint.UpperTranslation)
			active = true
		}
	}

	if active {
		k11 := mA + mB + iA*s1*s1 + iB*s2*s2
		k12 := iA*s1 + iB*s2
		k13 := iA*s1*a1 + iB*s2*a2
		k22 := iA + iB
		if k22 == 0.0 {
			// For fixed rotation
			k22 = 1.0
		}
		k23 := iA*a1 + iB*a2
		k33 := mA + mB + iA*a1*a1 + iB*a2*a2

		K := MakeMat33()
		K.Ex.Set(k11, k12, k13)
		K.Ey.Set(k12, k22, k23)
		K.Ez.Set(k13, k23, k33)

		C := MakeVec3(0, 0, 0)
		C.X = C1.X
		C.Y = C1.Y
		C.Z = C2

		impulse = K.Solve33(C.Neg())
	} else {
		k11 := mA + mB + iA*s1*s1 + iB*s2*s2
		k12 := iA*s1 + iB*s2
		k22 := iA + iB
		if k22 == 0.0 {
			k22 = 1.0
		}

		K := MakeMat22()
		K.Ex.Set(k11, k12)
		K.Ey.Set(k12, k22)

		impulse1 := K.Solve(C1.Neg())
		impulse.X = impulse1.X
		impulse.Y = impulse1.Y
		impulse.Z = 0.0
	}

	P := Vec2Add(Vec2MulScalar(impulse.X, perp), Vec2MulScalar(impulse.Z, axis))
	LA := impulse.X*s1 + impulse.Y + impulse.Z*a1
	LB := impulse.X*s2 + impulse.Y + impulse.Z*a2

	cA.SubAssign(Vec2MulScalar(mA, P))
	aA -= iA * LA
	cB.AddAssign(Vec2MulScalar(mB, P))
	aB += iB * LB

	data.Positions[joint.IndexA].C = cA
	data.Positions[joint.IndexA].A = aA
	data.Positions[joint.IndexB].C = cB
	data.Positions[joint.IndexB].A = aB

	return linearError <= LinearSlop && angularError <= AngularSlop
}

func (joint PrismaticJoint) GetAnchorA() Vec2 {
	return joint.BodyA.GetWorldPoint(joint.LocalAnchorA)
}

func (joint PrismaticJoint) GetAnchorB() Vec2 {
	return joint.BodyB.GetWorldPoint(joint.LocalAnchorB)
}

func (joint PrismaticJoint) GetReactionForce(inv_dt float64) Vec2 {
	return Vec2MulScalar(inv_dt, Vec2Add(Vec2MulScalar(joint.Impulse.X, joint.Perp), Vec2MulScalar(joint.MotorImpulse+joint.Impulse.Z, joint.Axis)))
}

func (joint PrismaticJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.Impulse.Y
}

func (joint PrismaticJoint) GetJointTranslation() float64 {
	pA := joint.BodyA.GetWorldPoint(joint.LocalAnchorA)
	pB := joint.BodyB.GetWorldPoint(joint.LocalAnchorB)
	d := Vec2Sub(pB, pA)
	axis := joint.BodyA.GetWorldVector(joint.LocalXAxisA)

	translation := Vec2Dot(d, axis)
	return translation
}

func (joint PrismaticJoint) GetJointSpeed() float64 {
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

	speed := Vec2Dot(d, Vec2CrossScalarVector(wA, axis)) +
		Vec2Dot(axis, Vec2Sub(Vec2Sub(Vec2Add(vB, Vec2CrossScalarVector(wB, rB)), vA), Vec2CrossScalarVector(wA, rA)))
	return speed
}

func (joint PrismaticJoint) IsLimitEnabled() bool {
	return joint.enableLimit
}

func (joint *PrismaticJoint) EnableLimit(flag bool) {
	if flag != joint.enableLimit {
		joint.BodyA.SetAwake(true)
		joint.BodyB.SetAwake(true)
		joint.enableLimit = flag
		joint.Impulse.Z = 0.0
	}
}

func (joint PrismaticJoint) GetLowerLimit() float64 {
	return joint.LowerTranslation
}

func (joint PrismaticJoint) GetUpperLimit() float64 {
	return joint.UpperTranslation
}

func (joint *PrismaticJoint) SetLimits(lower float64, upper float64) {
	Assert(lower <= upper)
	if lower != joint.LowerTranslation || upper != joint.UpperTranslation {
		joint.BodyA.SetAwake(true)
		joint.BodyB.SetAwake(true)
		joint.LowerTranslation = lower
		joint.UpperTranslation = upper
		joint.Impulse.Z = 0.0
	}
}

func (joint PrismaticJoint) IsMotorEnabled() bool {
	return joint.enableMotor
}

func (joint *PrismaticJoint) EnableMotor(flag bool) {
	if flag != joint.enableMotor {
		joint.BodyA.SetAwake(true)
		joint.BodyB.SetAwake(true)
		joint.enableMotor = flag
	}
}

func (joint *PrismaticJoint) SetMotorSpeed(speed float64) {
	if speed != joint.MotorSpeed {
		joint.BodyA.SetAwake(true)
		joint.BodyB.SetAwake(true)
		joint.MotorSpeed = speed
	}
}

func (joint *PrismaticJoint) SetMaxMotorForce(force float64) {
	if force != joint.MaxMotorForce {
		joint.BodyA.SetAwake(true)
		joint.BodyB.SetAwake(true)
		joint.MaxMotorForce = force
	}
}

func (joint PrismaticJoint) GetMotorForce(inv_dt float64) float64 {
	return inv_dt * joint.MotorImpulse
}

// Dump is intentionally a no-op: scene serialization is out of
// scope for this package (see the world persistence discussion in
// DESIGN.md).
func (joint *PrismaticJoint) Dump() {}

