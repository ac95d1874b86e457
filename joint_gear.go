package physics2d

/// Gear joint definition. This definition requires two existing
/// revolute or prismatic joints (any combination will work).
type GearJointDef struct {
	JointDef

	/// The first revolute/prismatic joint attached to the gear joint.
	Joint1 JointInterface // has to be backed by pointer

	/// The second revolute/prismatic joint attached to the gear joint.
	Joint2 JointInterface // has to be backed by pointer

	/// The gear ratio.
	/// @see GearJoint for explanation.
	Ratio float64
}

func MakeGearJointDef() GearJointDef {
	res := GearJointDef{
		JointDef: MakeJointDef(),
	}

	res.Type = JointGear
	res.Joint1 = nil
	res.Joint2 = nil
	res.Ratio = 1.0

	return res
}

/// A gear joint is used to connect two joints together. Either joint
/// can be a revolute or prismatic joint. You specify a gear ratio
/// to bind the motions together:
/// coordinate1 + ratio * coordinate2 = constant
/// The ratio can be negative or positive. If one joint is a revolute joint
/// and the other joint is a prismatic joint, then the ratio will have units
/// of length or units of 1/length.
/// @warning You have to manually destroy the gear joint if joint1 or joint2
/// is destroyed.
type GearJoint struct {
	*Joint

	Joint1 JointInterface // backed by pointer
	Joint2 JointInterface // backed by pointer

	TypeA uint8
	TypeB uint8

	// Body A is connected to body C
	// Body B is connected to body D
	BodyC *Body
	BodyD *Body

	// Solver shared
	LocalAnchorA Vec2
	LocalAnchorB Vec2
	LocalAnchorC Vec2
	LocalAnchorD Vec2

	LocalAxisC Vec2
	LocalAxisD Vec2

	ReferenceAngleA float64
	ReferenceAngleB float64

	Constant float64
	Ratio    float64

	Impulse float64

	// Solver temp
	IndexA, IndexB, IndexC, IndexD int
	LcA, LcB, LcC, LcD             Vec2
	MA, MB, MC, MD                 float64
	IA, IB, IC, ID                 float64
	JvAC, JvBD                         Vec2
	JwA, JwB, JwC, JwD             float64
	Mass                                 float64
}

/// Get the first joint.
func (joint GearJoint) GetJoint1() JointInterface { // returns a pointer
	return joint.Joint1
}

/// Get the second joint.
func (joint GearJoint) GetJoint2() JointInterface { // returns a pointer
	return joint.Joint2
}

// Gear Joint:
// C0 = (coordinate1 + ratio * coordinate2)_initial
// C = (coordinate1 + ratio * coordinate2) - C0 = 0
// J = [J1 ratio * J2]
// K = J * invM * JT
//   = J1 * invM1 * J1T + ratio * ratio * J2 * invM2 * J2T
//
// Revolute:
// coordinate = rotation
// Cdot = angularVelocity
// J = [0 0 1]
// K = J * invM * JT = invI
//
// Prismatic:
// coordinate = dot(p - pg, ug)
// Cdot = dot(v + cross(w, r), ug)
// J = [ug cross(r, ug)]
// K = J * invM * JT = invMass + invI * cross(r, ug)^2

func MakeGearJoint(def *GearJointDef) *GearJoint {
	res := GearJoint{
		Joint: MakeJoint(def),
	}

	res.Joint1 = def.Joint1
	res.Joint2 = def.Joint2

	res.TypeA = res.Joint1.GetType()
	res.TypeB = res.Joint2.GetType()

	Assert(res.TypeA == JointRevolute || res.TypeA == JointPrismatic)
	Assert(res.TypeB == JointRevolute || res.TypeB == JointPrismatic)

	coordinateA := 0.0
	coordinateB := 0.0

	// TODO: there might be some problem with the joint edges in Joint.

	res.BodyC = res.Joint1.GetBodyA()
	res.BodyA = res.Joint1.GetBodyB()

	// Get geometry of joint1
	xfA := res.BodyA.Xf
	aA := res.BodyA.Sweep.A
	xfC := res.BodyC.Xf
	aC := res.BodyC.Sweep.A

	if res.TypeA == JointRevolute {
		revolute := def.Joint1.(*RevoluteJoint)
		res.LocalAnchorC = revolute.LocalAnchorA
		res.LocalAnchorA = revolute.LocalAnchorB
		res.ReferenceAngleA = revolute.ReferenceAngle
		res.LocalAxisC.SetZero()

		coordinateA = aA - aC - res.ReferenceAngleA
	} else {
		prismatic := def.Joint1.(*PrismaticJoint)
		res.LocalAnchorC = prismatic.LocalAnchorA
		res.LocalAnchorA = prismatic.LocalAnchorB
		res.ReferenceAngleA = prismatic.ReferenceAngle
		res.LocalAxisC = prismatic.LocalXAxisA

		pC := res.LocalAnchorC
		pA := RotVec2MulT(xfC.Q, Vec2Add(RotVec2Mul(xfA.Q, res.LocalAnchorA), Vec2Sub(xfA.P, xfC.P)))
		coordinateA = Vec2Dot(Vec2Sub(pA, pC), res.LocalAxisC)
	}

	res.BodyD = res.Joint2.GetBodyA()
	res.BodyB = res.Joint2.GetBodyB()

	// Get geometry of joint2
	xfB := res.BodyB.Xf
	aB := res.BodyB.Sweep.A
	xfD := res.BodyD.Xf
	aD := res.BodyD.Sweep.A

	if res.TypeB == JointRevolute {
		revolute := def.Joint2.(*RevoluteJoint)
		res.LocalAnchorD = revolute.LocalAnchorA
		res.LocalAnchorB = revolute.LocalAnchorB
		res.ReferenceAngleB = revolute.ReferenceAngle
		res.LocalAxisD.SetZero()

		coordinateB = aB - aD - res.ReferenceAngleB
	} else {
		prismatic := def.Joint2.(*PrismaticJoint)
		res.LocalAnchorD = prismatic.LocalAnchorA
		res.LocalAnchorB = prismatic.LocalAnchorB
		res.ReferenceAngleB = prismatic.ReferenceAngle
		res.LocalAxisD = prismatic.LocalXAxisA

		pD := res.LocalAnchorD
		pB := RotVec2MulT(xfD.Q, Vec2Add(RotVec2Mul(xfB.Q, res.LocalAnchorB), Vec2Sub(xfB.P, xfD.P)))
		coordinateB = Vec2Dot(Vec2Sub(pB, pD), res.LocalAxisD)
	}

	res.Ratio = def.Ratio

	res.Constant = coordinateA + res.Ratio*coordinateB

	res.Impulse = 0.0

	return &res
}

// applyGearImpulse spreads a single scalar impulse across all four
// bodies a gear joint couples, weighted by each body's Jacobian row
// (JvAC/JwA/JwC for the first sub-joint, JvBD/JwB/JwD for the second).
// Bodies A and B receive it, C and D receive the opposing reaction.
func applyGearImpulse(vA *Vec2, wA *float64, mA, iA, jwA float64, vB *Vec2, wB *float64, mB, iB, jwB float64, vC *Vec2, wC *float64, mC, iC, jwC float64, vD *Vec2, wD *float64, mD, iD, jwD float64, jvAC, jvBD Vec2, impulse float64) {
	vA.AddAssign(Vec2MulScalar(mA*impulse, jvAC))
	*wA += iA * impulse * jwA
	vB.AddAssign(Vec2MulScalar(mB*impulse, jvBD))
	*wB += iB * impulse * jwB
	vC.SubAssign(Vec2MulScalar(mC*impulse, jvAC))
	*wC -= iC * impulse * jwC
	vD.SubAssign(Vec2MulScalar(mD*impulse, jvBD))
	*wD -= iD * impulse * jwD
}

func (joint *GearJoint) InitVelocityConstraints(data SolverData) {
	joint.IndexA = joint.BodyA.IslandIndex
	joint.IndexB = joint.BodyB.IslandIndex
	joint.IndexC = joint.BodyC.IslandIndex
	joint.IndexD = joint.BodyD.IslandIndex
	joint.LcA = joint.BodyA.Sweep.LocalCenter
	joint.LcB = joint.BodyB.Sweep.LocalCenter
	joint.LcC = joint.BodyC.Sweep.LocalCenter
	joint.LcD = joint.BodyD.Sweep.LocalCenter
	joint.MA = joint.BodyA.InvMass
	joint.MB = joint.BodyB.InvMass
	joint.MC = joint.BodyC.InvMass
	joint.MD = joint.BodyD.InvMass
	joint.IA = joint.BodyA.InvI
	joint.IB = joint.BodyB.InvI
	joint.IC = joint.BodyC.InvI
	joint.ID = joint.BodyD.InvI

	aA := data.Positions[joint.IndexA].A
	vA := data.Velocities[joint.IndexA].V
	wA := data.Velocities[joint.IndexA].W

	aB := data.Positions[joint.IndexB].A
	vB := data.Velocities[joint.IndexB].V
	wB := data.Velocities[joint.IndexB].W

	aC := data.Positions[joint.IndexC].A
	vC := data.Velocities[joint.IndexC].V
	wC := data.Velocities[joint.IndexC].W

	aD := data.Positions[joint.IndexD].A
	vD := data.Velocities[joint.IndexD].V
	wD := data.Velocities[joint.IndexD].W

	qA := MakeRotFromAngle(aA)
	qB := MakeRotFromAngle(aB)
	qC := MakeRotFromAngle(aC)
	qD := MakeRotFromAngle(aD)

	joint.Mass = 0.0

	if joint.TypeA == JointRevolute {
		joint.JvAC.SetZero()
		joint.JwA = 1.0
		joint.JwC = 1.0
		joint.Mass += joint.IA + joint.IC
	} else {
		u := RotVec2Mul(qC, joint.LocalAxisC)
		rC := RotVec2Mul(qC, Vec2Sub(joint.LocalAnchorC, joint.LcC))
		rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.LcA))
		joint.JvAC = u
		joint.JwC = Vec2Cross(rC, u)
		joint.JwA = Vec2Cross(rA, u)
		joint.Mass += joint.MC + joint.MA + joint.IC*joint.JwC*joint.JwC + joint.IA*joint.JwA*joint.JwA
	}

	if joint.TypeB == JointRevolute {
		joint.JvBD.SetZero()
		joint.JwB = joint.Ratio
		joint.JwD = joint.Ratio
		joint.Mass += joint.Ratio * joint.Ratio * (joint.IB + joint.ID)
	} else {
		u := RotVec2Mul(qD, joint.LocalAxisD)
		rD := RotVec2Mul(qD, Vec2Sub(joint.LocalAnchorD, joint.LcD))
		rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.LcB))
		joint.JvBD = Vec2MulScalar(joint.Ratio, u)
		joint.JwD = joint.Ratio * Vec2Cross(rD, u)
		joint.JwB = joint.Ratio * Vec2Cross(rB, u)
		joint.Mass += joint.Ratio*joint.Ratio*(joint.MD+joint.MB) + joint.ID*joint.JwD*joint.JwD + joint.IB*joint.JwB*joint.JwB
	}

	// Compute effective mass.
	if joint.Mass > 0.0 {
		joint.Mass = 1.0 / joint.Mass
	} else {
		joint.Mass = 0.0
	}

	if data.Step.WarmStarting {
		applyGearImpulse(&vA, &wA, joint.MA, joint.IA, joint.JwA, &vB, &wB, joint.MB, joint.IB, joint.JwB, &vC, &wC, joint.MC, joint.IC, joint.JwC, &vD, &wD, joint.MD, joint.ID, joint.JwD, joint.JvAC, joint.JvBD, joint.Impulse)
	} else {
		joint.Impulse = 0.0
	}

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
	data.Velocities[joint.IndexC].V = vC
	data.Velocities[joint.IndexC].W = wC
	data.Velocities[joint.IndexD].V = vD
	data.Velocities[joint.IndexD].W = wD
}

func (joint *GearJoint) SolveVelocityConstraints(data SolverData) {
	vA := data.Velocities[joint.IndexA].V
	wA := data.Velocities[joint.IndexA].W
	vB := data.Velocities[joint.IndexB].V
	wB := data.Velocities[joint.IndexB].W
	vC := data.Velocities[joint.IndexC].V
	wC := data.Velocities[joint.IndexC].W
	vD := data.Velocities[joint.IndexD].V
	wD := data.Velocities[joint.IndexD].W

	Cdot := Vec2Dot(joint.JvAC, Vec2Sub(vA, vC)) + Vec2Dot(joint.JvBD, Vec2Sub(vB, vD))
	Cdot += (joint.JwA*wA - joint.JwC*wC) + (joint.JwB*wB - joint.JwD*wD)

	impulse := -joint.Mass * Cdot
	joint.Impulse += impulse

	applyGearImpulse(&vA, &wA, joint.MA, joint.IA, joint.JwA, &vB, &wB, joint.MB, joint.IB, joint.JwB, &vC, &wC, joint.MC, joint.IC, joint.JwC, &vD, &wD, joint.MD, joint.ID, joint.JwD, joint.JvAC, joint.JvBD, impulse)

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
	data.Velocities[joint.IndexC].V = vC
	data.Velocities[joint.IndexC].W = wC
	data.Velocities[joint.IndexD].V = vD
	data.Velocities[joint.IndexD].W = wD
}

func (joint *GearJoint) SolvePositionConstraints(data SolverData) bool {
	cA := data.Positions[joint.IndexA].C
	aA := data.Positions[joint.IndexA].A
	cB := data.Positions[joint.IndexB].C
	aB := data.Positions[joint.IndexB].A
	cC := data.Positions[joint.IndexC].C
	aC := data.Positions[joint.IndexC].A
	cD := data.Positions[joint.IndexD].C
	aD := data.Positions[joint.IndexD].A

	qA := MakeRotFromAngle(aA)
	qB := MakeRotFromAngle(aB)
	qC := MakeRotFromAngle(aC)
	qD := MakeRotFromAngle(aD)

	linearError := 0.0

	coordinateA := 0.0
	coordinateB := 0.0

	var JvAC Vec2
	var JvBD Vec2
	var JwA, JwB, JwC, JwD float64
	mass := 0.0

	if joint.TypeA == JointRevolute {
		JvAC.SetZero()
		JwA = 1.0
		JwC = 1.0
		mass += joint.IA + joint.IC

		coordinateA = aA - aC - joint.ReferenceAngleA
	} else {
		u := RotVec2Mul(qC, joint.LocalAxisC)
		rC := RotVec2Mul(qC, Vec2Sub(joint.LocalAnchorC, joint.LcC))
		rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.LcA))
		JvAC = u
		JwC = Vec2Cross(rC, u)
		JwA = Vec2Cross(rA, u)
		mass += joint.MC + joint.MA + joint.IC*JwC*JwC + joint.IA*JwA*JwA

		pC := Vec2Sub(joint.LocalAnchorC, joint.LcC)
		pA := RotVec2MulT(qC, Vec2Add(rA, Vec2Sub(cA, cC)))
		coordinateA = Vec2Dot(Vec2Sub(pA, pC), joint.LocalAxisC)
	}

	if joint.TypeB == JointRevolute {
		JvBD.SetZero()
		JwB = joint.Ratio
		JwD = joint.Ratio
		mass += joint.Ratio * joint.Ratio * (joint.IB + joint.ID)

		coordinateB = aB - aD - joint.ReferenceAngleB
	} else {
		u := RotVec2Mul(qD, joint.LocalAxisD)
		rD := RotVec2Mul(qD, Vec2Sub(joint.LocalAnchorD, joint.LcD))
		rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.LcB))
		JvBD = Vec2MulScalar(joint.Ratio, u)
		JwD = joint.Ratio * Vec2Cross(rD, u)
		JwB = joint.Ratio * Vec2Cross(rB, u)
		mass += joint.Ratio*joint.Ratio*(joint.MD+joint.MB) + joint.ID*JwD*JwD + joint.IB*JwB*JwB

		pD := Vec2Sub(joint.LocalAnchorD, joint.LcD)
		pB := RotVec2MulT(qD, Vec2Add(rB, Vec2Sub(cB, cD)))
		coordinateB = Vec2Dot(Vec2Sub(pB, pD), joint.LocalAxisD)
	}

	C := (coordinateA + joint.Ratio*coordinateB) - joint.Constant

	impulse := 0.0
	if mass > 0.0 {
		impulse = -C / mass
	}

	applyGearImpulse(&cA, &aA, joint.MA, joint.IA, JwA, &cB, &aB, joint.MB, joint.IB, JwB, &cC, &aC, joint.MC, joint.IC, JwC, &cD, &aD, joint.MD, joint.ID, JwD, JvAC, JvBD, impulse)

	data.Positions[joint.IndexA].C = cA
	data.Positions[joint.IndexA].A = aA
	data.Positions[joint.IndexB].C = cB
	data.Positions[joint.IndexB].A = aB
	data.Positions[joint.IndexC].C = cC
	data.Positions[joint.IndexC].A = aC
	data.Positions[joint.IndexD].C = cD
	data.Positions[joint.IndexD].A = aD

	// TODO: not implemented
	return linearError < LinearSlop
}

func (joint GearJoint) GetAnchorA() Vec2 {
	return joint.BodyA.GetWorldPoint(joint.LocalAnchorA)
}

func (joint GearJoint) GetAnchorB() Vec2 {
	return joint.BodyB.GetWorldPoint(joint.LocalAnchorB)
}

func (joint GearJoint) GetReactionForce(inv_dt float64) Vec2 {
	P := Vec2MulScalar(joint.Impulse, joint.JvAC)
	return Vec2MulScalar(inv_dt, P)
}

func (joint GearJoint) GetReactionTorque(inv_dt float64) float64 {
	L := joint.Impulse * joint.JwA
	return inv_dt * L
}

func (joint *GearJoint) SetRatio(ratio float64) {
	Assert(IsValid(ratio))
	joint.Ratio = ratio
}

func (joint GearJoint) GetRatio() float64 {
	return joint.Ratio
}

// Dump is intentionally a no-op: scene serialization is out of
// scope for this package (see the world persistence discussion in
// DESIGN.md).
func (joint *GearJoint) Dump() {}

