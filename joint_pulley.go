package physics2d

import "math"

const minPulleyLength = 2.0

/// Pulley joint definition. This requires two ground anchors,
/// two dynamic body anchor points, and a pulley ratio.
type PulleyJointDef struct {
	JointDef

	/// The first ground anchor in world coordinates. This point never moves.
	GroundAnchorA Vec2

	/// The second ground anchor in world coordinates. This point never moves.
	GroundAnchorB Vec2

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB Vec2

	/// The a reference length for the segment attached to bodyA.
	LengthA float64

	/// The a reference length for the segment attached to bodyB.
	LengthB float64

	/// The pulley ratio, used to simulate a block-and-tackle.
	Ratio float64
}

func MakePulleyJointDef() PulleyJointDef {
	res := PulleyJointDef{
		JointDef: MakeJointDef(),
	}

	res.Type = JointPulley
	res.GroundAnchorA.Set(-1.0, 1.0)
	res.GroundAnchorB.Set(1.0, 1.0)
	res.LocalAnchorA.Set(-1.0, 0.0)
	res.LocalAnchorB.Set(1.0, 0.0)
	res.LengthA = 0.0
	res.LengthB = 0.0
	res.Ratio = 1.0
	res.CollideConnected = true

	return res
}

/// The pulley joint is connected to two bodies and two fixed ground points.
/// The pulley supports a ratio such that:
/// length1 + ratio * length2 <= constant
/// Yes, the force transmitted is scaled by the ratio.
/// Warning: the pulley joint can get a bit squirrelly by itself. They often
/// work better when combined with prismatic joints. You should also cover the
/// the anchor points with static shapes to prevent one side from going to
/// zero length.
type PulleyJoint struct {
	*Joint

	GroundAnchorA Vec2
	GroundAnchorB Vec2
	LengthA       float64
	LengthB       float64

	// Solver shared
	LocalAnchorA Vec2
	LocalAnchorB Vec2
	Constant     float64
	Ratio        float64
	Impulse      float64

	// Solver temp
	IndexA       int
	IndexB       int
	UA           Vec2
	UB           Vec2
	RA           Vec2
	RB           Vec2
	LocalCenterA Vec2
	LocalCenterB Vec2
	InvMassA     float64
	InvMassB     float64
	InvIA        float64
	InvIB        float64
	Mass         float64
}

// Pulley:
// length1 = norm(p1 - s1)
// length2 = norm(p2 - s2)
// C0 = (length1 + ratio * length2)_initial
// C = C0 - (length1 + ratio * length2)
// u1 = (p1 - s1) / norm(p1 - s1)
// u2 = (p2 - s2) / norm(p2 - s2)
// Cdot = -dot(u1, v1 + cross(w1, r1)) - ratio * dot(u2, v2 + cross(w2, r2))
// J = -[u1 cross(r1, u1) ratio * u2  ratio * cross(r2, u2)]
// K = J * invM * JT
//   = invMass1 + invI1 * cross(r1, u1)^2 + ratio^2 * (invMass2 + invI2 * cross(r2, u2)^2)

func (def *PulleyJointDef) Initialize(bA *Body, bB *Body, groundA Vec2, groundB Vec2, anchorA Vec2, anchorB Vec2, r float64) {
	def.BodyA = bA
	def.BodyB = bB
	def.GroundAnchorA = groundA
	def.GroundAnchorB = groundB
	def.LocalAnchorA = def.BodyA.GetLocalPoint(anchorA)
	def.LocalAnchorB = def.BodyB.GetLocalPoint(anchorB)
	dA := Vec2Sub(anchorA, groundA)
	def.LengthA = dA.Length()
	dB := Vec2Sub(anchorB, groundB)
	def.LengthB = dB.Length()
	def.Ratio = r
	Assert(def.Ratio > Epsilon)
}

func MakePulleyJoint(def *PulleyJointDef) *PulleyJoint {
	res := PulleyJoint{
		Joint: MakeJoint(def),
	}

	res.GroundAnchorA = def.GroundAnchorA
	res.GroundAnchorB = def.GroundAnchorB
	res.LocalAnchorA = def.LocalAnchorA
	res.LocalAnchorB = def.LocalAnchorB

	res.LengthA = def.LengthA
	res.LengthB = def.LengthB

	Assert(def.Ratio != 0.0)
	res.Ratio = def.Ratio

	res.Constant = def.LengthA + res.Ratio*def.LengthB

	res.Impulse = 0.0

	return &res
}

// applyPulleyImpulse distributes impulses PA/PB, one per side of the
// pulley, each pulling its body toward its own ground anchor (unlike
// a two-body contact impulse, both sides add rather than oppose).
func applyPulleyImpulse(vA *Vec2, wA *float64, rA Vec2, mA, iA float64, PA Vec2, vB *Vec2, wB *float64, rB Vec2, mB, iB float64, PB Vec2) {
	vA.AddAssign(Vec2MulScalar(mA, PA))
	*wA += iA * Vec2Cross(rA, PA)
	vB.AddAssign(Vec2MulScalar(mB, PB))
	*wB += iB * Vec2Cross(rB, PB)
}

func (joint *PulleyJoint) InitVelocityConstraints(data SolverData) {
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

	joint.RA = RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.LocalCenterA))
	joint.RB = RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.LocalCenterB))

	// Get the pulley axes.
	joint.UA = Vec2Sub(Vec2Add(cA, joint.RA), joint.GroundAnchorA)
	joint.UB = Vec2Sub(Vec2Add(cB, joint.RB), joint.GroundAnchorB)

	lengthA := joint.UA.Length()
	lengthB := joint.UB.Length()

	if lengthA > 10.0*LinearSlop {
		joint.UA.MulAssign(1.0 / lengthA)
	} else {
		joint.UA.SetZero()
	}

	if lengthB > 10.0*LinearSlop {
		joint.UB.MulAssign(1.0 / lengthB)
	} else {
		joint.UB.SetZero()
	}

	// Compute effective mass.
	ruA := Vec2Cross(joint.RA, joint.UA)
	ruB := Vec2Cross(joint.RB, joint.UB)

	mA := joint.InvMassA + joint.InvIA*ruA*ruA
	mB := joint.InvMassB + joint.InvIB*ruB*ruB

	joint.Mass = mA + joint.Ratio*joint.Ratio*mB

	if joint.Mass > 0.0 {
		joint.Mass = 1.0 / joint.Mass
	}

	if data.Step.WarmStarting {
		// Scale impulses to support variable time steps.
		joint.Impulse *= data.Step.DtRatio

		// Warm starting.
		PA := Vec2MulScalar(-(joint.Impulse), joint.UA)
		PB := Vec2MulScalar(-joint.Ratio*joint.Impulse, joint.UB)

		applyPulleyImpulse(&vA, &wA, joint.RA, joint.InvMassA, joint.InvIA, PA, &vB, &wB, joint.RB, joint.InvMassB, joint.InvIB, PB)
	} else {
		joint.Impulse = 0.0
	}

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *PulleyJoint) SolveVelocityConstraints(data SolverData) {
	vA := data.Velocities[joint.IndexA].V
	wA := data.Velocities[joint.IndexA].W
	vB := data.Velocities[joint.IndexB].V
	wB := data.Velocities[joint.IndexB].W

	vpA := Vec2Add(vA, Vec2CrossScalarVector(wA, joint.RA))
	vpB := Vec2Add(vB, Vec2CrossScalarVector(wB, joint.RB))

	Cdot := -Vec2Dot(joint.UA, vpA) - joint.Ratio*Vec2Dot(joint.UB, vpB)
	impulse := -joint.Mass * Cdot
	joint.Impulse += impulse

	PA := Vec2MulScalar(-impulse, joint.UA)
	PB := Vec2MulScalar(-joint.Ratio*impulse, joint.UB)
	applyPulleyImpulse(&vA, &wA, joint.RA, joint.InvMassA, joint.InvIA, PA, &vB, &wB, joint.RB, joint.InvMassB, joint.InvIB, PB)

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *PulleyJoint) SolvePositionConstraints(data SolverData) bool {
	cA := data.Positions[joint.IndexA].C
	aA := data.Positions[joint.IndexA].A
	cB := data.Positions[joint.IndexB].C
	aB := data.Positions[joint.IndexB].A

	qA := MakeRotFromAngle(aA)
	qB := MakeRotFromAngle(aB)

	rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.LocalCenterA))
	rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.LocalCenterB))

	// Get the pulley axes.
	uA := Vec2Sub(Vec2Add(cA, rA), joint.GroundAnchorA)
	uB := Vec2Sub(Vec2Add(cB, rB), joint.GroundAnchorB)

	lengthA := uA.Length()
	lengthB := uB.Length()

	if lengthA > 10.0*LinearSlop {
		uA.MulAssign(1.0 / lengthA)
	} else {
		uA.SetZero()
	}

	if lengthB > 10.0*LinearSlop {
		uB.MulAssign(1.0 / lengthB)
	} else {
		uB.SetZero()
	}

	// Compute effective mass.
	ruA := Vec2Cross(rA, uA)
	ruB := Vec2Cross(rB, uB)

	mA := joint.InvMassA + joint.InvIA*ruA*ruA
	mB := joint.InvMassB + joint.InvIB*ruB*ruB

	mass := mA + joint.Ratio*joint.Ratio*mB

	if mass > 0.0 {
		mass = 1.0 / mass
	}

	C := joint.Constant - lengthA - joint.Ratio*lengthB
	linearError := math.Abs(C)

	impulse := -mass * C

	PA := Vec2MulScalar(-impulse, uA)
	PB := Vec2MulScalar(-joint.Ratio*impulse, uB)

	applyPulleyImpulse(&cA, &aA, rA, joint.InvMassA, joint.InvIA, PA, &cB, &aB, rB, joint.InvMassB, joint.InvIB, PB)

	data.Positions[joint.IndexA].C = cA
	data.Positions[joint.IndexA].A = aA
	data.Positions[joint.IndexB].C = cB
	data.Positions[joint.IndexB].A = aB

	return linearError < LinearSlop
}

func (joint PulleyJoint) GetAnchorA() Vec2 {
	return joint.BodyA.GetWorldPoint(joint.LocalAnchorA)
}

func (joint PulleyJoint) GetAnchorB() Vec2 {
	return joint.BodyB.GetWorldPoint(joint.LocalAnchorB)
}

func (joint PulleyJoint) GetReactionForce(inv_dt float64) Vec2 {
	P := Vec2MulScalar(joint.Impulse, joint.UB)
	return Vec2MulScalar(inv_dt, P)
}

func (joint PulleyJoint) GetReactionTorque(inv_dt float64) float64 {
	return 0.0
}

func (joint PulleyJoint) GetGroundAnchorA() Vec2 {
	return joint.GroundAnchorA
}

func (joint PulleyJoint) GetGroundAnchorB() Vec2 {
	return joint.GroundAnchorB
}

func (joint PulleyJoint) GetLengthA() float64 {
	return joint.LengthA
}

func (joint PulleyJoint) GetLengthB() float64 {
	return joint.LengthB
}

func (joint PulleyJoint) GetRatio() float64 {
	return joint.Ratio
}

func (joint PulleyJoint) GetCurrentLengthA() float64 {
	p := joint.BodyA.GetWorldPoint(joint.LocalAnchorA)
	s := joint.GroundAnchorA
	d := Vec2Sub(p, s)
	return d.Length()
}

func (joint PulleyJoint) GetCurrentLengthB() float64 {
	p := joint.BodyB.GetWorldPoint(joint.LocalAnchorB)
	s := joint.GroundAnchorB
	d := Vec2Sub(p, s)
	return d.Length()
}

// Dump is intentionally a no-op: scene serialization is out of
// scope for this package (see the world persistence discussion in
// DESIGN.md).
func (joint *PulleyJoint) Dump() {}


func (joint *PulleyJoint) ShiftOrigin(newOrigin Vec2) {
	joint.GroundAnchorA.SubAssign(newOrigin)
	joint.GroundAnchorB.SubAssign(newOrigin)
}
