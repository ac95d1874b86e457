package physics2d

import "math"

/// Rope joint definition. This requires two body anchor points and
/// a maximum lengths.
/// Note: by default the connected objects will not collide.
/// see collideConnected in JointDef.
type RopeJointDef struct {
	JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB Vec2

	/// The maximum length of the rope.
	/// Warning: this must be larger than LinearSlop or
	/// the joint will have no effect.
	MaxLength float64
}

func MakeRopeJointDef() RopeJointDef {
	res := RopeJointDef{
		JointDef: MakeJointDef(),
	}
	res.Type = JointRope
	res.LocalAnchorA.Set(-1.0, 0.0)
	res.LocalAnchorB.Set(1.0, 0.0)
	res.MaxLength = 0.0
	return res
}

/// A rope joint enforces a maximum distance between two points
/// on two bodies. It has no other effect.
/// Warning: if you attempt to change the maximum length during
/// the simulation you will get some non-physical behavior.
/// A model that would allow you to dynamically modify the length
/// would have some sponginess, so I chose not to implement it
/// that way. See DistanceJoint if you want to dynamically
/// control length.
type RopeJoint struct {
	*Joint

	// Solver shared
	LocalAnchorA Vec2
	LocalAnchorB Vec2
	MaxLength    float64
	Length       float64
	Impulse      float64

	// Solver temp
	IndexA       int
	IndexB       int
	U            Vec2
	RA           Vec2
	RB           Vec2
	LocalCenterA Vec2
	LocalCenterB Vec2
	InvMassA     float64
	InvMassB     float64
	InvIA        float64
	InvIB        float64
	Mass         float64
	State        uint8
}

/// The local anchor point relative to bodyA's origin.
func (joint RopeJoint) GetLocalAnchorA() Vec2 {
	return joint.LocalAnchorA
}

/// The local anchor point relative to bodyB's origin.
func (joint RopeJoint) GetLocalAnchorB() Vec2 {
	return joint.LocalAnchorB
}

/// Set/Get the maximum length of the rope.
func (joint *RopeJoint) SetMaxLength(length float64) {
	joint.MaxLength = length
}

// // Limit:
// // C = norm(pB - pA) - L
// // u = (pB - pA) / norm(pB - pA)
// // Cdot = dot(u, vB + cross(wB, rB) - vA - cross(wA, rA))
// // J = [-u -cross(rA, u) u cross(rB, u)]
// // K = J * invM * JT
// //   = invMassA + invIA * cross(rA, u)^2 + invMassB + invIB * cross(rB, u)^2

func MakeRopeJoint(def *RopeJointDef) *RopeJoint {
	res := RopeJoint{
		Joint: MakeJoint(def),
	}

	res.LocalAnchorA = def.LocalAnchorA
	res.LocalAnchorB = def.LocalAnchorB

	res.MaxLength = def.MaxLength

	res.Mass = 0.0
	res.Impulse = 0.0
	res.State = LimitInactive
	res.Length = 0.0

	return &res
}

func (joint *RopeJoint) InitVelocityConstraints(data SolverData) {
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
	joint.U = Vec2Sub(Vec2Sub(Vec2Add(cB, joint.RB), cA), joint.RA)

	joint.Length = joint.U.Length()

	C := joint.Length - joint.MaxLength
	if C > 0.0 {
		joint.State = LimitAtUpper
	} else {
		joint.State = LimitInactive
	}

	if joint.Length > LinearSlop {
		joint.U.MulAssign(1.0 / joint.Length)
	} else {
		joint.U.SetZero()
		joint.Mass = 0.0
		joint.Impulse = 0.0
		return
	}

	// Compute effective mass.
	crA := Vec2Cross(joint.RA, joint.U)
	crB := Vec2Cross(joint.RB, joint.U)
	invMass := joint.InvMassA + joint.InvIA*crA*crA + joint.InvMassB + joint.InvIB*crB*crB

	if invMass != 0.0 {
		joint.Mass = 1.0 / invMass
	} else {
		joint.Mass = 0.0
	}

	if data.Step.WarmStarting {
		// Scale the impulse to support a variable time step.
		joint.Impulse *= data.Step.DtRatio

		P := Vec2MulScalar(joint.Impulse, joint.U)
		applyImpulseAt(&vA, &wA, joint.RA, joint.InvMassA, joint.InvIA, &vB, &wB, joint.RB, joint.InvMassB, joint.InvIB, P)
	} else {
		joint.Impulse = 0.0
	}

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *RopeJoint) SolveVelocityConstraints(data SolverData) {
	vA := data.Velocities[joint.IndexA].V
	wA := data.Velocities[joint.IndexA].W
	vB := data.Velocities[joint.IndexB].V
	wB := data.Velocities[joint.IndexB].W

	// Cdot = dot(u, v + cross(w, r))
	vpA := Vec2Add(vA, Vec2CrossScalarVector(wA, joint.RA))
	vpB := Vec2Add(vB, Vec2CrossScalarVector(wB, joint.RB))
	C := joint.Length - joint.MaxLength
	Cdot := Vec2Dot(joint.U, Vec2Sub(vpB, vpA))

	// Predictive constraint.
	if C < 0.0 {
		Cdot += data.Step.Inv_dt * C
	}

	impulse := -joint.Mass * Cdot
	oldImpulse := joint.Impulse
	joint.Impulse = math.Min(0.0, joint.Impulse+impulse)
	impulse = joint.Impulse - oldImpulse

	P := Vec2MulScalar(impulse, joint.U)
	applyImpulseAt(&vA, &wA, joint.RA, joint.InvMassA, joint.InvIA, &vB, &wB, joint.RB, joint.InvMassB, joint.InvIB, P)

	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *RopeJoint) SolvePositionConstraints(data SolverData) bool {

	cA := data.Positions[joint.IndexA].C
	aA := data.Positions[joint.IndexA].A
	cB := data.Positions[joint.IndexB].C
	aB := data.Positions[joint.IndexB].A

	qA := MakeRotFromAngle(aA)
	qB := MakeRotFromAngle(aB)

	rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.LocalCenterA))
	rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.LocalCenterB))
	u := Vec2Sub(Vec2Sub(Vec2Add(cB, rB), cA), rA)

	length := u.Normalize()
	C := length - joint.MaxLength

	C = FloatClamp(C, 0.0, MaxLinearCorrection)

	impulse := -joint.Mass * C
	P := Vec2MulScalar(impulse, u)

	applyPositionCorrectionAt(&cA, &aA, rA, joint.InvMassA, joint.InvIA, &cB, &aB, rB, joint.InvMassB, joint.InvIB, P)

	data.Positions[joint.IndexA].C = cA
	data.Positions[joint.IndexA].A = aA
	data.Positions[joint.IndexB].C = cB
	data.Positions[joint.IndexB].A = aB

	return length-joint.MaxLength < LinearSlop
}

func (joint RopeJoint) GetAnchorA() Vec2 {
	return joint.BodyA.GetWorldPoint(joint.LocalAnchorA)
}

func (joint RopeJoint) GetAnchorB() Vec2 {
	return joint.BodyB.GetWorldPoint(joint.LocalAnchorB)
}

func (joint RopeJoint) GetReactionForce(inv_dt float64) Vec2 {
	F := Vec2MulScalar((inv_dt * joint.Impulse), joint.U)
	return F
}

func (joint RopeJoint) GetReactionTorque(inv_dt float64) float64 {
	return 0.0
}

func (joint RopeJoint) GetMaxLength() float64 {
	return joint.MaxLength
}

func (joint RopeJoint) GetLimitState() uint8 {
	return joint.State
}

// Dump is intentionally a no-op: scene serialization is out of
// scope for this package (see the world persistence discussion in
// DESIGN.md).
func (joint *RopeJoint) Dump() {}

