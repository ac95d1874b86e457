package physics2d

import "math"

/// Distance joint definition. This requires defining an
/// anchor point on both bodies and the non-zero length of the
/// distance joint. The definition uses local anchor points
/// so that the initial configuration can violate the constraint
/// slightly. This helps when saving and loading a game.
/// @warning Do not use a zero or short length.
type DistanceJointDef struct {
	JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB Vec2

	/// The natural length between the anchor points.
	Length float64

	/// The mass-spring-damper frequency in Hertz. A value of 0
	/// disables softness.
	FrequencyHz float64

	/// The damping ratio. 0 = no damping, 1 = critical damping.
	DampingRatio float64
}

func MakeDistanceJointDef() DistanceJointDef {
	res := DistanceJointDef{
		JointDef: MakeJointDef(),
	}

	res.Type = JointDistance
	res.LocalAnchorA.Set(0.0, 0.0)
	res.LocalAnchorB.Set(0.0, 0.0)
	res.Length = 1.0
	res.FrequencyHz = 0.0
	res.DampingRatio = 0.0

	return res
}

/// A distance joint constrains two points on two bodies
/// to remain at a fixed distance from each other. You can view
/// this as a massless, rigid rod.
type DistanceJoint struct {
	*Joint

	FrequencyHz  float64
	DampingRatio float64
	Bias         float64

	// Solver shared
	LocalAnchorA Vec2
	LocalAnchorB Vec2
	Gamma        float64
	Impulse      float64
	Length       float64

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
}

/// The local anchor point relative to bodyA's origin.
func (joint DistanceJoint) GetLocalAnchorA() Vec2 {
	return joint.LocalAnchorA
}

/// The local anchor point relative to bodyB's origin.
func (joint DistanceJoint) GetLocalAnchorB() Vec2 {
	return joint.LocalAnchorB
}

func (joint *DistanceJoint) SetLength(length float64) {
	joint.Length = length
}

func (joint DistanceJoint) GetLength() float64 {
	return joint.Length
}

func (joint *DistanceJoint) SetFrequency(hz float64) {
	joint.FrequencyHz = hz
}

func (joint DistanceJoint) GetFrequency() float64 {
	return joint.FrequencyHz
}

func (joint *DistanceJoint) SetDampingRatio(ratio float64) {
	joint.DampingRatio = ratio
}

func (joint DistanceJoint) GetDampingRatio() float64 {
	return joint.DampingRatio
}

// 1-D constrained system
// m (v2 - v1) = lambda
// v2 + (beta/h) * x1 + gamma * lambda = 0, gamma has units of inverse mass.
// x2 = x1 + h * v2

// 1-D mass-damper-spring system
// m (v2 - v1) + h * d * v2 + h * k *

// C = norm(p2 - p1) - L
// u = (p2 - p1) / norm(p2 - p1)
// Cdot = dot(u, v2 + cross(w2, r2) - v1 - cross(w1, r1))
// J = [-u -cross(r1, u) u cross(r2, u)]
// K = J * invM * JT
//   = invMass1 + invI1 * cross(r1, u)^2 + invMass2 + invI2 * cross(r2, u)^2

func (joint *DistanceJointDef) Initialize(b1 *Body, b2 *Body, anchor1 Vec2, anchor2 Vec2) {
	joint.BodyA = b1
	joint.BodyB = b2
	joint.LocalAnchorA = joint.BodyA.GetLocalPoint(anchor1)
	joint.LocalAnchorB = joint.BodyB.GetLocalPoint(anchor2)
	d := Vec2Sub(anchor2, anchor1)
	joint.Length = d.Length()
}

func MakeDistanceJoint(def *DistanceJointDef) *DistanceJoint {
	res := DistanceJoint{
		Joint: MakeJoint(def),
	}

	res.LocalAnchorA = def.LocalAnchorA
	res.LocalAnchorB = def.LocalAnchorB
	res.Length = def.Length
	res.FrequencyHz = def.FrequencyHz
	res.DampingRatio = def.DampingRatio
	res.Impulse = 0.0
	res.Gamma = 0.0
	res.Bias = 0.0

	return &res
}

func (joint *DistanceJoint) InitVelocityConstraints(data SolverData) {
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

	// Handle singularity.
	length := joint.U.Length()
	if length > LinearSlop {
		joint.U.MulAssign(1.0 / length)
	} else {
		joint.U.Set(0.0, 0.0)
	}

	crAu := Vec2Cross(joint.RA, joint.U)
	crBu := Vec2Cross(joint.RB, joint.U)
	invMass := joint.InvMassA + joint.InvIA*crAu*crAu + joint.InvMassB + joint.InvIB*crBu*crBu

	// Compute the effective mass matrix.
	if invMass != 0.0 {
		joint.Mass = 1.0 / invMass
	} else {
		joint.Mass = 0
	}

	if joint.FrequencyHz > 0.0 {
		C := length - joint.Length

		// Frequency
		omega := 2.0 * Pi * joint.FrequencyHz

		// Damping coefficient
		d := 2.0 * joint.Mass * joint.DampingRatio * omega

		// Spring stiffness
		k := joint.Mass * omega * omega

		// magic formulas
		h := data.Step.Dt
		joint.Gamma = h * (d + h*k)
		if joint.Gamma != 0.0 {
			joint.Gamma = 1.0 / joint.Gamma
		} else {
			joint.Gamma = 0.0
		}
		joint.Bias = C * h * k * joint.Gamma

		invMass += joint.Gamma
		if invMass != 0.0 {
			joint.Mass = 1.0 / invMass
		} else {
			joint.Mass = 0.0
		}
	} else {
		joint.Gamma = 0.0
		joint.Bias = 0.0
	}

	if data.Step.WarmStarting {
		// Scale the impulse to support a variable time step.
		joint.Impulse *= data.Step.DtRatio

		P := Vec2MulScalar(joint.Impulse, joint.U)
		applyImpulseAt(&vA, &wA, joint.RA, joint.InvMassA, joint.InvIA, &vB, &wB, joint.RB, joint.InvMassB, joint.InvIB, P)
	} else {
		joint.Impulse = 0.0
	}

	// Note: mutation on value, not ref; but OK because Velocities is an array
	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *DistanceJoint) SolveVelocityConstraints(data SolverData) {
	vA := data.Velocities[joint.IndexA].V
	wA := data.Velocities[joint.IndexA].W
	vB := data.Velocities[joint.IndexB].V
	wB := data.Velocities[joint.IndexB].W

	// Cdot = dot(u, v + cross(w, r))
	vpA := Vec2Add(vA, Vec2CrossScalarVector(wA, joint.RA))
	vpB := Vec2Add(vB, Vec2CrossScalarVector(wB, joint.RB))
	Cdot := Vec2Dot(joint.U, Vec2Sub(vpB, vpA))

	impulse := -joint.Mass * (Cdot + joint.Bias + joint.Gamma*joint.Impulse)
	joint.Impulse += impulse

	P := Vec2MulScalar(impulse, joint.U)
	applyImpulseAt(&vA, &wA, joint.RA, joint.InvMassA, joint.InvIA, &vB, &wB, joint.RB, joint.InvMassB, joint.InvIB, P)

	// Note: mutation on value, not ref; but OK because Velocities is an array
	data.Velocities[joint.IndexA].V = vA
	data.Velocities[joint.IndexA].W = wA
	data.Velocities[joint.IndexB].V = vB
	data.Velocities[joint.IndexB].W = wB
}

func (joint *DistanceJoint) SolvePositionConstraints(data SolverData) bool {
	if joint.FrequencyHz > 0.0 {
		// There is no position correction for soft distance constraints.
		return true
	}

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
	C := length - joint.Length
	C = FloatClamp(C, -MaxLinearCorrection, MaxLinearCorrection)

	impulse := -joint.Mass * C
	P := Vec2MulScalar(impulse, u)

	applyPositionCorrectionAt(&cA, &aA, rA, joint.InvMassA, joint.InvIA, &cB, &aB, rB, joint.InvMassB, joint.InvIB, P)

	// Note: mutation on value, not ref; but OK because Positions is an array
	data.Positions[joint.IndexA].C = cA
	data.Positions[joint.IndexA].A = aA
	data.Positions[joint.IndexB].C = cB
	data.Positions[joint.IndexB].A = aB

	return math.Abs(C) < LinearSlop
}

func (joint DistanceJoint) GetAnchorA() Vec2 {
	return joint.BodyA.GetWorldPoint(joint.LocalAnchorA)
}

func (joint DistanceJoint) GetAnchorB() Vec2 {
	return joint.BodyB.GetWorldPoint(joint.LocalAnchorB)
}

func (joint DistanceJoint) GetReactionForce(inv_dt float64) Vec2 {
	return Vec2MulScalar((inv_dt * joint.Impulse), joint.U)
}

func (joint DistanceJoint) GetReactionTorque(inv_dt float64) float64 {
	return 0.0
}

// Dump is intentionally a no-op: scene serialization is out of
// scope for this package (see the world persistence discussion in
// DESIGN.md).
func (joint DistanceJoint) Dump() {}

