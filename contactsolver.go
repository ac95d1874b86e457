package physics2d

import (
	"math"
)

type VelocityConstraintPoint struct {
	RA             Vec2
	RB             Vec2
	NormalImpulse  float64
	TangentImpulse float64
	NormalMass     float64
	TangentMass    float64
	VelocityBias   float64
}

type ContactVelocityConstraint struct {
	Points             [MaxManifoldPoints]VelocityConstraintPoint
	Normal             Vec2
	NormalMass         Mat22
	K                  Mat22
	IndexA             int
	IndexB             int
	InvMassA, InvMassB float64
	InvIA, InvIB       float64
	Friction           float64
	Restitution        float64
	TangentSpeed       float64
	PointCount         int
	ContactIndex       int
}

type ContactSolverDef struct {
	Step       TimeStep
	Contacts   []ContactInterface // has to be backed by pointers
	Count      int
	Positions  []Position
	Velocities []Velocity
}

func MakeContactSolverDef() ContactSolverDef {
	return ContactSolverDef{
		Contacts:   make([]ContactInterface, 0),
		Positions:  make([]Position, 0),
		Velocities: make([]Velocity, 0),
	}
}

type ContactSolver struct {
	Step                TimeStep
	Positions           []Position
	Velocities          []Velocity
	PositionConstraints []ContactPositionConstraint
	VelocityConstraints []ContactVelocityConstraint
	Contacts            []ContactInterface // has to be backed by pointers
	Count               int
}

// blockSolveEnabled gates the two-point LCP solve; when false every
// contact falls back to solving its normal impulses one point at a
// time, which is slower to converge but never has to reason about an
// ill-conditioned 2x2 effective-mass matrix.
var blockSolveEnabled = true

type ContactPositionConstraint struct {
	LocalPoints                [MaxManifoldPoints]Vec2
	LocalNormal                Vec2
	LocalPoint                 Vec2
	IndexA                     int
	IndexB                     int
	InvMassA, InvMassB         float64
	LocalCenterA, LocalCenterB Vec2
	InvIA, InvIB               float64
	Type                       uint8
	RadiusA, RadiusB           float64
	PointCount                 int
}

// velocityAt returns the linear velocity of the material point r away
// from a body's center of mass, given that body's linear velocity v
// and angular velocity w.
func velocityAt(v Vec2, w float64, r Vec2) Vec2 {
	return Vec2Add(v, Vec2CrossScalarVector(w, r))
}

// approachSpeed returns the velocity of the contact point on B relative
// to the corresponding point on A, projected onto axis. The result is
// negative while the points close along axis and positive while they
// separate.
func approachSpeed(vA Vec2, wA float64, rA Vec2, vB Vec2, wB float64, rB Vec2, axis Vec2) float64 {
	closing := Vec2Sub(velocityAt(vB, wB, rB), velocityAt(vA, wA, rA))
	return Vec2Dot(closing, axis)
}

// pointMass inverts the effective mass k = mA + mB + iA*rnA^2 + iB*rnB^2
// for a single constraint row, returning zero when the row is
// degenerate (both bodies have infinite mass along that axis).
func pointMass(mA, mB, iA, iB, rnA, rnB float64) float64 {
	k := mA + mB + iA*rnA*rnA + iB*rnB*rnB
	if k > 0.0 {
		return 1.0 / k
	}
	return 0.0
}

// applyImpulseAt distributes impulse P at contact arms rA/rB between
// the two bodies' linear and angular velocities.
func applyImpulseAt(vA *Vec2, wA *float64, rA Vec2, mA, iA float64, vB *Vec2, wB *float64, rB Vec2, mB, iB float64, P Vec2) {
	vA.SubAssign(Vec2MulScalar(mA, P))
	*wA -= iA * Vec2Cross(rA, P)
	vB.AddAssign(Vec2MulScalar(mB, P))
	*wB += iB * Vec2Cross(rB, P)
}

// applyPositionCorrectionAt is applyImpulseAt's position-level
// counterpart, used by position solvers that walk cA/cB and aA/aB
// instead of velocities.
func applyPositionCorrectionAt(cA *Vec2, aA *float64, rA Vec2, mA, iA float64, cB *Vec2, aB *float64, rB Vec2, mB, iB float64, P Vec2) {
	cA.SubAssign(Vec2MulScalar(mA, P))
	*aA -= iA * Vec2Cross(rA, P)
	cB.AddAssign(Vec2MulScalar(mB, P))
	*aB += iB * Vec2Cross(rB, P)
}

// applyBlockImpulse is applyImpulseAt specialised for the two-point
// block solver, where the incremental impulse d carries a component
// for each of the contact's two points along the shared normal.
func applyBlockImpulse(vA *Vec2, wA *float64, mA, iA float64, vB *Vec2, wB *float64, mB, iB float64, cp1, cp2 *VelocityConstraintPoint, d Vec2, normal Vec2) {
	P1 := Vec2MulScalar(d.X, normal)
	P2 := Vec2MulScalar(d.Y, normal)
	combined := Vec2Add(P1, P2)
	vA.SubAssign(Vec2MulScalar(mA, combined))
	*wA -= iA * (Vec2Cross(cp1.RA, P1) + Vec2Cross(cp2.RA, P2))
	vB.AddAssign(Vec2MulScalar(mB, combined))
	*wB += iB * (Vec2Cross(cp1.RB, P1) + Vec2Cross(cp2.RB, P2))
}

func MakeContactSolver(def *ContactSolverDef) ContactSolver {
	solver := ContactSolver{}

	solver.Step = def.Step
	solver.Count = def.Count
	solver.PositionConstraints = make([]ContactPositionConstraint, solver.Count)
	solver.VelocityConstraints = make([]ContactVelocityConstraint, solver.Count)
	solver.Positions = def.Positions
	solver.Velocities = def.Velocities
	solver.Contacts = def.Contacts

	// Initialize position independent portions of the constraints.
	for i := 0; i < solver.Count; i++ {
		contact := solver.Contacts[i]

		fixtureA := contact.GetFixtureA()
		fixtureB := contact.GetFixtureB()
		shapeA := fixtureA.GetShape()
		shapeB := fixtureB.GetShape()
		radiusA := shapeA.GetRadius()
		radiusB := shapeB.GetRadius()
		bodyA := fixtureA.GetBody()
		bodyB := fixtureB.GetBody()
		manifold := contact.GetManifold()

		pointCount := manifold.PointCount
		Assert(pointCount > 0)

		vc := &solver.VelocityConstraints[i]
		vc.Friction = contact.GetFriction()
		vc.Restitution = contact.GetRestitution()
		vc.TangentSpeed = contact.GetTangentSpeed()
		vc.IndexA = bodyA.IslandIndex
		vc.IndexB = bodyB.IslandIndex
		vc.InvMassA = bodyA.InvMass
		vc.InvMassB = bodyB.InvMass
		vc.InvIA = bodyA.InvI
		vc.InvIB = bodyB.InvI
		vc.ContactIndex = i
		vc.PointCount = pointCount
		vc.K.SetZero()
		vc.NormalMass.SetZero()

		pc := &solver.PositionConstraints[i]
		pc.IndexA = bodyA.IslandIndex
		pc.IndexB = bodyB.IslandIndex
		pc.InvMassA = bodyA.InvMass
		pc.InvMassB = bodyB.InvMass
		pc.LocalCenterA = bodyA.Sweep.LocalCenter
		pc.LocalCenterB = bodyB.Sweep.LocalCenter
		pc.InvIA = bodyA.InvI
		pc.InvIB = bodyB.InvI
		pc.LocalNormal = manifold.LocalNormal
		pc.LocalPoint = manifold.LocalPoint
		pc.PointCount = pointCount
		pc.RadiusA = radiusA
		pc.RadiusB = radiusB
		pc.Type = manifold.Type

		for j := 0; j < pointCount; j++ {
			cp := &manifold.Points[j]
			vcp := &vc.Points[j]

			if solver.Step.WarmStarting {
				vcp.NormalImpulse = solver.Step.DtRatio * cp.NormalImpulse
				vcp.TangentImpulse = solver.Step.DtRatio * cp.TangentImpulse
			} else {
				vcp.NormalImpulse = 0.0
				vcp.TangentImpulse = 0.0
			}

			vcp.RA.SetZero()
			vcp.RB.SetZero()
			vcp.NormalMass = 0.0
			vcp.TangentMass = 0.0
			vcp.VelocityBias = 0.0

			pc.LocalPoints[j] = cp.LocalPoint
		}
	}

	return solver
}

func (solver *ContactSolver) Destroy() {
}

// Initialize position dependent portions of the velocity constraints.
func (solver *ContactSolver) InitializeVelocityConstraints() {
	for i := 0; i < solver.Count; i++ {
		vc := &solver.VelocityConstraints[i]
		pc := &solver.PositionConstraints[i]

		radiusA := pc.RadiusA
		radiusB := pc.RadiusB
		manifold := solver.Contacts[vc.ContactIndex].GetManifold()

		indexA := vc.IndexA
		indexB := vc.IndexB

		mA := vc.InvMassA
		mB := vc.InvMassB
		iA := vc.InvIA
		iB := vc.InvIB
		localCenterA := pc.LocalCenterA
		localCenterB := pc.LocalCenterB

		cA := solver.Positions[indexA].C
		aA := solver.Positions[indexA].A
		vA := solver.Velocities[indexA].V
		wA := solver.Velocities[indexA].W

		cB := solver.Positions[indexB].C
		aB := solver.Positions[indexB].A
		vB := solver.Velocities[indexB].V
		wB := solver.Velocities[indexB].W

		Assert(manifold.PointCount > 0)

		xfA := MakeTransform()
		xfB := MakeTransform()
		xfA.Q.Set(aA)
		xfB.Q.Set(aB)
		xfA.P = Vec2Sub(cA, RotVec2Mul(xfA.Q, localCenterA))
		xfB.P = Vec2Sub(cB, RotVec2Mul(xfB.Q, localCenterB))

		worldManifold := MakeWorldManifold()
		worldManifold.Initialize(manifold, xfA, radiusA, xfB, radiusB)

		vc.Normal = worldManifold.Normal

		tangent := Vec2CrossVectorScalar(vc.Normal, 1.0)

		pointCount := vc.PointCount
		for j := 0; j < pointCount; j++ {
			vcp := &vc.Points[j]

			vcp.RA = Vec2Sub(worldManifold.Points[j], cA)
			vcp.RB = Vec2Sub(worldManifold.Points[j], cB)

			rnA := Vec2Cross(vcp.RA, vc.Normal)
			rnB := Vec2Cross(vcp.RB, vc.Normal)
			vcp.NormalMass = pointMass(mA, mB, iA, iB, rnA, rnB)

			rtA := Vec2Cross(vcp.RA, tangent)
			rtB := Vec2Cross(vcp.RB, tangent)
			vcp.TangentMass = pointMass(mA, mB, iA, iB, rtA, rtB)

			// Bias the normal constraint toward the restitution target
			// only when the points are already approaching along the
			// normal; separating contacts get no bias.
			vcp.VelocityBias = 0.0
			closingSpeed := approachSpeed(vA, wA, vcp.RA, vB, wB, vcp.RB, vc.Normal)
			if closingSpeed < -VelocityThreshold {
				vcp.VelocityBias = -vc.Restitution * closingSpeed
			}
		}

		if pointCount == 2 && blockSolveEnabled {
			setupBlockSolver(vc, mA, mB, iA, iB)
		}
	}
}

// setupBlockSolver builds the 2x2 effective-mass matrix for a
// two-point contact patch, or drops back to single-point solving when
// the matrix would be too ill-conditioned to invert safely.
func setupBlockSolver(vc *ContactVelocityConstraint, mA, mB, iA, iB float64) {
	cp1 := &vc.Points[0]
	cp2 := &vc.Points[1]

	rn1A := Vec2Cross(cp1.RA, vc.Normal)
	rn1B := Vec2Cross(cp1.RB, vc.Normal)
	rn2A := Vec2Cross(cp2.RA, vc.Normal)
	rn2B := Vec2Cross(cp2.RB, vc.Normal)

	k11 := mA + mB + iA*rn1A*rn1A + iB*rn1B*rn1B
	k22 := mA + mB + iA*rn2A*rn2A + iB*rn2B*rn2B
	k12 := mA + mB + iA*rn1A*rn2A + iB*rn1B*rn2B

	const maxConditionNumber = 1000.0
	if k11*k11 < maxConditionNumber*(k11*k22-k12*k12) {
		vc.K.Ex.Set(k11, k12)
		vc.K.Ey.Set(k12, k22)
		vc.NormalMass = vc.K.GetInverse()
	} else {
		// Redundant constraint pair; one point carries the whole patch.
		vc.PointCount = 1
	}
}

func (solver *ContactSolver) WarmStart() {
	// Warm start.
	for i := 0; i < solver.Count; i++ {
		vc := &solver.VelocityConstraints[i]

		indexA := vc.IndexA
		indexB := vc.IndexB
		mA := vc.InvMassA
		iA := vc.InvIA
		mB := vc.InvMassB
		iB := vc.InvIB
		pointCount := vc.PointCount

		vA := solver.Velocities[indexA].V
		wA := solver.Velocities[indexA].W
		vB := solver.Velocities[indexB].V
		wB := solver.Velocities[indexB].W

		normal := vc.Normal
		tangent := Vec2CrossVectorScalar(normal, 1.0)

		for j := 0; j < pointCount; j++ {
			vcp := &vc.Points[j]
			P := Vec2Add(Vec2MulScalar(vcp.NormalImpulse, normal), Vec2MulScalar(vcp.TangentImpulse, tangent))
			applyImpulseAt(&vA, &wA, vcp.RA, mA, iA, &vB, &wB, vcp.RB, mB, iB, P)
		}

		solver.Velocities[indexA].V = vA
		solver.Velocities[indexA].W = wA
		solver.Velocities[indexB].V = vB
		solver.Velocities[indexB].W = wB
	}
}

func (solver *ContactSolver) SolveVelocityConstraints() {
	for i := 0; i < solver.Count; i++ {
		vc := &solver.VelocityConstraints[i]

		indexA := vc.IndexA
		indexB := vc.IndexB
		mA := vc.InvMassA
		iA := vc.InvIA
		mB := vc.InvMassB
		iB := vc.InvIB
		pointCount := vc.PointCount

		vA := solver.Velocities[indexA].V
		wA := solver.Velocities[indexA].W
		vB := solver.Velocities[indexB].V
		wB := solver.Velocities[indexB].W

		normal := vc.Normal
		tangent := Vec2CrossVectorScalar(normal, 1.0)
		friction := vc.Friction

		Assert(pointCount == 1 || pointCount == 2)

		// Tangent (friction) constraints solve before the normal
		// constraints: keeping penetration resolved matters more than
		// friction, and friction's clamp depends on the normal impulse
		// from the previous iteration anyway.
		for j := 0; j < pointCount; j++ {
			vcp := &vc.Points[j]

			closingSpeed := approachSpeed(vA, wA, vcp.RA, vB, wB, vcp.RB, tangent) - vc.TangentSpeed
			lambda := vcp.TangentMass * (-closingSpeed)

			maxFriction := friction * vcp.NormalImpulse
			newImpulse := FloatClamp(vcp.TangentImpulse+lambda, -maxFriction, maxFriction)
			lambda = newImpulse - vcp.TangentImpulse
			vcp.TangentImpulse = newImpulse

			P := Vec2MulScalar(lambda, tangent)
			applyImpulseAt(&vA, &wA, vcp.RA, mA, iA, &vB, &wB, vcp.RB, mB, iB, P)
		}

		if pointCount == 1 || !blockSolveEnabled {
			for j := 0; j < pointCount; j++ {
				vcp := &vc.Points[j]

				closingSpeed := approachSpeed(vA, wA, vcp.RA, vB, wB, vcp.RB, normal)
				lambda := -vcp.NormalMass * (closingSpeed - vcp.VelocityBias)

				newImpulse := math.Max(vcp.NormalImpulse+lambda, 0.0)
				lambda = newImpulse - vcp.NormalImpulse
				vcp.NormalImpulse = newImpulse

				P := Vec2MulScalar(lambda, normal)
				applyImpulseAt(&vA, &wA, vcp.RA, mA, iA, &vB, &wB, vcp.RB, mB, iB, P)
			}
		} else {
			// Two-point contact patch: the normal impulses at both
			// points are coupled (pushing at one point changes the
			// separation velocity at the other), so they're solved
			// together as a small LCP rather than one at a time.
			//
			// vn = K*x + b, subject to vn >= 0, x >= 0, vn_i*x_i = 0.
			//
			// Total enumeration (Murty) tries each of the four sign
			// patterns the complementarity condition allows - both
			// points separating, both driven to zero separation, or
			// one of each - and keeps the first that is self-consistent.
			//
			// The accumulated impulse from prior iterations, a, is
			// folded into b so solving for x directly (rather than for
			// an increment d = x - a) still respects the existing clamp:
			//
			// vn = K*(a+d) + b = K*x + (b - K*a) = K*x + b'
			//    = A * (x - a) + b
			//    = A * x + b - A * a
			//    = A * x + b'
			// b' = b - A * a;

			cp1 := &vc.Points[0]
			cp2 := &vc.Points[1]

			priorImpulse := MakeVec2(cp1.NormalImpulse, cp2.NormalImpulse)
			Assert(priorImpulse.X >= 0.0 && priorImpulse.Y >= 0.0)

			vn1 := approachSpeed(vA, wA, cp1.RA, vB, wB, cp1.RB, normal)
			vn2 := approachSpeed(vA, wA, cp2.RA, vB, wB, cp2.RB, normal)

			// b' folds the already-accumulated impulse into the offset
			// so solving for total impulse x still respects the clamp
			// from earlier iterations (see setup comment above).
			bPrime := MakeVec2(vn1-cp1.VelocityBias, vn2-cp2.VelocityBias)
			bPrime.SubAssign(Vec2Mat22Mul(vc.K, priorImpulse))

			for {
				// Case 1: assume both points separate exactly (vn = 0)
				// and solve x = -K^-1 * b' directly.
				x := Vec2Mat22Mul(vc.NormalMass, bPrime).Neg()
				if x.X >= 0.0 && x.Y >= 0.0 {
					d := Vec2Sub(x, priorImpulse)
					applyBlockImpulse(&vA, &wA, mA, iA, &vB, &wB, mB, iB, cp1, cp2, d, normal)
					cp1.NormalImpulse = x.X
					cp2.NormalImpulse = x.Y
					break
				}

				// Case 2: point 1 separates exactly, point 2 carries no
				// impulse (its constraint is slack).
				x.X = -cp1.NormalMass * bPrime.X
				x.Y = 0.0
				if resultingVn2 := vc.K.Ex.Y*x.X + bPrime.Y; x.X >= 0.0 && resultingVn2 >= 0.0 {
					d := Vec2Sub(x, priorImpulse)
					applyBlockImpulse(&vA, &wA, mA, iA, &vB, &wB, mB, iB, cp1, cp2, d, normal)
					cp1.NormalImpulse = x.X
					cp2.NormalImpulse = x.Y
					break
				}

				// Case 3: the mirror of case 2, point 2 separates exactly.
				x.X = 0.0
				x.Y = -cp2.NormalMass * bPrime.Y
				if resultingVn1 := vc.K.Ey.X*x.Y + bPrime.X; x.Y >= 0.0 && resultingVn1 >= 0.0 {
					d := Vec2Sub(x, priorImpulse)
					applyBlockImpulse(&vA, &wA, mA, iA, &vB, &wB, mB, iB, cp1, cp2, d, normal)
					cp1.NormalImpulse = x.X
					cp2.NormalImpulse = x.Y
					break
				}

				// Case 4: neither point carries impulse; both must
				// already be separating for this to be consistent.
				if bPrime.X >= 0.0 && bPrime.Y >= 0.0 {
					d := Vec2Sub(MakeVec2(0, 0), priorImpulse)
					applyBlockImpulse(&vA, &wA, mA, iA, &vB, &wB, mB, iB, cp1, cp2, d, normal)
					cp1.NormalImpulse = 0.0
					cp2.NormalImpulse = 0.0
					break
				}

				// None of the four sign patterns is self-consistent;
				// leave the impulses as they were this iteration.
				break
			}
		}

		solver.Velocities[indexA].V = vA
		solver.Velocities[indexA].W = wA
		solver.Velocities[indexB].V = vB
		solver.Velocities[indexB].W = wB
	}
}

func (solver *ContactSolver) StoreImpulses() {
	for i := 0; i < solver.Count; i++ {
		vc := &solver.VelocityConstraints[i]
		manifold := solver.Contacts[vc.ContactIndex].GetManifold()

		for j := 0; j < vc.PointCount; j++ {
			manifold.Points[j].NormalImpulse = vc.Points[j].NormalImpulse
			manifold.Points[j].TangentImpulse = vc.Points[j].TangentImpulse
		}
	}
}

type PositionSolverManifold struct {
	Normal     Vec2
	Point      Vec2
	Separation float64
}

func MakePositionSolverManifold() PositionSolverManifold {
	return PositionSolverManifold{}
}

func (solvermanifold *PositionSolverManifold) Initialize(pc *ContactPositionConstraint, xfA Transform, xfB Transform, index int) {

	Assert(pc.PointCount > 0)

	switch pc.Type {
	case ManifoldCircles:
		{
			pointA := TransformVec2Mul(xfA, pc.LocalPoint)
			pointB := TransformVec2Mul(xfB, pc.LocalPoints[0])
			solvermanifold.Normal = Vec2Sub(pointB, pointA)
			solvermanifold.Normal.Normalize()
			solvermanifold.Point = Vec2MulScalar(0.5, Vec2Add(pointA, pointB))
			solvermanifold.Separation = Vec2Dot(Vec2Sub(pointB, pointA), solvermanifold.Normal) - pc.RadiusA - pc.RadiusB
		}
		break

	case ManifoldFaceA:
		{
			solvermanifold.Normal = RotVec2Mul(xfA.Q, pc.LocalNormal)
			planePoint := TransformVec2Mul(xfA, pc.LocalPoint)

			clipPoint := TransformVec2Mul(xfB, pc.LocalPoints[index])
			solvermanifold.Separation = Vec2Dot(Vec2Sub(clipPoint, planePoint), solvermanifold.Normal) - pc.RadiusA - pc.RadiusB
			solvermanifold.Point = clipPoint
		}
		break

	case ManifoldFaceB:
		{
			solvermanifold.Normal = RotVec2Mul(xfB.Q, pc.LocalNormal)
			planePoint := TransformVec2Mul(xfB, pc.LocalPoint)

			clipPoint := TransformVec2Mul(xfA, pc.LocalPoints[index])
			solvermanifold.Separation = Vec2Dot(Vec2Sub(clipPoint, planePoint), solvermanifold.Normal) - pc.RadiusA - pc.RadiusB
			solvermanifold.Point = clipPoint

			// Ensure normal points from A to B
			solvermanifold.Normal = solvermanifold.Normal.Neg()
		}
		break
	}
}

// Sequential solver.
func (solver *ContactSolver) SolvePositionConstraints() bool {

	minSeparation := 0.0

	for i := 0; i < solver.Count; i++ {
		pc := &solver.PositionConstraints[i]

		indexA := pc.IndexA
		indexB := pc.IndexB
		localCenterA := pc.LocalCenterA
		mA := pc.InvMassA
		iA := pc.InvIA
		localCenterB := pc.LocalCenterB
		mB := pc.InvMassB
		iB := pc.InvIB
		pointCount := pc.PointCount

		cA := solver.Positions[indexA].C
		aA := solver.Positions[indexA].A

		cB := solver.Positions[indexB].C
		aB := solver.Positions[indexB].A

		// Solve normal constraints
		for j := 0; j < pointCount; j++ {
			xfA := MakeTransform()
			xfB := MakeTransform()

			xfA.Q.Set(aA)
			xfB.Q.Set(aB)
			xfA.P = Vec2Sub(cA, RotVec2Mul(xfA.Q, localCenterA))
			xfB.P = Vec2Sub(cB, RotVec2Mul(xfB.Q, localCenterB))

			psm := MakePositionSolverManifold()
			psm.Initialize(pc, xfA, xfB, j)
			normal := psm.Normal

			point := psm.Point
			separation := psm.Separation

			rA := Vec2Sub(point, cA)
			rB := Vec2Sub(point, cB)

			// Track max constraint error.
			minSeparation = math.Min(minSeparation, separation)

			// Prevent large corrections and allow slop.
			C := FloatClamp(Baumgarte*(separation+LinearSlop), -MaxLinearCorrection, 0.0)

			// Compute the effective mass.
			rnA := Vec2Cross(rA, normal)
			rnB := Vec2Cross(rB, normal)
			K := mA + mB + iA*rnA*rnA + iB*rnB*rnB

			// Compute normal impulse
			impulse := 0.0
			if K > 0.0 {
				impulse = -C / K
			}

			P := Vec2MulScalar(impulse, normal)

			cA.SubAssign(Vec2MulScalar(mA, P))
			aA -= iA * Vec2Cross(rA, P)

			cB.AddAssign(Vec2MulScalar(mB, P))
			aB += iB * Vec2Cross(rB, P)
		}

		solver.Positions[indexA].C = cA
		solver.Positions[indexA].A = aA

		solver.Positions[indexB].C = cB
		solver.Positions[indexB].A = aB
	}

	// We can't expect minSpeparation >= -LinearSlop because we don't
	// push the separation above -LinearSlop.
	return minSeparation >= -3.0*LinearSlop
}

// Sequential position solver for position constraints.
func (solver *ContactSolver) SolveTOIPositionConstraints(toiIndexA int, toiIndexB int) bool {

	minSeparation := 0.0

	for i := 0; i < solver.Count; i++ {
		pc := &solver.PositionConstraints[i]

		indexA := pc.IndexA
		indexB := pc.IndexB
		localCenterA := pc.LocalCenterA
		localCenterB := pc.LocalCenterB
		pointCount := pc.PointCount

		mA := 0.0
		iA := 0.0
		if indexA == toiIndexA || indexA == toiIndexB {
			mA = pc.InvMassA
			iA = pc.InvIA
		}

		mB := 0.0
		iB := 0.0
		if indexB == toiIndexA || indexB == toiIndexB {
			mB = pc.InvMassB
			iB = pc.InvIB
		}

		cA := solver.Positions[indexA].C
		aA := solver.Positions[indexA].A

		cB := solver.Positions[indexB].C
		aB := solver.Positions[indexB].A

		// Solve normal constraints
		for j := 0; j < pointCount; j++ {
			xfA := MakeTransform()
			xfB := MakeTransform()

			xfA.Q.Set(aA)
			xfB.Q.Set(aB)
			xfB.P = Vec2Sub(cB, RotVec2Mul(xfB.Q, localCenterB))
			xfA.P = Vec2Sub(cA, RotVec2Mul(xfA.Q, localCenterA))

			psm := MakePositionSolverManifold()
			psm.Initialize(pc, xfA, xfB, j)
			normal := psm.Normal

			point := psm.Point
			separation := psm.Separation

			rA := Vec2Sub(point, cA)
			rB := Vec2Sub(point, cB)

			// Track max constraint error.
			minSeparation = math.Min(minSeparation, separation)

			// Prevent large corrections and allow slop.
			C := FloatClamp(ToiBaumgarte*(separation+LinearSlop), -MaxLinearCorrection, 0.0)

			// Compute the effective mass.
			rnA := Vec2Cross(rA, normal)
			rnB := Vec2Cross(rB, normal)
			K := mA + mB + iA*rnA*rnA + iB*rnB*rnB

			// Compute normal impulse
			impulse := 0.0
			if K > 0.0 {
				impulse = -C / K
			}

			P := Vec2MulScalar(impulse, normal)

			cA.SubAssign(Vec2MulScalar(mA, P))
			aA -= iA * Vec2Cross(rA, P)

			cB.AddAssign(Vec2MulScalar(mB, P))
			aB += iB * Vec2Cross(rB, P)
		}

		solver.Positions[indexA].C = cA
		solver.Positions[indexA].A = aA

		solver.Positions[indexB].C = cB
		solver.Positions[indexB].A = aB
	}

	// We can't expect minSpeparation >= -LinearSlop because we don't
	// push the separation above -LinearSlop.
	return minSeparation >= -1.5*LinearSlop
}
