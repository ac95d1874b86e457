package physics2d

func CollideCircles(manifold *Manifold, circleA *CircleShape, xfA Transform, circleB *CircleShape, xfB Transform) {

	manifold.PointCount = 0

	pA := TransformVec2Mul(xfA, circleA.P)
	pB := TransformVec2Mul(xfB, circleB.P)

	d := Vec2Sub(pB, pA)
	distSqr := Vec2Dot(d, d)
	rA := circleA.Radius
	rB := circleB.Radius
	radius := rA + rB
	if distSqr > radius*radius {
		return
	}

	manifold.Type = ManifoldCircles
	manifold.LocalPoint = circleA.P
	manifold.LocalNormal.SetZero()
	manifold.PointCount = 1

	manifold.Points[0].LocalPoint = circleB.P
	manifold.Points[0].Id.SetKey(0)
}

// deepestFaceSeparation returns the index of the polygon face whose
// outward normal the circle center penetrates least, and how far past
// that face the center lies. It reports tooFar if any single face
// already separates the shapes by more than radius, short-circuiting
// the rest of the search.
func deepestFaceSeparation(polygon *PolygonShape, cLocal Vec2, radius float64) (normalIndex int, separation float64, tooFar bool) {
	separation = -MaxFloat
	for i := 0; i < polygon.Count; i++ {
		s := Vec2Dot(polygon.Normals[i], Vec2Sub(cLocal, polygon.Vertices[i]))
		if s > radius {
			return 0, 0, true
		}
		if s > separation {
			separation = s
			normalIndex = i
		}
	}
	return normalIndex, separation, false
}

// setCircleFaceManifold records a single contact point between a
// circle and a polygon face, identified by its local normal and
// anchor point.
func setCircleFaceManifold(manifold *Manifold, normal, point, circleLocalPoint Vec2) {
	manifold.PointCount = 1
	manifold.Type = ManifoldFaceA
	manifold.LocalNormal = normal
	manifold.LocalPoint = point
	manifold.Points[0].LocalPoint = circleLocalPoint
	manifold.Points[0].Id.SetKey(0)
}

func CollidePolygonAndCircle(manifold *Manifold, polygonA *PolygonShape, xfA Transform, circleB *CircleShape, xfB Transform) {
	manifold.PointCount = 0

	// Compute circle position in the frame of the polygon.
	cLocal := TransformVec2MulT(xfA, TransformVec2Mul(xfB, circleB.P))
	radius := polygonA.Radius + circleB.Radius

	normalIndex, separation, tooFar := deepestFaceSeparation(polygonA, cLocal, radius)
	if tooFar {
		return
	}

	// Vertices that subtend the incident face.
	vertIndex1 := normalIndex
	vertIndex2 := 0
	if vertIndex1+1 < polygonA.Count {
		vertIndex2 = vertIndex1 + 1
	}
	v1 := polygonA.Vertices[vertIndex1]
	v2 := polygonA.Vertices[vertIndex2]

	if separation < Epsilon {
		// The center lies inside the polygon; the deepest face wins.
		faceCenter := Vec2MulScalar(0.5, Vec2Add(v1, v2))
		setCircleFaceManifold(manifold, polygonA.Normals[normalIndex], faceCenter, circleB.P)
		return
	}

	// Compute barycentric coordinates along the incident face to
	// decide whether the nearest feature is a vertex or the face
	// itself.
	u1 := Vec2Dot(Vec2Sub(cLocal, v1), Vec2Sub(v2, v1))
	u2 := Vec2Dot(Vec2Sub(cLocal, v2), Vec2Sub(v1, v2))

	switch {
	case u1 <= 0.0:
		if Vec2DistanceSquared(cLocal, v1) > radius*radius {
			return
		}
		normal := Vec2Sub(cLocal, v1)
		normal.Normalize()
		setCircleFaceManifold(manifold, normal, v1, circleB.P)

	case u2 <= 0.0:
		if Vec2DistanceSquared(cLocal, v2) > radius*radius {
			return
		}
		normal := Vec2Sub(cLocal, v2)
		normal.Normalize()
		setCircleFaceManifold(manifold, normal, v2, circleB.P)

	default:
		faceCenter := Vec2MulScalar(0.5, Vec2Add(v1, v2))
		if Vec2Dot(Vec2Sub(cLocal, faceCenter), polygonA.Normals[vertIndex1]) > radius {
			return
		}
		setCircleFaceManifold(manifold, polygonA.Normals[vertIndex1], faceCenter, circleB.P)
	}
}
