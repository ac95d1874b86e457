package physics2d

// Find the max separation between poly1 and poly2 using edge normals from poly1.
func FindMaxSeparation(edgeIndex *int, poly1 *PolygonShape, xf1 Transform, poly2 *PolygonShape, xf2 Transform) float64 {
	count1 := poly1.Count
	count2 := poly2.Count
	n1s := poly1.Normals
	v1s := poly1.Vertices
	v2s := poly2.Vertices

	xf := TransformMulT(xf2, xf1)

	bestIndex := 0
	maxSeparation := -MaxFloat
	for i := 0; i < count1; i++ {
		// Get poly1 normal in frame2.
		n := RotVec2Mul(xf.Q, n1s[i])
		v1 := TransformVec2Mul(xf, v1s[i])

		// Find deepest point for normal i.
		si := MaxFloat
		for j := 0; j < count2; j++ {
			sij := Vec2Dot(n, Vec2Sub(v2s[j], v1))
			if sij < si {
				si = sij
			}
		}

		if si > maxSeparation {
			maxSeparation = si
			bestIndex = i
		}
	}

	*edgeIndex = bestIndex
	return maxSeparation
}

func FindIncidentEdge(c []ClipVertex, poly1 *PolygonShape, xf1 Transform, edge1 int, poly2 *PolygonShape, xf2 Transform) {

	normals1 := poly1.Normals

	count2 := poly2.Count
	vertices2 := poly2.Vertices
	normals2 := poly2.Normals

	Assert(0 <= edge1 && edge1 < poly1.Count)

	// Get the normal of the reference edge in poly2's frame.
	normal1 := RotVec2MulT(xf2.Q, RotVec2Mul(xf1.Q, normals1[edge1]))

	// Find the incident edge on poly2.
	index := 0
	minDot := MaxFloat
	for i := 0; i < count2; i++ {
		dot := Vec2Dot(normal1, normals2[i])
		if dot < minDot {
			minDot = dot
			index = i
		}
	}

	// Build the clip vertices for the incident edge.
	i1 := index
	i2 := 0
	if i1+1 < count2 {
		i2 = i1 + 1
	}

	for k, vertIndex := range [2]int{i1, i2} {
		c[k].V = TransformVec2Mul(xf2, vertices2[vertIndex])
		c[k].Id.IndexA = uint8(edge1)
		c[k].Id.IndexB = uint8(vertIndex)
		c[k].Id.TypeA = featureFace
		c[k].Id.TypeB = featureVertex
	}
}

// referenceFace picks which of the two polygons contributes the
// reference edge for clipping: whichever axis reports the deeper
// separation, with a small tolerance biasing towards keeping A as the
// reference to avoid flickering between near-equal axes.
type referenceFace struct {
	poly1, poly2 *PolygonShape
	xf1, xf2     Transform
	edge1        int
	manifoldType uint8
	flip         uint8
}

func chooseReferenceFace(polyA *PolygonShape, xfA Transform, edgeA int, separationA float64, polyB *PolygonShape, xfB Transform, edgeB int, separationB float64) referenceFace {
	tolerance := 0.1 * LinearSlop

	if separationB > separationA+tolerance {
		return referenceFace{poly1: polyB, poly2: polyA, xf1: xfB, xf2: xfA, edge1: edgeB, manifoldType: ManifoldFaceB, flip: 1}
	}
	return referenceFace{poly1: polyA, poly2: polyB, xf1: xfA, xf2: xfB, edge1: edgeA, manifoldType: ManifoldFaceA, flip: 0}
}

// CollidePolygons runs the separating-axis test between two convex
// polygons and, if they overlap, clips the incident edge against the
// reference edge's side planes to build the contact manifold. The
// manifold's normal points from polyA to polyB.
func CollidePolygons(manifold *Manifold, polyA *PolygonShape, xfA Transform, polyB *PolygonShape, xfB Transform) {

	manifold.PointCount = 0
	totalRadius := polyA.Radius + polyB.Radius

	edgeA := 0
	separationA := FindMaxSeparation(&edgeA, polyA, xfA, polyB, xfB)
	if separationA > totalRadius {
		return
	}

	edgeB := 0
	separationB := FindMaxSeparation(&edgeB, polyB, xfB, polyA, xfA)
	if separationB > totalRadius {
		return
	}

	ref := chooseReferenceFace(polyA, xfA, edgeA, separationA, polyB, xfB, edgeB, separationB)
	poly1, poly2 := ref.poly1, ref.poly2
	xf1, xf2 := ref.xf1, ref.xf2
	edge1 := ref.edge1
	manifold.Type = ref.manifoldType

	incidentEdge := make([]ClipVertex, 2)
	FindIncidentEdge(incidentEdge, poly1, xf1, edge1, poly2, xf2)

	count1 := poly1.Count
	vertices1 := poly1.Vertices

	iv1 := edge1
	iv2 := 0
	if edge1+1 < count1 {
		iv2 = edge1 + 1
	}

	v11 := vertices1[iv1]
	v12 := vertices1[iv2]

	localTangent := Vec2Sub(v12, v11)
	localTangent.Normalize()

	localNormal := Vec2CrossVectorScalar(localTangent, 1.0)
	planePoint := Vec2MulScalar(0.5, Vec2Add(v11, v12))

	tangent := RotVec2Mul(xf1.Q, localTangent)
	normal := Vec2CrossVectorScalar(tangent, 1.0)

	v11 = TransformVec2Mul(xf1, v11)
	v12 = TransformVec2Mul(xf1, v12)

	// Face offset.
	frontOffset := Vec2Dot(normal, v11)

	// Side offsets, extended by polytope skin thickness.
	sideOffset1 := -Vec2Dot(tangent, v11) + totalRadius
	sideOffset2 := Vec2Dot(tangent, v12) + totalRadius

	// Clip incident edge against extruded edge1 side edges.
	clipPoints1 := make([]ClipVertex, 2)
	clipPoints2 := make([]ClipVertex, 2)
	np := 0

	// Clip to box side 1
	np = ClipSegmentToLine(clipPoints1, incidentEdge, tangent.Neg(), sideOffset1, iv1)

	if np < 2 {
		return
	}

	// Clip to negative box side 1
	np = ClipSegmentToLine(clipPoints2, clipPoints1, tangent, sideOffset2, iv2)

	if np < 2 {
		return
	}

	// Now clipPoints2 contains the clipped points.
	manifold.LocalNormal = localNormal
	manifold.LocalPoint = planePoint

	manifold.PointCount = keepPointsWithinRadius(manifold, clipPoints2, xf2, normal, frontOffset, totalRadius, ref.flip)
}

// swapContactFeature exchanges which side of an id names shape A vs
// shape B, needed when the reference face came from polyB rather than
// polyA so the manifold's feature ids still read consistently.
func swapContactFeature(id ContactID) ContactID {
	return ContactID{
		IndexA: id.IndexB,
		IndexB: id.IndexA,
		TypeA:  id.TypeB,
		TypeB:  id.TypeA,
	}
}

// keepPointsWithinRadius copies clipped points that still lie within
// totalRadius of the reference face into manifold, expressed in the
// incident shape's local frame, and returns how many survived.
func keepPointsWithinRadius(manifold *Manifold, clipped []ClipVertex, xf2 Transform, normal Vec2, frontOffset, totalRadius float64, flip uint8) int {
	pointCount := 0
	for i := 0; i < MaxManifoldPoints; i++ {
		separation := Vec2Dot(normal, clipped[i].V) - frontOffset
		if separation > totalRadius {
			continue
		}

		cp := &manifold.Points[pointCount]
		cp.LocalPoint = TransformVec2MulT(xf2, clipped[i].V)
		cp.Id = clipped[i].Id
		if flip != 0 {
			cp.Id = swapContactFeature(cp.Id)
		}
		pointCount++
	}
	return pointCount
}
