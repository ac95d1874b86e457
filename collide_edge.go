package physics2d

import (
	"math"
)

// setEdgeCircleVertexManifold records a single-point vertex-region
// manifold for edge-vs-circle collision: the circle rests against an
// edge endpoint rather than the edge's face.
func setEdgeCircleVertexManifold(manifold *Manifold, cf ContactFeature, vertex, circleLocalPoint Vec2) {
	cf.TypeA = featureVertex
	manifold.PointCount = 1
	manifold.Type = ManifoldCircles
	manifold.LocalNormal.SetZero()
	manifold.LocalPoint = vertex
	manifold.Points[0].Id.SetKey(0)
	manifold.Points[0].Id.IndexA = cf.IndexA
	manifold.Points[0].Id.IndexB = cf.IndexB
	manifold.Points[0].Id.TypeA = cf.TypeA
	manifold.Points[0].Id.TypeB = cf.TypeB
	manifold.Points[0].LocalPoint = circleLocalPoint
}

// Compute contact points for edge versus circle.
// This accounts for edge connectivity.
func CollideEdgeAndCircle(manifold *Manifold, edgeA *EdgeShape, xfA Transform, circleB *CircleShape, xfB Transform) {
	manifold.PointCount = 0

	// Compute circle in frame of edge
	Q := TransformVec2MulT(xfA, TransformVec2Mul(xfB, circleB.P))

	A := edgeA.Vertex1
	B := edgeA.Vertex2
	e := Vec2Sub(B, A)

	// Barycentric coordinates
	u := Vec2Dot(e, Vec2Sub(B, Q))
	v := Vec2Dot(e, Vec2Sub(Q, A))

	radius := edgeA.Radius + circleB.Radius

	cf := MakeContactFeature()
	cf.IndexB = 0
	cf.TypeB = featureVertex

	// Region A: circle is nearest to edge vertex A, unless A's own
	// neighboring edge claims it first.
	if v <= 0.0 {
		if Vec2DistanceSquared(Q, A) > radius*radius {
			return
		}

		if edgeA.HasVertex0 {
			e1 := Vec2Sub(A, edgeA.Vertex0)
			if Vec2Dot(e1, Vec2Sub(A, Q)) > 0.0 {
				return
			}
		}

		cf.IndexA = 0
		setEdgeCircleVertexManifold(manifold, cf, A, circleB.P)
		return
	}

	// Region B: mirror of region A, anchored on vertex B instead.
	if u <= 0.0 {
		if Vec2DistanceSquared(Q, B) > radius*radius {
			return
		}

		if edgeA.HasVertex3 {
			e2 := Vec2Sub(edgeA.Vertex3, B)
			if Vec2Dot(e2, Vec2Sub(Q, B)) > 0.0 {
				return
			}
		}

		cf.IndexA = 1
		setEdgeCircleVertexManifold(manifold, cf, B, circleB.P)
		return
	}

	// Region AB
	den := Vec2Dot(e, e)
	Assert(den > 0.0)
	P := Vec2MulScalar(1.0/den, Vec2Add(Vec2MulScalar(u, A), Vec2MulScalar(v, B)))
	d := Vec2Sub(Q, P)
	dd := Vec2Dot(d, d)
	if dd > radius*radius {
		return
	}

	n := MakeVec2(-e.Y, e.X)
	if Vec2Dot(n, Vec2Sub(Q, A)) < 0.0 {
		n.Set(-n.X, -n.Y)
	}
	n.Normalize()

	cf.IndexA = 0
	cf.TypeA = featureFace
	manifold.PointCount = 1
	manifold.Type = ManifoldFaceA
	manifold.LocalNormal = n
	manifold.LocalPoint = A
	manifold.Points[0].Id.SetKey(0)
	manifold.Points[0].Id.IndexA = cf.IndexA
	manifold.Points[0].Id.IndexB = cf.IndexB
	manifold.Points[0].Id.TypeA = cf.TypeA
	manifold.Points[0].Id.TypeB = cf.TypeB
	manifold.Points[0].LocalPoint = circleB.P
}

// Candidate separating axis for the edge-vs-polygon search: either
// not yet found, or anchored on an edge of shape A or shape B.
const (
	epAxisUnknown uint8 = iota
	epAxisEdgeA
	epAxisEdgeB
)

type EPAxis struct {
	Type       uint8
	Index      int
	Separation float64
}

func MakeEPAxis() EPAxis {
	return EPAxis{}
}

// This holds polygon B expressed in frame A.
type TempPolygon struct {
	Vertices [MaxPolygonVertices]Vec2
	Normals  [MaxPolygonVertices]Vec2
	Count    int
}

// Reference face used for clipping
type ReferenceFace struct {
	I1, I2 int

	V1, V2 Vec2

	Normal Vec2

	SideNormal1 Vec2
	SideOffset1 float64

	SideNormal2 Vec2
	SideOffset2 float64
}

func MakeReferenceFace() ReferenceFace {
	return ReferenceFace{}
}

// Classification of an edge's ghost-vertex neighbor, used to decide
// whether adjacency should suppress a redundant contact normal.
const (
	vertexIsolated uint8 = iota
	vertexConcave
	vertexConvex
)

// This class collides and edge and a polygon, taking into account edge adjacency.
type EPCollider struct {
	PolygonB TempPolygon

	Xf                            Transform
	CentroidB                     Vec2
	V0, V1, V2, V3          Vec2
	Normal0, Normal1, Normal2 Vec2
	Normal                        Vec2
	Type1, Type2                uint8
	LowerLimit, UpperLimit      Vec2
	Radius                        float64
	Front                         bool
}

func MakeEPCollider() EPCollider {
	return EPCollider{}
}

// Algorithm:
// 1. Classify v1 and v2
// 2. Classify polygon centroid as front or back
// 3. Flip normal if necessary
// 4. Initialize normal range to [-pi, pi] about face normal
// 5. Adjust normal range according to adjacent edges
// 6. Visit each separating axes, only accept axes within the range
// 7. Return if _any_ axis indicates separation
// 8. Clip
func (collider *EPCollider) Collide(manifold *Manifold, edgeA *EdgeShape, xfA Transform, polygonB *PolygonShape, xfB Transform) {

	collider.Xf = TransformMulT(xfA, xfB)

	collider.CentroidB = TransformVec2Mul(collider.Xf, polygonB.Centroid)

	collider.V0 = edgeA.Vertex0
	collider.V1 = edgeA.Vertex1
	collider.V2 = edgeA.Vertex2
	collider.V3 = edgeA.Vertex3

	hasVertex0 := edgeA.HasVertex0
	hasVertex3 := edgeA.HasVertex3

	edge1 := Vec2Sub(collider.V2, collider.V1)
	edge1.Normalize()
	collider.Normal1.Set(edge1.Y, -edge1.X)
	offset1 := Vec2Dot(collider.Normal1, Vec2Sub(collider.CentroidB, collider.V1))
	offset0 := 0.0
	offset2 := 0.0
	convex1 := false
	convex2 := false

	// Is there a preceding edge?
	if hasVertex0 {
		edge0 := Vec2Sub(collider.V1, collider.V0)
		edge0.Normalize()
		collider.Normal0.Set(edge0.Y, -edge0.X)
		convex1 = Vec2Cross(edge0, edge1) >= 0.0
		offset0 = Vec2Dot(collider.Normal0, Vec2Sub(collider.CentroidB, collider.V0))
	}

	// Is there a following edge?
	if hasVertex3 {
		edge2 := Vec2Sub(collider.V3, collider.V2)
		edge2.Normalize()
		collider.Normal2.Set(edge2.Y, -edge2.X)
		convex2 = Vec2Cross(edge1, edge2) > 0.0
		offset2 = Vec2Dot(collider.Normal2, Vec2Sub(collider.CentroidB, collider.V2))
	}

	// Determine front or back collision. Determine collision normal limits.
	if hasVertex0 && hasVertex3 {
		if convex1 && convex2 {
			collider.Front = offset0 >= 0.0 || offset1 >= 0.0 || offset2 >= 0.0
			if collider.Front {
				collider.Normal = collider.Normal1
				collider.LowerLimit = collider.Normal0
				collider.UpperLimit = collider.Normal2
			} else {
				collider.Normal = collider.Normal1.Neg()
				collider.LowerLimit = collider.Normal1.Neg()
				collider.UpperLimit = collider.Normal1.Neg()
			}
		} else if convex1 {
			collider.Front = offset0 >= 0.0 || (offset1 >= 0.0 && offset2 >= 0.0)
			if collider.Front {
				collider.Normal = collider.Normal1
				collider.LowerLimit = collider.Normal0
				collider.UpperLimit = collider.Normal1
			} else {
				collider.Normal = collider.Normal1.Neg()
				collider.LowerLimit = collider.Normal2.Neg()
				collider.UpperLimit = collider.Normal1.Neg()
			}
		} else if convex2 {
			collider.Front = offset2 >= 0.0 || (offset0 >= 0.0 && offset1 >= 0.0)
			if collider.Front {
				collider.Normal = collider.Normal1
				collider.LowerLimit = collider.Normal1
				collider.UpperLimit = collider.Normal2
			} else {
				collider.Normal = collider.Normal1.Neg()
				collider.LowerLimit = collider.Normal1.Neg()
				collider.UpperLimit = collider.Normal0.Neg()
			}
		} else {
			collider.Front = offset0 >= 0.0 && offset1 >= 0.0 && offset2 >= 0.0
			if collider.Front {
				collider.Normal = collider.Normal1
				collider.LowerLimit = collider.Normal1
				collider.UpperLimit = collider.Normal1
			} else {
				collider.Normal = collider.Normal1.Neg()
				collider.LowerLimit = collider.Normal2.Neg()
				collider.UpperLimit = collider.Normal0.Neg()
			}
		}
	} else if hasVertex0 {
		if convex1 {
			collider.Front = offset0 >= 0.0 || offset1 >= 0.0
			if collider.Front {
				collider.Normal = collider.Normal1
				collider.LowerLimit = collider.Normal0
				collider.UpperLimit = collider.Normal1.Neg()
			} else {
				collider.Normal = collider.Normal1.Neg()
				collider.LowerLimit = collider.Normal1
				collider.UpperLimit = collider.Normal1.Neg()
			}
		} else {
			collider.Front = offset0 >= 0.0 && offset1 >= 0.0
			if collider.Front {
				collider.Normal = collider.Normal1
				collider.LowerLimit = collider.Normal1
				collider.UpperLimit = collider.Normal1.Neg()
			} else {
				collider.Normal = collider.Normal1.Neg()
				collider.LowerLimit = collider.Normal1
				collider.UpperLimit = collider.Normal0.Neg()
			}
		}
	} else if hasVertex3 {
		if convex2 {
			collider.Front = offset1 >= 0.0 || offset2 >= 0.0
			if collider.Front {
				collider.Normal = collider.Normal1
				collider.LowerLimit = collider.Normal1.Neg()
				collider.UpperLimit = collider.Normal2
			} else {
				collider.Normal = collider.Normal1.Neg()
				collider.LowerLimit = collider.Normal1.Neg()
				collider.UpperLimit = collider.Normal1
			}
		} else {
			collider.Front = offset1 >= 0.0 && offset2 >= 0.0
			if collider.Front {
				collider.Normal = collider.Normal1
				collider.LowerLimit = collider.Normal1.Neg()
				collider.UpperLimit = collider.Normal1
			} else {
				collider.Normal = collider.Normal1.Neg()
				collider.LowerLimit = collider.Normal2.Neg()
				collider.UpperLimit = collider.Normal1
			}
		}
	} else {
		collider.Front = offset1 >= 0.0
		if collider.Front {
			collider.Normal = collider.Normal1
			collider.LowerLimit = collider.Normal1.Neg()
			collider.UpperLimit = collider.Normal1.Neg()
		} else {
			collider.Normal = collider.Normal1.Neg()
			collider.LowerLimit = collider.Normal1
			collider.UpperLimit = collider.Normal1
		}
	}

	// Get polygonB in frameA
	collider.PolygonB.Count = polygonB.Count
	for i := 0; i < polygonB.Count; i++ {
		collider.PolygonB.Vertices[i] = TransformVec2Mul(collider.Xf, polygonB.Vertices[i])
		collider.PolygonB.Normals[i] = RotVec2Mul(collider.Xf.Q, polygonB.Normals[i])
	}

	collider.Radius = polygonB.Radius + edgeA.Radius

	manifold.PointCount = 0

	edgeAxis := collider.ComputeEdgeSeparation()

	// If no valid normal can be found than this edge should not collide.
	if edgeAxis.Type == epAxisUnknown {
		return
	}

	if edgeAxis.Separation > collider.Radius {
		return
	}

	polygonAxis := collider.ComputePolygonSeparation()
	if polygonAxis.Type != epAxisUnknown && polygonAxis.Separation > collider.Radius {
		return
	}

	// Use hysteresis for jitter reduction.
	k_relativeTol := 0.98
	k_absoluteTol := 0.001

	primaryAxis := MakeEPAxis()
	if polygonAxis.Type == epAxisUnknown {
		primaryAxis = edgeAxis
	} else if polygonAxis.Separation > k_relativeTol*edgeAxis.Separation+k_absoluteTol {
		primaryAxis = polygonAxis
	} else {
		primaryAxis = edgeAxis
	}

	ie := make([]ClipVertex, 2)
	rf := MakeReferenceFace()
	if primaryAxis.Type == epAxisEdgeA {
		manifold.Type = ManifoldFaceA

		// Search for the polygon normal that is most anti-parallel to the edge normal.
		bestIndex := 0
		bestValue := Vec2Dot(collider.Normal, collider.PolygonB.Normals[0])
		for i := 1; i < collider.PolygonB.Count; i++ {
			value := Vec2Dot(collider.Normal, collider.PolygonB.Normals[i])
			if value < bestValue {
				bestValue = value
				bestIndex = i
			}
		}

		i1 := bestIndex
		i2 := 0
		if i1+1 < collider.PolygonB.Count {
			i2 = i1 + 1
		}

		ie[0].V = collider.PolygonB.Vertices[i1]
		ie[0].Id.IndexA = 0
		ie[0].Id.IndexB = uint8(i1)
		ie[0].Id.TypeA = featureFace
		ie[0].Id.TypeB = featureVertex

		ie[1].V = collider.PolygonB.Vertices[i2]
		ie[1].Id.IndexA = 0
		ie[1].Id.IndexB = uint8(i2)
		ie[1].Id.TypeA = featureFace
		ie[1].Id.TypeB = featureVertex

		if collider.Front {
			rf.I1 = 0
			rf.I2 = 1
			rf.V1 = collider.V1
			rf.V2 = collider.V2
			rf.Normal = collider.Normal1
		} else {
			rf.I1 = 1
			rf.I2 = 0
			rf.V1 = collider.V2
			rf.V2 = collider.V1
			rf.Normal = collider.Normal1.Neg()
		}
	} else {
		manifold.Type = ManifoldFaceB

		ie[0].V = collider.V1
		ie[0].Id.IndexA = 0
		ie[0].Id.IndexB = uint8(primaryAxis.Index)
		ie[0].Id.TypeA = featureVertex
		ie[0].Id.TypeB = featureFace

		ie[1].V = collider.V2
		ie[1].Id.IndexA = 0
		ie[1].Id.IndexB = uint8(primaryAxis.Index)
		ie[1].Id.TypeA = featureVertex
		ie[1].Id.TypeB = featureFace

		rf.I1 = primaryAxis.Index
		if rf.I1+1 < collider.PolygonB.Count {
			rf.I2 = rf.I1 + 1
		} else {
			rf.I2 = 0
		}

		rf.V1 = collider.PolygonB.Vertices[rf.I1]
		rf.V2 = collider.PolygonB.Vertices[rf.I2]
		rf.Normal = collider.PolygonB.Normals[rf.I1]
	}

	rf.SideNormal1.Set(rf.Normal.Y, -rf.Normal.X)
	rf.SideNormal2 = rf.SideNormal1.Neg()
	rf.SideOffset1 = Vec2Dot(rf.SideNormal1, rf.V1)
	rf.SideOffset2 = Vec2Dot(rf.SideNormal2, rf.V2)

	// Clip incident edge against extruded edge1 side edges.
	clipPoints1 := make([]ClipVertex, 2)
	clipPoints2 := make([]ClipVertex, 2)
	np := 0

	// Clip to box side 1
	np = ClipSegmentToLine(clipPoints1, ie, rf.SideNormal1, rf.SideOffset1, rf.I1)

	if np < MaxManifoldPoints {
		return
	}

	// Clip to negative box side 1
	np = ClipSegmentToLine(clipPoints2, clipPoints1, rf.SideNormal2, rf.SideOffset2, rf.I2)

	if np < MaxManifoldPoints {
		return
	}

	// Now clipPoints2 contains the clipped points.
	if primaryAxis.Type == epAxisEdgeA {
		manifold.LocalNormal = rf.Normal
		manifold.LocalPoint = rf.V1
	} else {
		manifold.LocalNormal = polygonB.Normals[rf.I1]
		manifold.LocalPoint = polygonB.Vertices[rf.I1]
	}

	pointCount := 0
	for i := 0; i < MaxManifoldPoints; i++ {
		separation := Vec2Dot(rf.Normal, Vec2Sub(clipPoints2[i].V, rf.V1))

		if separation <= collider.Radius {
			cp := &manifold.Points[pointCount]

			if primaryAxis.Type == epAxisEdgeA {
				cp.LocalPoint = TransformVec2MulT(collider.Xf, clipPoints2[i].V)
				cp.Id = clipPoints2[i].Id
			} else {
				cp.LocalPoint = clipPoints2[i].V
				cp.Id = swapContactFeature(clipPoints2[i].Id)
			}

			pointCount++
		}
	}

	manifold.PointCount = pointCount
}

func (collider *EPCollider) ComputeEdgeSeparation() EPAxis {
	axis := MakeEPAxis()
	axis.Type = epAxisEdgeA
	if collider.Front {
		axis.Index = 0
	} else {
		axis.Index = 1
	}
	axis.Separation = MaxFloat

	for i := 0; i < collider.PolygonB.Count; i++ {
		s := Vec2Dot(collider.Normal, Vec2Sub(collider.PolygonB.Vertices[i], collider.V1))
		if s < axis.Separation {
			axis.Separation = s
		}
	}

	return axis
}

func (collider *EPCollider) ComputePolygonSeparation() EPAxis {

	axis := MakeEPAxis()
	axis.Type = epAxisUnknown
	axis.Index = -1
	axis.Separation = -MaxFloat

	perp := MakeVec2(-collider.Normal.Y, collider.Normal.X)

	for i := 0; i < collider.PolygonB.Count; i++ {
		n := collider.PolygonB.Normals[i].Neg()

		s1 := Vec2Dot(n, Vec2Sub(collider.PolygonB.Vertices[i], collider.V1))
		s2 := Vec2Dot(n, Vec2Sub(collider.PolygonB.Vertices[i], collider.V2))
		s := math.Min(s1, s2)

		if s > collider.Radius {
			// No collision
			axis.Type = epAxisEdgeB
			axis.Index = i
			axis.Separation = s
			return axis
		}

		// Adjacency
		if Vec2Dot(n, perp) >= 0.0 {
			if Vec2Dot(Vec2Sub(n, collider.UpperLimit), collider.Normal) < -AngularSlop {
				continue
			}
		} else {
			if Vec2Dot(Vec2Sub(n, collider.LowerLimit), collider.Normal) < -AngularSlop {
				continue
			}
		}

		if s > axis.Separation {
			axis.Type = epAxisEdgeB
			axis.Index = i
			axis.Separation = s
		}
	}

	return axis
}

func CollideEdgeAndPolygon(manifold *Manifold, edgeA *EdgeShape, xfA Transform, polygonB *PolygonShape, xfB Transform) {
	collider := MakeEPCollider()
	collider.Collide(manifold, edgeA, xfA, polygonB, xfB)
}
