package physics2d

/// A convex polygon. It is assumed that the interior of the polygon is to
/// the left of each edge.
/// Polygons have a maximum number of vertices equal to MaxPolygonVertices.
/// In most cases you should not need many vertices for a convex polygon.

type PolygonShape struct {
	Shape

	Centroid Vec2
	Vertices [MaxPolygonVertices]Vec2
	Normals  [MaxPolygonVertices]Vec2
	Count    int
}

func MakePolygonShape() PolygonShape {
	return PolygonShape{
		Shape: Shape{
			Type:   ShapePolygon,
			Radius: PolygonRadius,
		},
		Count:    0,
		Centroid: MakeVec2(0, 0),
	}
}

func NewPolygonShape() *PolygonShape {
	res := MakePolygonShape()
	return &res
}

func (poly *PolygonShape) GetVertex(index int) *Vec2 {
	Assert(0 <= index && index < poly.Count)
	return &poly.Vertices[index]
}

func (poly PolygonShape) Clone() ShapeInterface {

	clone := NewPolygonShape()
	clone.Centroid = poly.Centroid
	clone.Count = poly.Count

	for i, _ := range poly.Vertices {
		clone.Vertices[i] = poly.Vertices[i]
	}

	for i, _ := range poly.Normals {
		clone.Normals[i] = poly.Normals[i]
	}

	return clone
}

func (edge *PolygonShape) Destroy() {}

func (poly *PolygonShape) SetAsBox(hx float64, hy float64) {
	poly.Count = 4
	poly.Vertices[0].Set(-hx, -hy)
	poly.Vertices[1].Set(hx, -hy)
	poly.Vertices[2].Set(hx, hy)
	poly.Vertices[3].Set(-hx, hy)
	poly.Normals[0].Set(0.0, -1.0)
	poly.Normals[1].Set(1.0, 0.0)
	poly.Normals[2].Set(0.0, 1.0)
	poly.Normals[3].Set(-1.0, 0.0)
	poly.Centroid.SetZero()
}

func (poly *PolygonShape) SetAsBoxFromCenterAndAngle(hx float64, hy float64, center Vec2, angle float64) {
	poly.Count = 4
	poly.Vertices[0].Set(-hx, -hy)
	poly.Vertices[1].Set(hx, -hy)
	poly.Vertices[2].Set(hx, hy)
	poly.Vertices[3].Set(-hx, hy)
	poly.Normals[0].Set(0.0, -1.0)
	poly.Normals[1].Set(1.0, 0.0)
	poly.Normals[2].Set(0.0, 1.0)
	poly.Normals[3].Set(-1.0, 0.0)
	poly.Centroid = center

	xf := MakeTransform()
	xf.P = center
	xf.Q.Set(angle)

	// Transform vertices and normals.
	for i := 0; i < poly.Count; i++ {
		poly.Vertices[i] = TransformVec2Mul(xf, poly.Vertices[i])
		poly.Normals[i] = RotVec2Mul(xf.Q, poly.Normals[i])
	}
}

func (poly PolygonShape) GetChildCount() int {
	return 1
}

// polygonFanCentroid returns the average of vs[0:count], used as the
// shared apex when triangulating a polygon into a fan for area and
// mass integrals. Its exact location doesn't affect the result except
// for rounding error.
func polygonFanCentroid(vs []Vec2, count int) Vec2 {
	pRef := MakeVec2(0.0, 0.0)
	for i := 0; i < count; i++ {
		pRef.AddAssign(vs[i])
	}
	pRef.MulAssign(1.0 / float64(count))
	return pRef
}

// walkPolygonFan triangulates vs[0:count] into a fan anchored at apex
// and calls visit once per triangle with its signed area (positive for
// CCW winding) and the two edge vectors from apex.
func walkPolygonFan(vs []Vec2, count int, apex Vec2, visit func(e1, e2 Vec2, triangleArea float64)) float64 {
	area := 0.0
	for i := 0; i < count; i++ {
		p2 := vs[i]
		p3 := vs[0]
		if i+1 < count {
			p3 = vs[i+1]
		}

		e1 := Vec2Sub(p2, apex)
		e2 := Vec2Sub(p3, apex)

		triangleArea := 0.5 * Vec2Cross(e1, e2)
		area += triangleArea

		visit(e1, e2, triangleArea)
	}
	return area
}

func ComputeCentroid(vs []Vec2, count int) Vec2 {
	Assert(count >= 3)

	apex := polygonFanCentroid(vs, count)
	inv3 := 1.0 / 3.0

	c := MakeVec2(0, 0)
	area := walkPolygonFan(vs, count, apex, func(e1, e2 Vec2, triangleArea float64) {
		c.AddAssign(Vec2MulScalar(triangleArea*inv3, Vec2Add(e1, e2)))
	})

	Assert(area > Epsilon)
	c.MulAssign(1.0 / area)
	return Vec2Add(c, apex)
}

func (poly *PolygonShape) Set(vertices []Vec2, count int) {
	Assert(3 <= count && count <= MaxPolygonVertices)
	if count < 3 {
		poly.SetAsBox(1.0, 1.0)
		return
	}

	n := MinInt(count, MaxPolygonVertices)

	// Perform welding and copy vertices into local buffer.
	ps := make([]Vec2, MaxPolygonVertices)
	tempCount := 0

	for i := 0; i < n; i++ {
		v := vertices[i]

		unique := true
		for j := 0; j < tempCount; j++ {
			if Vec2DistanceSquared(v, ps[j]) < ((0.5 * LinearSlop) * (0.5 * LinearSlop)) {
				unique = false
				break
			}
		}

		if unique {
			ps[tempCount] = v
			tempCount++
		}
	}

	n = tempCount
	if n < 3 {
		// Polygon is degenerate.
		Assert(false)
		poly.SetAsBox(1.0, 1.0)
		return
	}

	// Create the convex hull using the Gift wrapping algorithm
	// http://en.wikipedia.org/wiki/Gift_wrapping_algorithm

	// Find the right most point on the hull
	i0 := 0
	x0 := ps[0].X
	for i := 1; i < n; i++ {
		x := ps[i].X
		if x > x0 || (x == x0 && ps[i].Y < ps[i0].Y) {
			i0 = i
			x0 = x
		}
	}

	hull := make([]int, MaxPolygonVertices)
	m := 0
	ih := i0

	for {
		Assert(m < MaxPolygonVertices)
		hull[m] = ih

		ie := 0
		for j := 1; j < n; j++ {
			if ie == ih {
				ie = j
				continue
			}

			r := Vec2Sub(ps[ie], ps[hull[m]])
			v := Vec2Sub(ps[j], ps[hull[m]])
			c := Vec2Cross(r, v)
			if c < 0.0 {
				ie = j
			}

			// Collinearity check
			if c == 0.0 && v.LengthSquared() > r.LengthSquared() {
				ie = j
			}
		}

		m++
		ih = ie

		if ie == i0 {
			break
		}
	}

	if m < 3 {
		// Polygon is degenerate.
		Assert(false)
		poly.SetAsBox(1.0, 1.0)
		return
	}

	poly.Count = m

	// Copy vertices.
	for i := 0; i < m; i++ {
		poly.Vertices[i] = ps[hull[i]]
	}

	// Compute normals. Ensure the edges have non-zero length.
	for i := 0; i < m; i++ {
		i1 := i
		i2 := 0
		if i+1 < m {
			i2 = i + 1
		}

		edge := Vec2Sub(poly.Vertices[i2], poly.Vertices[i1])
		Assert(edge.LengthSquared() > Epsilon*Epsilon)
		poly.Normals[i] = Vec2CrossVectorScalar(edge, 1.0)
		poly.Normals[i].Normalize()
	}

	// Compute the polygon centroid.
	poly.Centroid = ComputeCentroid(poly.Vertices[:], m)
}

func (poly PolygonShape) TestPoint(xf Transform, p Vec2) bool {
	pLocal := RotVec2MulT(xf.Q, Vec2Sub(p, xf.P))

	for i := 0; i < poly.Count; i++ {
		dot := Vec2Dot(poly.Normals[i], Vec2Sub(pLocal, poly.Vertices[i]))
		if dot > 0.0 {
			return false
		}
	}

	return true
}

func (poly PolygonShape) RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool {

	// Put the ray into the polygon's frame of reference.
	p1 := RotVec2MulT(xf.Q, Vec2Sub(input.P1, xf.P))
	p2 := RotVec2MulT(xf.Q, Vec2Sub(input.P2, xf.P))
	d := Vec2Sub(p2, p1)

	lower := 0.0
	upper := input.MaxFraction

	index := -1

	for i := 0; i < poly.Count; i++ {
		// p = p1 + a * d
		// dot(normal, p - v) = 0
		// dot(normal, p1 - v) + a * dot(normal, d) = 0
		numerator := Vec2Dot(poly.Normals[i], Vec2Sub(poly.Vertices[i], p1))
		denominator := Vec2Dot(poly.Normals[i], d)

		if denominator == 0.0 {
			if numerator < 0.0 {
				return false
			}
		} else {
			// Note: we want this predicate without division:
			// lower < numerator / denominator, where denominator < 0
			// Since denominator < 0, we have to flip the inequality:
			// lower < numerator / denominator <==> denominator * lower > numerator.
			if denominator < 0.0 && numerator < lower*denominator {
				// Increase lower.
				// The segment enters this half-space.
				lower = numerator / denominator
				index = i
			} else if denominator > 0.0 && numerator < upper*denominator {
				// Decrease upper.
				// The segment exits this half-space.
				upper = numerator / denominator
			}
		}

		// The use of epsilon here causes the assert on lower to trip
		// in some cases. Apparently the use of epsilon was to make edge
		// shapes work, but now those are handled separately.
		//if (upper < lower - Epsilon)
		if upper < lower {
			return false
		}
	}

	Assert(0.0 <= lower && lower <= input.MaxFraction)

	if index >= 0 {
		output.Fraction = lower
		output.Normal = RotVec2Mul(xf.Q, poly.Normals[index])
		return true
	}

	return false
}

func (poly PolygonShape) ComputeAABB(aabb *AABB, xf Transform, childIndex int) {

	lower := TransformVec2Mul(xf, poly.Vertices[0])
	upper := lower

	for i := 1; i < poly.Count; i++ {
		v := TransformVec2Mul(xf, poly.Vertices[i])
		lower = Vec2Min(lower, v)
		upper = Vec2Max(upper, v)
	}

	r := MakeVec2(poly.Radius, poly.Radius)
	aabb.LowerBound = Vec2Sub(lower, r)
	aabb.UpperBound = Vec2Add(upper, r)
}

func (poly PolygonShape) ComputeMass(massData *MassData, density float64) {
	// Polygon mass, centroid, and inertia.
	// Let rho be the polygon density in mass per unit area.
	// Then:
	// mass = rho * int(dA)
	// centroid.x = (1/mass) * rho * int(x * dA)
	// centroid.y = (1/mass) * rho * int(y * dA)
	// I = rho * int((x*x + y*y) * dA)
	//
	// We can compute these integrals by summing all the integrals
	// for each triangle of the polygon. To evaluate the integral
	// for a single triangle, we make a change of variables to
	// the (u,v) coordinates of the triangle:
	// x = x0 + e1x * u + e2x * v
	// y = y0 + e1y * u + e2y * v
	// where 0 <= u && 0 <= v && u + v <= 1.
	//
	// We integrate u from [0,1-v] and then v from [0,1].
	// We also need to use the Jacobian of the transformation:
	// D = cross(e1, e2)
	//
	// Simplification: triangle centroid = (1/3) * (p1 + p2 + p3)
	//
	// The rest of the derivation is handled by computer algebra.

	Assert(poly.Count >= 3)

	s := polygonFanCentroid(poly.Vertices[:], poly.Count)
	k_inv3 := 1.0 / 3.0

	center := MakeVec2(0, 0)
	I := 0.0

	area := walkPolygonFan(poly.Vertices[:], poly.Count, s, func(e1, e2 Vec2, triangleArea float64) {
		// Area weighted centroid
		center.AddAssign(Vec2MulScalar(triangleArea*k_inv3, Vec2Add(e1, e2)))

		intx2 := e1.X*e1.X + e2.X*e1.X + e2.X*e2.X
		inty2 := e1.Y*e1.Y + e2.Y*e1.Y + e2.Y*e2.Y

		I += (0.5 * k_inv3 * triangleArea) * (intx2 + inty2)
	})

	// Total mass
	massData.Mass = density * area

	// Center of mass
	Assert(area > Epsilon)
	center.MulAssign(1.0 / area)
	massData.Center = Vec2Add(center, s)

	// Inertia tensor relative to the local origin (point s).
	massData.I = density * I

	// Shift to center of mass then to original body origin.
	massData.I += massData.Mass * (Vec2Dot(massData.Center, massData.Center) - Vec2Dot(center, center))
}

func (poly PolygonShape) Validate() bool {

	for i := 0; i < poly.Count; i++ {
		i1 := i
		i2 := 0

		if i < poly.Count-1 {
			i2 = i1 + 1
		}

		p := poly.Vertices[i1]
		e := Vec2Sub(poly.Vertices[i2], p)

		for j := 0; j < poly.Count; j++ {
			if j == i1 || j == i2 {
				continue
			}

			v := Vec2Sub(poly.Vertices[j], p)
			c := Vec2Cross(e, v)
			if c < 0.0 {
				return false
			}
		}
	}

	return true
}
