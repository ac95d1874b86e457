package physics2d

/// A chain shape is a free form sequence of line segments.
/// The chain has two-sided collision, so you can use inside and outside collision.
/// Therefore, you may use any winding order.
/// The vertices are held in a slice owned by the shape.
/// Connectivity information is used to create smooth collisions.
/// WARNING: The chain will not collide properly if there are self-intersections.

/// A chain shape.
type ChainShape struct {
	Shape

	/// The vertices. Owned by this class.
	Vertices []Vec2

	/// The vertex count.
	Count int

	PrevVertex    Vec2
	NextVertex    Vec2
	HasPrevVertex bool
	HasNextVertex bool
}

func MakeChainShape() ChainShape {
	return ChainShape{
		Shape: Shape{
			Type:   ShapeChain,
			Radius: PolygonRadius,
		},
		Vertices:      nil,
		Count:         0,
		HasPrevVertex: false,
		HasNextVertex: false,
	}
}

func (chain *ChainShape) Destroy() {
	chain.Clear()
}

func (chain *ChainShape) Clear() {
	chain.Vertices = nil
	chain.Count = 0
}

// assertChainSpacing checks that no two consecutive vertices in the
// given run are closer together than LinearSlop; a chain built from
// coincident vertices degenerates during collision.
func assertChainSpacing(vertices []Vec2, count int) {
	for i := 1; i < count; i++ {
		// If the code crashes here, it means your vertices are too close together.
		Assert(Vec2DistanceSquared(vertices[i-1], vertices[i]) > LinearSlop*LinearSlop)
	}
}

func (chain *ChainShape) CreateLoop(vertices []Vec2, count int) {
	Assert(chain.Vertices == nil && chain.Count == 0)
	Assert(count >= 3)
	if count < 3 {
		return
	}

	assertChainSpacing(vertices, count)

	chain.Count = count + 1
	chain.Vertices = make([]Vec2, chain.Count)
	for i, vertice := range vertices {
		chain.Vertices[i] = vertice
	}

	chain.Vertices[count] = chain.Vertices[0]
	chain.PrevVertex = chain.Vertices[chain.Count-2]
	chain.NextVertex = chain.Vertices[1]
	chain.HasPrevVertex = true
	chain.HasNextVertex = true
}

func (chain *ChainShape) CreateChain(vertices []Vec2, count int) {
	Assert(chain.Vertices == nil && chain.Count == 0)
	Assert(count >= 2)
	assertChainSpacing(vertices, count)

	chain.Count = count
	chain.Vertices = make([]Vec2, count)
	for i, vertice := range vertices {
		chain.Vertices[i] = vertice
	}

	chain.HasPrevVertex = false
	chain.HasNextVertex = false

	chain.PrevVertex.SetZero()
	chain.NextVertex.SetZero()
}

func (chain *ChainShape) SetPrevVertex(prevVertex Vec2) {
	chain.PrevVertex = prevVertex
	chain.HasPrevVertex = true
}

func (chain *ChainShape) SetNextVertex(nextVertex Vec2) {
	chain.NextVertex = nextVertex
	chain.HasNextVertex = true
}

func (chain ChainShape) Clone() ShapeInterface {

	clone := MakeChainShape()
	clone.CreateChain(chain.Vertices, chain.Count)
	clone.PrevVertex = chain.PrevVertex
	clone.NextVertex = chain.NextVertex
	clone.HasPrevVertex = chain.HasPrevVertex
	clone.HasNextVertex = chain.HasNextVertex

	return &clone
}

func (chain ChainShape) GetChildCount() int {
	// edge count = vertex count - 1
	return chain.Count - 1
}

func (chain ChainShape) GetChildEdge(edge *EdgeShape, index int) {
	Assert(0 <= index && index < chain.Count-1)

	edge.Type = ShapeEdge
	edge.Radius = chain.Radius

	edge.Vertex1 = chain.Vertices[index+0]
	edge.Vertex2 = chain.Vertices[index+1]

	edge.Vertex0, edge.HasVertex0 = chain.adjacentVertex(index-1, chain.PrevVertex, chain.HasPrevVertex)
	edge.Vertex3, edge.HasVertex3 = chain.adjacentVertex(index+2, chain.NextVertex, chain.HasNextVertex)
}

// adjacentVertex returns the chain's own vertex at i when it falls
// within range, otherwise the chain's externally supplied endpoint
// (PrevVertex/NextVertex), used to smooth collision across the seam
// where this chain meets a neighboring shape.
func (chain ChainShape) adjacentVertex(i int, outOfRange Vec2, hasOutOfRange bool) (Vec2, bool) {
	if i >= 0 && i < chain.Count {
		return chain.Vertices[i], true
	}
	return outOfRange, hasOutOfRange
}

func (chain ChainShape) TestPoint(xf Transform, p Vec2) bool {
	return false
}

func (chain ChainShape) RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool {
	Assert(childIndex < chain.Count)

	edgeShape := MakeEdgeShape()

	i1 := childIndex
	i2 := childIndex + 1
	if i2 == chain.Count {
		i2 = 0
	}

	edgeShape.Vertex1 = chain.Vertices[i1]
	edgeShape.Vertex2 = chain.Vertices[i2]

	return edgeShape.RayCast(output, input, xf, 0)
}

func (chain ChainShape) ComputeAABB(aabb *AABB, xf Transform, childIndex int) {
	Assert(childIndex < chain.Count)

	i1 := childIndex
	i2 := childIndex + 1
	if i2 == chain.Count {
		i2 = 0
	}

	v1 := TransformVec2Mul(xf, chain.Vertices[i1])
	v2 := TransformVec2Mul(xf, chain.Vertices[i2])

	aabb.LowerBound = Vec2Min(v1, v2)
	aabb.UpperBound = Vec2Max(v1, v2)
}

func (chain ChainShape) ComputeMass(massData *MassData, density float64) {
	massData.Mass = 0.0
	massData.Center.SetZero()
	massData.I = 0.0
}
