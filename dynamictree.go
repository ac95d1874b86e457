package physics2d

import (
	"math"
)

type TreeQueryCallback func(nodeId int) bool

type TreeRayCastCallback func(input RayCastInput, nodeId int) float64

const NullNode = -1

type TreeNode struct {

	/// Enlarged AABB
	Aabb AABB

	UserData interface{}

	// union
	// {
	Parent int
	Next   int
	//};

	Child1 int
	Child2 int

	// leaf = 0, free node = -1
	Height int
}

func (node TreeNode) IsLeaf() bool {
	return node.Child1 == NullNode
}

/// A dynamic AABB tree broad-phase, inspired by Nathanael Presson's btDbvt.
/// A dynamic tree arranges data in a binary tree to accelerate
/// queries such as volume queries and ray casts. Leafs are proxies
/// with an AABB. In the tree we expand the proxy AABB by AabbExtension
/// so that the proxy AABB is bigger than the client object. This allows the client
/// object to move by small amounts without triggering a tree update.
///
/// Nodes are pooled and relocatable, so we use node indices rather than pointers.
type DynamicTree struct {

	// Public members:
	// None

	// Private members:
	Root int

	Nodes        []TreeNode
	NodeCount    int
	NodeCapacity int

	FreeList int

	/// This is used to incrementally traverse the tree for re-balancing.
	Path int

	InsertionCount int
}

func (tree DynamicTree) GetUserData(proxyId int) interface{} {
	Assert(0 <= proxyId && proxyId < tree.NodeCapacity)
	return tree.Nodes[proxyId].UserData
}

func (tree DynamicTree) GetFatAABB(proxyId int) AABB {
	Assert(0 <= proxyId && proxyId < tree.NodeCapacity)
	return tree.Nodes[proxyId].Aabb
}

func (tree *DynamicTree) Query(queryCallback TreeQueryCallback, aabb AABB) {
	stack := newTraversalStack()
	stack.Push(tree.Root)

	for stack.GetCount() > 0 {
		nodeId := stack.Pop().(int)
		if nodeId == NullNode {
			continue
		}

		node := &tree.Nodes[nodeId]

		if TestOverlapBoundingBoxes(node.Aabb, aabb) {
			if node.IsLeaf() {
				proceed := queryCallback(nodeId)
				if proceed == false {
					return
				}
			} else {
				stack.Push(node.Child1)
				stack.Push(node.Child2)
			}
		}
	}
}

func (tree DynamicTree) RayCast(rayCastCallback TreeRayCastCallback, input RayCastInput) {

	p1 := input.P1
	p2 := input.P2
	r := Vec2Sub(p2, p1)
	Assert(r.LengthSquared() > 0.0)
	r.Normalize()

	// v is perpendicular to the segment.
	v := Vec2CrossScalarVector(1.0, r)
	abs_v := Vec2Abs(v)

	// Separating axis for segment (Gino, p80).
	// |dot(v, p1 - c)| > dot(|v|, h)

	maxFraction := input.MaxFraction

	// Build a bounding box for the segment.
	segmentAABB := MakeAABB()
	{
		t := Vec2Add(p1, Vec2MulScalar(maxFraction, Vec2Sub(p2, p1)))
		segmentAABB.LowerBound = Vec2Min(p1, t)
		segmentAABB.UpperBound = Vec2Max(p1, t)
	}

	stack := newTraversalStack()
	stack.Push(tree.Root)

	for stack.GetCount() > 0 {
		nodeId := stack.Pop().(int)
		if nodeId == NullNode {
			continue
		}

		node := &tree.Nodes[nodeId]

		if TestOverlapBoundingBoxes(node.Aabb, segmentAABB) == false {
			continue
		}

		// Separating axis for segment (Gino, p80).
		// |dot(v, p1 - c)| > dot(|v|, h)
		c := node.Aabb.GetCenter()
		h := node.Aabb.GetExtents()

		separation := math.Abs(Vec2Dot(v, Vec2Sub(p1, c))) - Vec2Dot(abs_v, h)
		if separation > 0.0 {
			continue
		}

		if node.IsLeaf() {
			subInput := MakeRayCastInput()
			subInput.P1 = input.P1
			subInput.P2 = input.P2
			subInput.MaxFraction = maxFraction

			value := rayCastCallback(subInput, nodeId)

			if value == 0.0 {
				// The client has terminated the ray cast.
				return
			}

			if value > 0.0 {
				// Update segment bounding box.
				maxFraction = value
				t := Vec2Add(p1, Vec2MulScalar(maxFraction, Vec2Sub(p2, p1)))
				segmentAABB.LowerBound = Vec2Min(p1, t)
				segmentAABB.UpperBound = Vec2Max(p1, t)
			}
		} else {
			stack.Push(node.Child1)
			stack.Push(node.Child2)
		}
	}
}

func MakeDynamicTree() DynamicTree {

	tree := DynamicTree{}
	tree.Root = NullNode

	tree.NodeCapacity = 16
	tree.NodeCount = 0
	tree.Nodes = make([]TreeNode, tree.NodeCapacity)

	// Build a linked list for the free list.
	for i := 0; i < tree.NodeCapacity-1; i++ {
		tree.Nodes[i].Next = i + 1
		tree.Nodes[i].Height = -1
	}

	tree.Nodes[tree.NodeCapacity-1].Next = NullNode
	tree.Nodes[tree.NodeCapacity-1].Height = -1
	tree.FreeList = 0

	tree.Path = 0

	tree.InsertionCount = 0

	return tree
}

// Allocate a node from the pool. Grow the pool if necessary.
func (tree *DynamicTree) AllocateNode() int {

	// Expand the node pool as needed.
	if tree.FreeList == NullNode {
		Assert(tree.NodeCount == tree.NodeCapacity)

		// The free list is empty. Rebuild a bigger pool.
		tree.Nodes = append(tree.Nodes, make([]TreeNode, tree.NodeCapacity)...)
		tree.NodeCapacity *= 2

		// Build a linked list for the free list. The parent
		// pointer becomes the "next" pointer.
		for i := tree.NodeCount; i < tree.NodeCapacity-1; i++ {
			tree.Nodes[i].Next = i + 1
			tree.Nodes[i].Height = -1
		}

		tree.Nodes[tree.NodeCapacity-1].Next = NullNode
		tree.Nodes[tree.NodeCapacity-1].Height = -1
		tree.FreeList = tree.NodeCount
	}

	// Peel a node off the free list.
	nodeId := tree.FreeList
	tree.FreeList = tree.Nodes[nodeId].Next
	tree.Nodes[nodeId].Parent = NullNode
	tree.Nodes[nodeId].Child1 = NullNode
	tree.Nodes[nodeId].Child2 = NullNode
	tree.Nodes[nodeId].Height = 0
	tree.Nodes[nodeId].UserData = nil
	tree.NodeCount++

	return nodeId
}

// Return a node to the pool.
func (tree *DynamicTree) FreeNode(nodeId int) {
	Assert(0 <= nodeId && nodeId < tree.NodeCapacity)
	Assert(0 < tree.NodeCount)
	tree.Nodes[nodeId].Next = tree.FreeList
	tree.Nodes[nodeId].Height = -1
	tree.FreeList = nodeId
	tree.NodeCount--
}

// Create a proxy in the tree as a leaf node. We return the index
// of the node instead of a pointer so that we can grow
// the node pool.
func (tree *DynamicTree) CreateProxy(aabb AABB, userData interface{}) int {

	proxyId := tree.AllocateNode()

	// Fatten the aabb.
	r := MakeVec2(AabbExtension, AabbExtension)
	tree.Nodes[proxyId].Aabb.LowerBound = Vec2Sub(aabb.LowerBound, r)
	tree.Nodes[proxyId].Aabb.UpperBound = Vec2Add(aabb.UpperBound, r)
	tree.Nodes[proxyId].UserData = userData
	tree.Nodes[proxyId].Height = 0

	tree.InsertLeaf(proxyId)

	return proxyId
}

func (tree *DynamicTree) DestroyProxy(proxyId int) {
	Assert(0 <= proxyId && proxyId < tree.NodeCapacity)
	Assert(tree.Nodes[proxyId].IsLeaf())

	tree.RemoveLeaf(proxyId)
	tree.FreeNode(proxyId)
}

func (tree *DynamicTree) MoveProxy(proxyId int, aabb AABB, displacement Vec2) bool {

	Assert(0 <= proxyId && proxyId < tree.NodeCapacity)

	Assert(tree.Nodes[proxyId].IsLeaf())

	if tree.Nodes[proxyId].Aabb.Contains(aabb) {
		return false
	}

	tree.RemoveLeaf(proxyId)

	// Extend AABB.
	b := aabb.Clone()
	r := MakeVec2(AabbExtension, AabbExtension)
	b.LowerBound = Vec2Sub(b.LowerBound, r)
	b.UpperBound = Vec2Add(b.UpperBound, r)

	// Predict AABB displacement.
	d := Vec2MulScalar(AabbMultiplier, displacement)

	if d.X < 0.0 {
		b.LowerBound.X += d.X
	} else {
		b.UpperBound.X += d.X
	}

	if d.Y < 0.0 {
		b.LowerBound.Y += d.Y
	} else {
		b.UpperBound.Y += d.Y
	}

	tree.Nodes[proxyId].Aabb = b

	tree.InsertLeaf(proxyId)

	return true
}

// descendCost estimates the marginal cost of pushing a leaf with
// bounds leafAABB further down through child, on top of the
// inheritance cost every ancestor above it already pays. A leaf
// child's cost is the perimeter of the merged box; an internal
// child's cost is only the perimeter it would grow by, since its own
// children keep their existing boxes.
func (tree *DynamicTree) descendCost(child int, leafAABB AABB, inheritanceCost float64) float64 {
	merged := NewAABB()
	merged.CombineTwoInPlace(leafAABB, tree.Nodes[child].Aabb)

	if tree.Nodes[child].IsLeaf() {
		return merged.GetPerimeter() + inheritanceCost
	}

	oldArea := tree.Nodes[child].Aabb.GetPerimeter()
	return (merged.GetPerimeter() - oldArea) + inheritanceCost
}

// bestSibling walks down from the tree root to find the node that
// would make the cheapest new sibling for a leaf with bounds
// leafAABB, using the surface-area heuristic: at each internal node it
// compares the cost of stopping here (making a new parent for this
// node and the leaf) against the cost of continuing into whichever
// child is cheaper.
func (tree *DynamicTree) bestSibling(leafAABB AABB) int {
	index := tree.Root
	for !tree.Nodes[index].IsLeaf() {
		child1 := tree.Nodes[index].Child1
		child2 := tree.Nodes[index].Child2

		area := tree.Nodes[index].Aabb.GetPerimeter()

		combined := NewAABB()
		combined.CombineTwoInPlace(tree.Nodes[index].Aabb, leafAABB)
		combinedArea := combined.GetPerimeter()

		stopCost := 2.0 * combinedArea
		inheritanceCost := 2.0 * (combinedArea - area)

		cost1 := tree.descendCost(child1, leafAABB, inheritanceCost)
		cost2 := tree.descendCost(child2, leafAABB, inheritanceCost)

		if stopCost < cost1 && stopCost < cost2 {
			break
		}

		if cost1 < cost2 {
			index = child1
		} else {
			index = child2
		}
	}
	return index
}

func (tree *DynamicTree) InsertLeaf(leaf int) {
	tree.InsertionCount++

	if tree.Root == NullNode {
		tree.Root = leaf
		tree.Nodes[tree.Root].Parent = NullNode
		return
	}

	leafAABB := tree.Nodes[leaf].Aabb
	sibling := tree.bestSibling(leafAABB)

	// Create a new parent.
	oldParent := tree.Nodes[sibling].Parent
	newParent := tree.AllocateNode()
	tree.Nodes[newParent].Parent = oldParent
	tree.Nodes[newParent].UserData = nil
	tree.Nodes[newParent].Aabb.CombineTwoInPlace(leafAABB, tree.Nodes[sibling].Aabb)
	tree.Nodes[newParent].Height = tree.Nodes[sibling].Height + 1

	if oldParent != NullNode {
		if tree.Nodes[oldParent].Child1 == sibling {
			tree.Nodes[oldParent].Child1 = newParent
		} else {
			tree.Nodes[oldParent].Child2 = newParent
		}
	} else {
		tree.Root = newParent
	}

	tree.Nodes[newParent].Child1 = sibling
	tree.Nodes[newParent].Child2 = leaf
	tree.Nodes[sibling].Parent = newParent
	tree.Nodes[leaf].Parent = newParent

	tree.refitAncestors(tree.Nodes[leaf].Parent)
}

// refitAncestors rebalances and recomputes the height and AABB of
// index and every node above it, up to the root. Called after an
// insertion or removal has changed the subtree at index.
func (tree *DynamicTree) refitAncestors(index int) {
	for index != NullNode {
		index = tree.Balance(index)

		child1 := tree.Nodes[index].Child1
		child2 := tree.Nodes[index].Child2

		tree.Nodes[index].Height = 1 + MaxInt(tree.Nodes[child1].Height, tree.Nodes[child2].Height)
		tree.Nodes[index].Aabb.CombineTwoInPlace(tree.Nodes[child1].Aabb, tree.Nodes[child2].Aabb)

		index = tree.Nodes[index].Parent
	}
}

func (tree *DynamicTree) RemoveLeaf(leaf int) {
	if leaf == tree.Root {
		tree.Root = NullNode
		return
	}

	parent := tree.Nodes[leaf].Parent
	grandParent := tree.Nodes[parent].Parent
	sibling := 0
	if tree.Nodes[parent].Child1 == leaf {
		sibling = tree.Nodes[parent].Child2
	} else {
		sibling = tree.Nodes[parent].Child1
	}

	if grandParent != NullNode {
		// Destroy parent and connect sibling to grandParent.
		if tree.Nodes[grandParent].Child1 == parent {
			tree.Nodes[grandParent].Child1 = sibling
		} else {
			tree.Nodes[grandParent].Child2 = sibling
		}
		tree.Nodes[sibling].Parent = grandParent
		tree.FreeNode(parent)
		tree.refitAncestors(grandParent)
	} else {
		tree.Root = sibling
		tree.Nodes[sibling].Parent = NullNode
		tree.FreeNode(parent)
	}
}

// Perform a left or right rotation if node A is imbalanced.
// Returns the new root index.
func (tree *DynamicTree) Balance(nodeId int) int {
	Assert(nodeId != NullNode)

	node := &tree.Nodes[nodeId]
	if node.IsLeaf() || node.Height < 2 {
		return nodeId
	}

	child1Id := node.Child1
	child2Id := node.Child2
	Assert(0 <= child1Id && child1Id < tree.NodeCapacity)
	Assert(0 <= child2Id && child2Id < tree.NodeCapacity)

	child1 := &tree.Nodes[child1Id]
	child2 := &tree.Nodes[child2Id]

	balance := child2.Height - child1.Height

	// Rotate child2 up
	if balance > 1 {
		grandchild1Id := child2.Child1
		grandchild2Id := child2.Child2
		Assert(0 <= grandchild1Id && grandchild1Id < tree.NodeCapacity)
		Assert(0 <= grandchild2Id && grandchild2Id < tree.NodeCapacity)
		grandchild1 := &tree.Nodes[grandchild1Id]
		grandchild2 := &tree.Nodes[grandchild2Id]

		// Swap node and child2
		child2.Child1 = nodeId
		child2.Parent = node.Parent
		node.Parent = child2Id

		// node's old parent should point to child2
		if child2.Parent != NullNode {
			if tree.Nodes[child2.Parent].Child1 == nodeId {
				tree.Nodes[child2.Parent].Child1 = child2Id
			} else {
				Assert(tree.Nodes[child2.Parent].Child2 == nodeId)
				tree.Nodes[child2.Parent].Child2 = child2Id
			}
		} else {
			tree.Root = child2Id
		}

		// Rotate
		if grandchild1.Height > grandchild2.Height {
			child2.Child2 = grandchild1Id
			node.Child2 = grandchild2Id
			grandchild2.Parent = nodeId
			node.Aabb.CombineTwoInPlace(child1.Aabb, grandchild2.Aabb)
			child2.Aabb.CombineTwoInPlace(node.Aabb, grandchild1.Aabb)

			node.Height = 1 + MaxInt(child1.Height, grandchild2.Height)
			child2.Height = 1 + MaxInt(node.Height, grandchild1.Height)
		} else {
			child2.Child2 = grandchild2Id
			node.Child2 = grandchild1Id
			grandchild1.Parent = nodeId
			node.Aabb.CombineTwoInPlace(child1.Aabb, grandchild1.Aabb)
			child2.Aabb.CombineTwoInPlace(node.Aabb, grandchild2.Aabb)

			node.Height = 1 + MaxInt(child1.Height, grandchild1.Height)
			child2.Height = 1 + MaxInt(node.Height, grandchild2.Height)
		}

		return child2Id
	}

	// Rotate child1 up
	if balance < -1 {
		grandchild1Id := child1.Child1
		grandchild2Id := child1.Child2
		Assert(0 <= grandchild1Id && grandchild1Id < tree.NodeCapacity)
		Assert(0 <= grandchild2Id && grandchild2Id < tree.NodeCapacity)

		grandchild1 := &tree.Nodes[grandchild1Id]
		grandchild2 := &tree.Nodes[grandchild2Id]

		// Swap node and child1
		child1.Child1 = nodeId
		child1.Parent = node.Parent
		node.Parent = child1Id

		// node's old parent should point to child1
		if child1.Parent != NullNode {
			if tree.Nodes[child1.Parent].Child1 == nodeId {
				tree.Nodes[child1.Parent].Child1 = child1Id
			} else {
				Assert(tree.Nodes[child1.Parent].Child2 == nodeId)
				tree.Nodes[child1.Parent].Child2 = child1Id
			}
		} else {
			tree.Root = child1Id
		}

		// Rotate
		if grandchild1.Height > grandchild2.Height {
			child1.Child2 = grandchild1Id
			node.Child1 = grandchild2Id
			grandchild2.Parent = nodeId
			node.Aabb.CombineTwoInPlace(child2.Aabb, grandchild2.Aabb)
			child1.Aabb.CombineTwoInPlace(node.Aabb, grandchild1.Aabb)

			node.Height = 1 + MaxInt(child2.Height, grandchild2.Height)
			child1.Height = 1 + MaxInt(node.Height, grandchild1.Height)
		} else {
			child1.Child2 = grandchild2Id
			node.Child1 = grandchild1Id
			grandchild1.Parent = nodeId
			node.Aabb.CombineTwoInPlace(child2.Aabb, grandchild1.Aabb)
			child1.Aabb.CombineTwoInPlace(node.Aabb, grandchild2.Aabb)

			node.Height = 1 + MaxInt(child2.Height, grandchild1.Height)
			child1.Height = 1 + MaxInt(node.Height, grandchild2.Height)
		}

		return child1Id
	}

	return nodeId
}

func (tree DynamicTree) GetHeight() int {
	if tree.Root == NullNode {
		return 0
	}

	return tree.Nodes[tree.Root].Height
}

//
func (tree DynamicTree) GetAreaRatio() float64 {
	if tree.Root == NullNode {
		return 0.0
	}

	root := &tree.Nodes[tree.Root]
	rootArea := root.Aabb.GetPerimeter()

	totalArea := 0.0
	for i := 0; i < tree.NodeCapacity; i++ {
		node := &tree.Nodes[i]
		if node.Height < 0 {
			// Free node in pool
			continue
		}

		totalArea += node.Aabb.GetPerimeter()
	}

	return totalArea / rootArea
}

// Compute the height of a sub-tree.
func (tree DynamicTree) ComputeHeight(nodeId int) int {
	Assert(0 <= nodeId && nodeId < tree.NodeCapacity)
	node := &tree.Nodes[nodeId]

	if node.IsLeaf() {
		return 0
	}

	height1 := tree.ComputeHeight(node.Child1)
	height2 := tree.ComputeHeight(node.Child2)
	return 1 + MaxInt(height1, height2)
}

func (tree DynamicTree) ComputeTotalHeight() int {
	return tree.ComputeHeight(tree.Root)
}

func (tree DynamicTree) ValidateStructure(index int) {
	if index == NullNode {
		return
	}

	if index == tree.Root {
		Assert(tree.Nodes[index].Parent == NullNode)
	}

	node := &tree.Nodes[index]

	child1 := node.Child1
	child2 := node.Child2

	if node.IsLeaf() {
		Assert(child1 == NullNode)
		Assert(child2 == NullNode)
		Assert(node.Height == 0)
		return
	}

	Assert(0 <= child1 && child1 < tree.NodeCapacity)
	Assert(0 <= child2 && child2 < tree.NodeCapacity)

	Assert(tree.Nodes[child1].Parent == index)
	Assert(tree.Nodes[child2].Parent == index)

	tree.ValidateStructure(child1)
	tree.ValidateStructure(child2)
}

func (tree DynamicTree) ValidateMetrics(index int) {
	if index == NullNode {
		return
	}

	node := &tree.Nodes[index]

	child1 := node.Child1
	child2 := node.Child2

	if node.IsLeaf() {
		Assert(child1 == NullNode)
		Assert(child2 == NullNode)
		Assert(node.Height == 0)
		return
	}

	Assert(0 <= child1 && child1 < tree.NodeCapacity)
	Assert(0 <= child2 && child2 < tree.NodeCapacity)

	height1 := tree.Nodes[child1].Height
	height2 := tree.Nodes[child2].Height
	height := 1 + MaxInt(height1, height2)
	Assert(node.Height == height)

	aabb := NewAABB()
	aabb.CombineTwoInPlace(tree.Nodes[child1].Aabb, tree.Nodes[child2].Aabb)

	Assert(aabb.LowerBound == node.Aabb.LowerBound)
	Assert(aabb.UpperBound == node.Aabb.UpperBound)

	tree.ValidateMetrics(child1)
	tree.ValidateMetrics(child2)
}

func (tree DynamicTree) Validate() {
}

func (tree DynamicTree) GetMaxBalance() int {
	maxBalance := 0
	for i := 0; i < tree.NodeCapacity; i++ {
		node := &tree.Nodes[i]
		if node.Height <= 1 {
			continue
		}

		Assert(node.IsLeaf() == false)

		child1 := node.Child1
		child2 := node.Child2
		balance := AbsInt(tree.Nodes[child2].Height - tree.Nodes[child1].Height)
		maxBalance = MaxInt(maxBalance, balance)
	}

	return maxBalance
}

func (tree *DynamicTree) RebuildBottomUp() {
	nodes := make([]int, tree.NodeCount)
	count := 0

	// Build array of leaves. Free the rest.
	for i := 0; i < tree.NodeCapacity; i++ {
		if tree.Nodes[i].Height < 0 {
			// free node in pool
			continue
		}

		if tree.Nodes[i].IsLeaf() {
			tree.Nodes[i].Parent = NullNode
			nodes[count] = i
			count++
		} else {
			tree.FreeNode(i)
		}
	}

	for count > 1 {
		minCost := MaxFloat
		iMin := -1
		jMin := -1

		for i := 0; i < count; i++ {
			aabbi := tree.Nodes[nodes[i]].Aabb

			for j := i + 1; j < count; j++ {
				aabbj := tree.Nodes[nodes[j]].Aabb
				b := NewAABB()
				b.CombineTwoInPlace(aabbi, aabbj)
				cost := b.GetPerimeter()
				if cost < minCost {
					iMin = i
					jMin = j
					minCost = cost
				}
			}
		}

		index1 := nodes[iMin]
		index2 := nodes[jMin]
		child1 := &tree.Nodes[index1]
		child2 := &tree.Nodes[index2]

		parentIndex := tree.AllocateNode()
		parent := &tree.Nodes[parentIndex]
		parent.Child1 = index1
		parent.Child2 = index2
		parent.Height = 1 + MaxInt(child1.Height, child2.Height)
		parent.Aabb.CombineTwoInPlace(child1.Aabb, child2.Aabb)
		parent.Parent = NullNode

		child1.Parent = parentIndex
		child2.Parent = parentIndex

		nodes[jMin] = nodes[count-1]
		nodes[iMin] = parentIndex
		count--
	}

	tree.Root = nodes[0]
	//Free(nodes)

	tree.Validate()
}

func (tree *DynamicTree) ShiftOrigin(newOrigin Vec2) {
	// Shift the AABB of every node slot, free slots included.
	for i := 0; i < tree.NodeCapacity; i++ {
		tree.Nodes[i].Aabb.LowerBound.SubAssign(newOrigin)
		tree.Nodes[i].Aabb.UpperBound.SubAssign(newOrigin)
	}
}
