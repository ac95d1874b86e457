package physics2d

import (
	"log/slog"
	"math"
)

/// Input parameters for TimeOfImpact
type TOIInput struct {
	ProxyA DistanceProxy
	ProxyB DistanceProxy
	SweepA Sweep
	SweepB Sweep
	TMax   float64 // defines sweep interval [0, tMax]
}

func MakeTOIInput() TOIInput {
	return TOIInput{}
}

// Output parameters for TimeOfImpact.

// Outcome of a conservative-advancement sweep: TOIUnknown starts the
// block at 1 so a zero-value TOIOutput reads as uninitialized.
const (
	TOIUnknown uint8 = iota + 1
	TOIFailed
	TOIOverlapped
	TOITouching
	TOISeparated
)

type TOIOutput struct {
	State uint8
	T     float64
}

func MakeTOIOutput() TOIOutput {
	return TOIOutput{}
}

var ToiTime, ToiMaxTime float64
var ToiCalls, ToiIters, ToiMaxIters int
var ToiRootIters, ToiMaxRootIters int

// Shape of the separating axis a conservative-advancement sweep is
// tracking: a point pair, or a face of proxy A or proxy B.
const (
	separationPoints uint8 = iota
	separationFaceA
	separationFaceB
)

//
type SeparationFunction struct {
	ProxyA           *DistanceProxy
	ProxyB           *DistanceProxy
	SweepA, SweepB Sweep
	Type             uint8
	LocalPoint       Vec2
	Axis             Vec2
}

// TODO: might not need to return the separation
func (sepfunc *SeparationFunction) Initialize(cache *SimplexCache, proxyA *DistanceProxy, sweepA Sweep, proxyB *DistanceProxy, sweepB Sweep, t1 float64) float64 {

	sepfunc.ProxyA = proxyA
	sepfunc.ProxyB = proxyB
	count := cache.Count
	Assert(0 < count && count < 3)

	sepfunc.SweepA = sweepA
	sepfunc.SweepB = sweepB

	xfA := MakeTransform()
	xfB := MakeTransform()
	sepfunc.SweepA.GetTransform(&xfA, t1)
	sepfunc.SweepB.GetTransform(&xfB, t1)

	if count == 1 {
		sepfunc.Type = separationPoints
		localPointA := sepfunc.ProxyA.GetVertex(cache.IndexA[0])
		localPointB := sepfunc.ProxyB.GetVertex(cache.IndexB[0])
		pointA := TransformVec2Mul(xfA, localPointA)
		pointB := TransformVec2Mul(xfB, localPointB)
		sepfunc.Axis = Vec2Sub(pointB, pointA)
		s := sepfunc.Axis.Normalize()
		return s
	} else if cache.IndexA[0] == cache.IndexA[1] {
		// Two points on B and one on A.
		sepfunc.Type = separationFaceB
		localPointB1 := proxyB.GetVertex(cache.IndexB[0])
		localPointB2 := proxyB.GetVertex(cache.IndexB[1])

		sepfunc.Axis = Vec2CrossVectorScalar(
			Vec2Sub(localPointB2, localPointB1),
			1.0,
		)

		sepfunc.Axis.Normalize()
		normal := RotVec2Mul(xfB.Q, sepfunc.Axis)

		sepfunc.LocalPoint = Vec2MulScalar(0.5, Vec2Add(localPointB1, localPointB2))
		pointB := TransformVec2Mul(xfB, sepfunc.LocalPoint)

		localPointA := proxyA.GetVertex(cache.IndexA[0])
		pointA := TransformVec2Mul(xfA, localPointA)

		s := Vec2Dot(Vec2Sub(pointA, pointB), normal)
		if s < 0.0 {
			sepfunc.Axis = sepfunc.Axis.Neg()
			s = -s
		}

		return s
	} else {
		// Two points on A and one or two points on B.
		sepfunc.Type = separationFaceA
		localPointA1 := sepfunc.ProxyA.GetVertex(cache.IndexA[0])
		localPointA2 := sepfunc.ProxyA.GetVertex(cache.IndexA[1])

		sepfunc.Axis = Vec2CrossVectorScalar(Vec2Sub(localPointA2, localPointA1), 1.0)
		sepfunc.Axis.Normalize()
		normal := RotVec2Mul(xfA.Q, sepfunc.Axis)

		sepfunc.LocalPoint = Vec2MulScalar(0.5, Vec2Add(localPointA1, localPointA2))
		pointA := TransformVec2Mul(xfA, sepfunc.LocalPoint)

		localPointB := sepfunc.ProxyB.GetVertex(cache.IndexB[0])
		pointB := TransformVec2Mul(xfB, localPointB)

		s := Vec2Dot(Vec2Sub(pointB, pointA), normal)
		if s < 0.0 {
			sepfunc.Axis = sepfunc.Axis.Neg()
			s = -s
		}

		return s
	}
}

//
func (sepfunc *SeparationFunction) FindMinSeparation(indexA *int, indexB *int, t float64) float64 {

	xfA := MakeTransform()
	xfB := MakeTransform()

	sepfunc.SweepA.GetTransform(&xfA, t)
	sepfunc.SweepB.GetTransform(&xfB, t)

	switch sepfunc.Type {
	case separationPoints:
		{
			axisA := RotVec2MulT(xfA.Q, sepfunc.Axis)
			axisB := RotVec2MulT(xfB.Q, sepfunc.Axis.Neg())

			*indexA = sepfunc.ProxyA.GetSupport(axisA)
			*indexB = sepfunc.ProxyB.GetSupport(axisB)

			localPointA := sepfunc.ProxyA.GetVertex(*indexA)
			localPointB := sepfunc.ProxyB.GetVertex(*indexB)

			pointA := TransformVec2Mul(xfA, localPointA)
			pointB := TransformVec2Mul(xfB, localPointB)

			separation := Vec2Dot(Vec2Sub(pointB, pointA), sepfunc.Axis)
			return separation
		}

	case separationFaceA:
		{
			normal := RotVec2Mul(xfA.Q, sepfunc.Axis)
			pointA := TransformVec2Mul(xfA, sepfunc.LocalPoint)

			axisB := RotVec2MulT(xfB.Q, normal.Neg())

			*indexA = -1
			*indexB = sepfunc.ProxyB.GetSupport(axisB)

			localPointB := sepfunc.ProxyB.GetVertex(*indexB)
			pointB := TransformVec2Mul(xfB, localPointB)

			separation := Vec2Dot(Vec2Sub(pointB, pointA), normal)
			return separation
		}

	case separationFaceB:
		{
			normal := RotVec2Mul(xfB.Q, sepfunc.Axis)
			pointB := TransformVec2Mul(xfB, sepfunc.LocalPoint)

			axisA := RotVec2MulT(xfA.Q, normal.Neg())

			*indexB = -1
			*indexA = sepfunc.ProxyA.GetSupport(axisA)

			localPointA := sepfunc.ProxyA.GetVertex(*indexA)
			pointA := TransformVec2Mul(xfA, localPointA)

			separation := Vec2Dot(Vec2Sub(pointA, pointB), normal)
			return separation
		}

	default:
		Assert(false)
		*indexA = -1
		*indexB = -1
		return 0.0
	}
}

//
func (sepfunc *SeparationFunction) Evaluate(indexA int, indexB int, t float64) float64 {

	xfA := MakeTransform()
	xfB := MakeTransform()

	sepfunc.SweepA.GetTransform(&xfA, t)
	sepfunc.SweepB.GetTransform(&xfB, t)

	switch sepfunc.Type {
	case separationPoints:
		{
			localPointA := sepfunc.ProxyA.GetVertex(indexA)
			localPointB := sepfunc.ProxyB.GetVertex(indexB)

			pointA := TransformVec2Mul(xfA, localPointA)
			pointB := TransformVec2Mul(xfB, localPointB)
			separation := Vec2Dot(Vec2Sub(pointB, pointA), sepfunc.Axis)

			return separation
		}

	case separationFaceA:
		{
			normal := RotVec2Mul(xfA.Q, sepfunc.Axis)
			pointA := TransformVec2Mul(xfA, sepfunc.LocalPoint)

			localPointB := sepfunc.ProxyB.GetVertex(indexB)
			pointB := TransformVec2Mul(xfB, localPointB)

			separation := Vec2Dot(Vec2Sub(pointB, pointA), normal)
			return separation
		}

	case separationFaceB:
		{
			normal := RotVec2Mul(xfB.Q, sepfunc.Axis)
			pointB := TransformVec2Mul(xfB, sepfunc.LocalPoint)

			localPointA := sepfunc.ProxyA.GetVertex(indexA)
			pointA := TransformVec2Mul(xfA, localPointA)

			separation := Vec2Dot(Vec2Sub(pointA, pointB), normal)
			return separation
		}

	default:
		Assert(false)
		return 0.0
	}
}

/// Compute the upper bound on time before two shapes penetrate. Time is represented as
/// a fraction between [0,tMax]. This uses a swept separating axis and may miss some intermediate,
/// non-tunneling collision. If you change the time interval, you should call this function
/// again.
/// Note: use Distance to compute the contact point and normal at the time of impact.
// CCD via the local separating axis method. This seeks progression
// by computing the largest time at which separation is maintained.
func TimeOfImpact(output *TOIOutput, input *TOIInput) {

	timer := MakeTimer()

	ToiCalls++

	output.State = TOIUnknown
	output.T = input.TMax

	proxyA := &input.ProxyA
	proxyB := &input.ProxyB

	sweepA := input.SweepA
	sweepB := input.SweepB

	// Large rotations can make the root finder fail, so we normalize the
	// sweep angles.
	sweepA.Normalize()
	sweepB.Normalize()

	tMax := input.TMax

	totalRadius := proxyA.Radius + proxyB.Radius
	target := math.Max(LinearSlop, totalRadius-3.0*LinearSlop)
	tolerance := 0.25 * LinearSlop
	Assert(target > tolerance)

	t1 := 0.0
	k_maxIterations := 20 // TODO: make this tunable alongside the other solver iteration caps
	iter := 0

	// Prepare input for distance query.
	cache := MakeSimplexCache()
	cache.Count = 0
	distanceInput := MakeDistanceInput()
	distanceInput.ProxyA = input.ProxyA
	distanceInput.ProxyB = input.ProxyB
	distanceInput.UseRadii = false

	// The outer loop progressively attempts to compute new separating axes.
	// This loop terminates when an axis is repeated (no progress is made).
	for {

		xfA := MakeTransform()
		xfB := MakeTransform()

		sweepA.GetTransform(&xfA, t1)
		sweepB.GetTransform(&xfB, t1)

		// Get the distance between shapes. We can also use the results
		// to get a separating axis.
		distanceInput.TransformA = xfA
		distanceInput.TransformB = xfB
		distanceOutput := MakeDistanceOutput()
		Distance(&distanceOutput, &cache, &distanceInput)

		// If the shapes are overlapped, we give up on continuous collision.
		if distanceOutput.Distance <= 0.0 {
			// Failure!
			output.State = TOIOverlapped
			output.T = 0.0
			break
		}

		if distanceOutput.Distance < target+tolerance {
			// Victory!
			output.State = TOITouching
			output.T = t1
			break
		}

		// Initialize the separating axis.
		var fcn SeparationFunction
		fcn.Initialize(&cache, proxyA, sweepA, proxyB, sweepB, t1)

		// Compute the TOI on the separating axis. We do this by successively
		// resolving the deepest point. This loop is bounded by the number of vertices.
		done := false
		t2 := tMax
		pushBackIter := 0
		for {
			// Find the deepest point at t2. Store the witness point indices.
			var indexA, indexB int
			s2 := fcn.FindMinSeparation(&indexA, &indexB, t2)

			// Is the final configuration separated?
			if s2 > target+tolerance {
				// Victory!
				output.State = TOISeparated
				output.T = tMax
				done = true
				break
			}

			// Has the separation reached tolerance?
			if s2 > target-tolerance {
				// Advance the sweeps
				t1 = t2
				break
			}

			// Compute the initial separation of the witness points.
			s1 := fcn.Evaluate(indexA, indexB, t1)

			// Check for initial overlap. This might happen if the root finder
			// runs out of iterations.
			if s1 < target-tolerance {
				output.State = TOIFailed
				output.T = t1
				done = true
				break
			}

			// Check for touching
			if s1 <= target+tolerance {
				// Victory! t1 should hold the TOI (could be 0.0).
				output.State = TOITouching
				output.T = t1
				done = true
				break
			}

			// Compute 1D root of: f(x) - target = 0
			rootIterCount := 0
			a1 := t1
			a2 := t2

			for {
				// Use a mix of the secant rule and bisection.
				t := 0.0

				if (rootIterCount & 1) != 0x0000 {
					// Secant rule to improve convergence.
					t = a1 + (target-s1)*(a2-a1)/(s2-s1)
				} else {
					// Bisection to guarantee progress.
					t = 0.5 * (a1 + a2)
				}

				rootIterCount++
				ToiRootIters++

				s := fcn.Evaluate(indexA, indexB, t)

				if math.Abs(s-target) < tolerance {
					// t2 holds a tentative value for t1
					t2 = t
					break
				}

				// Ensure we continue to bracket the root.
				if s > target {
					a1 = t
					s1 = s
				} else {
					a2 = t
					s2 = s
				}

				if rootIterCount == 50 {
					break
				}
			}

			ToiMaxRootIters = MaxInt(ToiMaxRootIters, rootIterCount)

			pushBackIter++

			if pushBackIter == MaxPolygonVertices {
				break
			}
		}

		iter++
		ToiIters++

		if done {
			break
		}

		if iter == k_maxIterations {
			// Root finder got stuck. Semi-victory.
			if Debug {
				slog.Debug("physics2d: TOI iteration cap hit", "iterations", iter)
			}
			output.State = TOIFailed
			output.T = t1
			break
		}
	}

	ToiMaxIters = MaxInt(ToiMaxIters, iter)

	time := timer.GetMilliseconds()
	ToiMaxTime = math.Max(ToiMaxTime, time)
	ToiTime += time
}
