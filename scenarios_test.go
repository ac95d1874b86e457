package physics2d_test

import (
	"math"
	"testing"

	"github.com/Bambo-Borris/physics2d"
)

// step runs the world for n frames at a fixed 1/60s timestep using the
// package's default solver iteration counts.
func step(world *physics2d.World, n int) {
	for i := 0; i < n; i++ {
		world.Step(1.0/60.0, physics2d.DefaultVelocityIterations, physics2d.DefaultPositionIterations)
	}
}

// TestGravityDrop checks that an unsupported dynamic body in free fall
// accelerates downward and its vertical velocity tracks g*t.
func TestGravityDrop(t *testing.T) {
	gravity := physics2d.MakeVec2(0.0, -10.0)
	world := physics2d.MakeWorld(gravity)

	bd := physics2d.MakeBodyDef()
	bd.Type = physics2d.BodyDynamic
	bd.Position.Set(0.0, 100.0)
	body := world.CreateBody(&bd)

	shape := physics2d.MakeCircleShape()
	shape.Radius = 0.5
	body.CreateFixture(&shape, 1.0)

	step(&world, 30)

	v := body.GetLinearVelocity()
	expected := -10.0 * (30.0 / 60.0)
	if math.Abs(v.Y-expected) > 0.05 {
		t.Fatalf("expected vertical velocity near %v, got %v", expected, v.Y)
	}
	if body.GetPosition().Y >= 100.0 {
		t.Fatalf("body did not fall: %v", body.GetPosition())
	}
}

// TestRestitution drops a bouncy ball onto a static ground fixture and
// checks that it rebounds to a meaningful fraction of its drop height
// rather than sticking or passing through.
func TestRestitution(t *testing.T) {
	gravity := physics2d.MakeVec2(0.0, -10.0)
	world := physics2d.MakeWorld(gravity)

	{
		bd := physics2d.MakeBodyDef()
		ground := world.CreateBody(&bd)
		shape := physics2d.MakeEdgeShape()
		shape.Set(physics2d.MakeVec2(-10.0, 0.0), physics2d.MakeVec2(10.0, 0.0))
		ground.CreateFixture(&shape, 0.0)
	}

	bd := physics2d.MakeBodyDef()
	bd.Type = physics2d.BodyDynamic
	bd.Position.Set(0.0, 5.0)
	bd.AllowSleep = false
	body := world.CreateBody(&bd)

	shape := physics2d.MakeCircleShape()
	shape.Radius = 0.5

	fd := physics2d.MakeFixtureDef()
	fd.Shape = &shape
	fd.Density = 1.0
	fd.Restitution = 0.8
	body.CreateFixtureFromDef(&fd)

	peakAfterBounce := 0.0
	hitGround := false
	for i := 0; i < 300; i++ {
		step(&world, 1)
		pos := body.GetPosition()
		if !hitGround && pos.Y <= 0.6 {
			hitGround = true
			continue
		}
		if hitGround && pos.Y > peakAfterBounce {
			peakAfterBounce = pos.Y
		}
	}

	if !hitGround {
		t.Fatalf("ball never reached the ground")
	}
	if peakAfterBounce < 1.0 {
		t.Fatalf("expected a meaningful rebound, peak height after bounce was %v", peakAfterBounce)
	}
}

// TestRestingStack checks that a stack of boxes dropped onto a static
// ground comes to rest without interpenetrating or drifting apart.
func TestRestingStack(t *testing.T) {
	gravity := physics2d.MakeVec2(0.0, -10.0)
	world := physics2d.MakeWorld(gravity)

	{
		bd := physics2d.MakeBodyDef()
		ground := world.CreateBody(&bd)
		shape := physics2d.MakePolygonShape()
		shape.SetAsBox(20.0, 0.5)
		ground.CreateFixture(&shape, 0.0)
	}

	boxes := make([]*physics2d.Body, 0, 4)
	for i := 0; i < 4; i++ {
		bd := physics2d.MakeBodyDef()
		bd.Type = physics2d.BodyDynamic
		bd.Position.Set(0.0, 1.0+float64(i)*1.01)
		body := world.CreateBody(&bd)

		shape := physics2d.MakePolygonShape()
		shape.SetAsBox(0.5, 0.5)

		fd := physics2d.MakeFixtureDef()
		fd.Shape = &shape
		fd.Density = 1.0
		fd.Friction = 0.3
		body.CreateFixtureFromDef(&fd)
		boxes = append(boxes, body)
	}

	step(&world, 300)

	for i, box := range boxes {
		pos := box.GetPosition()
		expectedY := 1.0 + float64(i)*1.0
		if math.Abs(pos.Y-expectedY) > 0.3 {
			t.Fatalf("box %d settled at unexpected height: got %v want near %v", i, pos.Y, expectedY)
		}
		if math.Abs(pos.X) > 0.3 {
			t.Fatalf("box %d drifted sideways: %v", i, pos.X)
		}
	}
}

// TestBulletTunneling checks that a fast-moving bullet body with
// continuous collision enabled is stopped by a thin wall it would
// otherwise tunnel through in a single step.
func TestBulletTunneling(t *testing.T) {
	world := physics2d.MakeWorld(physics2d.MakeVec2(0.0, 0.0))

	{
		bd := physics2d.MakeBodyDef()
		bd.Position.Set(0.0, 0.0)
		wall := world.CreateBody(&bd)
		shape := physics2d.MakePolygonShape()
		shape.SetAsBox(0.05, 5.0)
		wall.CreateFixture(&shape, 0.0)
	}

	bd := physics2d.MakeBodyDef()
	bd.Type = physics2d.BodyDynamic
	bd.Position.Set(-10.0, 0.0)
	bd.Bullet = true
	body := world.CreateBody(&bd)

	shape := physics2d.MakeCircleShape()
	shape.Radius = 0.1
	body.CreateFixture(&shape, 1.0)

	body.SetLinearVelocity(physics2d.MakeVec2(500.0, 0.0))

	step(&world, 5)

	if body.GetPosition().X > 0.5 {
		t.Fatalf("bullet tunneled through the wall: %v", body.GetPosition())
	}
}

// TestCollisionFiltering checks that two fixtures in mutually exclusive
// collision categories never generate contact points, even when their
// bodies physically overlap.
func TestCollisionFiltering(t *testing.T) {
	world := physics2d.MakeWorld(physics2d.MakeVec2(0.0, 0.0))

	const categoryA uint16 = 0x0002
	const categoryB uint16 = 0x0004

	bdA := physics2d.MakeBodyDef()
	bdA.Type = physics2d.BodyDynamic
	bdA.Position.Set(0.0, 0.0)
	bodyA := world.CreateBody(&bdA)

	shapeA := physics2d.MakeCircleShape()
	shapeA.Radius = 1.0
	fdA := physics2d.MakeFixtureDef()
	fdA.Shape = &shapeA
	fdA.Density = 1.0
	fdA.Filter.CategoryBits = categoryA
	fdA.Filter.MaskBits = categoryA
	bodyA.CreateFixtureFromDef(&fdA)

	bdB := physics2d.MakeBodyDef()
	bdB.Type = physics2d.BodyDynamic
	bdB.Position.Set(0.5, 0.0)
	bodyB := world.CreateBody(&bdB)

	shapeB := physics2d.MakeCircleShape()
	shapeB.Radius = 1.0
	fdB := physics2d.MakeFixtureDef()
	fdB.Shape = &shapeB
	fdB.Density = 1.0
	fdB.Filter.CategoryBits = categoryB
	fdB.Filter.MaskBits = categoryB
	bodyB.CreateFixtureFromDef(&fdB)

	step(&world, 10)

	touching := 0
	for edge := bodyA.GetContactList(); edge != nil; edge = edge.Next {
		if edge.Contact.IsTouching() {
			touching++
		}
	}
	if touching != 0 {
		t.Fatalf("expected no touching contacts between mutually exclusive categories, got %d", touching)
	}
}

// TestRayCastHitsNearestFixture checks that World.RayCast reports the
// fixture closest to the ray origin when the ray passes through more
// than one candidate.
func TestRayCastHitsNearestFixture(t *testing.T) {
	world := physics2d.MakeWorld(physics2d.MakeVec2(0.0, 0.0))

	near := makeStaticCircle(&world, physics2d.MakeVec2(5.0, 0.0), 0.5)
	_ = makeStaticCircle(&world, physics2d.MakeVec2(10.0, 0.0), 0.5)

	var hitFixture *physics2d.Fixture
	bestFraction := math.Inf(1)

	world.RayCast(func(fixture *physics2d.Fixture, point physics2d.Vec2, normal physics2d.Vec2, fraction float64) float64 {
		if fraction < bestFraction {
			bestFraction = fraction
			hitFixture = fixture
		}
		return fraction
	}, physics2d.MakeVec2(0.0, 0.0), physics2d.MakeVec2(20.0, 0.0))

	if hitFixture == nil {
		t.Fatalf("ray cast reported no hit")
	}
	if hitFixture.GetBody() != near {
		t.Fatalf("expected the ray to hit the nearer circle first")
	}
}

func makeStaticCircle(world *physics2d.World, position physics2d.Vec2, radius float64) *physics2d.Body {
	bd := physics2d.MakeBodyDef()
	bd.Position = position
	body := world.CreateBody(&bd)

	shape := physics2d.MakeCircleShape()
	shape.Radius = radius
	body.CreateFixture(&shape, 0.0)
	return body
}
