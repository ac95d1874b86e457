package physics2d

type PolygonAndCircleContact struct {
	Contact
}

func PolygonAndCircleContactCreate(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) ContactInterface {
	Assert(fixtureA.GetType() == ShapePolygon)
	Assert(fixtureB.GetType() == ShapeCircle)
	res := &PolygonAndCircleContact{
		Contact: MakeContact(fixtureA, 0, fixtureB, 0),
	}

	return res
}

func PolygonAndCircleContactDestroy(contact ContactInterface) { // should be a pointer
}

func (contact *PolygonAndCircleContact) Evaluate(manifold *Manifold, xfA Transform, xfB Transform) {
	CollidePolygonAndCircle(
		manifold,
		contact.GetFixtureA().GetShape().(*PolygonShape), xfA,
		contact.GetFixtureB().GetShape().(*CircleShape), xfB,
	)
}
