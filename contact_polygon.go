package physics2d

type PolygonContact struct {
	Contact
}

func PolygonContactCreate(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) ContactInterface {
	Assert(fixtureA.GetType() == ShapePolygon)
	Assert(fixtureB.GetType() == ShapePolygon)
	res := &PolygonContact{
		Contact: MakeContact(fixtureA, 0, fixtureB, 0),
	}

	return res
}

func PolygonContactDestroy(contact ContactInterface) { // should be a pointer
}

func (contact *PolygonContact) Evaluate(manifold *Manifold, xfA Transform, xfB Transform) {
	CollidePolygons(
		manifold,
		contact.GetFixtureA().GetShape().(*PolygonShape), xfA,
		contact.GetFixtureB().GetShape().(*PolygonShape), xfB,
	)
}
