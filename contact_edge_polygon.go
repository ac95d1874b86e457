package physics2d

type EdgeAndPolygonContact struct {
	Contact
}

func EdgeAndPolygonContactCreate(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) ContactInterface {
	Assert(fixtureA.GetType() == ShapeEdge)
	Assert(fixtureB.GetType() == ShapePolygon)
	res := &EdgeAndPolygonContact{
		Contact: MakeContact(fixtureA, 0, fixtureB, 0),
	}

	return res
}

func EdgeAndPolygonContactDestroy(contact ContactInterface) { // should be a pointer
}

func (contact *EdgeAndPolygonContact) Evaluate(manifold *Manifold, xfA Transform, xfB Transform) {
	CollideEdgeAndPolygon(
		manifold,
		contact.GetFixtureA().GetShape().(*EdgeShape), xfA,
		contact.GetFixtureB().GetShape().(*PolygonShape), xfB,
	)
}
