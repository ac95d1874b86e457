package physics2d

type EdgeAndCircleContact struct {
	Contact
}

func EdgeAndCircleContactCreate(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) ContactInterface {
	Assert(fixtureA.GetType() == ShapeEdge)
	Assert(fixtureB.GetType() == ShapeCircle)
	res := &EdgeAndCircleContact{
		Contact: MakeContact(fixtureA, 0, fixtureB, 0),
	}

	return res
}

func EdgeAndCircleContactDestroy(contact ContactInterface) { // should be a pointer
}

func (contact *EdgeAndCircleContact) Evaluate(manifold *Manifold, xfA Transform, xfB Transform) {
	CollideEdgeAndCircle(
		manifold,
		contact.GetFixtureA().GetShape().(*EdgeShape), xfA,
		contact.GetFixtureB().GetShape().(*CircleShape), xfB,
	)
}
