package physics2d

type CircleContact struct {
	Contact
}

func CircleContactCreate(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) ContactInterface {
	Assert(fixtureA.GetType() == ShapeCircle)
	Assert(fixtureB.GetType() == ShapeCircle)
	res := &CircleContact{
		Contact: MakeContact(fixtureA, 0, fixtureB, 0),
	}

	return res
}

func CircleContactDestroy(contact ContactInterface) { // should be a pointer
}

func (contact *CircleContact) Evaluate(manifold *Manifold, xfA Transform, xfB Transform) {
	CollideCircles(
		manifold,
		contact.GetFixtureA().GetShape().(*CircleShape), xfA,
		contact.GetFixtureB().GetShape().(*CircleShape), xfB,
	)
}
