package physics2d

type ChainAndCircleContact struct {
	Contact
}

func ChainAndCircleContactCreate(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) ContactInterface {
	Assert(fixtureA.GetType() == ShapeChain)
	Assert(fixtureB.GetType() == ShapeCircle)
	res := &ChainAndCircleContact{
		Contact: MakeContact(fixtureA, indexA, fixtureB, indexB),
	}

	return res
}

func ChainAndCircleContactDestroy(contact ContactInterface) { // should be a pointer
}

func (contact *ChainAndCircleContact) Evaluate(manifold *Manifold, xfA Transform, xfB Transform) {

	chain := contact.GetFixtureA().GetShape().(*ChainShape)
	edge := MakeEdgeShape()
	chain.GetChildEdge(&edge, contact.IndexA)
	CollideEdgeAndCircle(
		manifold,
		&edge, xfA,
		contact.GetFixtureB().GetShape().(*CircleShape), xfB,
	)
}
