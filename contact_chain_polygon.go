package physics2d

type ChainAndPolygonContact struct {
	Contact
}

func ChainAndPolygonContactCreate(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) ContactInterface {
	Assert(fixtureA.GetType() == ShapeChain)
	Assert(fixtureB.GetType() == ShapePolygon)
	res := &ChainAndPolygonContact{
		Contact: MakeContact(fixtureA, indexA, fixtureB, indexB),
	}

	return res
}

func ChainAndPolygonContactDestroy(contact ContactInterface) { // should be a pointer
}

func (contact *ChainAndPolygonContact) Evaluate(manifold *Manifold, xfA Transform, xfB Transform) {
	chain := contact.GetFixtureA().GetShape().(*ChainShape)
	edge := MakeEdgeShape()
	chain.GetChildEdge(&edge, contact.IndexA)
	CollideEdgeAndPolygon(manifold, &edge, xfA, contact.GetFixtureB().GetShape().(*PolygonShape), xfB)
}
