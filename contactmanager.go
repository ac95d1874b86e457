package physics2d

// contactBlockSize is the size passed to Pool.Track/Untrack for each
// live contact. Track/Untrack do not use it, and it is not checked
// against the size of the concrete contact structs (CircleContact,
// PolygonContact, ...).
const contactBlockSize = 128

type ContactManager struct {
	BroadPhase      BroadPhase
	ContactList     ContactInterface
	ContactCount    int
	ContactFilter   ContactFilterInterface
	ContactListener ContactListenerInterface

	// Pool charges every live contact against the world's pool
	// allocator, mirroring how a native rewrite would carve contacts
	// out of size-classed blocks instead of one-off heap allocations.
	Pool *PoolAllocator
}

var defaultContactFilter ContactFilterInterface = &ContactFilter{}
var defaultContactListener ContactListenerInterface

func MakeContactManager() ContactManager {
	return ContactManager{
		BroadPhase:      MakeBroadPhase(),
		ContactList:     nil,
		ContactCount:    0,
		ContactFilter:   defaultContactFilter,
		ContactListener: defaultContactListener,
	}
}

func NewContactManager() *ContactManager {
	res := MakeContactManager()
	return &res
}

func (mgr *ContactManager) Destroy(c ContactInterface) {
	fixtureA := c.GetFixtureA()
	fixtureB := c.GetFixtureB()
	bodyA := fixtureA.GetBody()
	bodyB := fixtureB.GetBody()

	if mgr.ContactListener != nil && c.IsTouching() {
		mgr.ContactListener.EndContact(c)
	}

	// Remove from the world.
	if c.GetPrev() != nil {
		c.GetPrev().SetNext(c.GetNext())
	}

	if c.GetNext() != nil {
		c.GetNext().SetPrev(c.GetPrev())
	}

	if c == mgr.ContactList {
		mgr.ContactList = c.GetNext()
	}

	// Remove from body 1
	if c.GetNodeA().Prev != nil {
		c.GetNodeA().Prev.Next = c.GetNodeA().Next
	}

	if c.GetNodeA().Next != nil {
		c.GetNodeA().Next.Prev = c.GetNodeA().Prev
	}

	if c.GetNodeA() == bodyA.ContactList {
		bodyA.ContactList = c.GetNodeA().Next
	}

	// Remove from body 2
	if c.GetNodeB().Prev != nil {
		c.GetNodeB().Prev.Next = c.GetNodeB().Next
	}

	if c.GetNodeB().Next != nil {
		c.GetNodeB().Next.Prev = c.GetNodeB().Prev
	}

	if c.GetNodeB() == bodyB.ContactList {
		bodyB.ContactList = c.GetNodeB().Next
	}

	// Call the factory.
	ContactDestroy(c)
	mgr.ContactCount--
	if mgr.Pool != nil {
		mgr.Pool.Untrack(contactBlockSize)
	}
}

// This is the top level collision call for the time step. Here
// all the narrow phase collision is processed for the world
// contact list.
func (mgr *ContactManager) Collide() {
	// Update awake contacts.
	c := mgr.ContactList

	for c != nil {
		fixtureA := c.GetFixtureA()
		fixtureB := c.GetFixtureB()
		indexA := c.GetChildIndexA()
		indexB := c.GetChildIndexB()
		bodyA := fixtureA.GetBody()
		bodyB := fixtureB.GetBody()

		// Is this contact flagged for filtering?
		if (c.GetFlags() & contactFlagFilter) != 0x0000 {
			// Should these bodies collide?
			if bodyB.ShouldCollide(bodyA) == false {
				cNuke := c
				c = cNuke.GetNext()
				mgr.Destroy(cNuke)
				continue
			}

			// Check user filtering.
			if mgr.ContactFilter != nil && mgr.ContactFilter.ShouldCollide(fixtureA, fixtureB) == false {
				cNuke := c
				c = cNuke.GetNext()
				mgr.Destroy(cNuke)
				continue
			}

			// Clear the filtering flag.
			c.SetFlags(c.GetFlags() & ^contactFlagFilter)
		}

		activeA := bodyA.IsAwake() && bodyA.Type != BodyStatic
		activeB := bodyB.IsAwake() && bodyB.Type != BodyStatic

		// At least one body must be awake and it must be dynamic or kinematic.
		if activeA == false && activeB == false {
			c = c.GetNext()
			continue
		}

		proxyIdA := fixtureA.Proxies[indexA].ProxyId
		proxyIdB := fixtureB.Proxies[indexB].ProxyId
		overlap := mgr.BroadPhase.TestOverlap(proxyIdA, proxyIdB)

		// Here we destroy contacts that cease to overlap in the broad-phase.
		if overlap == false {
			cNuke := c
			c = cNuke.GetNext()
			mgr.Destroy(cNuke)
			continue
		}

		// The contact persists.
		ContactUpdate(c, mgr.ContactListener)
		c = c.GetNext()
	}
}

func (mgr *ContactManager) FindNewContacts() {
	mgr.BroadPhase.UpdatePairs(mgr.AddPair)
}

func (mgr *ContactManager) AddPair(proxyUserDataA interface{}, proxyUserDataB interface{}) {

	proxyA := proxyUserDataA.(*FixtureProxy)
	proxyB := proxyUserDataB.(*FixtureProxy)

	fixtureA := proxyA.Fixture
	fixtureB := proxyB.Fixture

	indexA := proxyA.ChildIndex
	indexB := proxyB.ChildIndex

	bodyA := fixtureA.GetBody()
	bodyB := fixtureB.GetBody()

	// Are the fixtures on the same body?
	if bodyA == bodyB {
		return
	}

	// TODO: use a hash table to remove a potential bottleneck when both
	// bodies have a lot of contacts.
	// Does a contact already exist?
	edge := bodyB.GetContactList()
	for edge != nil {
		if edge.Other == bodyA {
			fA := edge.Contact.GetFixtureA()
			fB := edge.Contact.GetFixtureB()
			iA := edge.Contact.GetChildIndexA()
			iB := edge.Contact.GetChildIndexB()

			if fA == fixtureA && fB == fixtureB && iA == indexA && iB == indexB {
				// A contact already exists.
				return
			}

			if fA == fixtureB && fB == fixtureA && iA == indexB && iB == indexA {
				// A contact already exists.
				return
			}
		}

		edge = edge.Next
	}

	// Does a joint override collision? Is at least one body dynamic?
	if bodyB.ShouldCollide(bodyA) == false {
		return
	}

	// Check user filtering.
	if mgr.ContactFilter != nil && mgr.ContactFilter.ShouldCollide(fixtureA, fixtureB) == false {
		return
	}

	// Call the factory.
	c := ContactFactory(fixtureA, indexA, fixtureB, indexB)
	if c == nil {
		return
	}
	if mgr.Pool != nil {
		mgr.Pool.Track(contactBlockSize)
	}

	// Contact creation may swap fixtures.
	fixtureA = c.GetFixtureA()
	fixtureB = c.GetFixtureB()
	indexA = c.GetChildIndexA()
	indexB = c.GetChildIndexB()
	bodyA = fixtureA.GetBody()
	bodyB = fixtureB.GetBody()

	// Insert into the world.
	c.SetPrev(nil)
	c.SetNext(mgr.ContactList)
	if mgr.ContactList != nil {
		mgr.ContactList.SetPrev(c)
	}
	mgr.ContactList = c

	// Connect to island graph.

	// Connect to body A
	// fmt.Printf("getNode(): %p\n", c.GetNodeA())
	// fmt.Printf("getNode(): %p\n", c.GetNodeA())
	// fmt.Printf("getNode(): %p\n", c.GetNodeA())

	c.GetNodeA().Contact = c
	c.GetNodeA().Other = bodyB

	c.GetNodeA().Prev = nil
	c.GetNodeA().Next = bodyA.ContactList
	if bodyA.ContactList != nil {
		bodyA.ContactList.Prev = c.GetNodeA()
	}
	bodyA.ContactList = c.GetNodeA()

	// Connect to body B
	c.GetNodeB().Contact = c
	c.GetNodeB().Other = bodyA

	c.GetNodeB().Prev = nil
	c.GetNodeB().Next = bodyB.ContactList
	if bodyB.ContactList != nil {
		bodyB.ContactList.Prev = c.GetNodeB()
	}
	bodyB.ContactList = c.GetNodeB()

	// Wake up the bodies
	if fixtureA.IsSensor() == false && fixtureB.IsSensor() == false {
		bodyA.SetAwake(true)
		bodyB.SetAwake(true)
	}

	mgr.ContactCount++
}
