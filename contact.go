package physics2d

import (
	"math"
)

/// Friction mixing law. The idea is to allow either fixture to drive the friction to zero.
/// For example, anything slides on ice.
func MixFriction(friction1, friction2 float64) float64 {
	return math.Sqrt(friction1 * friction2)
}

/// Restitution mixing law. The idea is allow for anything to bounce off an inelastic surface.
/// For example, a superball bounces on anything.
func MixRestitution(restitution1, restitution2 float64) float64 {
	if restitution1 > restitution2 {
		return restitution1
	}

	return restitution2
}

type ContactCreateFcn func(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) ContactInterface // returned contact should be a pointer
type ContactDestroyFcn func(contact ContactInterface)                                                         // contact should be a pointer

type ContactRegister struct {
	CreateFcn  ContactCreateFcn
	DestroyFcn ContactDestroyFcn
	Primary    bool
}

/// A contact edge is used to connect bodies and contacts together
/// in a contact graph where each body is a node and each contact
/// is an edge. A contact edge belongs to a doubly linked list
/// maintained in each attached body. Each contact has two contact
/// nodes, one for each attached body.
type ContactEdge struct {
	Other   *Body            ///< provides quick access to the other body attached.
	Contact ContactInterface ///< the contact
	Prev    *ContactEdge     ///< the previous contact edge in the body's contact list
	Next    *ContactEdge     ///< the next contact edge in the body's contact list
}

func NewContactEdge() *ContactEdge {
	return &ContactEdge{}
}

// Per-contact bitflags packed into Contact.Flags.
const (
	// contactFlagIsland marks a contact as already visited while
	// crawling the contact graph to form islands.
	contactFlagIsland uint32 = 1 << iota

	// contactFlagTouching is set once the narrow phase reports
	// manifold points for this contact.
	contactFlagTouching

	// contactFlagEnabled can be cleared by a user callback to
	// suppress a contact that would otherwise generate a response.
	contactFlagEnabled

	// contactFlagFilter marks a contact for re-evaluation against the
	// collision filter after a fixture's filter data changed.
	contactFlagFilter

	// contactFlagBulletHit records that this contact arose from a TOI
	// event against a bullet body.
	contactFlagBulletHit

	// contactFlagToi marks a contact as having a valid cached TOI.
	contactFlagToi
)

// /// The class manages contact between two shapes. A contact exists for each overlapping
// /// AABB in the broad-phase (except if filtered). Therefore a contact object may exist
// /// that has no contact points.
var contactRegistry [][]ContactRegister
var contactRegistryReady = false

type ContactInterface interface {
	GetFlags() uint32
	SetFlags(flags uint32)

	GetPrev() ContactInterface
	SetPrev(prev ContactInterface)

	GetNext() ContactInterface
	SetNext(prev ContactInterface)

	GetNodeA() *ContactEdge
	SetNodeA(node *ContactEdge)

	GetNodeB() *ContactEdge
	SetNodeB(node *ContactEdge)

	GetFixtureA() *Fixture
	SetFixtureA(fixture *Fixture)

	GetFixtureB() *Fixture
	SetFixtureB(fixture *Fixture)

	GetChildIndexA() int
	SetChildIndexA(index int)

	GetChildIndexB() int
	SetChildIndexB(index int)

	GetManifold() *Manifold
	SetManifold(manifold *Manifold)

	GetTOICount() int
	SetTOICount(toiCount int)

	GetTOI() float64
	SetTOI(toiCount float64)

	GetFriction() float64
	SetFriction(friction float64)
	ResetFriction()

	GetRestitution() float64
	SetRestitution(restitution float64)
	ResetRestitution()

	GetTangentSpeed() float64
	SetTangentSpeed(tangentSpeed float64)

	IsTouching() bool
	IsEnabled() bool
	SetEnabled(bool)

	Evaluate(manifold *Manifold, xfA Transform, xfB Transform)

	FlagForFiltering()

	GetWorldManifold(worldManifold *WorldManifold)
}

type Contact struct {
	Flags uint32

	// World pool and list pointers.
	Prev ContactInterface //should be backed by a pointer
	Next ContactInterface //should be backed by a pointer

	// Nodes for connecting bodies.
	NodeA *ContactEdge
	NodeB *ContactEdge

	FixtureA *Fixture
	FixtureB *Fixture

	IndexA int
	IndexB int

	Manifold *Manifold

	ToiCount     int
	Toi          float64
	Friction     float64
	Restitution  float64
	TangentSpeed float64
}

func (contact Contact) GetFlags() uint32 {
	return contact.Flags
}

func (contact *Contact) SetFlags(flags uint32) {
	contact.Flags = flags
}

func (contact Contact) GetPrev() ContactInterface {
	return contact.Prev
}

func (contact *Contact) SetPrev(prev ContactInterface) {
	contact.Prev = prev
}

func (contact Contact) GetNext() ContactInterface {
	return contact.Next
}

func (contact *Contact) SetNext(next ContactInterface) {
	contact.Next = next
}

func (contact Contact) GetNodeA() *ContactEdge {
	return contact.NodeA
}

func (contact *Contact) SetNodeA(node *ContactEdge) {
	contact.NodeA = node
}

func (contact Contact) GetNodeB() *ContactEdge {
	return contact.NodeB
}

func (contact *Contact) SetNodeB(node *ContactEdge) {
	contact.NodeB = node
}

func (contact Contact) GetFixtureA() *Fixture {
	return contact.FixtureA
}

func (contact *Contact) SetFixtureA(fixture *Fixture) {
	contact.FixtureA = fixture
}

func (contact Contact) GetFixtureB() *Fixture {
	return contact.FixtureB
}

func (contact *Contact) SetFixtureB(fixture *Fixture) {
	contact.FixtureB = fixture
}

func (contact Contact) GetChildIndexA() int {
	return contact.IndexA
}

func (contact *Contact) SetChildIndexA(index int) {
	contact.IndexA = index
}

func (contact Contact) GetChildIndexB() int {
	return contact.IndexB
}

func (contact *Contact) SetChildIndexB(index int) {
	contact.IndexB = index
}

func (contact Contact) GetManifold() *Manifold {
	return contact.Manifold
}

func (contact *Contact) SetManifold(manifold *Manifold) {
	contact.Manifold = manifold
}

func (contact Contact) GetTOICount() int {
	return contact.ToiCount
}

func (contact *Contact) SetTOICount(toiCount int) {
	contact.ToiCount = toiCount
}

func (contact Contact) GetTOI() float64 {
	return contact.Toi
}

func (contact *Contact) SetTOI(toi float64) {
	contact.Toi = toi
}

func (contact Contact) GetFriction() float64 {
	return contact.Friction
}

func (contact *Contact) SetFriction(friction float64) {
	contact.Friction = friction
}

func (contact *Contact) ResetFriction() {
	contact.Friction = MixFriction(contact.FixtureA.Friction, contact.FixtureB.Friction)
}

func (contact Contact) GetRestitution() float64 {
	return contact.Restitution
}

func (contact *Contact) SetRestitution(restitution float64) {
	contact.Restitution = restitution
}

func (contact *Contact) ResetRestitution() {
	contact.Restitution = MixRestitution(contact.FixtureA.Restitution, contact.FixtureB.Restitution)
}

func (contact Contact) GetTangentSpeed() float64 {
	return contact.TangentSpeed
}

func (contact *Contact) SetTangentSpeed(speed float64) {
	contact.TangentSpeed = speed
}

func (contact Contact) GetWorldManifold(worldManifold *WorldManifold) {
	bodyA := contact.FixtureA.GetBody()
	bodyB := contact.FixtureB.GetBody()
	shapeA := contact.FixtureA.GetShape()
	shapeB := contact.FixtureB.GetShape()

	worldManifold.Initialize(contact.Manifold, bodyA.GetTransform(), shapeA.GetRadius(), bodyB.GetTransform(), shapeB.GetRadius())
}

func (contact *Contact) SetEnabled(flag bool) {
	if flag {
		contact.Flags |= contactFlagEnabled
	} else {
		contact.Flags &= ^contactFlagEnabled
	}
}

func (contact Contact) IsEnabled() bool {
	return (contact.Flags & contactFlagEnabled) == contactFlagEnabled
}

func (contact Contact) IsTouching() bool {
	return (contact.Flags & contactFlagTouching) == contactFlagTouching
}

func (contact *Contact) FlagForFiltering() {
	contact.Flags |= contactFlagFilter
}

// contactFactories lists, once per unordered shape-type pair, which
// create/destroy functions build the narrow-phase contact for that
// pair. The registry below is indexed by both orderings so lookup
// never has to branch on which side is which.
type contactFactoryEntry struct {
	typeA, typeB uint8
	create       ContactCreateFcn
	destroy      ContactDestroyFcn
}

var contactFactories = []contactFactoryEntry{
	{ShapeCircle, ShapeCircle, CircleContactCreate, CircleContactDestroy},
	{ShapePolygon, ShapeCircle, PolygonAndCircleContactCreate, PolygonAndCircleContactDestroy},
	{ShapePolygon, ShapePolygon, PolygonContactCreate, PolygonContactDestroy},
	{ShapeEdge, ShapeCircle, EdgeAndCircleContactCreate, EdgeAndCircleContactDestroy},
	{ShapeEdge, ShapePolygon, EdgeAndPolygonContactCreate, EdgeAndPolygonContactDestroy},
	{ShapeChain, ShapeCircle, ChainAndCircleContactCreate, ChainAndCircleContactDestroy},
	{ShapeChain, ShapePolygon, ChainAndPolygonContactCreate, ChainAndPolygonContactDestroy},
}

func ContactInitializeRegisters() {
	contactRegistry = make([][]ContactRegister, ShapeTypeCount)
	for i := range contactRegistry {
		contactRegistry[i] = make([]ContactRegister, ShapeTypeCount)
	}

	for _, entry := range contactFactories {
		registerContactFactory(entry.typeA, entry.typeB, entry.create, entry.destroy)
	}
}

// registerContactFactory fills in both orderings of a shape-type pair
// in the registry, marking whichever ordering matches the factory's
// own argument order as Primary so ContactFactory knows not to swap.
func registerContactFactory(typeA, typeB uint8, create ContactCreateFcn, destroy ContactDestroyFcn) {
	Assert(0 <= typeA && typeA < ShapeTypeCount)
	Assert(0 <= typeB && typeB < ShapeTypeCount)

	contactRegistry[typeA][typeB] = ContactRegister{CreateFcn: create, DestroyFcn: destroy, Primary: true}

	if typeA != typeB {
		contactRegistry[typeB][typeA] = ContactRegister{CreateFcn: create, DestroyFcn: destroy, Primary: false}
	}
}

func ContactFactory(fixtureA *Fixture, indexA int, fixtureB *Fixture, indexB int) ContactInterface { // returned contact should be a pointer

	if contactRegistryReady == false {
		ContactInitializeRegisters()
		contactRegistryReady = true
	}

	type1 := fixtureA.GetType()
	type2 := fixtureB.GetType()

	Assert(0 <= type1 && type1 < ShapeTypeCount)
	Assert(0 <= type2 && type2 < ShapeTypeCount)

	createFcn := contactRegistry[type1][type2].CreateFcn
	if createFcn != nil {
		if contactRegistry[type1][type2].Primary {
			return createFcn(fixtureA, indexA, fixtureB, indexB)
		} else {
			return createFcn(fixtureB, indexB, fixtureA, indexA)
		}
	}

	return nil
}

func ContactDestroy(contact ContactInterface) {
	Assert(contactRegistryReady == true)

	fixtureA := contact.GetFixtureA()
	fixtureB := contact.GetFixtureB()

	if contact.GetManifold().PointCount > 0 && fixtureA.IsSensor() == false && fixtureB.IsSensor() == false {
		fixtureA.GetBody().SetAwake(true)
		fixtureB.GetBody().SetAwake(true)
	}

	typeA := fixtureA.GetType()
	typeB := fixtureB.GetType()

	Assert(0 <= typeA && typeB < ShapeTypeCount)

	destroyFcn := contactRegistry[typeA][typeB].DestroyFcn
	destroyFcn(contact)
}

func MakeContact(fA *Fixture, indexA int, fB *Fixture, indexB int) Contact {

	contact := Contact{}
	contact.Flags = contactFlagEnabled

	contact.FixtureA = fA
	contact.FixtureB = fB

	contact.IndexA = indexA
	contact.IndexB = indexB

	contact.Manifold = NewManifold()
	contact.Manifold.PointCount = 0

	contact.Prev = nil
	contact.Next = nil

	contact.NodeA = NewContactEdge()

	contact.NodeA.Contact = nil
	contact.NodeA.Prev = nil
	contact.NodeA.Next = nil
	contact.NodeA.Other = nil

	contact.NodeB = NewContactEdge()

	contact.NodeB.Contact = nil
	contact.NodeB.Prev = nil
	contact.NodeB.Next = nil
	contact.NodeB.Other = nil

	contact.ToiCount = 0

	contact.Friction = MixFriction(contact.FixtureA.Friction, contact.FixtureB.Friction)
	contact.Restitution = MixRestitution(contact.FixtureA.Restitution, contact.FixtureB.Restitution)

	contact.TangentSpeed = 0.0

	return contact
}

// carryWarmStartImpulses copies the accumulated normal/tangent impulse
// from the previous step's manifold point onto the matching point in
// the new manifold, identified by contact feature id rather than
// index (points can shuffle position between steps). Unmatched points
// start from zero.
func carryWarmStartImpulses(fresh *Manifold, stale Manifold) {
	for i := 0; i < fresh.PointCount; i++ {
		point := &fresh.Points[i]
		point.NormalImpulse = 0.0
		point.TangentImpulse = 0.0

		for j := 0; j < stale.PointCount; j++ {
			if stale.Points[j].Id.Key() == point.Id.Key() {
				point.NormalImpulse = stale.Points[j].NormalImpulse
				point.TangentImpulse = stale.Points[j].TangentImpulse
				break
			}
		}
	}
}

// setTouchingFlag sets or clears contactFlagTouching to match touching.
func setTouchingFlag(contact ContactInterface, touching bool) {
	if touching {
		contact.SetFlags(contact.GetFlags() | contactFlagTouching)
	} else {
		contact.SetFlags(contact.GetFlags() & ^contactFlagTouching)
	}
}

// ContactUpdate re-runs the narrow phase for a contact whose fixtures'
// AABBs still overlap, then reports begin/end/pre-solve events to
// listener as the touching state changes.
func ContactUpdate(contact ContactInterface, listener ContactListenerInterface) {
	oldManifold := *contact.GetManifold()

	contact.SetFlags(contact.GetFlags() | contactFlagEnabled)

	wasTouching := (contact.GetFlags() & contactFlagTouching) == contactFlagTouching

	fixtureA := contact.GetFixtureA()
	fixtureB := contact.GetFixtureB()
	bodyA := fixtureA.GetBody()
	bodyB := fixtureB.GetBody()
	xfA := bodyA.GetTransform()
	xfB := bodyB.GetTransform()

	sensor := fixtureA.IsSensor() || fixtureB.IsSensor()

	var touching bool
	if sensor {
		// Sensors report overlap but never generate a manifold or
		// apply a solver response.
		touching = TestOverlapShapes(fixtureA.GetShape(), contact.GetChildIndexA(), fixtureB.GetShape(), contact.GetChildIndexB(), xfA, xfB)
		contact.GetManifold().PointCount = 0
	} else {
		contact.Evaluate(contact.GetManifold(), xfA, xfB)
		touching = contact.GetManifold().PointCount > 0

		carryWarmStartImpulses(contact.GetManifold(), oldManifold)

		if touching != wasTouching {
			bodyA.SetAwake(true)
			bodyB.SetAwake(true)
		}
	}

	setTouchingFlag(contact, touching)

	if !wasTouching && touching && listener != nil {
		listener.BeginContact(contact)
	}

	if wasTouching && !touching && listener != nil {
		listener.EndContact(contact)
	}

	if !sensor && touching && listener != nil {
		listener.PreSolve(contact, oldManifold)
	}
}
