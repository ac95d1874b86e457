package physics2d

/// The body type.
/// static: zero mass, zero velocity, may be manually moved
/// kinematic: zero mass, non-zero velocity set by user, moved by solver
/// dynamic: positive mass, non-zero velocity determined by forces, moved by solver

const (
	BodyStatic uint8 = iota
	BodyKinematic
	BodyDynamic
)

/// A body definition holds all the data needed to construct a rigid body.
/// You can safely re-use body definitions. Shapes are added to a body after construction.
type BodyDef struct {

	/// The body type: static, kinematic, or dynamic.
	/// Note: if a dynamic body would have zero mass, the mass is set to one.
	Type uint8

	/// The world position of the body. Avoid creating bodies at the origin
	/// since this can lead to many overlapping shapes.
	Position Vec2

	/// The world angle of the body in radians.
	Angle float64

	/// The linear velocity of the body's origin in world co-ordinates.
	LinearVelocity Vec2

	/// The angular velocity of the body.
	AngularVelocity float64

	/// Linear damping is use to reduce the linear velocity. The damping parameter
	/// can be larger than 1.0 but the damping effect becomes sensitive to the
	/// time step when the damping parameter is large.
	/// Units are 1/time
	LinearDamping float64

	/// Angular damping is use to reduce the angular velocity. The damping parameter
	/// can be larger than 1.0 but the damping effect becomes sensitive to the
	/// time step when the damping parameter is large.
	/// Units are 1/time
	AngularDamping float64

	/// Set this flag to false if this body should never fall asleep. Note that
	/// this increases CPU usage.
	AllowSleep bool

	/// Is this body initially awake or sleeping?
	Awake bool

	/// Should this body be prevented from rotating? Useful for characters.
	FixedRotation bool

	/// Is this a fast moving body that should be prevented from tunneling through
	/// other moving bodies? Note that all bodies are prevented from tunneling through
	/// kinematic and static bodies. This setting is only considered on dynamic bodies.
	/// @warning You should use this flag sparingly since it increases processing time.
	Bullet bool

	/// Does this body start out active?
	Active bool

	/// Use this to store application specific body data.
	UserData interface{}

	/// Scale the gravity applied to this body.
	GravityScale float64
}

/// This constructor sets the body definition default values.
func MakeBodyDef() BodyDef {
	return BodyDef{
		UserData:        nil,
		Position:        MakeVec2(0, 0),
		Angle:           0.0,
		LinearVelocity:  MakeVec2(0, 0),
		AngularVelocity: 0.0,
		LinearDamping:   0.0,
		AngularDamping:  0.0,
		AllowSleep:      true,
		Awake:           true,
		FixedRotation:   false,
		Bullet:          false,
		Type:            BodyStatic,
		Active:          true,
		GravityScale:    1.0,
	}
}

func NewBodyDef() *BodyDef {
	res := MakeBodyDef()
	return &res
}

// Per-body bitflags packed into Body.Flags.
const (
	bodyFlagIsland uint32 = 1 << iota
	bodyFlagAwake
	bodyFlagAutoSleep
	bodyFlagBullet
	bodyFlagFixedRotation
	bodyFlagActive
	bodyFlagToi
)

type Body struct {
	Type uint8

	Flags uint32

	IslandIndex int

	Xf    Transform // the body origin transform
	Sweep Sweep     // the swept motion for CCD

	LinearVelocity  Vec2
	AngularVelocity float64

	Force  Vec2
	Torque float64

	World *World
	Prev  *Body
	Next  *Body

	FixtureList  *Fixture // linked list
	FixtureCount int

	JointList   *JointEdge   // linked list
	ContactList *ContactEdge // linked list

	Mass, InvMass float64

	// Rotational inertia about the center of mass.
	I, InvI float64

	LinearDamping  float64
	AngularDamping float64
	GravityScale   float64

	SleepTime float64

	UserData interface{}
}

func (body Body) GetType() uint8 {
	return body.Type
}

func (body Body) GetTransform() Transform {
	return body.Xf
}

func (body Body) GetPosition() Vec2 {
	return body.Xf.P
}

func (body Body) GetAngle() float64 {
	return body.Sweep.A
}

func (body Body) GetWorldCenter() Vec2 {
	return body.Sweep.C
}

func (body Body) GetLocalCenter() Vec2 {
	return body.Sweep.LocalCenter
}

func (body *Body) SetLinearVelocity(v Vec2) {
	if body.Type == BodyStatic {
		return
	}

	if Vec2Dot(v, v) > 0.0 {
		body.SetAwake(true)
	}

	body.LinearVelocity = v
}

func (body Body) GetLinearVelocity() Vec2 {
	return body.LinearVelocity
}

func (body *Body) SetAngularVelocity(w float64) {
	if body.Type == BodyStatic {
		return
	}

	if w*w > 0.0 {
		body.SetAwake(true)
	}

	body.AngularVelocity = w
}

func (body Body) GetAngularVelocity() float64 {
	return body.AngularVelocity
}

func (body Body) GetMass() float64 {
	return body.Mass
}

func (body Body) GetInertia() float64 {
	return body.I + body.Mass*Vec2Dot(body.Sweep.LocalCenter, body.Sweep.LocalCenter)
}

func (body Body) GetMassData(data *MassData) {
	data.Mass = body.Mass
	data.I = body.I + body.Mass*Vec2Dot(body.Sweep.LocalCenter, body.Sweep.LocalCenter)
	data.Center = body.Sweep.LocalCenter
}

func (body Body) GetWorldPoint(localPoint Vec2) Vec2 {
	return TransformVec2Mul(body.Xf, localPoint)
}

func (body Body) GetWorldVector(localVector Vec2) Vec2 {
	return RotVec2Mul(body.Xf.Q, localVector)
}

func (body Body) GetLocalPoint(worldPoint Vec2) Vec2 {
	return TransformVec2MulT(body.Xf, worldPoint)
}

func (body Body) GetLocalVector(worldVector Vec2) Vec2 {
	return RotVec2MulT(body.Xf.Q, worldVector)
}

func (body Body) GetLinearVelocityFromWorldPoint(worldPoint Vec2) Vec2 {
	return Vec2Add(body.LinearVelocity, Vec2CrossScalarVector(body.AngularVelocity, Vec2Sub(worldPoint, body.Sweep.C)))
}

func (body Body) GetLinearVelocityFromLocalPoint(localPoint Vec2) Vec2 {
	return body.GetLinearVelocityFromWorldPoint(body.GetWorldPoint(localPoint))
}

func (body Body) GetLinearDamping() float64 {
	return body.LinearDamping
}

func (body *Body) SetLinearDamping(linearDamping float64) {
	body.LinearDamping = linearDamping
}

func (body Body) GetAngularDamping() float64 {
	return body.AngularDamping
}

func (body *Body) SetAngularDamping(angularDamping float64) {
	body.AngularDamping = angularDamping
}

func (body Body) GetGravityScale() float64 {
	return body.GravityScale
}

func (body *Body) SetGravityScale(scale float64) {
	body.GravityScale = scale
}

func (body *Body) SetBullet(flag bool) {
	if flag {
		body.Flags |= bodyFlagBullet
	} else {
		body.Flags &= ^bodyFlagBullet
	}
}

func (body Body) IsBullet() bool {
	return (body.Flags & bodyFlagBullet) == bodyFlagBullet
}

func (body *Body) SetAwake(flag bool) {
	if flag {
		body.Flags |= bodyFlagAwake
		body.SleepTime = 0.0
	} else {
		body.Flags &= ^bodyFlagAwake
		body.SleepTime = 0.0
		body.LinearVelocity.SetZero()
		body.AngularVelocity = 0.0
		body.Force.SetZero()
		body.Torque = 0.0
	}
}

func (body Body) IsAwake() bool {
	return (body.Flags & bodyFlagAwake) == bodyFlagAwake
}

func (body Body) IsActive() bool {
	return (body.Flags & bodyFlagActive) == bodyFlagActive
}

func (body Body) IsFixedRotation() bool {
	return (body.Flags & bodyFlagFixedRotation) == bodyFlagFixedRotation
}

func (body *Body) SetSleepingAllowed(flag bool) {
	if flag {
		body.Flags |= bodyFlagAutoSleep
	} else {
		body.Flags &= ^bodyFlagAutoSleep
		body.SetAwake(true)
	}
}

func (body Body) IsSleepingAllowed() bool {
	return (body.Flags & bodyFlagAutoSleep) == bodyFlagAutoSleep
}

func (body Body) GetFixtureList() *Fixture {
	return body.FixtureList
}

func (body Body) GetJointList() *JointEdge {
	return body.JointList
}

func (body Body) GetContactList() *ContactEdge {
	return body.ContactList
}

func (body Body) GetNext() *Body {
	return body.Next
}

func (body *Body) SetUserData(data interface{}) {
	body.UserData = data
}

func (body Body) GetUserData() interface{} {
	return body.UserData
}

func (body *Body) ApplyForce(force Vec2, point Vec2, wake bool) {
	if body.Type != BodyDynamic {
		return
	}

	if wake && (body.Flags&bodyFlagAwake) == 0 {
		body.SetAwake(true)
	}

	// Don't accumulate a force if the body is sleeping.
	if (body.Flags & bodyFlagAwake) != 0x0000 {
		body.Force.AddAssign(force)
		body.Torque += Vec2Cross(
			Vec2Sub(point, body.Sweep.C),
			force,
		)
	}
}

func (body *Body) ApplyForceToCenter(force Vec2, wake bool) {
	if body.Type != BodyDynamic {
		return
	}

	if wake && (body.Flags&bodyFlagAwake) == 0 {
		body.SetAwake(true)
	}

	// Don't accumulate a force if the body is sleeping
	if (body.Flags & bodyFlagAwake) != 0x0000 {
		body.Force.AddAssign(force)
	}
}

func (body *Body) ApplyTorque(torque float64, wake bool) {
	if body.Type != BodyDynamic {
		return
	}

	if wake && (body.Flags&bodyFlagAwake) == 0 {
		body.SetAwake(true)
	}

	// Don't accumulate a force if the body is sleeping
	if (body.Flags & bodyFlagAwake) != 0x0000 {
		body.Torque += torque
	}
}

func (body *Body) ApplyLinearImpulse(impulse Vec2, point Vec2, wake bool) {
	if body.Type != BodyDynamic {
		return
	}

	if wake && (body.Flags&bodyFlagAwake) == 0 {
		body.SetAwake(true)
	}

	// Don't accumulate velocity if the body is sleeping
	if (body.Flags & bodyFlagAwake) != 0x0000 {
		body.LinearVelocity.AddAssign(Vec2MulScalar(body.InvMass, impulse))
		body.AngularVelocity += body.InvI * Vec2Cross(
			Vec2Sub(point, body.Sweep.C),
			impulse,
		)
	}
}

func (body *Body) ApplyLinearImpulseToCenter(impulse Vec2, wake bool) {
	if body.Type != BodyDynamic {
		return
	}

	if wake && (body.Flags&bodyFlagAwake) == 0 {
		body.SetAwake(true)
	}

	// Don't accumulate velocity if the body is sleeping
	if (body.Flags & bodyFlagAwake) != 0x0000 {
		body.LinearVelocity.AddAssign(Vec2MulScalar(body.InvMass, impulse))
	}
}

func (body *Body) ApplyAngularImpulse(impulse float64, wake bool) {
	if body.Type != BodyDynamic {
		return
	}

	if wake && (body.Flags&bodyFlagAwake) == 0 {
		body.SetAwake(true)
	}

	// Don't accumulate velocity if the body is sleeping
	if (body.Flags & bodyFlagAwake) != 0x0000 {
		body.AngularVelocity += body.InvI * impulse
	}
}

func (body *Body) SynchronizeTransform() {
	body.Xf.Q.Set(body.Sweep.A)
	body.Xf.P = Vec2Sub(body.Sweep.C, RotVec2Mul(body.Xf.Q, body.Sweep.LocalCenter))
}

func (body *Body) Advance(alpha float64) {
	// Advance to the new safe time. This doesn't sync the broad-phase.
	body.Sweep.Advance(alpha)
	body.Sweep.C = body.Sweep.C0
	body.Sweep.A = body.Sweep.A0
	body.Xf.Q.Set(body.Sweep.A)
	body.Xf.P = Vec2Sub(body.Sweep.C, RotVec2Mul(body.Xf.Q, body.Sweep.LocalCenter))
}

func (body Body) GetWorld() *World {
	return body.World
}

func NewBody(bd *BodyDef, world *World) *Body {
	Assert(bd.Position.IsValid())
	Assert(bd.LinearVelocity.IsValid())
	Assert(IsValid(bd.Angle))
	Assert(IsValid(bd.AngularVelocity))
	Assert(IsValid(bd.AngularDamping) && bd.AngularDamping >= 0.0)
	Assert(IsValid(bd.LinearDamping) && bd.LinearDamping >= 0.0)

	body := &Body{}

	body.Flags = 0

	if bd.Bullet {
		body.Flags |= bodyFlagBullet
	}

	if bd.FixedRotation {
		body.Flags |= bodyFlagFixedRotation
	}

	if bd.AllowSleep {
		body.Flags |= bodyFlagAutoSleep
	}

	if bd.Awake {
		body.Flags |= bodyFlagAwake
	}

	if bd.Active {
		body.Flags |= bodyFlagActive
	}

	body.World = world

	body.Xf.P = bd.Position
	body.Xf.Q.Set(bd.Angle)

	body.Sweep.LocalCenter.SetZero()
	body.Sweep.C0 = body.Xf.P
	body.Sweep.C = body.Xf.P
	body.Sweep.A0 = bd.Angle
	body.Sweep.A = bd.Angle
	body.Sweep.Alpha0 = 0.0

	body.JointList = nil
	body.ContactList = nil
	body.Prev = nil
	body.Next = nil

	body.LinearVelocity = bd.LinearVelocity
	body.AngularVelocity = bd.AngularVelocity

	body.LinearDamping = bd.LinearDamping
	body.AngularDamping = bd.AngularDamping
	body.GravityScale = bd.GravityScale

	body.Force.SetZero()
	body.Torque = 0.0

	body.SleepTime = 0.0

	body.Type = bd.Type

	if body.Type == BodyDynamic {
		body.Mass = 1.0
		body.InvMass = 1.0
	} else {
		body.Mass = 0.0
		body.InvMass = 0.0
	}

	body.I = 0.0
	body.InvI = 0.0

	body.UserData = bd.UserData

	body.FixtureList = nil
	body.FixtureCount = 0

	return body
}

func (body *Body) SetType(bodytype uint8) {

	Assert(body.World.IsLocked() == false)
	if body.World.IsLocked() == true {
		return
	}

	if body.Type == bodytype {
		return
	}

	body.Type = bodytype

	body.ResetMassData()

	if body.Type == BodyStatic {
		body.LinearVelocity.SetZero()
		body.AngularVelocity = 0.0
		body.Sweep.A0 = body.Sweep.A
		body.Sweep.C0 = body.Sweep.C
		body.SynchronizeFixtures()
	}

	body.SetAwake(true)

	body.Force.SetZero()
	body.Torque = 0.0

	// Delete the attached contacts.
	ce := body.ContactList
	for ce != nil {
		ce0 := ce
		ce = ce.Next
		body.World.ContactManager.Destroy(ce0.Contact)
	}

	body.ContactList = nil

	// Touch the proxies so that new contacts will be created (when appropriate)
	broadPhase := body.World.ContactManager.BroadPhase
	for f := body.FixtureList; f != nil; f = f.Next {
		proxyCount := f.ProxyCount
		for i := 0; i < proxyCount; i++ {
			broadPhase.TouchProxy(f.Proxies[i].ProxyId)
		}
	}
}

func (body *Body) CreateFixtureFromDef(def *FixtureDef) *Fixture {

	Assert(body.World.IsLocked() == false)
	if body.World.IsLocked() == true {
		return nil
	}

	fixture := NewFixture()
	fixture.Create(body, def)

	if (body.Flags & bodyFlagActive) != 0x0000 {
		broadPhase := &body.World.ContactManager.BroadPhase
		fixture.CreateProxies(broadPhase, body.Xf)
	}

	fixture.Next = body.FixtureList
	body.FixtureList = fixture
	body.FixtureCount++

	fixture.Body = body

	// Adjust mass properties if needed.
	if fixture.Density > 0.0 {
		body.ResetMassData()
	}

	// Let the world know we have a new fixture. This will cause new contacts
	// to be created at the beginning of the next time step.
	body.World.Flags |= worldFlagNewFixture

	return fixture
}

func (body *Body) CreateFixture(shape ShapeInterface, density float64) *Fixture {

	def := MakeFixtureDef()
	def.Shape = shape
	def.Density = density

	return body.CreateFixtureFromDef(&def)
}

func (body *Body) DestroyFixture(fixture *Fixture) {

	if fixture == nil {
		return
	}

	Assert(body.World.IsLocked() == false)
	if body.World.IsLocked() == true {
		return
	}

	Assert(fixture.Body == body)

	// Remove the fixture from this body's singly linked list.
	Assert(body.FixtureCount > 0)
	node := &body.FixtureList
	found := false
	for *node != nil {
		if *node == fixture {
			*node = fixture.Next
			found = true
			break
		}

		node = &(*node).Next
	}

	// You tried to remove a shape that is not attached to this body.
	Assert(found)

	// Destroy any contacts associated with the fixture.
	edge := body.ContactList
	for edge != nil {
		c := edge.Contact
		edge = edge.Next

		fixtureA := c.GetFixtureA()
		fixtureB := c.GetFixtureB()

		if fixture == fixtureA || fixture == fixtureB {
			// This destroys the contact and removes it from
			// this body's contact list.
			body.World.ContactManager.Destroy(c)
		}
	}

	if (body.Flags & bodyFlagActive) != 0x0000 {
		broadPhase := &body.World.ContactManager.BroadPhase
		fixture.DestroyProxies(broadPhase)
	}

	fixture.Body = nil
	fixture.Next = nil
	fixture.Destroy()

	body.FixtureCount--

	// Reset the mass data.
	body.ResetMassData()
}

func (body *Body) ResetMassData() {

	// Compute mass data from shapes. Each shape has its own density.
	body.Mass = 0.0
	body.InvMass = 0.0
	body.I = 0.0
	body.InvI = 0.0
	body.Sweep.LocalCenter.SetZero()

	// Static and kinematic bodies have zero mass.
	if body.Type == BodyStatic || body.Type == BodyKinematic {
		body.Sweep.C0 = body.Xf.P
		body.Sweep.C = body.Xf.P
		body.Sweep.A0 = body.Sweep.A
		return
	}

	Assert(body.Type == BodyDynamic)

	// Accumulate mass over all fixtures.
	localCenter := MakeVec2(0, 0)
	for f := body.FixtureList; f != nil; f = f.Next {
		if f.Density == 0.0 {
			continue
		}

		massData := NewMassData()
		f.GetMassData(massData)
		body.Mass += massData.Mass
		localCenter.AddAssign(Vec2MulScalar(massData.Mass, massData.Center))
		body.I += massData.I
	}

	// Compute center of mass.
	if body.Mass > 0.0 {
		body.InvMass = 1.0 / body.Mass
		localCenter.MulAssign(body.InvMass)
	} else {
		// Force all dynamic bodies to have a positive mass.
		body.Mass = 1.0
		body.InvMass = 1.0
	}

	if body.I > 0.0 && (body.Flags&bodyFlagFixedRotation) == 0 {
		// Center the inertia about the center of mass.
		body.I -= body.Mass * Vec2Dot(localCenter, localCenter)
		Assert(body.I > 0.0)
		body.InvI = 1.0 / body.I

	} else {
		body.I = 0.0
		body.InvI = 0.0
	}

	// Move center of mass.
	oldCenter := body.Sweep.C
	body.Sweep.LocalCenter = localCenter
	body.Sweep.C0 = TransformVec2Mul(body.Xf, body.Sweep.LocalCenter)
	body.Sweep.C = TransformVec2Mul(body.Xf, body.Sweep.LocalCenter)

	// Update center of mass velocity.
	body.LinearVelocity.AddAssign(Vec2CrossScalarVector(
		body.AngularVelocity,
		Vec2Sub(body.Sweep.C, oldCenter),
	))
}

func (body *Body) SetMassData(massData *MassData) {

	Assert(body.World.IsLocked() == false)
	if body.World.IsLocked() == true {
		return
	}

	if body.Type != BodyDynamic {
		return
	}

	body.InvMass = 0.0
	body.I = 0.0
	body.InvI = 0.0

	body.Mass = massData.Mass
	if body.Mass <= 0.0 {
		body.Mass = 1.0
	}

	body.InvMass = 1.0 / body.Mass

	if massData.I > 0.0 && (body.Flags&bodyFlagFixedRotation) == 0 {
		body.I = massData.I - body.Mass*Vec2Dot(massData.Center, massData.Center)
		Assert(body.I > 0.0)
		body.InvI = 1.0 / body.I
	}

	// Move center of mass.
	oldCenter := body.Sweep.C
	body.Sweep.LocalCenter = massData.Center
	body.Sweep.C0 = TransformVec2Mul(body.Xf, body.Sweep.LocalCenter)
	body.Sweep.C = TransformVec2Mul(body.Xf, body.Sweep.LocalCenter)

	// Update center of mass velocity.
	body.LinearVelocity.AddAssign(
		Vec2CrossScalarVector(
			body.AngularVelocity,
			Vec2Sub(body.Sweep.C, oldCenter),
		),
	)
}

func (body Body) ShouldCollide(other *Body) bool {

	// At least one body should be dynamic.
	if body.Type != BodyDynamic && other.Type != BodyDynamic {
		return false
	}

	// Does a joint prevent collision?
	for jn := body.JointList; jn != nil; jn = jn.Next {
		if jn.Other == other {
			if jn.Joint.IsCollideConnected() == false {
				return false
			}
		}
	}

	return true
}

func (body *Body) SetTransform(position Vec2, angle float64) {
	Assert(body.World.IsLocked() == false)

	if body.World.IsLocked() == true {
		return
	}

	body.Xf.Q.Set(angle)
	body.Xf.P = position

	body.Sweep.C = TransformVec2Mul(body.Xf, body.Sweep.LocalCenter)
	body.Sweep.A = angle

	body.Sweep.C0 = body.Sweep.C
	body.Sweep.A0 = angle

	broadPhase := &body.World.ContactManager.BroadPhase
	for f := body.FixtureList; f != nil; f = f.Next {
		f.Synchronize(broadPhase, body.Xf, body.Xf)
	}
}

func (body *Body) SynchronizeFixtures() {
	xf1 := MakeTransform()
	xf1.Q.Set(body.Sweep.A0)
	xf1.P = Vec2Sub(body.Sweep.C0, RotVec2Mul(xf1.Q, body.Sweep.LocalCenter))

	broadPhase := &body.World.ContactManager.BroadPhase
	for f := body.FixtureList; f != nil; f = f.Next {
		f.Synchronize(broadPhase, xf1, body.Xf)
	}
}

func (body *Body) SetActive(flag bool) {

	Assert(body.World.IsLocked() == false)

	if flag == body.IsActive() {
		return
	}

	if flag {
		body.Flags |= bodyFlagActive

		// Create all proxies.
		broadPhase := &body.World.ContactManager.BroadPhase
		for f := body.FixtureList; f != nil; f = f.Next {
			f.CreateProxies(broadPhase, body.Xf)
		}

		// Contacts are created the next time step.
	} else {
		body.Flags &= ^bodyFlagActive

		// Destroy all proxies.
		broadPhase := &body.World.ContactManager.BroadPhase
		for f := body.FixtureList; f != nil; f = f.Next {
			f.DestroyProxies(broadPhase)
		}

		// Destroy the attached contacts.
		ce := body.ContactList
		for ce != nil {
			ce0 := ce
			ce = ce.Next
			body.World.ContactManager.Destroy(ce0.Contact)
		}

		body.ContactList = nil
	}
}

func (body *Body) SetFixedRotation(flag bool) {
	status := (body.Flags & bodyFlagFixedRotation) == bodyFlagFixedRotation

	if status == flag {
		return
	}

	if flag {
		body.Flags |= bodyFlagFixedRotation
	} else {
		body.Flags &= ^bodyFlagFixedRotation
	}

	body.AngularVelocity = 0.0

	body.ResetMassData()
}

// Dump is intentionally a no-op: scene serialization is out of scope
// for this package (see the world persistence discussion in DESIGN.md).
func (body *Body) Dump() {}
