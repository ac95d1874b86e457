package physics2d

import (
	"log/slog"
	"math"
)

/// The world class manages all physics entities, dynamic simulation,
/// and asynchronous queries. The world also contains efficient memory
/// management facilities.

// world state flags, packed into World.Flags.
const (
	worldFlagNewFixture  = 1 << iota // a fixture was added since the last step; forces a broad-phase sync
	worldFlagLocked                  // Step is in progress; mutators must refuse to run
	worldFlagClearForces              // applied forces/torques are zeroed at the end of the next Step
)

// World owns every body, joint, fixture, and contact in a simulation
// and advances them one fixed step at a time.
type World struct {
	Flags int

	ContactManager ContactManager

	BodyList  *Body          // linked list
	JointList JointInterface // has to be backed by pointer

	BodyCount  int
	JointCount int

	Gravity    Vec2
	AllowSleep bool

	DestructionListener DestructionListenerInterface

	// This is used to compute the time step ratio to
	// support a variable time step.
	Inv_dt0 float64

	// These are for debugging the solver.
	WarmStarting      bool
	ContinuousPhysics bool
	SubStepping       bool

	StepComplete bool

	Profile Profile

	// Pool counts every live contact and joint; Scratch records the size
	// of each island's position/velocity buffers. Neither hands out the
	// memory those objects use. See alloc.go.
	Pool    *PoolAllocator
	Scratch *ScratchStack
}

func (world World) GetBodyList() *Body {
	return world.BodyList
}

func (world World) GetJointList() JointInterface { // returns a pointer
	return world.JointList
}

func (world World) GetContactList() ContactInterface { // returns a pointer
	return world.ContactManager.ContactList
}

func (world World) GetBodyCount() int {
	return world.BodyCount
}

func (world World) GetJointCount() int {
	return world.JointCount
}

func (world World) GetContactCount() int {
	return world.ContactManager.ContactCount
}

func (world *World) SetGravity(gravity Vec2) {
	world.Gravity = gravity
}

func (world World) GetGravity() Vec2 {
	return world.Gravity
}

func (world World) IsLocked() bool {
	return (world.Flags & worldFlagLocked) == worldFlagLocked
}

func (world *World) SetAutoClearForces(flag bool) {
	if flag {
		world.Flags |= worldFlagClearForces
	} else {
		world.Flags &= ^worldFlagClearForces
	}
}

/// Get the flag that controls automatic clearing of forces after each time step.
func (world World) GetAutoClearForces() bool {
	return (world.Flags & worldFlagClearForces) == worldFlagClearForces
}

func (world World) GetContactManager() ContactManager {
	return world.ContactManager
}

func (world World) GetProfile() Profile {
	return world.Profile
}

func MakeWorld(gravity Vec2) World {

	world := World{}

	world.DestructionListener = nil

	world.BodyList = nil
	world.JointList = nil

	world.BodyCount = 0
	world.JointCount = 0

	world.WarmStarting = true
	world.ContinuousPhysics = true
	world.SubStepping = false

	world.StepComplete = true

	world.AllowSleep = true
	world.Gravity = gravity

	world.Flags = worldFlagClearForces

	world.Inv_dt0 = 0.0

	world.Pool = NewPoolAllocator()
	world.Scratch = NewScratchStack()

	world.ContactManager = MakeContactManager()
	world.ContactManager.Pool = world.Pool

	return world
}

func (world *World) Destroy() {

	b := world.BodyList
	for b != nil {
		bNext := b.Next

		f := b.FixtureList
		for f != nil {
			fNext := f.Next
			f.ProxyCount = 0
			f.Destroy()
			f = fNext
		}

		b = bNext
	}

	if Debug && world.Scratch != nil {
		slog.Debug("physics2d: world destroyed", "scratchPeakBytes", world.Scratch.MaxAllocation())
	}

	if world.Pool != nil {
		world.Pool.Clear()
	}
}

func (world *World) SetDestructionListener(listener DestructionListenerInterface) {
	world.DestructionListener = listener
}

func (world *World) SetContactFilter(filter ContactFilterInterface) {
	world.ContactManager.ContactFilter = filter
}

func (world *World) SetContactListener(listener ContactListenerInterface) {
	world.ContactManager.ContactListener = listener
}

func (world *World) CreateBody(def *BodyDef) *Body {
	Assert(world.IsLocked() == false)

	if world.IsLocked() {
		return nil
	}

	b := NewBody(def, world)

	// Add to world doubly linked list.
	b.Prev = nil
	b.Next = world.BodyList
	if world.BodyList != nil {
		world.BodyList.Prev = b
	}
	world.BodyList = b
	world.BodyCount++

	return b
}

func (world *World) DestroyBody(b *Body) {
	Assert(world.BodyCount > 0)
	Assert(world.IsLocked() == false)

	if world.IsLocked() {
		return
	}

	// Delete the attached joints.
	je := b.JointList
	for je != nil {
		je0 := je
		je = je.Next

		if world.DestructionListener != nil {
			world.DestructionListener.SayGoodbyeToJoint(je0.Joint)
		}

		world.DestroyJoint(je0.Joint)

		b.JointList = je
	}
	b.JointList = nil

	// Delete the attached contacts.
	ce := b.ContactList
	for ce != nil {
		ce0 := ce
		ce = ce.Next
		world.ContactManager.Destroy(ce0.Contact)
	}
	b.ContactList = nil

	// Delete the attached fixtures. This destroys broad-phase proxies.
	f := b.FixtureList
	for f != nil {
		f0 := f
		f = f.Next

		if world.DestructionListener != nil {
			world.DestructionListener.SayGoodbyeToFixture(f0)
		}

		f0.DestroyProxies(&world.ContactManager.BroadPhase)
		f0.Destroy()

		b.FixtureList = f
		b.FixtureCount -= 1
	}

	b.FixtureList = nil
	b.FixtureCount = 0

	// Remove world body list.
	if b.Prev != nil {
		b.Prev.Next = b.Next
	}

	if b.Next != nil {
		b.Next.Prev = b.Prev
	}

	if b == world.BodyList {
		world.BodyList = b.Next
	}

	world.BodyCount--
}

func (world *World) CreateJoint(def *JointDef) JointInterface {
	Assert(world.IsLocked() == false)
	if world.IsLocked() {
		return nil
	}

	j := JointCreate(def)
	if world.Pool != nil {
		world.Pool.Track(jointBlockSize)
	}

	// Connect to the world list.
	j.SetPrev(nil)
	j.SetNext(world.JointList)
	if world.JointList != nil {
		world.JointList.SetPrev(j)
	}
	world.JointList = j
	world.JointCount++

	// Connect to the bodies' doubly linked lists.
	linkJointEdge(j.GetEdgeA(), j, j.GetBodyB(), j.GetBodyA())
	linkJointEdge(j.GetEdgeB(), j, j.GetBodyA(), j.GetBodyB())

	bodyA := def.BodyA
	bodyB := def.BodyB

	if def.CollideConnected == false {
		flagSharedContactsForFiltering(bodyA, bodyB)
	}

	// Note: creating a joint doesn't wake the bodies.

	return j
}

// linkJointEdge wires edge into owner's joint list as its new head,
// pointing it at the joint j and the body on the far end, other.
func linkJointEdge(edge *JointEdge, j JointInterface, other *Body, owner *Body) {
	edge.Joint = j
	edge.Other = other
	edge.Prev = nil
	edge.Next = owner.JointList
	if owner.JointList != nil {
		owner.JointList.Prev = edge
	}
	owner.JointList = edge
}

// unlinkJointEdge removes edge from owner's joint list.
func unlinkJointEdge(edge *JointEdge, owner *Body) {
	if edge.Prev != nil {
		edge.Prev.Next = edge.Next
	}
	if edge.Next != nil {
		edge.Next.Prev = edge.Prev
	}
	if edge == owner.JointList {
		owner.JointList = edge.Next
	}
	edge.Prev = nil
	edge.Next = nil
}

// flagSharedContactsForFiltering marks every contact between bodyA and
// bodyB for filtering at the next step, used when a joint that
// disables collision between them is created or destroyed.
func flagSharedContactsForFiltering(bodyA, bodyB *Body) {
	edge := bodyB.GetContactList()
	for edge != nil {
		if edge.Other == bodyA {
			edge.Contact.FlagForFiltering()
		}
		edge = edge.Next
	}
}

func (world *World) DestroyJoint(j JointInterface) { // j backed by pointer
	Assert(world.IsLocked() == false)
	if world.IsLocked() {
		return
	}

	collideConnected := j.IsCollideConnected()

	// Remove from the doubly linked list.
	if j.GetPrev() != nil {
		j.GetPrev().SetNext(j.GetNext())
	}

	if j.GetNext() != nil {
		j.GetNext().SetPrev(j.GetPrev())
	}

	if j == world.JointList {
		world.JointList = j.GetNext()
	}

	// Disconnect from island graph.
	bodyA := j.GetBodyA()
	bodyB := j.GetBodyB()

	// Wake up connected bodies.
	bodyA.SetAwake(true)
	bodyB.SetAwake(true)

	unlinkJointEdge(j.GetEdgeA(), bodyA)
	unlinkJointEdge(j.GetEdgeB(), bodyB)

	JointDestroy(j)
	if world.Pool != nil {
		world.Pool.Untrack(jointBlockSize)
	}

	Assert(world.JointCount > 0)
	world.JointCount--

	if collideConnected == false {
		flagSharedContactsForFiltering(bodyA, bodyB)
	}
}

func (world *World) SetAllowSleeping(flag bool) {
	if flag == world.AllowSleep {
		return
	}

	world.AllowSleep = flag
	if world.AllowSleep == false {
		for b := world.BodyList; b != nil; b = b.Next {
			b.SetAwake(true)
		}
	}
}

// Find islands, integrate and solve constraints, solve position constraints
func (world *World) Solve(step TimeStep) {
	world.Profile.SolveInit = 0.0
	world.Profile.SolveVelocity = 0.0
	world.Profile.SolvePosition = 0.0

	// Size the island for the worst case.
	island := MakeIsland(
		world.BodyCount,
		world.ContactManager.ContactCount,
		world.JointCount,
		world.ContactManager.ContactListener,
		world.Scratch,
	)
	defer island.Destroy()

	// Clear all the island flags.
	for b := world.BodyList; b != nil; b = b.Next {
		b.Flags &= ^bodyFlagIsland
	}
	for c := world.ContactManager.ContactList; c != nil; c = c.GetNext() {
		c.SetFlags(c.GetFlags() & ^bodyFlagIsland)
	}

	for j := world.JointList; j != nil; j = j.GetNext() {
		j.SetIslandFlag(false)
	}

	// Build and simulate all awake islands.
	stackSize := world.BodyCount
	stack := make([]*Body, stackSize)

	for seed := world.BodyList; seed != nil; seed = seed.Next {
		if (seed.Flags & bodyFlagIsland) != 0x0000 {
			continue
		}

		if seed.IsAwake() == false || seed.IsActive() == false {
			continue
		}

		// The seed can be dynamic or kinematic.
		if seed.GetType() == BodyStatic {
			continue
		}

		// Reset island and stack.
		island.Clear()
		stackCount := 0
		stack[stackCount] = seed
		stackCount++
		seed.Flags |= bodyFlagIsland

		// Perform a depth first search (DFS) on the constraint graph.
		for stackCount > 0 {
			// Grab the next body off the stack and add it to the island.
			stackCount--
			b := stack[stackCount]
			Assert(b.IsActive() == true)
			island.AddBody(b)

			// Make sure the body is awake (without resetting sleep timer).
			b.Flags |= bodyFlagAwake

			// To keep islands as small as possible, we don't
			// propagate islands across static bodies.
			if b.GetType() == BodyStatic {
				continue
			}

			// Search all contacts connected to this body.
			for ce := b.ContactList; ce != nil; ce = ce.Next {
				contact := ce.Contact

				// Has this contact already been added to an island?
				if (contact.GetFlags() & bodyFlagIsland) != 0x0000 {
					continue
				}

				// Is this contact solid and touching?
				if contact.IsEnabled() == false || contact.IsTouching() == false {
					continue
				}

				// Skip sensors.
				if contact.GetFixtureA().IsSensor() || contact.GetFixtureB().IsSensor() {
					continue
				}

				island.AddContact(contact)
				contact.SetFlags(contact.GetFlags() | bodyFlagIsland)

				other := ce.Other

				// Was the other body already added to this island?
				if (other.Flags & bodyFlagIsland) != 0x0000 {
					continue
				}

				Assert(stackCount < stackSize)
				stack[stackCount] = other
				stackCount++
				other.Flags |= bodyFlagIsland
			}

			// Search all joints connect to this body.
			for je := b.JointList; je != nil; je = je.Next {

				if je.Joint.GetIslandFlag() == true {
					continue
				}

				other := je.Other

				// Don't simulate joints connected to inactive bodies.
				if other.IsActive() == false {
					continue
				}

				island.Add(je.Joint)
				je.Joint.SetIslandFlag(true)

				if other.Flags&bodyFlagIsland != 0x0000 {
					continue
				}

				Assert(stackCount < stackSize)
				stack[stackCount] = other
				stackCount++
				other.Flags |= bodyFlagIsland
			}
		}

		profile := MakeProfile()
		island.Solve(&profile, step, world.Gravity, world.AllowSleep)
		world.Profile.SolveInit += profile.SolveInit
		world.Profile.SolveVelocity += profile.SolveVelocity
		world.Profile.SolvePosition += profile.SolvePosition

		// Post solve cleanup.
		for i := 0; i < island.BodyCount; i++ {
			// Allow static bodies to participate in other islands.
			b := island.Bodies[i]
			if b.GetType() == BodyStatic {
				b.Flags &= ^bodyFlagIsland
			}
		}
	}

	stack = nil

	{
		timer := MakeTimer()

		// Synchronize fixtures, check for out of range bodies.
		for b := world.BodyList; b != nil; b = b.GetNext() {
			// If a body was not in an island then it did not move.
			if (b.Flags & bodyFlagIsland) == 0 {
				continue
			}

			if b.GetType() == BodyStatic {
				continue
			}

			// Update fixtures (for broad-phase).
			b.SynchronizeFixtures()
		}

		// Look for new contacts.
		world.ContactManager.FindNewContacts()
		world.Profile.Broadphase = timer.GetMilliseconds()
	}
}

// findEarliestTOIContact scans the contact list for the contact with
// the smallest time of impact still to resolve this step, skipping
// any contact contactTOIAlpha decides isn't a TOI candidate.
func findEarliestTOIContact(list ContactInterface) (ContactInterface, float64) {
	var minContact ContactInterface = nil
	minAlpha := 1.0

	for c := list; c != nil; c = c.GetNext() {
		alpha, ok := contactTOIAlpha(c)
		if !ok {
			continue
		}
		if alpha < minAlpha {
			minContact = c
			minAlpha = alpha
		}
	}

	return minContact, minAlpha
}

// contactTOIAlpha returns the fraction of the step at which c first
// touches, or ok=false if c should be excluded from TOI consideration
// entirely (disabled, already substepped past the limit, a sensor, or
// with neither side able to tunnel). A cached alpha from an earlier
// pass through this loop is reused without resolving the sweep again.
func contactTOIAlpha(c ContactInterface) (alpha float64, ok bool) {
	if c.IsEnabled() == false {
		return 0, false
	}

	if c.GetTOICount() > MaxSubSteps {
		return 0, false
	}

	if (c.GetFlags() & contactFlagToi) != 0x0000 {
		return c.GetTOI(), true
	}

	fA := c.GetFixtureA()
	fB := c.GetFixtureB()
	if fA.IsSensor() || fB.IsSensor() {
		return 0, false
	}

	bA := fA.GetBody()
	bB := fB.GetBody()
	typeA := bA.Type
	typeB := bB.Type
	Assert(typeA == BodyDynamic || typeB == BodyDynamic)

	activeA := bA.IsAwake() && typeA != BodyStatic
	activeB := bB.IsAwake() && typeB != BodyStatic
	if activeA == false && activeB == false {
		return 0, false
	}

	collideA := bA.IsBullet() || typeA != BodyDynamic
	collideB := bB.IsBullet() || typeB != BodyDynamic
	if collideA == false && collideB == false {
		return 0, false
	}

	// Put the sweeps onto the same starting time before resolving.
	alpha0 := bA.Sweep.Alpha0
	if bA.Sweep.Alpha0 < bB.Sweep.Alpha0 {
		alpha0 = bB.Sweep.Alpha0
		bA.Sweep.Advance(alpha0)
	} else if bB.Sweep.Alpha0 < bA.Sweep.Alpha0 {
		alpha0 = bA.Sweep.Alpha0
		bB.Sweep.Advance(alpha0)
	}
	Assert(alpha0 < 1.0)

	input := MakeTOIInput()
	input.ProxyA.Set(fA.GetShape(), c.GetChildIndexA())
	input.ProxyB.Set(fB.GetShape(), c.GetChildIndexB())
	input.SweepA = bA.Sweep
	input.SweepB = bB.Sweep
	input.TMax = 1.0

	output := MakeTOIOutput()
	TimeOfImpact(&output, &input)

	alpha = 1.0
	if output.State == TOITouching {
		alpha = math.Min(alpha0+(1.0-alpha0)*output.T, 1.0)
	}

	c.SetTOI(alpha)
	c.SetFlags(c.GetFlags() | contactFlagToi)
	return alpha, true
}

// extendTOIIsland walks body's contact edges, advancing and
// re-evaluating each neighbor up to minAlpha and folding it into
// island when it turns out to still be touching, so the TOI solve
// below accounts for everything the advancing bodies now rest
// against. Advancing a neighbor that turns out not to be touching is
// rolled back.
func (world *World) extendTOIIsland(island *Island, body *Body, minAlpha float64) {
	for ce := body.ContactList; ce != nil; ce = ce.Next {
		if island.BodyCount == island.BodyCapacity || island.ContactCount == island.ContactCapacity {
			break
		}

		contact := ce.Contact
		if (contact.GetFlags() & contactFlagIsland) != 0x0000 {
			continue
		}

		// Only add static, kinematic, or bullet bodies.
		other := ce.Other
		if other.Type == BodyDynamic && body.IsBullet() == false && other.IsBullet() == false {
			continue
		}

		if contact.GetFixtureA().IsSensor() || contact.GetFixtureB().IsSensor() {
			continue
		}

		backup := other.Sweep
		if (other.Flags & bodyFlagIsland) == 0 {
			other.Advance(minAlpha)
		}

		ContactUpdate(contact, world.ContactManager.ContactListener)

		if contact.IsEnabled() == false || contact.IsTouching() == false {
			other.Sweep = backup
			other.SynchronizeTransform()
			continue
		}

		contact.SetFlags(contact.GetFlags() | contactFlagIsland)
		island.AddContact(contact)

		if (other.Flags & bodyFlagIsland) != 0x0000 {
			continue
		}

		other.Flags |= bodyFlagIsland
		if other.Type != BodyStatic {
			other.SetAwake(true)
		}
		island.AddBody(other)
	}
}

func (world *World) SolveTOI(step TimeStep) {

	island := MakeIsland(2*MaxTOIContacts, MaxTOIContacts, 0, world.ContactManager.ContactListener, world.Scratch)
	defer island.Destroy()

	if world.StepComplete {
		for b := world.BodyList; b != nil; b = b.Next {
			b.Flags &= ^bodyFlagIsland
			b.Sweep.Alpha0 = 0.0
		}

		for c := world.ContactManager.ContactList; c != nil; c = c.GetNext() {
			// Invalidate TOI
			c.SetFlags(c.GetFlags() & ^(contactFlagToi | contactFlagIsland))
			c.SetTOICount(0)
			c.SetTOI(1.0)
		}
	}

	// Find TOI events and solve them.
	for {
		minContact, minAlpha := findEarliestTOIContact(world.ContactManager.ContactList)

		if minContact == nil || 1.0-10.0*Epsilon < minAlpha {
			// No more TOI events. Done!
			world.StepComplete = true
			break
		}

		// Advance the bodies to the TOI.
		fA := minContact.GetFixtureA()
		fB := minContact.GetFixtureB()
		bA := fA.GetBody()
		bB := fB.GetBody()

		backup1 := bA.Sweep
		backup2 := bB.Sweep

		bA.Advance(minAlpha)
		bB.Advance(minAlpha)

		// The TOI contact likely has some new contact points.
		ContactUpdate(minContact, world.ContactManager.ContactListener)
		minContact.SetFlags(minContact.GetFlags() & ^contactFlagToi)
		minContact.SetTOICount(minContact.GetTOICount() + 1)

		// Is the contact solid?
		if minContact.IsEnabled() == false || minContact.IsTouching() == false {
			// Restore the sweeps.
			minContact.SetEnabled(false)
			bA.Sweep = backup1
			bB.Sweep = backup2
			bA.SynchronizeTransform()
			bB.SynchronizeTransform()
			continue
		}

		bA.SetAwake(true)
		bB.SetAwake(true)

		// Build the island
		island.Clear()
		island.AddBody(bA)
		island.AddBody(bB)
		island.AddContact(minContact)

		bA.Flags |= bodyFlagIsland
		bB.Flags |= bodyFlagIsland
		minContact.SetFlags(minContact.GetFlags() | contactFlagIsland)

		// Pull in neighboring contacts so the solve below sees every
		// body the TOI bodies could be resting against.
		for _, body := range [2]*Body{bA, bB} {
			if body.Type == BodyDynamic {
				world.extendTOIIsland(&island, body, minAlpha)
			}
		}

		subStep := MakeTimeStep()
		subStep.Dt = (1.0 - minAlpha) * step.Dt
		subStep.Inv_dt = 1.0 / subStep.Dt
		subStep.DtRatio = 1.0
		subStep.PositionIterations = 20
		subStep.VelocityIterations = step.VelocityIterations
		subStep.WarmStarting = false
		island.SolveTOI(subStep, bA.IslandIndex, bB.IslandIndex)

		// Reset island flags and synchronize broad-phase proxies.
		for i := 0; i < island.BodyCount; i++ {
			body := island.Bodies[i]
			body.Flags &= ^bodyFlagIsland

			if body.Type != BodyDynamic {
				continue
			}

			body.SynchronizeFixtures()

			// Invalidate all contact TOIs on this displaced body.
			for ce := body.ContactList; ce != nil; ce = ce.Next {
				ce.Contact.SetFlags(ce.Contact.GetFlags() & ^(contactFlagToi | contactFlagIsland))
			}
		}

		// Commit fixture proxy movements to the broad-phase so that new contacts are created.
		// Also, some contacts can be destroyed.
		world.ContactManager.FindNewContacts()

		if world.SubStepping {
			world.StepComplete = false
			break
		}
	}
}

// Step advances the simulation by dt seconds using the discrete
// contact/island/solver pipeline followed by continuous collision.
// A negative dt is a programmer error; dt == 0 is a legal "process
// events without integrating" step.
func (world *World) Step(dt float64, velocityIterations int, positionIterations int) {
	Assert(dt >= 0.0)
	stepTimer := MakeTimer()

	// If new fixtures were added, we need to find the new contacts.
	if (world.Flags & worldFlagNewFixture) != 0x0000 {
		world.ContactManager.FindNewContacts()
		world.Flags &= ^worldFlagNewFixture
	}

	world.Flags |= worldFlagLocked

	step := MakeTimeStep()
	step.Dt = dt
	step.VelocityIterations = velocityIterations
	step.PositionIterations = positionIterations
	if dt > 0.0 {
		step.Inv_dt = 1.0 / dt
	} else {
		step.Inv_dt = 0.0
	}

	step.DtRatio = world.Inv_dt0 * dt

	step.WarmStarting = world.WarmStarting

	// Update contacts. This is where some contacts are destroyed.
	{
		timer := MakeTimer()
		world.ContactManager.Collide()
		world.Profile.Collide = timer.GetMilliseconds()
	}

	// Integrate velocities, solve velocity constraints, and integrate positions.
	if world.StepComplete && step.Dt > 0.0 {
		timer := MakeTimer()
		world.Solve(step)
		world.Profile.Solve = timer.GetMilliseconds()
	}

	// Handle TOI events.
	if world.ContinuousPhysics && step.Dt > 0.0 {
		timer := MakeTimer()
		world.SolveTOI(step)
		world.Profile.SolveTOI = timer.GetMilliseconds()
	}

	if step.Dt > 0.0 {
		world.Inv_dt0 = step.Inv_dt
	}

	if (world.Flags & worldFlagClearForces) != 0x0000 {
		world.ClearForces()
	}

	world.Flags &= ^worldFlagLocked

	world.Profile.Step = stepTimer.GetMilliseconds()
}

func (world *World) ClearForces() {
	for body := world.BodyList; body != nil; body = body.GetNext() {
		body.Force.SetZero()
		body.Torque = 0.0
	}
}

type WorldQueryWrapper struct {
	BroadPhase *BroadPhase
	Callback   BroadPhaseQueryCallback
}

func MakeWorldQueryWrapper() WorldQueryWrapper {
	return WorldQueryWrapper{}
}

func (query *WorldQueryWrapper) QueryCallback(proxyId int) bool {
	proxy := query.BroadPhase.GetUserData(proxyId).(*FixtureProxy)
	return query.Callback(proxy.Fixture)
}

func (world *World) QueryAABB(callback BroadPhaseQueryCallback, aabb AABB) {
	wrapper := MakeWorldQueryWrapper()
	wrapper.BroadPhase = &world.ContactManager.BroadPhase
	wrapper.Callback = callback
	world.ContactManager.BroadPhase.Query(wrapper.QueryCallback, aabb)
}

func (world *World) RayCast(callback RaycastCallback, point1 Vec2, point2 Vec2) {

	// TreeRayCastCallback
	wrapper := func(input RayCastInput, nodeId int) float64 {

		userData := world.ContactManager.BroadPhase.GetUserData(nodeId)
		proxy := userData.(*FixtureProxy)
		fixture := proxy.Fixture
		index := proxy.ChildIndex
		output := MakeRayCastOutput()
		hit := fixture.RayCast(&output, input, index)

		if hit {
			fraction := output.Fraction
			point := Vec2Add(Vec2MulScalar((1.0-fraction), input.P1), Vec2MulScalar(fraction, input.P2))
			return callback(fixture, point, output.Normal, fraction)
		}

		return input.MaxFraction
	}

	input := MakeRayCastInput()
	input.MaxFraction = 1.0
	input.P1 = point1
	input.P2 = point2
	world.ContactManager.BroadPhase.RayCast(wrapper, input)
}

func (world World) GetProxyCount() int {
	return world.ContactManager.BroadPhase.GetProxyCount()
}

func (world World) GetTreeHeight() int {
	return world.ContactManager.BroadPhase.GetTreeHeight()
}

func (world World) GetTreeBalance() int {
	return world.ContactManager.BroadPhase.GetTreeBalance()
}

func (world World) GetTreeQuality() float64 {
	return world.ContactManager.BroadPhase.GetTreeQuality()
}

func (world *World) ShiftOrigin(newOrigin Vec2) {

	Assert((world.Flags & worldFlagLocked) == 0)
	if (world.Flags & worldFlagLocked) == worldFlagLocked {
		return
	}

	for b := world.BodyList; b != nil; b = b.Next {
		b.Xf.P.SubAssign(newOrigin)
		b.Sweep.C0.SubAssign(newOrigin)
		b.Sweep.C.SubAssign(newOrigin)
	}

	for j := world.JointList; j != nil; j = j.GetNext() {
		j.ShiftOrigin(newOrigin)
	}

	world.ContactManager.BroadPhase.ShiftOrigin(newOrigin)
}

// Dump is intentionally a no-op: scene serialization is out of scope
// for this package (see the world persistence discussion in DESIGN.md).
// It still assigns IslandIndex/joint index across the world's bodies
// and joints, since those indices are otherwise only ever assigned by
// Island assembly during a Step.
func (world *World) Dump() {
	if (world.Flags & worldFlagLocked) == worldFlagLocked {
		return
	}

	i := 0
	for b := world.BodyList; b != nil; b = b.Next {
		b.IslandIndex = i
		i++
	}

	i = 0
	for j := world.JointList; j != nil; j = j.GetNext() {
		j.SetIndex(i)
		i++
	}
}
