package physics2d

// jointBlockSize is the size passed to Pool.Track/Untrack for each live
// joint. Track/Untrack do not use it, and it is not checked against the
// size of any concrete joint struct.
const jointBlockSize = 256

// Joint kinds, in creation-dispatch order. JointUnknown starts the
// block at 1 so a zero-value Joint/JointDef is visibly uninitialized
// rather than indistinguishable from a real kind.
const (
	JointUnknown uint8 = iota + 1
	JointRevolute
	JointPrismatic
	JointDistance
	JointPulley
	JointMouse
	JointGear
	JointWheel
	JointWeld
	JointFriction
	JointRope
	JointMotor
)

// Limit states for a joint's lower/upper translation or angle limits.
const (
	LimitInactive uint8 = iota + 1
	LimitAtLower
	LimitAtUpper
	LimitEqual
)

type Jacobian struct {
	Linear   Vec2
	AngularA float64
	AngularB float64
}

/// A joint edge is used to connect bodies and joints together
/// in a joint graph where each body is a node and each joint
/// is an edge. A joint edge belongs to a doubly linked list
/// maintained in each attached body. Each joint has two joint
/// nodes, one for each attached body.
type JointEdge struct {
	Other *Body          ///< provides quick access to the other body attached.
	Joint JointInterface ///< the joint; backed by pointer
	Prev  *JointEdge     ///< the previous joint edge in the body's joint list
	Next  *JointEdge     ///< the next joint edge in the body's joint list
}

/// Joint definitions are used to construct joints.
type JointDef struct {

	/// The joint type is set automatically for concrete joint types.
	Type uint8

	/// Use this to attach application specific data to your joints.
	UserData interface{}

	/// The first attached body.
	BodyA *Body

	/// The second attached body.
	BodyB *Body

	/// Set this flag to true if the attached bodies should collide.
	CollideConnected bool
}

type JointDefInterface interface {
	GetType() uint8
	SetType(t uint8)
	GetUserData() interface{}
	SetUserData(userdata interface{})
	GetBodyA() *Body
	SetBodyA(body *Body)
	GetBodyB() *Body
	SetBodyB(body *Body)
	IsCollideConnected() bool
	SetCollideConnected(flag bool)
}

// Implementing JointDefInterface on Joint (used as a base struct)
func (def JointDef) GetType() uint8 {
	return def.Type
}

func (def *JointDef) SetType(t uint8) {
	def.Type = t
}

func (def JointDef) GetUserData() interface{} {
	return def.UserData
}

func (def *JointDef) SetUserData(userdata interface{}) {
	def.UserData = userdata
}

func (def JointDef) GetBodyA() *Body {
	return def.BodyA
}

func (def *JointDef) SetBodyA(body *Body) {
	def.BodyA = body
}

func (def JointDef) GetBodyB() *Body {
	return def.BodyB
}

func (def *JointDef) SetBodyB(body *Body) {
	def.BodyB = body
}

func (def JointDef) IsCollideConnected() bool {
	return def.CollideConnected
}

func (def *JointDef) SetCollideConnected(flag bool) {
	def.CollideConnected = flag
}

func MakeJointDef() JointDef {
	res := JointDef{}
	res.Type = JointUnknown
	res.UserData = nil
	res.BodyA = nil
	res.BodyB = nil
	res.CollideConnected = false

	return res
}

/// The base joint class. Joints are used to constraint two bodies together in
/// various fashions. Some joints also feature limits and motors.
type Joint struct {
	Type             uint8
	Prev             JointInterface // has to be backed by pointer
	Next             JointInterface // has to be backed by pointer
	EdgeA            *JointEdge
	EdgeB            *JointEdge
	BodyA            *Body
	BodyB            *Body
	Index            int
	IslandFlag       bool
	CollideConnected bool
	UserData         interface{}
}

/// Dump this joint to the log file.
func (j Joint) Dump() {}

/// Shift the origin for any points stored in world coordinates.
func (j Joint) ShiftOrigin(newOrigin Vec2) {}

func (j Joint) GetType() uint8 {
	return j.Type
}

func (j *Joint) SetType(t uint8) {
	j.Type = t
}

func (j Joint) GetBodyA() *Body {
	return j.BodyA
}

func (j *Joint) SetBodyA(body *Body) {
	j.BodyA = body
}

func (j Joint) GetBodyB() *Body {
	return j.BodyB
}

func (j *Joint) SetBodyB(body *Body) {
	j.BodyB = body
}

func (j Joint) GetNext() JointInterface { // returns pointer
	return j.Next
}

func (j *Joint) SetNext(next JointInterface) { // has to be backed by pointer
	j.Next = next
}

func (j Joint) GetPrev() JointInterface { // returns pointer
	return j.Prev
}

func (j *Joint) SetPrev(prev JointInterface) { // prev has to be backed by pointer
	j.Prev = prev
}

func (j Joint) GetUserData() interface{} {
	return j.UserData
}

func (j *Joint) SetUserData(data interface{}) {
	j.UserData = data
}

func (j Joint) IsCollideConnected() bool {
	return j.CollideConnected
}

func (j *Joint) SetCollideConnected(flag bool) {
	j.CollideConnected = flag
}

func (j Joint) GetEdgeA() *JointEdge {
	return j.EdgeA
}

func (j *Joint) SetEdgeA(edge *JointEdge) {
	j.EdgeA = edge
}

func (j Joint) GetEdgeB() *JointEdge {
	return j.EdgeB
}

func (j *Joint) SetEdgeB(edge *JointEdge) {
	j.EdgeB = edge
}

// jointFactories maps each joint kind to the constructor that builds it
// from its concrete def type. Keeping this as a table rather than a
// type-switch means adding a joint kind only touches this line and the
// kind's own file, not a growing if/else chain here.
var jointFactories = map[uint8]func(JointDefInterface) (JointInterface, bool){
	JointDistance: func(def JointDefInterface) (JointInterface, bool) {
		typeddef, ok := def.(*DistanceJointDef)
		if !ok {
			return nil, false
		}
		return MakeDistanceJoint(typeddef), true
	},
	JointMouse: func(def JointDefInterface) (JointInterface, bool) {
		typeddef, ok := def.(*MouseJointDef)
		if !ok {
			return nil, false
		}
		return MakeMouseJoint(typeddef), true
	},
	JointPrismatic: func(def JointDefInterface) (JointInterface, bool) {
		typeddef, ok := def.(*PrismaticJointDef)
		if !ok {
			return nil, false
		}
		return MakePrismaticJoint(typeddef), true
	},
	JointRevolute: func(def JointDefInterface) (JointInterface, bool) {
		typeddef, ok := def.(*RevoluteJointDef)
		if !ok {
			return nil, false
		}
		return MakeRevoluteJoint(typeddef), true
	},
	JointPulley: func(def JointDefInterface) (JointInterface, bool) {
		typeddef, ok := def.(*PulleyJointDef)
		if !ok {
			return nil, false
		}
		return MakePulleyJoint(typeddef), true
	},
	JointGear: func(def JointDefInterface) (JointInterface, bool) {
		typeddef, ok := def.(*GearJointDef)
		if !ok {
			return nil, false
		}
		return MakeGearJoint(typeddef), true
	},
	JointWheel: func(def JointDefInterface) (JointInterface, bool) {
		typeddef, ok := def.(*WheelJointDef)
		if !ok {
			return nil, false
		}
		return MakeWheelJoint(typeddef), true
	},
	JointWeld: func(def JointDefInterface) (JointInterface, bool) {
		typeddef, ok := def.(*WeldJointDef)
		if !ok {
			return nil, false
		}
		return MakeWeldJoint(typeddef), true
	},
	JointFriction: func(def JointDefInterface) (JointInterface, bool) {
		typeddef, ok := def.(*FrictionJointDef)
		if !ok {
			return nil, false
		}
		return MakeFrictionJoint(typeddef), true
	},
	JointRope: func(def JointDefInterface) (JointInterface, bool) {
		typeddef, ok := def.(*RopeJointDef)
		if !ok {
			return nil, false
		}
		return MakeRopeJoint(typeddef), true
	},
	JointMotor: func(def JointDefInterface) (JointInterface, bool) {
		typeddef, ok := def.(*MotorJointDef)
		if !ok {
			return nil, false
		}
		return MakeMotorJoint(typeddef), true
	},
}

func JointCreate(def JointDefInterface) JointInterface { // def should be backed by pointer; a pointer is returned
	factory, known := jointFactories[def.GetType()]
	if !known {
		Assert(false)
		return nil
	}

	joint, ok := factory(def)
	Assert(ok)
	return joint
}

func JointDestroy(joint JointInterface) { // has to be backed by pointer
	joint.Destroy()
}

func MakeJoint(def JointDefInterface) *Joint { // def has to be backed by pointer
	Assert(def.GetBodyA() != def.GetBodyB())

	res := Joint{}

	res.Type = def.GetType()
	res.Prev = nil
	res.Next = nil
	res.BodyA = def.GetBodyA()
	res.BodyB = def.GetBodyB()
	res.Index = 0
	res.CollideConnected = def.IsCollideConnected()
	res.IslandFlag = false
	res.UserData = def.GetUserData()

	res.EdgeA = &JointEdge{}
	res.EdgeB = &JointEdge{}

	return &res
}

func (j Joint) IsActive() bool {
	return j.BodyA.IsActive() && j.BodyB.IsActive()
}

func (j *Joint) Destroy() {

}

func (j Joint) GetIndex() int {
	return j.Index
}

func (j *Joint) SetIndex(index int) {
	j.Index = index
}

func (j *Joint) InitVelocityConstraints(data SolverData) {}

func (j *Joint) SolveVelocityConstraints(data SolverData) {}

func (j *Joint) SolvePositionConstraints(data SolverData) bool {
	return false
}

func (j Joint) GetIslandFlag() bool {
	return j.IslandFlag
}

func (j *Joint) SetIslandFlag(flag bool) {
	j.IslandFlag = flag
}

type JointInterface interface {
	/// Dump this joint to the log file.
	Dump()

	/// Shift the origin for any points stored in world coordinates.
	ShiftOrigin(newOrigin Vec2)

	GetType() uint8
	SetType(t uint8)

	GetBodyA() *Body
	SetBodyA(body *Body)

	GetBodyB() *Body
	SetBodyB(body *Body)

	GetIndex() int
	SetIndex(index int)

	GetNext() JointInterface     // backed by pointer
	SetNext(next JointInterface) // backed by pointer

	GetPrev() JointInterface     // backed by pointer
	SetPrev(prev JointInterface) // backed by pointer

	GetEdgeA() *JointEdge
	SetEdgeA(edge *JointEdge)

	GetEdgeB() *JointEdge
	SetEdgeB(edge *JointEdge)

	GetUserData() interface{}
	SetUserData(data interface{})

	IsCollideConnected() bool
	SetCollideConnected(flag bool)

	IsActive() bool

	Destroy()

	InitVelocityConstraints(data SolverData)

	SolveVelocityConstraints(data SolverData)

	SolvePositionConstraints(data SolverData) bool

	GetIslandFlag() bool
	SetIslandFlag(flag bool)
}
