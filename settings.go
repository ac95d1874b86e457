package physics2d

import "math"

// Debug gates the assertions that guard the core's invariants. Release
// builds of a consuming application should leave it false; the step
// pipeline never recovers from a broken invariant, it panics.
var Debug = false

// Assert panics with the calling invariant when Debug is enabled. Every
// core package treats a failed invariant as a programmer error, not a
// recoverable one: see the error handling notes in DESIGN.md.
func Assert(condition bool) {
	if Debug && !condition {
		panic("physics2d: assertion failed")
	}
}

const MaxFloat = math.MaxFloat64
const Epsilon = math.SmallestNonzeroFloat64
const Pi = math.Pi

// Tuning constants, in meters-kilograms-seconds (MKS) units. The tuning
// values below (AabbExtension, AabbMultiplier, the slops, the solver
// limits and the sleep thresholds) are deliberately package-level vars
// rather than consts: callers that need a non-default envelope (faster
// bullets, looser sleep thresholds) may reassign them before building a
// World. MaxManifoldPoints, MaxPolygonVertices and the default solver
// iteration counts stay consts. Each var is read at every use and a
// World keeps no copy, so a reassignment between steps also reaches a
// World that already exists. PolygonRadius is computed from LinearSlop
// once at package initialization, and each shape copies it when made.

// The maximum number of contact points a single manifold can hold. This
// one is fixed: point IDs are packed into a 2-element array in solver
// and manifold code and every clip fed to Sutherland-Hodgman assumes it.
const MaxManifoldPoints = 2

// The maximum number of vertices on a convex polygon.
const MaxPolygonVertices = 8

// AabbExtension fattens the dynamic tree's leaf AABBs so proxies can
// move a little without forcing a tree update. In world units (meters).
var AabbExtension = 0.1

// AabbMultiplier scales the displacement term of a moved proxy's
// predicted fat AABB, so fast movers get an envelope sized to their own
// speed instead of triggering a tree churn every step.
var AabbMultiplier = 4.0

// LinearSlop is the collision and constraint tolerance: penetration up
// to this depth is left uncorrected to avoid jitter from unstable
// contacts sitting exactly on the surface.
var LinearSlop = 0.005

// AngularSlop is LinearSlop's angular counterpart.
var AngularSlop = (2.0 / 180.0 * Pi)

// PolygonRadius is the skin thickness added around polygon and edge
// shapes. Shrinking it starves continuous collision of its buffer;
// growing it can produce visible gaps at vertices.
var PolygonRadius = (2.0 * LinearSlop)

// MaxSubSteps bounds how many TOI events a single contact may take part
// in within one world Step: a contact whose TOI count exceeds it is left
// out of the rest of that Step's continuous collision pass.
var MaxSubSteps = 8

// MaxTOIContacts bounds the size of a TOI mini-island.
var MaxTOIContacts = 32

// VelocityThreshold is the minimum incoming normal velocity a contact
// point needs before restitution is applied; below it the impact is
// treated as inelastic to avoid restitution jitter at rest.
var VelocityThreshold = 1.0

// MaxLinearCorrection caps the pseudo-velocity a single position-solve
// iteration may apply, so a deeply overlapping pair can't be shot apart
// in one step.
var MaxLinearCorrection = 0.2

// MaxAngularCorrection is MaxLinearCorrection's angular counterpart.
var MaxAngularCorrection = (8.0 / 180.0 * Pi)

// MaxTranslation and MaxRotation clamp a body's per-step displacement.
// They exist purely to keep the solver numerically sane when a bad
// impulse would otherwise send a body to infinity; see §7 of SPEC_FULL.md.
var MaxTranslation = 2.0
var MaxRotation = (0.5 * Pi)

func maxTranslationSquared() float64 { return MaxTranslation * MaxTranslation }
func maxRotationSquared() float64    { return MaxRotation * MaxRotation }

// Baumgarte is the velocity-bias fraction used to resolve penetration
// during the ordinary velocity solve; ToiBaumgarte is its (stiffer)
// counterpart used only inside the TOI mini-solve.
var Baumgarte = 0.2
var ToiBaumgarte = 0.75

// TimeToSleep is how long an island's bodies must stay under the sleep
// thresholds before the island is put to sleep.
var TimeToSleep = 0.5

// LinearSleepTolerance and AngularSleepTolerance are the per-body
// velocity thresholds a whole island must be under, continuously for
// TimeToSleep seconds, to qualify for sleep.
var LinearSleepTolerance = 0.01
var AngularSleepTolerance = (2.0 / 180.0 * Pi)

// DefaultVelocityIterations and DefaultPositionIterations are the
// solver iteration counts used by the package's tests and by callers
// that don't have an opinion of their own; World.Step takes its own
// counts explicitly.
const DefaultVelocityIterations = 8
const DefaultPositionIterations = 3
