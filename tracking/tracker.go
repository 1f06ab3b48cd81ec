package tracking

import (
	"math"
	"time"

	"github.com/openhiker/trailnav/geo"
)

// Config carries the guidance thresholds in meters.
type Config struct {
	OffRouteEnterMeters float64
	OffRouteClearMeters float64
	ApproachTurnMeters  float64
	AtTurnMeters        float64
	ArriveMeters        float64
}

// DefaultConfig returns the stock guidance thresholds.
func DefaultConfig() Config {
	return Config{
		OffRouteEnterMeters: 50,
		OffRouteClearMeters: 30,
		ApproachTurnMeters:  100,
		AtTurnMeters:        30,
		ArriveMeters:        30,
	}
}

// Tracker derives progress along a fixed route, an off-route flag and
// turn-instruction events from sequential GPS fixes.
//
// A Tracker is a single-writer state machine. Exactly one Start, Update or
// Stop call may be in flight at a time; fixes must arrive in order. Under
// that discipline no internal locking is needed. Update performs no I/O
// and never blocks.
type Tracker struct {
	cfg Config

	route   Route
	cum     []float64
	total   float64
	started bool

	instructionIdx   int
	offRoute         offRouteState
	approachingFired bool
	atTurnFired      bool
	arrivedFired     bool
}

// NewTracker returns a stopped tracker with the given thresholds.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{cfg: cfg}
}

// Start installs a route and resets all guidance state. The cumulative
// distance array has one entry per route vertex, starts at 0 and never
// decreases. When the instruction list has more than one entry the index
// starts at 1, skipping the synthetic departure instruction.
func (t *Tracker) Start(route Route) {
	t.Stop()
	t.route = route
	t.cum = geo.CumulativeDistances(route.Coordinates)
	if n := len(t.cum); n > 0 {
		t.total = t.cum[n-1]
	}
	t.offRoute = offRouteState{
		enterMeters: t.cfg.OffRouteEnterMeters,
		clearMeters: t.cfg.OffRouteClearMeters,
	}
	if len(route.Instructions) > 1 {
		t.instructionIdx = 1
	}
	t.started = true
}

// Stop clears all state back to the un-started values. It is idempotent
// and safe to call before Start.
func (t *Tracker) Stop() {
	*t = Tracker{cfg: t.cfg}
}

// Update processes one GPS fix and returns the derived position plus any
// discrete events it produced. A stopped tracker, or one holding a route
// with fewer than two points, reports no progress instead of panicking.
func (t *Tracker) Update(fix geo.Coordinate, at time.Time) (Position, []Event) {
	if !t.started || len(t.route.Coordinates) < 2 || t.total <= 0 {
		return Position{At: at}, nil
	}

	distAlong, lateral := t.locate(fix)

	var events []Event
	entered, cleared := t.offRoute.update(lateral)
	if entered {
		events = append(events, Event{Kind: EventOffRouteEntered})
	}
	if cleared {
		events = append(events, Event{Kind: EventOffRouteCleared})
	}

	progress := distAlong / t.total
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	remaining := t.total - distAlong
	if remaining < 0 {
		remaining = 0
	}

	distToTurn := 0.0
	if len(t.route.Instructions) > 0 {
		distToTurn = t.sequence(distAlong, &events)
	}

	return Position{
		At:                 at,
		DistanceAlongRoute: distAlong,
		LateralOffset:      lateral,
		Progress:           progress,
		RemainingDistance:  remaining,
		DistanceToTurn:     distToTurn,
		InstructionIndex:   t.instructionIdx,
		OffRoute:           t.offRoute.off,
	}, events
}

// locate finds the route point closest to the fix. Every consecutive
// vertex pair is tried; the fix is projected onto the segment with a
// clamped planar scalar projection and the great-circle distance to the
// projected point decides the winner. Distance along the route is the
// cumulative distance at the winning segment's start plus the projected
// fraction of its length.
func (t *Tracker) locate(fix geo.Coordinate) (distAlong, lateral float64) {
	coords := t.route.Coordinates
	best := math.MaxFloat64
	bestSeg := 0
	bestT := 0.0
	for i := 0; i < len(coords)-1; i++ {
		frac, proj := geo.ProjectOntoSegment(fix, coords[i], coords[i+1])
		d := geo.HaversineMeters(fix, proj)
		if d < best {
			best = d
			bestSeg = i
			bestT = frac
		}
	}
	segLen := t.cum[bestSeg+1] - t.cum[bestSeg]
	return t.cum[bestSeg] + bestT*segLen, best
}

// sequence fires approach/at-turn events for the active instruction and
// advances the index once the fix passes each turn point. The at-turn
// event is evaluated before advancing so the final haptic for an
// instruction fires on the same fix that completes it. Arrival fires
// exactly once, when the last instruction is active and the fix is within
// the arrive threshold of the route end. Returns the distance to the
// active instruction's turn point.
func (t *Tracker) sequence(distAlong float64, events *[]Event) float64 {
	instrs := t.route.Instructions
	for {
		cur := instrs[t.instructionIdx]
		distToTurn := cur.TriggerDistance - distAlong

		if !t.approachingFired && distToTurn <= t.cfg.ApproachTurnMeters && distToTurn > t.cfg.AtTurnMeters {
			t.approachingFired = true
			*events = append(*events, Event{Kind: EventApproachingTurn, Direction: cur.Direction})
		}
		if !t.atTurnFired && distToTurn <= t.cfg.AtTurnMeters {
			t.atTurnFired = true
			*events = append(*events, Event{Kind: EventAtTurn, Direction: cur.Direction})
		}

		if distToTurn <= t.cfg.AtTurnMeters && t.instructionIdx < len(instrs)-1 {
			t.instructionIdx++
			t.approachingFired = false
			t.atTurnFired = false
			continue
		}

		if t.instructionIdx == len(instrs)-1 && !t.arrivedFired && distAlong >= t.total-t.cfg.ArriveMeters {
			t.arrivedFired = true
			*events = append(*events, Event{Kind: EventArrived, Direction: DirectionArrive})
		}
		return distToTurn
	}
}
