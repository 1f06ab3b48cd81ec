package tracking

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/openhiker/trailnav/geo"
)

// Direction classifies a turn instruction.
type Direction int

const (
	DirectionDepart Direction = iota
	DirectionStraight
	DirectionLeft
	DirectionRight
	DirectionSharpLeft
	DirectionSharpRight
	DirectionUTurn
	DirectionArrive
)

var directionNames = map[Direction]string{
	DirectionDepart:     "depart",
	DirectionStraight:   "straight",
	DirectionLeft:       "left",
	DirectionRight:      "right",
	DirectionSharpLeft:  "sharp-left",
	DirectionSharpRight: "sharp-right",
	DirectionUTurn:      "u-turn",
	DirectionArrive:     "arrive",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return "straight"
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return d, nil
		}
	}
	return DirectionStraight, fmt.Errorf("tracking: unknown direction %q", s)
}

func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Instruction is one entry of the precomputed turn-by-turn list produced
// by the route builder. Instructions are read-only input to the tracker;
// TriggerDistance is monotonically non-decreasing across the list.
type Instruction struct {
	// TriggerDistance is the cumulative distance along the route, in
	// meters, at which the instruction becomes current.
	TriggerDistance      float64   `json:"triggerDistance"`
	Direction            Direction `json:"direction"`
	Text                 string    `json:"text"`
	DistanceFromPrevious float64   `json:"distanceFromPrevious"`
}

// Route is the tracker's input: an ordered coordinate polyline plus its
// instruction list.
type Route struct {
	Coordinates  []geo.Coordinate `json:"coordinates"`
	Instructions []Instruction    `json:"instructions"`
}

// Position is the derived guidance state after one fix.
type Position struct {
	At                 time.Time `json:"at"`
	DistanceAlongRoute float64   `json:"distanceAlongRoute"`
	LateralOffset      float64   `json:"lateralOffset"`
	Progress           float64   `json:"progress"`
	RemainingDistance  float64   `json:"remainingDistance"`
	DistanceToTurn     float64   `json:"distanceToTurn"`
	InstructionIndex   int       `json:"instructionIndex"`
	OffRoute           bool      `json:"offRoute"`
}

// EventKind names a discrete guidance event.
type EventKind int

const (
	EventApproachingTurn EventKind = iota
	EventAtTurn
	EventOffRouteEntered
	EventOffRouteCleared
	EventArrived
)

func (k EventKind) String() string {
	switch k {
	case EventApproachingTurn:
		return "approaching-turn"
	case EventAtTurn:
		return "at-turn"
	case EventOffRouteEntered:
		return "off-route-entered"
	case EventOffRouteCleared:
		return "off-route-cleared"
	case EventArrived:
		return "arrived"
	}
	return "unknown"
}

// Event is a one-shot edge event emitted by Update. Direction is set for
// turn events.
type Event struct {
	Kind      EventKind
	Direction Direction
}
