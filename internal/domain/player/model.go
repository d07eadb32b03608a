package player

import (
	"fmt"
	"strings"
)

// Position is the playing position used to pick a goal-scorer bonus tier.
type Position string

const (
	PositionUnknown    Position = ""
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// ParsePosition accepts the short codes and the common long names.
// An empty value parses to PositionUnknown without error.
func ParsePosition(raw string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "":
		return PositionUnknown, nil
	case "GK", "GOALKEEPER", "KEEPER":
		return PositionGoalkeeper, nil
	case "DEF", "DEFENDER", "D":
		return PositionDefender, nil
	case "MID", "MIDFIELDER", "M":
		return PositionMidfielder, nil
	case "FWD", "FORWARD", "ATTACKER", "STRIKER", "F":
		return PositionForward, nil
	default:
		return PositionUnknown, fmt.Errorf("invalid player position: %s", raw)
	}
}

func (p Position) Valid() bool {
	_, ok := AllPositions[p]
	return ok
}
