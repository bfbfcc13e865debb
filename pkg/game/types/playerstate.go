package types

import (
	"fmt"

	"github.com/cbodonnell/wayfarer/pkg/game/constants"
)

type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// ParseDirection returns the Direction named by s.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return d, nil
	default:
		return "", fmt.Errorf("unknown direction: %q", s)
	}
}

// Delta returns the unit step for the direction in screen coordinates (y grows downwards).
func (d Direction) Delta() (dx, dy float64) {
	switch d {
	case DirectionUp:
		return 0, -1
	case DirectionDown:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	case DirectionRight:
		return 1, 0
	default:
		return 0, 0
	}
}

type Player struct {
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Speed      float64   `json:"speed"`
	Direction  Direction `json:"direction"`
	CurrentMap string    `json:"currentMap"`
}

// NewPlayer returns a player at the starting position of the starting map
func NewPlayer() Player {
	return Player{
		X:          constants.PlayerStartingX,
		Y:          constants.PlayerStartingY,
		Speed:      constants.PlayerSpeed,
		Direction:  DirectionDown,
		CurrentMap: constants.PlayerStartingMap,
	}
}
