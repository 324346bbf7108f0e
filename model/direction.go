package model

import (
	"fmt"
	"strings"
)

// Direction of a road leaving a city. Values go clockwise so the opposite
// direction is always two steps away.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions in render order.
var Directions = [4]Direction{North, East, South, West}

var directionNames = [4]string{"north", "east", "south", "west"}

func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) Valid() bool {
	return d >= North && d <= West
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("n/a:%d", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts the four direction names in any letter case.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}
