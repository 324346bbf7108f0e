package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOppositeIsInvolution(t *testing.T) {
	for _, d := range Directions {
		assert.Equal(t, d, d.Opposite().Opposite(), d.String())
		assert.NotEqual(t, d, d.Opposite())
	}
	assert.Equal(t, South, North.Opposite())
	assert.Equal(t, West, East.Opposite())
}

func TestParseDirection(t *testing.T) {
	cases := map[string]Direction{
		"north": North,
		"NORTH": North,
		"South": South,
		"eAsT":  East,
		"west":  West,
	}
	for in, want := range cases {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseDirectionRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "up", "n", " north", "northeast"} {
		_, err := ParseDirection(in)
		assert.True(t, errors.Is(err, ErrInvalidDirection), "%q: %v", in, err)
	}
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "east", East.String())
	assert.Equal(t, "n/a:7", Direction(7).String())
}
