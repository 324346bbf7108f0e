package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMapSingleRoad(t *testing.T) {
	reg, err := ParseMap("A north=B")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, reg.Cities())
	assert.Equal(t, map[Direction]string{North: "B"}, reg.Routes("A"))
	assert.Equal(t, map[Direction]string{South: "A"}, reg.Routes("B"))
}

func TestParseMapExampleLine(t *testing.T) {
	reg, err := ParseMap("Foo north=Bar west=Baz south=Qu-ux")
	require.NoError(t, err)

	assert.Equal(t, map[Direction]string{North: "Bar", West: "Baz", South: "Qu-ux"}, reg.Routes("Foo"))
	assert.Equal(t, map[Direction]string{South: "Foo"}, reg.Routes("Bar"))
	assert.Equal(t, map[Direction]string{East: "Foo"}, reg.Routes("Baz"))
	assert.Equal(t, map[Direction]string{North: "Foo"}, reg.Routes("Qu-ux"))
}

func TestParseMapCityWithoutRoads(t *testing.T) {
	reg, err := ParseMap("Lonely\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"Lonely"}, reg.Cities())
	assert.Empty(t, reg.Routes("Lonely"))
}

func TestParseMapMergesRepeatedCity(t *testing.T) {
	reg, err := ParseMap("Foo north=Bar\nBaz south=Qux\nFoo west=Baz\nBar south=Foo\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"Foo", "Bar", "Baz", "Qux"}, reg.Cities())
	assert.Equal(t, map[Direction]string{North: "Bar", West: "Baz"}, reg.Routes("Foo"))
	assert.Equal(t, map[Direction]string{South: "Qux", East: "Foo"}, reg.Routes("Baz"))
}

func TestParseMapSkipsMalformedTokens(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	reg, err := ParseMap("Foo north south=Bar east=A=B west= west=Baz")
	require.NoError(t, err)

	assert.Equal(t, map[Direction]string{South: "Bar", West: "Baz"}, reg.Routes("Foo"))
	warnings := make([]string, 0)
	for _, e := range hook.AllEntries() {
		if e.Level == log.WarnLevel {
			warnings = append(warnings, e.Message)
		}
	}
	assert.Equal(t, []string{"Invalid route: north", "Invalid route: east=A=B", "Invalid route: west="}, warnings)
}

func TestParseMapInvalidDirection(t *testing.T) {
	reg, err := ParseMap("Foo north=Bar\nBar up=Baz\n")
	assert.Nil(t, reg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDirection), "%v", err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, 2, loadErr.Line)
	assert.Equal(t, "up=Baz", loadErr.Token)
}

func TestParseMapRouteConflict(t *testing.T) {
	_, err := ParseMap("Foo north=Bar\nFoo north=Baz\n")
	assert.True(t, errors.Is(err, ErrRouteAlreadyExists), "%v", err)

	_, err = ParseMap("Foo north=Bar\nBar south=Baz\n")
	assert.True(t, errors.Is(err, ErrRouteAlreadyExists), "%v", err)
}

func TestParseMapSkipsBlankAndCommentLines(t *testing.T) {
	reg, err := ParseMap("# invasion map\n\n   \nFoo   north=Bar\r\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo", "Bar"}, reg.Cities())
}

func TestLoadMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.txt")
	require.NoError(t, os.WriteFile(path, []byte("Foo north=Bar\nBar east=Baz\n"), 0644))

	reg, err := LoadMap(path)
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Len())

	_, err = LoadMap(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "%v", err)
}
