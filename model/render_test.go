package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	reg, err := ParseMap("Foo west=Baz north=Bar south=Qu-ux\nLonely\n")
	require.NoError(t, err)

	want := "Foo north=Bar south=Qu-ux west=Baz\n" +
		"Baz east=Foo\n" +
		"Bar south=Foo\n" +
		"Qu-ux north=Foo\n" +
		"Lonely\n"
	assert.Equal(t, want, reg.Render())
	assert.Equal(t, want, reg.Render(), "render must be stable for the same registry")
}

func TestRenderRoundTrip(t *testing.T) {
	in := "A north=B east=C\nB east=D\nC north=D south=E\nE west=F\nG\n"
	reg, err := ParseMap(in)
	require.NoError(t, err)
	reg.Destroy("C")

	again, err := ParseMap(reg.Render())
	require.NoError(t, err)

	assert.ElementsMatch(t, reg.Cities(), again.Cities())
	for _, city := range reg.Cities() {
		assert.Equal(t, reg.Routes(city), again.Routes(city), city)
	}
	assert.Equal(t, reg.Render(), again.Render())
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", NewRegistry().Render())
}
