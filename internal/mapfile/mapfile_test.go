package mapfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaelsagi2/tanks-game3/internal/core"
)

func TestParseWellFormedMap(t *testing.T) {
	input := "demo arena\n" +
		"MaxSteps=100\n" +
		"NumShells=5\n" +
		"Rows=3\n" +
		"Cols=5\n" +
		"1   #\n" +
		"  @  \n" +
		"#   2\n"

	m, warnings, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, 100, m.MaxSteps)
	assert.Equal(t, 5, m.NumShells)
	assert.Equal(t, 3, m.Rows)
	assert.Equal(t, 5, m.Cols)

	require.Len(t, m.Tanks(), 2)
	assert.Equal(t, TankSpawn{PlayerID: 0, Pos: core.Point{X: 0, Y: 0}}, m.Tanks()[0])
	assert.Equal(t, TankSpawn{PlayerID: 1, Pos: core.Point{X: 2, Y: 4}}, m.Tanks()[1])
	assert.Equal(t, []core.Point{{X: 0, Y: 4}, {X: 2, Y: 0}}, m.Walls())
	assert.Equal(t, []core.Point{{X: 1, Y: 2}}, m.Mines())

	assert.Equal(t, byte('1'), m.At(0, 0))
	assert.Equal(t, byte(' '), m.At(0, 1))
	assert.Equal(t, byte(' '), m.At(9, 9), "out of bounds reads as space")
}

func TestParseMissingHeaderIsFatal(t *testing.T) {
	input := "demo\nMaxSteps=100\nRows=3\nCols=5\n"
	_, _, err := Parse(strings.NewReader(input))
	require.Error(t, err)
}

func TestParseNonPositiveHeaderIsFatal(t *testing.T) {
	input := "demo\nMaxSteps=0\nNumShells=5\nRows=3\nCols=5\n"
	_, _, err := Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNonPositiveHeader)
}

func TestParseGridDefectsBecomeWarningsNotErrors(t *testing.T) {
	input := "demo\n" +
		"MaxSteps=10\n" +
		"NumShells=2\n" +
		"Rows=2\n" +
		"Cols=4\n" +
		"1?\n" + // too short, and an illegal character
		"####extra\n" // too long
	m, warnings, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	assert.Equal(t, 2, m.Rows)
	assert.Equal(t, 4, m.Cols)
}

func TestParseMissingTrailingRowsArePaddedWithSpace(t *testing.T) {
	input := "demo\nMaxSteps=10\nNumShells=2\nRows=3\nCols=3\n1  \n"
	m, warnings, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	assert.Equal(t, byte(' '), m.At(1, 0))
	assert.Equal(t, byte(' '), m.At(2, 2))
}
