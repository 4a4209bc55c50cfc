package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJets(t *testing.T) {
	jets, err := ParseJets("<>x<")
	require.NoError(t, err)

	assert.Equal(t, 4, jets.Len())
	assert.Equal(t, "<>><", jets.String())
}

func TestJetsWrapAround(t *testing.T) {
	jets, err := ParseJets("<<>")
	require.NoError(t, err)

	var got []int
	for range 7 {
		got = append(got, jets.Next())
	}
	assert.Equal(t, []int{Left, Left, Right, Left, Left, Right, Left}, got)
	assert.Equal(t, 1, jets.Cursor())
}

func TestParseJetsEmpty(t *testing.T) {
	_, err := ParseJets("")
	assert.ErrorIs(t, err, ErrEmptyPattern)
}

func TestParseJetsCountsRunes(t *testing.T) {
	jets, err := ParseJets("<é")
	require.NoError(t, err)
	assert.Equal(t, 2, jets.Len())
	assert.Equal(t, "<>", jets.String())
}
