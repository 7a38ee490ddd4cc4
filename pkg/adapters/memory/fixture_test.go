package memory_test

import (
	"testing"

	"github.com/adamjmurray/producer-pal/internal/testutils"
	"github.com/adamjmurray/producer-pal/pkg/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoFixture = `
signature:
  numerator: 6
  denominator: 8
scenes:
  - name: Verse
  - name: Chorus
tracks:
  - name: Drums
    devices:
      - name: Drum Rack
        class: DrumGroupDevice
    clips:
      - scene: 0
        name: Beat
        length: 3
        looping: true
  - name: Keys
    arrangement_clips:
      - name: Intro Pad
        start: 0
        length: 12
locators:
  - name: Drop
    time: 24
`

func TestLoadSet(t *testing.T) {
	path := testutils.WriteFixture(t, demoFixture)

	s, err := memory.LoadSet(path)
	require.NoError(t, err)

	assert.Equal(t, 6, s.SigNumerator)
	assert.Equal(t, 8, s.SigDenominator)
	require.Len(t, s.Tracks, 2)
	require.Len(t, s.Scenes, 2)

	drums := s.Tracks[0]
	require.Len(t, drums.Devices, 1)
	require.NotNil(t, drums.ClipSlots[0].Clip)
	assert.Equal(t, 3.0, drums.ClipSlots[0].Clip.Length())

	keys := s.Tracks[1]
	require.Len(t, keys.ArrangementClips, 1)
	assert.Equal(t, 12.0, keys.ArrangementClips[0].EndTime())

	require.Len(t, s.CuePoints, 1)
	assert.Equal(t, "Drop", s.CuePoints[0].Name)

	// Builders must not leak into the recorded call log.
	assert.Empty(t, s.Calls())
}

func TestLoadSet_BadClipScene(t *testing.T) {
	path := testutils.WriteFixture(t, `
scenes:
  - name: Only
tracks:
  - name: Drums
    clips:
      - scene: 5
        name: Lost
`)

	_, err := memory.LoadSet(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}
