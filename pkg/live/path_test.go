package live_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamjmurray/producer-pal/pkg/live"
)

func TestParsePath(t *testing.T) {
	p, err := live.ParsePath("live_set tracks 2 devices 0")
	require.NoError(t, err)
	assert.Equal(t, "live_set tracks 2 devices 0", p.String())

	_, err = live.ParsePath("   ")
	assert.Error(t, err)
}

func TestPath_TrackIndex(t *testing.T) {
	p := live.MustParsePath("live_set tracks 3 devices 1 chains 0 devices 2")

	idx, ok := p.TrackIndex()
	require.True(t, ok)
	assert.Equal(t, 3, idx)

	moved, err := p.WithTrackIndex(7)
	require.NoError(t, err)
	assert.Equal(t, "live_set tracks 7 devices 1 chains 0 devices 2", moved.String())
	// Original left untouched.
	assert.Equal(t, "live_set tracks 3 devices 1 chains 0 devices 2", p.String())
}

func TestPath_ShiftTrack(t *testing.T) {
	// A temporary track inserted at index 2 pushes indices >= 2 up by one.
	before := live.MustParsePath("live_set tracks 1 devices 0")
	assert.Equal(t, "live_set tracks 1 devices 0", before.ShiftTrack(2, 1).String())

	at := live.MustParsePath("live_set tracks 2 devices 0")
	assert.Equal(t, "live_set tracks 3 devices 0", at.ShiftTrack(2, 1).String())

	after := live.MustParsePath("live_set tracks 5 devices 3")
	assert.Equal(t, "live_set tracks 6 devices 3", after.ShiftTrack(2, 1).String())
}

func TestPath_OnReturnOrMaster(t *testing.T) {
	assert.True(t, live.MustParsePath("live_set return_tracks 0 devices 1").OnReturnOrMaster())
	assert.True(t, live.MustParsePath("live_set master_track devices 0").OnReturnOrMaster())
	assert.False(t, live.MustParsePath("live_set tracks 0 devices 1").OnReturnOrMaster())
}

func TestPath_DeviceSuffix(t *testing.T) {
	p := live.MustParsePath("live_set tracks 4 devices 1 chains 0 devices 2")

	suffix, err := p.DeviceSuffix()
	require.NoError(t, err)
	assert.Equal(t, []string{"devices", "1", "chains", "0", "devices", "2"}, suffix)

	track, err := p.TrackPath()
	require.NoError(t, err)
	assert.Equal(t, "live_set tracks 4", track.String())

	_, err = live.MustParsePath("live_set tracks 4").DeviceSuffix()
	assert.Error(t, err)
}

func TestPath_ParentAndLastIndex(t *testing.T) {
	p := live.MustParsePath("live_set tracks 0 devices 3")

	last, err := p.LastIndex()
	require.NoError(t, err)
	assert.Equal(t, 3, last)

	parent, err := p.Parent()
	require.NoError(t, err)
	assert.Equal(t, "live_set tracks 0", parent.String())

	next, err := p.WithLastIndex(4)
	require.NoError(t, err)
	assert.Equal(t, "live_set tracks 0 devices 4", next.String())

	_, err = live.MustParsePath("live_set master_track").Parent()
	assert.Error(t, err)
}
