package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamjmurray/producer-pal/pkg/adapters/memory"
	"github.com/adamjmurray/producer-pal/pkg/live"
)

func TestResolvePathAndIdentity(t *testing.T) {
	s := memory.NewSet()
	s.AddScene("A")
	tr := s.AddTrack("Drums")
	dev := s.AddDevice(tr, "Drum Rack", "DrumGroupDevice")

	c := s.Client()

	obj := c.Object("live_set tracks 0 devices 0")
	require.True(t, obj.Exists())
	assert.Equal(t, dev.ID(), obj.ID())

	name, err := live.GetString(obj, "name")
	require.NoError(t, err)
	assert.Equal(t, "Drum Rack", name)

	byID := c.ObjectByID(dev.ID())
	assert.Equal(t, "live_set tracks 0 devices 0", byID.Path())

	assert.False(t, c.Object("live_set tracks 9").Exists())
}

func TestDuplicateTrackShiftsIndices(t *testing.T) {
	s := memory.NewSet()
	s.AddScene("A")
	s.AddTrack("Drums")
	bass := s.AddTrack("Bass")

	song := s.Client().Object("live_set")
	newID, err := song.Call("duplicate_track", 0)
	require.NoError(t, err)

	require.Len(t, s.Tracks, 3)
	assert.Equal(t, newID, s.Tracks[1].ID())
	assert.Equal(t, "Drums", s.Tracks[1].Name)

	// Bass shifted from index 1 to 2; its id is stable.
	assert.Equal(t, "live_set tracks 2", s.Client().ObjectByID(bass.ID()).Path())

	calls := s.Calls()
	assert.Equal(t, "live_set.duplicate_track(0)", calls[len(calls)-1])
}

func TestDuplicateSceneCopiesRow(t *testing.T) {
	s := memory.NewSet()
	s.AddScene("Verse")
	s.AddScene("Chorus")
	tr := s.AddTrack("Keys")
	s.AddSessionClip(tr, 0, memory.ClipOptions{Name: "Pad", Length: 4, Looping: true})

	_, err := s.Client().Object("live_set").Call("duplicate_scene", 0)
	require.NoError(t, err)

	require.Len(t, s.Scenes, 3)
	assert.Equal(t, "Verse", s.Scenes[1].Name)
	require.Len(t, tr.ClipSlots, 3)
	require.NotNil(t, tr.ClipSlots[1].Clip)
	assert.Equal(t, "Pad", tr.ClipSlots[1].Clip.Name)
	// The copy is a distinct clip.
	assert.NotEqual(t, tr.ClipSlots[0].Clip.ID(), tr.ClipSlots[1].Clip.ID())
}

func TestDeleteTrackInvalidatesHandles(t *testing.T) {
	s := memory.NewSet()
	s.AddScene("A")
	tr := s.AddTrack("Doomed")
	s.AddDevice(tr, "EQ Eight", "Eq8")

	handle := s.Client().ObjectByID(tr.ID())
	require.True(t, handle.Exists())

	_, err := s.Client().Object("live_set").Call("delete_track", 0)
	require.NoError(t, err)

	assert.False(t, handle.Exists())
}

func TestDuplicateClipToArrangement(t *testing.T) {
	s := memory.NewSet()
	s.AddScene("A")
	tr := s.AddTrack("Drums")
	src := s.AddSessionClip(tr, 0, memory.ClipOptions{Name: "Beat", Length: 8, Looping: true})

	trackObj := s.Client().ObjectByID(tr.ID())
	id, err := trackObj.Call("duplicate_clip_to_arrangement", src.ID(), 16.0)
	require.NoError(t, err)

	require.Len(t, tr.ArrangementClips, 1)
	cp := tr.ArrangementClips[0]
	assert.Equal(t, id, cp.ID())
	assert.Equal(t, 16.0, cp.StartTime)
	assert.Equal(t, 8.0, cp.Length())

	lastEvent, err := live.GetFloat(s.Client().Object("live_set"), "last_event_time")
	require.NoError(t, err)
	assert.Equal(t, 24.0, lastEvent)
}

func TestMoveDeviceBetweenTracks(t *testing.T) {
	s := memory.NewSet()
	s.AddScene("A")
	a := s.AddTrack("A")
	b := s.AddTrack("B")
	s.AddDevice(a, "Reverb", "Reverb")
	moved := s.AddDevice(a, "Delay", "Delay")
	s.AddDevice(b, "Compressor", "Compressor2")

	_, err := s.Client().Object("live_set").Call("move_device", moved.ID(), "live_set tracks 1", 0)
	require.NoError(t, err)

	require.Len(t, a.Devices, 1)
	require.Len(t, b.Devices, 2)
	assert.Equal(t, "Delay", b.Devices[0].Name)
	assert.Equal(t, "live_set tracks 1 devices 0", s.Client().ObjectByID(moved.ID()).Path())
}

func TestChainNesting(t *testing.T) {
	s := memory.NewSet()
	s.AddScene("A")
	tr := s.AddTrack("Rack Track")
	rack := s.AddDevice(tr, "Instrument Rack", "InstrumentGroupDevice")
	chain := s.AddChain(rack, "Chain 1")
	nested := s.AddChainDevice(chain, "Operator", "Operator")

	path := s.Client().ObjectByID(nested.ID()).Path()
	assert.Equal(t, "live_set tracks 0 devices 0 chains 0 devices 0", path)

	obj := s.Client().Object(path)
	require.True(t, obj.Exists())
	assert.Equal(t, nested.ID(), obj.ID())
}
