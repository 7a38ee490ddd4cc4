package memory

import (
	"fmt"
	"sort"

	"github.com/adamjmurray/producer-pal/pkg/domain"
)

// Set is an in-memory session: the root of the object tree.
type Set struct {
	SigNumerator   int
	SigDenominator int

	Tracks       []*Track
	ReturnTracks []*Track
	Master       *Track
	Scenes       []*Scene
	CuePoints    []*CuePoint

	// RoutingTargetOverride, when set, replaces the computed routing
	// target list on every track. Tests use it to simulate hosts that
	// offer no matching destination.
	RoutingTargetOverride []string

	nextID  int
	objects map[string]any
	calls   []string
}

// Track models a regular, return or master track.
type Track struct {
	id   string
	set  *Set
	Name string

	IsReturn bool
	IsMaster bool

	Arm             bool
	MonitoringState int // 0=in, 1=auto, 2=off

	OutputRoutingType string

	Devices          []*Device
	ClipSlots        []*ClipSlot
	ArrangementClips []*Clip
}

// Scene is one row of the session grid. Its clips live on the tracks'
// clip slots, as in the host.
type Scene struct {
	id   string
	Name string
}

// ClipSlot is one cell of the session grid.
type ClipSlot struct {
	id   string
	Clip *Clip
}

// Device is an instrument or effect. Rack devices may carry chains.
type Device struct {
	id        string
	Name      string
	ClassName string
	Chains    []*Chain
}

// Chain is a nested device list inside a rack device.
type Chain struct {
	id      string
	Name    string
	Devices []*Device
}

// Clip is a session or arrangement clip.
type Clip struct {
	id             string
	Name           string
	Color          int
	Looping        bool
	LoopStart      float64
	LoopEnd        float64
	StartMarker    float64
	EndMarker      float64
	SigNumerator   int
	SigDenominator int
	IsMIDI         bool

	// Arrangement placement; zero for session clips.
	InArrangement bool
	StartTime     float64
}

// CuePoint is a named locator on the arrangement timeline.
type CuePoint struct {
	id   string
	Name string
	Time float64
}

// NewSet creates an empty 4/4 session with a master track.
func NewSet() *Set {
	s := &Set{
		SigNumerator:   4,
		SigDenominator: 4,
		objects:        make(map[string]any),
	}
	s.register(s)
	s.Master = &Track{set: s, Name: "Master", IsMaster: true}
	s.register(s.Master)
	return s
}

func (s *Set) register(obj any) string {
	s.nextID++
	id := fmt.Sprintf("id_%d", s.nextID)
	s.objects[id] = obj
	switch o := obj.(type) {
	case *Set:
	case *Track:
		o.id = id
	case *Scene:
		o.id = id
	case *ClipSlot:
		o.id = id
	case *Device:
		o.id = id
	case *Chain:
		o.id = id
	case *Clip:
		o.id = id
	case *CuePoint:
		o.id = id
	default:
		panic(fmt.Sprintf("memory: unregisterable object %T", obj))
	}
	return id
}

func (s *Set) unregister(id string) {
	delete(s.objects, id)
}

func (s *Set) record(format string, args ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

// Calls returns the structural host calls issued so far, in order.
// Tests assert on these to pin down call sequences.
func (s *Set) Calls() []string {
	return append([]string(nil), s.calls...)
}

// ResetCalls clears the recorded call log.
func (s *Set) ResetCalls() {
	s.calls = nil
}

// Length returns the clip's effective length in beats: the loop span
// for looping clips, the marker span otherwise.
func (c *Clip) Length() float64 {
	if c.Looping {
		return c.LoopEnd - c.LoopStart
	}
	return c.EndMarker - c.StartMarker
}

// EndTime returns the arrangement end of the clip.
func (c *Clip) EndTime() float64 {
	return c.StartTime + c.Length()
}

// ID exposes the host identity, for test assertions.
func (c *Clip) ID() string { return c.id }

// ID exposes the host identity, for test assertions.
func (t *Track) ID() string { return t.id }

// ID exposes the host identity, for test assertions.
func (sc *Scene) ID() string { return sc.id }

// ID exposes the host identity, for test assertions.
func (d *Device) ID() string { return d.id }

// ID exposes the host identity, for test assertions.
func (cs *ClipSlot) ID() string { return cs.id }

// AddTrack appends a regular track, padding its clip slots to the
// current scene count.
func (s *Set) AddTrack(name string) *Track {
	t := &Track{set: s, Name: name}
	s.register(t)
	for range s.Scenes {
		t.addSlot()
	}
	t.OutputRoutingType = "Master"
	s.Tracks = append(s.Tracks, t)
	return t
}

// AddReturnTrack appends a return track.
func (s *Set) AddReturnTrack(name string) *Track {
	t := &Track{set: s, Name: name, IsReturn: true}
	s.register(t)
	s.ReturnTracks = append(s.ReturnTracks, t)
	return t
}

// AddScene appends a scene and one empty clip slot per track.
func (s *Set) AddScene(name string) *Scene {
	sc := &Scene{Name: name}
	s.register(sc)
	s.Scenes = append(s.Scenes, sc)
	for _, t := range s.Tracks {
		t.addSlot()
	}
	return sc
}

// AddLocator appends a cue point.
func (s *Set) AddLocator(name string, time float64) *CuePoint {
	cp := &CuePoint{Name: name, Time: time}
	s.register(cp)
	s.CuePoints = append(s.CuePoints, cp)
	return cp
}

// AddDevice appends a device to the track.
func (s *Set) AddDevice(t *Track, name, className string) *Device {
	d := &Device{Name: name, ClassName: className}
	s.register(d)
	t.Devices = append(t.Devices, d)
	return d
}

// AddChain appends a chain to a rack device.
func (s *Set) AddChain(d *Device, name string) *Chain {
	ch := &Chain{Name: name}
	s.register(ch)
	d.Chains = append(d.Chains, ch)
	return ch
}

// AddChainDevice appends a device inside a rack chain.
func (s *Set) AddChainDevice(ch *Chain, name, className string) *Device {
	d := &Device{Name: name, ClassName: className}
	s.register(d)
	ch.Devices = append(ch.Devices, d)
	return d
}

// ClipOptions configures a clip added through the builders.
type ClipOptions struct {
	Name      string
	Color     int
	Length    float64
	Looping   bool
	Signature domain.TimeSignature
	IsMIDI    bool
}

func (s *Set) newClip(opt ClipOptions) *Clip {
	sig := opt.Signature
	if sig.Numerator == 0 {
		sig = domain.TimeSignature{Numerator: s.SigNumerator, Denominator: s.SigDenominator}
	}
	length := opt.Length
	if length == 0 {
		length = sig.BeatsPerBar()
	}
	c := &Clip{
		Name:           opt.Name,
		Color:          opt.Color,
		Looping:        opt.Looping,
		LoopEnd:        length,
		EndMarker:      length,
		SigNumerator:   sig.Numerator,
		SigDenominator: sig.Denominator,
		IsMIDI:         opt.IsMIDI,
	}
	s.register(c)
	return c
}

// AddSessionClip places a clip in the track's slot for the given scene.
func (s *Set) AddSessionClip(t *Track, sceneIndex int, opt ClipOptions) *Clip {
	if sceneIndex < 0 || sceneIndex >= len(t.ClipSlots) {
		panic(fmt.Sprintf("memory: no clip slot %d on track %q", sceneIndex, t.Name))
	}
	c := s.newClip(opt)
	t.ClipSlots[sceneIndex].Clip = c
	return c
}

// AddArrangementClip places a clip on the track's arrangement timeline.
func (s *Set) AddArrangementClip(t *Track, start float64, opt ClipOptions) *Clip {
	c := s.newClip(opt)
	c.InArrangement = true
	c.StartTime = start
	t.ArrangementClips = append(t.ArrangementClips, c)
	return c
}

func (t *Track) addSlot() {
	slot := &ClipSlot{}
	t.set.register(slot)
	t.ClipSlots = append(t.ClipSlots, slot)
}

// trackIndex returns the position of t among regular tracks.
func (s *Set) trackIndex(t *Track) (int, bool) {
	for i, tr := range s.Tracks {
		if tr == t {
			return i, true
		}
	}
	return 0, false
}

// lastEventTime returns the end of the latest arrangement clip.
func (s *Set) lastEventTime() float64 {
	var last float64
	for _, t := range s.Tracks {
		for _, c := range t.ArrangementClips {
			if c.EndTime() > last {
				last = c.EndTime()
			}
		}
	}
	return last
}

// routingTargets lists the routing destinations the host would offer a
// track: the master bus plus every other regular track by display name,
// in track order. Same-named tracks each produce one entry; a track is
// never offered as its own destination.
func (s *Set) routingTargets(self *Track) []string {
	if s.RoutingTargetOverride != nil {
		return append([]string(nil), s.RoutingTargetOverride...)
	}
	names := make([]string, 0, len(s.Tracks)+1)
	names = append(names, "Master")
	for _, t := range s.Tracks {
		if t == self {
			continue
		}
		names = append(names, t.Name)
	}
	return names
}

func (s *Set) sortedCuePoints() []*CuePoint {
	cps := append([]*CuePoint(nil), s.CuePoints...)
	sort.SliceStable(cps, func(i, j int) bool { return cps[i].Time < cps[j].Time })
	return cps
}
