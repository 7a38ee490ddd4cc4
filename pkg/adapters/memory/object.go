package memory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adamjmurray/producer-pal/pkg/live"
)

// Client exposes the set through the live object model port.
type Client struct {
	set *Set
}

// Client returns a live.Client over the set.
func (s *Set) Client() *Client {
	return &Client{set: s}
}

// Object implements live.Client.
func (c *Client) Object(path string) live.Object {
	return &object{set: c.set, path: path}
}

// ObjectByID implements live.Client.
func (c *Client) ObjectByID(id string) live.Object {
	return &object{set: c.set, id: id}
}

var _ live.Client = (*Client)(nil)

// object is a handle addressed by id or by path. Resolution happens on
// every access so handles always see current host state.
type object struct {
	set  *Set
	id   string
	path string
}

func (o *object) resolve() (any, bool) {
	if o.id != "" {
		obj, ok := o.set.objects[o.id]
		return obj, ok
	}
	return o.set.resolvePath(o.path)
}

func (o *object) ID() string {
	if o.id != "" {
		return o.id
	}
	obj, ok := o.resolve()
	if !ok {
		return ""
	}
	return o.set.idOf(obj)
}

func (o *object) Path() string {
	obj, ok := o.resolve()
	if !ok {
		return ""
	}
	if p, ok := o.set.pathOf(obj); ok {
		return p
	}
	return ""
}

func (o *object) Exists() bool {
	obj, ok := o.resolve()
	if !ok {
		return false
	}
	// A registered object detached from the tree (e.g. a deleted clip
	// whose id is still held) does not exist either.
	_, attached := o.set.pathOf(obj)
	return attached
}

func (o *object) Get(prop string) ([]any, error) {
	obj, ok := o.resolve()
	if !ok {
		return nil, fmt.Errorf("no object at %s", o.describe())
	}
	return o.set.getProperty(obj, prop)
}

func (o *object) Set(prop string, value any) error {
	obj, ok := o.resolve()
	if !ok {
		return fmt.Errorf("no object at %s", o.describe())
	}
	return o.set.setProperty(obj, prop, value)
}

func (o *object) Call(method string, args ...any) (any, error) {
	obj, ok := o.resolve()
	if !ok {
		return nil, fmt.Errorf("no object at %s", o.describe())
	}
	return o.set.call(obj, method, args...)
}

func (o *object) describe() string {
	if o.id != "" {
		return "id " + o.id
	}
	return "path " + strconv.Quote(o.path)
}

var _ live.Object = (*object)(nil)

func (s *Set) idOf(obj any) string {
	switch o := obj.(type) {
	case *Set:
		for id, reg := range s.objects {
			if reg == obj {
				return id
			}
		}
		return ""
	case *Track:
		return o.id
	case *Scene:
		return o.id
	case *ClipSlot:
		return o.id
	case *Device:
		return o.id
	case *Chain:
		return o.id
	case *Clip:
		return o.id
	case *CuePoint:
		return o.id
	}
	return ""
}

// resolvePath walks a space-delimited address down the tree.
func (s *Set) resolvePath(path string) (any, bool) {
	tokens := strings.Fields(path)
	if len(tokens) == 0 || tokens[0] != "live_set" {
		return nil, false
	}
	var cur any = s
	i := 1
	for i < len(tokens) {
		name := tokens[i]
		if name == "master_track" {
			if _, ok := cur.(*Set); !ok {
				return nil, false
			}
			cur = s.Master
			i++
			continue
		}
		if i+1 >= len(tokens) {
			return nil, false
		}
		idx, err := strconv.Atoi(tokens[i+1])
		if err != nil || idx < 0 {
			return nil, false
		}
		next, ok := childAt(cur, name, idx)
		if !ok {
			return nil, false
		}
		cur = next
		i += 2
	}
	return cur, true
}

func childAt(parent any, collection string, idx int) (any, bool) {
	switch p := parent.(type) {
	case *Set:
		switch collection {
		case "tracks":
			if idx < len(p.Tracks) {
				return p.Tracks[idx], true
			}
		case "return_tracks":
			if idx < len(p.ReturnTracks) {
				return p.ReturnTracks[idx], true
			}
		case "scenes":
			if idx < len(p.Scenes) {
				return p.Scenes[idx], true
			}
		case "cue_points":
			if idx < len(p.CuePoints) {
				return p.CuePoints[idx], true
			}
		}
	case *Track:
		switch collection {
		case "devices":
			if idx < len(p.Devices) {
				return p.Devices[idx], true
			}
		case "clip_slots":
			if idx < len(p.ClipSlots) {
				return p.ClipSlots[idx], true
			}
		case "arrangement_clips":
			if idx < len(p.ArrangementClips) {
				return p.ArrangementClips[idx], true
			}
		}
	case *Device:
		if collection == "chains" && idx < len(p.Chains) {
			return p.Chains[idx], true
		}
	case *Chain:
		if collection == "devices" && idx < len(p.Devices) {
			return p.Devices[idx], true
		}
	case *ClipSlot:
		if collection == "clip" && idx == 0 && p.Clip != nil {
			return p.Clip, true
		}
	}
	return nil, false
}

// pathOf reconstructs the current address of an object, searching the
// tree. Detached objects have no path.
func (s *Set) pathOf(target any) (string, bool) {
	if target == s {
		return "live_set", true
	}
	if target == s.Master {
		return "live_set master_track", true
	}
	for i, t := range s.Tracks {
		base := fmt.Sprintf("live_set tracks %d", i)
		if p, ok := searchTrack(t, base, target); ok {
			return p, true
		}
	}
	for i, t := range s.ReturnTracks {
		base := fmt.Sprintf("live_set return_tracks %d", i)
		if p, ok := searchTrack(t, base, target); ok {
			return p, true
		}
	}
	if p, ok := searchTrack(s.Master, "live_set master_track", target); ok {
		return p, true
	}
	for i, sc := range s.Scenes {
		if sc == target {
			return fmt.Sprintf("live_set scenes %d", i), true
		}
	}
	for i, cp := range s.CuePoints {
		if cp == target {
			return fmt.Sprintf("live_set cue_points %d", i), true
		}
	}
	return "", false
}

func searchTrack(t *Track, base string, target any) (string, bool) {
	if t == nil {
		return "", false
	}
	if t == target {
		return base, true
	}
	for i, d := range t.Devices {
		if p, ok := searchDevice(d, fmt.Sprintf("%s devices %d", base, i), target); ok {
			return p, true
		}
	}
	for i, cs := range t.ClipSlots {
		slotPath := fmt.Sprintf("%s clip_slots %d", base, i)
		if cs == target {
			return slotPath, true
		}
		if cs.Clip != nil && cs.Clip == target {
			return slotPath + " clip 0", true
		}
	}
	for i, c := range t.ArrangementClips {
		if c == target {
			return fmt.Sprintf("%s arrangement_clips %d", base, i), true
		}
	}
	return "", false
}

func searchDevice(d *Device, base string, target any) (string, bool) {
	if d == target {
		return base, true
	}
	for i, ch := range d.Chains {
		chainPath := fmt.Sprintf("%s chains %d", base, i)
		if ch == target {
			return chainPath, true
		}
		for j, nested := range ch.Devices {
			if p, ok := searchDevice(nested, fmt.Sprintf("%s devices %d", chainPath, j), target); ok {
				return p, true
			}
		}
	}
	return "", false
}

func ids(objs ...string) []any {
	out := make([]any, len(objs))
	for i, id := range objs {
		out[i] = id
	}
	return out
}

func (s *Set) getProperty(obj any, prop string) ([]any, error) {
	switch o := obj.(type) {
	case *Set:
		switch prop {
		case "signature_numerator":
			return []any{float64(o.SigNumerator)}, nil
		case "signature_denominator":
			return []any{float64(o.SigDenominator)}, nil
		case "last_event_time":
			return []any{o.lastEventTime()}, nil
		case "tracks":
			out := make([]string, len(o.Tracks))
			for i, t := range o.Tracks {
				out[i] = t.id
			}
			return ids(out...), nil
		case "return_tracks":
			out := make([]string, len(o.ReturnTracks))
			for i, t := range o.ReturnTracks {
				out[i] = t.id
			}
			return ids(out...), nil
		case "scenes":
			out := make([]string, len(o.Scenes))
			for i, sc := range o.Scenes {
				out[i] = sc.id
			}
			return ids(out...), nil
		case "cue_points":
			out := make([]string, len(o.CuePoints))
			for i, cp := range o.CuePoints {
				out[i] = cp.id
			}
			return ids(out...), nil
		}
	case *Track:
		switch prop {
		case "name":
			return []any{o.Name}, nil
		case "arm":
			return []any{boolNum(o.Arm)}, nil
		case "current_monitoring_state":
			return []any{float64(o.MonitoringState)}, nil
		case "output_routing_type":
			return []any{o.OutputRoutingType}, nil
		case "available_output_routing_types":
			targets := s.routingTargets(o)
			out := make([]any, len(targets))
			for i, n := range targets {
				out[i] = n
			}
			return out, nil
		case "devices":
			out := make([]string, len(o.Devices))
			for i, d := range o.Devices {
				out[i] = d.id
			}
			return ids(out...), nil
		case "clip_slots":
			out := make([]string, len(o.ClipSlots))
			for i, cs := range o.ClipSlots {
				out[i] = cs.id
			}
			return ids(out...), nil
		case "arrangement_clips":
			out := make([]string, len(o.ArrangementClips))
			for i, c := range o.ArrangementClips {
				out[i] = c.id
			}
			return ids(out...), nil
		}
	case *Scene:
		if prop == "name" {
			return []any{o.Name}, nil
		}
	case *ClipSlot:
		switch prop {
		case "has_clip":
			return []any{boolNum(o.Clip != nil)}, nil
		case "clip":
			if o.Clip == nil {
				return []any{}, nil
			}
			return []any{o.Clip.id}, nil
		}
	case *Clip:
		switch prop {
		case "name":
			return []any{o.Name}, nil
		case "color":
			return []any{float64(o.Color)}, nil
		case "length":
			return []any{o.Length()}, nil
		case "looping":
			return []any{boolNum(o.Looping)}, nil
		case "loop_start":
			return []any{o.LoopStart}, nil
		case "loop_end":
			return []any{o.LoopEnd}, nil
		case "start_marker":
			return []any{o.StartMarker}, nil
		case "end_marker":
			return []any{o.EndMarker}, nil
		case "signature_numerator":
			return []any{float64(o.SigNumerator)}, nil
		case "signature_denominator":
			return []any{float64(o.SigDenominator)}, nil
		case "is_midi_clip":
			return []any{boolNum(o.IsMIDI)}, nil
		case "is_arrangement_clip":
			return []any{boolNum(o.InArrangement)}, nil
		case "start_time":
			return []any{o.StartTime}, nil
		}
	case *Device:
		switch prop {
		case "name":
			return []any{o.Name}, nil
		case "class_name":
			return []any{o.ClassName}, nil
		case "chains":
			out := make([]string, len(o.Chains))
			for i, ch := range o.Chains {
				out[i] = ch.id
			}
			return ids(out...), nil
		}
	case *Chain:
		switch prop {
		case "name":
			return []any{o.Name}, nil
		case "devices":
			out := make([]string, len(o.Devices))
			for i, d := range o.Devices {
				out[i] = d.id
			}
			return ids(out...), nil
		}
	case *CuePoint:
		switch prop {
		case "name":
			return []any{o.Name}, nil
		case "time":
			return []any{o.Time}, nil
		}
	}
	return nil, fmt.Errorf("unknown property %q on %T", prop, obj)
}

func (s *Set) setProperty(obj any, prop string, value any) error {
	switch o := obj.(type) {
	case *Track:
		switch prop {
		case "name":
			o.Name = fmt.Sprint(value)
			return nil
		case "arm":
			o.Arm = truthy(value)
			return nil
		case "current_monitoring_state":
			n, err := asInt(value)
			if err != nil {
				return err
			}
			o.MonitoringState = n
			return nil
		case "output_routing_type":
			name := fmt.Sprint(value)
			for _, t := range s.routingTargets(o) {
				if t == name {
					o.OutputRoutingType = name
					return nil
				}
			}
			return fmt.Errorf("unknown routing target %q", name)
		}
	case *Scene:
		if prop == "name" {
			o.Name = fmt.Sprint(value)
			return nil
		}
	case *Clip:
		switch prop {
		case "name":
			o.Name = fmt.Sprint(value)
			return nil
		case "color":
			n, err := asInt(value)
			if err != nil {
				return err
			}
			o.Color = n
			return nil
		case "looping":
			o.Looping = truthy(value)
			return nil
		case "loop_start", "loop_end", "start_marker", "end_marker", "start_time":
			f, err := asFloat(value)
			if err != nil {
				return err
			}
			switch prop {
			case "loop_start":
				o.LoopStart = f
			case "loop_end":
				o.LoopEnd = f
			case "start_marker":
				o.StartMarker = f
			case "end_marker":
				o.EndMarker = f
			case "start_time":
				o.StartTime = f
			}
			return nil
		}
	case *Device:
		if prop == "name" {
			o.Name = fmt.Sprint(value)
			return nil
		}
	case *CuePoint:
		if prop == "name" {
			o.Name = fmt.Sprint(value)
			return nil
		}
	}
	return fmt.Errorf("property %q on %T is not settable", prop, obj)
}

func boolNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func truthy(v any) bool {
	switch n := v.(type) {
	case bool:
		return n
	case float64:
		return n != 0
	case int:
		return n != 0
	default:
		return false
	}
}

func asInt(v any) (int, error) {
	f, err := asFloat(v)
	return int(f), err
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not numeric", v, v)
	}
}
