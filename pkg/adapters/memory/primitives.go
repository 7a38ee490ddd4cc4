package memory

import (
	"fmt"
)

// call dispatches a host method. Structural calls are recorded so tests
// can assert on exact call sequences.
func (s *Set) call(obj any, method string, args ...any) (any, error) {
	switch o := obj.(type) {
	case *Set:
		return s.songCall(method, args...)
	case *Track:
		return s.trackCall(o, method, args...)
	case *ClipSlot:
		return s.slotCall(o, method, args...)
	}
	return nil, fmt.Errorf("unknown method %q on %T", method, obj)
}

func (s *Set) songCall(method string, args ...any) (any, error) {
	switch method {
	case "duplicate_track":
		idx, err := argInt(args, 0, method)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(s.Tracks) {
			return nil, fmt.Errorf("duplicate_track: no track at %d", idx)
		}
		s.record("live_set.duplicate_track(%d)", idx)
		cp := s.cloneTrack(s.Tracks[idx])
		s.Tracks = append(s.Tracks[:idx+1], append([]*Track{cp}, s.Tracks[idx+1:]...)...)
		return cp.id, nil

	case "delete_track":
		idx, err := argInt(args, 0, method)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(s.Tracks) {
			return nil, fmt.Errorf("delete_track: no track at %d", idx)
		}
		s.record("live_set.delete_track(%d)", idx)
		s.releaseTrack(s.Tracks[idx])
		s.Tracks = append(s.Tracks[:idx], s.Tracks[idx+1:]...)
		return nil, nil

	case "duplicate_scene":
		idx, err := argInt(args, 0, method)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(s.Scenes) {
			return nil, fmt.Errorf("duplicate_scene: no scene at %d", idx)
		}
		s.record("live_set.duplicate_scene(%d)", idx)
		src := s.Scenes[idx]
		cp := &Scene{Name: src.Name}
		s.register(cp)
		s.Scenes = append(s.Scenes[:idx+1], append([]*Scene{cp}, s.Scenes[idx+1:]...)...)
		// Duplicating a scene carries every clip in its row, as the
		// host does.
		for _, t := range s.Tracks {
			slot := &ClipSlot{}
			s.register(slot)
			if src := t.ClipSlots[idx]; src.Clip != nil {
				slot.Clip = s.cloneClip(src.Clip)
			}
			t.ClipSlots = append(t.ClipSlots[:idx+1], append([]*ClipSlot{slot}, t.ClipSlots[idx+1:]...)...)
		}
		return cp.id, nil

	case "move_device":
		if len(args) < 3 {
			return nil, fmt.Errorf("move_device: want (device id, parent path, index)")
		}
		deviceID := fmt.Sprint(args[0])
		parentPath := fmt.Sprint(args[1])
		idx, err := argInt(args, 2, method)
		if err != nil {
			return nil, err
		}
		s.record("live_set.move_device(%s, %s, %d)", deviceID, parentPath, idx)
		return nil, s.moveDevice(deviceID, parentPath, idx)

	case "delete_cue_point":
		id := fmt.Sprint(argAt(args, 0))
		for i, cp := range s.CuePoints {
			if cp.id == id {
				s.record("live_set.delete_cue_point(%s)", id)
				s.unregister(id)
				s.CuePoints = append(s.CuePoints[:i], s.CuePoints[i+1:]...)
				return nil, nil
			}
		}
		return nil, fmt.Errorf("delete_cue_point: no cue point %s", id)
	}
	return nil, fmt.Errorf("unknown song method %q", method)
}

func (s *Set) trackCall(t *Track, method string, args ...any) (any, error) {
	path, _ := s.pathOf(t)
	switch method {
	case "duplicate_clip_to_arrangement":
		if len(args) < 2 {
			return nil, fmt.Errorf("duplicate_clip_to_arrangement: want (clip id, time)")
		}
		clipID := fmt.Sprint(args[0])
		time, err := argFloat(args, 1, method)
		if err != nil {
			return nil, err
		}
		src, ok := s.objects[clipID].(*Clip)
		if !ok {
			return nil, fmt.Errorf("duplicate_clip_to_arrangement: no clip %s", clipID)
		}
		s.record("%s.duplicate_clip_to_arrangement(%s, %g)", path, clipID, time)
		cp := s.cloneClip(src)
		cp.InArrangement = true
		cp.StartTime = time
		t.ArrangementClips = append(t.ArrangementClips, cp)
		return cp.id, nil

	case "delete_clip":
		clipID := fmt.Sprint(argAt(args, 0))
		for i, c := range t.ArrangementClips {
			if c.id == clipID {
				s.record("%s.delete_clip(%s)", path, clipID)
				s.unregister(clipID)
				t.ArrangementClips = append(t.ArrangementClips[:i], t.ArrangementClips[i+1:]...)
				return nil, nil
			}
		}
		return nil, fmt.Errorf("delete_clip: no arrangement clip %s on track", clipID)

	case "delete_device":
		idx, err := argInt(args, 0, method)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(t.Devices) {
			return nil, fmt.Errorf("delete_device: no device at %d", idx)
		}
		s.record("%s.delete_device(%d)", path, idx)
		s.releaseDevice(t.Devices[idx])
		t.Devices = append(t.Devices[:idx], t.Devices[idx+1:]...)
		return nil, nil
	}
	return nil, fmt.Errorf("unknown track method %q", method)
}

func (s *Set) slotCall(cs *ClipSlot, method string, args ...any) (any, error) {
	path, _ := s.pathOf(cs)
	switch method {
	case "delete_clip":
		if cs.Clip == nil {
			return nil, fmt.Errorf("delete_clip: slot is empty")
		}
		s.record("%s.delete_clip()", path)
		s.unregister(cs.Clip.id)
		cs.Clip = nil
		return nil, nil

	case "duplicate_clip_to":
		if cs.Clip == nil {
			return nil, fmt.Errorf("duplicate_clip_to: slot is empty")
		}
		targetID := fmt.Sprint(argAt(args, 0))
		target, ok := s.objects[targetID].(*ClipSlot)
		if !ok {
			return nil, fmt.Errorf("duplicate_clip_to: no clip slot %s", targetID)
		}
		s.record("%s.duplicate_clip_to(%s)", path, targetID)
		if target.Clip != nil {
			s.unregister(target.Clip.id)
		}
		target.Clip = s.cloneClip(cs.Clip)
		return target.Clip.id, nil
	}
	return nil, fmt.Errorf("unknown clip slot method %q", method)
}

func (s *Set) moveDevice(deviceID, parentPath string, idx int) error {
	d, ok := s.objects[deviceID].(*Device)
	if !ok {
		return fmt.Errorf("move_device: no device %s", deviceID)
	}
	parent, ok := s.resolvePath(parentPath)
	if !ok {
		return fmt.Errorf("move_device: no object at %q", parentPath)
	}
	if !s.detachDevice(d) {
		return fmt.Errorf("move_device: device %s is not attached", deviceID)
	}
	switch p := parent.(type) {
	case *Track:
		p.Devices = insertDevice(p.Devices, d, idx)
	case *Chain:
		p.Devices = insertDevice(p.Devices, d, idx)
	default:
		return fmt.Errorf("move_device: %q is not a device container", parentPath)
	}
	return nil
}

func insertDevice(devices []*Device, d *Device, idx int) []*Device {
	if idx < 0 {
		idx = 0
	}
	if idx > len(devices) {
		idx = len(devices)
	}
	return append(devices[:idx], append([]*Device{d}, devices[idx:]...)...)
}

func (s *Set) detachDevice(d *Device) bool {
	detach := func(t *Track) bool {
		for i, dev := range t.Devices {
			if dev == d {
				t.Devices = append(t.Devices[:i], t.Devices[i+1:]...)
				return true
			}
			if detachFromChains(dev, d) {
				return true
			}
		}
		return false
	}
	for _, t := range s.Tracks {
		if detach(t) {
			return true
		}
	}
	for _, t := range s.ReturnTracks {
		if detach(t) {
			return true
		}
	}
	return s.Master != nil && detach(s.Master)
}

func detachFromChains(rack *Device, d *Device) bool {
	for _, ch := range rack.Chains {
		for i, dev := range ch.Devices {
			if dev == d {
				ch.Devices = append(ch.Devices[:i], ch.Devices[i+1:]...)
				return true
			}
			if detachFromChains(dev, d) {
				return true
			}
		}
	}
	return false
}

func (s *Set) cloneTrack(src *Track) *Track {
	cp := &Track{
		set:               s,
		Name:              src.Name,
		Arm:               src.Arm,
		MonitoringState:   src.MonitoringState,
		OutputRoutingType: src.OutputRoutingType,
	}
	s.register(cp)
	for _, d := range src.Devices {
		cp.Devices = append(cp.Devices, s.cloneDevice(d))
	}
	for _, cs := range src.ClipSlots {
		slot := &ClipSlot{}
		s.register(slot)
		if cs.Clip != nil {
			slot.Clip = s.cloneClip(cs.Clip)
		}
		cp.ClipSlots = append(cp.ClipSlots, slot)
	}
	for _, c := range src.ArrangementClips {
		cp.ArrangementClips = append(cp.ArrangementClips, s.cloneClip(c))
	}
	return cp
}

func (s *Set) cloneDevice(src *Device) *Device {
	cp := &Device{Name: src.Name, ClassName: src.ClassName}
	s.register(cp)
	for _, ch := range src.Chains {
		chain := &Chain{Name: ch.Name}
		s.register(chain)
		for _, d := range ch.Devices {
			chain.Devices = append(chain.Devices, s.cloneDevice(d))
		}
		cp.Chains = append(cp.Chains, chain)
	}
	return cp
}

func (s *Set) cloneClip(src *Clip) *Clip {
	cp := *src
	cp.InArrangement = false
	cp.StartTime = 0
	s.register(&cp)
	return &cp
}

func (s *Set) releaseTrack(t *Track) {
	for _, d := range t.Devices {
		s.releaseDevice(d)
	}
	for _, cs := range t.ClipSlots {
		if cs.Clip != nil {
			s.unregister(cs.Clip.id)
		}
		s.unregister(cs.id)
	}
	for _, c := range t.ArrangementClips {
		s.unregister(c.id)
	}
	s.unregister(t.id)
}

func (s *Set) releaseDevice(d *Device) {
	for _, ch := range d.Chains {
		for _, nested := range ch.Devices {
			s.releaseDevice(nested)
		}
		s.unregister(ch.id)
	}
	s.unregister(d.id)
}

func argAt(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func argInt(args []any, i int, method string) (int, error) {
	f, err := argFloat(args, i, method)
	return int(f), err
}

func argFloat(args []any, i int, method string) (float64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%s: missing argument %d", method, i)
	}
	f, err := asFloat(args[i])
	if err != nil {
		return 0, fmt.Errorf("%s: argument %d: %w", method, i, err)
	}
	return f, nil
}
