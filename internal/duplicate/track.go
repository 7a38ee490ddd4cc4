package duplicate

import (
	"context"
	"fmt"

	"github.com/adamjmurray/producer-pal/pkg/domain"
	"github.com/adamjmurray/producer-pal/pkg/live"
)

// duplicateTrack duplicates a whole track count times. The host
// primitive creates each copy immediately after the source and carries
// everything over; post-processing then strips clips/devices, fixes
// routing and applies names.
func (e *Engine) duplicateTrack(ctx context.Context, src live.Object, req domain.DuplicateRequest) ([]domain.Duplicated, error) {
	srcPath, err := pathOf(src)
	if err != nil {
		return nil, err
	}
	if _, ok := srcPath.TrackIndex(); !ok {
		return nil, fmt.Errorf("only regular tracks can be duplicated (got %s)", srcPath)
	}

	withoutClips := req.WithoutClips
	withoutDevices := req.WithoutDevices
	if req.RouteToSource {
		// A routed layer track must start empty; forcing both strips is
		// part of the routeToSource contract.
		withoutClips = true
		withoutDevices = true
	}

	song := e.client.Object("live_set")
	count := req.CountOrDefault()

	type copyState struct {
		track    live.Object
		warnings []string
	}
	copies := make([]copyState, 0, count)

	for i := 0; i < count; i++ {
		// The source index can shift between iterations (each copy is
		// inserted after it), so re-derive it from the live path.
		srcPath, err = pathOf(src)
		if err != nil {
			return nil, err
		}
		srcIdx, _ := srcPath.TrackIndex()

		newID, err := song.Call("duplicate_track", srcIdx)
		if err != nil {
			return nil, fmt.Errorf("duplicate track %d: %w", srcIdx, err)
		}
		newTrack := e.client.ObjectByID(fmt.Sprint(newID))
		state := copyState{track: newTrack}

		if withoutClips {
			if err := e.stripClips(newTrack); err != nil {
				return nil, err
			}
		}
		if withoutDevices {
			if err := e.stripDevices(newTrack); err != nil {
				return nil, err
			}
		} else {
			// Even when devices are kept, the copy must not carry a
			// second instance of the controlling device.
			if err := e.removeControlDevice(newTrack); err != nil {
				return nil, err
			}
		}
		if req.RouteToSource {
			warning, err := e.routeToSource(newTrack, src)
			if err != nil {
				return nil, err
			}
			if warning != "" {
				state.warnings = append(state.warnings, warning)
			}
		}
		if req.Name != "" {
			if err := newTrack.Set("name", copyName(req.Name, i)); err != nil {
				return nil, fmt.Errorf("rename track copy: %w", err)
			}
		}
		copies = append(copies, state)
	}

	// Indices are reported after all copies exist, so later insertions
	// cannot invalidate earlier results.
	out := make([]domain.Duplicated, 0, count)
	for _, c := range copies {
		d, err := e.trackResult(c.track)
		if err != nil {
			return nil, err
		}
		d.Warnings = c.warnings
		out = append(out, d)
	}
	return out, nil
}

func (e *Engine) trackResult(track live.Object) (domain.Duplicated, error) {
	p, err := pathOf(track)
	if err != nil {
		return domain.Duplicated{}, err
	}
	idx, _ := p.TrackIndex()
	name, err := live.GetString(track, "name")
	if err != nil {
		return domain.Duplicated{}, err
	}
	clips, err := e.sessionClipRefs(track, idx)
	if err != nil {
		return domain.Duplicated{}, err
	}
	return domain.Duplicated{
		Type:       domain.TypeTrack,
		ID:         track.ID(),
		Name:       name,
		TrackIndex: &idx,
		Clips:      clips,
	}, nil
}

// sessionClipRefs lists the clips sitting in the track's session slots.
func (e *Engine) sessionClipRefs(track live.Object, trackIdx int) ([]domain.ClipRef, error) {
	slotIDs, err := live.GetStrings(track, "clip_slots")
	if err != nil {
		return nil, err
	}
	var refs []domain.ClipRef
	for sceneIdx, slotID := range slotIDs {
		slot := e.client.ObjectByID(slotID)
		hasClip, err := live.GetBool(slot, "has_clip")
		if err != nil {
			return nil, err
		}
		if !hasClip {
			continue
		}
		clipIDs, err := live.GetStrings(slot, "clip")
		if err != nil || len(clipIDs) == 0 {
			continue
		}
		clip := e.client.ObjectByID(clipIDs[0])
		name, _ := live.GetString(clip, "name")
		length, _ := live.GetFloat(clip, "length")
		ti, si := trackIdx, sceneIdx
		refs = append(refs, domain.ClipRef{
			ID:         clipIDs[0],
			Name:       name,
			TrackIndex: &ti,
			SceneIndex: &si,
			Length:     &length,
		})
	}
	return refs, nil
}

// stripClips deletes every session clip and every arrangement clip on
// the track.
func (e *Engine) stripClips(track live.Object) error {
	slotIDs, err := live.GetStrings(track, "clip_slots")
	if err != nil {
		return fmt.Errorf("strip clips: %w", err)
	}
	for _, slotID := range slotIDs {
		slot := e.client.ObjectByID(slotID)
		hasClip, err := live.GetBool(slot, "has_clip")
		if err != nil {
			return fmt.Errorf("strip clips: %w", err)
		}
		if !hasClip {
			continue
		}
		if _, err := slot.Call("delete_clip"); err != nil {
			return fmt.Errorf("strip clips: %w", err)
		}
	}
	clipIDs, err := live.GetStrings(track, "arrangement_clips")
	if err != nil {
		return fmt.Errorf("strip clips: %w", err)
	}
	for _, clipID := range clipIDs {
		if _, err := track.Call("delete_clip", clipID); err != nil {
			return fmt.Errorf("strip clips: %w", err)
		}
	}
	return nil
}

// stripDevices deletes every device on the track. Deletion runs
// back-to-front because each deletion shifts the indices after it.
func (e *Engine) stripDevices(track live.Object) error {
	deviceIDs, err := live.GetStrings(track, "devices")
	if err != nil {
		return fmt.Errorf("strip devices: %w", err)
	}
	for i := len(deviceIDs) - 1; i >= 0; i-- {
		if _, err := track.Call("delete_device", i); err != nil {
			return fmt.Errorf("strip devices: %w", err)
		}
	}
	return nil
}

// removeControlDevice deletes any instance of this layer's own hosting
// device from the track.
func (e *Engine) removeControlDevice(track live.Object) error {
	deviceIDs, err := live.GetStrings(track, "devices")
	if err != nil {
		return fmt.Errorf("remove control device: %w", err)
	}
	// Walk back-to-front so deletions cannot shift unvisited indices.
	for i := len(deviceIDs) - 1; i >= 0; i-- {
		dev := e.client.ObjectByID(deviceIDs[i])
		name, err := live.GetString(dev, "name")
		if err != nil {
			return fmt.Errorf("remove control device: %w", err)
		}
		if name != e.controlDeviceName {
			continue
		}
		e.logger.Debug("removing control device from duplicated track", "index", i)
		if _, err := track.Call("delete_device", i); err != nil {
			return fmt.Errorf("remove control device: %w", err)
		}
	}
	return nil
}

// routeToSource points the new track's output at the source track's
// input and prepares the source for layering. Routing options are
// matched by display name; duplicate track names are disambiguated by
// ordinal position among same-named tracks. An unmatched name skips the
// routing step with a warning instead of failing.
func (e *Engine) routeToSource(newTrack, src live.Object) (string, error) {
	srcName, err := live.GetString(src, "name")
	if err != nil {
		return "", fmt.Errorf("route to source: %w", err)
	}

	// Ordinal of the source among all same-named tracks, in track order.
	song := e.client.Object("live_set")
	trackIDs, err := live.GetStrings(song, "tracks")
	if err != nil {
		return "", fmt.Errorf("route to source: %w", err)
	}
	ordinal := -1
	seen := 0
	for _, id := range trackIDs {
		t := e.client.ObjectByID(id)
		name, err := live.GetString(t, "name")
		if err != nil {
			return "", fmt.Errorf("route to source: %w", err)
		}
		if name != srcName {
			continue
		}
		if id == src.ID() {
			ordinal = seen
			break
		}
		seen++
	}
	if ordinal < 0 {
		return fmt.Sprintf("source track %q not found among tracks; skipping routing", srcName), nil
	}

	options, err := live.GetStrings(newTrack, "available_output_routing_types")
	if err != nil {
		return "", fmt.Errorf("route to source: %w", err)
	}
	// Same-named tracks produce one routing option each, in track
	// order, so the ordinal carries over to the option list.
	match := -1
	seen = 0
	for i, opt := range options {
		if opt != srcName {
			continue
		}
		if seen == ordinal {
			match = i
			break
		}
		seen++
	}
	if match < 0 {
		warning := fmt.Sprintf("no output routing option matches track %q; skipping routing", srcName)
		e.logger.Warn("routing mismatch", "track", srcName, "ordinal", ordinal)
		return warning, nil
	}
	if err := newTrack.Set("output_routing_type", options[match]); err != nil {
		return "", fmt.Errorf("route to source: %w", err)
	}

	// Prepare the source to hear and record the routed signal.
	monitoring, err := live.GetInt(src, "current_monitoring_state")
	if err != nil {
		return "", fmt.Errorf("route to source: %w", err)
	}
	if monitoring != 0 {
		if err := src.Set("current_monitoring_state", 0); err != nil {
			return "", fmt.Errorf("route to source: %w", err)
		}
	}
	armed, err := live.GetBool(src, "arm")
	if err != nil {
		return "", fmt.Errorf("route to source: %w", err)
	}
	if !armed {
		if err := src.Set("arm", true); err != nil {
			return "", fmt.Errorf("route to source: %w", err)
		}
	}
	return "", nil
}
