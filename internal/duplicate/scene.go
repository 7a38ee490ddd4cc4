package duplicate

import (
	"context"
	"fmt"

	"github.com/adamjmurray/producer-pal/pkg/domain"
	"github.com/adamjmurray/producer-pal/pkg/live"
)

// duplicateScene duplicates a scene into the session or replays its
// clips into the arrangement.
func (e *Engine) duplicateScene(ctx context.Context, src live.Object, req domain.DuplicateRequest) ([]domain.Duplicated, error) {
	srcIdx, err := sceneIndexOf(src)
	if err != nil {
		return nil, err
	}
	if req.Destination == domain.DestinationArrangement ||
		req.ArrangementStart != "" || req.ArrangementLocatorID != "" || req.ArrangementLocatorName != "" {
		return e.duplicateSceneToArrangement(ctx, srcIdx, req)
	}
	return e.duplicateSceneInSession(src, srcIdx, req)
}

func sceneIndexOf(scene live.Object) (int, error) {
	p, err := pathOf(scene)
	if err != nil {
		return 0, err
	}
	idx, err := p.LastIndex()
	if err != nil {
		return 0, fmt.Errorf("object is not a scene: %w", err)
	}
	return idx, nil
}

// duplicateSceneInSession uses the host's whole-scene primitive, which
// inserts each copy immediately after the source and carries the whole
// clip row over.
func (e *Engine) duplicateSceneInSession(src live.Object, srcIdx int, req domain.DuplicateRequest) ([]domain.Duplicated, error) {
	song := e.client.Object("live_set")
	count := req.CountOrDefault()
	copies := make([]live.Object, 0, count)

	for i := 0; i < count; i++ {
		// Re-derive the source index each round: every insertion at
		// srcIdx+1 leaves the source in place, but stay defensive about
		// prior host-side changes.
		idx, err := sceneIndexOf(src)
		if err != nil {
			return nil, err
		}
		newID, err := song.Call("duplicate_scene", idx)
		if err != nil {
			return nil, fmt.Errorf("duplicate scene %d: %w", idx, err)
		}
		newScene := e.client.ObjectByID(fmt.Sprint(newID))

		if req.WithoutClips {
			if err := e.clearSceneRow(idx + 1); err != nil {
				return nil, err
			}
		}
		if req.Name != "" {
			if err := newScene.Set("name", copyName(req.Name, i)); err != nil {
				return nil, fmt.Errorf("rename scene copy: %w", err)
			}
		}
		copies = append(copies, newScene)
	}

	out := make([]domain.Duplicated, 0, count)
	for _, sc := range copies {
		d, err := e.sceneResult(sc)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// clearSceneRow deletes every clip in the given scene row.
func (e *Engine) clearSceneRow(sceneIdx int) error {
	song := e.client.Object("live_set")
	trackIDs, err := live.GetStrings(song, "tracks")
	if err != nil {
		return fmt.Errorf("clear scene row: %w", err)
	}
	for _, trackID := range trackIDs {
		track := e.client.ObjectByID(trackID)
		slotIDs, err := live.GetStrings(track, "clip_slots")
		if err != nil {
			return fmt.Errorf("clear scene row: %w", err)
		}
		if sceneIdx >= len(slotIDs) {
			continue
		}
		slot := e.client.ObjectByID(slotIDs[sceneIdx])
		hasClip, err := live.GetBool(slot, "has_clip")
		if err != nil {
			return fmt.Errorf("clear scene row: %w", err)
		}
		if !hasClip {
			continue
		}
		if _, err := slot.Call("delete_clip"); err != nil {
			return fmt.Errorf("clear scene row: %w", err)
		}
	}
	return nil
}

func (e *Engine) sceneResult(scene live.Object) (domain.Duplicated, error) {
	idx, err := sceneIndexOf(scene)
	if err != nil {
		return domain.Duplicated{}, err
	}
	name, err := live.GetString(scene, "name")
	if err != nil {
		return domain.Duplicated{}, err
	}
	clips, err := e.sceneRowClipRefs(idx)
	if err != nil {
		return domain.Duplicated{}, err
	}
	return domain.Duplicated{
		Type:       domain.TypeScene,
		ID:         scene.ID(),
		Name:       name,
		SceneIndex: &idx,
		Clips:      clips,
	}, nil
}

func (e *Engine) sceneRowClipRefs(sceneIdx int) ([]domain.ClipRef, error) {
	song := e.client.Object("live_set")
	trackIDs, err := live.GetStrings(song, "tracks")
	if err != nil {
		return nil, err
	}
	var refs []domain.ClipRef
	for trackIdx, trackID := range trackIDs {
		track := e.client.ObjectByID(trackID)
		slotIDs, err := live.GetStrings(track, "clip_slots")
		if err != nil {
			return nil, err
		}
		if sceneIdx >= len(slotIDs) {
			continue
		}
		slot := e.client.ObjectByID(slotIDs[sceneIdx])
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

// duplicateSceneToArrangement replays the scene's clip row onto the
// arrangement timeline. The host has no primitive for this, so each
// track's clip in the row is duplicated individually at the resolved
// position. Successive copies advance by the longest clip placed in the
// previous copy, or one song bar when the row was empty.
func (e *Engine) duplicateSceneToArrangement(ctx context.Context, srcIdx int, req domain.DuplicateRequest) ([]domain.Duplicated, error) {
	songSig, err := e.songSignature()
	if err != nil {
		return nil, err
	}
	positions, err := e.resolveArrangementTarget(req, songSig)
	if err != nil {
		return nil, err
	}
	start := positions[0]

	song := e.client.Object("live_set")
	count := req.CountOrDefault()
	out := make([]domain.Duplicated, 0, count)

	for i := 0; i < count; i++ {
		trackIDs, err := live.GetStrings(song, "tracks")
		if err != nil {
			return nil, fmt.Errorf("duplicate scene to arrangement: %w", err)
		}
		longest := 0.0
		var refs []domain.ClipRef
		for trackIdx, trackID := range trackIDs {
			track := e.client.ObjectByID(trackID)
			slotIDs, err := live.GetStrings(track, "clip_slots")
			if err != nil {
				return nil, fmt.Errorf("duplicate scene to arrangement: %w", err)
			}
			if srcIdx >= len(slotIDs) {
				continue
			}
			slot := e.client.ObjectByID(slotIDs[srcIdx])
			clipIDs, err := live.GetStrings(slot, "clip")
			if err != nil || len(clipIDs) == 0 {
				continue
			}
			clip := e.client.ObjectByID(clipIDs[0])
			ref, err := e.placeClipInArrangement(ctx, track, clip, start, req.ArrangementLength)
			if err != nil {
				return nil, err
			}
			ti := trackIdx
			ref.TrackIndex = &ti
			refs = append(refs, ref)
			if ref.Length != nil && *ref.Length > longest {
				longest = *ref.Length
			}
		}
		if longest == 0 {
			longest = songSig.BeatsPerBar()
		}

		d := domain.Duplicated{Type: domain.TypeScene, Clips: refs}
		if req.Name != "" {
			d.Name = copyName(req.Name, i)
		}
		out = append(out, d)
		start += longest
	}
	return out, nil
}
