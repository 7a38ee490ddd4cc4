package duplicate

import (
	"context"
	"fmt"
	"math"

	"github.com/adamjmurray/producer-pal/pkg/domain"
	"github.com/adamjmurray/producer-pal/pkg/live"
)

// lengthTolerance treats requested lengths within this many beats of
// the source length as "same length", avoiding a pointless staging
// round trip for float noise.
const lengthTolerance = 1e-9

// duplicateClip duplicates a clip into a session slot or onto the
// arrangement timeline.
func (e *Engine) duplicateClip(ctx context.Context, src live.Object, req domain.DuplicateRequest) ([]domain.Duplicated, error) {
	if req.HasSessionTarget() {
		return e.duplicateClipToSession(src, req)
	}
	return e.duplicateClipToArrangement(ctx, src, req)
}

// duplicateClipToSession copies a session clip into one explicit slot
// using the host's slot-to-slot primitive.
func (e *Engine) duplicateClipToSession(src live.Object, req domain.DuplicateRequest) ([]domain.Duplicated, error) {
	isArrangement, err := live.GetBool(src, "is_arrangement_clip")
	if err != nil {
		return nil, fmt.Errorf("read source clip: %w", err)
	}
	if isArrangement {
		return nil, fmt.Errorf("cannot duplicate an arrangement clip to a session slot")
	}
	if req.CountOrDefault() > 1 {
		e.logger.Warn("count is ignored for clip duplication; list destinations instead", "count", req.Count)
	}

	srcPath, err := pathOf(src)
	if err != nil {
		return nil, err
	}
	srcSlotPath, err := srcPath.Parent()
	if err != nil {
		return nil, fmt.Errorf("source clip has no slot: %w", err)
	}
	srcSlot := e.client.Object(srcSlotPath.String())

	trackIdx, sceneIdx := *req.ToTrackIndex, *req.ToSceneIndex
	targetPath := fmt.Sprintf("live_set tracks %d clip_slots %d", trackIdx, sceneIdx)
	target := e.client.Object(targetPath)
	if !target.Exists() {
		return nil, fmt.Errorf("no clip slot at track %d, scene %d", trackIdx, sceneIdx)
	}

	newID, err := srcSlot.Call("duplicate_clip_to", target.ID())
	if err != nil {
		return nil, fmt.Errorf("duplicate clip to slot: %w", err)
	}
	newClip := e.client.ObjectByID(fmt.Sprint(newID))
	if req.Name != "" {
		if err := newClip.Set("name", req.Name); err != nil {
			return nil, fmt.Errorf("rename clip copy: %w", err)
		}
	}
	name, _ := live.GetString(newClip, "name")
	length, _ := live.GetFloat(newClip, "length")
	ti, si := trackIdx, sceneIdx
	return []domain.Duplicated{{
		Type:       domain.TypeClip,
		ID:         newClip.ID(),
		Name:       name,
		TrackIndex: &ti,
		SceneIndex: &si,
		Clips: []domain.ClipRef{{
			ID:         newClip.ID(),
			Name:       name,
			TrackIndex: &ti,
			SceneIndex: &si,
			Length:     &length,
		}},
	}}, nil
}

// duplicateClipToArrangement places one copy per listed destination.
// The number of results is driven by the destinations, not by count.
func (e *Engine) duplicateClipToArrangement(ctx context.Context, src live.Object, req domain.DuplicateRequest) ([]domain.Duplicated, error) {
	songSig, err := e.songSignature()
	if err != nil {
		return nil, err
	}
	positions, err := e.resolveArrangementTarget(req, songSig)
	if err != nil {
		return nil, err
	}
	if req.CountOrDefault() > 1 && len(positions) == 1 {
		e.logger.Warn("count is ignored for clip duplication; list comma-separated positions instead", "count", req.Count)
	}

	srcPath, err := pathOf(src)
	if err != nil {
		return nil, err
	}
	trackPath, err := srcPath.TrackPath()
	if err != nil {
		return nil, fmt.Errorf("source clip is not on a regular track: %w", err)
	}
	track := e.client.Object(trackPath.String())
	trackIdx, _ := trackPath.TrackIndex()

	out := make([]domain.Duplicated, 0, len(positions))
	for i, pos := range positions {
		ref, err := e.placeClipInArrangement(ctx, track, src, pos, req.ArrangementLength)
		if err != nil {
			return nil, err
		}
		if req.Name != "" {
			newClip := e.client.ObjectByID(ref.ID)
			if err := newClip.Set("name", copyName(req.Name, i)); err != nil {
				return nil, fmt.Errorf("rename clip copy: %w", err)
			}
			ref.Name = copyName(req.Name, i)
		}
		ti := trackIdx
		ref.TrackIndex = &ti
		out = append(out, domain.Duplicated{
			Type:       domain.TypeClip,
			ID:         ref.ID,
			Name:       ref.Name,
			TrackIndex: &ti,
			Clips:      []domain.ClipRef{ref},
		})
	}
	return out, nil
}

// readClipSpec snapshots the source clip. The source is never mutated.
func (e *Engine) readClipSpec(clip live.Object) (domain.ClipSpec, error) {
	var spec domain.ClipSpec
	var err error
	spec.ID = clip.ID()
	if spec.Name, err = live.GetString(clip, "name"); err != nil {
		return spec, fmt.Errorf("read clip: %w", err)
	}
	if spec.Length, err = live.GetFloat(clip, "length"); err != nil {
		return spec, fmt.Errorf("read clip: %w", err)
	}
	if spec.Looping, err = live.GetBool(clip, "looping"); err != nil {
		return spec, fmt.Errorf("read clip: %w", err)
	}
	if spec.LoopStart, err = live.GetFloat(clip, "loop_start"); err != nil {
		return spec, fmt.Errorf("read clip: %w", err)
	}
	if spec.LoopEnd, err = live.GetFloat(clip, "loop_end"); err != nil {
		return spec, fmt.Errorf("read clip: %w", err)
	}
	if spec.StartMarker, err = live.GetFloat(clip, "start_marker"); err != nil {
		return spec, fmt.Errorf("read clip: %w", err)
	}
	if spec.EndMarker, err = live.GetFloat(clip, "end_marker"); err != nil {
		return spec, fmt.Errorf("read clip: %w", err)
	}
	if spec.Signature.Numerator, err = live.GetInt(clip, "signature_numerator"); err != nil {
		return spec, fmt.Errorf("read clip: %w", err)
	}
	if spec.Signature.Denominator, err = live.GetInt(clip, "signature_denominator"); err != nil {
		return spec, fmt.Errorf("read clip: %w", err)
	}
	if spec.IsMIDI, err = live.GetBool(clip, "is_midi_clip"); err != nil {
		return spec, fmt.Errorf("read clip: %w", err)
	}
	if spec.IsArrangementClip, err = live.GetBool(clip, "is_arrangement_clip"); err != nil {
		return spec, fmt.Errorf("read clip: %w", err)
	}
	return spec, nil
}

// placeClipInArrangement duplicates one clip to the arrangement at pos.
// The host primitive always carries the source's full length and loop
// settings, so three length cases are handled distinctly: same length
// goes straight to the destination; a shorter request is staged in the
// holding area, truncated there, and then relocated; a longer request
// is placed directly and then handed to the lengthening collaborator.
func (e *Engine) placeClipInArrangement(ctx context.Context, track, clip live.Object, pos float64, lengthStr string) (domain.ClipRef, error) {
	spec, err := e.readClipSpec(clip)
	if err != nil {
		return domain.ClipRef{}, err
	}

	want := spec.Length
	if lengthStr != "" {
		// Durations are parsed against the clip's own meter, not the
		// song's: the clip may be authored in a different signature.
		want, err = ParseDuration(lengthStr, spec.Signature)
		if err != nil {
			return domain.ClipRef{}, err
		}
	}

	var newID string
	switch {
	case math.Abs(want-spec.Length) <= lengthTolerance:
		newID, err = e.placeDirect(track, clip.ID(), pos)
	case want < spec.Length:
		newID, err = e.placeTruncated(track, clip.ID(), spec, pos, want)
	default:
		newID, err = e.placeDirect(track, clip.ID(), pos)
		if err == nil {
			err = e.lengthen(ctx, newID, want)
		}
	}
	if err != nil {
		return domain.ClipRef{}, err
	}

	newClip := e.client.ObjectByID(newID)
	name, _ := live.GetString(newClip, "name")
	length, _ := live.GetFloat(newClip, "length")
	p := pos
	return domain.ClipRef{ID: newID, Name: name, Start: &p, Length: &length}, nil
}

func (e *Engine) placeDirect(track live.Object, clipID string, pos float64) (string, error) {
	newID, err := track.Call("duplicate_clip_to_arrangement", clipID, pos)
	if err != nil {
		return "", fmt.Errorf("duplicate clip to arrangement: %w", err)
	}
	return fmt.Sprint(newID), nil
}

// placeTruncated stages a copy in the holding area, shortens it there,
// and relocates the shortened copy to the destination. Staging exists
// so a wrong-length clip is never visible at the destination and the
// truncation edit cannot clobber neighboring arrangement content. The
// holding clip is released on every exit path.
func (e *Engine) placeTruncated(track live.Object, clipID string, spec domain.ClipSpec, pos, want float64) (newID string, err error) {
	holdingPos, err := e.holdingStart()
	if err != nil {
		return "", err
	}

	stagedID, err := e.placeDirect(track, clipID, holdingPos)
	if err != nil {
		return "", err
	}
	defer func() {
		staged := e.client.ObjectByID(stagedID)
		if !staged.Exists() {
			return
		}
		if _, delErr := track.Call("delete_clip", stagedID); delErr != nil {
			e.logger.Error("failed to release holding clip", "err", delErr, "clip", stagedID)
			if err == nil {
				err = fmt.Errorf("release holding clip: %w", delErr)
			}
		}
	}()

	staged := e.client.ObjectByID(stagedID)
	if spec.Looping {
		if err := staged.Set("loop_end", spec.LoopStart+want); err != nil {
			return "", fmt.Errorf("truncate holding clip: %w", err)
		}
	}
	if err := staged.Set("end_marker", spec.StartMarker+want); err != nil {
		return "", fmt.Errorf("truncate holding clip: %w", err)
	}

	relocatedID, err := e.placeDirect(track, stagedID, pos)
	if err != nil {
		return "", err
	}
	return relocatedID, nil
}

// holdingStart returns an arrangement position safely past all content.
func (e *Engine) holdingStart() (float64, error) {
	song := e.client.Object("live_set")
	last, err := live.GetFloat(song, "last_event_time")
	if err != nil {
		return 0, fmt.Errorf("locate holding area: %w", err)
	}
	return last + e.holdingGap, nil
}

func (e *Engine) lengthen(ctx context.Context, clipID string, want float64) error {
	if e.lengthener == nil {
		e.logger.Warn("no clip lengthener configured; leaving clip at source length", "clip", clipID)
		return nil
	}
	if err := e.lengthener.Lengthen(ctx, clipID, want); err != nil {
		return fmt.Errorf("lengthen clip %s: %w", clipID, err)
	}
	return nil
}
