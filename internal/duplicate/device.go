package duplicate

import (
	"context"
	"fmt"
	"strings"

	"github.com/adamjmurray/producer-pal/pkg/domain"
	"github.com/adamjmurray/producer-pal/pkg/live"
)

// duplicateDevice duplicates a single device. The host has no primitive
// for this, so the containing track is duplicated whole, the copy of
// the device is located at the same relative path inside the temporary
// track, moved to its destination, and the temporary track is deleted.
// The temporary track is released on every exit path, including when
// the copy cannot be found.
func (e *Engine) duplicateDevice(ctx context.Context, src live.Object, req domain.DuplicateRequest) ([]domain.Duplicated, error) {
	var warnings []string
	if req.CountOrDefault() > 1 {
		warning := fmt.Sprintf("count %d ignored: devices duplicate one copy at a time", req.Count)
		e.logger.Warn("device duplication ignores count", "count", req.Count)
		warnings = append(warnings, warning)
	}

	srcPath, err := pathOf(src)
	if err != nil {
		return nil, err
	}
	if srcPath.OnReturnOrMaster() {
		return nil, fmt.Errorf("cannot duplicate a device on a return or master track")
	}
	trackIdx, ok := srcPath.TrackIndex()
	if !ok {
		return nil, fmt.Errorf("device path %s has no containing track", srcPath)
	}
	suffix, err := srcPath.DeviceSuffix()
	if err != nil {
		return nil, err
	}

	// Destination: an explicit path, or the slot right after the
	// original device. Paths are computed in pre-duplication indices and
	// shifted below to account for the temporary track.
	var destParent live.Path
	var destIdx int
	if req.ToPath != "" {
		destPath, err := live.ParsePath(req.ToPath)
		if err != nil {
			return nil, domain.Validationf("invalid toPath: %v", err)
		}
		if destPath.OnReturnOrMaster() {
			return nil, fmt.Errorf("cannot move a device to a return or master track")
		}
		if destParent, err = destPath.Parent(); err != nil {
			return nil, domain.Validationf("toPath must address a device position: %v", err)
		}
		if destIdx, err = destPath.LastIndex(); err != nil {
			return nil, domain.Validationf("toPath must end in a device index: %v", err)
		}
	} else {
		if destParent, err = srcPath.Parent(); err != nil {
			return nil, err
		}
		if destIdx, err = srcPath.LastIndex(); err != nil {
			return nil, err
		}
		destIdx++
	}

	copiedID, err := e.withTemporaryTrack(trackIdx, func(tempIdx int) (string, error) {
		tempTrackPath := live.MustParsePath("live_set").Child("tracks", tempIdx)
		copiedPath := tempTrackPath.String() + " " + strings.Join(suffix, " ")
		copied := e.client.Object(copiedPath)
		if !copied.Exists() {
			return "", fmt.Errorf("device not found at %s in duplicated track", copiedPath)
		}

		// While the temporary track exists, destination track indices
		// at or after it are off by one.
		shiftedParent := destParent.ShiftTrack(tempIdx, 1)
		song := e.client.Object("live_set")
		if _, err := song.Call("move_device", copied.ID(), shiftedParent.String(), destIdx); err != nil {
			return "", fmt.Errorf("move device: %w", err)
		}
		return copied.ID(), nil
	})
	if err != nil {
		return nil, err
	}

	copied := e.client.ObjectByID(copiedID)
	if req.Name != "" {
		if err := copied.Set("name", req.Name); err != nil {
			return nil, fmt.Errorf("rename device copy: %w", err)
		}
	}
	name, _ := live.GetString(copied, "name")
	return []domain.Duplicated{{
		Type:     domain.TypeDevice,
		ID:       copiedID,
		Name:     name,
		Warnings: warnings,
	}}, nil
}

// withTemporaryTrack duplicates the track at srcIdx, runs fn with the
// temporary copy's index, and deletes the temporary track regardless of
// outcome. This is the scoped-acquisition shape of the manual
// compensating transaction: acquire, register cleanup, operate.
func (e *Engine) withTemporaryTrack(srcIdx int, fn func(tempIdx int) (string, error)) (result string, err error) {
	song := e.client.Object("live_set")
	tempID, err := song.Call("duplicate_track", srcIdx)
	if err != nil {
		return "", fmt.Errorf("duplicate containing track %d: %w", srcIdx, err)
	}
	temp := e.client.ObjectByID(fmt.Sprint(tempID))

	defer func() {
		p, perr := pathOf(temp)
		if perr != nil {
			// Already gone; nothing to release.
			return
		}
		idx, ok := p.TrackIndex()
		if !ok {
			return
		}
		if _, delErr := song.Call("delete_track", idx); delErr != nil {
			e.logger.Error("failed to delete temporary track", "err", delErr, "index", idx)
			if err == nil {
				err = fmt.Errorf("delete temporary track: %w", delErr)
			}
		}
	}()

	return fn(srcIdx + 1)
}
