package duplicate

import (
	"context"
	"fmt"
	"sort"

	"github.com/adamjmurray/producer-pal/pkg/domain"
	"github.com/adamjmurray/producer-pal/pkg/live"
)

// locator pairs the synthetic id handed to agents with the host id
// needed for deletion.
type locator struct {
	domain.Locator
	hostID string
}

// readLocators reads all cue points fresh from the host, sorts them by
// time, and assigns synthetic sequential ids ("locator-1", ...).
// Locators are never cached across requests.
func (e *Engine) readLocators() ([]locator, error) {
	song := e.client.Object("live_set")
	ids, err := live.GetStrings(song, "cue_points")
	if err != nil {
		return nil, fmt.Errorf("read cue points: %w", err)
	}
	locs := make([]locator, 0, len(ids))
	for _, id := range ids {
		cp := e.client.ObjectByID(id)
		name, err := live.GetString(cp, "name")
		if err != nil {
			return nil, fmt.Errorf("read cue point %s: %w", id, err)
		}
		t, err := live.GetFloat(cp, "time")
		if err != nil {
			return nil, fmt.Errorf("read cue point %s: %w", id, err)
		}
		locs = append(locs, locator{Locator: domain.Locator{Name: name, Time: t}, hostID: id})
	}
	sort.SliceStable(locs, func(i, j int) bool { return locs[i].Time < locs[j].Time })
	for i := range locs {
		locs[i].ID = fmt.Sprintf("locator-%d", i+1)
	}
	return locs, nil
}

// Locators lists the current cue points with their synthetic ids.
func (e *Engine) Locators() ([]domain.Locator, error) {
	locs, err := e.readLocators()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Locator, len(locs))
	for i, l := range locs {
		out[i] = l.Locator
	}
	return out, nil
}

func (e *Engine) locatorByID(id string) (locator, error) {
	locs, err := e.readLocators()
	if err != nil {
		return locator{}, err
	}
	for _, l := range locs {
		if l.ID == id {
			return l, nil
		}
	}
	return locator{}, fmt.Errorf("locator not found: %s", id)
}

// locatorByName resolves a duplication target by exact name match.
// When several locators share the name, the earliest wins and a
// warning is logged; deletion is the only operation that acts on all
// matches.
func (e *Engine) locatorByName(name string) (locator, error) {
	locs, err := e.readLocators()
	if err != nil {
		return locator{}, err
	}
	var found *locator
	matches := 0
	for i := range locs {
		if locs[i].Name == name {
			matches++
			if found == nil {
				found = &locs[i]
			}
		}
	}
	if found == nil {
		return locator{}, fmt.Errorf("no locator found with name %s", name)
	}
	if matches > 1 {
		e.logger.Warn("ambiguous locator name, using earliest match", "name", name, "matches", matches, "time", found.Time)
	}
	return *found, nil
}

// DeleteLocators removes every cue point whose name matches exactly and
// reports how many were removed.
func (e *Engine) DeleteLocators(_ context.Context, name string) (int, error) {
	if name == "" {
		return 0, domain.Validationf("locator name is required")
	}
	locs, err := e.readLocators()
	if err != nil {
		return 0, err
	}
	song := e.client.Object("live_set")
	deleted := 0
	for _, l := range locs {
		if l.Name != name {
			continue
		}
		if _, err := song.Call("delete_cue_point", l.hostID); err != nil {
			return deleted, fmt.Errorf("delete locator %q at %g: %w", l.Name, l.Time, err)
		}
		deleted++
	}
	if deleted == 0 {
		return 0, fmt.Errorf("no locator found with name %s", name)
	}
	e.logger.Info("deleted locators", "name", name, "count", deleted)
	return deleted, nil
}
