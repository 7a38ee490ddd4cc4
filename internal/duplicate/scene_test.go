package duplicate_test

import (
	"context"
	"testing"

	"github.com/adamjmurray/producer-pal/pkg/adapters/memory"
	"github.com/adamjmurray/producer-pal/pkg/domain"
)

func sceneSet() *memory.Set {
	s := memory.NewSet()
	s.AddScene("Verse")
	s.AddScene("Chorus")
	drums := s.AddTrack("Drums")
	keys := s.AddTrack("Keys")
	s.AddTrack("Empty")
	s.AddSessionClip(drums, 0, memory.ClipOptions{Name: "Beat", Length: 4, Looping: true})
	s.AddSessionClip(keys, 0, memory.ClipOptions{Name: "Pad", Length: 8, Looping: true})
	s.ResetCalls()
	return s
}

func TestDuplicateScene_Session(t *testing.T) {
	s := sceneSet()
	eng := newEngine(s)

	results, err := eng.Duplicate(context.Background(), domain.DuplicateRequest{
		Type: "scene",
		ID:   s.Scenes[0].ID(),
	})
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.SceneIndex == nil || *r.SceneIndex != 1 {
		t.Fatalf("expected copy at scene index 1, got %v", r.SceneIndex)
	}
	if len(s.Scenes) != 3 {
		t.Fatalf("expected 3 scenes, got %d", len(s.Scenes))
	}
	// The whole row came along: two clips, the empty track contributes
	// nothing.
	if len(r.Clips) != 2 {
		t.Fatalf("expected 2 byproduct clips, got %d", len(r.Clips))
	}
}

func TestDuplicateScene_SessionWithoutClips(t *testing.T) {
	s := sceneSet()
	eng := newEngine(s)

	results, err := eng.Duplicate(context.Background(), domain.DuplicateRequest{
		Type:         "scene",
		ID:           s.Scenes[0].ID(),
		WithoutClips: true,
	})
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if len(results[0].Clips) != 0 {
		t.Errorf("expected an empty row, got %d clips", len(results[0].Clips))
	}
	for _, tr := range s.Tracks {
		if tr.ClipSlots[1].Clip != nil {
			t.Errorf("track %q still has a clip in the duplicated row", tr.Name)
		}
	}
	// Source row untouched.
	if s.Tracks[0].ClipSlots[0].Clip == nil {
		t.Error("source row was modified")
	}
}

func TestDuplicateScene_SessionCountNaming(t *testing.T) {
	s := sceneSet()
	eng := newEngine(s)

	results, err := eng.Duplicate(context.Background(), domain.DuplicateRequest{
		Type:  "scene",
		ID:    s.Scenes[0].ID(),
		Count: 2,
		Name:  "Drop",
	})
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "Drop" || results[1].Name != "Drop 2" {
		t.Errorf("names = %q, %q", results[0].Name, results[1].Name)
	}
}

func TestDuplicateScene_Arrangement(t *testing.T) {
	// No host primitive exists for this: each track's clip in the row
	// is placed individually at the resolved position.
	s := sceneSet()
	eng := newEngine(s)

	results, err := eng.Duplicate(context.Background(), domain.DuplicateRequest{
		Type:             "scene",
		ID:               s.Scenes[0].ID(),
		Destination:      "arrangement",
		ArrangementStart: "5|1",
	})
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	r := results[0]
	if len(r.Clips) != 2 {
		t.Fatalf("expected 2 placed clips, got %d", len(r.Clips))
	}
	for _, ref := range r.Clips {
		if ref.Start == nil || *ref.Start != 16 {
			t.Errorf("clip %q placed at %v, want 16", ref.Name, ref.Start)
		}
	}
	if len(s.Tracks[0].ArrangementClips) != 1 || len(s.Tracks[1].ArrangementClips) != 1 {
		t.Error("expected one arrangement clip per non-empty track")
	}
	if len(s.Tracks[2].ArrangementClips) != 0 {
		t.Error("empty track should contribute no clips")
	}
	// No new scene object is created for arrangement placement.
	if len(s.Scenes) != 2 {
		t.Errorf("scene list changed: %d scenes", len(s.Scenes))
	}
}

func TestDuplicateScene_ArrangementCountAdvancesByLongestClip(t *testing.T) {
	// Successive copies advance by the longest clip of the previous
	// copy: the row's longest clip is 8 beats, so copy 2 starts at
	// 16+8=24.
	s := sceneSet()
	eng := newEngine(s)

	results, err := eng.Duplicate(context.Background(), domain.DuplicateRequest{
		Type:             "scene",
		ID:               s.Scenes[0].ID(),
		Destination:      "arrangement",
		ArrangementStart: "5|1",
		Count:            2,
	})
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, ref := range results[1].Clips {
		if ref.Start == nil || *ref.Start != 24 {
			t.Errorf("second copy clip %q placed at %v, want 24", ref.Name, ref.Start)
		}
	}
}

func TestDuplicateScene_ArrangementEmptyRowAdvancesByOneBar(t *testing.T) {
	// An empty scene row contributes no clips; successive copies still
	// advance, by one song bar.
	s := sceneSet()
	eng := newEngine(s)

	results, err := eng.Duplicate(context.Background(), domain.DuplicateRequest{
		Type:             "scene",
		ID:               s.Scenes[1].ID(), // "Chorus" row is empty
		Destination:      "arrangement",
		ArrangementStart: "1|1",
		Count:            2,
	})
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if len(results[0].Clips) != 0 || len(results[1].Clips) != 0 {
		t.Fatal("expected no clips from an empty row")
	}
}

func TestDuplicateScene_ArrangementByLocator(t *testing.T) {
	s := sceneSet()
	s.AddLocator("Intro", 0)
	s.AddLocator("Verse", 16)
	s.AddLocator("Chorus", 32)
	eng := newEngine(s)

	results, err := eng.Duplicate(context.Background(), domain.DuplicateRequest{
		Type:                   "scene",
		ID:                     s.Scenes[0].ID(),
		ArrangementLocatorName: "Chorus",
	})
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	for _, ref := range results[0].Clips {
		if ref.Start == nil || *ref.Start != 32 {
			t.Errorf("clip placed at %v, want 32 (the Chorus locator)", ref.Start)
		}
	}
}
