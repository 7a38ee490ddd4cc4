package duplicate_test

import (
	"context"
	"strings"
	"testing"

	"github.com/adamjmurray/producer-pal/pkg/adapters/memory"
	"github.com/adamjmurray/producer-pal/pkg/domain"
)

func validationSet() *memory.Set {
	s := memory.NewSet()
	s.AddScene("A")
	s.AddTrack("Drums")
	return s
}

func TestDuplicate_ValidationErrors(t *testing.T) {
	s := validationSet()
	trackID := s.Tracks[0].ID()
	clip := s.AddSessionClip(s.Tracks[0], 0, memory.ClipOptions{Name: "Beat", Length: 4})
	eng := newEngine(s)
	ctx := context.Background()

	cases := []struct {
		name string
		req  domain.DuplicateRequest
		want string
	}{
		{
			name: "missing type",
			req:  domain.DuplicateRequest{ID: trackID},
			want: "type is required",
		},
		{
			name: "unknown type",
			req:  domain.DuplicateRequest{Type: "chair", ID: trackID},
			want: "unknown type",
		},
		{
			name: "missing id",
			req:  domain.DuplicateRequest{Type: "track"},
			want: "id is required",
		},
		{
			name: "bad count",
			req:  domain.DuplicateRequest{Type: "track", ID: trackID, Count: -2},
			want: "count must be at least 1",
		},
		{
			name: "track with arrangement target",
			req:  domain.DuplicateRequest{Type: "track", ID: trackID, ArrangementStart: "5|1"},
			want: "tracks only duplicate into the session",
		},
		{
			name: "clip with two arrangement targets",
			req:  domain.DuplicateRequest{Type: "clip", ID: clip.ID(), ArrangementStart: "5|1", ArrangementLocatorName: "Chorus"},
			want: "mutually exclusive",
		},
		{
			name: "clip locator id and name",
			req:  domain.DuplicateRequest{Type: "clip", ID: clip.ID(), ArrangementLocatorID: "locator-1", ArrangementLocatorName: "Chorus"},
			want: "mutually exclusive",
		},
		{
			name: "clip with no destination",
			req:  domain.DuplicateRequest{Type: "clip", ID: clip.ID()},
			want: "requires a session slot target or an arrangement target",
		},
		{
			name: "clip with session and arrangement targets",
			req:  domain.DuplicateRequest{Type: "clip", ID: clip.ID(), ToTrackIndex: intPtr(0), ToSceneIndex: intPtr(0), ArrangementStart: "5|1"},
			want: "mutually exclusive",
		},
		{
			name: "clip with half a session target",
			req:  domain.DuplicateRequest{Type: "clip", ID: clip.ID(), ToTrackIndex: intPtr(0)},
			want: "requires both toTrackIndex and toSceneIndex",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := len(s.Calls())
			_, err := eng.Duplicate(ctx, tc.req)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.HasPrefix(err.Error(), "duplicate failed: ") {
				t.Errorf("validation error not prefixed: %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
			if !domain.IsValidation(err) {
				t.Errorf("error is not a ValidationError: %v", err)
			}
			// Validation rejects before any structural host call.
			if got := len(s.Calls()); got != before {
				t.Errorf("validation issued %d host calls", got-before)
			}
		})
	}
}

func TestDuplicate_UnknownSourceID(t *testing.T) {
	eng := newEngine(validationSet())

	_, err := eng.Duplicate(context.Background(), domain.DuplicateRequest{Type: "track", ID: "id_999"})
	if err == nil {
		t.Fatal("expected an error for unknown source id")
	}
	// Resolution errors are not validation errors and carry no prefix.
	if strings.HasPrefix(err.Error(), "duplicate failed: ") {
		t.Errorf("resolution error should not carry the validation prefix: %v", err)
	}
	if !strings.Contains(err.Error(), "id_999") {
		t.Errorf("error does not name the missing id: %v", err)
	}
}
