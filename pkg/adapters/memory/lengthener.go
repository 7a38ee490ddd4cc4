package memory

import (
	"context"
	"fmt"

	"github.com/adamjmurray/producer-pal/pkg/ports"
)

// Lengthener returns a naive ClipLengthener over this set: looping
// clips have their loop span extended to the target length, non-looping
// clips expose more underlying content by moving the end marker. Real
// hosts tile loop repetitions instead; this is just enough for the
// demo fixtures and end-to-end tests.
func (s *Set) Lengthener() ports.ClipLengthener {
	return ports.ClipLengthenerFunc(func(_ context.Context, clipID string, length float64) error {
		c, ok := s.objects[clipID].(*Clip)
		if !ok {
			return fmt.Errorf("lengthen: no clip %s", clipID)
		}
		if length <= c.Length() {
			return nil
		}
		if c.Looping {
			c.LoopEnd = c.LoopStart + length
		} else {
			c.EndMarker = c.StartMarker + length
		}
		return nil
	})
}
