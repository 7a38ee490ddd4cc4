package duplicate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adamjmurray/producer-pal/pkg/domain"
)

// The two notations below are deliberately parsed by two separate
// functions: positions ("bar|beat") are read against the song's meter,
// while durations ("bars:beats") are read against the meter of the clip
// being placed, which may differ from the song's. Collapsing them into
// one parser has caused regressions before; keep them apart.

// ParsePosition converts a 1-based "bar|beat" position into beats from
// the arrangement start, using the given (song) meter. Quarter-note
// beats: "5|1" in 4/4 is 16.0.
func ParsePosition(s string, sig domain.TimeSignature) (float64, error) {
	bar, beat, err := splitNotation(s, "|")
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: %w", s, err)
	}
	if bar < 1 {
		return 0, fmt.Errorf("invalid position %q: bar numbers are 1-based", s)
	}
	if beat < 1 || beat >= float64(sig.Numerator)+1 {
		return 0, fmt.Errorf("invalid position %q: beat must be in [1, %d]", s, sig.Numerator)
	}
	return (bar-1)*sig.BeatsPerBar() + (beat-1)*sig.BeatValue(), nil
}

// ParsePositions parses a comma-separated list of positions.
func ParsePositions(s string, sig domain.TimeSignature) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		pos, err := ParsePosition(strings.TrimSpace(p), sig)
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, nil
}

// ParseDuration converts a "bars:beats" duration into beats, using the
// given (clip) meter. "1:0" is 3.0 beats for a 6/8 clip and 4.0 for a
// 2/2 clip. Non-positive durations are rejected.
func ParseDuration(s string, sig domain.TimeSignature) (float64, error) {
	bars, beats, err := splitNotation(s, ":")
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if bars < 0 || beats < 0 {
		return 0, fmt.Errorf("invalid duration %q: negative component", s)
	}
	total := bars*sig.BeatsPerBar() + beats*sig.BeatValue()
	if total <= 0 {
		return 0, fmt.Errorf("invalid duration %q: must be positive", s)
	}
	return total, nil
}

func splitNotation(s, sep string) (float64, float64, error) {
	parts := strings.Split(strings.TrimSpace(s), sep)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want two %q-separated numbers", sep)
	}
	first, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad number %q", parts[0])
	}
	second, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad number %q", parts[1])
	}
	return first, second, nil
}
