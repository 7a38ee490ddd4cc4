package duplicate_test

import (
	"testing"

	"github.com/adamjmurray/producer-pal/internal/duplicate"
	"github.com/adamjmurray/producer-pal/pkg/domain"
)

func TestParsePosition(t *testing.T) {
	fourFour := domain.TimeSignature{Numerator: 4, Denominator: 4}
	sixEight := domain.TimeSignature{Numerator: 6, Denominator: 8}

	cases := []struct {
		input string
		sig   domain.TimeSignature
		want  float64
	}{
		{"1|1", fourFour, 0},
		{"5|1", fourFour, 16},
		{"2|3", fourFour, 6},
		{"2|1.5", fourFour, 4.5},
		// 6/8: a bar is 3 quarter-note beats, a counted beat is 0.5.
		{"3|1", sixEight, 6},
		{"1|4", sixEight, 1.5},
	}
	for _, tc := range cases {
		got, err := duplicate.ParsePosition(tc.input, tc.sig)
		if err != nil {
			t.Errorf("ParsePosition(%q, %d/%d) returned error: %v", tc.input, tc.sig.Numerator, tc.sig.Denominator, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePosition(%q, %d/%d) = %g, want %g", tc.input, tc.sig.Numerator, tc.sig.Denominator, got, tc.want)
		}
	}
}

func TestParsePosition_Invalid(t *testing.T) {
	sig := domain.TimeSignature{Numerator: 4, Denominator: 4}
	for _, input := range []string{"", "5", "0|1", "1|0", "1|5", "a|b", "1|1|1"} {
		if _, err := duplicate.ParsePosition(input, sig); err == nil {
			t.Errorf("ParsePosition(%q) should fail", input)
		}
	}
}

func TestParseDuration_UsesClipMeter(t *testing.T) {
	// The same "1:0" duration means different beat counts depending on
	// the clip's own meter, regardless of the song meter.
	cases := []struct {
		input string
		sig   domain.TimeSignature
		want  float64
	}{
		{"1:0", domain.TimeSignature{Numerator: 6, Denominator: 8}, 3},
		{"1:0", domain.TimeSignature{Numerator: 2, Denominator: 2}, 4},
		{"1:0", domain.TimeSignature{Numerator: 4, Denominator: 4}, 4},
		{"1:2", domain.TimeSignature{Numerator: 4, Denominator: 4}, 6},
		{"0:3", domain.TimeSignature{Numerator: 4, Denominator: 4}, 3},
		{"0:1.5", domain.TimeSignature{Numerator: 4, Denominator: 4}, 1.5},
		{"2:1", domain.TimeSignature{Numerator: 6, Denominator: 8}, 6.5},
	}
	for _, tc := range cases {
		got, err := duplicate.ParseDuration(tc.input, tc.sig)
		if err != nil {
			t.Errorf("ParseDuration(%q, %d/%d) returned error: %v", tc.input, tc.sig.Numerator, tc.sig.Denominator, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDuration(%q, %d/%d) = %g, want %g", tc.input, tc.sig.Numerator, tc.sig.Denominator, got, tc.want)
		}
	}
}

func TestParseDuration_RejectsNonPositive(t *testing.T) {
	sig := domain.TimeSignature{Numerator: 4, Denominator: 4}
	for _, input := range []string{"0:0", "-1:0", "0:-2", "", "1", "x:y"} {
		if _, err := duplicate.ParseDuration(input, sig); err == nil {
			t.Errorf("ParseDuration(%q) should fail", input)
		}
	}
}

func TestParsePositions_CommaSeparated(t *testing.T) {
	sig := domain.TimeSignature{Numerator: 4, Denominator: 4}
	got, err := duplicate.ParsePositions("1|1, 5|1,9|1", sig)
	if err != nil {
		t.Fatalf("ParsePositions failed: %v", err)
	}
	want := []float64{0, 16, 32}
	if len(got) != len(want) {
		t.Fatalf("got %d positions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d = %g, want %g", i, got[i], want[i])
		}
	}
}
