package domain

// TimeSignature is a musical meter. Beats throughout the engine are
// quarter-note beats, so a 6/8 bar spans 3.0 beats and a 2/2 bar 4.0.
type TimeSignature struct {
	Numerator   int `json:"numerator" yaml:"numerator"`
	Denominator int `json:"denominator" yaml:"denominator"`
}

// BeatValue returns the length of one counted beat in quarter notes.
func (ts TimeSignature) BeatValue() float64 {
	return 4.0 / float64(ts.Denominator)
}

// BeatsPerBar returns the length of one bar in quarter notes.
func (ts TimeSignature) BeatsPerBar() float64 {
	return float64(ts.Numerator) * ts.BeatValue()
}

// ClipSpec is a read-only snapshot of a source clip taken at the start
// of a duplication. The source clip itself is never mutated.
type ClipSpec struct {
	ID                string
	Name              string
	Color             int
	Length            float64
	Looping           bool
	LoopStart         float64
	LoopEnd           float64
	StartMarker       float64
	EndMarker         float64
	Signature         TimeSignature
	IsMIDI            bool
	IsArrangementClip bool
}

// Locator is a named cue point on the arrangement timeline. The ID is
// synthetic ("locator-<n>", ordered by time) and assigned fresh on
// every read; locators are never cached across requests.
type Locator struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Time float64 `json:"time"`
}
