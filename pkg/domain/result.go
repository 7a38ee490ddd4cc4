package domain

// ClipRef identifies a clip created as a byproduct of a duplication.
type ClipRef struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	TrackIndex *int     `json:"trackIndex,omitempty"`
	SceneIndex *int     `json:"sceneIndex,omitempty"`
	Start      *float64 `json:"arrangementStart,omitempty"`
	Length     *float64 `json:"length,omitempty"`
}

// Duplicated describes one object created by a duplication operation.
// Exactly one is produced per copy; the dispatcher returns a slice and
// transports collapse a single element to a bare object.
type Duplicated struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	TrackIndex *int      `json:"trackIndex,omitempty"`
	SceneIndex *int      `json:"sceneIndex,omitempty"`
	Clips      []ClipRef `json:"clips,omitempty"`

	// Warnings carries non-fatal diagnostics (skipped routing, ignored
	// count) so remote agents see them, not just the server log.
	Warnings []string `json:"warnings,omitempty"`
}
