package domain

// Object type constants accepted by DuplicateRequest.Type.
const (
	TypeTrack  = "track"
	TypeScene  = "scene"
	TypeClip   = "clip"
	TypeDevice = "device"
)

// Destination constants for clip and scene duplication.
const (
	DestinationSession     = "session"
	DestinationArrangement = "arrangement"
)

// DuplicateRequest describes a single duplication operation.
// It is the wire format shared by the MCP and HTTP adapters; fields use
// "mapstructure" tags so tool arguments decode directly into it.
type DuplicateRequest struct {
	Type  string `json:"type" mapstructure:"type"`
	ID    string `json:"id" mapstructure:"id"`
	Count int    `json:"count,omitempty" mapstructure:"count"`
	Name  string `json:"name,omitempty" mapstructure:"name"`

	// Track options.
	WithoutClips   bool `json:"withoutClips,omitempty" mapstructure:"withoutClips"`
	WithoutDevices bool `json:"withoutDevices,omitempty" mapstructure:"withoutDevices"`
	RouteToSource  bool `json:"routeToSource,omitempty" mapstructure:"routeToSource"`

	// Clip and scene options.
	Destination  string `json:"destination,omitempty" mapstructure:"destination"`
	ToTrackIndex *int   `json:"toTrackIndex,omitempty" mapstructure:"toTrackIndex"`
	ToSceneIndex *int   `json:"toSceneIndex,omitempty" mapstructure:"toSceneIndex"`

	// ArrangementStart holds one or more "bar|beat" positions separated
	// by commas. Each listed position receives its own copy.
	ArrangementStart       string `json:"arrangementStart,omitempty" mapstructure:"arrangementStart"`
	ArrangementLocatorID   string `json:"arrangementLocatorId,omitempty" mapstructure:"arrangementLocatorId"`
	ArrangementLocatorName string `json:"arrangementLocatorName,omitempty" mapstructure:"arrangementLocatorName"`
	ArrangementLength      string `json:"arrangementLength,omitempty" mapstructure:"arrangementLength"`

	// Device options.
	ToPath string `json:"toPath,omitempty" mapstructure:"toPath"`
}

// CountOrDefault returns the requested copy count, defaulting to 1.
func (r DuplicateRequest) CountOrDefault() int {
	if r.Count < 1 {
		return 1
	}
	return r.Count
}

// HasSessionTarget reports whether an explicit session slot was given.
func (r DuplicateRequest) HasSessionTarget() bool {
	return r.ToTrackIndex != nil || r.ToSceneIndex != nil
}
