package duplicate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/adamjmurray/producer-pal/pkg/domain"
	"github.com/adamjmurray/producer-pal/pkg/live"
	"github.com/adamjmurray/producer-pal/pkg/ports"
)

// DefaultControlDeviceName is the display name of the device hosting
// this automation layer inside the session. A duplicated track must
// never carry a second instance of it.
const DefaultControlDeviceName = "Producer Pal"

// DefaultHoldingGap is how far past the last arrangement event the
// holding area starts, in beats.
const DefaultHoldingGap = 64.0

// Engine orchestrates duplication against the host object model. All
// host access is synchronous and sequential; callers are expected to
// serialize requests against the same session.
type Engine struct {
	client     live.Client
	lengthener ports.ClipLengthener
	logger     *slog.Logger
	hooks      domain.LifecycleHooks

	holdingGap        float64
	controlDeviceName string
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithLengthener sets the collaborator used to extend clips placed at a
// length greater than their source.
func WithLengthener(l ports.ClipLengthener) Option {
	return func(e *Engine) { e.lengthener = l }
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) { e.hooks = hooks }
}

// WithHoldingGap sets the gap, in beats, between the last arrangement
// event and the holding area used for truncation staging.
func WithHoldingGap(beats float64) Option {
	return func(e *Engine) {
		if beats > 0 {
			e.holdingGap = beats
		}
	}
}

// WithControlDeviceName overrides the display name used to recognize
// this layer's own hosting device on duplicated tracks.
func WithControlDeviceName(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.controlDeviceName = name
		}
	}
}

// New creates a duplication engine over the given host client.
func New(client live.Client, opts ...Option) *Engine {
	e := &Engine{
		client:            client,
		holdingGap:        DefaultHoldingGap,
		controlDeviceName: DefaultControlDeviceName,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// Duplicate validates the request and fans out to the per-type
// duplicator. It returns one Duplicated per created copy; transports
// collapse a single element to a bare object.
func (e *Engine) Duplicate(ctx context.Context, req domain.DuplicateRequest) (results []domain.Duplicated, err error) {
	started := time.Now()
	if e.hooks.OnDuplicateStart != nil {
		e.hooks.OnDuplicateStart(ctx, &domain.DuplicateEvent{Type: req.Type, SourceID: req.ID, Count: req.CountOrDefault()})
	}
	defer func() {
		if e.hooks.OnDuplicateEnd != nil {
			e.hooks.OnDuplicateEnd(ctx, &domain.DuplicateEvent{
				Type:     req.Type,
				SourceID: req.ID,
				Count:    req.CountOrDefault(),
				Duration: time.Since(started),
				Err:      err,
			})
		}
	}()

	if err = validateRequest(req); err != nil {
		return nil, err
	}

	src := e.client.ObjectByID(req.ID)
	if !src.Exists() {
		return nil, fmt.Errorf("%w: %s", domain.ErrObjectNotFound, req.ID)
	}

	e.logger.Debug("duplicate", "type", req.Type, "id", req.ID, "count", req.CountOrDefault())

	switch req.Type {
	case domain.TypeTrack:
		return e.duplicateTrack(ctx, src, req)
	case domain.TypeScene:
		return e.duplicateScene(ctx, src, req)
	case domain.TypeClip:
		return e.duplicateClip(ctx, src, req)
	case domain.TypeDevice:
		return e.duplicateDevice(ctx, src, req)
	}
	// Unreachable: validateRequest rejects unknown types.
	return nil, domain.Validationf("unknown type %q", req.Type)
}

// validateRequest applies the parameter matrix before any host call.
func validateRequest(req domain.DuplicateRequest) error {
	switch req.Type {
	case "":
		return domain.Validationf("type is required")
	case domain.TypeTrack, domain.TypeScene, domain.TypeClip, domain.TypeDevice:
	default:
		return domain.Validationf("unknown type %q (want track, scene, clip, or device)", req.Type)
	}
	if req.ID == "" {
		return domain.Validationf("id is required")
	}
	if req.Count != 0 && req.Count < 1 {
		return domain.Validationf("count must be at least 1, got %d", req.Count)
	}

	arrangementTargets := 0
	for _, set := range []bool{req.ArrangementStart != "", req.ArrangementLocatorID != "", req.ArrangementLocatorName != ""} {
		if set {
			arrangementTargets++
		}
	}

	switch req.Type {
	case domain.TypeTrack:
		if req.Destination == domain.DestinationArrangement || arrangementTargets > 0 || req.ArrangementLength != "" {
			return domain.Validationf("tracks only duplicate into the session; arrangement parameters are not supported")
		}
	case domain.TypeScene:
		if req.Destination == domain.DestinationArrangement && arrangementTargets == 0 {
			return domain.Validationf("scene duplication to the arrangement requires arrangementStart, arrangementLocatorId, or arrangementLocatorName")
		}
		if arrangementTargets > 1 {
			return domain.Validationf("arrangementStart, arrangementLocatorId, and arrangementLocatorName are mutually exclusive")
		}
		if req.HasSessionTarget() {
			return domain.Validationf("scenes do not take a session slot target")
		}
	case domain.TypeClip:
		if arrangementTargets > 1 {
			return domain.Validationf("arrangementStart, arrangementLocatorId, and arrangementLocatorName are mutually exclusive")
		}
		hasSession := req.HasSessionTarget()
		if hasSession && arrangementTargets > 0 {
			return domain.Validationf("session slot target and arrangement target are mutually exclusive")
		}
		if hasSession && (req.ToTrackIndex == nil || req.ToSceneIndex == nil) {
			return domain.Validationf("session duplication requires both toTrackIndex and toSceneIndex")
		}
		if !hasSession && arrangementTargets == 0 {
			return domain.Validationf("clip duplication requires a session slot target or an arrangement target")
		}
		if req.Destination == domain.DestinationSession && arrangementTargets > 0 {
			return domain.Validationf("destination session conflicts with arrangement parameters")
		}
		if req.Destination == domain.DestinationArrangement && hasSession {
			return domain.Validationf("destination arrangement conflicts with a session slot target")
		}
	case domain.TypeDevice:
		if arrangementTargets > 0 || req.HasSessionTarget() {
			return domain.Validationf("devices only take an optional toPath destination")
		}
	}
	return nil
}

// copyName implements the naming invariant: the base name verbatim for
// the first copy, then "Name 2", "Name 3", and so on.
func copyName(base string, i int) string {
	if i == 0 {
		return base
	}
	return fmt.Sprintf("%s %d", base, i+1)
}

// songSignature reads the song's current meter.
func (e *Engine) songSignature() (domain.TimeSignature, error) {
	song := e.client.Object("live_set")
	num, err := live.GetInt(song, "signature_numerator")
	if err != nil {
		return domain.TimeSignature{}, fmt.Errorf("read song signature: %w", err)
	}
	denom, err := live.GetInt(song, "signature_denominator")
	if err != nil {
		return domain.TimeSignature{}, fmt.Errorf("read song signature: %w", err)
	}
	return domain.TimeSignature{Numerator: num, Denominator: denom}, nil
}

// resolveArrangementTarget turns the exactly-one arrangement target of
// the request into one or more beat positions. Explicit positions may
// be comma-separated; locator targets always yield a single position.
func (e *Engine) resolveArrangementTarget(req domain.DuplicateRequest, songSig domain.TimeSignature) ([]float64, error) {
	switch {
	case req.ArrangementStart != "":
		return ParsePositions(req.ArrangementStart, songSig)
	case req.ArrangementLocatorID != "":
		loc, err := e.locatorByID(req.ArrangementLocatorID)
		if err != nil {
			return nil, err
		}
		return []float64{loc.Time}, nil
	case req.ArrangementLocatorName != "":
		loc, err := e.locatorByName(req.ArrangementLocatorName)
		if err != nil {
			return nil, err
		}
		return []float64{loc.Time}, nil
	}
	return nil, domain.Validationf("an arrangement target is required")
}

// pathOf parses the current path of an object.
func pathOf(obj live.Object) (live.Path, error) {
	p := obj.Path()
	if p == "" {
		return live.Path{}, fmt.Errorf("object %s has no path", obj.ID())
	}
	return live.ParsePath(p)
}
