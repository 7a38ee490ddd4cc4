package live

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is a parsed space-delimited host address, e.g.
// "live_set tracks 2 devices 0 chains 1 devices 3". It exists so that
// the index arithmetic forced by the host's shifting sibling indices
// lives in one place instead of being repeated inline at call sites.
type Path struct {
	tokens []string
}

// ParsePath parses a host path. Empty paths are rejected.
func ParsePath(s string) (Path, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Path{}, fmt.Errorf("empty path")
	}
	for _, f := range fields {
		if f == "" {
			return Path{}, fmt.Errorf("malformed path %q", s)
		}
	}
	return Path{tokens: fields}, nil
}

// MustParsePath is ParsePath for trusted constants.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Path) String() string {
	return strings.Join(p.tokens, " ")
}

// IsZero reports whether the path is unset.
func (p Path) IsZero() bool {
	return len(p.tokens) == 0
}

// Child appends a collection name and sibling index.
func (p Path) Child(name string, index int) Path {
	tokens := append(append([]string(nil), p.tokens...), name, strconv.Itoa(index))
	return Path{tokens: tokens}
}

// indexAfter returns the integer following the first occurrence of
// token, and the position of that integer in the token list.
func (p Path) indexAfter(token string) (value, pos int, ok bool) {
	for i := 0; i < len(p.tokens)-1; i++ {
		if p.tokens[i] != token {
			continue
		}
		n, err := strconv.Atoi(p.tokens[i+1])
		if err != nil {
			return 0, 0, false
		}
		return n, i + 1, true
	}
	return 0, 0, false
}

// TrackIndex returns the index into "live_set tracks", if the path
// addresses (something on) a regular track.
func (p Path) TrackIndex() (int, bool) {
	n, _, ok := p.indexAfter("tracks")
	return n, ok
}

// WithTrackIndex returns a copy of the path readdressed to another
// regular track, leaving everything below the track untouched.
func (p Path) WithTrackIndex(index int) (Path, error) {
	_, pos, ok := p.indexAfter("tracks")
	if !ok {
		return Path{}, fmt.Errorf("path %q has no track index", p)
	}
	tokens := append([]string(nil), p.tokens...)
	tokens[pos] = strconv.Itoa(index)
	return Path{tokens: tokens}, nil
}

// ShiftTrack increments the track index by delta when it is at or after
// the given insertion point. Used while a temporary track exists: every
// destination at or after the inserted track is off by one.
func (p Path) ShiftTrack(insertedAt, delta int) Path {
	n, pos, ok := p.indexAfter("tracks")
	if !ok || n < insertedAt {
		return p
	}
	tokens := append([]string(nil), p.tokens...)
	tokens[pos] = strconv.Itoa(n + delta)
	return Path{tokens: tokens}
}

// OnReturnOrMaster reports whether the path addresses a return track or
// the master track. Duplicating or deleting those tracks is unsupported
// by the host, so device duplication rejects them up front.
func (p Path) OnReturnOrMaster() bool {
	for _, t := range p.tokens {
		if t == "return_tracks" || t == "master_track" {
			return true
		}
	}
	return false
}

// DeviceSuffix returns the portion of the path below the containing
// track ("devices 1 chains 0 devices 2", as tokens), so the same
// device can be located inside a duplicated track.
func (p Path) DeviceSuffix() ([]string, error) {
	_, pos, ok := p.indexAfter("tracks")
	if !ok {
		return nil, fmt.Errorf("path %q has no track segment", p)
	}
	if pos+1 >= len(p.tokens) {
		return nil, fmt.Errorf("path %q addresses a track, not a device", p)
	}
	return append([]string(nil), p.tokens[pos+1:]...), nil
}

// TrackPath returns the path of the containing regular track.
func (p Path) TrackPath() (Path, error) {
	_, pos, ok := p.indexAfter("tracks")
	if !ok {
		return Path{}, fmt.Errorf("path %q has no track segment", p)
	}
	return Path{tokens: append([]string(nil), p.tokens[:pos+1]...)}, nil
}

// LastIndex returns the trailing sibling index of the path.
func (p Path) LastIndex() (int, error) {
	if len(p.tokens) == 0 {
		return 0, fmt.Errorf("empty path")
	}
	n, err := strconv.Atoi(p.tokens[len(p.tokens)-1])
	if err != nil {
		return 0, fmt.Errorf("path %q does not end in an index", p)
	}
	return n, nil
}

// Parent drops the trailing collection name and index.
func (p Path) Parent() (Path, error) {
	if len(p.tokens) < 2 {
		return Path{}, fmt.Errorf("path %q has no parent", p)
	}
	if _, err := strconv.Atoi(p.tokens[len(p.tokens)-1]); err != nil {
		return Path{}, fmt.Errorf("path %q does not end in an index", p)
	}
	return Path{tokens: append([]string(nil), p.tokens[:len(p.tokens)-2]...)}, nil
}

// WithLastIndex returns a copy with the trailing sibling index replaced.
func (p Path) WithLastIndex(index int) (Path, error) {
	if _, err := p.LastIndex(); err != nil {
		return Path{}, err
	}
	tokens := append([]string(nil), p.tokens...)
	tokens[len(tokens)-1] = strconv.Itoa(index)
	return Path{tokens: tokens}, nil
}
