package live

import (
	"fmt"
	"strconv"
)

// Object is a handle to one node in the host's object tree. It is a
// live view: the referenced object may be deleted by a later host call,
// so holders must check Exists before reuse after any mutation.
type Object interface {
	// ID returns the host's stable identity for this object. It
	// survives sibling reordering within a session but not deletion.
	ID() string

	// Path returns the current space-delimited address of the object.
	Path() string

	// Exists reports whether the object is still present in the host.
	Exists() bool

	// Get reads a property. Host properties are list-valued.
	Get(prop string) ([]any, error)

	// Set writes a property.
	Set(prop string, value any) error

	// Call invokes a method on the object.
	Call(method string, args ...any) (any, error)
}

// Client resolves objects in the host tree.
type Client interface {
	// Object returns a handle for the given path. The handle may refer
	// to a nonexistent node; check Exists.
	Object(path string) Object

	// ObjectByID returns a handle for a host id, or ErrObjectNotFound
	// via Exists()==false when the id is stale.
	ObjectByID(id string) Object
}

// GetString reads a property expected to hold a single string.
func GetString(o Object, prop string) (string, error) {
	vs, err := o.Get(prop)
	if err != nil {
		return "", err
	}
	if len(vs) == 0 {
		return "", fmt.Errorf("property %q is empty", prop)
	}
	s, ok := vs[0].(string)
	if !ok {
		return "", fmt.Errorf("property %q is %T, not string", prop, vs[0])
	}
	return s, nil
}

// GetFloat reads a property expected to hold a single number.
func GetFloat(o Object, prop string) (float64, error) {
	vs, err := o.Get(prop)
	if err != nil {
		return 0, err
	}
	if len(vs) == 0 {
		return 0, fmt.Errorf("property %q is empty", prop)
	}
	return toFloat(vs[0], prop)
}

// GetInt reads a property expected to hold a single integer.
func GetInt(o Object, prop string) (int, error) {
	f, err := GetFloat(o, prop)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// GetBool reads a property expected to hold a single boolean. Hosts
// report booleans as 0/1 numbers, so both forms are accepted.
func GetBool(o Object, prop string) (bool, error) {
	vs, err := o.Get(prop)
	if err != nil {
		return false, err
	}
	if len(vs) == 0 {
		return false, fmt.Errorf("property %q is empty", prop)
	}
	switch v := vs[0].(type) {
	case bool:
		return v, nil
	default:
		f, err := toFloat(v, prop)
		if err != nil {
			return false, err
		}
		return f != 0, nil
	}
}

// GetStrings reads a list-valued string property.
func GetStrings(o Object, prop string) ([]string, error) {
	vs, err := o.Get(prop)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("property %q holds %T, not string", prop, v)
		}
		out = append(out, s)
	}
	return out, nil
}

func toFloat(v any, prop string) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("property %q is not numeric: %q", prop, n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("property %q is %T, not numeric", prop, v)
	}
}
