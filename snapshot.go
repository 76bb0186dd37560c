package confenv

import (
	"fmt"
	"os"
	"strings"
)

// Snapshot is an immutable view of the configuration resolved by one Load
// call. Values are captured once from the process environment and never
// re-read, so mutating the environment afterwards does not affect reads.
type Snapshot struct {
	prefix string
	values map[string]any
}

// captureSnapshot collects every environment variable under the prefix into
// a new Snapshot, including variables that pre-dated Load and were never
// touched by the CLI or file tiers.
func captureSnapshot(prefix string) *Snapshot {
	upper := strings.ToUpper(strings.TrimSpace(prefix))
	marker := upper + "_"

	values := make(map[string]any)
	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 || !strings.HasPrefix(parts[0], marker) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(parts[0], marker))
		if name == "" {
			continue
		}
		values[name] = Coerce(parts[1])
	}

	return &Snapshot{prefix: upper, values: values}
}

// Prefix returns the uppercased prefix this snapshot was captured under.
func (s *Snapshot) Prefix() string {
	return s.prefix
}

// Len returns the number of resolved options.
func (s *Snapshot) Len() int {
	return len(s.values)
}

// Get returns the coerced value for an option name. The name may be given in
// any accepted spelling; it is normalized before lookup.
func (s *Snapshot) Get(name string) (any, error) {
	value, ok := s.values[NormalizeOption(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	return value, nil
}

// All returns a defensive copy of every resolved option keyed by lowercase
// option name.
func (s *Snapshot) All() map[string]any {
	out := make(map[string]any, len(s.values))
	for name, value := range s.values {
		out[name] = value
	}
	return out
}

// String returns the option value and whether it resolved to a string.
func (s *Snapshot) String(name string) (string, bool) {
	value, err := s.Get(name)
	if err != nil {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

// Bool returns the option value and whether it resolved to a boolean.
func (s *Snapshot) Bool(name string) (bool, bool) {
	value, err := s.Get(name)
	if err != nil {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}

// Int returns the option value and whether it resolved to an integer.
func (s *Snapshot) Int(name string) (int, bool) {
	value, err := s.Get(name)
	if err != nil {
		return 0, false
	}
	n, ok := value.(int)
	return n, ok
}

// Float returns the option value and whether it resolved to a number.
// Integer values are promoted to float64.
func (s *Snapshot) Float(name string) (float64, bool) {
	value, err := s.Get(name)
	if err != nil {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
