package avatar

import (
	"strconv"
	"strings"

	"github.com/cozy/exavatar/pkg/utils"
)

// field describes how one request parameter is turned into a value: the
// parser for present values, the default for absent ones, and whether an
// invalid value falls back to the default instead of being rejected.
type field[T any] struct {
	name     string
	expected string
	examples []string
	numeric  bool
	parse    func(s string) (T, bool)
	fallback func(r utils.Rand) T
	lenient  bool
}

func (f *field[T]) invalid(raw any) *ValidationError {
	return &ValidationError{
		Field:    f.name,
		Value:    raw,
		Expected: f.expected,
		Examples: f.examples,
	}
}

// resolve applies the field contract:
//   - nil or blank string: default value;
//   - wrong basic type: validation error;
//   - outside of the domain: validation error, or default when lenient;
//   - else the parsed value.
func (f *field[T]) resolve(raw any, r utils.Rand) (T, error) {
	var zero T

	s, ok := f.toString(raw)
	if !ok {
		return zero, f.invalid(raw)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return f.fallback(r), nil
	}

	v, ok := f.parse(s)
	if ok {
		return v, nil
	}
	if f.lenient {
		return f.fallback(r), nil
	}
	return zero, f.invalid(s)
}

func (f *field[T]) toString(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case []string:
		// url.Values: the first value wins
		if len(v) == 0 {
			return "", true
		}
		return v[0], true
	}
	if !f.numeric {
		return "", false
	}
	switch v := raw.(type) {
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), true
		}
	}
	return "", false
}

// enum builds a field whose domain is a closed list of values.
func enum[T comparable](name, expected string, values []T, format func(T) string, fallback func(utils.Rand) T) *field[T] {
	examples := make([]string, len(values))
	index := make(map[string]T, len(values))
	for i, v := range values {
		examples[i] = format(v)
		index[examples[i]] = v
	}
	return &field[T]{
		name:     name,
		expected: expected,
		examples: examples,
		parse: func(s string) (T, bool) {
			v, ok := index[s]
			return v, ok
		},
		fallback: fallback,
	}
}
