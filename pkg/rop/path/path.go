package path

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Path is a parsed accessor such as `a.b[0].c` or `a["x.y"]`.
type Path struct {
	raw      string
	segments []string
}

// Parse splits an accessor into its keys. Dots separate keys, brackets hold
// an index or a quoted key. A bracketed key may contain dots.
func Parse(p string) (Path, error) {
	path := Path{raw: p}
	if p == "" {
		path.segments = []string{""}
		return path, nil
	}

	rest := p
	expectKey := true
	for rest != "" {
		switch {
		case rest[0] == '[':
			key, n, err := parseBracket(rest)
			if err != nil {
				return Path{}, fmt.Errorf("path: %w in %q", err, p)
			}
			path.segments = append(path.segments, key)
			rest = rest[n:]
			expectKey = false
		case rest[0] == '.':
			if expectKey {
				return Path{}, fmt.Errorf("path: empty key in %q", p)
			}
			rest = rest[1:]
			if rest == "" {
				return Path{}, fmt.Errorf("path: trailing dot in %q", p)
			}
			expectKey = true
		default:
			if !expectKey {
				return Path{}, fmt.Errorf("path: missing dot before %q in %q", rest, p)
			}
			end := strings.IndexAny(rest, ".[")
			if end == -1 {
				end = len(rest)
			}
			path.segments = append(path.segments, rest[:end])
			rest = rest[end:]
			expectKey = false
		}
	}

	return path, nil
}

// parseBracket reads one `[...]` group at the start of s and returns the key
// and the number of bytes consumed.
func parseBracket(s string) (string, int, error) {
	if len(s) < 2 {
		return "", 0, fmt.Errorf("unterminated bracket")
	}

	if q := s[1]; q == '"' || q == '\'' {
		end := strings.IndexByte(s[2:], q)
		if end == -1 {
			return "", 0, fmt.Errorf("unterminated quote")
		}
		closing := 2 + end + 1
		if closing >= len(s) || s[closing] != ']' {
			return "", 0, fmt.Errorf("expected ] after quoted key")
		}
		return s[2 : 2+end], closing + 1, nil
	}

	end := strings.IndexByte(s, ']')
	if end == -1 {
		return "", 0, fmt.Errorf("unterminated bracket")
	}
	key := strings.TrimSpace(s[1:end])
	if key == "" {
		return "", 0, fmt.Errorf("empty brackets")
	}
	return key, end + 1, nil
}

func (p Path) String() string {
	return p.raw
}

// Segments returns a copy of the parsed keys.
func (p Path) Segments() []string {
	return append([]string(nil), p.segments...)
}

// Lookup walks subject along the path. The boolean is false when any key is
// missing or a value on the way cannot be indexed.
func (p Path) Lookup(subject any) (any, bool) {
	current := subject
	for _, key := range p.segments {
		next, ok := Child(current, key)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Get returns the value at accessor p in subject. When p is itself a key of
// a map subject it is used verbatim, so keys containing dots stay reachable.
// An accessor that does not parse is treated as missing.
func Get(subject any, p string) (any, bool) {
	if m, ok := subject.(map[string]any); ok {
		if v, found := m[p]; found {
			return v, true
		}
	}

	parsed, err := Parse(p)
	if err != nil {
		return nil, false
	}
	return parsed.Lookup(subject)
}

// Value is Get without the presence flag.
func Value(subject any, p string) any {
	v, _ := Get(subject, p)
	return v
}

// Child returns the value stored under a single key of current: a map key,
// a slice or array index, or a struct field by json name.
func Child(current any, key string) (any, bool) {
	if m, ok := current.(map[string]any); ok {
		v, found := m[key]
		return v, found
	}
	if s, ok := current.([]any); ok {
		return index(reflect.ValueOf(s), key)
	}

	v := reflect.ValueOf(current)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		item := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if !item.IsValid() {
			return nil, false
		}
		return item.Interface(), true
	case reflect.Slice, reflect.Array:
		return index(v, key)
	case reflect.Struct:
		return field(v, key)
	}
	return nil, false
}

func index(v reflect.Value, key string) (any, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= v.Len() {
		return nil, false
	}
	return v.Index(i).Interface(), true
}

func field(v reflect.Value, key string) (any, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			if tagName, _, _ := strings.Cut(tag, ","); tagName == "-" {
				continue
			} else if tagName != "" {
				name = tagName
			}
		}
		if name == key {
			return v.Field(i).Interface(), true
		}
	}
	return nil, false
}

// Truthy reports whether v counts as set: nil, false, zero numbers, NaN, the
// empty string and nil maps, slices or pointers do not. Empty but non-nil
// collections do.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	if n, ok := ToNumber(v); ok {
		return n != 0 && !math.IsNaN(n)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// ToNumber converts any Go numeric kind to float64.
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
