package compare

import (
	"math"
	"reflect"

	"github.com/ib-77/ropmatch/pkg/rop"
	"github.com/ib-77/ropmatch/pkg/rop/path"
)

// Kind names the variant a raw test compiled to.
type Kind int

const (
	// KindUnsupported is a test of a shape that never matches: arrays,
	// structs, nil and so on.
	KindUnsupported Kind = iota
	KindLiteral
	KindPattern
	KindPath
	KindPredicate
	// KindMalformed is a `.{` test whose fragment is not a JSON object.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindPattern:
		return "pattern"
	case KindPath:
		return "path"
	case KindPredicate:
		return "predicate"
	case KindMalformed:
		return "malformed"
	}
	return "unsupported"
}

// Test is a compiled test specification. Compile it once and reuse it for
// any number of subjects; it holds no mutable state.
type Test struct {
	kind  Kind
	match func(subject, ambient any) bool
}

// Kind reports the variant the test compiled to.
func (t Test) Kind() Kind {
	return t.kind
}

// Match reports whether subject satisfies the test. ambient is the value a
// `this.` path resolves against; pass nil when there is none.
func (t Test) Match(subject, ambient any) bool {
	if t.match == nil {
		return false
	}
	return t.match(subject, ambient)
}

// Compile resolves the shape of a raw test: numbers and booleans are
// literals, a string-keyed map is a pattern, a string is a path (see
// ParsePathTest), func(any) bool is a predicate. Anything else never
// matches.
func Compile(test any) Test {
	if t, ok := test.(Test); ok {
		return t
	}

	switch v := test.(type) {
	case bool:
		return guarded(KindLiteral, func(subject any) bool {
			b, ok := subject.(bool)
			return ok && b == v
		})
	case string:
		return ParsePathTest(v).Compile()
	case func(any) bool:
		if v == nil {
			return never(KindUnsupported)
		}
		return guarded(KindPredicate, v)
	}

	if pattern, ok := asPattern(test); ok {
		return guarded(KindPattern, func(subject any) bool {
			return matchPattern(pattern, subject)
		})
	}
	if n, ok := path.ToNumber(test); ok {
		return guarded(KindLiteral, func(subject any) bool {
			m, ok := path.ToNumber(subject)
			return ok && m == n
		})
	}
	return never(KindUnsupported)
}

// Match compiles test and applies it to subject without an ambient value.
func Match(test, subject any) bool {
	return Compile(test).Match(subject, nil)
}

// MatchIn is Match with an explicit ambient value for `this.` paths.
func MatchIn(test, subject, ambient any) bool {
	return Compile(test).Match(subject, ambient)
}

// Matcher compiles test once and returns a reusable predicate.
func Matcher(test any) func(subject any) bool {
	return MatcherIn(test, nil)
}

// MatcherIn is Matcher with an explicit ambient value for `this.` paths.
func MatcherIn(test, ambient any) func(subject any) bool {
	compiled := Compile(test)
	return func(subject any) bool {
		return compiled.Match(subject, ambient)
	}
}

// guarded wraps a match rule so an error subject never satisfies it.
func guarded(kind Kind, rule func(subject any) bool) Test {
	return Test{kind: kind, match: func(subject, _ any) bool {
		if rop.IsError(subject) {
			return false
		}
		return rule(subject)
	}}
}

func never(kind Kind) Test {
	return Test{kind: kind, match: func(_, _ any) bool { return false }}
}

// matchPattern reports whether subject holds every key of pattern with an
// equal value. Nested patterns match partially, everything else exactly.
func matchPattern(pattern map[string]any, subject any) bool {
	if len(pattern) == 0 {
		return true
	}
	if rop.IsNil(subject) {
		return false
	}

	for key, want := range pattern {
		got, ok := path.Child(subject, key)
		if !ok {
			return false
		}
		if nested, isPattern := want.(map[string]any); isPattern {
			if !isRecord(got) || !matchPattern(nested, got) {
				return false
			}
			continue
		}
		if !equal(want, got) {
			return false
		}
	}
	return true
}

// equal is deep equality where numbers compare by value across Go numeric
// types and NaN equals NaN.
func equal(a, b any) bool {
	if x, ok := path.ToNumber(a); ok {
		y, ok := path.ToNumber(b)
		return ok && (x == y || (math.IsNaN(x) && math.IsNaN(y)))
	}

	if am, ok := asPattern(a); ok {
		bm, ok := asPattern(b)
		if !ok || len(am) != len(bm) {
			return false
		}
		for k, item := range am {
			other, found := bm[k]
			if !found || !equal(item, other) {
				return false
			}
		}
		return true
	}

	switch av := a.(type) {
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// asPattern converts any string-keyed map into map[string]any, nested
// string-keyed maps included. It reports false for every other value.
func asPattern(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		if hasTypedMap(m) {
			return convertMap(reflect.ValueOf(m)), true
		}
		return m, true
	}
	if !isStringMap(v) {
		return nil, false
	}
	return convertMap(reflect.ValueOf(v)), true
}

func hasTypedMap(m map[string]any) bool {
	for _, item := range m {
		if nested, ok := item.(map[string]any); ok {
			if hasTypedMap(nested) {
				return true
			}
		} else if isStringMap(item) {
			return true
		}
	}
	return false
}

func isStringMap(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

func convertMap(rv reflect.Value) map[string]any {
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		item := iter.Value().Interface()
		if nested, ok := asPattern(item); ok {
			item = nested
		}
		out[iter.Key().String()] = item
	}
	return out
}

// isRecord reports a value a nested pattern can look into: a non-nil map
// with string keys or a struct, directly or behind pointers.
func isRecord(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		return !rv.IsNil() && rv.Type().Key().Kind() == reflect.String
	case reflect.Struct:
		return true
	}
	return false
}
