package path

import (
	"reflect"
	"strings"
)

// SplitWithAllPaths returns every prefix of s cut at sep, shortest first:
// "a.b.c" gives "a", "a.b", "a.b.c".
func SplitWithAllPaths(sep, s string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if len(out) > 0 {
			out = append(out, out[len(out)-1]+sep+part)
		} else {
			out = append(out, part)
		}
	}
	return out
}

// FindPropertyUpTree looks for property under every prefix of p and returns
// the one found deepest in the tree, or nil.
func FindPropertyUpTree(sep, property, p string, obj any) any {
	var found any
	for _, prefix := range SplitWithAllPaths(sep, p) {
		if v, ok := Get(obj, prefix+"."+property); ok && v != nil {
			found = v
		}
	}
	return found
}

// Predicate tests the value at accessor in obj against value.
type Predicate func(accessor string, value any, obj any) bool

func Equals(accessor string, value any, obj any) bool {
	got, ok := Get(obj, accessor)
	return ok && equal(got, value)
}

func StartsWith(accessor string, value any, obj any) bool {
	v, _ := Get(obj, accessor)
	got, _ := v.(string)
	prefix, ok := value.(string)
	return ok && strings.HasPrefix(got, prefix)
}

// Includes matches a substring of a string value or an element of a slice.
func Includes(accessor string, value any, obj any) bool {
	got, ok := Get(obj, accessor)
	if !ok {
		return false
	}
	if s, isString := got.(string); isString {
		sub, ok := value.(string)
		return ok && strings.Contains(s, sub)
	}

	rv := reflect.ValueOf(got)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if equal(rv.Index(i).Interface(), value) {
			return true
		}
	}
	return false
}

// Exists matches when accessor resolves, even to nil.
func Exists(accessor string, _ any, obj any) bool {
	_, ok := Get(obj, accessor)
	return ok
}

func FilterByKey(accessor string, predicate Predicate, value any, items []any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		if predicate(accessor, value, item) {
			out = append(out, item)
		}
	}
	return out
}

// Pluck collects the value at accessor from every item.
func Pluck(accessor string, items []any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = Value(item, accessor)
	}
	return out
}

func equal(a, b any) bool {
	if x, ok := ToNumber(a); ok {
		y, ok := ToNumber(b)
		return ok && x == y
	}
	return reflect.DeepEqual(a, b)
}
