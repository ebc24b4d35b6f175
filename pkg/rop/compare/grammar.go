package compare

import (
	"strings"

	"github.com/ib-77/ropmatch/pkg/rop"
	"github.com/ib-77/ropmatch/pkg/rop/codec"
	"github.com/ib-77/ropmatch/pkg/rop/path"
)

const (
	ambientPrefix = "this."
	scopeMarker   = ".{"
)

// PathTest is a string test broken into its parts.
//
//	"flag"                 truthy value at flag
//	"this.flag"            truthy value at flag in the ambient value
//	`items.{"id":1}`       value at items partially matches {"id":1}
//	`this.cfg.{"on":true}` both rewrites, ambient first
type PathTest struct {
	Raw string
	// FromAmbient is set by the `this.` prefix.
	FromAmbient bool
	// Path is the accessor after the prefix is stripped. For a scoped
	// test it is the part before `.{`.
	Path string
	// Scoped is set when the accessor carries a `.{...}` pattern.
	Scoped bool
	// Pattern is the decoded fragment of a scoped test; nil when Malformed.
	Pattern   map[string]any
	Malformed bool
}

// ParsePathTest applies the `this.` rewrite and then splits at the first
// `.{`. The fragment is decoded as a JSON object; a decoding failure marks
// the test Malformed rather than returning an error.
func ParsePathTest(raw string) PathTest {
	pt := PathTest{Raw: raw, Path: raw}

	if rest, ok := strings.CutPrefix(raw, ambientPrefix); ok {
		pt.FromAmbient = true
		pt.Path = rest
	}

	if i := strings.Index(pt.Path, scopeMarker); i > 0 {
		fragment := pt.Path[i+1:]
		pt.Path = pt.Path[:i]
		pt.Scoped = true

		pattern, err := codec.DecodeJSONObject([]byte(fragment))
		if err != nil {
			pt.Malformed = true
		} else {
			pt.Pattern = pattern
		}
	}

	return pt
}

// Compile turns the parsed string test into a Test.
func (pt PathTest) Compile() Test {
	if pt.Malformed {
		return never(KindMalformed)
	}

	kind := KindPath
	rule := func(effective any) bool {
		return path.Truthy(path.Value(effective, pt.Path))
	}
	if pt.Scoped {
		kind = KindPattern
		pattern := pt.Pattern
		rule = func(effective any) bool {
			return matchPattern(pattern, effective)
		}
	}

	return Test{kind: kind, match: func(subject, ambient any) bool {
		effective := pt.effective(subject, ambient)
		if rop.IsError(effective) {
			return false
		}
		return rule(effective)
	}}
}

func (pt PathTest) effective(subject, ambient any) any {
	base := subject
	if pt.FromAmbient {
		base = ambient
	}
	if pt.Scoped {
		return path.Value(base, pt.Path)
	}
	return base
}
