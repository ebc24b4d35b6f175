// Package compare decides whether a value satisfies a declarative test.
//
// A test is a number or boolean (strict equality), a map[string]any
// (partial structural match), a string accessor (the value there exists
// and is truthy) or a func(any) bool predicate. String tests accept two
// rewrites: a leading `this.` reads from an explicit ambient value instead
// of the subject, and `head.{"k":v}` partially matches the value at head
// against the embedded JSON object. An error subject never matches.
//
//	isOK := compare.Matcher(map[string]any{"success": true})
//	isOK(body)
package compare
