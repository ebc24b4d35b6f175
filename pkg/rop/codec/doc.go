// Package codec decodes response bodies into plain Go values
// (map[string]any, []any, float64, string, bool) from JSON or CBOR, and
// renders values back to JSON for messages.
package codec
