// Package path resolves accessor paths like `a.b[0]["c.d"]` against
// decoded JSON values, string-keyed maps, slices and structs, and carries
// the small object helpers built on top of that lookup.
package path
