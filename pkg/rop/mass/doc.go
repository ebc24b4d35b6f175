// Package mass implements channel-based building blocks that lift solo
// primitives into single-value asynchronous stages (switching, mapping,
// trying) and a finalizer that reduces a stream of results.
//
// It is used by lite to build pipeline stages and fan-out runners.
package mass
