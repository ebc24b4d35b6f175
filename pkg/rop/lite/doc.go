// Package lite provides lightweight channel-lifted helpers that wrap solo
// primitives. Each factory returns a stage with the engine shape
// func(ctx, rop.Result[In]) <-chan rop.Result[Out].
//
// Common usage:
// - Switch/Map/Try: build a single asynchronous stage
// - Run/Turnout: drive an engine over an input channel with a fixed number of lines
// - Finally: map Result[In] to Out on completion
package lite
