// Package solo contains single-value, synchronous ROP primitives that operate
// on Result[T]. They are the decision step behind every channel-lifted stage
// in mass and lite.
//
// Highlights:
// - Succeed/Fail/Cancel: construct Result[T]
// - Validate/AndValidate: apply validation producing failure on invalid input
// - Switch: move from Result[In] to Result[Out]
// - Map: transform successful values
// - Try: call a function (Out, error) and convert error to failure
// - Tee: side effect on success
// - Finally: reduce to a concrete value via success/error/cancel handlers
package solo
