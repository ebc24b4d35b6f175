// Package check wraps compare into fail-fast gates for result pipelines.
// All three gates pass a matching subject through untouched and differ only
// in what a mismatch fails with:
//
//	If(test, msg)            *MismatchError{msg, subject}
//	IfRaw(test)              the subject
//	IfOrErrorProperty(test)  subject["error"] when truthy, else the subject
//
// The decision is synchronous; Lift runs a gate as a channel stage.
package check
