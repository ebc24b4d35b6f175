package api

import (
	"fmt"

	"github.com/ib-77/ropmatch/pkg/rop/codec"
)

// StatusError is the failure of a response that is not ok.
type StatusError struct {
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
}

// Error renders the error as JSON: {"status":500,"statusText":"Err"}.
func (e *StatusError) Error() string {
	return codec.Stringify(e)
}

// TypeError reports a stage that received a value of the wrong type.
type TypeError struct {
	Stage string
	Want  string
	Got   any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %T", e.Stage, e.Want, e.Got)
}
