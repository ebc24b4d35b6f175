package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/ib-77/ropmatch/pkg/rop/codec"
)

// Response is what an API call resolves to.
type Response interface {
	OK() bool
	Status() int
	StatusText() string
	// JSON decodes the body.
	JSON(ctx context.Context) (any, error)
}

// Reply is an in-memory Response. Body wins over Value when both are set.
type Reply struct {
	Code        int
	Text        string
	ContentType string
	Body        []byte
	Value       any
	// Err makes JSON fail, standing in for a body that cannot be read.
	Err error
}

// OKReply answers 200 with value as the decoded body.
func OKReply(value any) *Reply {
	return &Reply{Code: http.StatusOK, Value: value}
}

func (r *Reply) OK() bool {
	return r.Code >= 200 && r.Code <= 299
}

func (r *Reply) Status() int {
	return r.Code
}

func (r *Reply) StatusText() string {
	if r.Text != "" {
		return r.Text
	}
	return http.StatusText(r.Code)
}

func (r *Reply) JSON(_ context.Context) (any, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Body != nil {
		return codec.DecodeBody(r.ContentType, r.Body)
	}
	return r.Value, nil
}

// FromHTTP reads and closes resp.Body and returns it as a Reply. The body is
// decoded lazily by JSON according to the Content-Type header.
func FromHTTP(resp *http.Response) (*Reply, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if body == nil {
		body = []byte{}
	}

	return &Reply{
		Code:        resp.StatusCode,
		Text:        statusText(resp),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// statusText strips the numeric code net/http keeps at the front of Status.
func statusText(resp *http.Response) string {
	prefix := fmt.Sprintf("%d ", resp.StatusCode)
	if len(resp.Status) > len(prefix) && resp.Status[:len(prefix)] == prefix {
		return resp.Status[len(prefix):]
	}
	return http.StatusText(resp.StatusCode)
}
