package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a completed API call.
type Response struct {
	StatusCode int
	Header     http.Header
	// Body is empty when the request streamed into an Output writer.
	Body    []byte
	Request *Request
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("decode %s: empty response body", r.Request.Path)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode %s: %w", r.Request.Path, err)
	}
	return nil
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}
