package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

func mapHTTPError(resp *Response) error {
	if resp.IsSuccess() {
		return nil
	}

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = ErrBadRequest
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrConflict
	case http.StatusRequestEntityTooLarge:
		sentinel = ErrPayloadTooLarge
	case http.StatusUnprocessableEntity:
		sentinel = ErrUnprocessable
	case http.StatusInternalServerError:
		sentinel = ErrInternalServerError
	case http.StatusBadGateway:
		sentinel = ErrBadGateway
	case http.StatusServiceUnavailable:
		sentinel = ErrUnavailable
	default:
		sentinel = ErrUnexpectedStatus
	}

	return &TransportError{
		StatusCode: resp.StatusCode,
		Detail:     errorDetail(resp.StatusCode, resp.Body),
		Payload:    resp.Body,
		Method:     resp.Request.Method,
		URL:        resp.Request.URL(),
		Err:        sentinel,
	}
}

func networkError(req *Request, err error) error {
	return &TransportError{
		Detail: err.Error(),
		Method: req.Method,
		URL:    req.URL(),
		Err:    fmt.Errorf("%w: %w", ErrNetwork, err),
	}
}

// errorDetail extracts the backend's "detail" field. FastAPI sends either
// a string or, for validation errors, a list of {loc, msg} objects.
func errorDetail(status int, body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &envelope) == nil && len(envelope.Detail) > 0 {
		var text string
		if json.Unmarshal(envelope.Detail, &text) == nil && text != "" {
			return text
		}

		var items []struct {
			Loc []any  `json:"loc"`
			Msg string `json:"msg"`
		}
		if json.Unmarshal(envelope.Detail, &items) == nil && len(items) > 0 {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if len(item.Loc) > 0 {
					msgs = append(msgs, fmt.Sprintf("%v: %s", item.Loc[len(item.Loc)-1], item.Msg))
					continue
				}
				msgs = append(msgs, item.Msg)
			}
			return strings.Join(msgs, "; ")
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}

	return http.StatusText(status)
}
