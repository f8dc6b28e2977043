package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/campus-archive/internal/config"
	"github.com/MKhiriev/campus-archive/internal/logger"
	"github.com/MKhiriev/campus-archive/internal/utils"
)

// maxErrorBody bounds how much of a streamed error response is read.
const maxErrorBody = 1 << 20

// HTTPTransport is the resty-backed [Transport].
type HTTPTransport struct {
	client   *utils.HTTPClient
	baseURL  string
	pipeline Pipeline
	logger   *logger.Logger
}

// NewHTTPTransport constructs the Transport Client. It normalises
// adapterCfg.BaseURL and configures the request timeout and credential
// handling of the underlying HTTP client. Every call runs through pipeline.
//
// Returns an error if the base URL is empty or cannot be parsed.
func NewHTTPTransport(adapterCfg config.ClientAdapter, pipeline Pipeline, log *logger.Logger) (*HTTPTransport, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout, adapterCfg.SendCredentials)

	return &HTTPTransport{client: client, baseURL: baseURL, pipeline: pipeline, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// BaseURL returns the normalised base URL all paths are resolved against.
func (h *HTTPTransport) BaseURL() string {
	return h.baseURL
}

// Get implements [Transport].
func (h *HTTPTransport) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return h.do(ctx, http.MethodGet, path, nil, opts)
}

// Post implements [Transport].
func (h *HTTPTransport) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return h.do(ctx, http.MethodPost, path, body, opts)
}

// Put implements [Transport].
func (h *HTTPTransport) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return h.do(ctx, http.MethodPut, path, body, opts)
}

// Delete implements [Transport].
func (h *HTTPTransport) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return h.do(ctx, http.MethodDelete, path, nil, opts)
}

func (h *HTTPTransport) do(ctx context.Context, method, path string, body any, opts []RequestOption) (*Response, error) {
	req := newRequest(method, h.baseURL, path, body, opts)

	if err := h.pipeline.runRequest(ctx, req); err != nil {
		h.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("request aborted before sending")
		return nil, err
	}

	resp, err := h.send(ctx, req)
	return h.pipeline.runResponse(ctx, resp, err)
}

func (h *HTTPTransport) send(ctx context.Context, req *Request) (*Response, error) {
	r := h.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(req.Query)

	for key, values := range req.Header {
		if req.Multipart != nil && http.CanonicalHeaderKey(key) == headerContentType {
			continue
		}
		r.SetHeaderMultiValues(map[string][]string{key: values})
	}

	switch {
	case req.Multipart != nil:
		r.SetMultipartFormData(req.Multipart.Fields)
		for _, f := range req.Multipart.Files {
			r.SetFileReader(f.Field, f.Name, f.Reader)
		}
	case req.Body != nil:
		r.SetBody(req.Body)
	}

	if req.Output != nil {
		r.SetDoNotParseResponse(true)
	}

	raw, err := r.Execute(req.Method, req.endpoint())
	if err != nil {
		return nil, networkError(req, err)
	}

	resp := &Response{
		StatusCode: raw.StatusCode(),
		Header:     raw.Header(),
		Request:    req,
	}

	if req.Output == nil {
		resp.Body = raw.Body()
	} else {
		body := raw.RawBody()
		defer body.Close()

		if resp.IsSuccess() {
			if _, err = io.Copy(req.Output, body); err != nil {
				return nil, networkError(req, fmt.Errorf("stream response body: %w", err))
			}
		} else {
			resp.Body, _ = io.ReadAll(io.LimitReader(body, maxErrorBody))
		}
	}

	if err = mapHTTPError(resp); err != nil {
		return resp, err
	}

	return resp, nil
}
