package adapter

import (
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerRequestID     = "X-Request-ID"

	contentTypeJSON = "application/json"
)

// Request is the Outgoing Request Descriptor. Request transforms may mutate
// it in place before it is sent.
type Request struct {
	Method  string
	BaseURL string
	// Path is relative to BaseURL, e.g. "/projects/12".
	Path   string
	Header http.Header
	Query  url.Values

	// Body is sent as JSON when the content type is JSON. Byte slices,
	// strings and readers are sent as they are.
	Body any

	// Multipart, when set, replaces Body with a multipart/form-data body.
	Multipart *Multipart

	// Output, when set, receives the body of a successful response instead
	// of it being buffered in Response.Body.
	Output io.Writer

	encrypted bool
}

// Multipart is a multipart/form-data body.
type Multipart struct {
	Fields map[string]string
	Files  []MultipartFile
}

// MultipartFile is one file part of a multipart body.
type MultipartFile struct {
	// Field is the form field name, e.g. "files" or "pdf_file".
	Field  string
	Name   string
	Reader io.Reader
}

// RequestOption customises a single call.
type RequestOption func(*Request)

// WithQuery adds query parameters.
func WithQuery(values url.Values) RequestOption {
	return func(r *Request) {
		for k, vs := range values {
			for _, v := range vs {
				r.Query.Add(k, v)
			}
		}
	}
}

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		r.Header.Set(key, value)
	}
}

// WithMultipart sends fields and files as multipart/form-data. Multipart
// bodies are never encrypted.
func WithMultipart(fields map[string]string, files ...MultipartFile) RequestOption {
	return func(r *Request) {
		r.Multipart = &Multipart{Fields: fields, Files: files}
		r.Body = nil
		r.Header.Set(headerContentType, "multipart/form-data")
	}
}

// WithOutput streams a successful response body into w.
func WithOutput(w io.Writer) RequestOption {
	return func(r *Request) {
		r.Output = w
	}
}

func newRequest(method, baseURL, path string, body any, opts []RequestOption) *Request {
	req := &Request{
		Method:  method,
		BaseURL: baseURL,
		Path:    path,
		Header:  http.Header{headerContentType: []string{contentTypeJSON}},
		Query:   url.Values{},
		Body:    body,
	}
	for _, opt := range opts {
		opt(req)
	}
	return req
}

// URL returns the absolute URL of the request, including its query.
func (r *Request) URL() string {
	u := r.endpoint()
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	return u
}

func (r *Request) endpoint() string {
	return strings.TrimRight(r.BaseURL, "/") + "/" + strings.TrimLeft(r.Path, "/")
}

// IsJSON reports whether the body is declared as JSON.
func (r *Request) IsJSON() bool {
	if r.Multipart != nil {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get(headerContentType))
	return err == nil && mediaType == contentTypeJSON
}

// Encrypted reports whether sensitive fields of the body were already
// encrypted.
func (r *Request) Encrypted() bool {
	return r.encrypted
}

// HasToken reports whether an Authorization header is set.
func (r *Request) HasToken() bool {
	return r.Header.Get(headerAuthorization) != ""
}
