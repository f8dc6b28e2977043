package adapter

import (
	"context"

	"github.com/MKhiriev/campus-archive/internal/crypto"
	"github.com/MKhiriev/campus-archive/internal/logger"
)

// RequestTransform inspects or rewrites an outgoing request. A non-nil
// error aborts the call before anything is sent.
type RequestTransform func(ctx context.Context, req *Request) error

// ResponseTransform observes the outcome of a call. It receives the
// response (nil when nothing was received) and the call error, and returns
// them, possibly replaced.
type ResponseTransform func(ctx context.Context, resp *Response, err error) (*Response, error)

// Pipeline is the ordered set of transforms applied to every call.
type Pipeline struct {
	Request  []RequestTransform
	Response []ResponseTransform
}

// RequestIDGenerator produces X-Request-ID values.
type RequestIDGenerator interface {
	Generate() string
}

// PipelineDeps are the collaborators of DefaultPipeline.
type PipelineDeps struct {
	Session Session
	Cipher  crypto.FieldCipher
	// SensitiveFields defaults to crypto.DefaultSensitiveFields.
	SensitiveFields []string
	Events          *Events
	RequestIDs      RequestIDGenerator
	Logger          *logger.Logger
}

// DefaultPipeline returns the standard campus archive pipeline.
//
// Request phase: bearer token, sensitive field encryption, request id,
// diagnostics. Response phase: diagnostics, then session expiry on 401.
func DefaultPipeline(deps PipelineDeps) Pipeline {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	fields := deps.SensitiveFields
	if len(fields) == 0 {
		fields = crypto.DefaultSensitiveFields
	}

	request := []RequestTransform{AttachBearerToken(deps.Session)}
	if deps.Cipher != nil {
		request = append(request, EncryptSensitiveFields(deps.Cipher, fields))
	}
	if deps.RequestIDs != nil {
		request = append(request, AttachRequestID(deps.RequestIDs))
	}
	request = append(request, LogRequest(log))

	return Pipeline{
		Request: request,
		Response: []ResponseTransform{
			LogResponse(log),
			ExpireSessionOnUnauthorized(deps.Session, deps.Events, log),
		},
	}
}

func (p Pipeline) runRequest(ctx context.Context, req *Request) error {
	for _, transform := range p.Request {
		if err := transform(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

func (p Pipeline) runResponse(ctx context.Context, resp *Response, err error) (*Response, error) {
	for _, transform := range p.Response {
		resp, err = transform(ctx, resp, err)
	}
	return resp, err
}
