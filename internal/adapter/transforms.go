// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/campus-archive/internal/crypto"
	"github.com/MKhiriev/campus-archive/internal/logger"
	"github.com/MKhiriev/campus-archive/internal/utils"
)

// AttachBearerToken sets "Authorization: Bearer <token>" when the session
// holds a token. Failing to read the session aborts the call.
func AttachBearerToken(session TokenSource) RequestTransform {
	return func(ctx context.Context, req *Request) error {
		if session == nil {
			return nil
		}

		token, err := session.Token(ctx)
		if err != nil {
			return fmt.Errorf("read session token: %w", err)
		}
		if token != "" {
			req.Header.Set(headerAuthorization, "Bearer "+token)
		}

		return nil
	}
}

// EncryptSensitiveFields replaces the named top-level string fields of a
// JSON object body with their encrypted form. Multipart bodies, raw bytes,
// strings, readers and non-object JSON are left untouched. The original
// body value is never mutated and a request is encrypted at most once.
func EncryptSensitiveFields(cipher crypto.FieldCipher, fields []string) RequestTransform {
	return func(ctx context.Context, req *Request) error {
		if req.encrypted || req.Body == nil || !req.IsJSON() {
			return nil
		}

		obj, ok, err := jsonObject(req.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		req.encrypted = true
		if !ok {
			return nil
		}

		encrypted, err := cipher.EncryptFields(obj, fields)
		if err != nil {
			return fmt.Errorf("encrypt request body: %w", err)
		}
		req.Body = encrypted

		return nil
	}
}

// jsonObject renders body as a generic JSON object. ok is false for bodies
// that are sent verbatim or do not encode to an object.
func jsonObject(body any) (obj map[string]any, ok bool, err error) {
	switch body.(type) {
	case []byte, string, json.RawMessage, io.Reader:
		return nil, false, nil
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, false, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err = dec.Decode(&obj); err != nil {
		return nil, false, err
	}

	return obj, true, nil
}

// AttachRequestID sets X-Request-ID to the id carried by ctx, or to a new
// one from gen. An explicitly set header is kept.
func AttachRequestID(gen RequestIDGenerator) RequestTransform {
	return func(ctx context.Context, req *Request) error {
		if req.Header.Get(headerRequestID) != "" {
			return nil
		}
		id, ok := utils.GetRequestIDFromContext(ctx)
		if !ok {
			id = gen.Generate()
		}
		req.Header.Set(headerRequestID, id)
		return nil
	}
}

// LogRequest records method, url, base url and whether a token is attached.
// The token itself is never logged.
func LogRequest(log *logger.Logger) RequestTransform {
	return func(ctx context.Context, req *Request) error {
		log.Debug().
			Str("method", req.Method).
			Str("url", req.URL()).
			Str("base_url", req.BaseURL).
			Bool("has_token", req.HasToken()).
			Str("request_id", req.Header.Get(headerRequestID)).
			Msg("api request")
		return nil
	}
}

// LogResponse records status, url and body of a successful call, or
// status, reason and url of a failed one.
func LogResponse(log *logger.Logger) ResponseTransform {
	return func(ctx context.Context, resp *Response, err error) (*Response, error) {
		if err == nil {
			event := log.Debug().
				Int("status", resp.StatusCode).
				Str("url", resp.Request.URL())
			logBody(event, resp.Body).Msg("api response")
			return resp, nil
		}

		var te *TransportError
		if errors.As(err, &te) && te.StatusCode != 0 {
			log.Warn().
				Int("status", te.StatusCode).
				Str("message", te.Detail).
				Str("url", te.URL).
				Msg("api error")
			return resp, err
		}

		log.Error().Err(err).Msg("api call failed")
		return resp, err
	}
}

func logBody(event *zerolog.Event, body []byte) *zerolog.Event {
	switch {
	case len(body) == 0:
		return event
	case json.Valid(body):
		return event.RawJSON("data", body)
	default:
		return event.Int("data_bytes", len(body))
	}
}

// ExpireSessionOnUnauthorized ends the session when the backend answers
// 401: token and profile are cleared and SessionExpired is published. The
// error is returned unchanged. Repeated 401s clear an already empty session
// and publish again; listeners decide whether to act.
func ExpireSessionOnUnauthorized(session SessionClearer, events *Events, log *logger.Logger) ResponseTransform {
	return func(ctx context.Context, resp *Response, err error) (*Response, error) {
		var te *TransportError
		if !errors.As(err, &te) || te.StatusCode != http.StatusUnauthorized {
			return resp, err
		}

		if session != nil {
			if clearErr := session.Clear(context.WithoutCancel(ctx)); clearErr != nil {
				log.Warn().Err(clearErr).Msg("failed to clear expired session")
			}
		}

		events.Publish(SessionExpired{
			StatusCode: te.StatusCode,
			URL:        te.URL,
			At:         time.Now(),
		})

		return resp, err
	}
}
