// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/internal/service"
)

// ErrUserQuit is returned when the form is closed without signing in.
var ErrUserQuit = errors.New("login cancelled")

// humanizeError turns a login failure into the line shown under the form.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, adapter.ErrNetwork) {
		return "Network unavailable or server unreachable"
	}
	if errors.Is(err, service.ErrInvalidDataProvided) {
		return strings.TrimPrefix(err.Error(), service.ErrInvalidDataProvided.Error()+": ")
	}

	var te *adapter.TransportError
	if errors.As(err, &te) && te.Detail != "" {
		return te.Detail
	}

	return err.Error()
}
