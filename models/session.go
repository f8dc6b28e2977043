// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Session is the Session Credential persisted in local storage: an opaque
// bearer token and the cached profile of its owner.
//
// A zero Session (empty Token) is the anonymous state.
type Session struct {
	// Token is the bearer token attached to every outgoing request.
	Token string `json:"token"`

	// Profile is the cached user record returned at login.
	Profile Profile `json:"user"`
}

// Authenticated reports whether s holds a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
