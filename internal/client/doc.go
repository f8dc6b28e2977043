// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client assembles the campus archive client runtime.
//
// It wires configuration, logging, local storage, field encryption, the
// interceptor pipeline, the transport and the API services into one App,
// and connects session expiry events to the navigation router.
package client
