// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AccessRequestStatus is the lifecycle state of an access request.
type AccessRequestStatus string

const (
	AccessPending  AccessRequestStatus = "pending"
	AccessApproved AccessRequestStatus = "approved"
	AccessDenied   AccessRequestStatus = "denied"
	AccessRevoked  AccessRequestStatus = "revoked"
)

// AccessAction is the owner's answer to an access request.
type AccessAction string

const (
	ActionApprove AccessAction = "approve"
	ActionDeny    AccessAction = "deny"
	ActionRevoke  AccessAction = "revoke"
)

// Valid reports whether a is one of approve, deny or revoke.
func (a AccessAction) Valid() bool {
	return a == ActionApprove || a == ActionDeny || a == ActionRevoke
}

// AccessRequest asks a project owner for access to a non-public project.
type AccessRequest struct {
	RequestID       int64               `json:"id"`
	ProjectID       int64               `json:"project_id"`
	RequesterID     int64               `json:"requester_id"`
	Status          AccessRequestStatus `json:"status"`
	Message         string              `json:"message,omitempty"`
	ResponseMessage string              `json:"response_message,omitempty"`
	RequestedAt     time.Time           `json:"requested_at"`
	RespondedAt     *time.Time          `json:"responded_at,omitempty"`
	ExpiresAt       *time.Time          `json:"expires_at,omitempty"`
}

// AccessRequestSummary is the listing form of an access request.
type AccessRequestSummary struct {
	RequestID     int64               `json:"id"`
	ProjectID     int64               `json:"project_id"`
	RequesterID   int64               `json:"requester_id"`
	Status        AccessRequestStatus `json:"status"`
	RequestedAt   time.Time           `json:"requested_at"`
	RespondedAt   *time.Time          `json:"responded_at,omitempty"`
	ProjectTitle  string              `json:"project_title,omitempty"`
	RequesterName string              `json:"requester_name,omitempty"`
	RequesterRole Role                `json:"requester_role,omitempty"`
}

// AccessRequestCreate is the body of POST /access/.
type AccessRequestCreate struct {
	ProjectID int64  `json:"project_id"`
	Message   string `json:"message,omitempty"`
}

// AccessRequestRespond is the body of POST /access/{id}/respond.
type AccessRequestRespond struct {
	Action          AccessAction `json:"action"`
	ResponseMessage string       `json:"response_message,omitempty"`
	ExpiresAt       *time.Time   `json:"expires_at,omitempty"`
}

// AccessCheck is returned by GET /access/check/{project_id}.
type AccessCheck struct {
	ProjectID     int64               `json:"project_id"`
	HasAccess     bool                `json:"has_access"`
	RequestStatus AccessRequestStatus `json:"request_status,omitempty"`
	PrivacyLevel  PrivacyLevel        `json:"privacy_level"`
}
