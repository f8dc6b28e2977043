package fakeapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/MKhiriev/campus-archive/internal/utils"
	"github.com/MKhiriev/campus-archive/models"
)

// accessSummaries must be called with b.mu held.
func (b *Backend) accessSummaries(match func(*models.AccessRequest) bool) []models.AccessRequestSummary {
	out := []models.AccessRequestSummary{}
	for _, req := range b.access {
		if !match(req) {
			continue
		}
		s := models.AccessRequestSummary{
			RequestID:   req.RequestID,
			ProjectID:   req.ProjectID,
			RequesterID: req.RequesterID,
			Status:      req.Status,
			RequestedAt: req.RequestedAt,
			RespondedAt: req.RespondedAt,
		}
		if p, ok := b.projects[req.ProjectID]; ok {
			s.ProjectTitle = p.Title
		}
		if u, ok := b.users[req.RequesterID]; ok {
			s.RequesterName = u.user.FullName
			s.RequesterRole = u.user.Role
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestID < out[j].RequestID })
	return out
}

func (b *Backend) requestAccess(w http.ResponseWriter, r *http.Request) {
	var body models.AccessRequestCreate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteDetail(w, "Invalid JSON was passed", http.StatusUnprocessableEntity)
		return
	}
	user := currentUser(r)

	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.projects[body.ProjectID]
	if !ok {
		utils.WriteDetail(w, "Project not found", http.StatusNotFound)
		return
	}
	if p.UploadedBy == user.UserID {
		utils.WriteDetail(w, "You cannot request access to your own project", http.StatusBadRequest)
		return
	}
	if p.PrivacyLevel == models.PrivacyPublic {
		utils.WriteDetail(w, "This project is public", http.StatusBadRequest)
		return
	}
	for _, req := range b.access {
		if req.ProjectID == p.ProjectID && req.RequesterID == user.UserID && req.Status == models.AccessPending {
			utils.WriteDetail(w, "You already have a pending request for this project", http.StatusBadRequest)
			return
		}
	}

	req := &models.AccessRequest{
		RequestID:   b.newID(),
		ProjectID:   p.ProjectID,
		RequesterID: user.UserID,
		Status:      models.AccessPending,
		Message:     body.Message,
		RequestedAt: time.Now().UTC(),
	}
	b.access[req.RequestID] = req

	_, _ = utils.WriteJSON(w, req, http.StatusCreated)
}

func (b *Backend) myAccessRequests(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	b.mu.Lock()
	out := b.accessSummaries(func(req *models.AccessRequest) bool { return req.RequesterID == user.UserID })
	b.mu.Unlock()
	_, _ = utils.WriteJSON(w, out, http.StatusOK)
}

func (b *Backend) incomingAccessRequests(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	b.mu.Lock()
	out := b.accessSummaries(func(req *models.AccessRequest) bool {
		p, ok := b.projects[req.ProjectID]
		return ok && p.UploadedBy == user.UserID
	})
	b.mu.Unlock()
	_, _ = utils.WriteJSON(w, out, http.StatusOK)
}

// lookupAccess must be called with b.mu held.
func (b *Backend) lookupAccess(w http.ResponseWriter, r *http.Request) (*models.AccessRequest, bool) {
	id, ok := pathID(r, "requestID")
	if !ok {
		utils.WriteDetail(w, "Invalid request id", http.StatusUnprocessableEntity)
		return nil, false
	}
	req, ok := b.access[id]
	if !ok {
		utils.WriteDetail(w, "Access request not found", http.StatusNotFound)
		return nil, false
	}
	return req, true
}

func (b *Backend) isOwner(user models.User, req *models.AccessRequest) bool {
	p, ok := b.projects[req.ProjectID]
	return ok && p.UploadedBy == user.UserID
}

func (b *Backend) getAccessRequest(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	req, ok := b.lookupAccess(w, r)
	if !ok {
		return
	}
	user := currentUser(r)
	if req.RequesterID != user.UserID && !b.isOwner(user, req) {
		utils.WriteDetail(w, "Not allowed to view this request", http.StatusForbidden)
		return
	}
	_, _ = utils.WriteJSON(w, req, http.StatusOK)
}

func (b *Backend) respondAccessRequest(w http.ResponseWriter, r *http.Request) {
	var body models.AccessRequestRespond
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteDetail(w, "Invalid JSON was passed", http.StatusUnprocessableEntity)
		return
	}
	if !body.Action.Valid() {
		writeValidation(w, "action", "must be approve, deny or revoke")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	req, ok := b.lookupAccess(w, r)
	if !ok {
		return
	}
	if !b.isOwner(currentUser(r), req) {
		utils.WriteDetail(w, "Only the project owner can respond", http.StatusForbidden)
		return
	}

	switch body.Action {
	case models.ActionApprove:
		req.Status = models.AccessApproved
	case models.ActionDeny:
		req.Status = models.AccessDenied
	case models.ActionRevoke:
		if req.Status != models.AccessApproved {
			utils.WriteDetail(w, "Only approved requests can be revoked", http.StatusBadRequest)
			return
		}
		req.Status = models.AccessRevoked
	}
	now := time.Now().UTC()
	req.RespondedAt = &now
	req.ResponseMessage = body.ResponseMessage
	req.ExpiresAt = body.ExpiresAt

	_, _ = utils.WriteJSON(w, req, http.StatusOK)
}

func (b *Backend) cancelAccessRequest(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	req, ok := b.lookupAccess(w, r)
	if !ok {
		return
	}
	if req.RequesterID != currentUser(r).UserID {
		utils.WriteDetail(w, "Only the requester can cancel", http.StatusForbidden)
		return
	}
	if req.Status != models.AccessPending {
		utils.WriteDetail(w, "Only pending requests can be cancelled", http.StatusBadRequest)
		return
	}
	delete(b.access, req.RequestID)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) checkAccess(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.lookupProject(w, r)
	if !ok {
		return
	}
	user := currentUser(r)
	out := models.AccessCheck{
		ProjectID:    p.ProjectID,
		HasAccess:    b.canView(user, p),
		PrivacyLevel: p.PrivacyLevel,
	}
	var latest *models.AccessRequest
	for _, req := range b.access {
		if req.ProjectID == p.ProjectID && req.RequesterID == user.UserID {
			if latest == nil || req.RequestID > latest.RequestID {
				latest = req
			}
		}
	}
	if latest != nil {
		out.RequestStatus = latest.Status
	}

	_, _ = utils.WriteJSON(w, out, http.StatusOK)
}
