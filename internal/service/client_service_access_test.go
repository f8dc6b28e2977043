package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/internal/validators"
	"github.com/MKhiriev/campus-archive/models"
)

func TestAccessRequestFlow(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUp(t, "ana@campus.ac.id", models.RoleStudent)
	requester := env.signUp(t, "budi@campus.ac.id", models.RoleStudent)
	ctx := context.Background()

	p := createProject(t, owner, "Private Research", models.PrivacyPrivate)

	check, err := requester.AccessService.Check(ctx, p.ProjectID)
	require.NoError(t, err)
	assert.False(t, check.HasAccess)
	assert.Empty(t, check.RequestStatus)

	req, err := requester.AccessService.Request(ctx, p.ProjectID, "For my literature review")
	require.NoError(t, err)
	assert.Equal(t, models.AccessPending, req.Status)

	_, err = requester.AccessService.Request(ctx, p.ProjectID, "again")
	require.ErrorIs(t, err, adapter.ErrBadRequest)

	mine, err := requester.AccessService.Mine(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Private Research", mine[0].ProjectTitle)

	incoming, err := owner.AccessService.ForMyProjects(ctx)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, req.RequestID, incoming[0].RequestID)

	_, err = requester.AccessService.Respond(ctx, req.RequestID, models.AccessRequestRespond{Action: models.ActionApprove})
	require.ErrorIs(t, err, adapter.ErrForbidden)

	approved, err := owner.AccessService.Respond(ctx, req.RequestID, models.AccessRequestRespond{
		Action:          models.ActionApprove,
		ResponseMessage: "Go ahead",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AccessApproved, approved.Status)
	assert.NotNil(t, approved.RespondedAt)

	got, err := requester.AccessService.Get(ctx, req.RequestID)
	require.NoError(t, err)
	assert.Equal(t, "Go ahead", got.ResponseMessage)

	project, err := requester.ProjectService.Get(ctx, p.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, p.ProjectID, project.ProjectID)

	check, err = requester.AccessService.Check(ctx, p.ProjectID)
	require.NoError(t, err)
	assert.True(t, check.HasAccess)
	assert.Equal(t, models.AccessApproved, check.RequestStatus)

	// only pending requests can be cancelled
	err = requester.AccessService.Cancel(ctx, req.RequestID)
	require.ErrorIs(t, err, adapter.ErrBadRequest)

	revoked, err := owner.AccessService.Respond(ctx, req.RequestID, models.AccessRequestRespond{Action: models.ActionRevoke})
	require.NoError(t, err)
	assert.Equal(t, models.AccessRevoked, revoked.Status)

	_, err = requester.ProjectService.Get(ctx, p.ProjectID)
	require.ErrorIs(t, err, adapter.ErrForbidden)
}

func TestAccessRequest_Cancel(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUp(t, "ana@campus.ac.id", models.RoleStudent)
	requester := env.signUp(t, "budi@campus.ac.id", models.RoleStudent)
	ctx := context.Background()

	p := createProject(t, owner, "Advisor Only", models.PrivacyAdvisor)
	req, err := requester.AccessService.Request(ctx, p.ProjectID, "")
	require.NoError(t, err)

	require.NoError(t, requester.AccessService.Cancel(ctx, req.RequestID))

	_, err = requester.AccessService.Get(ctx, req.RequestID)
	require.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestAccessRequest_Validation(t *testing.T) {
	env := newTestEnv(t)
	c := env.newClient(t)
	ctx := context.Background()

	_, err := c.AccessService.Request(ctx, 0, "")
	require.ErrorIs(t, err, validators.ErrInvalidID)

	_, err = c.AccessService.Respond(ctx, 1, models.AccessRequestRespond{Action: "ignore"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
	require.ErrorIs(t, err, validators.ErrInvalidAction)

	assert.Empty(t, env.backend.Requests())
}

func TestAccessRequest_PublicProject(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUp(t, "ana@campus.ac.id", models.RoleStudent)
	requester := env.signUp(t, "budi@campus.ac.id", models.RoleStudent)

	p := createProject(t, owner, "Open Work", models.PrivacyPublic)
	_, err := requester.AccessService.Request(context.Background(), p.ProjectID, "")
	require.ErrorIs(t, err, adapter.ErrBadRequest)

	var te *adapter.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "This project is public", te.Detail)
}
