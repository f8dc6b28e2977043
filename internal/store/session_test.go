package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/campus-archive/models"
)

// brokenStorage fails every operation.
type brokenStorage struct{}

var errDiskGone = errors.New("disk gone")

func (brokenStorage) GetItem(context.Context, string) (string, bool, error) {
	return "", false, errDiskGone
}
func (brokenStorage) SetItem(context.Context, string, string) error { return errDiskGone }
func (brokenStorage) RemoveItem(context.Context, ...string) error   { return errDiskGone }
func (brokenStorage) Close() error                                  { return nil }

var testSession = models.Session{
	Token: "header.payload.signature",
	Profile: models.Profile{
		UserID:   7,
		Email:    "siti@student.example.ac.id",
		FullName: "Siti Rahma",
		Role:     models.RoleStudent,
	},
}

func TestSessionStore_SaveAndRead(t *testing.T) {
	local := NewMemoryLocalStorage()
	s := NewSessionStore(local)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testSession))

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSession.Token, token)

	profile, err := s.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSession.Profile, profile)

	session, err := s.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSession, session)

	// entries use the same keys as the web client
	raw, ok, err := local.GetItem(ctx, "user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"id":7,"email":"siti@student.example.ac.id","full_name":"Siti Rahma","role":"student"}`, raw)
}

func TestSessionStore_Anonymous(t *testing.T) {
	s := NewSessionStore(NewMemoryLocalStorage())
	ctx := context.Background()

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	_, err = s.Profile(ctx)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	session, err := s.Session(ctx)
	require.NoError(t, err)
	assert.False(t, session.Authenticated())
}

func TestSessionStore_ClearIsIdempotent(t *testing.T) {
	s := NewSessionStore(NewMemoryLocalStorage())
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, testSession))

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	_, err = s.Profile(ctx)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_CorruptedProfile(t *testing.T) {
	local := NewMemoryLocalStorage()
	ctx := context.Background()
	require.NoError(t, local.SetItem(ctx, TokenKey, "tok"))
	require.NoError(t, local.SetItem(ctx, ProfileKey, "{not json"))

	s := NewSessionStore(local)

	_, err := s.Profile(ctx)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	session, err := s.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", session.Token)
	assert.Zero(t, session.Profile)
}

func TestSessionStore_StorageFailures(t *testing.T) {
	s := NewSessionStore(brokenStorage{})
	ctx := context.Background()

	_, err := s.Token(ctx)
	assert.ErrorIs(t, err, errDiskGone)
	_, err = s.Profile(ctx)
	assert.ErrorIs(t, err, errDiskGone)
	assert.ErrorIs(t, s.Save(ctx, testSession), errDiskGone)
	assert.ErrorIs(t, s.Clear(ctx), errDiskGone)
}

func TestSessionStore_ConcurrentClear(t *testing.T) {
	s := NewSessionStore(NewMemoryLocalStorage())
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, testSession))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Clear(ctx))
		}()
	}
	wg.Wait()

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
