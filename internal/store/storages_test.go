package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/campus-archive/internal/config"
	"github.com/MKhiriev/campus-archive/internal/logger"
)

func TestNewClientStorages_Memory(t *testing.T) {
	s, err := NewClientStorages(context.Background(), config.ClientStorage{Driver: config.DriverMemory}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Session.Save(context.Background(), testSession))
	token, err := s.Session.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testSession.Token, token)
}

func TestNewClientStorages_Bolt(t *testing.T) {
	cfg := config.ClientStorage{
		Driver: config.DriverBolt,
		DSN:    filepath.Join(t.TempDir(), "session.bolt"),
	}

	s, err := NewClientStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestNewClientStorages_UnknownDriver(t *testing.T) {
	_, err := NewClientStorages(context.Background(), config.ClientStorage{Driver: "redis"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownStorageDriver)
}
