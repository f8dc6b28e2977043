package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/campus-archive/internal/config"
	"github.com/MKhiriev/campus-archive/internal/crypto"
	"github.com/MKhiriev/campus-archive/internal/fakeapi"
	"github.com/MKhiriev/campus-archive/internal/navigation"
	"github.com/MKhiriev/campus-archive/internal/service"
	"github.com/MKhiriev/campus-archive/models"
)

const testSecret = "campus-archive-app-secret"

func newTestApp(t *testing.T) (*App, *fakeapi.Backend) {
	t.Helper()

	backend := fakeapi.New(testSecret, nil)
	srv := fakeapi.NewServer(backend)
	t.Cleanup(srv.Close)

	cfg := &config.ClientConfig{
		App: config.ClientApp{
			Env:             config.EnvDevelopment,
			EncryptionKey:   testSecret,
			KeyDerivation:   crypto.KeyDerivationLegacy,
			SensitiveFields: crypto.DefaultSensitiveFields,
		},
		Adapter: config.ClientAdapter{BaseURL: srv.URL + "/api/", RequestTimeout: 5 * time.Second, SendCredentials: true},
		Storage: config.ClientStorage{Driver: config.DriverMemory},
	}

	app, err := NewApp(context.Background(), cfg, "/projects", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app, backend
}

func TestNewApp_NilConfig(t *testing.T) {
	_, err := NewApp(context.Background(), nil, "/", nil)
	require.Error(t, err)
}

func TestNewApp_UnknownStorageDriver(t *testing.T) {
	_, err := NewApp(context.Background(), &config.ClientConfig{
		Storage: config.ClientStorage{Driver: "etcd"},
	}, "/", nil)
	require.Error(t, err)
}

func TestNewApp_Wiring(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	assert.NotContains(t, app.Transport.BaseURL(), "/api/")

	_, err := app.Services.AuthService.Register(ctx, models.UserCreate{
		Email: "ana@campus.ac.id", Password: "securepassword123", Role: models.RoleStudent,
	})
	require.NoError(t, err)

	session, err := app.Services.AuthService.Login(ctx, models.Credentials{Email: "ana@campus.ac.id", Password: "securepassword123"})
	require.NoError(t, err)

	token, err := app.Storages.Session.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Token, token)
}

func TestNewApp_SessionExpiryRedirectsToLogin(t *testing.T) {
	app, backend := newTestApp(t)
	ctx := context.Background()

	var navs []navigation.Navigation
	app.Router.OnNavigate(func(n navigation.Navigation) { navs = append(navs, n) })

	_, err := app.Services.AuthService.Register(ctx, models.UserCreate{
		Email: "ana@campus.ac.id", Password: "securepassword123", Role: models.RoleStudent,
	})
	require.NoError(t, err)
	_, err = app.Services.AuthService.Login(ctx, models.Credentials{Email: "ana@campus.ac.id", Password: "securepassword123"})
	require.NoError(t, err)

	backend.RevokeTokens()
	app.Router.SetLocation("/projects/mine")

	_, err = app.Services.ProjectService.Mine(ctx)
	require.True(t, service.IsSessionExpired(err))

	// already at login: no second redirect
	_, err = app.Services.ProjectService.Mine(ctx)
	require.True(t, service.IsSessionExpired(err))

	require.Len(t, navs, 1)
	assert.Equal(t, "/projects/mine", navs[0].From)
	assert.Equal(t, navigation.LoginPath, navs[0].To)
	assert.Equal(t, "session_expired", navs[0].Reason)

	current, err := app.Services.AuthService.Current(ctx)
	require.NoError(t, err)
	assert.False(t, current.Authenticated())
}
