package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/internal/config"
	"github.com/MKhiriev/campus-archive/internal/crypto"
	"github.com/MKhiriev/campus-archive/internal/fakeapi"
	"github.com/MKhiriev/campus-archive/internal/logger"
	"github.com/MKhiriev/campus-archive/internal/store"
	"github.com/MKhiriev/campus-archive/internal/utils"
	"github.com/MKhiriev/campus-archive/models"
)

const testSecret = "campus-archive-test-secret"

// testClient is one signed-out client wired to a shared fake backend.
type testClient struct {
	*ClientServices
	session store.SessionStore
	events  *adapter.Events
	cipher  crypto.FieldCipher
}

type testEnv struct {
	backend *fakeapi.Backend
	baseURL string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := fakeapi.New(testSecret, nil)
	srv := fakeapi.NewServer(backend)
	t.Cleanup(srv.Close)
	return &testEnv{backend: backend, baseURL: srv.URL + "/api"}
}

func configFor(e *testEnv) config.ClientAdapter {
	return config.ClientAdapter{
		BaseURL:         e.baseURL,
		RequestTimeout:  5 * time.Second,
		SendCredentials: true,
	}
}

func (e *testEnv) newClient(t *testing.T) *testClient {
	t.Helper()

	session := store.NewSessionStore(store.NewMemoryLocalStorage())
	cipher := crypto.NewFieldCipher(testSecret, crypto.KeyDerivationLegacy, logger.Nop())
	events := adapter.NewEvents()

	transport, err := adapter.NewHTTPTransport(configFor(e), adapter.DefaultPipeline(adapter.PipelineDeps{
		Session:    session,
		Cipher:     cipher,
		Events:     events,
		RequestIDs: utils.NewUUIDGenerator(),
	}), nil)
	require.NoError(t, err)

	return &testClient{
		ClientServices: NewClientServices(transport, session, cipher, nil, nil),
		session:        session,
		events:         events,
		cipher:         cipher,
	}
}

// signUp registers and signs in a new account on a fresh client.
func (e *testEnv) signUp(t *testing.T, email string, role models.Role) *testClient {
	t.Helper()
	c := e.newClient(t)
	ctx := context.Background()

	user := models.UserCreate{Email: email, Password: "securepassword123", FullName: email, Role: role}
	if role == models.RoleStudent {
		user.StudentID = "2021" + email[:3]
	}
	_, err := c.AuthService.Register(ctx, user)
	require.NoError(t, err)

	_, err = c.AuthService.Login(ctx, models.Credentials{Email: email, Password: user.Password})
	require.NoError(t, err)
	return c
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
