package navigation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/internal/config"
	"github.com/MKhiriev/campus-archive/internal/logger"
	"github.com/MKhiriev/campus-archive/internal/store"
	"github.com/MKhiriev/campus-archive/models"
)

func TestRouter_Redirect(t *testing.T) {
	r := NewRouter("/projects")

	var got []Navigation
	r.OnNavigate(func(n Navigation) { got = append(got, n) })

	r.SetLocation("/projects/12")
	assert.Empty(t, got)

	r.Redirect("/search", "user")
	require.Len(t, got, 1)
	assert.Equal(t, Navigation{From: "/projects/12", To: "/search", Reason: "user"}, got[0])
	assert.Equal(t, "/search", r.Location())
}

func TestRedirectToLogin(t *testing.T) {
	tests := []struct {
		name      string
		location  string
		redirects int
	}{
		{name: "from dashboard", location: "/dashboard", redirects: 1},
		{name: "already on login", location: "/login", redirects: 0},
		{name: "login with query", location: "/login?next=/upload", redirects: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(tt.location)
			redirects := 0
			r.OnNavigate(func(Navigation) { redirects++ })

			RedirectToLogin(r, nil)(adapter.SessionExpired{StatusCode: http.StatusUnauthorized})

			assert.Equal(t, tt.redirects, redirects)
			assert.True(t, r.AtLogin())
		})
	}
}

func TestRedirectToLogin_SecondExpiryIsNoop(t *testing.T) {
	r := NewRouter("/projects/mine")
	var got []Navigation
	r.OnNavigate(func(n Navigation) { got = append(got, n) })

	listener := RedirectToLogin(r, logger.Nop())
	listener(adapter.SessionExpired{})
	listener(adapter.SessionExpired{})

	require.Len(t, got, 1)
	assert.Equal(t, "session_expired", got[0].Reason)
}

// The full path: a 401 from the backend clears both storage entries and
// lands the user on the login view exactly once.
func TestUnauthorizedResponseRedirectsToLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	ctx := context.Background()
	local := store.NewMemoryLocalStorage()
	session := store.NewSessionStore(local)
	require.NoError(t, session.Save(ctx, models.Session{Token: "t", Profile: models.Profile{UserID: 1}}))

	events := adapter.NewEvents()
	router := NewRouter("/projects/mine")
	events.Subscribe(RedirectToLogin(router, nil))

	var mu sync.Mutex
	redirects := 0
	router.OnNavigate(func(Navigation) {
		mu.Lock()
		redirects++
		mu.Unlock()
	})

	tr, err := adapter.NewHTTPTransport(config.ClientAdapter{BaseURL: srv.URL + "/api"},
		adapter.DefaultPipeline(adapter.PipelineDeps{Session: session, Events: events}), nil)
	require.NoError(t, err)

	_, err = tr.Get(ctx, "/projects/my/projects")
	require.ErrorIs(t, err, adapter.ErrUnauthorized)
	_, err = tr.Get(ctx, "/projects/my/projects")
	require.ErrorIs(t, err, adapter.ErrUnauthorized)

	for _, key := range []string{store.TokenKey, store.ProfileKey} {
		_, ok, err := local.GetItem(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
	assert.Equal(t, LoginPath, router.Location())
	assert.Equal(t, 1, redirects)
}
