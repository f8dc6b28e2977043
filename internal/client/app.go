package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/internal/config"
	"github.com/MKhiriev/campus-archive/internal/crypto"
	"github.com/MKhiriev/campus-archive/internal/logger"
	"github.com/MKhiriev/campus-archive/internal/navigation"
	"github.com/MKhiriev/campus-archive/internal/service"
	"github.com/MKhiriev/campus-archive/internal/store"
	"github.com/MKhiriev/campus-archive/internal/utils"
)

// App is a fully wired client.
type App struct {
	Config    *config.ClientConfig
	Logger    *logger.Logger
	Storages  *store.ClientStorages
	Cipher    crypto.FieldCipher
	Events    *adapter.Events
	Router    *navigation.Router
	Transport *adapter.HTTPTransport
	Services  *service.ClientServices

	unsubscribe func()
}

// NewApp builds an App from cfg. The router starts at start; session
// expiry redirects it to the login location. Close releases storage.
func NewApp(ctx context.Context, cfg *config.ClientConfig, start string, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("nil client config")
	}
	if log == nil {
		log = logger.Nop()
	}

	if cfg.App.UsesFallbackKey {
		log.Warn().Msg("no encryption key configured, using the built-in fallback key")
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	cipher := crypto.NewFieldCipher(cfg.App.EncryptionKey, cfg.App.KeyDerivation, log)
	events := adapter.NewEvents()
	router := navigation.NewRouter(start)

	pipeline := adapter.DefaultPipeline(adapter.PipelineDeps{
		Session:         storages.Session,
		Cipher:          cipher,
		SensitiveFields: cfg.App.SensitiveFields,
		Events:          events,
		RequestIDs:      utils.NewUUIDGenerator(),
		Logger:          log,
	})

	transport, err := adapter.NewHTTPTransport(cfg.Adapter, pipeline, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create transport: %w", err)
	}

	services := service.NewClientServices(transport, storages.Session, cipher, cfg.App.SensitiveFields, log)

	log.Info().
		Str("env", cfg.App.Env).
		Str("base_url", transport.BaseURL()).
		Str("storage", cfg.Storage.Driver).
		Msg("client initialized")

	return &App{
		Config:      cfg,
		Logger:      log,
		Storages:    storages,
		Cipher:      cipher,
		Events:      events,
		Router:      router,
		Transport:   transport,
		Services:    services,
		unsubscribe: events.Subscribe(navigation.RedirectToLogin(router, log)),
	}, nil
}

// Close detaches the login redirect and closes local storage.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if err := a.Storages.Close(); err != nil {
		return fmt.Errorf("close local storage: %w", err)
	}
	return nil
}
