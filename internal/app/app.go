// Package app wires the client components together. Hosts construct an
// App, run the session rehydrator, and mount their views against the
// exposed services once Ready is closed.
package app

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"caselink/internal/cases"
	"caselink/internal/chat"
	"caselink/internal/gateway"
	"caselink/internal/identity"
	"caselink/internal/platform/config"
	"caselink/internal/platform/logger"
	"caselink/internal/platform/metrics"
	"caselink/internal/platform/notify"
	"caselink/internal/platform/storage"
	"caselink/internal/session"
	"caselink/internal/summary"
	"caselink/internal/uploads"
)

// Options carries the swappable edges of the container. Every field is
// optional; zero values get sensible defaults.
type Options struct {
	Logger   *slog.Logger
	Notifier notify.Notifier
	Storage  storage.Storage

	// Provider overrides the HTTP identity provider built from config.
	// Prompter is required when Provider is nil and interactive login
	// is expected to succeed.
	Provider identity.Provider
	Prompter identity.Prompter

	// Registerer receives the client metrics. Nil disables collection.
	Registerer prometheus.Registerer
}

// App is the composed client. Fields are read-only after New.
type App struct {
	Session   *session.Store
	Login     *session.Flow
	Gateway   *gateway.Gateway
	Cases     *cases.Service
	Summaries *summary.Service
	Chat      *chat.Service
	Uploads   *uploads.Uploader

	provider   identity.Provider
	rehydrator *session.Rehydrator
	logger     *slog.Logger
}

func New(cfg config.Client, opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.New()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewSlogNotifier(log)
	}
	store := opts.Storage
	if store == nil {
		store = storage.NewInMemoryStorage()
	}
	provider := opts.Provider
	if provider == nil {
		provider = identity.NewHTTPProvider(cfg.ProviderBaseURL, cfg.ProviderClientID, store, opts.Prompter)
	}
	m := metrics.NewNop()
	if opts.Registerer != nil {
		m = metrics.New(opts.Registerer)
	}

	sessionStore := session.NewStore(store, cfg.DefaultAvatar)
	gw := gateway.New(cfg.APIBaseURL, sessionStore, notifier, m, log)
	summaryCache := summary.NewCache(store)

	return &App{
		Session:   sessionStore,
		Login:     session.NewFlow(provider, sessionStore, log),
		Gateway:   gw,
		Cases:     cases.NewService(gw),
		Summaries: summary.NewService(gw, summaryCache, notifier),
		Chat:      chat.NewService(gw),
		Uploads:   uploads.New(cfg.APIBaseURL, sessionStore, notifier, m, log),

		provider:   provider,
		rehydrator: session.NewRehydrator(provider, sessionStore, log, m),
		logger:     log,
	}
}

// Run attempts silent session recovery. It always closes the Ready gate,
// whether or not a session was restored.
func (a *App) Run(ctx context.Context) {
	a.rehydrator.Run(ctx)
}

// Ready is closed once rehydration has settled. Hosts should not read
// session state before then.
func (a *App) Ready() <-chan struct{} {
	return a.rehydrator.Done()
}

type accountForgetter interface {
	Forget(username string) error
}

// Logout clears the session, drops cached summaries, and removes the
// signed-in account from the provider cache when the provider supports it.
func (a *App) Logout() {
	identity, signedIn := a.Session.Identity()

	a.Login.Logout()
	a.Summaries.Clear()

	if !signedIn {
		return
	}
	if f, ok := a.provider.(accountForgetter); ok && identity.Email != "" {
		if err := f.Forget(identity.Email); err != nil {
			a.logger.Warn("could not remove cached account", "error", err)
		}
	}
}
