package session

import (
	"context"
	"log/slog"
	"sync"

	"caselink/internal/identity"
	"caselink/internal/platform/metrics"
)

// Rehydrator performs the single silent session-recovery attempt at startup.
// Its Done channel is the render gate: the host must not show protected views
// until it closes, and it closes exactly once whatever the outcome.
type Rehydrator struct {
	provider identity.Provider
	store    *Store
	logger   *slog.Logger
	metrics  *metrics.Metrics

	done chan struct{}
	once sync.Once
}

func NewRehydrator(provider identity.Provider, store *Store, logger *slog.Logger, m *metrics.Metrics) *Rehydrator {
	return &Rehydrator{
		provider: provider,
		store:    store,
		logger:   logger,
		metrics:  m,
		done:     make(chan struct{}),
	}
}

// Done closes when the rehydration attempt has completed, successfully or
// not. Until then the host renders nothing, which avoids flashing the
// signed-out view at users who do hold a valid session.
func (r *Rehydrator) Done() <-chan struct{} {
	return r.done
}

// Run executes the attempt. Failure is never fatal and never user-visible:
// a user whose session cannot be recovered silently just lands on the login
// screen. Run does not retry, poll, or repeat.
func (r *Rehydrator) Run(ctx context.Context) {
	defer r.complete()

	// An in-flight interactive flow, or a token already in the store, means
	// rehydration has nothing to do and must not clobber either.
	if r.provider.InteractionInProgress() {
		r.metrics.RehydrationOutcomes.WithLabelValues("skipped").Inc()
		return
	}
	if _, ok := r.store.Token(); ok {
		r.metrics.RehydrationOutcomes.WithLabelValues("skipped").Inc()
		return
	}

	accounts, err := r.provider.Accounts(ctx)
	if err != nil {
		r.logger.Warn("rehydration: listing accounts failed", "error", err)
		r.metrics.RehydrationOutcomes.WithLabelValues("none").Inc()
		return
	}
	if len(accounts) == 0 {
		r.metrics.RehydrationOutcomes.WithLabelValues("none").Inc()
		return
	}

	account := accounts[0]
	resp, err := r.provider.AcquireTokenSilent(ctx, account)
	if err != nil {
		r.logger.Warn("rehydration: silent token acquisition failed",
			"username", account.Username, "error", err)
		r.metrics.RehydrationOutcomes.WithLabelValues("none").Inc()
		return
	}

	if err := applyTokenResponse(r.store, account, resp); err != nil {
		r.logger.Warn("rehydration: token decode failed",
			"username", account.Username, "error", err)
		r.metrics.RehydrationOutcomes.WithLabelValues("none").Inc()
		return
	}

	r.metrics.RehydrationOutcomes.WithLabelValues("restored").Inc()
}

func (r *Rehydrator) complete() {
	r.once.Do(func() { close(r.done) })
}

// applyTokenResponse is the shared tail of both acquisition paths: decode the
// token payload, then write the store in one atomic Login. Decode failure
// happens before the Login call, so a bad token never partially updates the
// store.
func applyTokenResponse(store *Store, account identity.Account, resp *identity.TokenResponse) error {
	claims, err := decodeTokenClaims(resp.AccessToken)
	if err != nil {
		return err
	}

	opts := []LoginOption{WithToken(resp.AccessToken)}
	if claims.Roles != nil {
		opts = append(opts, WithRoles(claims.Roles))
	}
	if claims.ExpiresAt != nil {
		opts = append(opts, WithExpiry(claims.ExpiresAt.Unix()))
	}

	store.Login(Identity{DisplayName: account.Name, Email: account.Username}, opts...)
	return nil
}
