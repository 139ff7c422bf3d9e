package session

import (
	"context"
	"log/slog"

	"caselink/internal/identity"
	dErrors "caselink/pkg/domain-errors"
)

// Flow runs the user-initiated authentication path: a visible provider
// prompt, then a silent token acquisition that normalizes the result into
// the same shape rehydration produces.
type Flow struct {
	provider identity.Provider
	store    *Store
	logger   *slog.Logger
}

func NewFlow(provider identity.Provider, store *Store, logger *slog.Logger) *Flow {
	return &Flow{provider: provider, store: store, logger: logger}
}

// Login executes the interactive flow. Any failure at any step leaves the
// store untouched and resolves to a single "login did not succeed" outcome;
// the caller routes back to the login view rather than rendering a distinct
// error state.
func (f *Flow) Login(ctx context.Context) error {
	account, err := f.provider.LoginInteractive(ctx)
	if err != nil {
		f.logger.Warn("interactive login failed", "error", err)
		return dErrors.Wrap(err, dErrors.CodeUnauthorized, "login did not succeed")
	}

	resp, err := f.provider.AcquireTokenSilent(ctx, account)
	if err != nil {
		f.logger.Warn("post-login token acquisition failed",
			"username", account.Username, "error", err)
		return dErrors.Wrap(err, dErrors.CodeUnauthorized, "login did not succeed")
	}

	if err := applyTokenResponse(f.store, account, resp); err != nil {
		f.logger.Warn("post-login token decode failed",
			"username", account.Username, "error", err)
		return dErrors.Wrap(err, dErrors.CodeUnauthorized, "login did not succeed")
	}

	return nil
}

// Logout clears the session. The summary cache is cleared by the composition
// layer alongside this call.
func (f *Flow) Logout() {
	f.store.Logout()
}
