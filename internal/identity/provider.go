// Package identity abstracts the identity provider the session layer talks
// to. The session layer depends only on the Provider shape, not on any
// specific vendor.
package identity

import "context"

//go:generate mockgen -source=provider.go -destination=mocks/mocks.go -package=mocks

// Account is a principal the provider already knows on this device profile.
type Account struct {
	// Name is the display name, when the provider exposes one.
	Name string `json:"name"`
	// Username is the email or login the provider keys the account by.
	Username string `json:"username"`
}

// TokenResponse is the outcome of a token acquisition.
type TokenResponse struct {
	AccessToken string
	Account     Account
}

// Provider exposes the three provider interactions the session layer needs.
type Provider interface {
	// Accounts lists the accounts previously established on this profile.
	// An empty slice means the user must log in interactively.
	Accounts(ctx context.Context) ([]Account, error)

	// AcquireTokenSilent obtains a token for account without any user-visible
	// prompt. Returns sentinel.ErrNoAccount (wrapped) when the provider no
	// longer honors the account.
	AcquireTokenSilent(ctx context.Context, account Account) (*TokenResponse, error)

	// LoginInteractive runs the provider's visible login prompt and yields
	// the authenticated account. Token acquisition follows as a separate
	// silent call so both login paths produce the same shape.
	LoginInteractive(ctx context.Context) (Account, error)

	// InteractionInProgress reports whether an interactive flow is currently
	// running; rehydration must not race one.
	InteractionInProgress() bool
}
