package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"caselink/internal/platform/storage"
	"caselink/pkg/platform/sentinel"
)

// accountCacheKey scopes the provider's known-account cache in tab-session
// storage, alongside the session and summary snapshots.
const accountCacheKey = "idp-accounts"

// Prompter surfaces the provider's visible login. The host owns the actual
// prompt (popup, redirect, device code); the provider only consumes its
// outcome.
type Prompter interface {
	Prompt(ctx context.Context) (*AuthorizationResult, error)
}

// AuthorizationResult is what a completed interactive prompt yields.
type AuthorizationResult struct {
	Account      Account
	RefreshToken string
}

// HTTPProvider implements Provider against an OAuth-style identity provider
// over HTTP. Known accounts live in tab-session storage together with the
// refresh credential that backs silent acquisition.
type HTTPProvider struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
	storage    storage.Storage
	prompter   Prompter

	interactions atomic.Int32
}

func NewHTTPProvider(baseURL, clientID string, store storage.Storage, prompter Prompter) *HTTPProvider {
	return &HTTPProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientID:   clientID,
		httpClient: &http.Client{},
		storage:    store,
		prompter:   prompter,
	}
}

// cachedAccount pairs an account with the refresh credential silent
// acquisition exchanges at the token endpoint.
type cachedAccount struct {
	Account      Account `json:"account"`
	RefreshToken string  `json:"refresh_token"`
}

func (p *HTTPProvider) Accounts(_ context.Context) ([]Account, error) {
	cached, err := p.loadCache()
	if err != nil {
		return nil, err
	}
	accounts := make([]Account, 0, len(cached))
	for _, c := range cached {
		accounts = append(accounts, c.Account)
	}
	return accounts, nil
}

func (p *HTTPProvider) AcquireTokenSilent(ctx context.Context, account Account) (*TokenResponse, error) {
	cached, err := p.loadCache()
	if err != nil {
		return nil, err
	}

	var refresh string
	for _, c := range cached {
		if c.Account.Username == account.Username {
			refresh = c.RefreshToken
			break
		}
	}
	if refresh == "" {
		return nil, fmt.Errorf("account %q: %w", account.Username, sentinel.ErrNoAccount)
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {p.clientID},
		"refresh_token": {refresh},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		// Consent revoked or refresh credential stale; the account is no
		// longer usable silently.
		return nil, fmt.Errorf("token endpoint status %d: %w", resp.StatusCode, sentinel.ErrNoAccount)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint status %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return nil, errors.New("token endpoint returned empty access_token")
	}

	return &TokenResponse{AccessToken: body.AccessToken, Account: account}, nil
}

func (p *HTTPProvider) LoginInteractive(ctx context.Context) (Account, error) {
	p.interactions.Add(1)
	defer p.interactions.Add(-1)

	result, err := p.prompter.Prompt(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("interactive login: %w", err)
	}

	cached, err := p.loadCache()
	if err != nil {
		return Account{}, err
	}
	// Replace any prior entry for the same username.
	next := make([]cachedAccount, 0, len(cached)+1)
	for _, c := range cached {
		if c.Account.Username != result.Account.Username {
			next = append(next, c)
		}
	}
	next = append(next, cachedAccount{Account: result.Account, RefreshToken: result.RefreshToken})
	if err := p.saveCache(next); err != nil {
		return Account{}, err
	}

	return result.Account, nil
}

func (p *HTTPProvider) InteractionInProgress() bool {
	return p.interactions.Load() > 0
}

// Forget drops the cached entry for username; used on logout.
func (p *HTTPProvider) Forget(username string) error {
	cached, err := p.loadCache()
	if err != nil {
		return err
	}
	next := make([]cachedAccount, 0, len(cached))
	for _, c := range cached {
		if c.Account.Username != username {
			next = append(next, c)
		}
	}
	return p.saveCache(next)
}

func (p *HTTPProvider) loadCache() ([]cachedAccount, error) {
	raw, err := p.storage.Load(accountCacheKey)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cached []cachedAccount
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("decode account cache: %w", err)
	}
	return cached, nil
}

func (p *HTTPProvider) saveCache(cached []cachedAccount) error {
	raw, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return p.storage.Save(accountCacheKey, raw)
}
