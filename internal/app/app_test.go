package app

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"caselink/internal/identity"
	"caselink/internal/identity/mocks"
	"caselink/internal/platform/config"
	"caselink/internal/platform/logger"
	"caselink/internal/platform/notify"
	"caselink/internal/platform/storage"
	"caselink/internal/session"
	"caselink/internal/summary"
)

type AppSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	provider *mocks.MockProvider
	store    storage.Storage
	cfg      config.Client
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppSuite))
}

func (s *AppSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.provider = mocks.NewMockProvider(s.ctrl)
	s.store = storage.NewInMemoryStorage()
	s.cfg = config.Client{
		APIBaseURL:    "http://localhost:8000",
		DefaultAvatar: "/lawyer.png",
	}
}

func (s *AppSuite) newApp(provider identity.Provider) *App {
	return New(s.cfg, Options{
		Logger:   logger.Discard(),
		Notifier: notify.NewRecorder(),
		Storage:  s.store,
		Provider: provider,
	})
}

func signedToken(s *AppSuite, roles []string) string {
	claims := jwt.MapClaims{
		"roles": roles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	s.Require().NoError(err)
	return token
}

func (s *AppSuite) TestDefaultWiring() {
	a := New(s.cfg, Options{Logger: logger.Discard()})

	s.NotNil(a.Session)
	s.NotNil(a.Login)
	s.NotNil(a.Gateway)
	s.NotNil(a.Cases)
	s.NotNil(a.Summaries)
	s.NotNil(a.Chat)
	s.NotNil(a.Uploads)
	s.False(a.Session.Authenticated())
}

func (s *AppSuite) TestRunRestoresSessionAndClosesGate() {
	account := identity.Account{Name: "Dana Reyes", Username: "dana@firm.example"}
	token := signedToken(s, []string{"attorney"})

	s.provider.EXPECT().InteractionInProgress().Return(false)
	s.provider.EXPECT().Accounts(gomock.Any()).Return([]identity.Account{account}, nil)
	s.provider.EXPECT().AcquireTokenSilent(gomock.Any(), account).
		Return(&identity.TokenResponse{AccessToken: token, Account: account}, nil)

	a := s.newApp(s.provider)
	a.Run(context.Background())

	select {
	case <-a.Ready():
	default:
		s.Fail("gate should be closed after Run returns")
	}
	s.True(a.Session.Authenticated())
	roles, ok := a.Session.Roles()
	s.True(ok)
	s.Equal([]string{"attorney"}, roles)
}

func (s *AppSuite) TestGateClosesWithoutSession() {
	s.provider.EXPECT().InteractionInProgress().Return(false)
	s.provider.EXPECT().Accounts(gomock.Any()).Return(nil, nil)

	a := s.newApp(s.provider)
	a.Run(context.Background())

	select {
	case <-a.Ready():
	default:
		s.Fail("gate should close even when no session is recovered")
	}
	s.False(a.Session.Authenticated())
}

func (s *AppSuite) TestLogoutClearsSessionAndSummaries() {
	// Seed a persisted summary before the container recovers its cache.
	summary.NewCache(s.store).SetSummary(3, summary.OverallSummary{Body: "stale"})

	a := s.newApp(s.provider)
	a.Session.Login(
		session.Identity{DisplayName: "Dana Reyes", Email: "dana@firm.example"},
		session.WithToken("tok"),
	)
	_, ok := a.Summaries.Cached(3)
	s.Require().True(ok)

	a.Logout()

	s.False(a.Session.Authenticated())
	_, ok = a.Session.Token()
	s.False(ok)
	_, ok = a.Summaries.Cached(3)
	s.False(ok)
}

func (s *AppSuite) TestLogoutForgetsProviderAccount() {
	provider := &forgettingProvider{}
	a := s.newApp(provider)
	a.Session.Login(session.Identity{DisplayName: "Dana Reyes", Email: "dana@firm.example"})

	a.Logout()

	s.Equal([]string{"dana@firm.example"}, provider.forgotten)
}

type forgettingProvider struct {
	forgotten []string
}

func (f *forgettingProvider) Accounts(context.Context) ([]identity.Account, error) {
	return nil, nil
}

func (f *forgettingProvider) AcquireTokenSilent(context.Context, identity.Account) (*identity.TokenResponse, error) {
	return nil, nil
}

func (f *forgettingProvider) LoginInteractive(context.Context) (identity.Account, error) {
	return identity.Account{}, nil
}

func (f *forgettingProvider) InteractionInProgress() bool { return false }

func (f *forgettingProvider) Forget(username string) error {
	f.forgotten = append(f.forgotten, username)
	return nil
}
