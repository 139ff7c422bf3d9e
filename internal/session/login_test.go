package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"caselink/internal/identity"
	"caselink/internal/identity/mocks"
	"caselink/internal/platform/logger"
	"caselink/internal/platform/storage"
	dErrors "caselink/pkg/domain-errors"
)

type FlowSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	provider *mocks.MockProvider
	store    *Store
	flow     *Flow
}

func TestFlowSuite(t *testing.T) {
	suite.Run(t, new(FlowSuite))
}

func (s *FlowSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.provider = mocks.NewMockProvider(s.ctrl)
	s.store = NewStore(storage.NewInMemoryStorage(), "/lawyer.png")
	s.flow = NewFlow(s.provider, s.store, logger.Discard())
}

func (s *FlowSuite) TestSuccessfulLogin() {
	account := identity.Account{Name: "Dana Reyes", Username: "dana@example.com"}
	token := mintToken(s.T(), []string{"attorney"}, time.Now().Add(time.Hour))

	s.provider.EXPECT().LoginInteractive(gomock.Any()).Return(account, nil)
	s.provider.EXPECT().AcquireTokenSilent(gomock.Any(), account).
		Return(&identity.TokenResponse{AccessToken: token, Account: account}, nil)

	s.Require().NoError(s.flow.Login(context.Background()))

	s.True(s.store.Authenticated())
	got, ok := s.store.Token()
	s.Require().True(ok)
	s.Equal(token, got)
}

func (s *FlowSuite) TestPromptFailureLeavesStoreUntouched() {
	s.provider.EXPECT().LoginInteractive(gomock.Any()).
		Return(identity.Account{}, errors.New("popup dismissed"))

	err := s.flow.Login(context.Background())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	s.False(s.store.Authenticated())
}

func (s *FlowSuite) TestSilentStepFailureLeavesStoreUntouched() {
	account := identity.Account{Username: "dana@example.com"}

	s.provider.EXPECT().LoginInteractive(gomock.Any()).Return(account, nil)
	s.provider.EXPECT().AcquireTokenSilent(gomock.Any(), account).
		Return(nil, errors.New("network error"))

	err := s.flow.Login(context.Background())
	s.Require().Error(err)
	s.False(s.store.Authenticated())
	_, ok := s.store.Token()
	s.False(ok)
}

func (s *FlowSuite) TestMalformedTokenFailsLogin() {
	account := identity.Account{Username: "dana@example.com"}

	s.provider.EXPECT().LoginInteractive(gomock.Any()).Return(account, nil)
	s.provider.EXPECT().AcquireTokenSilent(gomock.Any(), account).
		Return(&identity.TokenResponse{AccessToken: "not.a.token", Account: account}, nil)

	err := s.flow.Login(context.Background())
	s.Require().Error(err)
	s.False(s.store.Authenticated())
}

func (s *FlowSuite) TestLogout() {
	s.store.Login(Identity{Email: "dana@example.com"}, WithToken("tok"))
	s.flow.Logout()
	s.False(s.store.Authenticated())
}

func (s *FlowSuite) TestReloginReplacesSession() {
	first := identity.Account{Name: "Dana Reyes", Username: "dana@example.com"}
	second := identity.Account{Name: "Sam Okafor", Username: "sam@example.com"}
	firstToken := mintToken(s.T(), []string{"attorney"}, time.Now().Add(time.Hour))
	secondToken := mintToken(s.T(), nil, time.Now().Add(time.Hour))

	s.provider.EXPECT().LoginInteractive(gomock.Any()).Return(first, nil)
	s.provider.EXPECT().AcquireTokenSilent(gomock.Any(), first).
		Return(&identity.TokenResponse{AccessToken: firstToken, Account: first}, nil)
	s.Require().NoError(s.flow.Login(context.Background()))

	s.provider.EXPECT().LoginInteractive(gomock.Any()).Return(second, nil)
	s.provider.EXPECT().AcquireTokenSilent(gomock.Any(), second).
		Return(&identity.TokenResponse{AccessToken: secondToken, Account: second}, nil)
	s.Require().NoError(s.flow.Login(context.Background()))

	gotIdentity, ok := s.store.Identity()
	s.Require().True(ok)
	s.Equal("Sam Okafor", gotIdentity.DisplayName)
	_, ok = s.store.Roles()
	s.False(ok, "roles from the first login must not survive re-login")
}
