package summary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"caselink/internal/gateway"
	"caselink/internal/platform/logger"
	"caselink/internal/platform/metrics"
	"caselink/internal/platform/notify"
	"caselink/internal/platform/storage"
	"caselink/internal/session"
)

type ServiceSuite struct {
	suite.Suite
	server   *httptest.Server
	notifier *notify.Recorder
	service  *Service

	generations atomic.Int32
	failNext    bool
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.generations.Store(0)
	s.failNext = false

	r := chi.NewRouter()
	r.Get("/cases/{caseID}/summary", func(w http.ResponseWriter, req *http.Request) {
		if s.failNext {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"summarizer unavailable"}`))
			return
		}
		s.generations.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`"The estate documents indicate a contested will."`))
	})
	s.server = httptest.NewServer(r)

	store := session.NewStore(storage.NewInMemoryStorage(), "/lawyer.png")
	store.Login(session.Identity{Email: "dana@example.com"}, session.WithToken("tok"))

	s.notifier = notify.NewRecorder()
	gw := gateway.New(s.server.URL, store, s.notifier, metrics.NewNop(), logger.Discard())
	s.service = NewService(gw, NewCache(storage.NewInMemoryStorage()), s.notifier)
}

func (s *ServiceSuite) TearDownTest() {
	s.server.Close()
}

func (s *ServiceSuite) TestGenerateCallsBackendOnce() {
	got, err := s.service.Generate(context.Background(), 7, 3)
	s.Require().NoError(err)
	s.Equal("The estate documents indicate a contested will.", got.Body)
	s.Equal(3, got.DocumentsAnalyzed)
	s.False(got.GeneratedAt.IsZero())

	// Second request for the same case is served from cache.
	again, err := s.service.Generate(context.Background(), 7, 3)
	s.Require().NoError(err)
	s.Equal(got, again)
	s.Equal(int32(1), s.generations.Load())
}

func (s *ServiceSuite) TestGenerateFailure() {
	s.failNext = true

	_, err := s.service.Generate(context.Background(), 7, 3)
	s.Require().Error(err)
	s.Contains(err.Error(), "summarizer unavailable")

	_, ok := s.service.Cached(7)
	s.False(ok, "a failed generation must not populate the cache")
}

func (s *ServiceSuite) TestClearForcesRegeneration() {
	_, err := s.service.Generate(context.Background(), 7, 3)
	s.Require().NoError(err)

	s.service.Clear()

	_, err = s.service.Generate(context.Background(), 7, 3)
	s.Require().NoError(err)
	s.Equal(int32(2), s.generations.Load())
}

func (s *ServiceSuite) TestSuccessNotificationFiresOnFreshGenerationOnly() {
	_, err := s.service.Generate(context.Background(), 7, 3)
	s.Require().NoError(err)
	_, err = s.service.Generate(context.Background(), 7, 3)
	s.Require().NoError(err)

	var successes int
	for _, e := range s.notifier.Events() {
		if e.Level == "success" {
			successes++
		}
	}
	s.Equal(1, successes)
}
