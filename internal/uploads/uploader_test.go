package uploads

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"caselink/internal/platform/logger"
	"caselink/internal/platform/metrics"
	"caselink/internal/platform/notify"
	"caselink/internal/platform/storage"
	"caselink/internal/session"
)

type UploaderSuite struct {
	suite.Suite
	server   *httptest.Server
	notifier *notify.Recorder
	uploader *Uploader

	mu       sync.Mutex
	received []string
	rejects  map[string]bool

	// observed captures the mid-batch uploading flag.
	observed func(caseID int)
}

func TestUploaderSuite(t *testing.T) {
	suite.Run(t, new(UploaderSuite))
}

func (s *UploaderSuite) SetupTest() {
	s.received = nil
	s.rejects = map[string]bool{}
	s.observed = nil

	r := chi.NewRouter()
	r.Post("/cases/{caseID}/documents", func(w http.ResponseWriter, req *http.Request) {
		s.Require().NoError(req.ParseMultipartForm(1 << 20))
		file, header, err := req.FormFile("file")
		s.Require().NoError(err)
		defer file.Close()

		s.mu.Lock()
		s.received = append(s.received, header.Filename)
		reject := s.rejects[header.Filename]
		s.mu.Unlock()

		if s.observed != nil {
			s.observed(7)
		}
		if reject {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("HTTP 500"))
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	s.server = httptest.NewServer(r)

	store := session.NewStore(storage.NewInMemoryStorage(), "/lawyer.png")
	store.Login(session.Identity{DisplayName: "Dana Reyes"}, session.WithToken("tok-up"))

	s.notifier = notify.NewRecorder()
	s.uploader = New(s.server.URL, store, s.notifier, metrics.NewNop(), logger.Discard())
}

func (s *UploaderSuite) TearDownTest() {
	s.server.Close()
}

func files(names ...string) []File {
	out := make([]File, len(names))
	for i, n := range names {
		out[i] = File{Name: n, Content: strings.NewReader("content of " + n)}
	}
	return out
}

func (s *UploaderSuite) TestBatchAllSucceed() {
	result := s.uploader.Upload(context.Background(), 7, files("a.pdf", "b.pdf"))

	s.Equal(BatchResult{SuccessCount: 2, FailCount: 0}, result)
	s.ElementsMatch([]string{"a.pdf", "b.pdf"}, s.received)
	s.False(s.uploader.Status(7).Uploading)
}

func (s *UploaderSuite) TestBatchJoinCountsFailures() {
	s.rejects["b.pdf"] = true

	result := s.uploader.Upload(context.Background(), 7, files("a.pdf", "b.pdf", "c.pdf"))

	s.Equal(2, result.SuccessCount)
	s.Equal(1, result.FailCount)
	// Every file was attempted despite the failure in the middle.
	s.ElementsMatch([]string{"a.pdf", "b.pdf", "c.pdf"}, s.received)

	var perFileFailures []string
	for _, e := range s.notifier.Errors() {
		if strings.HasPrefix(e.Message, "b.pdf failed:") {
			perFileFailures = append(perFileFailures, e.Message)
		}
	}
	s.Require().Len(perFileFailures, 1)
	s.Contains(perFileFailures[0], "HTTP 500")
}

func (s *UploaderSuite) TestUploadingFlagSpansBatch() {
	s.observed = func(caseID int) {
		state := s.uploader.Status(caseID)
		s.True(state.Uploading, "flag must be true while any upload is in flight")
		s.Contains(state.Files, "a.pdf")
	}

	_ = s.uploader.Upload(context.Background(), 7, files("a.pdf", "b.pdf"))

	state := s.uploader.Status(7)
	s.False(state.Uploading, "flag returns to false only after all settle")
	s.Empty(state.Files)
}

func (s *UploaderSuite) TestEmptyBatch() {
	result := s.uploader.Upload(context.Background(), 7, nil)

	s.Equal(BatchResult{}, result)
	s.Empty(s.received)
	errs := s.notifier.Errors()
	s.Require().Len(errs, 1)
	s.Equal("No files selected", errs[0].Message)
}

func (s *UploaderSuite) TestAggregateNotifications() {
	s.rejects["b.pdf"] = true
	_ = s.uploader.Upload(context.Background(), 7, files("a.pdf", "b.pdf", "c.pdf"))

	var sawSuccessAggregate, sawFailureAggregate bool
	for _, e := range s.notifier.Events() {
		switch e.Message {
		case "2 file(s) uploaded successfully":
			sawSuccessAggregate = true
		case "1 file(s) failed to upload":
			sawFailureAggregate = true
		}
	}
	s.True(sawSuccessAggregate)
	s.True(sawFailureAggregate)
}

func (s *UploaderSuite) TestHeadersOnMultipart() {
	var auth, userID string
	s.observed = nil

	r := chi.NewRouter()
	r.Post("/cases/{caseID}/documents", func(w http.ResponseWriter, req *http.Request) {
		auth = req.Header.Get("Authorization")
		userID = req.Header.Get("user-id")
		w.WriteHeader(http.StatusCreated)
	})
	server := httptest.NewServer(r)
	defer server.Close()

	store := session.NewStore(storage.NewInMemoryStorage(), "/lawyer.png")
	store.Login(session.Identity{DisplayName: "Dana Reyes"}, session.WithToken("tok-up"))
	uploader := New(server.URL, store, notify.NewRecorder(), metrics.NewNop(), logger.Discard())

	_ = uploader.Upload(context.Background(), 7, files("a.pdf"))

	s.Equal("Bearer tok-up", auth)
	s.Equal("Dana Reyes", userID)
}
