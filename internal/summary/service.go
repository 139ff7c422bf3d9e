package summary

import (
	"context"
	"fmt"
	"time"

	"caselink/internal/gateway"
	"caselink/internal/platform/notify"
	dErrors "caselink/pkg/domain-errors"
)

// Service generates overall case summaries through the gateway, consulting
// the cache first so one session never regenerates a summary it already has.
type Service struct {
	site     *gateway.CallSite
	cache    *Cache
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(gw *gateway.Gateway, cache *Cache, notifier notify.Notifier) *Service {
	return &Service{
		site:     gw.Site("cases"),
		cache:    cache,
		notifier: notifier,
		now:      time.Now,
	}
}

// Generate returns the summary for caseID, from cache when present,
// otherwise by calling the generation endpoint. documentsAnalyzed is the
// count of completed documents the backend will consider; it is recorded on
// the fresh summary.
func (s *Service) Generate(ctx context.Context, caseID, documentsAnalyzed int) (OverallSummary, error) {
	if cached, ok := s.cache.GetSummary(caseID); ok {
		return cached, nil
	}

	result := s.site.GetPath(ctx, fmt.Sprintf("cases/%d/summary", caseID), nil)
	if !result.Ok() {
		return OverallSummary{}, dErrors.New(dErrors.CodeInternal, result.ErrMessage())
	}

	var body string
	if !result.Decode(&body) {
		return OverallSummary{}, dErrors.New(dErrors.CodeInternal, "unexpected summary response shape")
	}

	generated := OverallSummary{
		Body:              body,
		GeneratedAt:       s.now().UTC(),
		DocumentsAnalyzed: documentsAnalyzed,
	}
	s.cache.SetSummary(caseID, generated)
	s.notifier.Success("Overall summary generated successfully!")
	return generated, nil
}

// Cached returns the cached summary for caseID without any network access.
func (s *Service) Cached(caseID int) (OverallSummary, bool) {
	return s.cache.GetSummary(caseID)
}

// Clear empties the cache; the composition layer calls this on logout.
func (s *Service) Clear() {
	s.cache.ClearSummaries()
}
