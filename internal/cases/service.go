package cases

import (
	"context"
	"fmt"
	"strconv"

	"caselink/internal/gateway"
	dErrors "caselink/pkg/domain-errors"
)

// Service issues case and document operations through the gateway. Each
// operation keeps its own call site so list, detail, and mutation state never
// interfere.
type Service struct {
	list   *gateway.CallSite
	detail *gateway.CallSite
	mutate *gateway.CallSite
}

func NewService(gw *gateway.Gateway) *Service {
	return &Service{
		list:   gw.Site("cases"),
		detail: gw.Site("cases"),
		mutate: gw.Site("cases"),
	}
}

// List returns one page of cases matching filter.
func (s *Service) List(ctx context.Context, filter ListFilter) (*Page, error) {
	params := map[string]string{}
	if filter.Status != "" {
		params["status"] = filter.Status
	}
	if filter.Priority != "" {
		params["priority"] = filter.Priority
	}
	if filter.Search != "" {
		params["search"] = filter.Search
	}
	if filter.Page > 0 {
		params["page"] = strconv.Itoa(filter.Page)
	}
	if filter.Limit > 0 {
		params["limit"] = strconv.Itoa(filter.Limit)
	}

	result := s.list.Get(ctx, params)
	if !result.Ok() {
		return nil, dErrors.New(dErrors.CodeInternal, result.ErrMessage())
	}
	var page Page
	if !result.Decode(&page) {
		return nil, dErrors.New(dErrors.CodeInternal, "unexpected case list response shape")
	}
	return &page, nil
}

// Get returns the detail record for caseID, documents included.
func (s *Service) Get(ctx context.Context, caseID int) (*CaseDetail, error) {
	result := s.detail.GetPath(ctx, fmt.Sprintf("cases/%d", caseID), nil)
	if !result.Ok() {
		return nil, dErrors.New(dErrors.CodeInternal, result.ErrMessage())
	}
	var detail CaseDetail
	if !result.Decode(&detail) {
		return nil, dErrors.New(dErrors.CodeInternal, "unexpected case detail response shape")
	}
	return &detail, nil
}

// Create opens a new case and returns the backend's record of it.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Case, error) {
	if input.Title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "case title is required")
	}

	result := s.mutate.Post(ctx, input)
	if !result.Ok() {
		return nil, dErrors.New(dErrors.CodeInternal, result.ErrMessage())
	}
	var created Case
	if !result.Decode(&created) {
		return nil, dErrors.New(dErrors.CodeInternal, "unexpected create response shape")
	}
	return &created, nil
}

// UpdateStatus transitions a case to the given status.
func (s *Service) UpdateStatus(ctx context.Context, caseID int, status string) (*Case, error) {
	result := s.mutate.PutPath(ctx, fmt.Sprintf("cases/%d", caseID), map[string]string{"status": status})
	if !result.Ok() {
		return nil, dErrors.New(dErrors.CodeInternal, result.ErrMessage())
	}
	var updated Case
	if !result.Decode(&updated) {
		return nil, dErrors.New(dErrors.CodeInternal, "unexpected update response shape")
	}
	return &updated, nil
}

// DeleteDocument removes one document from a case.
func (s *Service) DeleteDocument(ctx context.Context, caseID int, docID string) error {
	result := s.mutate.DeletePath(ctx, fmt.Sprintf("cases/%d/documents/%s", caseID, docID))
	if !result.Ok() {
		return dErrors.New(dErrors.CodeInternal, result.ErrMessage())
	}
	return nil
}
