// Package uploads pushes case documents to the backend. A batch launches
// every file concurrently and reports aggregate counts only after all of
// them settle; one failing file never aborts its siblings.
package uploads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"caselink/internal/platform/metrics"
	"caselink/internal/platform/notify"
)

// SessionReader is the read-only session view uploads need. Multipart bodies
// still carry the caller identity, unlike the gateway's JSON-only rule.
type SessionReader interface {
	Token() (string, bool)
	UserLabel() string
}

// File is one document to upload.
type File struct {
	Name    string
	Content io.Reader
}

// State is the per-case upload status the UI reads.
type State struct {
	Uploading bool
	Files     []string
}

// BatchResult aggregates one settled batch.
type BatchResult struct {
	SuccessCount int
	FailCount    int
}

// Uploader issues document uploads. It bypasses the gateway because the
// bodies are multipart, but follows the same single-attempt, never-panic
// contract.
type Uploader struct {
	baseURL    string
	httpClient *http.Client
	session    SessionReader
	notifier   notify.Notifier
	metrics    *metrics.Metrics
	logger     *slog.Logger

	mu     sync.Mutex
	states map[int]State
}

func New(baseURL string, session SessionReader, notifier notify.Notifier, m *metrics.Metrics, logger *slog.Logger) *Uploader {
	return &Uploader{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		session:    session,
		notifier:   notifier,
		metrics:    m,
		logger:     logger,
		states:     make(map[int]State),
	}
}

// Status returns the current upload state for caseID.
func (u *Uploader) Status(caseID int) State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.states[caseID]
}

// Upload sends all files for caseID concurrently and returns once every one
// has settled. The per-case uploading flag is true for exactly the span of
// the whole batch.
func (u *Uploader) Upload(ctx context.Context, caseID int, files []File) BatchResult {
	if len(files) == 0 {
		u.notifier.Error("No files selected", "")
		return BatchResult{}
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	u.setState(caseID, State{Uploading: true, Files: names})
	defer u.setState(caseID, State{})

	// A join, not a pipeline: every upload runs regardless of sibling
	// failures, so the group collects outcomes instead of returning errors.
	outcomes := make([]error, len(files))
	var g errgroup.Group
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			outcomes[i] = u.uploadOne(ctx, caseID, f)
			return nil
		})
	}
	_ = g.Wait()

	var result BatchResult
	for i, err := range outcomes {
		if err == nil {
			result.SuccessCount++
			u.metrics.UploadsCompleted.WithLabelValues("ok").Inc()
			u.notifier.Success(fmt.Sprintf("%s uploaded successfully", files[i].Name))
		} else {
			result.FailCount++
			u.metrics.UploadsCompleted.WithLabelValues("error").Inc()
			u.logger.Warn("document upload failed", "case_id", caseID, "file", files[i].Name, "error", err)
			u.notifier.Error(fmt.Sprintf("%s failed: %v", files[i].Name, err), "")
		}
	}

	if result.SuccessCount > 0 {
		u.notifier.Success(fmt.Sprintf("%d file(s) uploaded successfully", result.SuccessCount))
	}
	if result.FailCount > 0 {
		u.notifier.Error(fmt.Sprintf("%d file(s) failed to upload", result.FailCount), "")
	}
	return result
}

func (u *Uploader) uploadOne(ctx context.Context, caseID int, f File) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", f.Name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f.Content); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	target := fmt.Sprintf("%s/cases/%d/documents", u.baseURL, caseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token, ok := u.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("user-id", u.session.UserLabel())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(resp.Body)
		if len(msg) > 0 {
			return fmt.Errorf("%s", strings.TrimSpace(string(msg)))
		}
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return nil
}

func (u *Uploader) setState(caseID int, state State) {
	u.mu.Lock()
	u.states[caseID] = state
	u.mu.Unlock()
}
