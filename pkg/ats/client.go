package ats

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ats-assistant-be/pkg/jsonx"

	"go.uber.org/zap"
)

// RESTClient talks to the ATS REST backend. One RESTClient implements every
// directory, the notification service and the generic chatbot backend.
type RESTClient struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	logger  *zap.Logger
}

var (
	_ JobDirectory         = &RESTClient{}
	_ CandidateDirectory   = &RESTClient{}
	_ ApplicationDirectory = &RESTClient{}
	_ InterviewDirectory   = &RESTClient{}
	_ ClientDirectory      = &RESTClient{}
	_ NotificationService  = &RESTClient{}
	_ ChatBackend          = &RESTClient{}
)

type tokenKey struct{}

// WithToken attaches the caller's bearer token so backend calls run with the
// caller's session instead of the service token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey{}).(string); ok {
		return v
	}
	return ""
}

func NewRESTClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *RESTClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RESTClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: timeout},
		logger:  logger.Named("ats"),
	}
}

type countResponse struct {
	Count int `json:"count"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// --- Jobs ---

func (c *RESTClient) ListJobs(ctx context.Context) ([]Job, error) {
	var jobs []Job
	err := c.do(ctx, http.MethodGet, "/api/jobs", nil, nil, &jobs)
	return jobs, err
}

func (c *RESTClient) SearchJobs(ctx context.Context, term string) ([]Job, error) {
	var jobs []Job
	err := c.do(ctx, http.MethodGet, "/api/jobs/search", url.Values{"q": {term}}, nil, &jobs)
	return jobs, err
}

func (c *RESTClient) GetJob(ctx context.Context, id int64) (*Job, error) {
	var job Job
	if err := c.do(ctx, http.MethodGet, "/api/jobs/"+strconv.FormatInt(id, 10), nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *RESTClient) UpdateJobStatus(ctx context.Context, id int64, status string) error {
	path := "/api/jobs/" + strconv.FormatInt(id, 10) + "/status"
	return c.do(ctx, http.MethodPatch, path, nil, statusRequest{Status: status}, nil)
}

// --- Candidates ---

func (c *RESTClient) ListCandidates(ctx context.Context) ([]Candidate, error) {
	var candidates []Candidate
	err := c.do(ctx, http.MethodGet, "/api/candidates", nil, nil, &candidates)
	return candidates, err
}

func (c *RESTClient) SearchCandidates(ctx context.Context, term string) ([]Candidate, error) {
	var candidates []Candidate
	err := c.do(ctx, http.MethodGet, "/api/candidates/search", url.Values{"q": {term}}, nil, &candidates)
	return candidates, err
}

func (c *RESTClient) GetCandidate(ctx context.Context, id int64) (*Candidate, error) {
	var candidate Candidate
	if err := c.do(ctx, http.MethodGet, "/api/candidates/"+strconv.FormatInt(id, 10), nil, nil, &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (c *RESTClient) CandidatesByStatus(ctx context.Context, status string) ([]Candidate, error) {
	var candidates []Candidate
	err := c.do(ctx, http.MethodGet, "/api/candidates/status/"+url.PathEscape(status), nil, nil, &candidates)
	return candidates, err
}

func (c *RESTClient) CountCandidates(ctx context.Context) (int, error) {
	var res countResponse
	err := c.do(ctx, http.MethodGet, "/api/candidates/count", nil, nil, &res)
	return res.Count, err
}

// --- Applications & interviews ---

func (c *RESTClient) ListApplications(ctx context.Context) ([]Application, error) {
	var applications []Application
	err := c.do(ctx, http.MethodGet, "/api/applications", nil, nil, &applications)
	return applications, err
}

func (c *RESTClient) CountApplications(ctx context.Context) (int, error) {
	var res countResponse
	err := c.do(ctx, http.MethodGet, "/api/applications/count", nil, nil, &res)
	return res.Count, err
}

func (c *RESTClient) ListInterviews(ctx context.Context) ([]Interview, error) {
	var interviews []Interview
	err := c.do(ctx, http.MethodGet, "/api/interviews", nil, nil, &interviews)
	return interviews, err
}

func (c *RESTClient) CountInterviews(ctx context.Context) (int, error) {
	var res countResponse
	err := c.do(ctx, http.MethodGet, "/api/interviews/count", nil, nil, &res)
	return res.Count, err
}

// --- Clients, notifications, chatbot ---

func (c *RESTClient) SearchClients(ctx context.Context, term string) ([]Client, error) {
	var clients []Client
	err := c.do(ctx, http.MethodGet, "/api/clients/search", url.Values{"q": {term}}, nil, &clients)
	return clients, err
}

func (c *RESTClient) CreateNotification(ctx context.Context, n Notification) error {
	return c.do(ctx, http.MethodPost, "/api/notifications", nil, n, nil)
}

func (c *RESTClient) SendMessage(ctx context.Context, text string) (string, error) {
	var res chatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chatbot/message", nil, chatRequest{Message: text}, &res); err != nil {
		return "", err
	}
	return res.Reply, nil
}

// do performs one request. Transport failures are reported as
// "failed to fetch" so callers can tell them apart from HTTP errors.
func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := jsonx.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request for %s: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token := tokenFrom(ctx)
	if token == "" {
		token = c.Token
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &APIError{
			Status: res.StatusCode,
			Method: method,
			Path:   path,
			Body:   strings.TrimSpace(string(data)),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := jsonx.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
