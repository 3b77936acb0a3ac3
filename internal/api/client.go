package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pulseforge/pulseforge/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const apiPrefix = "/api/v1"

// Config points the client at a backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// TokenSource supplies the bearer token for authenticated calls.
// An empty token means the user is signed out.
type TokenSource interface {
	GetAuthToken(ctx context.Context) (string, error)
}

// Client is the PulseForge REST API.
type Client interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	// ForgotPassword returns the backend's status message.
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (string, error)

	ListProjects(ctx context.Context) ([]domain.Project, error)
	CreateProject(ctx context.Context, in domain.ProjectInput) (*domain.Project, error)
	ListTasks(ctx context.Context) ([]domain.TaskItem, error)
	CreateTask(ctx context.Context, in domain.TaskInput) (*domain.TaskItem, error)

	ListOrganizations(ctx context.Context) ([]domain.SystemOrganization, error)
	SystemAnalytics(ctx context.Context) (*domain.SystemAnalytics, error)
	ListLogs(ctx context.Context, limit int) ([]domain.SystemLog, error)
	ListTenants(ctx context.Context) ([]domain.SystemTenant, error)
	CreateTenant(ctx context.Context, in domain.TenantInput) (*domain.SystemTenant, error)
	UpdateTenant(ctx context.Context, id int64, in domain.TenantInput) (*domain.SystemTenant, error)
	ListSystemUpdates(ctx context.Context) ([]domain.SystemUpdate, error)
	CreateSystemUpdate(ctx context.Context, in domain.SystemUpdateInput) (*domain.SystemUpdateResult, error)
	UpdateSystemUpdate(ctx context.Context, id int64, in domain.SystemUpdateInput) (*domain.SystemUpdateResult, error)

	SendTestNotification(ctx context.Context, in domain.TestNotification) (string, error)
	SendSupportRequest(ctx context.Context, in domain.SupportRequest) (string, error)

	ListForumPosts(ctx context.Context) ([]domain.ForumPost, error)
	CreateForumPost(ctx context.Context, in domain.ForumPostInput) (*domain.ForumPost, error)
	ListIssues(ctx context.Context) ([]domain.Issue, error)
	CreateIssue(ctx context.Context, in domain.IssueInput) (*domain.Issue, error)
}

type httpClient struct {
	cfg      Config
	http     *http.Client
	tokens   TokenSource
	observer Observer
}

// NewClient builds a Client. tokens may be nil when only the unauthenticated
// auth endpoints are used.
func NewClient(cfg Config, tokens TokenSource, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: otelhttp.NewTransport(&http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			}),
		},
		tokens:   tokens,
		observer: observer,
	}
}

// call sends one request. body is JSON-encoded when non-nil, and a 2xx
// response is decoded into out when out is non-nil.
func (c *httpClient) call(ctx context.Context, method, path string, authed bool, body, out any) error {
	var token string
	if authed {
		if c.tokens != nil {
			t, err := c.tokens.GetAuthToken(ctx)
			if err != nil {
				return fmt.Errorf("reading session token: %w", err)
			}
			token = t
		}
		if token == "" {
			return ErrNotAuthenticated
		}
	}

	start := time.Now()
	requestID := uuid.NewString()
	status, err := c.do(ctx, method, path, token, requestID, body, out)
	c.observer.OnRequest(RequestEvent{
		Method:    method,
		Path:      path,
		Status:    status,
		Latency:   time.Since(start),
		RequestID: requestID,
		Err:       err,
	})
	return err
}

func (c *httpClient) do(ctx context.Context, method, path, token, requestID string, body, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+apiPrefix+path, reqBody)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		var netErr *net.OpError
		if errors.As(err, &netErr) {
			return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &envelope)
		return resp.StatusCode, newRequestError(resp.StatusCode, strings.TrimSpace(envelope.Error))
	}

	if out == nil || !json.Valid(data) {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Valid JSON of the wrong shape reads as an empty object.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if v := reflect.ValueOf(out); v.Kind() == reflect.Pointer && !v.IsNil() {
				v.Elem().SetZero()
			}
			return resp.StatusCode, nil
		}
		return resp.StatusCode, fmt.Errorf("decoding %s response: %w", path, err)
	}
	return resp.StatusCode, nil
}

type itemsEnvelope[T any] struct {
	Items []T `json:"items"`
}

func listItems[T any](ctx context.Context, c *httpClient, path string) ([]T, error) {
	var env itemsEnvelope[T]
	if err := c.call(ctx, http.MethodGet, path, true, nil, &env); err != nil {
		return nil, err
	}
	if env.Items == nil {
		return []T{}, nil
	}
	return env.Items, nil
}

type statusEnvelope struct {
	Status string `json:"status"`
}
