// Package apitest runs an in-process PulseForge backend for tests.
package apitest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	user      domain.AuthUser
	hash      []byte
	lastLogin time.Time
}

type fault struct {
	status int
	msg    string
}

// Server is a fake backend holding its state in memory.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	now      func() time.Time
	nextID   int64
	accounts []*account
	tenants  []domain.SystemTenant
	projects []domain.Project
	tasks    []domain.TaskItem
	posts    []domain.ForumPost
	issues   []domain.Issue
	updates  []domain.SystemUpdate
	logs     []domain.SystemLog
	mail     []domain.TestNotification
	support  []domain.SupportRequest
	faults   map[string]fault

	requestIDs []string
}

// New starts a fake backend that is closed at test cleanup.
func New(t *testing.T) *Server {
	t.Helper()
	s := &Server{now: time.Now, nextID: 1, faults: map[string]fault{}}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.faultInjection)

	auth := r.PathPrefix("/api/v1/auth").Subrouter()
	auth.HandleFunc("/register", s.register).Methods(http.MethodPost)
	auth.HandleFunc("/login", s.login).Methods(http.MethodPost)
	auth.HandleFunc("/forgot-password", s.forgotPassword).Methods(http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(s.requireToken)
	api.HandleFunc("/projects", s.listProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", s.createProject).Methods(http.MethodPost)
	api.HandleFunc("/tasks", s.listTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", s.createTask).Methods(http.MethodPost)
	api.HandleFunc("/forum/posts", s.listPosts).Methods(http.MethodGet)
	api.HandleFunc("/forum/posts", s.createPost).Methods(http.MethodPost)
	api.HandleFunc("/issues", s.listIssues).Methods(http.MethodGet)
	api.HandleFunc("/issues", s.createIssue).Methods(http.MethodPost)
	api.HandleFunc("/notifications/test", s.testNotification).Methods(http.MethodPost)
	api.HandleFunc("/support/request", s.supportRequest).Methods(http.MethodPost)

	system := api.PathPrefix("/system").Subrouter()
	system.Use(s.requireSystemAdmin)
	system.HandleFunc("/organizations", s.organizations).Methods(http.MethodGet)
	system.HandleFunc("/analytics", s.analytics).Methods(http.MethodGet)
	system.HandleFunc("/logs", s.listLogs).Methods(http.MethodGet)
	system.HandleFunc("/tenants", s.listTenants).Methods(http.MethodGet)
	system.HandleFunc("/tenants", s.createTenant).Methods(http.MethodPost)
	system.HandleFunc("/tenants/{id:[0-9]+}", s.updateTenant).Methods(http.MethodPut)
	system.HandleFunc("/updates", s.listUpdates).Methods(http.MethodGet)
	system.HandleFunc("/updates", s.createUpdate).Methods(http.MethodPost)
	system.HandleFunc("/updates/{id:[0-9]+}", s.editUpdate).Methods(http.MethodPut)
	return r
}

// SetNow pins the server clock.
func (s *Server) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = func() time.Time { return now }
}

// Fail makes every request to method and path answer with status and msg.
// An empty msg produces a body without an error field.
func (s *Server) Fail(method, path string, status int, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[method+" "+path] = fault{status: status, msg: msg}
}

// AddUser registers an account directly and returns its persisted shape.
func (s *Server) AddUser(tenantSlug, tenantName, name, email, password string, role domain.Role) domain.AuthUser {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("apitest: hashing password: %v", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenantBySlug(tenantSlug); !ok {
		s.tenants = append(s.tenants, domain.SystemTenant{ID: s.id(), Slug: tenantSlug, Name: tenantName, CreatedAt: s.now()})
	}
	u := domain.AuthUser{
		ID:         fmt.Sprintf("%07d", 1000000+s.id()),
		Name:       name,
		Email:      strings.ToLower(email),
		TenantSlug: tenantSlug,
		TenantName: tenantName,
		Role:       role,
	}
	s.accounts = append(s.accounts, &account{user: u, hash: hash})
	return u
}

// TokenFor issues a token for a user created with AddUser.
func (s *Server) TokenFor(u domain.AuthUser) string {
	token, err := issueToken(u, s.clock())
	if err != nil {
		panic(fmt.Sprintf("apitest: signing token: %v", err))
	}
	return token
}

// SeedProject stores p as-is apart from a fresh id.
func (s *Server) SeedProject(p domain.Project) domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.id()
	s.projects = append([]domain.Project{p}, s.projects...)
	return p
}

func (s *Server) SeedTask(t domain.TaskItem) domain.TaskItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.id()
	s.tasks = append([]domain.TaskItem{t}, s.tasks...)
	return t
}

func (s *Server) SeedUpdate(u domain.SystemUpdate) domain.SystemUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.id()
	s.updates = append(s.updates, u)
	return u
}

func (s *Server) SeedLog(l domain.SystemLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = s.id()
	s.logs = append(s.logs, l)
}

// Mail returns every message the backend would have sent.
func (s *Server) Mail() []domain.TestNotification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TestNotification(nil), s.mail...)
}

func (s *Server) SupportRequests() []domain.SupportRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.SupportRequest(nil), s.support...)
}

// RequestIDs lists the X-Request-ID header of every request received.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

func (s *Server) clock() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now()
}

func (s *Server) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Server) tenantBySlug(slug string) (domain.SystemTenant, bool) {
	for _, t := range s.tenants {
		if t.Slug == slug {
			return t, true
		}
	}
	return domain.SystemTenant{}, false
}

func issueToken(u domain.AuthUser, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":         u.ID,
		"tenant_id":   u.TenantSlug,
		"tenant_name": u.TenantName,
		"tenant_logo": u.TenantLogo,
		"email":       u.Email,
		"name":        u.Name,
		"role":        string(u.Role),
		"iss":         "pulseforge",
		"iat":         now.Unix(),
		"exp":         now.Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testutil.JWTSecret)
}

type ctxKey struct{}

type caller struct {
	tenant string
	email  string
	role   domain.Role
}

func callerFrom(ctx context.Context) caller {
	c, _ := ctx.Value(ctxKey{}).(caller)
	return c
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) faultInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requestIDs = append(s.requestIDs, r.Header.Get("X-Request-ID"))
		f, ok := s.faults[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if ok {
			if f.msg == "" {
				w.WriteHeader(f.status)
				_, _ = w.Write([]byte("upstream failure"))
				return
			}
			writeError(w, f.status, f.msg)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireToken verifies the bearer token and records an audit log entry
// once the handler has answered.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "invalid authorization scheme")
			return
		}
		token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return testutil.JWTSecret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		claims, _ := token.Claims.(jwt.MapClaims)
		tenant, _ := claims["tenant_id"].(string)
		if tenant == "" {
			writeError(w, http.StatusUnauthorized, "tenant claim missing")
			return
		}
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)
		c := caller{tenant: tenant, email: email, role: domain.NormalizeRole(role)}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), ctxKey{}, c)))

		s.mu.Lock()
		defer s.mu.Unlock()
		s.logs = append(s.logs, domain.SystemLog{
			ID:         s.id(),
			TenantSlug: c.tenant,
			UserEmail:  c.email,
			Role:       string(c.role),
			Method:     r.Method,
			Path:       r.URL.Path,
			StatusCode: rec.status,
			LatencyMS:  time.Since(start).Milliseconds(),
			CreatedAt:  s.now(),
		})
	})
}

func (s *Server) requireSystemAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !callerFrom(r.Context()).role.IsSystemAdmin() {
			writeError(w, http.StatusForbidden, "system admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func items[T any](list []T) map[string][]T {
	if list == nil {
		list = []T{}
	}
	return map[string][]T{"items": list}
}

func decode(r *http.Request, v any) bool {
	return json.NewDecoder(r.Body).Decode(v) == nil
}
