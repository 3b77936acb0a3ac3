package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pulseforge/pulseforge/internal/api"
	"github.com/pulseforge/pulseforge/internal/api/apitest"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/repository"
	"github.com/pulseforge/pulseforge/internal/session"
	"github.com/pulseforge/pulseforge/internal/testutil"
	"github.com/stretchr/testify/require"
)

type harness struct {
	srv     *apitest.Server
	store   *session.Store
	storage repository.StorageRepo
	client  api.Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := apitest.New(t)
	database := testutil.NewTestDB(t)
	store := session.NewStore(database, testutil.NewTestUoW(database))
	return &harness{
		srv:     srv,
		store:   store,
		storage: repository.NewSQLiteStorageRepo(database),
		client:  api.NewClient(api.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, store, nil),
	}
}

// signIn creates an account on the fake backend and stores its session.
func (h *harness) signIn(t *testing.T, role domain.Role) domain.AuthUser {
	t.Helper()
	var u domain.AuthUser
	if role.IsSystemAdmin() {
		u = h.srv.AddUser("pulseforge", "PulseForge", "Root", "root@pulseforge.test", "secret1", role)
	} else {
		u = h.srv.AddUser("acme", "Acme Corp", "Ada Lovelace", "ada@acme.test", "secret1", role)
	}
	sess := &domain.Session{Token: h.srv.TokenFor(u), User: u}
	require.NoError(t, h.store.WriteSession(context.Background(), sess))
	return u
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.events))
	for _, e := range o.events {
		out = append(out, e.Name)
	}
	return out
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
