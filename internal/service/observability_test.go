package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	tr := track(obs, "project.create")
	tr.set("tenant", "acme")
	tr.finish(context.Background(), nil)
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "msg=service_use_case")
	assert.Contains(t, buf.String(), "use_case=project.create")
	assert.Contains(t, buf.String(), "success=true")
	assert.Contains(t, buf.String(), "tenant=acme")

	buf.Reset()
	track(obs, "auth.login").finish(context.Background(), errors.New("invalid credentials"))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), `error="invalid credentials"`)
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop([]UseCaseObserver{nil}))
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))

	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
}
