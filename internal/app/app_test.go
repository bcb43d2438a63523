package app

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderform/internal/config"
	"github.com/polkiloo/orderform/internal/domain/model"
	testhelpers "github.com/polkiloo/orderform/internal/test"
)

type bootstrapperStub struct {
	calls []string
	err   error
}

func (b *bootstrapperStub) BootstrapAdmin(_ context.Context, email, _ string) (*model.Admin, error) {
	b.calls = append(b.calls, email)
	if b.err != nil {
		return nil, b.err
	}
	return &model.Admin{ID: 1, Email: email, Role: model.RoleAdmin}, nil
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
	if server.ReadHeaderTimeout == 0 {
		t.Fatal("expected read header timeout")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     testhelpers.DiscardLogger(),
		Server:     server,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     testhelpers.DiscardLogger(),
		Server:     &http.Server{Addr: "bad addr"},
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestRegisterAdminBootstrapSkippedWithoutCredentials(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	registerAdminBootstrap(bootstrapParams{
		Lifecycle: recorder,
		Config:    &config.Config{AdminEmail: "owner@example.com"},
		Admins:    &bootstrapperStub{},
		Logger:    testhelpers.DiscardLogger(),
	})
	if len(recorder.Hooks) != 0 {
		t.Fatalf("expected no hook, got %d", len(recorder.Hooks))
	}
}

func TestRegisterAdminBootstrapRunsOnStart(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	admins := &bootstrapperStub{}
	registerAdminBootstrap(bootstrapParams{
		Lifecycle: recorder,
		Config:    &config.Config{AdminEmail: "owner@example.com", AdminPassword: "s3cret-pass"},
		Admins:    admins,
		Logger:    testhelpers.DiscardLogger(),
	})
	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook, got %d", len(recorder.Hooks))
	}
	if err := recorder.Hooks[0].OnStart(context.Background()); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	if len(admins.calls) != 1 || admins.calls[0] != "owner@example.com" {
		t.Fatalf("unexpected bootstrap calls %v", admins.calls)
	}
}

func TestBootstrapAdminPropagatesError(t *testing.T) {
	admins := &bootstrapperStub{err: errors.New("db down")}
	if err := bootstrapAdmin(context.Background(), admins, "owner@example.com", "s3cret-pass", testhelpers.DiscardLogger()); err == nil {
		t.Fatal("expected error")
	}
}
