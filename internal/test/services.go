package test

import (
	"context"
	"sync"

	"github.com/polkiloo/orderform/internal/domain/model"
	"github.com/polkiloo/orderform/internal/pkg/ratelimit"
)

// LimiterStub returns a fixed decision and records keys.
type LimiterStub struct {
	mu       sync.Mutex
	Decision ratelimit.Decision
	Err      error
	Keys     []string
}

// AllowAll returns a stub admitting every call.
func AllowAll() *LimiterStub {
	return &LimiterStub{Decision: ratelimit.Decision{Allowed: true}}
}

func (s *LimiterStub) Allow(_ context.Context, key string) (ratelimit.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Keys = append(s.Keys, key)
	if s.Err != nil {
		return ratelimit.Decision{}, s.Err
	}
	return s.Decision, nil
}

// NotifierStub records what would have been mailed.
type NotifierStub struct {
	mu          sync.Mutex
	SendErr     error
	AnnounceErr error
	Sent        []*model.OrderSummary
	Announced   []*model.AccessCode
}

func (s *NotifierStub) Send(_ context.Context, summary *model.OrderSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SendErr != nil {
		return s.SendErr
	}
	s.Sent = append(s.Sent, summary)
	return nil
}

func (s *NotifierStub) AnnounceAccessCode(_ context.Context, code *model.AccessCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AnnounceErr != nil {
		return s.AnnounceErr
	}
	s.Announced = append(s.Announced, code)
	return nil
}

// HealthCheckerStub returns Err from HealthCheck.
type HealthCheckerStub struct {
	Err error
}

func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}

var _ ratelimit.Limiter = (*LimiterStub)(nil)
