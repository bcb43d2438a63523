package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/orderform/internal/domain/errors"
	"github.com/polkiloo/orderform/internal/domain/model"
	"github.com/polkiloo/orderform/internal/domain/repository"
)

// AccessCodeRepositoryStub keeps codes in memory and consumes them atomically.
type AccessCodeRepositoryStub struct {
	mu    sync.Mutex
	codes map[string]*model.AccessCode

	// Err, when set, is returned by every operation.
	Err error
	// CreateErrs are returned by successive Create calls before normal behaviour resumes.
	CreateErrs []error
}

// NewAccessCodeRepositoryStub seeds the stub with codes.
func NewAccessCodeRepositoryStub(codes ...model.AccessCode) *AccessCodeRepositoryStub {
	s := &AccessCodeRepositoryStub{codes: make(map[string]*model.AccessCode)}
	for i := range codes {
		c := codes[i]
		s.codes[c.Code] = &c
	}
	return s
}

func (s *AccessCodeRepositoryStub) Create(_ context.Context, code *model.AccessCode) (*model.AccessCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.CreateErrs) > 0 {
		err := s.CreateErrs[0]
		s.CreateErrs = s.CreateErrs[1:]
		return nil, err
	}
	if s.codes == nil {
		s.codes = make(map[string]*model.AccessCode)
	}
	if _, exists := s.codes[code.Code]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *code
	s.codes[code.Code] = &stored
	created := stored
	return &created, nil
}

func (s *AccessCodeRepositoryStub) List(context.Context) ([]model.AccessCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	list := make([]model.AccessCode, 0, len(s.codes))
	for _, c := range s.codes {
		list = append(list, *c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (s *AccessCodeRepositoryStub) GetByCode(_ context.Context, code string) (*model.AccessCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.codes[code]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	found := *c
	return &found, nil
}

func (s *AccessCodeRepositoryStub) Consume(_ context.Context, code string, at time.Time, onConsumed func(*model.AccessCode) error) (*model.AccessCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.codes[code]
	if !ok || !c.Usable(at) {
		return nil, domainErrors.ErrInvalidAccessCode
	}

	consumed := *c
	consumed.IsUsed = true
	usedAt := at
	consumed.UsedAt = &usedAt
	if onConsumed != nil {
		if err := onConsumed(&consumed); err != nil {
			return nil, err
		}
	}
	stored := consumed
	s.codes[code] = &stored
	return &consumed, nil
}

func (s *AccessCodeRepositoryStub) Deactivate(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	c, ok := s.codes[code]
	if !ok {
		return domainErrors.ErrNotFound
	}
	c.IsActive = false
	return nil
}

func (s *AccessCodeRepositoryStub) Delete(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.codes[code]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.codes, code)
	return nil
}

// AdminRepositoryStub stores operators in memory for tests.
type AdminRepositoryStub struct {
	mu      sync.Mutex
	ByEmail map[string]*model.Admin
	ByID    map[int64]*model.Admin
	Next    int64
	Err     error
}

// NewAdminRepositoryStub constructs stub repository with initialized maps.
func NewAdminRepositoryStub() *AdminRepositoryStub {
	return &AdminRepositoryStub{
		ByEmail: make(map[string]*model.Admin),
		ByID:    make(map[int64]*model.Admin),
		Next:    1,
	}
}

func (s *AdminRepositoryStub) Upsert(_ context.Context, email, passwordHash, role string) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if admin, ok := s.ByEmail[email]; ok {
		admin.PasswordHash = passwordHash
		admin.Role = role
		updated := *admin
		return &updated, nil
	}
	if s.Next == 0 {
		s.Next = 1
	}
	admin := &model.Admin{ID: s.Next, Email: email, PasswordHash: passwordHash, Role: role, CreatedAt: time.Now()}
	s.Next++
	s.ByEmail[email] = admin
	s.ByID[admin.ID] = admin
	created := *admin
	return &created, nil
}

func (s *AdminRepositoryStub) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if admin, ok := s.ByEmail[email]; ok {
		found := *admin
		return &found, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *AdminRepositoryStub) GetByID(_ context.Context, id int64) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if admin, ok := s.ByID[id]; ok {
		found := *admin
		return &found, nil
	}
	return nil, domainErrors.ErrNotFound
}

var _ repository.AccessCodeRepository = (*AccessCodeRepositoryStub)(nil)
var _ repository.AdminRepository = (*AdminRepositoryStub)(nil)
