package auth_test

import (
	"context"
	"strings"
	"sync"

	auth "github.com/goliatone/go-identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockIdentity implements auth.Identity for testing
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Email() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Role() string {
	args := m.Called()
	return args.String(0)
}

// testLogger implements auth.Logger, recording entries instead of printing
type testLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *testLogger) record(level, format string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+" "+format)
}

func (l *testLogger) Debug(format string, args ...any) { l.record("DBG", format) }
func (l *testLogger) Info(format string, args ...any)  { l.record("INF", format) }
func (l *testLogger) Error(format string, args ...any) { l.record("ERR", format) }

// fakeUserStore is an in memory auth.UserStore with the same contract as
// the bun backed store: not found lookups return ErrIdentityNotFound and
// Insert refuses duplicate emails.
type fakeUserStore struct {
	mu        sync.Mutex
	records   map[uuid.UUID]*auth.User
	insertErr error
	findErr   error
}

var _ auth.UserStore = (*fakeUserStore)(nil)

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		records: map[uuid.UUID]*auth.User{},
	}
}

func (s *fakeUserStore) seed(user *auth.User) *auth.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = auth.RoleStandard
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	cp := *user
	s.records[user.ID] = &cp
	return user
}

func (s *fakeUserStore) setRole(id uuid.UUID, role auth.UserRole) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record, ok := s.records[id]; ok {
		record.Role = role
	}
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findErr != nil {
		return nil, s.findErr
	}

	email = strings.ToLower(strings.TrimSpace(email))
	for _, record := range s.records {
		if record.Email == email {
			cp := *record
			return &cp, nil
		}
	}

	return nil, auth.ErrIdentityNotFound
}

func (s *fakeUserStore) FindByID(ctx context.Context, id string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, auth.ErrIdentityNotFound
	}

	record, ok := s.records[uid]
	if !ok {
		return nil, auth.ErrIdentityNotFound
	}

	cp := *record
	return &cp, nil
}

func (s *fakeUserStore) Insert(ctx context.Context, user *auth.User) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.insertErr != nil {
		return nil, s.insertErr
	}

	email := strings.ToLower(strings.TrimSpace(user.Email))
	for _, record := range s.records {
		if record.Email == email {
			return nil, auth.ErrEmailTaken
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = auth.RoleStandard
	}
	user.Email = email

	cp := *user
	s.records[user.ID] = &cp

	return user, nil
}
