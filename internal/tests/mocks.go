package tests

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"ridehail/internal/auth"
	"ridehail/internal/domain"
	"ridehail/internal/redis"
	"ridehail/internal/repository"
)

// errBackend is injected into mocks to simulate store/cache failures.
var errBackend = errors.New("backend unavailable")

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

// GetUser returns the stored user for test assertions.
func (m *MockUserRepository) GetUser(id string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id]
}

// ──────────────────────────────────────────────
// MOCK PASSENGER REPOSITORY
// ──────────────────────────────────────────────

// MockPassengerRepository is a mock implementation of PassengerRepository.
type MockPassengerRepository struct {
	mu         sync.RWMutex
	passengers map[string]*domain.Passenger
	Users      map[string]*domain.User

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockPassengerRepository creates a new mock passenger repository.
func NewMockPassengerRepository() *MockPassengerRepository {
	return &MockPassengerRepository{
		passengers: make(map[string]*domain.Passenger),
		Users:      make(map[string]*domain.User),
	}
}

// AddPassenger adds a passenger to the mock repository.
func (m *MockPassengerRepository) AddPassenger(p *domain.Passenger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attachUser(p)
	m.passengers[p.ID] = p
}

func (m *MockPassengerRepository) attachUser(p *domain.Passenger) {
	if p.User == nil {
		if u, ok := m.Users[p.UserID]; ok {
			p.User = u
		}
	}
}

func (m *MockPassengerRepository) Create(ctx context.Context, p *domain.Passenger) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.passengers {
		if existing.UserID == p.UserID {
			return repository.ErrDuplicate
		}
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.attachUser(p)
	copy := *p
	m.passengers[p.ID] = &copy
	return nil
}

func (m *MockPassengerRepository) GetByID(ctx context.Context, id string) (*domain.Passenger, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.passengers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *p
	return &copy, nil
}

func (m *MockPassengerRepository) GetByUserID(ctx context.Context, userID string) (*domain.Passenger, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.passengers {
		if p.UserID == userID {
			copy := *p
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockPassengerRepository) GetAll(ctx context.Context) ([]*domain.Passenger, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Passenger, 0, len(m.passengers))
	for _, p := range m.passengers {
		copy := *p
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockPassengerRepository) Update(ctx context.Context, p *domain.Passenger) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.passengers[p.ID]; !ok {
		return repository.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	copy := *p
	m.passengers[p.ID] = &copy
	return nil
}

func (m *MockPassengerRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.passengers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.passengers, id)
	return nil
}

// GetPassenger returns the stored passenger for test assertions.
func (m *MockPassengerRepository) GetPassenger(id string) *domain.Passenger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.passengers[id]
}

// ──────────────────────────────────────────────
// MOCK RIDER REPOSITORY
// ──────────────────────────────────────────────

// MockRiderRepository is a mock implementation of RiderRepository.
type MockRiderRepository struct {
	mu     sync.RWMutex
	riders map[string]*domain.Rider
	Users  map[string]*domain.User

	// Counters for verification
	CreateCallCount         int32
	UpdateCallCount         int32
	UpdateLocationCallCount int32
	GetAvailableCallCount   int32

	// Error injection
	CreateError         error
	UpdateError         error
	UpdateLocationError error
}

// NewMockRiderRepository creates a new mock rider repository.
func NewMockRiderRepository() *MockRiderRepository {
	return &MockRiderRepository{
		riders: make(map[string]*domain.Rider),
		Users:  make(map[string]*domain.User),
	}
}

// AddRider adds a rider to the mock repository.
func (m *MockRiderRepository) AddRider(r *domain.Rider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attachUser(r)
	m.riders[r.ID] = r
}

func (m *MockRiderRepository) attachUser(r *domain.Rider) {
	if r.User == nil {
		if u, ok := m.Users[r.UserID]; ok {
			r.User = u
		}
	}
}

func (m *MockRiderRepository) Create(ctx context.Context, r *domain.Rider) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.riders {
		if existing.UserID == r.UserID {
			return repository.ErrDuplicate
		}
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	m.attachUser(r)
	copy := *r
	m.riders[r.ID] = &copy
	return nil
}

func (m *MockRiderRepository) GetByID(ctx context.Context, id string) (*domain.Rider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.riders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *r
	return &copy, nil
}

func (m *MockRiderRepository) GetByUserID(ctx context.Context, userID string) (*domain.Rider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.riders {
		if r.UserID == userID {
			copy := *r
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockRiderRepository) GetAll(ctx context.Context) ([]*domain.Rider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Rider, 0, len(m.riders))
	for _, r := range m.riders {
		copy := *r
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockRiderRepository) GetAvailable(ctx context.Context) ([]*domain.Rider, error) {
	atomic.AddInt32(&m.GetAvailableCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Rider, 0, len(m.riders))
	for _, r := range m.riders {
		if r.IsAvailable && r.VerificationStatus == domain.VerificationStatusApproved {
			copy := *r
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockRiderRepository) Update(ctx context.Context, r *domain.Rider) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.riders[r.ID]; !ok {
		return repository.ErrNotFound
	}
	r.UpdatedAt = time.Now()
	copy := *r
	m.riders[r.ID] = &copy
	return nil
}

func (m *MockRiderRepository) UpdateLocation(ctx context.Context, id string, lat, lng *float64) error {
	atomic.AddInt32(&m.UpdateLocationCallCount, 1)
	if m.UpdateLocationError != nil {
		return m.UpdateLocationError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.riders[id]
	if !ok {
		return repository.ErrNotFound
	}
	if lat != nil {
		v := *lat
		r.CurrentLatitude = &v
	}
	if lng != nil {
		v := *lng
		r.CurrentLongitude = &v
	}
	r.UpdatedAt = time.Now()
	return nil
}

func (m *MockRiderRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.riders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.riders, id)
	return nil
}

// GetRider returns the stored rider for test assertions.
func (m *MockRiderRepository) GetRider(id string) *domain.Rider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.riders[id]
}

// ──────────────────────────────────────────────
// MOCK AVAILABILITY CACHE
// ──────────────────────────────────────────────

// MockAvailabilityCache is an in-memory mock of the availability cache slot
// with real expiry semantics.
type MockAvailabilityCache struct {
	mu        sync.Mutex
	payload   []byte
	expiresAt time.Time

	// Counters for verification
	GetCallCount        int32
	SetCallCount        int32
	InvalidateCallCount int32

	// Error injection
	GetError        error
	SetError        error
	InvalidateError error
}

var _ redis.AvailabilityCacheInterface = (*MockAvailabilityCache)(nil)

// NewMockAvailabilityCache creates a new mock availability cache.
func NewMockAvailabilityCache() *MockAvailabilityCache {
	return &MockAvailabilityCache{}
}

func (m *MockAvailabilityCache) Get(ctx context.Context) ([]byte, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.payload == nil || time.Now().After(m.expiresAt) {
		return nil, nil
	}
	copy := append([]byte(nil), m.payload...)
	return copy, nil
}

func (m *MockAvailabilityCache) Set(ctx context.Context, payload []byte) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = append([]byte(nil), payload...)
	m.expiresAt = time.Now().Add(redis.AvailableRidersTTL)
	return nil
}

func (m *MockAvailabilityCache) Invalidate(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	if m.InvalidateError != nil {
		return m.InvalidateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = nil
	return nil
}

// HasEntry reports whether an unexpired payload is cached.
func (m *MockAvailabilityCache) HasEntry() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payload != nil && time.Now().Before(m.expiresAt)
}

// Expire forces the cached entry past its TTL without removing it.
func (m *MockAvailabilityCache) Expire() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expiresAt = time.Now().Add(-time.Second)
}

// ──────────────────────────────────────────────
// MOCK AUTH PRIMITIVES
// ──────────────────────────────────────────────

// MockHasher is a deterministic password hasher for tests.
type MockHasher struct{}

func (MockHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (MockHasher) Verify(hash, password string) bool { return hash == "hashed:"+password }

// MockTokenIssuer mints predictable tokens of the form "<type>-<userID>".
type MockTokenIssuer struct {
	IssueCallCount int32

	// Error injection
	IssueError error
}

func (m *MockTokenIssuer) IssuePair(userID string) (auth.TokenPair, error) {
	atomic.AddInt32(&m.IssueCallCount, 1)
	if m.IssueError != nil {
		return auth.TokenPair{}, m.IssueError
	}
	return auth.TokenPair{
		Access:     "access-" + userID,
		AccessJTI:  "access-jti-" + userID,
		Refresh:    "refresh-" + userID,
		RefreshJTI: "refresh-jti-" + userID,
	}, nil
}

func (m *MockTokenIssuer) Generate(userID string, tokenType auth.TokenType) (string, string, error) {
	prefix := strings.ToLower(string(tokenType))
	return prefix + "-" + userID, prefix + "-jti-" + userID, nil
}

func (m *MockTokenIssuer) Verify(token string, expected auth.TokenType) (*auth.Claims, error) {
	prefix := strings.ToLower(string(expected)) + "-"
	if !strings.HasPrefix(token, prefix) {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: strings.TrimPrefix(token, prefix), Type: expected}, nil
}

func (m *MockTokenIssuer) AccessTTL() time.Duration { return 15 * time.Minute }

func (m *MockTokenIssuer) RefreshTTL() time.Duration { return 24 * time.Hour }

// MockSessionRecorder records session writes for verification.
type MockSessionRecorder struct {
	RecordCallCount int32
	ClearCallCount  int32
	LastUserID      string
}

func (m *MockSessionRecorder) Record(ctx context.Context, userID, accessJTI, refreshJTI string, accessTTL, refreshTTL time.Duration) error {
	atomic.AddInt32(&m.RecordCallCount, 1)
	m.LastUserID = userID
	return nil
}

func (m *MockSessionRecorder) Clear(ctx context.Context, userID string) error {
	atomic.AddInt32(&m.ClearCallCount, 1)
	return nil
}
