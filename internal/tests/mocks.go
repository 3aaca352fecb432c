package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"rental/internal/domain"
	redisstore "rental/internal/redis"
	"rental/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.TenantID == tenantID {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *booking
	m.bookings[booking.ID] = &copy
	return nil
}

func (m *MockBookingRepository) FindOverlapping(ctx context.Context, vehicleID string, start, end time.Time) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.VehicleID != vehicleID {
			continue
		}
		if b.Status != domain.BookingStatusConfirmed && b.Status != domain.BookingStatusCheckedOut {
			continue
		}
		if b.StartDate.Before(end) && b.EndDate.After(start) {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) ListConfirmedStartingBefore(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.Status == domain.BookingStatusConfirmed && b.StartDate.Before(cutoff) {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.Status == domain.BookingStatusPending && b.CreatedAt.Before(cutoff) {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK CAUTION REPOSITORY
// ──────────────────────────────────────────────

// MockCautionRepository is a mock implementation of CautionRepository.
type MockCautionRepository struct {
	mu       sync.RWMutex
	cautions map[string]*domain.Caution

	// Counters for verification
	UpdateCallCount int32

	// Error injection
	UpdateError error
}

// NewMockCautionRepository creates a new mock caution repository.
func NewMockCautionRepository() *MockCautionRepository {
	return &MockCautionRepository{
		cautions: make(map[string]*domain.Caution),
	}
}

// AddCaution adds a caution to the mock repository.
func (m *MockCautionRepository) AddCaution(caution *domain.Caution) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cautions[caution.ID] = caution
}

func (m *MockCautionRepository) Create(ctx context.Context, caution *domain.Caution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cautions[caution.ID] = caution
	return nil
}

func (m *MockCautionRepository) GetByID(ctx context.Context, id string) (*domain.Caution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	caution, ok := m.cautions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *caution
	return &copy, nil
}

func (m *MockCautionRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Caution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.cautions {
		if c.BookingID == bookingID {
			copy := *c
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockCautionRepository) Update(ctx context.Context, caution *domain.Caution) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cautions[caution.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *caution
	m.cautions[caution.ID] = &copy
	return nil
}

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	// Counters for verification
	UpdateStatusFromCallCount int32

	// Error injection
	UpdateStatusFromError error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Vehicle
	for _, v := range m.vehicles {
		if v.TenantID == tenantID {
			copy := *v
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[vehicle.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *vehicle
	m.vehicles[vehicle.ID] = &copy
	return nil
}

func (m *MockVehicleRepository) UpdateStatusFrom(ctx context.Context, id string, from, to domain.VehicleStatus) error {
	atomic.AddInt32(&m.UpdateStatusFromCallCount, 1)
	if m.UpdateStatusFromError != nil {
		return m.UpdateStatusFromError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return repository.ErrNotFound
	}
	if vehicle.Status != from {
		return repository.ErrStatusConflict
	}
	vehicle.Status = to
	return nil
}

// ──────────────────────────────────────────────
// MOCK DAMAGE REPOSITORY
// ──────────────────────────────────────────────

// MockDamageRepository is a mock implementation of DamageRepository.
type MockDamageRepository struct {
	mu      sync.RWMutex
	damages map[string]*domain.Damage

	// Error injection
	ListError error
}

// NewMockDamageRepository creates a new mock damage repository.
func NewMockDamageRepository() *MockDamageRepository {
	return &MockDamageRepository{
		damages: make(map[string]*domain.Damage),
	}
}

// AddDamage adds a damage to the mock repository.
func (m *MockDamageRepository) AddDamage(damage *domain.Damage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.damages[damage.ID] = damage
}

func (m *MockDamageRepository) Create(ctx context.Context, damage *domain.Damage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.damages[damage.ID] = damage
	return nil
}

func (m *MockDamageRepository) GetByID(ctx context.Context, id string) (*domain.Damage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	damage, ok := m.damages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *damage
	return &copy, nil
}

func (m *MockDamageRepository) ListByBooking(ctx context.Context, bookingID string) ([]*domain.Damage, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Damage
	for _, d := range m.damages {
		if d.BookingID == bookingID {
			copy := *d
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockDamageRepository) Update(ctx context.Context, damage *domain.Damage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.damages[damage.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *damage
	m.damages[damage.ID] = &copy
	return nil
}

// ──────────────────────────────────────────────
// MOCK MAINTENANCE REPOSITORY
// ──────────────────────────────────────────────

// MockMaintenanceRepository is a mock implementation of MaintenanceRepository.
type MockMaintenanceRepository struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Maintenance
}

// NewMockMaintenanceRepository creates a new mock maintenance repository.
func NewMockMaintenanceRepository() *MockMaintenanceRepository {
	return &MockMaintenanceRepository{
		jobs: make(map[string]*domain.Maintenance),
	}
}

// AddJob adds a maintenance job to the mock repository.
func (m *MockMaintenanceRepository) AddJob(job *domain.Maintenance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
}

func (m *MockMaintenanceRepository) Create(ctx context.Context, job *domain.Maintenance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
	return nil
}

func (m *MockMaintenanceRepository) GetByID(ctx context.Context, id string) (*domain.Maintenance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *job
	return &copy, nil
}

func (m *MockMaintenanceRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Maintenance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Maintenance
	for _, job := range m.jobs {
		if job.TenantID == tenantID {
			copy := *job
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockMaintenanceRepository) Update(ctx context.Context, job *domain.Maintenance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[job.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *job
	m.jobs[job.ID] = &copy
	return nil
}

// ──────────────────────────────────────────────
// MOCK EXTRA PRICE REPOSITORY
// ──────────────────────────────────────────────

// MockExtraPriceRepository is a mock implementation of ExtraPriceRepository.
type MockExtraPriceRepository struct {
	mu     sync.RWMutex
	prices map[string]map[string]float64 // tenantID -> type -> unit price
}

// NewMockExtraPriceRepository creates a new mock extras price repository.
func NewMockExtraPriceRepository() *MockExtraPriceRepository {
	return &MockExtraPriceRepository{
		prices: make(map[string]map[string]float64),
	}
}

// SetPrice seeds a price list entry.
func (m *MockExtraPriceRepository) SetPrice(tenantID, extraType string, unitPrice float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.prices[tenantID] == nil {
		m.prices[tenantID] = make(map[string]float64)
	}
	m.prices[tenantID][extraType] = unitPrice
}

func (m *MockExtraPriceRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.ExtraPrice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.ExtraPrice
	for extraType, unitPrice := range m.prices[tenantID] {
		result = append(result, &domain.ExtraPrice{
			TenantID:  tenantID,
			Type:      extraType,
			UnitPrice: unitPrice,
		})
	}
	return result, nil
}

func (m *MockExtraPriceRepository) Upsert(ctx context.Context, price *domain.ExtraPrice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.prices[price.TenantID] == nil {
		m.prices[price.TenantID] = make(map[string]float64)
	}
	m.prices[price.TenantID][price.Type] = price.UnitPrice
	return nil
}

// ──────────────────────────────────────────────
// MOCK CUSTOMER REPOSITORY
// ──────────────────────────────────────────────

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

// NewMockCustomerRepository creates a new mock customer repository.
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[string]*domain.Customer),
	}
}

// AddCustomer adds a customer to the mock repository.
func (m *MockCustomerRepository) AddCustomer(customer *domain.Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[customer.ID] = customer
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[customer.ID] = customer
	return nil
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	customer, ok := m.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *customer
	return &copy, nil
}

func (m *MockCustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.customers {
		if c.Email == email {
			copy := *c
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]bool),
	}
}

func (m *MockLockStore) AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[vehicleID] {
		return false, nil
	}
	m.locks[vehicleID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseVehicleLock(ctx context.Context, vehicleID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, vehicleID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is a pass-through cache: reads always miss, writes are
// recorded for verification.
type MockCacheStore struct {
	mu          sync.Mutex
	extraPrices map[string]map[string]float64

	// Counters for verification
	SetExtraPricesCallCount        int32
	InvalidateExtraPricesCallCount int32
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		extraPrices: make(map[string]map[string]float64),
	}
}

func (m *MockCacheStore) GetVehicle(ctx context.Context, vehicleID string) (*redisstore.CachedVehicle, error) {
	return nil, nil
}

func (m *MockCacheStore) SetVehicle(ctx context.Context, vehicle *redisstore.CachedVehicle) error {
	return nil
}

func (m *MockCacheStore) InvalidateVehicle(ctx context.Context, vehicleID string) error {
	return nil
}

func (m *MockCacheStore) GetExtraPrices(ctx context.Context, tenantID string) (map[string]float64, error) {
	return nil, nil
}

func (m *MockCacheStore) SetExtraPrices(ctx context.Context, tenantID string, prices map[string]float64) error {
	atomic.AddInt32(&m.SetExtraPricesCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.extraPrices[tenantID] = prices
	return nil
}

func (m *MockCacheStore) InvalidateExtraPrices(ctx context.Context, tenantID string) error {
	atomic.AddInt32(&m.InvalidateExtraPricesCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.extraPrices, tenantID)
	return nil
}
