package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockAdvertService struct {
	AddFunc           func(ctx context.Context, advert Advert) (Advert, error)
	AddManyFunc       func(ctx context.Context, adverts []Advert) ([]Advert, error)
	GetAllFunc        func(ctx context.Context) ([]Advert, error)
	GetByCategoryFunc func(ctx context.Context, category string) ([]Advert, error)
	GetByMaxPriceFunc func(ctx context.Context, maxPrice float64) ([]Advert, error)
	UpdateFunc        func(ctx context.Context, id int, advert Advert) (Advert, error)
	DeleteFunc        func(ctx context.Context, id int) error
	ClearFunc         func(ctx context.Context) error
	StatsFunc         func(ctx context.Context) IndexStats
}

// Add mocks the behavior of advert creation by the service.
func (m *MockAdvertService) Add(ctx context.Context, advert Advert) (Advert, error) {
	return m.AddFunc(ctx, advert)
}

// AddMany mocks the behavior of batch creation by the service.
func (m *MockAdvertService) AddMany(ctx context.Context, adverts []Advert) ([]Advert, error) {
	return m.AddManyFunc(ctx, adverts)
}

// GetAll mocks the behavior of retrieving all adverts by the service.
func (m *MockAdvertService) GetAll(ctx context.Context) ([]Advert, error) {
	return m.GetAllFunc(ctx)
}

// GetByCategory mocks the behavior of retrieving adverts of a category.
func (m *MockAdvertService) GetByCategory(ctx context.Context, category string) ([]Advert, error) {
	return m.GetByCategoryFunc(ctx, category)
}

// GetByMaxPrice mocks the behavior of retrieving adverts under a price.
func (m *MockAdvertService) GetByMaxPrice(ctx context.Context, maxPrice float64) ([]Advert, error) {
	return m.GetByMaxPriceFunc(ctx, maxPrice)
}

// Update mocks the behavior of replacing an advert by the service.
func (m *MockAdvertService) Update(ctx context.Context, id int, advert Advert) (Advert, error) {
	return m.UpdateFunc(ctx, id, advert)
}

// Delete mocks the behavior of deleting an advert by the service.
func (m *MockAdvertService) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

// Clear mocks the behavior of emptying the catalog.
func (m *MockAdvertService) Clear(ctx context.Context) error {
	return m.ClearFunc(ctx)
}

// Stats mocks the catalog statistics.
func (m *MockAdvertService) Stats(ctx context.Context) IndexStats {
	if m.StatsFunc == nil {
		return IndexStats{}
	}
	return m.StatsFunc(ctx)
}

// MockSnapshotStore implements a fake SnapshotStore.
type MockSnapshotStore struct {
	LoadFunc  func(ctx context.Context) ([]Advert, error)
	SaveFunc  func(ctx context.Context, adverts []Advert) error
	CloseFunc func() error
}

func (m *MockSnapshotStore) Load(ctx context.Context) ([]Advert, error) {
	return m.LoadFunc(ctx)
}

func (m *MockSnapshotStore) Save(ctx context.Context, adverts []Advert) error {
	return m.SaveFunc(ctx, adverts)
}

func (m *MockSnapshotStore) Close() error {
	if m.CloseFunc == nil {
		return nil
	}
	return m.CloseFunc()
}

// MockRandomizer replays a fixed sequence of offsets. Once
// exhausted it keeps returning the last one.
type MockRandomizer struct {
	Offsets []int
	calls   int
}

// IntN returns the next configured offset bounded by n.
func (mr *MockRandomizer) IntN(n int) int {
	if len(mr.Offsets) == 0 {
		return 0
	}
	i := mr.calls
	if i >= len(mr.Offsets) {
		i = len(mr.Offsets) - 1
	}
	mr.calls++
	return mr.Offsets[i] % n
}

// Calls returns how many draws were made.
func (mr *MockRandomizer) Calls() int {
	return mr.calls
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}
