package mocks

import (
	"context"
	"io"

	"github.com/Yulian302/findit-gateway/listing"
	"github.com/stretchr/testify/mock"
)

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) ResetMock() {
	m.ExpectedCalls = nil
	m.Calls = nil
}

func (m *MockBlobStore) ListChildren(ctx context.Context, ref listing.Ref) (*listing.Listing, error) {
	args := m.Called(ctx, ref)
	l, _ := args.Get(0).(*listing.Listing)
	return l, args.Error(1)
}

func (m *MockBlobStore) ResolveDownloadAddress(ctx context.Context, ref listing.Ref) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, body, size, contentType)
	return args.Error(0)
}

type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) ResetMock() {
	m.ExpectedCalls = nil
	m.Calls = nil
}

func (m *MockRecordStore) QueryRecordsForUser(ctx context.Context, userID string) ([]listing.Record, error) {
	args := m.Called(ctx, userID)
	recs, _ := args.Get(0).([]listing.Record)
	return recs, args.Error(1)
}

func (m *MockRecordStore) QueryAllRecordsOrderedByField(ctx context.Context, field string) ([]listing.Record, error) {
	args := m.Called(ctx, field)
	recs, _ := args.Get(0).([]listing.Record)
	return recs, args.Error(1)
}

func (m *MockRecordStore) PutRecord(ctx context.Context, rec listing.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

type MockDeviceTokenStore struct {
	mock.Mock
}

func (m *MockDeviceTokenStore) ResetMock() {
	m.ExpectedCalls = nil
	m.Calls = nil
}

func (m *MockDeviceTokenStore) Save(ctx context.Context, userID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockDeviceTokenStore) Get(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
