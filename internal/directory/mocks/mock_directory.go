package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gecapi/internal/model"
)

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) Entity(ctx context.Context, id string) (*model.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entity), args.Error(1)
}

func (m *MockDirectory) User(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockDirectory) ListEntities(ctx context.Context) ([]model.Entity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Entity), args.Error(1)
}
