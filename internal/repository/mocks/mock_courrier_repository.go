package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gecapi/internal/model"
	"gecapi/internal/repository"
)

type MockCourrierRepository struct {
	mock.Mock
}

func (m *MockCourrierRepository) Create(ctx context.Context, c *model.Courrier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourrierRepository) FindByID(ctx context.Context, id string) (*model.Courrier, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(func(context.Context, string) (*model.Courrier, error)); ok {
		return f(ctx, id)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Courrier), args.Error(1)
}

func (m *MockCourrierRepository) List(ctx context.Context, q repository.ListQuery) (*repository.PageResult[model.Courrier], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Courrier]), args.Error(1)
}

func (m *MockCourrierRepository) Update(ctx context.Context, c *model.Courrier, expectedVersion int) error {
	args := m.Called(ctx, c, expectedVersion)
	return args.Error(0)
}

func (m *MockCourrierRepository) NextNumber(ctx context.Context, year int) (int, error) {
	args := m.Called(ctx, year)
	return args.Int(0), args.Error(1)
}
