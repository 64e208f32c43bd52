package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gecapi/internal/model"
	"gecapi/internal/service"
	"gecapi/internal/workflow"
)

type MockCourrierService struct {
	mock.Mock
}

func (m *MockCourrierService) Create(ctx context.Context, in workflow.CreateCourrierInput) (*model.Courrier, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Courrier), args.Error(1)
}

func (m *MockCourrierService) Get(ctx context.Context, id string) (*model.Courrier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Courrier), args.Error(1)
}

func (m *MockCourrierService) List(ctx context.Context, req service.ListRequest) (*service.CourrierListResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CourrierListResult), args.Error(1)
}

func (m *MockCourrierService) Transmit(ctx context.Context, courrierID string, in workflow.TransmitInput) (*service.MutationResult, error) {
	args := m.Called(ctx, courrierID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MutationResult), args.Error(1)
}

func (m *MockCourrierService) ApplyAction(ctx context.Context, courrierID string, in workflow.ApplyActionInput) (*service.MutationResult, error) {
	args := m.Called(ctx, courrierID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MutationResult), args.Error(1)
}

func (m *MockCourrierService) MarkRead(ctx context.Context, courrierID, nodeID string) (*model.Courrier, error) {
	args := m.Called(ctx, courrierID, nodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Courrier), args.Error(1)
}

func (m *MockCourrierService) History(ctx context.Context, id string) ([]model.HistoryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HistoryEntry), args.Error(1)
}

func (m *MockCourrierService) Documents(ctx context.Context, id string) ([]model.DataDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DataDocument), args.Error(1)
}

func (m *MockCourrierService) Stats(ctx context.Context, req service.ListRequest) (*model.Stats, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}

func (m *MockCourrierService) Entities(ctx context.Context) ([]model.Entity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Entity), args.Error(1)
}
