package service_test

import (
	"complaint-service/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockComplaintStore struct {
	mock.Mock
}

func (m *MockComplaintStore) Create(complaint *model.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockComplaintStore) FindAll() ([]model.Complaint, error) {
	args := m.Called()
	if complaints, ok := args.Get(0).([]model.Complaint); ok {
		return complaints, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockComplaintStore) FindByFiler(filedBy uuid.UUID) ([]model.Complaint, error) {
	args := m.Called(filedBy)
	if complaints, ok := args.Get(0).([]model.Complaint); ok {
		return complaints, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockComplaintStore) MarkResolved(id uuid.UUID) (*model.Complaint, error) {
	args := m.Called(id)
	if complaint, ok := args.Get(0).(*model.Complaint); ok {
		return complaint, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAdminStore struct {
	mock.Mock
}

func (m *MockAdminStore) IsAdmin(id uuid.UUID) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

type MockEventOutbox struct {
	mock.Mock
}

func (m *MockEventOutbox) Create(routingKey string, payload interface{}) error {
	args := m.Called(routingKey, payload)
	return args.Error(0)
}
