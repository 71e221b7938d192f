package handler_test

import (
	"sync"

	"complaint-service/internal/model"

	"github.com/google/uuid"
)

// fakeComplaintStore is an in-memory ComplaintStore with error injection and
// call counting, enough to drive full request cycles through the router.
type fakeComplaintStore struct {
	mu           sync.Mutex
	complaints   []model.Complaint
	createErr    error
	queryErr     error
	findAllCalls int
	markCalls    int
}

func (f *fakeComplaintStore) Create(complaint *model.Complaint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.complaints = append(f.complaints, *complaint)
	return nil
}

func (f *fakeComplaintStore) FindAll() ([]model.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findAllCalls++
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return append([]model.Complaint(nil), f.complaints...), nil
}

func (f *fakeComplaintStore) FindByFiler(filedBy uuid.UUID) ([]model.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var result []model.Complaint
	for _, c := range f.complaints {
		if c.FiledBy == filedBy {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeComplaintStore) MarkResolved(id uuid.UUID) (*model.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markCalls++
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	for i := range f.complaints {
		if f.complaints[i].ID == id {
			f.complaints[i].IsResolved = true
			updated := f.complaints[i]
			return &updated, nil
		}
	}
	return nil, nil
}

type fakeAdminStore struct {
	admins map[uuid.UUID]bool
}

func (f *fakeAdminStore) IsAdmin(id uuid.UUID) (bool, error) {
	return f.admins[id], nil
}

type outboxEvent struct {
	routingKey string
	payload    interface{}
}

type fakeOutbox struct {
	mu     sync.Mutex
	events []outboxEvent
}

func (f *fakeOutbox) Create(routingKey string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, outboxEvent{routingKey: routingKey, payload: payload})
	return nil
}

func (f *fakeOutbox) routingKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.events))
	for _, e := range f.events {
		keys = append(keys, e.routingKey)
	}
	return keys
}
