package service_test

import (
	"errors"
	"testing"

	"complaint-service/internal/messaging"
	"complaint-service/internal/model"
	"complaint-service/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newTestService(complaints *MockComplaintStore, admins *MockAdminStore, outbox *MockEventOutbox) *service.ComplaintService {
	return service.NewComplaintService(complaints, admins, outbox, zap.NewNop())
}

func validRequest() *model.FileComplaintRequest {
	return &model.FileComplaintRequest{
		WasteType:   "organic",
		Description: "weekly pickup",
		PickupTime:  "10:00",
	}
}

// TestFile_SetsOwnershipAndDefaults verifies that a filed complaint carries the
// caller identity and starts unresolved with a server-set registration date.
func TestFile_SetsOwnershipAndDefaults(t *testing.T) {
	complaints := new(MockComplaintStore)
	admins := new(MockAdminStore)
	outbox := new(MockEventOutbox)
	svc := newTestService(complaints, admins, outbox)

	caller := uuid.New()
	complaints.On("Create", mock.AnythingOfType("*model.Complaint")).Return(nil).Once()
	outbox.On("Create", messaging.RoutingKeyComplaintFiled, mock.Anything).Return(nil).Once()

	complaint, err := svc.File(validRequest(), caller)

	assert.NoError(t, err)
	assert.Equal(t, caller, complaint.FiledBy)
	assert.False(t, complaint.IsResolved)
	assert.NotEqual(t, uuid.Nil, complaint.ID)
	assert.False(t, complaint.RegDate.IsZero())
	complaints.AssertExpectations(t)
	outbox.AssertExpectations(t)
}

// TestFile_MissingFields verifies that filing without any required field never
// touches the store.
func TestFile_MissingFields(t *testing.T) {
	cases := map[string]*model.FileComplaintRequest{
		"no waste type":    {Description: "weekly pickup", PickupTime: "10:00"},
		"no description":   {WasteType: "organic", PickupTime: "10:00"},
		"no pickup time":   {WasteType: "organic", Description: "weekly pickup"},
		"blank waste type": {WasteType: "   ", Description: "weekly pickup", PickupTime: "10:00"},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			complaints := new(MockComplaintStore)
			svc := newTestService(complaints, new(MockAdminStore), new(MockEventOutbox))

			_, err := svc.File(req, uuid.New())

			assert.ErrorIs(t, err, service.ErrMissingFields)
			complaints.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}

// TestFile_StoreFailure verifies that a persistence failure propagates and no
// event is enqueued.
func TestFile_StoreFailure(t *testing.T) {
	complaints := new(MockComplaintStore)
	outbox := new(MockEventOutbox)
	svc := newTestService(complaints, new(MockAdminStore), outbox)

	complaints.On("Create", mock.Anything).Return(errors.New("connection refused")).Once()

	_, err := svc.File(validRequest(), uuid.New())

	assert.Error(t, err)
	outbox.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestListAll_NonAdmin verifies the authorization gate: a non-admin caller gets
// ErrNotAdmin and the complaint collection is never read.
func TestListAll_NonAdmin(t *testing.T) {
	complaints := new(MockComplaintStore)
	admins := new(MockAdminStore)
	svc := newTestService(complaints, admins, new(MockEventOutbox))

	caller := uuid.New()
	admins.On("IsAdmin", caller).Return(false, nil).Once()

	_, err := svc.ListAll(caller)

	assert.ErrorIs(t, err, service.ErrNotAdmin)
	complaints.AssertNotCalled(t, "FindAll")
	admins.AssertExpectations(t)
}

// TestListAll_Admin verifies an admin sees every complaint.
func TestListAll_Admin(t *testing.T) {
	complaints := new(MockComplaintStore)
	admins := new(MockAdminStore)
	svc := newTestService(complaints, admins, new(MockEventOutbox))

	caller := uuid.New()
	stored := []model.Complaint{
		{ID: uuid.New(), WasteType: "organic"},
		{ID: uuid.New(), WasteType: "plastic"},
	}
	admins.On("IsAdmin", caller).Return(true, nil).Once()
	complaints.On("FindAll").Return(stored, nil).Once()

	result, err := svc.ListAll(caller)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
}

// TestListAll_AdminEmptyStore verifies an empty store yields an empty slice,
// not nil.
func TestListAll_AdminEmptyStore(t *testing.T) {
	complaints := new(MockComplaintStore)
	admins := new(MockAdminStore)
	svc := newTestService(complaints, admins, new(MockEventOutbox))

	caller := uuid.New()
	admins.On("IsAdmin", caller).Return(true, nil).Once()
	complaints.On("FindAll").Return(nil, nil).Once()

	result, err := svc.ListAll(caller)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

// TestResolve_NonAdmin verifies the gate on the status transition: the store
// is never mutated for a non-admin caller.
func TestResolve_NonAdmin(t *testing.T) {
	complaints := new(MockComplaintStore)
	admins := new(MockAdminStore)
	svc := newTestService(complaints, admins, new(MockEventOutbox))

	caller := uuid.New()
	admins.On("IsAdmin", caller).Return(false, nil).Once()

	_, err := svc.Resolve(caller, uuid.New())

	assert.ErrorIs(t, err, service.ErrNotAdmin)
	complaints.AssertNotCalled(t, "MarkResolved", mock.Anything)
}

// TestResolve_Success verifies the resolved record comes back and the
// complaint.resolved event is enqueued.
func TestResolve_Success(t *testing.T) {
	complaints := new(MockComplaintStore)
	admins := new(MockAdminStore)
	outbox := new(MockEventOutbox)
	svc := newTestService(complaints, admins, outbox)

	caller := uuid.New()
	target := uuid.New()
	resolved := &model.Complaint{ID: target, WasteType: "organic", FiledBy: uuid.New(), IsResolved: true}

	admins.On("IsAdmin", caller).Return(true, nil).Once()
	complaints.On("MarkResolved", target).Return(resolved, nil).Once()
	outbox.On("Create", messaging.RoutingKeyComplaintResolved, mock.Anything).Return(nil).Once()

	result, err := svc.Resolve(caller, target)

	assert.NoError(t, err)
	assert.True(t, result.IsResolved)
	assert.Equal(t, target, result.ID)
	outbox.AssertExpectations(t)
}

// TestResolve_NotFound verifies a missing id surfaces as ErrComplaintNotFound,
// never as a silent success.
func TestResolve_NotFound(t *testing.T) {
	complaints := new(MockComplaintStore)
	admins := new(MockAdminStore)
	outbox := new(MockEventOutbox)
	svc := newTestService(complaints, admins, outbox)

	caller := uuid.New()
	target := uuid.New()
	admins.On("IsAdmin", caller).Return(true, nil).Once()
	complaints.On("MarkResolved", target).Return(nil, nil).Once()

	_, err := svc.Resolve(caller, target)

	assert.ErrorIs(t, err, service.ErrComplaintNotFound)
	outbox.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestResolve_OutboxFailureDoesNotFailRequest verifies event enqueueing is
// best-effort.
func TestResolve_OutboxFailureDoesNotFailRequest(t *testing.T) {
	complaints := new(MockComplaintStore)
	admins := new(MockAdminStore)
	outbox := new(MockEventOutbox)
	svc := newTestService(complaints, admins, outbox)

	caller := uuid.New()
	target := uuid.New()
	resolved := &model.Complaint{ID: target, IsResolved: true}

	admins.On("IsAdmin", caller).Return(true, nil).Once()
	complaints.On("MarkResolved", target).Return(resolved, nil).Once()
	outbox.On("Create", mock.Anything, mock.Anything).Return(errors.New("outbox full")).Once()

	result, err := svc.Resolve(caller, target)

	assert.NoError(t, err)
	assert.True(t, result.IsResolved)
}

// TestHistory_Empty verifies an empty history is a normal empty slice, not an
// error.
func TestHistory_Empty(t *testing.T) {
	complaints := new(MockComplaintStore)
	svc := newTestService(complaints, new(MockAdminStore), new(MockEventOutbox))

	filer := uuid.New()
	complaints.On("FindByFiler", filer).Return(nil, nil).Once()

	result, err := svc.History(filer)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

// TestHistory_ReturnsOnlyOwnComplaints verifies history queries by the filer
// identity derived from the credential.
func TestHistory_ReturnsOnlyOwnComplaints(t *testing.T) {
	complaints := new(MockComplaintStore)
	svc := newTestService(complaints, new(MockAdminStore), new(MockEventOutbox))

	filer := uuid.New()
	own := []model.Complaint{{ID: uuid.New(), FiledBy: filer}}
	complaints.On("FindByFiler", filer).Return(own, nil).Once()

	result, err := svc.History(filer)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, filer, result[0].FiledBy)
}
