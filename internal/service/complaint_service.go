package service

import (
	"strings"
	"time"

	"complaint-service/internal/messaging"
	"complaint-service/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ComplaintStore is the persistence adapter for complaint records.
type ComplaintStore interface {
	Create(complaint *model.Complaint) error
	FindAll() ([]model.Complaint, error)
	FindByFiler(filedBy uuid.UUID) ([]model.Complaint, error)
	// MarkResolved returns the updated record, or (nil, nil) when no
	// complaint with that id exists.
	MarkResolved(id uuid.UUID) (*model.Complaint, error)
}

// AdminStore answers admin allow-list membership checks.
type AdminStore interface {
	IsAdmin(id uuid.UUID) (bool, error)
}

// EventOutbox accepts complaint lifecycle events for asynchronous publishing.
type EventOutbox interface {
	Create(routingKey string, payload interface{}) error
}

// ComplaintService holds the authorization and state-transition rules for
// complaints. Admin gating happens here, before any complaint read or write.
type ComplaintService struct {
	complaints ComplaintStore
	admins     AdminStore
	outbox     EventOutbox
	logger     *zap.Logger
}

func NewComplaintService(complaints ComplaintStore, admins AdminStore, outbox EventOutbox, logger *zap.Logger) *ComplaintService {
	return &ComplaintService{
		complaints: complaints,
		admins:     admins,
		outbox:     outbox,
		logger:     logger,
	}
}

// File creates a complaint for the verified caller. All three required fields
// must be present; nothing is written otherwise.
func (s *ComplaintService) File(req *model.FileComplaintRequest, filedBy uuid.UUID) (*model.Complaint, error) {
	if strings.TrimSpace(req.WasteType) == "" ||
		strings.TrimSpace(req.Description) == "" ||
		strings.TrimSpace(req.PickupTime) == "" {
		return nil, ErrMissingFields
	}

	complaint := &model.Complaint{
		ID:          uuid.New(),
		WasteType:   req.WasteType,
		Description: req.Description,
		FiledBy:     filedBy,
		PickupDate:  req.PickupDate,
		PickupTime:  req.PickupTime,
		RegDate:     time.Now(),
		IsResolved:  false,
	}

	if err := s.complaints.Create(complaint); err != nil {
		return nil, err
	}

	s.enqueueEvent(messaging.RoutingKeyComplaintFiled, messaging.ComplaintFiledMessage{
		ComplaintID: complaint.ID.String(),
		WasteType:   complaint.WasteType,
		FiledBy:     complaint.FiledBy.String(),
		PickupTime:  complaint.PickupTime,
		Timestamp:   complaint.RegDate.Unix(),
	})

	return complaint, nil
}

// ListAll returns every complaint. Admin only: a non-admin caller gets
// ErrNotAdmin and the complaint collection is never read.
func (s *ComplaintService) ListAll(caller uuid.UUID) ([]model.Complaint, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}

	complaints, err := s.complaints.FindAll()
	if err != nil {
		return nil, err
	}
	if complaints == nil {
		complaints = []model.Complaint{}
	}

	return complaints, nil
}

// Resolve marks a complaint resolved and returns the updated record. Admin
// only, gated before the store is touched. The transition is one-way and
// idempotent: resolving an already-resolved complaint succeeds unchanged.
// Admins may resolve complaints they did not file.
func (s *ComplaintService) Resolve(caller, complaintID uuid.UUID) (*model.Complaint, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}

	complaint, err := s.complaints.MarkResolved(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrComplaintNotFound
	}

	s.enqueueEvent(messaging.RoutingKeyComplaintResolved, messaging.ComplaintResolvedMessage{
		ComplaintID: complaint.ID.String(),
		WasteType:   complaint.WasteType,
		FiledBy:     complaint.FiledBy.String(),
		Timestamp:   time.Now().Unix(),
	})

	return complaint, nil
}

// History returns the caller's own complaints. An empty history is a normal
// state, not an error.
func (s *ComplaintService) History(filer uuid.UUID) ([]model.Complaint, error) {
	complaints, err := s.complaints.FindByFiler(filer)
	if err != nil {
		return nil, err
	}
	if complaints == nil {
		complaints = []model.Complaint{}
	}

	return complaints, nil
}

func (s *ComplaintService) requireAdmin(caller uuid.UUID) error {
	isAdmin, err := s.admins.IsAdmin(caller)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrNotAdmin
	}
	return nil
}

// enqueueEvent is best-effort: a full outbox or storage hiccup must not fail
// the request that produced the event.
func (s *ComplaintService) enqueueEvent(routingKey string, payload interface{}) {
	if s.outbox == nil {
		return
	}
	if err := s.outbox.Create(routingKey, payload); err != nil {
		s.logger.Warn("enqueue event", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
