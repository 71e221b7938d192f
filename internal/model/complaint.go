package model

import (
	"time"

	"github.com/google/uuid"
)

// Complaint is a filed waste-pickup request. FiledBy is set once at creation
// and never changes; IsResolved is the only field that may change afterwards.
type Complaint struct {
	ID          uuid.UUID `json:"id"`
	WasteType   string    `json:"waste_type"`
	Description string    `json:"description"`
	FiledBy     uuid.UUID `json:"filed_by"`
	PickupDate  *string   `json:"pickup_date,omitempty"`
	PickupTime  string    `json:"pickup_time"`
	RegDate     time.Time `json:"reg_date"`
	IsResolved  bool      `json:"is_resolved"`
}

// Admin is a membership record: an identity is an administrator exactly when
// a row with its ID exists. This service never writes to the admin set.
type Admin struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Request/Response
type FileComplaintRequest struct {
	WasteType   string  `json:"waste_type" binding:"required"`
	Description string  `json:"description" binding:"required"`
	PickupDate  *string `json:"pickup_date"`
	PickupTime  string  `json:"pickup_time" binding:"required"`
}

type ComplaintResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Complaint *Complaint `json:"complaint,omitempty"`
}

type ComplaintListResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Complaints []Complaint `json:"complaints"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
