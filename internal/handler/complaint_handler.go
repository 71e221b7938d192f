package handler

import (
	"errors"
	"net/http"

	"complaint-service/internal/middleware"
	"complaint-service/internal/model"
	"complaint-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ComplaintHandler struct {
	complaintService *service.ComplaintService
	logger           *zap.Logger
}

func NewComplaintHandler(complaintService *service.ComplaintService, logger *zap.Logger) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
		logger:           logger,
	}
}

// Handles POST /request/ - files a new complaint for the authenticated caller.
func (h *ComplaintHandler) FileComplaint(c *gin.Context) {
	caller, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Success: false, Message: "authentication required"})
		return
	}

	var req model.FileComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Message: service.ErrMissingFields.Error(),
		})
		return
	}

	complaint, err := h.complaintService.File(&req, caller)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.ComplaintResponse{
		Success:   true,
		Message:   "Complaint filed successfully!",
		Complaint: complaint,
	})
}

// Handles GET /request/all - returns every complaint. Admin only: non-admin
// callers get the 403 and nothing else executes.
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	caller, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Success: false, Message: "authentication required"})
		return
	}

	complaints, err := h.complaintService.ListAll(caller)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaints)
}

// Handles PATCH /request/update/:id - marks a complaint resolved. Admin only.
// The target id is a path parameter, not a header.
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	caller, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Success: false, Message: "authentication required"})
		return
	}

	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Success: false, Message: "invalid complaint id"})
		return
	}

	complaint, err := h.complaintService.Resolve(caller, complaintID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ComplaintResponse{
		Success:   true,
		Message:   "Complaint status updated successfully!",
		Complaint: complaint,
	})
}

// Handles GET /api/complaints/history - returns the caller's own complaints.
// An empty history is a 204 success, not an error.
func (h *ComplaintHandler) ComplaintHistory(c *gin.Context) {
	caller, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Success: false, Message: "authentication required"})
		return
	}

	complaints, err := h.complaintService.History(caller)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if len(complaints) == 0 {
		c.JSON(http.StatusNoContent, model.ComplaintListResponse{
			Success:    true,
			Message:    "No complaints found.",
			Complaints: complaints,
		})
		return
	}

	c.JSON(http.StatusOK, model.ComplaintListResponse{
		Success:    true,
		Message:    "Complaints fetched successfully!",
		Complaints: complaints,
	})
}

// Health check endpoint for service status monitoring.
func (h *ComplaintHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// respondError translates domain errors into status codes. Store failures
// stay generic in the body; the detail goes to the log.
func (h *ComplaintHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Success: false, Message: err.Error()})
	case errors.Is(err, service.ErrNotAdmin):
		c.JSON(http.StatusForbidden, model.ErrorResponse{Success: false, Message: "access denied"})
	case errors.Is(err, service.ErrComplaintNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Success: false, Message: err.Error()})
	default:
		h.logger.Error("store operation failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Message: "something went wrong, please try again later",
		})
	}
}
