package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iSamBa/gym-manager-sub000/internal/api"
	"github.com/iSamBa/gym-manager-sub000/internal/logger"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateSession godoc
// @Summary      Book a training session
// @Description  Validates the request against the ordered rule pipeline and persists the session with its memberships atomically.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request  body      CreateSessionRequest  true  "Booking request"
// @Success      201      {object}  api.BookingSuccess
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.BookingFailure
// @Failure      422      {object}  api.BookingFailure
// @Failure      500      {object}  api.ErrorResponse
// @Router       /sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !result.Accepted() {
		h.respondViolation(c, result.Violation)
		return
	}

	c.JSON(http.StatusCreated, api.BookingSuccess{
		Success:   true,
		SessionID: result.SessionID.String(),
		Message:   "session booked",
	})
}

// ValidateSession godoc
// @Summary      Validate a booking request (dry run)
// @Description  Runs the same rule pipeline as session creation without writing anything. Non-authoritative: creation re-validates.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request  body      ValidateSessionRequest  true  "Booking request"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /sessions/validate [post]
func (h *Handler) ValidateSession(c *gin.Context) {
	var req ValidateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.Validate(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if result.Valid {
		c.JSON(http.StatusOK, gin.H{"valid": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":         false,
		"error_code":    result.Violation.Code,
		"error_message": result.Violation.Message,
		"details":       result.Violation.Details,
	})
}

// CancelSession godoc
// @Summary      Cancel a session
// @Description  Cancels the session and all its memberships, freeing the machine interval and the members' weekly quota.
// @Tags         bookings
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  api.MessageResponse
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /sessions/{sessionID}/cancel [post]
func (h *Handler) CancelSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid session ID"})
		return
	}

	if err := h.service.CancelSession(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "session not found"})
		case errors.Is(err, ErrNotCancellable):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "session is already completed or cancelled"})
		default:
			h.respondError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "session cancelled"})
}

// UpdateMembershipStatus godoc
// @Summary      Update a membership status
// @Description  Marks attendance or cancels a single member's booking; the session's participant counter is recomputed in the same transaction.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        membershipID  path      string                         true  "Membership ID"
// @Param        request       body      UpdateMembershipStatusRequest  true  "Target status"
// @Success      200           {object}  api.MessageResponse
// @Failure      400           {object}  api.ErrorResponse
// @Failure      404           {object}  api.ErrorResponse
// @Router       /memberships/{membershipID}/status [post]
func (h *Handler) UpdateMembershipStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("membershipID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid membership ID"})
		return
	}

	var req UpdateMembershipStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	h.setMembershipStatus(c, id, MembershipStatus(req.Status))
}

// CancelMembership godoc
// @Summary      Cancel one member's booking
// @Tags         bookings
// @Produce      json
// @Param        membershipID  path      string  true  "Membership ID"
// @Success      200           {object}  api.MessageResponse
// @Failure      400           {object}  api.ErrorResponse
// @Failure      404           {object}  api.ErrorResponse
// @Router       /memberships/{membershipID}/cancel [post]
func (h *Handler) CancelMembership(c *gin.Context) {
	h.membershipAction(c, MembershipCancelled)
}

// MarkAttended godoc
// @Summary      Mark a member as attended
// @Tags         bookings
// @Produce      json
// @Param        membershipID  path      string  true  "Membership ID"
// @Success      200           {object}  api.MessageResponse
// @Failure      400           {object}  api.ErrorResponse
// @Failure      404           {object}  api.ErrorResponse
// @Router       /memberships/{membershipID}/attended [post]
func (h *Handler) MarkAttended(c *gin.Context) {
	h.membershipAction(c, MembershipAttended)
}

// MarkNoShow godoc
// @Summary      Mark a member as no-show
// @Tags         bookings
// @Produce      json
// @Param        membershipID  path      string  true  "Membership ID"
// @Success      200           {object}  api.MessageResponse
// @Failure      400           {object}  api.ErrorResponse
// @Failure      404           {object}  api.ErrorResponse
// @Router       /memberships/{membershipID}/no-show [post]
func (h *Handler) MarkNoShow(c *gin.Context) {
	h.membershipAction(c, MembershipNoShow)
}

func (h *Handler) membershipAction(c *gin.Context, status MembershipStatus) {
	id, err := uuid.Parse(c.Param("membershipID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid membership ID"})
		return
	}

	h.setMembershipStatus(c, id, status)
}

func (h *Handler) setMembershipStatus(c *gin.Context, id uuid.UUID, status MembershipStatus) {
	if err := h.service.UpdateMembershipStatus(c.Request.Context(), id, status); err != nil {
		switch {
		case errors.Is(err, ErrMembershipNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "membership not found"})
		case errors.Is(err, ErrMalformed):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			h.respondError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "membership updated"})
}

func respondBindError(c *gin.Context, err error) {
	if details := api.BindingErrors(err); details != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": details,
		})
		return
	}
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
}

func (h *Handler) respondViolation(c *gin.Context, v *Violation) {
	c.JSON(statusForCode(v.Code), api.BookingFailure{
		Success:      false,
		ErrorCode:    v.Code,
		ErrorMessage: v.Message,
		Details:      v.Details,
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	if errors.Is(err, ErrMalformed) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	// Infrastructure fault: log the detail, return a generic failure.
	// Nothing was committed; the caller may retry the whole request.
	logger.Errorf("Booking request failed: %v", err)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "booking failed, please retry"})
}

// statusForCode separates "someone else holds the slot" conflicts (409)
// from request-shape rule failures (422).
func statusForCode(code string) int {
	switch code {
	case CodeTrainerNotAvailable, CodeMembersNotAvailable,
		CodeWeeklyLimitExceeded, CodeStudioCapacityExceeded,
		CodePersistenceConflict:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}
