package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iSamBa/gym-manager-sub000/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListSessions godoc
// @Summary      List sessions in a date range
// @Description  Returns sessions overlapping [from, to) enriched with machine, trainer and member fields for calendar rendering.
// @Tags         sessions
// @Produce      json
// @Param        from  query     string  true  "Range start (RFC3339)"
// @Param        to    query     string  true  "Range end (RFC3339)"
// @Success      200   {array}   CalendarEntry
// @Failure      400   {object}  api.ErrorResponse
// @Failure      500   {object}  api.ErrorResponse
// @Router       /sessions [get]
func (h *Handler) ListSessions(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid or missing 'from' parameter, expected RFC3339"})
		return
	}

	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid or missing 'to' parameter, expected RFC3339"})
		return
	}

	if !to.After(from) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "'to' must be after 'from'"})
		return
	}

	entries, err := h.service.ListCalendar(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load sessions"})
		return
	}

	if entries == nil {
		entries = []CalendarEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

// GetSession godoc
// @Summary      Get one session
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  CalendarEntry
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /sessions/{sessionID} [get]
func (h *Handler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid session ID"})
		return
	}

	entry, err := h.service.GetCalendarEntry(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "session not found"})
		return
	}

	c.JSON(http.StatusOK, entry)
}
