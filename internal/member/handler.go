package member

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iSamBa/gym-manager-sub000/internal/api"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetMember godoc
// @Summary      Get one member
// @Tags         members
// @Produce      json
// @Param        memberID  path      int  true  "Member ID"
// @Success      200       {object}  Member
// @Failure      400       {object}  api.ErrorResponse
// @Failure      404       {object}  api.ErrorResponse
// @Router       /members/{memberID} [get]
func (h *Handler) GetMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("memberID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid member ID"})
		return
	}

	m, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load member"})
		return
	}

	c.JSON(http.StatusOK, m)
}
