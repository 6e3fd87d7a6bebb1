package trainer

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iSamBa/gym-manager-sub000/internal/api"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListTrainers godoc
// @Summary      List trainers
// @Tags         trainers
// @Produce      json
// @Success      200  {array}   Trainer
// @Failure      500  {object}  api.ErrorResponse
// @Router       /trainers [get]
func (h *Handler) ListTrainers(c *gin.Context) {
	trainers, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load trainers"})
		return
	}

	if trainers == nil {
		trainers = []Trainer{}
	}

	c.JSON(http.StatusOK, trainers)
}
