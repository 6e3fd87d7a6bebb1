package machine

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

// ListMachines godoc
// @Summary      List machines
// @Tags         machines
// @Produce      json
// @Success      200  {array}   Machine
// @Failure      500  {object}  api.ErrorResponse
// @Router       /machines [get]
func (h *Handler) ListMachines(c *gin.Context) {
	machines, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load machines"})
		return
	}

	if machines == nil {
		machines = []Machine{}
	}

	c.JSON(http.StatusOK, machines)
}
