package session

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/iSamBa/gym-manager-sub000/internal/api"
)

type StatsByDay struct {
	Bucket    string `db:"bucket" json:"bucket"`
	Booked    int    `db:"booked" json:"booked"`
	Cancelled int    `db:"cancelled" json:"cancelled"`
}

type StatsByMachine struct {
	MachineID     int64  `db:"machine_id" json:"machine_id"`
	MachineNumber int    `db:"machine_number" json:"machine_number"`
	MachineName   string `db:"machine_name" json:"machine_name"`
	Booked        int    `db:"booked" json:"booked"`
	Cancelled     int    `db:"cancelled" json:"cancelled"`
}

type AnalyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) StatsByDay(ctx context.Context, from, to time.Time) ([]StatsByDay, error) {
	query := `
SELECT
  DATE(start_time)::text AS bucket,
  COUNT(*) FILTER (WHERE status <> 'cancelled') AS booked,
  COUNT(*) FILTER (WHERE status = 'cancelled')  AS cancelled
FROM sessions
WHERE start_time >= $1 AND start_time < $2
GROUP BY DATE(start_time)
ORDER BY bucket;
`
	var stats []StatsByDay
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *AnalyticsRepository) StatsByMachine(ctx context.Context, from, to time.Time) ([]StatsByMachine, error) {
	query := `
SELECT
  m.id     AS machine_id,
  m.number AS machine_number,
  m.name   AS machine_name,
  COUNT(s.*) FILTER (WHERE s.status <> 'cancelled') AS booked,
  COUNT(s.*) FILTER (WHERE s.status = 'cancelled')  AS cancelled
FROM machines m
LEFT JOIN sessions s
  ON s.machine_id = m.id
 AND s.start_time >= $1 AND s.start_time < $2
GROUP BY m.id, m.number, m.name
ORDER BY m.number;
`
	var stats []StatsByMachine
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}
	return stats, nil
}

type AnalyticsHandler struct {
	repo *AnalyticsRepository
}

func NewAnalyticsHandler(repo *AnalyticsRepository) *AnalyticsHandler {
	return &AnalyticsHandler{repo: repo}
}

func (h *AnalyticsHandler) parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid or missing 'from' parameter, expected RFC3339"})
		return time.Time{}, time.Time{}, false
	}

	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid or missing 'to' parameter, expected RFC3339"})
		return time.Time{}, time.Time{}, false
	}

	if !to.After(from) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "'to' must be after 'from'"})
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}

// StatsByDay godoc
// @Summary      Sessions per day
// @Tags         stats
// @Produce      json
// @Param        from  query     string  true  "Range start (RFC3339)"
// @Param        to    query     string  true  "Range end (RFC3339)"
// @Success      200   {array}   StatsByDay
// @Failure      400   {object}  api.ErrorResponse
// @Router       /stats/sessions/daily [get]
func (h *AnalyticsHandler) StatsByDay(c *gin.Context) {
	from, to, ok := h.parseRange(c)
	if !ok {
		return
	}

	stats, err := h.repo.StatsByDay(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load stats"})
		return
	}

	if stats == nil {
		stats = []StatsByDay{}
	}

	c.JSON(http.StatusOK, stats)
}

// StatsByMachine godoc
// @Summary      Sessions per machine
// @Tags         stats
// @Produce      json
// @Param        from  query     string  true  "Range start (RFC3339)"
// @Param        to    query     string  true  "Range end (RFC3339)"
// @Success      200   {array}   StatsByMachine
// @Failure      400   {object}  api.ErrorResponse
// @Router       /stats/sessions/machines [get]
func (h *AnalyticsHandler) StatsByMachine(c *gin.Context) {
	from, to, ok := h.parseRange(c)
	if !ok {
		return
	}

	stats, err := h.repo.StatsByMachine(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load stats"})
		return
	}

	if stats == nil {
		stats = []StatsByMachine{}
	}

	c.JSON(http.StatusOK, stats)
}
