package machine

import "time"

type Machine struct {
	ID        int64     `db:"id" json:"id"`
	Number    int       `db:"number" json:"number"`
	Name      string    `db:"name" json:"name"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
