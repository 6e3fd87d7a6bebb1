package trainer

import "time"

type Trainer struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	// MaxClientsPerSession caps how many members this trainer takes in
	// a single session.
	MaxClientsPerSession int       `db:"max_clients_per_session" json:"max_clients_per_session"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
}
