package trainer

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Trainer, error)
	GetAll(ctx context.Context) ([]Trainer, error)
}
