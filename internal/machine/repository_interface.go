package machine

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Machine, error)
	GetAll(ctx context.Context) ([]Machine, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
