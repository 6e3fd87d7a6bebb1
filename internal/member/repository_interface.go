package member

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Member, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Member, error)
}
