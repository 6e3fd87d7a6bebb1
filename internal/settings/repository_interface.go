package settings

import "context"

type Repository interface {
	Current(ctx context.Context) (*StudioSettings, error)
}
