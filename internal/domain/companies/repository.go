package companies

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context) ([]Company, error)
	GetByID(ctx context.Context, id uint64) (Company, error)
	Create(ctx context.Context, c *Company) error
	Update(ctx context.Context, c *Company) error
	Delete(ctx context.Context, id uint64) error
	SetPhoto(ctx context.Context, id uint64, url string, at time.Time) error
}
