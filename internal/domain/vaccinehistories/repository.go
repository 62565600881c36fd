package vaccinehistories

import "context"

type Repository interface {
	List(ctx context.Context) ([]Record, error)
	ListByPet(ctx context.Context, petID uint64) ([]Record, error)
	GetByID(ctx context.Context, id uint64) (Record, error)
	Create(ctx context.Context, rec *Record) error
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id uint64) error
	DeleteByPet(ctx context.Context, petID uint64) (int64, error)
}
