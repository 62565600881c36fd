package petnotes

import "context"

type Repository interface {
	List(ctx context.Context) ([]Note, error)
	ListByPet(ctx context.Context, petID uint64) ([]Note, error)
	GetByID(ctx context.Context, id uint64) (Note, error)
	Create(ctx context.Context, n *Note) error
	Update(ctx context.Context, n *Note) error
	Delete(ctx context.Context, id uint64) error

	// DeleteByPet devuelve cuántas filas borró.
	DeleteByPet(ctx context.Context, petID uint64) (int64, error)
}
