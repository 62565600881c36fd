package species

import "context"

type Repository interface {
	List(ctx context.Context) ([]Specie, error)
	GetByID(ctx context.Context, id uint64) (Specie, error)
	Create(ctx context.Context, s *Specie) error
	Update(ctx context.Context, s *Specie) error
	Delete(ctx context.Context, id uint64) error
	CountBreeds(ctx context.Context, id uint64) (int64, error)
}
