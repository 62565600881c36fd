package breeds

import "context"

type Repository interface {
	// List filtra por especie cuando speciesID != 0.
	List(ctx context.Context, speciesID uint64) ([]Breed, error)
	GetByID(ctx context.Context, id uint64) (Breed, error)
	Create(ctx context.Context, b *Breed) error
	Update(ctx context.Context, b *Breed) error
	Delete(ctx context.Context, id uint64) error
}
