package vaccines

import "context"

type Repository interface {
	// List filtra por especie cuando speciesID != 0.
	List(ctx context.Context, speciesID uint64) ([]Vaccine, error)
	GetByID(ctx context.Context, id uint64) (Vaccine, error)
	Create(ctx context.Context, v *Vaccine) error
	Update(ctx context.Context, v *Vaccine) error
	Delete(ctx context.Context, id uint64) error
}
