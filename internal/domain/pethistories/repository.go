package pethistories

import "context"

type Repository interface {
	List(ctx context.Context) ([]History, error)
	ListByPet(ctx context.Context, petID uint64) ([]History, error)
	PetExists(ctx context.Context, petID uint64) (bool, error)
	GetByID(ctx context.Context, id uint64) (History, error)

	// LastCode devuelve el history_code más alto, o "" si no hay ninguno.
	LastCode(ctx context.Context) (string, error)

	Create(ctx context.Context, h *History) error
	Update(ctx context.Context, h *History) error
	Delete(ctx context.Context, id uint64) error
	CreateFile(ctx context.Context, f *File) error

	// Transaction corre fn con un Repository atado a una transacción.
	// Si fn devuelve error se hace rollback.
	Transaction(ctx context.Context, fn func(tx Repository) error) error
}
