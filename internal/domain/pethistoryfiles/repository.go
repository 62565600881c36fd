package pethistoryfiles

import (
	"context"

	"vet-clinic-api/internal/domain/pethistories"
)

type Repository interface {
	HistoryExists(ctx context.Context, historyID uint64) (bool, error)
	ListByHistory(ctx context.Context, historyID uint64) ([]pethistories.File, error)
	GetByID(ctx context.Context, id uint64) (pethistories.File, error)
	Create(ctx context.Context, f *pethistories.File) error
	Delete(ctx context.Context, id uint64) error
}
