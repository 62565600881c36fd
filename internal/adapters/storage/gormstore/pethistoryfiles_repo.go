package gormstore

import (
	"context"

	"vet-clinic-api/internal/domain/pethistories"

	"gorm.io/gorm"
)

type PetHistoryFilesRepo struct {
	db *gorm.DB
}

func NewPetHistoryFilesRepo(db *gorm.DB) *PetHistoryFilesRepo {
	return &PetHistoryFilesRepo{db: db}
}

func (r *PetHistoryFilesRepo) HistoryExists(ctx context.Context, historyID uint64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&PetHistoryRow{}).Where("id = ?", historyID).Count(&n).Error
	if err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

func (r *PetHistoryFilesRepo) ListByHistory(ctx context.Context, historyID uint64) ([]pethistories.File, error) {
	var rows []PetHistoryFileRow
	err := r.db.WithContext(ctx).Where("pet_history_id = ?", historyID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make([]pethistories.File, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PetHistoryFilesRepo) GetByID(ctx context.Context, id uint64) (pethistories.File, error) {
	var row PetHistoryFileRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return pethistories.File{}, translate(err)
	}
	return row.toDomain(), nil
}

func (r *PetHistoryFilesRepo) Create(ctx context.Context, f *pethistories.File) error {
	row := fromHistoryFile(*f)
	if err := createRow(ctx, r.db, &row); err != nil {
		return err
	}
	f.ID = row.ID
	return nil
}

func (r *PetHistoryFilesRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &PetHistoryFileRow{}, id)
}
