package gormstore

import (
	"context"

	"vet-clinic-api/internal/domain/species"

	"gorm.io/gorm"
)

type SpeciesRepo struct {
	db *gorm.DB
}

func NewSpeciesRepo(db *gorm.DB) *SpeciesRepo {
	return &SpeciesRepo{db: db}
}

func (r *SpeciesRepo) List(ctx context.Context) ([]species.Specie, error) {
	var rows []SpecieRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]species.Specie, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SpeciesRepo) GetByID(ctx context.Context, id uint64) (species.Specie, error) {
	var row SpecieRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return species.Specie{}, translate(err)
	}
	return row.toDomain(), nil
}

func (r *SpeciesRepo) Create(ctx context.Context, s *species.Specie) error {
	row := SpecieRow{SpecieName: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
	if err := createRow(ctx, r.db, &row); err != nil {
		return err
	}
	s.ID = row.ID
	return nil
}

func (r *SpeciesRepo) Update(ctx context.Context, s *species.Specie) error {
	row := SpecieRow{ID: s.ID, SpecieName: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
	return updateRow(ctx, r.db, &row)
}

func (r *SpeciesRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &SpecieRow{}, id)
}

func (r *SpeciesRepo) CountBreeds(ctx context.Context, id uint64) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&BreedRow{}).Where("species_id = ?", id).Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return n, nil
}

func (row SpecieRow) toDomain() species.Specie {
	return species.Specie{
		ID:        row.ID,
		Name:      row.SpecieName,
		CreatedAt: utc(row.CreatedAt),
		UpdatedAt: utc(row.UpdatedAt),
	}
}
