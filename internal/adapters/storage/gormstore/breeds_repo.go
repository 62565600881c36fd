package gormstore

import (
	"context"

	"vet-clinic-api/internal/domain/breeds"
	"vet-clinic-api/internal/platform/apperr"

	"gorm.io/gorm"
)

// breedView es una raza con el nombre de su especie.
type breedView struct {
	BreedRow
	SpecieName string
}

type BreedsRepo struct {
	db *gorm.DB
}

func NewBreedsRepo(db *gorm.DB) *BreedsRepo {
	return &BreedsRepo{db: db}
}

func (r *BreedsRepo) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("breeds").
		Select("breeds.*, species.specie_name AS specie_name").
		Joins("JOIN species ON species.id = breeds.species_id")
}

func (r *BreedsRepo) List(ctx context.Context, speciesID uint64) ([]breeds.Breed, error) {
	q := r.query(ctx)
	if speciesID != 0 {
		q = q.Where("breeds.species_id = ?", speciesID)
	}
	var rows []breedView
	if err := q.Order("breeds.id").Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]breeds.Breed, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *BreedsRepo) GetByID(ctx context.Context, id uint64) (breeds.Breed, error) {
	var row breedView
	res := r.query(ctx).Where("breeds.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return breeds.Breed{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return breeds.Breed{}, apperr.ErrRecordNotFound
	}
	return row.toDomain(), nil
}

func (r *BreedsRepo) Create(ctx context.Context, b *breeds.Breed) error {
	row := fromBreed(*b)
	if err := createRow(ctx, r.db, &row); err != nil {
		return err
	}
	b.ID = row.ID
	return nil
}

func (r *BreedsRepo) Update(ctx context.Context, b *breeds.Breed) error {
	row := fromBreed(*b)
	return updateRow(ctx, r.db, &row)
}

func (r *BreedsRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &BreedRow{}, id)
}

func fromBreed(b breeds.Breed) BreedRow {
	return BreedRow{
		ID:        b.ID,
		BreedName: b.Name,
		SpeciesID: b.SpeciesID,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (row breedView) toDomain() breeds.Breed {
	return breeds.Breed{
		ID:         row.ID,
		Name:       row.BreedName,
		SpeciesID:  row.SpeciesID,
		SpecieName: row.SpecieName,
		CreatedAt:  utc(row.CreatedAt),
		UpdatedAt:  utc(row.UpdatedAt),
	}
}
