package gormstore

import (
	"context"

	"vet-clinic-api/internal/domain/vaccines"
	"vet-clinic-api/internal/platform/apperr"

	"gorm.io/gorm"
)

// vaccineView es una vacuna con el nombre de su especie.
type vaccineView struct {
	VaccineRow
	SpecieName string
}

type VaccinesRepo struct {
	db *gorm.DB
}

func NewVaccinesRepo(db *gorm.DB) *VaccinesRepo {
	return &VaccinesRepo{db: db}
}

func (r *VaccinesRepo) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("vaccines").
		Select("vaccines.*, species.specie_name AS specie_name").
		Joins("JOIN species ON species.id = vaccines.species_id")
}

func (r *VaccinesRepo) List(ctx context.Context, speciesID uint64) ([]vaccines.Vaccine, error) {
	q := r.query(ctx)
	if speciesID != 0 {
		q = q.Where("vaccines.species_id = ?", speciesID)
	}
	var rows []vaccineView
	if err := q.Order("vaccines.id").Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]vaccines.Vaccine, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *VaccinesRepo) GetByID(ctx context.Context, id uint64) (vaccines.Vaccine, error) {
	var row vaccineView
	res := r.query(ctx).Where("vaccines.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return vaccines.Vaccine{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return vaccines.Vaccine{}, apperr.ErrRecordNotFound
	}
	return row.toDomain(), nil
}

func (r *VaccinesRepo) Create(ctx context.Context, v *vaccines.Vaccine) error {
	row := fromVaccine(*v)
	if err := createRow(ctx, r.db, &row); err != nil {
		return err
	}
	v.ID = row.ID
	return nil
}

func (r *VaccinesRepo) Update(ctx context.Context, v *vaccines.Vaccine) error {
	row := fromVaccine(*v)
	return updateRow(ctx, r.db, &row)
}

func (r *VaccinesRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &VaccineRow{}, id)
}

func fromVaccine(v vaccines.Vaccine) VaccineRow {
	return VaccineRow{
		ID:          v.ID,
		VaccineName: v.Name,
		SpeciesID:   v.SpeciesID,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func (row vaccineView) toDomain() vaccines.Vaccine {
	return vaccines.Vaccine{
		ID:         row.ID,
		Name:       row.VaccineName,
		SpeciesID:  row.SpeciesID,
		SpecieName: row.SpecieName,
		CreatedAt:  utc(row.CreatedAt),
		UpdatedAt:  utc(row.UpdatedAt),
	}
}
