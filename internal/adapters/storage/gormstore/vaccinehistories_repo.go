package gormstore

import (
	"context"

	"vet-clinic-api/internal/domain/vaccinehistories"
	"vet-clinic-api/internal/platform/apperr"

	"gorm.io/gorm"
)

type vaccineHistoryView struct {
	VaccineHistoryRow
	VaccineName string
	PetName     string
}

type VaccineHistoriesRepo struct {
	db *gorm.DB
}

func NewVaccineHistoriesRepo(db *gorm.DB) *VaccineHistoriesRepo {
	return &VaccineHistoriesRepo{db: db}
}

func (r *VaccineHistoriesRepo) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("vaccine_histories").
		Select(`vaccine_histories.*,
			vaccines.vaccine_name AS vaccine_name,
			pets.pet_name AS pet_name`).
		Joins("JOIN vaccines ON vaccines.id = vaccine_histories.vaccine_id").
		Joins("JOIN pets ON pets.id = vaccine_histories.pet_id")
}

func (r *VaccineHistoriesRepo) List(ctx context.Context) ([]vaccinehistories.Record, error) {
	return r.find(r.query(ctx))
}

func (r *VaccineHistoriesRepo) ListByPet(ctx context.Context, petID uint64) ([]vaccinehistories.Record, error) {
	return r.find(r.query(ctx).Where("vaccine_histories.pet_id = ?", petID))
}

func (r *VaccineHistoriesRepo) find(q *gorm.DB) ([]vaccinehistories.Record, error) {
	var rows []vaccineHistoryView
	err := q.Order("vaccine_histories.vaccine_date DESC").
		Order("vaccine_histories.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make([]vaccinehistories.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *VaccineHistoriesRepo) GetByID(ctx context.Context, id uint64) (vaccinehistories.Record, error) {
	var row vaccineHistoryView
	res := r.query(ctx).Where("vaccine_histories.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return vaccinehistories.Record{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return vaccinehistories.Record{}, apperr.ErrRecordNotFound
	}
	return row.toDomain(), nil
}

func (r *VaccineHistoriesRepo) Create(ctx context.Context, rec *vaccinehistories.Record) error {
	row := fromVaccineRecord(*rec)
	if err := createRow(ctx, r.db, &row); err != nil {
		return err
	}
	rec.ID = row.ID
	return nil
}

func (r *VaccineHistoriesRepo) Update(ctx context.Context, rec *vaccinehistories.Record) error {
	row := fromVaccineRecord(*rec)
	return updateRow(ctx, r.db, &row)
}

func (r *VaccineHistoriesRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &VaccineHistoryRow{}, id)
}

func (r *VaccineHistoriesRepo) DeleteByPet(ctx context.Context, petID uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("pet_id = ?", petID).Delete(&VaccineHistoryRow{})
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}

func fromVaccineRecord(rec vaccinehistories.Record) VaccineHistoryRow {
	return VaccineHistoryRow{
		ID:          rec.ID,
		VaccineID:   rec.VaccineID,
		PetID:       rec.PetID,
		VaccineDate: dateOnly(rec.Date),
		Product:     rec.Product,
		Observation: rec.Observation,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func (row vaccineHistoryView) toDomain() vaccinehistories.Record {
	return vaccinehistories.Record{
		ID:          row.ID,
		VaccineID:   row.VaccineID,
		PetID:       row.PetID,
		Date:        utc(row.VaccineDate),
		Product:     row.Product,
		Observation: row.Observation,
		VaccineName: row.VaccineName,
		PetName:     row.PetName,
		CreatedAt:   utc(row.CreatedAt),
		UpdatedAt:   utc(row.UpdatedAt),
	}
}
