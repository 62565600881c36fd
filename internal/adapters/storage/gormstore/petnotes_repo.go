package gormstore

import (
	"context"

	"vet-clinic-api/internal/domain/petnotes"
	"vet-clinic-api/internal/platform/apperr"

	"gorm.io/gorm"
)

type petNoteView struct {
	PetNoteRow
	PetName string
}

type PetNotesRepo struct {
	db *gorm.DB
}

func NewPetNotesRepo(db *gorm.DB) *PetNotesRepo {
	return &PetNotesRepo{db: db}
}

func (r *PetNotesRepo) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("pet_notes").
		Select("pet_notes.*, pets.pet_name AS pet_name").
		Joins("JOIN pets ON pets.id = pet_notes.pet_id")
}

func (r *PetNotesRepo) List(ctx context.Context) ([]petnotes.Note, error) {
	return r.find(r.query(ctx))
}

func (r *PetNotesRepo) ListByPet(ctx context.Context, petID uint64) ([]petnotes.Note, error) {
	return r.find(r.query(ctx).Where("pet_notes.pet_id = ?", petID))
}

func (r *PetNotesRepo) find(q *gorm.DB) ([]petnotes.Note, error) {
	var rows []petNoteView
	if err := q.Order("pet_notes.note_date DESC").Order("pet_notes.id DESC").Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]petnotes.Note, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PetNotesRepo) GetByID(ctx context.Context, id uint64) (petnotes.Note, error) {
	var row petNoteView
	res := r.query(ctx).Where("pet_notes.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return petnotes.Note{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return petnotes.Note{}, apperr.ErrRecordNotFound
	}
	return row.toDomain(), nil
}

func (r *PetNotesRepo) Create(ctx context.Context, n *petnotes.Note) error {
	row := fromNote(*n)
	if err := createRow(ctx, r.db, &row); err != nil {
		return err
	}
	n.ID = row.ID
	return nil
}

func (r *PetNotesRepo) Update(ctx context.Context, n *petnotes.Note) error {
	row := fromNote(*n)
	return updateRow(ctx, r.db, &row)
}

func (r *PetNotesRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &PetNoteRow{}, id)
}

func (r *PetNotesRepo) DeleteByPet(ctx context.Context, petID uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("pet_id = ?", petID).Delete(&PetNoteRow{})
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}

func fromNote(n petnotes.Note) PetNoteRow {
	return PetNoteRow{
		ID:              n.ID,
		PetID:           n.PetID,
		NoteDescription: n.Description,
		NoteDate:        dateOnly(n.Date),
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
}

func (row petNoteView) toDomain() petnotes.Note {
	return petnotes.Note{
		ID:          row.ID,
		PetID:       row.PetID,
		PetName:     row.PetName,
		Description: row.NoteDescription,
		Date:        utc(row.NoteDate),
		CreatedAt:   utc(row.CreatedAt),
		UpdatedAt:   utc(row.UpdatedAt),
	}
}
