package gormstore

import (
	"context"
	"strings"

	"vet-clinic-api/internal/domain/pethistories"
	"vet-clinic-api/internal/platform/apperr"

	"gorm.io/gorm"
)

type petHistoryView struct {
	PetHistoryRow
	UserName     string
	UserLastName string
	PetName      string
}

type PetHistoriesRepo struct {
	db *gorm.DB
}

func NewPetHistoriesRepo(db *gorm.DB) *PetHistoriesRepo {
	return &PetHistoriesRepo{db: db}
}

func (r *PetHistoriesRepo) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("pet_histories").
		Select(`pet_histories.*,
			users.name AS user_name,
			users.last_name AS user_last_name,
			pets.pet_name AS pet_name`).
		Joins("JOIN users ON users.id = pet_histories.user_id").
		Joins("JOIN pets ON pets.id = pet_histories.pet_id")
}

func (r *PetHistoriesRepo) List(ctx context.Context) ([]pethistories.History, error) {
	return r.find(ctx, r.query(ctx))
}

func (r *PetHistoriesRepo) ListByPet(ctx context.Context, petID uint64) ([]pethistories.History, error) {
	return r.find(ctx, r.query(ctx).Where("pet_histories.pet_id = ?", petID))
}

func (r *PetHistoriesRepo) PetExists(ctx context.Context, petID uint64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&PetRow{}).Where("id = ?", petID).Count(&n).Error; err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

func (r *PetHistoriesRepo) find(ctx context.Context, q *gorm.DB) ([]pethistories.History, error) {
	var rows []petHistoryView
	err := q.Order("pet_histories.history_date DESC").
		Order("pet_histories.history_time DESC").
		Order("pet_histories.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	if len(rows) == 0 {
		return []pethistories.History{}, nil
	}

	ids := make([]uint64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	byHistory, err := r.filesOf(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]pethistories.History, 0, len(rows))
	for _, row := range rows {
		h := row.toDomain()
		h.Files = byHistory[row.ID]
		out = append(out, h)
	}
	return out, nil
}

func (r *PetHistoriesRepo) GetByID(ctx context.Context, id uint64) (pethistories.History, error) {
	var row petHistoryView
	res := r.query(ctx).Where("pet_histories.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return pethistories.History{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return pethistories.History{}, apperr.ErrRecordNotFound
	}

	byHistory, err := r.filesOf(ctx, []uint64{id})
	if err != nil {
		return pethistories.History{}, err
	}
	h := row.toDomain()
	h.Files = byHistory[id]
	return h, nil
}

// LastCode ordena por largo antes que por texto para que HM-100000 quede
// después de HM-99999.
func (r *PetHistoriesRepo) LastCode(ctx context.Context) (string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&PetHistoryRow{}).
		Order("LENGTH(history_code) DESC").
		Order("history_code DESC").
		Limit(1).
		Pluck("history_code", &codes).Error
	if err != nil {
		return "", translate(err)
	}
	if len(codes) == 0 {
		return "", nil
	}
	return codes[0], nil
}

func (r *PetHistoriesRepo) Create(ctx context.Context, h *pethistories.History) error {
	row := fromHistory(*h)
	if err := createRow(ctx, r.db, &row); err != nil {
		return err
	}
	h.ID = row.ID
	return nil
}

func (r *PetHistoriesRepo) Update(ctx context.Context, h *pethistories.History) error {
	row := fromHistory(*h)
	return updateRow(ctx, r.db, &row)
}

func (r *PetHistoriesRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &PetHistoryRow{}, id)
}

func (r *PetHistoriesRepo) CreateFile(ctx context.Context, f *pethistories.File) error {
	row := fromHistoryFile(*f)
	if err := createRow(ctx, r.db, &row); err != nil {
		return err
	}
	f.ID = row.ID
	return nil
}

func (r *PetHistoriesRepo) Transaction(ctx context.Context, fn func(tx pethistories.Repository) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PetHistoriesRepo{db: tx})
	})
	return translate(err)
}

func (r *PetHistoriesRepo) filesOf(ctx context.Context, ids []uint64) (map[uint64][]pethistories.File, error) {
	var rows []PetHistoryFileRow
	err := r.db.WithContext(ctx).
		Where("pet_history_id IN ?", ids).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make(map[uint64][]pethistories.File, len(ids))
	for _, id := range ids {
		out[id] = []pethistories.File{}
	}
	for _, row := range rows {
		out[row.PetHistoryID] = append(out[row.PetHistoryID], row.toDomain())
	}
	return out, nil
}

func fromHistory(h pethistories.History) PetHistoryRow {
	return PetHistoryRow{
		ID:               h.ID,
		HistoryCode:      h.Code,
		HistoryDate:      dateOnly(h.Date),
		HistoryTime:      h.Time,
		HistoryReason:    h.Reason,
		HistorySymptoms:  h.Symptoms,
		HistoryDiagnosis: h.Diagnosis,
		HistoryTreatment: h.Treatment,
		UserID:           h.UserID,
		PetID:            h.PetID,
		CreatedAt:        h.CreatedAt,
		UpdatedAt:        h.UpdatedAt,
	}
}

func (row petHistoryView) toDomain() pethistories.History {
	return pethistories.History{
		ID:        row.ID,
		Code:      row.HistoryCode,
		Date:      utc(row.HistoryDate),
		Time:      row.HistoryTime,
		Reason:    row.HistoryReason,
		Symptoms:  row.HistorySymptoms,
		Diagnosis: row.HistoryDiagnosis,
		Treatment: row.HistoryTreatment,
		UserID:    row.UserID,
		PetID:     row.PetID,
		UserName:  strings.TrimSpace(row.UserName + " " + row.UserLastName),
		PetName:   row.PetName,
		CreatedAt: utc(row.CreatedAt),
		UpdatedAt: utc(row.UpdatedAt),
	}
}

func fromHistoryFile(f pethistories.File) PetHistoryFileRow {
	return PetHistoryFileRow{
		ID:           f.ID,
		PetHistoryID: f.HistoryID,
		FilePath:     f.Path,
		FileType:     f.Type,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func (row PetHistoryFileRow) toDomain() pethistories.File {
	return pethistories.File{
		ID:        row.ID,
		HistoryID: row.PetHistoryID,
		Path:      row.FilePath,
		Type:      row.FileType,
		CreatedAt: utc(row.CreatedAt),
		UpdatedAt: utc(row.UpdatedAt),
	}
}
