package gormstore

import (
	"context"
	"time"

	"vet-clinic-api/internal/domain/pets"
	"vet-clinic-api/internal/platform/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type petView struct {
	PetRow
	SpecieName  string
	BreedName   string
	ClientName  string
	ClientDoc   string
	ClientPhoto string
}

type PetsRepo struct {
	db *gorm.DB
}

func NewPetsRepo(db *gorm.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("pets").
		Select(`pets.*,
			species.specie_name AS specie_name,
			breeds.breed_name AS breed_name,
			clients.client_name AS client_name,
			clients.client_doc AS client_doc,
			clients.client_photo_url AS client_photo`).
		Joins("JOIN species ON species.id = pets.species_id").
		Joins("JOIN breeds ON breeds.id = pets.breeds_id").
		Joins("JOIN clients ON clients.id = pets.clients_id")
}

func (r *PetsRepo) List(ctx context.Context, clientID uint64) ([]pets.Pet, error) {
	q := r.query(ctx)
	if clientID != 0 {
		q = q.Where("pets.clients_id = ?", clientID)
	}
	var rows []petView
	if err := q.Order("pets.id").Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id uint64) (pets.Pet, error) {
	var row petView
	res := r.query(ctx).Where("pets.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return pets.Pet{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return pets.Pet{}, apperr.ErrRecordNotFound
	}
	return row.toDomain(), nil
}

func (r *PetsRepo) Create(ctx context.Context, p *pets.Pet) error {
	row := fromPet(*p)
	if err := createRow(ctx, r.db, &row); err != nil {
		return err
	}
	p.ID = row.ID
	return nil
}

// Update no toca pet_photo: solo lo cambia SetPhoto.
func (r *PetsRepo) Update(ctx context.Context, p *pets.Pet) error {
	row := fromPet(*p)
	res := r.db.WithContext(ctx).
		Model(&row).
		Select("*").
		Omit("id", "created_at", "pet_photo", clause.Associations).
		Updates(&row)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrRecordNotFound
	}
	return nil
}

func (r *PetsRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &PetRow{}, id)
}

func (r *PetsRepo) SetPhoto(ctx context.Context, id uint64, url string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&PetRow{}).
		Where("id = ?", id).
		Updates(map[string]any{"pet_photo": url, "updated_at": at})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrRecordNotFound
	}
	return nil
}

func (r *PetsRepo) FileURLs(ctx context.Context, id uint64) ([]string, error) {
	var files []string
	err := r.db.WithContext(ctx).
		Table("pet_history_files").
		Joins("JOIN pet_histories ON pet_histories.id = pet_history_files.pet_history_id").
		Where("pet_histories.pet_id = ?", id).
		Pluck("pet_history_files.file_path", &files).Error
	if err != nil {
		return nil, translate(err)
	}
	return files, nil
}

func fromPet(p pets.Pet) PetRow {
	return PetRow{
		ID:            p.ID,
		PetCode:       p.Code,
		PetName:       p.Name,
		PetBirthDate:  dateOnly(p.BirthDate),
		PetWeight:     p.Weight,
		PetColor:      p.Color,
		SpeciesID:     p.SpeciesID,
		BreedsID:      p.BreedID,
		ClientsID:     p.ClientID,
		PetGender:     p.Gender,
		PetPhoto:      p.Photo,
		PetAdditional: p.Additional,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (row petView) toDomain() pets.Pet {
	return pets.Pet{
		ID:          row.ID,
		Code:        row.PetCode,
		Name:        row.PetName,
		BirthDate:   utc(row.PetBirthDate),
		Weight:      row.PetWeight,
		Color:       row.PetColor,
		SpeciesID:   row.SpeciesID,
		BreedID:     row.BreedsID,
		ClientID:    row.ClientsID,
		Gender:      row.PetGender,
		Photo:       row.PetPhoto,
		Additional:  row.PetAdditional,
		SpecieName:  row.SpecieName,
		BreedName:   row.BreedName,
		ClientName:  row.ClientName,
		ClientDoc:   row.ClientDoc,
		ClientPhoto: row.ClientPhoto,
		CreatedAt:   utc(row.CreatedAt),
		UpdatedAt:   utc(row.UpdatedAt),
	}
}
