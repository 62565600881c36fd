package gormstore

import (
	"context"

	"vet-clinic-api/internal/domain/clients"

	"gorm.io/gorm"
)

type ClientsRepo struct {
	db *gorm.DB
}

func NewClientsRepo(db *gorm.DB) *ClientsRepo {
	return &ClientsRepo{db: db}
}

func (r *ClientsRepo) List(ctx context.Context) ([]clients.Client, error) {
	var rows []ClientRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]clients.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ClientsRepo) GetByID(ctx context.Context, id uint64) (clients.Client, error) {
	var row ClientRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return clients.Client{}, translate(err)
	}
	return row.toDomain(), nil
}

func (r *ClientsRepo) Create(ctx context.Context, c *clients.Client) error {
	row := fromClient(*c)
	if err := createRow(ctx, r.db, &row); err != nil {
		return err
	}
	c.ID = row.ID
	return nil
}

func (r *ClientsRepo) Update(ctx context.Context, c *clients.Client) error {
	row := fromClient(*c)
	return updateRow(ctx, r.db, &row)
}

func (r *ClientsRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &ClientRow{}, id)
}

// FileURLs junta las fotos de las mascotas del cliente y los adjuntos de
// sus historias clínicas.
func (r *ClientsRepo) FileURLs(ctx context.Context, id uint64) ([]string, error) {
	var photos []string
	err := r.db.WithContext(ctx).
		Model(&PetRow{}).
		Where("clients_id = ? AND pet_photo <> ''", id).
		Pluck("pet_photo", &photos).Error
	if err != nil {
		return nil, translate(err)
	}

	var files []string
	err = r.db.WithContext(ctx).
		Table("pet_history_files").
		Joins("JOIN pet_histories ON pet_histories.id = pet_history_files.pet_history_id").
		Joins("JOIN pets ON pets.id = pet_histories.pet_id").
		Where("pets.clients_id = ?", id).
		Pluck("pet_history_files.file_path", &files).Error
	if err != nil {
		return nil, translate(err)
	}
	return append(photos, files...), nil
}

func fromClient(c clients.Client) ClientRow {
	return ClientRow{
		ID:             c.ID,
		ClientDoc:      c.Doc,
		ClientName:     c.Name,
		ClientGender:   string(c.Gender),
		ClientPhone:    c.Phone,
		ClientEmail:    nullable(c.Email),
		ClientAddress:  c.Address,
		ClientPhotoURL: c.PhotoURL,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (row ClientRow) toDomain() clients.Client {
	return clients.Client{
		ID:        row.ID,
		Doc:       row.ClientDoc,
		Name:      row.ClientName,
		Gender:    clients.Gender(row.ClientGender),
		Phone:     row.ClientPhone,
		Email:     deref(row.ClientEmail),
		Address:   row.ClientAddress,
		PhotoURL:  row.ClientPhotoURL,
		CreatedAt: utc(row.CreatedAt),
		UpdatedAt: utc(row.UpdatedAt),
	}
}
