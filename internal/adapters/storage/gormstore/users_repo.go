package gormstore

import (
	"context"
	"strings"

	"vet-clinic-api/internal/domain/users"

	"gorm.io/gorm"
)

type UsersRepo struct {
	db *gorm.DB
}

func NewUsersRepo(db *gorm.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	var rows []UserRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]users.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id uint64) (users.User, error) {
	var row UserRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return users.User{}, translate(err)
	}
	return row.toDomain(), nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	var row UserRow
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&row).Error
	if err != nil {
		return users.User{}, translate(err)
	}
	return row.toDomain(), nil
}

func (r *UsersRepo) Create(ctx context.Context, u *users.User) error {
	row := fromUser(*u)
	if err := createRow(ctx, r.db, &row); err != nil {
		return err
	}
	u.ID = row.ID
	return nil
}

func (r *UsersRepo) Update(ctx context.Context, u *users.User) error {
	row := fromUser(*u)
	return updateRow(ctx, r.db, &row)
}

func (r *UsersRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &UserRow{}, id)
}

func (r *UsersRepo) FileURLs(ctx context.Context, id uint64) ([]string, error) {
	var files []string
	err := r.db.WithContext(ctx).
		Table("pet_history_files").
		Joins("JOIN pet_histories ON pet_histories.id = pet_history_files.pet_history_id").
		Where("pet_histories.user_id = ?", id).
		Pluck("pet_history_files.file_path", &files).Error
	if err != nil {
		return nil, translate(err)
	}
	return files, nil
}

func fromUser(u users.User) UserRow {
	return UserRow{
		ID:        u.ID,
		Name:      u.Name,
		LastName:  u.LastName,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Doc:       u.Doc,
		Phone:     u.Phone,
		Sex:       u.Sex,
		Status:    string(u.Status),
		Privilege: string(u.Privilege),
		Photo:     u.Photo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (row UserRow) toDomain() users.User {
	return users.User{
		ID:           row.ID,
		Name:         row.Name,
		LastName:     row.LastName,
		Email:        row.Email,
		PasswordHash: row.Password,
		Doc:          row.Doc,
		Phone:        row.Phone,
		Sex:          row.Sex,
		Status:       users.Status(row.Status),
		Privilege:    users.Privilege(row.Privilege),
		Photo:        row.Photo,
		CreatedAt:    utc(row.CreatedAt),
		UpdatedAt:    utc(row.UpdatedAt),
	}
}
