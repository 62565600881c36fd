package gormstore

import (
	"context"
	"time"

	"vet-clinic-api/internal/domain/companies"
	"vet-clinic-api/internal/platform/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompaniesRepo struct {
	db *gorm.DB
}

func NewCompaniesRepo(db *gorm.DB) *CompaniesRepo {
	return &CompaniesRepo{db: db}
}

func (r *CompaniesRepo) List(ctx context.Context) ([]companies.Company, error) {
	var rows []CompanyRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]companies.Company, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CompaniesRepo) GetByID(ctx context.Context, id uint64) (companies.Company, error) {
	var row CompanyRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return companies.Company{}, translate(err)
	}
	return row.toDomain(), nil
}

func (r *CompaniesRepo) Create(ctx context.Context, c *companies.Company) error {
	row := fromCompany(*c)
	if err := createRow(ctx, r.db, &row); err != nil {
		return err
	}
	c.ID = row.ID
	return nil
}

// Update conserva company_photo; el logo solo cambia por SetPhoto.
func (r *CompaniesRepo) Update(ctx context.Context, c *companies.Company) error {
	row := fromCompany(*c)
	res := r.db.WithContext(ctx).
		Model(&row).
		Select("*").
		Omit("id", "created_at", "company_photo", clause.Associations).
		Updates(&row)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrRecordNotFound
	}
	return nil
}

func (r *CompaniesRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &CompanyRow{}, id)
}

func (r *CompaniesRepo) SetPhoto(ctx context.Context, id uint64, url string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&CompanyRow{}).
		Where("id = ?", id).
		Updates(map[string]any{"company_photo": url, "updated_at": at})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrRecordNotFound
	}
	return nil
}

func fromCompany(c companies.Company) CompanyRow {
	return CompanyRow{
		ID:              c.ID,
		CompanyDoc:      c.Doc,
		CompanyName:     c.Name,
		CompanyAddress:  c.Address,
		CompanyPhone:    c.Phone,
		CompanyEmail:    c.Email,
		CompanyPhoto:    c.Photo,
		CompanyCurrency: c.Currency,
		CompanyTax:      c.Tax,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (row CompanyRow) toDomain() companies.Company {
	return companies.Company{
		ID:        row.ID,
		Doc:       row.CompanyDoc,
		Name:      row.CompanyName,
		Address:   row.CompanyAddress,
		Phone:     row.CompanyPhone,
		Email:     row.CompanyEmail,
		Photo:     row.CompanyPhoto,
		Currency:  row.CompanyCurrency,
		Tax:       row.CompanyTax,
		CreatedAt: utc(row.CreatedAt),
		UpdatedAt: utc(row.UpdatedAt),
	}
}
