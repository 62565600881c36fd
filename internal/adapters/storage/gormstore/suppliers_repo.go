package gormstore

import (
	"context"

	"vet-clinic-api/internal/domain/suppliers"

	"gorm.io/gorm"
)

type SuppliersRepo struct {
	db *gorm.DB
}

func NewSuppliersRepo(db *gorm.DB) *SuppliersRepo {
	return &SuppliersRepo{db: db}
}

func (r *SuppliersRepo) List(ctx context.Context) ([]suppliers.Supplier, error) {
	var rows []SupplierRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]suppliers.Supplier, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SuppliersRepo) GetByID(ctx context.Context, id uint64) (suppliers.Supplier, error) {
	var row SupplierRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return suppliers.Supplier{}, translate(err)
	}
	return row.toDomain(), nil
}

func (r *SuppliersRepo) Create(ctx context.Context, s *suppliers.Supplier) error {
	row := fromSupplier(*s)
	if err := createRow(ctx, r.db, &row); err != nil {
		return err
	}
	s.ID = row.ID
	return nil
}

func (r *SuppliersRepo) Update(ctx context.Context, s *suppliers.Supplier) error {
	row := fromSupplier(*s)
	return updateRow(ctx, r.db, &row)
}

func (r *SuppliersRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &SupplierRow{}, id)
}

func fromSupplier(s suppliers.Supplier) SupplierRow {
	return SupplierRow{
		ID:              s.ID,
		SupplierDoc:     s.Doc,
		SupplierName:    s.Name,
		SupplierPhone:   s.Phone,
		SupplierEmail:   nullable(s.Email),
		SupplierAddress: s.Address,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (row SupplierRow) toDomain() suppliers.Supplier {
	return suppliers.Supplier{
		ID:        row.ID,
		Doc:       row.SupplierDoc,
		Name:      row.SupplierName,
		Phone:     row.SupplierPhone,
		Email:     deref(row.SupplierEmail),
		Address:   row.SupplierAddress,
		CreatedAt: utc(row.CreatedAt),
		UpdatedAt: utc(row.UpdatedAt),
	}
}
