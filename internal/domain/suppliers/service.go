package suppliers

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/validation"
)

var ErrNotFound = apperr.NotFound("Proveedor no encontrado.")

var uniqueColumns = map[string]string{
	"supplier_doc":   "supplierDoc",
	"supplier_email": "supplierEmail",
}

type Service struct {
	repo Repository
	v    *validation.Validator
	now  func() time.Time
}

func NewService(repo Repository, v *validation.Validator) *Service {
	return &Service{repo: repo, v: v, now: time.Now}
}

type CreateInput struct {
	Doc     string `json:"supplierDoc" validate:"required,max=20,unique=suppliers.supplier_doc"`
	Name    string `json:"supplierName" validate:"required,max=50"`
	Phone   string `json:"supplierPhone" validate:"omitempty,max=20"`
	Email   string `json:"supplierEmail" validate:"omitempty,email,max=150,unique=suppliers.supplier_email"`
	Address string `json:"supplierAddress" validate:"omitempty,max=150"`
}

type UpdateInput struct {
	Doc     string `json:"supplierDoc" validate:"required,max=20,unique=suppliers.supplier_doc"`
	Name    string `json:"supplierName" validate:"required,max=50"`
	Phone   string `json:"supplierPhone" validate:"omitempty,max=20"`
	Email   string `json:"supplierEmail" validate:"required,email,max=150,unique=suppliers.supplier_email"`
	Address string `json:"supplierAddress" validate:"omitempty,max=150"`
}

var messages = validation.Messages{
	"supplierDoc.required":   "El documento es obligatorio.",
	"supplierDoc.unique":     "El documento ya está registrado.",
	"supplierName.required":  "El nombre es obligatorio.",
	"supplierEmail.required": "El correo electrónico es obligatorio.",
	"supplierEmail.unique":   "El correo electrónico ya está registrado.",
}

func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id uint64) (Supplier, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Supplier{}, s.storeErr(err)
	}
	return sp, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Supplier, error) {
	in.Doc = strings.TrimSpace(in.Doc)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.v.Struct(ctx, in, messages); err != nil {
		return Supplier{}, err
	}

	now := s.now()
	sp := Supplier{
		Doc:       in.Doc,
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     in.Email,
		Address:   validation.Sanitize(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &sp); err != nil {
		return Supplier{}, s.storeErr(err)
	}
	return sp, nil
}

func (s *Service) Update(ctx context.Context, id uint64, in UpdateInput) (Supplier, error) {
	sp, err := s.GetByID(ctx, id)
	if err != nil {
		return Supplier{}, err
	}

	in.Doc = strings.TrimSpace(in.Doc)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.v.Struct(validation.WithIgnoreID(ctx, id), in, messages); err != nil {
		return Supplier{}, err
	}

	sp.Doc = in.Doc
	sp.Name = strings.TrimSpace(in.Name)
	sp.Phone = strings.TrimSpace(in.Phone)
	sp.Email = in.Email
	sp.Address = validation.Sanitize(in.Address)
	sp.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, &sp); err != nil {
		return Supplier{}, s.storeErr(err)
	}
	return sp, nil
}

func (s *Service) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeErr(err)
	}
	return nil
}

func (s *Service) storeErr(err error) error {
	if verrs, ok := validation.FromDuplicate(err, uniqueColumns); ok {
		return verrs
	}
	if errors.Is(err, apperr.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
