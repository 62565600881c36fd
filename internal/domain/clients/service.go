package clients

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/upload"
	"vet-clinic-api/internal/platform/validation"
	"vet-clinic-api/internal/ports/files"
)

var ErrNotFound = apperr.NotFound("Cliente no encontrado.")

var uniqueColumns = map[string]string{
	"client_doc":   "clientDoc",
	"client_email": "clientEmail",
}

type Service struct {
	repo  Repository
	v     *validation.Validator
	files files.Store
	now   func() time.Time
}

func NewService(repo Repository, v *validation.Validator, store files.Store) *Service {
	return &Service{repo: repo, v: v, files: store, now: time.Now}
}

type CreateInput struct {
	Doc      string `json:"clientDoc" validate:"required,max=20,unique=clients.client_doc"`
	Name     string `json:"clientName" validate:"required,max=50"`
	Gender   string `json:"clientGender" validate:"omitempty,oneof=Masculino Femenino"`
	Phone    string `json:"clientPhone" validate:"omitempty,max=20"`
	Email    string `json:"clientEmail" validate:"omitempty,email,max=150,unique=clients.client_email"`
	Address  string `json:"clientAddress" validate:"omitempty,max=150"`
	PhotoURL string `json:"clientPhotoUrl" validate:"omitempty,max=500"`
}

// UpdateInput reemplaza todos los campos; el correo pasa a ser obligatorio.
type UpdateInput struct {
	Doc      string `json:"clientDoc" validate:"required,max=20,unique=clients.client_doc"`
	Name     string `json:"clientName" validate:"required,max=50"`
	Gender   string `json:"clientGender" validate:"omitempty,oneof=Masculino Femenino"`
	Phone    string `json:"clientPhone" validate:"omitempty,max=20"`
	Email    string `json:"clientEmail" validate:"required,email,max=150,unique=clients.client_email"`
	Address  string `json:"clientAddress" validate:"omitempty,max=150"`
	PhotoURL string `json:"clientPhotoUrl" validate:"omitempty,max=500"`
}

var messages = validation.Messages{
	"clientDoc.required":   "El documento es obligatorio.",
	"clientDoc.unique":     "El documento ya está registrado.",
	"clientName.required":  "El nombre es obligatorio.",
	"clientEmail.required": "El correo electrónico es obligatorio.",
	"clientEmail.unique":   "El correo electrónico ya está registrado.",
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id uint64) (Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Client{}, s.storeErr(err)
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Client, error) {
	in.Doc = strings.TrimSpace(in.Doc)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := s.v.Struct(ctx, in, messages); err != nil {
		return Client{}, err
	}

	now := s.now()
	c := Client{
		Doc:       in.Doc,
		Name:      strings.TrimSpace(in.Name),
		Gender:    Gender(in.Gender),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     in.Email,
		Address:   validation.Sanitize(in.Address),
		PhotoURL:  strings.TrimSpace(in.PhotoURL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return Client{}, s.storeErr(err)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id uint64, in UpdateInput) (Client, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return Client{}, err
	}

	in.Doc = strings.TrimSpace(in.Doc)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.v.Struct(validation.WithIgnoreID(ctx, id), in, messages); err != nil {
		return Client{}, err
	}

	c.Doc = in.Doc
	c.Name = strings.TrimSpace(in.Name)
	c.Gender = Gender(in.Gender)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = in.Email
	c.Address = validation.Sanitize(in.Address)
	c.PhotoURL = strings.TrimSpace(in.PhotoURL)
	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, &c); err != nil {
		return Client{}, s.storeErr(err)
	}
	return c, nil
}

// Delete borra el cliente; mascotas, citas e historias caen por cascada
// y sus blobs se borran después de confirmar el delete.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	urls, err := s.repo.FileURLs(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeErr(err)
	}
	upload.Remove(ctx, s.files, urls...)
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
