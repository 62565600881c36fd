package petnotes

import (
	"context"
	"errors"
	"time"

	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/validation"
)

var (
	ErrNotFound      = apperr.NotFound("Nota de mascota no encontrada.")
	ErrNoNotesForPet = apperr.NotFound("No se encontraron historiales de notas para esta mascota")
)

type Service struct {
	repo Repository
	v    *validation.Validator
	now  func() time.Time
}

func NewService(repo Repository, v *validation.Validator) *Service {
	return &Service{repo: repo, v: v, now: time.Now}
}

type CreateInput struct {
	PetID       uint64 `json:"pet_id" validate:"required,exists=pets"`
	Description string `json:"noteDescription" validate:"required,max=140"`
	Date        string `json:"noteDate" validate:"required,date"`
}

// UpdateInput solo cambia el texto; mascota y fecha quedan fijas.
type UpdateInput struct {
	Description string `json:"noteDescription" validate:"required,max=140"`
}

var messages = validation.Messages{
	"pet_id.required":          "El ID de la mascota es obligatorio.",
	"pet_id.exists":            "La mascota no está registrada.",
	"noteDescription.required": "La descripción es obligatoria.",
	"noteDescription.max":      "La descripción no puede exceder los 140 caracteres.",
	"noteDate.required":        "La fecha es obligatoria.",
	"noteDate.date":            "La fecha debe ser válida.",
}

func (s *Service) List(ctx context.Context) ([]Note, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPet(ctx context.Context, petID uint64) ([]Note, error) {
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) GetByID(ctx context.Context, id uint64) (Note, error) {
	n, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, apperr.ErrRecordNotFound) {
		return Note{}, ErrNotFound
	}
	return n, err
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Note, error) {
	in.Description = validation.Sanitize(in.Description)
	if err := s.v.Struct(ctx, in, messages); err != nil {
		return Note{}, err
	}

	date, _ := validation.ParseDate(in.Date)
	now := s.now()
	n := Note{
		PetID:       in.PetID,
		Description: in.Description,
		Date:        date.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, &n); err != nil {
		return Note{}, s.storeErr(err)
	}
	return s.GetByID(ctx, n.ID)
}

func (s *Service) Update(ctx context.Context, id uint64, in UpdateInput) (Note, error) {
	n, err := s.GetByID(ctx, id)
	if err != nil {
		return Note{}, err
	}

	in.Description = validation.Sanitize(in.Description)
	if err := s.v.Struct(ctx, in, messages); err != nil {
		return Note{}, err
	}

	n.Description = in.Description
	n.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &n); err != nil {
		return Note{}, s.storeErr(err)
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeErr(err)
	}
	return nil
}

// DeleteByPet borra todas las notas de la mascota; 404 si no tenía ninguna.
func (s *Service) DeleteByPet(ctx context.Context, petID uint64) error {
	n, err := s.repo.DeleteByPet(ctx, petID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoNotesForPet
	}
	return nil
}

func (s *Service) storeErr(err error) error {
	if errors.Is(err, apperr.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
