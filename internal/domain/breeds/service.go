package breeds

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/validation"
)

var (
	ErrNotFound = apperr.NotFound("Raza no encontrada")
	ErrInUse    = apperr.Conflict("No se puede eliminar la raza porque tiene mascotas asociadas.")
)

var uniqueColumns = map[string]string{"breed_name": "breedName"}

type Service struct {
	repo Repository
	v    *validation.Validator
	now  func() time.Time
}

func NewService(repo Repository, v *validation.Validator) *Service {
	return &Service{repo: repo, v: v, now: time.Now}
}

type Input struct {
	Name      string `json:"breedName" validate:"required,max=100,unique=breeds.breed_name"`
	SpeciesID uint64 `json:"species_id" validate:"required,exists=species"`
}

var messages = validation.Messages{
	"breedName.required":  "El nombre es obligatorio.",
	"breedName.unique":    "El nombre ya está registrado.",
	"species_id.required": "La especie es obligatoria.",
	"species_id.exists":   "La especie no está registrada.",
}

func (s *Service) List(ctx context.Context, speciesID uint64) ([]Breed, error) {
	return s.repo.List(ctx, speciesID)
}

func (s *Service) GetByID(ctx context.Context, id uint64) (Breed, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Breed{}, s.storeErr(err)
	}
	return b, nil
}

func (s *Service) Create(ctx context.Context, in Input) (Breed, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.v.Struct(ctx, in, messages); err != nil {
		return Breed{}, err
	}

	now := s.now()
	b := Breed{Name: in.Name, SpeciesID: in.SpeciesID, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, &b); err != nil {
		return Breed{}, s.storeErr(err)
	}
	return s.GetByID(ctx, b.ID)
}

func (s *Service) Update(ctx context.Context, id uint64, in Input) (Breed, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return Breed{}, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if err := s.v.Struct(validation.WithIgnoreID(ctx, id), in, messages); err != nil {
		return Breed{}, err
	}

	b.Name = in.Name
	b.SpeciesID = in.SpeciesID
	b.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &b); err != nil {
		return Breed{}, s.storeErr(err)
	}
	return s.GetByID(ctx, id)
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
	switch {
	case errors.Is(err, apperr.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, apperr.ErrForeignKey):
		return ErrInUse
	}
	return err
}
