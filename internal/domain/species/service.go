package species

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/validation"
)

var (
	ErrNotFound  = apperr.NotFound("Especie no encontrada.")
	ErrHasBreeds = apperr.Conflict("No se puede eliminar la especie porque tiene razas asociadas.")
	ErrInUse     = apperr.Conflict("No se puede eliminar la especie porque tiene mascotas o vacunas asociadas.")
)

var uniqueColumns = map[string]string{"specie_name": "specieName"}

type Service struct {
	repo Repository
	v    *validation.Validator
	now  func() time.Time
}

func NewService(repo Repository, v *validation.Validator) *Service {
	return &Service{repo: repo, v: v, now: time.Now}
}

type Input struct {
	Name string `json:"specieName" validate:"required,max=20,unique=species.specie_name"`
}

var messages = validation.Messages{
	"specieName.required": "El nombre es obligatorio.",
	"specieName.unique":   "El nombre ya está registrado.",
	"specieName.max":      "El nombre no puede exceder los 20 caracteres.",
}

func (s *Service) List(ctx context.Context) ([]Specie, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id uint64) (Specie, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Specie{}, s.storeErr(err)
	}
	return sp, nil
}

func (s *Service) Create(ctx context.Context, in Input) (Specie, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.v.Struct(ctx, in, messages); err != nil {
		return Specie{}, err
	}

	now := s.now()
	sp := Specie{Name: in.Name, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, &sp); err != nil {
		return Specie{}, s.storeErr(err)
	}
	return sp, nil
}

func (s *Service) Update(ctx context.Context, id uint64, in Input) (Specie, error) {
	sp, err := s.GetByID(ctx, id)
	if err != nil {
		return Specie{}, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if err := s.v.Struct(validation.WithIgnoreID(ctx, id), in, messages); err != nil {
		return Specie{}, err
	}

	sp.Name = in.Name
	sp.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &sp); err != nil {
		return Specie{}, s.storeErr(err)
	}
	return sp, nil
}

// Delete se niega si hay razas. Mascotas y vacunas las frena la FK restrict.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.repo.CountBreeds(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrHasBreeds
	}
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
