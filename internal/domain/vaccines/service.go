package vaccines

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/validation"
)

var ErrNotFound = apperr.NotFound("Vacuna no encontrada")

var uniqueColumns = map[string]string{"vaccine_name": "vaccineName"}

type Service struct {
	repo Repository
	v    *validation.Validator
	now  func() time.Time
}

func NewService(repo Repository, v *validation.Validator) *Service {
	return &Service{repo: repo, v: v, now: time.Now}
}

type Input struct {
	Name      string `json:"vaccineName" validate:"required,max=150,unique=vaccines.vaccine_name"`
	SpeciesID uint64 `json:"species_id" validate:"required,exists=species"`
}

var messages = validation.Messages{
	"vaccineName.required": "El nombre es obligatorio.",
	"vaccineName.unique":   "El nombre ya está registrado.",
	"species_id.required":  "La especie es obligatoria.",
	"species_id.exists":    "La especie no está registrada.",
}

func (s *Service) List(ctx context.Context, speciesID uint64) ([]Vaccine, error) {
	return s.repo.List(ctx, speciesID)
}

func (s *Service) GetByID(ctx context.Context, id uint64) (Vaccine, error) {
	vc, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, apperr.ErrRecordNotFound) {
		return Vaccine{}, ErrNotFound
	}
	return vc, err
}

func (s *Service) Create(ctx context.Context, in Input) (Vaccine, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.v.Struct(ctx, in, messages); err != nil {
		return Vaccine{}, err
	}

	now := s.now()
	vc := Vaccine{Name: in.Name, SpeciesID: in.SpeciesID, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, &vc); err != nil {
		return Vaccine{}, s.storeErr(err)
	}
	return s.GetByID(ctx, vc.ID)
}

func (s *Service) Update(ctx context.Context, id uint64, in Input) (Vaccine, error) {
	vc, err := s.GetByID(ctx, id)
	if err != nil {
		return Vaccine{}, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if err := s.v.Struct(validation.WithIgnoreID(ctx, id), in, messages); err != nil {
		return Vaccine{}, err
	}

	vc.Name = in.Name
	vc.SpeciesID = in.SpeciesID
	vc.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &vc); err != nil {
		return Vaccine{}, s.storeErr(err)
	}
	return s.GetByID(ctx, id)
}

// Delete arrastra los historiales de vacunación por cascada.
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
