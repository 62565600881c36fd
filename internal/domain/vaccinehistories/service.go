package vaccinehistories

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/validation"
)

var (
	ErrNotFound   = apperr.NotFound("Historial de vacuna no encontrado")
	ErrNoneForPet = apperr.NotFound("No se encontraron historiales de vacunas para esta mascota")
)

type Service struct {
	repo Repository
	v    *validation.Validator
	now  func() time.Time
}

func NewService(repo Repository, v *validation.Validator) *Service {
	return &Service{repo: repo, v: v, now: time.Now}
}

// Input se usa en alta y modificación (reemplazo completo).
type Input struct {
	VaccineID   uint64 `json:"vaccine_id" validate:"required,exists=vaccines"`
	PetID       uint64 `json:"pet_id" validate:"required,exists=pets"`
	Date        string `json:"vaccine_date" validate:"required,date"`
	Product     string `json:"product" validate:"required,max=150"`
	Observation string `json:"observation" validate:"omitempty,max=150"`
}

var messages = validation.Messages{
	"vaccine_id.required":   "La vacuna es obligatoria.",
	"vaccine_id.exists":     "La vacuna no está registrada.",
	"vaccine_date.required": "La fecha es obligatoria.",
	"pet_id.required":       "La mascota es obligatoria.",
	"pet_id.exists":         "La mascota no está registrada.",
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

// ListByPet devuelve 404 cuando la mascota no tiene vacunas registradas.
func (s *Service) ListByPet(ctx context.Context, petID uint64) ([]Record, error) {
	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoneForPet
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id uint64) (Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, s.storeErr(err)
	}
	return rec, nil
}

func (s *Service) Create(ctx context.Context, in Input) (Record, error) {
	in.normalize()
	if err := s.v.Struct(ctx, in, messages); err != nil {
		return Record{}, err
	}

	now := s.now()
	rec := Record{CreatedAt: now}
	in.apply(&rec, now)
	if err := s.repo.Create(ctx, &rec); err != nil {
		return Record{}, s.storeErr(err)
	}
	return s.GetByID(ctx, rec.ID)
}

func (s *Service) Update(ctx context.Context, id uint64, in Input) (Record, error) {
	rec, err := s.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}

	in.normalize()
	if err := s.v.Struct(ctx, in, messages); err != nil {
		return Record{}, err
	}

	in.apply(&rec, s.now())
	if err := s.repo.Update(ctx, &rec); err != nil {
		return Record{}, s.storeErr(err)
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeErr(err)
	}
	return nil
}

func (s *Service) DeleteByPet(ctx context.Context, petID uint64) error {
	n, err := s.repo.DeleteByPet(ctx, petID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoneForPet
	}
	return nil
}

func (in *Input) normalize() {
	in.Product = validation.Sanitize(in.Product)
	in.Observation = validation.Sanitize(in.Observation)
}

func (in Input) apply(rec *Record, now time.Time) {
	date, _ := validation.ParseDate(in.Date)
	rec.VaccineID = in.VaccineID
	rec.PetID = in.PetID
	rec.Date = date
	rec.Product = strings.TrimSpace(in.Product)
	rec.Observation = in.Observation
	rec.UpdatedAt = now
}

func (s *Service) storeErr(err error) error {
	if errors.Is(err, apperr.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
