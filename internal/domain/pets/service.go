package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/upload"
	"vet-clinic-api/internal/platform/validation"
	"vet-clinic-api/internal/ports/files"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = apperr.NotFound("Mascota no encontrada")
	ErrPhotoFailed = apperr.Upload("No se pudo actualizar la imagen de la mascota")
)

var uniqueColumns = map[string]string{"pet_code": "petCode"}

type Service struct {
	repo  Repository
	v     *validation.Validator
	files files.Store
	now   func() time.Time
}

func NewService(repo Repository, v *validation.Validator, store files.Store) *Service {
	return &Service{
		repo:  repo,
		v:     v,
		files: store,
		now:   time.Now,
	}
}

type CreateInput struct {
	Code       string `json:"petCode" validate:"omitempty,max=50,unique=pets.pet_code"`
	Name       string `json:"petName" validate:"required,max=100"`
	BirthDate  string `json:"petBirthDate" validate:"required,date"`
	Weight     string `json:"petWeight" validate:"required,max=10"`
	Color      string `json:"petColor" validate:"required,max=100"`
	SpeciesID  uint64 `json:"species_id" validate:"required,exists=species"`
	BreedID    uint64 `json:"breeds_id" validate:"required,exists=breeds"`
	Gender     string `json:"petGender" validate:"required,max=10"`
	Additional string `json:"petAdditional" validate:"omitempty,max=200"`
	ClientID   uint64 `json:"clients_id" validate:"required,exists=clients"`
}

// UpdateInput: petCode vacío conserva el actual.
type UpdateInput struct {
	Code       string `json:"petCode" validate:"omitempty,max=50,unique=pets.pet_code"`
	Name       string `json:"petName" validate:"required,max=100"`
	BirthDate  string `json:"petBirthDate" validate:"required,date"`
	Weight     string `json:"petWeight" validate:"omitempty,max=10"`
	Color      string `json:"petColor" validate:"omitempty,max=100"`
	SpeciesID  uint64 `json:"species_id" validate:"required,exists=species"`
	BreedID    uint64 `json:"breeds_id" validate:"required,exists=breeds"`
	Gender     string `json:"petGender" validate:"required,max=10"`
	Additional string `json:"petAdditional" validate:"omitempty,max=200"`
	ClientID   uint64 `json:"clients_id" validate:"required,exists=clients"`
}

var messages = validation.Messages{
	"petCode.unique":        "El código de la mascota ya está registrado.",
	"petWeight.required":    "El peso de la mascota es obligatorio.",
	"petColor.required":     "El color de la mascota es obligatorio.",
	"petName.required":      "El nombre de la mascota es obligatorio.",
	"petBirthDate.required": "La fecha de nacimiento de la mascota es obligatoria.",
	"species_id.required":   "La especie es obligatoria.",
	"species_id.exists":     "La especie no está registrada.",
	"breeds_id.required":    "La raza es obligatoria.",
	"breeds_id.exists":      "La raza no está registrada.",
	"clients_id.required":   "El cliente es obligatorio.",
	"clients_id.exists":     "El cliente no está registrado.",
}

func (s *Service) List(ctx context.Context, clientID uint64) ([]Pet, error) {
	return s.repo.List(ctx, clientID)
}

func (s *Service) GetByID(ctx context.Context, id uint64) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, s.storeErr(err)
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	in.Code = strings.TrimSpace(in.Code)
	if err := s.v.Struct(ctx, in, messages); err != nil {
		return Pet{}, err
	}

	birth, _ := validation.ParseDate(in.BirthDate)
	if in.Code == "" {
		in.Code = newCode()
	}

	now := s.now()
	p := Pet{
		Code:       in.Code,
		Name:       strings.TrimSpace(in.Name),
		BirthDate:  dateOnly(birth),
		Weight:     strings.TrimSpace(in.Weight),
		Color:      strings.TrimSpace(in.Color),
		SpeciesID:  in.SpeciesID,
		BreedID:    in.BreedID,
		ClientID:   in.ClientID,
		Gender:     strings.TrimSpace(in.Gender),
		Additional: validation.Sanitize(in.Additional),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return Pet{}, s.storeErr(err)
	}
	return s.GetByID(ctx, p.ID)
}

func (s *Service) Update(ctx context.Context, id uint64, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	in.Code = strings.TrimSpace(in.Code)
	if err := s.v.Struct(validation.WithIgnoreID(ctx, id), in, messages); err != nil {
		return Pet{}, err
	}

	birth, _ := validation.ParseDate(in.BirthDate)
	if in.Code != "" {
		p.Code = in.Code
	}
	p.Name = strings.TrimSpace(in.Name)
	p.BirthDate = dateOnly(birth)
	p.Weight = strings.TrimSpace(in.Weight)
	p.Color = strings.TrimSpace(in.Color)
	p.SpeciesID = in.SpeciesID
	p.BreedID = in.BreedID
	p.ClientID = in.ClientID
	p.Gender = strings.TrimSpace(in.Gender)
	p.Additional = validation.Sanitize(in.Additional)
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, &p); err != nil {
		return Pet{}, s.storeErr(err)
	}
	return s.GetByID(ctx, id)
}

// UploadPhoto guarda la foto nueva, la persiste y recién entonces borra la
// anterior. Si la escritura en la base falla se borra el blob nuevo.
func (s *Service) UploadPhoto(ctx context.Context, id uint64, f upload.File) (string, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := upload.Store(ctx, s.files, files.BucketPetImages, f)
	if err != nil {
		return "", ErrPhotoFailed.Wrap(err)
	}
	if err := s.repo.SetPhoto(ctx, id, url, s.now()); err != nil {
		upload.Remove(ctx, s.files, url)
		return "", s.storeErr(err)
	}

	upload.Remove(ctx, s.files, p.Photo)
	return url, nil
}

// Delete borra la mascota (notas, citas, vacunas e historias caen por
// cascada) y después la foto y los archivos de sus historias.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	urls, err := s.repo.FileURLs(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeErr(err)
	}
	upload.Remove(ctx, s.files, append(urls, p.Photo)...)
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

// newCode genera PET- y 8 caracteres hex en mayúsculas.
func newCode() string {
	id := uuid.New()
	return "PET-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
