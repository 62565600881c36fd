package pethistories

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/upload"
	"vet-clinic-api/internal/platform/validation"
	"vet-clinic-api/internal/ports/files"
)

// maxCodeAttempts acota los reintentos cuando dos altas calculan el mismo código.
const maxCodeAttempts = 5

var (
	ErrNotFound    = apperr.NotFound("Historia clínica no encontrada")
	ErrPetNotFound = apperr.NotFound("Mascota no encontrada")
	ErrUploadFiles = apperr.Upload("No se pudieron guardar los archivos de la historia clínica")
)

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

// Input es el cuerpo de alta y modificación. history_code no se recibe:
// se genera al crear y no cambia después.
type Input struct {
	Date      string `json:"history_date" validate:"required,date"`
	Time      string `json:"history_time" validate:"required,clock"`
	Reason    string `json:"history_reason" validate:"required,max=100"`
	Symptoms  string `json:"history_symptoms" validate:"required,max=350"`
	Diagnosis string `json:"history_diagnosis" validate:"required,max=350"`
	Treatment string `json:"history_treatment" validate:"required,max=350"`
	UserID    uint64 `json:"user_id" validate:"required,exists=users"`
	PetID     uint64 `json:"pet_id" validate:"required,exists=pets"`
}

var messages = validation.Messages{
	"user_id.exists": "El usuario no está registrado.",
	"pet_id.exists":  "La mascota no está registrada.",
}

func (s *Service) List(ctx context.Context) ([]History, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPet(ctx context.Context, petID uint64) ([]History, error) {
	ok, err := s.repo.PetExists(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPetNotFound
	}
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) GetByID(ctx context.Context, id uint64) (History, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return History{}, s.storeErr(err)
	}
	return h, nil
}

// Create valida datos y adjuntos juntos, guarda los blobs y después crea la
// historia con su código dentro de una transacción. Si la transacción falla
// los blobs recién guardados se borran.
func (s *Service) Create(ctx context.Context, in Input, attachments []*multipart.FileHeader) (History, error) {
	in.normalize()
	uploads, err := s.validate(ctx, in, attachments)
	if err != nil {
		return History{}, err
	}

	stored, err := s.storeFiles(ctx, uploads)
	if err != nil {
		return History{}, err
	}

	now := s.now()
	var h History
	err = s.withCodeRetry(ctx, func(tx Repository) error {
		last, err := tx.LastCode(ctx)
		if err != nil {
			return err
		}
		h = History{Code: NextCode(last), CreatedAt: now}
		in.apply(&h, now)
		if err := tx.Create(ctx, &h); err != nil {
			return err
		}
		return createFiles(ctx, tx, h.ID, stored, now)
	})
	if err != nil {
		upload.Remove(ctx, s.files, paths(stored)...)
		return History{}, s.storeErr(err)
	}
	return s.GetByID(ctx, h.ID)
}

// Update reemplaza los campos y agrega los adjuntos nuevos a los existentes.
func (s *Service) Update(ctx context.Context, id uint64, in Input, attachments []*multipart.FileHeader) (History, error) {
	h, err := s.GetByID(ctx, id)
	if err != nil {
		return History{}, err
	}

	in.normalize()
	uploads, err := s.validate(ctx, in, attachments)
	if err != nil {
		return History{}, err
	}

	stored, err := s.storeFiles(ctx, uploads)
	if err != nil {
		return History{}, err
	}

	now := s.now()
	in.apply(&h, now)
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.Update(ctx, &h); err != nil {
			return err
		}
		return createFiles(ctx, tx, h.ID, stored, now)
	})
	if err != nil {
		upload.Remove(ctx, s.files, paths(stored)...)
		return History{}, s.storeErr(err)
	}
	return s.GetByID(ctx, id)
}

// Delete borra la historia (los adjuntos caen por cascada) y luego sus blobs.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	h, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeErr(err)
	}
	upload.Remove(ctx, s.files, paths(h.Files)...)
	return nil
}

// NextCode incrementa el sufijo numérico del último código. Un código que
// no se puede leer se trata como si no hubiera ninguno.
func NextCode(last string) string {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(last), CodePrefix))
	if err != nil || n < 0 {
		n = 0
	}
	return fmt.Sprintf("%s%05d", CodePrefix, n+1)
}

func (s *Service) withCodeRetry(ctx context.Context, fn func(tx Repository) error) error {
	var err error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		err = s.repo.Transaction(ctx, fn)
		if !errors.Is(err, apperr.ErrDuplicate) {
			return err
		}
	}
	return fmt.Errorf("history code after %d attempts: %w", maxCodeAttempts, err)
}

func (s *Service) validate(ctx context.Context, in Input, attachments []*multipart.FileHeader) ([]upload.File, error) {
	verr := s.v.Struct(ctx, in, messages)
	uploads, ferr := upload.InspectAll(attachments, "files", upload.AnyFile)
	if err := validation.Merge(verr, ferr); err != nil {
		return nil, err
	}
	return uploads, nil
}

func (s *Service) storeFiles(ctx context.Context, uploads []upload.File) ([]File, error) {
	out := make([]File, 0, len(uploads))
	for _, f := range uploads {
		url, err := upload.Store(ctx, s.files, files.BucketPetHistoryFiles, f)
		if err != nil {
			upload.Remove(ctx, s.files, paths(out)...)
			return nil, ErrUploadFiles.Wrap(err)
		}
		out = append(out, File{Path: url, Type: f.Type()})
	}
	return out, nil
}

func createFiles(ctx context.Context, tx Repository, historyID uint64, stored []File, now time.Time) error {
	for i := range stored {
		f := stored[i]
		f.HistoryID = historyID
		f.CreatedAt = now
		f.UpdatedAt = now
		if err := tx.CreateFile(ctx, &f); err != nil {
			return err
		}
	}
	return nil
}

func paths(fs []File) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Path)
	}
	return out
}

func (in *Input) normalize() {
	in.Reason = validation.Sanitize(in.Reason)
	in.Symptoms = validation.Sanitize(in.Symptoms)
	in.Diagnosis = validation.Sanitize(in.Diagnosis)
	in.Treatment = validation.Sanitize(in.Treatment)
}

func (in Input) apply(h *History, now time.Time) {
	date, _ := validation.ParseDate(in.Date)
	clock, _ := validation.ParseClock(in.Time)
	h.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	h.Time = clock
	h.Reason = in.Reason
	h.Symptoms = in.Symptoms
	h.Diagnosis = in.Diagnosis
	h.Treatment = in.Treatment
	h.UserID = in.UserID
	h.PetID = in.PetID
	h.UpdatedAt = now
}

func (s *Service) storeErr(err error) error {
	if errors.Is(err, apperr.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
