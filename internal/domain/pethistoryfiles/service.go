package pethistoryfiles

import (
	"context"
	"errors"
	"time"

	"vet-clinic-api/internal/domain/pethistories"
	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/upload"
	"vet-clinic-api/internal/ports/files"
)

var (
	ErrNotFound        = apperr.NotFound("Archivo no encontrado")
	ErrHistoryNotFound = apperr.NotFound("Historia clínica no encontrada")
	ErrUploadFailed    = apperr.Upload("No se pudo guardar el archivo")
)

// Service administra adjuntos sueltos de una historia ya creada.
type Service struct {
	repo  Repository
	files files.Store
	now   func() time.Time
}

func NewService(repo Repository, store files.Store) *Service {
	return &Service{repo: repo, files: store, now: time.Now}
}

func (s *Service) List(ctx context.Context, historyID uint64) ([]pethistories.File, error) {
	if err := s.requireHistory(ctx, historyID); err != nil {
		return nil, err
	}
	return s.repo.ListByHistory(ctx, historyID)
}

// Upload guarda el blob y registra la fila. Si la fila no se puede crear el
// blob se borra.
func (s *Service) Upload(ctx context.Context, historyID uint64, f upload.File) (pethistories.File, error) {
	if err := s.requireHistory(ctx, historyID); err != nil {
		return pethistories.File{}, err
	}

	url, err := upload.Store(ctx, s.files, files.BucketPetHistoryFiles, f)
	if err != nil {
		return pethistories.File{}, ErrUploadFailed.Wrap(err)
	}

	now := s.now()
	rec := pethistories.File{
		HistoryID: historyID,
		Path:      url,
		Type:      f.Type(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &rec); err != nil {
		upload.Remove(ctx, s.files, url)
		return pethistories.File{}, s.storeErr(err)
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id uint64) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.storeErr(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeErr(err)
	}
	upload.Remove(ctx, s.files, f.Path)
	return nil
}

func (s *Service) requireHistory(ctx context.Context, historyID uint64) error {
	ok, err := s.repo.HistoryExists(ctx, historyID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrHistoryNotFound
	}
	return nil
}

func (s *Service) storeErr(err error) error {
	switch {
	case errors.Is(err, apperr.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, apperr.ErrForeignKey):
		return ErrHistoryNotFound
	}
	return err
}
