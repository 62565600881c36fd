package companies

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

var (
	ErrNotFound   = apperr.NotFound("Empresa no encontrada.")
	ErrLogoFailed = apperr.Upload("No se pudo actualizar el logo de la empresa")
)

var uniqueColumns = map[string]string{
	"company_doc":   "companyDoc",
	"company_email": "companyEmail",
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

// Input sirve para crear y para actualizar. companyTax es puntero para
// distinguir 0 de "no enviado".
type Input struct {
	Doc      string   `json:"companyDoc" validate:"required,max=50,unique=companies.company_doc"`
	Name     string   `json:"companyName" validate:"required,max=100"`
	Address  string   `json:"companyAddress" validate:"required,max=200"`
	Phone    string   `json:"companyPhone" validate:"required,max=20"`
	Email    string   `json:"companyEmail" validate:"required,email,max=100,unique=companies.company_email"`
	Currency string   `json:"companyCurrency" validate:"required,max=10"`
	Tax      *float64 `json:"companyTax" validate:"required,gte=0"`
}

var messages = validation.Messages{
	"companyDoc.required":      "El documento es obligatorio.",
	"companyDoc.unique":        "El documento ya está registrado.",
	"companyName.required":     "El nombre es obligatorio.",
	"companyAddress.required":  "La dirección es obligatoria.",
	"companyPhone.required":    "El teléfono es obligatorio.",
	"companyEmail.required":    "El correo electrónico es obligatorio.",
	"companyEmail.unique":      "El correo electrónico ya está registrado.",
	"companyCurrency.required": "La moneda es obligatoria.",
	"companyTax.required":      "El impuesto es obligatorio.",
}

func (s *Service) List(ctx context.Context) ([]Company, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id uint64) (Company, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Company{}, s.storeErr(err)
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, in Input) (Company, error) {
	in.normalize()
	if err := s.v.Struct(ctx, in, messages); err != nil {
		return Company{}, err
	}

	now := s.now()
	c := Company{CreatedAt: now}
	in.apply(&c, now)
	if err := s.repo.Create(ctx, &c); err != nil {
		return Company{}, s.storeErr(err)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id uint64, in Input) (Company, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return Company{}, err
	}

	in.normalize()
	if err := s.v.Struct(validation.WithIgnoreID(ctx, id), in, messages); err != nil {
		return Company{}, err
	}

	in.apply(&c, s.now())
	if err := s.repo.Update(ctx, &c); err != nil {
		return Company{}, s.storeErr(err)
	}
	return c, nil
}

// UploadLogo sigue el mismo orden que la foto de mascota: nuevo blob,
// persistir, borrar el anterior.
func (s *Service) UploadLogo(ctx context.Context, id uint64, f upload.File) (string, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := upload.Store(ctx, s.files, files.BucketCompanyLogos, f)
	if err != nil {
		return "", ErrLogoFailed.Wrap(err)
	}
	if err := s.repo.SetPhoto(ctx, id, url, s.now()); err != nil {
		upload.Remove(ctx, s.files, url)
		return "", s.storeErr(err)
	}

	upload.Remove(ctx, s.files, c.Photo)
	return url, nil
}

func (s *Service) Delete(ctx context.Context, id uint64) error {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeErr(err)
	}
	upload.Remove(ctx, s.files, c.Photo)
	return nil
}

func (in *Input) normalize() {
	in.Doc = strings.TrimSpace(in.Doc)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
}

func (in Input) apply(c *Company, now time.Time) {
	c.Doc = in.Doc
	c.Name = strings.TrimSpace(in.Name)
	c.Address = validation.Sanitize(in.Address)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = in.Email
	c.Currency = in.Currency
	c.Tax = *in.Tax
	c.UpdatedAt = now
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
