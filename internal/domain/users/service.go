package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/upload"
	"vet-clinic-api/internal/platform/validation"
	"vet-clinic-api/internal/ports/files"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound   = apperr.NotFound("Usuario no encontrado")
	ErrDeleteSelf = apperr.Conflict("No puede eliminar su propio usuario.")
)

var uniqueColumns = map[string]string{"email": "email"}

type Service struct {
	repo  Repository
	v     *validation.Validator
	files files.Store
	now   func() time.Time
	cost  int
}

func NewService(repo Repository, v *validation.Validator, store files.Store) *Service {
	return &Service{
		repo:  repo,
		v:     v,
		files: store,
		now:   time.Now,
		cost:  bcrypt.DefaultCost,
	}
}

// CreateInput sirve tanto para /auth/register como para POST /users.
type CreateInput struct {
	Name                 string `json:"name" validate:"required,max=100"`
	LastName             string `json:"last_name" validate:"omitempty,max=100"`
	Email                string `json:"email" validate:"required,email,max=150,unique=users.email"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	Doc                  string `json:"doc" validate:"omitempty,max=20"`
	Phone                string `json:"phone" validate:"omitempty,max=20"`
	Sex                  string `json:"sex" validate:"omitempty,max=10"`
	Status               string `json:"status" validate:"omitempty,oneof=active inactive"`
	Privilege            string `json:"privilege" validate:"omitempty,oneof=admin user"`
}

type UpdateInput struct {
	Name                 string `json:"name" validate:"required,max=100"`
	LastName             string `json:"last_name" validate:"omitempty,max=100"`
	Email                string `json:"email" validate:"required,email,max=150,unique=users.email"`
	Password             string `json:"password" validate:"omitempty,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required_with=Password,eqfield=Password"`
	Doc                  string `json:"doc" validate:"omitempty,max=20"`
	Phone                string `json:"phone" validate:"omitempty,max=20"`
	Sex                  string `json:"sex" validate:"omitempty,max=10"`
	Status               string `json:"status" validate:"required,oneof=active inactive"`
	Privilege            string `json:"privilege" validate:"required,oneof=admin user"`
}

var messages = validation.Messages{
	"email.unique":                  "El correo electrónico ya está registrado.",
	"password_confirmation.eqfield": "La confirmación de la contraseña no coincide.",
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id uint64) (User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, s.storeErr(err)
	}
	return u, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return User{}, s.storeErr(err)
	}
	return u, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)

	if err := s.v.Struct(ctx, in, messages); err != nil {
		return User{}, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		Name:         in.Name,
		LastName:     strings.TrimSpace(in.LastName),
		Email:        in.Email,
		PasswordHash: hash,
		Doc:          strings.TrimSpace(in.Doc),
		Phone:        strings.TrimSpace(in.Phone),
		Sex:          strings.TrimSpace(in.Sex),
		Status:       StatusActive,
		Privilege:    PrivilegeUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Status != "" {
		u.Status = Status(in.Status)
	}
	if in.Privilege != "" {
		u.Privilege = Privilege(in.Privilege)
	}

	if err := s.repo.Create(ctx, &u); err != nil {
		return User{}, s.storeErr(err)
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, id uint64, in UpdateInput) (User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.v.Struct(validation.WithIgnoreID(ctx, id), in, messages); err != nil {
		return User{}, err
	}

	u.Name = strings.TrimSpace(in.Name)
	u.LastName = strings.TrimSpace(in.LastName)
	u.Email = in.Email
	u.Doc = strings.TrimSpace(in.Doc)
	u.Phone = strings.TrimSpace(in.Phone)
	u.Sex = strings.TrimSpace(in.Sex)
	u.Status = Status(in.Status)
	u.Privilege = Privilege(in.Privilege)
	u.UpdatedAt = s.now()

	if in.Password != "" {
		if u.PasswordHash, err = s.hash(in.Password); err != nil {
			return User{}, err
		}
	}

	if err := s.repo.Update(ctx, &u); err != nil {
		return User{}, s.storeErr(err)
	}
	return u, nil
}

// Delete borra el usuario y, por cascada, sus historias clínicas. Los
// adjuntos de esas historias se borran del storage después del delete.
func (s *Service) Delete(ctx context.Context, actorID, id uint64) error {
	if actorID == id {
		return ErrDeleteSelf
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

// CheckPassword compara en tiempo constante contra el hash guardado.
func CheckPassword(u User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (s *Service) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
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
