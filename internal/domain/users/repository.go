package users

import "context"

type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id uint64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uint64) error
	// FileURLs devuelve los adjuntos de las historias clínicas del usuario.
	FileURLs(ctx context.Context, id uint64) ([]string, error)
}
