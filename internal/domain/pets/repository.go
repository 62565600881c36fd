package pets

import (
	"context"
	"time"
)

type Repository interface {
	// List filtra por cliente cuando clientID != 0.
	List(ctx context.Context, clientID uint64) ([]Pet, error)
	GetByID(ctx context.Context, id uint64) (Pet, error)
	Create(ctx context.Context, p *Pet) error
	Update(ctx context.Context, p *Pet) error
	Delete(ctx context.Context, id uint64) error

	SetPhoto(ctx context.Context, id uint64, url string, at time.Time) error

	// FileURLs devuelve los blobs de las historias clínicas de la mascota.
	FileURLs(ctx context.Context, id uint64) ([]string, error)
}
