package clients

import "context"

type Repository interface {
	List(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id uint64) (Client, error)
	Create(ctx context.Context, c *Client) error
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id uint64) error

	// FileURLs devuelve los blobs que se van con el cliente por cascada:
	// fotos de sus mascotas y archivos de sus historias clínicas.
	FileURLs(ctx context.Context, id uint64) ([]string, error)
}
