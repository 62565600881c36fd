package files

import (
	"context"
	"io"
)

// Buckets usados por la API.
const (
	BucketPetImages       = "pet_images"
	BucketCompanyLogos    = "company_logos"
	BucketPetHistoryFiles = "pet_history_files"
)

// Store guarda blobs y devuelve la URL pública con la que se persisten.
type Store interface {
	Put(ctx context.Context, bucket, name string, r io.Reader, size int64, contentType string) (string, error)

	// Delete recibe la URL pública devuelta por Put. Borrar algo que no
	// existe no es error.
	Delete(ctx context.Context, url string) error
}
