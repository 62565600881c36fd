package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"vet-clinic-api/internal/platform/logger"
	"vet-clinic-api/internal/platform/validation"
	"vet-clinic-api/internal/ports/files"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// MaxSize es el límite por archivo (2048 KB).
const MaxSize int64 = 2048 << 10

const maxMemory = 8 << 20

type Rule struct {
	MaxBytes int64
	Types    []string // mime permitidos; vacío = cualquiera
	Label    string   // lista legible para el mensaje de error
}

var (
	Image   = Rule{MaxBytes: MaxSize, Types: []string{"image/jpeg", "image/png", "image/gif"}, Label: "jpeg, png, jpg, gif"}
	AnyFile = Rule{MaxBytes: MaxSize}
)

// File es un archivo ya validado y leído a memoria.
type File struct {
	Original    string
	Ext         string // con punto, en minúsculas
	ContentType string
	Data        []byte
}

// Size implementa lo que necesita files.Store.
func (f File) Size() int64 { return int64(len(f.Data)) }

// Type es la extensión sin punto (file_type).
func (f File) Type() string { return strings.TrimPrefix(f.Ext, ".") }

// Reader devuelve un lector nuevo sobre los datos.
func (f File) Reader() io.Reader { return bytes.NewReader(f.Data) }

// Single lee un archivo obligatorio del form multipart.
func Single(r *http.Request, field string, rule Rule) (File, error) {
	if err := parse(r); err != nil {
		return File{}, err
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return File{}, validation.Field(field, fmt.Sprintf("El campo %s es obligatorio.", field))
	}
	return Inspect(r.MultipartForm.File[field][0], field, rule)
}

// Headers devuelve los archivos de un campo repetible (files o files[]).
// El form ya tiene que estar parseado con ParseForm.
func Headers(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	out := append([]*multipart.FileHeader{}, r.MultipartForm.File[field]...)
	return append(out, r.MultipartForm.File[field+"[]"]...)
}

// InspectAll valida cada archivo con Inspect. Todos los inválidos se
// reportan juntos como field.0, field.1, ...
func InspectAll(headers []*multipart.FileHeader, field string, rule Rule) ([]File, error) {
	out := make([]File, 0, len(headers))
	verrs := validation.Errors{}
	for i, fh := range headers {
		f, err := Inspect(fh, fmt.Sprintf("%s.%d", field, i), rule)
		if err != nil {
			var fe validation.Errors
			if !errors.As(err, &fe) {
				return nil, err
			}
			for k, msgs := range fe {
				verrs[k] = append(verrs[k], msgs...)
			}
			continue
		}
		out = append(out, f)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}
	return out, nil
}

// Inspect valida tamaño y tipo real (por contenido, no por extensión).
func Inspect(fh *multipart.FileHeader, field string, rule Rule) (File, error) {
	if rule.MaxBytes > 0 && fh.Size > rule.MaxBytes {
		return File{}, validation.Field(field,
			fmt.Sprintf("El campo %s no debe ser mayor que %d kilobytes.", field, rule.MaxBytes>>10))
	}

	src, err := fh.Open()
	if err != nil {
		return File{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	limit := rule.MaxBytes
	if limit <= 0 {
		limit = MaxSize
	}
	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return File{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return File{}, validation.Field(field,
			fmt.Sprintf("El campo %s no debe ser mayor que %d kilobytes.", field, limit>>10))
	}

	mt := mimetype.Detect(data)
	if len(rule.Types) > 0 && !lo.ContainsBy(rule.Types, mt.Is) {
		return File{}, validation.Field(field,
			fmt.Sprintf("El campo %s debe ser un archivo de tipo: %s.", field, rule.Label))
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if len(rule.Types) > 0 || ext == "" {
		ext = mt.Extension()
	}

	return File{
		Original:    fh.Filename,
		Ext:         ext,
		ContentType: mt.String(),
		Data:        data,
	}, nil
}

// Store guarda f en el bucket con nombre aleatorio y devuelve la URL pública.
func Store(ctx context.Context, store files.Store, bucket string, f File) (string, error) {
	name := uuid.NewString() + f.Ext
	return store.Put(ctx, bucket, name, f.Reader(), f.Size(), f.ContentType)
}

// Remove borra blobs ya persistidos en la base. Un fallo solo deja un
// huérfano en el storage, así que se loguea y no se propaga.
func Remove(ctx context.Context, store files.Store, urls ...string) {
	for _, u := range urls {
		if u == "" {
			continue
		}
		if err := store.Delete(ctx, u); err != nil {
			logger.FromContext(ctx).Warn("blob delete failed", "url", u, "err", err)
		}
	}
}

func parse(r *http.Request) error {
	if r.MultipartForm != nil {
		return nil
	}
	err := r.ParseMultipartForm(maxMemory)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return validation.Field("file", "No se pudo leer el formulario multipart.")
}

// ParseForm deja listo r.MultipartForm para Headers y para leer valores.
func ParseForm(r *http.Request) error { return parse(r) }
