// Package local guarda los blobs en un sistema de archivos afero y los
// publica bajo un prefijo HTTP (/storage/<bucket>/<archivo>).
package local

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

type Store struct {
	fs     afero.Fs
	prefix string
}

// New usa fs tal cual; para disco real pasar afero.NewBasePathFs(afero.NewOsFs(), root).
func New(fs afero.Fs, publicPrefix string) *Store {
	prefix := "/" + strings.Trim(publicPrefix, "/")
	if prefix == "/" {
		prefix = ""
	}
	return &Store{fs: fs, prefix: prefix}
}

// NewDisk guarda bajo root en el disco.
func NewDisk(root, publicPrefix string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return New(afero.NewBasePathFs(afero.NewOsFs(), root), publicPrefix), nil
}

func (s *Store) Put(ctx context.Context, bucket, name string, r io.Reader, size int64, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key, err := cleanKey(bucket, name)
	if err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(path.Dir(key), 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", bucket, err)
	}

	f, err := s.fs.OpenFile(key, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(key)
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", key, err)
	}
	return s.prefix + key, nil
}

// Delete acepta la URL pública (con o sin host). Un archivo que ya no está
// no es error.
func (s *Store) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, ok := s.keyOf(url)
	if !ok {
		return fmt.Errorf("url %q is not served by this store", url)
	}
	if err := s.fs.Remove(key); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Exists sirve para verificar reemplazos y borrados.
func (s *Store) Exists(url string) bool {
	key, ok := s.keyOf(url)
	if !ok {
		return false
	}
	ok, _ = afero.Exists(s.fs, key)
	return ok
}

// Handler sirve los archivos públicos; se monta en el prefijo.
func (s *Store) Handler() http.Handler {
	return http.StripPrefix(s.prefix, http.FileServer(afero.NewHttpFs(s.fs).Dir("/")))
}

func (s *Store) Prefix() string { return s.prefix }

func (s *Store) keyOf(url string) (string, bool) {
	if i := strings.Index(url, "://"); i >= 0 {
		rest := url[i+3:]
		j := strings.Index(rest, "/")
		if j < 0 {
			return "", false
		}
		url = rest[j:]
	}
	if !strings.HasPrefix(url, s.prefix+"/") {
		return "", false
	}
	rel := strings.TrimPrefix(url, s.prefix)
	if strings.Contains(rel, "..") {
		return "", false
	}
	key := path.Clean(rel)
	if key == "/" {
		return "", false
	}
	return key, true
}

func cleanKey(bucket, name string) (string, error) {
	if bucket == "" || name == "" || strings.ContainsAny(bucket+name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid blob name %q/%q", bucket, name)
	}
	return "/" + bucket + "/" + name, nil
}
