package pethistories

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"sort"
	"strings"
	"testing"
	"time"

	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/upload"
	"vet-clinic-api/internal/platform/validation"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID   map[uint64]History
	nextID uint64
	fileID uint64

	// staleLast hace que LastCode devuelva este valor una vez, como si otro
	// alta hubiera escrito entre la lectura y el insert.
	staleLast string
	fileErr   error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[uint64]History{}}
}

func (r *testRepo) List(ctx context.Context) ([]History, error) {
	out := make([]History, 0, len(r.byID))
	for _, h := range r.byID {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID uint64) ([]History, error) {
	all, _ := r.List(ctx)
	out := []History{}
	for _, h := range all {
		if h.PetID == petID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *testRepo) PetExists(ctx context.Context, petID uint64) (bool, error) {
	return petID == 1, nil
}

func (r *testRepo) GetByID(ctx context.Context, id uint64) (History, error) {
	h, ok := r.byID[id]
	if !ok {
		return History{}, apperr.ErrRecordNotFound
	}
	return h, nil
}

func (r *testRepo) LastCode(ctx context.Context) (string, error) {
	if r.staleLast != "" {
		last := r.staleLast
		r.staleLast = ""
		return last, nil
	}
	last := ""
	for _, h := range r.byID {
		if len(h.Code) > len(last) || (len(h.Code) == len(last) && h.Code > last) {
			last = h.Code
		}
	}
	return last, nil
}

func (r *testRepo) Create(ctx context.Context, h *History) error {
	for _, other := range r.byID {
		if other.Code == h.Code {
			return &apperr.DuplicateError{Table: "pet_histories", Column: "history_code"}
		}
	}
	r.nextID++
	h.ID = r.nextID
	r.byID[h.ID] = *h
	return nil
}

func (r *testRepo) Update(ctx context.Context, h *History) error {
	cur, ok := r.byID[h.ID]
	if !ok {
		return apperr.ErrRecordNotFound
	}
	h.Files = cur.Files
	r.byID[h.ID] = *h
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id uint64) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.ErrRecordNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) CreateFile(ctx context.Context, f *File) error {
	if r.fileErr != nil {
		return r.fileErr
	}
	h, ok := r.byID[f.HistoryID]
	if !ok {
		return apperr.ErrForeignKey
	}
	r.fileID++
	f.ID = r.fileID
	h.Files = append(h.Files, *f)
	r.byID[h.ID] = h
	return nil
}

// Transaction no hace rollback: alcanza para probar el flujo del service.
func (r *testRepo) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return fn(r)
}

type allowAll struct{}

func (allowAll) Exists(ctx context.Context, table, column string, value any, ignoreID uint64) (bool, error) {
	return true, nil
}

type memStore struct {
	blobs map[string][]byte
}

func newMemStore() *memStore { return &memStore{blobs: map[string][]byte{}} }

func (m *memStore) Put(ctx context.Context, bucket, name string, r io.Reader, size int64, contentType string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	url := "mem://" + bucket + "/" + name
	m.blobs[url] = b
	return url, nil
}

func (m *memStore) Delete(ctx context.Context, url string) error {
	delete(m.blobs, url)
	return nil
}

func newTestService(repo *testRepo, store *memStore) *Service {
	svc := NewService(repo, validation.New(allowAll{}), store)
	svc.now = func() time.Time { return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func validInput() Input {
	return Input{
		Date:      "2026-10-01",
		Time:      "08:15",
		Reason:    "Cojera",
		Symptoms:  "No apoya la pata trasera",
		Diagnosis: "Esguince",
		Treatment: "Reposo",
		UserID:    1,
		PetID:     1,
	}
}

// headers arma FileHeaders reales pasando por un form multipart.
func headers(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		w, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = w.Write(files[name])
	}
	_ = mw.Close()

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	return form.File["files"]
}

// -------------------------
// Tests
// -------------------------

func TestNextCode(t *testing.T) {
	cases := map[string]string{
		"":          "HM-00001",
		"HM-00001":  "HM-00002",
		"HM-00099":  "HM-00100",
		"HM-99999":  "HM-100000",
		"HM-100000": "HM-100001",
		"basura":    "HM-00001",
	}
	for last, want := range cases {
		if got := NextCode(last); got != want {
			t.Fatalf("NextCode(%q) = %q, want %q", last, got, want)
		}
	}
}

func TestCreateAssignsSequentialCodes(t *testing.T) {
	svc := newTestService(newTestRepo(), newMemStore())
	ctx := context.Background()

	for _, want := range []string{"HM-00001", "HM-00002", "HM-00003"} {
		h, err := svc.Create(ctx, validInput(), nil)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if h.Code != want {
			t.Fatalf("expected %s, got %s", want, h.Code)
		}
		if h.Time != "08:15:00" {
			t.Fatalf("expected normalized time, got %q", h.Time)
		}
	}
}

func TestCreateRetriesWhenCodeIsTaken(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, newMemStore())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(ctx, validInput(), nil); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	repo.staleLast = "HM-00001"
	h, err := svc.Create(ctx, validInput(), nil)
	if err != nil {
		t.Fatalf("create after stale read: %v", err)
	}
	if h.Code != "HM-00003" {
		t.Fatalf("expected HM-00003 after retry, got %s", h.Code)
	}
}

func TestCreateValidatesFieldsAndFilesTogether(t *testing.T) {
	svc := newTestService(newTestRepo(), newMemStore())

	in := validInput()
	in.Reason = ""
	in.Time = "25:99"
	big := bytes.Repeat([]byte("a"), int(upload.MaxSize)+1)

	_, err := svc.Create(context.Background(), in, headers(t, map[string][]byte{"grande.txt": big}))
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	for _, field := range []string{"history_reason", "history_time", "files.0"} {
		if len(verrs[field]) == 0 {
			t.Fatalf("expected error for %s, got %v", field, verrs)
		}
	}
}

func TestCreateStoresFilesAndRemovesThemOnFailure(t *testing.T) {
	repo := newTestRepo()
	store := newMemStore()
	svc := newTestService(repo, store)
	ctx := context.Background()

	h, err := svc.Create(ctx, validInput(), headers(t, map[string][]byte{
		"a.txt": []byte("uno"),
		"b.txt": []byte("dos"),
	}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(h.Files) != 2 || len(store.blobs) != 2 {
		t.Fatalf("expected 2 files stored, got rows=%d blobs=%d", len(h.Files), len(store.blobs))
	}
	for _, f := range h.Files {
		if f.Type != "txt" || !strings.HasPrefix(f.Path, "mem://pet_history_files/") {
			t.Fatalf("unexpected file %+v", f)
		}
	}

	repo.fileErr = errors.New("disk full")
	if _, err := svc.Create(ctx, validInput(), headers(t, map[string][]byte{"c.txt": []byte("tres")})); err == nil {
		t.Fatalf("expected error when file rows fail")
	}
	if len(store.blobs) != 2 {
		t.Fatalf("expected new blob removed after failure, got %d blobs", len(store.blobs))
	}
}

func TestUpdateKeepsCodeAndAppendsFiles(t *testing.T) {
	repo := newTestRepo()
	store := newMemStore()
	svc := newTestService(repo, store)
	ctx := context.Background()

	h, err := svc.Create(ctx, validInput(), headers(t, map[string][]byte{"a.txt": []byte("uno")}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := validInput()
	in.Diagnosis = "Fractura leve"
	got, err := svc.Update(ctx, h.ID, in, headers(t, map[string][]byte{"rx.txt": []byte("placa")}))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Code != h.Code {
		t.Fatalf("expected code %s to stay, got %s", h.Code, got.Code)
	}
	if got.Diagnosis != "Fractura leve" {
		t.Fatalf("expected diagnosis updated, got %q", got.Diagnosis)
	}
	if len(got.Files) != 2 {
		t.Fatalf("expected 2 files after update, got %d", len(got.Files))
	}

	if _, err := svc.Update(ctx, 999, in, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesBlobs(t *testing.T) {
	repo := newTestRepo()
	store := newMemStore()
	svc := newTestService(repo, store)
	ctx := context.Background()

	h, err := svc.Create(ctx, validInput(), headers(t, map[string][]byte{"a.txt": []byte("uno")}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, h.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.blobs) != 0 {
		t.Fatalf("expected blobs removed, got %d", len(store.blobs))
	}
	if err := svc.Delete(ctx, h.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListByPetUnknownPet(t *testing.T) {
	svc := newTestService(newTestRepo(), newMemStore())
	if _, err := svc.ListByPet(context.Background(), 42); !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("expected ErrPetNotFound, got %v", err)
	}
}
