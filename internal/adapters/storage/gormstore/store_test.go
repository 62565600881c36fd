package gormstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-clinic-api/internal/adapters/storage/gormstore"
	"vet-clinic-api/internal/adapters/storage/sqlite"
	"vet-clinic-api/internal/domain/appointments"
	"vet-clinic-api/internal/domain/breeds"
	"vet-clinic-api/internal/domain/clients"
	"vet-clinic-api/internal/domain/pethistories"
	"vet-clinic-api/internal/domain/petnotes"
	"vet-clinic-api/internal/domain/pets"
	"vet-clinic-api/internal/domain/species"
	"vet-clinic-api/internal/domain/users"
	"vet-clinic-api/internal/domain/vaccinehistories"
	"vet-clinic-api/internal/domain/vaccines"
	"vet-clinic-api/internal/platform/apperr"

	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.OpenMemory(nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gormstore.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type fixture struct {
	specie species.Specie
	breed  breeds.Breed
	client clients.Client
	pet    pets.Pet
	user   users.User
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	f := fixture{
		specie: species.Specie{Name: "Perro", CreatedAt: now, UpdatedAt: now},
		client: clients.Client{Doc: "40404040", Name: "Rosa Díaz", Email: "rosa@correo.test", CreatedAt: now, UpdatedAt: now},
		user:   users.User{Name: "Ana", Email: "ana@vet.test", PasswordHash: "x", Status: users.StatusActive, Privilege: users.PrivilegeUser, CreatedAt: now, UpdatedAt: now},
	}
	if err := gormstore.NewSpeciesRepo(db).Create(ctx, &f.specie); err != nil {
		t.Fatalf("create specie: %v", err)
	}
	f.breed = breeds.Breed{Name: "Mestizo", SpeciesID: f.specie.ID, CreatedAt: now, UpdatedAt: now}
	if err := gormstore.NewBreedsRepo(db).Create(ctx, &f.breed); err != nil {
		t.Fatalf("create breed: %v", err)
	}
	if err := gormstore.NewClientsRepo(db).Create(ctx, &f.client); err != nil {
		t.Fatalf("create client: %v", err)
	}
	if err := gormstore.NewUsersRepo(db).Create(ctx, &f.user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	f.pet = pets.Pet{
		Code:      "P-0001",
		Name:      "Milo",
		BirthDate: time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC),
		SpeciesID: f.specie.ID,
		BreedID:   f.breed.ID,
		ClientID:  f.client.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := gormstore.NewPetsRepo(db).Create(ctx, &f.pet); err != nil {
		t.Fatalf("create pet: %v", err)
	}
	return f
}

func TestDuplicateKeyIsTranslated(t *testing.T) {
	db := openDB(t)
	repo := gormstore.NewSpeciesRepo(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &species.Specie{Name: "Gato"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, &species.Specie{Name: "Gato"})
	if !errors.Is(err, apperr.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	var dup *apperr.DuplicateError
	if !errors.As(err, &dup) || dup.Table != "species" || dup.Column != "specie_name" {
		t.Fatalf("expected species.specie_name duplicate, got %#v", err)
	}
}

func TestDeleteRulesFollowForeignKeys(t *testing.T) {
	db := openDB(t)
	f := seed(t, db)
	ctx := context.Background()

	// especie y raza con mascotas: RESTRICT
	err := gormstore.NewSpeciesRepo(db).Delete(ctx, f.specie.ID)
	if !errors.Is(err, apperr.ErrForeignKey) {
		t.Fatalf("expected ErrForeignKey deleting specie in use, got %v", err)
	}
	err = gormstore.NewBreedsRepo(db).Delete(ctx, f.breed.ID)
	if !errors.Is(err, apperr.ErrForeignKey) {
		t.Fatalf("expected ErrForeignKey deleting breed in use, got %v", err)
	}
	if _, err := gormstore.NewBreedsRepo(db).GetByID(ctx, f.breed.ID); err != nil {
		t.Fatalf("breed should survive the refused delete: %v", err)
	}

	// cliente: CASCADE sobre sus mascotas
	if err := gormstore.NewClientsRepo(db).Delete(ctx, f.client.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}
	if _, err := gormstore.NewPetsRepo(db).GetByID(ctx, f.pet.ID); !errors.Is(err, apperr.ErrRecordNotFound) {
		t.Fatalf("expected pet removed by cascade, got %v", err)
	}

	if err := gormstore.NewClientsRepo(db).Delete(ctx, f.client.ID); !errors.Is(err, apperr.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound on second delete, got %v", err)
	}
}

func TestPetProjection(t *testing.T) {
	db := openDB(t)
	f := seed(t, db)

	p, err := gormstore.NewPetsRepo(db).GetByID(context.Background(), f.pet.ID)
	if err != nil {
		t.Fatalf("get pet: %v", err)
	}
	if p.SpecieName != "Perro" || p.BreedName != "Mestizo" || p.ClientName != "Rosa Díaz" || p.ClientDoc != "40404040" {
		t.Fatalf("unexpected projection %+v", p)
	}
	if got := p.BirthDate.Format(pets.DateLayout); got != "2022-03-15" {
		t.Fatalf("expected birth date 2022-03-15, got %s", got)
	}
}

func TestLastCodeComparesByLength(t *testing.T) {
	db := openDB(t)
	f := seed(t, db)
	repo := gormstore.NewPetHistoriesRepo(db)
	ctx := context.Background()

	if last, err := repo.LastCode(ctx); err != nil || last != "" {
		t.Fatalf("expected empty last code, got %q err=%v", last, err)
	}

	for _, code := range []string{"HM-99999", "HM-100000", "HM-00007"} {
		h := pethistories.History{
			Code:      code,
			Date:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			Time:      "09:00:00",
			Reason:    "Control",
			Symptoms:  "-",
			Diagnosis: "-",
			Treatment: "-",
			UserID:    f.user.ID,
			PetID:     f.pet.ID,
		}
		if err := repo.Create(ctx, &h); err != nil {
			t.Fatalf("create %s: %v", code, err)
		}
	}

	last, err := repo.LastCode(ctx)
	if err != nil {
		t.Fatalf("last code: %v", err)
	}
	if last != "HM-100000" {
		t.Fatalf("expected HM-100000, got %s", last)
	}
}

func TestHistoryTransactionRollsBack(t *testing.T) {
	db := openDB(t)
	f := seed(t, db)
	repo := gormstore.NewPetHistoriesRepo(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx pethistories.Repository) error {
		h := pethistories.History{
			Code:   "HM-00001",
			Date:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			Time:   "09:00:00",
			Reason: "Control",
			UserID: f.user.ID,
			PetID:  f.pet.ID,
		}
		if err := tx.Create(ctx, &h); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected rollback, found %d histories", len(items))
	}
}

func TestExistsHonoursIgnoreID(t *testing.T) {
	db := openDB(t)
	f := seed(t, db)
	store := gormstore.New(db)
	ctx := context.Background()

	ok, err := store.Exists(ctx, "clients", "client_email", "rosa@correo.test", 0)
	if err != nil || !ok {
		t.Fatalf("expected email to exist, ok=%v err=%v", ok, err)
	}
	ok, err = store.Exists(ctx, "clients", "client_email", "rosa@correo.test", f.client.ID)
	if err != nil || ok {
		t.Fatalf("expected own row ignored, ok=%v err=%v", ok, err)
	}
}

func TestSpecieWithVaccinesCannotBeDeleted(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	sp := species.Specie{Name: "Gato"}
	if err := gormstore.NewSpeciesRepo(db).Create(ctx, &sp); err != nil {
		t.Fatalf("create specie: %v", err)
	}
	vac := vaccines.Vaccine{Name: "Triple felina", SpeciesID: sp.ID}
	if err := gormstore.NewVaccinesRepo(db).Create(ctx, &vac); err != nil {
		t.Fatalf("create vaccine: %v", err)
	}

	err := gormstore.NewSpeciesRepo(db).Delete(ctx, sp.ID)
	if !errors.Is(err, apperr.ErrForeignKey) {
		t.Fatalf("expected ErrForeignKey, got %v", err)
	}
}

// Las lecturas con join deben traer las columnas propias además de las
// proyectadas.
func TestViewsCarryRowColumns(t *testing.T) {
	db := openDB(t)
	f := seed(t, db)
	ctx := context.Background()
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	t.Run("breed", func(t *testing.T) {
		b, err := gormstore.NewBreedsRepo(db).GetByID(ctx, f.breed.ID)
		if err != nil {
			t.Fatalf("get breed: %v", err)
		}
		if b.ID != f.breed.ID || b.Name != "Mestizo" || b.SpeciesID != f.specie.ID || b.SpecieName != "Perro" {
			t.Fatalf("unexpected breed %+v", b)
		}
		list, err := gormstore.NewBreedsRepo(db).List(ctx, 0)
		if err != nil || len(list) != 1 || list[0].ID != f.breed.ID {
			t.Fatalf("unexpected breeds %+v err=%v", list, err)
		}
	})

	t.Run("vaccine", func(t *testing.T) {
		repo := gormstore.NewVaccinesRepo(db)
		v := vaccines.Vaccine{Name: "Rabia", SpeciesID: f.specie.ID}
		if err := repo.Create(ctx, &v); err != nil {
			t.Fatalf("create vaccine: %v", err)
		}
		got, err := repo.GetByID(ctx, v.ID)
		if err != nil {
			t.Fatalf("get vaccine: %v", err)
		}
		if got.ID != v.ID || got.Name != "Rabia" || got.SpecieName != "Perro" {
			t.Fatalf("unexpected vaccine %+v", got)
		}

		vh := vaccinehistories.Record{VaccineID: v.ID, PetID: f.pet.ID, Date: day, Product: "Nobivac"}
		hrepo := gormstore.NewVaccineHistoriesRepo(db)
		if err := hrepo.Create(ctx, &vh); err != nil {
			t.Fatalf("create vaccine history: %v", err)
		}
		rec, err := hrepo.GetByID(ctx, vh.ID)
		if err != nil {
			t.Fatalf("get vaccine history: %v", err)
		}
		if rec.ID != vh.ID || rec.Product != "Nobivac" || rec.VaccineName != "Rabia" || rec.PetName != "Milo" {
			t.Fatalf("unexpected vaccine history %+v", rec)
		}
	})

	t.Run("note", func(t *testing.T) {
		repo := gormstore.NewPetNotesRepo(db)
		n := petnotes.Note{PetID: f.pet.ID, Description: "Come poco", Date: day}
		if err := repo.Create(ctx, &n); err != nil {
			t.Fatalf("create note: %v", err)
		}
		got, err := repo.GetByID(ctx, n.ID)
		if err != nil {
			t.Fatalf("get note: %v", err)
		}
		if got.ID != n.ID || got.PetID != f.pet.ID || got.Description != "Come poco" || got.PetName != "Milo" {
			t.Fatalf("unexpected note %+v", got)
		}
	})

	t.Run("appointment", func(t *testing.T) {
		repo := gormstore.NewAppointmentsRepo(db)
		a := appointments.Appointment{
			PetID:    f.pet.ID,
			ClientID: f.client.ID,
			Date:     day.Add(10 * time.Hour),
			Reason:   "Control",
			Status:   appointments.StatusPending,
		}
		if err := repo.Create(ctx, &a); err != nil {
			t.Fatalf("create appointment: %v", err)
		}
		got, err := repo.GetByID(ctx, a.ID)
		if err != nil {
			t.Fatalf("get appointment: %v", err)
		}
		if got.ID != a.ID || got.Reason != "Control" || got.Status != appointments.StatusPending || got.ClientEmail != "rosa@correo.test" {
			t.Fatalf("unexpected appointment %+v", got)
		}
	})

	t.Run("history", func(t *testing.T) {
		repo := gormstore.NewPetHistoriesRepo(db)
		h := pethistories.History{
			Code:      "HM-00001",
			Date:      day,
			Time:      "09:30:00",
			Reason:    "Cojera",
			Symptoms:  "-",
			Diagnosis: "-",
			Treatment: "-",
			UserID:    f.user.ID,
			PetID:     f.pet.ID,
		}
		if err := repo.Create(ctx, &h); err != nil {
			t.Fatalf("create history: %v", err)
		}
		if err := repo.CreateFile(ctx, &pethistories.File{HistoryID: h.ID, Path: "/storage/pet_history_files/a.txt", Type: "txt"}); err != nil {
			t.Fatalf("create file: %v", err)
		}
		got, err := repo.GetByID(ctx, h.ID)
		if err != nil {
			t.Fatalf("get history: %v", err)
		}
		if got.ID != h.ID || got.Code != "HM-00001" || got.PetName != "Milo" || len(got.Files) != 1 {
			t.Fatalf("unexpected history %+v", got)
		}
	})
}

func TestUserFileURLsFollowHistories(t *testing.T) {
	db := openDB(t)
	f := seed(t, db)
	ctx := context.Background()

	hrepo := gormstore.NewPetHistoriesRepo(db)
	h := pethistories.History{
		Code:      "HM-00001",
		Date:      time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		Time:      "10:00:00",
		Reason:    "Control",
		Symptoms:  "-",
		Diagnosis: "-",
		Treatment: "-",
		UserID:    f.user.ID,
		PetID:     f.pet.ID,
	}
	if err := hrepo.Create(ctx, &h); err != nil {
		t.Fatalf("create history: %v", err)
	}
	const url = "/storage/pet_history_files/rx.jpg"
	if err := hrepo.CreateFile(ctx, &pethistories.File{HistoryID: h.ID, Path: url, Type: "jpg"}); err != nil {
		t.Fatalf("create file: %v", err)
	}

	urepo := gormstore.NewUsersRepo(db)
	got, err := urepo.FileURLs(ctx, f.user.ID)
	if err != nil || len(got) != 1 || got[0] != url {
		t.Fatalf("unexpected file urls %v err=%v", got, err)
	}
	if err := urepo.Delete(ctx, f.user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := hrepo.GetByID(ctx, h.ID); !errors.Is(err, apperr.ErrRecordNotFound) {
		t.Fatalf("expected history cascaded with the user, got %v", err)
	}
}
