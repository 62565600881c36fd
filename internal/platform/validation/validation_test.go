package validation

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeLookup struct {
	rows map[string][]fakeRow // table -> filas
	err  error
}

type fakeRow struct {
	id     uint64
	values map[string]any
}

func (f *fakeLookup) Exists(ctx context.Context, table, column string, value any, ignoreID uint64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, r := range f.rows[table] {
		if ignoreID != 0 && r.id == ignoreID {
			continue
		}
		if column == "id" {
			if v, ok := value.(uint64); ok && v == r.id {
				return true, nil
			}
			continue
		}
		if r.values[column] == value {
			return true, nil
		}
	}
	return false, nil
}

type clientInput struct {
	Doc   string `json:"clientDoc" validate:"required,max=20,unique=clients.client_doc"`
	Name  string `json:"clientName" validate:"required,max=5"`
	Email string `json:"clientEmail" validate:"omitempty,email,unique=clients.client_email"`
}

type petInput struct {
	Name      string `json:"petName" validate:"required"`
	BirthDate string `json:"petBirthDate" validate:"required,date"`
	SpeciesID uint64 `json:"species_id" validate:"required,exists=species"`
}

type registerInput struct {
	Password     string `json:"password" validate:"required,min=8"`
	Confirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

func newLookup() *fakeLookup {
	return &fakeLookup{rows: map[string][]fakeRow{
		"clients": {
			{id: 5, values: map[string]any{"client_doc": "111", "client_email": "ana@mail.com"}},
			{id: 6, values: map[string]any{"client_doc": "222", "client_email": "luis@mail.com"}},
		},
		"species": {{id: 2}},
	}}
}

func TestStruct_AggregatesAllFields(t *testing.T) {
	v := New(newLookup())

	err := v.Struct(context.Background(), clientInput{Doc: "", Name: "demasiado largo", Email: "no-es-email"})

	var verrs Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected Errors, got %v", err)
	}
	for _, f := range []string{"clientDoc", "clientName", "clientEmail"} {
		if len(verrs[f]) == 0 {
			t.Fatalf("expected error for %s, got %v", f, verrs)
		}
	}
	if got := verrs["clientDoc"][0]; got != "El campo clientDoc es obligatorio." {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestStruct_UniqueIgnoresCurrentRow(t *testing.T) {
	v := New(newLookup())
	in := clientInput{Doc: "111", Name: "Ana", Email: "ana@mail.com"}

	// Creando: duplicado.
	err := v.Struct(context.Background(), in)
	var verrs Errors
	if !errors.As(err, &verrs) || len(verrs["clientDoc"]) == 0 || len(verrs["clientEmail"]) == 0 {
		t.Fatalf("expected unique errors on create, got %v", err)
	}

	// Actualizando la misma fila: no hay conflicto.
	if err := v.Struct(WithIgnoreID(context.Background(), 5), in); err != nil {
		t.Fatalf("expected no error updating own row, got %v", err)
	}

	// Actualizando otra fila con el email de la 5: conflicto.
	err = v.Struct(WithIgnoreID(context.Background(), 6), clientInput{Doc: "222", Name: "Luis", Email: "ana@mail.com"})
	if !errors.As(err, &verrs) || len(verrs["clientEmail"]) == 0 {
		t.Fatalf("expected email conflict, got %v", err)
	}
	if _, ok := verrs["clientDoc"]; ok {
		t.Fatalf("did not expect clientDoc error: %v", verrs)
	}
}

func TestStruct_ExistsAndDate(t *testing.T) {
	v := New(newLookup())

	if err := v.Struct(context.Background(), petInput{Name: "Milo", BirthDate: "2020-01-02", SpeciesID: 2}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	err := v.Struct(context.Background(), petInput{Name: "Milo", BirthDate: "02/01/2020", SpeciesID: 9},
		Messages{"species_id.exists": "La especie no está registrada."})
	var verrs Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected Errors, got %v", err)
	}
	if got := verrs["species_id"]; len(got) != 1 || got[0] != "La especie no está registrada." {
		t.Fatalf("unexpected species_id errors: %v", got)
	}
	if len(verrs["petBirthDate"]) == 0 {
		t.Fatalf("expected petBirthDate error, got %v", verrs)
	}
}

func TestStruct_LookupFailureIsNotAFieldError(t *testing.T) {
	boom := errors.New("db down")
	v := New(&fakeLookup{err: boom})

	err := v.Struct(context.Background(), petInput{Name: "Milo", BirthDate: "2020-01-02", SpeciesID: 2})
	if !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestStruct_Confirmation(t *testing.T) {
	v := New(nil)

	err := v.Struct(context.Background(), registerInput{Password: "secreto123", Confirmation: "otro"})
	var verrs Errors
	if !errors.As(err, &verrs) || len(verrs["password_confirmation"]) == 0 {
		t.Fatalf("expected confirmation error, got %v", err)
	}

	if err := v.Struct(context.Background(), registerInput{Password: "secreto123", Confirmation: "secreto123"}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestStruct_PendingTypeErrorsJoinRuleErrors(t *testing.T) {
	v := New(newLookup())
	ctx := WithPending(context.Background())

	typeMsg := TypeMessage("species_id", reflect.Uint64)
	if !Defer(ctx, Field("species_id", typeMsg)) {
		t.Fatalf("expected Defer to keep the error")
	}

	err := v.Struct(ctx, petInput{BirthDate: "2020-01-02"})
	var verrs Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected Errors, got %v", err)
	}
	if len(verrs["petName"]) == 0 {
		t.Fatalf("expected petName error, got %v", verrs)
	}
	// el required de species_id no se suma al de tipo
	if got := verrs["species_id"]; len(got) != 1 || got[0] != typeMsg {
		t.Fatalf("unexpected species_id errors: %v", got)
	}

	// los pendientes se consumen en la primera pasada
	if err := v.Struct(ctx, petInput{Name: "Milo", BirthDate: "2020-01-02", SpeciesID: 2}); err != nil {
		t.Fatalf("expected valid on second pass, got %v", err)
	}
}

func TestDefer_WithoutPendingContext(t *testing.T) {
	if Defer(context.Background(), Field("pet_id", "x")) {
		t.Fatalf("expected Defer to refuse a plain context")
	}
}

func TestParseClock(t *testing.T) {
	cases := map[string]string{"09:30": "09:30:00", "23:59:59": "23:59:59"}
	for in, want := range cases {
		got, err := ParseClock(in)
		if err != nil || got != want {
			t.Fatalf("ParseClock(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseClock("25:00"); err == nil {
		t.Fatalf("expected error for 25:00")
	}
}

func TestSanitize(t *testing.T) {
	got := Sanitize(`  <b>Vómitos</b> & fiebre<script>alert(1)</script> `)
	if got != "Vómitos & fiebre" {
		t.Fatalf("unexpected sanitize output: %q", got)
	}
}
