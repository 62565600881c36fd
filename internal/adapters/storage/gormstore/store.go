// Package gormstore implementa los repositorios de dominio sobre GORM.
// Funciona igual con Postgres y con SQLite; el dialecto lo elige quien abre
// la conexión.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"vet-clinic-api/internal/domain/appointments"
	"vet-clinic-api/internal/domain/breeds"
	"vet-clinic-api/internal/domain/clients"
	"vet-clinic-api/internal/domain/companies"
	"vet-clinic-api/internal/domain/pethistories"
	"vet-clinic-api/internal/domain/pethistoryfiles"
	"vet-clinic-api/internal/domain/petnotes"
	"vet-clinic-api/internal/domain/pets"
	"vet-clinic-api/internal/domain/species"
	"vet-clinic-api/internal/domain/suppliers"
	"vet-clinic-api/internal/domain/users"
	"vet-clinic-api/internal/domain/vaccinehistories"
	"vet-clinic-api/internal/domain/vaccines"
	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/validation"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store expone la conexión compartida y las consultas genéricas que usa la
// capa de validación.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB { return s.db }

// Migrate crea o actualiza todas las tablas con sus índices y foreign keys.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Exists implementa validation.Lookup. table y column ya llegan validados
// como identificadores.
func (s *Store) Exists(ctx context.Context, table, column string, value any, ignoreID uint64) (bool, error) {
	q := s.db.WithContext(ctx).
		Table(table).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	if ignoreID != 0 {
		q = q.Where(clause.Neq{Column: clause.Column{Name: "id"}, Value: ignoreID})
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

// Ping lo usa /health.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

var pgKeyRe = regexp.MustCompile(`Key \(([^)]+)\)`)

// translate lleva los errores del driver a los sentinels de apperr. Un
// duplicado conserva tabla y columna para que el service arme el error de campo.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			column := pgErr.ColumnName
			if m := pgKeyRe.FindStringSubmatch(pgErr.Detail); m != nil {
				column = strings.TrimSpace(strings.Split(m[1], ",")[0])
			}
			return &apperr.DuplicateError{Table: pgErr.TableName, Column: column}
		case "23503":
			return fmt.Errorf("%w: %s", apperr.ErrForeignKey, pgErr.ConstraintName)
		}
		return err
	}

	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		switch sqErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return sqliteDuplicate(sqErr.Error())
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %s", apperr.ErrForeignKey, sqErr.Error())
		}
		// Un ON DELETE RESTRICT llega como SQLITE_CONSTRAINT_TRIGGER (1811).
		if sqErr.Code == sqlite3.ErrConstraint && strings.Contains(sqErr.Error(), "FOREIGN KEY constraint failed") {
			return fmt.Errorf("%w: %s", apperr.ErrForeignKey, sqErr.Error())
		}
		if sqErr.ExtendedCode == sqlite3.ErrConstraintTrigger {
			return fmt.Errorf("%w: %s", apperr.ErrForeignKey, sqErr.Error())
		}
	}
	return err
}

// sqliteDuplicate lee "UNIQUE constraint failed: clients.client_doc".
func sqliteDuplicate(msg string) error {
	_, target, found := strings.Cut(msg, ": ")
	if !found {
		return apperr.ErrDuplicate
	}
	first := strings.TrimSpace(strings.Split(target, ",")[0])
	table, column, ok := strings.Cut(first, ".")
	if !ok {
		return apperr.ErrDuplicate
	}
	return &apperr.DuplicateError{Table: table, Column: column}
}

// deleteByID borra una fila y devuelve ErrRecordNotFound si no existía.
func deleteByID(ctx context.Context, db *gorm.DB, row any, id uint64) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(row)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrRecordNotFound
	}
	return nil
}

// updateRow escribe todas las columnas de row salvo id y created_at, incluso
// las que quedaron en cero.
func updateRow(ctx context.Context, db *gorm.DB, row any) error {
	res := db.WithContext(ctx).
		Model(row).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(row)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrRecordNotFound
	}
	return nil
}

func createRow(ctx context.Context, db *gorm.DB, row any) error {
	return translate(db.WithContext(ctx).Omit(clause.Associations).Create(row).Error)
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// utc normaliza lo que devuelve el driver: Postgres entrega la zona de la
// sesión y SQLite la que se guardó.
func utc(t time.Time) time.Time {
	return t.UTC()
}

// dateOnly guarda las fechas sin hora a medianoche UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var (
	_ validation.Lookup           = (*Store)(nil)
	_ users.Repository            = (*UsersRepo)(nil)
	_ clients.Repository          = (*ClientsRepo)(nil)
	_ suppliers.Repository        = (*SuppliersRepo)(nil)
	_ species.Repository          = (*SpeciesRepo)(nil)
	_ breeds.Repository           = (*BreedsRepo)(nil)
	_ vaccines.Repository         = (*VaccinesRepo)(nil)
	_ pets.Repository             = (*PetsRepo)(nil)
	_ petnotes.Repository         = (*PetNotesRepo)(nil)
	_ companies.Repository        = (*CompaniesRepo)(nil)
	_ appointments.Repository     = (*AppointmentsRepo)(nil)
	_ vaccinehistories.Repository = (*VaccineHistoriesRepo)(nil)
	_ pethistories.Repository     = (*PetHistoriesRepo)(nil)
	_ pethistoryfiles.Repository  = (*PetHistoryFilesRepo)(nil)
)
