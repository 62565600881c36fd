package router

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "vet-clinic-api/docs"
	"vet-clinic-api/internal/adapters/auth/jwtauth"
	"vet-clinic-api/internal/adapters/files/local"
	"vet-clinic-api/internal/adapters/storage/gormstore"
	"vet-clinic-api/internal/adapters/storage/sqlite"
	"vet-clinic-api/internal/domain/appointments"
	authdomain "vet-clinic-api/internal/domain/auth"
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
	"vet-clinic-api/internal/middleware"
	"vet-clinic-api/internal/platform/logger"
	"vet-clinic-api/internal/platform/metrics"
	"vet-clinic-api/internal/platform/validation"
	"vet-clinic-api/internal/ports/auth"
	"vet-clinic-api/internal/ports/files"
	"vet-clinic-api/internal/ports/notify"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	httpSwagger "github.com/swaggo/http-swagger"
	"gorm.io/gorm"
)

type Options struct {
	Logger *slog.Logger

	// Opcional: si no viene se abre SQLite en memoria y se migra.
	DB *gorm.DB

	// Opcional: si no viene se usa JWT con secreto aleatorio y revocados en memoria.
	Tokens auth.TokenManager

	// Opcional: si no viene, filesystem en memoria publicado en /storage.
	Files files.Store

	// Canales de recordatorio. nil = deshabilitado.
	Email    notify.Sender
	WhatsApp notify.Sender

	Metrics *metrics.Metrics
}

// NewRouter arma dependencias y rutas. Salud, métricas, swagger, archivos
// públicos y /auth quedan fuera del grupo autenticado.
func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	db := opts.DB
	if db == nil {
		opened, err := sqlite.OpenMemory(log)
		if err != nil {
			return nil, err
		}
		if err := gormstore.Migrate(context.Background(), opened); err != nil {
			return nil, err
		}
		db = opened
	}

	tokens := opts.Tokens
	if tokens == nil {
		m, err := jwtauth.NewManager(jwtauth.Options{
			Secret:     uuid.NewString() + uuid.NewString(),
			Issuer:     "vet-clinic-api",
			TTL:        time.Hour,
			RefreshTTL: 14 * 24 * time.Hour,
		})
		if err != nil {
			return nil, fmt.Errorf("token manager: %w", err)
		}
		tokens = m
	}

	store := opts.Files
	if store == nil {
		store = local.New(afero.NewMemMapFs(), "/storage")
	}

	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover)
	r.Use(m.Middleware)

	r.Use(middleware.AuthContext(tokens))
	r.Use(middleware.FieldErrors)

	gs := gormstore.New(db)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := gs.Ping(r.Context()); err != nil {
			logger.FromContext(r.Context()).Error("health check failed", "err", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if ls, ok := store.(*local.Store); ok && ls.Prefix() != "" {
		r.Handle(ls.Prefix()+"/*", ls.Handler())
	}

	v := validation.New(gs)
	blobs := m.InstrumentStore(store)

	// Services por módulo
	usersSvc := users.NewService(gormstore.NewUsersRepo(db), v, blobs)
	authSvc := authdomain.NewService(usersSvc, tokens, v)
	clientsSvc := clients.NewService(gormstore.NewClientsRepo(db), v, blobs)
	suppliersSvc := suppliers.NewService(gormstore.NewSuppliersRepo(db), v)
	speciesSvc := species.NewService(gormstore.NewSpeciesRepo(db), v)
	breedsSvc := breeds.NewService(gormstore.NewBreedsRepo(db), v)
	vaccinesSvc := vaccines.NewService(gormstore.NewVaccinesRepo(db), v)
	petsSvc := pets.NewService(gormstore.NewPetsRepo(db), v, blobs)
	notesSvc := petnotes.NewService(gormstore.NewPetNotesRepo(db), v)
	companiesSvc := companies.NewService(gormstore.NewCompaniesRepo(db), v, blobs)
	appointmentsSvc := appointments.NewService(gormstore.NewAppointmentsRepo(db), v, petsSvc, opts.Email, opts.WhatsApp)
	vaccineHistSvc := vaccinehistories.NewService(gormstore.NewVaccineHistoriesRepo(db), v)
	historiesSvc := pethistories.NewService(gormstore.NewPetHistoriesRepo(db), v, blobs)
	historyFilesSvc := pethistoryfiles.NewService(gormstore.NewPetHistoryFilesRepo(db), blobs)

	// Rutas por módulo
	authdomain.RegisterRoutes(r, authSvc)

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		users.RegisterRoutes(pr, usersSvc)
		clients.RegisterRoutes(pr, clientsSvc)
		suppliers.RegisterRoutes(pr, suppliersSvc)
		species.RegisterRoutes(pr, speciesSvc)
		breeds.RegisterRoutes(pr, breedsSvc)
		vaccines.RegisterRoutes(pr, vaccinesSvc)
		pets.RegisterRoutes(pr, petsSvc)
		petnotes.RegisterRoutes(pr, notesSvc)
		companies.RegisterRoutes(pr, companiesSvc)
		appointments.RegisterRoutes(pr, appointmentsSvc)
		vaccinehistories.RegisterRoutes(pr, vaccineHistSvc)
		pethistories.RegisterRoutes(pr, historiesSvc)
		pethistoryfiles.RegisterRoutes(pr, historyFilesSvc)
	})

	return r, nil
}
