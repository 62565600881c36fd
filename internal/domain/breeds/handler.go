package breeds

import (
	"net/http"
	"time"

	"vet-clinic-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/breeds", func(br chi.Router) {
		br.Get("/", listBreedsHandler(svc))
		br.Post("/", createBreedHandler(svc))
		br.Get("/{id}", getBreedHandler(svc))
		br.Put("/{id}", updateBreedHandler(svc))
		br.Delete("/{id}", deleteBreedHandler(svc))
	})
}

type breedResponse struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"breedName"`
	SpeciesID  uint64    `json:"species_id"`
	SpecieName string    `json:"specieName"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toResponse(b Breed) breedResponse {
	return breedResponse{
		ID:         b.ID,
		Name:       b.Name,
		SpeciesID:  b.SpeciesID,
		SpecieName: b.SpecieName,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func listBreedsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		speciesID, err := httpx.QueryID(r, "species_id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		items, err := svc.List(r.Context(), speciesID)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", lo.Map(items, func(b Breed, _ int) breedResponse { return toResponse(b) }))
	}
}

func getBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		b, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", toResponse(b))
	}
}

func createBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.Error(w, r, err)
			return
		}
		b, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.Created(w, "Raza creada con éxito", toResponse(b))
	}
}

func updateBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		var in Input
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.Error(w, r, err)
			return
		}
		b, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Raza actualizada con éxito", toResponse(b))
	}
}

func deleteBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Raza eliminada con éxito", nil)
	}
}
