package vaccines

import (
	"net/http"
	"time"

	"vet-clinic-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/vaccines", func(vr chi.Router) {
		vr.Get("/", listVaccinesHandler(svc))
		vr.Post("/", createVaccineHandler(svc))
		vr.Get("/{id}", getVaccineHandler(svc))
		vr.Put("/{id}", updateVaccineHandler(svc))
		vr.Delete("/{id}", deleteVaccineHandler(svc))
	})
}

type vaccineResponse struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"vaccineName"`
	SpeciesID  uint64    `json:"species_id"`
	SpecieName string    `json:"specieName"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toResponse(v Vaccine) vaccineResponse {
	return vaccineResponse{
		ID:         v.ID,
		Name:       v.Name,
		SpeciesID:  v.SpeciesID,
		SpecieName: v.SpecieName,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func listVaccinesHandler(svc *Service) http.HandlerFunc {
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
		httpx.OK(w, "", lo.Map(items, func(v Vaccine, _ int) vaccineResponse { return toResponse(v) }))
	}
}

func getVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		v, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", toResponse(v))
	}
}

func createVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.Error(w, r, err)
			return
		}
		v, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.Created(w, "Vacuna creada con éxito", toResponse(v))
	}
}

func updateVaccineHandler(svc *Service) http.HandlerFunc {
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
		v, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Vacuna actualizada con éxito", toResponse(v))
	}
}

func deleteVaccineHandler(svc *Service) http.HandlerFunc {
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
		httpx.OK(w, "Vacuna eliminada con éxito", nil)
	}
}
