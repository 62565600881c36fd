package vaccinehistories

import (
	"net/http"
	"time"

	"vet-clinic-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/vaccine-histories", func(vr chi.Router) {
		vr.Get("/", listRecordsHandler(svc))
		vr.Post("/", createRecordHandler(svc))
		vr.Get("/{id}", getRecordHandler(svc))
		vr.Put("/{id}", updateRecordHandler(svc))
		vr.Delete("/{id}", deleteRecordHandler(svc))
	})

	r.Get("/pets/{petID}/vaccine-histories", listPetRecordsHandler(svc))
	r.Delete("/pets/{petID}/vaccine-histories", deletePetRecordsHandler(svc))
}

type recordResponse struct {
	ID          uint64    `json:"id"`
	VaccineID   uint64    `json:"vaccine_id"`
	VaccineName string    `json:"vaccineName"`
	PetID       uint64    `json:"pet_id"`
	PetName     string    `json:"petName"`
	Date        string    `json:"vaccine_date"`
	Product     string    `json:"product"`
	Observation string    `json:"observation"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(rec Record) recordResponse {
	return recordResponse{
		ID:          rec.ID,
		VaccineID:   rec.VaccineID,
		VaccineName: rec.VaccineName,
		PetID:       rec.PetID,
		PetName:     rec.PetName,
		Date:        rec.Date.Format(dateLayout),
		Product:     rec.Product,
		Observation: rec.Observation,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func toResponses(items []Record) []recordResponse {
	return lo.Map(items, func(rec Record, _ int) recordResponse { return toResponse(rec) })
}

func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", toResponses(items))
	}
}

func listPetRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, err := httpx.IDParam(r, "petID")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", toResponses(items))
	}
}

func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		rec, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", toResponse(rec))
	}
}

func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.Error(w, r, err)
			return
		}
		rec, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.Created(w, "Historial de vacuna creado con éxito", toResponse(rec))
	}
}

func updateRecordHandler(svc *Service) http.HandlerFunc {
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
		rec, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Historial de vacuna actualizado con éxito", toResponse(rec))
	}
}

func deleteRecordHandler(svc *Service) http.HandlerFunc {
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
		httpx.OK(w, "Historial de vacuna eliminado con éxito", nil)
	}
}

func deletePetRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, err := httpx.IDParam(r, "petID")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		if err := svc.DeleteByPet(r.Context(), petID); err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Todos los historiales de vacunas eliminados con éxito", nil)
	}
}
