package petnotes

import (
	"net/http"
	"time"

	"vet-clinic-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pet-notes", func(nr chi.Router) {
		nr.Get("/", listNotesHandler(svc))
		nr.Post("/", createNoteHandler(svc))
		nr.Get("/{id}", getNoteHandler(svc))
		nr.Put("/{id}", updateNoteHandler(svc))
		nr.Delete("/{id}", deleteNoteHandler(svc))
	})

	r.Get("/pets/{petID}/notes", listPetNotesHandler(svc))
	r.Delete("/pets/{petID}/notes", deletePetNotesHandler(svc))
}

type noteResponse struct {
	ID          uint64    `json:"id"`
	PetID       uint64    `json:"pet_id"`
	PetName     string    `json:"petName"`
	Description string    `json:"noteDescription"`
	Date        string    `json:"noteDate"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(n Note) noteResponse {
	return noteResponse{
		ID:          n.ID,
		PetID:       n.PetID,
		PetName:     n.PetName,
		Description: n.Description,
		Date:        n.Date.Format(dateLayout),
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func toResponses(items []Note) []noteResponse {
	return lo.Map(items, func(n Note, _ int) noteResponse { return toResponse(n) })
}

func listNotesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", toResponses(items))
	}
}

func listPetNotesHandler(svc *Service) http.HandlerFunc {
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

func getNoteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		n, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", toResponse(n))
	}
}

func createNoteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CreateInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.Error(w, r, err)
			return
		}
		n, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.Created(w, "Nota de mascota registrada correctamente.", toResponse(n))
	}
}

func updateNoteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		var in UpdateInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.Error(w, r, err)
			return
		}
		n, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Nota de mascota actualizada correctamente.", toResponse(n))
	}
}

func deleteNoteHandler(svc *Service) http.HandlerFunc {
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
		httpx.OK(w, "Nota de mascota eliminada correctamente.", nil)
	}
}

func deletePetNotesHandler(svc *Service) http.HandlerFunc {
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
		httpx.OK(w, "Todos los historiales de notas eliminados con éxito", nil)
	}
}
