package pets

import (
	"net/http"
	"time"

	"vet-clinic-api/internal/platform/httpx"
	"vet-clinic-api/internal/platform/upload"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))
		pr.Get("/{id}", getPetHandler(svc))
		pr.Put("/{id}", updatePetHandler(svc))
		pr.Delete("/{id}", deletePetHandler(svc))

		pr.Post("/{id}/upload", uploadPetPhotoHandler(svc))
	})
}

type petResponse struct {
	ID          uint64    `json:"id"`
	Code        string    `json:"petCode"`
	Name        string    `json:"petName"`
	BirthDate   string    `json:"petBirthDate"`
	Weight      string    `json:"petWeight"`
	Color       string    `json:"petColor"`
	SpeciesID   uint64    `json:"species_id"`
	SpecieName  string    `json:"specieName"`
	BreedID     uint64    `json:"breeds_id"`
	BreedName   string    `json:"breedName"`
	ClientID    uint64    `json:"clients_id"`
	ClientName  string    `json:"clientName"`
	ClientDoc   string    `json:"clientDoc"`
	Gender      string    `json:"petGender"`
	Photo       string    `json:"petPhoto"`
	ClientPhoto string    `json:"clientPhoto"`
	Additional  string    `json:"petAdditional"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type photoResponse struct {
	Photo string `json:"petPhoto"`
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		BirthDate:   p.BirthDate.Format(DateLayout),
		Weight:      p.Weight,
		Color:       p.Color,
		SpeciesID:   p.SpeciesID,
		SpecieName:  p.SpecieName,
		BreedID:     p.BreedID,
		BreedName:   p.BreedName,
		ClientID:    p.ClientID,
		ClientName:  p.ClientName,
		ClientDoc:   p.ClientDoc,
		Gender:      p.Gender,
		Photo:       p.Photo,
		ClientPhoto: p.ClientPhoto,
		Additional:  p.Additional,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Devuelve las mascotas con especie, raza y dueño resueltos. Filtro opcional por cliente.
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param clients_id query int false "ID del cliente"
// @Success 200 {object} httpx.Envelope
// @Failure 401 {object} httpx.Envelope
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := httpx.QueryID(r, "clients_id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		items, err := svc.List(r.Context(), clientID)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", lo.Map(items, func(p Pet, _ int) petResponse { return toPetResponse(p) }))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", toPetResponse(p))
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Si no se envía petCode se genera uno con el formato PET-XXXXXXXX.
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body CreateInput true "Datos de la mascota; petBirthDate en formato YYYY-MM-DD"
// @Success 201 {object} httpx.Envelope
// @Failure 422 {object} httpx.Envelope "errores de validación por campo"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CreateInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.Error(w, r, err)
			return
		}
		p, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.Created(w, "Mascota creada con éxito", toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
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
		p, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Datos de la mascota actualizados con éxito", toPetResponse(p))
	}
}

// uploadPetPhotoHandler godoc
// @Summary Subir foto de la mascota
// @Description Reemplaza la foto actual. jpeg, png o gif de hasta 2048 KB; el tipo se detecta por contenido.
// @Tags pets
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la mascota"
// @Param petPhoto formData file true "Imagen"
// @Success 200 {object} httpx.Envelope
// @Failure 404 {object} httpx.Envelope
// @Failure 422 {object} httpx.Envelope
// @Router /pets/{id}/upload [post]
func uploadPetPhotoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		f, err := upload.Single(r, "petPhoto", upload.Image)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		url, err := svc.UploadPhoto(r.Context(), id, f)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Imagen de la mascota actualizada con éxito", photoResponse{Photo: url})
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
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
		httpx.OK(w, "Mascota eliminada con éxito", nil)
	}
}
