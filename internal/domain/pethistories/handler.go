package pethistories

import (
	"mime"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"vet-clinic-api/internal/middleware"
	"vet-clinic-api/internal/platform/httpx"
	"vet-clinic-api/internal/platform/upload"
	"vet-clinic-api/internal/platform/validation"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pet-histories", func(hr chi.Router) {
		hr.Get("/", listHistoriesHandler(svc))
		hr.Post("/", createHistoryHandler(svc))
		hr.Get("/{id}", getHistoryHandler(svc))
		hr.Put("/{id}", updateHistoryHandler(svc))
		hr.Delete("/{id}", deleteHistoryHandler(svc))
	})
	r.Get("/pets/{petID}/histories", listPetHistoriesHandler(svc))
}

type FileResponse struct {
	ID        uint64    `json:"id"`
	HistoryID uint64    `json:"pet_history_id"`
	Path      string    `json:"file_path"`
	Type      string    `json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
}

type historyResponse struct {
	ID        uint64         `json:"id"`
	Code      string         `json:"history_code"`
	Date      string         `json:"history_date"`
	Time      string         `json:"history_time"`
	Reason    string         `json:"history_reason"`
	Symptoms  string         `json:"history_symptoms"`
	Diagnosis string         `json:"history_diagnosis"`
	Treatment string         `json:"history_treatment"`
	UserID    uint64         `json:"user_id"`
	UserName  string         `json:"userName"`
	PetID     uint64         `json:"pet_id"`
	PetName   string         `json:"petName"`
	Files     []FileResponse `json:"files"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ToFileResponse lo comparte el recurso de archivos sueltos.
func ToFileResponse(f File) FileResponse {
	return FileResponse{
		ID:        f.ID,
		HistoryID: f.HistoryID,
		Path:      f.Path,
		Type:      f.Type,
		CreatedAt: f.CreatedAt,
	}
}

func toResponse(h History) historyResponse {
	return historyResponse{
		ID:        h.ID,
		Code:      h.Code,
		Date:      h.Date.Format("2006-01-02"),
		Time:      h.Time,
		Reason:    h.Reason,
		Symptoms:  h.Symptoms,
		Diagnosis: h.Diagnosis,
		Treatment: h.Treatment,
		UserID:    h.UserID,
		UserName:  h.UserName,
		PetID:     h.PetID,
		PetName:   h.PetName,
		Files:     lo.Map(h.Files, func(f File, _ int) FileResponse { return ToFileResponse(f) }),
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

func toResponses(items []History) []historyResponse {
	return lo.Map(items, func(h History, _ int) historyResponse { return toResponse(h) })
}

func listHistoriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", toResponses(items))
	}
}

func listPetHistoriesHandler(svc *Service) http.HandlerFunc {
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

func getHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		h, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", toResponse(h))
	}
}

// createHistoryHandler godoc
// @Summary Crear historia clínica
// @Description Acepta JSON o multipart/form-data. En multipart los adjuntos van en files o files[] (2048 KB cada uno). history_code se genera como HM-00001, HM-00002, ...
// @Tags pet-histories
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param payload body Input true "Datos de la historia; user_id por defecto es el usuario autenticado"
// @Success 201 {object} httpx.Envelope
// @Failure 422 {object} httpx.Envelope
// @Router /pet-histories [post]
func createHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, attachments, err := decodeInput(r)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		h, err := svc.Create(r.Context(), in, attachments)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.Created(w, "Historia clínica creada con éxito", toResponse(h))
	}
}

func updateHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		in, attachments, err := decodeInput(r)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		h, err := svc.Update(r.Context(), id, in, attachments)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Historia clínica actualizada con éxito", toResponse(h))
	}
}

func deleteHistoryHandler(svc *Service) http.HandlerFunc {
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
		httpx.OK(w, "Historia clínica y archivos asociados eliminados con éxito", nil)
	}
}

// decodeInput lee JSON o multipart. Si no viene user_id se usa el usuario
// autenticado.
func decodeInput(r *http.Request) (Input, []*multipart.FileHeader, error) {
	var (
		in          Input
		attachments []*multipart.FileHeader
	)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		if err := upload.ParseForm(r); err != nil {
			return Input{}, nil, err
		}
		var err error
		if in, err = formInput(r); err != nil {
			return Input{}, nil, err
		}
		attachments = upload.Headers(r, "files")
	} else if err := httpx.DecodeJSON(r, &in); err != nil {
		return Input{}, nil, err
	}

	if in.UserID == 0 {
		if c, ok := middleware.GetClaims(r.Context()); ok {
			in.UserID = c.UserID
		}
	}
	return in, attachments, nil
}

func formInput(r *http.Request) (Input, error) {
	in := Input{
		Date:      r.FormValue("history_date"),
		Time:      r.FormValue("history_time"),
		Reason:    r.FormValue("history_reason"),
		Symptoms:  r.FormValue("history_symptoms"),
		Diagnosis: r.FormValue("history_diagnosis"),
		Treatment: r.FormValue("history_treatment"),
	}

	verrs := validation.Errors{}
	for field, dst := range map[string]*uint64{"user_id": &in.UserID, "pet_id": &in.PetID} {
		raw := strings.TrimSpace(r.FormValue(field))
		if raw == "" {
			continue
		}
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			verrs.Add(field, validation.TypeMessage(field, reflect.Uint64))
			continue
		}
		*dst = n
	}
	if len(verrs) > 0 && !validation.Defer(r.Context(), verrs) {
		return Input{}, verrs
	}
	return in, nil
}
