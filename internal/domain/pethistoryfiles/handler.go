package pethistoryfiles

import (
	"net/http"

	"vet-clinic-api/internal/domain/pethistories"
	"vet-clinic-api/internal/platform/httpx"
	"vet-clinic-api/internal/platform/upload"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pet-histories/{historyID}/files", listFilesHandler(svc))
	r.Post("/pet-histories/{historyID}/files", uploadFileHandler(svc))
	r.Delete("/pet-history-files/{id}", deleteFileHandler(svc))
}

func listFilesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		historyID, err := httpx.IDParam(r, "historyID")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		items, err := svc.List(r.Context(), historyID)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", lo.Map(items, func(f pethistories.File, _ int) pethistories.FileResponse {
			return pethistories.ToFileResponse(f)
		}))
	}
}

// uploadFileHandler godoc
// @Summary Adjuntar archivo a una historia clínica
// @Tags pet-histories
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param historyID path int true "ID de la historia"
// @Param file formData file true "Archivo de hasta 2048 KB"
// @Success 201 {object} httpx.Envelope
// @Failure 404 {object} httpx.Envelope
// @Failure 422 {object} httpx.Envelope
// @Router /pet-histories/{historyID}/files [post]
func uploadFileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		historyID, err := httpx.IDParam(r, "historyID")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		f, err := upload.Single(r, "file", upload.AnyFile)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		rec, err := svc.Upload(r.Context(), historyID, f)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.Created(w, "Archivo subido con éxito", pethistories.ToFileResponse(rec))
	}
}

func deleteFileHandler(svc *Service) http.HandlerFunc {
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
		httpx.OK(w, "Archivo eliminado con éxito", nil)
	}
}
