package companies

import (
	"net/http"
	"time"

	"vet-clinic-api/internal/platform/httpx"
	"vet-clinic-api/internal/platform/upload"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/companies", func(cr chi.Router) {
		cr.Get("/", listCompaniesHandler(svc))
		cr.Post("/", createCompanyHandler(svc))
		cr.Get("/{id}", getCompanyHandler(svc))
		cr.Put("/{id}", updateCompanyHandler(svc))
		cr.Delete("/{id}", deleteCompanyHandler(svc))
		cr.Post("/{id}/upload", uploadCompanyLogoHandler(svc))
	})
}

type companyResponse struct {
	ID        uint64    `json:"id"`
	Doc       string    `json:"companyDoc"`
	Name      string    `json:"companyName"`
	Address   string    `json:"companyAddress"`
	Phone     string    `json:"companyPhone"`
	Email     string    `json:"companyEmail"`
	Photo     string    `json:"companyPhoto"`
	Currency  string    `json:"companyCurrency"`
	Tax       float64   `json:"companyTax"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResponse(c Company) companyResponse {
	return companyResponse{
		ID:        c.ID,
		Doc:       c.Doc,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Photo:     c.Photo,
		Currency:  c.Currency,
		Tax:       c.Tax,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func listCompaniesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", lo.Map(items, func(c Company, _ int) companyResponse { return toResponse(c) }))
	}
}

func getCompanyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		c, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", toResponse(c))
	}
}

func createCompanyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.Error(w, r, err)
			return
		}
		c, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.Created(w, "Empresa registrada correctamente.", toResponse(c))
	}
}

func updateCompanyHandler(svc *Service) http.HandlerFunc {
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
		c, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Empresa actualizada correctamente.", toResponse(c))
	}
}

func uploadCompanyLogoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		f, err := upload.Single(r, "companyPhoto", upload.Image)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		url, err := svc.UploadLogo(r.Context(), id, f)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Logo de la empresa actualizado con éxito", map[string]string{"companyPhoto": url})
	}
}

func deleteCompanyHandler(svc *Service) http.HandlerFunc {
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
		httpx.OK(w, "Empresa eliminada correctamente.", nil)
	}
}
