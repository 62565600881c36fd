package suppliers

import (
	"net/http"
	"time"

	"vet-clinic-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/suppliers", func(sr chi.Router) {
		sr.Get("/", listSuppliersHandler(svc))
		sr.Post("/", createSupplierHandler(svc))
		sr.Get("/{id}", getSupplierHandler(svc))
		sr.Put("/{id}", updateSupplierHandler(svc))
		sr.Delete("/{id}", deleteSupplierHandler(svc))
	})
}

type supplierResponse struct {
	ID        uint64    `json:"id"`
	Doc       string    `json:"supplierDoc"`
	Name      string    `json:"supplierName"`
	Phone     string    `json:"supplierPhone"`
	Email     string    `json:"supplierEmail"`
	Address   string    `json:"supplierAddress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResponse(s Supplier) supplierResponse {
	return supplierResponse{
		ID:        s.ID,
		Doc:       s.Doc,
		Name:      s.Name,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func listSuppliersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", lo.Map(items, func(s Supplier, _ int) supplierResponse { return toResponse(s) }))
	}
}

func getSupplierHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		s, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", toResponse(s))
	}
}

func createSupplierHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CreateInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.Error(w, r, err)
			return
		}
		s, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.Created(w, "Proveedor registrado correctamente.", toResponse(s))
	}
}

func updateSupplierHandler(svc *Service) http.HandlerFunc {
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
		s, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Proveedor actualizado correctamente.", toResponse(s))
	}
}

func deleteSupplierHandler(svc *Service) http.HandlerFunc {
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
		httpx.OK(w, "Proveedor eliminado correctamente.", nil)
	}
}
