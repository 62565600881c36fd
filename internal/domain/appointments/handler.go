package appointments

import (
	"net/http"
	"time"

	"vet-clinic-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Post("/", createAppointmentHandler(svc))
		ar.Get("/{id}", getAppointmentHandler(svc))
		ar.Put("/{id}", updateAppointmentHandler(svc))
		ar.Delete("/{id}", deleteAppointmentHandler(svc))

		ar.Post("/{id}/alerts/email", emailAlertHandler(svc))
		ar.Post("/{id}/alerts/whatsapp", whatsAppAlertHandler(svc))
	})
}

type appointmentResponse struct {
	ID                uint64    `json:"id"`
	PetID             uint64    `json:"pet_id"`
	PetName           string    `json:"petName"`
	ClientID          uint64    `json:"client_id"`
	Owner             string    `json:"owner"`
	Date              string    `json:"appointmentDate"`
	Reason            string    `json:"reason"`
	Status            Status    `json:"status"`
	EmailAlertSent    bool      `json:"emailAlertSent"`
	WhatsAppAlertSent bool      `json:"whatsappAlertSent"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:                a.ID,
		PetID:             a.PetID,
		PetName:           a.PetName,
		ClientID:          a.ClientID,
		Owner:             a.Owner,
		Date:              a.Date.Format(DateTimeLayout),
		Reason:            a.Reason,
		Status:            a.Status,
		EmailAlertSent:    a.EmailAlertSent,
		WhatsAppAlertSent: a.WhatsAppAlertSent,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", lo.Map(items, func(a Appointment, _ int) appointmentResponse { return toResponse(a) }))
	}
}

func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		a, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", toResponse(a))
	}
}

func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CreateInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.Error(w, r, err)
			return
		}
		a, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.Created(w, "Cita creada con éxito", toResponse(a))
	}
}

func updateAppointmentHandler(svc *Service) http.HandlerFunc {
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
		a, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Cita actualizada con éxito", toResponse(a))
	}
}

func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
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
		httpx.OK(w, "Cita eliminada con éxito", nil)
	}
}

// emailAlertHandler godoc
// @Summary Enviar recordatorio por correo
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la cita"
// @Success 200 {object} httpx.Envelope
// @Failure 400 {object} httpx.Envelope "canal deshabilitado o cliente sin correo"
// @Failure 404 {object} httpx.Envelope
// @Router /appointments/{id}/alerts/email [post]
func emailAlertHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		a, err := svc.SendEmailAlert(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Alerta por correo enviada con éxito", toResponse(a))
	}
}

func whatsAppAlertHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		a, err := svc.SendWhatsAppAlert(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Alerta por WhatsApp enviada con éxito", toResponse(a))
	}
}
