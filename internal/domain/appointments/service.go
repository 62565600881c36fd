package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/validation"
	"vet-clinic-api/internal/ports/notify"
)

// DateTimeLayout es el formato de appointmentDate en las respuestas.
const DateTimeLayout = "2006-01-02 15:04:05"

var (
	ErrNotFound         = apperr.NotFound("Cita no encontrada")
	ErrEmailDisabled    = apperr.Conflict("El envío de correos no está habilitado.")
	ErrWhatsAppDisabled = apperr.Conflict("El envío por WhatsApp no está habilitado.")
	ErrNoEmail          = apperr.Conflict("El cliente no tiene un correo electrónico válido.")
	ErrNoPhone          = apperr.Conflict("El cliente no tiene un teléfono válido.")
)

// OwnerResolver devuelve el cliente dueño de una mascota.
type OwnerResolver interface {
	OwnerOf(ctx context.Context, petID uint64) (uint64, error)
}

type Service struct {
	repo     Repository
	v        *validation.Validator
	owners   OwnerResolver
	email    notify.Sender
	whatsapp notify.Sender
	now      func() time.Time
}

// NewService acepta senders nil: el canal queda deshabilitado.
func NewService(repo Repository, v *validation.Validator, owners OwnerResolver, email, whatsapp notify.Sender) *Service {
	return &Service{
		repo:     repo,
		v:        v,
		owners:   owners,
		email:    email,
		whatsapp: whatsapp,
		now:      time.Now,
	}
}

type CreateInput struct {
	PetID  uint64 `json:"pet_id" validate:"required,exists=pets"`
	Date   string `json:"appointmentDate" validate:"required,date"`
	Reason string `json:"reason" validate:"required,max=255"`
}

// UpdateInput no valida transiciones: cualquier estado puede pasar a cualquier otro.
type UpdateInput struct {
	Date   string `json:"appointmentDate" validate:"required,date"`
	Reason string `json:"reason" validate:"required,max=255"`
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

var messages = validation.Messages{
	"pet_id.required":          "La mascota es obligatoria.",
	"pet_id.exists":            "La mascota no está registrada.",
	"appointmentDate.required": "La fecha de la cita es obligatoria.",
	"reason.required":          "El motivo de la cita es obligatorio.",
	"status.required":          "El estado de la cita es obligatorio.",
}

func (s *Service) List(ctx context.Context, status string) ([]Appointment, error) {
	status = strings.TrimSpace(status)
	switch Status(status) {
	case "", StatusPending, StatusConfirmed, StatusCancelled:
	default:
		return nil, validation.Field("status", "El campo status seleccionado es inválido.")
	}
	return s.repo.List(ctx, Status(status))
}

func (s *Service) GetByID(ctx context.Context, id uint64) (Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, s.storeErr(err)
	}
	return a, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Appointment, error) {
	in.Reason = validation.Sanitize(in.Reason)
	if err := s.v.Struct(ctx, in, messages); err != nil {
		return Appointment{}, err
	}

	clientID, err := s.owners.OwnerOf(ctx, in.PetID)
	if err != nil {
		return Appointment{}, err
	}

	date, _ := validation.ParseDate(in.Date)
	now := s.now()
	a := Appointment{
		PetID:     in.PetID,
		ClientID:  clientID,
		Date:      date,
		Reason:    in.Reason,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &a); err != nil {
		return Appointment{}, s.storeErr(err)
	}
	return s.GetByID(ctx, a.ID)
}

func (s *Service) Update(ctx context.Context, id uint64, in UpdateInput) (Appointment, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	in.Reason = validation.Sanitize(in.Reason)
	if err := s.v.Struct(ctx, in, messages); err != nil {
		return Appointment{}, err
	}

	a.Date, _ = validation.ParseDate(in.Date)
	a.Reason = in.Reason
	a.Status = Status(in.Status)
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &a); err != nil {
		return Appointment{}, s.storeErr(err)
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeErr(err)
	}
	return nil
}

// SendEmailAlert envía el recordatorio al correo del cliente y marca la cita.
func (s *Service) SendEmailAlert(ctx context.Context, id uint64) (Appointment, error) {
	if s.email == nil {
		return Appointment{}, ErrEmailDisabled
	}
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if strings.TrimSpace(a.ClientEmail) == "" {
		return Appointment{}, ErrNoEmail
	}

	msg := notify.Message{
		To:      a.ClientEmail,
		Subject: "Recordatorio de cita para " + a.PetName,
		Body:    reminderText(a),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return Appointment{}, sendErr(err, ErrEmailDisabled, ErrNoEmail)
	}
	return s.markSent(ctx, a, ChannelEmail)
}

// SendWhatsAppAlert envía el recordatorio al teléfono del cliente.
func (s *Service) SendWhatsAppAlert(ctx context.Context, id uint64) (Appointment, error) {
	if s.whatsapp == nil {
		return Appointment{}, ErrWhatsAppDisabled
	}
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if strings.TrimSpace(a.ClientPhone) == "" {
		return Appointment{}, ErrNoPhone
	}

	msg := notify.Message{To: a.ClientPhone, Body: reminderText(a)}
	if err := s.whatsapp.Send(ctx, msg); err != nil {
		return Appointment{}, sendErr(err, ErrWhatsAppDisabled, ErrNoPhone)
	}
	return s.markSent(ctx, a, ChannelWhatsApp)
}

func (s *Service) markSent(ctx context.Context, a Appointment, ch Channel) (Appointment, error) {
	now := s.now()
	if err := s.repo.MarkAlertSent(ctx, a.ID, ch, now); err != nil {
		return Appointment{}, s.storeErr(err)
	}
	switch ch {
	case ChannelEmail:
		a.EmailAlertSent = true
	case ChannelWhatsApp:
		a.WhatsAppAlertSent = true
	}
	a.UpdatedAt = now
	return a, nil
}

func reminderText(a Appointment) string {
	return fmt.Sprintf("Hola %s, le recordamos la cita de %s el %s. Motivo: %s.",
		a.Owner, a.PetName, a.Date.Format("02/01/2006 15:04"), a.Reason)
}

func sendErr(err error, disabled, badRecipient *apperr.Error) error {
	switch {
	case errors.Is(err, notify.ErrDisabled):
		return disabled
	case errors.Is(err, notify.ErrInvalidRecipient):
		return badRecipient.Wrap(err)
	}
	return fmt.Errorf("send alert: %w", err)
}

func (s *Service) storeErr(err error) error {
	if errors.Is(err, apperr.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
