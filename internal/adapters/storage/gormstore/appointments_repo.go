package gormstore

import (
	"context"
	"fmt"
	"time"

	"vet-clinic-api/internal/domain/appointments"
	"vet-clinic-api/internal/platform/apperr"

	"gorm.io/gorm"
)

type appointmentView struct {
	AppointmentRow
	PetName     string
	Owner       string
	ClientEmail *string
	ClientPhone string
}

type AppointmentsRepo struct {
	db *gorm.DB
}

func NewAppointmentsRepo(db *gorm.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

func (r *AppointmentsRepo) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("appointments").
		Select(`appointments.*,
			pets.pet_name AS pet_name,
			clients.client_name AS owner,
			clients.client_email AS client_email,
			clients.client_phone AS client_phone`).
		Joins("JOIN pets ON pets.id = appointments.pet_id").
		Joins("JOIN clients ON clients.id = appointments.client_id")
}

func (r *AppointmentsRepo) List(ctx context.Context, status appointments.Status) ([]appointments.Appointment, error) {
	q := r.query(ctx)
	if status != "" {
		q = q.Where("appointments.status = ?", string(status))
	}
	var rows []appointmentView
	if err := q.Order("appointments.appointment_date").Order("appointments.id").Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]appointments.Appointment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id uint64) (appointments.Appointment, error) {
	var row appointmentView
	res := r.query(ctx).Where("appointments.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return appointments.Appointment{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return appointments.Appointment{}, apperr.ErrRecordNotFound
	}
	return row.toDomain(), nil
}

func (r *AppointmentsRepo) Create(ctx context.Context, a *appointments.Appointment) error {
	row := fromAppointment(*a)
	if err := createRow(ctx, r.db, &row); err != nil {
		return err
	}
	a.ID = row.ID
	return nil
}

func (r *AppointmentsRepo) Update(ctx context.Context, a *appointments.Appointment) error {
	row := fromAppointment(*a)
	return updateRow(ctx, r.db, &row)
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &AppointmentRow{}, id)
}

func (r *AppointmentsRepo) MarkAlertSent(ctx context.Context, id uint64, ch appointments.Channel, at time.Time) error {
	var column string
	switch ch {
	case appointments.ChannelEmail:
		column = "email_alert_sent"
	case appointments.ChannelWhatsApp:
		column = "whatsapp_alert_sent"
	default:
		return fmt.Errorf("unknown alert channel %q", ch)
	}

	res := r.db.WithContext(ctx).
		Model(&AppointmentRow{}).
		Where("id = ?", id).
		Updates(map[string]any{column: true, "updated_at": at})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrRecordNotFound
	}
	return nil
}

func fromAppointment(a appointments.Appointment) AppointmentRow {
	return AppointmentRow{
		ID:                a.ID,
		PetID:             a.PetID,
		ClientID:          a.ClientID,
		AppointmentDate:   a.Date,
		Reason:            a.Reason,
		Status:            string(a.Status),
		EmailAlertSent:    a.EmailAlertSent,
		WhatsappAlertSent: a.WhatsAppAlertSent,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func (row appointmentView) toDomain() appointments.Appointment {
	return appointments.Appointment{
		ID:                row.ID,
		PetID:             row.PetID,
		ClientID:          row.ClientID,
		Date:              utc(row.AppointmentDate),
		Reason:            row.Reason,
		Status:            appointments.Status(row.Status),
		EmailAlertSent:    row.EmailAlertSent,
		WhatsAppAlertSent: row.WhatsappAlertSent,
		PetName:           row.PetName,
		Owner:             row.Owner,
		ClientEmail:       deref(row.ClientEmail),
		ClientPhone:       row.ClientPhone,
		CreatedAt:         utc(row.CreatedAt),
		UpdatedAt:         utc(row.UpdatedAt),
	}
}
