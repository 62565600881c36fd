package appointments

import (
	"context"
	"time"
)

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

type Repository interface {
	// List filtra por estado cuando status != "".
	List(ctx context.Context, status Status) ([]Appointment, error)
	GetByID(ctx context.Context, id uint64) (Appointment, error)
	Create(ctx context.Context, a *Appointment) error
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uint64) error

	MarkAlertSent(ctx context.Context, id uint64, ch Channel, at time.Time) error
}
