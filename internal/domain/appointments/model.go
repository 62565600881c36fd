package appointments

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Appointment es una cita de una mascota. client_id siempre es el dueño
// de la mascota al momento de crearla.
type Appointment struct {
	ID                uint64
	PetID             uint64
	ClientID          uint64
	Date              time.Time
	Reason            string
	Status            Status
	EmailAlertSent    bool
	WhatsAppAlertSent bool

	// Proyección.
	PetName     string
	Owner       string
	ClientEmail string
	ClientPhone string

	CreatedAt time.Time
	UpdatedAt time.Time
}
