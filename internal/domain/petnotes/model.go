package petnotes

import "time"

// Note es una nota corta (≤140) sobre una mascota.
type Note struct {
	ID          uint64
	PetID       uint64
	PetName     string // proyección
	Description string
	Date        time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
