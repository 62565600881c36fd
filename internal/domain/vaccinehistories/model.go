package vaccinehistories

import "time"

// Record es una aplicación de vacuna a una mascota.
type Record struct {
	ID          uint64
	VaccineID   uint64
	PetID       uint64
	Date        time.Time
	Product     string
	Observation string

	VaccineName string
	PetName     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
