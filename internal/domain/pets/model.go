package pets

import "time"

// DateLayout es el formato de las fechas sin hora en JSON.
const DateLayout = "2006-01-02"

// Pet representa una mascota registrada, con los nombres de sus relaciones
// ya resueltos para las respuestas.
type Pet struct {
	ID         uint64
	Code       string
	Name       string
	BirthDate  time.Time
	Weight     string
	Color      string
	SpeciesID  uint64
	BreedID    uint64
	ClientID   uint64
	Gender     string
	Photo      string // URL pública; solo la cambia el upload
	Additional string

	// Proyección: se completan al leer.
	SpecieName  string
	BreedName   string
	ClientName  string
	ClientDoc   string
	ClientPhoto string

	CreatedAt time.Time
	UpdatedAt time.Time
}
