package breeds

import "time"

type Breed struct {
	ID        uint64
	Name      string
	SpeciesID uint64

	// SpecieName se completa al leer; no se persiste.
	SpecieName string

	CreatedAt time.Time
	UpdatedAt time.Time
}
