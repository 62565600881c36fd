package species

import "time"

type Specie struct {
	ID   uint64
	Name string

	CreatedAt time.Time
	UpdatedAt time.Time
}
