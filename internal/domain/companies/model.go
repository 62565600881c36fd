package companies

import "time"

// Company son los datos de la clínica que salen en comprobantes.
type Company struct {
	ID       uint64
	Doc      string
	Name     string
	Address  string
	Phone    string
	Email    string
	Photo    string
	Currency string
	Tax      float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
