package suppliers

import "time"

type Supplier struct {
	ID      uint64
	Doc     string
	Name    string
	Phone   string
	Email   string
	Address string

	CreatedAt time.Time
	UpdatedAt time.Time
}
