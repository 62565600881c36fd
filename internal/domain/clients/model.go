package clients

import "time"

type Gender string

const (
	GenderMale   Gender = "Masculino"
	GenderFemale Gender = "Femenino"
)

// Client es el dueño de una o más mascotas.
type Client struct {
	ID       uint64
	Doc      string
	Name     string
	Gender   Gender
	Phone    string
	Email    string // vacío = sin correo
	Address  string
	PhotoURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}
