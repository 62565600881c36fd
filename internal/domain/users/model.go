package users

import (
	"strings"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Privilege string

const (
	PrivilegeAdmin Privilege = "admin"
	PrivilegeUser  Privilege = "user"
)

// User es un usuario del sistema (personal de la clínica).
type User struct {
	ID       uint64
	Name     string
	LastName string
	Email    string

	// PasswordHash es bcrypt; nunca sale en respuestas.
	PasswordHash string

	Doc       string
	Phone     string
	Sex       string
	Status    Status
	Privilege Privilege
	Photo     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.LastName)
}
