package pethistories

import "time"

// CodePrefix es el prefijo de history_code (HM-00001, HM-00002, ...).
const CodePrefix = "HM-"

// History es una atención clínica de una mascota.
type History struct {
	ID        uint64
	Code      string
	Date      time.Time
	Time      string // HH:MM:SS
	Reason    string
	Symptoms  string
	Diagnosis string
	Treatment string
	UserID    uint64
	PetID     uint64

	// Proyección.
	UserName string
	PetName  string
	Files    []File

	CreatedAt time.Time
	UpdatedAt time.Time
}

// File es un adjunto de una historia clínica.
type File struct {
	ID        uint64
	HistoryID uint64
	Path      string // URL pública
	Type      string // extensión original, sin punto

	CreatedAt time.Time
	UpdatedAt time.Time
}
