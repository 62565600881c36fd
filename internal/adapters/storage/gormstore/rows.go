package gormstore

import "time"

// Filas tal como se guardan. Las asociaciones son punteros para que GORM
// arme las foreign keys sin intentar guardarlas en Create/Update.

type UserRow struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100"`
	Email     string `gorm:"size:150;not null;uniqueIndex"`
	Password  string `gorm:"size:255;not null"`
	Doc       string `gorm:"size:20"`
	Phone     string `gorm:"size:20"`
	Sex       string `gorm:"size:10"`
	Status    string `gorm:"size:10;not null;default:active"`
	Privilege string `gorm:"size:10;not null;default:user"`
	Photo     string `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserRow) TableName() string { return "users" }

type ClientRow struct {
	ID             uint64  `gorm:"primaryKey"`
	ClientDoc      string  `gorm:"size:20;not null;uniqueIndex"`
	ClientName     string  `gorm:"size:50;not null"`
	ClientGender   string  `gorm:"size:10"`
	ClientPhone    string  `gorm:"size:20"`
	ClientEmail    *string `gorm:"size:150;uniqueIndex"`
	ClientAddress  string  `gorm:"size:150"`
	ClientPhotoURL string  `gorm:"column:client_photo_url;size:500"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ClientRow) TableName() string { return "clients" }

type SupplierRow struct {
	ID              uint64  `gorm:"primaryKey"`
	SupplierDoc     string  `gorm:"size:20;not null;uniqueIndex"`
	SupplierName    string  `gorm:"size:50;not null"`
	SupplierPhone   string  `gorm:"size:20"`
	SupplierEmail   *string `gorm:"size:150;uniqueIndex"`
	SupplierAddress string  `gorm:"size:150"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (SupplierRow) TableName() string { return "suppliers" }

type SpecieRow struct {
	ID         uint64 `gorm:"primaryKey"`
	SpecieName string `gorm:"size:20;not null;uniqueIndex"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (SpecieRow) TableName() string { return "species" }

type BreedRow struct {
	ID        uint64     `gorm:"primaryKey"`
	BreedName string     `gorm:"size:100;not null;uniqueIndex"`
	SpeciesID uint64     `gorm:"not null;index"`
	Specie    *SpecieRow `gorm:"foreignKey:SpeciesID;constraint:OnDelete:RESTRICT"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BreedRow) TableName() string { return "breeds" }

type VaccineRow struct {
	ID          uint64     `gorm:"primaryKey"`
	VaccineName string     `gorm:"size:150;not null;uniqueIndex"`
	SpeciesID   uint64     `gorm:"not null;index"`
	Specie      *SpecieRow `gorm:"foreignKey:SpeciesID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (VaccineRow) TableName() string { return "vaccines" }

type PetRow struct {
	ID            uint64     `gorm:"primaryKey"`
	PetCode       string     `gorm:"size:50;not null;uniqueIndex"`
	PetName       string     `gorm:"size:100;not null"`
	PetBirthDate  time.Time  `gorm:"not null"`
	PetWeight     string     `gorm:"size:10"`
	PetColor      string     `gorm:"size:100"`
	SpeciesID     uint64     `gorm:"not null;index"`
	Specie        *SpecieRow `gorm:"foreignKey:SpeciesID;constraint:OnDelete:RESTRICT"`
	BreedsID      uint64     `gorm:"column:breeds_id;not null;index"`
	Breed         *BreedRow  `gorm:"foreignKey:BreedsID;constraint:OnDelete:RESTRICT"`
	ClientsID     uint64     `gorm:"column:clients_id;not null;index"`
	Client        *ClientRow `gorm:"foreignKey:ClientsID;constraint:OnDelete:CASCADE"`
	PetGender     string     `gorm:"size:10"`
	PetPhoto      string     `gorm:"size:500"`
	PetAdditional string     `gorm:"size:200"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PetRow) TableName() string { return "pets" }

type PetNoteRow struct {
	ID              uint64    `gorm:"primaryKey"`
	PetID           uint64    `gorm:"not null;index"`
	Pet             *PetRow   `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE"`
	NoteDescription string    `gorm:"size:140;not null"`
	NoteDate        time.Time `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (PetNoteRow) TableName() string { return "pet_notes" }

type CompanyRow struct {
	ID              uint64  `gorm:"primaryKey"`
	CompanyDoc      string  `gorm:"size:50;not null;uniqueIndex"`
	CompanyName     string  `gorm:"size:100;not null"`
	CompanyAddress  string  `gorm:"size:200"`
	CompanyPhone    string  `gorm:"size:20"`
	CompanyEmail    string  `gorm:"size:100;not null;uniqueIndex"`
	CompanyPhoto    string  `gorm:"size:500"`
	CompanyCurrency string  `gorm:"size:10"`
	CompanyTax      float64 `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (CompanyRow) TableName() string { return "companies" }

type AppointmentRow struct {
	ID                uint64     `gorm:"primaryKey"`
	PetID             uint64     `gorm:"not null;index"`
	Pet               *PetRow    `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE"`
	ClientID          uint64     `gorm:"not null;index"`
	Client            *ClientRow `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	AppointmentDate   time.Time  `gorm:"not null;index"`
	Reason            string     `gorm:"size:255;not null"`
	Status            string     `gorm:"size:10;not null;default:pending;index"`
	EmailAlertSent    bool       `gorm:"not null;default:false"`
	WhatsappAlertSent bool       `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (AppointmentRow) TableName() string { return "appointments" }

type VaccineHistoryRow struct {
	ID          uint64      `gorm:"primaryKey"`
	VaccineID   uint64      `gorm:"not null;index"`
	Vaccine     *VaccineRow `gorm:"foreignKey:VaccineID;constraint:OnDelete:CASCADE"`
	PetID       uint64      `gorm:"not null;index"`
	Pet         *PetRow     `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE"`
	VaccineDate time.Time   `gorm:"not null"`
	Product     string      `gorm:"size:150;not null"`
	Observation string      `gorm:"size:150"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (VaccineHistoryRow) TableName() string { return "vaccine_histories" }

type PetHistoryRow struct {
	ID               uint64    `gorm:"primaryKey"`
	HistoryCode      string    `gorm:"size:20;not null;uniqueIndex"`
	HistoryDate      time.Time `gorm:"not null"`
	HistoryTime      string    `gorm:"size:8;not null"`
	HistoryReason    string    `gorm:"size:100;not null"`
	HistorySymptoms  string    `gorm:"size:350;not null"`
	HistoryDiagnosis string    `gorm:"size:350;not null"`
	HistoryTreatment string    `gorm:"size:350;not null"`
	UserID           uint64    `gorm:"not null;index"`
	User             *UserRow  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PetID            uint64    `gorm:"not null;index"`
	Pet              *PetRow   `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (PetHistoryRow) TableName() string { return "pet_histories" }

type PetHistoryFileRow struct {
	ID           uint64         `gorm:"primaryKey"`
	PetHistoryID uint64         `gorm:"not null;index"`
	PetHistory   *PetHistoryRow `gorm:"foreignKey:PetHistoryID;constraint:OnDelete:CASCADE"`
	FilePath     string         `gorm:"size:500;not null"`
	FileType     string         `gorm:"size:20"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (PetHistoryFileRow) TableName() string { return "pet_history_files" }

// models lista todas las filas para AutoMigrate; GORM ordena por dependencias.
func models() []any {
	return []any{
		&UserRow{},
		&ClientRow{},
		&SupplierRow{},
		&SpecieRow{},
		&BreedRow{},
		&VaccineRow{},
		&PetRow{},
		&PetNoteRow{},
		&CompanyRow{},
		&AppointmentRow{},
		&VaccineHistoryRow{},
		&PetHistoryRow{},
		&PetHistoryFileRow{},
	}
}
