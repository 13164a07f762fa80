package career

import "time"

const (
	TypeJob     = "job"
	TypeStartup = "startup"
)

func ValidType(t string) bool {
	return t == TypeJob || t == TypeStartup
}

type CareerPath struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	Name            string        `json:"name" gorm:"index;not null"`
	Type            string        `json:"type" gorm:"index;not null;default:job"`
	Category        *string       `json:"category" gorm:"index"`
	Description     *string       `json:"description" gorm:"type:text"`
	SalaryRange     *string       `json:"salary_range"`
	GrowthPotential *string       `json:"growth_potential"`
	IsActive        bool          `json:"is_active" gorm:"not null"`
	Requirements    []Requirement `json:"requirements" gorm:"foreignKey:CareerPathID"`
	CreatedAt       time.Time     `json:"-"`
	UpdatedAt       time.Time     `json:"-"`
}

// Requirement links a career to an optional certification. CertificationName is
// filled by joins and never stored.
type Requirement struct {
	ID                uint    `json:"id" gorm:"primaryKey"`
	CareerPathID      uint    `json:"career_path_id" gorm:"index;not null"`
	CertificationID   *uint   `json:"certification_id" gorm:"index"`
	Description       *string `json:"description" gorm:"type:text"`
	IsMandatory       bool    `json:"is_mandatory" gorm:"not null;default:false"`
	CertificationName *string `json:"certification_name" gorm:"->;-:migration"`
}

// Simple is the list shape of a career.
type Simple struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func (c *CareerPath) Simple() Simple {
	return Simple{ID: c.ID, Name: c.Name, Type: c.Type}
}
