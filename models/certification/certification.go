package certification

import (
	"time"

	"gorm.io/datatypes"
)

// OtherCategory stands in for a missing or blank category name.
const OtherCategory = "기타"

type Certification struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"index;not null"`
	Code         *string   `json:"code" gorm:"uniqueIndex"`
	Issuer       *string   `json:"issuer" gorm:"index"`
	CategoryMain *string   `json:"category_main" gorm:"index"`
	CategorySub  *string   `json:"category_sub" gorm:"index"`
	Level        *string   `json:"level"`
	LevelOrder   int       `json:"level_order" gorm:"not null;default:0"`
	FeeWritten   *int      `json:"fee_written"`
	FeePractical *int      `json:"fee_practical"`
	PassRate     *string   `json:"pass_rate"`
	Description  *string   `json:"description" gorm:"type:text"`
	Eligibility  *string   `json:"eligibility" gorm:"type:text"`
	Subjects     *string   `json:"subjects" gorm:"type:text"` // JSON array encoded as text
	IsActive     bool      `json:"is_active" gorm:"not null;index"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Prerequisite is one edge of the prerequisite graph: PrerequisiteID must be held
// before CertificationID. The composite key keeps the edge set free of duplicates.
type Prerequisite struct {
	CertificationID uint `json:"certification_id" gorm:"primaryKey;autoIncrement:false"`
	PrerequisiteID  uint `json:"prerequisite_id" gorm:"primaryKey;autoIncrement:false;index"`
}

func (Prerequisite) TableName() string {
	return "certification_prerequisites"
}

// Simple is the list/reference shape of a certification.
type Simple struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Code         *string `json:"code"`
	CategoryMain *string `json:"category_main"`
	CategorySub  *string `json:"category_sub"`
	Level        *string `json:"level"`
	LevelOrder   int     `json:"level_order"`
}

func (c *Certification) Simple() Simple {
	return Simple{
		ID:           c.ID,
		Name:         c.Name,
		Code:         c.Code,
		CategoryMain: c.CategoryMain,
		CategorySub:  c.CategorySub,
		Level:        c.Level,
		LevelOrder:   c.LevelOrder,
	}
}

type ExamSchedule struct {
	ID                     uint            `json:"id" gorm:"primaryKey"`
	CertificationID        uint            `json:"certification_id" gorm:"index;not null"`
	RoundName              string          `json:"round_name" gorm:"not null"`
	ApplicationStartDate   *datatypes.Date `json:"application_start_date"`
	ApplicationEndDate     *datatypes.Date `json:"application_end_date"`
	ExamDate               *datatypes.Date `json:"exam_date"`
	ResultAnnouncementDate *datatypes.Date `json:"result_announcement_date"`
}

// CategoryCount is one (main, sub) group as returned by the store.
type CategoryCount struct {
	Main  *string
	Sub   *string
	Count int64
}
