package users

import (
	"time"

	"gorm.io/datatypes"

	"speclab-backend/models/certification"
)

const (
	GoalPending    = "pending"
	GoalInProgress = "in_progress"
	GoalCompleted  = "completed"
)

func ValidGoalStatus(s string) bool {
	switch s {
	case GoalPending, GoalInProgress, GoalCompleted:
		return true
	}
	return false
}

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	HashedPassword string    `json:"-" gorm:"not null"`
	FullName       *string   `json:"full_name" gorm:"index"`
	IsActive       bool      `json:"is_active" gorm:"not null"`
	IsSuperuser    bool      `json:"is_superuser" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// UserCertification is a certification the user already holds.
type UserCertification struct {
	ID                uint                         `json:"id" gorm:"primaryKey"`
	UserID            uint                         `json:"user_id" gorm:"uniqueIndex:idx_user_certification;not null"`
	CertificationID   uint                         `json:"certification_id" gorm:"uniqueIndex:idx_user_certification;not null"`
	AcquiredDate      *datatypes.Date              `json:"acquired_date"`
	Score             *int                         `json:"score"`
	CertificateNumber *string                      `json:"certificate_number"`
	Certification     *certification.Certification `json:"certification,omitempty" gorm:"foreignKey:CertificationID"`
}

// UserGoal is a certification the user intends to acquire.
type UserGoal struct {
	ID              uint                         `json:"id" gorm:"primaryKey"`
	UserID          uint                         `json:"user_id" gorm:"uniqueIndex:idx_user_goal;not null"`
	CertificationID uint                         `json:"certification_id" gorm:"uniqueIndex:idx_user_goal;not null"`
	TargetDate      *datatypes.Date              `json:"target_date"`
	Status          string                       `json:"status" gorm:"not null;default:pending"`
	Certification   *certification.Certification `json:"certification,omitempty" gorm:"foreignKey:CertificationID"`
}
