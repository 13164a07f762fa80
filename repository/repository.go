package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"speclab-backend/logger"
	"speclab-backend/models/career"
	"speclab-backend/models/certification"
	"speclab-backend/models/users"
)

// IsNotFound reports whether err came from a lookup that matched no row.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique-constraint violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// Models lists every table owned by the store, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&certification.Certification{},
		&certification.Prerequisite{},
		&certification.ExamSchedule{},
		&career.CareerPath{},
		&career.Requirement{},
		&users.User{},
		&users.UserCertification{},
		&users.UserGoal{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

type Repos struct {
	Certifications CertificationRepo
	Careers        CareerRepo
	Users          UserRepo
	Progress       ProgressRepo
	Schedules      ScheduleRepo
}

func conn(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

// likePattern builds a case-insensitive contains pattern usable on both postgres and sqlite.
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

func New(db *gorm.DB, log *logger.Logger) *Repos {
	return &Repos{
		Certifications: NewCertificationRepo(db, log),
		Careers:        NewCareerRepo(db, log),
		Users:          NewUserRepo(db, log),
		Progress:       NewProgressRepo(db, log),
		Schedules:      NewScheduleRepo(db, log),
	}
}
