package repository

import (
	"context"

	"gorm.io/gorm"

	"speclab-backend/logger"
	"speclab-backend/models/certification"
)

type ScheduleRepo interface {
	ListByCertification(ctx context.Context, tx *gorm.DB, certID uint) ([]*certification.ExamSchedule, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*certification.ExamSchedule, error)
	Create(ctx context.Context, tx *gorm.DB, s *certification.ExamSchedule) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type scheduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScheduleRepo(db *gorm.DB, baseLog *logger.Logger) ScheduleRepo {
	return &scheduleRepo{db: db, log: baseLog.With("repo", "ScheduleRepo")}
}

func (r *scheduleRepo) ListByCertification(ctx context.Context, tx *gorm.DB, certID uint) ([]*certification.ExamSchedule, error) {
	out := []*certification.ExamSchedule{}
	err := conn(r.db, tx).WithContext(ctx).
		Where("certification_id = ?", certID).
		Order("exam_date").Order("id").
		Find(&out).Error
	return out, err
}

func (r *scheduleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*certification.ExamSchedule, error) {
	var s certification.ExamSchedule
	if err := conn(r.db, tx).WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *scheduleRepo) Create(ctx context.Context, tx *gorm.DB, s *certification.ExamSchedule) error {
	return conn(r.db, tx).WithContext(ctx).Create(s).Error
}

func (r *scheduleRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return conn(r.db, tx).WithContext(ctx).Delete(&certification.ExamSchedule{}, id).Error
}
