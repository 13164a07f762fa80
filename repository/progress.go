package repository

import (
	"context"

	"gorm.io/gorm"

	"speclab-backend/logger"
	"speclab-backend/models/users"
)

// ProgressRepo covers the per-user certification and goal rows.
type ProgressRepo interface {
	ListCertifications(ctx context.Context, tx *gorm.DB, userID uint) ([]*users.UserCertification, error)
	GetCertification(ctx context.Context, tx *gorm.DB, userID, certID uint) (*users.UserCertification, error)
	HasCertification(ctx context.Context, tx *gorm.DB, userID, certID uint) (bool, error)
	CreateCertification(ctx context.Context, tx *gorm.DB, uc *users.UserCertification) error
	DeleteCertification(ctx context.Context, tx *gorm.DB, id uint) error

	ListGoals(ctx context.Context, tx *gorm.DB, userID uint) ([]*users.UserGoal, error)
	GetGoal(ctx context.Context, tx *gorm.DB, userID, goalID uint) (*users.UserGoal, error)
	HasGoal(ctx context.Context, tx *gorm.DB, userID, certID uint) (bool, error)
	CreateGoal(ctx context.Context, tx *gorm.DB, g *users.UserGoal) error
	UpdateGoal(ctx context.Context, tx *gorm.DB, goalID uint, fields map[string]any) error
	DeleteGoal(ctx context.Context, tx *gorm.DB, goalID uint) error
	CompleteGoals(ctx context.Context, tx *gorm.DB, userID, certID uint) (int64, error)
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

func (r *progressRepo) ListCertifications(ctx context.Context, tx *gorm.DB, userID uint) ([]*users.UserCertification, error) {
	out := []*users.UserCertification{}
	err := conn(r.db, tx).WithContext(ctx).
		Preload("Certification").
		Where("user_id = ?", userID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *progressRepo) GetCertification(ctx context.Context, tx *gorm.DB, userID, certID uint) (*users.UserCertification, error) {
	var uc users.UserCertification
	err := conn(r.db, tx).WithContext(ctx).
		Where("user_id = ? AND certification_id = ?", userID, certID).
		First(&uc).Error
	if err != nil {
		return nil, err
	}
	return &uc, nil
}

func (r *progressRepo) HasCertification(ctx context.Context, tx *gorm.DB, userID, certID uint) (bool, error) {
	var n int64
	err := conn(r.db, tx).WithContext(ctx).
		Model(&users.UserCertification{}).
		Where("user_id = ? AND certification_id = ?", userID, certID).
		Count(&n).Error
	return n > 0, err
}

func (r *progressRepo) CreateCertification(ctx context.Context, tx *gorm.DB, uc *users.UserCertification) error {
	return conn(r.db, tx).WithContext(ctx).Omit("Certification").Create(uc).Error
}

func (r *progressRepo) DeleteCertification(ctx context.Context, tx *gorm.DB, id uint) error {
	return conn(r.db, tx).WithContext(ctx).Delete(&users.UserCertification{}, id).Error
}

func (r *progressRepo) ListGoals(ctx context.Context, tx *gorm.DB, userID uint) ([]*users.UserGoal, error) {
	out := []*users.UserGoal{}
	err := conn(r.db, tx).WithContext(ctx).
		Preload("Certification").
		Where("user_id = ?", userID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *progressRepo) GetGoal(ctx context.Context, tx *gorm.DB, userID, goalID uint) (*users.UserGoal, error) {
	var g users.UserGoal
	err := conn(r.db, tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *progressRepo) HasGoal(ctx context.Context, tx *gorm.DB, userID, certID uint) (bool, error) {
	var n int64
	err := conn(r.db, tx).WithContext(ctx).
		Model(&users.UserGoal{}).
		Where("user_id = ? AND certification_id = ?", userID, certID).
		Count(&n).Error
	return n > 0, err
}

func (r *progressRepo) CreateGoal(ctx context.Context, tx *gorm.DB, g *users.UserGoal) error {
	return conn(r.db, tx).WithContext(ctx).Omit("Certification").Create(g).Error
}

func (r *progressRepo) UpdateGoal(ctx context.Context, tx *gorm.DB, goalID uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return conn(r.db, tx).WithContext(ctx).
		Model(&users.UserGoal{}).
		Where("id = ?", goalID).
		Updates(fields).Error
}

func (r *progressRepo) DeleteGoal(ctx context.Context, tx *gorm.DB, goalID uint) error {
	return conn(r.db, tx).WithContext(ctx).Delete(&users.UserGoal{}, goalID).Error
}

// CompleteGoals marks the user's goal for certID as completed and reports how many rows changed.
func (r *progressRepo) CompleteGoals(ctx context.Context, tx *gorm.DB, userID, certID uint) (int64, error) {
	res := conn(r.db, tx).WithContext(ctx).
		Model(&users.UserGoal{}).
		Where("user_id = ? AND certification_id = ? AND status <> ?", userID, certID, users.GoalCompleted).
		Update("status", users.GoalCompleted)
	return res.RowsAffected, res.Error
}
