package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"speclab-backend/logger"
	"speclab-backend/models/career"
)

type CareerFilter struct {
	Type     string
	Category string
	Search   string
	Offset   int
	Limit    int
}

type CareerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, c *career.CareerPath) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*career.CareerPath, error)
	List(ctx context.Context, tx *gorm.DB, f CareerFilter) ([]*career.CareerPath, error)
	ListPage(ctx context.Context, tx *gorm.DB, search string, offset, limit int) ([]*career.CareerPath, int64, error)
	ListByCertification(ctx context.Context, tx *gorm.DB, certID uint) ([]*career.CareerPath, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)

	ListRequirements(ctx context.Context, tx *gorm.DB, careerID uint) ([]career.Requirement, error)
	GetRequirement(ctx context.Context, tx *gorm.DB, careerID, requirementID uint) (*career.Requirement, error)
	AddRequirement(ctx context.Context, tx *gorm.DB, req *career.Requirement) error
	DeleteRequirement(ctx context.Context, tx *gorm.DB, requirementID uint) error
}

type careerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCareerRepo(db *gorm.DB, baseLog *logger.Logger) CareerRepo {
	return &careerRepo{db: db, log: baseLog.With("repo", "CareerRepo")}
}

func (r *careerRepo) Create(ctx context.Context, tx *gorm.DB, c *career.CareerPath) error {
	return conn(r.db, tx).WithContext(ctx).Omit("Requirements").Create(c).Error
}

// GetByID loads the career with its requirements, each carrying the linked
// certification's name when there is one.
func (r *careerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*career.CareerPath, error) {
	var c career.CareerPath
	if err := conn(r.db, tx).WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	reqs, err := r.ListRequirements(ctx, tx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Requirements = reqs
	return &c, nil
}

func (r *careerRepo) List(ctx context.Context, tx *gorm.DB, f CareerFilter) ([]*career.CareerPath, error) {
	q := conn(r.db, tx).WithContext(ctx)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if strings.TrimSpace(f.Search) != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(f.Search))
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []*career.CareerPath
	err := q.Offset(f.Offset).Order("name").Find(&out).Error
	return out, err
}

func (r *careerRepo) ListPage(ctx context.Context, tx *gorm.DB, search string, offset, limit int) ([]*career.CareerPath, int64, error) {
	q := conn(r.db, tx).WithContext(ctx).Model(&career.CareerPath{})
	if strings.TrimSpace(search) != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(search))
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []*career.CareerPath
	if err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *careerRepo) ListByCertification(ctx context.Context, tx *gorm.DB, certID uint) ([]*career.CareerPath, error) {
	var out []*career.CareerPath
	err := conn(r.db, tx).WithContext(ctx).
		Where("id IN (?)", conn(r.db, tx).Model(&career.Requirement{}).
			Select("career_path_id").
			Where("certification_id = ?", certID)).
		Order("name").
		Find(&out).Error
	return out, err
}

func (r *careerRepo) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return conn(r.db, tx).WithContext(ctx).
		Model(&career.CareerPath{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes the career and its requirements. Callers wanting atomicity pass a tx.
func (r *careerRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := conn(r.db, tx).WithContext(ctx)
	if err := db.Where("career_path_id = ?", id).Delete(&career.Requirement{}).Error; err != nil {
		return err
	}
	return db.Delete(&career.CareerPath{}, id).Error
}

func (r *careerRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var n int64
	err := conn(r.db, tx).WithContext(ctx).Model(&career.CareerPath{}).Count(&n).Error
	return n, err
}

func (r *careerRepo) ListRequirements(ctx context.Context, tx *gorm.DB, careerID uint) ([]career.Requirement, error) {
	out := []career.Requirement{}
	err := conn(r.db, tx).WithContext(ctx).
		Model(&career.Requirement{}).
		Select("requirements.*, certifications.name AS certification_name").
		Joins("LEFT JOIN certifications ON certifications.id = requirements.certification_id").
		Where("requirements.career_path_id = ?", careerID).
		Order("requirements.id").
		Find(&out).Error
	return out, err
}

func (r *careerRepo) GetRequirement(ctx context.Context, tx *gorm.DB, careerID, requirementID uint) (*career.Requirement, error) {
	var req career.Requirement
	err := conn(r.db, tx).WithContext(ctx).
		Where("id = ? AND career_path_id = ?", requirementID, careerID).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *careerRepo) AddRequirement(ctx context.Context, tx *gorm.DB, req *career.Requirement) error {
	return conn(r.db, tx).WithContext(ctx).Create(req).Error
}

func (r *careerRepo) DeleteRequirement(ctx context.Context, tx *gorm.DB, requirementID uint) error {
	return conn(r.db, tx).WithContext(ctx).Delete(&career.Requirement{}, requirementID).Error
}
