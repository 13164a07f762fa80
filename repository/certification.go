package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"speclab-backend/logger"
	"speclab-backend/models/certification"
)

type CertificationFilter struct {
	Category    string
	CategorySub string
	Level       string
	Search      string
	Offset      int
	Limit       int
}

type CertificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, c *certification.Certification) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*certification.Certification, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*certification.Certification, error)
	List(ctx context.Context, tx *gorm.DB, f CertificationFilter) ([]*certification.Certification, error)
	ListPage(ctx context.Context, tx *gorm.DB, search string, offset, limit int) ([]*certification.Certification, int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error
	CountActive(ctx context.Context, tx *gorm.DB) (int64, error)

	ListActive(ctx context.Context, tx *gorm.DB, category string) ([]*certification.Certification, error)
	ListPrerequisiteEdges(ctx context.Context, tx *gorm.DB, targetIDs []uint) ([]*certification.Prerequisite, error)
	ListAllEdges(ctx context.Context, tx *gorm.DB) ([]*certification.Prerequisite, error)
	Prerequisites(ctx context.Context, tx *gorm.DB, id uint) ([]*certification.Certification, error)
	RequiredFor(ctx context.Context, tx *gorm.DB, id uint) ([]*certification.Certification, error)
	EdgeExists(ctx context.Context, tx *gorm.DB, certID, prereqID uint) (bool, error)
	AddPrerequisite(ctx context.Context, tx *gorm.DB, certID, prereqID uint) error
	RemovePrerequisite(ctx context.Context, tx *gorm.DB, certID, prereqID uint) (int64, error)

	CountByCategory(ctx context.Context, tx *gorm.DB) ([]certification.CategoryCount, error)
}

type certificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCertificationRepo(db *gorm.DB, baseLog *logger.Logger) CertificationRepo {
	return &certificationRepo{db: db, log: baseLog.With("repo", "CertificationRepo")}
}

func (r *certificationRepo) Create(ctx context.Context, tx *gorm.DB, c *certification.Certification) error {
	return conn(r.db, tx).WithContext(ctx).Create(c).Error
}

func (r *certificationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*certification.Certification, error) {
	var c certification.Certification
	if err := conn(r.db, tx).WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *certificationRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*certification.Certification, error) {
	var c certification.Certification
	if err := conn(r.db, tx).WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *certificationRepo) List(ctx context.Context, tx *gorm.DB, f CertificationFilter) ([]*certification.Certification, error) {
	q := conn(r.db, tx).WithContext(ctx).Where("is_active = ?", true)
	if f.Category != "" {
		q = q.Where("category_main = ?", f.Category)
	}
	if f.CategorySub != "" {
		q = q.Where("category_sub = ?", f.CategorySub)
	}
	if f.Level != "" {
		q = q.Where("level = ?", f.Level)
	}
	if strings.TrimSpace(f.Search) != "" {
		p := likePattern(f.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", p, p)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []*certification.Certification
	err := q.Offset(f.Offset).Order("level_order DESC").Order("name").Find(&out).Error
	return out, err
}

func (r *certificationRepo) ListPage(ctx context.Context, tx *gorm.DB, search string, offset, limit int) ([]*certification.Certification, int64, error) {
	q := conn(r.db, tx).WithContext(ctx).Model(&certification.Certification{})
	if strings.TrimSpace(search) != "" {
		p := likePattern(search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", p, p)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []*certification.Certification
	if err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *certificationRepo) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return conn(r.db, tx).WithContext(ctx).
		Model(&certification.Certification{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *certificationRepo) CountActive(ctx context.Context, tx *gorm.DB) (int64, error) {
	var n int64
	err := conn(r.db, tx).WithContext(ctx).
		Model(&certification.Certification{}).
		Where("is_active = ?", true).
		Count(&n).Error
	return n, err
}

// ListActive returns active certifications ordered by id so that callers laying
// them out get the same placement on every read. OtherCategory also matches a
// missing or blank main category, the same rows the category tree files under it.
func (r *certificationRepo) ListActive(ctx context.Context, tx *gorm.DB, category string) ([]*certification.Certification, error) {
	q := conn(r.db, tx).WithContext(ctx).Where("is_active = ?", true)
	switch category {
	case "":
	case certification.OtherCategory:
		q = q.Where("(category_main = ? OR category_main IS NULL OR TRIM(category_main) = '')", category)
	default:
		q = q.Where("category_main = ?", category)
	}
	var out []*certification.Certification
	err := q.Order("id").Find(&out).Error
	return out, err
}

// ListPrerequisiteEdges returns every stored edge pointing at one of targetIDs.
// The source side is not filtered.
func (r *certificationRepo) ListPrerequisiteEdges(ctx context.Context, tx *gorm.DB, targetIDs []uint) ([]*certification.Prerequisite, error) {
	out := []*certification.Prerequisite{}
	if len(targetIDs) == 0 {
		return out, nil
	}
	err := conn(r.db, tx).WithContext(ctx).
		Where("certification_id IN ?", targetIDs).
		Order("certification_id").Order("prerequisite_id").
		Find(&out).Error
	return out, err
}

func (r *certificationRepo) ListAllEdges(ctx context.Context, tx *gorm.DB) ([]*certification.Prerequisite, error) {
	var out []*certification.Prerequisite
	err := conn(r.db, tx).WithContext(ctx).
		Order("certification_id").Order("prerequisite_id").
		Find(&out).Error
	return out, err
}

func (r *certificationRepo) Prerequisites(ctx context.Context, tx *gorm.DB, id uint) ([]*certification.Certification, error) {
	var out []*certification.Certification
	err := conn(r.db, tx).WithContext(ctx).
		Joins("JOIN certification_prerequisites cp ON cp.prerequisite_id = certifications.id").
		Where("cp.certification_id = ?", id).
		Order("certifications.level_order DESC").Order("certifications.id").
		Find(&out).Error
	return out, err
}

func (r *certificationRepo) RequiredFor(ctx context.Context, tx *gorm.DB, id uint) ([]*certification.Certification, error) {
	var out []*certification.Certification
	err := conn(r.db, tx).WithContext(ctx).
		Joins("JOIN certification_prerequisites cp ON cp.certification_id = certifications.id").
		Where("cp.prerequisite_id = ?", id).
		Order("certifications.level_order").Order("certifications.id").
		Find(&out).Error
	return out, err
}

func (r *certificationRepo) EdgeExists(ctx context.Context, tx *gorm.DB, certID, prereqID uint) (bool, error) {
	var n int64
	err := conn(r.db, tx).WithContext(ctx).
		Model(&certification.Prerequisite{}).
		Where("certification_id = ? AND prerequisite_id = ?", certID, prereqID).
		Count(&n).Error
	return n > 0, err
}

func (r *certificationRepo) AddPrerequisite(ctx context.Context, tx *gorm.DB, certID, prereqID uint) error {
	return conn(r.db, tx).WithContext(ctx).
		Create(&certification.Prerequisite{CertificationID: certID, PrerequisiteID: prereqID}).Error
}

func (r *certificationRepo) RemovePrerequisite(ctx context.Context, tx *gorm.DB, certID, prereqID uint) (int64, error) {
	res := conn(r.db, tx).WithContext(ctx).
		Where("certification_id = ? AND prerequisite_id = ?", certID, prereqID).
		Delete(&certification.Prerequisite{})
	return res.RowsAffected, res.Error
}

// CountByCategory groups active certifications by raw (main, sub) values.
// NULLs come back as nil; normalisation is the caller's job.
func (r *certificationRepo) CountByCategory(ctx context.Context, tx *gorm.DB) ([]certification.CategoryCount, error) {
	var rows []certification.CategoryCount
	err := conn(r.db, tx).WithContext(ctx).
		Model(&certification.Certification{}).
		Select("category_main AS main, category_sub AS sub, COUNT(id) AS count").
		Where("is_active = ?", true).
		Group("category_main").Group("category_sub").
		Scan(&rows).Error
	return rows, err
}
