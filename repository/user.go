package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"speclab-backend/logger"
	"speclab-backend/models/users"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, u *users.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*users.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*users.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	ListPage(ctx context.Context, tx *gorm.DB, search string, offset, limit int) ([]*users.User, int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, u *users.User) error {
	return conn(r.db, tx).WithContext(ctx).Create(u).Error
}

func (r *userRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*users.User, error) {
	var u users.User
	if err := conn(r.db, tx).WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*users.User, error) {
	var u users.User
	if err := conn(r.db, tx).WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	var n int64
	err := conn(r.db, tx).WithContext(ctx).
		Model(&users.User{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&n).Error
	return n > 0, err
}

func (r *userRepo) ListPage(ctx context.Context, tx *gorm.DB, search string, offset, limit int) ([]*users.User, int64, error) {
	q := conn(r.db, tx).WithContext(ctx).Model(&users.User{})
	if strings.TrimSpace(search) != "" {
		p := likePattern(search)
		q = q.Where("LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", p, p)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []*users.User
	if err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *userRepo) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if email, ok := fields["email"].(string); ok {
		fields["email"] = normalizeEmail(email)
	}
	return conn(r.db, tx).WithContext(ctx).
		Model(&users.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes the user together with acquired certifications and goals.
func (r *userRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := conn(r.db, tx).WithContext(ctx)
	if err := db.Where("user_id = ?", id).Delete(&users.UserCertification{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", id).Delete(&users.UserGoal{}).Error; err != nil {
		return err
	}
	return db.Delete(&users.User{}, id).Error
}

func (r *userRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var n int64
	err := conn(r.db, tx).WithContext(ctx).Model(&users.User{}).Count(&n).Error
	return n, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
