package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"speclab-backend/apierr"
	"speclab-backend/logger"
	"speclab-backend/models/users"
	"speclab-backend/repository"
)

type ProfileUpdate struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	FullName *string `json:"full_name"`
}

// AdminUserUpdate extends ProfileUpdate with the flags only a superuser may set.
type AdminUserUpdate struct {
	ProfileUpdate
	IsActive    *bool `json:"is_active"`
	IsSuperuser *bool `json:"is_superuser"`
}

type Stats struct {
	TotalUsers          int64 `json:"total_users"`
	TotalCertifications int64 `json:"total_certifications"`
	TotalCareers        int64 `json:"total_careers"`
}

type UserService struct {
	db    *gorm.DB
	repos *repository.Repos
	log   *logger.Logger
}

func NewUserService(db *gorm.DB, repos *repository.Repos, baseLog *logger.Logger) *UserService {
	return &UserService{db: db, repos: repos, log: baseLog.With("service", "UserService")}
}

func (s *UserService) Get(ctx context.Context, id uint) (*users.User, error) {
	u, err := s.repos.Users.GetByID(ctx, nil, id)
	if repository.IsNotFound(err) {
		return nil, apierr.NotFound("사용자를 찾을 수 없습니다")
	}
	return u, err
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, in ProfileUpdate) (*users.User, error) {
	return s.update(ctx, id, in, nil)
}

func (s *UserService) AdminUpdate(ctx context.Context, id uint, in AdminUserUpdate) (*users.User, error) {
	extra := map[string]any{}
	if in.IsActive != nil {
		extra["is_active"] = *in.IsActive
	}
	if in.IsSuperuser != nil {
		extra["is_superuser"] = *in.IsSuperuser
	}
	return s.update(ctx, id, in.ProfileUpdate, extra)
}

func (s *UserService) update(ctx context.Context, id uint, in ProfileUpdate, fields map[string]any) (*users.User, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	var out *users.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := s.repos.Users.GetByID(ctx, tx, id)
		if repository.IsNotFound(err) {
			return apierr.NotFound("사용자를 찾을 수 없습니다")
		}
		if err != nil {
			return err
		}
		if in.Email != nil {
			email, err := validateEmail(*in.Email)
			if err != nil {
				return err
			}
			if email != u.Email {
				taken, err := s.repos.Users.EmailExists(ctx, tx, email)
				if err != nil {
					return err
				}
				if taken {
					return apierr.Conflict("이미 등록된 이메일입니다")
				}
				fields["email"] = email
			}
		}
		if in.Password != nil {
			if err := validatePassword(*in.Password); err != nil {
				return err
			}
			hash, err := HashPassword(*in.Password)
			if err != nil {
				return err
			}
			fields["hashed_password"] = hash
		}
		if in.FullName != nil {
			name := strings.TrimSpace(*in.FullName)
			fields["full_name"] = &name
		}
		if err := s.repos.Users.Update(ctx, tx, id, fields); err != nil {
			return fmt.Errorf("update user %d: %w", id, err)
		}
		out, err = s.repos.Users.GetByID(ctx, tx, id)
		return err
	})
	return out, err
}

func (s *UserService) AdminList(ctx context.Context, search string, page, limit int) (Page[*users.User], error) {
	items, total, err := s.repos.Users.ListPage(ctx, nil, search, (page-1)*limit, limit)
	if err != nil {
		return Page[*users.User]{}, err
	}
	if items == nil {
		items = []*users.User{}
	}
	return Page[*users.User]{Items: items, Total: total}, nil
}

// Stats counts users, active certifications and careers concurrently.
func (s *UserService) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.TotalUsers, err = s.repos.Users.Count(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		st.TotalCertifications, err = s.repos.Certifications.CountActive(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		st.TotalCareers, err = s.repos.Careers.Count(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, fmt.Errorf("collect stats: %w", err)
	}
	return st, nil
}

// Delete removes a user with their progress rows. An admin cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return apierr.BadRequest("자기 자신은 삭제할 수 없습니다")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repos.Users.Delete(ctx, tx, id)
	})
}
