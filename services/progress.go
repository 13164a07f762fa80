package services

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"speclab-backend/apierr"
	"speclab-backend/logger"
	"speclab-backend/metrics"
	"speclab-backend/models/users"
	"speclab-backend/repository"
	"speclab-backend/services/techtree"
)

type AcquireInput struct {
	CertificationID   uint            `json:"certification_id"`
	AcquiredDate      *datatypes.Date `json:"acquired_date"`
	Score             *int            `json:"score"`
	CertificateNumber *string         `json:"certificate_number"`
}

type GoalInput struct {
	CertificationID uint            `json:"certification_id"`
	TargetDate      *datatypes.Date `json:"target_date"`
	Status          *string         `json:"status"`
}

type GoalUpdate struct {
	TargetDate *datatypes.Date `json:"target_date"`
	Status     *string         `json:"status"`
}

// ProgressService manages what a user holds and what they are aiming for.
type ProgressService struct {
	db      *gorm.DB
	repos   *repository.Repos
	metrics *metrics.Metrics
	log     *logger.Logger
}

func NewProgressService(db *gorm.DB, repos *repository.Repos, m *metrics.Metrics, baseLog *logger.Logger) *ProgressService {
	return &ProgressService{db: db, repos: repos, metrics: m, log: baseLog.With("service", "ProgressService")}
}

func (s *ProgressService) Certifications(ctx context.Context, userID uint) ([]*users.UserCertification, error) {
	return s.repos.Progress.ListCertifications(ctx, nil, userID)
}

// Acquire records the certification and completes any open goal for it in the
// same transaction.
func (s *ProgressService) Acquire(ctx context.Context, userID uint, in AcquireInput) (*users.UserCertification, error) {
	uc := &users.UserCertification{
		UserID:            userID,
		CertificationID:   in.CertificationID,
		AcquiredDate:      in.AcquiredDate,
		Score:             in.Score,
		CertificateNumber: in.CertificateNumber,
	}
	var completed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cert, err := s.repos.Certifications.GetByID(ctx, tx, in.CertificationID)
		if repository.IsNotFound(err) {
			return apierr.NotFound("자격증을 찾을 수 없습니다")
		}
		if err != nil {
			return err
		}
		held, err := s.repos.Progress.HasCertification(ctx, tx, userID, in.CertificationID)
		if err != nil {
			return err
		}
		if held {
			return apierr.Conflict("이미 취득한 자격증입니다")
		}
		if err := s.repos.Progress.CreateCertification(ctx, tx, uc); err != nil {
			if repository.IsDuplicate(err) {
				return apierr.Conflict("이미 취득한 자격증입니다")
			}
			return err
		}
		completed, err = s.repos.Progress.CompleteGoals(ctx, tx, userID, in.CertificationID)
		if err != nil {
			return err
		}
		uc.Certification = cert
		return nil
	})
	if err != nil {
		return nil, err
	}
	if completed > 0 {
		s.metrics.GoalsCompleted(completed)
		s.log.Info("goal completed by acquisition", "user_id", userID, "certification_id", in.CertificationID)
	}
	return uc, nil
}

func (s *ProgressService) RemoveCertification(ctx context.Context, userID, certID uint) error {
	uc, err := s.repos.Progress.GetCertification(ctx, nil, userID, certID)
	if repository.IsNotFound(err) {
		return apierr.NotFound("취득한 자격증이 아닙니다")
	}
	if err != nil {
		return err
	}
	return s.repos.Progress.DeleteCertification(ctx, nil, uc.ID)
}

func (s *ProgressService) Goals(ctx context.Context, userID uint) ([]*users.UserGoal, error) {
	return s.repos.Progress.ListGoals(ctx, nil, userID)
}

func (s *ProgressService) AddGoal(ctx context.Context, userID uint, in GoalInput) (*users.UserGoal, error) {
	g := &users.UserGoal{
		UserID:          userID,
		CertificationID: in.CertificationID,
		TargetDate:      in.TargetDate,
		Status:          users.GoalPending,
	}
	if in.Status != nil {
		if !users.ValidGoalStatus(*in.Status) {
			return nil, apierr.BadRequest("status는 pending, in_progress, completed 중 하나여야 합니다")
		}
		g.Status = *in.Status
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cert, err := s.repos.Certifications.GetByID(ctx, tx, in.CertificationID)
		if repository.IsNotFound(err) {
			return apierr.NotFound("자격증을 찾을 수 없습니다")
		}
		if err != nil {
			return err
		}
		exists, err := s.repos.Progress.HasGoal(ctx, tx, userID, in.CertificationID)
		if err != nil {
			return err
		}
		if exists {
			return apierr.Conflict("이미 목표로 등록된 자격증입니다")
		}
		held, err := s.repos.Progress.HasCertification(ctx, tx, userID, in.CertificationID)
		if err != nil {
			return err
		}
		if held {
			return apierr.Conflict("이미 취득한 자격증입니다")
		}
		if err := s.repos.Progress.CreateGoal(ctx, tx, g); err != nil {
			if repository.IsDuplicate(err) {
				return apierr.Conflict("이미 목표로 등록된 자격증입니다")
			}
			return err
		}
		g.Certification = cert
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (s *ProgressService) UpdateGoal(ctx context.Context, userID, goalID uint, in GoalUpdate) (*users.UserGoal, error) {
	if _, err := s.goal(ctx, userID, goalID); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if in.Status != nil {
		if !users.ValidGoalStatus(*in.Status) {
			return nil, apierr.BadRequest("status는 pending, in_progress, completed 중 하나여야 합니다")
		}
		fields["status"] = *in.Status
	}
	if in.TargetDate != nil {
		fields["target_date"] = in.TargetDate
	}
	if err := s.repos.Progress.UpdateGoal(ctx, nil, goalID, fields); err != nil {
		return nil, err
	}
	return s.goal(ctx, userID, goalID)
}

func (s *ProgressService) DeleteGoal(ctx context.Context, userID, goalID uint) error {
	if _, err := s.goal(ctx, userID, goalID); err != nil {
		return err
	}
	return s.repos.Progress.DeleteGoal(ctx, nil, goalID)
}

func (s *ProgressService) goal(ctx context.Context, userID, goalID uint) (*users.UserGoal, error) {
	g, err := s.repos.Progress.GetGoal(ctx, nil, userID, goalID)
	if repository.IsNotFound(err) {
		return nil, apierr.NotFound("목표를 찾을 수 없습니다")
	}
	return g, err
}

// Recommendations lists active certifications the user can now attempt: every
// prerequisite is held and the certification is neither held nor already a goal.
func (s *ProgressService) Recommendations(ctx context.Context, userID uint) ([]techtree.Unlocked, error) {
	certs, err := s.repos.Certifications.ListActive(ctx, nil, "")
	if err != nil {
		return nil, err
	}
	edges, err := s.repos.Certifications.ListAllEdges(ctx, nil)
	if err != nil {
		return nil, err
	}
	owned, err := s.repos.Progress.ListCertifications(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.repos.Progress.ListGoals(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	held := make(map[uint]bool, len(owned))
	for _, uc := range owned {
		held[uc.CertificationID] = true
	}
	aimed := make(map[uint]bool, len(goals))
	for _, g := range goals {
		aimed[g.CertificationID] = true
	}
	return techtree.NextSteps(certs, edges, held, aimed), nil
}
