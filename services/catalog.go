package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"speclab-backend/apierr"
	"speclab-backend/logger"
	"speclab-backend/models/career"
	"speclab-backend/models/certification"
	"speclab-backend/repository"
	"speclab-backend/services/techtree"
)

// CertificationInput is used for both create and partial update; nil fields are left alone.
type CertificationInput struct {
	Name         *string `json:"name"`
	Code         *string `json:"code"`
	Issuer       *string `json:"issuer"`
	CategoryMain *string `json:"category_main"`
	CategorySub  *string `json:"category_sub"`
	Level        *string `json:"level"`
	LevelOrder   *int    `json:"level_order"`
	FeeWritten   *int    `json:"fee_written"`
	FeePractical *int    `json:"fee_practical"`
	PassRate     *string `json:"pass_rate"`
	Description  *string `json:"description"`
	Eligibility  *string `json:"eligibility"`
	Subjects     *string `json:"subjects"`
	IsActive     *bool   `json:"is_active"`
}

type CertificationDetail struct {
	*certification.Certification
	Prerequisites  []certification.Simple `json:"prerequisites"`
	RequiredFor    []certification.Simple `json:"required_for"`
	RelatedCareers []career.Simple        `json:"related_careers"`
}

type ScheduleInput struct {
	RoundName              string          `json:"round_name"`
	ApplicationStartDate   *datatypes.Date `json:"application_start_date"`
	ApplicationEndDate     *datatypes.Date `json:"application_end_date"`
	ExamDate               *datatypes.Date `json:"exam_date"`
	ResultAnnouncementDate *datatypes.Date `json:"result_announcement_date"`
}

type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

type CatalogService struct {
	db           *gorm.DB
	repos        *repository.Repos
	rejectCycles bool
	log          *logger.Logger
}

func NewCatalogService(db *gorm.DB, repos *repository.Repos, rejectCycles bool, baseLog *logger.Logger) *CatalogService {
	return &CatalogService{
		db:           db,
		repos:        repos,
		rejectCycles: rejectCycles,
		log:          baseLog.With("service", "CatalogService"),
	}
}

func (s *CatalogService) List(ctx context.Context, f repository.CertificationFilter) ([]*certification.Certification, error) {
	out, err := s.repos.Certifications.List(ctx, nil, f)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*certification.Certification{}
	}
	return out, nil
}

// Get returns an active certification or NotFound.
func (s *CatalogService) Get(ctx context.Context, id uint) (*certification.Certification, error) {
	c, err := s.repos.Certifications.GetByID(ctx, nil, id)
	if repository.IsNotFound(err) || (err == nil && !c.IsActive) {
		return nil, apierr.NotFound("자격증을 찾을 수 없습니다")
	}
	return c, err
}

func (s *CatalogService) Detail(ctx context.Context, id uint) (*CertificationDetail, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var (
		prereqs, requiredFor []*certification.Certification
		careers              []*career.CareerPath
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prereqs, err = s.repos.Certifications.Prerequisites(gctx, nil, id)
		return err
	})
	g.Go(func() error {
		var err error
		requiredFor, err = s.repos.Certifications.RequiredFor(gctx, nil, id)
		return err
	})
	g.Go(func() error {
		var err error
		careers, err = s.repos.Careers.ListByCertification(gctx, nil, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load certification %d relations: %w", id, err)
	}

	d := &CertificationDetail{
		Certification:  c,
		Prerequisites:  simples(prereqs),
		RequiredFor:    simples(requiredFor),
		RelatedCareers: make([]career.Simple, 0, len(careers)),
	}
	for _, cp := range careers {
		d.RelatedCareers = append(d.RelatedCareers, cp.Simple())
	}
	return d, nil
}

func (s *CatalogService) Schedules(ctx context.Context, certID uint) ([]*certification.ExamSchedule, error) {
	if _, err := s.Get(ctx, certID); err != nil {
		return nil, err
	}
	return s.repos.Schedules.ListByCertification(ctx, nil, certID)
}

// AdminList pages over every certification, inactive ones included.
func (s *CatalogService) AdminList(ctx context.Context, search string, page, limit int) (Page[*certification.Certification], error) {
	items, total, err := s.repos.Certifications.ListPage(ctx, nil, search, (page-1)*limit, limit)
	if err != nil {
		return Page[*certification.Certification]{}, err
	}
	if items == nil {
		items = []*certification.Certification{}
	}
	return Page[*certification.Certification]{Items: items, Total: total}, nil
}

func (s *CatalogService) Create(ctx context.Context, in CertificationInput) (*certification.Certification, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, apierr.BadRequest("자격증 이름은 필수입니다")
	}
	c := &certification.Certification{IsActive: true}
	applyCertification(c, in)
	if in.LevelOrder == nil {
		c.LevelOrder = certification.OrderFor(c.Level)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureCodeFree(ctx, tx, c.Code, 0); err != nil {
			return err
		}
		return s.repos.Certifications.Create(ctx, tx, c)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("certification created", "certification_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *CatalogService) Update(ctx context.Context, id uint, in CertificationInput) (*certification.Certification, error) {
	var out *certification.Certification
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.repos.Certifications.GetByID(ctx, tx, id)
		if repository.IsNotFound(err) {
			return apierr.NotFound("자격증을 찾을 수 없습니다")
		}
		if err != nil {
			return err
		}
		if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
			return apierr.BadRequest("자격증 이름은 비워둘 수 없습니다")
		}
		if in.Code != nil {
			if err := s.ensureCodeFree(ctx, tx, in.Code, id); err != nil {
				return err
			}
		}
		fields := certificationFields(in)
		if in.Level != nil && in.LevelOrder == nil {
			fields["level_order"] = certification.OrderFor(in.Level)
		}
		if err := s.repos.Certifications.Update(ctx, tx, id, fields); err != nil {
			return err
		}
		out, err = s.repos.Certifications.GetByID(ctx, tx, c.ID)
		return err
	})
	return out, err
}

// Deactivate is the admin delete: the row stays so requirements and user
// progress keep resolving.
func (s *CatalogService) Deactivate(ctx context.Context, id uint) error {
	if _, err := s.repos.Certifications.GetByID(ctx, nil, id); err != nil {
		if repository.IsNotFound(err) {
			return apierr.NotFound("자격증을 찾을 수 없습니다")
		}
		return err
	}
	return s.repos.Certifications.Update(ctx, nil, id, map[string]any{"is_active": false})
}

// AddPrerequisite records that prereqID must be held before certID. Under the
// reject policy an edge that would close a cycle is refused.
func (s *CatalogService) AddPrerequisite(ctx context.Context, certID, prereqID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range []uint{certID, prereqID} {
			if _, err := s.repos.Certifications.GetByID(ctx, tx, id); err != nil {
				if repository.IsNotFound(err) {
					return apierr.NotFound(fmt.Sprintf("자격증(%d)을 찾을 수 없습니다", id))
				}
				return err
			}
		}
		exists, err := s.repos.Certifications.EdgeExists(ctx, tx, certID, prereqID)
		if err != nil {
			return err
		}
		if exists {
			return apierr.Conflict("이미 등록된 선수 자격증입니다")
		}
		if s.rejectCycles {
			edges, err := s.repos.Certifications.ListAllEdges(ctx, tx)
			if err != nil {
				return err
			}
			if techtree.WouldCreateCycle(edges, certID, prereqID) {
				return apierr.Conflict("선수 자격증 관계에 순환이 생깁니다")
			}
		}
		return s.repos.Certifications.AddPrerequisite(ctx, tx, certID, prereqID)
	})
}

func (s *CatalogService) RemovePrerequisite(ctx context.Context, certID, prereqID uint) error {
	n, err := s.repos.Certifications.RemovePrerequisite(ctx, nil, certID, prereqID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apierr.NotFound("선수 자격증 관계를 찾을 수 없습니다")
	}
	return nil
}

func (s *CatalogService) CreateSchedule(ctx context.Context, certID uint, in ScheduleInput) (*certification.ExamSchedule, error) {
	if strings.TrimSpace(in.RoundName) == "" {
		return nil, apierr.BadRequest("회차 명은 필수입니다")
	}
	if _, err := s.repos.Certifications.GetByID(ctx, nil, certID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apierr.NotFound("자격증을 찾을 수 없습니다")
		}
		return nil, err
	}
	sch := &certification.ExamSchedule{
		CertificationID:        certID,
		RoundName:              in.RoundName,
		ApplicationStartDate:   in.ApplicationStartDate,
		ApplicationEndDate:     in.ApplicationEndDate,
		ExamDate:               in.ExamDate,
		ResultAnnouncementDate: in.ResultAnnouncementDate,
	}
	if err := s.repos.Schedules.Create(ctx, nil, sch); err != nil {
		return nil, err
	}
	return sch, nil
}

func (s *CatalogService) DeleteSchedule(ctx context.Context, certID, scheduleID uint) error {
	sch, err := s.repos.Schedules.GetByID(ctx, nil, scheduleID)
	if repository.IsNotFound(err) || (err == nil && sch.CertificationID != certID) {
		return apierr.NotFound("시험 일정을 찾을 수 없습니다")
	}
	if err != nil {
		return err
	}
	return s.repos.Schedules.Delete(ctx, nil, scheduleID)
}

func (s *CatalogService) ensureCodeFree(ctx context.Context, tx *gorm.DB, code *string, selfID uint) error {
	if code == nil || *code == "" {
		return nil
	}
	existing, err := s.repos.Certifications.GetByCode(ctx, tx, *code)
	if repository.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return apierr.Conflict("이미 사용 중인 자격증 코드입니다")
	}
	return nil
}

func applyCertification(c *certification.Certification, in CertificationInput) {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	c.Code = emptyToNil(in.Code)
	c.Issuer = in.Issuer
	c.CategoryMain = in.CategoryMain
	c.CategorySub = in.CategorySub
	c.Level = in.Level
	if in.LevelOrder != nil {
		c.LevelOrder = *in.LevelOrder
	}
	c.FeeWritten = in.FeeWritten
	c.FeePractical = in.FeePractical
	c.PassRate = in.PassRate
	c.Description = in.Description
	c.Eligibility = in.Eligibility
	c.Subjects = in.Subjects
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
}

func certificationFields(in CertificationInput) map[string]any {
	fields := map[string]any{}
	set := func(col string, v any, ok bool) {
		if ok {
			fields[col] = v
		}
	}
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Code != nil {
		fields["code"] = emptyToNil(in.Code)
	}
	set("issuer", in.Issuer, in.Issuer != nil)
	set("category_main", in.CategoryMain, in.CategoryMain != nil)
	set("category_sub", in.CategorySub, in.CategorySub != nil)
	set("level", in.Level, in.Level != nil)
	set("level_order", in.LevelOrder, in.LevelOrder != nil)
	set("fee_written", in.FeeWritten, in.FeeWritten != nil)
	set("fee_practical", in.FeePractical, in.FeePractical != nil)
	set("pass_rate", in.PassRate, in.PassRate != nil)
	set("description", in.Description, in.Description != nil)
	set("eligibility", in.Eligibility, in.Eligibility != nil)
	set("subjects", in.Subjects, in.Subjects != nil)
	set("is_active", in.IsActive, in.IsActive != nil)
	return fields
}

func simples(certs []*certification.Certification) []certification.Simple {
	out := make([]certification.Simple, 0, len(certs))
	for _, c := range certs {
		out = append(out, c.Simple())
	}
	return out
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
