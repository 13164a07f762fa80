package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"speclab-backend/apierr"
	"speclab-backend/logger"
	"speclab-backend/models/career"
	"speclab-backend/repository"
)

type CareerInput struct {
	Name            *string `json:"name"`
	Type            *string `json:"type"`
	Category        *string `json:"category"`
	Description     *string `json:"description"`
	SalaryRange     *string `json:"salary_range"`
	GrowthPotential *string `json:"growth_potential"`
	IsActive        *bool   `json:"is_active"`
}

type RequirementInput struct {
	CertificationID *uint   `json:"certification_id"`
	Description     *string `json:"description"`
	IsMandatory     bool    `json:"is_mandatory"`
}

type CareerService struct {
	db    *gorm.DB
	repos *repository.Repos
	log   *logger.Logger
}

func NewCareerService(db *gorm.DB, repos *repository.Repos, baseLog *logger.Logger) *CareerService {
	return &CareerService{db: db, repos: repos, log: baseLog.With("service", "CareerService")}
}

func (s *CareerService) List(ctx context.Context, f repository.CareerFilter) ([]*career.CareerPath, error) {
	if f.Type != "" && !career.ValidType(f.Type) {
		return nil, apierr.BadRequest("type은 job 또는 startup 이어야 합니다")
	}
	out, err := s.repos.Careers.List(ctx, nil, f)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*career.CareerPath{}
	}
	return out, nil
}

func (s *CareerService) Get(ctx context.Context, id uint) (*career.CareerPath, error) {
	c, err := s.repos.Careers.GetByID(ctx, nil, id)
	if repository.IsNotFound(err) {
		return nil, apierr.NotFound("진로 정보를 찾을 수 없습니다")
	}
	return c, err
}

func (s *CareerService) AdminList(ctx context.Context, search string, page, limit int) (Page[*career.CareerPath], error) {
	items, total, err := s.repos.Careers.ListPage(ctx, nil, search, (page-1)*limit, limit)
	if err != nil {
		return Page[*career.CareerPath]{}, err
	}
	if items == nil {
		items = []*career.CareerPath{}
	}
	return Page[*career.CareerPath]{Items: items, Total: total}, nil
}

func (s *CareerService) Create(ctx context.Context, in CareerInput) (*career.CareerPath, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, apierr.BadRequest("진로 이름은 필수입니다")
	}
	c := &career.CareerPath{
		Name:            strings.TrimSpace(*in.Name),
		Type:            career.TypeJob,
		Category:        in.Category,
		Description:     in.Description,
		SalaryRange:     in.SalaryRange,
		GrowthPotential: in.GrowthPotential,
		IsActive:        true,
	}
	if in.Type != nil {
		if !career.ValidType(*in.Type) {
			return nil, apierr.BadRequest("type은 job 또는 startup 이어야 합니다")
		}
		c.Type = *in.Type
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := s.repos.Careers.Create(ctx, nil, c); err != nil {
		return nil, err
	}
	c.Requirements = []career.Requirement{}
	s.log.Info("career created", "career_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *CareerService) Update(ctx context.Context, id uint, in CareerInput) (*career.CareerPath, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apierr.BadRequest("진로 이름은 비워둘 수 없습니다")
		}
		fields["name"] = name
	}
	if in.Type != nil {
		if !career.ValidType(*in.Type) {
			return nil, apierr.BadRequest("type은 job 또는 startup 이어야 합니다")
		}
		fields["type"] = *in.Type
	}
	if in.Category != nil {
		fields["category"] = in.Category
	}
	if in.Description != nil {
		fields["description"] = in.Description
	}
	if in.SalaryRange != nil {
		fields["salary_range"] = in.SalaryRange
	}
	if in.GrowthPotential != nil {
		fields["growth_potential"] = in.GrowthPotential
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if err := s.repos.Careers.Update(ctx, nil, id, fields); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *CareerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repos.Careers.Delete(ctx, tx, id)
	})
}

func (s *CareerService) AddRequirement(ctx context.Context, careerID uint, in RequirementInput) (*career.Requirement, error) {
	if _, err := s.Get(ctx, careerID); err != nil {
		return nil, err
	}
	req := &career.Requirement{
		CareerPathID:    careerID,
		CertificationID: in.CertificationID,
		Description:     in.Description,
		IsMandatory:     in.IsMandatory,
	}
	if in.CertificationID != nil {
		cert, err := s.repos.Certifications.GetByID(ctx, nil, *in.CertificationID)
		if repository.IsNotFound(err) {
			return nil, apierr.NotFound("자격증을 찾을 수 없습니다")
		}
		if err != nil {
			return nil, err
		}
		req.CertificationName = &cert.Name
	} else if in.Description == nil || strings.TrimSpace(*in.Description) == "" {
		return nil, apierr.BadRequest("자격증 또는 설명 중 하나는 필요합니다")
	}
	if err := s.repos.Careers.AddRequirement(ctx, nil, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *CareerService) RemoveRequirement(ctx context.Context, careerID, requirementID uint) error {
	if _, err := s.repos.Careers.GetRequirement(ctx, nil, careerID, requirementID); err != nil {
		if repository.IsNotFound(err) {
			return apierr.NotFound("요구사항을 찾을 수 없습니다")
		}
		return err
	}
	return s.repos.Careers.DeleteRequirement(ctx, nil, requirementID)
}
