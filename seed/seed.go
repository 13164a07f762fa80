// Package seed loads the embedded starter catalog into an empty or partly
// filled database. Running it twice changes nothing.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"speclab-backend/logger"
	"speclab-backend/models/career"
	"speclab-backend/models/certification"
	"speclab-backend/models/users"
	"speclab-backend/repository"
	"speclab-backend/services"
)

//go:embed data.yaml
var defaultData []byte

type Data struct {
	Superuser struct {
		FullName string `yaml:"full_name"`
	} `yaml:"superuser"`
	Certifications []Certification `yaml:"certifications"`
	Prerequisites  []Edge          `yaml:"prerequisites"`
	Careers        []Career        `yaml:"careers"`
}

type Certification struct {
	Name         string  `yaml:"name"`
	Code         string  `yaml:"code"`
	Issuer       *string `yaml:"issuer"`
	CategoryMain *string `yaml:"category_main"`
	CategorySub  *string `yaml:"category_sub"`
	Level        *string `yaml:"level"`
	LevelOrder   *int    `yaml:"level_order"`
	FeeWritten   *int    `yaml:"fee_written"`
	FeePractical *int    `yaml:"fee_practical"`
	PassRate     *string `yaml:"pass_rate"`
	Description  *string `yaml:"description"`
	Eligibility  *string `yaml:"eligibility"`
	Subjects     *string `yaml:"subjects"`
}

// Edge names both ends by certification name.
type Edge struct {
	Prerequisite  string `yaml:"prerequisite"`
	Certification string `yaml:"certification"`
}

type Career struct {
	Name            string        `yaml:"name"`
	Type            string        `yaml:"type"`
	Category        *string       `yaml:"category"`
	Description     *string       `yaml:"description"`
	SalaryRange     *string       `yaml:"salary_range"`
	GrowthPotential *string       `yaml:"growth_potential"`
	Requirements    []Requirement `yaml:"requirements"`
}

type Requirement struct {
	Certification string  `yaml:"certification"`
	Description   *string `yaml:"description"`
	Mandatory     bool    `yaml:"mandatory"`
}

type Superuser struct {
	Email    string
	Password string
}

type Result struct {
	Certifications int
	Prerequisites  int
	Careers        int
	Requirements   int
	Superuser      bool
}

func Default() (*Data, error) {
	return Parse(defaultData)
}

func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	for i, c := range d.Certifications {
		if c.Name == "" || c.Code == "" {
			return nil, fmt.Errorf("seed certification %d: name and code are required", i)
		}
	}
	return &d, nil
}

type Seeder struct {
	db    *gorm.DB
	repos *repository.Repos
	log   *logger.Logger
}

func NewSeeder(db *gorm.DB, log *logger.Logger) *Seeder {
	return &Seeder{db: db, repos: repository.New(db, log), log: log.With("component", "Seeder")}
}

// Run inserts whatever part of d is missing. Certifications are matched by
// code, careers by name and the superuser by email.
func (s *Seeder) Run(ctx context.Context, d *Data, su Superuser) (Result, error) {
	var res Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if su.Email != "" {
			created, err := s.superuser(ctx, tx, su, d.Superuser.FullName)
			if err != nil {
				return err
			}
			res.Superuser = created
		}

		byName := make(map[string]uint, len(d.Certifications))
		for _, sc := range d.Certifications {
			id, created, err := s.certification(ctx, tx, sc)
			if err != nil {
				return err
			}
			byName[sc.Name] = id
			if created {
				res.Certifications++
			}
		}

		for _, e := range d.Prerequisites {
			prereqID, ok1 := byName[e.Prerequisite]
			certID, ok2 := byName[e.Certification]
			if !ok1 || !ok2 {
				s.log.Warn("seed edge skipped", "prerequisite", e.Prerequisite, "certification", e.Certification)
				continue
			}
			exists, err := s.repos.Certifications.EdgeExists(ctx, tx, certID, prereqID)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if err := s.repos.Certifications.AddPrerequisite(ctx, tx, certID, prereqID); err != nil {
				return fmt.Errorf("seed edge %s -> %s: %w", e.Prerequisite, e.Certification, err)
			}
			res.Prerequisites++
		}

		for _, sc := range d.Careers {
			n, created, err := s.career(ctx, tx, sc, byName)
			if err != nil {
				return err
			}
			if created {
				res.Careers++
				res.Requirements += n
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	s.log.Info("seed finished",
		"certifications", res.Certifications,
		"prerequisites", res.Prerequisites,
		"careers", res.Careers,
		"requirements", res.Requirements,
		"superuser_created", res.Superuser,
	)
	return res, nil
}

func (s *Seeder) superuser(ctx context.Context, tx *gorm.DB, su Superuser, fullName string) (bool, error) {
	exists, err := s.repos.Users.EmailExists(ctx, tx, su.Email)
	if err != nil || exists {
		return false, err
	}
	hash, err := services.HashPassword(su.Password)
	if err != nil {
		return false, err
	}
	u := &users.User{Email: su.Email, HashedPassword: hash, IsActive: true, IsSuperuser: true}
	if fullName != "" {
		u.FullName = &fullName
	}
	if err := s.repos.Users.Create(ctx, tx, u); err != nil {
		return false, fmt.Errorf("seed superuser: %w", err)
	}
	return true, nil
}

func (s *Seeder) certification(ctx context.Context, tx *gorm.DB, sc Certification) (uint, bool, error) {
	existing, err := s.repos.Certifications.GetByCode(ctx, tx, sc.Code)
	if err == nil {
		return existing.ID, false, nil
	}
	if !repository.IsNotFound(err) {
		return 0, false, err
	}
	code := sc.Code
	c := &certification.Certification{
		Name:         sc.Name,
		Code:         &code,
		Issuer:       sc.Issuer,
		CategoryMain: sc.CategoryMain,
		CategorySub:  sc.CategorySub,
		Level:        sc.Level,
		LevelOrder:   certification.OrderFor(sc.Level),
		FeeWritten:   sc.FeeWritten,
		FeePractical: sc.FeePractical,
		PassRate:     sc.PassRate,
		Description:  sc.Description,
		Eligibility:  sc.Eligibility,
		Subjects:     sc.Subjects,
		IsActive:     true,
	}
	if sc.LevelOrder != nil {
		c.LevelOrder = *sc.LevelOrder
	}
	if err := s.repos.Certifications.Create(ctx, tx, c); err != nil {
		return 0, false, fmt.Errorf("seed certification %s: %w", sc.Name, err)
	}
	return c.ID, true, nil
}

func (s *Seeder) career(ctx context.Context, tx *gorm.DB, sc Career, certs map[string]uint) (int, bool, error) {
	found, err := s.repos.Careers.List(ctx, tx, repository.CareerFilter{Search: sc.Name})
	if err != nil {
		return 0, false, err
	}
	for _, c := range found {
		if c.Name == sc.Name {
			return 0, false, nil
		}
	}
	typ := sc.Type
	if typ == "" {
		typ = career.TypeJob
	}
	cp := &career.CareerPath{
		Name:            sc.Name,
		Type:            typ,
		Category:        sc.Category,
		Description:     sc.Description,
		SalaryRange:     sc.SalaryRange,
		GrowthPotential: sc.GrowthPotential,
		IsActive:        true,
	}
	if err := s.repos.Careers.Create(ctx, tx, cp); err != nil {
		return 0, false, fmt.Errorf("seed career %s: %w", sc.Name, err)
	}
	n := 0
	for _, r := range sc.Requirements {
		certID, ok := certs[r.Certification]
		if !ok {
			s.log.Warn("seed requirement skipped", "career", sc.Name, "certification", r.Certification)
			continue
		}
		req := &career.Requirement{
			CareerPathID:    cp.ID,
			CertificationID: &certID,
			Description:     r.Description,
			IsMandatory:     r.Mandatory,
		}
		if err := s.repos.Careers.AddRequirement(ctx, tx, req); err != nil {
			return 0, false, fmt.Errorf("seed requirement %s/%s: %w", sc.Name, r.Certification, err)
		}
		n++
	}
	return n, true, nil
}
