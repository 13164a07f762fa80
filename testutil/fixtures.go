package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"speclab-backend/models/career"
	"speclab-backend/models/certification"
	"speclab-backend/models/users"
)

func Ptr[T any](v T) *T { return &v }

// NewCertification builds an active certification; level may be empty.
func NewCertification(name, code, main, sub, level string) *certification.Certification {
	c := &certification.Certification{
		Name:     name,
		Code:     Ptr(code),
		Issuer:   Ptr("한국산업인력공단"),
		IsActive: true,
	}
	if main != "" {
		c.CategoryMain = Ptr(main)
	}
	if sub != "" {
		c.CategorySub = Ptr(sub)
	}
	if level != "" {
		c.Level = Ptr(level)
		c.LevelOrder = certification.OrderFor(c.Level)
	}
	return c
}

func CreateCertification(tb testing.TB, db *gorm.DB, c *certification.Certification) *certification.Certification {
	tb.Helper()
	if err := db.WithContext(context.Background()).Create(c).Error; err != nil {
		tb.Fatalf("create certification %s: %v", c.Name, err)
	}
	return c
}

func CreateEdge(tb testing.TB, db *gorm.DB, prereqID, certID uint) {
	tb.Helper()
	if err := db.Create(&certification.Prerequisite{CertificationID: certID, PrerequisiteID: prereqID}).Error; err != nil {
		tb.Fatalf("create edge %d->%d: %v", prereqID, certID, err)
	}
}

func CreateUser(tb testing.TB, db *gorm.DB, email string, superuser bool) *users.User {
	tb.Helper()
	u := &users.User{Email: email, HashedPassword: "x", IsActive: true, IsSuperuser: superuser}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func CreateCareer(tb testing.TB, db *gorm.DB, name, typ, category string) *career.CareerPath {
	tb.Helper()
	c := &career.CareerPath{Name: name, Type: typ, Category: Ptr(category), IsActive: true}
	if err := db.Omit("Requirements").Create(c).Error; err != nil {
		tb.Fatalf("create career %s: %v", name, err)
	}
	return c
}
