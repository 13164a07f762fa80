package services

import (
	"testing"

	"gorm.io/gorm"

	"speclab-backend/metrics"
	"speclab-backend/models/certification"
	"speclab-backend/repository"
	"speclab-backend/testutil"
)

type fixture struct {
	db    *gorm.DB
	repos *repository.Repos
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	return &fixture{db: db, repos: testutil.Repos(t, db)}
}

func (f *fixture) cert(t *testing.T, name, code, level string) *certification.Certification {
	t.Helper()
	return testutil.CreateCertification(t, f.db, testutil.NewCertification(name, code, "IT", "소프트웨어", level))
}

func (f *fixture) catalog(t *testing.T, rejectCycles bool) *CatalogService {
	return NewCatalogService(f.db, f.repos, rejectCycles, testutil.Logger(t))
}

func (f *fixture) progress(t *testing.T) (*ProgressService, *metrics.Metrics) {
	m := metrics.New()
	return NewProgressService(f.db, f.repos, m, testutil.Logger(t)), m
}
