package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speclab-backend/apierr"
	"speclab-backend/models/career"
	"speclab-backend/models/certification"
	"speclab-backend/repository"
	"speclab-backend/testutil"
)

func TestCatalogListFiltersAndOrders(t *testing.T) {
	f := newFixture(t)
	svc := f.catalog(t, false)
	ctx := context.Background()

	f.cert(t, "정보처리기능사", "6921", certification.LevelCraftsman)
	f.cert(t, "정보처리기사", "1320", certification.LevelEngineer)
	f.cert(t, "정보관리기술사", "0601", certification.LevelTechnician)
	hidden := testutil.NewCertification("폐지된자격", "9999", "IT", "소프트웨어", certification.LevelEngineer)
	testutil.CreateCertification(t, f.db, hidden)
	require.NoError(t, f.db.Model(hidden).Update("is_active", false).Error)

	all, err := svc.List(ctx, repository.CertificationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "정보관리기술사", all[0].Name)
	assert.Equal(t, "정보처리기능사", all[2].Name)

	engineers, err := svc.List(ctx, repository.CertificationFilter{Level: certification.LevelEngineer})
	require.NoError(t, err)
	require.Len(t, engineers, 1)
	assert.Equal(t, "정보처리기사", engineers[0].Name)

	byCode, err := svc.List(ctx, repository.CertificationFilter{Search: "0601"})
	require.NoError(t, err)
	require.Len(t, byCode, 1)

	none, err := svc.List(ctx, repository.CertificationFilter{Category: "없음"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCatalogDetail(t *testing.T) {
	f := newFixture(t)
	svc := f.catalog(t, false)
	ctx := context.Background()

	a := f.cert(t, "A", "A", certification.LevelCraftsman)
	b := f.cert(t, "B", "B", certification.LevelEngineer)
	c := f.cert(t, "C", "C", certification.LevelTechnician)
	testutil.CreateEdge(t, f.db, a.ID, b.ID)
	testutil.CreateEdge(t, f.db, b.ID, c.ID)
	dev := testutil.CreateCareer(t, f.db, "백엔드 개발자", "job", "IT")
	require.NoError(t, f.repos.Careers.AddRequirement(ctx, nil, &career.Requirement{CareerPathID: dev.ID, CertificationID: &b.ID}))

	d, err := svc.Detail(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", d.Name)
	require.Len(t, d.Prerequisites, 1)
	assert.Equal(t, a.ID, d.Prerequisites[0].ID)
	require.Len(t, d.RequiredFor, 1)
	assert.Equal(t, c.ID, d.RequiredFor[0].ID)
	require.Len(t, d.RelatedCareers, 1)
	assert.Equal(t, "백엔드 개발자", d.RelatedCareers[0].Name)

	_, err = svc.Detail(ctx, 9999)
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
}

func TestCatalogDetailHidesInactive(t *testing.T) {
	f := newFixture(t)
	svc := f.catalog(t, false)
	ctx := context.Background()

	a := f.cert(t, "A", "A", certification.LevelCraftsman)
	require.NoError(t, svc.Deactivate(ctx, a.ID))

	_, err := svc.Detail(ctx, a.ID)
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))

	page, err := svc.AdminList(ctx, "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.False(t, page.Items[0].IsActive)
}

func TestCatalogCreateAndUpdate(t *testing.T) {
	f := newFixture(t)
	svc := f.catalog(t, false)
	ctx := context.Background()

	c, err := svc.Create(ctx, CertificationInput{
		Name:  testutil.Ptr("  정보보안기사 "),
		Code:  testutil.Ptr("1400"),
		Level: testutil.Ptr(certification.LevelEngineer),
	})
	require.NoError(t, err)
	assert.Equal(t, "정보보안기사", c.Name)
	assert.Equal(t, 3, c.LevelOrder)
	assert.True(t, c.IsActive)

	_, err = svc.Create(ctx, CertificationInput{Name: testutil.Ptr("다른자격"), Code: testutil.Ptr("1400")})
	e, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, e.Status)

	_, err = svc.Create(ctx, CertificationInput{Name: testutil.Ptr(" ")})
	assert.True(t, apierr.Is(err, apierr.CodeBadRequest))

	updated, err := svc.Update(ctx, c.ID, CertificationInput{Level: testutil.Ptr(certification.LevelCraftsman), PassRate: testutil.Ptr("30%")})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.LevelOrder)
	assert.Equal(t, "30%", *updated.PassRate)
	assert.Equal(t, "1400", *updated.Code)

	_, err = svc.Update(ctx, c.ID, CertificationInput{Code: testutil.Ptr("1400")})
	assert.NoError(t, err, "keeping its own code is not a conflict")

	_, err = svc.Update(ctx, 9999, CertificationInput{})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
}

func TestCatalogAddPrerequisite(t *testing.T) {
	f := newFixture(t)
	svc := f.catalog(t, false)
	ctx := context.Background()

	a := f.cert(t, "A", "A", certification.LevelCraftsman)
	b := f.cert(t, "B", "B", certification.LevelEngineer)

	require.NoError(t, svc.AddPrerequisite(ctx, b.ID, a.ID))
	err := svc.AddPrerequisite(ctx, b.ID, a.ID)
	assert.True(t, apierr.Is(err, apierr.CodeConflict))

	err = svc.AddPrerequisite(ctx, b.ID, 9999)
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))

	// allowed under the default policy
	require.NoError(t, svc.AddPrerequisite(ctx, a.ID, b.ID))
	edges, err := f.repos.Certifications.ListAllEdges(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, edges, 2)
}

func TestCatalogAddPrerequisiteRejectsCycles(t *testing.T) {
	f := newFixture(t)
	svc := f.catalog(t, true)
	ctx := context.Background()

	a := f.cert(t, "A", "A", certification.LevelCraftsman)
	b := f.cert(t, "B", "B", certification.LevelIndustrialEngineer)
	c := f.cert(t, "C", "C", certification.LevelEngineer)
	require.NoError(t, svc.AddPrerequisite(ctx, b.ID, a.ID))
	require.NoError(t, svc.AddPrerequisite(ctx, c.ID, b.ID))

	err := svc.AddPrerequisite(ctx, a.ID, c.ID)
	assert.True(t, apierr.Is(err, apierr.CodeConflict))
	err = svc.AddPrerequisite(ctx, a.ID, a.ID)
	assert.True(t, apierr.Is(err, apierr.CodeConflict))

	edges, err := f.repos.Certifications.ListAllEdges(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, edges, 2)
}

func TestCatalogRemovePrerequisite(t *testing.T) {
	f := newFixture(t)
	svc := f.catalog(t, false)
	ctx := context.Background()

	a := f.cert(t, "A", "A", certification.LevelCraftsman)
	b := f.cert(t, "B", "B", certification.LevelEngineer)
	testutil.CreateEdge(t, f.db, a.ID, b.ID)

	require.NoError(t, svc.RemovePrerequisite(ctx, b.ID, a.ID))
	err := svc.RemovePrerequisite(ctx, b.ID, a.ID)
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
}

func TestCatalogSchedules(t *testing.T) {
	f := newFixture(t)
	svc := f.catalog(t, false)
	ctx := context.Background()

	a := f.cert(t, "A", "A", certification.LevelEngineer)
	b := f.cert(t, "B", "B", certification.LevelEngineer)

	sch, err := svc.CreateSchedule(ctx, a.ID, ScheduleInput{RoundName: "2025년 1회"})
	require.NoError(t, err)

	list, err := svc.Schedules(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2025년 1회", list[0].RoundName)

	_, err = svc.CreateSchedule(ctx, a.ID, ScheduleInput{})
	assert.True(t, apierr.Is(err, apierr.CodeBadRequest))

	err = svc.DeleteSchedule(ctx, b.ID, sch.ID)
	assert.True(t, apierr.Is(err, apierr.CodeNotFound), "schedule belongs to another certification")
	require.NoError(t, svc.DeleteSchedule(ctx, a.ID, sch.ID))

	list, err = svc.Schedules(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
