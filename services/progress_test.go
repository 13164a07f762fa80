package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"speclab-backend/apierr"
	"speclab-backend/models/certification"
	"speclab-backend/models/users"
	"speclab-backend/repository"
	"speclab-backend/testutil"
)

func TestAcquireCompletesMatchingGoalOnly(t *testing.T) {
	f := newFixture(t)
	svc, m := f.progress(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, f.db, "user@example.com", false)
	other := testutil.CreateUser(t, f.db, "other@example.com", false)
	x := f.cert(t, "정보처리기사", "1320", certification.LevelEngineer)
	y := f.cert(t, "정보보안기사", "1400", certification.LevelEngineer)

	goalX, err := svc.AddGoal(ctx, u.ID, GoalInput{CertificationID: x.ID})
	require.NoError(t, err)
	goalY, err := svc.AddGoal(ctx, u.ID, GoalInput{CertificationID: y.ID, Status: testutil.Ptr(users.GoalInProgress)})
	require.NoError(t, err)
	otherGoal, err := svc.AddGoal(ctx, other.ID, GoalInput{CertificationID: x.ID})
	require.NoError(t, err)

	uc, err := svc.Acquire(ctx, u.ID, AcquireInput{CertificationID: x.ID, Score: testutil.Ptr(85)})
	require.NoError(t, err)
	require.NotNil(t, uc.Certification)
	assert.Equal(t, "정보처리기사", uc.Certification.Name)

	goals, err := svc.Goals(ctx, u.ID)
	require.NoError(t, err)
	status := map[uint]string{}
	for _, g := range goals {
		status[g.ID] = g.Status
	}
	assert.Equal(t, users.GoalCompleted, status[goalX.ID])
	assert.Equal(t, users.GoalInProgress, status[goalY.ID])

	otherGoals, err := svc.Goals(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, otherGoals, 1)
	assert.Equal(t, otherGoal.ID, otherGoals[0].ID)
	assert.Equal(t, users.GoalPending, otherGoals[0].Status)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "speclab_goals_completed_total 1")
}

func TestAcquireErrors(t *testing.T) {
	f := newFixture(t)
	svc, _ := f.progress(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, f.db, "user@example.com", false)
	x := f.cert(t, "정보처리기사", "1320", certification.LevelEngineer)

	_, err := svc.Acquire(ctx, u.ID, AcquireInput{CertificationID: 9999})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))

	_, err = svc.Acquire(ctx, u.ID, AcquireInput{CertificationID: x.ID})
	require.NoError(t, err)
	_, err = svc.Acquire(ctx, u.ID, AcquireInput{CertificationID: x.ID})
	assert.True(t, apierr.Is(err, apierr.CodeConflict))

	held, err := svc.Certifications(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, held, 1)

	require.NoError(t, svc.RemoveCertification(ctx, u.ID, x.ID))
	err = svc.RemoveCertification(ctx, u.ID, x.ID)
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
}

func TestAddGoalRules(t *testing.T) {
	f := newFixture(t)
	svc, _ := f.progress(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, f.db, "user@example.com", false)
	x := f.cert(t, "정보처리기사", "1320", certification.LevelEngineer)
	y := f.cert(t, "정보보안기사", "1400", certification.LevelEngineer)

	_, err := svc.AddGoal(ctx, u.ID, GoalInput{CertificationID: 9999})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))

	_, err = svc.AddGoal(ctx, u.ID, GoalInput{CertificationID: x.ID, Status: testutil.Ptr("someday")})
	assert.True(t, apierr.Is(err, apierr.CodeBadRequest))

	g, err := svc.AddGoal(ctx, u.ID, GoalInput{CertificationID: x.ID})
	require.NoError(t, err)
	assert.Equal(t, users.GoalPending, g.Status)

	_, err = svc.AddGoal(ctx, u.ID, GoalInput{CertificationID: x.ID})
	assert.True(t, apierr.Is(err, apierr.CodeConflict))

	_, err = svc.Acquire(ctx, u.ID, AcquireInput{CertificationID: y.ID})
	require.NoError(t, err)
	_, err = svc.AddGoal(ctx, u.ID, GoalInput{CertificationID: y.ID})
	assert.True(t, apierr.Is(err, apierr.CodeConflict), "already acquired")
}

func TestUpdateAndDeleteGoal(t *testing.T) {
	f := newFixture(t)
	svc, _ := f.progress(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, f.db, "user@example.com", false)
	stranger := testutil.CreateUser(t, f.db, "stranger@example.com", false)
	x := f.cert(t, "정보처리기사", "1320", certification.LevelEngineer)

	g, err := svc.AddGoal(ctx, u.ID, GoalInput{CertificationID: x.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateGoal(ctx, u.ID, g.ID, GoalUpdate{Status: testutil.Ptr(users.GoalInProgress)})
	require.NoError(t, err)
	assert.Equal(t, users.GoalInProgress, updated.Status)

	_, err = svc.UpdateGoal(ctx, u.ID, g.ID, GoalUpdate{Status: testutil.Ptr("done")})
	assert.True(t, apierr.Is(err, apierr.CodeBadRequest))

	_, err = svc.UpdateGoal(ctx, stranger.ID, g.ID, GoalUpdate{Status: testutil.Ptr(users.GoalCompleted)})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound), "goal belongs to another user")

	err = svc.DeleteGoal(ctx, stranger.ID, g.ID)
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
	require.NoError(t, svc.DeleteGoal(ctx, u.ID, g.ID))

	goals, err := svc.Goals(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestAcquireRollsBackWhenGoalCompletionFails(t *testing.T) {
	f := newFixture(t)
	svc, m := f.progress(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, f.db, "user@example.com", false)
	x := f.cert(t, "정보처리기사", "1320", certification.LevelEngineer)
	require.NoError(t, f.db.Migrator().DropTable(&users.UserGoal{}))

	_, err := svc.Acquire(ctx, u.ID, AcquireInput{CertificationID: x.ID})
	require.Error(t, err)
	_, isAPIErr := apierr.As(err)
	assert.False(t, isAPIErr)

	var n int64
	require.NoError(t, f.db.Model(&users.UserCertification{}).Count(&n).Error)
	assert.Zero(t, n)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "speclab_goals_completed_total 0")
}

// staleChecks answers "not yet" to every existence check, as a concurrent
// request that passed its check before the other insert committed would see.
type staleChecks struct {
	repository.ProgressRepo
}

func (staleChecks) HasCertification(context.Context, *gorm.DB, uint, uint) (bool, error) {
	return false, nil
}

func (staleChecks) HasGoal(context.Context, *gorm.DB, uint, uint) (bool, error) {
	return false, nil
}

func TestUniqueIndexViolationIsConflict(t *testing.T) {
	f := newFixture(t)
	svc, _ := f.progress(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, f.db, "user@example.com", false)
	x := f.cert(t, "정보처리기사", "1320", certification.LevelEngineer)
	y := f.cert(t, "정보보안기사", "1400", certification.LevelEngineer)
	_, err := svc.Acquire(ctx, u.ID, AcquireInput{CertificationID: x.ID})
	require.NoError(t, err)
	_, err = svc.AddGoal(ctx, u.ID, GoalInput{CertificationID: y.ID})
	require.NoError(t, err)

	repos := *f.repos
	repos.Progress = staleChecks{f.repos.Progress}
	racing := NewProgressService(f.db, &repos, nil, testutil.Logger(t))

	_, err = racing.Acquire(ctx, u.ID, AcquireInput{CertificationID: x.ID})
	assert.True(t, apierr.Is(err, apierr.CodeConflict), "got %v", err)

	_, err = racing.AddGoal(ctx, u.ID, GoalInput{CertificationID: y.ID})
	assert.True(t, apierr.Is(err, apierr.CodeConflict), "got %v", err)

	held, err := svc.Certifications(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, held, 1)
	goals, err := svc.Goals(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}
